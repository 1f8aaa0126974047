package ops

import (
	"testing"
)

func TestScore(t *testing.T) {
	out, err := Score(ScoreInput{Text: promoText(0)})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if out.Scores.Jargon == 0 {
		t.Error("expected jargon score for promotional text")
	}
	if len(out.Links) != 2 {
		t.Errorf("links = %d, want 2", len(out.Links))
	}
	if len(out.Jargon) == 0 {
		t.Error("expected jargon hits")
	}
}

func TestScore_AuthenticText(t *testing.T) {
	out, err := Score(ScoreInput{Text: authenticText(0)})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if out.Scores.Vulnerability == 0 {
		t.Error("expected vulnerability score for a first-person story")
	}
	if out.Scores.Success <= 0 {
		t.Errorf("success = %v, want > 0", out.Scores.Success)
	}
	if len(out.Links) != 0 {
		t.Errorf("links = %d, want 0", len(out.Links))
	}
}

func TestScore_EmptyText(t *testing.T) {
	out, err := Score(ScoreInput{})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if out.Scores.Jargon != 0 || out.Scores.LinkDensity != 0 {
		t.Errorf("scores = %+v, want zero findings on empty text", out.Scores)
	}
	if len(out.Links) != 0 || len(out.Jargon) != 0 {
		t.Errorf("links = %v, jargon = %v, want none", out.Links, out.Jargon)
	}
}

package ops

import (
	"context"
	"testing"

	"github.com/quenchwood/blend/internal/errors"
	"github.com/quenchwood/blend/internal/post"
)

func TestGate_UnknownCommunityUsesGenericDefaults(t *testing.T) {
	database := testDB(t)

	out, err := Gate(context.Background(), database, GateInput{
		Community:     "ghost",
		Archetype:     "Journey",
		AccountStatus: "Established",
	})
	if err != nil {
		t.Fatalf("Gate() error = %v", err)
	}
	if out.ProfileKnown {
		t.Error("ProfileKnown = true, want false")
	}
	if out.Decision.Forced {
		t.Error("Forced = true with generic defaults, want false")
	}
	if out.Decision.FinalArchetype != post.ArchetypeJourney {
		t.Errorf("FinalArchetype = %q, want Journey", out.Decision.FinalArchetype)
	}
	if out.Sensitivity != 5.0 {
		t.Errorf("Sensitivity = %v, want generic 5.0", out.Sensitivity)
	}
}

func TestGate_PunishingCommunityForcesFeedback(t *testing.T) {
	database := testDB(t)
	seedCommunity(t, database, "startups", 9, 3)
	if _, err := Analyze(context.Background(), database, testConfig(), AnalyzeInput{Community: "startups"}); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	out, err := Gate(context.Background(), database, GateInput{
		Community:     "startups",
		Archetype:     "Journey",
		AccountStatus: "Established",
	})
	if err != nil {
		t.Fatalf("Gate() error = %v", err)
	}
	if !out.ProfileKnown {
		t.Fatal("ProfileKnown = false after analysis")
	}
	if !out.Decision.Forced {
		t.Fatalf("Forced = false at sensitivity %v, want forced Feedback", out.Sensitivity)
	}
	if out.Decision.FinalArchetype != post.ArchetypeFeedback {
		t.Errorf("FinalArchetype = %q, want Feedback", out.Decision.FinalArchetype)
	}
}

func TestGate_NewAccountAlwaysWarmsUp(t *testing.T) {
	database := testDB(t)

	out, err := Gate(context.Background(), database, GateInput{
		Community:     "anything",
		Archetype:     "ProblemSolution",
		AccountStatus: "New",
	})
	if err != nil {
		t.Fatalf("Gate() error = %v", err)
	}
	if !out.Decision.Forced || out.Decision.FinalArchetype != post.ArchetypeFeedback {
		t.Errorf("decision = %+v, want forced Feedback for new accounts", out.Decision)
	}
}

func TestGate_InvalidInputs(t *testing.T) {
	database := testDB(t)

	if _, err := Gate(context.Background(), database, GateInput{Community: "x", Archetype: "Rant", AccountStatus: "New"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("bad archetype: error = %v, want INVALID_REQUEST", err)
	}
	if _, err := Gate(context.Background(), database, GateInput{Community: "x", Archetype: "Journey", AccountStatus: "ancient"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("bad status: error = %v, want INVALID_REQUEST", err)
	}
	if _, err := Gate(context.Background(), database, GateInput{Community: "  ", Archetype: "Journey", AccountStatus: "New"}); !errors.Is(err, errors.ErrInvalidRequest) {
		t.Errorf("empty community: error = %v, want INVALID_REQUEST", err)
	}
}

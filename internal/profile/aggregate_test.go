package profile

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/quenchwood/blend/internal/blacklist"
	"github.com/quenchwood/blend/internal/errors"
	"github.com/quenchwood/blend/internal/post"
)

// sample builds a Sample with a controlled feature vector.
func sample(id string, archetype post.Archetype, tone post.Tone, success, vuln, jargon, linkPenalty float64, comments int, collectedAt int64) Sample {
	return Sample{
		Post: post.RawPost{
			ID:           id,
			Community:    "startups",
			Text:         "I tried something last month. It mostly worked out fine.",
			Archetype:    archetype,
			CommentCount: comments,
			CollectedAt:  collectedAt,
		},
		Scores: post.Scored{
			Success:        success,
			Vulnerability:  vuln,
			Jargon:         jargon,
			LinkPenalty:    linkPenalty,
			Formality:      5,
			Tone:           tone,
			AvgSentenceLen: 12,
		},
	}
}

// evenSamples returns n unremarkable samples with descending success scores.
func evenSamples(n int) []Sample {
	out := make([]Sample, n)
	for i := 0; i < n; i++ {
		out[i] = sample(
			fmt.Sprintf("p%02d", i),
			post.ArchetypeJourney,
			post.ToneCasual,
			float64(n-i), 5, 0, 0, 0, int64(1000+i),
		)
	}
	return out
}

func TestAggregate_InsufficientSample(t *testing.T) {
	_, _, err := Aggregate("newcomm", evenSamples(9), 10, 2)
	if err == nil {
		t.Fatal("Aggregate with 9 posts should fail")
	}
	if !errors.Is(err, errors.ErrInsufficientSample) {
		t.Fatalf("error = %v, want INSUFFICIENT_SAMPLE", err)
	}

	bErr := err.(*errors.BlendError)
	if bErr.Details["sample_size"] != 9 {
		t.Errorf("Details[sample_size] = %v, want 9", bErr.Details["sample_size"])
	}
}

func TestAggregate_MinSampleNeverBelowFloor(t *testing.T) {
	// A caller asking for a tiny minimum still gets the contractual floor:
	// five posts must not mint a profile even with minSample 1.
	_, _, err := Aggregate("newcomm", evenSamples(5), 1, 2)
	if !errors.Is(err, errors.ErrInsufficientSample) {
		t.Fatalf("error = %v, want INSUFFICIENT_SAMPLE", err)
	}

	bErr := err.(*errors.BlendError)
	if bErr.Details["min_sample_size"] != minSampleFloor {
		t.Errorf("Details[min_sample_size] = %v, want %v", bErr.Details["min_sample_size"], minSampleFloor)
	}
}

func TestAggregate_DistributionSumsToOne(t *testing.T) {
	samples := evenSamples(12)
	samples[0].Post.Archetype = post.ArchetypeFeedback
	samples[1].Post.Archetype = post.ArchetypeFeedback
	samples[2].Post.Archetype = post.ArchetypeProblemSolution

	p, _, err := Aggregate("startups", samples, 10, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	sum := 0.0
	for _, frac := range p.ArchetypeDist {
		sum += frac
	}
	if math.Abs(sum-1.0) > 1e-6 {
		t.Errorf("archetype distribution sums to %v, want 1.0 ± 1e-6", sum)
	}
	if p.ArchetypeDist[post.ArchetypeFeedback] != 2.0/12.0 {
		t.Errorf("Feedback fraction = %v, want %v", p.ArchetypeDist[post.ArchetypeFeedback], 2.0/12.0)
	}
}

func TestAggregate_SensitivityPunishesPromotionalBottom(t *testing.T) {
	// 15 posts; the bottom 3 by success are jargon- and link-heavy while the
	// top is vulnerable and clean. That is the signature of a community that
	// punishes promotional framing: the index should land well above the
	// generic default.
	var samples []Sample
	for i := 0; i < 12; i++ {
		samples = append(samples, sample(
			fmt.Sprintf("good%02d", i), post.ArchetypeJourney, post.ToneCasual,
			8-float64(i)*0.1, 8, 0, 0, 0, int64(2000+i),
		))
	}
	for i := 0; i < 3; i++ {
		samples = append(samples, sample(
			fmt.Sprintf("promo%d", i), post.ArchetypeProblemSolution, post.ToneNeutral,
			1+float64(i)*0.1, 2, 8, 9, 0, int64(3000+i),
		))
	}

	p, _, err := Aggregate("startups", samples, 10, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if p.Sensitivity <= GenericSensitivity {
		t.Errorf("Sensitivity = %v, want above generic %v", p.Sensitivity, GenericSensitivity)
	}
	if p.Sensitivity < 1 || p.Sensitivity > 10 {
		t.Errorf("Sensitivity = %v, want in [1,10]", p.Sensitivity)
	}
	if p.SampleSize != 15 {
		t.Errorf("SampleSize = %d, want 15", p.SampleSize)
	}
}

func TestAggregate_ToleratedMarkersStayModerate(t *testing.T) {
	// Jargon present in both quartiles: the community tolerates it, so the
	// index should stay below the punishing case.
	var tolerant []Sample
	for i := 0; i < 12; i++ {
		tolerant = append(tolerant, sample(
			fmt.Sprintf("t%02d", i), post.ArchetypeJourney, post.ToneCasual,
			float64(12-i), 5, 5, 3, 0, int64(2000+i),
		))
	}

	var punishing []Sample
	for i := 0; i < 9; i++ {
		punishing = append(punishing, sample(
			fmt.Sprintf("c%02d", i), post.ArchetypeJourney, post.ToneCasual,
			float64(12-i), 8, 0, 0, 0, int64(2000+i),
		))
	}
	for i := 0; i < 3; i++ {
		punishing = append(punishing, sample(
			fmt.Sprintf("b%d", i), post.ArchetypeJourney, post.ToneCasual,
			1, 2, 8, 9, 0, int64(3000+i),
		))
	}

	tp, _, err := Aggregate("tolerant", tolerant, 10, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	pp, _, err := Aggregate("punishing", punishing, 10, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if tp.Sensitivity >= pp.Sensitivity {
		t.Errorf("tolerant index %v should be below punishing index %v", tp.Sensitivity, pp.Sensitivity)
	}
}

func TestAggregate_DominantToneTieBrokenByRecency(t *testing.T) {
	samples := evenSamples(10)
	// 5 casual, 5 technical; the most recent post is technical.
	for i := 5; i < 10; i++ {
		samples[i].Scores.Tone = post.ToneTechnical
	}
	samples[7].Post.CollectedAt = 99999

	p, _, err := Aggregate("startups", samples, 10, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if p.DominantTone != post.ToneTechnical {
		t.Errorf("DominantTone = %q, want technical (tie broken by most recent post)", p.DominantTone)
	}
}

func TestAggregate_EmitsCandidatesFromBottomQuartile(t *testing.T) {
	var samples []Sample
	for i := 0; i < 12; i++ {
		samples = append(samples, sample(
			fmt.Sprintf("good%02d", i), post.ArchetypeJourney, post.ToneCasual,
			9-float64(i)*0.1, 8, 0, 0, 0, int64(2000+i),
		))
	}
	for i := 0; i < 3; i++ {
		s := sample(
			fmt.Sprintf("bad%d", i), post.ArchetypeProblemSolution, post.ToneNeutral,
			0.5, 1, 8, 9, 0, int64(3000+i),
		)
		s.Post.Text = "hey check out my link.io for the beta, seriously check out my link.io"
		samples = append(samples, s)
	}

	_, candidates, err := Aggregate("startups", samples, 10, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	var sawLink bool
	for _, c := range candidates {
		if c.Category == blacklist.CategoryLink {
			sawLink = true
		}
	}
	if !sawLink {
		t.Errorf("candidates = %v, want a Link-category pattern mined from the bottom quartile", candidates)
	}
}

func TestAggregate_TopHooks(t *testing.T) {
	samples := evenSamples(10)
	samples[0].Post.Text = "I spent six months rebuilding our ingest pipeline. It was rough."
	samples[1].Post.Text = "short"

	p, _, err := Aggregate("startups", samples, 10, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}

	if len(p.TopHooks) == 0 || len(p.TopHooks) > 5 {
		t.Fatalf("TopHooks = %v, want 1..5 hooks", p.TopHooks)
	}
	if p.TopHooks[0] != "I spent six months rebuilding our ingest pipeline" {
		t.Errorf("TopHooks[0] = %q, want first sentence of best post", p.TopHooks[0])
	}
	for _, h := range p.TopHooks {
		if h == "short" {
			t.Error("hooks shorter than the minimum length must be skipped")
		}
	}
}

func TestAggregate_HookTruncationKeepsRunesWhole(t *testing.T) {
	samples := evenSamples(10)
	samples[0].Post.Text = strings.Repeat("é", 210) + ". And then some more."

	p, _, err := Aggregate("startups", samples, 10, 2)
	if err != nil {
		t.Fatalf("Aggregate failed: %v", err)
	}
	if len(p.TopHooks) == 0 {
		t.Fatal("TopHooks empty, want the truncated opening sentence")
	}

	hook := p.TopHooks[0]
	if !utf8.ValidString(hook) {
		t.Errorf("hook %q is not valid UTF-8; truncation split a rune", hook)
	}
	if got := len([]rune(hook)); got != maxHookChars {
		t.Errorf("hook length = %d runes, want %d", got, maxHookChars)
	}
}

func TestGeneric(t *testing.T) {
	g := Generic("unknown")
	if g.Sensitivity != GenericSensitivity {
		t.Errorf("Sensitivity = %v, want %v", g.Sensitivity, GenericSensitivity)
	}
	if g.DominantTone != post.ToneNeutral {
		t.Errorf("DominantTone = %q, want neutral", g.DominantTone)
	}
	if len(g.ArchetypeDist) != 0 {
		t.Errorf("ArchetypeDist = %v, want empty", g.ArchetypeDist)
	}
	if g.SampleSize != 0 {
		t.Errorf("SampleSize = %d, want 0", g.SampleSize)
	}
}

func TestSensitivityTier(t *testing.T) {
	tiers := map[float64]string{
		2.0: "low", 3.0: "low",
		4.5: "moderate", 5.0: "moderate",
		6.0: "high", 7.5: "high",
		8.2: "extreme", 10.0: "extreme",
	}
	for value, want := range tiers {
		if got := SensitivityTier(value); got != want {
			t.Errorf("SensitivityTier(%v) = %q, want %q", value, got, want)
		}
	}
}

package humanize

import (
	"math/rand"
	"strings"
	"testing"
)

const engineText = `Hey everyone! I wanted to share my experience with migrating our codebase to TypeScript.

Furthermore, the process was smoother than expected. It's worth noting that the type system caught several bugs that would have been missed otherwise.

Moreover, the developer experience improved significantly. The IDE support with TypeScript is truly game-changing.

In conclusion, I would highly recommend making the switch. Hope this helps!`

func TestApply_StripsEngineArtifacts(t *testing.T) {
	got := strings.ToLower(Apply(engineText, 0.7, 42))

	for _, artifact := range []string{
		"hey everyone",
		"furthermore",
		"moreover",
		"in conclusion",
		"hope this helps",
		"it's worth noting",
	} {
		if strings.Contains(got, artifact) {
			t.Errorf("Apply() output still contains %q", artifact)
		}
	}
}

func TestApply_Deterministic(t *testing.T) {
	text := "This is a test sentence. Here is another one. And a third for good measure."

	first := Apply(text, 0.5, 123)
	second := Apply(text, 0.5, 123)
	if first != second {
		t.Errorf("Apply() not reproducible:\n%q\n%q", first, second)
	}
}

func TestApply_PreservesContent(t *testing.T) {
	text := `been messing with fastapi for a couple weeks now and honestly its pretty solid. had some issues with the async stuff at first but figured it out eventually.

the docs are decent, not amazing but they get you where you need to go. biggest thing for me was how much faster it is than django for api-only stuff.

anyone else run into weird behavior with background tasks?`

	got := Apply(text, 0.3, 42)
	for _, want := range []string{"fastapi", "async", "background tasks"} {
		if !strings.Contains(got, want) {
			t.Errorf("Apply() dropped %q from:\n%s", want, got)
		}
	}
}

func TestApply_Empty(t *testing.T) {
	if got := Apply("", 0.5, 1); got != "" {
		t.Errorf("Apply(%q) = %q, want empty", "", got)
	}
	if got := Apply("  ", 0.5, 1); got != "" {
		t.Errorf("Apply(%q) = %q, want empty", "  ", got)
	}
}

func TestStripArtifacts(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		absent string
	}{
		{"conclusion", "In conclusion, this was a great approach to solving the problem.", "In conclusion"},
		{"furthermore", "The tool works well. Furthermore, it has great documentation.", "Furthermore"},
		{"moreover", "The API is fast. Moreover, it handles errors gracefully.", "Moreover"},
		{"greeting", "Hey everyone! I wanted to share my experience with this tool.", "Hey everyone"},
		{"closer", "The fix is to update your config file. Hope this helps!", "Hope this helps"},
		{"worth noting", "The library is fast. It's worth noting that it also has good docs.", "It's worth noting"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripArtifacts(tt.text); strings.Contains(got, tt.absent) {
				t.Errorf("stripArtifacts() = %q, still contains %q", got, tt.absent)
			}
		})
	}
}

func TestStripArtifacts_LeavesCasualTextAlone(t *testing.T) {
	text := "been using this for 3 months now and honestly it just works. had some issues early on but figured them out"
	if got := stripArtifacts(text); got != text {
		t.Errorf("stripArtifacts() = %q, want unchanged", got)
	}
}

func TestLowercaseStarts_FirstSentenceKept(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	got := lowercaseStarts("First sentence. Second sentence. Third sentence.", 1.0, rng)
	if got[0] != 'F' {
		t.Errorf("lowercaseStarts() changed the leading sentence: %q", got)
	}
}

func TestLowercaseStarts_ZeroIntensity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	text := "First sentence. Second sentence. Third sentence."
	if got := lowercaseStarts(text, 0, rng); got != text {
		t.Errorf("lowercaseStarts() = %q, want unchanged at zero intensity", got)
	}
}

func TestInjectFillers_ShortTextUnchanged(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	text := "Short text. Another line."
	if got := injectFillers(text, 0.8, rng); got != text {
		t.Errorf("injectFillers() = %q, want unchanged below 3 sentences", got)
	}
}

func TestInjectFillers_AddsFiller(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	text := "First sentence here. Second sentence here. Third sentence here. Fourth sentence here. Fifth sentence here."
	got := strings.ToLower(injectFillers(text, 0.8, rng))

	found := false
	for _, f := range fillers {
		if strings.Contains(got, strings.ToLower(f)+" ") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("injectFillers() added no filler: %q", got)
	}
}

func TestSplitSentences(t *testing.T) {
	got := splitSentences("One. Two! Three? Four")
	want := []string{"One.", "Two!", "Three?", "Four"}
	if len(got) != len(want) {
		t.Fatalf("splitSentences() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("splitSentences()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSplitSentences_Ellipsis(t *testing.T) {
	got := splitSentences("Wait... done.")
	if len(got) != 2 || got[0] != "Wait..." || got[1] != "done." {
		t.Errorf("splitSentences() = %q, want [Wait... done.]", got)
	}
}

func TestReplaceFirstProseColon(t *testing.T) {
	got := replaceFirstProseColon("the trick: keep it simple")
	if got != "the trick -- keep it simple" {
		t.Errorf("replaceFirstProseColon() = %q", got)
	}
}

func TestReplaceFirstProseColon_SkipsURLs(t *testing.T) {
	text := "see https: //example.com for more"
	if got := replaceFirstProseColon(text); got != text {
		t.Errorf("replaceFirstProseColon() = %q, want URL left alone", got)
	}
}

func TestIntensityFor(t *testing.T) {
	tests := []struct {
		formality float64
		want      float64
	}{
		{1.0, 0.7},
		{2.5, 0.7},
		{4.0, 0.6},
		{6.0, 0.45},
		{8.0, 0.35},
		{9.5, 0.25},
	}
	for _, tt := range tests {
		if got := IntensityFor(tt.formality); got != tt.want {
			t.Errorf("IntensityFor(%v) = %v, want %v", tt.formality, got, tt.want)
		}
	}
}

func TestSeedFor(t *testing.T) {
	if SeedFor("same text") != SeedFor("same text") {
		t.Error("SeedFor() not stable for identical text")
	}
	if SeedFor("one draft") == SeedFor("another draft") {
		t.Error("SeedFor() collided for distinct text")
	}
}

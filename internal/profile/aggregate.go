package profile

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/quenchwood/blend/internal/blacklist"
	"github.com/quenchwood/blend/internal/errors"
	"github.com/quenchwood/blend/internal/post"
)

// Sample pairs a raw post with its derived feature vector.
type Sample struct {
	Post   post.RawPost
	Scores post.Scored
}

// hook extraction bounds, matching the reporting surface's display limits.
const (
	maxHooks      = 5
	minHookChars  = 10
	maxHookChars  = 200
)

// minSampleFloor is the contractual minimum behind every profile. Callers
// may ask for a larger minimum but never a smaller one; a profile minted
// from a handful of posts would not be a profile.
const minSampleFloor = 10

// Aggregate reduces one community's scored posts into a fresh Profile and a
// set of candidate blacklist patterns mined from the bottom quartile.
//
// Fewer than minSample posts is the only fatal condition: the call fails
// with INSUFFICIENT_SAMPLE and the caller writes nothing, leaving any prior
// profile untouched. Aggregation replaces, it never merges.
func Aggregate(community string, samples []Sample, minSample, minPatternPosts int) (*Profile, []blacklist.Candidate, error) {
	if minSample < minSampleFloor {
		minSample = minSampleFloor
	}
	if len(samples) < minSample {
		return nil, nil, errors.NewInsufficientSample(community, len(samples), minSample)
	}

	bySuccess := make([]Sample, len(samples))
	copy(bySuccess, samples)
	sort.SliceStable(bySuccess, func(i, j int) bool {
		return bySuccess[i].Scores.Success > bySuccess[j].Scores.Success
	})

	q := len(bySuccess) / 4
	if q < 1 {
		q = 1
	}
	top := bySuccess[:q]
	bottom := bySuccess[len(bySuccess)-q:]

	now := time.Now().Unix()
	p := &Profile{
		Community:     community,
		SampleSize:    len(samples),
		Sensitivity:   sensitivityIndex(samples, top, bottom),
		DominantTone:  dominantTone(samples),
		ArchetypeDist: archetypeDistribution(samples),
		TopHooks:      topHooks(bySuccess),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	formalitySum, lengthSum := 0.0, 0.0
	for _, s := range samples {
		formalitySum += s.Scores.Formality
		lengthSum += s.Scores.AvgSentenceLen
	}
	p.AvgFormality = round2(formalitySum / float64(len(samples)))
	p.AvgSentenceLen = round2(lengthSum / float64(len(samples)))
	p.RhythmDesc = rhythmDescriptor(p.AvgSentenceLen)

	bottomTexts := make([]string, len(bottom))
	for i, s := range bottom {
		bottomTexts[i] = s.Post.Text
	}
	candidates := blacklist.MineCorpus(bottomTexts, minPatternPosts)

	return p, candidates, nil
}

// sensitivityIndex computes the community sensitivity index from quartile
// analysis of the sample: how link-heavy and jargon-heavy content performs
// relative to vulnerable, authentic content. Four weighted factors, each
// 0-10; the result is clamped to [1,10] and rounded to one decimal.
func sensitivityIndex(all, top, bottom []Sample) float64 {
	jargon := contrastSensitivity(top, bottom, func(s Sample) bool { return s.Scores.Jargon > 0 })
	links := contrastSensitivity(top, bottom, func(s Sample) bool { return s.Scores.LinkPenalty > 0 })

	topVuln := meanOf(top, func(s Sample) float64 { return s.Scores.Vulnerability })
	bottomVuln := meanOf(bottom, func(s Sample) float64 { return s.Scores.Vulnerability })
	vulnPreference := clamp(5+(topVuln-bottomVuln), 0, 10)

	depth := depthCorrelation(all)

	index := jargon*0.3 + links*0.2 + vulnPreference*0.3 + depth*0.2
	return round1(clamp(index, 1, 10))
}

// contrastSensitivity compares how often a marker appears in top-quartile
// versus bottom-quartile posts. Markers concentrated in the bottom quartile
// mean the community punishes them; markers equally common at the top mean
// it tolerates them.
func contrastSensitivity(top, bottom []Sample, marker func(Sample) bool) float64 {
	topHits, bottomHits := 0, 0
	for _, s := range top {
		if marker(s) {
			topHits++
		}
	}
	for _, s := range bottom {
		if marker(s) {
			bottomHits++
		}
	}

	if bottomHits == 0 {
		// No signal in the bottom quartile: neutral default.
		return 5.0
	}
	ratio := float64(topHits) / float64(bottomHits)
	return clamp(10-ratio*5, 0, 10)
}

// depthCorrelation checks whether heavily-discussed posts skew authentic.
// Needs at least five commented posts; otherwise neutral.
func depthCorrelation(samples []Sample) float64 {
	var commented []Sample
	for _, s := range samples {
		if s.Post.CommentCount > 0 {
			commented = append(commented, s)
		}
	}
	if len(commented) < 5 {
		return 5.0
	}

	sort.SliceStable(commented, func(i, j int) bool {
		return commented[i].Post.CommentCount > commented[j].Post.CommentCount
	})
	n := len(commented) / 4
	if n < 2 {
		n = 2
	}
	topDiscussed := commented[:n]

	authenticity := meanOf(topDiscussed, func(s Sample) float64 {
		return (s.Scores.Formality + s.Scores.Vulnerability) / 2
	})
	return clamp(authenticity, 0, 10)
}

// dominantTone returns the modal tone; ties resolve to the tone of the most
// recently collected post among the tied tones.
func dominantTone(samples []Sample) post.Tone {
	counts := make(map[post.Tone]int)
	for _, s := range samples {
		counts[s.Scores.Tone]++
	}

	best := 0
	for _, c := range counts {
		if c > best {
			best = c
		}
	}
	tied := make(map[post.Tone]bool)
	for tone, c := range counts {
		if c == best {
			tied[tone] = true
		}
	}
	if len(tied) == 1 {
		for tone := range tied {
			return tone
		}
	}

	byRecency := make([]Sample, len(samples))
	copy(byRecency, samples)
	sort.SliceStable(byRecency, func(i, j int) bool {
		return byRecency[i].Post.CollectedAt > byRecency[j].Post.CollectedAt
	})
	for _, s := range byRecency {
		if tied[s.Scores.Tone] {
			return s.Scores.Tone
		}
	}
	return post.ToneNeutral
}

// archetypeDistribution returns per-archetype fractions summing to 1.
func archetypeDistribution(samples []Sample) map[post.Archetype]float64 {
	counts := make(map[post.Archetype]int)
	for _, s := range samples {
		counts[s.Post.Archetype]++
	}

	dist := make(map[post.Archetype]float64, len(counts))
	for a, c := range counts {
		dist[a] = float64(c) / float64(len(samples))
	}
	return dist
}

// topHooks extracts opening sentences from the five best-scoring posts.
func topHooks(bySuccess []Sample) []string {
	var hooks []string
	for _, s := range bySuccess {
		if len(hooks) == maxHooks {
			break
		}
		hook := firstSentence(s.Post.Text)
		if len(hook) < minHookChars {
			continue
		}
		if runes := []rune(hook); len(runes) > maxHookChars {
			hook = string(runes[:maxHookChars])
		}
		hooks = append(hooks, hook)
	}
	return hooks
}

// firstSentence returns the text up to the first terminal punctuation mark.
func firstSentence(text string) string {
	text = strings.TrimSpace(text)
	if i := strings.IndexAny(text, ".!?\n"); i >= 0 {
		text = text[:i]
	}
	return strings.TrimSpace(text)
}

func meanOf(samples []Sample, f func(Sample) float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sum := 0.0
	for _, s := range samples {
		sum += f(s)
	}
	return sum / float64(len(samples))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

func round2(v float64) float64 { return math.Round(v*100) / 100 }

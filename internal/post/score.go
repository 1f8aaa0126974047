package post

import (
	"math"
	"strings"
)

// Success-score weights. Fixed constants: any change is a versioned
// configuration change, not a runtime decision.
const (
	weightVulnerability = 0.25
	weightRhythm        = 0.25
	weightFormality     = 0.20
	weightJargon        = 0.15
	weightLinkPenalty   = 0.15
)

// Conversational baseline for rhythm scoring. Communities reward neither
// too-short, too-long, nor too-uniform writing; the score peaks near these
// values and decays toward the extremes.
const (
	idealSentenceLen = 15.0
	idealSentenceStd = 7.0
)

// Score derives the feature vector and scalar success score from post text.
// It is total and deterministic: identical text always yields identical
// scores, and the empty string yields the all-zero vector.
func Score(postText string) Scored {
	if strings.TrimSpace(postText) == "" {
		return Scored{Tone: ToneNeutral}
	}

	avgLen, stdLen := sentenceStats(postText)

	s := Scored{
		Vulnerability:  vulnerabilityScore(postText),
		Rhythm:         rhythmScore(avgLen, stdLen),
		Formality:      formalityScore(postText),
		Jargon:         jargonScore(postText),
		Tone:           Classify(postText),
		AvgSentenceLen: round2(avgLen),
		SentenceLenStd: round2(stdLen),
	}

	links := ExtractLinks(postText)
	s.LinkPenalty = linkPenalty(len(links))
	s.LinkDensity = LinkDensity(postText)

	total := s.Vulnerability*weightVulnerability +
		s.Rhythm*weightRhythm +
		s.Formality*weightFormality -
		s.Jargon*weightJargon -
		s.LinkPenalty*weightLinkPenalty
	s.Success = round2(clamp(total, 0, 10))

	return s
}

// vulnerabilityScore counts matches across the vulnerability regex families
// and maps the total onto stepped 0-10 buckets.
func vulnerabilityScore(text string) float64 {
	matches := 0
	for _, p := range vulnerabilityPatterns {
		matches += len(p.FindAllString(text, -1))
	}

	var score float64
	switch {
	case matches == 0:
		score = 0
	case matches <= 3:
		score = 3
	case matches <= 6:
		score = 5
	case matches <= 10:
		score = 7
	default:
		score = math.Min(10, 7+float64(matches-10)*0.3)
	}
	return round2(score)
}

// jargonScore counts distinct (case-folded) jargon hits and maps them onto
// stepped 0-10 penalty buckets.
func jargonScore(text string) float64 {
	seen := make(map[string]bool)
	for _, p := range jargonPatterns {
		for _, m := range p.FindAllString(text, -1) {
			seen[strings.ToLower(m)] = true
		}
	}

	var penalty float64
	switch n := len(seen); {
	case n == 0:
		penalty = 0
	case n == 1:
		penalty = 3
	case n == 2:
		penalty = 5
	case n == 3:
		penalty = 8
	default:
		penalty = math.Min(10, 8+float64(n-3)*0.5)
	}
	return penalty
}

// JargonHits returns the distinct jargon phrases found in text, lowercased.
// Shared with the post-generation validator.
func JargonHits(text string) []string {
	seen := make(map[string]bool)
	var hits []string
	for _, p := range jargonPatterns {
		for _, m := range p.FindAllString(text, -1) {
			key := strings.ToLower(m)
			if !seen[key] {
				seen[key] = true
				hits = append(hits, key)
			}
		}
	}
	return hits
}

// linkPenalty maps a raw URL count onto stepped 0-10 penalty buckets.
func linkPenalty(numLinks int) float64 {
	switch {
	case numLinks == 0:
		return 0
	case numLinks == 1:
		return 3
	case numLinks == 2:
		return 6
	default:
		return 9
	}
}

// rhythmScore peaks at the conversational baseline and decays toward
// too-short, too-long, or too-uniform writing.
func rhythmScore(avgLen, stdLen float64) float64 {
	score := 10 - math.Abs(avgLen-idealSentenceLen)
	score -= math.Min(2, math.Abs(stdLen-idealSentenceStd)*0.5)
	return round2(clamp(score, 0, 10))
}

// formalityScore estimates lexical/structural register on a 0-10 scale.
// Long vocabulary and passive constructions raise it; contractions and
// casual markers lower it. A register-neutral text lands near 5.
func formalityScore(text string) float64 {
	words := strings.Fields(text)
	if len(words) == 0 {
		return 0
	}

	longWords := 0
	for _, w := range words {
		if len(strings.Trim(w, `.,!?;:"'()[]`)) >= longWordLen {
			longWords++
		}
	}
	longRatio := float64(longWords) / float64(len(words))

	casual := len(contractionRegex.FindAllString(text, -1)) +
		len(casualMarkerRegex.FindAllString(text, -1))
	casualRate := float64(casual) / float64(len(words))

	sentences := splitSentences(text)
	passiveRate := 0.0
	if len(sentences) > 0 {
		passiveRate = float64(len(passiveRegex.FindAllString(text, -1))) / float64(len(sentences))
	}

	score := 5.0 + longRatio*12 + passiveRate*1.5 - casualRate*25
	return round2(clamp(score, 0, 10))
}

// splitSentences breaks text on terminal punctuation, dropping empties.
func splitSentences(text string) []string {
	parts := sentenceSplitRegex.Split(text, -1)
	out := parts[:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, strings.TrimSpace(p))
		}
	}
	return out
}

// sentenceStats returns the mean and sample standard deviation of
// words-per-sentence.
func sentenceStats(text string) (avg, std float64) {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return 0, 0
	}

	lengths := make([]float64, len(sentences))
	sum := 0.0
	for i, s := range sentences {
		lengths[i] = float64(len(strings.Fields(s)))
		sum += lengths[i]
	}
	avg = sum / float64(len(lengths))

	if len(lengths) > 1 {
		ss := 0.0
		for _, l := range lengths {
			d := l - avg
			ss += d * d
		}
		std = math.Sqrt(ss / float64(len(lengths)-1))
	}
	return avg, std
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

// round2 rounds to two decimals so repeated scoring is bit-identical.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

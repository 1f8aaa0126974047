// Package humanize applies deterministic text transforms that make
// engine-drafted posts read like casually-written ones. Rather than
// prompting the engine to write loosely, it drafts cleanly and these
// transforms add the looseness afterward: lowercased sentence starts,
// filler words, mid-thought corrections, casual paragraph connectors,
// and trailed-off endings.
package humanize

import (
	"hash/fnv"
	"math/rand"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// DefaultIntensity is used when no community profile is available.
const DefaultIntensity = 0.5

// fillers are scattered at sentence starts.
var fillers = []string{
	"honestly", "tbh", "ngl", "like", "basically", "idk",
	"imo", "fwiw", "I mean", "I guess", "lol", "lowkey",
}

// selfCorrections interrupt a mid-post sentence.
var selfCorrections = []string{
	"wait actually",
	"well ok maybe not",
	"or maybe",
	"idk actually",
	"actually scratch that",
	"hmm actually",
	"-- ok well",
}

// casualConnectors replace formal paragraph transitions.
var casualConnectors = []string{
	"anyway",
	"so yeah",
	"but like",
	"and tbh",
	"oh and",
	"plus",
	"also",
	"btw",
}

// trailOffs end a post instead of a tidy conclusion.
var trailOffs = []string{
	"but yeah",
	"so there's that",
	"idk",
	"anyway",
	"but whatever",
	"just my 2 cents",
	"curious what others think",
	"...yeah",
}

var (
	conclusionRe = regexp.MustCompile(`(?i)[.\s]*\b(?:In conclusion|To summarize|In summary|To sum up|All in all|The bottom line is|At the end of the day)[,:]?\s*[^.!?\n]*[.!?]?`)
	openerRe     = regexp.MustCompile(`(?i)^(?:Here's the thing[:.!]?\s*|Let me (?:explain|share)[:.!]?\s*|I'd (?:like to|love to) share\s*)`)
	transitionRe = regexp.MustCompile(`(?i)\b(?:Furthermore|Moreover|Additionally|It's worth noting that|Needless to say|That being said)\b,?\s*`)
	greetingRe   = regexp.MustCompile(`(?im)^(?:Hey everyone[!,.]?\s*|Hi everyone[!,.]?\s*|Hello everyone[!,.]?\s*|Hey folks[!,.]?\s*|Hi folks[!,.]?\s*)`)
	closerRe     = regexp.MustCompile(`(?i)\s*(?:I )?hope (?:this|that|it) helps[!.]?\s*$`)

	formalStarterRe = regexp.MustCompile(`(?i)^(?:However|Nevertheless|Furthermore|In addition|On the other hand|That said|Moving on|Another thing to consider is)\b,?\s*`)

	tidyEndingRes = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\s*(?:In conclusion|Overall|To sum up|All in all|In summary)[^.]*\.\s*$`),
		regexp.MustCompile(`(?i)\s*(?:I hope this|Hope this|Hopefully this)[^.]*\.\s*$`),
		regexp.MustCompile(`(?i)\s*(?:Feel free to|Don't hesitate to)[^.]*\.\s*$`),
	}
)

// Apply runs the transform chain over drafted text. Intensity scales how
// aggressively the text is loosened, 0 to 1. The same text, intensity,
// and seed always produce the same output.
func Apply(text string, intensity float64, seed int64) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	rng := rand.New(rand.NewSource(seed))

	text = stripArtifacts(text)
	text = lowercaseStarts(text, intensity, rng)
	text = injectFillers(text, intensity, rng)
	text = addSelfCorrection(text, intensity, rng)
	text = casualPunctuation(text, intensity, rng)
	text = casualParagraphStarts(text, intensity, rng)
	text = looseEnding(text, intensity, rng)

	return strings.TrimSpace(text)
}

// SeedFor derives a stable seed from the text itself, so re-running the
// pass over the same draft is reproducible without the caller tracking
// seeds.
func SeedFor(text string) int64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return int64(h.Sum64())
}

// IntensityFor maps a community's mean formality (0-10, lower is more
// casual) to a transform intensity. Casual communities get loosened
// harder.
func IntensityFor(formality float64) float64 {
	switch {
	case formality < 3.0:
		return 0.7
	case formality < 5.0:
		return 0.6
	case formality < 7.0:
		return 0.45
	case formality < 9.0:
		return 0.35
	default:
		return 0.25
	}
}

// stripArtifacts removes engine phrasing that survived the prompt:
// summary sentences, formal transitions, greeting openers, and
// hope-this-helps closers.
func stripArtifacts(text string) string {
	text = conclusionRe.ReplaceAllString(text, "")
	text = openerRe.ReplaceAllString(text, "")
	text = transitionRe.ReplaceAllString(text, "")
	text = greetingRe.ReplaceAllString(text, "")
	text = closerRe.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// lowercaseStarts lowercases some non-leading sentence starts. The first
// sentence always keeps its case.
func lowercaseStarts(text string, intensity float64, rng *rand.Rand) string {
	sentences := strings.Split(text, ". ")
	for i, s := range sentences {
		if i == 0 || s == "" {
			continue
		}
		r, _ := utf8.DecodeRuneInString(s)
		if unicode.IsUpper(r) && rng.Float64() < intensity*0.4 {
			sentences[i] = lowerFirst(s)
		}
	}
	return strings.Join(sentences, ". ")
}

// injectFillers prepends casual fillers to a few mid-post sentences.
// The first and last sentences are left alone.
func injectFillers(text string, intensity float64, rng *rand.Rand) string {
	sentences := splitSentences(text)
	if len(sentences) < 3 {
		return text
	}

	n := int(float64(len(sentences)) * intensity * 0.2)
	if n < 1 {
		n = 1
	}
	candidates := makeRange(1, len(sentences)-1)
	for _, idx := range sampleInts(rng, candidates, n) {
		s := sentences[idx]
		r, _ := utf8.DecodeRuneInString(s)
		filler := fillers[rng.Intn(len(fillers))]
		switch {
		case unicode.IsLower(r):
			sentences[idx] = filler + " " + s
		case unicode.IsUpper(r):
			sentences[idx] = filler + " " + lowerFirst(s)
		}
	}
	return strings.Join(sentences, " ")
}

// addSelfCorrection interrupts one sentence in the middle third of the
// post with a correction phrase. Fires probabilistically by intensity.
func addSelfCorrection(text string, intensity float64, rng *rand.Rand) string {
	if rng.Float64() > intensity*0.6 {
		return text
	}

	sentences := strings.Split(text, ". ")
	if len(sentences) < 4 {
		return text
	}

	candidates := makeRange(len(sentences)/3, 2*len(sentences)/3)
	if len(candidates) == 0 {
		return text
	}
	idx := candidates[rng.Intn(len(candidates))]
	correction := selfCorrections[rng.Intn(len(selfCorrections))]
	sentences[idx] = strings.TrimRight(sentences[idx], ".!?") + " -- " + correction

	return strings.Join(sentences, ". ")
}

// casualPunctuation swaps a formal semicolon or colon for a dash and
// occasionally trails a paragraph off without its final period.
func casualPunctuation(text string, intensity float64, rng *rand.Rand) string {
	if rng.Float64() < intensity*0.7 {
		text = strings.Replace(text, "; ", " -- ", 1)
	}

	if rng.Float64() < intensity*0.5 {
		text = replaceFirstProseColon(text)
	}

	if rng.Float64() < intensity*0.3 {
		paragraphs := strings.Split(text, "\n\n")
		if len(paragraphs) > 1 {
			idx := rng.Intn(len(paragraphs) - 1)
			paragraphs[idx] = strings.TrimRight(paragraphs[idx], ".")
			text = strings.Join(paragraphs, "\n\n")
		}
	}

	return text
}

var colonRe = regexp.MustCompile(`:\s+`)

// replaceFirstProseColon replaces the first colon that is not part of a
// URL and does not introduce a path or number.
func replaceFirstProseColon(text string) string {
	for _, loc := range colonRe.FindAllStringIndex(text, -1) {
		before := text[:loc[0]]
		if strings.HasSuffix(before, "http") || strings.HasSuffix(before, "https") {
			continue
		}
		if loc[1] < len(text) {
			next := text[loc[1]]
			if next == '/' || (next >= '0' && next <= '9') {
				continue
			}
		}
		return text[:loc[0]] + " -- " + text[loc[1]:]
	}
	return text
}

// casualParagraphStarts replaces formal transitions at paragraph starts
// with casual connectors. The first paragraph is left alone.
func casualParagraphStarts(text string, intensity float64, rng *rand.Rand) string {
	paragraphs := strings.Split(text, "\n\n")
	if len(paragraphs) < 2 {
		return text
	}

	n := int(float64(len(paragraphs)) * intensity * 0.3)
	if n < 1 {
		n = 1
	}
	if n > 2 {
		n = 2
	}
	candidates := makeRange(1, len(paragraphs))
	for _, idx := range sampleInts(rng, candidates, n) {
		para := strings.TrimSpace(paragraphs[idx])
		if para == "" {
			continue
		}
		connector := casualConnectors[rng.Intn(len(casualConnectors))]
		para = formalStarterRe.ReplaceAllString(para, "")
		if para != "" {
			paragraphs[idx] = connector + " " + lowerFirst(para)
		}
	}
	return strings.Join(paragraphs, "\n\n")
}

// looseEnding strips tidy closing sentences and trails the post off with
// a casual remark. Fires probabilistically by intensity.
func looseEnding(text string, intensity float64, rng *rand.Rand) string {
	if rng.Float64() > intensity*0.5 {
		return text
	}

	text = strings.TrimRight(text, " \t\n")
	for _, re := range tidyEndingRes {
		text = re.ReplaceAllString(text, "")
	}
	text = strings.TrimRight(text, " \t\n")

	trail := trailOffs[rng.Intn(len(trailOffs))]
	if !strings.HasSuffix(text, "?") && !strings.HasSuffix(text, "...") {
		text = strings.TrimSuffix(text, ".")
		text = text + "\n\n" + trail
	}
	return text
}

// splitSentences splits on terminal punctuation followed by whitespace,
// keeping the punctuation with its sentence.
func splitSentences(text string) []string {
	var out []string
	start := 0
	i := 0
	for i < len(text) {
		c := text[i]
		if c != '.' && c != '!' && c != '?' {
			i++
			continue
		}
		j := i + 1
		for j < len(text) && (text[j] == '.' || text[j] == '!' || text[j] == '?') {
			j++
		}
		if j < len(text) && isSpaceByte(text[j]) {
			out = append(out, text[start:j])
			for j < len(text) && isSpaceByte(text[j]) {
				j++
			}
			start = j
		}
		i = j
	}
	if start < len(text) {
		out = append(out, text[start:])
	}
	return out
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func makeRange(lo, hi int) []int {
	if hi <= lo {
		return nil
	}
	out := make([]int, 0, hi-lo)
	for i := lo; i < hi; i++ {
		out = append(out, i)
	}
	return out
}

// sampleInts picks n distinct values from candidates in random order.
func sampleInts(rng *rand.Rand, candidates []int, n int) []int {
	if n > len(candidates) {
		n = len(candidates)
	}
	out := make([]int, 0, n)
	for _, p := range rng.Perm(len(candidates))[:n] {
		out = append(out, candidates[p])
	}
	return out
}

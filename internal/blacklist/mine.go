package blacklist

import (
	"regexp"
	"sort"
	"strings"
)

// Candidate is a mined phrase ready for upsert as a system-derived pattern.
type Candidate struct {
	Pattern  string   `json:"pattern"`
	Category Category `json:"category"`

	// Posts is how many distinct source posts contained the phrase.
	Posts int `json:"posts"`
}

// ngram sizes mined from post text.
const (
	minGram = 2
	maxGram = 3
)

// Candidate caps keep one noisy batch from flooding the store.
const (
	maxCorpusCandidates = 20
	maxSingleCandidates = 10
)

var wordRegex = regexp.MustCompile(`[A-Za-z0-9][A-Za-z0-9'./:%-]*`)

// stopGrams are n-grams too generic to blacklist even when frequent.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"of": true, "to": true, "in": true, "on": true, "for": true, "with": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"i": true, "my": true, "me": true, "we": true, "our": true, "us": true,
	"you": true, "your": true, "it": true, "its": true, "this": true,
	"that": true, "at": true, "by": true, "as": true, "so": true, "if": true,
	"not": true, "no": true, "do": true, "did": true, "have": true, "has": true,
}

// MineCorpus extracts candidate blacklist patterns from a set of
// low-performing posts. A phrase qualifies when it appears in at least
// minPosts distinct posts, or immediately when a keyword family matches it.
// Results are normalized, deduplicated, and ordered by descending post
// count then lexically, so mining is deterministic.
func MineCorpus(texts []string, minPosts int) []Candidate {
	if minPosts < 1 {
		minPosts = 1
	}

	postCounts := make(map[string]int)
	for _, text := range texts {
		for phrase := range phrasesOf(text) {
			postCounts[phrase]++
		}
	}

	var out []Candidate
	for phrase, count := range postCounts {
		category, matched := Categorize(phrase)
		if count < minPosts && !matched {
			continue
		}
		if !matched && allStopWords(phrase) {
			continue
		}
		out = append(out, Candidate{Pattern: phrase, Category: category, Posts: count})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Posts != out[j].Posts {
			return out[i].Posts > out[j].Posts
		}
		return out[i].Pattern < out[j].Pattern
	})
	if len(out) > maxCorpusCandidates {
		out = out[:maxCorpusCandidates]
	}
	return out
}

// MineSingle extracts candidate patterns from one confirmed-bad post (a
// removal or shadowban event). With only one negative example the bar is:
// the phrase repeats within the text, or a keyword family matches it
// outright.
func MineSingle(text string) []Candidate {
	occurrences := make(map[string]int)
	for _, w := range windows(text) {
		occurrences[w]++
	}

	var out []Candidate
	for phrase, count := range occurrences {
		category, matched := Categorize(phrase)
		if count < 2 && !matched {
			continue
		}
		if !matched && allStopWords(phrase) {
			continue
		}
		out = append(out, Candidate{Pattern: phrase, Category: category, Posts: 1})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Pattern < out[j].Pattern })
	if len(out) > maxSingleCandidates {
		out = out[:maxSingleCandidates]
	}
	return out
}

// phrasesOf returns the distinct normalized n-grams of a text.
func phrasesOf(text string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range windows(text) {
		set[w] = true
	}
	return set
}

// windows returns every normalized n-gram window of the text, with
// repetition preserved.
func windows(text string) []string {
	words := wordRegex.FindAllString(strings.ToLower(text), -1)

	var out []string
	for n := minGram; n <= maxGram; n++ {
		for i := 0; i+n <= len(words); i++ {
			out = append(out, strings.Join(words[i:i+n], " "))
		}
	}
	return out
}

func allStopWords(phrase string) bool {
	for _, w := range strings.Fields(phrase) {
		if !stopWords[w] {
			return false
		}
	}
	return true
}

// Package validate checks draft text against forbidden patterns and
// known machine-writing tells. It is the post-generation quality gate.
package validate

import (
	"regexp"
	"strings"

	"github.com/quenchwood/blend/internal/blacklist"
	"github.com/quenchwood/blend/internal/post"
)

const maxExcerptLen = 100

// Violation records one forbidden-pattern match in a draft.
type Violation struct {
	Category blacklist.Category `json:"category"`
	Pattern  string             `json:"pattern"`
	Excerpt  string             `json:"excerpt"`
}

// Tell records one detected machine-writing pattern.
type Tell struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Excerpt     string `json:"excerpt"`
	Severity    string `json:"severity"`
}

// Result is the outcome of validating one draft.
type Result struct {
	Passed     bool        `json:"passed"`
	Violations []Violation `json:"violations"`
	AITells    []Tell      `json:"ai_tells"`

	// LinkDensity is the fraction of tokens that are URL-like, 0-1,
	// computed the same way the scorer computes it.
	LinkDensity float64 `json:"link_density"`

	// LinksPerParagraph is URLs per blank-line-separated paragraph,
	// unbounded. Advisory, like the tells.
	LinksPerParagraph float64  `json:"links_per_paragraph"`
	JargonHits        []string `json:"jargon_hits,omitempty"`
}

type tellPattern struct {
	re          *regexp.Regexp
	category    string
	description string
	severity    string
}

// Writing patterns language models produce that people rarely do.
var tellPatterns = []tellPattern{
	{
		re:          regexp.MustCompile(`(?i)\b(furthermore|moreover|additionally|in conclusion|that being said|with that in mind|it's worth noting|needless to say)\b`),
		category:    "formal-transition",
		description: "Formal transition phrase",
		severity:    "medium",
	},
	{
		re:          regexp.MustCompile(`(?i)\b(i'd be happy to|great question|let me share|here's the thing|without further ado|in today's world)\b`),
		category:    "assistant-phrase",
		description: "Assistant-style phrase",
		severity:    "high",
	},
	{
		re:          regexp.MustCompile(`(?i)\b(game-changer|cutting-edge|best-in-class|revolutionary|innovative solution|robust|streamline|leverage|optimize)\b`),
		category:    "corporate-buzzword",
		description: "Corporate/marketing buzzword",
		severity:    "high",
	},
	{
		re:          regexp.MustCompile(`(?m)(?:^|\n)[ \t]*[-*][ \t]+.+(?:\n[ \t]*[-*][ \t]+.+){2,}`),
		category:    "list-structure",
		description: "Bullet point list (uncommon in casual posts)",
		severity:    "medium",
	},
	{
		re:          regexp.MustCompile(`(?im)^(?:hey everyone|hi everyone|hello everyone|hey folks|hi folks|greetings)[!,.]`),
		category:    "generic-greeting",
		description: "Generic greeting opening",
		severity:    "medium",
	},
	{
		re:          regexp.MustCompile(`(?m)(?:^|\.[ \t]+)So,\s`),
		category:    "so-discourse",
		description: `"So," as discourse marker`,
		severity:    "medium",
	},
}

// Check validates text against the community's forbidden patterns and
// scans for machine-writing tells. Stored patterns are treated as
// case-insensitive regexes; ones that fail to compile are skipped rather
// than failing the whole check. Empty text passes with zero findings.
func Check(text string, patterns []blacklist.Pattern) Result {
	r := Result{
		Violations:        checkPatterns(text, patterns),
		AITells:           detectTells(text),
		LinkDensity:       post.LinkDensity(text),
		LinksPerParagraph: linksPerParagraph(text),
		JargonHits:        post.JargonHits(text),
	}
	r.Passed = len(r.Violations) == 0
	return r
}

func checkPatterns(text string, patterns []blacklist.Pattern) []Violation {
	var out []Violation
	for _, p := range patterns {
		re, err := regexp.Compile(`(?i)` + p.Pattern)
		if err != nil {
			continue
		}
		for _, m := range re.FindAllString(text, -1) {
			out = append(out, Violation{
				Category: p.Category,
				Pattern:  p.Pattern,
				Excerpt:  excerpt(m),
			})
		}
	}
	return out
}

func detectTells(text string) []Tell {
	var out []Tell
	for _, tp := range tellPatterns {
		for _, m := range tp.re.FindAllString(text, -1) {
			out = append(out, Tell{
				Category:    tp.category,
				Description: tp.description,
				Excerpt:     excerpt(strings.TrimSpace(m)),
				Severity:    tp.severity,
			})
		}
	}
	return out
}

// linksPerParagraph counts URLs per paragraph, where paragraphs are
// blocks separated by blank lines.
func linksPerParagraph(text string) float64 {
	paragraphs := 0
	for _, p := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	if paragraphs == 0 {
		return 0
	}
	links := len(post.ExtractLinks(text))
	return float64(links) / float64(paragraphs)
}

func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= maxExcerptLen {
		return s
	}
	return string(runes[:maxExcerptLen])
}

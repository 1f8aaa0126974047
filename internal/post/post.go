package post

import (
	"fmt"
	"regexp"
	"strings"
)

// Archetype is the structural category of a post. It classifies historical
// posts and selects a generation style. The set is closed: gating logic
// switches over it exhaustively.
type Archetype string

const (
	ArchetypeJourney         Archetype = "Journey"
	ArchetypeProblemSolution Archetype = "ProblemSolution"
	ArchetypeFeedback        Archetype = "Feedback"
)

// ParseArchetype validates an archetype label. Matching is case-insensitive.
func ParseArchetype(s string) (Archetype, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "journey":
		return ArchetypeJourney, nil
	case "problemsolution", "problem-solution", "problem_solution":
		return ArchetypeProblemSolution, nil
	case "feedback":
		return ArchetypeFeedback, nil
	}
	return "", fmt.Errorf("unknown archetype %q (want Journey, ProblemSolution, or Feedback)", s)
}

// AccountStatus is the maturity of the posting account. New accounts run in
// warm-up mode, which overrides every other gating rule.
type AccountStatus string

const (
	AccountNew         AccountStatus = "New"
	AccountEstablished AccountStatus = "Established"
)

// ParseAccountStatus validates an account status label.
func ParseAccountStatus(s string) (AccountStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "new":
		return AccountNew, nil
	case "established":
		return AccountEstablished, nil
	}
	return "", fmt.Errorf("unknown account status %q (want New or Established)", s)
}

// RawPost is a community-authored post as delivered by the ingestion
// collaborator. Immutable once stored.
type RawPost struct {
	// ID is a ULID assigned at ingestion
	ID string `json:"id"`

	// Community is the normalized community identifier
	Community string `json:"community"`

	// Text is the post body (markdown)
	Text string `json:"text"`

	// Archetype is the structural label assigned upstream
	Archetype Archetype `json:"archetype"`

	// UpvoteRatio is the author-engagement upvote fraction in [0,1]
	UpvoteRatio float64 `json:"upvote_ratio"`

	// CommentCount is the number of comments at collection time
	CommentCount int `json:"comment_count"`

	// CollectedAt is the Unix timestamp of ingestion
	CollectedAt int64 `json:"collected_at"`
}

// Scored is the feature vector derived from a post's text. It is a pure
// function of the text: never persisted independently, recomputed whenever
// needed.
type Scored struct {
	// Vulnerability measures personal/authentic framing, 0-10
	Vulnerability float64 `json:"vulnerability_score"`

	// Rhythm measures conversational sentence cadence, 0-10
	Rhythm float64 `json:"rhythm_score"`

	// Formality estimates lexical/structural register, 0-10
	Formality float64 `json:"formality_score"`

	// Jargon is the marketing-vocabulary penalty, 0-10 (higher is worse)
	Jargon float64 `json:"jargon_score"`

	// LinkPenalty is the URL-count penalty, 0-10 (higher is worse)
	LinkPenalty float64 `json:"link_penalty"`

	// LinkDensity is the fraction of tokens that are URL-like, 0-1
	LinkDensity float64 `json:"link_density"`

	// Success is the weighted scalar score, 0-10
	Success float64 `json:"success_score"`

	// Tone is the per-post tone classification
	Tone Tone `json:"tone"`

	// AvgSentenceLen is the mean words-per-sentence
	AvgSentenceLen float64 `json:"avg_sentence_length"`

	// SentenceLenStd is the sample standard deviation of sentence lengths
	SentenceLenStd float64 `json:"sentence_length_std"`
}

// whitespaceRegex matches one or more whitespace characters
var whitespaceRegex = regexp.MustCompile(`\s+`)

// Normalize normalizes an identifier or pattern string:
// 1. Trim leading/trailing whitespace
// 2. Lowercase
// 3. Collapse internal whitespace to single spaces
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = whitespaceRegex.ReplaceAllString(s, " ")
	return s
}

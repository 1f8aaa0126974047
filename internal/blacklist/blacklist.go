// Package blacklist holds forbidden-pattern records and the heuristics that
// produce them: keyword-family categorization and repeated-phrase mining.
// Pattern state only grows from confirmed failures (removals) and from
// low-quartile correlation during aggregation, never from gating refusals.
package blacklist

import (
	"fmt"
	"strings"

	"github.com/quenchwood/blend/internal/post"
)

// GlobalCommunity is the community id for patterns that apply everywhere.
const GlobalCommunity = "global"

// Category classifies why a pattern is forbidden.
type Category string

const (
	CategoryPromotional     Category = "Promotional"
	CategorySelfReferential Category = "Self-referential"
	CategoryLink            Category = "Link"
	CategoryLowEffort       Category = "LowEffort"
	CategorySpam            Category = "Spam"
	CategoryOffTopic        Category = "OffTopic"
)

// Categories lists every category in presentation order.
var Categories = []Category{
	CategoryPromotional,
	CategorySelfReferential,
	CategoryLink,
	CategoryLowEffort,
	CategorySpam,
	CategoryOffTopic,
}

// ParseCategory validates a category label. Matching is case-insensitive
// and tolerates the hyphenated and underscored spellings.
func ParseCategory(s string) (Category, error) {
	key := strings.ReplaceAll(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", ""), "_", "")
	for _, c := range Categories {
		if key == strings.ReplaceAll(strings.ToLower(string(c)), "-", "") {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown category %q", s)
}

// Source records how a pattern entered the store. System-derived patterns
// are immutable: normal mutation paths refuse to delete them.
type Source string

const (
	SourceSystem Source = "system"
	SourceUser   Source = "user"
)

// Pattern is a forbidden phrase or regex associated with a community.
type Pattern struct {
	// ID is a ULID assigned at insert
	ID string `json:"id"`

	// Community is the owning community id, or "global"
	Community string `json:"community"`

	// Pattern is the normalized phrase or regex
	Pattern string `json:"pattern"`

	// Category is the keyword-family classification
	Category Category `json:"category"`

	// Source is "system" (derived) or "user" (manually added)
	Source Source `json:"source"`

	// CreatedAt is the Unix timestamp of first insert
	CreatedAt int64 `json:"created_at"`
}

// NormalizePattern canonicalizes a pattern for the (community, pattern)
// uniqueness key: trimmed, lowercased, inner whitespace collapsed.
func NormalizePattern(s string) string {
	return post.Normalize(s)
}

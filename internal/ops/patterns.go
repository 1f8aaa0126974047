package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/quenchwood/blend/internal/blacklist"
	"github.com/quenchwood/blend/internal/db"
	"github.com/quenchwood/blend/internal/errors"
)

// PatternListInput contains parameters for the PatternList operation.
type PatternListInput struct {
	Community     string `json:"community"`
	IncludeGlobal bool   `json:"include_global,omitempty"`
}

// PatternListOutput contains the result of the PatternList operation.
type PatternListOutput struct {
	Community string              `json:"community"`
	Patterns  []blacklist.Pattern `json:"patterns"`
	Total     int                 `json:"total"`
}

// PatternList returns a community's blacklist patterns.
func PatternList(ctx context.Context, database *sql.DB, input PatternListInput) (*PatternListOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	communityNorm, err := normalizeCommunity(input.Community)
	if err != nil {
		return nil, err
	}
	patterns, err := db.ListPatterns(database, communityNorm, input.IncludeGlobal)
	if err != nil {
		return nil, err
	}
	return &PatternListOutput{Community: communityNorm, Patterns: patterns, Total: len(patterns)}, nil
}

// PatternAddInput contains parameters for the PatternAdd operation.
type PatternAddInput struct {
	Community string `json:"community"`
	Pattern   string `json:"pattern"`
	Category  string `json:"category,omitempty"`
}

// PatternAddOutput contains the result of the PatternAdd operation.
type PatternAddOutput struct {
	Pattern  blacklist.Pattern `json:"pattern"`
	Inserted bool              `json:"inserted"`
}

// PatternAdd stores a user-supplied pattern. Without an explicit category
// the pattern is categorized by the keyword families, falling back to
// low-effort. Adding a pattern that already exists is a no-op.
func PatternAdd(ctx context.Context, database *sql.DB, input PatternAddInput) (*PatternAddOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	communityNorm, err := normalizeCommunity(input.Community)
	if err != nil {
		return nil, err
	}
	patternNorm := blacklist.NormalizePattern(input.Pattern)
	if patternNorm == "" {
		return nil, errors.NewInvalidRequest("pattern must not be empty")
	}

	var category blacklist.Category
	if input.Category != "" {
		category, err = blacklist.ParseCategory(input.Category)
		if err != nil {
			return nil, errors.NewInvalidRequest(err.Error())
		}
	} else {
		category, _ = blacklist.Categorize(patternNorm)
	}

	id, err := generateULID()
	if err != nil {
		return nil, errors.NewInternal(err)
	}
	p := blacklist.Pattern{
		ID:        id,
		Community: communityNorm,
		Pattern:   patternNorm,
		Category:  category,
		Source:    blacklist.SourceUser,
		CreatedAt: time.Now().Unix(),
	}
	inserted, err := db.UpsertPattern(database, &p)
	if err != nil {
		return nil, err
	}
	return &PatternAddOutput{Pattern: p, Inserted: inserted}, nil
}

// PatternRemoveInput contains parameters for the PatternRemove operation.
type PatternRemoveInput struct {
	Community string `json:"community"`
	Pattern   string `json:"pattern"`
}

// PatternRemoveOutput contains the result of the PatternRemove operation.
type PatternRemoveOutput struct {
	Community string `json:"community"`
	Pattern   string `json:"pattern"`
	Removed   bool   `json:"removed"`
}

// PatternRemove deletes a user-added pattern. System-derived patterns
// cannot be removed.
func PatternRemove(ctx context.Context, database *sql.DB, input PatternRemoveInput) (*PatternRemoveOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	communityNorm, err := normalizeCommunity(input.Community)
	if err != nil {
		return nil, err
	}
	patternNorm := blacklist.NormalizePattern(input.Pattern)
	if patternNorm == "" {
		return nil, errors.NewInvalidRequest("pattern must not be empty")
	}
	if err := db.DeletePattern(database, communityNorm, patternNorm); err != nil {
		return nil, err
	}
	return &PatternRemoveOutput{Community: communityNorm, Pattern: patternNorm, Removed: true}, nil
}

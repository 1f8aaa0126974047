package ops

import (
	"context"
	"database/sql"

	"github.com/quenchwood/blend/internal/db"
	"github.com/quenchwood/blend/internal/validate"
)

// ValidateInput contains parameters for the Validate operation.
type ValidateInput struct {
	Community string `json:"community"`
	Text      string `json:"text"`
}

// ValidateOutput contains the result of the Validate operation.
type ValidateOutput struct {
	Community string          `json:"community"`
	Result    validate.Result `json:"result"`
}

// Validate checks draft text against the community's blacklist, the
// global blacklist, and the machine-writing tells. Total on any text:
// empty input yields a passing, zero-finding result.
func Validate(ctx context.Context, database *sql.DB, input ValidateInput) (*ValidateOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	communityNorm, err := normalizeCommunity(input.Community)
	if err != nil {
		return nil, err
	}

	patterns, err := db.ListPatterns(database, communityNorm, true)
	if err != nil {
		return nil, err
	}
	result := validate.Check(input.Text, patterns)
	return &ValidateOutput{Community: communityNorm, Result: result}, nil
}

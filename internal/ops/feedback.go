package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/quenchwood/blend/internal/blacklist"
	"github.com/quenchwood/blend/internal/db"
	"github.com/quenchwood/blend/internal/errors"
)

// FeedbackInput contains parameters for the Feedback operation.
type FeedbackInput struct {
	Community string `json:"community"`
	Text      string `json:"text"`
}

// FeedbackOutput contains the result of the Feedback operation.
type FeedbackOutput struct {
	Community string              `json:"community"`
	Added     []blacklist.Pattern `json:"added"`
	Skipped   int                 `json:"skipped"`
}

// Feedback mines a rejected or heavily edited draft for phrases worth
// banning and folds them into the community blacklist. Submitting the
// same draft twice adds nothing the second time.
func Feedback(ctx context.Context, database *sql.DB, input FeedbackInput) (*FeedbackOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	communityNorm, err := normalizeCommunity(input.Community)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Text) == "" {
		return nil, errors.NewInvalidRequest("text must not be empty")
	}

	candidates := blacklist.MineSingle(input.Text)
	out := &FeedbackOutput{Community: communityNorm}
	now := time.Now().Unix()
	for _, c := range candidates {
		id, err := generateULID()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		p := blacklist.Pattern{
			ID:        id,
			Community: communityNorm,
			Pattern:   blacklist.NormalizePattern(c.Pattern),
			Category:  c.Category,
			Source:    blacklist.SourceSystem,
			CreatedAt: now,
		}
		inserted, err := db.UpsertPattern(database, &p)
		if err != nil {
			return nil, err
		}
		if inserted {
			out.Added = append(out.Added, p)
		} else {
			out.Skipped++
		}
	}
	return out, nil
}

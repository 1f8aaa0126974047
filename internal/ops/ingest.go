package ops

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/quenchwood/blend/internal/db"
	"github.com/quenchwood/blend/internal/errors"
	"github.com/quenchwood/blend/internal/post"
)

// IngestPost is one collected post in an ingest batch.
type IngestPost struct {
	Text         string  `json:"text"`
	Archetype    string  `json:"archetype"`
	UpvoteRatio  float64 `json:"upvote_ratio"`
	CommentCount int     `json:"comment_count"`
	CollectedAt  int64   `json:"collected_at,omitempty"`
}

// IngestInput contains parameters for the Ingest operation.
type IngestInput struct {
	Community string       `json:"community"`
	Posts     []IngestPost `json:"posts"`
}

// IngestOutput contains the result of the Ingest operation.
type IngestOutput struct {
	Community string   `json:"community"`
	IDs       []string `json:"ids"`
	Stored    int      `json:"stored"`
}

// Ingest stores a batch of collected posts for a community. The whole
// batch is validated before anything is written; a bad entry rejects the
// batch.
func Ingest(ctx context.Context, database *sql.DB, input IngestInput) (*IngestOutput, error) {
	communityNorm, err := normalizeCommunity(input.Community)
	if err != nil {
		return nil, err
	}
	if len(input.Posts) == 0 {
		return nil, errors.NewInvalidRequest("posts must not be empty")
	}
	if len(input.Posts) > MaxIngestBatch {
		return nil, errors.NewInvalidRequest("posts batch exceeds limit")
	}

	parsed := make([]post.RawPost, 0, len(input.Posts))
	now := time.Now().Unix()
	for _, in := range input.Posts {
		if strings.TrimSpace(in.Text) == "" {
			return nil, errors.NewInvalidRequest("post text must not be empty")
		}
		archetype, err := post.ParseArchetype(in.Archetype)
		if err != nil {
			return nil, errors.NewInvalidRequest(err.Error())
		}
		if in.UpvoteRatio < 0 || in.UpvoteRatio > 1 {
			return nil, errors.NewInvalidRequest("upvote_ratio must be in [0,1]")
		}
		if in.CommentCount < 0 {
			return nil, errors.NewInvalidRequest("comment_count must not be negative")
		}
		collectedAt := in.CollectedAt
		if collectedAt == 0 {
			collectedAt = now
		}
		id, err := generateULID()
		if err != nil {
			return nil, errors.NewInternal(err)
		}
		parsed = append(parsed, post.RawPost{
			ID:           id,
			Community:    communityNorm,
			Text:         in.Text,
			Archetype:    archetype,
			UpvoteRatio:  in.UpvoteRatio,
			CommentCount: in.CommentCount,
			CollectedAt:  collectedAt,
		})
	}

	out := &IngestOutput{Community: communityNorm, IDs: make([]string, 0, len(parsed))}
	for i := range parsed {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := db.InsertPost(database, input.Community, &parsed[i]); err != nil {
			return nil, err
		}
		out.IDs = append(out.IDs, parsed[i].ID)
		out.Stored++
	}
	return out, nil
}

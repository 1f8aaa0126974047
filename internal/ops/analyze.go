package ops

import (
	"context"
	"database/sql"
	"time"

	"github.com/quenchwood/blend/internal/blacklist"
	"github.com/quenchwood/blend/internal/config"
	"github.com/quenchwood/blend/internal/db"
	"github.com/quenchwood/blend/internal/post"
	"github.com/quenchwood/blend/internal/profile"
)

// AnalyzeInput contains parameters for the Analyze operation.
type AnalyzeInput struct {
	Community string `json:"community"`
}

// AnalyzeOutput contains the result of the Analyze operation.
type AnalyzeOutput struct {
	Profile     *profile.Profile `json:"profile"`
	NewPatterns int              `json:"new_patterns"`
	Candidates  int              `json:"candidates"`
}

// Analyze scores every stored post in a community, aggregates them into
// a fresh profile, and folds candidate patterns mined from the bottom
// quartile into the blacklist. The previous profile is replaced wholesale;
// an undersized sample fails before anything is written.
func Analyze(ctx context.Context, database *sql.DB, cfg *config.Config, input AnalyzeInput) (*AnalyzeOutput, error) {
	communityNorm, err := normalizeCommunity(input.Community)
	if err != nil {
		return nil, err
	}

	posts, err := db.ListPosts(database, communityNorm, 0)
	if err != nil {
		return nil, err
	}

	samples := make([]profile.Sample, len(posts))
	for i, p := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		samples[i] = profile.Sample{Post: p, Scores: post.Score(p.Text)}
	}

	prof, candidates, err := profile.Aggregate(communityNorm, samples, cfg.MinSampleSize, cfg.MinPatternPosts)
	if err != nil {
		return nil, err
	}

	if err := db.ReplaceProfile(database, prof); err != nil {
		return nil, err
	}

	added, err := upsertCandidates(database, communityNorm, candidates)
	if err != nil {
		return nil, err
	}

	return &AnalyzeOutput{
		Profile:     prof,
		NewPatterns: added,
		Candidates:  len(candidates),
	}, nil
}

// upsertCandidates inserts mined candidates as system patterns. Already
// known (community, pattern) pairs are left untouched, so re-analysis is
// idempotent with respect to the blacklist.
func upsertCandidates(database *sql.DB, communityNorm string, candidates []blacklist.Candidate) (int, error) {
	added := 0
	now := time.Now().Unix()
	for _, c := range candidates {
		id, err := generateULID()
		if err != nil {
			return added, err
		}
		inserted, err := db.UpsertPattern(database, &blacklist.Pattern{
			ID:        id,
			Community: communityNorm,
			Pattern:   blacklist.NormalizePattern(c.Pattern),
			Category:  c.Category,
			Source:    blacklist.SourceSystem,
			CreatedAt: now,
		})
		if err != nil {
			return added, err
		}
		if inserted {
			added++
		}
	}
	return added, nil
}

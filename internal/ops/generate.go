package ops

import (
	"context"
	"database/sql"
	"strings"

	"github.com/quenchwood/blend/internal/conditioning"
	"github.com/quenchwood/blend/internal/config"
	"github.com/quenchwood/blend/internal/db"
	"github.com/quenchwood/blend/internal/errors"
	"github.com/quenchwood/blend/internal/gating"
	"github.com/quenchwood/blend/internal/gen"
	"github.com/quenchwood/blend/internal/humanize"
	"github.com/quenchwood/blend/internal/post"
	"github.com/quenchwood/blend/internal/validate"
)

// Drafter produces a draft from a rendered prompt pair. *gen.Client
// satisfies it; tests substitute stubs.
type Drafter interface {
	Generate(ctx context.Context, system, user string) (gen.Draft, error)
}

// GenerateInput contains parameters for the Generate operation.
type GenerateInput struct {
	Community     string `json:"community"`
	Topic         string `json:"topic"`
	Archetype     string `json:"archetype"`
	AccountStatus string `json:"account_status"`
	DryRun        bool   `json:"dry_run,omitempty"`

	// Humanize runs the drafted text through the loosening transforms
	// before validation. Intensity follows the community's formality;
	// the pass is seeded from the draft so it is reproducible.
	Humanize bool `json:"humanize,omitempty"`
}

// GenerateOutput contains the result of the Generate operation.
type GenerateOutput struct {
	Spec       conditioning.Spec `json:"spec"`
	System     string            `json:"system"`
	User       string            `json:"user"`
	Draft      *gen.Draft        `json:"draft,omitempty"`
	Validation *validate.Result  `json:"validation,omitempty"`
}

// Generate runs the full drafting pipeline: gate the request, compile a
// conditioning spec from the profile and blacklist, render prompts, call
// the generation engine, and validate the draft against the same
// blacklist. With Humanize set the draft is loosened by the humanize
// transforms before validation, so the check covers what would actually
// be posted. With DryRun set the engine is skipped and the compiled
// spec plus rendered prompts are returned as-is.
func Generate(ctx context.Context, database *sql.DB, cfg *config.Config, drafter Drafter, input GenerateInput) (*GenerateOutput, error) {
	if strings.TrimSpace(input.Topic) == "" {
		return nil, errors.NewInvalidRequest("topic must not be empty")
	}
	communityNorm, err := normalizeCommunity(input.Community)
	if err != nil {
		return nil, err
	}
	archetype, err := post.ParseArchetype(input.Archetype)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}
	status, err := post.ParseAccountStatus(input.AccountStatus)
	if err != nil {
		return nil, errors.NewInvalidRequest(err.Error())
	}

	prof, _, err := loadProfile(database, communityNorm)
	if err != nil {
		return nil, err
	}
	patterns, err := db.ListPatterns(database, communityNorm, true)
	if err != nil {
		return nil, err
	}

	decision := gating.Gate(prof, archetype, status)
	spec := conditioning.Compile(communityNorm, input.Topic, decision, prof, patterns, cfg.MaxPatternsPerCategory)
	system, user := conditioning.Render(spec)

	out := &GenerateOutput{Spec: spec, System: system, User: user}
	if input.DryRun {
		return out, nil
	}
	if drafter == nil {
		return nil, errors.NewInvalidRequest("generation engine not configured; use dry_run to inspect the compiled prompt")
	}

	draft, err := drafter.Generate(ctx, system, user)
	if err != nil {
		return nil, err
	}
	if input.Humanize {
		intensity := humanize.DefaultIntensity
		if prof != nil {
			intensity = humanize.IntensityFor(prof.AvgFormality)
		}
		draft.Text = humanize.Apply(draft.Text, intensity, humanize.SeedFor(draft.Text))
	}
	result := validate.Check(draft.Text, patterns)

	out.Draft = &draft
	out.Validation = &result
	return out, nil
}

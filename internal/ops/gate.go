package ops

import (
	"context"
	"database/sql"

	"github.com/quenchwood/blend/internal/db"
	"github.com/quenchwood/blend/internal/errors"
	"github.com/quenchwood/blend/internal/gating"
	"github.com/quenchwood/blend/internal/post"
	"github.com/quenchwood/blend/internal/profile"
)

// GateInput contains parameters for the Gate operation.
type GateInput struct {
	Community     string `json:"community"`
	Archetype     string `json:"archetype"`
	AccountStatus string `json:"account_status"`
}

// GateOutput contains the result of the Gate operation.
type GateOutput struct {
	Community       string          `json:"community"`
	Decision        gating.Decision `json:"decision"`
	ProfileKnown    bool            `json:"profile_known"`
	Sensitivity     float64         `json:"sensitivity"`
	SensitivityTier string          `json:"sensitivity_tier"`
}

// Gate resolves the archetype and constraints for a draft request. A
// community without a profile gates against generic defaults rather than
// failing.
func Gate(ctx context.Context, database *sql.DB, input GateInput) (*GateOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
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

	prof, known, err := loadProfile(database, communityNorm)
	if err != nil {
		return nil, err
	}

	decision := gating.Gate(prof, archetype, status)
	sensitivity := profile.GenericSensitivity
	if known {
		sensitivity = prof.Sensitivity
	}
	return &GateOutput{
		Community:       communityNorm,
		Decision:        decision,
		ProfileKnown:    known,
		Sensitivity:     sensitivity,
		SensitivityTier: profile.SensitivityTier(sensitivity),
	}, nil
}

// loadProfile fetches a profile, mapping NOT_FOUND to (nil, false).
func loadProfile(database *sql.DB, communityNorm string) (*profile.Profile, bool, error) {
	prof, err := db.GetProfile(database, communityNorm)
	if err != nil {
		if errors.Is(err, errors.ErrNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return prof, true, nil
}

package ops

import (
	"context"
	"database/sql"

	"github.com/quenchwood/blend/internal/db"
	"github.com/quenchwood/blend/internal/profile"
)

// ProfileGetInput contains parameters for the ProfileGet operation.
type ProfileGetInput struct {
	Community string `json:"community"`
}

// ProfileGetOutput contains the result of the ProfileGet operation.
type ProfileGetOutput struct {
	Profile *profile.Profile `json:"profile"`
	Tier    string           `json:"tier"`
}

// ProfileGet retrieves a community's stored profile.
func ProfileGet(ctx context.Context, database *sql.DB, input ProfileGetInput) (*ProfileGetOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	communityNorm, err := normalizeCommunity(input.Community)
	if err != nil {
		return nil, err
	}
	prof, err := db.GetProfile(database, communityNorm)
	if err != nil {
		return nil, err
	}
	return &ProfileGetOutput{
		Profile: prof,
		Tier:    profile.SensitivityTier(prof.Sensitivity),
	}, nil
}

// ProfileListOutput contains the result of the ProfileList operation.
type ProfileListOutput struct {
	Profiles []profile.Profile `json:"profiles"`
	Total    int               `json:"total"`
}

// ProfileList returns every stored profile, most recently updated first.
func ProfileList(ctx context.Context, database *sql.DB) (*ProfileListOutput, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	profiles, err := db.ListProfiles(database)
	if err != nil {
		return nil, err
	}
	return &ProfileListOutput{Profiles: profiles, Total: len(profiles)}, nil
}

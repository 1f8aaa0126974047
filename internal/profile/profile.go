// Package profile aggregates scored posts into per-community behavioral
// profiles. A profile is rebuilt wholesale on every aggregation run; there
// is no incremental blending.
package profile

import (
	"github.com/quenchwood/blend/internal/post"
)

// Profile is the behavioral fingerprint of one community, owned exclusively
// by the aggregator and read by gating and conditioning.
type Profile struct {
	// Community is the normalized community id
	Community string `json:"community"`

	// SampleSize is the number of scored posts behind this profile
	SampleSize int `json:"sample_size"`

	// Sensitivity is the 1-10 sensitivity index: how sharply the community
	// punishes promotional framing
	Sensitivity float64 `json:"sensitivity_index"`

	// DominantTone is the modal per-post tone
	DominantTone post.Tone `json:"dominant_tone"`

	// ArchetypeDist maps archetype to its fraction of the sample; fractions
	// sum to 1 within floating-point tolerance
	ArchetypeDist map[post.Archetype]float64 `json:"archetype_distribution"`

	// AvgFormality is the mean formality score, 0-10
	AvgFormality float64 `json:"avg_formality"`

	// AvgSentenceLen is the mean words-per-sentence across the sample
	AvgSentenceLen float64 `json:"avg_sentence_length"`

	// RhythmDesc is a human-readable cadence descriptor
	RhythmDesc string `json:"rhythm_descriptor"`

	// TopHooks are opening sentences of the best-scoring posts
	TopHooks []string `json:"top_hooks,omitempty"`

	// CreatedAt / UpdatedAt are Unix timestamps
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// Generic sensitivity used whenever no profile exists for a community.
const GenericSensitivity = 5.0

// Generic returns the fixed default profile used when a community has no
// historical data. The rest of the pipeline behaves identically whether or
// not a real profile exists; absence of data degrades gracefully, it never
// errors.
func Generic(community string) *Profile {
	return &Profile{
		Community:      community,
		SampleSize:     0,
		Sensitivity:    GenericSensitivity,
		DominantTone:   post.ToneNeutral,
		ArchetypeDist:  map[post.Archetype]float64{},
		AvgFormality:   5.0,
		AvgSentenceLen: 15.0,
		RhythmDesc:     "mixed sentence lengths, conversational",
	}
}

// SensitivityTier labels an index value the way reporting surfaces expect.
func SensitivityTier(sensitivity float64) string {
	switch {
	case sensitivity <= 3.0:
		return "low"
	case sensitivity <= 5.0:
		return "moderate"
	case sensitivity <= 7.5:
		return "high"
	default:
		return "extreme"
	}
}

// rhythmDescriptor maps mean sentence length to a cadence label.
func rhythmDescriptor(avgSentenceLen float64) string {
	switch {
	case avgSentenceLen < 8:
		return "short, punchy sentences"
	case avgSentenceLen <= 18:
		return "mixed sentence lengths, conversational"
	default:
		return "long-form, slower cadence"
	}
}

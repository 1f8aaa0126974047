// Package gating decides which archetype a generation request may use and
// which constraints apply, based on community sensitivity and account
// maturity. It is a pure function: no I/O, no failure path.
package gating

import (
	"fmt"

	"github.com/quenchwood/blend/internal/post"
	"github.com/quenchwood/blend/internal/profile"
)

// ForceThreshold is the sensitivity index above which non-Feedback
// archetypes are blocked outright. Part of the gating contract, not tunable
// at runtime.
const ForceThreshold = 7.5

// Secondary sensitivity cut points for advisory constraints.
const (
	elevatedThreshold = 5.0
	lowThreshold      = 3.0
)

// Decision is the gating outcome. When Forced is true the requested
// archetype was overridden; callers must surface that to the user —
// silently ignoring it is a correctness bug.
type Decision struct {
	// FinalArchetype is the archetype generation will actually use
	FinalArchetype post.Archetype `json:"final_archetype"`

	// Constraints are ordered instruction strings for the conditioning spec
	Constraints []string `json:"constraints"`

	// Forced reports whether a safety rule overrode the request
	Forced bool `json:"forced"`

	// Reason explains the override when Forced is true
	Reason string `json:"reason,omitempty"`
}

// Gate evaluates the decision tree in fixed priority order; the first
// matching rule wins. Rules 1 and 2 are safety overrides and always take
// precedence over the requested archetype. A nil profile uses the generic
// default; logging that fact is the caller's job, not this function's.
func Gate(p *profile.Profile, requested post.Archetype, status post.AccountStatus) Decision {
	if p == nil {
		p = profile.Generic("")
	}

	// Rule 1: new accounts run in warm-up mode, overriding everything.
	if status == post.AccountNew {
		return Decision{
			FinalArchetype: post.ArchetypeFeedback,
			Constraints:    []string{"max_vulnerability", "zero_links"},
			Forced:         true,
			Reason:         "new accounts must use the Feedback archetype (warm-up mode)",
		}
	}

	// Rule 2: extreme-sensitivity communities only accept Feedback.
	if p.Sensitivity > ForceThreshold && requested != post.ArchetypeFeedback {
		return Decision{
			FinalArchetype: post.ArchetypeFeedback,
			Constraints:    []string{"zero_links", "max_vulnerability", "no_promotional_language"},
			Forced:         true,
			Reason: fmt.Sprintf("sensitivity index %.1f exceeds %.1f: only Feedback is allowed",
				p.Sensitivity, ForceThreshold),
		}
	}

	var constraints []string
	switch requested {
	case post.ArchetypeProblemSolution:
		constraints = []string{
			"pain_to_solution_ratio:90/10",
			"no_greeting",
			"product_mention_only_in_final_decile",
		}
	case post.ArchetypeJourney:
		constraints = []string{
			"technical_diary_style",
			"include_milestones_or_metrics",
		}
	case post.ArchetypeFeedback:
		constraints = []string{
			"invert_authority",
			"solicit_critique",
		}
		// Redundant with rule 2 for real profiles; kept for callers that
		// construct profiles directly with an extreme index.
		if p.Sensitivity > ForceThreshold {
			constraints = append(constraints, "zero_links")
		}
	default:
		return Decision{
			FinalArchetype: requested,
			Constraints:    append([]string{"standard_authenticity"}, tierConstraints(p.Sensitivity)...),
		}
	}

	return Decision{
		FinalArchetype: requested,
		Constraints:    append(constraints, tierConstraints(p.Sensitivity)...),
	}
}

// tierConstraints appends sensitivity-tier advisories to non-forced
// decisions.
func tierConstraints(sensitivity float64) []string {
	switch {
	case sensitivity > elevatedThreshold && sensitivity <= ForceThreshold:
		return []string{"elevated_authenticity"}
	case sensitivity <= lowThreshold:
		return []string{"standard_promotional_ok"}
	}
	return nil
}

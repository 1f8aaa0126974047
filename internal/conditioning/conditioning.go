// Package conditioning compiles community intelligence into generation
// prompt specs. A Spec captures everything the generator needs: the gated
// archetype, constraints, a profile summary, and forbidden patterns.
package conditioning

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/quenchwood/blend/internal/blacklist"
	"github.com/quenchwood/blend/internal/gating"
	"github.com/quenchwood/blend/internal/post"
	"github.com/quenchwood/blend/internal/profile"
)

// Spec is a fully resolved conditioning spec for one draft request.
type Spec struct {
	Community   string            `json:"community"`
	Topic       string            `json:"topic"`
	Archetype   post.Archetype    `json:"archetype"`
	Forced      bool              `json:"forced"`
	Reason      string            `json:"reason,omitempty"`
	Constraints []string          `json:"constraints"`
	Profile     Summary           `json:"profile"`
	Blacklist   []CategoryExcerpt `json:"blacklist"`
	CreatedAt   time.Time         `json:"created_at"`
}

// Summary is the slice of a community profile that conditions generation.
type Summary struct {
	Generic        bool                       `json:"generic"`
	Sensitivity    float64                    `json:"sensitivity"`
	Tier           string                     `json:"tier"`
	Tone           post.Tone                  `json:"tone"`
	Formality      float64                    `json:"formality"`
	AvgSentenceLen float64                    `json:"avg_sentence_len"`
	Rhythm         string                     `json:"rhythm"`
	Archetypes     map[post.Archetype]float64 `json:"archetypes,omitempty"`
	Hooks          []string                   `json:"hooks,omitempty"`
}

// CategoryExcerpt holds the patterns shown for one category, with the
// count of any omitted beyond the cap.
type CategoryExcerpt struct {
	Category blacklist.Category `json:"category"`
	Patterns []string           `json:"patterns"`
	Omitted  int                `json:"omitted,omitempty"`
}

// Compile builds a Spec from a gating decision, an optional profile, and
// the community's forbidden patterns. A nil profile yields generic
// defaults rather than an error; the rendered prompt flags the gap.
// maxPerCategory caps how many patterns each category contributes.
func Compile(community, topic string, d gating.Decision, p *profile.Profile, patterns []blacklist.Pattern, maxPerCategory int) Spec {
	if maxPerCategory <= 0 {
		maxPerCategory = 3
	}
	return Spec{
		Community:   community,
		Topic:       topic,
		Archetype:   d.FinalArchetype,
		Forced:      d.Forced,
		Reason:      d.Reason,
		Constraints: d.Constraints,
		Profile:     summarize(community, p),
		Blacklist:   excerpt(patterns, maxPerCategory),
		CreatedAt:   time.Now().UTC(),
	}
}

func summarize(community string, p *profile.Profile) Summary {
	if p == nil {
		g := profile.Generic(community)
		return Summary{
			Generic:        true,
			Sensitivity:    g.Sensitivity,
			Tier:           profile.SensitivityTier(g.Sensitivity),
			Tone:           g.DominantTone,
			Formality:      g.AvgFormality,
			AvgSentenceLen: g.AvgSentenceLen,
			Rhythm:         g.RhythmDesc,
		}
	}
	return Summary{
		Sensitivity:    p.Sensitivity,
		Tier:           profile.SensitivityTier(p.Sensitivity),
		Tone:           p.DominantTone,
		Formality:      p.AvgFormality,
		AvgSentenceLen: p.AvgSentenceLen,
		Rhythm:         p.RhythmDesc,
		Archetypes:     p.ArchetypeDist,
		Hooks:          p.TopHooks,
	}
}

// excerpt groups patterns by category in the fixed category order, caps
// each group, and records how many were dropped.
func excerpt(patterns []blacklist.Pattern, maxPerCategory int) []CategoryExcerpt {
	grouped := make(map[blacklist.Category][]string)
	for _, p := range patterns {
		grouped[p.Category] = append(grouped[p.Category], p.Pattern)
	}
	var out []CategoryExcerpt
	for _, cat := range blacklist.Categories {
		list := grouped[cat]
		if len(list) == 0 {
			continue
		}
		sort.Strings(list)
		omitted := 0
		if len(list) > maxPerCategory {
			omitted = len(list) - maxPerCategory
			list = list[:maxPerCategory]
		}
		out = append(out, CategoryExcerpt{Category: cat, Patterns: list, Omitted: omitted})
	}
	return out
}

// Render produces the system and user prompt pair for a compiled Spec.
func Render(s Spec) (system, user string) {
	var b strings.Builder

	b.WriteString("You are an expert community writer who crafts authentic, community-native posts.\n\n")
	if s.Profile.Generic {
		fmt.Fprintf(&b, "Your goal: Create a %s post for %s that sounds genuine and helpful.\n\n", s.Archetype, s.Community)
		b.WriteString("## Community DNA (Generic Defaults)\n")
	} else {
		fmt.Fprintf(&b, "Your goal: Create a %s post for %s that blends in naturally with the community.\n\n", s.Archetype, s.Community)
		b.WriteString("## Community DNA\n")
	}
	fmt.Fprintf(&b, "- Sensitivity: %.1f/10 (%s)\n", s.Profile.Sensitivity, s.Profile.Tier)
	fmt.Fprintf(&b, "- Formality level: %.1f/10\n", s.Profile.Formality)
	fmt.Fprintf(&b, "- Typical sentence length: %.1f words\n", s.Profile.AvgSentenceLen)
	fmt.Fprintf(&b, "- Rhythm: %s\n", s.Profile.Rhythm)
	fmt.Fprintf(&b, "- Dominant tone: %s\n", s.Profile.Tone)
	if s.Profile.Generic {
		fmt.Fprintf(&b, "\nWARNING: No community profile exists for %s. Using generic defaults.\n", s.Community)
	}
	if len(s.Profile.Hooks) > 0 {
		b.WriteString("\n## Openers That Work Here\n")
		for _, h := range s.Profile.Hooks {
			fmt.Fprintf(&b, "- %q\n", h)
		}
	}

	fmt.Fprintf(&b, "\n## Archetype Rules: %s\n", s.Archetype)
	b.WriteString(archetypeGuidance(s.Archetype, s.Profile.Sensitivity))

	b.WriteString("\n\n## Gating Constraints\n")
	if len(s.Constraints) == 0 {
		b.WriteString("Standard authenticity requirements apply\n")
	} else {
		for _, c := range s.Constraints {
			fmt.Fprintf(&b, "- %s\n", c)
		}
	}
	if s.Forced && s.Reason != "" {
		fmt.Fprintf(&b, "Note: the %s archetype was enforced. %s\n", s.Archetype, s.Reason)
	}

	b.WriteString("\n## Forbidden Patterns (NEVER use these)\n")
	if len(s.Blacklist) == 0 {
		b.WriteString("No specific forbidden patterns detected for this community\n")
	} else {
		for _, group := range s.Blacklist {
			fmt.Fprintf(&b, "\n%s:\n", group.Category)
			for _, p := range group.Patterns {
				fmt.Fprintf(&b, "  - Avoid: %s\n", p)
			}
			if group.Omitted > 0 {
				fmt.Fprintf(&b, "  - ...and %d more %s patterns\n", group.Omitted, group.Category)
			}
		}
	}

	b.WriteString("\n## Sensitivity Rules\n")
	b.WriteString(sensitivityRules(s.Profile.Sensitivity, s.Archetype))

	b.WriteString("\n\n## Output Format\n")
	b.WriteString("Return ONLY the post body text. No title, no metadata, no explanations. Write as if you are a genuine community member.")

	var u strings.Builder
	fmt.Fprintf(&u, "Create a %s post about: %s\n\n", s.Archetype, s.Topic)
	if s.Profile.Generic {
		u.WriteString("Sound authentic and helpful. Avoid promotional language.")
	} else {
		u.WriteString("Match the community's natural rhythm, formality, and tone. Avoid ALL forbidden patterns.")
	}
	return b.String(), u.String()
}

func archetypeGuidance(a post.Archetype, sensitivity float64) string {
	var g string
	switch a {
	case post.ArchetypeJourney:
		g = `Share a personal discovery story:
- Start with the problem you faced
- Describe your search for solutions (mention failed attempts)
- Reveal what you found (product mention emerges naturally)
- End with results or current status
- Use past tense for completed milestones, present for ongoing work
- Include specific numbers and dates`
	case post.ArchetypeProblemSolution:
		g = `Focus on the problem first (90% pain / 10% solution):
- NO greetings or pleasantries
- Dedicate first 2-3 paragraphs entirely to the problem
- Explain why existing solutions don't work
- Product mention ONLY in final 10% of post
- Keep solution description brief and factual
- Avoid all marketing language in problem section`
	case post.ArchetypeFeedback:
		g = `Ask for genuine feedback (invert authority):
- Frame yourself as student, community as teacher
- Explain what you're building and why
- Share what you've tried or learned so far
- Ask specific questions about concerns or decisions
- Show vulnerability (mention uncertainties)
- Invite critique, not just praise`
	}
	if sensitivity > gating.ForceThreshold && a == post.ArchetypeFeedback {
		g += "\n\nCRITICAL (high sensitivity):\n- ZERO links allowed\n- Maximum vulnerability (use personal pronouns extensively)\n- No marketing language whatsoever"
	}
	return g
}

func sensitivityRules(score float64, a post.Archetype) string {
	switch {
	case score <= 3.0:
		return "Low sensitivity community. Standard promotional language acceptable."
	case score <= 5.0:
		return "Moderate sensitivity. Balance authenticity with helpful information."
	case score <= 7.5:
		return "High sensitivity. Maximize authenticity, minimize promotional language."
	default:
		rules := []string{
			"EXTREME sensitivity community",
			"Maximum vulnerability required (personal pronouns, emotions, questions)",
			"Zero promotional language allowed",
			"Focus entirely on authenticity over polish",
		}
		if a == post.ArchetypeFeedback {
			rules = append(rules, "ZERO links allowed (Feedback archetype + high sensitivity)")
		}
		lines := make([]string, len(rules))
		for i, r := range rules {
			lines[i] = "- " + r
		}
		return strings.Join(lines, "\n")
	}
}

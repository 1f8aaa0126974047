package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quenchwood/blend/internal/ops"
)

// Tool definitions. Input schemas are derived from the ops input structs
// so the MCP surface and the operation layer cannot drift apart.

var ingestToolDef = mcp.NewTool(
	"blend_ingest",
	mcp.WithDescription("Store a batch of collected community posts for later analysis. Each post carries its text, archetype (Journey, ProblemSolution, Feedback), upvote ratio, and comment count."),
	mcp.WithInputSchema[ops.IngestInput](),
)

var scoreToolDef = mcp.NewTool(
	"blend_score",
	mcp.WithDescription("Score a single text through the feature scorer without storing anything: vulnerability, rhythm, formality, jargon, link penalty, and the weighted success score."),
	mcp.WithInputSchema[ops.ScoreInput](),
)

var analyzeToolDef = mcp.NewTool(
	"blend_analyze",
	mcp.WithDescription("Score every stored post in a community and build its profile: sensitivity index, dominant tone, archetype distribution, and mined blacklist patterns. Fails if the community has too few posts."),
	mcp.WithInputSchema[ops.AnalyzeInput](),
)

var gateToolDef = mcp.NewTool(
	"blend_gate",
	mcp.WithDescription("Resolve the archetype and constraints for a draft request. New accounts and high-sensitivity communities force the Feedback archetype."),
	mcp.WithInputSchema[ops.GateInput](),
)

var generateToolDef = mcp.NewTool(
	"blend_generate",
	mcp.WithDescription("Run the drafting pipeline: gate the request, compile a conditioning prompt from the community profile and blacklist, draft via the generation engine, and validate the result. Set dry_run to inspect the compiled prompt without drafting."),
	mcp.WithInputSchema[ops.GenerateInput](),
)

var validateToolDef = mcp.NewTool(
	"blend_validate",
	mcp.WithDescription("Check draft text against the community and global blacklists and scan for machine-writing tells."),
	mcp.WithInputSchema[ops.ValidateInput](),
)

var feedbackToolDef = mcp.NewTool(
	"blend_feedback",
	mcp.WithDescription("Mine a rejected or heavily edited draft for phrases worth banning and fold them into the community blacklist. Idempotent per draft."),
	mcp.WithInputSchema[ops.FeedbackInput](),
)

var profileGetToolDef = mcp.NewTool(
	"blend_profile_get",
	mcp.WithDescription("Retrieve a community's stored profile."),
	mcp.WithInputSchema[ops.ProfileGetInput](),
)

var profileListToolDef = mcp.NewTool(
	"blend_profile_list",
	mcp.WithDescription("List every stored community profile, most recently updated first."),
)

var patternListToolDef = mcp.NewTool(
	"blend_pattern_list",
	mcp.WithDescription("List a community's blacklist patterns, optionally merged with the global blacklist."),
	mcp.WithInputSchema[ops.PatternListInput](),
)

var patternAddToolDef = mcp.NewTool(
	"blend_pattern_add",
	mcp.WithDescription("Add a user-supplied blacklist pattern. Without an explicit category the pattern is categorized automatically."),
	mcp.WithInputSchema[ops.PatternAddInput](),
)

var patternRemoveToolDef = mcp.NewTool(
	"blend_pattern_remove",
	mcp.WithDescription("Remove a user-added blacklist pattern. System-derived patterns are immutable."),
	mcp.WithInputSchema[ops.PatternRemoveInput](),
)

package mcp

import (
	"database/sql"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/quenchwood/blend/internal/config"
	"github.com/quenchwood/blend/internal/gen"
	"github.com/quenchwood/blend/internal/ops"
)

// toolEntry pairs a tool definition with a handler factory.
type toolEntry struct {
	def     mcp.Tool
	handler func(*Handlers) server.ToolHandlerFunc
}

// toolRegistry maps tool names to their definitions and handler factories.
var toolRegistry = map[string]toolEntry{
	"blend_ingest": {
		def:     ingestToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleIngest },
	},
	"blend_score": {
		def:     scoreToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleScore },
	},
	"blend_analyze": {
		def:     analyzeToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleAnalyze },
	},
	"blend_gate": {
		def:     gateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGate },
	},
	"blend_generate": {
		def:     generateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleGenerate },
	},
	"blend_validate": {
		def:     validateToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleValidate },
	},
	"blend_feedback": {
		def:     feedbackToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleFeedback },
	},
	"blend_profile_get": {
		def:     profileGetToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProfileGet },
	},
	"blend_profile_list": {
		def:     profileListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandleProfileList },
	},
	"blend_pattern_list": {
		def:     patternListToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePatternList },
	},
	"blend_pattern_add": {
		def:     patternAddToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePatternAdd },
	},
	"blend_pattern_remove": {
		def:     patternRemoveToolDef,
		handler: func(h *Handlers) server.ToolHandlerFunc { return h.HandlePatternRemove },
	},
}

// AllToolNames returns a list of all valid tool names.
func AllToolNames() []string {
	names := make([]string, 0, len(toolRegistry))
	for name := range toolRegistry {
		names = append(names, name)
	}
	return names
}

// ValidateDisabledTools returns a list of unknown tool names from the given list.
func ValidateDisabledTools(names []string) []string {
	unknown := make([]string, 0)
	for _, name := range names {
		if _, ok := toolRegistry[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}

// NewServer creates a new MCP server with Blend tools registered.
// Tools listed in cfg.DisabledTools are excluded from registration.
// Without an OpenRouter API key the server still starts; blend_generate
// then only serves dry runs.
func NewServer(db *sql.DB, cfg *config.Config, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"blend",
		version,
		server.WithToolCapabilities(true),
	)

	var drafter ops.Drafter
	if client, err := gen.NewClient(cfg); err == nil {
		drafter = client
	}
	h := NewHandlers(db, cfg, drafter)

	disabled := make(map[string]bool)
	for _, name := range cfg.DisabledTools {
		disabled[name] = true
	}

	for name, entry := range toolRegistry {
		if disabled[name] {
			continue
		}
		s.AddTool(entry.def, entry.handler(h))
	}

	return s
}

// Run starts the MCP server using stdio transport.
func Run(db *sql.DB, cfg *config.Config, version string) error {
	s := NewServer(db, cfg, version)
	return server.ServeStdio(s)
}

package mcp

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/quenchwood/blend/internal/config"
	"github.com/quenchwood/blend/internal/errors"
	"github.com/quenchwood/blend/internal/ops"
)

// Handlers holds dependencies for MCP tool handlers.
type Handlers struct {
	db      *sql.DB
	cfg     *config.Config
	drafter ops.Drafter
}

// NewHandlers creates a new Handlers instance. A nil drafter limits
// blend_generate to dry runs.
func NewHandlers(db *sql.DB, cfg *config.Config, drafter ops.Drafter) *Handlers {
	return &Handlers{db: db, cfg: cfg, drafter: drafter}
}

// HandleIngest handles the blend_ingest tool call.
func (h *Handlers) HandleIngest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.IngestInput](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	result, err := ops.Ingest(ctx, h.db, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleScore handles the blend_score tool call.
func (h *Handlers) HandleScore(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.ScoreInput](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	result, err := ops.Score(input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleAnalyze handles the blend_analyze tool call.
func (h *Handlers) HandleAnalyze(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.AnalyzeInput](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	result, err := ops.Analyze(ctx, h.db, h.cfg, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleGate handles the blend_gate tool call.
func (h *Handlers) HandleGate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.GateInput](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	result, err := ops.Gate(ctx, h.db, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleGenerate handles the blend_generate tool call.
func (h *Handlers) HandleGenerate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.GenerateInput](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	result, err := ops.Generate(ctx, h.db, h.cfg, h.drafter, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleValidate handles the blend_validate tool call.
func (h *Handlers) HandleValidate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.ValidateInput](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	result, err := ops.Validate(ctx, h.db, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleFeedback handles the blend_feedback tool call.
func (h *Handlers) HandleFeedback(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.FeedbackInput](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	result, err := ops.Feedback(ctx, h.db, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleProfileGet handles the blend_profile_get tool call.
func (h *Handlers) HandleProfileGet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.ProfileGetInput](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	result, err := ops.ProfileGet(ctx, h.db, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandleProfileList handles the blend_profile_list tool call.
func (h *Handlers) HandleProfileList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := ops.ProfileList(ctx, h.db)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandlePatternList handles the blend_pattern_list tool call.
func (h *Handlers) HandlePatternList(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.PatternListInput](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	result, err := ops.PatternList(ctx, h.db, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandlePatternAdd handles the blend_pattern_add tool call.
func (h *Handlers) HandlePatternAdd(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.PatternAddInput](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	result, err := ops.PatternAdd(ctx, h.db, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// HandlePatternRemove handles the blend_pattern_remove tool call.
func (h *Handlers) HandlePatternRemove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := decode[ops.PatternRemoveInput](req)
	if err != nil {
		return errorResult(errors.NewInvalidRequest(err.Error())), nil
	}
	result, err := ops.PatternRemove(ctx, h.db, input)
	if err != nil {
		return errorResult(err), nil
	}
	return successResult(result)
}

// Result helpers

// errorResult creates an MCP error result from any error.
// Uses IsError: true so MCP clients recognize failures properly.
// Note: Internal error details are not exposed to prevent leaking sensitive info.
func errorResult(err error) *mcp.CallToolResult {
	var payload map[string]any

	if blendErr, ok := err.(*errors.BlendError); ok {
		errorObj := map[string]any{
			"code":    blendErr.Code,
			"message": blendErr.Message,
			"status":  blendErr.Status,
		}
		if blendErr.Code != errors.ErrInternal && blendErr.Details != nil {
			errorObj["details"] = blendErr.Details
		}
		payload = map[string]any{"error": errorObj}
	} else {
		payload = map[string]any{
			"error": map[string]any{
				"code":    "INTERNAL",
				"message": "an internal error occurred",
				"status":  500,
			},
		}
	}

	content, _ := json.Marshal(payload)
	return &mcp.CallToolResult{
		Content: []mcp.Content{mcp.TextContent{Type: "text", Text: string(content)}},
		IsError: true,
	}
}

// successResult creates an MCP success result from any data.
func successResult(data any) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultJSON(data)
}

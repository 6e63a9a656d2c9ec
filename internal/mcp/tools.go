package mcp

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/compound/internal/storage"
)

// --- Tool definitions ---

var toolListTemplates = mcp.NewTool("list_templates",
	mcp.WithDescription("List all workout templates in staleness order (never done first, then longest since last done). Includes days since last done and active exercise count."),
)

var toolListSessions = mcp.NewTool("list_sessions",
	mcp.WithDescription("List completed workout sessions, most recent first, with template name and completion ratio."),
	mcp.WithNumber("limit", mcp.Description("Maximum sessions to return. Defaults to all.")),
)

var toolGetSession = mcp.NewTool("get_session",
	mcp.WithDescription("Get one session with its template, exercises, and per-exercise set logs."),
	mcp.WithString("session_id", mcp.Required(), mcp.Description("Session id")),
)

var toolGetPreviousWeights = mcp.NewTool("get_previous_weights",
	mcp.WithDescription("Logs from a template's most recent completed session keyed by exercise id: the weights last used."),
	mcp.WithString("template_id", mcp.Required(), mcp.Description("Template id")),
)

var toolGetGoUpSuggestions = mcp.NewTool("get_go_up_suggestions",
	mcp.WithDescription("Progressive-overload suggestions for a template's next session, derived from go-up flags in its previous session."),
	mcp.WithString("template_id", mcp.Required(), mcp.Description("Template id")),
)

// --- Tool handlers ---

func (h *handlers) listTemplates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templates, err := h.svc.ListTemplatesWithMeta(ctx)
	if err != nil {
		h.log.Error("mcp list_templates", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(templates)
}

func (h *handlers) listSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.svc.ListSessionsWithMeta(ctx)
	if err != nil {
		h.log.Error("mcp list_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if limit := req.GetInt("limit", 0); limit > 0 && limit < len(sessions) {
		sessions = sessions[:limit]
	}
	return jsonResult(sessions)
}

func (h *handlers) getSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("session_id")
	if err != nil {
		return mcp.NewToolResultError("session_id parameter is required"), nil
	}

	detail, err := h.svc.SessionDetail(ctx, id)
	if errors.Is(err, storage.ErrNotFound) {
		return mcp.NewToolResultError("no session with id " + id), nil
	}
	if err != nil {
		h.log.Error("mcp get_session", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(detail)
}

func (h *handlers) getPreviousWeights(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID, err := req.RequireString("template_id")
	if err != nil {
		return mcp.NewToolResultError("template_id parameter is required"), nil
	}

	previous, err := h.svc.PreviousWeights(ctx, templateID)
	if err != nil {
		h.log.Error("mcp get_previous_weights", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(previous)
}

func (h *handlers) getGoUpSuggestions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	templateID, err := req.RequireString("template_id")
	if err != nil {
		return mcp.NewToolResultError("template_id parameter is required"), nil
	}

	suggestions, err := h.svc.SuggestionsForTemplate(ctx, templateID)
	if err != nil {
		h.log.Error("mcp get_go_up_suggestions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(suggestions)
}

// jsonResult wraps NewToolResultJSON so a marshal failure surfaces as a
// tool error instead of a protocol-level one.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

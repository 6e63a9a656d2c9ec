// Package mcp exposes the workout history as read-only MCP tools and
// resources over stdio, for local AI tooling. It never mutates the store.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/meltforce/compound/internal/workout"
)

// New creates an MCP server with all tools and resources registered.
func New(svc *workout.Service, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("Compound", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Compound workout log. Query templates, session history, previous weights, and progressive-overload suggestions. All reads, no writes."),
	)

	h := &handlers{svc: svc, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolListTemplates, Handler: h.listTemplates},
		server.ServerTool{Tool: toolListSessions, Handler: h.listSessions},
		server.ServerTool{Tool: toolGetSession, Handler: h.getSession},
		server.ServerTool{Tool: toolGetPreviousWeights, Handler: h.getPreviousWeights},
		server.ServerTool{Tool: toolGetGoUpSuggestions, Handler: h.getGoUpSuggestions},
	)

	s.AddResources(
		server.ServerResource{Resource: resTemplates, Handler: h.templates},
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
	)

	return s
}

// ServeStdio blocks serving the MCP protocol on stdin/stdout.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	svc *workout.Service
	log *slog.Logger
}

// --- Resource definitions ---

var resTemplates = mcp.NewResource(
	"compound://templates",
	"Workout Templates",
	mcp.WithResourceDescription("All workout templates with staleness ranking and active exercise counts"),
	mcp.WithMIMEType("application/json"),
)

var resRecentSessions = mcp.NewResource(
	"compound://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("The 20 most recent completed sessions with completion ratios"),
	mcp.WithMIMEType("application/json"),
)

func (h *handlers) templates(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	templates, err := h.svc.ListTemplatesWithMeta(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req, templates)
}

func (h *handlers) recentSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sessions, err := h.svc.ListSessionsWithMeta(ctx)
	if err != nil {
		return nil, err
	}
	if len(sessions) > 20 {
		sessions = sessions[:20]
	}
	return jsonResource(req, sessions)
}

func jsonResource(req mcp.ReadResourceRequest, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

package mcp

import (
	"context"
	"log/slog"
	"net/http"

	mcpserver "github.com/mark3labs/mcp-go/server"

	dogssvc "github.com/alanyang/dogs/internal/service/dogs"
	sessionsvc "github.com/alanyang/dogs/internal/service/session"
)

// Server wraps the mark3labs/mcp-go MCPServer and its StreamableHTTPServer.
// Tools live in tools.go, prompts in prompts.go, client ownership in registry.go.
type Server struct {
	httpSrv  *mcpserver.StreamableHTTPServer
	reg      *SessionRegistry
	sessions *sessionsvc.Manager
}

// New creates the MCP transport server. Browsing sessions opened by an MCP client
// are closed when that client disconnects.
func New(reg *SessionRegistry, dogs *dogssvc.Service, sessions *sessionsvc.Manager) *Server {
	s := &Server{
		reg:      reg,
		sessions: sessions,
	}

	hooks := &mcpserver.Hooks{}
	hooks.OnUnregisterSession = append(hooks.OnUnregisterSession, s.onSessionClose)

	mcpSrv := mcpserver.NewMCPServer(
		"dogs",
		"1.0.0",
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithPromptCapabilities(true),
		mcpserver.WithHooks(hooks),
	)

	// Inject the mcp-go server into the registry (breaks the init cycle).
	reg.SetMCPServer(mcpSrv)

	RegisterTools(mcpSrv, reg, dogs, sessions)
	RegisterPrompts(mcpSrv)

	s.httpSrv = mcpserver.NewStreamableHTTPServer(mcpSrv)
	return s
}

// Handler returns an http.Handler that serves the MCP endpoint.
func (s *Server) Handler() http.Handler {
	return s.httpSrv
}

func (s *Server) Registry() *SessionRegistry {
	return s.reg
}

func (s *Server) onSessionClose(ctx context.Context, session mcpserver.ClientSession) {
	s.closeOwned(ctx, session.SessionID())
}

func (s *Server) closeOwned(ctx context.Context, clientID string) {
	owned := s.reg.Unregister(clientID)
	if len(owned) == 0 {
		return
	}
	slog.InfoContext(ctx, "mcp: client gone, closing its sessions", "client_session", clientID, "count", len(owned))
	for _, id := range owned {
		if err := s.sessions.Close(context.WithoutCancel(ctx), id); err != nil {
			slog.DebugContext(ctx, "mcp: session already closed", "session_id", id, "error", err)
		}
	}
}

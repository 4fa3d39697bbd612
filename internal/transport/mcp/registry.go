package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/uuid"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alanyang/dogs/internal/domain/event"
)

// SessionRegistry records which MCP client opened which browsing session, so
// session events can be pushed back to that client and its sessions closed when
// it disconnects.
type SessionRegistry struct {
	mu       sync.RWMutex
	byClient map[string]map[uuid.UUID]struct{} // MCP session → browsing sessions
	owner    map[uuid.UUID]string              // browsing session → MCP session

	// mcpSrv is set after the MCP server is constructed (avoids circular init dependency).
	mcpMu  sync.RWMutex
	mcpSrv *mcpserver.MCPServer
}

// NewSessionRegistry creates a registry without an MCP server reference.
// Call SetMCPServer once the mcp-go server is constructed.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{
		byClient: make(map[string]map[uuid.UUID]struct{}),
		owner:    make(map[uuid.UUID]string),
	}
}

func (r *SessionRegistry) SetMCPServer(s *mcpserver.MCPServer) {
	r.mcpMu.Lock()
	r.mcpSrv = s
	r.mcpMu.Unlock()
}

// Register records that the MCP client clientID owns sessionID.
func (r *SessionRegistry) Register(clientID string, sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.byClient[clientID] == nil {
		r.byClient[clientID] = make(map[uuid.UUID]struct{})
	}
	r.byClient[clientID][sessionID] = struct{}{}
	r.owner[sessionID] = clientID
}

// Forget drops a browsing session, e.g. after close_session.
func (r *SessionRegistry) Forget(sessionID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	clientID, ok := r.owner[sessionID]
	if !ok {
		return
	}
	delete(r.owner, sessionID)
	delete(r.byClient[clientID], sessionID)
	if len(r.byClient[clientID]) == 0 {
		delete(r.byClient, clientID)
	}
}

// Unregister removes an MCP client and returns the sessions it owned.
func (r *SessionRegistry) Unregister(clientID string) []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	owned := make([]uuid.UUID, 0, len(r.byClient[clientID]))
	for id := range r.byClient[clientID] {
		owned = append(owned, id)
		delete(r.owner, id)
	}
	delete(r.byClient, clientID)
	return owned
}

func (r *SessionRegistry) Owner(sessionID uuid.UUID) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	clientID, ok := r.owner[sessionID]
	return clientID, ok
}

// Notify pushes e to the MCP client owning its session. Sessions opened over
// REST have no owner and are skipped.
func (r *SessionRegistry) Notify(_ context.Context, e event.Event) error {
	clientID, ok := r.Owner(e.SessionID)
	if !ok {
		return nil
	}

	r.mcpMu.RLock()
	srv := r.mcpSrv
	r.mcpMu.RUnlock()

	if srv == nil {
		return fmt.Errorf("mcp server not initialized")
	}

	params, err := toParams(e)
	if err != nil {
		return fmt.Errorf("serialize notification: %w", err)
	}

	return srv.SendNotificationToSpecificClient(clientID, "notifications/message", params)
}

func toParams(v any) (map[string]any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var params map[string]any
	if err := json.Unmarshal(data, &params); err != nil {
		return map[string]any{"data": v}, nil
	}
	return params, nil
}

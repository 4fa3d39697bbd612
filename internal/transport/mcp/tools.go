package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/alanyang/dogs/internal/domain/route"
	dogssvc "github.com/alanyang/dogs/internal/service/dogs"
	"github.com/alanyang/dogs/internal/service/screen"
	sessionsvc "github.com/alanyang/dogs/internal/service/session"
)

// RegisterTools registers all MCP tools on the server.
func RegisterTools(
	s *mcpserver.MCPServer,
	reg *SessionRegistry,
	dogs *dogssvc.Service,
	sessions *sessionsvc.Manager,
) {
	s.AddTool(mcpmcp.NewTool("list_breeds",
		mcpmcp.WithDescription("List every breed with one representative photo URL (null when none could be fetched). The result kind is success, empty or failure."),
	), listBreedsHandler(dogs))

	s.AddTool(mcpmcp.NewTool("get_breed_photos",
		mcpmcp.WithDescription("Fetch random photo URLs for one breed."),
		mcpmcp.WithString("breed_id", mcpmcp.Required(), mcpmcp.Description("Breed id as returned by list_breeds, e.g. hound")),
		mcpmcp.WithNumber("count", mcpmcp.Description("Number of photos, 1 to 50. Defaults to the server setting.")),
	), getBreedPhotosHandler(dogs))

	s.AddTool(mcpmcp.NewTool("open_session",
		mcpmcp.WithDescription("Open a browsing session on the breed list screen. Returns the session_id. The session is closed when this client disconnects."),
	), openSessionHandler(reg, sessions))

	s.AddTool(mcpmcp.NewTool("get_view",
		mcpmcp.WithDescription("Return the visible screen of a session and its current view state."),
		mcpmcp.WithString("session_id", mcpmcp.Required(), mcpmcp.Description("Session UUID returned by open_session")),
	), getViewHandler(sessions))

	s.AddTool(mcpmcp.NewTool("send_event",
		mcpmcp.WithDescription("Send a UI event to the visible screen: breed_selected (needs breed_id), refresh, or back."),
		mcpmcp.WithString("session_id", mcpmcp.Required(), mcpmcp.Description("Session UUID returned by open_session")),
		mcpmcp.WithString("type", mcpmcp.Required(), mcpmcp.Description("One of: breed_selected, refresh, back")),
		mcpmcp.WithString("breed_id", mcpmcp.Description("Breed id, required for breed_selected")),
	), sendEventHandler(sessions))

	s.AddTool(mcpmcp.NewTool("navigate",
		mcpmcp.WithDescription("Jump a session to a route: BreedsList, BreedPhotos/<breed_id> or Back. Back never leaves the breed list."),
		mcpmcp.WithString("session_id", mcpmcp.Required(), mcpmcp.Description("Session UUID returned by open_session")),
		mcpmcp.WithString("route", mcpmcp.Required(), mcpmcp.Description("Route id, e.g. BreedPhotos/hound")),
	), navigateHandler(sessions))

	s.AddTool(mcpmcp.NewTool("close_session",
		mcpmcp.WithDescription("Close a browsing session and cancel its pending fetches."),
		mcpmcp.WithString("session_id", mcpmcp.Required(), mcpmcp.Description("Session UUID returned by open_session")),
	), closeSessionHandler(reg, sessions))
}

// ── Tool handlers ─────────────────────────────────────────────────────────

func listBreedsHandler(dogs *dogssvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, _ mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		return jsonResult(dogs.FetchBreedList(ctx))
	}
}

func getBreedPhotosHandler(dogs *dogssvc.Service) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		breedID := mcpmcp.ParseString(req, "breed_id", "")
		count := mcpmcp.ParseInt(req, "count", 0)

		if breedID == "" {
			return mcpmcp.NewToolResultText("error: breed_id is required"), nil
		}
		if count < 0 || count > 50 {
			return mcpmcp.NewToolResultText("error: count must be between 1 and 50"), nil
		}

		return jsonResult(dogs.FetchBreedDetailN(ctx, breedID, count))
	}
}

func openSessionHandler(reg *SessionRegistry, sessions *sessionsvc.Manager) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, _ mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		s, err := sessions.Create(ctx)
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}

		if client := mcpserver.ClientSessionFromContext(ctx); client != nil {
			reg.Register(client.SessionID(), s.ID())
		}

		return jsonResult(map[string]string{
			"session_id": s.ID().String(),
			"route":      s.Route().ID(),
		})
	}
}

func getViewHandler(sessions *sessionsvc.Manager) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		s, errResult := lookupSession(req, sessions)
		if errResult != nil {
			return errResult, nil
		}
		return jsonResult(s.Frame())
	}
}

func sendEventHandler(sessions *sessionsvc.Manager) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		s, errResult := lookupSession(req, sessions)
		if errResult != nil {
			return errResult, nil
		}

		e := screen.RawEvent{
			Type:    mcpmcp.ParseString(req, "type", ""),
			BreedID: mcpmcp.ParseString(req, "breed_id", ""),
		}
		if err := s.Send(ctx, e); err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}

		return jsonResult(s.Frame())
	}
}

func navigateHandler(sessions *sessionsvc.Manager) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		s, errResult := lookupSession(req, sessions)
		if errResult != nil {
			return errResult, nil
		}

		r, err := route.Parse(mcpmcp.ParseString(req, "route", ""))
		if err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		s.Navigate(ctx, r)

		return jsonResult(map[string]any{
			"route": s.Route().ID(),
			"depth": s.Depth(),
		})
	}
}

func closeSessionHandler(reg *SessionRegistry, sessions *sessionsvc.Manager) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcpmcp.CallToolRequest) (*mcpmcp.CallToolResult, error) {
		id, err := uuid.Parse(mcpmcp.ParseString(req, "session_id", ""))
		if err != nil {
			return mcpmcp.NewToolResultText("error: invalid session_id"), nil
		}

		reg.Forget(id)
		if err := sessions.Close(ctx, id); err != nil {
			return mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err)), nil
		}
		return mcpmcp.NewToolResultText(`{"ok":true}`), nil
	}
}

// ── helpers ───────────────────────────────────────────────────────────────

func lookupSession(req mcpmcp.CallToolRequest, sessions *sessionsvc.Manager) (*sessionsvc.Session, *mcpmcp.CallToolResult) {
	id, err := uuid.Parse(mcpmcp.ParseString(req, "session_id", ""))
	if err != nil {
		return nil, mcpmcp.NewToolResultText("error: invalid session_id")
	}
	s, err := sessions.Get(id)
	if err != nil {
		return nil, mcpmcp.NewToolResultText(fmt.Sprintf("error: %s", err))
	}
	return s, nil
}

func jsonResult(v any) (*mcpmcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal tool result: %w", err)
	}
	return mcpmcp.NewToolResultText(string(data)), nil
}

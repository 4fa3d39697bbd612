package mcp

import (
	"context"
	"fmt"

	mcpmcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

const browsePrompt = `You are browsing dog breeds.
Call open_session once, then get_view to see the visible screen.
On the breed list, send_event with type "breed_selected" and a breed_id opens that breed's photos.
send_event with type "refresh" reloads the visible screen and type "back" returns to the list.
To jump straight to a breed, call navigate with route "BreedPhotos/<breed_id>".
Call close_session when you are done.`

// RegisterPrompts registers the browsing prompt.
func RegisterPrompts(s *mcpserver.MCPServer) {
	s.AddPrompt(
		mcpmcp.NewPrompt("browse_breeds",
			mcpmcp.WithPromptDescription("How to browse breeds and photos with the session tools."),
			mcpmcp.WithArgument("breed_id",
				mcpmcp.ArgumentDescription("Optional breed to open right after the session starts."),
			),
		),
		promptHandler,
	)
}

func promptHandler(_ context.Context, req mcpmcp.GetPromptRequest) (*mcpmcp.GetPromptResult, error) {
	text := browsePrompt
	if breedID := req.Params.Arguments["breed_id"]; breedID != "" {
		text += fmt.Sprintf("\nStart by selecting the breed %q.", breedID)
	}

	return mcpmcp.NewGetPromptResult(
		"Browse dog breeds",
		[]mcpmcp.PromptMessage{
			mcpmcp.NewPromptMessage(
				mcpmcp.RoleUser,
				mcpmcp.TextContent{
					Type: "text",
					Text: text,
				},
			),
		},
	), nil
}

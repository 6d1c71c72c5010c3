// Package mcp exposes the running overlay to MCP clients over stdio. Every
// tool forwards to the daemon over IPC.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/subcover/internal/ipc"
	"github.com/1broseidon/subcover/internal/settings"
)

const (
	ServerName    = "subcover"
	ServerVersion = "0.1.0"
)

// Client is the part of the IPC client the tools use.
type Client interface {
	GetStatus() (*ipc.StatusData, error)
	SetSettings(p ipc.SetSettingsPayload) (settings.Settings, error)
	SetVisible(visible bool) (bool, error)
}

var _ Client = (*ipc.Client)(nil)

// Server is the MCP server for overlay control.
type Server struct {
	mcpServer *mcpsdk.Server
	client    Client
}

// NewServer creates a server that forwards to client.
func NewServer(client Client) *Server {
	s := &Server{client: client}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves on the stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_overlay",
		Description: "Get the subtitle cover overlay's current appearance, position, size and visibility.",
	}, s.handleGetOverlay)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_overlay",
		Description: "Change the overlay's color, opacity or corner radius. Omitted fields are left unchanged. Size and position are controlled by dragging the overlay.",
	}, s.handleSetOverlay)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "set_overlay_visible",
		Description: "Show or hide the overlay.",
	}, s.handleSetOverlayVisible)
}

func (s *Server) handleGetOverlay(_ context.Context, _ *mcpsdk.CallToolRequest, _ GetOverlayInput) (*mcpsdk.CallToolResult, OverlayOutput, error) {
	st, err := s.client.GetStatus()
	if err != nil {
		return nil, OverlayOutput{}, err
	}
	return nil, OverlayOutput{
		Visible:      st.Visible,
		Color:        st.Settings.Color.String(),
		Opacity:      st.Settings.Opacity,
		CornerRadius: st.Settings.CornerRadius,
		X:            st.Gesture.X,
		Y:            st.Gesture.Y,
		Width:        st.Gesture.Width,
		Height:       st.Gesture.Height,
		Gesture:      st.Gesture.Mode,
	}, nil
}

func (s *Server) handleSetOverlay(_ context.Context, _ *mcpsdk.CallToolRequest, args SetOverlayInput) (*mcpsdk.CallToolResult, AppearanceOutput, error) {
	if args.Color == nil && args.Opacity == nil && args.CornerRadius == nil {
		return nil, AppearanceOutput{}, fmt.Errorf("set_overlay requires at least one of color, opacity or corner_radius")
	}
	if args.Color != nil {
		if _, err := settings.ParseColor(*args.Color); err != nil {
			return nil, AppearanceOutput{}, err
		}
	}

	next, err := s.client.SetSettings(ipc.SetSettingsPayload{
		Color:        args.Color,
		Opacity:      args.Opacity,
		CornerRadius: args.CornerRadius,
	})
	if err != nil {
		return nil, AppearanceOutput{}, err
	}
	return nil, AppearanceOutput{
		Color:        next.Color.String(),
		Opacity:      next.Opacity,
		CornerRadius: next.CornerRadius,
		Width:        int(next.Width),
		Height:       int(next.Height),
	}, nil
}

func (s *Server) handleSetOverlayVisible(_ context.Context, _ *mcpsdk.CallToolRequest, args SetOverlayVisibleInput) (*mcpsdk.CallToolResult, VisibleOutput, error) {
	visible, err := s.client.SetVisible(args.Visible)
	if err != nil {
		return nil, VisibleOutput{}, err
	}
	return &mcpsdk.CallToolResult{
		Content: []mcpsdk.Content{
			&mcpsdk.TextContent{Text: visibilityText(visible)},
		},
	}, VisibleOutput{Visible: visible}, nil
}

func visibilityText(visible bool) string {
	if visible {
		return "Overlay shown"
	}
	return "Overlay hidden"
}

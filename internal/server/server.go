// Package server exposes the sysprefs facade as Model Context Protocol tools.
package server

import (
	"fmt"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/mj1618/sysprefs-cli/internal/platform"
	"github.com/mj1618/sysprefs-cli/internal/sysprefs"
	"github.com/rs/zerolog"
)

// Config holds MCP server configuration.
type Config struct {
	Transport string
	Port      int
}

// Server wraps the MCP server with the facade it drives. Tool calls are
// serialized so one client's sequence reaches the target in order; no
// results are cached between calls.
type Server struct {
	mu    sync.Mutex
	app   *sysprefs.Application
	shots platform.Screenshotter
	log   zerolog.Logger
	mcp   *mcpserver.MCPServer
	tools []string
}

// New creates an MCP server with all sysprefs tools registered. shots may
// be nil, in which case the screenshot tool reports an error.
func New(app *sysprefs.Application, shots platform.Screenshotter, version string, log zerolog.Logger) *Server {
	s := &Server{app: app, shots: shots, log: log}
	s.mcp = mcpserver.NewMCPServer("sysprefs", version)
	s.registerTools()
	return s
}

// MCP returns the underlying MCP server.
func (s *Server) MCP() *mcpserver.MCPServer { return s.mcp }

// Serve starts the MCP server with the configured transport.
func (s *Server) Serve(cfg Config) error {
	s.log.Info().Str("transport", cfg.Transport).Int("port", cfg.Port).Msg("mcp server starting")
	switch cfg.Transport {
	case "stdio":
		return mcpserver.ServeStdio(s.mcp)
	case "streamable-http":
		httpServer := mcpserver.NewStreamableHTTPServer(s.mcp)
		return httpServer.Start(fmt.Sprintf(":%d", cfg.Port))
	default:
		return fmt.Errorf("unsupported transport: %s (use stdio or streamable-http)", cfg.Transport)
	}
}

// Tools lists the registered tool names in registration order.
func (s *Server) Tools() []string { return s.tools }

func (s *Server) addTool(tool mcp.Tool, handler mcpserver.ToolHandlerFunc) {
	s.tools = append(s.tools, tool.Name)
	s.mcp.AddTool(tool, handler)
}

func (s *Server) registerTools() {
	s.addTool(
		mcp.NewTool("info",
			mcp.WithDescription("Report whether System Preferences is running, its version, the Show All state, the current pane and the main window id"),
		),
		s.handleInfo,
	)

	s.addTool(
		mcp.NewTool("list_panes",
			mcp.WithDescription("List preference panes with their locale-independent ids and names"),
			mcp.WithBoolean("anchors", mcp.Description("Include each pane's anchor names")),
		),
		s.handleListPanes,
	)

	s.addTool(
		mcp.NewTool("list_anchors",
			mcp.WithDescription("List the anchors (named sub-sections) of a pane"),
			mcp.WithString("pane", mcp.Description("Pane id, e.g. com.apple.preference.security"), mcp.Required()),
		),
		s.handleListAnchors,
	)

	s.addTool(
		mcp.NewTool("reveal",
			mcp.WithDescription("Show a pane, or an anchor within it, in the System Preferences window"),
			mcp.WithString("pane", mcp.Description("Pane id"), mcp.Required()),
			mcp.WithString("anchor", mcp.Description("Anchor name within the pane, e.g. Privacy_Camera")),
		),
		s.handleReveal,
	)

	s.addTool(
		mcp.NewTool("set_current_pane",
			mcp.WithDescription("Select a pane by id"),
			mcp.WithString("pane", mcp.Description("Pane id"), mcp.Required()),
		),
		s.handleSetCurrentPane,
	)

	s.addTool(
		mcp.NewTool("set_show_all",
			mcp.WithDescription("Switch to the Show All view. Setting false is ignored by System Preferences; select a pane instead."),
			mcp.WithBoolean("value", mcp.Description("true to show all panes"), mcp.Required()),
		),
		s.handleSetShowAll,
	)

	s.addTool(
		mcp.NewTool("authorize",
			mcp.WithDescription("Prompt the user to unlock a pane that requires authorization"),
			mcp.WithString("pane", mcp.Description("Pane id"), mcp.Required()),
		),
		s.handleAuthorize,
	)

	s.addTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List System Preferences windows, front to back"),
		),
		s.handleListWindows,
	)

	s.addTool(
		mcp.NewTool("set_window",
			mcp.WithDescription("Change a window's bounds, order or visibility"),
			mcp.WithNumber("id", mcp.Description("Window id"), mcp.Required()),
			mcp.WithString("bounds", mcp.Description("New bounds as x,y,width,height")),
			mcp.WithNumber("index", mcp.Description("New front-to-back position (1 = front)")),
			mcp.WithBoolean("visible", mcp.Description("Show or hide the window")),
			mcp.WithBoolean("zoomed", mcp.Description("Zoom or unzoom the window")),
			mcp.WithBoolean("miniaturized", mcp.Description("Minimize or restore the window")),
		),
		s.handleSetWindow,
	)

	s.addTool(
		mcp.NewTool("activate",
			mcp.WithDescription("Bring System Preferences to the front, launching it if needed"),
		),
		s.handleActivate,
	)

	s.addTool(
		mcp.NewTool("quit",
			mcp.WithDescription("Quit System Preferences"),
			mcp.WithString("saving", mcp.Description("What to do with unsaved changes: yes, no, ask (default: ask)")),
		),
		s.handleQuit,
	)

	s.addTool(
		mcp.NewTool("screenshot",
			mcp.WithDescription("Capture the main System Preferences window"),
			mcp.WithString("format", mcp.Description("Image format: png, jpg")),
			mcp.WithNumber("quality", mcp.Description("JPEG quality 1-100")),
			mcp.WithNumber("scale", mcp.Description("Scale factor 0.1-1.0 (default: 0.5)")),
		),
		s.handleScreenshot,
	)
}

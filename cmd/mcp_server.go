package cmd

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/cursortools/cursorctl/internal/inspect"
	"github.com/cursortools/cursorctl/internal/output"
	"github.com/cursortools/cursorctl/internal/version"
	"github.com/cursortools/cursorctl/internal/winctl"
)

// mcpServer exposes the window manager as MCP tools. A single mutex
// serializes tool calls: the scripting bridge is driven by one logical
// thread of control at a time.
type mcpServer struct {
	manager *winctl.Manager
	mu      sync.Mutex
	mcp     *mcpserver.MCPServer
}

// MCPConfig holds MCP server configuration.
type MCPConfig struct {
	Transport string
	Port      int
}

func newMCPServer() *mcpServer {
	s := &mcpServer{manager: manager()}
	s.mcp = mcpserver.NewMCPServer("cursorctl", version.Version)
	s.registerTools()
	return s
}

func (s *mcpServer) serve(cfg MCPConfig) error {
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

func (s *mcpServer) registerTools() {
	s.mcp.AddTool(
		mcp.NewTool("list_windows",
			mcp.WithDescription("List the target application's windows with index, title, position, size, and minimized state"),
		),
		s.handleList,
	)

	indexTools := []struct {
		name string
		desc string
		fn   func(context.Context, int) error
	}{
		{"focus_window", "Bring a window to the foreground by its 1-based index", s.manager.Focus},
		{"minimize_window", "Minimize a window by its 1-based index", s.manager.Minimize},
		{"unminimize_window", "Restore a minimized window by its 1-based index", s.manager.Unminimize},
	}
	for _, t := range indexTools {
		fn := t.fn
		action := t.name
		s.mcp.AddTool(
			mcp.NewTool(t.name,
				mcp.WithDescription(t.desc),
				mcp.WithNumber("index", mcp.Required(), mcp.Description("1-based window index")),
			),
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return s.indexAction(ctx, request, action, fn)
			},
		)
	}

	s.mcp.AddTool(
		mcp.NewTool("move_window",
			mcp.WithDescription("Move a window to a screen position"),
			mcp.WithNumber("index", mcp.Required(), mcp.Description("1-based window index")),
			mcp.WithNumber("x", mcp.Required(), mcp.Description("Target X coordinate")),
			mcp.WithNumber("y", mcp.Required(), mcp.Description("Target Y coordinate")),
		),
		s.handleMove,
	)

	s.mcp.AddTool(
		mcp.NewTool("resize_window",
			mcp.WithDescription("Resize a window"),
			mcp.WithNumber("index", mcp.Required(), mcp.Description("1-based window index")),
			mcp.WithNumber("width", mcp.Required(), mcp.Description("Target width")),
			mcp.WithNumber("height", mcp.Required(), mcp.Description("Target height")),
		),
		s.handleResize,
	)

	s.mcp.AddTool(
		mcp.NewTool("screenshot_window",
			mcp.WithDescription("Capture a window's screen region to a PNG file and return the path"),
			mcp.WithNumber("index", mcp.Required(), mcp.Description("1-based window index")),
			mcp.WithNumber("scale", mcp.Description("Downscale factor in (0, 1]; default 1.0")),
		),
		s.handleScreenshot,
	)
}

func (s *mcpServer) handleList(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	windows, err := s.manager.ListWindows(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if windows == nil {
		windows = []winctl.Snapshot{}
	}
	text, err := output.Sprint(windows)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *mcpServer) indexAction(ctx context.Context, request mcp.CallToolRequest, action string, fn func(context.Context, int) error) (*mcp.CallToolResult, error) {
	index := intParam(request.GetArguments(), "index", 0)
	if index < 1 {
		return mcp.NewToolResultError("index must be a positive integer"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(ctx, index); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.actionResult(action, index)
}

func (s *mcpServer) handleMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	index := intParam(params, "index", 0)
	x := intParam(params, "x", 0)
	y := intParam(params, "y", 0)
	if index < 1 {
		return mcp.NewToolResultError("index must be a positive integer"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.manager.Move(ctx, index, x, y); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.actionResult("move_window", index)
}

func (s *mcpServer) handleResize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	index := intParam(params, "index", 0)
	width := intParam(params, "width", 0)
	height := intParam(params, "height", 0)
	if index < 1 {
		return mcp.NewToolResultError("index must be a positive integer"), nil
	}
	if width < 1 || height < 1 {
		return mcp.NewToolResultError("width and height must be positive"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.manager.Resize(ctx, index, width, height); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return s.actionResult("resize_window", index)
}

func (s *mcpServer) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	index := intParam(params, "index", 0)
	scale := floatParam(params, "scale", 1.0)
	if index < 1 {
		return mcp.NewToolResultError("index must be a positive integer"), nil
	}
	if scale <= 0 || scale > 1 {
		return mcp.NewToolResultError("scale must be in (0, 1]"), nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	windows, err := s.manager.ListWindows(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	for _, win := range windows {
		if win.Index != index {
			continue
		}
		if win.Minimized {
			return mcp.NewToolResultError(fmt.Sprintf("window %d is minimized", index)), nil
		}
		f, err := os.CreateTemp("", "cursorctl-mcp-*.png")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		path := f.Name()
		f.Close()

		if err := inspect.CaptureWindowPNG(ctx, inspect.Screencapture{}, win, path, scale); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		text, err := output.Sprint(ScreenshotResult{OK: true, Action: "screenshot", Window: index, Path: path})
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(text), nil
	}
	return mcp.NewToolResultError(fmt.Sprintf("no window with index %d", index)), nil
}

func (s *mcpServer) actionResult(action string, index int) (*mcp.CallToolResult, error) {
	text, err := output.Sprint(ActionResult{OK: true, Action: action, Window: index, App: s.manager.App()})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// intParam extracts an integer argument, tolerating JSON's float64 numbers.
func intParam(params map[string]interface{}, key string, def int) int {
	v, ok := params[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return def
	}
}

func floatParam(params map[string]interface{}, key string, def float64) float64 {
	v, ok := params[key]
	if !ok {
		return def
	}
	if n, ok := v.(float64); ok {
		return n
	}
	return def
}

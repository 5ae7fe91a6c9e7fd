package server

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mj1618/sysprefs-cli/internal/model"
	"github.com/mj1618/sysprefs-cli/internal/platform"
	"github.com/mj1618/sysprefs-cli/internal/sysprefs"
	"gopkg.in/yaml.v3"
)

func yamlResult(v interface{}) (*mcp.CallToolResult, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("yaml encode: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func (s *Server) handleInfo(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	info, err := model.ReadApp(s.app)
	if err != nil {
		return toolError(err)
	}
	return yamlResult(info)
}

func (s *Server) handleListPanes(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()
	s.mu.Lock()
	defer s.mu.Unlock()

	panes, err := model.ReadPanes(s.app, BoolParam(args, "anchors", false))
	if err != nil {
		return toolError(err)
	}
	return yamlResult(panes)
}

func (s *Server) handleListAnchors(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := StringParam(request.GetArguments(), "pane", "")
	if id == "" {
		return mcp.NewToolResultError("pane is required"), nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	names, err := model.AnchorNames(s.app.Pane(id))
	if err != nil {
		return toolError(err)
	}
	if names == nil {
		names = []string{}
	}
	return yamlResult(names)
}

// actionHandler wraps a state-changing call and reports what it changed.
func (s *Server) actionHandler(action string, fn func(args map[string]interface{}) (sysprefs.Reference, error)) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := request.GetArguments()
		s.mu.Lock()
		defer s.mu.Unlock()

		result, err := model.Act(s.app, action, func() (sysprefs.Reference, error) { return fn(args) })
		if err != nil {
			return toolError(err)
		}
		s.log.Debug().Str("tool", action).Int("changes", len(result.Changes)).Msg("tool call")
		return yamlResult(result)
	}
}

func (s *Server) paneArg(args map[string]interface{}) (*sysprefs.Pane, error) {
	id := StringParam(args, "pane", "")
	if id == "" {
		return nil, fmt.Errorf("pane is required")
	}
	return s.app.Pane(id), nil
}

func (s *Server) handleReveal(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.actionHandler("reveal", func(args map[string]interface{}) (sysprefs.Reference, error) {
		p, err := s.paneArg(args)
		if err != nil {
			return "", err
		}
		if anchor := StringParam(args, "anchor", ""); anchor != "" {
			return p.Anchor(anchor).Reveal()
		}
		return p.Reveal()
	})(ctx, request)
}

func (s *Server) handleSetCurrentPane(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.actionHandler("set_current_pane", func(args map[string]interface{}) (sysprefs.Reference, error) {
		p, err := s.paneArg(args)
		if err != nil {
			return "", err
		}
		return p.Reference(), s.app.SetCurrentPane(p)
	})(ctx, request)
}

func (s *Server) handleSetShowAll(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.actionHandler("set_show_all", func(args map[string]interface{}) (sysprefs.Reference, error) {
		v, ok := optionalBool(args, "value")
		if !ok {
			return "", fmt.Errorf("value is required")
		}
		return s.app.Reference(), s.app.SetShowAll(v)
	})(ctx, request)
}

func (s *Server) handleAuthorize(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.actionHandler("authorize", func(args map[string]interface{}) (sysprefs.Reference, error) {
		p, err := s.paneArg(args)
		if err != nil {
			return "", err
		}
		authorized, err := p.Authorize()
		if err != nil {
			return "", err
		}
		if authorized == nil {
			return "", nil
		}
		return authorized.Reference(), nil
	})(ctx, request)
}

func (s *Server) handleListWindows(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	windows, err := model.ReadWindows(s.app)
	if err != nil {
		return toolError(err)
	}
	return yamlResult(windows)
}

func (s *Server) handleSetWindow(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.actionHandler("set_window", func(args map[string]interface{}) (sysprefs.Reference, error) {
		id := IntParam(args, "id", 0)
		if id == 0 {
			return "", fmt.Errorf("id is required")
		}
		w := s.app.Window(id)
		changed := false
		if b := StringParam(args, "bounds", ""); b != "" {
			bounds, err := platform.ParseBounds(b)
			if err != nil {
				return "", err
			}
			if err := w.SetBounds(sysprefs.Rect{X: bounds.X, Y: bounds.Y, Width: bounds.Width, Height: bounds.Height}); err != nil {
				return "", err
			}
			changed = true
		}
		if idx := IntParam(args, "index", 0); idx != 0 {
			if err := w.SetIndex(idx); err != nil {
				return "", err
			}
			changed = true
		}
		for _, b := range []struct {
			key string
			set func(bool) error
		}{
			{"visible", w.SetVisible},
			{"zoomed", w.SetZoomed},
			{"miniaturized", w.SetMiniaturized},
		} {
			if v, ok := optionalBool(args, b.key); ok {
				if err := b.set(v); err != nil {
					return "", err
				}
				changed = true
			}
		}
		if !changed {
			return "", fmt.Errorf("nothing to change: pass bounds, index, visible, zoomed or miniaturized")
		}
		return w.Reference(), nil
	})(ctx, request)
}

func (s *Server) handleActivate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.actionHandler("activate", func(map[string]interface{}) (sysprefs.Reference, error) {
		return s.app.Reference(), s.app.Activate()
	})(ctx, request)
}

func (s *Server) handleQuit(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	saving := sysprefs.SaveAsk
	if v := StringParam(request.GetArguments(), "saving", ""); v != "" {
		var err error
		if saving, err = sysprefs.ParseSaveOption(v); err != nil {
			return toolError(err)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.app.QuitSaving(saving); err != nil {
		return toolError(err)
	}
	return yamlResult(model.Result{OK: true, Action: "quit", Reference: string(s.app.Reference())})
}

func (s *Server) handleScreenshot(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if s.shots == nil {
		return mcp.NewToolResultError("screenshots are not available with this backend"), nil
	}
	args := request.GetArguments()
	s.mu.Lock()
	w, err := s.app.PreferencesWindow()
	var opts platform.ScreenshotOptions
	if err == nil {
		opts, err = model.CaptureOptions(w)
	}
	s.mu.Unlock()
	if err != nil {
		return toolError(err)
	}

	opts.Format = StringParam(args, "format", "png")
	opts.Quality = IntParam(args, "quality", 80)
	opts.Scale = FloatParam(args, "scale", 0.5)
	if err := opts.Normalize(); err != nil {
		return toolError(err)
	}
	data, err := s.shots.CaptureWindow(ctx, opts)
	if err != nil {
		return toolError(err)
	}

	mimeType := "image/png"
	if opts.Format == "jpg" || opts.Format == "jpeg" {
		mimeType = "image/jpeg"
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.ImageContent{
				Type:     "image",
				Data:     base64.StdEncoding.EncodeToString(data),
				MIMEType: mimeType,
			},
		},
	}, nil
}

//go:build darwin

package darwin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mj1618/sysprefs-cli/internal/imaging"
	"github.com/mj1618/sysprefs-cli/internal/platform"
)

const DefaultScreencapturePath = "/usr/sbin/screencapture"

const screenRecordingHelp = "screen recording permission required\n\n" +
	"Grant permission at: System Settings > Privacy & Security > Screen Recording\n" +
	"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
	"Then restart the terminal and try again."

// DarwinScreenshotter implements platform.Screenshotter with screencapture(1).
type DarwinScreenshotter struct {
	path string
}

// NewScreenshotter creates a screenshotter using the screencapture binary at
// path ("" = DefaultScreencapturePath).
func NewScreenshotter(path string) *DarwinScreenshotter {
	if path == "" {
		path = DefaultScreencapturePath
	}
	return &DarwinScreenshotter{path: path}
}

// CaptureWindow captures a window by its window server number.
func (s *DarwinScreenshotter) CaptureWindow(ctx context.Context, opts platform.ScreenshotOptions) ([]byte, error) {
	if opts.WindowID == 0 {
		return nil, fmt.Errorf("screenshot needs a window id")
	}
	if err := opts.Normalize(); err != nil {
		return nil, err
	}

	dir, err := os.MkdirTemp("", "sysprefs-capture-")
	if err != nil {
		return nil, fmt.Errorf("screenshot temp dir: %w", err)
	}
	defer os.RemoveAll(dir)
	file := filepath.Join(dir, "window.png")

	// -x: no sound, -o: no window shadow, -l: capture by window id.
	cmd := exec.CommandContext(ctx, s.path, "-x", "-o", "-t", "png", "-l", strconv.Itoa(opts.WindowID), file)
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("screencapture failed: %s", strings.TrimSpace(string(out)))
		}
		return nil, fmt.Errorf("screencapture: %w", err)
	}
	data, err := os.ReadFile(file)
	if err != nil {
		// screencapture exits 0 without writing when permission is missing.
		return nil, errors.New(screenRecordingHelp)
	}

	img, err := imaging.Decode(data)
	if err != nil {
		return nil, err
	}
	img = imaging.Scale(img, opts.Scale)
	if opts.Label != "" {
		img = imaging.Label(img, opts.Label)
	}
	return imaging.Encode(img, opts.Format, opts.Quality)
}

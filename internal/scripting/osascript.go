package scripting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// DefaultOsascriptPath is where macOS ships the OSA command-line runner.
const DefaultOsascriptPath = "/usr/bin/osascript"

// Osascript runs scripts through the osascript command with the JavaScript
// OSA language. The target application receives the Apple events it sends.
type Osascript struct {
	Path    string        // osascript binary (default DefaultOsascriptPath)
	Timeout time.Duration // 0 = no bridge-level timeout
}

// NewOsascript returns an Osascript runner.
func NewOsascript(path string, timeout time.Duration) *Osascript {
	if path == "" {
		path = DefaultOsascriptPath
	}
	return &Osascript{Path: path, Timeout: timeout}
}

// Run executes the script and returns its trimmed stdout.
func (o *Osascript) Run(ctx context.Context, script string) ([]byte, error) {
	if o.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, o.Path, "-l", "JavaScript", "-e", script)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, &ScriptError{
			Number:  ErrNumTimeout,
			Message: fmt.Sprintf("osascript timed out after %s", o.Timeout),
		}
	}
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && stderr.Len() > 0 {
			return nil, ParseError(stderr.String())
		}
		return nil, fmt.Errorf("osascript: %w", err)
	}
	return bytes.TrimSpace(stdout.Bytes()), nil
}

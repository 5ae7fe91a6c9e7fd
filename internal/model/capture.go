package model

import (
	"github.com/mj1618/sysprefs-cli/internal/platform"
	"github.com/mj1618/sysprefs-cli/internal/sysprefs"
)

// CaptureOptions reads the window properties a screenshot needs. The
// scripting id of a Cocoa window is its window server number.
func CaptureOptions(w *sysprefs.Window) (platform.ScreenshotOptions, error) {
	var opts platform.ScreenshotOptions
	var err error
	if opts.WindowID, err = w.ID(); err != nil {
		return opts, err
	}
	if opts.Title, err = w.Name(); err != nil {
		return opts, err
	}
	r, err := w.Bounds()
	if err != nil {
		return opts, err
	}
	opts.Bounds = platform.Bounds{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height}
	return opts, nil
}

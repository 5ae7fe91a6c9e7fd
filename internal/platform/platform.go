package platform

import "context"

// Screenshotter captures a window of the target application.
type Screenshotter interface {
	// CaptureWindow captures the window described by opts and returns the
	// encoded image bytes in the requested format.
	CaptureWindow(ctx context.Context, opts ScreenshotOptions) ([]byte, error)
}

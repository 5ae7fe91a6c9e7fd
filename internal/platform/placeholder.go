package platform

import (
	"context"

	"github.com/mj1618/sysprefs-cli/internal/imaging"
)

// PlaceholderScreenshotter renders a stand-in image sized to the window's
// bounds. The simulator backend uses it since there is no window server.
type PlaceholderScreenshotter struct{}

func (PlaceholderScreenshotter) CaptureWindow(ctx context.Context, opts ScreenshotOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := opts.Normalize(); err != nil {
		return nil, err
	}
	img := imaging.Scale(imaging.Placeholder(opts.Bounds.Width, opts.Bounds.Height, opts.Title), opts.Scale)
	if opts.Label != "" {
		img = imaging.Label(img, opts.Label)
	}
	return imaging.Encode(img, opts.Format, opts.Quality)
}

package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// Bounds represents a screen rectangle.
type Bounds struct {
	X, Y, Width, Height int
}

// ParseBounds parses a "x,y,w,h" string into a Bounds.
func ParseBounds(s string) (*Bounds, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return nil, fmt.Errorf("invalid bounds %q: expected x,y,w,h", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid bounds %q: %w", s, err)
		}
		vals[i] = v
	}
	if vals[2] < 0 || vals[3] < 0 {
		return nil, fmt.Errorf("invalid bounds %q: width and height must not be negative", s)
	}
	return &Bounds{X: vals[0], Y: vals[1], Width: vals[2], Height: vals[3]}, nil
}

// ScreenshotOptions configures what to capture.
type ScreenshotOptions struct {
	WindowID int     // Window server number of the window to capture
	Bounds   Bounds  // Window frame in screen points
	Title    string  // Window title, drawn on simulated captures
	Label    string  // Caption drawn over the capture ("" = none)
	Format   string  // "png" or "jpg"
	Quality  int     // JPEG quality 1-100 (ignored for PNG)
	Scale    float64 // Scale factor 0.1-1.0 (default 0.5)
}

// Normalize applies defaults and validates the options.
func (o *ScreenshotOptions) Normalize() error {
	if o.Scale <= 0 || o.Scale > 1.0 {
		o.Scale = 0.5
	}
	switch strings.ToLower(o.Format) {
	case "":
		o.Format = "png"
	case "png", "jpg", "jpeg":
	default:
		return fmt.Errorf("unsupported screenshot format: %q (use png or jpg)", o.Format)
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = 80
	}
	return nil
}

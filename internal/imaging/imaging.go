// Package imaging scales, labels and encodes window captures.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// basicfont.Face7x13 glyph cell.
const (
	glyphWidth  = 7
	glyphHeight = 13
)

var (
	TextColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	OutlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
	FrameColor   = color.RGBA{R: 200, G: 0, B: 0, A: 200}
)

// ToRGBA converts any image to RGBA.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	bounds := img.Bounds()
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, img, bounds.Min, draw.Src)
	return rgba
}

// Scale resizes img by factor. Factors outside (0, 1] leave the image as is.
func Scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor >= 1 {
		return img
	}
	b := img.Bounds()
	w := max(1, int(float64(b.Dx())*factor))
	h := max(1, int(float64(b.Dy())*factor))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// Frame draws a rectangle outline, clamped to the image.
func Frame(img *image.RGBA, r image.Rectangle, c color.Color) {
	r = r.Intersect(img.Bounds())
	if r.Empty() {
		return
	}
	for x := r.Min.X; x < r.Max.X; x++ {
		img.Set(x, r.Min.Y, c)
		img.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		img.Set(r.Min.X, y, c)
		img.Set(r.Max.X-1, y, c)
	}
}

// Caption draws outlined text with its top-left corner at (x, y).
func Caption(img *image.RGBA, text string, x, y int) {
	baseline := y + glyphHeight - 2
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, x+dx, baseline+dy, OutlineColor)
		}
	}
	drawString(img, text, x, baseline, TextColor)
}

// TextWidth returns the rendered width of text in pixels.
func TextWidth(text string) int {
	return len([]rune(text)) * glyphWidth
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// Label frames the whole image and captions it in the top-left corner.
func Label(img image.Image, text string) *image.RGBA {
	rgba := ToRGBA(img)
	Frame(rgba, rgba.Bounds(), FrameColor)
	if text != "" {
		b := rgba.Bounds()
		Caption(rgba, text, b.Min.X+4, b.Min.Y+4)
	}
	return rgba
}

// Placeholder renders a flat window-sized image with a title bar caption,
// standing in for a capture when no window server is available.
func Placeholder(width, height int, title string) *image.RGBA {
	width = max(width, 1)
	height = max(height, 1)
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 236, G: 236, B: 236, A: 255}), image.Point{}, draw.Src)
	bar := image.Rect(0, 0, width, min(height, 28))
	draw.Draw(img, bar, image.NewUniform(color.RGBA{R: 210, G: 210, B: 210, A: 255}), image.Point{}, draw.Src)
	if title != "" {
		Caption(img, title, max(4, (width-TextWidth(title))/2), 7)
	}
	return img
}

// Encode writes img as "png" or "jpg". quality applies to JPEG only.
func Encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	switch strings.ToLower(format) {
	case "", "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("png encode: %w", err)
		}
	case "jpg", "jpeg":
		if quality <= 0 || quality > 100 {
			quality = 80
		}
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return nil, fmt.Errorf("jpeg encode: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported image format: %q (use png or jpg)", format)
	}
	return buf.Bytes(), nil
}

// Decode reads a PNG or JPEG image.
func Decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

package imaging

import (
	"image"
	"image/color"
	"testing"
)

func solid(w, h int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestScale(t *testing.T) {
	img := solid(200, 100, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	tests := []struct {
		factor float64
		w, h   int
	}{
		{0.5, 100, 50},
		{0.25, 50, 25},
		{1, 200, 100},
		{0, 200, 100},
		{1.5, 200, 100},
		{0.001, 1, 1},
	}
	for _, tt := range tests {
		b := Scale(img, tt.factor).Bounds()
		if b.Dx() != tt.w || b.Dy() != tt.h {
			t.Errorf("Scale(%v): got %dx%d, want %dx%d", tt.factor, b.Dx(), b.Dy(), tt.w, tt.h)
		}
	}
}

func TestFrame_ClampsToImage(t *testing.T) {
	img := solid(20, 20, color.RGBA{A: 255})
	Frame(img, image.Rect(-5, -5, 10, 10), FrameColor)
	if got := img.RGBAAt(0, 0); got != FrameColor {
		t.Errorf("corner: got %v", got)
	}
	if got := img.RGBAAt(15, 15); got != (color.RGBA{A: 255}) {
		t.Errorf("outside frame changed: %v", got)
	}
}

func TestCaption_DrawsText(t *testing.T) {
	bg := color.RGBA{R: 50, G: 50, B: 50, A: 255}
	img := solid(120, 30, bg)
	Caption(img, "Dock", 4, 4)
	changed := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 120; x++ {
			if img.RGBAAt(x, y) != bg {
				changed++
			}
		}
	}
	if changed == 0 {
		t.Error("caption drew nothing")
	}
	if TextWidth("Dock") != 28 {
		t.Errorf("TextWidth: %d", TextWidth("Dock"))
	}
}

func TestEncodeDecode(t *testing.T) {
	img := Placeholder(64, 48, "Sound")
	for _, format := range []string{"png", "jpg"} {
		data, err := Encode(img, format, 90)
		if err != nil {
			t.Fatalf("%s: %v", format, err)
		}
		back, err := Decode(data)
		if err != nil {
			t.Fatalf("%s decode: %v", format, err)
		}
		if back.Bounds().Dx() != 64 || back.Bounds().Dy() != 48 {
			t.Errorf("%s: bounds %v", format, back.Bounds())
		}
	}
	if _, err := Encode(img, "gif", 0); err == nil {
		t.Error("expected error for gif")
	}
}

func TestLabel(t *testing.T) {
	img := Label(solid(40, 40, color.RGBA{A: 255}), "")
	if img.RGBAAt(39, 39) != FrameColor {
		t.Errorf("frame corner: %v", img.RGBAAt(39, 39))
	}
}

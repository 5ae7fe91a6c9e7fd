package platform

import "testing"

func TestParseBounds_Valid(t *testing.T) {
	b, err := ParseBounds("10,20,300,400")
	if err != nil {
		t.Fatal(err)
	}
	if b.X != 10 || b.Y != 20 || b.Width != 300 || b.Height != 400 {
		t.Errorf("got %+v, want {10 20 300 400}", b)
	}
}

func TestParseBounds_WithSpaces(t *testing.T) {
	b, err := ParseBounds("-10, 20, 300, 400")
	if err != nil {
		t.Fatal(err)
	}
	if b.X != -10 || b.Y != 20 || b.Width != 300 || b.Height != 400 {
		t.Errorf("got %+v, want {-10 20 300 400}", b)
	}
}

func TestParseBounds_Invalid(t *testing.T) {
	tests := []string{
		"",
		"10,20,300",
		"10,20,300,400,500",
		"a,b,c,d",
		"10,20,abc,400",
		"10,20,-1,400",
	}
	for _, s := range tests {
		_, err := ParseBounds(s)
		if err == nil {
			t.Errorf("ParseBounds(%q) should fail", s)
		}
	}
}

func TestScreenshotOptions_Normalize(t *testing.T) {
	opts := ScreenshotOptions{Scale: 3, Quality: 500}
	if err := opts.Normalize(); err != nil {
		t.Fatal(err)
	}
	if opts.Scale != 0.5 || opts.Format != "png" || opts.Quality != 80 {
		t.Errorf("defaults: %+v", opts)
	}
	bad := ScreenshotOptions{Format: "bmp"}
	if err := bad.Normalize(); err == nil {
		t.Error("expected error for bmp")
	}
}

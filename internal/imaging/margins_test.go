package imaging

import (
	"image"
	"image/color"
	"testing"
)

var (
	black = color.NRGBA{0, 0, 0, 255}
	white = color.NRGBA{255, 255, 255, 255}
	red   = color.NRGBA{200, 20, 20, 255}
)

// letterboxed draws a white content area surrounded by bars of the given color.
func letterboxed(w, h int, spec CropSpec, bar color.NRGBA) *image.NRGBA {
	img := newFilled(w, h, bar)
	for y := int(spec.Top); y < h-int(spec.Bottom); y++ {
		for x := int(spec.Left); x < w-int(spec.Right); x++ {
			img.SetNRGBA(x, y, white)
		}
	}
	return img
}

func TestDetectMargins(t *testing.T) {
	want := CropSpec{Top: 10, Bottom: 5, Left: 20, Right: 15}
	img := letterboxed(200, 100, want, black)

	got := DetectMargins(img, MarginOptions{})

	if got.Settings != want {
		t.Errorf("Settings: got %+v, want %+v", got.Settings, want)
	}
	if got.Width != 165 || got.Height != 85 {
		t.Errorf("result size: got %dx%d, want 165x85", got.Width, got.Height)
	}
}

func TestDetectMargins_NoBorder(t *testing.T) {
	got := DetectMargins(newGradient(64, 64), MarginOptions{})
	if !got.Settings.IsZero() {
		t.Errorf("Settings: got %+v, want zero", got.Settings)
	}
	if got.Width != 64 || got.Height != 64 {
		t.Errorf("result size: got %dx%d, want 64x64", got.Width, got.Height)
	}
}

func TestDetectMargins_UniformImage(t *testing.T) {
	got := DetectMargins(newFilled(30, 20, black), MarginOptions{})
	if !got.Settings.IsZero() {
		t.Errorf("Settings: got %+v, want zero", got.Settings)
	}
	if err := got.Settings.Validate(30, 20); err != nil {
		t.Errorf("suggestion does not validate: %v", err)
	}
}

func TestDetectMargins_DifferentBarColors(t *testing.T) {
	// A red status bar on top, black pillarbox bars on the sides.
	img := letterboxed(120, 80, CropSpec{Top: 8, Left: 12, Right: 12}, black)
	for y := 0; y < 8; y++ {
		for x := 0; x < 120; x++ {
			img.SetNRGBA(x, y, red)
		}
	}

	got := DetectMargins(img, MarginOptions{})
	want := CropSpec{Top: 8, Left: 12, Right: 12}
	if got.Settings != want {
		t.Errorf("Settings: got %+v, want %+v", got.Settings, want)
	}
}

func TestDetectMargins_Tolerance(t *testing.T) {
	img := letterboxed(50, 50, CropSpec{Top: 5, Bottom: 5}, black)
	// Slightly lifted blacks in the bar, as lossy encoders tend to produce.
	for x := 0; x < 50; x += 3 {
		img.SetNRGBA(x, 2, color.NRGBA{4, 3, 5, 255})
	}

	strict := DetectMargins(img, MarginOptions{Tolerance: 0.0001})
	if strict.Settings.Top != 2 {
		t.Errorf("strict Top: got %d, want 2", strict.Settings.Top)
	}

	loose := DetectMargins(img, MarginOptions{})
	if loose.Settings.Top != 5 {
		t.Errorf("default Top: got %d, want 5", loose.Settings.Top)
	}
}

func TestDetectMargins_Smoothing(t *testing.T) {
	want := CropSpec{Top: 12, Bottom: 12, Left: 16, Right: 16}
	img := letterboxed(160, 120, want, black)

	got := DetectMargins(img, MarginOptions{SmoothRadius: 1})

	within := func(name string, got, want uint32) {
		diff := int(want) - int(got)
		if diff < 0 || diff > 1 {
			t.Errorf("%s: got %d, want %d (or one less)", name, got, want)
		}
	}
	within("Top", got.Settings.Top, want.Top)
	within("Bottom", got.Settings.Bottom, want.Bottom)
	within("Left", got.Settings.Left, want.Left)
	within("Right", got.Settings.Right, want.Right)
}

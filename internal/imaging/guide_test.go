package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func decodeGuide(t *testing.T, result *PreviewResult) image.Image {
	t.Helper()
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(result.DataURI, PreviewDataURIPrefix))
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	return img
}

func rgbAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}

func TestRenderCropGuide(t *testing.T) {
	img := newFilled(100, 80, color.NRGBA{128, 128, 128, 255})
	spec := CropSpec{Top: 10, Bottom: 10, Left: 20, Right: 20}

	result, err := RenderCropGuide(img, spec, GuideOptions{})
	if err != nil {
		t.Fatalf("RenderCropGuide failed: %v", err)
	}

	// The guide shows the whole image, not the cropped one.
	if result.Width != 100 || result.Height != 80 {
		t.Errorf("dimensions: got %dx%d, want 100x80", result.Width, result.Height)
	}
	if !strings.HasPrefix(result.DataURI, PreviewDataURIPrefix) {
		t.Errorf("data URI does not start with %q", PreviewDataURIPrefix)
	}

	guide := decodeGuide(t, result)

	// Margins are darkened.
	for _, p := range []image.Point{{5, 5}, {50, 75}, {5, 40}, {95, 40}} {
		if r, _, _ := rgbAt(guide, p.X, p.Y); r >= 128 {
			t.Errorf("margin pixel %v should be shaded, got red=%d", p, r)
		}
	}

	// The kept region is untouched away from the outline.
	if r, g, b := rgbAt(guide, 50, 40); r != 128 || g != 128 || b != 128 {
		t.Errorf("kept pixel (50,40): got (%d,%d,%d), want (128,128,128)", r, g, b)
	}

	// The outline sits on the first and last kept columns and rows.
	for _, p := range []image.Point{{20, 40}, {79, 40}, {50, 10}, {50, 69}} {
		if r, g, b := rgbAt(guide, p.X, p.Y); r != 255 || g != 0 || b != 0 {
			t.Errorf("outline pixel %v: got (%d,%d,%d), want (255,0,0)", p, r, g, b)
		}
	}
}

func TestRenderCropGuide_ScalesBeforeDrawing(t *testing.T) {
	img := newFilled(1000, 500, color.NRGBA{200, 200, 200, 255})
	spec := CropSpec{Left: 100, Right: 100}

	result, err := RenderCropGuide(img, spec, GuideOptions{MaxSize: 200, Color: "#00FF00"})
	if err != nil {
		t.Fatalf("RenderCropGuide failed: %v", err)
	}
	if result.Width != 200 || result.Height != 100 {
		t.Fatalf("dimensions: got %dx%d, want 200x100", result.Width, result.Height)
	}

	guide := decodeGuide(t, result)
	for _, x := range []int{20, 179} {
		if r, g, b := rgbAt(guide, x, 50); r != 0 || g != 255 || b != 0 {
			t.Errorf("outline at x=%d: got (%d,%d,%d), want (0,255,0)", x, r, g, b)
		}
	}
	if r, _, _ := rgbAt(guide, 10, 50); r >= 200 {
		t.Errorf("left margin should be shaded, got red=%d", r)
	}
	if r, _, _ := rgbAt(guide, 100, 50); r != 200 {
		t.Errorf("kept pixel: got red=%d, want 200", r)
	}
}

func TestRenderCropGuide_ZeroSpecOutlinesBorder(t *testing.T) {
	img := newFilled(40, 30, color.NRGBA{0, 0, 255, 255})

	result, err := RenderCropGuide(img, CropSpec{}, GuideOptions{})
	if err != nil {
		t.Fatalf("RenderCropGuide failed: %v", err)
	}

	guide := decodeGuide(t, result)
	if r, g, b := rgbAt(guide, 0, 15); r != 255 || g != 0 || b != 0 {
		t.Errorf("border pixel: got (%d,%d,%d), want (255,0,0)", r, g, b)
	}
	if r, g, b := rgbAt(guide, 20, 15); r != 0 || g != 0 || b != 255 {
		t.Errorf("interior pixel: got (%d,%d,%d), want (0,0,255)", r, g, b)
	}
}

func TestRenderCropGuide_InvalidColorFallsBack(t *testing.T) {
	img := newFilled(50, 50, color.NRGBA{0, 0, 0, 255})

	for _, c := range []string{"", "invalid", "#FFF"} {
		result, err := RenderCropGuide(img, CropSpec{Left: 10}, GuideOptions{Color: c})
		if err != nil {
			t.Fatalf("RenderCropGuide(%q) failed: %v", c, err)
		}
		guide := decodeGuide(t, result)
		if r, g, b := rgbAt(guide, 10, 25); r != 255 || g != 0 || b != 0 {
			t.Errorf("color %q: outline got (%d,%d,%d), want default red", c, r, g, b)
		}
	}
}

func TestRenderCropGuide_Labels(t *testing.T) {
	img := newFilled(200, 100, color.NRGBA{128, 128, 128, 255})
	spec := CropSpec{Top: 30}

	result, err := RenderCropGuide(img, spec, GuideOptions{Labels: true})
	if err != nil {
		t.Fatalf("RenderCropGuide failed: %v", err)
	}

	guide := decodeGuide(t, result)
	hasWhite := false
	for y := 8; y < 22; y++ {
		for x := 90; x < 110; x++ {
			if r, g, b := rgbAt(guide, x, y); r == 255 && g == 255 && b == 255 {
				hasWhite = true
			}
		}
	}
	if !hasWhite {
		t.Error("top margin should carry a label")
	}
}

func TestRenderCropGuide_InvalidBounds(t *testing.T) {
	img := newFilled(50, 50, color.NRGBA{0, 0, 0, 255})

	_, err := RenderCropGuide(img, CropSpec{Left: 25, Right: 25}, GuideOptions{})

	var boundsErr *BoundsError
	if !errors.As(err, &boundsErr) {
		t.Fatalf("expected *BoundsError, got %v", err)
	}
}

func TestScaleRect_KeepsOnePixel(t *testing.T) {
	// A 1-pixel-wide kept column in a 1000px image still spans a pixel at 100px.
	r := scaleRect(image.Rect(500, 0, 501, 10), 1000, 10, 100, 10)
	if r.Dx() != 1 {
		t.Errorf("width: got %d, want 1", r.Dx())
	}

	r = scaleRect(image.Rect(999, 0, 1000, 10), 1000, 10, 100, 10)
	if r.Dx() != 1 || r.Max.X != 100 {
		t.Errorf("edge column: got %v", r)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		want    color.NRGBA
		wantErr bool
	}{
		{"#FF0000", color.NRGBA{255, 0, 0, 255}, false},
		{"#00FF00", color.NRGBA{0, 255, 0, 255}, false},
		{"#0000FF", color.NRGBA{0, 0, 255, 255}, false},
		{"FF0000", color.NRGBA{255, 0, 0, 255}, false},    // without #
		{"#FF000080", color.NRGBA{255, 0, 0, 128}, false}, // with alpha
		{"FF000080", color.NRGBA{255, 0, 0, 128}, false},  // without # with alpha
		{"", color.NRGBA{}, true},                         // empty
		{"#FFF", color.NRGBA{}, true},                     // invalid length
		{"#GGGGGG", color.NRGBA{}, true},                  // invalid hex
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			c, err := parseHexColor(tt.hex)

			if tt.wantErr {
				if err == nil {
					t.Error("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if c != tt.want {
				t.Errorf("got %v, want %v", c, tt.want)
			}
		})
	}
}

func TestDrawLabel_BoundsCheck(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	fg := color.NRGBA{255, 255, 255, 255}
	bg := color.NRGBA{0, 0, 0, 255}

	// These should not panic even if label extends past bounds
	drawLabel(img, 15, 15, "100100", fg, bg)
	drawLabel(img, 0, 0, "0", fg, bg)
	drawLabel(img, -5, -5, "12", fg, bg)
	drawLabel(img, 10, 10, "", fg, bg)
	drawLabel(img, 2, 2, "a1", fg, bg) // unknown runes leave a gap
}

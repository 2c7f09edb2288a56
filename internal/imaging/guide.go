package imaging

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strconv"

	"github.com/disintegration/imaging"
)

// DefaultGuideColor outlines the kept region when no color is given.
var DefaultGuideColor = color.NRGBA{255, 0, 0, 255}

// marginShade darkens the pixels a crop would remove.
var marginShade = color.NRGBA{0, 0, 0, 140}

// GuideOptions controls RenderCropGuide.
type GuideOptions struct {
	// MaxSize bounds both sides of the rendered guide; zero or less selects
	// DefaultPreviewSize.
	MaxSize int

	// Color is the outline color as "#RRGGBB" or "#RRGGBBAA". Empty or
	// invalid values fall back to DefaultGuideColor.
	Color string

	// Labels prints each non-zero margin, in source pixels, inside its band.
	Labels bool
}

// RenderCropGuide draws spec on top of the full, uncropped image: removed
// margins are shaded and the kept region is outlined. The image is scaled
// to fit MaxSize first so the outline stays one pixel wide at any size.
func RenderCropGuide(img image.Image, spec CropSpec, opts GuideOptions) (*PreviewResult, error) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if err := spec.Validate(w, h); err != nil {
		return nil, err
	}

	maxSize := opts.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultPreviewSize
	}
	canvas := imaging.Clone(fitWithin(img, maxSize))
	cw, ch := canvas.Bounds().Dx(), canvas.Bounds().Dy()

	kept := scaleRect(image.Rect(
		int(spec.Left), int(spec.Top),
		w-int(spec.Right), h-int(spec.Bottom),
	), w, h, cw, ch)

	shade := image.NewUniform(marginShade)
	for _, r := range marginBands(canvas.Bounds(), kept) {
		draw.Draw(canvas, r, shade, image.Point{}, draw.Over)
	}

	outline, err := parseHexColor(opts.Color)
	if err != nil {
		outline = DefaultGuideColor
	}
	drawOutline(canvas, kept, outline)

	if opts.Labels {
		labelMargins(canvas, kept, spec)
	}

	return newPreviewResult(canvas)
}

// scaleRect maps r from a w x h image onto a cw x ch one. The result keeps
// at least one pixel on each axis.
func scaleRect(r image.Rectangle, w, h, cw, ch int) image.Rectangle {
	sx := func(x int) int { return int(int64(x) * int64(cw) / int64(w)) }
	sy := func(y int) int { return int(int64(y) * int64(ch) / int64(h)) }

	out := image.Rect(sx(r.Min.X), sy(r.Min.Y), sx(r.Max.X), sy(r.Max.Y))
	if out.Dx() == 0 {
		if out.Max.X < cw {
			out.Max.X++
		} else {
			out.Min.X--
		}
	}
	if out.Dy() == 0 {
		if out.Max.Y < ch {
			out.Max.Y++
		} else {
			out.Min.Y--
		}
	}
	return out
}

// marginBands returns the top, bottom, left and right regions of b outside
// kept. Left and right only span the kept rows so corners are not shaded
// twice.
func marginBands(b, kept image.Rectangle) []image.Rectangle {
	return []image.Rectangle{
		image.Rect(b.Min.X, b.Min.Y, b.Max.X, kept.Min.Y),
		image.Rect(b.Min.X, kept.Max.Y, b.Max.X, b.Max.Y),
		image.Rect(b.Min.X, kept.Min.Y, kept.Min.X, kept.Max.Y),
		image.Rect(kept.Max.X, kept.Min.Y, b.Max.X, kept.Max.Y),
	}
}

func drawOutline(img draw.Image, r image.Rectangle, c color.NRGBA) {
	src := image.NewUniform(c)
	edges := []image.Rectangle{
		image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1),
		image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y),
		image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y),
		image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y),
	}
	for _, e := range edges {
		draw.Draw(img, e, src, image.Point{}, draw.Over)
	}
}

func labelMargins(img *image.NRGBA, kept image.Rectangle, spec CropSpec) {
	b := img.Bounds()
	fg := color.NRGBA{255, 255, 255, 255}
	bg := color.NRGBA{0, 0, 0, 255}

	place := func(value uint32, cx, cy int) {
		if value == 0 {
			return
		}
		text := strconv.FormatUint(uint64(value), 10)
		x := cx - labelWidth(text)/2
		y := cy - glyphHeight/2
		drawLabel(img, x, y, text, fg, bg)
	}

	midX := (kept.Min.X + kept.Max.X) / 2
	midY := (kept.Min.Y + kept.Max.Y) / 2
	place(spec.Top, midX, (b.Min.Y+kept.Min.Y)/2)
	place(spec.Bottom, midX, (kept.Max.Y+b.Max.Y)/2)
	place(spec.Left, (b.Min.X+kept.Min.X)/2, midY)
	place(spec.Right, (kept.Max.X+b.Max.X)/2, midY)
}

// parseHexColor parses a hex color string like "#FF0000" or "#FF000080"
func parseHexColor(hex string) (color.NRGBA, error) {
	if len(hex) == 0 {
		return color.NRGBA{}, fmt.Errorf("empty color string")
	}
	if hex[0] == '#' {
		hex = hex[1:]
	}

	var r, g, b, a uint8 = 0, 0, 0, 255

	switch len(hex) {
	case 6:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 16)
		g = uint8(val >> 8)
		b = uint8(val)
	case 8:
		val, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.NRGBA{}, err
		}
		r = uint8(val >> 24)
		g = uint8(val >> 16)
		b = uint8(val >> 8)
		a = uint8(val)
	default:
		return color.NRGBA{}, fmt.Errorf("invalid hex color length")
	}

	return color.NRGBA{R: r, G: g, B: b, A: a}, nil
}

// 3x5 pixel digits
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
}

const (
	glyphAdvance = 4
	glyphHeight  = 7
)

func labelWidth(text string) int {
	return len(text) * glyphAdvance
}

// drawLabel draws text on a background box with its top-left corner at
// (x, y). Pixels outside img are skipped and unknown runes leave a gap.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	bounds := img.Bounds()
	set := func(px, py int, c color.NRGBA) {
		if image.Pt(px, py).In(bounds) {
			img.SetNRGBA(px, py, c)
		}
	}

	// Draw background
	for dy := -1; dy < glyphHeight; dy++ {
		for dx := -1; dx < labelWidth(text); dx++ {
			set(x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, pixel := range line {
				if pixel == '1' {
					set(cx+col, y+row, fg)
				}
			}
		}
		cx += glyphAdvance
	}
}

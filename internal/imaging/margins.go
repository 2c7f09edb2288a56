package imaging

import (
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/lucasb-eyer/go-colorful"
)

// DefaultMarginTolerance is the largest CIE-Lab distance from an edge's
// reference color at which a pixel still counts as border. Plain letterbox
// bars with mild JPEG noise stay well below it.
const DefaultMarginTolerance = 0.05

// MarginOptions controls DetectMargins.
type MarginOptions struct {
	// Tolerance is the maximum Lab distance; zero or less selects
	// DefaultMarginTolerance.
	Tolerance float64

	// SmoothRadius applies a box blur before scanning when positive. Useful
	// for noisy sources; it can shift detected edges by up to the radius.
	SmoothRadius float64
}

// MarginDetection is a suggested CropSpec together with the size of the
// image that applying it would produce.
type MarginDetection struct {
	Settings CropSpec `json:"settings"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
}

// DetectMargins suggests crop margins by walking inward from each edge while
// whole rows (or columns) stay within the tolerance of that edge's reference
// pixel.
//
// Top and bottom are scanned first. Left and right only look at the rows that
// remain, so bars of different colors on different edges are handled. When
// the bars on an axis would consume the entire image that axis reports zero
// margins, so the suggestion always passes CropSpec.Validate.
func DetectMargins(img image.Image, opts MarginOptions) *MarginDetection {
	tolerance := opts.Tolerance
	if tolerance <= 0 {
		tolerance = DefaultMarginTolerance
	}

	src := img
	if opts.SmoothRadius > 0 {
		src = blur.Box(img, opts.SmoothRadius)
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	result := &MarginDetection{Width: w, Height: h}
	if w == 0 || h == 0 {
		return result
	}

	topRef := labAt(src, b.Min.X, b.Min.Y)
	top := countUniform(h, func(i int) bool {
		return rowWithin(src, b.Min.Y+i, b.Min.X, b.Max.X, topRef, tolerance)
	})
	bottomRef := labAt(src, b.Max.X-1, b.Max.Y-1)
	bottom := countUniform(h-top, func(i int) bool {
		return rowWithin(src, b.Max.Y-1-i, b.Min.X, b.Max.X, bottomRef, tolerance)
	})
	if top+bottom >= h {
		top, bottom = 0, 0
	}

	y0, y1 := b.Min.Y+top, b.Max.Y-bottom
	midY := (y0 + y1) / 2

	leftRef := labAt(src, b.Min.X, midY)
	left := countUniform(w, func(i int) bool {
		return columnWithin(src, b.Min.X+i, y0, y1, leftRef, tolerance)
	})
	rightRef := labAt(src, b.Max.X-1, midY)
	right := countUniform(w-left, func(i int) bool {
		return columnWithin(src, b.Max.X-1-i, y0, y1, rightRef, tolerance)
	})
	if left+right >= w {
		left, right = 0, 0
	}

	result.Settings = CropSpec{
		Top:    uint32(top),
		Bottom: uint32(bottom),
		Left:   uint32(left),
		Right:  uint32(right),
	}
	result.Width, result.Height = result.Settings.ResultSize(w, h)
	return result
}

func countUniform(limit int, uniform func(i int) bool) int {
	n := 0
	for n < limit && uniform(n) {
		n++
	}
	return n
}

func rowWithin(img image.Image, y, x0, x1 int, ref colorful.Color, tolerance float64) bool {
	for x := x0; x < x1; x++ {
		if labAt(img, x, y).DistanceLab(ref) > tolerance {
			return false
		}
	}
	return true
}

func columnWithin(img image.Image, x, y0, y1 int, ref colorful.Color, tolerance float64) bool {
	for y := y0; y < y1; y++ {
		if labAt(img, x, y).DistanceLab(ref) > tolerance {
			return false
		}
	}
	return true
}

// labAt returns the pixel at (x, y) as a colorful.Color. Fully transparent
// pixels compare as black.
func labAt(img image.Image, x, y int) colorful.Color {
	c, ok := colorful.MakeColor(img.At(x, y))
	if !ok {
		return colorful.Color{}
	}
	return c
}

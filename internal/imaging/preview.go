package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/png"

	"github.com/disintegration/imaging"
)

// DefaultPreviewSize bounds both preview sides when no size is requested.
const DefaultPreviewSize = 600

// PreviewDataURIPrefix starts every rendered preview.
const PreviewDataURIPrefix = "data:image/png;base64,"

// PreviewResult contains a cropped, downscaled PNG ready to embed in a UI.
type PreviewResult struct {
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	MimeType string `json:"mime_type"`
	DataURI  string `json:"data_uri"`
}

// RenderPreview crops img by spec and shrinks the result so neither side
// exceeds maxSize, preserving aspect ratio. Images that already fit are
// passed through unchanged; previews are never upscaled. A maxSize of zero
// or less selects DefaultPreviewSize.
//
// The output is always PNG, regardless of the source format.
func RenderPreview(img image.Image, spec CropSpec, maxSize int) (*PreviewResult, error) {
	if maxSize <= 0 {
		maxSize = DefaultPreviewSize
	}

	cropped, err := Crop(img, spec)
	if err != nil {
		return nil, err
	}

	return newPreviewResult(fitWithin(cropped, maxSize))
}

// newPreviewResult encodes img as PNG and wraps it in a data URI.
func newPreviewResult(img image.Image) (*PreviewResult, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, &EncodeError{Format: FormatPNG, Op: "encode", Err: err}
	}

	bounds := img.Bounds()
	return &PreviewResult{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		MimeType: FormatPNG.MIMEType(),
		DataURI:  PreviewDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()),
	}, nil
}

// fitWithin scales img by min(maxSize/w, maxSize/h), truncating each side
// toward zero. The limiting side lands exactly on maxSize; integer math keeps
// the other side free of floating point rounding. Sides never drop below 1.
func fitWithin(img image.Image, maxSize int) image.Image {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxSize && h <= maxSize {
		return img
	}

	var newW, newH int
	if w >= h {
		newW = maxSize
		newH = int(int64(h) * int64(maxSize) / int64(w))
	} else {
		newH = maxSize
		newW = int(int64(w) * int64(maxSize) / int64(h))
	}

	return imaging.Resize(img, max(newW, 1), max(newH, 1), imaging.Lanczos)
}

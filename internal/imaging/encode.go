package imaging

import (
	"bytes"
	"image"
	"io"
	"os"

	"github.com/disintegration/imaging"
)

// EncodeOptions tunes the lossy encoders used when saving crop results.
type EncodeOptions struct {
	// JPEGQuality ranges from 1 to 100. Zero selects DefaultJPEGQuality.
	JPEGQuality int

	// WebPLossless selects lossless WebP output. When false, WebPQuality applies.
	WebPLossless bool

	// WebPQuality ranges from 0 to 100 and only affects lossy WebP.
	WebPQuality float32
}

// DefaultJPEGQuality matches the imaging library's own default.
const DefaultJPEGQuality = 95

// DefaultEncodeOptions returns lossless WebP and quality 95 JPEG.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{
		JPEGQuality:  DefaultJPEGQuality,
		WebPLossless: true,
		WebPQuality:  90,
	}
}

var imagingFormats = map[Format]imaging.Format{
	FormatJPEG: imaging.JPEG,
	FormatPNG:  imaging.PNG,
	FormatGIF:  imaging.GIF,
	FormatBMP:  imaging.BMP,
	FormatTIFF: imaging.TIFF,
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format, opts EncodeOptions) error {
	if format == FormatWebP {
		return encodeWebP(w, img, opts)
	}

	target, ok := imagingFormats[format]
	if !ok {
		return &UnsupportedFormatError{Ext: string(format)}
	}

	quality := opts.JPEGQuality
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}
	return imaging.Encode(w, img, target, imaging.JPEGQuality(quality))
}

// Save encodes img in memory and then writes it to path, replacing any
// existing file. A failed encode leaves the filesystem untouched.
func Save(img image.Image, path string, format Format, opts EncodeOptions) error {
	var buf bytes.Buffer
	if err := Encode(&buf, img, format, opts); err != nil {
		return &EncodeError{Path: path, Format: format, Op: "encode", Err: err}
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return &EncodeError{Path: path, Format: format, Op: "write", Err: err}
	}
	return nil
}

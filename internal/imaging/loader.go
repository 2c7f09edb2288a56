package imaging

import (
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder
)

// Load opens and decodes the image at path. Every call reads the file again;
// decoded images are not kept between calls.
//
// The format is sniffed from the file contents, so a mislabeled extension
// still decodes. Any open or decode failure is returned as a *DecodeError.
func Load(path string) (image.Image, error) {
	img, err := imaging.Open(path)
	if err != nil {
		return nil, &DecodeError{Path: path, Err: err}
	}
	return img, nil
}

// ImageDescriptor describes an image file.
type ImageDescriptor struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the canonical format for the file extension, or "unknown".
	// Detection is based on file extension, not file contents.
	Format Format `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the decoded pixel type carries alpha.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the file on disk, or 0 if it could not be
	// stat'd after decoding.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// Inspect decodes the image at path and describes it.
//
// It fails only when the image cannot be decoded. An unrecognized extension
// is reported as FormatUnknown rather than an error.
func Inspect(path string) (*ImageDescriptor, error) {
	img, err := Load(path)
	if err != nil {
		return nil, err
	}

	format, err := ResolveFormat(path)
	if err != nil {
		format = FormatUnknown
	}

	var size int64
	if stat, err := os.Stat(path); err == nil {
		size = stat.Size()
	}

	hasAlpha, colorDepth := pixelTraits(img)
	bounds := img.Bounds()

	return &ImageDescriptor{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        format,
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: size,
	}, nil
}

func pixelTraits(img image.Image) (hasAlpha bool, colorDepth string) {
	colorDepth = "8-bit"
	switch img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}
	return hasAlpha, colorDepth
}

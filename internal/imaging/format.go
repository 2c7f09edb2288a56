package imaging

import (
	"path/filepath"
	"strings"
)

// Format is the canonical name of an image encoding.
type Format string

const (
	FormatJPEG    Format = "jpeg"
	FormatPNG     Format = "png"
	FormatWebP    Format = "webp"
	FormatBMP     Format = "bmp"
	FormatGIF     Format = "gif"
	FormatTIFF    Format = "tiff"
	FormatUnknown Format = "unknown"
)

func (f Format) String() string { return string(f) }

var formatsByExtension = map[string]Format{
	"jpg":  FormatJPEG,
	"jpeg": FormatJPEG,
	"png":  FormatPNG,
	"webp": FormatWebP,
	"bmp":  FormatBMP,
	"gif":  FormatGIF,
	"tif":  FormatTIFF,
	"tiff": FormatTIFF,
}

// ResolveFormat maps the extension of path to a Format. Only the extension is
// consulted, case-insensitively; file contents are never read.
//
// Unknown or missing extensions yield an *UnsupportedFormatError. Callers pick
// their own fallback: saving fails hard, inspection reports FormatUnknown.
func ResolveFormat(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if f, ok := formatsByExtension[strings.ToLower(ext)]; ok {
		return f, nil
	}
	return FormatUnknown, &UnsupportedFormatError{Ext: ext}
}

// MIMEType returns the media type for f, or "application/octet-stream" for
// FormatUnknown.
func (f Format) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	case FormatBMP:
		return "image/bmp"
	case FormatGIF:
		return "image/gif"
	case FormatTIFF:
		return "image/tiff"
	default:
		return "application/octet-stream"
	}
}

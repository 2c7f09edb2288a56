package imaging

import (
	"errors"
	"fmt"
)

// Axis names the dimension a crop margin pair applies to.
type Axis string

const (
	// AxisHorizontal is checked with left+right against the image width.
	AxisHorizontal Axis = "horizontal"
	// AxisVertical is checked with top+bottom against the image height.
	AxisVertical Axis = "vertical"
)

// DecodeError reports an image that could not be opened or decoded.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode image %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// BoundsError reports crop margins that leave no pixels on one axis.
//
// Sum is the offending margin total and Limit is the image size on that axis.
type BoundsError struct {
	Axis  Axis
	Sum   uint64
	Limit int
}

func (e *BoundsError) Error() string {
	if e.Axis == AxisHorizontal {
		return fmt.Sprintf("left+right crop (%d) must be less than image width (%d)", e.Sum, e.Limit)
	}
	return fmt.Sprintf("top+bottom crop (%d) must be less than image height (%d)", e.Sum, e.Limit)
}

// UnsupportedFormatError reports a file extension that maps to no known format.
// Ext is the extension as given, without the leading dot.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported image format: %q", e.Ext)
}

// EncodeError reports a failure producing or persisting output bytes.
// Op is "encode" or "write".
type EncodeError struct {
	Path   string
	Format Format
	Op     string
	Err    error
}

func (e *EncodeError) Error() string {
	switch {
	case e.Op == "write":
		return fmt.Sprintf("failed to write %s: %v", e.Path, e.Err)
	case e.Path == "":
		return fmt.Sprintf("failed to encode %s image: %v", e.Format, e.Err)
	default:
		return fmt.Sprintf("failed to encode %s image for %s: %v", e.Format, e.Path, e.Err)
	}
}

func (e *EncodeError) Unwrap() error { return e.Err }

// ErrorKind classifies err into one of "decode", "bounds", "format", "encode"
// or "other". It is used as a low-cardinality metrics label.
func ErrorKind(err error) string {
	var (
		decodeErr *DecodeError
		boundsErr *BoundsError
		formatErr *UnsupportedFormatError
		encodeErr *EncodeError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &decodeErr):
		return "decode"
	case errors.As(err, &boundsErr):
		return "bounds"
	case errors.As(err, &formatErr):
		return "format"
	case errors.As(err, &encodeErr):
		return "encode"
	default:
		return "other"
	}
}

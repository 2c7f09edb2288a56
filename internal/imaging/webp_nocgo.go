//go:build !cgo

package imaging

import (
	"errors"
	"image"
	"io"
)

const webpEncodingAvailable = false

var errWebPRequiresCgo = errors.New("webp encoding requires a cgo-enabled build")

func encodeWebP(io.Writer, image.Image, EncodeOptions) error {
	return errWebPRequiresCgo
}

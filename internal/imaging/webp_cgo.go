//go:build cgo

package imaging

import (
	"image"
	"io"

	"github.com/chai2010/webp"
)

// webpEncodingAvailable reports whether this build can write WebP files.
const webpEncodingAvailable = true

// encodeWebP uses libwebp through cgo; the pure-Go x/image/webp package can
// only decode.
func encodeWebP(w io.Writer, img image.Image, opts EncodeOptions) error {
	return webp.Encode(w, img, &webp.Options{
		Lossless: opts.WebPLossless,
		Quality:  opts.WebPQuality,
	})
}

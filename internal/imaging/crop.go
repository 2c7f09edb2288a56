package imaging

import (
	"image"

	"github.com/disintegration/imaging"
)

// Crop removes the margins described by spec from img and returns the
// remaining region as a new image. The source image is never modified.
//
// The region runs from (left, top) inclusive to (width-right, height-bottom)
// exclusive, relative to img.Bounds().Min. A *BoundsError is returned when the
// spec leaves no pixels on either axis.
func Crop(img image.Image, spec CropSpec) (*image.NRGBA, error) {
	bounds := img.Bounds()
	if err := spec.Validate(bounds.Dx(), bounds.Dy()); err != nil {
		return nil, err
	}

	region := image.Rect(
		bounds.Min.X+int(spec.Left),
		bounds.Min.Y+int(spec.Top),
		bounds.Max.X-int(spec.Right),
		bounds.Max.Y-int(spec.Bottom),
	)
	return imaging.Crop(img, region), nil
}

// CropFile crops the image at inputPath and writes the result to outputPath,
// replacing any existing file. The output encoding follows the extension of
// outputPath. The input file is left untouched.
//
// The first failure is returned as one of *DecodeError, *BoundsError,
// *UnsupportedFormatError or *EncodeError. Nothing is written unless every
// step up to and including encoding succeeded.
func CropFile(inputPath, outputPath string, spec CropSpec, opts EncodeOptions) error {
	img, err := Load(inputPath)
	if err != nil {
		return err
	}

	cropped, err := Crop(img, spec)
	if err != nil {
		return err
	}

	format, err := ResolveFormat(outputPath)
	if err != nil {
		return err
	}

	return Save(cropped, outputPath, format, opts)
}

package imaging

// CropSpec holds the number of pixels to remove from each edge of an image.
//
// A CropSpec is not tied to any image; Validate checks it against concrete
// dimensions right before it is applied.
type CropSpec struct {
	Top    uint32 `json:"top"`
	Bottom uint32 `json:"bottom"`
	Left   uint32 `json:"left"`
	Right  uint32 `json:"right"`
}

// IsZero reports whether the spec removes nothing.
func (s CropSpec) IsZero() bool {
	return s.Top == 0 && s.Bottom == 0 && s.Left == 0 && s.Right == 0
}

// Validate checks that the spec leaves at least one pixel on both axes of a
// width x height image. It returns a *BoundsError naming the first failing
// axis, horizontal first.
func (s CropSpec) Validate(width, height int) error {
	horizontal := uint64(s.Left) + uint64(s.Right)
	if width <= 0 || horizontal >= uint64(width) {
		return &BoundsError{Axis: AxisHorizontal, Sum: horizontal, Limit: width}
	}
	vertical := uint64(s.Top) + uint64(s.Bottom)
	if height <= 0 || vertical >= uint64(height) {
		return &BoundsError{Axis: AxisVertical, Sum: vertical, Limit: height}
	}
	return nil
}

// ResultSize returns the dimensions left after applying the spec. The caller
// must have validated the spec against the same dimensions.
func (s CropSpec) ResultSize(width, height int) (int, int) {
	return width - int(s.Left) - int(s.Right), height - int(s.Top) - int(s.Bottom)
}

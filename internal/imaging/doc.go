// Package imaging implements the single-image operations behind the crop
// server: margin validation, cropping, format resolution, encoding, inspection,
// preview and crop-guide rendering, border detection and crop presets.
//
// Every function is stateless. Images are decoded fresh on each call and no
// package-level mutable state exists, so all functions are safe to call
// concurrently.
//
// # Coordinate System
//
// Margins in a CropSpec are pixel counts measured inward from each edge. A
// spec applied to a W x H image keeps the region from (left, top) inclusive to
// (W-right, H-bottom) exclusive. The spec is valid only while left+right < W
// and top+bottom < H.
//
// # Formats
//
// Reading sniffs file contents and supports JPEG, PNG, GIF, BMP, TIFF and
// WebP. Writing picks the encoder from the output extension (matched
// case-insensitively):
//   - .jpg, .jpeg -> jpeg
//   - .png -> png
//   - .webp -> webp (requires cgo)
//   - .bmp -> bmp
//   - .gif -> gif
//   - .tif, .tiff -> tiff
//
// # Error Handling
//
// Failures are typed so callers can tell them apart with errors.As:
//   - *DecodeError: the source could not be opened or decoded
//   - *BoundsError: margins leave no pixels on an axis
//   - *UnsupportedFormatError: the output extension has no encoder
//   - *EncodeError: encoding or writing the output failed
package imaging

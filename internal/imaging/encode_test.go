package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestSave_WriteFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "out.png")

	err := Save(newGradient(4, 4), path, FormatPNG, DefaultEncodeOptions())
	var encodeErr *EncodeError
	if !errors.As(err, &encodeErr) {
		t.Fatalf("Save error: got %v, want *EncodeError", err)
	}
	if encodeErr.Op != "write" {
		t.Errorf("Op: got %s, want write", encodeErr.Op)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist: %v", err)
	}
}

func TestEncode_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Encode(&buf, newGradient(4, 4), FormatUnknown, DefaultEncodeOptions())
	var formatErr *UnsupportedFormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("Encode error: got %v, want *UnsupportedFormatError", err)
	}
}

func TestEncode_JPEGQualityAffectsSize(t *testing.T) {
	img := newGradient(128, 128)

	var low, high bytes.Buffer
	if err := Encode(&low, img, FormatJPEG, EncodeOptions{JPEGQuality: 10}); err != nil {
		t.Fatalf("Encode low failed: %v", err)
	}
	if err := Encode(&high, img, FormatJPEG, EncodeOptions{JPEGQuality: 100}); err != nil {
		t.Fatalf("Encode high failed: %v", err)
	}
	if low.Len() >= high.Len() {
		t.Errorf("quality 10 (%d bytes) should be smaller than quality 100 (%d bytes)", low.Len(), high.Len())
	}
}

func TestErrorKind(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&DecodeError{Path: "a", Err: errors.New("x")}, "decode"},
		{&BoundsError{Axis: AxisVertical}, "bounds"},
		{&UnsupportedFormatError{Ext: "txt"}, "format"},
		{&EncodeError{Op: "write", Err: errors.New("x")}, "encode"},
		{fmt.Errorf("wrapped: %w", &BoundsError{}), "bounds"},
		{errors.New("something else"), "other"},
	}

	for _, tt := range tests {
		if got := ErrorKind(tt.err); got != tt.want {
			t.Errorf("ErrorKind(%v): got %q, want %q", tt.err, got, tt.want)
		}
	}
}

package imaging

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestCropFile_WebP(t *testing.T) {
	dir := t.TempDir()
	input := writePNG(t, dir, "input.png", newGradient(40, 30))
	output := filepath.Join(dir, "output.WEBP")

	err := CropFile(input, output, CropSpec{Top: 5, Right: 10}, DefaultEncodeOptions())

	if !webpEncodingAvailable {
		var encodeErr *EncodeError
		if !errors.As(err, &encodeErr) {
			t.Fatalf("CropFile error: got %v, want *EncodeError", err)
		}
		if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
			t.Error("output should not exist after a failed encode")
		}
		return
	}

	if err != nil {
		t.Fatalf("CropFile failed: %v", err)
	}
	w, h := dimensionsOf(t, output)
	if w != 30 || h != 25 {
		t.Errorf("dimensions: got %dx%d, want 30x25", w, h)
	}

	info, err := Inspect(output)
	if err != nil {
		t.Fatalf("Inspect failed: %v", err)
	}
	if info.Format != FormatWebP {
		t.Errorf("Format: got %s, want webp", info.Format)
	}
}

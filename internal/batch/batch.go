// Package batch applies one crop to many image files.
//
// Every path is processed independently and in order. A failure is recorded
// in that path's Outcome and the batch moves on; nothing is retried.
package batch

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/ironsheep/image-crop-mcp/internal/imaging"
)

// OutputSuffix is appended to the input stem to name crop results.
const OutputSuffix = "_cropped"

// Outcome is the result of cropping one input path.
type Outcome struct {
	InputPath  string `json:"input_path"`
	OutputPath string `json:"output_path"`
	Success    bool   `json:"success"`
	Error      string `json:"error,omitempty"`

	// Err keeps the typed failure for errors.As; it is not serialized.
	Err error `json:"-"`
}

// Options configures a batch run.
type Options struct {
	// OutputDir, when set, receives every output file. It is created if it
	// does not exist. When empty, outputs are written next to their inputs.
	OutputDir string

	// Encode tunes lossy output encoders.
	Encode imaging.EncodeOptions
}

// OutputPath derives the output file for input: "<stem>_cropped.<ext>",
// placed in outputDir if given, else in the input's own directory. The
// extension keeps its original case.
func OutputPath(input, outputDir string) string {
	base := filepath.Base(input)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	name := stem + OutputSuffix + "." + strings.TrimPrefix(ext, ".")

	if outputDir != "" {
		return filepath.Join(outputDir, name)
	}
	return filepath.Join(filepath.Dir(input), name)
}

// Crop applies spec to every path and returns one Outcome per path, in input
// order. It never stops early.
func Crop(paths []string, spec imaging.CropSpec, opts Options) []Outcome {
	var dirErr error
	if opts.OutputDir != "" {
		if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
			dirErr = &imaging.EncodeError{Path: opts.OutputDir, Op: "write", Err: err}
		}
	}

	outcomes := make([]Outcome, 0, len(paths))
	for _, input := range paths {
		output := OutputPath(input, opts.OutputDir)

		err := dirErr
		if err == nil {
			err = imaging.CropFile(input, output, spec, opts.Encode)
		}
		outcomes = append(outcomes, newOutcome(input, output, err))
	}
	return outcomes
}

func newOutcome(input, output string, err error) Outcome {
	o := Outcome{
		InputPath:  input,
		OutputPath: output,
		Success:    err == nil,
		Err:        err,
	}
	if err != nil {
		o.Error = err.Error()
	}
	return o
}

// Summary counts the results of a batch.
type Summary struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Summarize tallies outcomes.
func Summarize(outcomes []Outcome) Summary {
	s := Summary{Total: len(outcomes)}
	for _, o := range outcomes {
		if o.Success {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}

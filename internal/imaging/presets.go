package imaging

import "strings"

// Preset is a named CropSpec tuned for a particular capture size.
type Preset struct {
	Name         string   `json:"name"`
	SourceWidth  int      `json:"source_width"`
	SourceHeight int      `json:"source_height"`
	Settings     CropSpec `json:"settings"`
}

// Matches reports whether an image of width x height is the size the preset
// was made for.
func (p Preset) Matches(width, height int) bool {
	return p.SourceWidth == width && p.SourceHeight == height
}

var builtinPresets = []Preset{
	// GameCube capture, 1920x1080 with pillarbox bars and a bottom overlay.
	{
		Name:         "GC",
		SourceWidth:  1920,
		SourceHeight: 1080,
		Settings:     CropSpec{Top: 0, Bottom: 60, Left: 280, Right: 280},
	},
	// Game Boy Advance capture, 1280x720.
	{
		Name:         "GBA",
		SourceWidth:  1280,
		SourceHeight: 720,
		Settings:     CropSpec{Top: 22, Bottom: 58, Left: 160, Right: 160},
	},
}

// Presets returns a copy of the built-in presets.
func Presets() []Preset {
	out := make([]Preset, len(builtinPresets))
	copy(out, builtinPresets)
	return out
}

// LookupPreset finds a built-in preset by name, ignoring case.
func LookupPreset(name string) (Preset, bool) {
	for _, p := range builtinPresets {
		if strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return Preset{}, false
}

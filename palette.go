package mandel

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// Palette is a named set of three color stops.
//
// Stop 1 colors points that escape immediately, stop 2 is the linear
// midpoint of the gradient, stop 3 colors points that never escape.
type Palette struct {
	Name  string
	Stops [3]Color
}

// Built-in presets. Names are matched case-insensitively by PresetByName.
var presets = []Palette{
	{Name: "classic", Stops: [3]Color{RGB8(0, 7, 100), RGB8(237, 255, 255), RGB8(0, 2, 0)}},
	{Name: "fire", Stops: [3]Color{RGB8(20, 0, 0), RGB8(255, 160, 0), RGB8(255, 255, 200)}},
	{Name: "ocean", Stops: [3]Color{RGB8(0, 20, 40), RGB8(0, 160, 200), RGB8(230, 250, 255)}},
	{Name: "forest", Stops: [3]Color{RGB8(10, 25, 10), RGB8(90, 170, 60), RGB8(250, 240, 180)}},
	{Name: "grayscale", Stops: [3]Color{RGB8(0, 0, 0), RGB8(128, 128, 128), RGB8(255, 255, 255)}},
	{Name: "neon", Stops: [3]Color{RGB8(20, 0, 40), RGB8(255, 0, 200), RGB8(0, 255, 230)}},
}

// RandomPreset is the preset name that resolves to freshly drawn random stops.
const RandomPreset = "random"

// DefaultPalette is used by NewController when no stops are configured.
func DefaultPalette() Palette {
	return presets[0]
}

// Presets returns the built-in palettes sorted by name.
func Presets() []Palette {
	out := make([]Palette, len(presets))
	copy(out, presets)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// PresetNames returns the names accepted by PresetByName, including
// RandomPreset.
func PresetNames() []string {
	names := make([]string, 0, len(presets)+1)
	for _, p := range Presets() {
		names = append(names, p.Name)
	}
	return append(names, RandomPreset)
}

// PresetByName resolves a preset selection to its three stops.
// Matching ignores case and surrounding whitespace. The name "random"
// draws new stops on every call.
func PresetByName(name string) (Palette, error) {
	folder := cases.Fold()
	key := folder.String(strings.TrimSpace(name))
	if key == RandomPreset {
		return Palette{Name: RandomPreset, Stops: RandomStops(nil)}, nil
	}
	for _, p := range presets {
		if folder.String(p.Name) == key {
			return p, nil
		}
	}
	return Palette{}, fmt.Errorf("mandel: unknown preset %q (known: %s)", name, strings.Join(PresetNames(), ", "))
}

// RandomStops draws three colors with uniformly random 8-bit components.
// A nil rng uses the global source.
func RandomStops(rng *rand.Rand) [3]Color {
	component := func() uint8 {
		if rng == nil {
			return uint8(rand.IntN(256))
		}
		return uint8(rng.IntN(256))
	}
	var stops [3]Color
	for i := range stops {
		stops[i] = RGB8(component(), component(), component())
	}
	return stops
}

package mandel

import (
	"math/rand/v2"
	"slices"
	"testing"
)

func TestPresetByNameCaseInsensitive(t *testing.T) {
	fire, err := PresetByName("fire")
	if err != nil {
		t.Fatalf("PresetByName(fire) = %v", err)
	}
	for _, name := range []string{"FIRE", "Fire", "  fIrE  "} {
		got, err := PresetByName(name)
		if err != nil {
			t.Errorf("PresetByName(%q) error = %v", name, err)
			continue
		}
		if got != fire {
			t.Errorf("PresetByName(%q) = %+v, want %+v", name, got, fire)
		}
	}
}

func TestPresetByNameUnknown(t *testing.T) {
	if _, err := PresetByName("sepia"); err == nil {
		t.Error("PresetByName(sepia) = nil error, want failure")
	}
}

func TestPresetByNameRandom(t *testing.T) {
	p, err := PresetByName("Random")
	if err != nil {
		t.Fatalf("PresetByName(Random) = %v", err)
	}
	if p.Name != RandomPreset {
		t.Errorf("Name = %q, want %q", p.Name, RandomPreset)
	}
	for i, s := range p.Stops {
		if !s.IsValid() {
			t.Errorf("random stop %d = %+v is not a valid color", i, s)
		}
	}
}

func TestPresetNames(t *testing.T) {
	names := PresetNames()
	if names[len(names)-1] != RandomPreset {
		t.Errorf("last name = %q, want %q", names[len(names)-1], RandomPreset)
	}
	if !slices.IsSorted(names[:len(names)-1]) {
		t.Errorf("preset names not sorted: %v", names)
	}
	if !slices.Contains(names, DefaultPalette().Name) {
		t.Errorf("names %v do not include the default palette", names)
	}
}

func TestPresetsAreValid(t *testing.T) {
	for _, p := range Presets() {
		for i, s := range p.Stops {
			if !s.IsValid() {
				t.Errorf("preset %q stop %d = %+v invalid", p.Name, i, s)
			}
		}
	}
}

func TestRandomStopsDeterministic(t *testing.T) {
	a := RandomStops(rand.New(rand.NewPCG(1, 2)))
	b := RandomStops(rand.New(rand.NewPCG(1, 2)))
	if a != b {
		t.Errorf("RandomStops with equal seeds differ: %+v vs %+v", a, b)
	}
	for i, s := range a {
		r, g, bb := s.RGB8()
		if RGB8(r, g, bb) != s {
			t.Errorf("stop %d = %+v is not an 8-bit color", i, s)
		}
	}
}

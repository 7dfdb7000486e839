package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/driftfield/internal/field"
)

// Presets adjust the defaults; each func mutates a fresh copy.
var Presets = map[string]func(*Config){
	"pollen": func(c *Config) {},
	"dense": func(c *Config) {
		c.Field.Count = 400
		c.Field.Radius = field.Range{Min: 0.5, Max: 1.5}
	},
	"calm": func(c *Config) {
		c.Field.Velocity = field.Range{Min: -0.1, Max: 0.1}
		c.Field.ReturnDamping = 25
		c.Field.Density = field.Range{Min: 1, Max: 11}
	},
	"storm": func(c *Config) {
		c.Field.Count = 250
		c.Field.Velocity = field.Range{Min: -1, Max: 1}
		c.Field.InfluenceRadius = 160
		c.Field.Density = field.Range{Min: 1, Max: 61}
		c.Field.Alpha = field.Range{Min: 0.1, Max: 0.5}
	},
}

func GetPreset(name string) (*Config, error) {
	cfg := DefaultConfig()
	if err := cfg.ApplyPreset(name); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ApplyPreset layers a preset over c, so a preset can refine a loaded file.
func (c *Config) ApplyPreset(name string) error {
	apply, ok := Presets[name]
	if !ok {
		return fmt.Errorf("%w: %s (available: %v)", ErrUnknownPreset, name, ListPresets())
	}
	apply(c)
	return nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

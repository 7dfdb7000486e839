// Package config loads driftfield settings from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"image/color"
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/san-kum/driftfield/internal/field"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

var (
	ErrUnknownPreset = errors.New("config: unknown preset")
	ErrInvalid       = errors.New("config: invalid configuration")
)

type Config struct {
	Viewport ViewportConfig `yaml:"viewport"`
	Field    FieldConfig    `yaml:"field"`
	Display  DisplayConfig  `yaml:"display"`
	Run      RunConfig      `yaml:"run"`
}

type ViewportConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type FieldConfig struct {
	Count           int         `yaml:"count"`
	InfluenceRadius float64     `yaml:"influence_radius"`
	ReturnDamping   float64     `yaml:"return_damping"`
	Velocity        field.Range `yaml:"velocity"`
	Radius          field.Range `yaml:"radius"`
	Alpha           field.Range `yaml:"alpha"`
	Density         field.Range `yaml:"density"`
	Color           string      `yaml:"color"`
}

type DisplayConfig struct {
	Background string `yaml:"background"`
	TPS        int    `yaml:"tps"`
	ShowHUD    bool   `yaml:"show_hud"`
	Cursor     bool   `yaml:"cursor"`
	Theme      string `yaml:"theme"`
}

type RunConfig struct {
	Seed        int64  `yaml:"seed"`
	Ticks       int    `yaml:"ticks"`
	Pointer     string `yaml:"pointer"`
	SampleEvery int    `yaml:"sample_every"`
}

// DefaultConfig returns the embedded defaults. It panics only if the
// embedded file is malformed.
func DefaultConfig() *Config {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Load overlays the file at path on top of the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Clone() *Config {
	cp := *c
	return &cp
}

func (c *Config) Validate() error {
	if c.Viewport.Width <= 0 || c.Viewport.Height <= 0 {
		return fmt.Errorf("%w: viewport %dx%d", ErrInvalid, c.Viewport.Width, c.Viewport.Height)
	}
	if c.Display.TPS < 0 {
		return fmt.Errorf("%w: tps must be non-negative", ErrInvalid)
	}
	if c.Run.Ticks < 0 {
		return fmt.Errorf("%w: ticks must be non-negative", ErrInvalid)
	}
	if c.Run.SampleEvery < 0 {
		return fmt.Errorf("%w: sample_every must be non-negative", ErrInvalid)
	}
	if _, err := c.BackgroundColor(); err != nil {
		return err
	}
	params, err := c.FieldParams()
	if err != nil {
		return err
	}
	return params.Validate()
}

// FieldParams converts the field section into construction parameters.
func (c *Config) FieldParams() (field.Params, error) {
	hue, err := parseHex(c.Field.Color)
	if err != nil {
		return field.Params{}, err
	}
	return field.Params{
		Count:           c.Field.Count,
		InfluenceRadius: c.Field.InfluenceRadius,
		ReturnDamping:   c.Field.ReturnDamping,
		Velocity:        c.Field.Velocity,
		Radius:          c.Field.Radius,
		Alpha:           c.Field.Alpha,
		Density:         c.Field.Density,
		Hue:             field.RGB{R: hue.R, G: hue.G, B: hue.B},
	}, nil
}

func (c *Config) BackgroundColor() (color.RGBA, error) {
	return parseHex(c.Display.Background)
}

func (c *Config) Bounds() field.Bounds {
	return field.NewBounds(c.Viewport.Width, c.Viewport.Height)
}

func parseHex(s string) (color.RGBA, error) {
	col, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: color %q: %v", ErrInvalid, s, err)
	}
	r, g, b := col.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}

// Package config loads mask box configurations from YAML or TOML files.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/dim"
)

// Format is a configuration file syntax.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

// ErrUnknownFormat is returned for file extensions other than .yaml, .yml
// and .toml.
var ErrUnknownFormat = errors.New("config: unknown file format")

// FormatOf picks the format from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
}

// File is the on-disk shape of a mask box configuration.
//
// Example (YAML):
//
//	direction: left
//	angle: 30
//	width: 640
//	padding: 8
//	shadow:
//	  color: "#ffcc00"
//	  style: dark
//	preview:
//	  start: 0
//	  end: 60
//	  duration: 1500
//	  uTurn: true
type File struct {
	Direction dim.Direction `yaml:"direction" toml:"direction"`
	Angle     float64       `yaml:"angle" toml:"angle"`
	Width     float64       `yaml:"width" toml:"width"`
	Height    float64       `yaml:"height" toml:"height"`
	Padding   float64       `yaml:"padding" toml:"padding"`

	Shadow     Shadow     `yaml:"shadow" toml:"shadow"`
	Controller Controller `yaml:"controller" toml:"controller"`

	// Preview, when present, is played once the images are ready.
	Preview *Preview `yaml:"preview" toml:"preview"`
}

// Shadow mirrors dim.ShadowConfig with a hex color.
type Shadow struct {
	Size    float64 `yaml:"size" toml:"size"`
	Opacity float64 `yaml:"opacity" toml:"opacity"`
	Color   string  `yaml:"color" toml:"color"`
	Style   string  `yaml:"style" toml:"style"`
}

// Controller mirrors dim.ControllerConfig with a hex color.
type Controller struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Color  string  `yaml:"color" toml:"color"`
}

// Preview is a preview request. Duration is in milliseconds; a missing
// end means 100.
type Preview struct {
	Start    float64  `yaml:"start" toml:"start"`
	End      *float64 `yaml:"end" toml:"end"`
	Duration float64  `yaml:"duration" toml:"duration"`
	UTurn    bool     `yaml:"uTurn" toml:"uTurn"`
}

// Load reads and parses the file at path, picking the format from its
// extension.
func Load(path string) (*File, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes data in the given format.
func Parse(data []byte, format Format) (*File, error) {
	var f File
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &f)
	case FormatTOML:
		err = toml.Unmarshal(data, &f)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownFormat, int(format))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := f.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &f, nil
}

// maxDurationMs is the longest preview a time.Duration can hold.
const maxDurationMs = float64(math.MaxInt64 / int64(time.Millisecond))

func (f *File) validate() error {
	switch dim.ShadowStyle(f.Shadow.Style) {
	case "", dim.ShadowLight, dim.ShadowDark:
	default:
		return fmt.Errorf("shadow style %q is neither light nor dark", f.Shadow.Style)
	}
	if p := f.Preview; p != nil {
		switch d := p.Duration; {
		case math.IsNaN(d) || math.IsInf(d, 0):
			return fmt.Errorf("preview duration %v is not finite", d)
		case d < 0:
			return fmt.Errorf("preview duration %v is negative", d)
		case d > maxDurationMs:
			return fmt.Errorf("preview duration %v ms is out of range", d)
		}
	}
	return nil
}

// Config converts the file to a dim.Config with cosmetic defaults applied.
// The box size may still be zero; see dim.Config.FitImage.
func (f *File) Config() dim.Config {
	cfg := dim.Config{
		Direction: f.Direction,
		Angle:     f.Angle,
		Width:     f.Width,
		Height:    f.Height,
		Padding:   f.Padding,
		Shadow: dim.ShadowConfig{
			Size:    f.Shadow.Size,
			Opacity: f.Shadow.Opacity,
			Style:   dim.ShadowStyle(f.Shadow.Style),
		},
		Controller: dim.ControllerConfig{
			Width:  f.Controller.Width,
			Height: f.Controller.Height,
		},
	}
	if f.Shadow.Color != "" {
		cfg.Shadow.Color = dim.Hex(f.Shadow.Color)
	}
	if f.Controller.Color != "" {
		cfg.Controller.Color = dim.Hex(f.Controller.Color)
	}
	return cfg.WithDefaults()
}

// PreviewRequest returns the configured preview, if any.
func (f *File) PreviewRequest() (dim.PreviewRequest, bool) {
	if f.Preview == nil {
		return dim.PreviewRequest{}, false
	}
	req := dim.PreviewRequest{
		Start:    f.Preview.Start,
		End:      100,
		Duration: time.Duration(f.Preview.Duration * float64(time.Millisecond)),
		UTurn:    f.Preview.UTurn,
	}
	if f.Preview.End != nil {
		req.End = *f.Preview.End
	}
	return req.Normalize(), true
}

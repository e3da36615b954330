package dim

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/text/cases"
)

// Direction is the edge the revealed region grows toward while the handle
// travels along its axis.
type Direction int

const (
	// DirectionRight moves the handle left to right (default).
	DirectionRight Direction = iota
	// DirectionLeft moves the handle right to left.
	DirectionLeft
	// DirectionUp moves the handle bottom to top.
	DirectionUp
	// DirectionDown moves the handle top to bottom.
	DirectionDown
)

var directionNames = [...]string{
	DirectionRight: "right",
	DirectionLeft:  "left",
	DirectionUp:    "up",
	DirectionDown:  "down",
}

// String returns the lower-case direction name.
func (d Direction) String() string {
	if d < 0 || int(d) >= len(directionNames) {
		return fmt.Sprintf("Direction(%d)", int(d))
	}
	return directionNames[d]
}

// IsHorizontal reports whether the handle travels along the X axis.
func (d Direction) IsHorizontal() bool {
	return d != DirectionUp && d != DirectionDown
}

// Reversed reports whether the handle starts at the far edge of its axis
// (left and up), which also mirrors the mask gradient stops.
func (d Direction) Reversed() bool {
	return d == DirectionLeft || d == DirectionUp
}

// ParseDirection parses a direction name case-insensitively.
// The empty string selects DirectionRight.
func ParseDirection(s string) (Direction, error) {
	name := cases.Fold().String(strings.TrimSpace(s))
	if name == "" {
		return DirectionRight, nil
	}
	for d, n := range directionNames {
		if n == name {
			return Direction(d), nil
		}
	}
	return DirectionRight, fmt.Errorf("%w: %q", ErrUnknownDirection, s)
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d < 0 || int(d) >= len(directionNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownDirection, int(d))
	}
	return []byte(directionNames[d]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ShadowStyle selects the fade color of the handle shadow.
type ShadowStyle string

const (
	ShadowLight ShadowStyle = "light"
	ShadowDark  ShadowStyle = "dark"
)

// ShadowConfig describes the glow drawn behind the handle. It is cosmetic;
// the geometry ignores it.
type ShadowConfig struct {
	Size    float64
	Opacity float64
	Color   RGBA
	Style   ShadowStyle
}

// ControllerConfig describes the drag handle. It is cosmetic; the geometry
// ignores it.
type ControllerConfig struct {
	Width  float64
	Height float64
	Color  RGBA
}

// Config is the immutable description of a mask box. Replace it through
// Engine.Configure rather than mutating a live copy.
type Config struct {
	Direction Direction
	// Angle of the mask edge in degrees. Any finite value is accepted.
	Angle float64
	// Width and Height of the outer box in pixels, padding included.
	Width, Height float64
	// Padding is the uniform inset between the box and the images.
	Padding float64

	Shadow     ShadowConfig
	Controller ControllerConfig
}

// Default cosmetic values.
const (
	DefaultShadowSize       = 64
	DefaultShadowOpacity    = 0.5
	DefaultControllerWidth  = 48
	DefaultControllerHeight = 48
)

// DefaultAccent is the shadow and controller color used when none is set.
var DefaultAccent = Hex("#ffcc00")

// WithDefaults returns a copy of c with zero cosmetic fields filled in.
func (c Config) WithDefaults() Config {
	if c.Shadow.Size == 0 {
		c.Shadow.Size = DefaultShadowSize
	}
	if c.Shadow.Opacity == 0 {
		c.Shadow.Opacity = DefaultShadowOpacity
	}
	if c.Shadow.Color == (RGBA{}) {
		c.Shadow.Color = DefaultAccent
	}
	if c.Shadow.Style == "" {
		c.Shadow.Style = ShadowLight
	}
	if c.Controller.Width == 0 {
		c.Controller.Width = DefaultControllerWidth
	}
	if c.Controller.Height == 0 {
		c.Controller.Height = DefaultControllerHeight
	}
	if c.Controller.Color == (RGBA{}) {
		c.Controller.Color = DefaultAccent
	}
	return c
}

// Validate checks that the box is usable: all values finite, padding not
// negative and both dimensions larger than twice the padding.
func (c Config) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"angle", c.Angle},
		{"width", c.Width},
		{"height", c.Height},
		{"padding", c.Padding},
	} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("%w: %s is not finite", ErrInvalidConfig, f.name)
		}
	}
	if c.Direction < DirectionRight || c.Direction > DirectionDown {
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, ErrUnknownDirection, int(c.Direction))
	}
	if c.Padding < 0 {
		return fmt.Errorf("%w: padding %v is negative", ErrInvalidConfig, c.Padding)
	}
	if c.Width <= c.Padding*2 {
		return fmt.Errorf("%w: width %v must exceed twice the padding %v", ErrInvalidConfig, c.Width, c.Padding)
	}
	if c.Height <= c.Padding*2 {
		return fmt.Errorf("%w: height %v must exceed twice the padding %v", ErrInvalidConfig, c.Height, c.Padding)
	}
	return nil
}

// UsableWidth is the image width inside the padding.
func (c Config) UsableWidth() float64 { return c.Width - c.Padding*2 }

// UsableHeight is the image height inside the padding.
func (c Config) UsableHeight() float64 { return c.Height - c.Padding*2 }

// usableAxis is the usable length along the handle axis.
func (c Config) usableAxis() float64 {
	if c.Direction.IsHorizontal() {
		return c.UsableWidth()
	}
	return c.UsableHeight()
}

// FitImage fills in a missing box size from an image, the way the overlay
// widget sizes itself: a zero Width takes the image width, and a zero
// Height keeps the image aspect ratio inside the padding.
func (c Config) FitImage(imageWidth, imageHeight float64) Config {
	if imageWidth <= 0 || imageHeight <= 0 {
		return c
	}
	if c.Width == 0 {
		c.Width = imageWidth
	}
	if c.Height == 0 {
		ratio := (c.Width - c.Padding*2) / imageWidth
		c.Height = imageHeight*ratio + c.Padding*2
	}
	return c
}

// FoldedAngle folds the angle into [0, 180]. The mask sweep is symmetric
// past a half turn.
func (c Config) FoldedAngle() float64 {
	a := math.Mod(math.Abs(c.Angle), 360)
	if a > 180 {
		a = 360 - a
	}
	return a
}

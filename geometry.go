package dim

import (
	"fmt"
	"math"
)

// degenerateEpsilon bounds |cos| below which the track is treated as unbounded.
const degenerateEpsilon = 1e-9

// RangeModel is the handle track derived from a Config.
//
// Position is the committed base offset that drag displacements and
// animation offsets are added to. LastPosition is the most recently
// committed projection. Both stay within [Min, Max].
type RangeModel struct {
	Horizontal bool

	Min, Max float64

	// GradientLength is the projected length of the mask sweep along the
	// rotated gradient line.
	GradientLength float64
	// TrackLength is the handle travel that produces one full sweep.
	TrackLength float64

	Position     float64
	LastPosition float64

	cosIncidence float64
}

// ComputeRange derives the handle track for cfg.
//
// Degenerate angles are not special-cased: a vertical box at 90 degrees
// divides by cos(90°) and yields a non-finite TrackLength. Use
// Degenerate or ComputeRangeStrict to detect it.
func ComputeRange(cfg Config) RangeModel {
	angle := cfg.FoldedAngle()
	width := cfg.UsableWidth()
	height := cfg.UsableHeight()

	r := RangeModel{Horizontal: cfg.Direction.IsHorizontal()}

	var radian1, radian2 float64
	switch {
	case r.Horizontal:
		r.Max = cfg.Width
		radian1 = math.Abs(angle-90) * math.Pi / 180
		radian2 = angle * math.Pi / 180
	case angle <= 90:
		r.Max = cfg.Height
		radian1 = angle * math.Pi / 180
		radian2 = radian1
	default:
		r.Max = cfg.Height
		radian1 = (180 - angle) * math.Pi / 180
		radian2 = angle * math.Pi / 180
	}

	r.cosIncidence = math.Cos(radian2)
	r.GradientLength = math.Sin(radian1)*width + math.Cos(radian1)*height
	r.TrackLength = r.GradientLength / r.cosIncidence

	if cfg.Direction.Reversed() {
		r.Position = r.Max
	}
	r.LastPosition = r.Position
	return r
}

// ComputeRangeStrict is ComputeRange with degenerate geometry reported as
// ErrDegenerateGeometry instead of a non-finite track.
func ComputeRangeStrict(cfg Config) (RangeModel, error) {
	r := ComputeRange(cfg)
	if r.Degenerate() {
		return r, fmt.Errorf("%w: direction %s, angle %v", ErrDegenerateGeometry, cfg.Direction, cfg.Angle)
	}
	return r, nil
}

// Degenerate reports whether the track length is unbounded or not a number.
func (r RangeModel) Degenerate() bool {
	return math.Abs(r.cosIncidence) < degenerateEpsilon ||
		math.IsNaN(r.TrackLength) || math.IsInf(r.TrackLength, 0)
}

// Clamp restricts p to [Min, Max].
func (r RangeModel) Clamp(p float64) float64 {
	if p < r.Min {
		return r.Min
	}
	if p > r.Max {
		return r.Max
	}
	return p
}

// Percent converts an axis offset in pixels to a percentage of Max.
func (r RangeModel) Percent(p float64) float64 {
	if r.Max == 0 {
		return 0
	}
	return p / r.Max * 100
}

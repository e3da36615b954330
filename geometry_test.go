package dim

import (
	"errors"
	"math"
	"testing"
)

// tolerance for floating point comparisons
const geomEpsilon = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func box(dir Direction, angle, w, h, padding float64) Config {
	return Config{Direction: dir, Angle: angle, Width: w, Height: h, Padding: padding}
}

func TestComputeRangeStartingEdge(t *testing.T) {
	tests := []struct {
		dir  Direction
		want float64
	}{
		{DirectionRight, 0},
		{DirectionDown, 0},
		{DirectionLeft, 320},
		{DirectionUp, 180},
	}
	for _, angle := range []float64{0, 30, 45, 135, 200, -60, 720} {
		for _, tt := range tests {
			r := ComputeRange(box(tt.dir, angle, 320, 180, 10))
			if r.Position != tt.want {
				t.Errorf("%s @%v: Position = %v, want %v", tt.dir, angle, r.Position, tt.want)
			}
			if r.LastPosition != r.Position {
				t.Errorf("%s @%v: LastPosition = %v, want %v", tt.dir, angle, r.LastPosition, r.Position)
			}
			if r.Min != 0 {
				t.Errorf("%s @%v: Min = %v, want 0", tt.dir, angle, r.Min)
			}
		}
	}
}

func TestComputeRangeAxis(t *testing.T) {
	tests := []struct {
		dir        Direction
		horizontal bool
		max        float64
	}{
		{DirectionRight, true, 320},
		{DirectionLeft, true, 320},
		{DirectionUp, false, 180},
		{DirectionDown, false, 180},
	}
	for _, tt := range tests {
		r := ComputeRange(box(tt.dir, 10, 320, 180, 0))
		if r.Horizontal != tt.horizontal {
			t.Errorf("%s: Horizontal = %v, want %v", tt.dir, r.Horizontal, tt.horizontal)
		}
		if r.Max != tt.max {
			t.Errorf("%s: Max = %v, want %v", tt.dir, r.Max, tt.max)
		}
	}
}

func TestComputeRangeLengths(t *testing.T) {
	s2 := math.Sqrt2
	tests := []struct {
		name     string
		cfg      Config
		gradient float64
		track    float64
	}{
		{"horizontal 0deg", box(DirectionRight, 0, 200, 100, 0), 200, 200},
		{"horizontal 0deg padded", box(DirectionRight, 0, 200, 100, 10), 180, 180},
		{"horizontal 45deg square", box(DirectionRight, 45, 100, 100, 0), 100 * s2, 200},
		{"horizontal 135deg square", box(DirectionLeft, 135, 100, 100, 0), 100 * s2, -200},
		{"vertical 0deg", box(DirectionDown, 0, 100, 200, 0), 200, 200},
		{"vertical 45deg square", box(DirectionUp, 45, 100, 100, 0), 100 * s2, 200},
		{"vertical 135deg square", box(DirectionDown, 135, 100, 100, 0), 100 * s2, -200},
		{"vertical 180deg", box(DirectionDown, 180, 100, 200, 0), 200, -200},
		{"negative angle folds", box(DirectionRight, -45, 100, 100, 0), 100 * s2, 200},
		{"past half turn folds", box(DirectionRight, 315, 100, 100, 0), 100 * s2, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ComputeRange(tt.cfg)
			if !almostEqual(r.GradientLength, tt.gradient, 1e-6) {
				t.Errorf("GradientLength = %v, want %v", r.GradientLength, tt.gradient)
			}
			if !almostEqual(r.TrackLength, tt.track, 1e-6) {
				t.Errorf("TrackLength = %v, want %v", r.TrackLength, tt.track)
			}
			if r.Degenerate() {
				t.Error("Degenerate() = true, want false")
			}
		})
	}
}

func TestComputeRangeDegenerate(t *testing.T) {
	for _, cfg := range []Config{
		box(DirectionDown, 90, 100, 200, 0),
		box(DirectionUp, -90, 100, 200, 5),
		box(DirectionRight, 90, 200, 100, 0),
		box(DirectionLeft, 270, 200, 100, 0),
	} {
		r := ComputeRange(cfg)
		if !r.Degenerate() {
			t.Errorf("%s @%v: Degenerate() = false, track = %v", cfg.Direction, cfg.Angle, r.TrackLength)
		}
		if math.Abs(r.TrackLength) < 1e12 {
			t.Errorf("%s @%v: TrackLength = %v, want unbounded", cfg.Direction, cfg.Angle, r.TrackLength)
		}

		_, err := ComputeRangeStrict(cfg)
		if !errors.Is(err, ErrDegenerateGeometry) {
			t.Errorf("%s @%v: ComputeRangeStrict err = %v, want ErrDegenerateGeometry", cfg.Direction, cfg.Angle, err)
		}
	}

	if _, err := ComputeRangeStrict(box(DirectionDown, 30, 100, 200, 0)); err != nil {
		t.Errorf("ComputeRangeStrict(30deg) = %v, want nil", err)
	}
}

func TestRangeModelClamp(t *testing.T) {
	r := ComputeRange(box(DirectionRight, 0, 200, 100, 0))
	tests := []struct {
		in, want float64
	}{
		{-1e9, 0},
		{-1, 0},
		{0, 0},
		{75.5, 75.5},
		{200, 200},
		{201, 200},
		{math.Inf(1), 200},
	}
	for _, tt := range tests {
		if got := r.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := r.Percent(50); got != 25 {
		t.Errorf("Percent(50) = %v, want 25", got)
	}
}

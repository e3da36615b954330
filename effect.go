package dim

import "math"

// EffectResult is the per-tick output handed to a Renderer.
type EffectResult struct {
	// Position is the clamped handle offset along the axis.
	Position float64
	// Translate is the handle offset in box pixels.
	Translate Point
	// Overflow is how far the diagonal track runs past the usable axis.
	Overflow float64
	// Gradient is the mask image for the overlay.
	Gradient MaskGradient
}

// Transform returns the handle translation as an affine matrix.
func (r EffectResult) Transform() Matrix {
	return Translate(r.Translate.X, r.Translate.Y)
}

// Splice is shorthand for r.Gradient.Splice.
func (r EffectResult) Splice() float64 { return r.Gradient.Splice }

// Project converts a displacement (dx, dy) from the range's committed
// position into a handle translation and a mask gradient, painting the
// mask with Black and Transparent.
//
// Project is pure: it never changes r. Only the component along the
// active axis is used.
func Project(r RangeModel, cfg Config, dx, dy float64) EffectResult {
	return projectWith(r, cfg, dx, dy, Black, Transparent)
}

// projectWith is Project with explicit opaque and clear mask colors.
func projectWith(r RangeModel, cfg Config, dx, dy float64, opaque, clear RGBA) EffectResult {
	delta := dy
	if r.Horizontal {
		delta = dx
	}
	position := r.Clamp(r.Position + delta)

	res := EffectResult{Position: position}
	if r.Horizontal {
		res.Translate = Pt(position, 0)
		res.Gradient.Angle = cfg.Angle - 90
	} else {
		res.Translate = Pt(0, position)
		res.Gradient.Angle = cfg.Angle
	}

	res.Overflow = r.TrackLength - cfg.usableAxis()
	cos := math.Cos(cfg.Angle * math.Pi / 180)
	res.Gradient.Splice = r.GradientLength - (position-cfg.Padding+res.Overflow/2)*cos

	if cfg.Direction.Reversed() {
		res.Gradient.Leading, res.Gradient.Trailing = opaque, clear
	} else {
		res.Gradient.Leading, res.Gradient.Trailing = clear, opaque
	}
	return res
}

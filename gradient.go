package dim

import (
	"math"
	"sort"
	"strings"
)

// GradientStop represents a color at a pixel offset along a gradient line.
type GradientStop struct {
	Offset float64 // Distance from the start of the gradient line, in px
	Color  RGBA
}

// MaskGradient is a hard-edged linear gradient used as a mask image.
// The mask is Leading up to Splice and Trailing past it.
//
// Angle follows the CSS linear-gradient convention: 0 points to the top
// of the box and angles grow clockwise.
type MaskGradient struct {
	Angle    float64 // Gradient line direction in degrees
	Splice   float64 // Offset along the line where the mask flips
	Leading  RGBA    // Color before the splice
	Trailing RGBA    // Color after the splice
}

// Stops returns the four stops of the gradient for a line of the given
// length: Leading at 0 and Splice, Trailing at Splice and length.
// As in CSS, a stop placed before its predecessor is moved up to it, so a
// splice outside [0, length] yields a single-color mask.
func (g MaskGradient) Stops(length float64) []GradientStop {
	stops := []GradientStop{
		{Offset: 0, Color: g.Leading},
		{Offset: g.Splice, Color: g.Leading},
		{Offset: g.Splice, Color: g.Trailing},
		{Offset: length, Color: g.Trailing},
	}
	for i := 1; i < len(stops); i++ {
		if stops[i].Offset < stops[i-1].Offset {
			stops[i].Offset = stops[i-1].Offset
		}
	}
	return stops
}

// String formats the gradient as a CSS mask-image value:
//
//	linear-gradient(<angle>deg,<leading>,<leading> <splice>px,<trailing> <splice>px,<trailing>)
func (g MaskGradient) String() string {
	var sb strings.Builder
	sb.WriteString("linear-gradient(")
	sb.WriteString(num(g.Angle))
	sb.WriteString("deg,")
	lead, trail := g.Leading.CSS(), g.Trailing.CSS()
	sb.WriteString(lead + "," + lead + " " + px(g.Splice) + ",")
	sb.WriteString(trail + " " + px(g.Splice) + "," + trail + ")")
	return sb.String()
}

// direction returns the unit vector of the gradient line in screen space.
func (g MaskGradient) direction() Point {
	rad := g.Angle * math.Pi / 180
	// CSS 0deg points up; rotate the up vector clockwise by the angle.
	return Rotate(rad).TransformVector(Pt(0, -1))
}

// Length returns the length of the gradient line for a w x h box. The line
// passes through the box center and is long enough for the perpendicular
// lines through the corners to touch its ends.
func (g MaskGradient) Length(w, h float64) float64 {
	rad := g.Angle * math.Pi / 180
	return math.Abs(w*math.Sin(rad)) + math.Abs(h*math.Cos(rad))
}

// Line returns the start and end points of the gradient line for a w x h box.
func (g MaskGradient) Line(w, h float64) (start, end Point) {
	center := Pt(w/2, h/2)
	half := g.direction().Mul(g.Length(w, h) / 2)
	return center.Sub(half), center.Add(half)
}

// OffsetAt projects (x, y) onto the gradient line of a w x h box and
// returns its distance from the line start in px.
func (g MaskGradient) OffsetAt(x, y, w, h float64) float64 {
	start, _ := g.Line(w, h)
	return Pt(x, y).Sub(start).Dot(g.direction())
}

// ColorAt returns the mask color at (x, y) in a w x h box.
func (g MaskGradient) ColorAt(x, y, w, h float64) RGBA {
	return colorAtOffset(g.Stops(g.Length(w, h)), g.OffsetAt(x, y, w, h))
}

// AlphaAt returns the mask alpha at (x, y) in a w x h box.
func (g MaskGradient) AlphaAt(x, y, w, h float64) float64 {
	return g.ColorAt(x, y, w, h).A
}

// colorAtOffset returns the color at offset t of an ordered stop list.
// Coincident stops form a hard edge; the later stop wins at the edge.
// Offsets outside the list extend the edge colors.
func colorAtOffset(stops []GradientStop, t float64) RGBA {
	if len(stops) == 0 {
		return Transparent
	}
	if len(stops) == 1 {
		return stops[0].Color
	}

	idx := sort.Search(len(stops), func(i int) bool {
		return stops[i].Offset > t
	})

	if idx == 0 {
		return stops[0].Color
	}
	if idx >= len(stops) {
		return stops[len(stops)-1].Color
	}

	stop1 := stops[idx-1]
	stop2 := stops[idx]

	if stop2.Offset == stop1.Offset {
		return stop1.Color
	}

	localT := (t - stop1.Offset) / (stop2.Offset - stop1.Offset)
	return stop1.Color.Lerp(stop2.Color, localT)
}

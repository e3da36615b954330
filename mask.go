package dim

import (
	"image"
	"image/draw"

	"golang.org/x/image/vector"
)

// Mask represents an alpha mask for compositing the overlay.
// Values range from 0 (fully transparent) to 255 (fully opaque).
type Mask struct {
	img *image.Alpha
}

// NewMask creates a new empty mask with the given dimensions.
// All values are initialized to 0 (fully transparent).
func NewMask(width, height int) *Mask {
	return &Mask{img: image.NewAlpha(image.Rect(0, 0, width, height))}
}

// NewMaskFromAlpha creates a mask from an image's alpha channel.
func NewMaskFromAlpha(img image.Image) *Mask {
	bounds := img.Bounds()
	mask := NewMask(bounds.Dx(), bounds.Dy())
	draw.Draw(mask.img, mask.img.Bounds(), img, bounds.Min, draw.Src)
	return mask
}

// Bounds returns the mask dimensions as an image.Rectangle.
func (m *Mask) Bounds() image.Rectangle { return m.img.Rect }

// Width returns the mask width.
func (m *Mask) Width() int { return m.img.Rect.Dx() }

// Height returns the mask height.
func (m *Mask) Height() int { return m.img.Rect.Dy() }

// At returns the mask value at (x, y).
// Returns 0 for coordinates outside the mask bounds.
func (m *Mask) At(x, y int) uint8 {
	if !(image.Point{X: x, Y: y}).In(m.img.Rect) {
		return 0
	}
	return m.img.Pix[m.img.PixOffset(x, y)]
}

// Set sets the mask value at (x, y).
// Coordinates outside the mask bounds are ignored.
func (m *Mask) Set(x, y int, value uint8) {
	if !(image.Point{X: x, Y: y}).In(m.img.Rect) {
		return
	}
	m.img.Pix[m.img.PixOffset(x, y)] = value
}

// Fill fills the entire mask with a value.
func (m *Mask) Fill(value uint8) {
	for i := range m.img.Pix {
		m.img.Pix[i] = value
	}
}

// Invert inverts all mask values (255 - value).
func (m *Mask) Invert() {
	for i := range m.img.Pix {
		m.img.Pix[i] = 255 - m.img.Pix[i]
	}
}

// Clone creates a copy of the mask.
func (m *Mask) Clone() *Mask {
	clone := NewMask(m.Width(), m.Height())
	copy(clone.img.Pix, m.img.Pix)
	return clone
}

// Alpha returns the mask as an *image.Alpha sharing its pixels, suitable
// as the mask argument of draw.DrawMask.
func (m *Mask) Alpha() *image.Alpha { return m.img }

// Coverage returns the mean opacity of the mask in [0, 1].
func (m *Mask) Coverage() float64 {
	if len(m.img.Pix) == 0 {
		return 0
	}
	var sum uint64
	for _, v := range m.img.Pix {
		sum += uint64(v)
	}
	return float64(sum) / float64(len(m.img.Pix)*255)
}

// RasterizeMask renders g over a width x height box. The edge at the splice
// is anti-aliased; both sides take the alpha of their stop color.
func RasterizeMask(g MaskGradient, width, height int) *Mask {
	mask := NewMask(width, height)
	if width <= 0 || height <= 0 {
		return mask
	}

	lead := uint8(clamp255(g.Leading.A*255 + 0.5))
	trail := uint8(clamp255(g.Trailing.A*255 + 0.5))
	mask.Fill(lead)
	if lead == trail {
		return mask
	}

	w, h := float64(width), float64(height)
	start, _ := g.Line(w, h)
	dir := g.direction()
	box := []Point{Pt(0, 0), Pt(w, 0), Pt(w, h), Pt(0, h)}
	poly := clipHalfPlane(box, func(p Point) float64 {
		return p.Sub(start).Dot(dir) - g.Splice
	})
	if len(poly) < 3 {
		return mask
	}

	cov := image.NewAlpha(mask.img.Rect)
	z := vector.NewRasterizer(width, height)
	z.MoveTo(float32(poly[0].X), float32(poly[0].Y))
	for _, p := range poly[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()
	z.Draw(cov, cov.Bounds(), image.Opaque, image.Point{})

	for i, c := range cov.Pix {
		if c == 0 {
			continue
		}
		t := float64(c) / 255
		mask.img.Pix[i] = uint8(clamp255(float64(lead) + (float64(trail)-float64(lead))*t + 0.5))
	}
	return mask
}

// clipHalfPlane clips a convex polygon to the region where side(p) >= 0
// (Sutherland-Hodgman against a single edge).
func clipHalfPlane(poly []Point, side func(Point) float64) []Point {
	out := make([]Point, 0, len(poly)+1)
	for i, cur := range poly {
		prev := poly[(i+len(poly)-1)%len(poly)]
		sc, sp := side(cur), side(prev)
		if sc >= 0 {
			if sp < 0 {
				out = append(out, intersect(prev, cur, sp, sc))
			}
			out = append(out, cur)
		} else if sp >= 0 {
			out = append(out, intersect(prev, cur, sp, sc))
		}
	}
	return out
}

func intersect(a, b Point, sa, sb float64) Point {
	return a.Lerp(b, sa/(sa-sb))
}

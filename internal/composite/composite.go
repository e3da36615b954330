// Package composite renders mask box frames into images: the background,
// the overlay masked by the current gradient, and the drag handle.
package composite

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	// Decoders for background and overlay images.
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
	_ "golang.org/x/image/webp"

	"github.com/gogpu/dim"
)

// handleSegments is the number of polygon edges used for the handle disc.
const handleSegments = 32

// Compositor draws frames for one configuration. Images are scaled to the
// usable area once, at construction.
type Compositor struct {
	cfg        dim.Config
	size       image.Rectangle
	inner      image.Rectangle
	background *image.RGBA
	overlay    *image.RGBA
}

// New prepares a compositor. Either image may be nil; a nil background
// leaves the box transparent and a nil overlay is drawn as opaque white.
func New(cfg dim.Config, background, overlay image.Image) *Compositor {
	w := int(math.Ceil(cfg.Width))
	h := int(math.Ceil(cfg.Height))
	p := int(math.Round(cfg.Padding))
	c := &Compositor{
		cfg:   cfg,
		size:  image.Rect(0, 0, w, h),
		inner: image.Rect(p, p, w-p, h-p),
	}
	c.background = scaled(background, c.inner.Dx(), c.inner.Dy(), nil)
	c.overlay = scaled(overlay, c.inner.Dx(), c.inner.Dy(), image.White)
	return c
}

// scaled resizes img to w x h with bilinear filtering, painting fallback
// instead when img is nil.
func scaled(img image.Image, w, h int, fallback image.Image) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	switch {
	case img != nil:
		xdraw.BiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	case fallback != nil:
		xdraw.Draw(dst, dst.Bounds(), fallback, image.Point{}, xdraw.Src)
	}
	return dst
}

// Bounds returns the frame size.
func (c *Compositor) Bounds() image.Rectangle { return c.size }

// Render draws one frame for res.
func (c *Compositor) Render(res dim.EffectResult) *image.RGBA {
	dst := image.NewRGBA(c.size)
	xdraw.Draw(dst, c.inner, c.background, image.Point{}, xdraw.Src)

	mask := dim.RasterizeMask(res.Gradient, c.inner.Dx(), c.inner.Dy())
	xdraw.DrawMask(dst, c.inner, c.overlay, image.Point{}, mask.Alpha(), image.Point{}, xdraw.Over)

	center := c.handleCenter(res)
	c.drawShadow(dst, center)
	c.drawHandle(dst, center)
	return dst
}

// handleCenter returns the handle position in frame pixels. The handle
// box sits on the middle line of the cross axis and is translated along
// the travel axis.
func (c *Compositor) handleCenter(res dim.EffectResult) dim.Point {
	anchor := dim.Pt(0, c.cfg.Height/2)
	if !c.cfg.Direction.IsHorizontal() {
		anchor = dim.Pt(c.cfg.Width/2, 0)
	}
	return res.Transform().TransformPoint(anchor)
}

// drawShadow paints the glow trailing the handle: a strip Shadow.Size deep
// on the overlay side, fading from the shadow color at the handle to
// transparent, rotated with the mask edge. The strip is ten box lengths
// long so it spans the frame at any angle.
func (c *Compositor) drawShadow(dst *image.RGBA, center dim.Point) {
	sh := c.cfg.Shadow
	if sh.Size <= 0 || sh.Opacity <= 0 || sh.Color.IsTransparent() {
		return
	}

	var trail dim.Point
	half := 5 * c.cfg.Height
	switch c.cfg.Direction {
	case dim.DirectionRight:
		trail = dim.Pt(-1, 0)
	case dim.DirectionLeft:
		trail = dim.Pt(1, 0)
	case dim.DirectionDown:
		trail, half = dim.Pt(0, -1), 5*c.cfg.Width
	default:
		trail, half = dim.Pt(0, 1), 5*c.cfg.Width
	}
	rot := dim.Rotate(c.cfg.Angle * math.Pi / 180)
	trail = rot.TransformVector(trail)
	across := dim.Pt(-trail.Y, trail.X).Mul(half)

	far := center.Add(trail.Mul(sh.Size))
	corners := []dim.Point{
		center.Sub(across), center.Add(across),
		far.Add(across), far.Sub(across),
	}

	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	z.MoveTo(float32(corners[0].X), float32(corners[0].Y))
	for _, p := range corners[1:] {
		z.LineTo(float32(p.X), float32(p.Y))
	}
	z.ClosePath()

	fade := dim.RGBA{R: 1, G: 1, B: 1}
	if sh.Style == dim.ShadowDark {
		fade = dim.RGBA{}
	}
	from := sh.Color
	from.A *= sh.Opacity
	fill := &shadowFill{bounds: b, origin: center, trail: trail, size: sh.Size, from: from, to: fade}
	z.Draw(dst, b, fill, b.Min)
}

// shadowFill is an image whose color fades along trail, from the handle
// to size pixels away. Colors interpolate unpremultiplied, so a light
// shadow washes out toward white and a dark one toward black.
type shadowFill struct {
	bounds        image.Rectangle
	origin, trail dim.Point
	size          float64
	from, to      dim.RGBA
}

func (s *shadowFill) ColorModel() color.Model { return color.NRGBAModel }

func (s *shadowFill) Bounds() image.Rectangle { return s.bounds }

func (s *shadowFill) At(x, y int) color.Color {
	d := dim.Pt(float64(x)+0.5, float64(y)+0.5).Sub(s.origin).Dot(s.trail) / s.size
	return s.from.Lerp(s.to, math.Max(0, math.Min(1, d))).Color()
}

// drawHandle paints the controller disc centered on the handle.
func (c *Compositor) drawHandle(dst *image.RGBA, center dim.Point) {
	r := math.Min(c.cfg.Controller.Width, c.cfg.Controller.Height) / 2
	if r <= 0 {
		return
	}

	b := dst.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())
	for i := 0; i < handleSegments; i++ {
		a := 2 * math.Pi * float64(i) / handleSegments
		x := float32(center.X + r*math.Cos(a))
		y := float32(center.Y + r*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
	z.Draw(dst, b, image.NewUniform(c.cfg.Controller.Color), image.Point{})
}

// LoadImage decodes a PNG, JPEG, WebP or BMP file.
func LoadImage(path string) (image.Image, error) {
	f, err := os.Open(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

// SavePNG writes img to path.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

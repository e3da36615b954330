// Package dim computes the geometry and timing of a draggable image mask.
//
// # Overview
//
// A mask box shows a background image with an overlay on top. A handle
// travels along one axis of the box and the overlay is masked by a
// hard-edged linear gradient whose edge follows the handle at an
// arbitrary angle. dim turns a box configuration and a handle
// displacement into that gradient and the handle translation; the host
// applies them to whatever it renders with (DOM, canvas, images).
//
// # Quick Start
//
//	cfg := dim.Config{Direction: dim.DirectionRight, Angle: 30, Width: 400, Height: 300}
//	e, err := dim.NewEngine(cfg, dim.WithRenderer(dim.RenderFunc(func(r dim.EffectResult) {
//	    handle.Style.Transform = r.Transform().CSS()
//	    overlay.Style.MaskImage = r.Gradient.String()
//	})))
//
//	// Pointer input
//	e.BeginDrag()
//	e.DragTo(dx, dy)
//	e.EndDrag()
//
//	// Scripted sweep, held back until the images have loaded
//	e.Preview(dim.PreviewRequest{Start: 0, End: 100, Duration: time.Second, UTurn: true})
//	e.MarkReady()
//
// # Architecture
//
//   - ComputeRange: Config → RangeModel (track length, gradient length, axis bounds)
//   - Project: RangeModel + Config + displacement → EffectResult
//   - Animator: timed sweep between two percentages, optionally with a u-turn
//   - Engine: owns the state, serializes drags and previews, drives the ticker
//   - RasterizeMask: software rendering of a MaskGradient into an alpha Mask
//
// # Coordinate System
//
//   - Origin (0,0) at the top-left of the box
//   - X increases right, Y increases down
//   - Gradient angles in degrees, CSS convention: 0 points up, clockwise
package dim

package dim

import "time"

// Option configures an Engine during creation.
// Use functional options to customize Engine behavior.
//
// Example:
//
//	// Timer-driven previews, results sent to a renderer
//	e, err := dim.NewEngine(cfg, dim.WithRenderer(view))
//
//	// Frame-driven previews stepped from a game loop
//	e, err := dim.NewEngine(cfg, dim.WithRenderer(view), dim.WithManualTicks())
type Option func(*engineOptions)

// engineOptions holds optional configuration for Engine creation.
type engineOptions struct {
	renderer     Renderer
	newTicker    NewTickerFunc
	tickInterval time.Duration
	ready        bool
	manual       bool
	opaque       RGBA
	clear        RGBA
}

// defaultOptions returns the default engine options.
func defaultOptions() engineOptions {
	return engineOptions{
		newTicker:    NewTimeTicker,
		tickInterval: DefaultTickInterval,
		opaque:       Black,
		clear:        Transparent,
	}
}

// WithRenderer sets the renderer that receives every projection.
func WithRenderer(r Renderer) Option {
	return func(o *engineOptions) {
		o.renderer = r
	}
}

// WithTicker replaces the ticker used by preview runs.
// Each run calls f once and stops the returned ticker when it ends.
func WithTicker(f NewTickerFunc) Option {
	return func(o *engineOptions) {
		if f != nil {
			o.newTicker = f
		}
	}
}

// WithTickInterval sets the period between preview ticks.
// Values <= 0 are ignored.
func WithTickInterval(d time.Duration) Option {
	return func(o *engineOptions) {
		if d > 0 {
			o.tickInterval = d
		}
	}
}

// WithReady starts the engine as if MarkReady had already been called.
// Use it when the host has no images to wait for.
func WithReady() Option {
	return func(o *engineOptions) {
		o.ready = true
	}
}

// WithManualTicks disables the preview goroutine. The host advances the
// active run by calling Engine.Advance once per frame; the tick interval
// still sets the per-step speed.
func WithManualTicks() Option {
	return func(o *engineOptions) {
		o.manual = true
	}
}

// WithMaskColors sets the colors of the opaque and clear mask regions.
// The defaults are Black and Transparent.
func WithMaskColors(opaque, clear RGBA) Option {
	return func(o *engineOptions) {
		o.opaque = opaque
		o.clear = clear
	}
}

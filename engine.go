package dim

import (
	"context"
	"sync"
)

// Renderer receives every projection the engine produces, in order.
//
// Render is called with the engine lock held so that a superseded preview
// can never render after its replacement started. A Renderer must not call
// back into the Engine.
type Renderer interface {
	Render(EffectResult)
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(EffectResult)

// Render implements Renderer.
func (f RenderFunc) Render(r EffectResult) { f(r) }

// Engine owns a Config and its RangeModel and serializes drags and
// preview runs against them.
//
// At most one preview runs at a time; starting another cancels the first.
// Drags and previews exclude each other: BeginDrag cancels a running
// preview and Preview discards an uncommitted drag.
type Engine struct {
	mu sync.Mutex

	cfg  Config
	rng  RangeModel
	opts engineOptions

	ready   bool
	pending *PreviewRequest

	run   *run
	state AnimationState

	dragging  bool
	candidate float64

	last EffectResult
}

// run is one preview sweep and its cancellation handles.
type run struct {
	anim   *Animator
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func (r *run) close() {
	r.once.Do(func() { close(r.done) })
}

var closedChan = func() chan struct{} {
	c := make(chan struct{})
	close(c)
	return c
}()

// NewEngine validates cfg, computes its range and renders the initial
// projection.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	e := &Engine{
		opts:  o,
		ready: o.ready,
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.applyLocked(cfg.WithDefaults())
	return e, nil
}

// Configure replaces the configuration. Any running preview is canceled
// and any drag in progress is discarded; a queued preview stays queued.
func (e *Engine) Configure(cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLocked()
	e.dragging = false
	e.applyLocked(cfg.WithDefaults())
	return nil
}

func (e *Engine) applyLocked(cfg Config) {
	e.cfg = cfg
	e.rng = ComputeRange(cfg)

	log := Logger()
	log.Debug("dim: range computed",
		"direction", cfg.Direction.String(),
		"angle", cfg.Angle,
		"max", e.rng.Max,
		"gradient", e.rng.GradientLength,
		"track", e.rng.TrackLength)
	if e.rng.Degenerate() {
		log.Warn("dim: degenerate geometry, track length is unbounded",
			"direction", cfg.Direction.String(),
			"angle", cfg.Angle)
	}

	e.emitLocked(e.project(0, 0))
}

// Config returns the active configuration.
func (e *Engine) Config() Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// Range returns a snapshot of the range model.
func (e *Engine) Range() RangeModel {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rng
}

// Last returns the most recent projection sent to the renderer.
func (e *Engine) Last() EffectResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.last
}

// Project returns the projection of (dx, dy) from the committed position
// without rendering or committing anything.
func (e *Engine) Project(dx, dy float64) EffectResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.project(dx, dy)
}

func (e *Engine) project(dx, dy float64) EffectResult {
	return projectWith(e.rng, e.cfg, dx, dy, e.opts.opaque, e.opts.clear)
}

func (e *Engine) emitLocked(res EffectResult) {
	e.last = res
	if e.opts.renderer != nil {
		e.opts.renderer.Render(res)
	}
}

// BeginDrag starts a gesture at the committed position, canceling any
// running preview.
func (e *Engine) BeginDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLocked()
	e.dragging = true
	e.candidate = e.rng.Position
}

// DragTo renders the projection of the displacement (dx, dy) measured from
// where the gesture began. Calling it without BeginDrag begins a gesture.
func (e *Engine) DragTo(dx, dy float64) EffectResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.dragging {
		e.cancelLocked()
		e.dragging = true
	}
	res := e.project(dx, dy)
	e.candidate = res.Position
	e.emitLocked(res)
	return res
}

// EndDrag commits the last dragged position.
func (e *Engine) EndDrag() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.dragging {
		return
	}
	e.dragging = false
	e.rng.Position = e.candidate
	e.rng.LastPosition = e.candidate
}

// Dragging reports whether a gesture is in progress.
func (e *Engine) Dragging() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dragging
}

// MarkReady signals that the host's images have loaded. A preview queued
// before the signal starts now. Later calls do nothing.
func (e *Engine) MarkReady() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ready {
		return
	}
	e.ready = true
	if e.pending != nil {
		req := *e.pending
		e.pending = nil
		e.startLocked(req)
	}
}

// Ready reports whether MarkReady has been called.
func (e *Engine) Ready() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.ready
}

// Pending returns the preview waiting for MarkReady, if any.
func (e *Engine) Pending() (PreviewRequest, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		return PreviewRequest{}, false
	}
	return *e.pending, true
}

// Preview starts a sweep, superseding any running one. Before MarkReady
// the request is queued instead; only the latest queued request survives.
func (e *Engine) Preview(req PreviewRequest) {
	req = req.Normalize()

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.ready {
		e.pending = &req
		Logger().Debug("dim: preview queued until ready",
			"start", req.Start, "end", req.End, "uturn", req.UTurn)
		return
	}
	e.startLocked(req)
}

func (e *Engine) startLocked(req PreviewRequest) {
	e.cancelLocked()
	e.dragging = false

	r := &run{
		anim: newAnimator(e.rng, e.cfg, req, e.opts.tickInterval, e.opts.opaque, e.opts.clear),
		done: make(chan struct{}),
	}
	e.run = r
	e.rng = r.anim.Range()
	e.state = StateForward

	Logger().Debug("dim: preview started",
		"start", req.Start,
		"end", req.End,
		"duration", req.Duration,
		"uturn", req.UTurn,
		"speed", r.anim.Speed())

	if e.opts.manual {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	go e.loop(ctx, r, e.opts.newTicker(e.opts.tickInterval))
}

// loop drives r from its ticker until r ends or is canceled.
func (e *Engine) loop(ctx context.Context, r *run, t Ticker) {
	defer r.close()
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C():
			if !e.step(r) {
				return
			}
		}
	}
}

// step advances r by one tick and reports whether it is still active.
// A run that is no longer current does nothing.
func (e *Engine) step(r *run) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.run != r {
		return false
	}

	before := r.anim.State()
	res, done := r.anim.Step()
	e.rng = r.anim.Range()
	e.emitLocked(res)

	if before == StateForward && r.anim.State() == StateBack {
		Logger().Debug("dim: preview turned back", "offset", r.anim.Offset())
	}
	if !done {
		e.state = r.anim.State()
		return true
	}

	e.run = nil
	e.state = StateFinished
	if r.cancel != nil {
		r.cancel()
	}
	r.close()
	Logger().Debug("dim: preview finished",
		"position", e.rng.Position,
		"ticks", r.anim.Ticks())
	return false
}

// Advance steps the active preview once and reports whether it is still
// running. It is the frame hook for engines built with WithManualTicks.
func (e *Engine) Advance() bool {
	e.mu.Lock()
	r := e.run
	e.mu.Unlock()
	if r == nil {
		return false
	}
	return e.step(r)
}

// Stop cancels the running preview, if any, leaving the handle where it is.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLocked()
}

func (e *Engine) cancelLocked() {
	r := e.run
	if r == nil {
		return
	}
	e.run = nil
	r.anim.Cancel()
	e.rng = r.anim.Range()
	e.state = StateCanceled
	if r.cancel != nil {
		r.cancel()
	} else {
		r.close()
	}
	Logger().Debug("dim: preview canceled",
		"position", e.rng.Position,
		"ticks", r.anim.Ticks())
}

// State returns the state of the current or most recent preview.
func (e *Engine) State() AnimationState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Done returns a channel closed when the current preview ends, by finishing
// or by being canceled. With no preview running the channel is closed.
func (e *Engine) Done() <-chan struct{} {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.run == nil {
		return closedChan
	}
	return e.run.done
}

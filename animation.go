package dim

import (
	"fmt"
	"math"
	"time"
)

const (
	// DefaultPreviewDuration is used when a PreviewRequest has no duration.
	DefaultPreviewDuration = time.Second

	// DefaultTickInterval is the scheduling granularity of a preview sweep.
	DefaultTickInterval = 5 * time.Millisecond
)

// PreviewRequest describes a scripted sweep between two axis percentages.
type PreviewRequest struct {
	// Start and End are percentages along the axis, clamped to [0, 100].
	Start, End float64
	// Duration of the sweep. Negative values use their magnitude and zero
	// selects DefaultPreviewDuration.
	Duration time.Duration
	// UTurn runs the sweep out to the 100% edge before reversing to End.
	UTurn bool
}

// DefaultPreview sweeps the full axis in DefaultPreviewDuration.
func DefaultPreview() PreviewRequest {
	return PreviewRequest{Start: 0, End: 100, Duration: DefaultPreviewDuration}
}

// Normalize clamps the percentages and fixes up the duration.
// NaN percentages fall back to a full 0..100 sweep.
func (p PreviewRequest) Normalize() PreviewRequest {
	if math.IsNaN(p.Start) {
		p.Start = 0
	}
	if math.IsNaN(p.End) {
		p.End = 100
	}
	p.Start = math.Max(0, math.Min(100, p.Start))
	p.End = math.Max(0, math.Min(100, p.End))
	if p.Duration < 0 {
		p.Duration = -p.Duration
	}
	// -MinInt64 is still negative.
	if p.Duration <= 0 {
		p.Duration = DefaultPreviewDuration
	}
	return p
}

// SweepLength is the total distance covered, in percent of the axis.
// A u-turn adds the round trip to the 100% edge.
func (p PreviewRequest) SweepLength() float64 {
	switch {
	case !p.UTurn && p.End >= p.Start:
		return p.End - p.Start
	case !p.UTurn:
		return p.Start - p.End
	case p.End <= p.Start:
		return (100-p.Start)*2 + (p.Start - p.End)
	default:
		return (100-p.End)*2 + (p.End - p.Start)
	}
}

// AnimationState is the lifecycle state of a preview run.
type AnimationState int

const (
	StateIdle AnimationState = iota
	StateForward
	StateBack
	StateFinished
	StateCanceled
)

func (s AnimationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateForward:
		return "forward"
	case StateBack:
		return "back"
	case StateFinished:
		return "finished"
	case StateCanceled:
		return "canceled"
	}
	return fmt.Sprintf("AnimationState(%d)", int(s))
}

// Running reports whether the sweep is on one of its legs.
func (s AnimationState) Running() bool {
	return s == StateForward || s == StateBack
}

// Done reports whether the state is terminal.
func (s AnimationState) Done() bool {
	return s == StateFinished || s == StateCanceled
}

// Animator steps a single preview sweep. It works on its own copy of the
// range; Range returns the committed result.
//
// The offset it accumulates is a displacement from the sweep origin and is
// fed to the projector as both dx and dy, so only the active axis counts.
type Animator struct {
	cfg Config
	rng RangeModel
	req PreviewRequest

	speed   float64 // px per tick
	finish  float64 // offset where the sweep ends
	back    float64 // offset of the 100% edge, where a u-turn reverses
	current float64

	opaque, clear RGBA

	state AnimationState
	ticks int
	last  EffectResult
}

// NewAnimator prepares a sweep over r for req. A tick interval <= 0 selects
// DefaultTickInterval. The animator starts in StateIdle with the handle
// moved to the start percentage.
func NewAnimator(r RangeModel, cfg Config, req PreviewRequest, tick time.Duration) *Animator {
	return newAnimator(r, cfg, req, tick, Black, Transparent)
}

func newAnimator(r RangeModel, cfg Config, req PreviewRequest, tick time.Duration, opaque, clear RGBA) *Animator {
	if tick <= 0 {
		tick = DefaultTickInterval
	}
	req = req.Normalize()

	a := &Animator{
		cfg:    cfg,
		rng:    r,
		req:    req,
		opaque: opaque,
		clear:  clear,
	}

	axis := r.Max
	durationMs := float64(req.Duration) / float64(time.Millisecond)
	tickMs := float64(tick) / float64(time.Millisecond)
	a.speed = req.SweepLength() / 100 * axis / durationMs * tickMs

	if cfg.Direction.Reversed() {
		a.rng.Position = (100 - req.Start) / 100 * axis
		a.finish = (req.Start - req.End) / 100 * axis
		a.back = -(100 - req.Start) / 100 * axis
	} else {
		a.rng.Position = req.Start / 100 * axis
		a.finish = (req.End - req.Start) / 100 * axis
		a.back = axis - req.Start/100*axis
	}
	return a
}

// Step renders the current offset, then advances it by one tick.
// It returns the projection and whether the sweep has ended. The final
// step snaps to the finish offset and commits it as the range position.
// Steps after the end return the last projection.
func (a *Animator) Step() (EffectResult, bool) {
	switch a.state {
	case StateFinished, StateCanceled:
		return a.last, true
	case StateIdle:
		a.state = StateForward
	}
	a.ticks++

	res := a.project(a.current)

	forward := !a.cfg.Direction.Reversed()
	outbound := a.state == StateForward && !(a.req.Start > a.req.End && !a.req.UTurn)
	step := a.speed
	if outbound != forward {
		step = -step
	}
	a.current += step

	if a.reached(forward) {
		a.current = a.finish
		res = a.project(a.current)
		a.rng.Position = a.rng.LastPosition
		a.state = StateFinished
		return res, true
	}

	if a.req.UTurn && a.state == StateForward {
		if (forward && a.current >= a.back) || (!forward && a.current <= a.back) {
			a.current = a.back
			a.state = StateBack
		}
	}
	return res, false
}

// reached reports whether the current offset has met or passed the finish
// on the leg that ends there.
func (a *Animator) reached(forward bool) bool {
	u, back := a.req.UTurn, a.state == StateBack
	start, end := a.req.Start, a.req.End
	cur, fin := a.current, a.finish
	if forward {
		return !u && start <= end && cur >= fin ||
			!u && start > end && cur <= fin ||
			u && back && cur <= fin
	}
	return !u && start <= end && cur <= fin ||
		!u && start > end && cur >= fin ||
		u && back && cur >= fin
}

func (a *Animator) project(offset float64) EffectResult {
	res := projectWith(a.rng, a.cfg, offset, offset, a.opaque, a.clear)
	a.rng.LastPosition = res.Position
	a.last = res
	return res
}

// Cancel stops the sweep, leaving the handle at the last committed offset.
func (a *Animator) Cancel() {
	if a.state.Done() {
		return
	}
	a.rng.Position = a.rng.LastPosition
	a.state = StateCanceled
}

// State returns the current lifecycle state.
func (a *Animator) State() AnimationState { return a.state }

// Range returns the animator's copy of the range model.
func (a *Animator) Range() RangeModel { return a.rng }

// Request returns the normalized request being played.
func (a *Animator) Request() PreviewRequest { return a.req }

// Speed returns the per-tick advance in px.
func (a *Animator) Speed() float64 { return a.speed }

// Offset returns the accumulated displacement from the sweep origin.
func (a *Animator) Offset() float64 { return a.current }

// Finish returns the displacement at which the sweep ends.
func (a *Animator) Finish() float64 { return a.finish }

// Ticks returns the number of steps taken.
func (a *Animator) Ticks() int { return a.ticks }

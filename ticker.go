package dim

import (
	"sync"
	"time"
)

// Ticker delivers animation ticks to a preview run.
// The run owns its ticker and calls Stop when it ends.
type Ticker interface {
	C() <-chan time.Time
	Stop()
}

// NewTickerFunc creates a Ticker firing every d.
type NewTickerFunc func(d time.Duration) Ticker

// NewTimeTicker returns a Ticker backed by time.Ticker.
func NewTimeTicker(d time.Duration) Ticker {
	return timeTicker{time.NewTicker(d)}
}

type timeTicker struct{ t *time.Ticker }

func (t timeTicker) C() <-chan time.Time { return t.t.C }
func (t timeTicker) Stop()               { t.t.Stop() }

// ManualTicker is a Ticker fired explicitly by the caller, for hosts that
// render frames at their own pace and for tests.
type ManualTicker struct {
	c    chan time.Time
	stop chan struct{}
	once sync.Once
}

// NewManualTicker returns an unfired ManualTicker.
func NewManualTicker() *ManualTicker {
	return &ManualTicker{
		c:    make(chan time.Time),
		stop: make(chan struct{}),
	}
}

// C implements Ticker.
func (m *ManualTicker) C() <-chan time.Time { return m.c }

// Stop implements Ticker. It is safe to call more than once.
func (m *ManualTicker) Stop() {
	m.once.Do(func() { close(m.stop) })
}

// Tick delivers one tick and blocks until the receiver takes it.
// It returns false once the ticker has been stopped.
func (m *ManualTicker) Tick() bool {
	select {
	case <-m.stop:
		return false
	default:
	}
	select {
	case m.c <- time.Now():
		return true
	case <-m.stop:
		return false
	}
}

// Stopped reports whether Stop has been called.
func (m *ManualTicker) Stopped() bool {
	select {
	case <-m.stop:
		return true
	default:
		return false
	}
}

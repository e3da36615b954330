// Package frames writes preview frames to numbered PNG files.
package frames

import (
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/gogpu/dim"
	"github.com/gogpu/dim/internal/composite"
)

// Writer is a dim.Renderer that saves every n-th frame of a sweep as
// frame-NNNNN.png. Compositing and encoding run on a Pool so that Render
// returns quickly under the engine lock. The final frame of a sweep is
// always written by Flush, even when it falls between two saved frames.
type Writer struct {
	dir   string
	every int
	pool  *Pool

	mu      sync.Mutex
	comp    *composite.Compositor
	frame   int
	last    *dim.EffectResult
	written atomic.Int64
}

// NewWriter creates a writer saving into dir. every < 1 saves every frame;
// workers <= 0 uses GOMAXPROCS encoders.
func NewWriter(dir string, every, workers int) *Writer {
	return &Writer{
		dir:   dir,
		every: max(every, 1),
		pool:  NewPool(workers),
	}
}

// Reset starts a new sweep drawn with c. Frame numbering restarts at 1.
// Pending frames of the previous sweep are finished first.
func (w *Writer) Reset(c *composite.Compositor) error {
	err := w.pool.Wait()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.comp = c
	w.frame = 0
	w.last = nil
	w.written.Store(0)
	return err
}

// Render implements dim.Renderer.
func (w *Writer) Render(res dim.EffectResult) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.frame++
	if (w.frame-1)%w.every != 0 {
		w.last = &res
		return
	}
	w.last = nil
	w.submitLocked(w.frame, res)
}

func (w *Writer) submitLocked(n int, res dim.EffectResult) {
	comp := w.comp
	if comp == nil {
		return
	}
	path := filepath.Join(w.dir, fmt.Sprintf("frame-%05d.png", n))
	w.pool.Submit(func() error {
		if err := composite.SavePNG(path, comp.Render(res)); err != nil {
			return fmt.Errorf("frame %d: %w", n, err)
		}
		w.written.Add(1)
		return nil
	})
}

// Flush writes the last skipped frame, waits for the encoders and returns
// how many files this sweep produced.
func (w *Writer) Flush() (int, error) {
	w.mu.Lock()
	if w.last != nil {
		w.submitLocked(w.frame, *w.last)
		w.last = nil
	}
	w.mu.Unlock()

	err := w.pool.Wait()
	dim.Logger().Debug("frames: flushed", "dir", w.dir, "written", w.written.Load())
	return int(w.written.Load()), err
}

// Close stops the encoders after the queued frames are written.
func (w *Writer) Close() {
	w.pool.Close()
}

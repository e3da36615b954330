package frames

import (
	"errors"
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool runs frame jobs on a fixed set of goroutines.
//
// Each worker owns a queue and steals from the others when it runs dry, so
// one slow PNG encode does not hold up the frames queued behind it. Submit
// wakes an idle worker after queueing.
//
// Thread safety: Submit, Wait and Close may be called from any goroutine,
// but Wait must not race with Submit calls it is expected to cover.
type Pool struct {
	queues []chan func()
	wake   chan struct{}
	done   chan struct{}

	workers sync.WaitGroup
	pending sync.WaitGroup
	running atomic.Bool
	// closing is held for reading while a job is queued, so Close cannot
	// stop the workers between the running check and the enqueue.
	closing sync.RWMutex

	mu   sync.Mutex
	errs []error
}

// NewPool starts a pool with the given number of workers.
// If workers is 0 or negative, GOMAXPROCS is used.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	queueSize := max(workers*4, 8)

	p := &Pool{
		queues: make([]chan func(), workers),
		wake:   make(chan struct{}, workers),
		done:   make(chan struct{}),
	}
	for i := range p.queues {
		p.queues[i] = make(chan func(), queueSize)
	}
	p.running.Store(true)

	p.workers.Add(workers)
	for i := range workers {
		go p.work(i)
	}
	return p
}

func (p *Pool) work(id int) {
	defer p.workers.Done()
	own := p.queues[id]
	for {
		select {
		case <-p.done:
			p.drain(own)
			return
		case job := <-own:
			job()
		default:
			if job := p.steal(id); job != nil {
				job()
				continue
			}
			select {
			case <-p.done:
				p.drain(own)
				return
			case job := <-own:
				job()
			case <-p.wake:
			}
		}
	}
}

func (p *Pool) drain(q chan func()) {
	for {
		select {
		case job := <-q:
			job()
		default:
			return
		}
	}
}

func (p *Pool) steal(id int) func() {
	for i, q := range p.queues {
		if i == id {
			continue
		}
		select {
		case job := <-q:
			return job
		default:
		}
	}
	return nil
}

// Submit queues fn on the worker with the shortest queue. An error
// returned by fn is reported by the next Wait. Submit after Close runs
// nothing.
func (p *Pool) Submit(fn func() error) {
	if fn == nil {
		return
	}
	p.closing.RLock()
	defer p.closing.RUnlock()
	if !p.running.Load() {
		return
	}

	idx := 0
	for i := 1; i < len(p.queues); i++ {
		if len(p.queues[i]) < len(p.queues[idx]) {
			idx = i
		}
	}

	p.pending.Add(1)
	job := func() {
		defer p.pending.Done()
		if err := fn(); err != nil {
			p.mu.Lock()
			p.errs = append(p.errs, err)
			p.mu.Unlock()
		}
	}
	p.queues[idx] <- job
	// Let an idle worker steal it if its owner is busy.
	select {
	case p.wake <- struct{}{}:
	default:
	}
}

// Wait blocks until every submitted job has run and returns their errors
// joined. The error list is cleared.
func (p *Pool) Wait() error {
	p.pending.Wait()
	p.mu.Lock()
	defer p.mu.Unlock()
	err := errors.Join(p.errs...)
	p.errs = nil
	return err
}

// Close runs the queued jobs and stops the workers. It is safe to call
// more than once.
func (p *Pool) Close() {
	p.closing.Lock()
	if !p.running.CompareAndSwap(true, false) {
		p.closing.Unlock()
		return
	}
	close(p.done)
	p.closing.Unlock()
	p.workers.Wait()
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int { return len(p.queues) }

package frame

import (
	"sync"
	"time"
)

// Handle identifies one pending frame request. The zero Handle is never
// issued.
type Handle uint64

// Callback receives the frame timestamp, measured from the scheduler's
// origin.
type Callback func(ts time.Duration)

// Scheduler hands out one-shot per-frame callbacks. A repeating loop is a
// callback that requests the next frame before returning.
type Scheduler interface {
	Request(cb Callback) Handle
	Cancel(h Handle)
}

type request struct {
	h  Handle
	cb Callback
}

// Queue is a Scheduler fired explicitly by its host: a terminal UI tick, a
// headless loop, or a test. Callbacks requested while a Tick is running wait
// for the next Tick.
type Queue struct {
	mu      sync.Mutex
	clock   Clock
	origin  time.Time
	next    Handle
	pending []request
	firing  []request
}

func NewQueue(clock Clock) *Queue {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Queue{clock: clock, origin: clock.Now()}
}

func (q *Queue) Request(cb Callback) Handle {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.next++
	q.pending = append(q.pending, request{h: q.next, cb: cb})
	return q.next
}

// Cancel drops h. Cancelling an unknown or already fired handle is a no-op.
func (q *Queue) Cancel(h Handle) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, r := range q.pending {
		if r.h == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	for i := range q.firing {
		if q.firing[i].h == h {
			q.firing[i].cb = nil
			return
		}
	}
}

// Pending returns the number of outstanding requests.
func (q *Queue) Pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// Now returns the timestamp the next Tick would use.
func (q *Queue) Now() time.Duration {
	return q.clock.Now().Sub(q.origin)
}

// Tick runs every callback pending at entry with the current timestamp and
// returns how many ran. A callback cancelled by an earlier one in the same
// Tick does not run.
func (q *Queue) Tick() int {
	q.mu.Lock()
	q.firing, q.pending = q.pending, nil
	n := len(q.firing)
	ts := q.clock.Now().Sub(q.origin)
	q.mu.Unlock()

	ran := 0
	for i := 0; i < n; i++ {
		q.mu.Lock()
		cb := q.firing[i].cb
		q.mu.Unlock()
		if cb == nil {
			continue
		}
		cb(ts)
		ran++
	}

	q.mu.Lock()
	q.firing = nil
	q.mu.Unlock()
	return ran
}

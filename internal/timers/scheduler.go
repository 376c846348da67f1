// Package timers implements setTimeout/setInterval/requestIdleCallback and
// Worker message delivery. The interpreter itself is single-threaded and
// cooperative: timers fire on a dedicated background goroutine that only
// ever signals readiness over a channel, and the embedder drains that
// channel (Scheduler.Pump) from whatever goroutine owns the interpreter,
// so callback re-entry is always serialized onto that one goroutine
// rather than called directly from the timer goroutine. Ordering is
// non-decreasing deadline order, ties broken by insertion order.
package timers

import (
	"container/heap"
	"sync"
	"time"
)

// Callback is invoked on the pumping goroutine when a timer fires.
type Callback func()

type entry struct {
	id       int64
	seq      int64
	deadline time.Time
	interval time.Duration
	repeat   bool
	cb       Callback
	cancelled bool
	idle     bool
}

// timerHeap orders by (deadline, seq) for deterministic tie-breaking.
type timerHeap []*entry

func (h timerHeap) Len() int { return len(h) }
func (h timerHeap) Less(i, j int) bool {
	if h[i].deadline.Equal(h[j].deadline) {
		return h[i].seq < h[j].seq
	}
	return h[i].deadline.Before(h[j].deadline)
}
func (h timerHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *timerHeap) Push(x any)         { *h = append(*h, x.(*entry)) }
func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[:n-1]
	return e
}

// Scheduler manages every pending timer for one realm.
type Scheduler struct {
	mu      sync.Mutex
	seq     int64
	nextID  int64
	pending timerHeap
	byID    map[int64]*entry
	ready   chan *entry
	stop    chan struct{}
	stopped bool
	timer   *time.Timer
}

func NewScheduler() *Scheduler {
	s := &Scheduler{
		byID:  make(map[int64]*entry),
		ready: make(chan *entry, 64),
		stop:  make(chan struct{}),
	}
	return s
}

// SetTimeout schedules cb to fire once after delay.
func (s *Scheduler) SetTimeout(delay time.Duration, cb Callback) int64 {
	return s.schedule(delay, 0, false, false, cb)
}

// SetInterval schedules cb to fire repeatedly every delay.
func (s *Scheduler) SetInterval(delay time.Duration, cb Callback) int64 {
	return s.schedule(delay, delay, true, false, cb)
}

// RequestIdleCallback is modeled as a short-delay one-shot timer, since
// there is no real browser idle/frame scheduler to hook into.
func (s *Scheduler) RequestIdleCallback(cb Callback) int64 {
	return s.schedule(0, 0, false, true, cb)
}

func (s *Scheduler) schedule(delay, interval time.Duration, repeat, idle bool, cb Callback) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.seq++
	e := &entry{id: id, seq: s.seq, deadline: time.Now().Add(delay), interval: interval, repeat: repeat, cb: cb, idle: idle}
	s.byID[id] = e
	heap.Push(&s.pending, e)
	s.rearm()
	return id
}

// Clear cancels a pending timeout/interval/idle-callback. Cancellation is
// idempotent and race-free: the entry is marked cancelled under the lock,
// and Pump silently drops cancelled entries it reads off the ready
// channel, so a timer that already fired but hasn't been pumped yet is
// still suppressed.
func (s *Scheduler) Clear(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.byID[id]; ok {
		e.cancelled = true
		delete(s.byID, id)
	}
}

func (s *Scheduler) rearm() {
	if s.stopped {
		return
	}
	if len(s.pending) == 0 {
		if s.timer != nil {
			s.timer.Stop()
		}
		return
	}
	next := s.pending[0]
	delay := time.Until(next.deadline)
	if delay < 0 {
		delay = 0
	}
	if s.timer == nil {
		s.timer = time.AfterFunc(delay, s.fire)
	} else {
		s.timer.Reset(delay)
	}
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	now := time.Now()
	var due []*entry
	for len(s.pending) > 0 && !s.pending[0].deadline.After(now) {
		e := heap.Pop(&s.pending).(*entry)
		due = append(due, e)
		if e.repeat && !e.cancelled {
			e.seq = s.nextSeq()
			e.deadline = now.Add(e.interval)
			heap.Push(&s.pending, e)
		}
	}
	s.rearm()
	s.mu.Unlock()

	for _, e := range due {
		select {
		case s.ready <- e:
		case <-s.stop:
			return
		}
	}
}

func (s *Scheduler) nextSeq() int64 {
	s.seq++
	return s.seq
}

// Pump drains every timer that has fired since the last call and invokes
// its callback synchronously on the calling goroutine, in the order they
// became ready. This is the serialization point: callbacks only ever run
// here, never on the background firing goroutine.
func (s *Scheduler) Pump() {
	for {
		select {
		case e := <-s.ready:
			s.mu.Lock()
			cancelled := e.cancelled
			s.mu.Unlock()
			if !cancelled {
				e.cb()
			}
		default:
			return
		}
	}
}

// PumpBlocking waits up to timeout for at least one timer to fire, then
// drains as in Pump. Used by embedders that want to let a script's
// setTimeout(fn, 0) chain run to completion without busy-polling.
func (s *Scheduler) PumpBlocking(timeout time.Duration) {
	select {
	case e := <-s.ready:
		s.mu.Lock()
		cancelled := e.cancelled
		s.mu.Unlock()
		if !cancelled {
			e.cb()
		}
	case <-time.After(timeout):
		return
	}
	s.Pump()
}

// Pending reports how many timers are still scheduled, counting fired ones
// that are waiting to be pumped; cancelled timers are not counted.
func (s *Scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := len(s.ready)
	for _, e := range s.pending {
		if !e.cancelled {
			n++
		}
	}
	return n
}

// Stop halts the background firing goroutine and any armed timer.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
	s.mu.Unlock()
	close(s.stop)
}

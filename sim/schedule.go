// sim/schedule.go
package sim

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// eventQueue is a min-heap ordered by timestamp, then by the tie-breaker.
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type eventQueue struct {
	events   []Event
	tieBreak TieBreaker
}

func (q *eventQueue) Len() int { return len(q.events) }

func (q *eventQueue) Less(i, j int) bool {
	ei, ej := q.events[i], q.events[j]
	if ei.time != ej.time {
		return ei.time < ej.time
	}
	return q.tieBreak.Before(ei, ej)
}

func (q *eventQueue) Swap(i, j int) { q.events[i], q.events[j] = q.events[j], q.events[i] }

func (q *eventQueue) Push(x any) {
	q.events = append(q.events, x.(Event))
}

func (q *eventQueue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	old[n-1] = Event{}
	q.events = old[:n-1]
	return item
}

// Schedule is a time-ordered event store plus the simulation clock.
//
// The clock only moves in RunNext, and only forward: ScheduleAt refuses
// timestamps earlier than Now. Once scheduled, an event cannot be cancelled.
//
// Thread-safety: NOT thread-safe. Handlers run on the caller's goroutine and
// may re-enter the Schedule to add events.
type Schedule struct {
	now      float64
	pending  eventQueue
	nextSeq  uint64
	observer func(ev Event, err error)
}

// NewSchedule creates an empty Schedule at time 0.
// A nil tieBreak means FIFOTieBreaker.
func NewSchedule(tieBreak TieBreaker) *Schedule {
	if tieBreak == nil {
		tieBreak = FIFOTieBreaker{}
	}
	s := &Schedule{
		pending: eventQueue{events: make([]Event, 0), tieBreak: tieBreak},
	}
	heap.Init(&s.pending)
	return s
}

// Now returns the timestamp of the most recently executed event, or 0.
func (s *Schedule) Now() float64 { return s.now }

// Pending returns the number of events not yet executed.
func (s *Schedule) Pending() int { return s.pending.Len() }

// HasPending reports whether any event is waiting to run.
func (s *Schedule) HasPending() bool { return s.pending.Len() > 0 }

// SetObserver registers fn to be called after every executed event with the
// handler's error, if any. A nil fn removes the observer.
func (s *Schedule) SetObserver(fn func(ev Event, err error)) { s.observer = fn }

// ScheduleAt inserts an event running h at time t.
// Returns ErrInvalidTime if t is earlier than Now or is NaN.
func (s *Schedule) ScheduleAt(t float64, h Handler) error {
	if h == nil {
		panic("ScheduleAt: handler must not be nil")
	}
	if math.IsNaN(t) || t < s.now {
		return fmt.Errorf("%w: cannot schedule %s at t=%g, clock is at t=%g", ErrInvalidTime, h.Kind(), t, s.now)
	}
	s.nextSeq++
	heap.Push(&s.pending, Event{time: t, seq: s.nextSeq, handler: h})
	return nil
}

// ScheduleAfter inserts an event running h at Now()+d.
// Returns ErrInvalidTime if d is negative or NaN.
func (s *Schedule) ScheduleAfter(d float64, h Handler) error {
	if math.IsNaN(d) || d < 0 {
		return fmt.Errorf("%w: negative interval %g for %s", ErrInvalidTime, d, h.Kind())
	}
	return s.ScheduleAt(s.now+d, h)
}

// PeekNextTime returns the timestamp of the earliest pending event,
// or +Inf when nothing is pending.
func (s *Schedule) PeekNextTime() float64 {
	if s.pending.Len() == 0 {
		return math.Inf(1)
	}
	return s.pending.events[0].time
}

// RunNext pops the earliest event, advances the clock to its timestamp and
// runs its handler. It is a no-op when nothing is pending.
// A handler error is returned as a *RunError carrying the clock.
func (s *Schedule) RunNext() error {
	if s.pending.Len() == 0 {
		return nil
	}
	ev := heap.Pop(&s.pending).(Event)
	s.now = ev.time
	logrus.Debugf("[t=%.6f] executing %s (seq %d)", s.now, ev.Kind(), ev.seq)
	err := ev.handler.Handle(s)
	if s.observer != nil {
		s.observer(ev, err)
	}
	if err != nil {
		return &RunError{Clock: s.now, Kind: ev.Kind(), Err: err}
	}
	return nil
}

func (s *Schedule) String() string {
	return fmt.Sprintf("Schedule(time=%g, events=%d)", s.now, s.pending.Len())
}

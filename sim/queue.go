// Implements the single-server Queue whose transitions are driven by events
// it schedules on a Schedule.

package sim

import "fmt"

// Customer is one entity passing through a Queue.
type Customer struct {
	ID           int64
	ArrivalTime  float64
	ServiceStart float64
}

// Sample is one point of the occupancy step function.
type Sample struct {
	Time      float64 `json:"time"`
	Occupancy int     `json:"occupancy"`
}

// waitLine is the FIFO of customers that arrived but have not started service.
type waitLine struct {
	queue []Customer
}

func (wl *waitLine) Enqueue(c Customer) {
	wl.queue = append(wl.queue, c)
}

func (wl *waitLine) Dequeue() (Customer, bool) {
	if len(wl.queue) == 0 {
		return Customer{}, false
	}
	c := wl.queue[0]
	wl.queue = wl.queue[1:]
	return c, true
}

func (wl *waitLine) Len() int {
	return len(wl.queue)
}

// Queue is a single-server FIFO station with deterministic service time
// 1/serviceRate.
//
// State only changes inside Arrival, StartService and EndService. Every
// transition appends a Sample, so History is a step function of occupancy.
// Within one instant a transition may cascade (end of service immediately
// followed by the next start); at most one EndServiceEvent is pending at
// any time.
type Queue struct {
	line        waitLine
	inService   *Customer
	serviceRate float64
	history     []Sample
	nextID      int64
	arrivals    int
	completions int
	onComplete  func(c Customer, departure float64)
	endService  EndServiceEvent
}

// NewQueue creates an empty, idle Queue. Panics if serviceRate is not positive.
func NewQueue(serviceRate float64) *Queue {
	if !(serviceRate > 0) {
		panic(fmt.Sprintf("NewQueue: serviceRate must be > 0, got %v", serviceRate))
	}
	q := &Queue{
		serviceRate: serviceRate,
		history:     make([]Sample, 0),
	}
	q.endService = EndServiceEvent{Queue: q}
	return q
}

// OnCompletion registers fn to be called for every customer leaving the server.
func (q *Queue) OnCompletion(fn func(c Customer, departure float64)) {
	q.onComplete = fn
}

// Arrival admits a new customer at the schedule's current time and starts
// service inline if the server is idle.
func (q *Queue) Arrival(s *Schedule) error {
	q.nextID++
	q.arrivals++
	q.line.Enqueue(Customer{ID: q.nextID, ArrivalTime: s.Now()})
	q.RecordState(s.Now())

	if q.inService == nil {
		return q.StartService(s)
	}
	return nil
}

// StartService moves the head of the line onto the server and schedules its
// completion. It does nothing unless someone is waiting and the server is idle.
func (q *Queue) StartService(s *Schedule) error {
	if q.inService != nil || q.line.Len() == 0 {
		return nil
	}
	c, _ := q.line.Dequeue()
	c.ServiceStart = s.Now()
	q.inService = &c
	q.RecordState(s.Now())

	return s.ScheduleAfter(q.ServiceTime(), &q.endService)
}

// EndService releases the customer on the server and cascades into the next
// service when the line is not empty.
func (q *Queue) EndService(s *Schedule) error {
	done := q.inService
	q.inService = nil
	q.RecordState(s.Now())
	if done != nil {
		q.completions++
		if q.onComplete != nil {
			q.onComplete(*done, s.Now())
		}
	}

	if q.line.Len() > 0 {
		return q.StartService(s)
	}
	return nil
}

// RecordState appends the current occupancy at time t to the history.
func (q *Queue) RecordState(t float64) {
	q.history = append(q.history, Sample{Time: t, Occupancy: q.Occupancy()})
}

// Waiting returns the number of customers not yet in service.
func (q *Queue) Waiting() int { return q.line.Len() }

// InService returns 1 while the server is busy and 0 otherwise.
func (q *Queue) InService() int {
	if q.inService != nil {
		return 1
	}
	return 0
}

// Occupancy is Waiting plus InService.
func (q *Queue) Occupancy() int { return q.Waiting() + q.InService() }

// ServiceRate returns μ.
func (q *Queue) ServiceRate() float64 { return q.serviceRate }

// ServiceTime returns the fixed service duration 1/μ.
func (q *Queue) ServiceTime() float64 { return 1.0 / q.serviceRate }

// Arrivals returns the number of customers admitted so far.
func (q *Queue) Arrivals() int { return q.arrivals }

// Completions returns the number of customers that finished service.
func (q *Queue) Completions() int { return q.completions }

// History returns a copy of the recorded occupancy samples.
func (q *Queue) History() []Sample {
	out := make([]Sample, len(q.history))
	copy(out, q.history)
	return out
}

func (q *Queue) String() string {
	return fmt.Sprintf("Queue(queue_length=%d, in_service=%d, service_rate=%g)",
		q.Waiting(), q.InService(), q.serviceRate)
}

// StepPoints collapses samples sharing a timestamp to the last one, leaving
// the state the queue settled in at each instant. The result is the step
// function an external plotter should draw with "post" steps.
func StepPoints(history []Sample) []Sample {
	out := make([]Sample, 0, len(history))
	for _, smp := range history {
		if n := len(out); n > 0 && out[n-1].Time == smp.Time {
			out[n-1] = smp
			continue
		}
		out = append(out, smp)
	}
	return out
}

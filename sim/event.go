package sim

// EventKind tags the variant of a scheduled handler.
type EventKind string

const (
	// EventKindArrival is a customer arriving at a Queue.
	EventKindArrival EventKind = "arrival"
	// EventKindEndService is the server of a Queue finishing a customer.
	EventKindEndService EventKind = "end_service"
	// EventKindCallback is a HandlerFunc scheduled by an embedder or a test.
	EventKindCallback EventKind = "callback"
)

// Handler is the work an Event performs when the Schedule reaches it.
// Handle runs synchronously and may schedule further events on s.
type Handler interface {
	Kind() EventKind
	Handle(s *Schedule) error
}

// Event is an immutable timestamped unit of work.
// Events are created only by Schedule.ScheduleAt, which assigns the
// insertion sequence number used for tie-breaking.
type Event struct {
	time    float64
	seq     uint64
	handler Handler
}

// Timestamp returns the simulation time at which the event runs.
func (e Event) Timestamp() float64 { return e.time }

// Seq returns the insertion sequence number (1-based, per Schedule).
func (e Event) Seq() uint64 { return e.seq }

// Kind returns the variant of the event's handler.
func (e Event) Kind() EventKind { return e.handler.Kind() }

// Handler returns the work the event performs.
func (e Event) Handler() Handler { return e.handler }

// ArrivalEvent delivers the next arrival of an ArrivalProcess.
type ArrivalEvent struct {
	Process *ArrivalProcess
}

func (e *ArrivalEvent) Kind() EventKind { return EventKindArrival }

// Handle executes the arrival and schedules the one that follows it.
func (e *ArrivalEvent) Handle(s *Schedule) error {
	return e.Process.HandleArrival(s)
}

// EndServiceEvent completes the customer currently held by a Queue's server.
type EndServiceEvent struct {
	Queue *Queue
}

func (e *EndServiceEvent) Kind() EventKind { return EventKindEndService }

// Handle frees the server, cascading into the next service if anyone waits.
func (e *EndServiceEvent) Handle(s *Schedule) error {
	return e.Queue.EndService(s)
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(s *Schedule) error

func (f HandlerFunc) Kind() EventKind { return EventKindCallback }

func (f HandlerFunc) Handle(s *Schedule) error { return f(s) }

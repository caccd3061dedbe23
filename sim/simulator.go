// sim/simulator.go
package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/inference-sim/queue-sim/sim/trace"
	"github.com/inference-sim/queue-sim/sim/workload"
)

// Simulator owns one Schedule and the Queue/ArrivalProcess pair it drives.
// A Simulator runs once; build a new one for every independent run.
type Simulator struct {
	config   SimConfig
	schedule *Schedule
	queue    *Queue
	arrivals *ArrivalProcess
	rng      *PartitionedRNG
	metrics  *Metrics
	trace    *trace.SimulationTrace
	hasRun   bool
}

// Result is the outcome of a completed run.
type Result struct {
	Clock     float64                `json:"clock"`
	Horizon   float64                `json:"horizon"`
	Waiting   int                    `json:"waiting"`
	InService int                    `json:"in_service"`
	Occupancy int                    `json:"occupancy"`
	Pending   int                    `json:"pending_events"`
	History   []Sample               `json:"history"`
	Metrics   *Metrics               `json:"metrics"`
	Trace     *trace.SimulationTrace `json:"trace,omitempty"`
}

// NewSimulator validates cfg, builds the model and schedules the first
// arrival. Returns an error wrapping ErrInvalidParameter for bad input, in
// which case nothing has been scheduled.
func NewSimulator(cfg SimConfig) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rng := NewPartitionedRNG(NewSimulationKey(cfg.Seed))
	q := NewQueue(cfg.ServiceRate)
	sampler := workload.NewArrivalSampler(cfg.Arrival, cfg.ArrivalRate)

	s := &Simulator{
		config:   cfg,
		schedule: NewSchedule(NewTieBreaker(cfg.TieBreak)),
		queue:    q,
		arrivals: NewArrivalProcess(cfg.ArrivalRate, q, sampler, rng.ForSubsystem(SubsystemArrival)),
		rng:      rng,
		metrics:  NewMetrics(),
	}
	q.OnCompletion(s.metrics.RecordCompletion)

	traceCfg := trace.TraceConfig{Level: trace.TraceLevel(cfg.TraceLevel)}
	if traceCfg.Enabled() {
		s.trace = trace.NewSimulationTrace(traceCfg)
		s.schedule.SetObserver(s.recordEvent)
	}

	if rho := cfg.ArrivalRate / cfg.ServiceRate; rho >= 1 {
		logrus.Warnf("utilization rho=%.3f >= 1: the queue is unstable and will grow without bound", rho)
	}

	if err := s.arrivals.Start(s.schedule); err != nil {
		return nil, fmt.Errorf("scheduling first arrival: %w", err)
	}
	return s, nil
}

func (s *Simulator) recordEvent(ev Event, err error) {
	s.trace.RecordEvent(trace.EventRecord{
		Seq:       ev.Seq(),
		Clock:     ev.Timestamp(),
		Kind:      string(ev.Kind()),
		Occupancy: s.queue.Occupancy(),
		Failed:    err != nil,
	})
}

// Run executes events in time order while the next one is due at or before
// the horizon. Later events are left pending.
//
// A handler fault stops the loop and is returned as a *RunError; the partial
// history stays available through Queue(). Calling Run twice returns
// ErrAlreadyRun.
func (s *Simulator) Run() (*Result, error) {
	if s.hasRun {
		return nil, ErrAlreadyRun
	}
	s.hasRun = true

	logrus.Infof("Starting simulation: lambda=%g mu=%g horizon=%g seed=%d tie-break=%s",
		s.config.ArrivalRate, s.config.ServiceRate, s.config.Horizon, s.config.Seed, s.tieBreakName())

	for s.schedule.HasPending() && s.schedule.PeekNextTime() <= s.config.Horizon {
		if err := s.schedule.RunNext(); err != nil {
			logrus.Errorf("[t=%.6f] simulation aborted: %v", s.schedule.Now(), err)
			return nil, err
		}
	}

	s.metrics.Finalize(s.queue.history, s.config.Horizon, s.queue.Arrivals(), s.queue.Completions())
	logrus.Infof("[t=%.6f] Simulation ended, %d events pending", s.schedule.Now(), s.schedule.Pending())

	return &Result{
		Clock:     s.schedule.Now(),
		Horizon:   s.config.Horizon,
		Waiting:   s.queue.Waiting(),
		InService: s.queue.InService(),
		Occupancy: s.queue.Occupancy(),
		Pending:   s.schedule.Pending(),
		History:   s.queue.History(),
		Metrics:   s.metrics,
		Trace:     s.trace,
	}, nil
}

func (s *Simulator) tieBreakName() string {
	if s.config.TieBreak == "" {
		return "fifo"
	}
	return s.config.TieBreak
}

// Config returns the configuration the simulator was built with.
func (s *Simulator) Config() SimConfig { return s.config }

// Clock returns the current simulation time.
func (s *Simulator) Clock() float64 { return s.schedule.Now() }

// Schedule returns the simulator's event schedule.
func (s *Simulator) Schedule() *Schedule { return s.schedule }

// Queue returns the simulated queue, including its history after a failed run.
func (s *Simulator) Queue() *Queue { return s.queue }

// Trace returns the event trace, or nil when tracing is disabled.
func (s *Simulator) Trace() *trace.SimulationTrace { return s.trace }

// SteadyState returns the M/D/1 closed-form figures for this configuration.
// They are only meaningful for Poisson arrivals.
func (s *Simulator) SteadyState() SteadyState {
	return AnalyzeMD1(s.config.ArrivalRate, s.config.ServiceRate)
}

package sim

import (
	"fmt"
	"math"

	"github.com/inference-sim/queue-sim/sim/trace"
	"github.com/inference-sim/queue-sim/sim/workload"
)

// SimConfig groups every input of a single simulation run.
type SimConfig struct {
	ArrivalRate float64              // λ, arrivals per time unit (must be > 0)
	ServiceRate float64              // μ, services per time unit (must be > 0); service time is 1/μ
	Horizon     float64              // simulation end time (finite, >= 0); events at exactly Horizon run
	Seed        int64                // master seed for the PartitionedRNG
	TieBreak    string               // "fifo" (default), "lifo", "departures-first"
	Arrival     workload.ArrivalSpec // inter-arrival process; zero value is Poisson
	TraceLevel  string               // "none" (default) or "events"
}

// NewSimConfig returns an M/D/1 configuration with FIFO tie-breaking and no tracing.
func NewSimConfig(arrivalRate, serviceRate, horizon float64, seed int64) SimConfig {
	return SimConfig{
		ArrivalRate: arrivalRate,
		ServiceRate: serviceRate,
		Horizon:     horizon,
		Seed:        seed,
	}
}

// Validate reports the first unusable field, wrapped in ErrInvalidParameter.
func (c SimConfig) Validate() error {
	if !isFinitePositive(c.ArrivalRate) {
		return fmt.Errorf("%w: arrival rate must be a finite number > 0, got %v", ErrInvalidParameter, c.ArrivalRate)
	}
	if !isFinitePositive(c.ServiceRate) {
		return fmt.Errorf("%w: service rate must be a finite number > 0, got %v", ErrInvalidParameter, c.ServiceRate)
	}
	if math.IsNaN(c.Horizon) || math.IsInf(c.Horizon, 0) || c.Horizon < 0 {
		return fmt.Errorf("%w: horizon must be a finite number >= 0, got %v", ErrInvalidParameter, c.Horizon)
	}
	if !IsValidTieBreaker(c.TieBreak) {
		return fmt.Errorf("%w: unknown tie-break policy %q; valid: %v", ErrInvalidParameter, c.TieBreak, ValidTieBreakerNames())
	}
	if err := c.Arrival.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParameter, err)
	}
	if !trace.IsValidTraceLevel(c.TraceLevel) {
		return fmt.Errorf("%w: unknown trace level %q; valid: none, events", ErrInvalidParameter, c.TraceLevel)
	}
	return nil
}

func isFinitePositive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

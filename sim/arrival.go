package sim

import (
	"fmt"
	"math/rand"

	"github.com/inference-sim/queue-sim/sim/workload"
)

// ArrivalProcess feeds one Queue with a self-perpetuating stream of
// arrivals. Each arrival schedules exactly one successor and returns, so a
// long horizon never deepens the call stack. There is no stop condition:
// the driver ends the run by no longer calling the Schedule.
type ArrivalProcess struct {
	rate    float64
	queue   *Queue // not owned
	sampler workload.ArrivalSampler
	rng     *rand.Rand
	next    ArrivalEvent
}

// NewArrivalProcess binds an arrival stream of the given rate to q.
// A nil sampler means Poisson arrivals. Panics if rate is not positive or
// q or rng is nil.
func NewArrivalProcess(rate float64, q *Queue, sampler workload.ArrivalSampler, rng *rand.Rand) *ArrivalProcess {
	if !(rate > 0) {
		panic(fmt.Sprintf("NewArrivalProcess: rate must be > 0, got %v", rate))
	}
	if q == nil || rng == nil {
		panic("NewArrivalProcess: queue and rng must not be nil")
	}
	if sampler == nil {
		sampler = workload.NewArrivalSampler(workload.ArrivalSpec{}, rate)
	}
	p := &ArrivalProcess{rate: rate, queue: q, sampler: sampler, rng: rng}
	p.next = ArrivalEvent{Process: p}
	return p
}

// Rate returns λ.
func (p *ArrivalProcess) Rate() float64 { return p.rate }

// Start schedules the first arrival one sampled interval after s.Now().
func (p *ArrivalProcess) Start(s *Schedule) error {
	return s.ScheduleAfter(p.sampler.SampleIAT(p.rng), &p.next)
}

// HandleArrival admits one customer and schedules the next arrival.
func (p *ArrivalProcess) HandleArrival(s *Schedule) error {
	if err := p.queue.Arrival(s); err != nil {
		return err
	}
	return s.ScheduleAfter(p.sampler.SampleIAT(p.rng), &p.next)
}

package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/queue-sim/sim/workload"
)

// scriptedSampler replays fixed inter-arrival times, then repeats the last one.
type scriptedSampler struct {
	iats []float64
	i    int
}

func (s *scriptedSampler) SampleIAT(_ *rand.Rand) float64 {
	v := s.iats[min(s.i, len(s.iats)-1)]
	s.i++
	return v
}

func TestNewArrivalProcess_Validation(t *testing.T) {
	q := NewQueue(1)
	rng := rand.New(rand.NewSource(1))
	assert.Panics(t, func() { NewArrivalProcess(0, q, nil, rng) })
	assert.Panics(t, func() { NewArrivalProcess(1, nil, nil, rng) })
	assert.Panics(t, func() { NewArrivalProcess(1, q, nil, nil) })

	p := NewArrivalProcess(0.8, q, nil, rng)
	assert.Equal(t, 0.8, p.Rate())
	assert.IsType(t, &workload.PoissonSampler{}, p.sampler, "nil sampler defaults to Poisson")
}

// TestArrivalProcess_Start_SchedulesFirstArrivalAfterOneDraw verifies the
// first arrival lands at exactly the first exponential draw / λ.
func TestArrivalProcess_Start_SchedulesFirstArrivalAfterOneDraw(t *testing.T) {
	s := NewSchedule(nil)
	q := NewQueue(1)
	p := NewArrivalProcess(0.8, q, nil, rand.New(rand.NewSource(42)))

	require.NoError(t, p.Start(s))

	want := rand.New(rand.NewSource(42)).ExpFloat64() / 0.8
	assert.Equal(t, 1, s.Pending())
	assert.Equal(t, want, s.PeekNextTime())
	assert.Greater(t, s.PeekNextTime(), 0.0)
	assert.Equal(t, 0, q.Arrivals(), "Start must not deliver an arrival")
}

// TestArrivalProcess_HandleArrival_SchedulesExactlyOneSuccessor verifies the
// stream perpetuates itself one event at a time.
func TestArrivalProcess_HandleArrival_SchedulesExactlyOneSuccessor(t *testing.T) {
	s := NewSchedule(nil)
	q := NewQueue(100) // service never overlaps arrivals in this script
	p := NewArrivalProcess(1, q, &scriptedSampler{iats: []float64{1, 2, 3}}, rand.New(rand.NewSource(1)))
	require.NoError(t, p.Start(s))

	var arrivalTimes []float64
	for q.Arrivals() < 3 {
		before := q.Arrivals()
		require.NoError(t, s.RunNext())
		if q.Arrivals() > before {
			arrivalTimes = append(arrivalTimes, s.Now())
			next := 0
			for _, ev := range s.pending.events {
				if ev.Kind() == EventKindArrival {
					next++
				}
			}
			assert.Equal(t, 1, next, "exactly one future arrival after each arrival")
		}
	}
	assert.Equal(t, []float64{1, 3, 6}, arrivalTimes)
}

// TestArrivalProcess_LongHorizon_BoundedPending verifies that iterative
// self-scheduling keeps the pending set tiny over a long run.
func TestArrivalProcess_LongHorizon_BoundedPending(t *testing.T) {
	s := NewSchedule(nil)
	q := NewQueue(1000)
	p := NewArrivalProcess(1, q, nil, rand.New(rand.NewSource(9)))
	require.NoError(t, p.Start(s))

	for q.Arrivals() < 100000 {
		require.NoError(t, s.RunNext())
		if s.Pending() > 2 {
			t.Fatalf("pending = %d after %d arrivals, want <= 2", s.Pending(), q.Arrivals())
		}
	}
}

func TestArrivalEvent_Kinds(t *testing.T) {
	assert.Equal(t, EventKindArrival, (&ArrivalEvent{}).Kind())
	assert.Equal(t, EventKindEndService, (&EndServiceEvent{}).Kind())
	assert.Equal(t, EventKindCallback, HandlerFunc(nil).Kind())
}

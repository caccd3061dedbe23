package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey identifies a reproducible run: the same key and the same
// SimConfig give bit-identical histories.
type SimulationKey int64

// NewSimulationKey wraps a CLI or scenario seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemArrival names the stream that draws inter-arrival times. It is
// seeded with the key itself, so seed N replays rand.NewSource(N).
const SubsystemArrival = "arrival"

// PartitionedRNG hands out one independent *rand.Rand per named subsystem,
// so adding draws to one stream never shifts another.
//
// Seeds: SubsystemArrival gets the key unchanged; any other name gets
// key XOR fnv1a64(name).
//
// Not safe for concurrent use.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG with no streams materialized.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		streams: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the stream for name, creating it on first use.
// Repeated calls return the same instance.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.seedFor(name)))
	p.streams[name] = rng
	return rng
}

func (p *PartitionedRNG) seedFor(name string) int64 {
	if name == SubsystemArrival {
		return int64(p.key)
	}
	return int64(p.key) ^ fnv1a64(name)
}

// Key returns the SimulationKey the streams derive from.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

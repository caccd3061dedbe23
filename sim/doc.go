// Package sim provides a single-threaded discrete-event simulation engine and
// the single-server queue model built on it.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - event.go: Event and the Handler variants (arrival, end of service, callback)
//   - schedule.go: the time-ordered event heap and the simulation clock
//   - queue.go: the single-server FIFO state machine and its occupancy history
//   - simulator.go: the driver that runs events up to a horizon
//
// # Architecture
//
// Control flow is a closed causal loop: Simulator.Run asks the Schedule for
// the next event and executes it; the handler mutates the Queue or the
// ArrivalProcess and pushes further events onto the same Schedule. Nothing
// else advances time.
//
// Implementations that are not part of the kernel live in sub-packages:
//   - sim/workload/: inter-arrival samplers (poisson, constant, gamma, weibull)
//   - sim/trace/: executed-event recording
//
// # Determinism
//
// Equal timestamps are ordered by an injected TieBreaker (FIFO insertion
// order by default) and all randomness comes from a seeded PartitionedRNG.
// Two runs with the same SimConfig produce identical histories and traces.
package sim

// Package trace provides event-trace recording for simulation runs.
// It has no dependencies on sim/ and stores plain data types.
package trace

// EventRecord captures one executed event and the queue occupancy right
// after its handler returned.
type EventRecord struct {
	Seq       uint64  `json:"seq"`
	Clock     float64 `json:"clock"`
	Kind      string  `json:"kind"`
	Occupancy int     `json:"occupancy"`
	Failed    bool    `json:"failed,omitempty"`
}

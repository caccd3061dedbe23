// Tracks run-wide statistics of the queue: counts, time-averaged occupancy,
// server utilization and per-customer waiting times.

package sim

import (
	"fmt"
	"io"
)

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	Arrivals         int     `json:"arrivals"`
	Completions      int     `json:"completions"`
	EndTime          float64 `json:"end_time"`           // right edge of the observation window
	TimeAvgOccupancy float64 `json:"time_avg_occupancy"` // ∫ occupancy dt / EndTime
	MaxOccupancy     int     `json:"max_occupancy"`
	Utilization      float64 `json:"utilization"` // fraction of [0, EndTime] the server was busy
	MeanWait         float64 `json:"mean_wait"`   // service start - arrival, completed customers
	MeanSojourn      float64 `json:"mean_sojourn"`
	WaitP50          float64 `json:"wait_p50"`
	WaitP99          float64 `json:"wait_p99"`

	waits    []float64
	sojourns []float64
}

// NewMetrics creates an empty Metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		waits:    make([]float64, 0),
		sojourns: make([]float64, 0),
	}
}

// RecordCompletion stores the waiting and sojourn time of a departing customer.
func (m *Metrics) RecordCompletion(c Customer, departure float64) {
	m.waits = append(m.waits, c.ServiceStart-c.ArrivalTime)
	m.sojourns = append(m.sojourns, departure-c.ArrivalTime)
}

// Waits returns the recorded waiting times in completion order.
func (m *Metrics) Waits() []float64 { return m.waits }

// Sojourns returns the recorded sojourn times in completion order.
func (m *Metrics) Sojourns() []float64 { return m.sojourns }

// Finalize integrates the occupancy step function over [0, end].
// Samples sharing a timestamp span zero time, so only the last state of each
// instant contributes. While the server is busy occupancy is positive, so
// busy time is the measure of the positive part.
func (m *Metrics) Finalize(history []Sample, end float64, arrivals, completions int) {
	m.Arrivals = arrivals
	m.Completions = completions
	m.EndTime = end
	m.MeanWait = CalculateMean(m.waits)
	m.MeanSojourn = CalculateMean(m.sojourns)
	waits := sortedCopy(m.waits)
	m.WaitP50 = CalculatePercentile(waits, 50)
	m.WaitP99 = CalculatePercentile(waits, 99)

	var area, busy float64
	for i, smp := range history {
		next := end
		if i+1 < len(history) {
			next = history[i+1].Time
		}
		width := next - smp.Time
		area += float64(smp.Occupancy) * width
		if smp.Occupancy > 0 {
			busy += width
		}
		if smp.Occupancy > m.MaxOccupancy {
			m.MaxOccupancy = smp.Occupancy
		}
	}
	if end > 0 {
		m.TimeAvgOccupancy = area / end
		m.Utilization = busy / end
	}
}

// Print writes the metrics block of the text report, next to the analytic
// steady state when one is supplied.
func (m *Metrics) Print(w io.Writer, ss *SteadyState) {
	fmt.Fprintln(w, "=== Simulation Metrics ===")
	fmt.Fprintf(w, "Arrivals             : %d\n", m.Arrivals)
	fmt.Fprintf(w, "Completions          : %d\n", m.Completions)
	fmt.Fprintf(w, "Observed until       : %.4f\n", m.EndTime)
	fmt.Fprintf(w, "Max occupancy        : %d\n", m.MaxOccupancy)
	fmt.Fprintf(w, "Wait p50 / p99       : %.4f / %.4f\n", m.WaitP50, m.WaitP99)
	if ss == nil {
		fmt.Fprintf(w, "Mean in system (L)   : %.4f\n", m.TimeAvgOccupancy)
		fmt.Fprintf(w, "Utilization          : %.4f\n", m.Utilization)
		fmt.Fprintf(w, "Mean wait (Wq)       : %.4f\n", m.MeanWait)
		fmt.Fprintf(w, "Mean sojourn (W)     : %.4f\n", m.MeanSojourn)
		return
	}
	fmt.Fprintf(w, "Mean in system (L)   : %.4f (M/D/1: %.4f)\n", m.TimeAvgOccupancy, ss.L)
	fmt.Fprintf(w, "Utilization          : %.4f (rho: %.4f)\n", m.Utilization, ss.Rho)
	fmt.Fprintf(w, "Mean wait (Wq)       : %.4f (M/D/1: %.4f)\n", m.MeanWait, ss.Wq)
	fmt.Fprintf(w, "Mean sojourn (W)     : %.4f (M/D/1: %.4f)\n", m.MeanSojourn, ss.W)
}

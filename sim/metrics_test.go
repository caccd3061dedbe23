package sim

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetrics_Finalize_StepIntegral(t *testing.T) {
	// occupancy: 1 on [1,2), 2 on [2,4), 0 on [4,10]
	history := []Sample{{1, 1}, {1, 1}, {2, 2}, {4, 1}, {4, 0}}
	m := NewMetrics()
	m.Finalize(history, 10, 2, 2)

	assert.InDelta(t, (1*1+2*2)/10.0, m.TimeAvgOccupancy, 1e-12)
	assert.InDelta(t, 3/10.0, m.Utilization, 1e-12)
	assert.Equal(t, 2, m.MaxOccupancy)
	assert.Equal(t, 2, m.Arrivals)
	assert.Equal(t, 2, m.Completions)
	assert.Equal(t, 10.0, m.EndTime)
}

func TestMetrics_Finalize_LastSampleExtendsToEnd(t *testing.T) {
	m := NewMetrics()
	m.Finalize([]Sample{{2, 3}}, 5, 3, 0)
	assert.InDelta(t, 9/5.0, m.TimeAvgOccupancy, 1e-12)
	assert.InDelta(t, 3/5.0, m.Utilization, 1e-12)
}

func TestMetrics_Finalize_ZeroEnd(t *testing.T) {
	m := NewMetrics()
	m.Finalize(nil, 0, 0, 0)
	assert.Equal(t, 0.0, m.TimeAvgOccupancy)
	assert.Equal(t, 0.0, m.Utilization)
	assert.Equal(t, 0.0, m.MeanWait)
}

func TestMetrics_RecordCompletion(t *testing.T) {
	m := NewMetrics()
	m.RecordCompletion(Customer{ID: 1, ArrivalTime: 1, ServiceStart: 1}, 2)
	m.RecordCompletion(Customer{ID: 2, ArrivalTime: 1.5, ServiceStart: 2}, 3)
	m.Finalize(nil, 3, 2, 2)

	assert.Equal(t, []float64{0, 0.5}, m.Waits())
	assert.Equal(t, []float64{1, 1.5}, m.Sojourns())
	assert.InDelta(t, 0.25, m.MeanWait, 1e-12)
	assert.InDelta(t, 1.25, m.MeanSojourn, 1e-12)
	assert.InDelta(t, 0.25, m.WaitP50, 1e-12)
	assert.InDelta(t, 0.495, m.WaitP99, 1e-12)
	assert.Equal(t, []float64{0, 0.5}, m.Waits(), "percentiles must not reorder the recorded waits")
}

func TestMetrics_Print(t *testing.T) {
	m := NewMetrics()
	m.Finalize([]Sample{{0, 1}, {1, 0}}, 2, 1, 1)

	var buf bytes.Buffer
	ss := AnalyzeMD1(0.5, 1)
	m.Print(&buf, &ss)
	out := buf.String()
	assert.Contains(t, out, "=== Simulation Metrics ===")
	assert.Contains(t, out, "Arrivals             : 1")
	assert.Contains(t, out, "Utilization          : 0.5000 (rho: 0.5000)")

	buf.Reset()
	m.Print(&buf, nil)
	assert.NotContains(t, buf.String(), "M/D/1")
}

func TestCalculateMean(t *testing.T) {
	assert.Equal(t, 0.0, CalculateMean([]float64(nil)))
	assert.InDelta(t, 2.0, CalculateMean([]float64{1, 2, 3}), 1e-12)
}

package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents  int            `json:"total_events"`
	FailedEvents int            `json:"failed_events"`
	FirstClock   float64        `json:"first_clock"`
	LastClock    float64        `json:"last_clock"`
	KindCounts   map[string]int `json:"kind_counts"` // event kind → count of executions
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		KindCounts: make(map[string]int),
	}
	if st == nil || len(st.Events) == 0 {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	summary.FirstClock = st.Events[0].Clock
	summary.LastClock = st.Events[len(st.Events)-1].Clock
	for _, e := range st.Events {
		summary.KindCounts[e.Kind]++
		if e.Failed {
			summary.FailedEvents++
		}
	}
	return summary
}

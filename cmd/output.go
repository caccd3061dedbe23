package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	sim "github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/trace"
)

// jsonReport is the --output json document.
type jsonReport struct {
	*sim.Result
	Analytic     *sim.SteadyState    `json:"analytic,omitempty"`
	TraceSummary *trace.TraceSummary `json:"trace_summary,omitempty"`
}

// analyticFor returns the M/D/1 figures when they apply to the run's arrival process.
func analyticFor(s *sim.Simulator) *sim.SteadyState {
	if !s.Config().Arrival.IsMarkovian() {
		return nil
	}
	ss := s.SteadyState()
	return &ss
}

func writeTextReport(w io.Writer, s *sim.Simulator, res *sim.Result) error {
	fmt.Fprintln(w, "Simulation complete.")
	fmt.Fprintf(w, "Final schedule state: %s\n", s.Schedule())
	fmt.Fprintf(w, "Final queue state: %s\n", s.Queue())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Time vs. (Queue + In Service):")
	for _, smp := range res.History {
		fmt.Fprintf(w, "  t=%.2f, length=%d\n", smp.Time, smp.Occupancy)
	}
	fmt.Fprintln(w)
	res.Metrics.Print(w, analyticFor(s))

	if res.Trace != nil {
		summary := trace.Summarize(res.Trace)
		fmt.Fprintln(w, "=== Event Trace ===")
		fmt.Fprintf(w, "Events executed      : %d\n", summary.TotalEvents)
		fmt.Fprintf(w, "Failed events        : %d\n", summary.FailedEvents)
		for _, kind := range []sim.EventKind{sim.EventKindArrival, sim.EventKindEndService, sim.EventKindCallback} {
			if n := summary.KindCounts[string(kind)]; n > 0 {
				fmt.Fprintf(w, "  %-19s: %d\n", kind, n)
			}
		}
	}
	return nil
}

func writeJSONReport(w io.Writer, s *sim.Simulator, res *sim.Result) error {
	report := jsonReport{Result: res, Analytic: analyticFor(s)}
	if res.Trace != nil {
		report.TraceSummary = trace.Summarize(res.Trace)
	}
	return writeJSON(w, report)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON report: %w", err)
	}
	return nil
}

func writeSteadyState(w io.Writer, ss sim.SteadyState) {
	fmt.Fprintln(w, "=== M/D/1 Steady State ===")
	fmt.Fprintf(w, "Arrival rate (lambda): %.4f\n", ss.ArrivalRate)
	fmt.Fprintf(w, "Service rate (mu)    : %.4f\n", ss.ServiceRate)
	fmt.Fprintf(w, "Utilization (rho)    : %.4f\n", ss.Rho)
	if !ss.Stable {
		fmt.Fprintln(w, "Unstable: rho >= 1, the queue grows without bound")
		return
	}
	fmt.Fprintf(w, "Mean in system (L)   : %.4f\n", ss.L)
	fmt.Fprintf(w, "Mean in queue (Lq)   : %.4f\n", ss.Lq)
	fmt.Fprintf(w, "Mean sojourn (W)     : %.4f\n", ss.W)
	fmt.Fprintf(w, "Mean wait (Wq)       : %.4f\n", ss.Wq)
}

// writeHistoryFile writes the occupancy history for an external plotter.
// A .csv extension selects time,occupancy rows; anything else gets JSON.
func writeHistoryFile(path string, history []sim.Sample) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating history file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing history file: %w", cerr)
		}
	}()

	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return writeHistoryCSV(f, history)
	}
	return writeJSON(f, history)
}

func writeHistoryCSV(w io.Writer, history []sim.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "occupancy"}); err != nil {
		return fmt.Errorf("writing history CSV: %w", err)
	}
	for _, smp := range history {
		row := []string{strconv.FormatFloat(smp.Time, 'g', -1, 64), strconv.Itoa(smp.Occupancy)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing history CSV: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("writing history CSV: %w", err)
	}
	return nil
}

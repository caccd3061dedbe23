// Package testutil provides shared test infrastructure for the queue simulator.
// It consolidates golden dataset types and assertion helpers used across
// sim/ and cmd/ test packages.
package testutil

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// GoldenDataset represents the structure of testdata/goldendataset.json.
type GoldenDataset struct {
	Tests []GoldenTestCase `json:"tests"`
}

// GoldenTestCase represents a single run configuration and its expected outcome.
type GoldenTestCase struct {
	Name        string        `json:"name"`
	ArrivalRate float64       `json:"arrival_rate"`
	ServiceRate float64       `json:"service_rate"`
	Horizon     float64       `json:"horizon"`
	Seed        int64         `json:"seed"`
	TieBreak    string        `json:"tie_break"`
	Expected    GoldenOutcome `json:"expected"`
}

// GoldenOutcome is the expected final state, history and metrics of a run.
type GoldenOutcome struct {
	// Exact match fields
	Waiting      int `json:"waiting"`
	InService    int `json:"in_service"`
	Arrivals     int `json:"arrivals"`
	Completions  int `json:"completions"`
	Pending      int `json:"pending_events"`
	MaxOccupancy int `json:"max_occupancy"`

	// Deterministic floating-point fields (derived from the simulation clock)
	Clock            float64 `json:"clock"`
	TimeAvgOccupancy float64 `json:"time_avg_occupancy"`
	Utilization      float64 `json:"utilization"`
	MeanWait         float64 `json:"mean_wait"`
	MeanSojourn      float64 `json:"mean_sojourn"`

	History []GoldenSample `json:"history"`
}

// GoldenSample is one expected (time, occupancy) point.
type GoldenSample struct {
	Time      float64 `json:"time"`
	Occupancy int     `json:"occupancy"`
}

// LoadGoldenDataset loads the golden dataset from the testdata directory.
// The path is resolved relative to this source file: sim/internal/testutil/ → testdata/.
func LoadGoldenDataset(t *testing.T) *GoldenDataset {
	t.Helper()

	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("Failed to get current file path")
	}
	// Navigate from sim/internal/testutil/ to repo root testdata/
	path := filepath.Join(filepath.Dir(thisFile), "..", "..", "..", "testdata", "goldendataset.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read golden dataset: %v", err)
	}

	var dataset GoldenDataset
	if err := json.Unmarshal(data, &dataset); err != nil {
		t.Fatalf("Failed to parse golden dataset: %v", err)
	}

	return &dataset
}

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

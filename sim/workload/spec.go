// Package workload provides the arrival processes that feed a queue.
package workload

import (
	"fmt"
	"math"
	"sort"
)

// Arrival process names.
const (
	ProcessPoisson  = "poisson"
	ProcessConstant = "constant"
	ProcessGamma    = "gamma"
	ProcessWeibull  = "weibull"
)

var validArrivalProcesses = map[string]bool{
	ProcessPoisson: true, ProcessConstant: true, ProcessGamma: true, ProcessWeibull: true,
}

// ArrivalSpec configures the inter-arrival time process.
// The zero value is a Poisson process.
type ArrivalSpec struct {
	Process string   `yaml:"process" json:"process"`
	CV      *float64 `yaml:"cv,omitempty" json:"cv,omitempty"`
}

// IsMarkovian reports whether the spec describes exponential inter-arrivals.
func (a ArrivalSpec) IsMarkovian() bool {
	return a.Process == "" || a.Process == ProcessPoisson
}

func (a ArrivalSpec) cvOrDefault() float64 {
	if a.CV == nil || *a.CV <= 0 {
		return 1.0
	}
	return *a.CV
}

// ValidArrivalProcessNames returns the recognized process names, sorted.
func ValidArrivalProcessNames() []string {
	names := make([]string, 0, len(validArrivalProcesses))
	for name := range validArrivalProcesses {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks the process name and, when present, the coefficient of variation.
func (a ArrivalSpec) Validate() error {
	if a.Process != "" && !validArrivalProcesses[a.Process] {
		return fmt.Errorf("unknown arrival process %q; valid: %v", a.Process, ValidArrivalProcessNames())
	}
	if a.CV == nil {
		return nil
	}
	cv := *a.CV
	if math.IsNaN(cv) || math.IsInf(cv, 0) || cv <= 0 {
		return fmt.Errorf("arrival cv must be a finite positive number, got %v", cv)
	}
	if a.Process == ProcessWeibull && (cv < 0.01 || cv > 10.4) {
		return fmt.Errorf("weibull cv must be in [0.01, 10.4], got %f", cv)
	}
	return nil
}

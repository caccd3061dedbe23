package sim

import (
	"encoding/json"
	"math"
)

// SteadyState holds the closed-form long-run figures of an M/D/1 queue.
// When the queue is unstable (Rho >= 1) every figure except Rho is +Inf.
type SteadyState struct {
	ArrivalRate float64 `json:"arrival_rate"`
	ServiceRate float64 `json:"service_rate"`
	Rho         float64 `json:"rho"`
	Stable      bool    `json:"stable"`
	L           float64 `json:"mean_in_system"`
	Lq          float64 `json:"mean_in_queue"`
	W           float64 `json:"mean_sojourn"`
	Wq          float64 `json:"mean_wait"`
}

// AnalyzeMD1 evaluates the Pollaczek-Khinchine formulas for Poisson arrivals
// at rate lambda and deterministic service at rate mu:
//
//	Lq = ρ² / (2(1-ρ)),  L = ρ + Lq,  Wq = Lq/λ,  W = Wq + 1/μ
func AnalyzeMD1(lambda, mu float64) SteadyState {
	rho := lambda / mu
	ss := SteadyState{ArrivalRate: lambda, ServiceRate: mu, Rho: rho, Stable: rho < 1}
	if !ss.Stable {
		inf := math.Inf(1)
		ss.L, ss.Lq, ss.W, ss.Wq = inf, inf, inf, inf
		return ss
	}
	ss.Lq = rho * rho / (2 * (1 - rho))
	ss.L = rho + ss.Lq
	ss.Wq = ss.Lq / lambda
	ss.W = ss.Wq + 1/mu
	return ss
}

// MarshalJSON encodes infinite figures of an unstable queue as null.
func (ss SteadyState) MarshalJSON() ([]byte, error) {
	finite := func(v float64) *float64 {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil
		}
		return &v
	}
	return json.Marshal(struct {
		ArrivalRate float64  `json:"arrival_rate"`
		ServiceRate float64  `json:"service_rate"`
		Rho         float64  `json:"rho"`
		Stable      bool     `json:"stable"`
		L           *float64 `json:"mean_in_system"`
		Lq          *float64 `json:"mean_in_queue"`
		W           *float64 `json:"mean_sojourn"`
		Wq          *float64 `json:"mean_wait"`
	}{ss.ArrivalRate, ss.ServiceRate, ss.Rho, ss.Stable, finite(ss.L), finite(ss.Lq), finite(ss.W), finite(ss.Wq)})
}

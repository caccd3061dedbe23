package sim

import (
	"fmt"
	"sort"
)

// TieBreaker orders two events that share a timestamp.
// Implementations must be a strict total order over distinct events so that
// identical inputs always replay in the same order.
type TieBreaker interface {
	Before(a, b Event) bool
}

// FIFOTieBreaker runs simultaneous events in insertion order.
// This is the default policy.
type FIFOTieBreaker struct{}

func (FIFOTieBreaker) Before(a, b Event) bool { return a.seq < b.seq }

// LIFOTieBreaker runs the most recently scheduled of simultaneous events first.
type LIFOTieBreaker struct{}

func (LIFOTieBreaker) Before(a, b Event) bool { return a.seq > b.seq }

// departurePriority: lower values run first at equal timestamps.
var departurePriority = map[EventKind]int{
	EventKindEndService: 0,
	EventKindArrival:    1,
	EventKindCallback:   2,
}

// DeparturesFirstTieBreaker frees the server before admitting a simultaneous
// arrival. Ties within a kind fall back to insertion order.
type DeparturesFirstTieBreaker struct{}

func (DeparturesFirstTieBreaker) Before(a, b Event) bool {
	pa, pb := departurePriority[a.Kind()], departurePriority[b.Kind()]
	if pa != pb {
		return pa < pb
	}
	return a.seq < b.seq
}

var tieBreakers = map[string]func() TieBreaker{
	"fifo":             func() TieBreaker { return FIFOTieBreaker{} },
	"lifo":             func() TieBreaker { return LIFOTieBreaker{} },
	"departures-first": func() TieBreaker { return DeparturesFirstTieBreaker{} },
}

// IsValidTieBreaker reports whether name is a recognized policy.
// The empty string is accepted and means "fifo".
func IsValidTieBreaker(name string) bool {
	if name == "" {
		return true
	}
	_, ok := tieBreakers[name]
	return ok
}

// ValidTieBreakerNames returns the recognized policy names, sorted.
func ValidTieBreakerNames() []string {
	names := make([]string, 0, len(tieBreakers))
	for name := range tieBreakers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewTieBreaker creates a TieBreaker by name.
// Panics on unrecognized names; validate with IsValidTieBreaker first.
func NewTieBreaker(name string) TieBreaker {
	if name == "" {
		name = "fifo"
	}
	ctor, ok := tieBreakers[name]
	if !ok {
		panic(fmt.Sprintf("unknown tie-break policy %q", name))
	}
	return ctor()
}

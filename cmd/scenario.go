package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inference-sim/queue-sim/sim/workload"
)

// Scenario is a YAML file describing one run. Absent keys fall through to
// the flag defaults; pointer fields distinguish "absent" from an explicit zero.
type Scenario struct {
	ArrivalRate *float64             `yaml:"arrival_rate"`
	ServiceRate *float64             `yaml:"service_rate"`
	Horizon     *float64             `yaml:"horizon"`
	Seed        *int64               `yaml:"seed"`
	TieBreak    string               `yaml:"tie_break"`
	Arrival     workload.ArrivalSpec `yaml:"arrival"`
	Trace       string               `yaml:"trace"`
}

// LoadScenario parses a scenario file with strict field checking, so a
// misspelled key is an error rather than a silently ignored setting.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scenario file: %w", err)
	}
	return parseScenario(data)
}

func parseScenario(data []byte) (*Scenario, error) {
	var sc Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&sc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing scenario YAML: %w", err)
	}
	return &sc, nil
}

// applyDefaults installs the scenario's values one layer below flags and env.
func (sc *Scenario) applyDefaults(v *viper.Viper) {
	if sc.ArrivalRate != nil {
		v.SetDefault(keyArrivalRate, *sc.ArrivalRate)
	}
	if sc.ServiceRate != nil {
		v.SetDefault(keyServiceRate, *sc.ServiceRate)
	}
	if sc.Horizon != nil {
		v.SetDefault(keyHorizon, *sc.Horizon)
	}
	if sc.Seed != nil {
		v.SetDefault(keySeed, *sc.Seed)
	}
	if sc.TieBreak != "" {
		v.SetDefault(keyTieBreak, sc.TieBreak)
	}
	if sc.Arrival.Process != "" {
		v.SetDefault(keyArrivalProcess, sc.Arrival.Process)
	}
	if sc.Arrival.CV != nil {
		v.SetDefault(keyArrivalCV, *sc.Arrival.CV)
	}
	if sc.Trace != "" {
		v.SetDefault(keyTrace, sc.Trace)
	}
}

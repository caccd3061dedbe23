package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	sim "github.com/inference-sim/queue-sim/sim"
	"github.com/inference-sim/queue-sim/sim/workload"
)

// envPrefix namespaces the environment overrides, e.g. QUEUESIM_ARRIVAL_RATE.
const envPrefix = "QUEUESIM"

// Flag names double as viper keys.
const (
	keyArrivalRate    = "arrival-rate"
	keyServiceRate    = "service-rate"
	keyHorizon        = "horizon"
	keySeed           = "seed"
	keyTieBreak       = "tie-break"
	keyArrivalProcess = "arrival-process"
	keyArrivalCV      = "arrival-cv"
	keyTrace          = "trace"
	keyConfig         = "config"
	keyOutput         = "output"
	keyHistoryOut     = "history-out"
	keyLog            = "log"
)

const (
	outputText = "text"
	outputJSON = "json"
)

// runOptions is the fully resolved input of the run command.
type runOptions struct {
	Config     sim.SimConfig
	Output     string
	HistoryOut string
	LogLevel   string
}

func (o runOptions) validateOutput() error {
	return validateOutputFormat(o.Output)
}

// analyzeOptions is the fully resolved input of the analyze command.
type analyzeOptions struct {
	ArrivalRate float64
	ServiceRate float64
	Output      string
	LogLevel    string
}

// newViper binds flags and QUEUESIM_* environment variables, then layers the
// scenario file named by --config (or QUEUESIM_CONFIG) underneath them.
// Resulting precedence: changed flag > environment > scenario > flag default.
func newViper(flags *pflag.FlagSet) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	if path := v.GetString(keyConfig); path != "" {
		sc, err := LoadScenario(path)
		if err != nil {
			return nil, err
		}
		sc.applyDefaults(v)
	}
	return v, nil
}

func loadRunOptions(flags *pflag.FlagSet) (runOptions, error) {
	v, err := newViper(flags)
	if err != nil {
		return runOptions{}, err
	}

	cfg := sim.NewSimConfig(
		v.GetFloat64(keyArrivalRate),
		v.GetFloat64(keyServiceRate),
		v.GetFloat64(keyHorizon),
		v.GetInt64(keySeed),
	)
	cfg.TieBreak = v.GetString(keyTieBreak)
	cfg.TraceLevel = v.GetString(keyTrace)
	cfg.Arrival = workload.ArrivalSpec{Process: v.GetString(keyArrivalProcess)}
	// The flag default for cv is informational only; leave CV nil unless set.
	if v.IsSet(keyArrivalCV) {
		cv := v.GetFloat64(keyArrivalCV)
		cfg.Arrival.CV = &cv
	}

	return runOptions{
		Config:     cfg,
		Output:     v.GetString(keyOutput),
		HistoryOut: v.GetString(keyHistoryOut),
		LogLevel:   v.GetString(keyLog),
	}, nil
}

func loadAnalyzeOptions(flags *pflag.FlagSet) (analyzeOptions, error) {
	v, err := newViper(flags)
	if err != nil {
		return analyzeOptions{}, err
	}
	opts := analyzeOptions{
		ArrivalRate: v.GetFloat64(keyArrivalRate),
		ServiceRate: v.GetFloat64(keyServiceRate),
		Output:      v.GetString(keyOutput),
		LogLevel:    v.GetString(keyLog),
	}
	if err := validateOutputFormat(opts.Output); err != nil {
		return analyzeOptions{}, err
	}
	// Reuse the simulator's rate checks so both commands reject the same input.
	probe := sim.NewSimConfig(opts.ArrivalRate, opts.ServiceRate, 0, 0)
	if err := probe.Validate(); err != nil {
		return analyzeOptions{}, err
	}
	return opts, nil
}

func validateOutputFormat(format string) error {
	switch format {
	case outputText, outputJSON:
		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q; valid: [%s %s]", sim.ErrInvalidParameter, format, outputJSON, outputText)
	}
}

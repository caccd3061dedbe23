package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	sim "github.com/inference-sim/queue-sim/sim"
)

// rootCmd is the base command for the CLI
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "queue-sim",
		Short:         "Discrete-event simulator for a single-server M/D/1 queue",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	// Attach subcommands to `root`
	root.AddCommand(newRunCmd())
	root.AddCommand(newAnalyzeCmd())
	return root
}

// newRunCmd executes the simulation using parameters from flags, environment and scenario file
func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the queue simulation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadRunOptions(cmd.Flags())
			if err != nil {
				return err
			}
			if err := setLogLevel(opts.LogLevel); err != nil {
				return err
			}
			if err := opts.validateOutput(); err != nil {
				return err
			}
			return runSimulation(cmd.OutOrStdout(), opts)
		},
	}
	registerModelFlags(cmd)
	cmd.Flags().Float64(keyHorizon, 20, "Simulation end time; events at exactly this time still run")
	cmd.Flags().Int64(keySeed, 42, "Seed for the arrival process")
	cmd.Flags().String(keyTieBreak, "fifo", fmt.Sprintf("Order of events with equal timestamps %v", sim.ValidTieBreakerNames()))
	cmd.Flags().String(keyArrivalProcess, "poisson", "Inter-arrival process (poisson, constant, gamma, weibull)")
	cmd.Flags().Float64(keyArrivalCV, 1.0, "Coefficient of variation for gamma and weibull arrivals")
	cmd.Flags().String(keyTrace, "none", "Event trace level (none, events)")
	cmd.Flags().String(keyConfig, "", "YAML scenario file; flags and QUEUESIM_* variables override it")
	cmd.Flags().String(keyHistoryOut, "", "Write the occupancy history to this file (.csv or .json)")
	return cmd
}

func runSimulation(out io.Writer, opts runOptions) error {
	s, err := sim.NewSimulator(opts.Config)
	if err != nil {
		return err
	}
	res, err := s.Run()
	if err != nil {
		return err
	}
	logrus.Info("Simulation complete.")

	switch opts.Output {
	case outputJSON:
		err = writeJSONReport(out, s, res)
	default:
		err = writeTextReport(out, s, res)
	}
	if err != nil {
		return err
	}
	if opts.HistoryOut != "" {
		if err := writeHistoryFile(opts.HistoryOut, res.History); err != nil {
			return err
		}
		logrus.Infof("History written to %s", opts.HistoryOut)
	}
	return nil
}

// newAnalyzeCmd prints the closed-form M/D/1 figures without simulating
func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the Pollaczek-Khinchine steady state for an M/D/1 queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadAnalyzeOptions(cmd.Flags())
			if err != nil {
				return err
			}
			if err := setLogLevel(opts.LogLevel); err != nil {
				return err
			}
			ss := sim.AnalyzeMD1(opts.ArrivalRate, opts.ServiceRate)
			if opts.Output == outputJSON {
				return writeJSON(cmd.OutOrStdout(), ss)
			}
			writeSteadyState(cmd.OutOrStdout(), ss)
			return nil
		},
	}
	registerModelFlags(cmd)
	cmd.Flags().String(keyConfig, "", "YAML scenario file supplying arrival_rate and service_rate")
	return cmd
}

func setLogLevel(name string) error {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", name, err)
	}
	logrus.SetLevel(level)
	return nil
}

// Execute runs the CLI root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func registerModelFlags(cmd *cobra.Command) {
	cmd.Flags().Float64(keyArrivalRate, 0.8, "Arrivals per time unit (lambda)")
	cmd.Flags().Float64(keyServiceRate, 1.0, "Services per time unit (mu); service time is 1/mu")
	cmd.Flags().String(keyOutput, outputText, "Report format (text, json)")
	cmd.Flags().String(keyLog, "warn", "Log level (trace, debug, info, warn, error, fatal, panic)")
}

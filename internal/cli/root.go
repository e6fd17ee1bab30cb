// Package cli wires the hedgesim subcommands: payoff curves, simulation
// runs, and journal queries.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedger/config"
	"github.com/rustyeddy/hedger/journal"
)

// RootConfig carries the persistent flag values shared by subcommands.
type RootConfig struct {
	ConfigPath string
	DBPath     string
}

func NewRootCmd() *cobra.Command {
	rc := &RootConfig{}

	cmd := &cobra.Command{
		Use:           "hedgesim",
		Short:         "Hedgesim — option payoff modeling and hedged-vs-unhedged risk simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global / persistent flags
	cmd.PersistentFlags().StringVar(&rc.ConfigPath, "config", "", "Path to config file (optional)")
	cmd.PersistentFlags().StringVar(&rc.DBPath, "db", "", "SQLite journal database (overrides config)")

	// Subcommands
	cmd.AddCommand(
		newPayoffCmd(rc),
		newSimulateCmd(rc),
		newRunsCmd(rc),
	)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("hedgesim (dev)")
		},
	})

	return cmd
}

func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// loadConfig returns the file config when --config is set, defaults
// otherwise.
func (rc *RootConfig) loadConfig() (*config.Config, error) {
	if rc.ConfigPath == "" {
		return config.Default(), nil
	}
	return config.LoadFromFile(rc.ConfigPath)
}

// openJournal opens the journal the config selects. --db forces SQLite at
// that path regardless of the config.
func (rc *RootConfig) openJournal(cfg *config.Config) (journal.Journal, error) {
	if rc.DBPath != "" {
		return journal.NewSQLite(rc.DBPath)
	}
	switch cfg.Journal.Type {
	case "csv":
		return journal.NewCSV(cfg.Journal.RunsFile, cfg.Journal.MetricsFile, cfg.Journal.SamplesFile)
	default:
		return journal.NewSQLite(cfg.Journal.DBPath)
	}
}

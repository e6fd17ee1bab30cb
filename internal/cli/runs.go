package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedger/journal"
)

func newRunsCmd(rc *RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Query journaled simulation runs",
		Long: `Query and display simulation runs from the SQLite journal.

Examples:
  hedgesim runs list
  hedgesim runs show 01JD2H4K9W...`,
	}

	var limit int
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := rc.openSQLite()
			if err != nil {
				return err
			}
			defer j.Close()

			recs, err := j.ListRuns(limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			if len(recs) == 0 {
				fmt.Println("no runs journaled")
				return nil
			}

			fmt.Printf("%-27s %-20s %-8s %-16s %-22s %8s\n",
				"RUN ID", "CREATED", "SYMBOL", "STRATEGY", "METHOD", "PATHS")
			for _, r := range recs {
				fmt.Printf("%-27s %-20s %-8s %-16s %-22s %8d\n",
					r.RunID, r.Created.Format("2006-01-02 15:04:05"),
					r.Symbol, r.StrategyType, r.Method, r.PathCount)
			}
			return nil
		},
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to list")

	showCmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run with its metric bundles",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := rc.openSQLite()
			if err != nil {
				return err
			}
			defer j.Close()

			rec, err := j.GetRun(args[0])
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			metrics, err := j.MetricsForRun(args[0])
			if err != nil {
				return fmt.Errorf("query metrics: %w", err)
			}

			var unhedged, hedged *journal.MetricsRecord
			for i := range metrics {
				if metrics[i].Hedged {
					hedged = &metrics[i]
				} else {
					unhedged = &metrics[i]
				}
			}
			journal.PrintRunReport(os.Stdout, rec, unhedged, hedged)
			return nil
		},
	}

	cmd.AddCommand(listCmd, showCmd)
	return cmd
}

// openSQLite resolves the journal DB path from --db or the config file.
// The runs queries need SQLite; a csv journal has nothing to query.
func (rc *RootConfig) openSQLite() (*journal.SQLite, error) {
	path := rc.DBPath
	if path == "" {
		cfg, err := rc.loadConfig()
		if err != nil {
			return nil, err
		}
		if cfg.Journal.Type != "sqlite" {
			return nil, fmt.Errorf("runs queries need a sqlite journal (config has %q); pass --db", cfg.Journal.Type)
		}
		path = cfg.Journal.DBPath
	}
	return journal.NewSQLite(path)
}

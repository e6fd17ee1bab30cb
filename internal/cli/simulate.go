package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedger/journal"
	"github.com/rustyeddy/hedger/market"
	"github.com/rustyeddy/hedger/portfolio"
	"github.com/rustyeddy/hedger/sim"
)

func newSimulateCmd(rc *RootConfig) *cobra.Command {
	sf := &strategyFlags{}
	var (
		closesPath    string
		benchmarkPath string
		symbol        string
		shares        float64
		entry         float64
		price         float64

		method    string
		horizon   int
		paths     int
		seed      int64
		workers   int
		noJournal bool
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run a hedged-vs-unhedged risk simulation",
		Long: `Simulate samples terminal prices from a historical close series, applies
the hedge payoff to every draw, and reports paired risk metric bundles
(VaR, expected shortfall, volatility, beta, Sharpe, max drawdown).

The run is journaled unless --no-journal is set.

Example:
  hedgesim simulate --closes data/acme.csv --symbol ACME --shares 100 \
      --entry 95 -s protective_put --put-strike 95 --put-premium 3 \
      --method parametric_monte_carlo --horizon 30 --paths 20000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.loadConfig()
			if err != nil {
				return err
			}

			// CLI flags override the file config where set.
			if cmd.Flags().Changed("method") {
				cfg.Sampler.Method = method
			}
			if cmd.Flags().Changed("horizon") {
				cfg.Sampler.HorizonPeriods = horizon
			}
			if cmd.Flags().Changed("paths") {
				cfg.Sampler.PathCount = paths
			}
			if cmd.Flags().Changed("seed") {
				cfg.Sampler.Seed = seed
			}
			if cmd.Flags().Changed("workers") {
				cfg.Sampler.Workers = workers
			}

			series, err := market.LoadCloses(closesPath, symbol)
			if err != nil {
				return fmt.Errorf("load closes: %w", err)
			}
			returns := series.Returns()

			current := series.Last()
			if cmd.Flags().Changed("price") {
				current = price
			}

			var benchmark []float64
			if benchmarkPath != "" {
				bench, err := market.LoadCloses(benchmarkPath, "benchmark")
				if err != nil {
					return fmt.Errorf("load benchmark: %w", err)
				}
				benchmark = bench.Returns()
			}

			runCfg := sim.Config{
				Holding: portfolio.Holding{
					Symbol:     symbol,
					Shares:     shares,
					EntryPrice: entry,
				},
				CurrentPrice:   current,
				Strategy:       sf.spec(current),
				Sampler:        cfg.SamplerCfg(),
				Grid:           cfg.Grid,
				Benchmark:      benchmark,
				RiskFreeRate:   cfg.Risk.RiskFreeRate,
				PeriodsPerYear: cfg.Risk.PeriodsPerYear,
				Workers:        cfg.Sampler.Workers,
			}

			run, err := sim.New(runCfg).Run(cmd.Context(), returns)
			if err != nil {
				if run != nil && run.State == sim.StateFailed {
					return fmt.Errorf("run failed (%s): %w", run.FailReason, err)
				}
				return err
			}

			rec, metrics, rows, err := journal.FromRun(run)
			if err != nil {
				return err
			}
			journal.PrintRunReport(os.Stdout, rec, &metrics[0], &metrics[1])
			printPercentiles(run)

			if noJournal {
				return nil
			}

			j, err := rc.openJournal(cfg)
			if err != nil {
				return fmt.Errorf("open journal: %w", err)
			}
			defer j.Close()

			if err := j.RecordRun(rec); err != nil {
				return fmt.Errorf("record run: %w", err)
			}
			for _, m := range metrics {
				if err := j.RecordMetrics(m); err != nil {
					return fmt.Errorf("record metrics: %w", err)
				}
			}
			if err := j.RecordSamples(rec.RunID, rows); err != nil {
				return fmt.Errorf("record samples: %w", err)
			}
			fmt.Printf("Journaled run %s\n", rec.RunID)
			return nil
		},
	}

	sf.register(cmd)
	cmd.Flags().StringVar(&closesPath, "closes", "", "historical close series CSV (plain, .xz, or .lzma) (required)")
	cmd.Flags().StringVar(&benchmarkPath, "benchmark", "", "benchmark close series CSV for beta (optional)")
	cmd.Flags().StringVar(&symbol, "symbol", "", "holding symbol (required)")
	cmd.Flags().Float64Var(&shares, "shares", 0, "shares held (required)")
	cmd.Flags().Float64Var(&entry, "entry", 0, "entry price per share (required)")
	cmd.Flags().Float64Var(&price, "price", 0, "current price (default: last close)")

	cmd.Flags().StringVar(&method, "method", "", "sampling method (historical_bootstrap, parametric_monte_carlo)")
	cmd.Flags().IntVar(&horizon, "horizon", 0, "horizon in periods")
	cmd.Flags().IntVar(&paths, "paths", 0, "number of simulated paths")
	cmd.Flags().Int64Var(&seed, "seed", 0, "deterministic RNG seed")
	cmd.Flags().IntVar(&workers, "workers", 0, "payoff evaluation workers")
	cmd.Flags().BoolVar(&noJournal, "no-journal", false, "skip journaling the run")

	cmd.MarkFlagRequired("closes")
	cmd.MarkFlagRequired("symbol")
	cmd.MarkFlagRequired("shares")
	cmd.MarkFlagRequired("entry")

	return cmd
}

func printPercentiles(run *sim.Run) {
	p := run.Percentiles
	fmt.Println("Terminal Price Percentiles")
	fmt.Println("--------------------------------------------------")
	fmt.Printf("P5:  %10.4f\n", p.P5)
	fmt.Printf("P25: %10.4f\n", p.P25)
	fmt.Printf("P50: %10.4f\n", p.P50)
	fmt.Printf("P75: %10.4f\n", p.P75)
	fmt.Printf("P95: %10.4f\n", p.P95)
	fmt.Println()
}

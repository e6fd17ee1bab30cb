package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/hedger/journal"
	"github.com/rustyeddy/hedger/payoff"
)

// strategyFlags are the hedge-definition flags shared by the payoff and
// simulate commands.
type strategyFlags struct {
	strategy string
	spot     float64

	putStrike  float64
	putPremium float64

	callStrike  float64
	callPremium float64

	shortPutStrike  float64
	shortPutPremium float64
}

func (sf *strategyFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&sf.strategy, "strategy", "s", "protective_put", "strategy (protective_put, collar, bear_put_spread)")
	cmd.Flags().Float64Var(&sf.spot, "spot", 0, "underlying price the hedge is struck against")
	cmd.Flags().Float64Var(&sf.putStrike, "put-strike", 0, "long put strike")
	cmd.Flags().Float64Var(&sf.putPremium, "put-premium", 0, "long put premium paid")
	cmd.Flags().Float64Var(&sf.callStrike, "call-strike", 0, "collar: short call strike")
	cmd.Flags().Float64Var(&sf.callPremium, "call-premium", 0, "collar: short call premium received")
	cmd.Flags().Float64Var(&sf.shortPutStrike, "short-put-strike", 0, "bear_put_spread: short put strike")
	cmd.Flags().Float64Var(&sf.shortPutPremium, "short-put-premium", 0, "bear_put_spread: short put premium received")
	cmd.MarkFlagRequired("put-strike")
	cmd.MarkFlagRequired("put-premium")
}

func (sf *strategyFlags) spec(spot float64) payoff.StrategySpec {
	return payoff.StrategySpec{
		Type:            payoff.StrategyType(sf.strategy),
		UnderlyingPrice: spot,
		PutStrike:       sf.putStrike,
		PutPremium:      sf.putPremium,
		CallStrike:      sf.callStrike,
		CallPremium:     sf.callPremium,
		ShortPutStrike:  sf.shortPutStrike,
		ShortPutPremium: sf.shortPutPremium,
	}
}

func newPayoffCmd(rc *RootConfig) *cobra.Command {
	sf := &strategyFlags{}
	var (
		band    float64
		step    float64
		curveTo string
	)

	cmd := &cobra.Command{
		Use:   "payoff",
		Short: "Compute the payoff curve and summary for a hedge",
		Long: `Payoff evaluates a hedging strategy across a price grid around spot and
reports the breakeven, maximum gain, and maximum loss at expiry.

Example:
  hedgesim payoff -s collar --spot 100 --put-strike 95 --put-premium 3 \
      --call-strike 110 --call-premium 2 --curve-out collar.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := rc.loadConfig()
			if err != nil {
				return err
			}

			grid := cfg.Grid
			if cmd.Flags().Changed("band") {
				grid.BandPct = band
			}
			if cmd.Flags().Changed("step") {
				grid.Step = step
			}

			spec := sf.spec(sf.spot)
			curve, err := payoff.ComputeCurve(spec, grid)
			if err != nil {
				return err
			}
			summary := payoff.ComputeSummary(spec, curve)
			printSummary(spec, summary)

			if curveTo != "" {
				f, err := os.Create(curveTo)
				if err != nil {
					return fmt.Errorf("create curve file: %w", err)
				}
				defer f.Close()
				if err := journal.WriteCurveCSV(f, curve); err != nil {
					return fmt.Errorf("write curve: %w", err)
				}
				fmt.Printf("\nCurve written to %s (%d points)\n", curveTo, len(curve))
			}
			return nil
		},
	}

	sf.register(cmd)
	cmd.Flags().Float64Var(&band, "band", 0.30, "grid band around spot as a fraction")
	cmd.Flags().Float64Var(&step, "step", 1, "grid price step")
	cmd.Flags().StringVar(&curveTo, "curve-out", "", "write the payoff curve to a CSV file")
	cmd.MarkFlagRequired("spot")

	return cmd
}

func printSummary(spec payoff.StrategySpec, s payoff.Summary) {
	fmt.Println("==================================================")
	fmt.Printf(" Payoff Summary — %s\n", spec.Type)
	fmt.Println("==================================================")
	fmt.Printf("Spot:          %.2f\n", spec.UnderlyingPrice)
	fmt.Printf("Net Premium:   %.4f\n", s.NetPremium)
	if s.Breakeven != nil {
		fmt.Printf("Breakeven:     %.4f\n", *s.Breakeven)
	} else {
		fmt.Printf("Breakeven:     none on grid\n")
	}
	if s.UnboundedGain {
		fmt.Printf("Max Gain:      unbounded\n")
	} else if s.MaxGain != nil {
		fmt.Printf("Max Gain:      %.4f\n", *s.MaxGain)
	}
	fmt.Printf("Max Loss:      %.4f\n", s.MaxLoss)
}

package sim

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rustyeddy/hedger/payoff"
	"github.com/rustyeddy/hedger/pkg/id"
	"github.com/rustyeddy/hedger/risk"
	"github.com/rustyeddy/hedger/sampler"
)

// batchSize is how many paths are evaluated between cancellation checks.
const batchSize = 1024

// Orchestrator drives one run through its states. It holds no state shared
// between runs; construct one per Run call or reuse freely.
type Orchestrator struct {
	cfg Config
}

func New(cfg Config) *Orchestrator {
	return &Orchestrator{cfg: cfg}
}

// Run executes the full pipeline against a historical return series.
// A validation failure means the run never starts; a mid-run failure
// returns a Run in StateFailed with a reason and no samples or metrics.
func (o *Orchestrator) Run(ctx context.Context, historicalReturns []float64) (*Run, error) {
	run := &Run{
		ID:      id.New(),
		Created: time.Now().UTC(),
		State:   StateConfigured,
		Config:  o.cfg,
	}

	if err := o.cfg.Validate(); err != nil {
		return fail(run, FailValidation), err
	}
	// Beta pairs the benchmark with the historical returns element-wise, so
	// a length mismatch is a configuration error, not an undefined metric.
	if n := len(o.cfg.Benchmark); n > 0 && n != len(historicalReturns) {
		err := fmt.Errorf("sim: benchmark has %d returns, history has %d", n, len(historicalReturns))
		return fail(run, FailValidation), err
	}

	run.State = StateSampling
	paths, err := sampler.New(o.cfg.Sampler).Sample(historicalReturns)
	if err != nil {
		reason := FailInternal
		if err == sampler.ErrInsufficientData {
			reason = FailInsufficientData
		}
		return fail(run, reason), err
	}

	run.State = StateEvaluating
	samples, err := o.evaluate(ctx, paths)
	if err != nil {
		reason := FailInternal
		if ctx.Err() != nil {
			reason = FailCancelled
			err = ErrCancelled
		}
		return fail(run, reason), err
	}

	run.State = StateAggregating
	if err := o.aggregate(run, samples, historicalReturns); err != nil {
		return fail(run, FailInternal), err
	}

	run.State = StateComplete
	return run, nil
}

// evaluate turns every path into an OutcomeSample. Paths are independent,
// so batches are spread over a bounded worker pool; each batch writes into
// its own slice range. Cancellation is checked between batches.
func (o *Orchestrator) evaluate(ctx context.Context, paths [][]float64) ([]OutcomeSample, error) {
	samples := make([]OutcomeSample, len(paths))

	jobs := make(chan [2]int)
	var wg sync.WaitGroup
	for w := 0; w < o.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for b := range jobs {
				for i := b[0]; i < b[1]; i++ {
					samples[i] = o.evaluateOne(paths[i])
				}
			}
		}()
	}

	var err error
feed:
	for lo := 0; lo < len(paths); lo += batchSize {
		if err = ctx.Err(); err != nil {
			break feed
		}
		hi := lo + batchSize
		if hi > len(paths) {
			hi = len(paths)
		}
		jobs <- [2]int{lo, hi}
	}
	close(jobs)
	wg.Wait()

	if err != nil {
		return nil, err
	}
	return samples, nil
}

func (o *Orchestrator) evaluateOne(path []float64) OutcomeSample {
	tp := sampler.TerminalPrice(o.cfg.CurrentPrice, path)
	stockPnL := o.cfg.Holding.PnLAt(tp)
	return OutcomeSample{
		TerminalPrice: tp,
		PortfolioPnL:  stockPnL,
		HedgedPnL:     stockPnL + o.cfg.Holding.Shares*o.cfg.Strategy.OptionPayoff(tp),
	}
}

// aggregate fills in the curve, summary, percentiles, and the paired metric
// bundles. Both bundles are computed from the same samples; only the P/L
// column differs.
func (o *Orchestrator) aggregate(run *Run, samples []OutcomeSample, historicalReturns []float64) error {
	curve, err := payoff.ComputeCurve(o.cfg.Strategy, o.cfg.Grid)
	if err != nil {
		return err
	}
	run.Curve = curve
	run.Summary = payoff.ComputeSummary(o.cfg.Strategy, curve)

	terminal := make([]float64, len(samples))
	unhedgedPnL := make([]float64, len(samples))
	hedgedPnL := make([]float64, len(samples))
	for i, s := range samples {
		terminal[i] = s.TerminalPrice
		unhedgedPnL[i] = s.PortfolioPnL
		hedgedPnL[i] = s.HedgedPnL
	}

	// Mark-to-market equity paths over the historical window, for drawdown.
	// The hedged path marks the option legs at intrinsic value.
	prices := risk.CompoundPath(o.cfg.CurrentPrice, historicalReturns)
	unhedgedEquity := make([]float64, len(prices))
	hedgedEquity := make([]float64, len(prices))
	for i, p := range prices {
		unhedgedEquity[i] = o.cfg.Holding.ValueAt(p)
		hedgedEquity[i] = o.cfg.Holding.Shares * (p + o.cfg.Strategy.OptionPayoff(p))
	}

	base := risk.Inputs{
		InitialValue:   o.cfg.Holding.ValueAt(o.cfg.CurrentPrice),
		Returns:        historicalReturns,
		Benchmark:      o.cfg.Benchmark,
		RiskFreeRate:   o.cfg.RiskFreeRate,
		PeriodsPerYear: o.cfg.PeriodsPerYear,
		HorizonPeriods: o.cfg.Sampler.HorizonPeriods,
	}

	in := base
	in.PnL = unhedgedPnL
	in.EquityPath = unhedgedEquity
	unhedged, err := risk.Compute(in)
	if err != nil {
		return fmt.Errorf("unhedged metrics: %w", err)
	}

	in = base
	in.PnL = hedgedPnL
	in.EquityPath = hedgedEquity
	in.Hedged = true
	hedged, err := risk.Compute(in)
	if err != nil {
		return fmt.Errorf("hedged metrics: %w", err)
	}

	run.Samples = samples
	run.Unhedged = unhedged
	run.Hedged = hedged
	run.Percentiles = Percentiles{
		P5:  risk.Quantile(terminal, 0.05),
		P25: risk.Quantile(terminal, 0.25),
		P50: risk.Quantile(terminal, 0.50),
		P75: risk.Quantile(terminal, 0.75),
		P95: risk.Quantile(terminal, 0.95),
	}
	return nil
}

// fail strips anything partially computed so a failed run never carries
// curve, summary, samples, percentiles, or metrics.
func fail(run *Run, reason FailReason) *Run {
	run.State = StateFailed
	run.FailReason = reason
	run.Curve = nil
	run.Summary = payoff.Summary{}
	run.Samples = nil
	run.Percentiles = Percentiles{}
	run.Unhedged = risk.Metrics{}
	run.Hedged = risk.Metrics{}
	return run
}

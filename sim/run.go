// Package sim orchestrates a full simulation run: sample return paths,
// evaluate the hedge payoff per sample, and aggregate paired hedged and
// unhedged risk metric bundles. Runs are independent of each other and
// immutable once complete.
package sim

import (
	"errors"
	"time"

	"github.com/rustyeddy/hedger/payoff"
	"github.com/rustyeddy/hedger/portfolio"
	"github.com/rustyeddy/hedger/risk"
	"github.com/rustyeddy/hedger/sampler"
)

// State is where a run is in its lifecycle. Failed is reachable from any
// state; Complete is terminal.
type State string

const (
	StateConfigured  State = "configured"
	StateSampling    State = "sampling"
	StateEvaluating  State = "evaluating"
	StateAggregating State = "aggregating"
	StateComplete    State = "complete"
	StateFailed      State = "failed"
)

// FailReason classifies why a run failed.
type FailReason string

const (
	FailValidation       FailReason = "validation"
	FailInsufficientData FailReason = "insufficient_data"
	FailCancelled        FailReason = "cancelled"
	FailInternal         FailReason = "internal"
)

// ErrCancelled is returned when a run observes cancellation between path
// batches.
var ErrCancelled = errors.New("sim: run cancelled")

// OutcomeSample is one simulation draw: the terminal price a path compounds
// to, the linear stock P/L at that price, and the P/L with the option
// overlay applied.
type OutcomeSample struct {
	TerminalPrice float64 `json:"terminal_price"`
	PortfolioPnL  float64 `json:"portfolio_pnl"`
	HedgedPnL     float64 `json:"hedged_pnl"`
}

// Config is everything a run needs up front. It is validated as a whole
// before any sampling starts.
type Config struct {
	Holding      portfolio.Holding   `json:"holding"`
	CurrentPrice float64             `json:"current_price"`
	Strategy     payoff.StrategySpec `json:"strategy"`
	Sampler      sampler.Config      `json:"sampler"`
	Grid         payoff.Grid         `json:"grid"`

	// Benchmark is an optional per-period benchmark return series for beta.
	Benchmark []float64 `json:"benchmark,omitempty"`

	RiskFreeRate   float64 `json:"risk_free_rate"`
	PeriodsPerYear float64 `json:"periods_per_year"`
	Workers        int     `json:"workers"`
}

func (c Config) Validate() error {
	if err := c.Holding.Validate(); err != nil {
		return err
	}
	if c.CurrentPrice <= 0 {
		return errors.New("sim: current price must be positive")
	}
	if err := c.Strategy.Validate(); err != nil {
		return err
	}
	if err := c.Sampler.Validate(); err != nil {
		return err
	}
	if err := c.Grid.Validate(); err != nil {
		return err
	}
	if c.Workers < 1 {
		return errors.New("sim: workers must be at least 1")
	}
	return nil
}

// Percentiles are terminal-price percentiles of the outcome distribution,
// kept for rendering a fan of outcomes without recomputation.
type Percentiles struct {
	P5  float64 `json:"p5"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P95 float64 `json:"p95"`
}

// Run is one completed (or failed) simulation. A run that is not Complete
// carries no samples, curve, or metrics - partial results are never
// published.
type Run struct {
	ID         string     `json:"run_id"`
	Created    time.Time  `json:"created"`
	State      State      `json:"state"`
	FailReason FailReason `json:"fail_reason,omitempty"`

	Config Config `json:"config"`

	Curve   []payoff.Point `json:"curve,omitempty"`
	Summary payoff.Summary `json:"summary"`

	Samples     []OutcomeSample `json:"samples,omitempty"`
	Percentiles Percentiles     `json:"percentiles"`

	Unhedged risk.Metrics `json:"unhedged"`
	Hedged   risk.Metrics `json:"hedged"`
}

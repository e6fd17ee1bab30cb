// Package risk computes the risk statistic set for a simulated P/L
// distribution: Value-at-Risk, expected shortfall, volatility, beta, Sharpe
// ratio, and maximum drawdown. The engine is single-threaded over the full
// sample set; quantile and covariance computations need the whole
// distribution at once.
package risk

import (
	"fmt"
	"math"
)

// Inputs is everything one metrics computation consumes. The same PnL
// sample set, with only the hedge flag and hedged P/L values changed, feeds
// the paired hedged/unhedged computation so the two bundles are directly
// comparable.
type Inputs struct {
	// PnL is the terminal profit/loss distribution, one value per sample.
	PnL []float64

	// InitialValue is the position value that turns P/L into returns.
	InitialValue float64

	// EquityPath is the mark-to-market equity path drawdown is measured on.
	EquityPath []float64

	// Returns / Benchmark are paired per-period return series for beta.
	// Benchmark may be nil; beta is then undefined.
	Returns   []float64
	Benchmark []float64

	// RiskFreeRate is per period (not annualized).
	RiskFreeRate   float64
	PeriodsPerYear float64
	HorizonPeriods int
	Hedged         bool
}

// Metrics is one immutable bundle of risk figures. VaR and volatility are
// stated on the horizon given by HorizonPeriods; AnnualizedVolatility is the
// only annualized figure. Beta and Sharpe are nil when mathematically
// undefined - never zero, never NaN.
type Metrics struct {
	Hedged         bool `json:"hedged"`
	HorizonPeriods int  `json:"horizon_periods"`

	VaR95 float64 `json:"var_95"`
	VaR99 float64 `json:"var_99"`
	ES95  float64 `json:"es_95"`
	ES99  float64 `json:"es_99"`

	MeanPnL              float64  `json:"mean_pnl"`
	Volatility           float64  `json:"volatility"`
	AnnualizedVolatility float64  `json:"annualized_volatility"`
	Beta                 *float64 `json:"beta"`
	Sharpe               *float64 `json:"sharpe"`
	MaxDrawdown          float64  `json:"max_drawdown"`
}

// Compute derives the full metric bundle. It never returns a partially
// filled Metrics: on error the zero value comes back.
func Compute(in Inputs) (Metrics, error) {
	if len(in.PnL) == 0 {
		return Metrics{}, fmt.Errorf("risk: no samples")
	}
	if in.InitialValue <= 0 {
		return Metrics{}, fmt.Errorf("risk: initial value = %v, must be positive", in.InitialValue)
	}
	if in.HorizonPeriods < 1 {
		return Metrics{}, fmt.Errorf("risk: horizon_periods = %d, must be at least 1", in.HorizonPeriods)
	}

	m := Metrics{
		Hedged:         in.Hedged,
		HorizonPeriods: in.HorizonPeriods,
		VaR95:          VaR(in.PnL, 0.95),
		VaR99:          VaR(in.PnL, 0.99),
		ES95:           ExpectedShortfall(in.PnL, 0.95),
		ES99:           ExpectedShortfall(in.PnL, 0.99),
		MeanPnL:        Mean(in.PnL),
		MaxDrawdown:    MaxDrawdown(in.EquityPath),
	}

	// Horizon returns implied by the P/L distribution.
	rets := make([]float64, len(in.PnL))
	for i, pnl := range in.PnL {
		rets[i] = pnl / in.InitialValue
	}
	m.Volatility = StdDev(rets)
	if in.PeriodsPerYear > 0 {
		m.AnnualizedVolatility = m.Volatility * math.Sqrt(in.PeriodsPerYear/float64(in.HorizonPeriods))
	}

	if m.Volatility > 0 {
		sharpe := (Mean(rets) - in.RiskFreeRate*float64(in.HorizonPeriods)) / m.Volatility
		m.Sharpe = &sharpe
	}

	if len(in.Benchmark) > 0 {
		if bv := Variance(in.Benchmark); bv > 0 && len(in.Returns) == len(in.Benchmark) {
			beta := Covariance(in.Returns, in.Benchmark) / bv
			m.Beta = &beta
		}
	}

	return m, nil
}

// VaR at confidence c is the loss not expected to be exceeded with
// probability c: the (1-c)-quantile of the P/L distribution, negated, and
// floored at 0 when the quantile is non-negative (no-loss case).
func VaR(pnl []float64, confidence float64) float64 {
	q := Quantile(pnl, 1-confidence)
	if q >= 0 {
		return 0
	}
	return -q
}

// ExpectedShortfall at confidence c is the average of all P/L values at or
// below the VaR-implied quantile threshold, negated to a positive loss
// figure. A degenerate all-gain tail reports 0.
func ExpectedShortfall(pnl []float64, confidence float64) float64 {
	if len(pnl) == 0 {
		return 0
	}
	threshold := Quantile(pnl, 1-confidence)

	var sum float64
	var n int
	for _, x := range pnl {
		if x <= threshold {
			sum += x
			n++
		}
	}
	if n == 0 {
		return 0
	}
	es := -sum / float64(n)
	if es < 0 {
		return 0
	}
	return es
}

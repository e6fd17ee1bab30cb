package risk

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uniformPnL is the integer sequence -50..50, symmetric around zero with
// quantiles that can be checked by hand.
func uniformPnL() []float64 {
	out := make([]float64, 0, 101)
	for i := -50; i <= 50; i++ {
		out = append(out, float64(i))
	}
	return out
}

func TestVaRUniform(t *testing.T) {
	t.Parallel()

	pnl := uniformPnL()

	// n=101, h = 100*(1-c): the 5% quantile is exactly the 6th order
	// statistic (-45), the 1% quantile the 2nd (-49).
	assert.InDelta(t, 45.0, VaR(pnl, 0.95), 1e-12)
	assert.InDelta(t, 49.0, VaR(pnl, 0.99), 1e-12)
}

func TestExpectedShortfallUniform(t *testing.T) {
	t.Parallel()

	pnl := uniformPnL()

	// Tail at 95%: {-50..-45}, mean -47.5.
	assert.InDelta(t, 47.5, ExpectedShortfall(pnl, 0.95), 1e-12)
	// Tail at 99%: {-50, -49}, mean -49.5.
	assert.InDelta(t, 49.5, ExpectedShortfall(pnl, 0.99), 1e-12)
}

func TestVaRNoLossSample(t *testing.T) {
	t.Parallel()

	// All-gain distribution: VaR and ES are 0, not negative.
	pnl := []float64{5, 10, 15, 20}
	assert.Zero(t, VaR(pnl, 0.95))
	assert.Zero(t, ExpectedShortfall(pnl, 0.95))
}

func TestComputeFullBundle(t *testing.T) {
	t.Parallel()

	bench := []float64{0.01, -0.02, 0.015, -0.005}
	rets := []float64{0.02, -0.04, 0.03, -0.01} // 2x benchmark

	m, err := Compute(Inputs{
		PnL:            uniformPnL(),
		InitialValue:   1000,
		EquityPath:     []float64{100, 80, 120},
		Returns:        rets,
		Benchmark:      bench,
		RiskFreeRate:   0,
		PeriodsPerYear: 252,
		HorizonPeriods: 1,
		Hedged:         true,
	})
	require.NoError(t, err)

	assert.True(t, m.Hedged)
	assert.InDelta(t, 45.0, m.VaR95, 1e-12)
	assert.InDelta(t, 47.5, m.ES95, 1e-12)
	assert.InDelta(t, 0.0, m.MeanPnL, 1e-12)
	assert.InDelta(t, 0.20, m.MaxDrawdown, 1e-12)

	require.NotNil(t, m.Beta)
	assert.InDelta(t, 2.0, *m.Beta, 1e-9)

	require.NotNil(t, m.Sharpe)
	// Symmetric distribution: mean return 0, so Sharpe is 0 but defined.
	assert.InDelta(t, 0.0, *m.Sharpe, 1e-12)

	assert.Greater(t, m.AnnualizedVolatility, m.Volatility)
}

func TestComputeUndefinedMetricsAreNil(t *testing.T) {
	t.Parallel()

	// Constant P/L: zero volatility, Sharpe undefined.
	m, err := Compute(Inputs{
		PnL:            []float64{10, 10, 10},
		InitialValue:   100,
		HorizonPeriods: 1,
	})
	require.NoError(t, err)
	assert.Nil(t, m.Sharpe)
	assert.Nil(t, m.Beta) // no benchmark supplied

	// Zero-variance benchmark: beta undefined.
	m, err = Compute(Inputs{
		PnL:            []float64{-5, 5, 10},
		InitialValue:   100,
		Returns:        []float64{0.01, 0.02, 0.03},
		Benchmark:      []float64{0.01, 0.01, 0.01},
		HorizonPeriods: 1,
	})
	require.NoError(t, err)
	assert.Nil(t, m.Beta)
	assert.NotNil(t, m.Sharpe)
}

func TestComputeRejectsBadInputs(t *testing.T) {
	t.Parallel()

	_, err := Compute(Inputs{InitialValue: 100, HorizonPeriods: 1})
	assert.Error(t, err)

	_, err = Compute(Inputs{PnL: []float64{1}, InitialValue: 0, HorizonPeriods: 1})
	assert.Error(t, err)

	_, err = Compute(Inputs{PnL: []float64{1}, InitialValue: 100, HorizonPeriods: 0})
	assert.Error(t, err)
}

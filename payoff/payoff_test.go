package payoff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func protectivePut() StrategySpec {
	return StrategySpec{
		Type:            ProtectivePut,
		UnderlyingPrice: 100,
		PutStrike:       95,
		PutPremium:      10,
	}
}

func collar() StrategySpec {
	return StrategySpec{
		Type:            Collar,
		UnderlyingPrice: 100,
		PutStrike:       95,
		PutPremium:      10,
		CallStrike:      110,
		CallPremium:     10,
	}
}

func bearPutSpread() StrategySpec {
	return StrategySpec{
		Type:            BearPutSpread,
		UnderlyingPrice: 100,
		PutStrike:       95,
		PutPremium:      6,
		ShortPutStrike:  85,
		ShortPutPremium: 2,
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mod  func(*StrategySpec)
		base StrategySpec
		ok   bool
	}{
		{"protective put ok", func(s *StrategySpec) {}, protectivePut(), true},
		{"collar ok", func(s *StrategySpec) {}, collar(), true},
		{"bear spread ok", func(s *StrategySpec) {}, bearPutSpread(), true},
		{"atm put strike", func(s *StrategySpec) { s.PutStrike = 100 }, protectivePut(), true},
		{"put above spot", func(s *StrategySpec) { s.PutStrike = 105 }, protectivePut(), false},
		{"zero spot", func(s *StrategySpec) { s.UnderlyingPrice = 0 }, protectivePut(), false},
		{"negative premium", func(s *StrategySpec) { s.PutPremium = -1 }, protectivePut(), false},
		{"collar call below put", func(s *StrategySpec) { s.CallStrike = 90 }, collar(), false},
		{"collar put above spot", func(s *StrategySpec) { s.PutStrike = 101 }, collar(), false},
		{"spread inverted strikes", func(s *StrategySpec) { s.ShortPutStrike = 96 }, bearPutSpread(), false},
		{"unknown type", func(s *StrategySpec) { s.Type = "iron_condor" }, protectivePut(), false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			spec := tt.base
			tt.mod(&spec)
			err := spec.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

// At the current price every strategy is worth exactly its net premium:
// paid premiums out, received premiums in.
func TestPayoffAtSpotIsNetPremium(t *testing.T) {
	t.Parallel()

	for _, spec := range []StrategySpec{protectivePut(), collar(), bearPutSpread()} {
		got := spec.Payoff(spec.UnderlyingPrice)
		assert.InDelta(t, -spec.NetPremium(), got, 1e-9, "strategy %s", spec.Type)
	}
}

func TestProtectivePutPayoff(t *testing.T) {
	t.Parallel()

	spec := protectivePut()

	// Below the strike the put pins the payoff to its floor:
	// putStrike - spot - premium, regardless of how far price falls.
	for _, p := range []float64{0.01, 1, 50, 90, 95} {
		assert.InDelta(t, 95.0-100.0-10.0, spec.Payoff(p), 1e-9, "price %v", p)
	}

	// Above the strike the upside grows at slope 1.
	assert.InDelta(t, 1.0, spec.Payoff(201)-spec.Payoff(200), 1e-9)
	assert.InDelta(t, 100.0, spec.Payoff(300)-spec.Payoff(200), 1e-9)
}

func TestBoundedStrategiesIdempotentUnderGridExtension(t *testing.T) {
	t.Parallel()

	for _, spec := range []StrategySpec{collar(), bearPutSpread()} {
		spec := spec
		t.Run(string(spec.Type), func(t *testing.T) {
			t.Parallel()

			narrow, err := ComputeCurve(spec, Grid{BandPct: 0.30, Step: 1})
			require.NoError(t, err)
			wide, err := ComputeCurve(spec, Grid{BandPct: 0.90, Step: 0.5})
			require.NoError(t, err)

			sum := ComputeSummary(spec, narrow)
			require.NotNil(t, sum.MaxGain)

			assert.InDelta(t, *sum.MaxGain, maxPayoff(narrow), 1e-9)
			assert.InDelta(t, *sum.MaxGain, maxPayoff(wide), 1e-9)
			assert.InDelta(t, -sum.MaxLoss, minPayoff(narrow), 1e-9)
			assert.InDelta(t, -sum.MaxLoss, minPayoff(wide), 1e-9)
		})
	}
}

func TestCollarBreakeven(t *testing.T) {
	t.Parallel()

	// Net premium cancels, so the collar breaks even exactly at spot.
	curve, err := ComputeCurve(collar(), DefaultGrid())
	require.NoError(t, err)

	sum := ComputeSummary(collar(), curve)
	require.NotNil(t, sum.Breakeven)
	assert.InDelta(t, 100.0, *sum.Breakeven, 1e-9)
	assert.InDelta(t, 0.0, sum.NetPremium, 1e-12)
}

func TestProtectivePutBreakeven(t *testing.T) {
	t.Parallel()

	spec := protectivePut()
	curve, err := ComputeCurve(spec, DefaultGrid())
	require.NoError(t, err)

	sum := ComputeSummary(spec, curve)
	require.NotNil(t, sum.Breakeven)
	assert.InDelta(t, 110.0, *sum.Breakeven, 1e-9)

	assert.True(t, sum.UnboundedGain)
	assert.Nil(t, sum.MaxGain)
	assert.InDelta(t, 15.0, sum.MaxLoss, 1e-9)
}

func TestBreakevenUndefined(t *testing.T) {
	t.Parallel()

	// A collar whose premiums push the whole curve below zero on this band
	// has no crossing; breakeven must be reported as nil, not zero.
	spec := StrategySpec{
		Type:            Collar,
		UnderlyingPrice: 100,
		PutStrike:       95,
		PutPremium:      40,
		CallStrike:      110,
		CallPremium:     1,
	}
	curve, err := ComputeCurve(spec, DefaultGrid())
	require.NoError(t, err)

	sum := ComputeSummary(spec, curve)
	assert.Nil(t, sum.Breakeven)
}

func TestBearPutSpreadBounds(t *testing.T) {
	t.Parallel()

	spec := bearPutSpread() // width 10, net debit 4
	curve, err := ComputeCurve(spec, DefaultGrid())
	require.NoError(t, err)

	sum := ComputeSummary(spec, curve)
	require.NotNil(t, sum.MaxGain)
	assert.InDelta(t, 6.0, *sum.MaxGain, 1e-9)
	assert.InDelta(t, 4.0, sum.MaxLoss, 1e-9)
	assert.InDelta(t, 4.0, sum.NetPremium, 1e-9)

	// No stock leg: payoff at a high price is just the lost net premium.
	assert.InDelta(t, -4.0, spec.Payoff(500), 1e-9)
}

func TestGridPrices(t *testing.T) {
	t.Parallel()

	g := Grid{BandPct: 0.10, Step: 5}
	prices := g.Prices(100)

	require.NotEmpty(t, prices)
	assert.InDelta(t, 90.0, prices[0], 1e-9)
	assert.InDelta(t, 110.0, prices[len(prices)-1], 1e-9)
	for i := 1; i < len(prices); i++ {
		assert.Greater(t, prices[i], prices[i-1])
	}
}

func maxPayoff(curve []Point) float64 {
	m := curve[0].Payoff
	for _, p := range curve {
		if p.Payoff > m {
			m = p.Payoff
		}
	}
	return m
}

func minPayoff(curve []Point) float64 {
	m := curve[0].Payoff
	for _, p := range curve {
		if p.Payoff < m {
			m = p.Payoff
		}
	}
	return m
}

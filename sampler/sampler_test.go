package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var hist = []float64{0.01, -0.02, 0.005, 0.015, -0.01}

func TestBootstrapDeterminism(t *testing.T) {
	t.Parallel()

	cfg := Config{Method: HistoricalBootstrap, HorizonPeriods: 5, PathCount: 50, Seed: 42}

	a, err := New(cfg).Sample(hist)
	require.NoError(t, err)
	b, err := New(cfg).Sample(hist)
	require.NoError(t, err)

	// Fixed seed, identical inputs: bit-identical output.
	assert.Equal(t, a, b)
	require.Len(t, a, 50)
	for _, path := range a {
		assert.Len(t, path, 5)
	}
}

func TestBootstrapDrawsFromHistory(t *testing.T) {
	t.Parallel()

	cfg := Config{Method: HistoricalBootstrap, HorizonPeriods: 3, PathCount: 200, Seed: 7}
	paths, err := New(cfg).Sample(hist)
	require.NoError(t, err)

	allowed := map[float64]bool{}
	for _, r := range hist {
		allowed[r] = true
	}
	for _, path := range paths {
		for _, r := range path {
			assert.True(t, allowed[r], "drew %v, not in history", r)
		}
	}
}

func TestBootstrapEmptyHistory(t *testing.T) {
	t.Parallel()

	cfg := Config{Method: HistoricalBootstrap, HorizonPeriods: 1, PathCount: 1, Seed: 1}
	_, err := New(cfg).Sample(nil)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestParametricDeterminism(t *testing.T) {
	t.Parallel()

	cfg := Config{Method: ParametricMonteCarlo, HorizonPeriods: 10, PathCount: 20, Seed: 99}

	a, err := New(cfg).Sample(hist)
	require.NoError(t, err)
	b, err := New(cfg).Sample(hist)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestParametricSeedChangesDraws(t *testing.T) {
	t.Parallel()

	base := Config{Method: ParametricMonteCarlo, HorizonPeriods: 10, PathCount: 20, Seed: 1}
	other := base
	other.Seed = 2

	a, err := New(base).Sample(hist)
	require.NoError(t, err)
	b, err := New(other).Sample(hist)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestFitNormal(t *testing.T) {
	t.Parallel()

	mu, sigma := FitNormal([]float64{1, 2, 3, 4})
	assert.InDelta(t, 2.5, mu, 1e-12)
	// ddof=1: variance = (2.25+0.25+0.25+2.25)/3
	assert.InDelta(t, 1.2909944487, sigma, 1e-9)

	mu, sigma = FitNormal([]float64{0.5})
	assert.InDelta(t, 0.5, mu, 1e-12)
	assert.Zero(t, sigma)

	mu, sigma = FitNormal(nil)
	assert.Zero(t, mu)
	assert.Zero(t, sigma)
}

func TestTerminalPrice(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 100.0, TerminalPrice(100, nil), 1e-12)
	assert.InDelta(t, 110.0, TerminalPrice(100, []float64{0.10}), 1e-9)
	assert.InDelta(t, 99.0, TerminalPrice(100, []float64{0.10, -0.10}), 1e-9)
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"bootstrap ok", Config{Method: HistoricalBootstrap, HorizonPeriods: 1, PathCount: 1}, true},
		{"parametric ok", Config{Method: ParametricMonteCarlo, HorizonPeriods: 30, PathCount: 1000}, true},
		{"bad method", Config{Method: "jump_diffusion", HorizonPeriods: 1, PathCount: 1}, false},
		{"zero horizon", Config{Method: HistoricalBootstrap, HorizonPeriods: 0, PathCount: 1}, false},
		{"zero paths", Config{Method: HistoricalBootstrap, HorizonPeriods: 1, PathCount: 0}, false},
		{"too many paths", Config{Method: HistoricalBootstrap, HorizonPeriods: 1, PathCount: MaxPathCount + 1}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := tt.cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

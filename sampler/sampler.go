// Package sampler produces the return paths a simulation run is scored on.
// Two methods are supported: resampling historical daily returns with
// replacement, and parametric Monte Carlo draws from a normal distribution
// fitted to the history. Both are driven by a caller-supplied seed so that
// identical inputs always reproduce identical paths.
package sampler

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

type Method string

const (
	HistoricalBootstrap  Method = "historical_bootstrap"
	ParametricMonteCarlo Method = "parametric_monte_carlo"
)

// MaxPathCount bounds run latency and memory for a single simulation.
const MaxPathCount = 100_000

// ErrInsufficientData is returned when bootstrap sampling is requested with
// an empty history.
var ErrInsufficientData = errors.New("sampler: historical returns required")

// Config selects the sampling method and dimensions.
type Config struct {
	Method         Method `json:"method" yaml:"method"`
	HorizonPeriods int    `json:"horizon_periods" yaml:"horizon_periods"`
	PathCount      int    `json:"path_count" yaml:"path_count"`
	Seed           int64  `json:"seed" yaml:"seed"`
}

func (c Config) Validate() error {
	switch c.Method {
	case HistoricalBootstrap, ParametricMonteCarlo:
	default:
		return fmt.Errorf("sampler: unknown method %q", c.Method)
	}
	if c.HorizonPeriods < 1 {
		return fmt.Errorf("sampler: horizon_periods = %d, must be at least 1", c.HorizonPeriods)
	}
	if c.PathCount < 1 {
		return fmt.Errorf("sampler: path_count = %d, must be at least 1", c.PathCount)
	}
	if c.PathCount > MaxPathCount {
		return fmt.Errorf("sampler: path_count = %d exceeds limit %d", c.PathCount, MaxPathCount)
	}
	return nil
}

// Sampler draws return paths. Not safe for concurrent use: all draws come
// from one seeded source so the output stays deterministic.
type Sampler struct {
	cfg Config
	rng *rand.Rand
}

func New(cfg Config) *Sampler {
	return &Sampler{
		cfg: cfg,
		rng: rand.New(rand.NewSource(cfg.Seed)),
	}
}

// Sample draws cfg.PathCount paths of cfg.HorizonPeriods returns each.
// Paths are generated path-major (all periods of path 0, then path 1, ...),
// which is part of the determinism contract.
func (s *Sampler) Sample(historicalReturns []float64) ([][]float64, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if len(historicalReturns) == 0 {
		return nil, ErrInsufficientData
	}

	paths := make([][]float64, s.cfg.PathCount)
	switch s.cfg.Method {
	case HistoricalBootstrap:
		for i := range paths {
			path := make([]float64, s.cfg.HorizonPeriods)
			for d := range path {
				path[d] = historicalReturns[s.rng.Intn(len(historicalReturns))]
			}
			paths[i] = path
		}

	case ParametricMonteCarlo:
		mu, sigma := FitNormal(historicalReturns)
		for i := range paths {
			path := make([]float64, s.cfg.HorizonPeriods)
			for d := range path {
				path[d] = mu + sigma*s.rng.NormFloat64()
			}
			paths[i] = path
		}
	}
	return paths, nil
}

// FitNormal returns the sample mean and standard deviation (ddof=1) of the
// returns. A single observation fits sigma = 0.
func FitNormal(returns []float64) (mu, sigma float64) {
	n := len(returns)
	if n == 0 {
		return 0, 0
	}
	for _, r := range returns {
		mu += r
	}
	mu /= float64(n)

	if n < 2 {
		return mu, 0
	}
	var ss float64
	for _, r := range returns {
		d := r - mu
		ss += d * d
	}
	return mu, math.Sqrt(ss / float64(n-1))
}

// TerminalPrice compounds a return path onto the current price:
// current * Π(1 + r_i).
func TerminalPrice(currentPrice float64, path []float64) float64 {
	p := currentPrice
	for _, r := range path {
		p *= 1 + r
	}
	return p
}

// Package market holds the price-series types consumed by the payoff and
// risk engines. A series is a bounded window of daily closes supplied by the
// market-data collaborator; nothing in here fetches data.
package market

import "fmt"

// PriceSeries is an ordered run of closing prices for one instrument,
// oldest first.
type PriceSeries struct {
	Symbol string
	Closes []float64
}

// Validate checks the series is usable: at least one close, all positive.
func (s PriceSeries) Validate() error {
	if s.Symbol == "" {
		return fmt.Errorf("price series: symbol is required")
	}
	if len(s.Closes) == 0 {
		return fmt.Errorf("price series %s: no closes", s.Symbol)
	}
	for i, c := range s.Closes {
		if c <= 0 {
			return fmt.Errorf("price series %s: close[%d] = %v, must be positive", s.Symbol, i, c)
		}
	}
	return nil
}

// Last returns the most recent close, or 0 for an empty series.
func (s PriceSeries) Last() float64 {
	if len(s.Closes) == 0 {
		return 0
	}
	return s.Closes[len(s.Closes)-1]
}

// Returns computes simple daily returns r_t = c_t/c_{t-1} - 1.
// A series of n closes yields n-1 returns. Fewer than two closes yields nil.
func (s PriceSeries) Returns() []float64 {
	if len(s.Closes) < 2 {
		return nil
	}
	out := make([]float64, 0, len(s.Closes)-1)
	for i := 1; i < len(s.Closes); i++ {
		out = append(out, s.Closes[i]/s.Closes[i-1]-1)
	}
	return out
}

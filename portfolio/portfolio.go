// Package portfolio models the equity position a hedge is applied to.
// Holdings arrive from the storage collaborator; a simulation run operates
// on an immutable snapshot of them.
package portfolio

import "fmt"

// Holding is one equity line: how many shares were bought and at what price.
type Holding struct {
	Symbol     string  `json:"symbol"`
	Shares     float64 `json:"shares"`
	EntryPrice float64 `json:"entry_price"`
}

func (h Holding) Validate() error {
	if h.Symbol == "" {
		return fmt.Errorf("holding: symbol is required")
	}
	if h.Shares <= 0 {
		return fmt.Errorf("holding %s: shares = %v, must be positive", h.Symbol, h.Shares)
	}
	if h.EntryPrice <= 0 {
		return fmt.Errorf("holding %s: entry_price = %v, must be positive", h.Symbol, h.EntryPrice)
	}
	return nil
}

// PnLAt returns the linear stock P/L at a terminal price.
func (h Holding) PnLAt(price float64) float64 {
	return h.Shares * (price - h.EntryPrice)
}

// ValueAt returns the market value of the holding at a price.
func (h Holding) ValueAt(price float64) float64 {
	return h.Shares * price
}

// Snapshot is the set of holdings a run was started with. It is taken once
// and never mutated by the engine.
type Snapshot struct {
	Holdings []Holding `json:"holdings"`
}

func (s Snapshot) Validate() error {
	if len(s.Holdings) == 0 {
		return fmt.Errorf("snapshot: no holdings")
	}
	for _, h := range s.Holdings {
		if err := h.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// PnLAt aggregates linear stock P/L across holdings, pricing every holding
// at the supplied per-symbol terminal prices.
func (s Snapshot) PnLAt(prices map[string]float64) (float64, error) {
	var total float64
	for _, h := range s.Holdings {
		p, ok := prices[h.Symbol]
		if !ok {
			return 0, fmt.Errorf("snapshot: no terminal price for %s", h.Symbol)
		}
		total += h.PnLAt(p)
	}
	return total, nil
}

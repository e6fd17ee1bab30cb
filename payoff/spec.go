// Package payoff models option hedging strategies as payoff-at-expiry
// functions. Everything here is pure: a StrategySpec plus a price grid in,
// a curve and summary out. No pricing model beyond intrinsic value at expiry
// is used.
package payoff

import (
	"fmt"
	"math"
)

type StrategyType string

const (
	ProtectivePut StrategyType = "protective_put"
	Collar        StrategyType = "collar"
	BearPutSpread StrategyType = "bear_put_spread"
)

// StrategySpec describes one hedge. All premiums are entered as positive
// magnitudes; leg direction applies the sign. Which strike/premium pairs are
// meaningful depends on Type:
//
//	protective_put:  PutStrike/PutPremium (long put, below or at spot)
//	collar:          PutStrike/PutPremium (long put) + CallStrike/CallPremium (short call)
//	bear_put_spread: PutStrike/PutPremium (long put) + ShortPutStrike/ShortPutPremium (short put)
type StrategySpec struct {
	Type            StrategyType `json:"strategy_type"`
	UnderlyingPrice float64      `json:"underlying_price"`

	PutStrike  float64 `json:"put_strike"`
	PutPremium float64 `json:"put_premium"`

	CallStrike  float64 `json:"call_strike,omitempty"`
	CallPremium float64 `json:"call_premium,omitempty"`

	ShortPutStrike  float64 `json:"short_put_strike,omitempty"`
	ShortPutPremium float64 `json:"short_put_premium,omitempty"`
}

// Validate rejects malformed specs before any computation starts.
// At-the-money strikes (strike == spot) are valid.
func (s StrategySpec) Validate() error {
	if !positiveFinite(s.UnderlyingPrice) {
		return fmt.Errorf("strategy: underlying_price = %v, must be positive", s.UnderlyingPrice)
	}
	if !positiveFinite(s.PutStrike) {
		return fmt.Errorf("strategy: put_strike = %v, must be positive", s.PutStrike)
	}
	if s.PutPremium < 0 || !finite(s.PutPremium) {
		return fmt.Errorf("strategy: put_premium = %v, must be non-negative", s.PutPremium)
	}

	switch s.Type {
	case ProtectivePut:
		if s.PutStrike > s.UnderlyingPrice {
			return fmt.Errorf("protective put: put_strike %v above spot %v", s.PutStrike, s.UnderlyingPrice)
		}

	case Collar:
		if s.PutStrike > s.UnderlyingPrice {
			return fmt.Errorf("collar: put_strike %v above spot %v", s.PutStrike, s.UnderlyingPrice)
		}
		if !positiveFinite(s.CallStrike) {
			return fmt.Errorf("collar: call_strike = %v, must be positive", s.CallStrike)
		}
		if s.CallPremium < 0 || !finite(s.CallPremium) {
			return fmt.Errorf("collar: call_premium = %v, must be non-negative", s.CallPremium)
		}
		if s.CallStrike <= s.PutStrike {
			return fmt.Errorf("collar: call_strike %v must exceed put_strike %v", s.CallStrike, s.PutStrike)
		}

	case BearPutSpread:
		if !positiveFinite(s.ShortPutStrike) {
			return fmt.Errorf("bear put spread: short_put_strike = %v, must be positive", s.ShortPutStrike)
		}
		if s.ShortPutPremium < 0 || !finite(s.ShortPutPremium) {
			return fmt.Errorf("bear put spread: short_put_premium = %v, must be non-negative", s.ShortPutPremium)
		}
		if s.PutStrike <= s.ShortPutStrike {
			return fmt.Errorf("bear put spread: long strike %v must exceed short strike %v", s.PutStrike, s.ShortPutStrike)
		}

	default:
		return fmt.Errorf("unknown strategy type %q", s.Type)
	}
	return nil
}

// NetPremium is the per-share cost of the option legs. Positive is a net
// debit (the hedge costs money up front), negative a net credit.
func (s StrategySpec) NetPremium() float64 {
	switch s.Type {
	case Collar:
		return s.PutPremium - s.CallPremium
	case BearPutSpread:
		return s.PutPremium - s.ShortPutPremium
	default:
		return s.PutPremium
	}
}

// HasStockLeg reports whether the strategy includes the underlying shares.
// The bear put spread is a pure options overlay.
func (s StrategySpec) HasStockLeg() bool {
	return s.Type != BearPutSpread
}

// OptionPayoff is the expiry payoff per share of the option legs alone,
// net of premiums. This is what gets added to a stock position's linear P/L
// when simulating a hedged portfolio.
func (s StrategySpec) OptionPayoff(price float64) float64 {
	// Long put leg is common to all three strategies.
	p := math.Max(s.PutStrike-price, 0) - s.PutPremium

	switch s.Type {
	case Collar:
		// Short call: keep the premium, pay out above the strike.
		p += s.CallPremium - math.Max(price-s.CallStrike, 0)
	case BearPutSpread:
		// Short put: keep the premium, pay out below the strike.
		p += s.ShortPutPremium - math.Max(s.ShortPutStrike-price, 0)
	}
	return p
}

// Payoff is the full per-share strategy payoff at expiry, including the
// stock leg (price - spot) where the strategy has one.
func (s StrategySpec) Payoff(price float64) float64 {
	p := s.OptionPayoff(price)
	if s.HasStockLeg() {
		p += price - s.UnderlyingPrice
	}
	return p
}

func positiveFinite(x float64) bool { return x > 0 && finite(x) }

func finite(x float64) bool { return !math.IsNaN(x) && !math.IsInf(x, 0) }

package payoff

// Summary carries the scalar figures a UI shows next to a payoff chart.
// All figures are per share.
//
// MaxLoss is a positive loss magnitude (the payoff floor negated). MaxGain
// is nil when the strategy's upside is unbounded (protective put); callers
// must render that as "unbounded", never as a number read off a finite grid.
// Breakeven is nil when the curve never crosses zero.
type Summary struct {
	Breakeven     *float64 `json:"breakeven"`
	MaxGain       *float64 `json:"max_gain"`
	MaxLoss       float64  `json:"max_loss"`
	NetPremium    float64  `json:"net_premium"`
	UnboundedGain bool     `json:"unbounded_gain"`
}

// ComputeSummary derives breakeven from the evaluated curve and the gain/
// loss bounds from the strategy's closed forms. Caps and floors are exact
// and do not move when the grid is widened or refined.
func ComputeSummary(spec StrategySpec, curve []Point) Summary {
	s := Summary{
		Breakeven:  breakeven(curve),
		NetPremium: spec.NetPremium(),
	}

	net := spec.NetPremium()
	switch spec.Type {
	case ProtectivePut:
		s.UnboundedGain = true
		s.MaxLoss = (spec.UnderlyingPrice - spec.PutStrike) + net

	case Collar:
		gain := (spec.CallStrike - spec.UnderlyingPrice) - net
		s.MaxGain = &gain
		s.MaxLoss = (spec.UnderlyingPrice - spec.PutStrike) + net

	case BearPutSpread:
		gain := (spec.PutStrike - spec.ShortPutStrike) - net
		s.MaxGain = &gain
		s.MaxLoss = net
	}
	return s
}

// breakeven locates the first zero crossing of the curve, scanning left to
// right. An exact zero at a grid point is the breakeven itself; a sign
// change between adjacent points is resolved by linear interpolation.
func breakeven(curve []Point) *float64 {
	for i, pt := range curve {
		if pt.Payoff == 0 {
			p := pt.Price
			return &p
		}
		if i == 0 {
			continue
		}
		prev := curve[i-1]
		if (prev.Payoff < 0 && pt.Payoff > 0) || (prev.Payoff > 0 && pt.Payoff < 0) {
			// Root of the chord between the two bracketing points.
			frac := -prev.Payoff / (pt.Payoff - prev.Payoff)
			p := prev.Price + frac*(pt.Price-prev.Price)
			return &p
		}
	}
	return nil
}

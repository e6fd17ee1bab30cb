package payoff

import "fmt"

// Point is one evaluated grid price and the net strategy payoff per share
// at that price.
type Point struct {
	Price  float64 `json:"price"`
	Payoff float64 `json:"payoff"`
}

// Grid describes the hypothetical-price range a curve is evaluated over:
// a percentage band around spot, stepped in price units.
type Grid struct {
	BandPct float64 `json:"band_pct" yaml:"band_pct"`
	Step    float64 `json:"step" yaml:"step"`
}

// DefaultGrid spans ±30% of spot in steps of one price unit.
func DefaultGrid() Grid {
	return Grid{BandPct: 0.30, Step: 1}
}

func (g Grid) Validate() error {
	if g.BandPct <= 0 || g.BandPct >= 1 {
		return fmt.Errorf("grid: band_pct = %v, must be in (0, 1)", g.BandPct)
	}
	if g.Step <= 0 {
		return fmt.Errorf("grid: step = %v, must be positive", g.Step)
	}
	return nil
}

// Prices materializes the grid around a spot price. The lower bound is
// clamped above zero; both bounds are always included.
func (g Grid) Prices(spot float64) []float64 {
	lo := spot * (1 - g.BandPct)
	hi := spot * (1 + g.BandPct)
	if lo < g.Step {
		lo = g.Step
	}

	var out []float64
	for p := lo; p < hi; p += g.Step {
		out = append(out, p)
	}
	if len(out) == 0 || out[len(out)-1] < hi {
		out = append(out, hi)
	}
	return out
}

// ComputeCurve evaluates the strategy payoff per share over the grid.
// The spec is validated first; nothing is evaluated for an invalid spec.
func ComputeCurve(spec StrategySpec, grid Grid) ([]Point, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}
	return ComputeCurveAt(spec, grid.Prices(spec.UnderlyingPrice)), nil
}

// ComputeCurveAt evaluates the strategy at explicit prices, assumed
// ascending. It does not validate the spec; use ComputeCurve at boundaries.
func ComputeCurveAt(spec StrategySpec, prices []float64) []Point {
	points := make([]Point, len(prices))
	for i, p := range prices {
		points[i] = Point{Price: p, Payoff: spec.Payoff(p)}
	}
	return points
}

package risk

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean, 0 for an empty slice.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the sample standard deviation (ddof=1).
// Fewer than two observations yield 0.
func StdDev(xs []float64) float64 {
	return math.Sqrt(Variance(xs))
}

// Variance returns the sample variance (ddof=1), 0 when n < 2.
func Variance(xs []float64) float64 {
	n := len(xs)
	if n < 2 {
		return 0
	}
	m := Mean(xs)
	var ss float64
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return ss / float64(n-1)
}

// Covariance returns the sample covariance (ddof=1) of two equal-length
// series, 0 when fewer than two pairs exist.
func Covariance(xs, ys []float64) float64 {
	n := len(xs)
	if n != len(ys) || n < 2 {
		return 0
	}
	mx, my := Mean(xs), Mean(ys)
	var ss float64
	for i := range xs {
		ss += (xs[i] - mx) * (ys[i] - my)
	}
	return ss / float64(n-1)
}

// Quantile returns the p-quantile (0 <= p <= 1) of xs under the linear
// interpolation convention: with ascending order statistics x_0..x_{n-1},
// the quantile sits at rank h = (n-1)p, interpolated between floor(h) and
// ceil(h). The input is not modified.
func Quantile(xs []float64, p float64) float64 {
	n := len(xs)
	if n == 0 {
		return math.NaN()
	}
	sorted := make([]float64, n)
	copy(sorted, xs)
	sort.Float64s(sorted)

	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	h := float64(n-1) * p
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// MaxDrawdown returns the largest peak-to-trough decline of an equity path,
// as a fraction of the peak. A non-decreasing path has drawdown 0.
func MaxDrawdown(values []float64) float64 {
	var peak, maxDD float64
	for _, v := range values {
		if v > peak {
			peak = v
		}
		if peak > 0 {
			dd := (peak - v) / peak
			if dd > maxDD {
				maxDD = dd
			}
		}
	}
	return maxDD
}

// CompoundPath turns a return sequence into an equity path starting at
// start: [start, start*(1+r_0), start*(1+r_0)(1+r_1), ...].
func CompoundPath(start float64, returns []float64) []float64 {
	path := make([]float64, 0, len(returns)+1)
	v := start
	path = append(path, v)
	for _, r := range returns {
		v *= 1 + r
		path = append(path, v)
	}
	return path
}

package stats

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: 1,
	}
	area := (1 + (confidenceInterval / 100)) / 2
	zValue := dist.Quantile(area)
	return zValue
}

// ProportionCI returns the Wilson score interval for successes out of
// trials, at the given confidence (0 to 100 percent). It stays inside
// [0, 1] even when every trial succeeds or none do.
func ProportionCI(successes, trials int, confidenceInterval float64) (lo, hi float64) {
	if trials == 0 {
		return 0, 1
	}
	z := ZVal(confidenceInterval)
	n := float64(trials)
	p := float64(successes) / n
	denom := 1 + z*z/n
	center := (p + z*z/(2*n)) / denom
	half := z * math.Sqrt(p*(1-p)/n+z*z/(4*n*n)) / denom
	return math.Max(0, center-half), math.Min(1, center+half)
}

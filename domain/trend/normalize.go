package trend

import (
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"trendkit/domain/core"
)

// Standardize converts an S statistic and its variance into the standardized
// Z statistic, applying the continuity correction:
//
//	Z = (S-1)/sqrt(Var(S))  if S > 0
//	Z = (S+1)/sqrt(Var(S))  if S < 0
//	Z = 0                   if S == 0
//
// A zero score standardizes to exactly zero regardless of the variance.
func Standardize(s int, varS float64) (float64, error) {
	if s == 0 {
		return 0, nil
	}
	if varS <= 0 {
		return 0, core.ErrNonPositiveVariance
	}

	if s > 0 {
		return (float64(s) - 1) / math.Sqrt(varS), nil
	}
	return (float64(s) + 1) / math.Sqrt(varS), nil
}

// TwoSidedPValue computes the two-tailed p-value 2*(1 - Phi(|z|)) for a
// standard-normal test statistic. The result is clamped to [0, 1].
func TwoSidedPValue(z float64) float64 {
	p := 2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

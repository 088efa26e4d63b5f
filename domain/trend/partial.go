package trend

import (
	"math"

	"trendkit/domain/core"
)

// PartialMannKendall runs the covariate-adjusted Mann-Kendall test of
// Libiseller and Grimvall (2002). The trend score of x is adjusted for the
// influence of the coincident covariate y through their conditional
// covariance, so that natural variability captured by the covariate (flow,
// temperature) does not masquerade as a trend in x.
//
// The method does not define a tie correction; series containing repeated
// values are rejected with ErrTiesUnsupported rather than mis-computed.
func PartialMannKendall(x, y Series) (Result, error) {
	n := len(x)
	if n != len(y) {
		return Result{}, core.NewLengthMismatchError(n, len(y))
	}
	if n < 2 {
		return Result{}, core.NewSeriesTooShortError("x", n, 2)
	}
	if hasTies(x) || hasTies(y) {
		return Result{}, core.ErrTiesUnsupported
	}

	sx, err := Score(x)
	if err != nil {
		return Result{}, err
	}
	sy, err := Score(y)
	if err != nil {
		return Result{}, err
	}

	// Conditional covariance of the two scores:
	//   Cov(Sx, Sy) = (K + 4*sum_j Rx_j*Ry_j - n(n+1)^2) / 3
	// with the tie-free variance V = n(n-1)(2n+5)/18 shared by both scores.
	k := partialK(x, y)
	rx := midRanks(x)
	ry := midRanks(y)

	sumRR := 0.0
	for j := 0; j < n; j++ {
		sumRR += rx[j] * ry[j]
	}

	nf := float64(n)
	cov := (float64(k) + 4*sumRR - nf*(nf+1)*(nf+1)) / 3
	v := nf * (nf - 1) * (2*nf + 5) / 18
	rho := cov / v

	// Adjusted score and its conditional variance. The reference defines the
	// standardized statistic as the direct ratio, without the continuity
	// correction used by the unadjusted tests.
	sAdj := float64(sx) - rho*float64(sy)
	varAdj := (1 - rho*rho) * v

	var z float64
	switch {
	case sAdj == 0:
		z = 0
	case varAdj <= 0:
		return Result{}, core.ErrNonPositiveVariance
	default:
		z = sAdj / math.Sqrt(varAdj)
	}

	return Result{
		Test:       TestPartialMannKendall,
		S:          sAdj,
		VarS:       varAdj,
		Z:          z,
		P:          TwoSidedPValue(z),
		SampleSize: n,
	}, nil
}

// partialK accumulates sign(x[j]-x[i]) * sign(y[j]-y[i]) over all pairs
// i < j, the K term of the conditional covariance.
func partialK(x, y Series) int {
	k := 0
	for j := 1; j < len(x); j++ {
		for i := 0; i < j; i++ {
			k += sign(x[j]-x[i]) * sign(y[j]-y[i])
		}
	}
	return k
}

// midRanks computes R_j = (n + 1 + sum_i sign(x[j]-x[i])) / 2 for each j.
// With no ties this equals the ordinary rank of x[j].
func midRanks(x Series) []float64 {
	n := len(x)
	r := make([]float64, n)
	for j := 0; j < n; j++ {
		s := 0
		for i := 0; i < n; i++ {
			s += sign(x[j] - x[i])
		}
		r[j] = (float64(n) + 1 + float64(s)) / 2
	}
	return r
}

func sign(d float64) int {
	switch {
	case d > 0:
		return 1
	case d < 0:
		return -1
	default:
		return 0
	}
}

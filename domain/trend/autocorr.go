package trend

import (
	"math"

	"github.com/montanaflynn/stats"

	"trendkit/domain/core"
)

// AR1Correction computes the variance-inflation coefficient for an
// AR(1)-structured series with lag-1 autocorrelation rho:
//
//	c = (1 + rho) / (1 - rho)
//
// Callers multiply Var(S) by c, or a standard deviation by sqrt(c). The
// coefficient is only appropriate for data exhibiting AR(1) structure,
// typical of water quality records collected at weekly to monthly intervals;
// higher-frequency data should be checked for higher-order AR terms.
func AR1Correction(rho float64) (float64, error) {
	if rho == 1 {
		return 0, core.ErrUnitAutocorrelation
	}
	return (1 + rho) / (1 - rho), nil
}

// AR1CorrectionN applies the finite-sample correction for series of length n
// (Matalas and Langbein 1962):
//
//	c = (1 + rho)/(1 - rho) - (2/n) * rho*(1 - rho^n) / (1 - rho)^2
//
// The base coefficient is adequate for large n.
func AR1CorrectionN(rho float64, n int) (float64, error) {
	c, err := AR1Correction(rho)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, core.ErrZeroSampleSize
	}

	d := 1 - rho
	c -= (2 / float64(n)) * rho * (1 - math.Pow(rho, float64(n))) / (d * d)
	return c, nil
}

// LagOneAutocorrelation estimates the lag-1 serial correlation of x, the rho
// consumed by AR1Correction when it is not known a priori.
func LagOneAutocorrelation(x Series) (float64, error) {
	if len(x) < 2 {
		return 0, core.NewSeriesTooShortError("x", len(x), 2)
	}

	rho, err := stats.AutoCorrelation(stats.Float64Data(x), 1)
	if err != nil {
		return 0, err
	}
	return rho, nil
}

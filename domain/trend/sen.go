package trend

import (
	"github.com/montanaflynn/stats"

	"trendkit/domain/core"
)

// SensSlope estimates the magnitude of a monotonic trend as the median of
// all pairwise slopes (x[j]-x[i])/(j-i), i < j. It is the standard companion
// to the Mann-Kendall test: the test decides whether a trend exists, the
// slope says how steep it is, in units of change per sampling interval.
// Unlike a least-squares slope it is resistant to outliers.
func SensSlope(x Series) (float64, error) {
	n := len(x)
	if n < 2 {
		return 0, core.NewSeriesTooShortError("x", n, 2)
	}

	slopes := make([]float64, 0, n*(n-1)/2)
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			slopes = append(slopes, (x[j]-x[i])/float64(j-i))
		}
	}
	return stats.Median(stats.Float64Data(slopes))
}

// SeasonalSensSlope estimates the trend magnitude for a seasonal series by
// taking the median of within-season pairwise slopes, in units of change per
// full seasonal cycle. Pairs spanning different seasons are excluded so the
// seasonal signal does not contaminate the trend estimate. Seasons with
// fewer than two observations contribute no pairs.
func SeasonalSensSlope(x Series, period int) (float64, error) {
	n := len(x)
	if period < 1 || n < period {
		return 0, core.NewInvalidPeriodError(period, n)
	}

	var slopes []float64
	for season := 0; season < period; season++ {
		sub := seasonSubseries(x, season, period)
		for j := 1; j < len(sub); j++ {
			for i := 0; i < j; i++ {
				slopes = append(slopes, (sub[j]-sub[i])/float64(j-i))
			}
		}
	}
	if len(slopes) == 0 {
		return 0, core.NewSeriesTooShortError("x", n, period*2)
	}
	return stats.Median(stats.Float64Data(slopes))
}

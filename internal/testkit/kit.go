package testkit

import (
	"math"
	"math/rand"

	"trendkit/domain/trend"
)

// LinearTrend builds a synthetic series of length n as Gaussian noise around
// a linear trend: x[k] = N(0, stdDev) + delta*k. Deterministic for a fixed
// seed.
func LinearTrend(n int, delta, stdDev float64, seed int64) trend.Series {
	r := rand.New(rand.NewSource(seed))
	x := make(trend.Series, n)
	for k := range x {
		x[k] = r.NormFloat64()*stdDev + delta*float64(k)
	}
	return x
}

// SeasonalTrend builds years*period observations with a sinusoidal seasonal
// cycle of the given amplitude, Gaussian noise, and a linear trend applied
// only to the listed seasons (all seasons when none are listed). Useful for
// planting a trend in a single month of a monthly record.
func SeasonalTrend(years, period int, amplitude, delta, stdDev float64, seed int64, trendSeasons ...int) trend.Series {
	inTrend := make(map[int]bool, len(trendSeasons))
	for _, s := range trendSeasons {
		inTrend[s] = true
	}

	r := rand.New(rand.NewSource(seed))
	x := make(trend.Series, years*period)
	for i := range x {
		season := i % period
		year := i / period

		v := amplitude*math.Sin(2*math.Pi*float64(season)/float64(period)) + r.NormFloat64()*stdDev
		if len(trendSeasons) == 0 || inTrend[season] {
			v += delta * float64(year)
		}
		x[i] = v
	}
	return x
}

// Constant builds a degenerate series where every observation equals v.
func Constant(n int, v float64) trend.Series {
	x := make(trend.Series, n)
	for i := range x {
		x[i] = v
	}
	return x
}

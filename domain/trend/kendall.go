package trend

import (
	"trendkit/domain/core"
)

// MannKendall runs the Mann-Kendall test for a monotonic trend on a
// chronologically ordered series. The test is distribution-free: it makes no
// normality assumption and tolerates ties, and is best viewed as an
// exploratory screen for stations where changes are significant or of large
// magnitude (Hirsch, Slack and Smith 1982).
func MannKendall(x Series) (Result, error) {
	n := len(x)
	if n < 2 {
		return Result{}, core.NewSeriesTooShortError("x", n, 2)
	}

	s, err := Score(x)
	if err != nil {
		return Result{}, err
	}
	varS, err := ScoreVariance(x)
	if err != nil {
		return Result{}, err
	}
	z, err := Standardize(s, varS)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Test:       TestMannKendall,
		S:          float64(s),
		VarS:       varS,
		Z:          z,
		P:          TwoSidedPValue(z),
		SampleSize: n,
	}, nil
}

// SeasonalMannKendall runs the Seasonal Kendall test (Hirsch, Slack and
// Smith 1982) on a series with a fixed seasonal cycle of the given period.
// Observation i belongs to season i mod period. Per-season scores and
// variances are computed independently and summed before standardization, so
// a trend confined to a single season still contributes its full score.
// Seasons with fewer than two observations contribute nothing.
//
// The test assumes any monotonic trends present share a direction across
// seasons; opposing seasonal trends cancel in the aggregate and the plain
// MannKendall test per season is the better tool.
func SeasonalMannKendall(x Series, period int) (Result, error) {
	n := len(x)
	if period < 1 || n < period {
		return Result{}, core.NewInvalidPeriodError(period, n)
	}
	if n < 2 {
		return Result{}, core.NewSeriesTooShortError("x", n, 2)
	}

	totalS := 0
	totalVar := 0.0
	for season := 0; season < period; season++ {
		sub := seasonSubseries(x, season, period)
		if len(sub) < 2 {
			continue
		}

		s, err := Score(sub)
		if err != nil {
			return Result{}, err
		}
		varS, err := ScoreVariance(sub)
		if err != nil {
			return Result{}, err
		}
		totalS += s
		totalVar += varS
	}

	z, err := Standardize(totalS, totalVar)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Test:       TestSeasonalMannKendall,
		S:          float64(totalS),
		VarS:       totalVar,
		Z:          z,
		P:          TwoSidedPValue(z),
		SampleSize: n,
		Period:     period,
	}, nil
}

// seasonSubseries extracts the observations x[season], x[season+period], ...
func seasonSubseries(x Series, season, period int) Series {
	var sub Series
	for i := season; i < len(x); i += period {
		sub = append(sub, x[i])
	}
	return sub
}

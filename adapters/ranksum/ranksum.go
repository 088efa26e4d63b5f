package ranksum

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat/distuv"

	"trendkit/domain/core"
	"trendkit/ports"
)

// Adapter implements the rank-sum collaborator with the large-sample normal
// approximation (Helsel and Hirsch 1992), including mid-ranks for ties, the
// tie-corrected variance, and an optional continuity correction. The exact
// small-sample distribution is out of scope; as with most statistical
// packages, the approximation is reported regardless of sample size.
type Adapter struct{}

// New creates a rank-sum adapter.
func New() *Adapter {
	return &Adapter{}
}

var _ ports.RankSumTester = (*Adapter)(nil)

// RankSumTest performs the Wilcoxon rank-sum test on independent samples x
// and y. The statistic is W, the sum of the mid-ranks of x in the combined
// sample. In its most general form the test asks whether one group tends to
// produce larger observations than the other.
func (a *Adapter) RankSumTest(x, y []float64, continuity bool, alt ports.Alternative) (float64, float64, error) {
	n1, n2 := len(x), len(y)
	if n1 < 1 || n2 < 1 {
		return 0, 0, core.NewSeriesTooShortError("sample", min(n1, n2), 1)
	}

	w, mu, sd := rankSumMoments(x, y)
	if sd == 0 {
		return w, 1, nil
	}

	z := normalizedStatistic(w, mu, sd, continuity)
	p, err := pValue(z, alt)
	if err != nil {
		return 0, 0, err
	}
	return w, p, nil
}

// MannWhitney computes the Mann-Whitney U form of the same test. With an
// explicit alternative the statistic is U for y; with the alternative left
// unspecified the statistic is min(U_x, U_y) and the reported p-value is
// one-sided (half the two-sided value), mirroring the legacy convention of
// the scientific libraries this adapter stands in for.
func (a *Adapter) MannWhitney(x, y []float64, continuity bool, alt ports.Alternative) (float64, float64, error) {
	n1, n2 := len(x), len(y)
	if n1 < 1 || n2 < 1 {
		return 0, 0, core.NewSeriesTooShortError("sample", min(n1, n2), 1)
	}

	w, _, sd := rankSumMoments(x, y)
	ux := w - float64(n1)*float64(n1+1)/2
	uy := float64(n1)*float64(n2) - ux
	muU := float64(n1) * float64(n2) / 2

	if sd == 0 {
		return math.Min(ux, uy), 1, nil
	}

	if alt == "" {
		z := normalizedStatistic(ux, muU, sd, continuity)
		p, err := pValue(z, ports.AlternativeTwoSided)
		if err != nil {
			return 0, 0, err
		}
		return math.Min(ux, uy), p / 2, nil
	}

	z := normalizedStatistic(uy, muU, sd, continuity)
	p, err := pValue(z, alt)
	if err != nil {
		return 0, 0, err
	}
	return uy, p, nil
}

// SeasonalRankSum performs the seasonal rank-sum step-trend test: the
// rank-sum statistic and its null moments are computed independently for
// each season (index mod period within each sample) and summed before
// normalization, the same aggregation the Seasonal Kendall test applies to
// MK scores. Seasons missing observations from either group contribute
// nothing. The p-value is two-sided.
func (a *Adapter) SeasonalRankSum(x, y []float64, period int) (float64, float64, error) {
	if period < 1 {
		return 0, 0, core.NewInvalidPeriodError(period, len(x))
	}
	if len(x) < 1 || len(y) < 1 {
		return 0, 0, core.NewSeriesTooShortError("sample", min(len(x), len(y)), 1)
	}

	var totalW, totalMu, totalVar float64
	for season := 0; season < period; season++ {
		xs := seasonValues(x, season, period)
		ys := seasonValues(y, season, period)
		if len(xs) == 0 || len(ys) == 0 {
			continue
		}

		w, mu, sd := rankSumMoments(xs, ys)
		totalW += w
		totalMu += mu
		totalVar += sd * sd
	}

	if totalVar == 0 {
		return totalW, 1, nil
	}

	z := normalizedStatistic(totalW, totalMu, math.Sqrt(totalVar), true)
	p, err := pValue(z, ports.AlternativeTwoSided)
	if err != nil {
		return 0, 0, err
	}
	return totalW, p, nil
}

// rankSumMoments returns W (sum of mid-ranks of x in the combined sample)
// with its null mean and tie-corrected standard deviation.
func rankSumMoments(x, y []float64) (w, mu, sd float64) {
	n1, n2 := len(x), len(y)
	n := n1 + n2

	combined := make([]float64, 0, n)
	combined = append(combined, x...)
	combined = append(combined, y...)
	ranks, tieCorrection := midRanksWithTies(combined)

	for i := 0; i < n1; i++ {
		w += ranks[i]
	}

	nf := float64(n)
	mu = float64(n1) * (nf + 1) / 2
	variance := float64(n1) * float64(n2) / 12 * ((nf + 1) - tieCorrection/(nf*(nf-1)))
	if variance < 0 {
		variance = 0
	}
	return w, mu, math.Sqrt(variance)
}

// midRanksWithTies assigns mid-ranks to values (average rank within each tie
// group) and returns the tie correction term sum(t^3 - t) over tie groups.
func midRanksWithTies(values []float64) ([]float64, float64) {
	n := len(values)
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, b int) bool { return values[order[a]] < values[order[b]] })

	ranks := make([]float64, n)
	tieCorrection := 0.0
	for i := 0; i < n; {
		j := i
		for j < n && values[order[j]] == values[order[i]] {
			j++
		}
		// positions i..j-1 share the mid-rank
		midRank := float64(i+j+1) / 2
		for k := i; k < j; k++ {
			ranks[order[k]] = midRank
		}
		t := float64(j - i)
		if t > 1 {
			tieCorrection += t*t*t - t
		}
		i = j
	}
	return ranks, tieCorrection
}

// normalizedStatistic standardizes a statistic against its null moments,
// optionally shifting half a unit toward the mean for continuity.
func normalizedStatistic(stat, mu, sd float64, continuity bool) float64 {
	d := stat - mu
	if continuity {
		switch {
		case d > 0:
			d -= 0.5
		case d < 0:
			d += 0.5
		}
	}
	return d / sd
}

func pValue(z float64, alt ports.Alternative) (float64, error) {
	switch alt {
	case ports.AlternativeTwoSided:
		return clamp01(2 * (1 - distuv.UnitNormal.CDF(math.Abs(z)))), nil
	case ports.AlternativeGreater:
		return clamp01(1 - distuv.UnitNormal.CDF(z)), nil
	case ports.AlternativeLess:
		return clamp01(distuv.UnitNormal.CDF(z)), nil
	default:
		return 0, core.ErrInvalidInput
	}
}

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func seasonValues(x []float64, season, period int) []float64 {
	var out []float64
	for i := season; i < len(x); i += period {
		out = append(out, x[i])
	}
	return out
}

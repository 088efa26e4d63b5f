package ports

// Alternative selects the alternative hypothesis for a rank-sum test.
type Alternative string

const (
	AlternativeLess     Alternative = "less"
	AlternativeTwoSided Alternative = "two-sided"
	AlternativeGreater  Alternative = "greater"
)

// RankSumTester is the external collaborator for the rank-sum (Wilcoxon /
// Mann-Whitney) family of step-trend tests. The trend test family never
// calls it; it exists for callers comparing two independent sample groups.
type RankSumTester interface {
	// RankSumTest compares samples x and y and returns the test statistic
	// and p-value under the chosen alternative. The continuity flag applies
	// the 1/2 continuity correction to the normal approximation.
	RankSumTest(x, y []float64, continuity bool, alt Alternative) (statistic, pValue float64, err error)
}

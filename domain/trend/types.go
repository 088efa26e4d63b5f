package trend

// Series is a chronologically ordered sequence of observations. Index order
// is collection order; callers guarantee ordering and pre-filter missing
// values (the tests define no missing-value sentinel).
type Series []float64

// TestType identifies which member of the trend test family produced a Result.
type TestType string

const (
	TestMannKendall         TestType = "mann_kendall"
	TestSeasonalMannKendall TestType = "seasonal_mann_kendall"
	TestPartialMannKendall  TestType = "partial_mann_kendall"
)

// Result contains the outcome of a trend test.
// INVARIANTS:
// - P always in [0.0, 1.0]
// - Z == 0 exactly when S == 0; sign(Z) == sign(S) otherwise
// - VarS >= 0
// - SampleSize always present and >= 2
type Result struct {
	Test       TestType `json:"test"`
	S          float64  `json:"s"`           // MK score (adjusted S' for the partial test)
	VarS       float64  `json:"var_s"`       // Variance of S (conditional for the partial test)
	Z          float64  `json:"z"`           // Standardized test statistic
	P          float64  `json:"p_value"`     // Two-sided p-value
	SampleSize int      `json:"sample_size"` // N used in the test
	Period     int      `json:"period,omitempty"`
}

// Significant reports whether the test rejects the no-trend hypothesis at
// significance level alpha.
func (r Result) Significant(alpha float64) bool {
	return r.P <= alpha
}

// Direction returns 1 for an upward trend, -1 for a downward trend and 0
// when no direction is indicated by the score.
func (r Result) Direction() int {
	switch {
	case r.S > 0:
		return 1
	case r.S < 0:
		return -1
	default:
		return 0
	}
}

package trend

import (
	"trendkit/domain/core"
)

// Score computes the Mann-Kendall S statistic: the sum of sign(x[j]-x[i])
// over all pairs i < j. Tied pairs contribute zero. O(n^2), which is
// acceptable for the series lengths this domain produces.
func Score(x Series) (int, error) {
	n := len(x)
	if n < 2 {
		return 0, core.NewSeriesTooShortError("x", n, 2)
	}

	s := 0
	for j := 1; j < n; j++ {
		for i := 0; i < j; i++ {
			switch {
			case x[j] > x[i]:
				s++
			case x[j] < x[i]:
				s--
			}
		}
	}
	return s, nil
}

// ScoreVariance computes the tie-corrected variance of the S statistic
// (Helsel and Hirsch 2002, eq. 8.4):
//
//	Var(S) = (n(n-1)(2n+5) - sum over tie groups of q(q-1)(2q+5)) / 18
//
// The result is non-negative for any valid input.
func ScoreVariance(x Series) (float64, error) {
	n := len(x)
	if n < 2 {
		return 0, core.NewSeriesTooShortError("x", n, 2)
	}

	nf := float64(n)
	varS := nf * (nf - 1) * (2*nf + 5)

	for _, q := range tieGroups(x) {
		qf := float64(q)
		varS -= qf * (qf - 1) * (2*qf + 5)
	}
	return varS / 18, nil
}

// tieGroups returns the sizes of all groups of repeated values in x.
// Groups of size 1 are omitted; an empty result means no value repeats.
func tieGroups(x Series) []int {
	counts := make(map[float64]int, len(x))
	for _, v := range x {
		counts[v]++
	}

	var groups []int
	for _, c := range counts {
		if c > 1 {
			groups = append(groups, c)
		}
	}
	return groups
}

// hasTies reports whether any value occurs more than once in x.
func hasTies(x Series) bool {
	seen := make(map[float64]struct{}, len(x))
	for _, v := range x {
		if _, ok := seen[v]; ok {
			return true
		}
		seen[v] = struct{}{}
	}
	return false
}

package trend

import (
	"math"
	"math/rand"
	"testing"

	"trendkit/domain/core"
)

func TestPartialMannKendallInputValidation(t *testing.T) {
	tests := []struct {
		name    string
		x, y    Series
		wantErr func(error) bool
	}{
		{
			name:    "length mismatch",
			x:       Series{1, 2, 3},
			y:       Series{1, 2},
			wantErr: core.IsInputError,
		},
		{
			name:    "too short",
			x:       Series{1},
			y:       Series{2},
			wantErr: core.IsInputError,
		},
		{
			name:    "ties in primary series",
			x:       Series{1, 1, 2, 3},
			y:       Series{4, 3, 2, 1},
			wantErr: core.IsUnsupportedError,
		},
		{
			name:    "ties in covariate",
			x:       Series{1, 2, 3, 4},
			y:       Series{5, 5, 2, 1},
			wantErr: core.IsUnsupportedError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := PartialMannKendall(tt.x, tt.y)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tt.wantErr(err) {
				t.Errorf("wrong error class: %v", err)
			}
		})
	}
}

func TestPartialMannKendallIdenticalSeries(t *testing.T) {
	// When the covariate is the series itself it explains the trend
	// completely: the conditional covariance equals the variance, the
	// adjusted score collapses to zero and no trend remains.
	x := Series{2, 7, 1, 9, 4, 12, 6, 15, 8, 20}

	res, err := PartialMannKendall(x, x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.S != 0 || res.Z != 0 {
		t.Errorf("expected adjusted S=0 and Z=0, got S=%v Z=%v", res.S, res.Z)
	}
	if res.P != 1 {
		t.Errorf("P = %v, want 1", res.P)
	}
}

func TestPartialMannKendallTrendWithUnrelatedCovariate(t *testing.T) {
	// A strong trend in x with an uninformative covariate must survive
	// adjustment and stay significant.
	r := rand.New(rand.NewSource(11))
	n := 30
	x := make(Series, n)
	y := make(Series, n)
	for i := range x {
		x[i] = float64(i) + r.NormFloat64()*0.3
		y[i] = r.NormFloat64() * 10
	}

	res, err := PartialMannKendall(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Test != TestPartialMannKendall {
		t.Errorf("Test = %q, want %q", res.Test, TestPartialMannKendall)
	}
	if res.P >= 0.05 {
		t.Errorf("P = %v, want < 0.05", res.P)
	}
	if res.Direction() != 1 {
		t.Errorf("expected upward trend, got S=%v", res.S)
	}
	if res.VarS <= 0 {
		t.Errorf("VarS = %v, want > 0", res.VarS)
	}
}

func TestPartialMannKendallAdjustsForCovariate(t *testing.T) {
	// x tracks the covariate plus noise. Removing the covariate's influence
	// must weaken the evidence relative to the unadjusted test.
	r := rand.New(rand.NewSource(3))
	n := 25
	y := make(Series, n)
	x := make(Series, n)
	for i := range y {
		y[i] = float64(i) + r.NormFloat64()*0.2
		x[i] = y[i]*0.9 + r.NormFloat64()*0.4
	}

	plain, err := MannKendall(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	partial, err := PartialMannKendall(x, y)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(partial.Z) >= math.Abs(plain.Z) {
		t.Errorf("adjustment did not reduce the statistic: |Z_partial|=%v |Z_plain|=%v",
			math.Abs(partial.Z), math.Abs(plain.Z))
	}
}

func TestMidRanksMatchOrdinaryRanks(t *testing.T) {
	// Without ties the R term reduces to the ordinary 1-based rank.
	x := Series{30, 10, 50, 20, 40}
	want := []float64{3, 1, 5, 2, 4}

	got := midRanks(x)
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("midRanks[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestPartialKSymmetry(t *testing.T) {
	x := Series{1, 5, 2, 8, 3}
	y := Series{2, 1, 7, 4, 9}

	if partialK(x, y) != partialK(y, x) {
		t.Error("K term must be symmetric in its arguments")
	}
	// K of a series with itself counts every untied pair once.
	if got, want := partialK(x, x), 10; got != want {
		t.Errorf("partialK(x, x) = %d, want %d", got, want)
	}
}

package trend

import (
	"math"
	"testing"

	"trendkit/domain/core"
)

func TestSensSlope(t *testing.T) {
	// Exact linear data recovers the slope exactly.
	x := Series{1, 3, 5, 7, 9}
	got, err := SensSlope(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 2 {
		t.Errorf("SensSlope = %v, want 2", got)
	}

	// A single gross outlier barely moves the estimate.
	withOutlier := Series{1, 3, 5, 1000, 9, 11, 13, 15, 17, 19}
	got, err = SensSlope(withOutlier)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got-2) > 0.5 {
		t.Errorf("SensSlope with outlier = %v, want ~2", got)
	}

	if _, err := SensSlope(Series{1}); !core.IsInputError(err) {
		t.Errorf("expected input error, got %v", err)
	}
}

func TestSeasonalSensSlope(t *testing.T) {
	// Four years, four seasons, seasonal offsets plus one unit of change per
	// year. Within-season pairs see only the yearly change.
	const period, years = 4, 4
	offsets := []float64{10, 20, 30, 40}
	x := make(Series, period*years)
	for i := range x {
		x[i] = offsets[i%period] + float64(i/period)
	}

	got, err := SeasonalSensSlope(x, period)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 1 {
		t.Errorf("SeasonalSensSlope = %v, want 1", got)
	}

	if _, err := SeasonalSensSlope(Series{1, 2, 3}, 0); !core.IsInputError(err) {
		t.Errorf("expected input error, got %v", err)
	}
	if _, err := SeasonalSensSlope(Series{1, 2, 3}, 4); !core.IsInputError(err) {
		t.Errorf("expected input error, got %v", err)
	}
}

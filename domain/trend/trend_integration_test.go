package trend_test

import (
	"math"
	"testing"

	"trendkit/domain/trend"
	"trendkit/internal/testkit"
)

// End-to-end checks on synthetic records, the way a monitoring analysis
// would call the package.

func TestTrendDetectionOnSyntheticRecord(t *testing.T) {
	x := testkit.LinearTrend(30, 0.8, 1, 21)

	res, err := trend.MannKendall(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.P >= 0.05 || res.Direction() != 1 {
		t.Errorf("planted trend not detected: P=%v S=%v", res.P, res.S)
	}

	slope, err := trend.SensSlope(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(slope-0.8) > 0.3 {
		t.Errorf("SensSlope = %v, want ~0.8", slope)
	}
}

func TestSeasonalTrendDetectionOnSyntheticRecord(t *testing.T) {
	// Five years of monthly data with a strong seasonal cycle and a yearly
	// trend in every season. The plain test is confounded by the cycle; the
	// seasonal test compares like with like.
	x := testkit.SeasonalTrend(5, 12, 10, 2, 0.3, 8)

	res, err := trend.SeasonalMannKendall(x, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.P >= 0.05 || res.Direction() != 1 {
		t.Errorf("seasonal trend not detected: P=%v S=%v", res.P, res.S)
	}

	slope, err := trend.SeasonalSensSlope(x, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(slope-2) > 0.5 {
		t.Errorf("SeasonalSensSlope = %v, want ~2", slope)
	}
}

func TestFlatRecordShowsNoTrend(t *testing.T) {
	x := testkit.Constant(24, 6.5)

	res, err := trend.MannKendall(x)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.S != 0 || res.Z != 0 || res.P != 1 {
		t.Errorf("flat record should carry no trend evidence: %+v", res)
	}
}

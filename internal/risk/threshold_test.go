package risk

import "testing"

func fptr(v float64) *float64 { return &v }

func TestEvaluateLowerWorse_TierBoundaries(t *testing.T) {
	th := TierThresholds{Severe: -1.5, Moderate: -1.0, Mild: -0.5}
	pts := TierPoints{Severe: 25, Moderate: 15, Mild: 8}

	cases := []struct {
		name   string
		value  *float64
		points int
		tier   Tier
	}{
		{"nil never triggers", nil, 0, ""},
		{"below severe", fptr(-1.6), 25, TierSevere},
		{"exactly severe stays moderate", fptr(-1.5), 15, TierModerate},
		{"below moderate", fptr(-1.1), 15, TierModerate},
		{"exactly moderate stays mild", fptr(-1.0), 8, TierMild},
		{"below mild", fptr(-0.6), 8, TierMild},
		{"exactly mild no trigger", fptr(-0.5), 0, ""},
		{"healthy", fptr(0.3), 0, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := EvaluateLowerWorse(tc.value, th, pts)
			if got.Points != tc.points {
				t.Fatalf("points = %d, want %d", got.Points, tc.points)
			}
			if tc.points > 0 && !got.Triggered {
				t.Fatalf("expected triggered")
			}
			if tc.points == 0 && got.Triggered {
				t.Fatalf("expected not triggered")
			}
			if got.Tier != tc.tier {
				t.Fatalf("tier = %q, want %q", got.Tier, tc.tier)
			}
		})
	}
}

func TestEvaluateUpperWorse_TierBoundaries(t *testing.T) {
	th := TierThresholds{Severe: 8, Moderate: 5, Mild: 3}
	pts := TierPoints{Severe: 25, Moderate: 15, Mild: 8}

	cases := []struct {
		name   string
		value  *float64
		points int
	}{
		{"nil never triggers", nil, 0},
		{"above severe", fptr(8.5), 25},
		{"exactly severe stays moderate", fptr(8.0), 15},
		{"above moderate", fptr(5.5), 15},
		{"above mild", fptr(3.5), 8},
		{"exactly mild no trigger", fptr(3.0), 0},
		{"healthy", fptr(-2.0), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := EvaluateUpperWorse(tc.value, th, pts); got.Points != tc.points {
				t.Fatalf("points = %d, want %d", got.Points, tc.points)
			}
		})
	}
}

func TestEvaluateAtLeast_InclusiveThresholds(t *testing.T) {
	th := TierThresholds{Severe: 5, Moderate: 4, Mild: 3}
	pts := TierPoints{Severe: 15, Moderate: 8, Mild: 4}

	cases := []struct {
		value  float64
		points int
	}{
		{2, 0},
		{3, 4},
		{4, 8},
		{5, 15},
		{9, 15},
	}
	for _, tc := range cases {
		if got := EvaluateAtLeast(tc.value, th, pts); got.Points != tc.points {
			t.Fatalf("EvaluateAtLeast(%v) = %d points, want %d", tc.value, got.Points, tc.points)
		}
	}
}

func TestEvaluateTwoTierVariants(t *testing.T) {
	// Readiness: lower is worse, strict comparison.
	if got := EvaluateLowerWorse2(3, 4, 6, 15, 8); got.Points != 15 {
		t.Fatalf("readiness 3 = %d points, want 15", got.Points)
	}
	if got := EvaluateLowerWorse2(4, 4, 6, 15, 8); got.Points != 8 {
		t.Fatalf("readiness 4 = %d points, want 8", got.Points)
	}
	if got := EvaluateLowerWorse2(6, 4, 6, 15, 8); got.Points != 0 {
		t.Fatalf("readiness 6 = %d points, want 0", got.Points)
	}

	// Pain trend: higher is worse, moderate threshold is zero.
	if got := EvaluateUpperWorse2(3, 2, 0, 10, 5); got.Points != 10 {
		t.Fatalf("trend 3 = %d points, want 10", got.Points)
	}
	if got := EvaluateUpperWorse2(1, 2, 0, 10, 5); got.Points != 5 {
		t.Fatalf("trend 1 = %d points, want 5", got.Points)
	}
	if got := EvaluateUpperWorse2(0, 2, 0, 10, 5); got.Points != 0 {
		t.Fatalf("trend 0 = %d points, want 0", got.Points)
	}
	if got := EvaluateUpperWorse2(-1, 2, 0, 10, 5); got.Triggered {
		t.Fatalf("improving trend must not trigger")
	}
}

package risk

import (
	"strings"
	"testing"
	"time"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
)

func testFeatures() *UserFeatures {
	return NewUserFeatures(time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC))
}

func TestLevelForScore_Cutoffs(t *testing.T) {
	th := DefaultThresholds()
	cases := []struct {
		score int
		want  domain.RiskLevel
	}{
		{0, domain.RiskGreen},
		{35, domain.RiskGreen},
		{36, domain.RiskYellow},
		{60, domain.RiskYellow},
		{61, domain.RiskRed},
		{100, domain.RiskRed},
	}
	for _, tc := range cases {
		if got := th.LevelForScore(tc.score); got != tc.want {
			t.Fatalf("LevelForScore(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestEvaluateACWR_Bands(t *testing.T) {
	cfg := DefaultScoringConfig().ACWR
	cases := []struct {
		name     string
		acwr     *float64
		points   int
		elevated bool
	}{
		{"nil", nil, 0, false},
		{"critical", fptr(1.6), 25, true},
		{"elevated", fptr(1.35), 15, true},
		{"warning", fptr(1.25), 8, true},
		{"normal", fptr(1.0), 0, false},
		{"boundary 1.2", fptr(1.2), 0, false},
		{"detraining", fptr(0.6), 3, false},
		{"boundary 0.8", fptr(0.8), 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			points, elevated := evaluateACWR(cfg, tc.acwr)
			if points != tc.points || elevated != tc.elevated {
				t.Fatalf("got (%d, %v), want (%d, %v)", points, elevated, tc.points, tc.elevated)
			}
		})
	}
}

func TestHeuristicScore_EmptyHistoryIsMissingDataOnly(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig(), DefaultThresholds())
	features := testFeatures()

	verdict := scorer.Evaluate(features, PlannedSessionInput{
		Sport:           domain.SportWalk,
		DurationMinutes: 45,
	})

	// Three missing signals at 3 points each, nothing else contributes.
	if verdict.Breakdown.BaseScore != 0 {
		t.Fatalf("base score = %v, want 0", verdict.Breakdown.BaseScore)
	}
	if verdict.RiskScore != 9 {
		t.Fatalf("score = %d, want 9", verdict.RiskScore)
	}
	if verdict.RiskLevel != domain.RiskGreen {
		t.Fatalf("level = %s, want green", verdict.RiskLevel)
	}
	if len(verdict.TopFactors) != 0 {
		t.Fatalf("no factors expected, got %v", verdict.TopFactors)
	}
	if verdict.ModelVersion != ModelVersion {
		t.Fatalf("model version = %q", verdict.ModelVersion)
	}
}

func TestHeuristicScore_MissingPenaltyAddedAfterMultiplier(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig(), DefaultThresholds())
	features := testFeatures()
	features.PainScore = 2 // 10 base points

	vo2 := domain.ZoneVO2
	verdict := scorer.Evaluate(features, PlannedSessionInput{
		Sport:           domain.SportRun,
		DurationMinutes: 60,
		Intensity:       &vo2,
	})

	// Multiplier 1 + (4+5-4)*0.05 = 1.25; 10*1.25 + 9 = 21.5 -> 22.
	if verdict.Breakdown.Multiplier != 1.25 {
		t.Fatalf("multiplier = %v, want 1.25", verdict.Breakdown.Multiplier)
	}
	if verdict.RiskScore != 22 {
		t.Fatalf("score = %d, want 22", verdict.RiskScore)
	}
}

func TestHeuristicScore_ClampsAt100(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig(), DefaultThresholds())
	features := testFeatures()
	features.HRVZ = fptr(-2.5)
	features.RHRDelta = fptr(10)
	features.SleepDelta = fptr(-120)
	features.ACWR = fptr(1.8)
	features.PainScore = 6
	features.PainTrend3d = 3
	features.SorenessMap = map[domain.MuscleRegion]int{domain.MuscleQuads: 9}
	features.MaxSoreness = 9
	features.Readiness = 2
	features.Fatigue = 9
	features.ConsecutiveTrainingDays = 6
	features.MissingHRV = false
	features.MissingSleep = false
	features.MissingRHR = false

	vo2 := domain.ZoneVO2
	verdict := scorer.Evaluate(features, PlannedSessionInput{
		Sport:           domain.SportRun,
		DurationMinutes: 60,
		Intensity:       &vo2,
	})

	if verdict.RiskScore != 100 {
		t.Fatalf("score = %d, want 100", verdict.RiskScore)
	}
	if verdict.RiskLevel != domain.RiskRed {
		t.Fatalf("level = %s, want red", verdict.RiskLevel)
	}
}

func TestDetermineRisk_OverrideOnlyRaises(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig(), DefaultThresholds())
	red := domain.RiskRed
	yellow := domain.RiskYellow

	score, level := scorer.determineRisk(10, SafetyEvaluation{OverrideRiskLevel: &red})
	if score != 61 || level != domain.RiskRed {
		t.Fatalf("red override on 10 = (%d, %s), want (61, red)", score, level)
	}

	score, level = scorer.determineRisk(10, SafetyEvaluation{OverrideRiskLevel: &yellow})
	if score != 36 || level != domain.RiskYellow {
		t.Fatalf("yellow override on 10 = (%d, %s), want (36, yellow)", score, level)
	}

	// A score already above the floor is left alone.
	score, level = scorer.determineRisk(90, SafetyEvaluation{OverrideRiskLevel: &yellow})
	if score != 90 || level != domain.RiskRed {
		t.Fatalf("yellow override on 90 = (%d, %s), want (90, red)", score, level)
	}

	score, level = scorer.determineRisk(42, SafetyEvaluation{})
	if score != 42 || level != domain.RiskYellow {
		t.Fatalf("no override on 42 = (%d, %s), want (42, yellow)", score, level)
	}
}

func TestTopFactors_RankingAndCap(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig(), DefaultThresholds())
	features := testFeatures()
	features.HRVZ = fptr(-1.8)                                             // 25
	features.RHRDelta = fptr(6.0)                                          // 15
	features.SleepDelta = fptr(-70)                                        // 12
	features.ACWR = fptr(1.4)                                              // 15
	features.PainScore = 3                                                 // 15
	features.SorenessMap = map[domain.MuscleRegion]int{domain.MuscleQuads: 6} // 18 for a run plan
	features.ConsecutiveTrainingDays = 4                                   // 8
	features.Fatigue = 6                                                   // 5

	factors := scorer.topFactors(features, PlannedSessionInput{Sport: domain.SportRun, DurationMinutes: 60})

	if len(factors) != 5 {
		t.Fatalf("got %d factors, want 5 (capped)", len(factors))
	}
	if factors[0].Name != "HRV unter Baseline" {
		t.Fatalf("top factor = %q, want HRV", factors[0].Name)
	}
	for i := 1; i < len(factors); i++ {
		if factors[i].Contribution > factors[i-1].Contribution {
			t.Fatalf("factors not sorted: %v before %v", factors[i-1], factors[i])
		}
	}
}

func TestTopFactors_ThresholdGates(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig(), DefaultThresholds())

	t.Run("detraining acwr is not a factor", func(t *testing.T) {
		features := testFeatures()
		features.ACWR = fptr(0.5)
		factors := scorer.topFactors(features, PlannedSessionInput{Sport: domain.SportBike})
		for _, f := range factors {
			if f.Name == "Hohe akute Belastung" {
				t.Fatalf("detraining ACWR must not surface as an acute-load factor")
			}
		}
	})

	t.Run("target soreness below 5 is not a factor", func(t *testing.T) {
		features := testFeatures()
		features.SorenessMap = map[domain.MuscleRegion]int{domain.MuscleQuads: 4}
		factors := scorer.topFactors(features, PlannedSessionInput{Sport: domain.SportRun})
		for _, f := range factors {
			if f.Name == "Muskelkater in Zielmuskulatur" {
				t.Fatalf("soreness 4 must not surface as a factor")
			}
		}
	})
}

func TestEvaluate_PoorRecoveryBikeEndToEnd(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig(), DefaultThresholds())
	features := testFeatures()
	features.HRVZ = fptr(-1.8)
	features.RHRDelta = fptr(6.0)
	features.MissingHRV = false
	features.MissingRHR = false
	features.MissingSleep = false

	tempo := domain.ZoneTempo
	verdict := scorer.Evaluate(features, PlannedSessionInput{
		Sport:           domain.SportBike,
		DurationMinutes: 60,
		Intensity:       &tempo,
	})

	// HRV severe 25 + RHR moderate 15 = 40; bike+tempo multiplier 1.05 -> 42.
	if verdict.RiskScore != 42 {
		t.Fatalf("score = %d, want 42", verdict.RiskScore)
	}
	if verdict.RiskLevel != domain.RiskYellow {
		t.Fatalf("level = %s, want yellow", verdict.RiskLevel)
	}
	if len(verdict.Safety.TriggeredRules) != 1 || verdict.Safety.TriggeredRules[0].RuleID != "R3" {
		t.Fatalf("triggered rules = %v, want [R3]", verdict.Safety.TriggeredRules)
	}

	recA := verdict.RecommendationA
	if !recA.IsOriginalPlanModified {
		t.Fatalf("yellow rec A must modify the plan")
	}
	if recA.Sport != domain.SportBike {
		t.Fatalf("bike is not blocked; rec A sport = %s", recA.Sport)
	}
	if recA.DurationMinutes != 48 {
		t.Fatalf("rec A duration = %d, want 48", recA.DurationMinutes)
	}
	if recA.Intensity == nil || *recA.Intensity != domain.ZoneZ2 {
		t.Fatalf("rec A intensity = %v, want Z2", recA.Intensity)
	}

	if !strings.Contains(verdict.ExplanationText, "Hauptfaktoren:") {
		t.Fatalf("explanation must list main factors: %q", verdict.ExplanationText)
	}
	if !strings.Contains(verdict.ExplanationText, "HRV unter Baseline") {
		t.Fatalf("explanation must name the HRV factor: %q", verdict.ExplanationText)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	scorer := NewScorer(DefaultScoringConfig(), DefaultThresholds())
	features := testFeatures()
	features.HRVZ = fptr(-1.2)
	features.PainScore = 2

	plan := PlannedSessionInput{Sport: domain.SportRun, DurationMinutes: 45}
	first := scorer.Evaluate(features, plan)
	second := scorer.Evaluate(features, plan)

	if first.RiskScore != second.RiskScore || first.RiskLevel != second.RiskLevel {
		t.Fatalf("identical input must give identical verdicts: (%d, %s) vs (%d, %s)",
			first.RiskScore, first.RiskLevel, second.RiskScore, second.RiskLevel)
	}
	if first.ExplanationText != second.ExplanationText {
		t.Fatalf("explanations differ")
	}
}

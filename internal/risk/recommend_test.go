package risk

import (
	"strings"
	"testing"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
)

func TestGreenRecommendations_KeepPlan(t *testing.T) {
	z2 := domain.ZoneZ2
	plan := PlannedSessionInput{Sport: domain.SportRun, DurationMinutes: 60, Intensity: &z2}

	engine := NewRecommendationEngine(domain.RiskGreen, SafetyEvaluation{})
	recA, recB := engine.Generate(plan)

	if recA.Sport != domain.SportRun || recA.DurationMinutes != 60 {
		t.Fatalf("rec A must keep the plan, got %s %dmin", recA.Sport, recA.DurationMinutes)
	}
	if recA.IsOriginalPlanModified {
		t.Fatalf("green rec A must not be marked modified")
	}
	if recB.Sport != domain.SportBike {
		t.Fatalf("rec B sport = %s, want bike (run alternative)", recB.Sport)
	}
	if recB.DurationMinutes != 60 {
		t.Fatalf("rec B duration = %d, want the planned 60", recB.DurationMinutes)
	}
}

func TestGreenRecommendations_GymPlanAlternative(t *testing.T) {
	split := domain.SplitPush
	engine := NewRecommendationEngine(domain.RiskGreen, SafetyEvaluation{})
	recA, recB := engine.Generate(PlannedSessionInput{Sport: domain.SportGym, DurationMinutes: 40, GymSplit: &split})

	if recA.GymSplit == nil || *recA.GymSplit != domain.SplitPush {
		t.Fatalf("rec A must keep the planned split, got %v", recA.GymSplit)
	}
	// Gym's table alternative is bike, so rec B carries no split.
	if recB.Sport != domain.SportBike {
		t.Fatalf("gym alternative = %s, want bike", recB.Sport)
	}
	if recB.GymSplit != nil {
		t.Fatalf("non-gym alternative must not carry a split")
	}
}

func TestGreenRecommendations_BlockedSportFallsThroughToYellow(t *testing.T) {
	z2 := domain.ZoneZ2
	plan := PlannedSessionInput{Sport: domain.SportRun, DurationMinutes: 60, Intensity: &z2}
	eval := SafetyEvaluation{BlockedSports: []domain.SportType{domain.SportRun}}

	engine := NewRecommendationEngine(domain.RiskGreen, eval)
	recA, _ := engine.Generate(plan)

	if recA.Sport == domain.SportRun {
		t.Fatalf("blocked sport must be substituted even at green")
	}
	if !recA.IsOriginalPlanModified {
		t.Fatalf("substitution must be marked as a modification")
	}
	if recA.DurationMinutes != 48 {
		t.Fatalf("substituted plan duration = %d, want 48", recA.DurationMinutes)
	}
}

func TestYellowRecommendations_DefaultScalesDown(t *testing.T) {
	tempo := domain.ZoneTempo
	plan := PlannedSessionInput{Sport: domain.SportBike, DurationMinutes: 90, Intensity: &tempo}

	engine := NewRecommendationEngine(domain.RiskYellow, SafetyEvaluation{})
	recA, recB := engine.Generate(plan)

	if recA.DurationMinutes != 72 {
		t.Fatalf("rec A duration = %d, want 72 (80%%)", recA.DurationMinutes)
	}
	if recA.Intensity == nil || *recA.Intensity != domain.ZoneZ2 {
		t.Fatalf("rec A intensity = %v, want Z2 (one tier down)", recA.Intensity)
	}
	if !recA.IsOriginalPlanModified {
		t.Fatalf("yellow rec A must be marked modified")
	}

	if recB.Sport != domain.SportBike || recB.DurationMinutes != 45 {
		t.Fatalf("rec B = %s %dmin, want bike 45min", recB.Sport, recB.DurationMinutes)
	}
	if recB.Intensity == nil || *recB.Intensity != domain.ZoneZ2 {
		t.Fatalf("rec B intensity = %v, want Z2", recB.Intensity)
	}
}

func TestYellowRecommendations_BlockedSportSubstituted(t *testing.T) {
	z2 := domain.ZoneZ2
	plan := PlannedSessionInput{Sport: domain.SportRun, DurationMinutes: 60, Intensity: &z2}
	eval := SafetyEvaluation{BlockedSports: []domain.SportType{domain.SportRun, domain.SportFootball, domain.SportHyrox}}

	engine := NewRecommendationEngine(domain.RiskYellow, eval)
	recA, _ := engine.Generate(plan)

	if recA.Sport != domain.SportBike {
		t.Fatalf("rec A sport = %s, want bike (first unblocked low-impact)", recA.Sport)
	}
	if recA.DurationMinutes != 48 {
		t.Fatalf("rec A duration = %d, want 48", recA.DurationMinutes)
	}
	if !strings.Contains(recA.Reason, "Bike") || !strings.Contains(recA.Reason, "Run") {
		t.Fatalf("reason must name both sports: %q", recA.Reason)
	}
}

func TestYellowRecommendations_SoreSplitSwappedKeepingDuration(t *testing.T) {
	legs := domain.SplitLegs
	tempo := domain.ZoneTempo
	plan := PlannedSessionInput{Sport: domain.SportGym, DurationMinutes: 75, Intensity: &tempo, GymSplit: &legs}
	eval := SafetyEvaluation{BlockedMuscleRegions: []domain.MuscleRegion{domain.MuscleQuads}}

	engine := NewRecommendationEngine(domain.RiskYellow, eval)
	recA, recB := engine.Generate(plan)

	if recA.Sport != domain.SportGym {
		t.Fatalf("rec A must stay in the gym, got %s", recA.Sport)
	}
	if recA.GymSplit == nil || *recA.GymSplit != domain.SplitPush {
		t.Fatalf("rec A split = %v, want push (first split avoiding quads)", recA.GymSplit)
	}
	if recA.DurationMinutes != 75 {
		t.Fatalf("swapping the split must keep the duration, got %d", recA.DurationMinutes)
	}
	if recA.Intensity == nil || *recA.Intensity != domain.ZoneZ2 {
		t.Fatalf("rec A intensity = %v, want Z2", recA.Intensity)
	}
	if !strings.Contains(recA.Reason, "Push-Split") {
		t.Fatalf("reason must name the substituted split: %q", recA.Reason)
	}

	if recB.Sport != domain.SportBike {
		t.Fatalf("rec B sport = %s, want bike", recB.Sport)
	}
}

func TestYellowRecommendations_GymFallbackGetsLightLabel(t *testing.T) {
	z2 := domain.ZoneZ2
	plan := PlannedSessionInput{Sport: domain.SportRun, DurationMinutes: 60, Intensity: &z2}
	eval := SafetyEvaluation{BlockedSports: []domain.SportType{
		domain.SportRun, domain.SportBike, domain.SportSwim, domain.SportWalk,
	}}

	engine := NewRecommendationEngine(domain.RiskYellow, eval)
	_, recB := engine.Generate(plan)

	if recB.Sport != domain.SportGym {
		t.Fatalf("rec B sport = %s, want gym (only unblocked option)", recB.Sport)
	}
	if recB.GymSplit == nil {
		t.Fatalf("gym fallback must carry a split")
	}
	if recB.IntensityLevel == nil || *recB.IntensityLevel != "light" {
		t.Fatalf("gym fallback must be labelled light, got %v", recB.IntensityLevel)
	}
}

func TestRedRecommendations_ActiveRecoveryOnly(t *testing.T) {
	vo2 := domain.ZoneVO2
	plan := PlannedSessionInput{Sport: domain.SportRun, DurationMinutes: 120, Intensity: &vo2}

	engine := NewRecommendationEngine(domain.RiskRed, SafetyEvaluation{})
	recA, recB := engine.Generate(plan)

	if recA.Sport != domain.SportWalk || recA.DurationMinutes != 30 {
		t.Fatalf("rec A = %s %dmin, want walk 30min", recA.Sport, recA.DurationMinutes)
	}
	if recA.Intensity == nil || *recA.Intensity != domain.ZoneZ1 {
		t.Fatalf("rec A intensity = %v, want Z1", recA.Intensity)
	}
	if recB.Sport != domain.SportSwim || recB.DurationMinutes != 20 {
		t.Fatalf("rec B = %s %dmin, want swim 20min", recB.Sport, recB.DurationMinutes)
	}
}

func TestReduceIntensity_FloorIsIdempotent(t *testing.T) {
	if got := domain.ReduceIntensity(domain.ZoneZ1); got != domain.ZoneZ1 {
		t.Fatalf("reducing Z1 = %s, want Z1", got)
	}
	if got := domain.ReduceIntensity(domain.ReduceIntensity(domain.ZoneZ2)); got != domain.ZoneZ1 {
		t.Fatalf("double reduction of Z2 = %s, want Z1", got)
	}
	if got := domain.ReduceIntensity(domain.ZoneMax); got != domain.ZoneVO2 {
		t.Fatalf("reducing max = %s, want VO2", got)
	}
}

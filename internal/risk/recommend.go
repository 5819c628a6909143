package risk

import (
	"fmt"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
	"github.com/janisoldani/Injury-Risk-Detector/internal/pkg/pointers"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Recommendation is one actionable training suggestion. A pair is produced
// per verdict: A stays close to the original plan, B is an alternative.
type Recommendation struct {
	Sport                  domain.SportType      `json:"sport"`
	DurationMinutes        int                   `json:"duration_minutes"`
	Intensity              *domain.IntensityZone `json:"intensity,omitempty"`
	GymSplit               *domain.GymSplit      `json:"gym_split,omitempty"`
	IntensityLevel         *string               `json:"intensity_level,omitempty"`
	Reason                 string                `json:"reason"`
	IsOriginalPlanModified bool                  `json:"is_original_plan_modified"`
}

// RecommendationEngine turns a risk level and safety evaluation into the
// two suggestions. Stateless per call; the three level branches share no
// transitions.
type RecommendationEngine struct {
	level  domain.RiskLevel
	safety SafetyEvaluation
	titled cases.Caser
}

func NewRecommendationEngine(level domain.RiskLevel, safety SafetyEvaluation) *RecommendationEngine {
	return &RecommendationEngine{
		level:  level,
		safety: safety,
		titled: cases.Title(language.German),
	}
}

func (e *RecommendationEngine) Generate(plan PlannedSessionInput) (Recommendation, Recommendation) {
	switch e.level {
	case domain.RiskGreen:
		return e.greenRecommendations(plan)
	case domain.RiskYellow:
		return e.yellowRecommendations(plan)
	default:
		return e.redRecommendations()
	}
}

// greenRecommendations keeps the plan and offers a variety alternative.
// A blocked sport at green level (a rule triggered without forcing an
// override) still falls through to the yellow handling.
func (e *RecommendationEngine) greenRecommendations(plan PlannedSessionInput) (Recommendation, Recommendation) {
	if e.safety.SportBlocked(plan.Sport) {
		return e.yellowRecommendations(plan)
	}

	recA := Recommendation{
		Sport:           plan.Sport,
		DurationMinutes: plan.DurationMinutes,
		Intensity:       plan.Intensity,
		GymSplit:        plan.GymSplit,
		Reason:          "Training wie geplant möglich. Gute Erholung und niedrige Belastungsindikatoren.",
	}

	altSport := e.alternativeSport(plan.Sport)
	recB := Recommendation{
		Sport:           altSport,
		DurationMinutes: plan.DurationMinutes,
		Reason:          fmt.Sprintf("Alternative: %s als Abwechslung.", e.titled.String(string(altSport))),
	}
	if altSport == domain.SportGym {
		split := domain.AlternativeGymSplit(plan.GymSplit)
		recB.GymSplit = &split
	} else {
		recB.Intensity = plan.Intensity
	}

	return recA, recB
}

// yellowRecommendations scales the plan down and offers a low-impact
// fallback.
func (e *RecommendationEngine) yellowRecommendations(plan PlannedSessionInput) (Recommendation, Recommendation) {
	reducedIntensity := e.reduceIntensity(plan.Intensity)

	var recA Recommendation
	switch {
	case e.safety.SportBlocked(plan.Sport):
		altSport := e.lowImpactSport()
		recA = Recommendation{
			Sport:                  altSport,
			DurationMinutes:        int(float64(plan.DurationMinutes) * 0.8),
			Intensity:              &reducedIntensity,
			Reason:                 fmt.Sprintf("Originalplan angepasst: %s statt %s aufgrund erhöhter Belastungsindikatoren.", e.titled.String(string(altSport)), e.titled.String(string(plan.Sport))),
			IsOriginalPlanModified: true,
		}
	case plan.Sport == domain.SportGym && plan.GymSplit != nil && e.splitUsesBlockedMuscles(*plan.GymSplit):
		// Swap the split instead of shortening the session; the soreness
		// concern is about which muscles get loaded, not how long.
		safeSplit := e.safeGymSplit()
		recA = Recommendation{
			Sport:                  plan.Sport,
			DurationMinutes:        plan.DurationMinutes,
			Intensity:              &reducedIntensity,
			GymSplit:               &safeSplit,
			Reason:                 fmt.Sprintf("Originalplan angepasst: %s-Split statt %s-Split wegen Muskelkater in der Zielmuskulatur.", e.titled.String(string(safeSplit)), e.titled.String(string(*plan.GymSplit))),
			IsOriginalPlanModified: true,
		}
	default:
		recA = Recommendation{
			Sport:                  plan.Sport,
			DurationMinutes:        int(float64(plan.DurationMinutes) * 0.8),
			Intensity:              &reducedIntensity,
			GymSplit:               plan.GymSplit,
			Reason:                 "Originalplan angepasst: Reduzierte Dauer und Intensität aufgrund erhöhter Belastungsindikatoren.",
			IsOriginalPlanModified: true,
		}
	}

	lowImpact := e.lowImpactSport()
	recB := Recommendation{
		Sport:           lowImpact,
		DurationMinutes: 45,
		Reason:          fmt.Sprintf("Schonende Alternative: %s mit niedriger Intensität.", e.titled.String(string(lowImpact))),
	}
	if lowImpact == domain.SportGym {
		split := e.safeGymSplit()
		recB.GymSplit = &split
		recB.IntensityLevel = pointers.String("light")
	} else {
		recB.Intensity = pointers.Ptr(domain.ZoneZ2)
	}

	return recA, recB
}

// redRecommendations ignores the plan and suggests active recovery only.
func (e *RecommendationEngine) redRecommendations() (Recommendation, Recommendation) {
	recA := Recommendation{
		Sport:           domain.SportWalk,
		DurationMinutes: 30,
		Intensity:       pointers.Ptr(domain.ZoneZ1),
		Reason:          "Erholung empfohlen. Leichter Spaziergang falls schmerzfrei möglich.",
	}
	recB := Recommendation{
		Sport:           domain.SportSwim,
		DurationMinutes: 20,
		Intensity:       pointers.Ptr(domain.ZoneZ1),
		Reason:          "Alternative: Lockeres Schwimmen oder Mobility-Übungen zur aktiven Erholung.",
	}
	return recA, recB
}

func (e *RecommendationEngine) reduceIntensity(intensity *domain.IntensityZone) domain.IntensityZone {
	if intensity == nil {
		return domain.ZoneZ2
	}
	return domain.ReduceIntensity(*intensity)
}

// alternativeSport consults the static substitution table and falls back to
// the first non-blocked low-impact option when the substitute is itself
// blocked.
func (e *RecommendationEngine) alternativeSport(current domain.SportType) domain.SportType {
	alt := domain.AlternativeSport(current)
	if !e.safety.SportBlocked(alt) {
		return alt
	}
	for _, sport := range []domain.SportType{domain.SportBike, domain.SportSwim, domain.SportWalk} {
		if !e.safety.SportBlocked(sport) {
			return sport
		}
	}
	return alt
}

func (e *RecommendationEngine) lowImpactSport() domain.SportType {
	for _, sport := range []domain.SportType{domain.SportBike, domain.SportSwim, domain.SportWalk, domain.SportGym} {
		if !e.safety.SportBlocked(sport) {
			return sport
		}
	}
	return domain.SportWalk
}

// safeGymSplit picks the first split whose muscles are all unblocked.
func (e *RecommendationEngine) safeGymSplit() domain.GymSplit {
	for _, split := range []domain.GymSplit{domain.SplitPush, domain.SplitPull, domain.SplitUpper, domain.SplitLegs} {
		if !e.splitUsesBlockedMuscles(split) {
			return split
		}
	}
	return domain.SplitUpper
}

func (e *RecommendationEngine) splitUsesBlockedMuscles(split domain.GymSplit) bool {
	blocked := map[domain.MuscleRegion]bool{}
	for _, m := range e.safety.BlockedMuscleRegions {
		blocked[m] = true
	}
	for _, muscle := range domain.TargetMuscles(domain.SportGym, &split) {
		if blocked[muscle] {
			return true
		}
	}
	return false
}

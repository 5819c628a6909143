package risk

import (
	"fmt"
	"strings"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
)

// Safety rules R0-R4 are deterministic, non-negotiable overrides. They run
// independently of the heuristic score and can only ever make the verdict
// more conservative.

type SafetyRuleResult struct {
	RuleID               string                `json:"rule_id"`
	RuleName             string                `json:"rule_name"`
	Description          string                `json:"description"`
	Triggered            bool                  `json:"triggered"`
	BlockedSports        []domain.SportType    `json:"blocked_sports,omitempty"`
	MaxAllowedIntensity  *domain.IntensityZone `json:"max_allowed_intensity,omitempty"`
	BlockedMuscleRegions []domain.MuscleRegion `json:"blocked_muscle_regions,omitempty"`
	OverrideRiskLevel    *domain.RiskLevel     `json:"override_risk_level,omitempty"`
}

type SafetyEvaluation struct {
	TriggeredRules       []SafetyRuleResult
	MaxAllowedIntensity  *domain.IntensityZone
	BlockedSports        []domain.SportType
	BlockedMuscleRegions []domain.MuscleRegion
	OverrideRiskLevel    *domain.RiskLevel
}

func (e *SafetyEvaluation) AnyTriggered() bool {
	return len(e.TriggeredRules) > 0
}

func (e *SafetyEvaluation) SportBlocked(sport domain.SportType) bool {
	for _, s := range e.BlockedSports {
		if s == sport {
			return true
		}
	}
	return false
}

// SafetyInputs carries the subset of evaluation state the rules inspect.
type SafetyInputs struct {
	PainScore        int
	Swelling         bool
	SorenessMap      map[domain.MuscleRegion]int
	PlannedSport     domain.SportType
	PlannedGymSplit  *domain.GymSplit
	PlannedIntensity *domain.IntensityZone
	HRVZ             *float64
	RHRDelta         *float64
	HardSessionToday bool
}

// EvaluateR0AcutePain: pain at or above the red-flag threshold, or swelling.
// Unconditional safety floor; forces RED and blocks everything except walking.
func EvaluateR0AcutePain(cfg SafetyRulesConfig, painScore int, swelling bool) SafetyRuleResult {
	result := SafetyRuleResult{
		RuleID:   "R0",
		RuleName: "Acute Red Flags",
	}

	swellingTriggers := swelling && cfg.R0SwellingTriggers
	if painScore >= cfg.R0PainThreshold || swellingTriggers {
		result.Triggered = true
		red := domain.RiskRed
		z1 := domain.ZoneZ1
		result.OverrideRiskLevel = &red
		result.MaxAllowedIntensity = &z1
		for _, s := range domain.AllSportTypes() {
			if s != domain.SportWalk {
				result.BlockedSports = append(result.BlockedSports, s)
			}
		}
		if swellingTriggers {
			result.Description = "Schwellung festgestellt. Ärztliche Abklärung empfohlen. Nur leichte Bewegung (Spaziergang) falls schmerzfrei."
		} else {
			result.Description = fmt.Sprintf("Schmerz sehr hoch (%d/10). Ärztliche Abklärung empfohlen. Nur leichte Bewegung (Spaziergang) falls schmerzfrei.", painScore)
		}
	}

	return result
}

// EvaluateR1ModeratePain: pain in the moderate band blocks impact sports.
// The YELLOW override applies only when the plan itself is an impact sport.
func EvaluateR1ModeratePain(cfg SafetyRulesConfig, painScore int, plannedSport domain.SportType) SafetyRuleResult {
	result := SafetyRuleResult{
		RuleID:   "R1",
		RuleName: "Moderate Pain - No Impact Sports",
	}

	if painScore >= cfg.R1PainMin && painScore <= cfg.R1PainMax {
		result.Triggered = true
		result.BlockedSports = append(result.BlockedSports, domain.HighImpactSports...)
		z2 := domain.ZoneZ2
		result.MaxAllowedIntensity = &z2
		result.Description = fmt.Sprintf("Moderater Schmerz (%d/10). Kein Impact-Sport empfohlen. Alternativen: Bike Z1-Z2, Schwimmen locker, Mobility.", painScore)

		for _, s := range domain.HighImpactSports {
			if plannedSport == s {
				yellow := domain.RiskYellow
				result.OverrideRiskLevel = &yellow
				break
			}
		}
	}

	return result
}

// EvaluateR2DOMS: strong soreness in a muscle group the planned session
// targets. Records blocked muscles; the recommender steers content away
// from them.
func EvaluateR2DOMS(cfg SafetyRulesConfig, sorenessMap map[domain.MuscleRegion]int, plannedSport domain.SportType, plannedGymSplit *domain.GymSplit) SafetyRuleResult {
	result := SafetyRuleResult{
		RuleID:   "R2",
		RuleName: "DOMS - Muscle Group Protection",
	}

	for _, muscle := range domain.TargetMuscles(plannedSport, plannedGymSplit) {
		if sorenessMap[muscle] >= cfg.R2DOMSThreshold {
			result.BlockedMuscleRegions = append(result.BlockedMuscleRegions, muscle)
		}
	}

	if len(result.BlockedMuscleRegions) > 0 {
		result.Triggered = true
		names := make([]string, 0, len(result.BlockedMuscleRegions))
		for _, m := range result.BlockedMuscleRegions {
			names = append(names, string(m))
		}
		result.Description = fmt.Sprintf("Starker Muskelkater in %s. Keine harte Belastung dieser Muskelgruppen empfohlen.", strings.Join(names, ", "))
		yellow := domain.RiskYellow
		result.OverrideRiskLevel = &yellow
	}

	return result
}

// EvaluateR3RecoveryMarkers: HRV clearly below baseline and/or resting HR
// elevated. Both poor caps at Z2 with a YELLOW override; a single marker
// caps one zone higher with no override. Absent values never trigger.
func EvaluateR3RecoveryMarkers(cfg SafetyRulesConfig, hrvZ, rhrDelta *float64) SafetyRuleResult {
	result := SafetyRuleResult{
		RuleID:   "R3",
		RuleName: "Poor Recovery Markers",
	}

	hrvPoor := hrvZ != nil && *hrvZ < cfg.R3HRVZThreshold
	rhrElevated := rhrDelta != nil && *rhrDelta > cfg.R3RHRDeltaThreshold

	switch {
	case hrvPoor && rhrElevated:
		result.Triggered = true
		z2 := domain.ZoneZ2
		result.MaxAllowedIntensity = &z2
		result.Description = "HRV deutlich unter Baseline und Ruhepuls erhöht. Keine hochintensive Belastung empfohlen. Max. Zone 2."
		yellow := domain.RiskYellow
		result.OverrideRiskLevel = &yellow
	case hrvPoor:
		result.Triggered = true
		tempo := domain.ZoneTempo
		result.MaxAllowedIntensity = &tempo
		result.Description = "HRV deutlich unter Baseline. Hochintensive Belastung mit Vorsicht."
	case rhrElevated:
		result.Triggered = true
		tempo := domain.ZoneTempo
		result.MaxAllowedIntensity = &tempo
		result.Description = "Ruhepuls erhöht. Hochintensive Belastung mit Vorsicht."
	}

	return result
}

// EvaluateR4TwoADay: a hard session already happened today and the new plan
// is itself hard.
func EvaluateR4TwoADay(hardSessionToday bool, plannedIntensity *domain.IntensityZone) SafetyRuleResult {
	result := SafetyRuleResult{
		RuleID:   "R4",
		RuleName: "Two-a-Day Limit",
	}

	if hardSessionToday && plannedIntensity != nil && domain.IsHardIntensity(*plannedIntensity) {
		result.Triggered = true
		z2 := domain.ZoneZ2
		result.MaxAllowedIntensity = &z2
		result.Description = "Bereits eine harte Einheit heute absolviert. Zweite Einheit sollte leicht sein (max. Zone 2) oder eine andere Sportart."
		yellow := domain.RiskYellow
		result.OverrideRiskLevel = &yellow
	}

	return result
}

// EvaluateSafetyRules runs R0-R4 and folds the triggered results. The fold
// is commutative: unions for blocked sports/muscles, most restrictive
// intensity cap, highest override level. Rule order in TriggeredRules is
// evaluation order R0..R4.
func EvaluateSafetyRules(cfg SafetyRulesConfig, in SafetyInputs) SafetyEvaluation {
	var triggered []SafetyRuleResult

	for _, result := range []SafetyRuleResult{
		EvaluateR0AcutePain(cfg, in.PainScore, in.Swelling),
		EvaluateR1ModeratePain(cfg, in.PainScore, in.PlannedSport),
		EvaluateR2DOMS(cfg, in.SorenessMap, in.PlannedSport, in.PlannedGymSplit),
		EvaluateR3RecoveryMarkers(cfg, in.HRVZ, in.RHRDelta),
		EvaluateR4TwoADay(in.HardSessionToday, in.PlannedIntensity),
	} {
		if result.Triggered {
			triggered = append(triggered, result)
		}
	}

	eval := SafetyEvaluation{TriggeredRules: triggered}

	seenSports := map[domain.SportType]bool{}
	seenMuscles := map[domain.MuscleRegion]bool{}
	for _, rule := range triggered {
		for _, s := range rule.BlockedSports {
			if !seenSports[s] {
				seenSports[s] = true
				eval.BlockedSports = append(eval.BlockedSports, s)
			}
		}
		for _, m := range rule.BlockedMuscleRegions {
			if !seenMuscles[m] {
				seenMuscles[m] = true
				eval.BlockedMuscleRegions = append(eval.BlockedMuscleRegions, m)
			}
		}
		if rule.MaxAllowedIntensity != nil {
			if eval.MaxAllowedIntensity == nil ||
				domain.IntensityOrder(*rule.MaxAllowedIntensity) < domain.IntensityOrder(*eval.MaxAllowedIntensity) {
				eval.MaxAllowedIntensity = rule.MaxAllowedIntensity
			}
		}
		if rule.OverrideRiskLevel != nil {
			if eval.OverrideRiskLevel == nil ||
				domain.RiskOrder(*rule.OverrideRiskLevel) > domain.RiskOrder(*eval.OverrideRiskLevel) {
				eval.OverrideRiskLevel = rule.OverrideRiskLevel
			}
		}
	}

	return eval
}

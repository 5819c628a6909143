package risk

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
)

// ModelVersion tags every verdict until a trained model replaces the
// heuristic.
const ModelVersion = "heuristic_v1"

// PlannedSessionInput describes the session under evaluation. Sport, split
// and intensity strings must already have passed enum validation.
type PlannedSessionInput struct {
	Sport           domain.SportType
	DurationMinutes int
	Intensity       *domain.IntensityZone
	GymSplit        *domain.GymSplit
}

// Thresholds are the two score cutoffs separating the risk bands:
// score <= GreenMax is GREEN, score <= YellowMax is YELLOW, above is RED.
type Thresholds struct {
	GreenMax  int
	YellowMax int
}

func DefaultThresholds() Thresholds {
	return Thresholds{GreenMax: 35, YellowMax: 60}
}

// LevelForScore classifies a final score against the cutoffs.
func (t Thresholds) LevelForScore(score int) domain.RiskLevel {
	switch {
	case score <= t.GreenMax:
		return domain.RiskGreen
	case score <= t.YellowMax:
		return domain.RiskYellow
	default:
		return domain.RiskRed
	}
}

// RiskFactor is one ranked contributor to the final score.
type RiskFactor struct {
	Name         string  `json:"name"`
	Contribution float64 `json:"contribution"`
	Description  string  `json:"description"`
	Value        float64 `json:"value"`
}

// ScoreBreakdown itemizes the additive signal contributions before the
// impact/intensity multiplier is applied. Returned alongside the verdict
// for transparency; never persisted.
type ScoreBreakdown struct {
	HRV             float64 `json:"hrv"`
	RHR             float64 `json:"rhr"`
	Sleep           float64 `json:"sleep"`
	ACWR            float64 `json:"acwr"`
	Pain            float64 `json:"pain"`
	PainTrend       float64 `json:"pain_trend"`
	TargetSoreness  float64 `json:"target_soreness"`
	GeneralSoreness float64 `json:"general_soreness"`
	Readiness       float64 `json:"readiness"`
	Fatigue         float64 `json:"fatigue"`
	ConsecutiveDays float64 `json:"consecutive_days"`
	MissingData     float64 `json:"missing_data"`

	BaseScore  float64 `json:"base_score"`
	Multiplier float64 `json:"multiplier"`
	FinalScore int     `json:"final_score"`
}

// Verdict is the complete result of one evaluation.
type Verdict struct {
	RiskScore       int
	RiskLevel       domain.RiskLevel
	TopFactors      []RiskFactor
	ExplanationText string
	Safety          SafetyEvaluation
	RecommendationA Recommendation
	RecommendationB Recommendation
	ModelVersion    string
	Breakdown       ScoreBreakdown
	Features        *UserFeatures
}

// Scorer combines the safety rules with the heuristic weighted score into a
// final verdict. Pure computation over an already-built feature snapshot.
type Scorer struct {
	cfg        *ScoringConfig
	thresholds Thresholds
}

func NewScorer(cfg *ScoringConfig, thresholds Thresholds) *Scorer {
	return &Scorer{cfg: cfg, thresholds: thresholds}
}

// Evaluate runs the full pipeline: safety rules, heuristic score, override
// application, factor ranking, explanation and recommendations.
func (s *Scorer) Evaluate(features *UserFeatures, plan PlannedSessionInput) *Verdict {
	safetyEval := EvaluateSafetyRules(s.cfg.SafetyRules, SafetyInputs{
		PainScore:        features.PainScore,
		Swelling:         features.Swelling,
		SorenessMap:      features.SorenessMap,
		PlannedSport:     plan.Sport,
		PlannedGymSplit:  plan.GymSplit,
		PlannedIntensity: plan.Intensity,
		HRVZ:             features.HRVZ,
		RHRDelta:         features.RHRDelta,
		HardSessionToday: features.HardSessionToday,
	})

	breakdown := s.heuristicScore(features, plan)
	riskScore, riskLevel := s.determineRisk(breakdown.FinalScore, safetyEval)

	topFactors := s.topFactors(features, plan)
	explanation := s.explanation(riskLevel, safetyEval, topFactors)

	engine := NewRecommendationEngine(riskLevel, safetyEval)
	recA, recB := engine.Generate(plan)

	return &Verdict{
		RiskScore:       riskScore,
		RiskLevel:       riskLevel,
		TopFactors:      topFactors,
		ExplanationText: explanation,
		Safety:          safetyEval,
		RecommendationA: recA,
		RecommendationB: recB,
		ModelVersion:    ModelVersion,
		Breakdown:       breakdown,
		Features:        features,
	}
}

// heuristicScore computes the weighted point sum across all signal
// categories, amplifies it by the impact/intensity multiplier, adds the
// missing-data penalty and clamps to [0, 100].
func (s *Scorer) heuristicScore(features *UserFeatures, plan PlannedSessionInput) ScoreBreakdown {
	cfg := s.cfg
	var b ScoreBreakdown

	b.HRV = float64(EvaluateLowerWorse(features.HRVZ,
		TierThresholds{Severe: cfg.HRV.SevereThreshold, Moderate: cfg.HRV.ModerateThreshold, Mild: cfg.HRV.MildThreshold},
		TierPoints{Severe: cfg.HRV.SeverePoints, Moderate: cfg.HRV.ModeratePoints, Mild: cfg.HRV.MildPoints},
	).Points)

	b.RHR = float64(EvaluateUpperWorse(features.RHRDelta,
		TierThresholds{Severe: cfg.RHR.SevereThreshold, Moderate: cfg.RHR.ModerateThreshold, Mild: cfg.RHR.MildThreshold},
		TierPoints{Severe: cfg.RHR.SeverePoints, Moderate: cfg.RHR.ModeratePoints, Mild: cfg.RHR.MildPoints},
	).Points)

	b.Sleep = float64(EvaluateLowerWorse(features.SleepDelta,
		TierThresholds{Severe: cfg.Sleep.SevereThreshold, Moderate: cfg.Sleep.ModerateThreshold, Mild: cfg.Sleep.MildThreshold},
		TierPoints{Severe: cfg.Sleep.SeverePoints, Moderate: cfg.Sleep.ModeratePoints, Mild: cfg.Sleep.MildPoints},
	).Points)

	acwrPoints, _ := evaluateACWR(cfg.ACWR, features.ACWR)
	b.ACWR = float64(acwrPoints)

	b.Pain = float64(features.PainScore * cfg.Pain.PointsPerLevel)
	b.PainTrend = float64(EvaluateUpperWorse2(features.PainTrend3d,
		cfg.Pain.WorseningSevereThreshold, cfg.Pain.WorseningModerateThreshold,
		cfg.Pain.WorseningSeverePoints, cfg.Pain.WorseningModeratePoints,
	).Points)

	targetSoreness := TargetMuscleSoreness(features.SorenessMap, plan.Sport, plan.GymSplit)
	b.TargetSoreness = float64(targetSoreness * cfg.Soreness.TargetMusclePointsPerLevel)
	b.GeneralSoreness = float64(features.MaxSoreness) * cfg.Soreness.GeneralPointsPerLevel

	b.Readiness = float64(EvaluateLowerWorse2(float64(features.Readiness),
		float64(cfg.Readiness.PoorThreshold), float64(cfg.Readiness.ModerateThreshold),
		cfg.Readiness.PoorPoints, cfg.Readiness.ModeratePoints,
	).Points)

	b.Fatigue = float64(EvaluateUpperWorse2(float64(features.Fatigue),
		float64(cfg.Fatigue.SevereThreshold), float64(cfg.Fatigue.ModerateThreshold),
		cfg.Fatigue.SeverePoints, cfg.Fatigue.ModeratePoints,
	).Points)

	b.ConsecutiveDays = float64(EvaluateAtLeast(float64(features.ConsecutiveTrainingDays),
		TierThresholds{
			Severe:   float64(cfg.TrainingLoad.ConsecutiveSevereThreshold),
			Moderate: float64(cfg.TrainingLoad.ConsecutiveModerateThreshold),
			Mild:     float64(cfg.TrainingLoad.ConsecutiveMildThreshold),
		},
		TierPoints{
			Severe:   cfg.TrainingLoad.ConsecutiveSeverePoints,
			Moderate: cfg.TrainingLoad.ConsecutiveModeratePoints,
			Mild:     cfg.TrainingLoad.ConsecutiveMildPoints,
		},
	).Points)

	b.BaseScore = b.HRV + b.RHR + b.Sleep + b.ACWR + b.Pain + b.PainTrend +
		b.TargetSoreness + b.GeneralSoreness + b.Readiness + b.Fatigue + b.ConsecutiveDays

	impactScore := domain.SportImpactScore(plan.Sport)
	intensityScore := domain.IntensityScore(plan.Intensity)
	b.Multiplier = 1.0 + float64(impactScore+intensityScore-cfg.IntensityMultiplier.NeutralBase)*cfg.IntensityMultiplier.ScalingFactor

	missingCount := 0
	for _, missing := range []bool{features.MissingHRV, features.MissingSleep, features.MissingRHR} {
		if missing {
			missingCount++
		}
	}
	b.MissingData = float64(missingCount * cfg.MissingData.PointsPerMissing)

	score := b.BaseScore*b.Multiplier + b.MissingData
	b.FinalScore = int(math.Min(100, math.Max(0, math.Round(score))))
	return b
}

// evaluateACWR scores the acute:chronic workload ratio. Overreaching above
// the warning threshold scales up in three bands; the detraining band below
// the lower threshold scores a small flat penalty but is not reported as an
// acute-load factor.
func evaluateACWR(cfg ACWRConfig, acwr *float64) (points int, elevated bool) {
	if acwr == nil {
		return 0, false
	}
	switch {
	case *acwr > cfg.CriticalThreshold:
		return cfg.CriticalPoints, true
	case *acwr > cfg.ElevatedThreshold:
		return cfg.ElevatedPoints, true
	case *acwr > cfg.WarningThreshold:
		return cfg.WarningPoints, true
	case *acwr < cfg.DetrainingThreshold:
		return cfg.DetrainingPoints, false
	}
	return 0, false
}

// determineRisk applies the safety override floor and classifies the score.
// Overrides only ever raise the score into their band, never lower it.
func (s *Scorer) determineRisk(heuristicScore int, safetyEval SafetyEvaluation) (int, domain.RiskLevel) {
	score := heuristicScore
	if safetyEval.OverrideRiskLevel != nil {
		switch *safetyEval.OverrideRiskLevel {
		case domain.RiskRed:
			if floor := s.thresholds.YellowMax + 1; score < floor {
				score = floor
			}
		case domain.RiskYellow:
			if floor := s.thresholds.GreenMax + 1; score < floor {
				score = floor
			}
		}
	}
	return score, s.thresholds.LevelForScore(score)
}

// topFactors ranks the contributing signals and returns the five largest.
func (s *Scorer) topFactors(features *UserFeatures, plan PlannedSessionInput) []RiskFactor {
	cfg := s.cfg
	var factors []RiskFactor

	if hrv := EvaluateLowerWorse(features.HRVZ,
		TierThresholds{Severe: cfg.HRV.SevereThreshold, Moderate: cfg.HRV.ModerateThreshold, Mild: cfg.HRV.MildThreshold},
		TierPoints{Severe: cfg.HRV.SeverePoints, Moderate: cfg.HRV.ModeratePoints, Mild: cfg.HRV.MildPoints},
	); hrv.Triggered {
		factors = append(factors, RiskFactor{
			Name:         "HRV unter Baseline",
			Contribution: float64(hrv.Points),
			Description:  fmt.Sprintf("HRV %.1f Standardabweichungen unter deinem 28-Tage-Durchschnitt", *features.HRVZ),
			Value:        *features.HRVZ,
		})
	}

	if rhr := EvaluateUpperWorse(features.RHRDelta,
		TierThresholds{Severe: cfg.RHR.SevereThreshold, Moderate: cfg.RHR.ModerateThreshold, Mild: cfg.RHR.MildThreshold},
		TierPoints{Severe: cfg.RHR.SeverePoints, Moderate: cfg.RHR.ModeratePoints, Mild: cfg.RHR.MildPoints},
	); rhr.Triggered {
		factors = append(factors, RiskFactor{
			Name:         "Ruhepuls erhöht",
			Contribution: float64(rhr.Points),
			Description:  fmt.Sprintf("Ruhepuls %.0f bpm über deinem Durchschnitt", *features.RHRDelta),
			Value:        *features.RHRDelta,
		})
	}

	if sleep := EvaluateLowerWorse(features.SleepDelta,
		TierThresholds{Severe: cfg.Sleep.SevereThreshold, Moderate: cfg.Sleep.ModerateThreshold, Mild: cfg.Sleep.MildThreshold},
		TierPoints{Severe: cfg.Sleep.SeverePoints, Moderate: cfg.Sleep.ModeratePoints, Mild: cfg.Sleep.MildPoints},
	); sleep.Triggered {
		factors = append(factors, RiskFactor{
			Name:         "Schlafdefizit",
			Contribution: float64(sleep.Points),
			Description:  fmt.Sprintf("%.0f Minuten weniger Schlaf als üblich", math.Abs(*features.SleepDelta)),
			Value:        *features.SleepDelta,
		})
	}

	if acwrPoints, elevated := evaluateACWR(cfg.ACWR, features.ACWR); elevated {
		factors = append(factors, RiskFactor{
			Name:         "Hohe akute Belastung",
			Contribution: float64(acwrPoints),
			Description:  fmt.Sprintf("ACWR von %.2f - akute Belastung höher als chronisch", *features.ACWR),
			Value:        *features.ACWR,
		})
	}

	if features.PainScore > 0 {
		factors = append(factors, RiskFactor{
			Name:         "Schmerz",
			Contribution: float64(features.PainScore * cfg.Pain.PointsPerLevel),
			Description:  fmt.Sprintf("Schmerz-Score von %d/10", features.PainScore),
			Value:        float64(features.PainScore),
		})
	}

	if targetSoreness := TargetMuscleSoreness(features.SorenessMap, plan.Sport, plan.GymSplit); targetSoreness >= 5 {
		factors = append(factors, RiskFactor{
			Name:         "Muskelkater in Zielmuskulatur",
			Contribution: float64(targetSoreness * cfg.Soreness.TargetMusclePointsPerLevel),
			Description:  fmt.Sprintf("Muskelkater %d/10 in der für diese Aktivität beanspruchten Muskulatur", targetSoreness),
			Value:        float64(targetSoreness),
		})
	}

	if consecutive := EvaluateAtLeast(float64(features.ConsecutiveTrainingDays),
		TierThresholds{
			Severe:   float64(cfg.TrainingLoad.ConsecutiveSevereThreshold),
			Moderate: float64(cfg.TrainingLoad.ConsecutiveModerateThreshold),
			Mild:     float64(cfg.TrainingLoad.ConsecutiveMildThreshold),
		},
		TierPoints{
			Severe:   cfg.TrainingLoad.ConsecutiveSeverePoints,
			Moderate: cfg.TrainingLoad.ConsecutiveModeratePoints,
			Mild:     cfg.TrainingLoad.ConsecutiveMildPoints,
		},
	); consecutive.Triggered {
		factors = append(factors, RiskFactor{
			Name:         "Aufeinanderfolgende Trainingstage",
			Contribution: float64(consecutive.Points),
			Description:  fmt.Sprintf("%d Tage Training am Stück", features.ConsecutiveTrainingDays),
			Value:        float64(features.ConsecutiveTrainingDays),
		})
	}

	if fatigue := EvaluateUpperWorse2(float64(features.Fatigue),
		float64(cfg.Fatigue.SevereThreshold), float64(cfg.Fatigue.ModerateThreshold),
		cfg.Fatigue.SeverePoints, cfg.Fatigue.ModeratePoints,
	); fatigue.Triggered {
		factors = append(factors, RiskFactor{
			Name:         "Subjektive Ermüdung",
			Contribution: float64(fatigue.Points),
			Description:  fmt.Sprintf("Ermüdungs-Level von %d/10", features.Fatigue),
			Value:        float64(features.Fatigue),
		})
	}

	sort.SliceStable(factors, func(i, j int) bool {
		return factors[i].Contribution > factors[j].Contribution
	})
	if len(factors) > 5 {
		factors = factors[:5]
	}
	return factors
}

// explanation assembles the human-readable verdict text: a base sentence
// per level, the triggered rule warnings, and the top three factor names.
func (s *Scorer) explanation(level domain.RiskLevel, safetyEval SafetyEvaluation, topFactors []RiskFactor) string {
	var base string
	switch level {
	case domain.RiskGreen:
		base = "Dein Körper zeigt gute Erholungszeichen. Training wie geplant ist möglich."
	case domain.RiskYellow:
		base = "Einige Belastungsindikatoren sind erhöht. Eine Anpassung des Trainings wird empfohlen."
	default:
		base = "Mehrere kritische Indikatoren deuten auf hohe Belastung oder eingeschränkte Erholung hin. Erholung wird empfohlen."
	}

	if safetyEval.AnyTriggered() {
		var ruleTexts []string
		for _, rule := range safetyEval.TriggeredRules {
			if rule.Description != "" {
				ruleTexts = append(ruleTexts, rule.Description)
			}
		}
		if len(ruleTexts) > 0 {
			base += " " + strings.Join(ruleTexts, " ")
		}
	}

	if len(topFactors) > 0 {
		names := make([]string, 0, 3)
		for _, factor := range topFactors {
			names = append(names, factor.Name)
			if len(names) == 3 {
				break
			}
		}
		base += fmt.Sprintf(" Hauptfaktoren: %s.", strings.Join(names, ", "))
	}

	return base
}

package risk

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// ScoringConfig centralizes every tunable weight and threshold of the risk
// model so tuning never requires a code change. Treated as immutable once
// handed to a Scorer.

type HRVConfig struct {
	// Z-score thresholds (standard deviations below baseline).
	SevereThreshold   float64 `yaml:"severe_threshold"`
	ModerateThreshold float64 `yaml:"moderate_threshold"`
	MildThreshold     float64 `yaml:"mild_threshold"`

	SeverePoints   int `yaml:"severe_points"`
	ModeratePoints int `yaml:"moderate_points"`
	MildPoints     int `yaml:"mild_points"`
}

type RHRConfig struct {
	// Delta thresholds (bpm above baseline).
	SevereThreshold   float64 `yaml:"severe_threshold"`
	ModerateThreshold float64 `yaml:"moderate_threshold"`
	MildThreshold     float64 `yaml:"mild_threshold"`

	SeverePoints   int `yaml:"severe_points"`
	ModeratePoints int `yaml:"moderate_points"`
	MildPoints     int `yaml:"mild_points"`
}

type SleepConfig struct {
	// Delta thresholds (minutes below baseline, negative).
	SevereThreshold   float64 `yaml:"severe_threshold"`
	ModerateThreshold float64 `yaml:"moderate_threshold"`
	MildThreshold     float64 `yaml:"mild_threshold"`

	SeverePoints   int `yaml:"severe_points"`
	ModeratePoints int `yaml:"moderate_points"`
	MildPoints     int `yaml:"mild_points"`
}

type ACWRConfig struct {
	CriticalThreshold   float64 `yaml:"critical_threshold"`
	ElevatedThreshold   float64 `yaml:"elevated_threshold"`
	WarningThreshold    float64 `yaml:"warning_threshold"`
	DetrainingThreshold float64 `yaml:"detraining_threshold"`

	CriticalPoints   int `yaml:"critical_points"`
	ElevatedPoints   int `yaml:"elevated_points"`
	WarningPoints    int `yaml:"warning_points"`
	DetrainingPoints int `yaml:"detraining_points"`
}

type PainConfig struct {
	// Linear pain term, points per pain level.
	PointsPerLevel int `yaml:"points_per_level"`

	// Pain trend over the trailing 3 days.
	WorseningSevereThreshold   float64 `yaml:"worsening_severe_threshold"`
	WorseningModerateThreshold float64 `yaml:"worsening_moderate_threshold"`
	WorseningSeverePoints      int     `yaml:"worsening_severe_points"`
	WorseningModeratePoints    int     `yaml:"worsening_moderate_points"`
}

type SorenessConfig struct {
	TargetMusclePointsPerLevel int     `yaml:"target_muscle_points_per_level"`
	GeneralPointsPerLevel      float64 `yaml:"general_points_per_level"`
}

type ReadinessConfig struct {
	PoorThreshold     int `yaml:"poor_threshold"`
	ModerateThreshold int `yaml:"moderate_threshold"`

	PoorPoints     int `yaml:"poor_points"`
	ModeratePoints int `yaml:"moderate_points"`
}

type FatigueConfig struct {
	SevereThreshold   int `yaml:"severe_threshold"`
	ModerateThreshold int `yaml:"moderate_threshold"`

	SeverePoints   int `yaml:"severe_points"`
	ModeratePoints int `yaml:"moderate_points"`
}

type TrainingLoadConfig struct {
	ConsecutiveSevereThreshold   int `yaml:"consecutive_severe_threshold"`
	ConsecutiveModerateThreshold int `yaml:"consecutive_moderate_threshold"`
	ConsecutiveMildThreshold     int `yaml:"consecutive_mild_threshold"`

	ConsecutiveSeverePoints   int `yaml:"consecutive_severe_points"`
	ConsecutiveModeratePoints int `yaml:"consecutive_moderate_points"`
	ConsecutiveMildPoints     int `yaml:"consecutive_mild_points"`
}

type MissingDataConfig struct {
	PointsPerMissing int `yaml:"points_per_missing"`
}

type IntensityMultiplierConfig struct {
	// Multiplier = 1 + (impact + intensity - NeutralBase) * ScalingFactor.
	NeutralBase   int     `yaml:"neutral_base"`
	ScalingFactor float64 `yaml:"scaling_factor"`
}

type SafetyRulesConfig struct {
	R0PainThreshold    int  `yaml:"r0_pain_threshold"`
	R0SwellingTriggers bool `yaml:"r0_swelling_triggers"`

	R1PainMin int `yaml:"r1_pain_min"`
	R1PainMax int `yaml:"r1_pain_max"`

	R2DOMSThreshold int `yaml:"r2_doms_threshold"`

	R3HRVZThreshold     float64 `yaml:"r3_hrv_z_threshold"`
	R3RHRDeltaThreshold float64 `yaml:"r3_rhr_delta_threshold"`
}

type ScoringConfig struct {
	HRV                 HRVConfig                 `yaml:"hrv"`
	RHR                 RHRConfig                 `yaml:"rhr"`
	Sleep               SleepConfig               `yaml:"sleep"`
	ACWR                ACWRConfig                `yaml:"acwr"`
	Pain                PainConfig                `yaml:"pain"`
	Soreness            SorenessConfig            `yaml:"soreness"`
	Readiness           ReadinessConfig           `yaml:"readiness"`
	Fatigue             FatigueConfig             `yaml:"fatigue"`
	TrainingLoad        TrainingLoadConfig        `yaml:"training_load"`
	MissingData         MissingDataConfig         `yaml:"missing_data"`
	IntensityMultiplier IntensityMultiplierConfig `yaml:"intensity_multiplier"`
	SafetyRules         SafetyRulesConfig         `yaml:"safety_rules"`
}

// DefaultScoringConfig returns the hard-coded defaults. Threshold triplets
// must be supplied in worsening order (severe is the extreme tail); this is
// a configuration-time invariant.
func DefaultScoringConfig() *ScoringConfig {
	return &ScoringConfig{
		HRV: HRVConfig{
			SevereThreshold:   -1.5,
			ModerateThreshold: -1.0,
			MildThreshold:     -0.5,
			SeverePoints:      25,
			ModeratePoints:    15,
			MildPoints:        8,
		},
		RHR: RHRConfig{
			SevereThreshold:   8.0,
			ModerateThreshold: 5.0,
			MildThreshold:     3.0,
			SeverePoints:      25,
			ModeratePoints:    15,
			MildPoints:        8,
		},
		Sleep: SleepConfig{
			SevereThreshold:   -90.0,
			ModerateThreshold: -60.0,
			MildThreshold:     -30.0,
			SeverePoints:      20,
			ModeratePoints:    12,
			MildPoints:        5,
		},
		ACWR: ACWRConfig{
			CriticalThreshold:   1.5,
			ElevatedThreshold:   1.3,
			WarningThreshold:    1.2,
			DetrainingThreshold: 0.8,
			CriticalPoints:      25,
			ElevatedPoints:      15,
			WarningPoints:       8,
			DetrainingPoints:    3,
		},
		Pain: PainConfig{
			PointsPerLevel:             5,
			WorseningSevereThreshold:   2.0,
			WorseningModerateThreshold: 0.0,
			WorseningSeverePoints:      10,
			WorseningModeratePoints:    5,
		},
		Soreness: SorenessConfig{
			TargetMusclePointsPerLevel: 3,
			GeneralPointsPerLevel:      1.5,
		},
		Readiness: ReadinessConfig{
			PoorThreshold:     4,
			ModerateThreshold: 6,
			PoorPoints:        15,
			ModeratePoints:    8,
		},
		Fatigue: FatigueConfig{
			SevereThreshold:   7,
			ModerateThreshold: 5,
			SeverePoints:      12,
			ModeratePoints:    5,
		},
		TrainingLoad: TrainingLoadConfig{
			ConsecutiveSevereThreshold:   5,
			ConsecutiveModerateThreshold: 4,
			ConsecutiveMildThreshold:     3,
			ConsecutiveSeverePoints:      15,
			ConsecutiveModeratePoints:    8,
			ConsecutiveMildPoints:        4,
		},
		MissingData: MissingDataConfig{
			PointsPerMissing: 3,
		},
		IntensityMultiplier: IntensityMultiplierConfig{
			NeutralBase:   4,
			ScalingFactor: 0.05,
		},
		SafetyRules: SafetyRulesConfig{
			R0PainThreshold:     7,
			R0SwellingTriggers:  true,
			R1PainMin:           5,
			R1PainMax:           6,
			R2DOMSThreshold:     7,
			R3HRVZThreshold:     -1.5,
			R3RHRDeltaThreshold: 5.0,
		},
	}
}

// ConfigFromYAML builds a ScoringConfig from a YAML document. Only top-level
// sections present in the document override the corresponding sub-config;
// within a present section, unspecified fields keep their defaults.
func ConfigFromYAML(data []byte) (*ScoringConfig, error) {
	var doc map[string]yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse scoring config: %w", err)
	}

	cfg := DefaultScoringConfig()
	sections := map[string]interface{}{
		"hrv":                  &cfg.HRV,
		"rhr":                  &cfg.RHR,
		"sleep":                &cfg.Sleep,
		"acwr":                 &cfg.ACWR,
		"pain":                 &cfg.Pain,
		"soreness":             &cfg.Soreness,
		"readiness":            &cfg.Readiness,
		"fatigue":              &cfg.Fatigue,
		"training_load":        &cfg.TrainingLoad,
		"missing_data":         &cfg.MissingData,
		"intensity_multiplier": &cfg.IntensityMultiplier,
		"safety_rules":         &cfg.SafetyRules,
	}
	for key, target := range sections {
		node, ok := doc[key]
		if !ok {
			continue
		}
		if err := node.Decode(target); err != nil {
			return nil, fmt.Errorf("parse scoring config section %q: %w", key, err)
		}
	}
	return cfg, nil
}

// ConfigFromFile loads a ScoringConfig from a YAML file.
func ConfigFromFile(path string) (*ScoringConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scoring config %s: %w", path, err)
	}
	return ConfigFromYAML(data)
}

// ToMap converts the configuration to a plain mapping for persistence and
// snapshotting. The keys mirror the YAML document structure, so marshalling
// the result and feeding it back through ConfigFromYAML reproduces the
// identical configuration.
func (c *ScoringConfig) ToMap() map[string]map[string]interface{} {
	return map[string]map[string]interface{}{
		"hrv": {
			"severe_threshold":   c.HRV.SevereThreshold,
			"moderate_threshold": c.HRV.ModerateThreshold,
			"mild_threshold":     c.HRV.MildThreshold,
			"severe_points":      c.HRV.SeverePoints,
			"moderate_points":    c.HRV.ModeratePoints,
			"mild_points":        c.HRV.MildPoints,
		},
		"rhr": {
			"severe_threshold":   c.RHR.SevereThreshold,
			"moderate_threshold": c.RHR.ModerateThreshold,
			"mild_threshold":     c.RHR.MildThreshold,
			"severe_points":      c.RHR.SeverePoints,
			"moderate_points":    c.RHR.ModeratePoints,
			"mild_points":        c.RHR.MildPoints,
		},
		"sleep": {
			"severe_threshold":   c.Sleep.SevereThreshold,
			"moderate_threshold": c.Sleep.ModerateThreshold,
			"mild_threshold":     c.Sleep.MildThreshold,
			"severe_points":      c.Sleep.SeverePoints,
			"moderate_points":    c.Sleep.ModeratePoints,
			"mild_points":        c.Sleep.MildPoints,
		},
		"acwr": {
			"critical_threshold":   c.ACWR.CriticalThreshold,
			"elevated_threshold":   c.ACWR.ElevatedThreshold,
			"warning_threshold":    c.ACWR.WarningThreshold,
			"detraining_threshold": c.ACWR.DetrainingThreshold,
			"critical_points":      c.ACWR.CriticalPoints,
			"elevated_points":      c.ACWR.ElevatedPoints,
			"warning_points":       c.ACWR.WarningPoints,
			"detraining_points":    c.ACWR.DetrainingPoints,
		},
		"pain": {
			"points_per_level":             c.Pain.PointsPerLevel,
			"worsening_severe_threshold":   c.Pain.WorseningSevereThreshold,
			"worsening_moderate_threshold": c.Pain.WorseningModerateThreshold,
			"worsening_severe_points":      c.Pain.WorseningSeverePoints,
			"worsening_moderate_points":    c.Pain.WorseningModeratePoints,
		},
		"soreness": {
			"target_muscle_points_per_level": c.Soreness.TargetMusclePointsPerLevel,
			"general_points_per_level":       c.Soreness.GeneralPointsPerLevel,
		},
		"readiness": {
			"poor_threshold":     c.Readiness.PoorThreshold,
			"moderate_threshold": c.Readiness.ModerateThreshold,
			"poor_points":        c.Readiness.PoorPoints,
			"moderate_points":    c.Readiness.ModeratePoints,
		},
		"fatigue": {
			"severe_threshold":   c.Fatigue.SevereThreshold,
			"moderate_threshold": c.Fatigue.ModerateThreshold,
			"severe_points":      c.Fatigue.SeverePoints,
			"moderate_points":    c.Fatigue.ModeratePoints,
		},
		"training_load": {
			"consecutive_severe_threshold":   c.TrainingLoad.ConsecutiveSevereThreshold,
			"consecutive_moderate_threshold": c.TrainingLoad.ConsecutiveModerateThreshold,
			"consecutive_mild_threshold":     c.TrainingLoad.ConsecutiveMildThreshold,
			"consecutive_severe_points":      c.TrainingLoad.ConsecutiveSeverePoints,
			"consecutive_moderate_points":    c.TrainingLoad.ConsecutiveModeratePoints,
			"consecutive_mild_points":        c.TrainingLoad.ConsecutiveMildPoints,
		},
		"missing_data": {
			"points_per_missing": c.MissingData.PointsPerMissing,
		},
		"intensity_multiplier": {
			"neutral_base":   c.IntensityMultiplier.NeutralBase,
			"scaling_factor": c.IntensityMultiplier.ScalingFactor,
		},
		"safety_rules": {
			"r0_pain_threshold":      c.SafetyRules.R0PainThreshold,
			"r0_swelling_triggers":   c.SafetyRules.R0SwellingTriggers,
			"r1_pain_min":            c.SafetyRules.R1PainMin,
			"r1_pain_max":            c.SafetyRules.R1PainMax,
			"r2_doms_threshold":      c.SafetyRules.R2DOMSThreshold,
			"r3_hrv_z_threshold":     c.SafetyRules.R3HRVZThreshold,
			"r3_rhr_delta_threshold": c.SafetyRules.R3RHRDeltaThreshold,
		},
	}
}

// Process-wide current configuration. Config changes are rare and
// administrative; the mutex keeps the setter safe against concurrent reads.
var (
	currentMu     sync.Mutex
	currentConfig *ScoringConfig
)

// CurrentConfig returns the process-wide scoring configuration,
// initializing it with defaults on first use.
func CurrentConfig() *ScoringConfig {
	currentMu.Lock()
	defer currentMu.Unlock()
	if currentConfig == nil {
		currentConfig = DefaultScoringConfig()
	}
	return currentConfig
}

// SetCurrentConfig replaces the process-wide scoring configuration.
func SetCurrentConfig(cfg *ScoringConfig) {
	currentMu.Lock()
	defer currentMu.Unlock()
	currentConfig = cfg
}

// LoadCurrentConfigFromFile loads a YAML document and installs it as the
// process-wide configuration. On error the previous configuration stays
// in effect.
func LoadCurrentConfigFromFile(path string) (*ScoringConfig, error) {
	cfg, err := ConfigFromFile(path)
	if err != nil {
		return nil, err
	}
	SetCurrentConfig(cfg)
	return cfg, nil
}

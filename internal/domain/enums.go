package domain

import (
	"fmt"

	"github.com/janisoldani/Injury-Risk-Detector/internal/pkg/errors"
)

// SportType is the closed set of sports the system understands. Values
// arriving from the outside must go through ParseSportType; the static
// lookup tables below assume membership.
type SportType string

const (
	SportRun      SportType = "run"
	SportBike     SportType = "bike"
	SportSwim     SportType = "swim"
	SportGym      SportType = "gym"
	SportFootball SportType = "football"
	SportPadel    SportType = "padel"
	SportWalk     SportType = "walk"
	SportHyrox    SportType = "hyrox"
	SportOther    SportType = "other"
)

func AllSportTypes() []SportType {
	return []SportType{
		SportRun, SportBike, SportSwim, SportGym, SportFootball,
		SportPadel, SportWalk, SportHyrox, SportOther,
	}
}

func ParseSportType(s string) (SportType, error) {
	switch SportType(s) {
	case SportRun, SportBike, SportSwim, SportGym, SportFootball,
		SportPadel, SportWalk, SportHyrox, SportOther:
		return SportType(s), nil
	}
	return "", fmt.Errorf("%w: sport_type %q", errors.ErrInvalidArgument, s)
}

// IntensityZone is the ordered intensity scale Z1 < Z2 < tempo < threshold < VO2 < max.
type IntensityZone string

const (
	ZoneZ1        IntensityZone = "Z1"
	ZoneZ2        IntensityZone = "Z2"
	ZoneTempo     IntensityZone = "tempo"
	ZoneThreshold IntensityZone = "threshold"
	ZoneVO2       IntensityZone = "VO2"
	ZoneMax       IntensityZone = "max"
)

func ParseIntensityZone(s string) (IntensityZone, error) {
	switch IntensityZone(s) {
	case ZoneZ1, ZoneZ2, ZoneTempo, ZoneThreshold, ZoneVO2, ZoneMax:
		return IntensityZone(s), nil
	}
	return "", fmt.Errorf("%w: planned_intensity %q", errors.ErrInvalidArgument, s)
}

type TrainingGoal string

const (
	GoalEndurance   TrainingGoal = "endurance"
	GoalStrength    TrainingGoal = "strength"
	GoalRecovery    TrainingGoal = "recovery"
	GoalSpeed       TrainingGoal = "speed"
	GoalCompetition TrainingGoal = "competition"
)

func ParseTrainingGoal(s string) (TrainingGoal, error) {
	switch TrainingGoal(s) {
	case GoalEndurance, GoalStrength, GoalRecovery, GoalSpeed, GoalCompetition:
		return TrainingGoal(s), nil
	}
	return "", fmt.Errorf("%w: goal %q", errors.ErrInvalidArgument, s)
}

type GymSplit string

const (
	SplitPush     GymSplit = "push"
	SplitPull     GymSplit = "pull"
	SplitLegs     GymSplit = "legs"
	SplitUpper    GymSplit = "upper"
	SplitLower    GymSplit = "lower"
	SplitFullBody GymSplit = "full_body"
)

func ParseGymSplit(s string) (GymSplit, error) {
	switch GymSplit(s) {
	case SplitPush, SplitPull, SplitLegs, SplitUpper, SplitLower, SplitFullBody:
		return GymSplit(s), nil
	}
	return "", fmt.Errorf("%w: gym_split %q", errors.ErrInvalidArgument, s)
}

type PainLocation string

const (
	PainKneeLeft      PainLocation = "knee_left"
	PainKneeRight     PainLocation = "knee_right"
	PainAnkleLeft     PainLocation = "ankle_left"
	PainAnkleRight    PainLocation = "ankle_right"
	PainHipLeft       PainLocation = "hip_left"
	PainHipRight      PainLocation = "hip_right"
	PainLowerBack     PainLocation = "lower_back"
	PainUpperBack     PainLocation = "upper_back"
	PainShoulderLeft  PainLocation = "shoulder_left"
	PainShoulderRight PainLocation = "shoulder_right"
	PainNeck          PainLocation = "neck"
	PainCalfLeft      PainLocation = "calf_left"
	PainCalfRight     PainLocation = "calf_right"
	PainShinLeft      PainLocation = "shin_left"
	PainShinRight     PainLocation = "shin_right"
	PainFootLeft      PainLocation = "foot_left"
	PainFootRight     PainLocation = "foot_right"
	PainWristLeft     PainLocation = "wrist_left"
	PainWristRight    PainLocation = "wrist_right"
	PainElbowLeft     PainLocation = "elbow_left"
	PainElbowRight    PainLocation = "elbow_right"
	PainOther         PainLocation = "other"
)

func ParsePainLocation(s string) (PainLocation, error) {
	switch PainLocation(s) {
	case PainKneeLeft, PainKneeRight, PainAnkleLeft, PainAnkleRight,
		PainHipLeft, PainHipRight, PainLowerBack, PainUpperBack,
		PainShoulderLeft, PainShoulderRight, PainNeck,
		PainCalfLeft, PainCalfRight, PainShinLeft, PainShinRight,
		PainFootLeft, PainFootRight, PainWristLeft, PainWristRight,
		PainElbowLeft, PainElbowRight, PainOther:
		return PainLocation(s), nil
	}
	return "", fmt.Errorf("%w: pain_location %q", errors.ErrInvalidArgument, s)
}

type MuscleRegion string

const (
	MuscleQuads      MuscleRegion = "quads"
	MuscleHamstrings MuscleRegion = "hamstrings"
	MuscleGlutes     MuscleRegion = "glutes"
	MuscleCalves     MuscleRegion = "calves"
	MuscleChest      MuscleRegion = "chest"
	MuscleBack       MuscleRegion = "back"
	MuscleShoulders  MuscleRegion = "shoulders"
	MuscleBiceps     MuscleRegion = "biceps"
	MuscleTriceps    MuscleRegion = "triceps"
	MuscleCore       MuscleRegion = "core"
	MuscleForearms   MuscleRegion = "forearms"
)

func AllMuscleRegions() []MuscleRegion {
	return []MuscleRegion{
		MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves,
		MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps,
		MuscleTriceps, MuscleCore, MuscleForearms,
	}
}

func ParseMuscleRegion(s string) (MuscleRegion, error) {
	switch MuscleRegion(s) {
	case MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves,
		MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps,
		MuscleTriceps, MuscleCore, MuscleForearms:
		return MuscleRegion(s), nil
	}
	return "", fmt.Errorf("%w: muscle_region %q", errors.ErrInvalidArgument, s)
}

type RiskLevel string

const (
	RiskGreen  RiskLevel = "green"
	RiskYellow RiskLevel = "yellow"
	RiskRed    RiskLevel = "red"
)

// RiskOrder ranks levels for override aggregation (higher = worse).
func RiskOrder(r RiskLevel) int {
	switch r {
	case RiskYellow:
		return 2
	case RiskRed:
		return 3
	default:
		return 1
	}
}

type LabelReason string

const (
	ReasonPain     LabelReason = "pain"
	ReasonSoreness LabelReason = "soreness"
	ReasonFatigue  LabelReason = "fatigue"
	ReasonInjury   LabelReason = "injury"
	ReasonIllness  LabelReason = "illness"
	ReasonNoTime   LabelReason = "no_time"
	ReasonOther    LabelReason = "other"
)

func ParseLabelReason(s string) (LabelReason, error) {
	switch LabelReason(s) {
	case ReasonPain, ReasonSoreness, ReasonFatigue, ReasonInjury,
		ReasonIllness, ReasonNoTime, ReasonOther:
		return LabelReason(s), nil
	}
	return "", fmt.Errorf("%w: reason %q", errors.ErrInvalidArgument, s)
}

type SportProfile string

const (
	ProfileHighTrainingLoad     SportProfile = "high_training_load"
	ProfileModerateTrainingLoad SportProfile = "moderate_training_load"
	ProfileRecreational         SportProfile = "recreational"
)

func ParseSportProfile(s string) (SportProfile, error) {
	switch SportProfile(s) {
	case ProfileHighTrainingLoad, ProfileModerateTrainingLoad, ProfileRecreational:
		return SportProfile(s), nil
	}
	return "", fmt.Errorf("%w: sport_profile %q", errors.ErrInvalidArgument, s)
}

type ImpactLevel string

const (
	ImpactVeryLow  ImpactLevel = "very_low"
	ImpactLow      ImpactLevel = "low"
	ImpactMedium   ImpactLevel = "medium"
	ImpactHigh     ImpactLevel = "high"
	ImpactVeryHigh ImpactLevel = "very_high"
)

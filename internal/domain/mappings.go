package domain

// Static lookup tables used by safety rules, scoring and recommendations.
// The enumerations above are closed, so these tables are exhaustive for the
// sports/splits that carry rule logic. Impact lookup alone is allowed a
// documented "medium" fallback for exotic sports.

var sportImpact = map[SportType]ImpactLevel{
	SportRun:      ImpactHigh,
	SportBike:     ImpactLow,
	SportSwim:     ImpactLow,
	SportGym:      ImpactMedium, // varies by split
	SportFootball: ImpactVeryHigh,
	SportPadel:    ImpactMedium,
	SportWalk:     ImpactVeryLow,
	SportHyrox:    ImpactVeryHigh,
	SportOther:    ImpactMedium,
}

var sportMuscles = map[SportType][]MuscleRegion{
	SportRun:      {MuscleQuads, MuscleHamstrings, MuscleCalves, MuscleGlutes},
	SportBike:     {MuscleQuads, MuscleGlutes},
	SportSwim:     {MuscleBack, MuscleShoulders, MuscleCore},
	SportGym:      {}, // depends on split
	SportFootball: {MuscleQuads, MuscleHamstrings, MuscleCalves, MuscleCore},
	SportPadel:    {MuscleShoulders, MuscleCore, MuscleCalves},
	SportWalk:     {},
	SportHyrox: {
		MuscleQuads, MuscleHamstrings, MuscleGlutes,
		MuscleBack, MuscleShoulders, MuscleCore,
	},
	SportOther: {},
}

var splitMuscles = map[GymSplit][]MuscleRegion{
	SplitPush:     {MuscleChest, MuscleShoulders, MuscleTriceps},
	SplitPull:     {MuscleBack, MuscleBiceps, MuscleForearms},
	SplitLegs:     {MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves},
	SplitUpper:    {MuscleChest, MuscleBack, MuscleShoulders, MuscleBiceps, MuscleTriceps},
	SplitLower:    {MuscleQuads, MuscleHamstrings, MuscleGlutes, MuscleCalves},
	SplitFullBody: AllMuscleRegions(),
}

// HighImpactSports are the sports blocked by the moderate-pain rule.
var HighImpactSports = []SportType{SportFootball, SportRun, SportHyrox}

// TargetMuscles resolves the muscle groups loaded by a planned activity.
// A gym plan with a split resolves via the split table.
func TargetMuscles(sport SportType, split *GymSplit) []MuscleRegion {
	if sport == SportGym && split != nil {
		return splitMuscles[*split]
	}
	return sportMuscles[sport]
}

// SportImpactScore maps a sport to a 1-5 impact score, defaulting to medium.
func SportImpactScore(sport SportType) int {
	impact, ok := sportImpact[sport]
	if !ok {
		impact = ImpactMedium
	}
	switch impact {
	case ImpactVeryLow:
		return 1
	case ImpactLow:
		return 2
	case ImpactHigh:
		return 4
	case ImpactVeryHigh:
		return 5
	default:
		return 3
	}
}

// IntensityOrder places a zone on the 1-6 scale (Z1=1 .. max=6).
func IntensityOrder(zone IntensityZone) int {
	switch zone {
	case ZoneZ1:
		return 1
	case ZoneZ2:
		return 2
	case ZoneTempo:
		return 3
	case ZoneThreshold:
		return 4
	case ZoneVO2:
		return 5
	case ZoneMax:
		return 6
	default:
		return 3
	}
}

// IntensityScore returns the numeric score for an optional planned zone,
// defaulting to moderate when no zone was planned.
func IntensityScore(zone *IntensityZone) int {
	if zone == nil {
		return 3
	}
	return IntensityOrder(*zone)
}

// IsHardIntensity reports whether a zone counts as a hard session.
func IsHardIntensity(zone IntensityZone) bool {
	switch zone {
	case ZoneThreshold, ZoneVO2, ZoneMax:
		return true
	}
	return false
}

// ReduceIntensity steps a zone down one tier, idempotent at the floor.
func ReduceIntensity(zone IntensityZone) IntensityZone {
	switch zone {
	case ZoneMax:
		return ZoneVO2
	case ZoneVO2:
		return ZoneThreshold
	case ZoneThreshold:
		return ZoneTempo
	case ZoneTempo:
		return ZoneZ2
	case ZoneZ2:
		return ZoneZ1
	case ZoneZ1:
		return ZoneZ1
	default:
		return ZoneZ2
	}
}

// AlternativeSport suggests a substitute sport for variety.
func AlternativeSport(current SportType) SportType {
	alternatives := map[SportType]SportType{
		SportRun:      SportBike,
		SportBike:     SportSwim,
		SportSwim:     SportBike,
		SportGym:      SportBike,
		SportFootball: SportBike,
		SportPadel:    SportSwim,
		SportHyrox:    SportBike,
		SportWalk:     SportSwim,
	}
	if alt, ok := alternatives[current]; ok {
		return alt
	}
	return SportBike
}

// AlternativeGymSplit suggests a substitute split for variety.
func AlternativeGymSplit(current *GymSplit) GymSplit {
	if current == nil {
		return SplitUpper
	}
	switch *current {
	case SplitPush:
		return SplitPull
	case SplitPull:
		return SplitPush
	case SplitLegs:
		return SplitUpper
	case SplitUpper:
		return SplitLower
	case SplitLower:
		return SplitUpper
	default:
		return SplitUpper
	}
}

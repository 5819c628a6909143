package risk

// Severity tiers produced by the threshold evaluator.
type Tier string

const (
	TierNone     Tier = "none"
	TierMild     Tier = "mild"
	TierModerate Tier = "moderate"
	TierSevere   Tier = "severe"
)

// TierThresholds holds a three-tier threshold set in worsening order:
// Severe is the extreme tail, Mild the first band.
type TierThresholds struct {
	Severe   float64
	Moderate float64
	Mild     float64
}

// TierPoints holds the contribution per tier.
type TierPoints struct {
	Severe   int
	Moderate int
	Mild     int
}

// TierResult is the outcome of a single threshold evaluation. Both the
// score accumulation and the factor ranking consume the same result, so the
// tiered branch logic lives in exactly one place.
type TierResult struct {
	Points    int
	Tier      Tier
	Triggered bool
}

// EvaluateLowerWorse scores a signal where lower values are worse
// (HRV z-score, sleep delta). A nil value never triggers.
func EvaluateLowerWorse(value *float64, th TierThresholds, pts TierPoints) TierResult {
	if value == nil {
		return TierResult{}
	}
	switch {
	case *value < th.Severe:
		return TierResult{Points: pts.Severe, Tier: TierSevere, Triggered: true}
	case *value < th.Moderate:
		return TierResult{Points: pts.Moderate, Tier: TierModerate, Triggered: true}
	case *value < th.Mild:
		return TierResult{Points: pts.Mild, Tier: TierMild, Triggered: true}
	}
	return TierResult{}
}

// EvaluateUpperWorse scores a signal where higher values are worse
// (resting-HR delta).
func EvaluateUpperWorse(value *float64, th TierThresholds, pts TierPoints) TierResult {
	if value == nil {
		return TierResult{}
	}
	switch {
	case *value > th.Severe:
		return TierResult{Points: pts.Severe, Tier: TierSevere, Triggered: true}
	case *value > th.Moderate:
		return TierResult{Points: pts.Moderate, Tier: TierModerate, Triggered: true}
	case *value > th.Mild:
		return TierResult{Points: pts.Mild, Tier: TierMild, Triggered: true}
	}
	return TierResult{}
}

// EvaluateLowerWorse2 is the two-tier variant (readiness).
func EvaluateLowerWorse2(value float64, severe, moderate float64, severePts, moderatePts int) TierResult {
	switch {
	case value < severe:
		return TierResult{Points: severePts, Tier: TierSevere, Triggered: true}
	case value < moderate:
		return TierResult{Points: moderatePts, Tier: TierModerate, Triggered: true}
	}
	return TierResult{}
}

// EvaluateUpperWorse2 is the two-tier variant (fatigue, pain trend).
func EvaluateUpperWorse2(value float64, severe, moderate float64, severePts, moderatePts int) TierResult {
	switch {
	case value > severe:
		return TierResult{Points: severePts, Tier: TierSevere, Triggered: true}
	case value > moderate:
		return TierResult{Points: moderatePts, Tier: TierModerate, Triggered: true}
	}
	return TierResult{}
}

// EvaluateAtLeast is the inclusive upper-worse variant used for consecutive
// training days, which trigger at the threshold itself rather than above it.
func EvaluateAtLeast(value float64, th TierThresholds, pts TierPoints) TierResult {
	switch {
	case value >= th.Severe:
		return TierResult{Points: pts.Severe, Tier: TierSevere, Triggered: true}
	case value >= th.Moderate:
		return TierResult{Points: pts.Moderate, Tier: TierModerate, Triggered: true}
	case value >= th.Mild:
		return TierResult{Points: pts.Mild, Tier: TierMild, Triggered: true}
	}
	return TierResult{}
}

package risk

import (
	"testing"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
)

func defaultRules() SafetyRulesConfig {
	return DefaultScoringConfig().SafetyRules
}

func TestEvaluateR0AcutePain(t *testing.T) {
	cfg := defaultRules()

	t.Run("pain below threshold no trigger", func(t *testing.T) {
		if r := EvaluateR0AcutePain(cfg, 6, false); r.Triggered {
			t.Fatalf("pain 6 must not trigger R0")
		}
	})

	t.Run("pain at threshold forces red", func(t *testing.T) {
		r := EvaluateR0AcutePain(cfg, 7, false)
		if !r.Triggered {
			t.Fatalf("pain 7 must trigger R0")
		}
		if r.OverrideRiskLevel == nil || *r.OverrideRiskLevel != domain.RiskRed {
			t.Fatalf("R0 must force red, got %v", r.OverrideRiskLevel)
		}
		if r.MaxAllowedIntensity == nil || *r.MaxAllowedIntensity != domain.ZoneZ1 {
			t.Fatalf("R0 must cap at Z1, got %v", r.MaxAllowedIntensity)
		}
		for _, s := range r.BlockedSports {
			if s == domain.SportWalk {
				t.Fatalf("walking must stay allowed under R0")
			}
		}
		if len(r.BlockedSports) != len(domain.AllSportTypes())-1 {
			t.Fatalf("R0 must block everything but walking, blocked %d", len(r.BlockedSports))
		}
	})

	t.Run("swelling alone forces red", func(t *testing.T) {
		r := EvaluateR0AcutePain(cfg, 0, true)
		if !r.Triggered {
			t.Fatalf("swelling must trigger R0")
		}
	})

	t.Run("swelling ignored when disabled", func(t *testing.T) {
		noSwelling := cfg
		noSwelling.R0SwellingTriggers = false
		if r := EvaluateR0AcutePain(noSwelling, 0, true); r.Triggered {
			t.Fatalf("swelling must not trigger when disabled")
		}
	})
}

func TestEvaluateR1ModeratePain_OverrideOnlyForImpactPlans(t *testing.T) {
	cfg := defaultRules()

	r := EvaluateR1ModeratePain(cfg, 5, domain.SportRun)
	if !r.Triggered {
		t.Fatalf("pain 5 must trigger R1")
	}
	if r.OverrideRiskLevel == nil || *r.OverrideRiskLevel != domain.RiskYellow {
		t.Fatalf("impact plan must get yellow override, got %v", r.OverrideRiskLevel)
	}

	r = EvaluateR1ModeratePain(cfg, 6, domain.SportBike)
	if !r.Triggered {
		t.Fatalf("pain 6 must trigger R1")
	}
	if r.OverrideRiskLevel != nil {
		t.Fatalf("non-impact plan must not get an override, got %v", *r.OverrideRiskLevel)
	}
	blocked := map[domain.SportType]bool{}
	for _, s := range r.BlockedSports {
		blocked[s] = true
	}
	for _, s := range domain.HighImpactSports {
		if !blocked[s] {
			t.Fatalf("impact sport %s must be blocked regardless of the plan", s)
		}
	}

	if r := EvaluateR1ModeratePain(cfg, 4, domain.SportRun); r.Triggered {
		t.Fatalf("pain 4 must not trigger R1")
	}
	if r := EvaluateR1ModeratePain(cfg, 7, domain.SportRun); r.Triggered {
		t.Fatalf("pain 7 belongs to R0, not R1")
	}
}

func TestEvaluateR2DOMS(t *testing.T) {
	cfg := defaultRules()
	split := domain.SplitLegs

	soreness := map[domain.MuscleRegion]int{domain.MuscleQuads: 7}
	r := EvaluateR2DOMS(cfg, soreness, domain.SportGym, &split)
	if !r.Triggered {
		t.Fatalf("quads 7 must trigger R2 for a legs plan")
	}
	if len(r.BlockedMuscleRegions) != 1 || r.BlockedMuscleRegions[0] != domain.MuscleQuads {
		t.Fatalf("blocked muscles = %v, want [quads]", r.BlockedMuscleRegions)
	}
	if r.OverrideRiskLevel == nil || *r.OverrideRiskLevel != domain.RiskYellow {
		t.Fatalf("R2 must force at least yellow")
	}

	// Soreness in a muscle the plan does not load is not R2's concern.
	pushSplit := domain.SplitPush
	if r := EvaluateR2DOMS(cfg, soreness, domain.SportGym, &pushSplit); r.Triggered {
		t.Fatalf("sore quads must not trigger R2 for a push plan")
	}

	if r := EvaluateR2DOMS(cfg, map[domain.MuscleRegion]int{domain.MuscleQuads: 6}, domain.SportGym, &split); r.Triggered {
		t.Fatalf("soreness 6 is below the DOMS threshold")
	}
}

func TestEvaluateR3RecoveryMarkers(t *testing.T) {
	cfg := defaultRules()

	t.Run("both poor caps z2 and overrides", func(t *testing.T) {
		r := EvaluateR3RecoveryMarkers(cfg, fptr(-1.6), fptr(5.5))
		if !r.Triggered {
			t.Fatalf("both markers poor must trigger")
		}
		if r.MaxAllowedIntensity == nil || *r.MaxAllowedIntensity != domain.ZoneZ2 {
			t.Fatalf("cap = %v, want Z2", r.MaxAllowedIntensity)
		}
		if r.OverrideRiskLevel == nil || *r.OverrideRiskLevel != domain.RiskYellow {
			t.Fatalf("both markers poor must force yellow")
		}
	})

	t.Run("single marker caps tempo without override", func(t *testing.T) {
		r := EvaluateR3RecoveryMarkers(cfg, fptr(-1.6), nil)
		if !r.Triggered {
			t.Fatalf("poor hrv must trigger")
		}
		if r.MaxAllowedIntensity == nil || *r.MaxAllowedIntensity != domain.ZoneTempo {
			t.Fatalf("cap = %v, want tempo", r.MaxAllowedIntensity)
		}
		if r.OverrideRiskLevel != nil {
			t.Fatalf("single marker must not override")
		}
	})

	t.Run("missing values never trigger", func(t *testing.T) {
		if r := EvaluateR3RecoveryMarkers(cfg, nil, nil); r.Triggered {
			t.Fatalf("absent markers must not trigger")
		}
	})

	t.Run("boundary values do not trigger", func(t *testing.T) {
		if r := EvaluateR3RecoveryMarkers(cfg, fptr(-1.5), fptr(5.0)); r.Triggered {
			t.Fatalf("values at the thresholds must not trigger")
		}
	})
}

func TestEvaluateR4TwoADay(t *testing.T) {
	hard := domain.ZoneThreshold
	easy := domain.ZoneZ2

	r := EvaluateR4TwoADay(true, &hard)
	if !r.Triggered {
		t.Fatalf("second hard session must trigger R4")
	}
	if r.OverrideRiskLevel == nil || *r.OverrideRiskLevel != domain.RiskYellow {
		t.Fatalf("R4 must force yellow")
	}

	if r := EvaluateR4TwoADay(true, &easy); r.Triggered {
		t.Fatalf("easy second session must not trigger")
	}
	if r := EvaluateR4TwoADay(false, &hard); r.Triggered {
		t.Fatalf("no hard session today must not trigger")
	}
	if r := EvaluateR4TwoADay(true, nil); r.Triggered {
		t.Fatalf("plan without intensity must not trigger")
	}
}

func TestEvaluateSafetyRules_Aggregation(t *testing.T) {
	cfg := defaultRules()
	split := domain.SplitLegs
	hard := domain.ZoneVO2

	eval := EvaluateSafetyRules(cfg, SafetyInputs{
		PainScore:        5,
		SorenessMap:      map[domain.MuscleRegion]int{domain.MuscleQuads: 8},
		PlannedSport:     domain.SportGym,
		PlannedGymSplit:  &split,
		PlannedIntensity: &hard,
		HRVZ:             fptr(-1.8),
		RHRDelta:         fptr(6.0),
		HardSessionToday: true,
	})

	// R1, R2, R3, R4 all fire; R0 does not.
	if len(eval.TriggeredRules) != 4 {
		t.Fatalf("triggered %d rules, want 4", len(eval.TriggeredRules))
	}
	for i, want := range []string{"R1", "R2", "R3", "R4"} {
		if eval.TriggeredRules[i].RuleID != want {
			t.Fatalf("rule %d = %s, want %s", i, eval.TriggeredRules[i].RuleID, want)
		}
	}
	if eval.MaxAllowedIntensity == nil || *eval.MaxAllowedIntensity != domain.ZoneZ2 {
		t.Fatalf("most restrictive cap = %v, want Z2", eval.MaxAllowedIntensity)
	}
	if eval.OverrideRiskLevel == nil || *eval.OverrideRiskLevel != domain.RiskYellow {
		t.Fatalf("override = %v, want yellow", eval.OverrideRiskLevel)
	}
	if !eval.SportBlocked(domain.SportRun) {
		t.Fatalf("run must be blocked through R1")
	}
	if len(eval.BlockedMuscleRegions) != 1 || eval.BlockedMuscleRegions[0] != domain.MuscleQuads {
		t.Fatalf("blocked muscles = %v, want [quads]", eval.BlockedMuscleRegions)
	}
}

func TestEvaluateSafetyRules_R0DominatesOverride(t *testing.T) {
	cfg := defaultRules()
	eval := EvaluateSafetyRules(cfg, SafetyInputs{
		PainScore:    8,
		PlannedSport: domain.SportRun,
		HRVZ:         fptr(-2.0),
		RHRDelta:     fptr(7.0),
	})
	if eval.OverrideRiskLevel == nil || *eval.OverrideRiskLevel != domain.RiskRed {
		t.Fatalf("red from R0 must win over yellow from R3, got %v", eval.OverrideRiskLevel)
	}
	if eval.MaxAllowedIntensity == nil || *eval.MaxAllowedIntensity != domain.ZoneZ1 {
		t.Fatalf("cap = %v, want Z1", eval.MaxAllowedIntensity)
	}
}

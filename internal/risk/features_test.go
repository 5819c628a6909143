package risk

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
)

type stubSources struct {
	daily    *DailyAggregate
	symptoms []SymptomEntry
	workouts []WorkoutRecord
}

func (s *stubSources) DailyAggregate(ctx context.Context, userID uuid.UUID, day time.Time) (*DailyAggregate, error) {
	return s.daily, nil
}

func (s *stubSources) SymptomsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]SymptomEntry, error) {
	var out []SymptomEntry
	for _, e := range s.symptoms {
		if !e.Timestamp.Before(from) && e.Timestamp.Before(to) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubSources) WorkoutsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]WorkoutRecord, error) {
	var out []WorkoutRecord
	for _, w := range s.workouts {
		if !w.StartTime.Before(from) && w.StartTime.Before(to) {
			out = append(out, w)
		}
	}
	return out, nil
}

func iptr(v int) *int { return &v }

var testDay = time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)

func buildWith(t *testing.T, src *stubSources) *UserFeatures {
	t.Helper()
	builder := NewFeatureBuilder(src, src, src, nil)
	features, err := builder.BuildFeatures(context.Background(), uuid.New(), testDay)
	if err != nil {
		t.Fatalf("BuildFeatures: %v", err)
	}
	return features
}

func TestBuildFeatures_EmptyHistoryDefaults(t *testing.T) {
	features := buildWith(t, &stubSources{})

	if !features.MissingHRV || !features.MissingSleep || !features.MissingRHR {
		t.Fatalf("all signals must start missing")
	}
	if features.Readiness != 7 || features.Fatigue != 3 {
		t.Fatalf("neutral defaults = (%d, %d), want (7, 3)", features.Readiness, features.Fatigue)
	}
	if features.PainScore != 0 || features.ConsecutiveTrainingDays != 0 {
		t.Fatalf("empty history must leave pain and streak at zero")
	}
}

func TestBuildFeatures_BaselineNormalization(t *testing.T) {
	src := &stubSources{daily: &DailyAggregate{
		HRVRMSSD:             fptr(40),
		RestingHR:            iptr(58),
		SleepDurationMinutes: iptr(380),
		HRVBaselineMean:      fptr(52),
		HRVBaselineStd:       fptr(8),
		RHRBaselineMean:      fptr(52),
		SleepBaselineMean:    fptr(440),
	}}
	features := buildWith(t, src)

	if features.MissingHRV || features.MissingRHR || features.MissingSleep {
		t.Fatalf("signals with baselines must not be missing")
	}
	if features.HRVZ == nil || math.Abs(*features.HRVZ-(-1.5)) > 1e-9 {
		t.Fatalf("hrv z = %v, want -1.5", features.HRVZ)
	}
	if features.RHRDelta == nil || *features.RHRDelta != 6 {
		t.Fatalf("rhr delta = %v, want 6", features.RHRDelta)
	}
	if features.SleepDelta == nil || *features.SleepDelta != -60 {
		t.Fatalf("sleep delta = %v, want -60", features.SleepDelta)
	}
}

func TestBuildFeatures_ZeroVarianceBaseline(t *testing.T) {
	src := &stubSources{daily: &DailyAggregate{
		HRVRMSSD:        fptr(40),
		HRVBaselineMean: fptr(40),
		HRVBaselineStd:  fptr(0),
	}}
	features := buildWith(t, src)

	if features.MissingHRV {
		t.Fatalf("a present value with flat baseline is not missing data")
	}
	if features.HRVZ == nil || *features.HRVZ != 0 {
		t.Fatalf("flat baseline z = %v, want 0", features.HRVZ)
	}
}

func TestBuildFeatures_ValueWithoutBaselineStaysMissing(t *testing.T) {
	src := &stubSources{daily: &DailyAggregate{HRVRMSSD: fptr(40)}}
	features := buildWith(t, src)

	if !features.MissingHRV {
		t.Fatalf("no baseline means the normalized signal is missing")
	}
	if features.HRVZ != nil {
		t.Fatalf("hrv z must stay nil without a baseline")
	}
	if features.HRVRMSSD == nil || *features.HRVRMSSD != 40 {
		t.Fatalf("raw value must still be carried")
	}
}

func TestBuildFeatures_LatestCheckInOfTheDayWins(t *testing.T) {
	src := &stubSources{symptoms: []SymptomEntry{
		{Timestamp: testDay.Add(8 * time.Hour), PainScore: 2, Readiness: 6, Fatigue: 4},
		{Timestamp: testDay.Add(18 * time.Hour), PainScore: 4, Readiness: 5, Fatigue: 6,
			SorenessMap: map[domain.MuscleRegion]int{domain.MuscleQuads: 6}},
	}}
	features := buildWith(t, src)

	if features.PainScore != 4 || features.Readiness != 5 || features.Fatigue != 6 {
		t.Fatalf("latest entry must win: pain %d readiness %d fatigue %d",
			features.PainScore, features.Readiness, features.Fatigue)
	}
	if features.MaxSoreness != 6 {
		t.Fatalf("max soreness = %d, want 6", features.MaxSoreness)
	}
}

func TestBuildFeatures_PainTrendIsTwoPointDelta(t *testing.T) {
	src := &stubSources{symptoms: []SymptomEntry{
		{Timestamp: testDay.Add(-60 * time.Hour), PainScore: 1, Readiness: 7, Fatigue: 3},
		{Timestamp: testDay.Add(-30 * time.Hour), PainScore: 5, Readiness: 7, Fatigue: 3},
		{Timestamp: testDay.Add(10 * time.Hour), PainScore: 4, Readiness: 7, Fatigue: 3},
	}}
	features := buildWith(t, src)

	// Newest minus oldest in the window, intermediate entries ignored.
	if features.PainTrend3d != 3 {
		t.Fatalf("pain trend = %v, want 3", features.PainTrend3d)
	}
}

func TestBuildFeatures_ConsecutiveDaysStopAtGap(t *testing.T) {
	z2 := domain.ZoneZ2
	src := &stubSources{workouts: []WorkoutRecord{
		{Sport: domain.SportRun, StartTime: testDay.AddDate(0, 0, -1).Add(7 * time.Hour), IntensityZone: &z2, TRIMP: fptr(50)},
		{Sport: domain.SportBike, StartTime: testDay.AddDate(0, 0, -2).Add(7 * time.Hour), IntensityZone: &z2, TRIMP: fptr(40)},
		{Sport: domain.SportRun, StartTime: testDay.AddDate(0, 0, -3).Add(7 * time.Hour), IntensityZone: &z2, TRIMP: fptr(60)},
		// Gap at -4 days.
		{Sport: domain.SportRun, StartTime: testDay.AddDate(0, 0, -5).Add(7 * time.Hour), IntensityZone: &z2, TRIMP: fptr(60)},
	}}
	features := buildWith(t, src)

	if features.ConsecutiveTrainingDays != 3 {
		t.Fatalf("streak = %d, want 3", features.ConsecutiveTrainingDays)
	}
}

func TestBuildFeatures_HardSessionTracking(t *testing.T) {
	hard := domain.ZoneThreshold
	easy := domain.ZoneZ2
	src := &stubSources{workouts: []WorkoutRecord{
		{Sport: domain.SportRun, StartTime: testDay.Add(6 * time.Hour), IntensityZone: &hard, TRIMP: fptr(90)},
		{Sport: domain.SportBike, StartTime: testDay.AddDate(0, 0, -1).Add(7 * time.Hour), IntensityZone: &easy, TRIMP: fptr(40)},
	}}
	features := buildWith(t, src)

	if !features.HardSessionToday {
		t.Fatalf("threshold session today must be flagged")
	}
	if features.HoursSinceHardSession == nil {
		t.Fatalf("hours since hard session must be set")
	}
}

func TestBuildFeatures_ACWRFallbackFromTRIMP(t *testing.T) {
	z2 := domain.ZoneZ2
	var workouts []WorkoutRecord
	// 100 TRIMP per day for the whole window: acute 7d vs chronic 28d.
	for i := 1; i <= 28; i++ {
		workouts = append(workouts, WorkoutRecord{
			Sport:         domain.SportBike,
			StartTime:     testDay.AddDate(0, 0, -i).Add(7 * time.Hour),
			IntensityZone: &z2,
			TRIMP:         fptr(100),
		})
	}
	features := buildWith(t, &stubSources{workouts: workouts})

	if features.AcuteLoad7d == nil || features.ChronicLoad28d == nil || features.ACWR == nil {
		t.Fatalf("load fallbacks must be computed from workouts")
	}
	if *features.AcuteLoad7d != 700 {
		t.Fatalf("acute load = %v, want 700", *features.AcuteLoad7d)
	}
	if *features.ChronicLoad28d != 2800 {
		t.Fatalf("chronic load = %v, want 2800", *features.ChronicLoad28d)
	}
	if math.Abs(*features.ACWR-0.25) > 1e-9 {
		t.Fatalf("acwr = %v, want 0.25", *features.ACWR)
	}
}

func TestBuildFeatures_StoredLoadsPreferred(t *testing.T) {
	z2 := domain.ZoneZ2
	src := &stubSources{
		daily: &DailyAggregate{
			AcuteLoad7d:    fptr(300),
			ChronicLoad28d: fptr(250),
			ACWR:           fptr(1.2),
		},
		workouts: []WorkoutRecord{
			{Sport: domain.SportBike, StartTime: testDay.AddDate(0, 0, -1), IntensityZone: &z2, TRIMP: fptr(999)},
		},
	}
	features := buildWith(t, src)

	if *features.AcuteLoad7d != 300 || *features.ChronicLoad28d != 250 || *features.ACWR != 1.2 {
		t.Fatalf("stored load values must win over workout-derived fallbacks")
	}
}

func TestTargetMuscleSoreness(t *testing.T) {
	soreness := map[domain.MuscleRegion]int{
		domain.MuscleQuads: 7,
		domain.MuscleChest: 4,
	}

	if got := TargetMuscleSoreness(soreness, domain.SportRun, nil); got != 7 {
		t.Fatalf("run target soreness = %d, want 7", got)
	}
	push := domain.SplitPush
	if got := TargetMuscleSoreness(soreness, domain.SportGym, &push); got != 4 {
		t.Fatalf("push target soreness = %d, want 4", got)
	}
	if got := TargetMuscleSoreness(soreness, domain.SportSwim, nil); got != 0 {
		t.Fatalf("swim target soreness = %d, want 0", got)
	}
}

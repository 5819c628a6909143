package risk

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
	"github.com/janisoldani/Injury-Risk-Detector/internal/logger"
)

// UserFeatures is the per-evaluation snapshot consumed by the safety rules
// and the heuristic scorer. Built fresh per evaluation; never shared.
type UserFeatures struct {
	Date time.Time `json:"date"`

	// Baseline-normalized signals, absent unless raw value and baseline exist.
	HRVZ       *float64 `json:"hrv_z"`
	RHRDelta   *float64 `json:"rhr_delta"`
	SleepDelta *float64 `json:"sleep_delta"`

	// Raw signals.
	HRVRMSSD             *float64 `json:"hrv_rmssd"`
	RestingHR            *int     `json:"resting_hr"`
	SleepDurationMinutes *int     `json:"sleep_duration_minutes"`
	SleepScore           *int     `json:"sleep_score"`
	BodyBattery          *int     `json:"body_battery"`
	StressScore          *int     `json:"stress_score"`

	// Load signals.
	AcuteLoad7d             *float64 `json:"acute_load_7d"`
	ChronicLoad28d          *float64 `json:"chronic_load_28d"`
	ACWR                    *float64 `json:"acwr"`
	Monotony                *float64 `json:"monotony"`
	Strain                  *float64 `json:"strain"`
	ConsecutiveTrainingDays int      `json:"consecutive_training_days"`
	HoursSinceHardSession   *float64 `json:"hours_since_hard_session"`
	HardSessionToday        bool     `json:"hard_session_today"`

	// Subjective signals.
	PainScore   int                         `json:"pain_score"`
	PainTrend3d float64                     `json:"pain_trend_3d"`
	MaxSoreness int                         `json:"max_soreness"`
	SorenessMap map[domain.MuscleRegion]int `json:"soreness_map"`
	Readiness   int                         `json:"readiness"`
	Fatigue     int                         `json:"fatigue"`
	Swelling    bool                        `json:"swelling"`

	// Missing-data flags, true until real data is found.
	MissingHRV   bool `json:"missing_hrv"`
	MissingSleep bool `json:"missing_sleep"`
	MissingRHR   bool `json:"missing_rhr"`
}

// NewUserFeatures returns a snapshot with neutral subjective defaults and a
// fresh soreness map.
func NewUserFeatures(date time.Time) *UserFeatures {
	return &UserFeatures{
		Date:         date,
		SorenessMap:  map[domain.MuscleRegion]int{},
		Readiness:    7,
		Fatigue:      3,
		MissingHRV:   true,
		MissingSleep: true,
		MissingRHR:   true,
	}
}

// DailyAggregate is the daily health record the feature builder consumes.
// Baselines are rolling 28-day statistics maintained by the boundary layer.
type DailyAggregate struct {
	SleepScore           *int
	SleepDurationMinutes *int
	HRVRMSSD             *float64
	RestingHR            *int
	BodyBattery          *int
	StressScore          *int

	AcuteLoad7d    *float64
	ChronicLoad28d *float64
	ACWR           *float64
	Monotony       *float64
	Strain         *float64

	HRVBaselineMean   *float64
	HRVBaselineStd    *float64
	RHRBaselineMean   *float64
	SleepBaselineMean *float64
}

// SymptomEntry is a timestamped subjective check-in.
type SymptomEntry struct {
	Timestamp   time.Time
	PainScore   int
	Swelling    bool
	SorenessMap map[domain.MuscleRegion]int
	Readiness   int
	Fatigue     int
}

// WorkoutRecord is a completed training session.
type WorkoutRecord struct {
	Sport           domain.SportType
	StartTime       time.Time
	DurationMinutes int
	TRIMP           *float64
	IntensityZone   *domain.IntensityZone
}

// The feature builder reads through three narrow sources so it can be
// exercised against fixtures without a database.
type DailyAggregateSource interface {
	DailyAggregate(ctx context.Context, userID uuid.UUID, day time.Time) (*DailyAggregate, error)
}

// SymptomSource returns entries in ascending timestamp order.
type SymptomSource interface {
	SymptomsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]SymptomEntry, error)
}

// WorkoutSource returns workouts in descending start-time order.
type WorkoutSource interface {
	WorkoutsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]WorkoutRecord, error)
}

// FeatureBuilder derives one UserFeatures snapshot for a user and date.
type FeatureBuilder struct {
	daily    DailyAggregateSource
	symptoms SymptomSource
	workouts WorkoutSource
	log      *logger.Logger
}

func NewFeatureBuilder(daily DailyAggregateSource, symptoms SymptomSource, workouts WorkoutSource, baseLog *logger.Logger) *FeatureBuilder {
	var log *logger.Logger
	if baseLog != nil {
		log = baseLog.With("component", "FeatureBuilder")
	}
	return &FeatureBuilder{daily: daily, symptoms: symptoms, workouts: workouts, log: log}
}

// BuildFeatures assembles the snapshot for targetDate.
func (fb *FeatureBuilder) BuildFeatures(ctx context.Context, userID uuid.UUID, targetDate time.Time) (*UserFeatures, error) {
	features := NewUserFeatures(dayStart(targetDate))

	if err := fb.addDailyAggregate(ctx, userID, features); err != nil {
		return nil, fmt.Errorf("daily aggregate features: %w", err)
	}
	if err := fb.addSymptomFeatures(ctx, userID, features); err != nil {
		return nil, fmt.Errorf("symptom features: %w", err)
	}
	if err := fb.addLoadFeatures(ctx, userID, features); err != nil {
		return nil, fmt.Errorf("load features: %w", err)
	}

	return features, nil
}

func (fb *FeatureBuilder) addDailyAggregate(ctx context.Context, userID uuid.UUID, features *UserFeatures) error {
	agg, err := fb.daily.DailyAggregate(ctx, userID, features.Date)
	if err != nil {
		return err
	}
	if agg == nil {
		return nil
	}

	features.HRVRMSSD = agg.HRVRMSSD
	features.RestingHR = agg.RestingHR
	features.SleepDurationMinutes = agg.SleepDurationMinutes
	features.SleepScore = agg.SleepScore
	features.BodyBattery = agg.BodyBattery
	features.StressScore = agg.StressScore

	features.AcuteLoad7d = agg.AcuteLoad7d
	features.ChronicLoad28d = agg.ChronicLoad28d
	features.ACWR = agg.ACWR
	features.Monotony = agg.Monotony
	features.Strain = agg.Strain

	if agg.HRVRMSSD != nil && agg.HRVBaselineMean != nil {
		features.MissingHRV = false
		if agg.HRVBaselineStd != nil && *agg.HRVBaselineStd > 0 {
			z := (*agg.HRVRMSSD - *agg.HRVBaselineMean) / *agg.HRVBaselineStd
			features.HRVZ = &z
		} else {
			// Zero-variance baseline collapses to z = 0 rather than
			// treating the signal as missing.
			zero := 0.0
			features.HRVZ = &zero
		}
	}

	if agg.RestingHR != nil && agg.RHRBaselineMean != nil {
		features.MissingRHR = false
		delta := float64(*agg.RestingHR) - *agg.RHRBaselineMean
		features.RHRDelta = &delta
	}

	if agg.SleepDurationMinutes != nil && agg.SleepBaselineMean != nil {
		features.MissingSleep = false
		delta := float64(*agg.SleepDurationMinutes) - *agg.SleepBaselineMean
		features.SleepDelta = &delta
	}

	return nil
}

func (fb *FeatureBuilder) addSymptomFeatures(ctx context.Context, userID uuid.UUID, features *UserFeatures) error {
	startOfDay := features.Date
	endOfDay := startOfDay.Add(24 * time.Hour)

	todays, err := fb.symptoms.SymptomsBetween(ctx, userID, startOfDay, endOfDay)
	if err != nil {
		return err
	}
	if len(todays) > 0 {
		latest := todays[len(todays)-1]
		features.PainScore = latest.PainScore
		features.Readiness = latest.Readiness
		features.Fatigue = latest.Fatigue
		features.Swelling = latest.Swelling
		if latest.SorenessMap != nil {
			features.SorenessMap = latest.SorenessMap
		}
		for _, level := range features.SorenessMap {
			if level > features.MaxSoreness {
				features.MaxSoreness = level
			}
		}
	}

	// Two-point trend over the trailing 3-day window, not a regression.
	recent, err := fb.symptoms.SymptomsBetween(ctx, userID, startOfDay.Add(-72*time.Hour), endOfDay)
	if err != nil {
		return err
	}
	if len(recent) >= 2 {
		features.PainTrend3d = float64(recent[len(recent)-1].PainScore - recent[0].PainScore)
	}

	return nil
}

func (fb *FeatureBuilder) addLoadFeatures(ctx context.Context, userID uuid.UUID, features *UserFeatures) error {
	startOfDay := features.Date
	endOfDay := startOfDay.Add(24 * time.Hour)

	workouts, err := fb.workouts.WorkoutsBetween(ctx, userID, startOfDay.AddDate(0, 0, -28), endOfDay)
	if err != nil {
		return err
	}
	if len(workouts) == 0 {
		return nil
	}

	features.ConsecutiveTrainingDays = countConsecutiveDays(workouts, startOfDay)

	// Workouts arrive newest first, so the first hard one is the most recent.
	for _, w := range workouts {
		if w.IntensityZone != nil && domain.IsHardIntensity(*w.IntensityZone) {
			hours := startOfDay.Sub(w.StartTime).Hours()
			features.HoursSinceHardSession = &hours
			break
		}
	}

	for _, w := range workouts {
		if !w.StartTime.Before(startOfDay) && w.IntensityZone != nil && domain.IsHardIntensity(*w.IntensityZone) {
			features.HardSessionToday = true
			break
		}
	}

	if features.AcuteLoad7d == nil {
		load := sumTRIMP(workouts, startOfDay, 7)
		features.AcuteLoad7d = &load
	}
	if features.ChronicLoad28d == nil {
		load := sumTRIMP(workouts, startOfDay, 28)
		features.ChronicLoad28d = &load
	}
	if features.ACWR == nil && features.ChronicLoad28d != nil && *features.ChronicLoad28d > 0 {
		acwr := *features.AcuteLoad7d / *features.ChronicLoad28d
		features.ACWR = &acwr
	}

	return nil
}

// countConsecutiveDays walks backward from yesterday until the first
// calendar day without a workout.
func countConsecutiveDays(workouts []WorkoutRecord, targetDay time.Time) int {
	trained := map[string]bool{}
	for _, w := range workouts {
		trained[dayStart(w.StartTime).Format("2006-01-02")] = true
	}

	count := 0
	check := targetDay.AddDate(0, 0, -1)
	for trained[check.Format("2006-01-02")] {
		count++
		check = check.AddDate(0, 0, -1)
	}
	return count
}

// sumTRIMP totals workout training impulse over the trailing window of
// whole calendar days ending at targetDay (inclusive).
func sumTRIMP(workouts []WorkoutRecord, targetDay time.Time, days int) float64 {
	windowStart := targetDay.AddDate(0, 0, -days)
	total := 0.0
	for _, w := range workouts {
		day := dayStart(w.StartTime)
		if !day.Before(windowStart) && !day.After(targetDay) {
			if w.TRIMP != nil {
				total += *w.TRIMP
			}
		}
	}
	return total
}

// TargetMuscleSoreness returns the maximum soreness among the muscles the
// planned activity loads.
func TargetMuscleSoreness(sorenessMap map[domain.MuscleRegion]int, sport domain.SportType, split *domain.GymSplit) int {
	maxSoreness := 0
	for _, muscle := range domain.TargetMuscles(sport, split) {
		if level := sorenessMap[muscle]; level > maxSoreness {
			maxSoreness = level
		}
	}
	return maxSoreness
}

func dayStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

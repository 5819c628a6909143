package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
	"github.com/janisoldani/Injury-Risk-Detector/internal/logger"
	"github.com/janisoldani/Injury-Risk-Detector/internal/repos"
	"github.com/janisoldani/Injury-Risk-Detector/internal/risk"
	"github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

// featureSources adapts the repositories to the narrow read interfaces the
// feature builder consumes, translating stored rows into risk records.
type featureSources struct {
	log         *logger.Logger
	metricRepo  repos.DailyMetricRepo
	symptomRepo repos.SymptomRepo
	workoutRepo repos.WorkoutRepo
}

func newFeatureSources(log *logger.Logger, metricRepo repos.DailyMetricRepo, symptomRepo repos.SymptomRepo, workoutRepo repos.WorkoutRepo) *featureSources {
	return &featureSources{
		log:         log.With("component", "FeatureSources"),
		metricRepo:  metricRepo,
		symptomRepo: symptomRepo,
		workoutRepo: workoutRepo,
	}
}

func (fs *featureSources) DailyAggregate(ctx context.Context, userID uuid.UUID, day time.Time) (*risk.DailyAggregate, error) {
	metric, err := fs.metricRepo.GetByUserAndDate(ctx, nil, userID, day)
	if err != nil {
		return nil, err
	}
	if metric == nil {
		return nil, nil
	}

	return &risk.DailyAggregate{
		SleepScore:           metric.SleepScore,
		SleepDurationMinutes: metric.SleepDurationMinutes,
		HRVRMSSD:             metric.HRVRMSSD,
		RestingHR:            metric.RestingHR,
		BodyBattery:          metric.BodyBattery,
		StressScore:          metric.StressScore,
		AcuteLoad7d:          metric.AcuteLoad7d,
		ChronicLoad28d:       metric.ChronicLoad28d,
		ACWR:                 metric.ACWR,
		Monotony:             metric.Monotony,
		Strain:               metric.Strain,
		HRVBaselineMean:      metric.HRVBaselineMean,
		HRVBaselineStd:       metric.HRVBaselineStd,
		RHRBaselineMean:      metric.RHRBaselineMean,
		SleepBaselineMean:    metric.SleepBaselineMean,
	}, nil
}

func (fs *featureSources) SymptomsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]risk.SymptomEntry, error) {
	symptoms, err := fs.symptomRepo.GetByUserBetween(ctx, nil, userID, from, to)
	if err != nil {
		return nil, err
	}

	entries := make([]risk.SymptomEntry, 0, len(symptoms))
	for _, s := range symptoms {
		entries = append(entries, risk.SymptomEntry{
			Timestamp:   s.Timestamp,
			PainScore:   s.PainScore,
			Swelling:    s.Swelling,
			SorenessMap: fs.decodeSorenessMap(s),
			Readiness:   s.Readiness,
			Fatigue:     s.Fatigue,
		})
	}
	return entries, nil
}

// decodeSorenessMap tolerates unknown muscle keys in stored data; they were
// valid under some past enum revision and must not fail an evaluation.
func (fs *featureSources) decodeSorenessMap(s *types.Symptom) map[domain.MuscleRegion]int {
	result := map[domain.MuscleRegion]int{}
	if len(s.SorenessMap) == 0 {
		return result
	}

	var raw map[string]int
	if err := json.Unmarshal(s.SorenessMap, &raw); err != nil {
		fs.log.Warn("Malformed soreness map", "symptom_id", s.ID.String(), "error", err)
		return result
	}
	for key, level := range raw {
		region, err := domain.ParseMuscleRegion(key)
		if err != nil {
			continue
		}
		result[region] = level
	}
	return result
}

func (fs *featureSources) WorkoutsBetween(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]risk.WorkoutRecord, error) {
	workouts, err := fs.workoutRepo.GetByUserBetween(ctx, nil, userID, from, to)
	if err != nil {
		return nil, err
	}

	records := make([]risk.WorkoutRecord, 0, len(workouts))
	for _, w := range workouts {
		sport, err := domain.ParseSportType(w.SportType)
		if err != nil {
			sport = domain.SportOther
		}
		record := risk.WorkoutRecord{
			Sport:           sport,
			StartTime:       w.StartTime,
			DurationMinutes: w.DurationMinutes,
			TRIMP:           w.TRIMP,
		}
		if w.IntensityZone != nil {
			if zone, err := domain.ParseIntensityZone(*w.IntensityZone); err == nil {
				record.IntensityZone = &zone
			}
		}
		records = append(records, record)
	}
	return records, nil
}

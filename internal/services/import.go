package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/janisoldani/Injury-Risk-Detector/internal/logger"
	"github.com/janisoldani/Injury-Risk-Detector/internal/observability"
	"github.com/janisoldani/Injury-Risk-Detector/internal/repos"
	"github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

// DailyMetricInput is one day of parsed wearable health data.
type DailyMetricInput struct {
	Date                 time.Time
	RestingHR            *int
	HRVRMSSD             *float64
	SleepDurationMinutes *int
	SleepScore           *int
	BodyBattery          *int
	StressScore          *int
}

// ImportBatch is the payload of one device-data import: workouts and daily
// metrics already parsed out of the device file by the upload pipeline.
type ImportBatch struct {
	Workouts     []WorkoutInput
	DailyMetrics []DailyMetricInput
	Source       string
}

// ImportResult summarizes what one batch changed.
type ImportResult struct {
	Success         bool     `json:"success"`
	Message         string   `json:"message"`
	WorkoutsCreated int      `json:"workouts_created"`
	WorkoutsSkipped int      `json:"workouts_skipped"`
	MetricsCreated  int      `json:"metrics_created"`
	MetricsUpdated  int      `json:"metrics_updated"`
	Errors          []string `json:"errors"`
}

// ImportStats describes everything imported so far for one user.
type ImportStats struct {
	TotalWorkouts    int64   `json:"total_workouts"`
	TotalMetricsDays int     `json:"total_metrics_days"`
	EarliestDate     *string `json:"earliest_date"`
	LatestDate       *string `json:"latest_date"`
}

type ImportService interface {
	ImportBatch(ctx context.Context, userID uuid.UUID, batch ImportBatch) (*ImportResult, error)
	Stats(ctx context.Context, userID uuid.UUID) (*ImportStats, error)
}

type importService struct {
	db          *gorm.DB
	log         *logger.Logger
	workoutRepo repos.WorkoutRepo
	metricRepo  repos.DailyMetricRepo
	baselines   BaselineService
}

func NewImportService(db *gorm.DB, log *logger.Logger, workoutRepo repos.WorkoutRepo, metricRepo repos.DailyMetricRepo, baselines BaselineService) ImportService {
	serviceLog := log.With("service", "ImportService")
	return &importService{db: db, log: serviceLog, workoutRepo: workoutRepo, metricRepo: metricRepo, baselines: baselines}
}

func (is *importService) ImportBatch(ctx context.Context, userID uuid.UUID, batch ImportBatch) (*ImportResult, error) {
	result := &ImportResult{Errors: []string{}}

	err := is.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, input := range batch.Workouts {
			created, err := is.saveWorkout(ctx, tx, userID, input, batch.Source)
			if err != nil {
				return err
			}
			if created {
				result.WorkoutsCreated++
			} else {
				result.WorkoutsSkipped++
			}
		}

		for _, input := range batch.DailyMetrics {
			created, updated, err := is.saveDailyMetric(ctx, tx, userID, input)
			if err != nil {
				return err
			}
			if created {
				result.MetricsCreated++
			} else if updated {
				result.MetricsUpdated++
			}
		}
		return nil
	})
	if err != nil {
		is.log.Error("Import batch failed", "error", err)
		result.Message = fmt.Sprintf("Error processing import: %s", err.Error())
		result.Errors = append(result.Errors, err.Error())
		return result, err
	}

	// Refresh baselines for the days the batch touched.
	for _, input := range batch.DailyMetrics {
		if err := is.baselines.UpdateDailyMetric(ctx, userID, input.Date); err != nil {
			is.log.Warn("Baseline refresh failed", "error", err, "date", input.Date.Format("2006-01-02"))
		}
	}

	observability.ImportedWorkoutsTotal.Add(float64(result.WorkoutsCreated))
	observability.ImportedMetricDaysTotal.Add(float64(result.MetricsCreated))

	result.Success = true
	result.Message = buildImportMessage(result)

	is.log.Info("Import batch processed",
		"user_id", userID.String(),
		"workouts_created", result.WorkoutsCreated,
		"metrics_created", result.MetricsCreated,
	)
	return result, nil
}

// saveWorkout skips exact duplicates (same user, same start time).
func (is *importService) saveWorkout(ctx context.Context, tx *gorm.DB, userID uuid.UUID, input WorkoutInput, source string) (bool, error) {
	exists, err := is.workoutRepo.ExistsByUserAndStartTime(ctx, tx, userID, input.StartTime)
	if err != nil {
		return false, err
	}
	if exists {
		is.log.Debug("Skipping duplicate workout", "start_time", input.StartTime)
		return false, nil
	}

	if input.Source == nil && source != "" {
		input.Source = &source
	}
	workout, err := buildWorkout(userID, input)
	if err != nil {
		return false, err
	}
	if _, err := is.workoutRepo.Create(ctx, tx, []*types.Workout{workout}); err != nil {
		return false, err
	}
	return true, nil
}

// saveDailyMetric creates the day's record or merges into an existing one.
// Resting HR takes the lower reading; every other field only fills a gap,
// never overwrites.
func (is *importService) saveDailyMetric(ctx context.Context, tx *gorm.DB, userID uuid.UUID, input DailyMetricInput) (created, updated bool, err error) {
	existing, err := is.metricRepo.GetByUserAndDate(ctx, tx, userID, input.Date)
	if err != nil {
		return false, false, err
	}

	if existing == nil {
		metric := &types.DailyMetric{
			ID:                   uuid.New(),
			UserID:               userID,
			Date:                 input.Date,
			RestingHR:            input.RestingHR,
			HRVRMSSD:             input.HRVRMSSD,
			SleepDurationMinutes: input.SleepDurationMinutes,
			SleepScore:           input.SleepScore,
			BodyBattery:          input.BodyBattery,
			StressScore:          input.StressScore,
		}
		if _, err := is.metricRepo.Create(ctx, tx, []*types.DailyMetric{metric}); err != nil {
			return false, false, err
		}
		return true, false, nil
	}

	if input.RestingHR != nil && (existing.RestingHR == nil || *input.RestingHR < *existing.RestingHR) {
		existing.RestingHR = input.RestingHR
		updated = true
	}
	if input.HRVRMSSD != nil && existing.HRVRMSSD == nil {
		existing.HRVRMSSD = input.HRVRMSSD
		updated = true
	}
	if input.SleepDurationMinutes != nil && existing.SleepDurationMinutes == nil {
		existing.SleepDurationMinutes = input.SleepDurationMinutes
		updated = true
	}
	if input.SleepScore != nil && existing.SleepScore == nil {
		existing.SleepScore = input.SleepScore
		updated = true
	}
	if input.BodyBattery != nil && existing.BodyBattery == nil {
		existing.BodyBattery = input.BodyBattery
		updated = true
	}
	if input.StressScore != nil && existing.StressScore == nil {
		existing.StressScore = input.StressScore
		updated = true
	}

	if updated {
		if _, err := is.metricRepo.Update(ctx, tx, existing); err != nil {
			return false, false, err
		}
	}
	return false, updated, nil
}

func (is *importService) Stats(ctx context.Context, userID uuid.UUID) (*ImportStats, error) {
	totalWorkouts, err := is.workoutRepo.CountByUser(ctx, nil, userID)
	if err != nil {
		return nil, err
	}

	// Wide range covers the full import history.
	epoch := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	horizon := time.Now().UTC().AddDate(1, 0, 0)

	metrics, err := is.metricRepo.GetByUserBetween(ctx, nil, userID, epoch, horizon)
	if err != nil {
		return nil, err
	}
	workouts, err := is.workoutRepo.GetByUserBetween(ctx, nil, userID, epoch, horizon)
	if err != nil {
		return nil, err
	}

	stats := &ImportStats{
		TotalWorkouts:    totalWorkouts,
		TotalMetricsDays: len(metrics),
	}

	var earliest, latest time.Time
	observe := func(t time.Time) {
		if earliest.IsZero() || t.Before(earliest) {
			earliest = t
		}
		if latest.IsZero() || t.After(latest) {
			latest = t
		}
	}
	for _, w := range workouts {
		observe(w.StartTime)
	}
	for _, m := range metrics {
		observe(m.Date)
	}

	if !earliest.IsZero() {
		e := earliest.Format("2006-01-02")
		l := latest.Format("2006-01-02")
		stats.EarliestDate = &e
		stats.LatestDate = &l
	}
	return stats, nil
}

func buildImportMessage(result *ImportResult) string {
	var parts []string
	if result.WorkoutsCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d workout(s) imported", result.WorkoutsCreated))
	}
	if result.WorkoutsSkipped > 0 {
		parts = append(parts, fmt.Sprintf("%d duplicate(s) skipped", result.WorkoutsSkipped))
	}
	if result.MetricsCreated > 0 {
		parts = append(parts, fmt.Sprintf("%d day(s) of health data imported", result.MetricsCreated))
	}
	if result.MetricsUpdated > 0 {
		parts = append(parts, fmt.Sprintf("%d day(s) of health data updated", result.MetricsUpdated))
	}
	if len(parts) == 0 {
		return "Import processed but no new data found"
	}
	return strings.Join(parts, ", ")
}

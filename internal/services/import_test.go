package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

type fakeWorkoutRepo struct {
	workouts []*types.Workout
}

func (f *fakeWorkoutRepo) Create(ctx context.Context, tx *gorm.DB, workouts []*types.Workout) ([]*types.Workout, error) {
	f.workouts = append(f.workouts, workouts...)
	return workouts, nil
}

func (f *fakeWorkoutRepo) GetByIDs(ctx context.Context, tx *gorm.DB, workoutIDs []uuid.UUID) ([]*types.Workout, error) {
	var out []*types.Workout
	for _, w := range f.workouts {
		for _, id := range workoutIDs {
			if w.ID == id {
				out = append(out, w)
			}
		}
	}
	return out, nil
}

func (f *fakeWorkoutRepo) GetByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Workout, error) {
	var out []*types.Workout
	for _, w := range f.workouts {
		if w.UserID != userID {
			continue
		}
		if w.StartTime.Before(from) || w.StartTime.After(to) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

func (f *fakeWorkoutRepo) ExistsByUserAndStartTime(ctx context.Context, tx *gorm.DB, userID uuid.UUID, startTime time.Time) (bool, error) {
	for _, w := range f.workouts {
		if w.UserID == userID && w.StartTime.Equal(startTime) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWorkoutRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	for _, w := range f.workouts {
		if w.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeWorkoutRepo) Delete(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error {
	for i, w := range f.workouts {
		if w.ID == workoutID {
			f.workouts = append(f.workouts[:i], f.workouts[i+1:]...)
			return nil
		}
	}
	return nil
}

// testDB is only used as the transaction wrapper around fake repos.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func newImportFixture(t *testing.T) (ImportService, *fakeWorkoutRepo, *fakeMetricRepo) {
	t.Helper()
	log := testLogger(t)
	db := testDB(t)
	workoutRepo := &fakeWorkoutRepo{}
	metricRepo := &fakeMetricRepo{}
	baselines := NewBaselineService(db, log, metricRepo)
	return NewImportService(db, log, workoutRepo, metricRepo, baselines), workoutRepo, metricRepo
}

func TestImportBatch_SkipsDuplicateWorkouts(t *testing.T) {
	svc, workoutRepo, _ := newImportFixture(t)
	userID := uuid.New()
	start := time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC)

	batch := ImportBatch{
		Source: "garmin",
		Workouts: []WorkoutInput{
			{SportType: "run", StartTime: start, DurationMinutes: 45, AvgHR: intp(150)},
			{SportType: "run", StartTime: start, DurationMinutes: 45, AvgHR: intp(150)},
			{SportType: "bike", StartTime: start.Add(3 * time.Hour), DurationMinutes: 60},
		},
	}

	result, err := svc.ImportBatch(context.Background(), userID, batch)
	if err != nil {
		t.Fatalf("ImportBatch: %v", err)
	}
	if !result.Success {
		t.Error("expected successful result")
	}
	if result.WorkoutsCreated != 2 {
		t.Errorf("created = %d, want 2", result.WorkoutsCreated)
	}
	if result.WorkoutsSkipped != 1 {
		t.Errorf("skipped = %d, want 1", result.WorkoutsSkipped)
	}
	if len(workoutRepo.workouts) != 2 {
		t.Fatalf("stored workouts = %d, want 2", len(workoutRepo.workouts))
	}
	for _, w := range workoutRepo.workouts {
		if w.Source == nil || *w.Source != "garmin" {
			t.Errorf("workout source = %v, want batch source garmin", w.Source)
		}
	}
}

func TestImportBatch_InvalidWorkoutFailsBatch(t *testing.T) {
	svc, _, _ := newImportFixture(t)
	userID := uuid.New()

	batch := ImportBatch{
		Workouts: []WorkoutInput{
			{SportType: "parkour", StartTime: time.Now().UTC(), DurationMinutes: 30},
		},
	}

	result, err := svc.ImportBatch(context.Background(), userID, batch)
	if err == nil {
		t.Fatal("expected error for unknown sport")
	}
	if result.Success {
		t.Error("result should not be marked successful")
	}
	if len(result.Errors) == 0 {
		t.Error("result should carry the error")
	}
}

func TestImportBatch_MergesDailyMetrics(t *testing.T) {
	svc, _, metricRepo := newImportFixture(t)
	userID := uuid.New()
	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	existing := metricDay(userID, day, fptrSvc(45), intp(55), nil)
	existing.SleepScore = intp(80)
	metricRepo.metrics = append(metricRepo.metrics, existing)

	batch := ImportBatch{
		DailyMetrics: []DailyMetricInput{
			{
				Date:                 day,
				RestingHR:            intp(52),
				HRVRMSSD:             fptrSvc(60),
				SleepDurationMinutes: intp(420),
				SleepScore:           intp(90),
			},
		},
	}

	result, err := svc.ImportBatch(context.Background(), userID, batch)
	if err != nil {
		t.Fatalf("ImportBatch: %v", err)
	}
	if result.MetricsCreated != 0 || result.MetricsUpdated != 1 {
		t.Errorf("created/updated = %d/%d, want 0/1", result.MetricsCreated, result.MetricsUpdated)
	}

	merged, _ := metricRepo.GetByUserAndDate(context.Background(), nil, userID, day)
	if merged.RestingHR == nil || *merged.RestingHR != 52 {
		t.Errorf("resting HR = %v, lower reading 52 should win", merged.RestingHR)
	}
	if merged.HRVRMSSD == nil || *merged.HRVRMSSD != 45 {
		t.Errorf("HRV = %v, existing value must not be overwritten", merged.HRVRMSSD)
	}
	if merged.SleepScore == nil || *merged.SleepScore != 80 {
		t.Errorf("sleep score = %v, existing value must not be overwritten", merged.SleepScore)
	}
	if merged.SleepDurationMinutes == nil || *merged.SleepDurationMinutes != 420 {
		t.Errorf("sleep duration = %v, gap should be filled", merged.SleepDurationMinutes)
	}
}

func TestImportBatch_HigherRestingHRDoesNotOverwrite(t *testing.T) {
	svc, _, metricRepo := newImportFixture(t)
	userID := uuid.New()
	day := time.Date(2025, 6, 14, 0, 0, 0, 0, time.UTC)

	metricRepo.metrics = append(metricRepo.metrics, metricDay(userID, day, nil, intp(55), nil))

	batch := ImportBatch{
		DailyMetrics: []DailyMetricInput{{Date: day, RestingHR: intp(58)}},
	}

	result, err := svc.ImportBatch(context.Background(), userID, batch)
	if err != nil {
		t.Fatalf("ImportBatch: %v", err)
	}
	if result.MetricsUpdated != 0 {
		t.Errorf("updated = %d, want 0", result.MetricsUpdated)
	}

	stored, _ := metricRepo.GetByUserAndDate(context.Background(), nil, userID, day)
	if stored.RestingHR == nil || *stored.RestingHR != 55 {
		t.Errorf("resting HR = %v, want untouched 55", stored.RestingHR)
	}
}

func TestImportBatch_RefreshesBaselinesForImportedDays(t *testing.T) {
	svc, _, metricRepo := newImportFixture(t)
	userID := uuid.New()
	day1 := time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

	batch := ImportBatch{
		DailyMetrics: []DailyMetricInput{
			{Date: day1, HRVRMSSD: fptrSvc(50)},
			{Date: day1.AddDate(0, 0, 1), HRVRMSSD: fptrSvc(54)},
			{Date: day1.AddDate(0, 0, 2), HRVRMSSD: fptrSvc(58)},
			{Date: day1.AddDate(0, 0, 3), HRVRMSSD: fptrSvc(60)},
		},
	}

	result, err := svc.ImportBatch(context.Background(), userID, batch)
	if err != nil {
		t.Fatalf("ImportBatch: %v", err)
	}
	if result.MetricsCreated != 4 {
		t.Fatalf("created = %d, want 4", result.MetricsCreated)
	}

	last, _ := metricRepo.GetByUserAndDate(context.Background(), nil, userID, day1.AddDate(0, 0, 3))
	if last.HRVBaselineMean == nil || *last.HRVBaselineMean != 54 {
		t.Errorf("HRV baseline mean = %v, want 54 from the three prior days", last.HRVBaselineMean)
	}

	first, _ := metricRepo.GetByUserAndDate(context.Background(), nil, userID, day1)
	if first.HRVBaselineMean != nil {
		t.Error("first imported day has no trailing history and no baseline")
	}
}

func TestImportStats(t *testing.T) {
	svc, workoutRepo, metricRepo := newImportFixture(t)
	userID := uuid.New()

	workoutRepo.workouts = append(workoutRepo.workouts,
		&types.Workout{ID: uuid.New(), UserID: userID, SportType: "run",
			StartTime: time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC), DurationMinutes: 40},
		&types.Workout{ID: uuid.New(), UserID: userID, SportType: "bike",
			StartTime: time.Date(2025, 6, 10, 18, 0, 0, 0, time.UTC), DurationMinutes: 60},
	)
	metricRepo.metrics = append(metricRepo.metrics,
		metricDay(userID, time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC), fptrSvc(50), nil, nil),
	)

	stats, err := svc.Stats(context.Background(), userID)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalWorkouts != 2 {
		t.Errorf("total workouts = %d, want 2", stats.TotalWorkouts)
	}
	if stats.TotalMetricsDays != 1 {
		t.Errorf("total metric days = %d, want 1", stats.TotalMetricsDays)
	}
	if stats.EarliestDate == nil || *stats.EarliestDate != "2025-05-01" {
		t.Errorf("earliest = %v, want 2025-05-01", stats.EarliestDate)
	}
	if stats.LatestDate == nil || *stats.LatestDate != "2025-06-12" {
		t.Errorf("latest = %v, want 2025-06-12", stats.LatestDate)
	}
}

func TestImportStats_EmptyHistory(t *testing.T) {
	svc, _, _ := newImportFixture(t)

	stats, err := svc.Stats(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.TotalWorkouts != 0 || stats.TotalMetricsDays != 0 {
		t.Errorf("expected zero counts, got %d workouts / %d metric days", stats.TotalWorkouts, stats.TotalMetricsDays)
	}
	if stats.EarliestDate != nil || stats.LatestDate != nil {
		t.Error("date range should be nil without any data")
	}
}

package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/janisoldani/Injury-Risk-Detector/internal/logger"
  "github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

type WorkoutRepo interface {
  Create(ctx context.Context, tx *gorm.DB, workouts []*types.Workout) ([]*types.Workout, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, workoutIDs []uuid.UUID) ([]*types.Workout, error)
  GetByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Workout, error)
  ExistsByUserAndStartTime(ctx context.Context, tx *gorm.DB, userID uuid.UUID, startTime time.Time) (bool, error)
  CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
  Delete(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error
}

type workoutRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewWorkoutRepo(db *gorm.DB, baseLog *logger.Logger) WorkoutRepo {
  repoLog := baseLog.With("repo", "WorkoutRepo")
  return &workoutRepo{db: db, log: repoLog}
}

func (wr *workoutRepo) Create(ctx context.Context, tx *gorm.DB, workouts []*types.Workout) ([]*types.Workout, error) {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }

  if len(workouts) == 0 {
    return []*types.Workout{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&workouts).Error; err != nil {
    return nil, err
  }
  return workouts, nil
}

func (wr *workoutRepo) GetByIDs(ctx context.Context, tx *gorm.DB, workoutIDs []uuid.UUID) ([]*types.Workout, error) {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }

  var results []*types.Workout
  if len(workoutIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", workoutIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetByUserBetween returns workouts newest first.
func (wr *workoutRepo) GetByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Workout, error) {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }

  var results []*types.Workout
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND start_time >= ? AND start_time < ?", userID, from, to).
    Order("start_time DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (wr *workoutRepo) ExistsByUserAndStartTime(ctx context.Context, tx *gorm.DB, userID uuid.UUID, startTime time.Time) (bool, error) {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Workout{}).
    Where("user_id = ? AND start_time = ?", userID, startTime).
    Count(&count).Error; err != nil {
    return false, err
  }
  return count > 0, nil
}

func (wr *workoutRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }

  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Workout{}).
    Where("user_id = ?", userID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (wr *workoutRepo) Delete(ctx context.Context, tx *gorm.DB, workoutID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = wr.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", workoutID).
    Delete(&types.Workout{}).Error
}

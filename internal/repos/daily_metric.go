package repos

import (
  "context"
  "errors"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/janisoldani/Injury-Risk-Detector/internal/logger"
  "github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

type DailyMetricRepo interface {
  Create(ctx context.Context, tx *gorm.DB, metrics []*types.DailyMetric) ([]*types.DailyMetric, error)
  GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyMetric, error)
  GetByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyMetric, error)
  Update(ctx context.Context, tx *gorm.DB, metric *types.DailyMetric) (*types.DailyMetric, error)
}

type dailyMetricRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewDailyMetricRepo(db *gorm.DB, baseLog *logger.Logger) DailyMetricRepo {
  repoLog := baseLog.With("repo", "DailyMetricRepo")
  return &dailyMetricRepo{db: db, log: repoLog}
}

func (dr *dailyMetricRepo) Create(ctx context.Context, tx *gorm.DB, metrics []*types.DailyMetric) ([]*types.DailyMetric, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  if len(metrics) == 0 {
    return []*types.DailyMetric{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&metrics).Error; err != nil {
    return nil, err
  }
  return metrics, nil
}

// GetByUserAndDate returns nil without error when no record exists for the
// day; callers treat an absent day as missing data, not a failure.
func (dr *dailyMetricRepo) GetByUserAndDate(ctx context.Context, tx *gorm.DB, userID uuid.UUID, date time.Time) (*types.DailyMetric, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  var result types.DailyMetric
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND date = ?", userID, date.Format("2006-01-02")).
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

func (dr *dailyMetricRepo) GetByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.DailyMetric, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  var results []*types.DailyMetric
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND date >= ? AND date <= ?", userID, from.Format("2006-01-02"), to.Format("2006-01-02")).
    Order("date ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (dr *dailyMetricRepo) Update(ctx context.Context, tx *gorm.DB, metric *types.DailyMetric) (*types.DailyMetric, error) {
  transaction := tx
  if transaction == nil {
    transaction = dr.db
  }

  if err := transaction.WithContext(ctx).Save(metric).Error; err != nil {
    return nil, err
  }
  return metric, nil
}

package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/janisoldani/Injury-Risk-Detector/internal/logger"
  "github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

type LabelRepo interface {
  Create(ctx context.Context, tx *gorm.DB, labels []*types.Label) ([]*types.Label, error)
  GetByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Label, error)
}

type labelRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewLabelRepo(db *gorm.DB, baseLog *logger.Logger) LabelRepo {
  repoLog := baseLog.With("repo", "LabelRepo")
  return &labelRepo{db: db, log: repoLog}
}

func (lr *labelRepo) Create(ctx context.Context, tx *gorm.DB, labels []*types.Label) ([]*types.Label, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  if len(labels) == 0 {
    return []*types.Label{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&labels).Error; err != nil {
    return nil, err
  }
  return labels, nil
}

func (lr *labelRepo) GetByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Label, error) {
  transaction := tx
  if transaction == nil {
    transaction = lr.db
  }

  var results []*types.Label
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND label_date >= ? AND label_date < ?", userID, from, to).
    Order("label_date DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

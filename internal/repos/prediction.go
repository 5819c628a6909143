package repos

import (
  "context"
  "errors"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/janisoldani/Injury-Risk-Detector/internal/logger"
  "github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

type PredictionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, predictions []*types.Prediction) ([]*types.Prediction, error)
  GetByPlannedSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Prediction, error)
  GetLatestByPlannedSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.Prediction, error)
}

type predictionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPredictionRepo(db *gorm.DB, baseLog *logger.Logger) PredictionRepo {
  repoLog := baseLog.With("repo", "PredictionRepo")
  return &predictionRepo{db: db, log: repoLog}
}

func (pr *predictionRepo) Create(ctx context.Context, tx *gorm.DB, predictions []*types.Prediction) ([]*types.Prediction, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(predictions) == 0 {
    return []*types.Prediction{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&predictions).Error; err != nil {
    return nil, err
  }
  return predictions, nil
}

// GetByPlannedSession returns predictions newest first.
func (pr *predictionRepo) GetByPlannedSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]*types.Prediction, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.Prediction
  if err := transaction.WithContext(ctx).
    Where("planned_session_id = ?", sessionID).
    Order("created_at DESC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetLatestByPlannedSession returns nil without error when the session has
// no prediction yet.
func (pr *predictionRepo) GetLatestByPlannedSession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) (*types.Prediction, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var result types.Prediction
  if err := transaction.WithContext(ctx).
    Where("planned_session_id = ?", sessionID).
    Order("created_at DESC").
    First(&result).Error; err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &result, nil
}

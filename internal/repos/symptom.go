package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/janisoldani/Injury-Risk-Detector/internal/logger"
  "github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

type SymptomRepo interface {
  Create(ctx context.Context, tx *gorm.DB, symptoms []*types.Symptom) ([]*types.Symptom, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, symptomIDs []uuid.UUID) ([]*types.Symptom, error)
  GetByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Symptom, error)
  Update(ctx context.Context, tx *gorm.DB, symptom *types.Symptom) (*types.Symptom, error)
}

type symptomRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewSymptomRepo(db *gorm.DB, baseLog *logger.Logger) SymptomRepo {
  repoLog := baseLog.With("repo", "SymptomRepo")
  return &symptomRepo{db: db, log: repoLog}
}

func (sr *symptomRepo) Create(ctx context.Context, tx *gorm.DB, symptoms []*types.Symptom) ([]*types.Symptom, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  if len(symptoms) == 0 {
    return []*types.Symptom{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&symptoms).Error; err != nil {
    return nil, err
  }
  return symptoms, nil
}

func (sr *symptomRepo) GetByIDs(ctx context.Context, tx *gorm.DB, symptomIDs []uuid.UUID) ([]*types.Symptom, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  if len(symptomIDs) == 0 {
    return []*types.Symptom{}, nil
  }

  var results []*types.Symptom
  if err := transaction.WithContext(ctx).
    Where("id IN ?", symptomIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetByUserBetween returns check-ins oldest first.
func (sr *symptomRepo) GetByUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) ([]*types.Symptom, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  var results []*types.Symptom
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND timestamp >= ? AND timestamp < ?", userID, from, to).
    Order("timestamp ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (sr *symptomRepo) Update(ctx context.Context, tx *gorm.DB, symptom *types.Symptom) (*types.Symptom, error) {
  transaction := tx
  if transaction == nil {
    transaction = sr.db
  }

  if err := transaction.WithContext(ctx).Save(symptom).Error; err != nil {
    return nil, err
  }
  return symptom, nil
}

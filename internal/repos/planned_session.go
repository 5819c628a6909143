package repos

import (
  "context"
  "time"
  "github.com/google/uuid"
  "gorm.io/gorm"
  "github.com/janisoldani/Injury-Risk-Detector/internal/logger"
  "github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

type PlannedSessionRepo interface {
  Create(ctx context.Context, tx *gorm.DB, sessions []*types.PlannedSession) ([]*types.PlannedSession, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.PlannedSession, error)
  GetByUserFrom(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from time.Time) ([]*types.PlannedSession, error)
  Update(ctx context.Context, tx *gorm.DB, session *types.PlannedSession) (*types.PlannedSession, error)
  Delete(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error
}

type plannedSessionRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPlannedSessionRepo(db *gorm.DB, baseLog *logger.Logger) PlannedSessionRepo {
  repoLog := baseLog.With("repo", "PlannedSessionRepo")
  return &plannedSessionRepo{db: db, log: repoLog}
}

func (pr *plannedSessionRepo) Create(ctx context.Context, tx *gorm.DB, sessions []*types.PlannedSession) ([]*types.PlannedSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if len(sessions) == 0 {
    return []*types.PlannedSession{}, nil
  }

  if err := transaction.WithContext(ctx).Create(&sessions).Error; err != nil {
    return nil, err
  }
  return sessions, nil
}

func (pr *plannedSessionRepo) GetByIDs(ctx context.Context, tx *gorm.DB, sessionIDs []uuid.UUID) ([]*types.PlannedSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.PlannedSession
  if len(sessionIDs) == 0 {
    return results, nil
  }

  if err := transaction.WithContext(ctx).
    Where("id IN ?", sessionIDs).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

// GetByUserFrom lists sessions planned at or after the given time, soonest
// first.
func (pr *plannedSessionRepo) GetByUserFrom(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from time.Time) ([]*types.PlannedSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  var results []*types.PlannedSession
  if err := transaction.WithContext(ctx).
    Where("user_id = ? AND planned_start_time >= ?", userID, from).
    Order("planned_start_time ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (pr *plannedSessionRepo) Update(ctx context.Context, tx *gorm.DB, session *types.PlannedSession) (*types.PlannedSession, error) {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  if err := transaction.WithContext(ctx).Save(session).Error; err != nil {
    return nil, err
  }
  return session, nil
}

func (pr *plannedSessionRepo) Delete(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = pr.db
  }

  return transaction.WithContext(ctx).
    Where("id = ?", sessionID).
    Delete(&types.PlannedSession{}).Error
}

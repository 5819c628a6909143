package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

// Label records whether an overload event actually followed a session.
// Collected as ground truth for a future trained model.
type Label struct {
  gorm.Model
  ID               uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID           uuid.UUID       `gorm:"index;not null" json:"user_id"`
  User             *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  PlannedSessionID *uuid.UUID      `gorm:"column:planned_session_id" json:"planned_session_id"`
  PlannedSession   *PlannedSession `gorm:"foreignKey:PlannedSessionID;references:ID" json:"-"`

  LabelDate        time.Time       `gorm:"not null;index;column:label_date" json:"label_date"`
  OverloadEvent    bool            `gorm:"not null;column:overload_event" json:"overload_event"`
  Reason           string          `gorm:"not null;column:reason" json:"reason"`
  Severity         int             `gorm:"not null;default:0;column:severity" json:"severity"`
  TargetHorizon    string          `gorm:"not null;default:'next_session';column:target_horizon" json:"target_horizon"`

  Notes            *string         `gorm:"column:notes" json:"notes"`
  CreatedAt        time.Time       `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt        time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Label) TableName() string {
  return "label"
}

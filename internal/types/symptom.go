package types

import (
  "time"
  "gorm.io/gorm"
  "gorm.io/datatypes"
  "github.com/google/uuid"
)

type Symptom struct {
  gorm.Model
  ID              uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID          uuid.UUID      `gorm:"index;not null" json:"user_id"`
  User            *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  Timestamp       time.Time      `gorm:"not null;index;column:timestamp" json:"timestamp"`

  PainScore       int            `gorm:"not null;default:0;column:pain_score" json:"pain_score"`
  PainLocation    *string        `gorm:"column:pain_location" json:"pain_location"`
  PainDescription *string        `gorm:"column:pain_description" json:"pain_description"`
  Swelling        bool           `gorm:"not null;default:false;column:swelling" json:"swelling"`

  // Per-muscle soreness levels, e.g. {"quads": 5, "hamstrings": 3}.
  SorenessMap     datatypes.JSON `gorm:"column:soreness_map" json:"soreness_map"`

  Readiness       int            `gorm:"not null;default:7;column:readiness" json:"readiness"`
  Fatigue         int            `gorm:"not null;default:3;column:fatigue" json:"fatigue"`

  PhysioVisit     bool           `gorm:"not null;default:false;column:physio_visit" json:"physio_visit"`
  DiagnosisTag    *string        `gorm:"column:diagnosis_tag" json:"diagnosis_tag"`

  Notes           *string        `gorm:"column:notes" json:"notes"`
  CreatedAt       time.Time      `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Symptom) TableName() string {
  return "symptom"
}

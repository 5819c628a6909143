package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

type Workout struct {
  gorm.Model
  ID              uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID          uuid.UUID     `gorm:"index;not null" json:"user_id"`
  User            *User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

  SportType       string        `gorm:"not null;column:sport_type" json:"sport_type"`
  StartTime       time.Time     `gorm:"not null;index;column:start_time" json:"start_time"`
  DurationMinutes int           `gorm:"not null;column:duration_minutes" json:"duration_minutes"`

  AvgHR           *int          `gorm:"column:avg_hr" json:"avg_hr"`
  MaxHR           *int          `gorm:"column:max_hr" json:"max_hr"`

  Calories        *int          `gorm:"column:calories" json:"calories"`
  DistanceMeters  *float64      `gorm:"column:distance_meters" json:"distance_meters"`
  TrainingEffect  *float64      `gorm:"column:training_effect" json:"training_effect"`

  IntensityZone   *string       `gorm:"column:intensity_zone" json:"intensity_zone"`
  GymSplit        *string       `gorm:"column:gym_split" json:"gym_split"`

  // Banister training impulse, computed on ingest when HR data is present.
  TRIMP           *float64      `gorm:"column:trimp" json:"trimp"`

  Notes           *string       `gorm:"column:notes" json:"notes"`
  Source          *string       `gorm:"column:source" json:"source"`
  ExternalID      *string       `gorm:"column:external_id" json:"external_id"`

  CreatedAt       time.Time     `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt       time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (Workout) TableName() string {
  return "workout"
}

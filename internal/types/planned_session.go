package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

type PlannedSession struct {
  gorm.Model
  ID                     uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID                 uuid.UUID  `gorm:"index;not null" json:"user_id"`
  User                   *User      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`

  SportType              string     `gorm:"not null;column:sport_type" json:"sport_type"`
  PlannedStartTime       time.Time  `gorm:"not null;index;column:planned_start_time" json:"planned_start_time"`
  PlannedDurationMinutes int        `gorm:"not null;column:planned_duration_minutes" json:"planned_duration_minutes"`
  PlannedIntensity       *string    `gorm:"column:planned_intensity" json:"planned_intensity"`
  GymSplit               *string    `gorm:"column:gym_split" json:"gym_split"`
  Goal                   string     `gorm:"not null;default:'endurance';column:goal" json:"goal"`
  Priority               int        `gorm:"not null;default:1;column:priority" json:"priority"`

  IsCompleted            bool       `gorm:"not null;default:false;column:is_completed" json:"is_completed"`
  CompletedWorkoutID     *uuid.UUID `gorm:"column:completed_workout_id" json:"completed_workout_id"`
  CompletedWorkout       *Workout   `gorm:"foreignKey:CompletedWorkoutID;references:ID" json:"-"`

  Notes                  *string    `gorm:"column:notes" json:"notes"`
  CreatedAt              time.Time  `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt              time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (PlannedSession) TableName() string {
  return "planned_session"
}

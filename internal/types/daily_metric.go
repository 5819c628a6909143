package types

import (
  "time"
  "gorm.io/gorm"
  "github.com/google/uuid"
)

// DailyMetric is one calendar day of wearable health data plus the load and
// baseline columns maintained by the metrics pipeline.
type DailyMetric struct {
  gorm.Model
  ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  UserID        uuid.UUID       `gorm:"index;not null;uniqueIndex:uq_user_date" json:"user_id"`
  User          *User           `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"-"`
  Date          time.Time       `gorm:"type:date;not null;index;uniqueIndex:uq_user_date;column:date" json:"date"`

  SleepScore           *int     `gorm:"column:sleep_score" json:"sleep_score"`
  SleepDurationMinutes *int     `gorm:"column:sleep_duration_minutes" json:"sleep_duration_minutes"`
  HRVRMSSD             *float64 `gorm:"column:hrv_rmssd" json:"hrv_rmssd"`
  RestingHR            *int     `gorm:"column:resting_hr" json:"resting_hr"`
  BodyBattery          *int     `gorm:"column:body_battery" json:"body_battery"`
  StressScore          *int     `gorm:"column:stress_score" json:"stress_score"`

  TrainingLoad7d  *float64     `gorm:"column:training_load_7d" json:"training_load_7d"`
  AcuteLoad7d     *float64     `gorm:"column:acute_load_7d" json:"acute_load_7d"`
  ChronicLoad28d  *float64     `gorm:"column:chronic_load_28d" json:"chronic_load_28d"`
  ACWR            *float64     `gorm:"column:acwr" json:"acwr"`
  Monotony        *float64     `gorm:"column:monotony" json:"monotony"`
  Strain          *float64     `gorm:"column:strain" json:"strain"`

  HRVBaselineMean   *float64   `gorm:"column:hrv_baseline_mean" json:"hrv_baseline_mean"`
  HRVBaselineStd    *float64   `gorm:"column:hrv_baseline_std" json:"hrv_baseline_std"`
  RHRBaselineMean   *float64   `gorm:"column:rhr_baseline_mean" json:"rhr_baseline_mean"`
  SleepBaselineMean *float64   `gorm:"column:sleep_baseline_mean" json:"sleep_baseline_mean"`

  MissingFieldsMask int        `gorm:"not null;default:0;column:missing_fields_mask" json:"missing_fields_mask"`

  CreatedAt     time.Time       `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt     time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (DailyMetric) TableName() string {
  return "daily_metric"
}

package types

import (
  "time"
  "gorm.io/gorm"
  "gorm.io/datatypes"
  "github.com/google/uuid"
)

type User struct {
  gorm.Model
  ID            uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  Email         string          `gorm:"uniqueIndex;not null;column:email" json:"email"`
  SportProfile  string          `gorm:"not null;default:'high_training_load';column:sport_profile" json:"sport_profile"`
  Timezone      string          `gorm:"not null;default:'Europe/Zurich';column:timezone" json:"timezone"`
  DeviceSources datatypes.JSON  `gorm:"column:device_sources" json:"device_sources"`
  CreatedAt     time.Time       `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt     time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string {
  return "user"
}

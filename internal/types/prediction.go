package types

import (
  "time"
  "gorm.io/gorm"
  "gorm.io/datatypes"
  "github.com/google/uuid"
)

// Prediction is one stored risk verdict for a planned session. The JSON
// columns hold the factor list, triggered rules, recommendations and the
// feature snapshot exactly as the scorer produced them.
type Prediction struct {
  gorm.Model
  ID                   uuid.UUID       `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
  PlannedSessionID     uuid.UUID       `gorm:"index;not null" json:"planned_session_id"`
  PlannedSession       *PlannedSession `gorm:"constraint:OnDelete:CASCADE;foreignKey:PlannedSessionID;references:ID" json:"-"`

  RiskScore            int             `gorm:"not null;column:risk_score" json:"risk_score"`
  RiskLevel            string          `gorm:"not null;column:risk_level" json:"risk_level"`

  TopFactors           datatypes.JSON  `gorm:"column:top_factors" json:"top_factors"`
  ExplanationText      string          `gorm:"not null;column:explanation_text" json:"explanation_text"`
  TriggeredSafetyRules datatypes.JSON  `gorm:"column:triggered_safety_rules" json:"triggered_safety_rules"`

  RecommendationA      datatypes.JSON  `gorm:"not null;column:recommendation_a" json:"recommendation_a"`
  RecommendationB      datatypes.JSON  `gorm:"not null;column:recommendation_b" json:"recommendation_b"`

  ModelVersion         string          `gorm:"not null;default:'heuristic_v1';column:model_version" json:"model_version"`
  FeatureSnapshot      datatypes.JSON  `gorm:"column:feature_snapshot" json:"feature_snapshot"`

  CreatedAt            time.Time       `gorm:"not null;default:now()" json:"created_at"`
  UpdatedAt            time.Time       `gorm:"not null;default:now()" json:"updated_at"`
}

func (Prediction) TableName() string {
  return "prediction"
}

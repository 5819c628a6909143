package handlers

import (
  "net/http"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/janisoldani/Injury-Risk-Detector/internal/middleware"
  "github.com/janisoldani/Injury-Risk-Detector/internal/services"
)

type ImportHandler struct {
  importService  services.ImportService
}

func NewImportHandler(importService services.ImportService) *ImportHandler {
  return &ImportHandler{importService: importService}
}

type ImportWorkout struct {
  SportType       string	  `json:"sport_type" binding:"required"`
  StartTime       time.Time	  `json:"start_time" binding:"required"`
  DurationMinutes int		  `json:"duration_minutes" binding:"required"`
  AvgHR           *int		  `json:"avg_hr"`
  MaxHR           *int		  `json:"max_hr"`
  Calories        *int		  `json:"calories"`
  DistanceMeters  *float64	  `json:"distance_meters"`
  TrainingEffect  *float64	  `json:"training_effect"`
  IntensityZone   *string	  `json:"intensity_zone"`
  ExternalID      *string	  `json:"external_id"`
}

type ImportDailyMetric struct {
  Date                 time.Time	`json:"date" binding:"required"`
  RestingHR            *int		`json:"resting_hr"`
  HRVRMSSD             *float64		`json:"hrv_rmssd"`
  SleepDurationMinutes *int		`json:"sleep_duration_minutes"`
  SleepScore           *int		`json:"sleep_score"`
  BodyBattery          *int		`json:"body_battery"`
  StressScore          *int		`json:"stress_score"`
}

type ImportBatchRequest struct {
  Workouts     []ImportWorkout	    `json:"workouts"`
  DailyMetrics []ImportDailyMetric  `json:"daily_metrics"`
  Source       string		    `json:"source"`
}

// Batch ingests pre-parsed device data. Binary file decoding happens
// upstream.
func (ih *ImportHandler) Batch(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  var req ImportBatchRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }

  batch := services.ImportBatch{Source: req.Source}
  var sourcePtr *string
  if req.Source != "" {
    sourcePtr = &req.Source
  }
  for _, w := range req.Workouts {
    batch.Workouts = append(batch.Workouts, services.WorkoutInput{
      SportType:       w.SportType,
      StartTime:       w.StartTime,
      DurationMinutes: w.DurationMinutes,
      AvgHR:           w.AvgHR,
      MaxHR:           w.MaxHR,
      Calories:        w.Calories,
      DistanceMeters:  w.DistanceMeters,
      TrainingEffect:  w.TrainingEffect,
      IntensityZone:   w.IntensityZone,
      Source:          sourcePtr,
      ExternalID:      w.ExternalID,
    })
  }
  for _, m := range req.DailyMetrics {
    batch.DailyMetrics = append(batch.DailyMetrics, services.DailyMetricInput{
      Date:                 m.Date,
      RestingHR:            m.RestingHR,
      HRVRMSSD:             m.HRVRMSSD,
      SleepDurationMinutes: m.SleepDurationMinutes,
      SleepScore:           m.SleepScore,
      BodyBattery:          m.BodyBattery,
      StressScore:          m.StressScore,
    })
  }

  result, err := ih.importService.ImportBatch(c.Request.Context(), userID, batch)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, result)
}

func (ih *ImportHandler) Stats(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  stats, err := ih.importService.Stats(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, stats)
}

package handlers

import (
  "net/http"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/janisoldani/Injury-Risk-Detector/internal/middleware"
  "github.com/janisoldani/Injury-Risk-Detector/internal/services"
)

type WorkoutHandler struct {
  workoutService  services.WorkoutService
}

func NewWorkoutHandler(workoutService services.WorkoutService) *WorkoutHandler {
  return &WorkoutHandler{workoutService: workoutService}
}

type CreateWorkoutRequest struct {
  SportType       string	  `json:"sport_type" binding:"required"`
  StartTime       time.Time	  `json:"start_time" binding:"required"`
  DurationMinutes int		  `json:"duration_minutes" binding:"required"`
  AvgHR           *int		  `json:"avg_hr"`
  MaxHR           *int		  `json:"max_hr"`
  Calories        *int		  `json:"calories"`
  DistanceMeters  *float64	  `json:"distance_meters"`
  TrainingEffect  *float64	  `json:"training_effect"`
  IntensityZone   *string	  `json:"intensity_zone"`
  GymSplit        *string	  `json:"gym_split"`
  Notes           *string	  `json:"notes"`
  Source          *string	  `json:"source"`
  ExternalID      *string	  `json:"external_id"`
}

func (wh *WorkoutHandler) Create(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  var req CreateWorkoutRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  workout, err := wh.workoutService.Create(c.Request.Context(), userID, services.WorkoutInput{
    SportType:       req.SportType,
    StartTime:       req.StartTime,
    DurationMinutes: req.DurationMinutes,
    AvgHR:           req.AvgHR,
    MaxHR:           req.MaxHR,
    Calories:        req.Calories,
    DistanceMeters:  req.DistanceMeters,
    TrainingEffect:  req.TrainingEffect,
    IntensityZone:   req.IntensityZone,
    GymSplit:        req.GymSplit,
    Notes:           req.Notes,
    Source:          req.Source,
    ExternalID:      req.ExternalID,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, gin.H{"workout": workout})
}

func (wh *WorkoutHandler) List(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  from, to, err := parseTimeRange(c)
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_query", err)
    return
  }
  workouts, err := wh.workoutService.List(c.Request.Context(), userID, from, to)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"workouts": workouts})
}

func (wh *WorkoutHandler) Get(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  workoutID, err := parseIDParam(c, "id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  workout, err := wh.workoutService.GetByID(c.Request.Context(), userID, workoutID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"workout": workout})
}

func (wh *WorkoutHandler) Delete(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  workoutID, err := parseIDParam(c, "id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  if err := wh.workoutService.Delete(c.Request.Context(), userID, workoutID); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}

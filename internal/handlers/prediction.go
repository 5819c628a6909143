package handlers

import (
  "net/http"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/janisoldani/Injury-Risk-Detector/internal/middleware"
  "github.com/janisoldani/Injury-Risk-Detector/internal/services"
)

type PredictionHandler struct {
  predictionService  services.PredictionService
}

func NewPredictionHandler(predictionService services.PredictionService) *PredictionHandler {
  return &PredictionHandler{predictionService: predictionService}
}

type QuickEvaluateRequest struct {
  SportType       string	`json:"sport_type" binding:"required"`
  DurationMinutes int		`json:"duration_minutes" binding:"required"`
  Intensity       *string	`json:"intensity"`
  GymSplit        *string	`json:"gym_split"`
  Date            *time.Time	`json:"date"`
}

type CreateLabelRequest struct {
  PlannedSessionID *uuid.UUID	`json:"planned_session_id"`
  LabelDate        time.Time	`json:"label_date" binding:"required"`
  OverloadEvent    bool		`json:"overload_event"`
  Reason           string	`json:"reason" binding:"required"`
  Severity         *int		`json:"severity"`
  Notes            *string	`json:"notes"`
}

// Evaluate scores a stored planned session and persists the verdict.
func (ph *PredictionHandler) Evaluate(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  sessionID, err := parseIDParam(c, "id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  prediction, err := ph.predictionService.EvaluateSession(c.Request.Context(), userID, sessionID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, gin.H{"prediction": prediction})
}

// QuickEvaluate scores an ad-hoc session without persisting anything.
func (ph *PredictionHandler) QuickEvaluate(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  var req QuickEvaluateRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  verdict, err := ph.predictionService.QuickEvaluate(c.Request.Context(), userID, services.QuickEvaluateInput{
    SportType:       req.SportType,
    DurationMinutes: req.DurationMinutes,
    Intensity:       req.Intensity,
    GymSplit:        req.GymSplit,
    Date:            req.Date,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"verdict": verdict})
}

func (ph *PredictionHandler) GetLatest(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  sessionID, err := parseIDParam(c, "id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  prediction, err := ph.predictionService.GetLatest(c.Request.Context(), userID, sessionID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"prediction": prediction})
}

func (ph *PredictionHandler) History(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  sessionID, err := parseIDParam(c, "id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  predictions, err := ph.predictionService.History(c.Request.Context(), userID, sessionID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"predictions": predictions})
}

func (ph *PredictionHandler) CreateLabel(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  var req CreateLabelRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  label, err := ph.predictionService.CreateLabel(c.Request.Context(), userID, services.LabelInput{
    PlannedSessionID: req.PlannedSessionID,
    LabelDate:        req.LabelDate,
    OverloadEvent:    req.OverloadEvent,
    Reason:           req.Reason,
    Severity:         req.Severity,
    Notes:            req.Notes,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, gin.H{"label": label})
}

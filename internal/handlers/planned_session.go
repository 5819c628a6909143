package handlers

import (
  "errors"
  "io"
  "net/http"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/google/uuid"
  "github.com/janisoldani/Injury-Risk-Detector/internal/middleware"
  "github.com/janisoldani/Injury-Risk-Detector/internal/services"
)

type PlannedSessionHandler struct {
  sessionService  services.PlannedSessionService
}

func NewPlannedSessionHandler(sessionService services.PlannedSessionService) *PlannedSessionHandler {
  return &PlannedSessionHandler{sessionService: sessionService}
}

type CreatePlannedSessionRequest struct {
  SportType              string	    `json:"sport_type" binding:"required"`
  PlannedStartTime       time.Time  `json:"planned_start_time" binding:"required"`
  PlannedDurationMinutes int	    `json:"planned_duration_minutes" binding:"required"`
  PlannedIntensity       *string    `json:"planned_intensity"`
  GymSplit               *string    `json:"gym_split"`
  Goal                   *string    `json:"goal"`
  Priority               *int	    `json:"priority"`
  Notes                  *string    `json:"notes"`
}

type UpdatePlannedSessionRequest struct {
  SportType              *string     `json:"sport_type"`
  PlannedStartTime       *time.Time  `json:"planned_start_time"`
  PlannedDurationMinutes *int	     `json:"planned_duration_minutes"`
  PlannedIntensity       *string     `json:"planned_intensity"`
  GymSplit               *string     `json:"gym_split"`
  Goal                   *string     `json:"goal"`
  Priority               *int	     `json:"priority"`
  Notes                  *string     `json:"notes"`
}

type CompleteSessionRequest struct {
  WorkoutID   *uuid.UUID  `json:"workout_id"`
}

func (ph *PlannedSessionHandler) Create(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  var req CreatePlannedSessionRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  session, err := ph.sessionService.Create(c.Request.Context(), userID, services.PlannedSessionInput{
    SportType:              req.SportType,
    PlannedStartTime:       req.PlannedStartTime,
    PlannedDurationMinutes: req.PlannedDurationMinutes,
    PlannedIntensity:       req.PlannedIntensity,
    GymSplit:               req.GymSplit,
    Goal:                   req.Goal,
    Priority:               req.Priority,
    Notes:                  req.Notes,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, gin.H{"planned_session": session})
}

// ListUpcoming lists sessions planned from now, or from the given query
// time.
func (ph *PlannedSessionHandler) ListUpcoming(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  from := time.Now().UTC()
  if raw := c.Query("from"); raw != "" {
    parsed, err := parseTimeParam(raw)
    if err != nil {
      RespondError(c, http.StatusBadRequest, "invalid_query", err)
      return
    }
    from = parsed
  }
  sessions, err := ph.sessionService.ListUpcoming(c.Request.Context(), userID, from)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"planned_sessions": sessions})
}

func (ph *PlannedSessionHandler) Get(c *gin.Context) {
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
  session, err := ph.sessionService.GetByID(c.Request.Context(), userID, sessionID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"planned_session": session})
}

func (ph *PlannedSessionHandler) Patch(c *gin.Context) {
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
  var req UpdatePlannedSessionRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  session, err := ph.sessionService.Update(c.Request.Context(), userID, sessionID, services.PlannedSessionUpdateInput{
    SportType:              req.SportType,
    PlannedStartTime:       req.PlannedStartTime,
    PlannedDurationMinutes: req.PlannedDurationMinutes,
    PlannedIntensity:       req.PlannedIntensity,
    GymSplit:               req.GymSplit,
    Goal:                   req.Goal,
    Priority:               req.Priority,
    Notes:                  req.Notes,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"planned_session": session})
}

func (ph *PlannedSessionHandler) Complete(c *gin.Context) {
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
  // The body is optional; completing without a linked workout is fine.
  var req CompleteSessionRequest
  if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  session, err := ph.sessionService.MarkCompleted(c.Request.Context(), userID, sessionID, req.WorkoutID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"planned_session": session})
}

func (ph *PlannedSessionHandler) Delete(c *gin.Context) {
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
  if err := ph.sessionService.Delete(c.Request.Context(), userID, sessionID); err != nil {
    RespondServiceError(c, err)
    return
  }
  c.Status(http.StatusNoContent)
}

package handlers

import (
  "net/http"
  "time"
  "github.com/gin-gonic/gin"
  "github.com/janisoldani/Injury-Risk-Detector/internal/middleware"
  "github.com/janisoldani/Injury-Risk-Detector/internal/services"
)

type SymptomHandler struct {
  symptomService  services.SymptomService
}

func NewSymptomHandler(symptomService services.SymptomService) *SymptomHandler {
  return &SymptomHandler{symptomService: symptomService}
}

type CreateSymptomRequest struct {
  Timestamp       *time.Time	  `json:"timestamp"`
  PainScore       int		  `json:"pain_score"`
  PainLocation    *string	  `json:"pain_location"`
  PainDescription *string	  `json:"pain_description"`
  Swelling        bool		  `json:"swelling"`
  SorenessMap     map[string]int  `json:"soreness_map"`
  Readiness       *int		  `json:"readiness"`
  Fatigue         *int		  `json:"fatigue"`
  PhysioVisit     bool		  `json:"physio_visit"`
  DiagnosisTag    *string	  `json:"diagnosis_tag"`
  Notes           *string	  `json:"notes"`
}

func (sh *SymptomHandler) Create(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  var req CreateSymptomRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  symptom, err := sh.symptomService.Create(c.Request.Context(), userID, services.SymptomInput{
    Timestamp:       req.Timestamp,
    PainScore:       req.PainScore,
    PainLocation:    req.PainLocation,
    PainDescription: req.PainDescription,
    Swelling:        req.Swelling,
    SorenessMap:     req.SorenessMap,
    Readiness:       req.Readiness,
    Fatigue:         req.Fatigue,
    PhysioVisit:     req.PhysioVisit,
    DiagnosisTag:    req.DiagnosisTag,
    Notes:           req.Notes,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, gin.H{"symptom": symptom})
}

type UpdateSymptomRequest struct {
  PainScore       *int		  `json:"pain_score"`
  PainLocation    *string	  `json:"pain_location"`
  PainDescription *string	  `json:"pain_description"`
  Swelling        *bool		  `json:"swelling"`
  SorenessMap     map[string]int  `json:"soreness_map"`
  Readiness       *int		  `json:"readiness"`
  Fatigue         *int		  `json:"fatigue"`
  PhysioVisit     *bool		  `json:"physio_visit"`
  DiagnosisTag    *string	  `json:"diagnosis_tag"`
  Notes           *string	  `json:"notes"`
}

func (sh *SymptomHandler) Get(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  symptomID, err := parseIDParam(c, "id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  symptom, err := sh.symptomService.GetByID(c.Request.Context(), userID, symptomID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"symptom": symptom})
}

func (sh *SymptomHandler) Patch(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  symptomID, err := parseIDParam(c, "id")
  if err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_id", err)
    return
  }
  var req UpdateSymptomRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  symptom, err := sh.symptomService.Update(c.Request.Context(), userID, symptomID, services.SymptomUpdateInput{
    PainScore:       req.PainScore,
    PainLocation:    req.PainLocation,
    PainDescription: req.PainDescription,
    Swelling:        req.Swelling,
    SorenessMap:     req.SorenessMap,
    Readiness:       req.Readiness,
    Fatigue:         req.Fatigue,
    PhysioVisit:     req.PhysioVisit,
    DiagnosisTag:    req.DiagnosisTag,
    Notes:           req.Notes,
  })
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"symptom": symptom})
}

func (sh *SymptomHandler) List(c *gin.Context) {
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
  symptoms, err := sh.symptomService.List(c.Request.Context(), userID, from, to)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"symptoms": symptoms})
}

// Today returns the check-ins logged since local midnight UTC.
func (sh *SymptomHandler) Today(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  now := time.Now().UTC()
  dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
  symptoms, err := sh.symptomService.List(c.Request.Context(), userID, dayStart, now)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"symptoms": symptoms})
}

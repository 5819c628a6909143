package handlers

import (
  "errors"
  "net/http"
  "github.com/gin-gonic/gin"
  apperrors "github.com/janisoldani/Injury-Risk-Detector/internal/pkg/errors"
)

type APIError struct {
  Message     string	`json:"message"`
  Code	      string	`json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error	      APIError	`json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

// RespondServiceError maps the service-layer sentinel errors onto status
// codes. Anything unrecognized is a 500.
func RespondServiceError(c *gin.Context, err error) {
  switch {
  case errors.Is(err, apperrors.ErrNotFound):
    RespondError(c, http.StatusNotFound, "not_found", err)
  case errors.Is(err, apperrors.ErrInvalidArgument):
    RespondError(c, http.StatusBadRequest, "invalid_argument", err)
  default:
    RespondError(c, http.StatusInternalServerError, "internal", err)
  }
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

func RespondCreated(c *gin.Context, payload any) {
  c.JSON(http.StatusCreated, payload)
}

package handlers

import (
  "net/http"
  "github.com/gin-gonic/gin"
  "github.com/janisoldani/Injury-Risk-Detector/internal/middleware"
  "github.com/janisoldani/Injury-Risk-Detector/internal/services"
)

type UserHandler struct {
  userService     services.UserService
}

func NewUserHandler(userService services.UserService) *UserHandler {
  return &UserHandler{userService: userService}
}

type CreateUserRequest struct {
  Email         string	  `json:"email" binding:"required,email"`
  SportProfile  *string	  `json:"sport_profile"`
  Timezone      *string	  `json:"timezone"`
  DeviceSources []string  `json:"device_sources"`
}

type UpdateUserRequest struct {
  SportProfile  *string	  `json:"sport_profile"`
  Timezone      *string	  `json:"timezone"`
}

func (uh *UserHandler) Create(c *gin.Context) {
  var req CreateUserRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  user, err := uh.userService.Create(c.Request.Context(), req.Email, req.SportProfile, req.Timezone, req.DeviceSources)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondCreated(c, gin.H{"user": user})
}

func (uh *UserHandler) GetMe(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  user, err := uh.userService.GetByID(c.Request.Context(), userID)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"user": user})
}

func (uh *UserHandler) UpdateMe(c *gin.Context) {
  userID, ok := middleware.UserID(c)
  if !ok {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }
  var req UpdateUserRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  user, err := uh.userService.UpdateProfile(c.Request.Context(), userID, req.SportProfile, req.Timezone)
  if err != nil {
    RespondServiceError(c, err)
    return
  }
  RespondOK(c, gin.H{"user": user})
}

package server

import (
  "github.com/gin-gonic/gin"
  "github.com/gin-contrib/cors"
  "github.com/janisoldani/Injury-Risk-Detector/internal/handlers"
  "github.com/janisoldani/Injury-Risk-Detector/internal/middleware"
  "github.com/janisoldani/Injury-Risk-Detector/internal/observability"
)

type RouterConfig struct {
  RequireUser           *middleware.RequireUserMiddleware
  UserHandler           *handlers.UserHandler
  WorkoutHandler        *handlers.WorkoutHandler
  SymptomHandler        *handlers.SymptomHandler
  PlannedSessionHandler *handlers.PlannedSessionHandler
  PredictionHandler     *handlers.PredictionHandler
  ImportHandler         *handlers.ImportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  // Cors
  router.Use(cors.New(cors.Config{
    AllowOrigins: []string{
      "http://localhost:80",
      "http://localhost:3000",
      "http://localhost:5173",
    },
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Content-Type", "X-Requested-With", "X-User-ID"},
    AllowCredentials: true,
  }))
  router.Use(observability.Middleware())

// ===============
// || Public    ||
// ===============
  router.GET("/healthcheck", handlers.HealthCheck)
  router.GET("/metrics", observability.Handler())
  router.POST("/api/v1/users", cfg.UserHandler.Create)

// ===============
// || Protected ||
// ===============
  api := router.Group("/api/v1")
  api.Use(cfg.RequireUser.RequireUser())
  // User
  api.GET("/users/me", cfg.UserHandler.GetMe)
  api.PATCH("/users/me", cfg.UserHandler.UpdateMe)
  // Workouts
  api.POST("/workouts", cfg.WorkoutHandler.Create)
  api.GET("/workouts", cfg.WorkoutHandler.List)
  api.GET("/workouts/:id", cfg.WorkoutHandler.Get)
  api.DELETE("/workouts/:id", cfg.WorkoutHandler.Delete)
  // Symptoms
  api.POST("/symptoms", cfg.SymptomHandler.Create)
  api.GET("/symptoms", cfg.SymptomHandler.List)
  api.GET("/symptoms/today", cfg.SymptomHandler.Today)
  api.GET("/symptoms/:id", cfg.SymptomHandler.Get)
  api.PATCH("/symptoms/:id", cfg.SymptomHandler.Patch)
  // Planned sessions
  api.POST("/planned-sessions", cfg.PlannedSessionHandler.Create)
  api.GET("/planned-sessions", cfg.PlannedSessionHandler.ListUpcoming)
  api.GET("/planned-sessions/:id", cfg.PlannedSessionHandler.Get)
  api.PATCH("/planned-sessions/:id", cfg.PlannedSessionHandler.Patch)
  api.POST("/planned-sessions/:id/complete", cfg.PlannedSessionHandler.Complete)
  api.DELETE("/planned-sessions/:id", cfg.PlannedSessionHandler.Delete)
  // Predictions
  api.POST("/planned-sessions/:id/evaluate", cfg.PredictionHandler.Evaluate)
  api.GET("/planned-sessions/:id/prediction", cfg.PredictionHandler.GetLatest)
  api.GET("/planned-sessions/:id/predictions", cfg.PredictionHandler.History)
  api.POST("/predictions/quick-evaluate", cfg.PredictionHandler.QuickEvaluate)
  api.POST("/labels", cfg.PredictionHandler.CreateLabel)
  // Imports
  api.POST("/imports/batch", cfg.ImportHandler.Batch)
  api.GET("/imports/stats", cfg.ImportHandler.Stats)

  return router
}

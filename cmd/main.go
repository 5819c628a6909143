package main

import (
  "fmt"
  "os"
  "github.com/joho/godotenv"
  "github.com/janisoldani/Injury-Risk-Detector/internal/logger"
  "github.com/janisoldani/Injury-Risk-Detector/internal/utils"
  "github.com/janisoldani/Injury-Risk-Detector/internal/db"
  "github.com/janisoldani/Injury-Risk-Detector/internal/clients/redis"
  "github.com/janisoldani/Injury-Risk-Detector/internal/repos"
  "github.com/janisoldani/Injury-Risk-Detector/internal/risk"
  "github.com/janisoldani/Injury-Risk-Detector/internal/services"
  "github.com/janisoldani/Injury-Risk-Detector/internal/handlers"
  "github.com/janisoldani/Injury-Risk-Detector/internal/middleware"
  "github.com/janisoldani/Injury-Risk-Detector/internal/server"
)

func main() {
  // Env file (optional, local development)
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Scoring config override
  if path := os.Getenv("SCORING_CONFIG_PATH"); path != "" {
    if _, err := risk.LoadCurrentConfigFromFile(path); err != nil {
      log.Error("Failed to load scoring config", "error", err, "path", path)
      os.Exit(1)
    }
    log.Info("Loaded scoring config override", "path", path)
  }

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Warn("Postgres auto migration failed", "error", err)
  }
  thePG := postgresService.DB()

  // Redis (optional)
  var predictionCache redis.PredictionCache
  if os.Getenv("REDIS_ADDR") != "" {
    predictionCache, err = redis.NewPredictionCache(log)
    if err != nil {
      log.Warn("Redis init failed, running without prediction cache", "error", err)
      predictionCache = nil
    } else {
      defer predictionCache.Close()
    }
  }

  // Repos
  log.Info("Setting up Repos from main...")
  userRepo := repos.NewUserRepo(thePG, log)
  metricRepo := repos.NewDailyMetricRepo(thePG, log)
  workoutRepo := repos.NewWorkoutRepo(thePG, log)
  symptomRepo := repos.NewSymptomRepo(thePG, log)
  sessionRepo := repos.NewPlannedSessionRepo(thePG, log)
  predictionRepo := repos.NewPredictionRepo(thePG, log)
  labelRepo := repos.NewLabelRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  userService := services.NewUserService(thePG, log, userRepo)
  workoutService := services.NewWorkoutService(thePG, log, workoutRepo)
  symptomService := services.NewSymptomService(thePG, log, symptomRepo)
  sessionService := services.NewPlannedSessionService(thePG, log, sessionRepo, workoutRepo)
  baselineService := services.NewBaselineService(thePG, log, metricRepo)
  importService := services.NewImportService(thePG, log, workoutRepo, metricRepo, baselineService)
  predictionService := services.NewPredictionService(
    thePG,
    log,
    sessionRepo,
    predictionRepo,
    labelRepo,
    metricRepo,
    symptomRepo,
    workoutRepo,
    predictionCache,
  )

  // Handlers
  log.Info("Setting up handlers from main...")
  userHandler := handlers.NewUserHandler(userService)
  workoutHandler := handlers.NewWorkoutHandler(workoutService)
  symptomHandler := handlers.NewSymptomHandler(symptomService)
  sessionHandler := handlers.NewPlannedSessionHandler(sessionService)
  predictionHandler := handlers.NewPredictionHandler(predictionService)
  importHandler := handlers.NewImportHandler(importService)

  // Middleware
  log.Info("Setting up middleware from main...")
  requireUser := middleware.NewRequireUserMiddleware(log, userRepo)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    RequireUser:           requireUser,
    UserHandler:           userHandler,
    WorkoutHandler:        workoutHandler,
    SymptomHandler:        symptomHandler,
    PlannedSessionHandler: sessionHandler,
    PredictionHandler:     predictionHandler,
    ImportHandler:         importHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  fmt.Printf("Server listening on :%s\n", port)
  if err := router.Run(":" + port); err != nil {
    log.Warn("Server failed", "error", err)
  }
}

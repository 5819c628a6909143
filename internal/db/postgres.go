package db

import (
  "fmt"
  "gorm.io/driver/postgres"
  "gorm.io/gorm"
  "github.com/janisoldani/Injury-Risk-Detector/internal/types"
  "github.com/janisoldani/Injury-Risk-Detector/internal/utils"
  "github.com/janisoldani/Injury-Risk-Detector/internal/logger"
)

type PostgresService struct {
  db *gorm.DB
  log *logger.Logger
}

func NewPostgresService(log *logger.Logger) (*PostgresService, error) {
  serviceLog := log.With("service", "PostgresService")

  log.Info("Loading environment variables...")
  postgresHost := utils.GetEnv("POSTGRES_HOST", "localhost", log)
  postgresPort := utils.GetEnv("POSTGRES_PORT", "5432", log)
  postgresUser := utils.GetEnv("POSTGRES_USER", "postgres", log)
  postgresPassword := utils.GetEnv("POSTGRES_PASSWORD", "", log)
  postgresName := utils.GetEnv("POSTGRES_NAME", "injuryrisk", log)
  log.Debug("Environment variables loaded")

  dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", postgresUser, postgresPassword, postgresHost, postgresPort, postgresName)

  log.Info("Connecting to Postgres...")
  db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
    DisableForeignKeyConstraintWhenMigrating: true,
  })
  if err != nil {
    log.Error("Failed to connect to Postgres", "error", err)
    return nil, fmt.Errorf("Failed to connect to Postgres: %w", err)
  }

  if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`).Error; err != nil {
    log.Error("Failed to enable uuid-ossp extension", "error", err)
    return nil, fmt.Errorf("Failed to enable uuid-ossp extension: %w", err)
  }
  log.Info("uuid-ossp extension enabled")

  return &PostgresService{db: db, log: serviceLog}, nil
}

func (s *PostgresService) AutoMigrateAll() error {
  s.log.Info("Auto migrating postgres tables...")
  err := s.db.AutoMigrate(
    &types.User{},
    &types.DailyMetric{},
    &types.Workout{},
    &types.Symptom{},
    &types.PlannedSession{},
    &types.Prediction{},
    &types.Label{},
  )
  if err != nil {
    s.log.Error("Auto migration failed for postgres tables", "error", err)
    return err
  }
  s.log.Info("Configuring foreign key relationships for postgres tables...")
  constraints := []struct {
    name  string
    table string
    column string
    refTable string
    onDelete string
  }{
    {"fk_daily_metric_user_id", "daily_metric", "user_id", "user", "CASCADE"},
    {"fk_workout_user_id", "workout", "user_id", "user", "CASCADE"},
    {"fk_symptom_user_id", "symptom", "user_id", "user", "CASCADE"},
    {"fk_planned_session_user_id", "planned_session", "user_id", "user", "CASCADE"},
    {"fk_prediction_planned_session_id", "prediction", "planned_session_id", "planned_session", "CASCADE"},
    {"fk_label_user_id", "label", "user_id", "user", "CASCADE"},
  }
  for _, c := range constraints {
    stmt := fmt.Sprintf(`
      ALTER TABLE %q
      DROP CONSTRAINT IF EXISTS %q;
      ALTER TABLE %q
      ADD CONSTRAINT %q
      FOREIGN KEY (%q)
      REFERENCES %q("id")
      ON DELETE %s
    `, c.table, c.name, c.table, c.name, c.column, c.refTable, c.onDelete)
    if err := s.db.Exec(stmt).Error; err != nil {
      return fmt.Errorf("Failed to add %s: %w", c.name, err)
    }
  }
  return nil
}

func (s *PostgresService) DB() *gorm.DB {
  return s.db
}

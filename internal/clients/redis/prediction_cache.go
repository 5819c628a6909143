package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/janisoldani/Injury-Risk-Detector/internal/logger"
	"github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

// PredictionCache keeps the latest stored verdict per planned session so
// repeat reads skip the database. Misses are never errors.
type PredictionCache interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*types.Prediction, error)
	Set(ctx context.Context, prediction *types.Prediction) error
	Invalidate(ctx context.Context, sessionID uuid.UUID) error
	Close() error
}

type predictionCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewPredictionCache(log *logger.Logger) (PredictionCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	ttl := 15 * time.Minute
	if raw := strings.TrimSpace(os.Getenv("PREDICTION_CACHE_TTL")); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid PREDICTION_CACHE_TTL: %w", err)
		}
		ttl = parsed
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &predictionCache{
		log: log.With("service", "RedisPredictionCache"),
		rdb: rdb,
		ttl: ttl,
	}, nil
}

func cacheKey(sessionID uuid.UUID) string {
	return "prediction:latest:" + sessionID.String()
}

func (pc *predictionCache) Get(ctx context.Context, sessionID uuid.UUID) (*types.Prediction, error) {
	raw, err := pc.rdb.Get(ctx, cacheKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var prediction types.Prediction
	if err := json.Unmarshal(raw, &prediction); err != nil {
		pc.log.Warn("Corrupt cached prediction, dropping", "session_id", sessionID.String(), "error", err)
		_ = pc.rdb.Del(ctx, cacheKey(sessionID)).Err()
		return nil, nil
	}
	return &prediction, nil
}

func (pc *predictionCache) Set(ctx context.Context, prediction *types.Prediction) error {
	raw, err := json.Marshal(prediction)
	if err != nil {
		return err
	}
	return pc.rdb.Set(ctx, cacheKey(prediction.PlannedSessionID), raw, pc.ttl).Err()
}

func (pc *predictionCache) Invalidate(ctx context.Context, sessionID uuid.UUID) error {
	return pc.rdb.Del(ctx, cacheKey(sessionID)).Err()
}

func (pc *predictionCache) Close() error {
	return pc.rdb.Close()
}

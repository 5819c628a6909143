package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/janisoldani/Injury-Risk-Detector/internal/clients/redis"
	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
	"github.com/janisoldani/Injury-Risk-Detector/internal/logger"
	"github.com/janisoldani/Injury-Risk-Detector/internal/observability"
	apperrors "github.com/janisoldani/Injury-Risk-Detector/internal/pkg/errors"
	"github.com/janisoldani/Injury-Risk-Detector/internal/repos"
	"github.com/janisoldani/Injury-Risk-Detector/internal/risk"
	"github.com/janisoldani/Injury-Risk-Detector/internal/types"
	"github.com/janisoldani/Injury-Risk-Detector/internal/utils"
)

// QuickEvaluateInput describes an ad-hoc session evaluated without a stored
// planned session. Nothing is persisted for these.
type QuickEvaluateInput struct {
	SportType       string
	DurationMinutes int
	Intensity       *string
	GymSplit        *string
	Date            *time.Time
}

// LabelInput records whether an overload event actually followed a session.
type LabelInput struct {
	PlannedSessionID *uuid.UUID
	LabelDate        time.Time
	OverloadEvent    bool
	Reason           string
	Severity         *int
	Notes            *string
}

type PredictionService interface {
	EvaluateSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.Prediction, error)
	QuickEvaluate(ctx context.Context, userID uuid.UUID, input QuickEvaluateInput) (*risk.Verdict, error)
	GetLatest(ctx context.Context, userID, sessionID uuid.UUID) (*types.Prediction, error)
	History(ctx context.Context, userID, sessionID uuid.UUID) ([]*types.Prediction, error)
	CreateLabel(ctx context.Context, userID uuid.UUID, input LabelInput) (*types.Label, error)
}

type predictionService struct {
	db             *gorm.DB
	log            *logger.Logger
	sessionRepo    repos.PlannedSessionRepo
	predictionRepo repos.PredictionRepo
	labelRepo      repos.LabelRepo
	sources        *featureSources
	thresholds     risk.Thresholds
	cache          redis.PredictionCache
}

// NewPredictionService wires the evaluation pipeline. The cache is optional;
// pass nil to run without one.
func NewPredictionService(
	db *gorm.DB,
	log *logger.Logger,
	sessionRepo repos.PlannedSessionRepo,
	predictionRepo repos.PredictionRepo,
	labelRepo repos.LabelRepo,
	metricRepo repos.DailyMetricRepo,
	symptomRepo repos.SymptomRepo,
	workoutRepo repos.WorkoutRepo,
	cache redis.PredictionCache,
) PredictionService {
	serviceLog := log.With("service", "PredictionService")
	return &predictionService{
		db:             db,
		log:            serviceLog,
		sessionRepo:    sessionRepo,
		predictionRepo: predictionRepo,
		labelRepo:      labelRepo,
		sources:        newFeatureSources(serviceLog, metricRepo, symptomRepo, workoutRepo),
		thresholds:     ThresholdsFromEnv(serviceLog),
		cache:          cache,
	}
}

// ThresholdsFromEnv reads the risk band cutoffs, falling back to the
// defaults when unset.
func ThresholdsFromEnv(log *logger.Logger) risk.Thresholds {
	defaults := risk.DefaultThresholds()
	return risk.Thresholds{
		GreenMax:  utils.GetEnvAsInt("RISK_THRESHOLD_GREEN_MAX", defaults.GreenMax, log),
		YellowMax: utils.GetEnvAsInt("RISK_THRESHOLD_YELLOW_MAX", defaults.YellowMax, log),
	}
}

// EvaluateSession runs the full pipeline for a stored planned session and
// persists the verdict as a new prediction row.
func (ps *predictionService) EvaluateSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.Prediction, error) {
	start := time.Now()

	session, err := ps.ownedSession(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	plan, err := planFromSession(session)
	if err != nil {
		return nil, err
	}

	verdict, err := ps.evaluate(ctx, userID, session.PlannedStartTime, plan)
	if err != nil {
		return nil, err
	}

	prediction, err := buildPrediction(session.ID, verdict)
	if err != nil {
		return nil, err
	}

	created, err := ps.predictionRepo.Create(ctx, nil, []*types.Prediction{prediction})
	if err != nil {
		ps.log.Error("failed to persist prediction", "error", err, "sessionID", sessionID)
		return nil, err
	}
	prediction = created[0]

	if ps.cache != nil {
		if err := ps.cache.Set(ctx, prediction); err != nil {
			ps.log.Warn("failed to cache prediction", "error", err, "sessionID", sessionID)
		}
	}

	observability.EvaluationsTotal.WithLabelValues(string(verdict.RiskLevel)).Inc()
	observability.EvaluationDuration.Observe(time.Since(start).Seconds())
	for _, rule := range verdict.Safety.TriggeredRules {
		observability.SafetyRuleTriggersTotal.WithLabelValues(rule.RuleID).Inc()
	}

	ps.log.Info("evaluated planned session",
		"sessionID", sessionID,
		"riskScore", verdict.RiskScore,
		"riskLevel", verdict.RiskLevel,
	)
	return prediction, nil
}

// QuickEvaluate scores an ad-hoc session without touching a stored plan.
func (ps *predictionService) QuickEvaluate(ctx context.Context, userID uuid.UUID, input QuickEvaluateInput) (*risk.Verdict, error) {
	sport, err := domain.ParseSportType(input.SportType)
	if err != nil {
		return nil, err
	}
	if input.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: field %q", apperrors.ErrInvalidArgument, "duration_minutes")
	}
	plan := risk.PlannedSessionInput{
		Sport:           sport,
		DurationMinutes: input.DurationMinutes,
	}
	if input.Intensity != nil {
		zone, err := domain.ParseIntensityZone(*input.Intensity)
		if err != nil {
			return nil, err
		}
		plan.Intensity = &zone
	}
	if input.GymSplit != nil {
		split, err := domain.ParseGymSplit(*input.GymSplit)
		if err != nil {
			return nil, err
		}
		plan.GymSplit = &split
	}

	date := time.Now().UTC()
	if input.Date != nil {
		date = *input.Date
	}

	verdict, err := ps.evaluate(ctx, userID, date, plan)
	if err != nil {
		return nil, err
	}
	observability.EvaluationsTotal.WithLabelValues(string(verdict.RiskLevel)).Inc()
	return verdict, nil
}

// GetLatest returns the most recent prediction for a session, consulting
// the cache first.
func (ps *predictionService) GetLatest(ctx context.Context, userID, sessionID uuid.UUID) (*types.Prediction, error) {
	if _, err := ps.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}

	if ps.cache != nil {
		cached, err := ps.cache.Get(ctx, sessionID)
		if err != nil {
			ps.log.Warn("prediction cache read failed", "error", err, "sessionID", sessionID)
		} else if cached != nil {
			observability.PredictionCacheHitsTotal.WithLabelValues("hit").Inc()
			return cached, nil
		} else {
			observability.PredictionCacheHitsTotal.WithLabelValues("miss").Inc()
		}
	}

	prediction, err := ps.predictionRepo.GetLatestByPlannedSession(ctx, nil, sessionID)
	if err != nil {
		return nil, err
	}
	if prediction == nil {
		return nil, fmt.Errorf("%w: no prediction for session %s", apperrors.ErrNotFound, sessionID)
	}
	if ps.cache != nil {
		if err := ps.cache.Set(ctx, prediction); err != nil {
			ps.log.Warn("failed to cache prediction", "error", err, "sessionID", sessionID)
		}
	}
	return prediction, nil
}

// History returns all stored predictions for a session, newest first.
func (ps *predictionService) History(ctx context.Context, userID, sessionID uuid.UUID) ([]*types.Prediction, error) {
	if _, err := ps.ownedSession(ctx, userID, sessionID); err != nil {
		return nil, err
	}
	return ps.predictionRepo.GetByPlannedSession(ctx, nil, sessionID)
}

// CreateLabel stores a ground-truth outcome for later model training.
func (ps *predictionService) CreateLabel(ctx context.Context, userID uuid.UUID, input LabelInput) (*types.Label, error) {
	reason, err := domain.ParseLabelReason(input.Reason)
	if err != nil {
		return nil, err
	}
	if input.PlannedSessionID != nil {
		if _, err := ps.ownedSession(ctx, userID, *input.PlannedSessionID); err != nil {
			return nil, err
		}
	}
	severity := 0
	if input.Severity != nil {
		if *input.Severity < 0 || *input.Severity > 10 {
			return nil, fmt.Errorf("%w: field %q must be between 0 and 10", apperrors.ErrInvalidArgument, "severity")
		}
		severity = *input.Severity
	}

	label := &types.Label{
		UserID:           userID,
		PlannedSessionID: input.PlannedSessionID,
		LabelDate:        input.LabelDate,
		OverloadEvent:    input.OverloadEvent,
		Reason:           string(reason),
		Severity:         severity,
		TargetHorizon:    "next_session",
		Notes:            input.Notes,
	}
	created, err := ps.labelRepo.Create(ctx, nil, []*types.Label{label})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (ps *predictionService) evaluate(ctx context.Context, userID uuid.UUID, date time.Time, plan risk.PlannedSessionInput) (*risk.Verdict, error) {
	builder := risk.NewFeatureBuilder(ps.sources, ps.sources, ps.sources, ps.log)
	features, err := builder.BuildFeatures(ctx, userID, date)
	if err != nil {
		ps.log.Error("failed to build features", "error", err, "userID", userID)
		return nil, err
	}

	scorer := risk.NewScorer(risk.CurrentConfig(), ps.thresholds)
	return scorer.Evaluate(features, plan), nil
}

func (ps *predictionService) ownedSession(ctx context.Context, userID, sessionID uuid.UUID) (*types.PlannedSession, error) {
	sessions, err := ps.sessionRepo.GetByIDs(ctx, nil, []uuid.UUID{sessionID})
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 || sessions[0].UserID != userID {
		return nil, fmt.Errorf("%w: planned session %s", apperrors.ErrNotFound, sessionID)
	}
	return sessions[0], nil
}

// planFromSession converts a stored session into scorer input, re-validating
// the stored enum strings.
func planFromSession(session *types.PlannedSession) (risk.PlannedSessionInput, error) {
	sport, err := domain.ParseSportType(session.SportType)
	if err != nil {
		return risk.PlannedSessionInput{}, err
	}
	plan := risk.PlannedSessionInput{
		Sport:           sport,
		DurationMinutes: session.PlannedDurationMinutes,
	}
	if session.PlannedIntensity != nil {
		zone, err := domain.ParseIntensityZone(*session.PlannedIntensity)
		if err != nil {
			return risk.PlannedSessionInput{}, err
		}
		plan.Intensity = &zone
	}
	if session.GymSplit != nil {
		split, err := domain.ParseGymSplit(*session.GymSplit)
		if err != nil {
			return risk.PlannedSessionInput{}, err
		}
		plan.GymSplit = &split
	}
	return plan, nil
}

// buildPrediction flattens a verdict into the persisted row shape.
func buildPrediction(sessionID uuid.UUID, verdict *risk.Verdict) (*types.Prediction, error) {
	topFactors, err := json.Marshal(verdict.TopFactors)
	if err != nil {
		return nil, err
	}
	triggeredRules, err := json.Marshal(verdict.Safety.TriggeredRules)
	if err != nil {
		return nil, err
	}
	recA, err := json.Marshal(verdict.RecommendationA)
	if err != nil {
		return nil, err
	}
	recB, err := json.Marshal(verdict.RecommendationB)
	if err != nil {
		return nil, err
	}
	snapshot, err := json.Marshal(verdict.Features)
	if err != nil {
		return nil, err
	}

	return &types.Prediction{
		PlannedSessionID:     sessionID,
		RiskScore:            verdict.RiskScore,
		RiskLevel:            string(verdict.RiskLevel),
		TopFactors:           datatypes.JSON(topFactors),
		ExplanationText:      verdict.ExplanationText,
		TriggeredSafetyRules: datatypes.JSON(triggeredRules),
		RecommendationA:      datatypes.JSON(recA),
		RecommendationB:      datatypes.JSON(recB),
		ModelVersion:         verdict.ModelVersion,
		FeatureSnapshot:      datatypes.JSON(snapshot),
	}, nil
}

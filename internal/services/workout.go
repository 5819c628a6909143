package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
	"github.com/janisoldani/Injury-Risk-Detector/internal/logger"
	apperrors "github.com/janisoldani/Injury-Risk-Detector/internal/pkg/errors"
	"github.com/janisoldani/Injury-Risk-Detector/internal/repos"
	"github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

// CalculateTRIMP computes a simplified Banister training impulse from
// duration and heart rate. Max HR falls back to an estimated 190 and rest
// HR to 60 until per-user values exist. Returns nil without average HR.
func CalculateTRIMP(durationMinutes int, avgHR, maxHR *int) *float64 {
	if avgHR == nil {
		return nil
	}

	estimatedMaxHR := 190
	if maxHR != nil {
		estimatedMaxHR = *maxHR
	}
	restingHR := 60

	hrReserve := float64(*avgHR-restingHR) / float64(estimatedMaxHR-restingHR)
	hrReserve = math.Max(0, math.Min(1, hrReserve))

	intensityFactor := 0.64 * math.Pow(2.718, 1.92*hrReserve)
	trimp := float64(durationMinutes) * hrReserve * intensityFactor

	rounded := math.Round(trimp*10) / 10
	return &rounded
}

// WorkoutInput is a completed session as supplied by the API or an import.
type WorkoutInput struct {
	SportType       string
	StartTime       time.Time
	DurationMinutes int
	AvgHR           *int
	MaxHR           *int
	Calories        *int
	DistanceMeters  *float64
	TrainingEffect  *float64
	IntensityZone   *string
	GymSplit        *string
	Notes           *string
	Source          *string
	ExternalID      *string
}

type WorkoutService interface {
	Create(ctx context.Context, userID uuid.UUID, input WorkoutInput) (*types.Workout, error)
	List(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*types.Workout, error)
	GetByID(ctx context.Context, userID, workoutID uuid.UUID) (*types.Workout, error)
	Delete(ctx context.Context, userID, workoutID uuid.UUID) error
}

type workoutService struct {
	db          *gorm.DB
	log         *logger.Logger
	workoutRepo repos.WorkoutRepo
}

func NewWorkoutService(db *gorm.DB, log *logger.Logger, workoutRepo repos.WorkoutRepo) WorkoutService {
	serviceLog := log.With("service", "WorkoutService")
	return &workoutService{db: db, log: serviceLog, workoutRepo: workoutRepo}
}

func (ws *workoutService) Create(ctx context.Context, userID uuid.UUID, input WorkoutInput) (*types.Workout, error) {
	workout, err := buildWorkout(userID, input)
	if err != nil {
		return nil, err
	}

	if _, err := ws.workoutRepo.Create(ctx, nil, []*types.Workout{workout}); err != nil {
		ws.log.Warn("Create workout failed", "error", err)
		return nil, err
	}
	return workout, nil
}

// buildWorkout validates the enum fields and computes TRIMP.
func buildWorkout(userID uuid.UUID, input WorkoutInput) (*types.Workout, error) {
	sport, err := domain.ParseSportType(input.SportType)
	if err != nil {
		return nil, err
	}
	if input.IntensityZone != nil {
		if _, err := domain.ParseIntensityZone(*input.IntensityZone); err != nil {
			return nil, err
		}
	}
	if input.GymSplit != nil {
		if _, err := domain.ParseGymSplit(*input.GymSplit); err != nil {
			return nil, err
		}
	}
	if input.DurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: field %q", apperrors.ErrInvalidArgument, "duration_minutes")
	}

	source := input.Source
	if source == nil {
		manual := "manual"
		source = &manual
	}

	return &types.Workout{
		ID:              uuid.New(),
		UserID:          userID,
		SportType:       string(sport),
		StartTime:       input.StartTime,
		DurationMinutes: input.DurationMinutes,
		AvgHR:           input.AvgHR,
		MaxHR:           input.MaxHR,
		Calories:        input.Calories,
		DistanceMeters:  input.DistanceMeters,
		TrainingEffect:  input.TrainingEffect,
		IntensityZone:   input.IntensityZone,
		GymSplit:        input.GymSplit,
		TRIMP:           CalculateTRIMP(input.DurationMinutes, input.AvgHR, input.MaxHR),
		Notes:           input.Notes,
		Source:          source,
		ExternalID:      input.ExternalID,
	}, nil
}

func (ws *workoutService) List(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*types.Workout, error) {
	workouts, err := ws.workoutRepo.GetByUserBetween(ctx, nil, userID, from, to)
	if err != nil {
		ws.log.Warn("List workouts failed", "error", err)
		return nil, err
	}
	return workouts, nil
}

func (ws *workoutService) GetByID(ctx context.Context, userID, workoutID uuid.UUID) (*types.Workout, error) {
	found, err := ws.workoutRepo.GetByIDs(ctx, nil, []uuid.UUID{workoutID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil || found[0].UserID != userID {
		return nil, fmt.Errorf("%w: workout", apperrors.ErrNotFound)
	}
	return found[0], nil
}

func (ws *workoutService) Delete(ctx context.Context, userID, workoutID uuid.UUID) error {
	if _, err := ws.GetByID(ctx, userID, workoutID); err != nil {
		return err
	}
	return ws.workoutRepo.Delete(ctx, nil, workoutID)
}

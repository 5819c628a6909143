package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
	"github.com/janisoldani/Injury-Risk-Detector/internal/logger"
	apperrors "github.com/janisoldani/Injury-Risk-Detector/internal/pkg/errors"
	"github.com/janisoldani/Injury-Risk-Detector/internal/repos"
	"github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

// PlannedSessionInput is a planned training session as supplied by the API.
type PlannedSessionInput struct {
	SportType              string
	PlannedStartTime       time.Time
	PlannedDurationMinutes int
	PlannedIntensity       *string
	GymSplit               *string
	Goal                   *string
	Priority               *int
	Notes                  *string
}

// PlannedSessionUpdateInput carries partial edits; nil fields stay untouched.
type PlannedSessionUpdateInput struct {
	SportType              *string
	PlannedStartTime       *time.Time
	PlannedDurationMinutes *int
	PlannedIntensity       *string
	GymSplit               *string
	Goal                   *string
	Priority               *int
	Notes                  *string
}

type PlannedSessionService interface {
	Create(ctx context.Context, userID uuid.UUID, input PlannedSessionInput) (*types.PlannedSession, error)
	GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*types.PlannedSession, error)
	ListUpcoming(ctx context.Context, userID uuid.UUID, from time.Time) ([]*types.PlannedSession, error)
	Update(ctx context.Context, userID, sessionID uuid.UUID, input PlannedSessionUpdateInput) (*types.PlannedSession, error)
	MarkCompleted(ctx context.Context, userID, sessionID uuid.UUID, workoutID *uuid.UUID) (*types.PlannedSession, error)
	Delete(ctx context.Context, userID, sessionID uuid.UUID) error
}

type plannedSessionService struct {
	db          *gorm.DB
	log         *logger.Logger
	sessionRepo repos.PlannedSessionRepo
	workoutRepo repos.WorkoutRepo
}

func NewPlannedSessionService(db *gorm.DB, log *logger.Logger, sessionRepo repos.PlannedSessionRepo, workoutRepo repos.WorkoutRepo) PlannedSessionService {
	serviceLog := log.With("service", "PlannedSessionService")
	return &plannedSessionService{db: db, log: serviceLog, sessionRepo: sessionRepo, workoutRepo: workoutRepo}
}

func (ps *plannedSessionService) Create(ctx context.Context, userID uuid.UUID, input PlannedSessionInput) (*types.PlannedSession, error) {
	sport, err := domain.ParseSportType(input.SportType)
	if err != nil {
		return nil, err
	}
	if input.PlannedIntensity != nil {
		if _, err := domain.ParseIntensityZone(*input.PlannedIntensity); err != nil {
			return nil, err
		}
	}
	if input.GymSplit != nil {
		if _, err := domain.ParseGymSplit(*input.GymSplit); err != nil {
			return nil, err
		}
	}
	if input.PlannedDurationMinutes <= 0 {
		return nil, fmt.Errorf("%w: field %q", apperrors.ErrInvalidArgument, "planned_duration_minutes")
	}

	goal := string(domain.GoalEndurance)
	if input.Goal != nil {
		parsed, err := domain.ParseTrainingGoal(*input.Goal)
		if err != nil {
			return nil, err
		}
		goal = string(parsed)
	}
	priority := 1
	if input.Priority != nil {
		priority = *input.Priority
	}

	session := &types.PlannedSession{
		ID:                     uuid.New(),
		UserID:                 userID,
		SportType:              string(sport),
		PlannedStartTime:       input.PlannedStartTime,
		PlannedDurationMinutes: input.PlannedDurationMinutes,
		PlannedIntensity:       input.PlannedIntensity,
		GymSplit:               input.GymSplit,
		Goal:                   goal,
		Priority:               priority,
		Notes:                  input.Notes,
	}

	if _, err := ps.sessionRepo.Create(ctx, nil, []*types.PlannedSession{session}); err != nil {
		ps.log.Warn("Create planned session failed", "error", err)
		return nil, err
	}
	return session, nil
}

func (ps *plannedSessionService) GetByID(ctx context.Context, userID, sessionID uuid.UUID) (*types.PlannedSession, error) {
	found, err := ps.sessionRepo.GetByIDs(ctx, nil, []uuid.UUID{sessionID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil || found[0].UserID != userID {
		return nil, fmt.Errorf("%w: planned session", apperrors.ErrNotFound)
	}
	return found[0], nil
}

func (ps *plannedSessionService) ListUpcoming(ctx context.Context, userID uuid.UUID, from time.Time) ([]*types.PlannedSession, error) {
	sessions, err := ps.sessionRepo.GetByUserFrom(ctx, nil, userID, from)
	if err != nil {
		ps.log.Warn("List planned sessions failed", "error", err)
		return nil, err
	}
	return sessions, nil
}

func (ps *plannedSessionService) Update(ctx context.Context, userID, sessionID uuid.UUID, input PlannedSessionUpdateInput) (*types.PlannedSession, error) {
	session, err := ps.GetByID(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if input.SportType != nil {
		sport, err := domain.ParseSportType(*input.SportType)
		if err != nil {
			return nil, err
		}
		session.SportType = string(sport)
	}
	if input.PlannedStartTime != nil {
		session.PlannedStartTime = *input.PlannedStartTime
	}
	if input.PlannedDurationMinutes != nil {
		if *input.PlannedDurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: field %q", apperrors.ErrInvalidArgument, "planned_duration_minutes")
		}
		session.PlannedDurationMinutes = *input.PlannedDurationMinutes
	}
	if input.PlannedIntensity != nil {
		if _, err := domain.ParseIntensityZone(*input.PlannedIntensity); err != nil {
			return nil, err
		}
		session.PlannedIntensity = input.PlannedIntensity
	}
	if input.GymSplit != nil {
		if _, err := domain.ParseGymSplit(*input.GymSplit); err != nil {
			return nil, err
		}
		session.GymSplit = input.GymSplit
	}
	if input.Goal != nil {
		goal, err := domain.ParseTrainingGoal(*input.Goal)
		if err != nil {
			return nil, err
		}
		session.Goal = string(goal)
	}
	if input.Priority != nil {
		session.Priority = *input.Priority
	}
	if input.Notes != nil {
		session.Notes = input.Notes
	}

	updated, err := ps.sessionRepo.Update(ctx, nil, session)
	if err != nil {
		ps.log.Warn("Update planned session failed", "error", err)
		return nil, err
	}
	return updated, nil
}

func (ps *plannedSessionService) MarkCompleted(ctx context.Context, userID, sessionID uuid.UUID, workoutID *uuid.UUID) (*types.PlannedSession, error) {
	session, err := ps.GetByID(ctx, userID, sessionID)
	if err != nil {
		return nil, err
	}

	if workoutID != nil {
		workouts, err := ps.workoutRepo.GetByIDs(ctx, nil, []uuid.UUID{*workoutID})
		if err != nil {
			return nil, err
		}
		if len(workouts) == 0 || workouts[0] == nil || workouts[0].UserID != userID {
			return nil, fmt.Errorf("%w: workout", apperrors.ErrNotFound)
		}
	}

	session.IsCompleted = true
	session.CompletedWorkoutID = workoutID

	updated, err := ps.sessionRepo.Update(ctx, nil, session)
	if err != nil {
		ps.log.Warn("Mark planned session completed failed", "error", err)
		return nil, err
	}
	return updated, nil
}

func (ps *plannedSessionService) Delete(ctx context.Context, userID, sessionID uuid.UUID) error {
	if _, err := ps.GetByID(ctx, userID, sessionID); err != nil {
		return err
	}
	return ps.sessionRepo.Delete(ctx, nil, sessionID)
}

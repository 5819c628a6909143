package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
	"github.com/janisoldani/Injury-Risk-Detector/internal/logger"
	apperrors "github.com/janisoldani/Injury-Risk-Detector/internal/pkg/errors"
	"github.com/janisoldani/Injury-Risk-Detector/internal/repos"
	"github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

type UserService interface {
	Create(ctx context.Context, email string, sportProfile, timezone *string, deviceSources []string) (*types.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, sportProfile, timezone *string) (*types.User, error)
}

type userService struct {
	db       *gorm.DB
	log      *logger.Logger
	userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
	serviceLog := log.With("service", "UserService")
	return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func (us *userService) Create(ctx context.Context, email string, sportProfile, timezone *string, deviceSources []string) (*types.User, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: field %q", apperrors.ErrInvalidArgument, "email")
	}

	profile := string(domain.ProfileHighTrainingLoad)
	if sportProfile != nil {
		parsed, err := domain.ParseSportProfile(*sportProfile)
		if err != nil {
			return nil, err
		}
		profile = string(parsed)
	}

	tz := "Europe/Zurich"
	if timezone != nil && *timezone != "" {
		tz = *timezone
	}

	sources, err := json.Marshal(deviceSources)
	if err != nil {
		return nil, fmt.Errorf("marshal device sources: %w", err)
	}

	user := &types.User{
		ID:            uuid.New(),
		Email:         email,
		SportProfile:  profile,
		Timezone:      tz,
		DeviceSources: datatypes.JSON(sources),
	}

	if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		exists, err := us.userRepo.EmailExists(ctx, tx, email)
		if err != nil {
			return fmt.Errorf("error checking email: %w", err)
		}
		if exists {
			return fmt.Errorf("%w: email already registered", apperrors.ErrInvalidArgument)
		}
		_, err = us.userRepo.Create(ctx, tx, []*types.User{user})
		return err
	}); err != nil {
		us.log.Warn("Create user failed", "error", err)
		return nil, err
	}

	return user, nil
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
	found, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{userID})
	if err != nil {
		return nil, fmt.Errorf("error fetching user: %w", err)
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("%w: user", apperrors.ErrNotFound)
	}
	return found[0], nil
}

func (us *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, sportProfile, timezone *string) (*types.User, error) {
	user, err := us.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if sportProfile != nil {
		parsed, err := domain.ParseSportProfile(*sportProfile)
		if err != nil {
			return nil, err
		}
		user.SportProfile = string(parsed)
	}
	if timezone != nil && *timezone != "" {
		user.Timezone = *timezone
	}

	updated, err := us.userRepo.Update(ctx, nil, user)
	if err != nil {
		us.log.Warn("Update user failed", "error", err)
		return nil, err
	}
	return updated, nil
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/janisoldani/Injury-Risk-Detector/internal/domain"
	"github.com/janisoldani/Injury-Risk-Detector/internal/logger"
	apperrors "github.com/janisoldani/Injury-Risk-Detector/internal/pkg/errors"
	"github.com/janisoldani/Injury-Risk-Detector/internal/repos"
	"github.com/janisoldani/Injury-Risk-Detector/internal/types"
)

// SymptomInput is one subjective check-in.
type SymptomInput struct {
	Timestamp       *time.Time
	PainScore       int
	PainLocation    *string
	PainDescription *string
	Swelling        bool
	SorenessMap     map[string]int
	Readiness       *int
	Fatigue         *int
	PhysioVisit     bool
	DiagnosisTag    *string
	Notes           *string
}

// SymptomUpdateInput carries partial edits; nil fields stay untouched. A
// non-nil soreness map replaces the stored one wholesale.
type SymptomUpdateInput struct {
	PainScore       *int
	PainLocation    *string
	PainDescription *string
	Swelling        *bool
	SorenessMap     map[string]int
	Readiness       *int
	Fatigue         *int
	PhysioVisit     *bool
	DiagnosisTag    *string
	Notes           *string
}

type SymptomService interface {
	Create(ctx context.Context, userID uuid.UUID, input SymptomInput) (*types.Symptom, error)
	GetByID(ctx context.Context, userID, symptomID uuid.UUID) (*types.Symptom, error)
	List(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*types.Symptom, error)
	Update(ctx context.Context, userID, symptomID uuid.UUID, input SymptomUpdateInput) (*types.Symptom, error)
}

type symptomService struct {
	db          *gorm.DB
	log         *logger.Logger
	symptomRepo repos.SymptomRepo
}

func NewSymptomService(db *gorm.DB, log *logger.Logger, symptomRepo repos.SymptomRepo) SymptomService {
	serviceLog := log.With("service", "SymptomService")
	return &symptomService{db: db, log: serviceLog, symptomRepo: symptomRepo}
}

func (ss *symptomService) Create(ctx context.Context, userID uuid.UUID, input SymptomInput) (*types.Symptom, error) {
	if input.PainScore < 0 || input.PainScore > 10 {
		return nil, fmt.Errorf("%w: field %q", apperrors.ErrInvalidArgument, "pain_score")
	}
	if input.PainLocation != nil {
		if _, err := domain.ParsePainLocation(*input.PainLocation); err != nil {
			return nil, err
		}
	}
	for region, level := range input.SorenessMap {
		if _, err := domain.ParseMuscleRegion(region); err != nil {
			return nil, err
		}
		if level < 0 || level > 10 {
			return nil, fmt.Errorf("%w: soreness level for %q", apperrors.ErrInvalidArgument, region)
		}
	}

	timestamp := time.Now().UTC()
	if input.Timestamp != nil {
		timestamp = *input.Timestamp
	}
	readiness := 7
	if input.Readiness != nil {
		readiness = *input.Readiness
	}
	fatigue := 3
	if input.Fatigue != nil {
		fatigue = *input.Fatigue
	}

	sorenessJSON, err := json.Marshal(input.SorenessMap)
	if err != nil {
		return nil, fmt.Errorf("marshal soreness map: %w", err)
	}

	symptom := &types.Symptom{
		ID:              uuid.New(),
		UserID:          userID,
		Timestamp:       timestamp,
		PainScore:       input.PainScore,
		PainLocation:    input.PainLocation,
		PainDescription: input.PainDescription,
		Swelling:        input.Swelling,
		SorenessMap:     datatypes.JSON(sorenessJSON),
		Readiness:       readiness,
		Fatigue:         fatigue,
		PhysioVisit:     input.PhysioVisit,
		DiagnosisTag:    input.DiagnosisTag,
		Notes:           input.Notes,
	}

	if _, err := ss.symptomRepo.Create(ctx, nil, []*types.Symptom{symptom}); err != nil {
		ss.log.Warn("Create symptom failed", "error", err)
		return nil, err
	}
	return symptom, nil
}

func (ss *symptomService) GetByID(ctx context.Context, userID, symptomID uuid.UUID) (*types.Symptom, error) {
	found, err := ss.symptomRepo.GetByIDs(ctx, nil, []uuid.UUID{symptomID})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil || found[0].UserID != userID {
		return nil, fmt.Errorf("%w: symptom", apperrors.ErrNotFound)
	}
	return found[0], nil
}

func (ss *symptomService) Update(ctx context.Context, userID, symptomID uuid.UUID, input SymptomUpdateInput) (*types.Symptom, error) {
	symptom, err := ss.GetByID(ctx, userID, symptomID)
	if err != nil {
		return nil, err
	}

	if input.PainScore != nil {
		if *input.PainScore < 0 || *input.PainScore > 10 {
			return nil, fmt.Errorf("%w: field %q", apperrors.ErrInvalidArgument, "pain_score")
		}
		symptom.PainScore = *input.PainScore
	}
	if input.PainLocation != nil {
		if _, err := domain.ParsePainLocation(*input.PainLocation); err != nil {
			return nil, err
		}
		symptom.PainLocation = input.PainLocation
	}
	if input.PainDescription != nil {
		symptom.PainDescription = input.PainDescription
	}
	if input.Swelling != nil {
		symptom.Swelling = *input.Swelling
	}
	if input.SorenessMap != nil {
		for region, level := range input.SorenessMap {
			if _, err := domain.ParseMuscleRegion(region); err != nil {
				return nil, err
			}
			if level < 0 || level > 10 {
				return nil, fmt.Errorf("%w: soreness level for %q", apperrors.ErrInvalidArgument, region)
			}
		}
		sorenessJSON, err := json.Marshal(input.SorenessMap)
		if err != nil {
			return nil, fmt.Errorf("marshal soreness map: %w", err)
		}
		symptom.SorenessMap = datatypes.JSON(sorenessJSON)
	}
	if input.Readiness != nil {
		symptom.Readiness = *input.Readiness
	}
	if input.Fatigue != nil {
		symptom.Fatigue = *input.Fatigue
	}
	if input.PhysioVisit != nil {
		symptom.PhysioVisit = *input.PhysioVisit
	}
	if input.DiagnosisTag != nil {
		symptom.DiagnosisTag = input.DiagnosisTag
	}
	if input.Notes != nil {
		symptom.Notes = input.Notes
	}

	updated, err := ss.symptomRepo.Update(ctx, nil, symptom)
	if err != nil {
		ss.log.Warn("Update symptom failed", "error", err)
		return nil, err
	}
	return updated, nil
}

func (ss *symptomService) List(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]*types.Symptom, error) {
	symptoms, err := ss.symptomRepo.GetByUserBetween(ctx, nil, userID, from, to)
	if err != nil {
		ss.log.Warn("List symptoms failed", "error", err)
		return nil, err
	}
	return symptoms, nil
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/repos"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

type PracticeService interface {
	Create(ctx context.Context, input PracticeInput) (*types.Practice, error)
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Practice, error)
	List(ctx context.Context, tx *gorm.DB, category, search string) ([]*types.Practice, error)
	SearchBySanskrit(ctx context.Context, tx *gorm.DB, prefix string, limit int) ([]*types.Practice, error)
	Update(ctx context.Context, id uuid.UUID, input PracticeInput) (*types.Practice, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PracticeInput struct {
	ModuleID             *uuid.UUID     `json:"module_id"`
	SanskritName         string         `json:"sanskrit_name"`
	EnglishName          string         `json:"english_name"`
	Category             string         `json:"category"`
	SubCategory          string         `json:"sub_category"`
	Kosha                string         `json:"kosha"`
	Code                 string         `json:"code"`
	Rounds               int            `json:"rounds"`
	TimeMinutes          float64        `json:"time_minutes"`
	StrokesPerMin        int            `json:"strokes_per_min"`
	StrokesPerCycle      int            `json:"strokes_per_cycle"`
	RestBetweenCyclesSec int            `json:"rest_between_cycles_sec"`
	Variations           datatypes.JSON `json:"variations"`
	Steps                datatypes.JSON `json:"steps"`
	Description          string         `json:"description"`
	HowToDo              string         `json:"how_to_do"`
	CVRScore             float64        `json:"cvr_score"`
	PhotoPath            string         `json:"photo_path"`
	VideoPath            string         `json:"video_path"`
	CitationID           *uuid.UUID     `json:"citation_id"`
	DiseaseIDs           []uuid.UUID    `json:"disease_ids"`
}

type practiceService struct {
	db           *gorm.DB
	log          *logger.Logger
	practiceRepo repos.PracticeRepo
	diseaseRepo  repos.DiseaseRepo
}

func NewPracticeService(db *gorm.DB, baseLog *logger.Logger, practiceRepo repos.PracticeRepo, diseaseRepo repos.DiseaseRepo) PracticeService {
	return &practiceService{
		db:           db,
		log:          baseLog.With("service", "PracticeService"),
		practiceRepo: practiceRepo,
		diseaseRepo:  diseaseRepo,
	}
}

func (s *practiceService) validateInput(input PracticeInput) error {
	if strings.TrimSpace(input.EnglishName) == "" {
		return fmt.Errorf("%w: english name is required", ErrInvalidInput)
	}
	if !types.IsValidCategory(input.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}
	if !types.IsValidKosha(input.Kosha) {
		return fmt.Errorf("%w: unknown kosha %q", ErrInvalidInput, input.Kosha)
	}
	return nil
}

// checkCodeInvariant enforces both directions of the code rule: practices
// sharing a code share a Sanskrit name, and practices sharing a Sanskrit name
// share a code.
func (s *practiceService) checkCodeInvariant(ctx context.Context, tx *gorm.DB, excludeID uuid.UUID, code, sanskritName string) error {
	code = strings.TrimSpace(code)
	sanskritName = strings.TrimSpace(sanskritName)

	if code != "" {
		group, err := s.practiceRepo.GetByCode(ctx, tx, code)
		if err != nil {
			return err
		}
		for _, p := range group {
			if p.ID == excludeID {
				continue
			}
			if !strings.EqualFold(strings.TrimSpace(p.SanskritName), sanskritName) {
				return fmt.Errorf("%w: code %s is already bound to sanskrit name %q", ErrInvalidInput, code, p.SanskritName)
			}
		}
	}

	if sanskritName != "" {
		sameName, err := s.practiceRepo.GetBySanskritName(ctx, tx, sanskritName)
		if err != nil {
			return err
		}
		for _, p := range sameName {
			if p.ID == excludeID {
				continue
			}
			if strings.TrimSpace(p.Code) != code {
				return fmt.Errorf("%w: sanskrit name %q is already bound to code %s", ErrInvalidInput, sanskritName, p.Code)
			}
		}
	}

	return nil
}

func (s *practiceService) Create(ctx context.Context, input PracticeInput) (*types.Practice, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var created *types.Practice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.checkCodeInvariant(ctx, tx, uuid.Nil, input.Code, input.SanskritName); err != nil {
			return err
		}

		practice := &types.Practice{
			ID:                   uuid.New(),
			ModuleID:             input.ModuleID,
			SanskritName:         strings.TrimSpace(input.SanskritName),
			EnglishName:          strings.TrimSpace(input.EnglishName),
			Category:             input.Category,
			SubCategory:          strings.TrimSpace(input.SubCategory),
			Kosha:                input.Kosha,
			Code:                 strings.TrimSpace(input.Code),
			Rounds:               input.Rounds,
			TimeMinutes:          input.TimeMinutes,
			StrokesPerMin:        input.StrokesPerMin,
			StrokesPerCycle:      input.StrokesPerCycle,
			RestBetweenCyclesSec: input.RestBetweenCyclesSec,
			Variations:           input.Variations,
			Steps:                input.Steps,
			Description:          input.Description,
			HowToDo:              input.HowToDo,
			CVRScore:             input.CVRScore,
			PhotoPath:            input.PhotoPath,
			VideoPath:            input.VideoPath,
			CitationID:           input.CitationID,
		}
		if _, err := s.practiceRepo.Create(ctx, tx, []*types.Practice{practice}); err != nil {
			return err
		}
		if err := s.linkDiseases(ctx, tx, practice, input.DiseaseIDs); err != nil {
			return err
		}
		created = practice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *practiceService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Practice, error) {
	found, err := s.practiceRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("practice %s: %w", id, ErrNotFound)
	}
	return found[0], nil
}

func (s *practiceService) List(ctx context.Context, tx *gorm.DB, category, search string) ([]*types.Practice, error) {
	if category != "" && !types.IsValidCategory(category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
	}
	return s.practiceRepo.List(ctx, tx, category, search)
}

func (s *practiceService) SearchBySanskrit(ctx context.Context, tx *gorm.DB, prefix string, limit int) ([]*types.Practice, error) {
	return s.practiceRepo.SearchBySanskritPrefix(ctx, tx, prefix, limit)
}

// Update rewrites the practice and, when the Sanskrit name or code changed,
// propagates both to every other practice sharing the old code. CVRScore is
// module-local and is never pushed across the group.
func (s *practiceService) Update(ctx context.Context, id uuid.UUID, input PracticeInput) (*types.Practice, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var updated *types.Practice
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		practice, err := s.Get(ctx, tx, id)
		if err != nil {
			return err
		}

		oldCode := strings.TrimSpace(practice.Code)
		newCode := strings.TrimSpace(input.Code)
		newSanskrit := strings.TrimSpace(input.SanskritName)

		if newCode != oldCode || !strings.EqualFold(newSanskrit, strings.TrimSpace(practice.SanskritName)) {
			if err := s.checkCodeInvariant(ctx, tx, id, newCode, newSanskrit); err != nil {
				return err
			}
			if oldCode != "" {
				if err := s.practiceRepo.UpdateCodeGroup(ctx, tx, oldCode, newCode, newSanskrit); err != nil {
					return err
				}
			}
		}

		practice.ModuleID = input.ModuleID
		practice.SanskritName = newSanskrit
		practice.EnglishName = strings.TrimSpace(input.EnglishName)
		practice.Category = input.Category
		practice.SubCategory = strings.TrimSpace(input.SubCategory)
		practice.Kosha = input.Kosha
		practice.Code = newCode
		practice.Rounds = input.Rounds
		practice.TimeMinutes = input.TimeMinutes
		practice.StrokesPerMin = input.StrokesPerMin
		practice.StrokesPerCycle = input.StrokesPerCycle
		practice.RestBetweenCyclesSec = input.RestBetweenCyclesSec
		practice.Variations = input.Variations
		practice.Steps = input.Steps
		practice.Description = input.Description
		practice.HowToDo = input.HowToDo
		practice.CVRScore = input.CVRScore
		practice.PhotoPath = input.PhotoPath
		practice.VideoPath = input.VideoPath
		practice.CitationID = input.CitationID
		practice.UpdatedAt = time.Now()

		if _, err := s.practiceRepo.Update(ctx, tx, practice); err != nil {
			return err
		}
		if err := s.linkDiseases(ctx, tx, practice, input.DiseaseIDs); err != nil {
			return err
		}
		updated = practice
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *practiceService) linkDiseases(ctx context.Context, tx *gorm.DB, practice *types.Practice, diseaseIDs []uuid.UUID) error {
	if diseaseIDs == nil {
		return nil
	}
	diseases, err := s.diseaseRepo.GetByIDs(ctx, tx, diseaseIDs)
	if err != nil {
		return err
	}
	if len(diseases) != len(diseaseIDs) {
		return fmt.Errorf("%w: one or more disease ids do not exist", ErrInvalidInput)
	}
	return s.practiceRepo.ReplaceDiseases(ctx, tx, practice, diseases)
}

func (s *practiceService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Get(ctx, tx, id); err != nil {
			return err
		}
		return s.practiceRepo.Delete(ctx, tx, id)
	})
}

package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/repos"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

type ContraindicationService interface {
	Create(ctx context.Context, input ContraindicationInput) (*types.Contraindication, error)
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Contraindication, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Contraindication, error)
	Update(ctx context.Context, id uuid.UUID, input ContraindicationInput) (*types.Contraindication, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ContraindicationInput struct {
	PracticeEnglish  string      `json:"practice_english"`
	PracticeSanskrit string      `json:"practice_sanskrit"`
	Category         string      `json:"category"`
	SubCategory      string      `json:"sub_category"`
	Reason           string      `json:"reason"`
	Source           string      `json:"source"`
	DiseaseIDs       []uuid.UUID `json:"disease_ids"`
}

type contraindicationService struct {
	db                   *gorm.DB
	log                  *logger.Logger
	contraindicationRepo repos.ContraindicationRepo
	diseaseRepo          repos.DiseaseRepo
}

func NewContraindicationService(db *gorm.DB, baseLog *logger.Logger, contraindicationRepo repos.ContraindicationRepo, diseaseRepo repos.DiseaseRepo) ContraindicationService {
	return &contraindicationService{
		db:                   db,
		log:                  baseLog.With("service", "ContraindicationService"),
		contraindicationRepo: contraindicationRepo,
		diseaseRepo:          diseaseRepo,
	}
}

func (s *contraindicationService) validateInput(input ContraindicationInput) error {
	if strings.TrimSpace(input.PracticeEnglish) == "" {
		return fmt.Errorf("%w: practice english name is required", ErrInvalidInput)
	}
	if !types.IsValidCategory(input.Category) {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidInput, input.Category)
	}
	if len(input.DiseaseIDs) == 0 {
		return fmt.Errorf("%w: contraindication requires at least one disease", ErrInvalidInput)
	}
	return nil
}

func (s *contraindicationService) Create(ctx context.Context, input ContraindicationInput) (*types.Contraindication, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var created *types.Contraindication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contraindication := &types.Contraindication{
			ID:               uuid.New(),
			PracticeEnglish:  strings.TrimSpace(input.PracticeEnglish),
			PracticeSanskrit: strings.TrimSpace(input.PracticeSanskrit),
			Category:         input.Category,
			SubCategory:      strings.TrimSpace(input.SubCategory),
			Reason:           input.Reason,
			Source:           input.Source,
		}
		if _, err := s.contraindicationRepo.Create(ctx, tx, []*types.Contraindication{contraindication}); err != nil {
			return err
		}
		if err := s.linkDiseases(ctx, tx, contraindication, input.DiseaseIDs); err != nil {
			return err
		}
		created = contraindication
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *contraindicationService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Contraindication, error) {
	found, err := s.contraindicationRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("contraindication %s: %w", id, ErrNotFound)
	}
	return found[0], nil
}

func (s *contraindicationService) List(ctx context.Context, tx *gorm.DB) ([]*types.Contraindication, error) {
	return s.contraindicationRepo.GetAll(ctx, tx)
}

func (s *contraindicationService) Update(ctx context.Context, id uuid.UUID, input ContraindicationInput) (*types.Contraindication, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}

	var updated *types.Contraindication
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		contraindication, err := s.Get(ctx, tx, id)
		if err != nil {
			return err
		}

		contraindication.PracticeEnglish = strings.TrimSpace(input.PracticeEnglish)
		contraindication.PracticeSanskrit = strings.TrimSpace(input.PracticeSanskrit)
		contraindication.Category = input.Category
		contraindication.SubCategory = strings.TrimSpace(input.SubCategory)
		contraindication.Reason = input.Reason
		contraindication.Source = input.Source
		contraindication.UpdatedAt = time.Now()

		if _, err := s.contraindicationRepo.Update(ctx, tx, contraindication); err != nil {
			return err
		}
		if err := s.linkDiseases(ctx, tx, contraindication, input.DiseaseIDs); err != nil {
			return err
		}
		updated = contraindication
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *contraindicationService) linkDiseases(ctx context.Context, tx *gorm.DB, contraindication *types.Contraindication, diseaseIDs []uuid.UUID) error {
	diseases, err := s.diseaseRepo.GetByIDs(ctx, tx, diseaseIDs)
	if err != nil {
		return err
	}
	if len(diseases) != len(diseaseIDs) {
		return fmt.Errorf("%w: one or more disease ids do not exist", ErrInvalidInput)
	}
	return s.contraindicationRepo.ReplaceDiseases(ctx, tx, contraindication, diseases)
}

func (s *contraindicationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Get(ctx, tx, id); err != nil {
			return err
		}
		return s.contraindicationRepo.Delete(ctx, tx, id)
	})
}

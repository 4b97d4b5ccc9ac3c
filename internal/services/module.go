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

type ModuleService interface {
	Create(ctx context.Context, tx *gorm.DB, input ModuleInput) (*types.Module, error)
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Module, error)
	ListForDisease(ctx context.Context, tx *gorm.DB, diseaseID uuid.UUID) ([]*types.Module, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, input ModuleInput) (*types.Module, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type ModuleInput struct {
	DiseaseID   uuid.UUID `json:"disease_id"`
	DevelopedBy string    `json:"developed_by"`
	PaperLink   string    `json:"paper_link"`
	Description string    `json:"description"`
}

type moduleService struct {
	db          *gorm.DB
	log         *logger.Logger
	diseaseRepo repos.DiseaseRepo
	moduleRepo  repos.ModuleRepo
}

func NewModuleService(db *gorm.DB, baseLog *logger.Logger, diseaseRepo repos.DiseaseRepo, moduleRepo repos.ModuleRepo) ModuleService {
	return &moduleService{
		db:          db,
		log:         baseLog.With("service", "ModuleService"),
		diseaseRepo: diseaseRepo,
		moduleRepo:  moduleRepo,
	}
}

func (s *moduleService) Create(ctx context.Context, tx *gorm.DB, input ModuleInput) (*types.Module, error) {
	if input.DiseaseID == uuid.Nil {
		return nil, fmt.Errorf("%w: module requires a disease id", ErrInvalidInput)
	}
	if strings.TrimSpace(input.DevelopedBy) == "" {
		return nil, fmt.Errorf("%w: module requires a developed_by citation", ErrInvalidInput)
	}

	diseases, err := s.diseaseRepo.GetByIDs(ctx, tx, []uuid.UUID{input.DiseaseID})
	if err != nil {
		return nil, err
	}
	if len(diseases) == 0 {
		return nil, fmt.Errorf("disease %s: %w", input.DiseaseID, ErrNotFound)
	}

	module := &types.Module{
		ID:          uuid.New(),
		DiseaseID:   input.DiseaseID,
		DevelopedBy: input.DevelopedBy,
		PaperLink:   input.PaperLink,
		Description: input.Description,
	}
	created, err := s.moduleRepo.Create(ctx, tx, []*types.Module{module})
	if err != nil {
		s.log.Error("Create module failed", "error", err, "disease_id", input.DiseaseID)
		return nil, err
	}
	return created[0], nil
}

func (s *moduleService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Module, error) {
	found, err := s.moduleRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("module %s: %w", id, ErrNotFound)
	}
	return found[0], nil
}

func (s *moduleService) ListForDisease(ctx context.Context, tx *gorm.DB, diseaseID uuid.UUID) ([]*types.Module, error) {
	if diseaseID == uuid.Nil {
		return nil, fmt.Errorf("%w: missing disease id", ErrInvalidInput)
	}
	return s.moduleRepo.GetByDiseaseIDs(ctx, tx, []uuid.UUID{diseaseID})
}

func (s *moduleService) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, input ModuleInput) (*types.Module, error) {
	module, err := s.Get(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if input.DevelopedBy != "" {
		module.DevelopedBy = input.DevelopedBy
	}
	module.PaperLink = input.PaperLink
	module.Description = input.Description
	module.UpdatedAt = time.Now()

	return s.moduleRepo.Update(ctx, tx, module)
}

func (s *moduleService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Get(ctx, tx, id); err != nil {
			return err
		}
		return s.moduleRepo.Delete(ctx, tx, id)
	})
}

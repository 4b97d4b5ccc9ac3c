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

type DiseaseService interface {
	Create(ctx context.Context, tx *gorm.DB, input DiseaseInput) (*types.Disease, error)
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Disease, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Disease, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, input DiseaseInput) (*types.Disease, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DiseaseInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type diseaseService struct {
	db          *gorm.DB
	log         *logger.Logger
	diseaseRepo repos.DiseaseRepo
	moduleRepo  repos.ModuleRepo
}

func NewDiseaseService(db *gorm.DB, baseLog *logger.Logger, diseaseRepo repos.DiseaseRepo, moduleRepo repos.ModuleRepo) DiseaseService {
	return &diseaseService{
		db:          db,
		log:         baseLog.With("service", "DiseaseService"),
		diseaseRepo: diseaseRepo,
		moduleRepo:  moduleRepo,
	}
}

func (s *diseaseService) Create(ctx context.Context, tx *gorm.DB, input DiseaseInput) (*types.Disease, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: disease name is required", ErrInvalidInput)
	}

	exists, err := s.diseaseRepo.NameExists(ctx, tx, name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: disease %q already exists", ErrInvalidInput, name)
	}

	disease := &types.Disease{
		ID:          uuid.New(),
		Name:        name,
		Description: input.Description,
	}
	created, err := s.diseaseRepo.Create(ctx, tx, []*types.Disease{disease})
	if err != nil {
		s.log.Error("Create disease failed", "error", err, "name", name)
		return nil, err
	}
	return created[0], nil
}

func (s *diseaseService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Disease, error) {
	found, err := s.diseaseRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("disease %s: %w", id, ErrNotFound)
	}
	return found[0], nil
}

func (s *diseaseService) List(ctx context.Context, tx *gorm.DB) ([]*types.Disease, error) {
	return s.diseaseRepo.GetAll(ctx, tx)
}

func (s *diseaseService) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, input DiseaseInput) (*types.Disease, error) {
	disease, err := s.Get(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		disease.Name = name
	}
	disease.Description = input.Description
	disease.UpdatedAt = time.Now()

	return s.diseaseRepo.Update(ctx, tx, disease)
}

// Delete removes the disease together with its modules and their practices,
// clearing many-to-many links first so no join row survives with a dangling
// disease id.
func (s *diseaseService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		disease, err := s.Get(ctx, tx, id)
		if err != nil {
			return err
		}

		modules, err := s.moduleRepo.GetByDiseaseIDs(ctx, tx, []uuid.UUID{id})
		if err != nil {
			return err
		}
		for _, m := range modules {
			if err := s.moduleRepo.Delete(ctx, tx, m.ID); err != nil {
				return err
			}
		}

		if err := s.diseaseRepo.ClearAssociations(ctx, tx, disease); err != nil {
			return err
		}
		if err := s.diseaseRepo.Delete(ctx, tx, id); err != nil {
			return err
		}
		s.log.Info("Deleted disease with cascade", "disease_id", id, "modules", len(modules))
		return nil
	})
}

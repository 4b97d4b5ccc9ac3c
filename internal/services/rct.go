package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/engine"
	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/repos"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

type RCTService interface {
	Create(ctx context.Context, input RCTInput) (*types.RCT, error)
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RCT, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.RCT, error)
	Update(ctx context.Context, id uuid.UUID, input RCTInput) (*types.RCT, error)
	Delete(ctx context.Context, id uuid.UUID) error
	RefreshRCTCounts(ctx context.Context) (int, error)
}

type RCTSymptomInput struct {
	Name   string  `json:"name"`
	PValue float64 `json:"p_value"`
}

type RCTInput struct {
	Title         string            `json:"title"`
	Authors       string            `json:"authors"`
	Journal       string            `json:"journal"`
	Year          int               `json:"year"`
	URL           string            `json:"url"`
	Interventions datatypes.JSON    `json:"interventions"`
	Symptoms      []RCTSymptomInput `json:"symptoms"`
	DiseaseIDs    []uuid.UUID       `json:"disease_ids"`
}

type rctService struct {
	db           *gorm.DB
	log          *logger.Logger
	rctRepo      repos.RCTRepo
	diseaseRepo  repos.DiseaseRepo
	practiceRepo repos.PracticeRepo
}

func NewRCTService(db *gorm.DB, baseLog *logger.Logger, rctRepo repos.RCTRepo, diseaseRepo repos.DiseaseRepo, practiceRepo repos.PracticeRepo) RCTService {
	return &rctService{
		db:           db,
		log:          baseLog.With("service", "RCTService"),
		rctRepo:      rctRepo,
		diseaseRepo:  diseaseRepo,
		practiceRepo: practiceRepo,
	}
}

func (s *rctService) Create(ctx context.Context, input RCTInput) (*types.RCT, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, fmt.Errorf("%w: rct title is required", ErrInvalidInput)
	}

	var created *types.RCT
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rct := &types.RCT{
			ID:            uuid.New(),
			Title:         strings.TrimSpace(input.Title),
			Authors:       input.Authors,
			Journal:       input.Journal,
			Year:          input.Year,
			URL:           input.URL,
			Interventions: input.Interventions,
		}
		for _, sym := range input.Symptoms {
			rct.Symptoms = append(rct.Symptoms, &types.RCTSymptom{
				ID:     uuid.New(),
				RCTID:  rct.ID,
				Name:   sym.Name,
				PValue: sym.PValue,
			})
		}
		if _, err := s.rctRepo.Create(ctx, tx, []*types.RCT{rct}); err != nil {
			return err
		}
		if err := s.linkDiseases(ctx, tx, rct, input.DiseaseIDs); err != nil {
			return err
		}
		created = rct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *rctService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.RCT, error) {
	found, err := s.rctRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("rct %s: %w", id, ErrNotFound)
	}
	return found[0], nil
}

func (s *rctService) List(ctx context.Context, tx *gorm.DB) ([]*types.RCT, error) {
	return s.rctRepo.GetAll(ctx, tx)
}

func (s *rctService) Update(ctx context.Context, id uuid.UUID, input RCTInput) (*types.RCT, error) {
	var updated *types.RCT
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rct, err := s.Get(ctx, tx, id)
		if err != nil {
			return err
		}

		if title := strings.TrimSpace(input.Title); title != "" {
			rct.Title = title
		}
		rct.Authors = input.Authors
		rct.Journal = input.Journal
		rct.Year = input.Year
		rct.URL = input.URL
		rct.Interventions = input.Interventions
		rct.UpdatedAt = time.Now()

		if _, err := s.rctRepo.Update(ctx, tx, rct); err != nil {
			return err
		}
		if input.DiseaseIDs != nil {
			if err := s.linkDiseases(ctx, tx, rct, input.DiseaseIDs); err != nil {
				return err
			}
		}
		updated = rct
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *rctService) linkDiseases(ctx context.Context, tx *gorm.DB, rct *types.RCT, diseaseIDs []uuid.UUID) error {
	if len(diseaseIDs) == 0 {
		return nil
	}
	diseases, err := s.diseaseRepo.GetByIDs(ctx, tx, diseaseIDs)
	if err != nil {
		return err
	}
	if len(diseases) != len(diseaseIDs) {
		return fmt.Errorf("%w: one or more disease ids do not exist", ErrInvalidInput)
	}
	return s.rctRepo.ReplaceDiseases(ctx, tx, rct, diseases)
}

func (s *rctService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Get(ctx, tx, id); err != nil {
			return err
		}
		return s.rctRepo.Delete(ctx, tx, id)
	})
}

// RefreshRCTCounts recomputes every practice's stored RCT support count from
// the trials linked to its diseases. Returns how many practices changed.
// Run after RCT or disease-link edits; the aggregator ranks off the stored
// column, not a live join.
func (s *rctService) RefreshRCTCounts(ctx context.Context) (int, error) {
	changed := 0
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		practices, err := s.practiceRepo.GetAll(ctx, tx)
		if err != nil {
			return err
		}
		rcts, err := s.rctRepo.GetAll(ctx, tx)
		if err != nil {
			return err
		}

		for _, p := range practices {
			count := len(engine.MatchRCTCitations(p, rcts))
			if count == p.RCTCount {
				continue
			}
			p.RCTCount = count
			if _, err := s.practiceRepo.Update(ctx, tx, p); err != nil {
				return err
			}
			changed++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	s.log.Info("Refreshed rct counts", "practices_changed", changed)
	return changed, nil
}

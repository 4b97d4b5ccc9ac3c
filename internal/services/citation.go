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

type CitationService interface {
	Create(ctx context.Context, tx *gorm.DB, input CitationInput) (*types.Citation, error)
	Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Citation, error)
	List(ctx context.Context, tx *gorm.DB) ([]*types.Citation, error)
	Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, input CitationInput) (*types.Citation, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CitationInput struct {
	Text          string `json:"text"`
	Type          string `json:"type"`
	FullReference string `json:"full_reference"`
	URL           string `json:"url"`
}

type citationService struct {
	db           *gorm.DB
	log          *logger.Logger
	citationRepo repos.CitationRepo
}

func NewCitationService(db *gorm.DB, baseLog *logger.Logger, citationRepo repos.CitationRepo) CitationService {
	return &citationService{
		db:           db,
		log:          baseLog.With("service", "CitationService"),
		citationRepo: citationRepo,
	}
}

func (s *citationService) Create(ctx context.Context, tx *gorm.DB, input CitationInput) (*types.Citation, error) {
	if strings.TrimSpace(input.Text) == "" {
		return nil, fmt.Errorf("%w: citation text is required", ErrInvalidInput)
	}

	citation := &types.Citation{
		ID:            uuid.New(),
		Text:          strings.TrimSpace(input.Text),
		Type:          input.Type,
		FullReference: input.FullReference,
		URL:           input.URL,
	}
	created, err := s.citationRepo.Create(ctx, tx, []*types.Citation{citation})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *citationService) Get(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Citation, error) {
	found, err := s.citationRepo.GetByIDs(ctx, tx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if len(found) == 0 || found[0] == nil {
		return nil, fmt.Errorf("citation %s: %w", id, ErrNotFound)
	}
	return found[0], nil
}

func (s *citationService) List(ctx context.Context, tx *gorm.DB) ([]*types.Citation, error) {
	return s.citationRepo.GetAll(ctx, tx)
}

func (s *citationService) Update(ctx context.Context, tx *gorm.DB, id uuid.UUID, input CitationInput) (*types.Citation, error) {
	citation, err := s.Get(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if text := strings.TrimSpace(input.Text); text != "" {
		citation.Text = text
	}
	citation.Type = input.Type
	citation.FullReference = input.FullReference
	citation.URL = input.URL
	citation.UpdatedAt = time.Now()

	return s.citationRepo.Update(ctx, tx, citation)
}

func (s *citationService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.Get(ctx, tx, id); err != nil {
			return err
		}
		return s.citationRepo.Delete(ctx, tx, id)
	})
}

package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

type CitationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, citations []*types.Citation) ([]*types.Citation, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Citation, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Citation, error)
	Update(ctx context.Context, tx *gorm.DB, citation *types.Citation) (*types.Citation, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type citationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCitationRepo(db *gorm.DB, baseLog *logger.Logger) CitationRepo {
	repoLog := baseLog.With("repo", "CitationRepo")
	return &citationRepo{db: db, log: repoLog}
}

func (cr *citationRepo) Create(ctx context.Context, tx *gorm.DB, citations []*types.Citation) ([]*types.Citation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(citations) == 0 {
		return []*types.Citation{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&citations).Error; err != nil {
		return nil, err
	}
	return citations, nil
}

func (cr *citationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Citation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Citation
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *citationRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Citation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Citation
	if err := transaction.WithContext(ctx).
		Order("text asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *citationRepo) Update(ctx context.Context, tx *gorm.DB, citation *types.Citation) (*types.Citation, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Save(citation).Error; err != nil {
		return nil, err
	}
	return citation, nil
}

func (cr *citationRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).Delete(&types.Citation{}, "id = ?", id).Error
}

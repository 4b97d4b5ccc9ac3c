package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

type ContraindicationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, contraindications []*types.Contraindication) ([]*types.Contraindication, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Contraindication, error)
	GetByDiseaseIDs(ctx context.Context, tx *gorm.DB, diseaseIDs []uuid.UUID) ([]*types.Contraindication, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Contraindication, error)
	Update(ctx context.Context, tx *gorm.DB, contraindication *types.Contraindication) (*types.Contraindication, error)
	ReplaceDiseases(ctx context.Context, tx *gorm.DB, contraindication *types.Contraindication, diseases []*types.Disease) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type contraindicationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContraindicationRepo(db *gorm.DB, baseLog *logger.Logger) ContraindicationRepo {
	repoLog := baseLog.With("repo", "ContraindicationRepo")
	return &contraindicationRepo{db: db, log: repoLog}
}

func (cr *contraindicationRepo) Create(ctx context.Context, tx *gorm.DB, contraindications []*types.Contraindication) ([]*types.Contraindication, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if len(contraindications) == 0 {
		return []*types.Contraindication{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&contraindications).Error; err != nil {
		return nil, err
	}
	return contraindications, nil
}

func (cr *contraindicationRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Contraindication, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Contraindication
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Diseases").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contraindicationRepo) GetByDiseaseIDs(ctx context.Context, tx *gorm.DB, diseaseIDs []uuid.UUID) ([]*types.Contraindication, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Contraindication
	if len(diseaseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Diseases").
		Joins("JOIN disease_contraindication dc ON dc.contraindication_id = contraindication.id").
		Where("dc.disease_id IN ?", diseaseIDs).
		Distinct().
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contraindicationRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Contraindication, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	var results []*types.Contraindication
	if err := transaction.WithContext(ctx).
		Preload("Diseases").
		Order("practice_english asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (cr *contraindicationRepo) Update(ctx context.Context, tx *gorm.DB, contraindication *types.Contraindication) (*types.Contraindication, error) {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	if err := transaction.WithContext(ctx).Save(contraindication).Error; err != nil {
		return nil, err
	}
	return contraindication, nil
}

func (cr *contraindicationRepo) ReplaceDiseases(ctx context.Context, tx *gorm.DB, contraindication *types.Contraindication, diseases []*types.Disease) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).Model(contraindication).Association("Diseases").Replace(diseases)
}

func (cr *contraindicationRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = cr.db
	}

	return transaction.WithContext(ctx).Delete(&types.Contraindication{}, "id = ?", id).Error
}

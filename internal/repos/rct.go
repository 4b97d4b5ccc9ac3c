package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

type RCTRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rcts []*types.RCT) ([]*types.RCT, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.RCT, error)
	GetByDiseaseIDs(ctx context.Context, tx *gorm.DB, diseaseIDs []uuid.UUID) ([]*types.RCT, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.RCT, error)
	Update(ctx context.Context, tx *gorm.DB, rct *types.RCT) (*types.RCT, error)
	ReplaceDiseases(ctx context.Context, tx *gorm.DB, rct *types.RCT, diseases []*types.Disease) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type rctRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRCTRepo(db *gorm.DB, baseLog *logger.Logger) RCTRepo {
	repoLog := baseLog.With("repo", "RCTRepo")
	return &rctRepo{db: db, log: repoLog}
}

func (rr *rctRepo) Create(ctx context.Context, tx *gorm.DB, rcts []*types.RCT) ([]*types.RCT, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if len(rcts) == 0 {
		return []*types.RCT{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rcts).Error; err != nil {
		return nil, err
	}
	return rcts, nil
}

func (rr *rctRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.RCT, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.RCT
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Diseases").
		Preload("Symptoms").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *rctRepo) GetByDiseaseIDs(ctx context.Context, tx *gorm.DB, diseaseIDs []uuid.UUID) ([]*types.RCT, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.RCT
	if len(diseaseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Diseases").
		Preload("Symptoms").
		Joins("JOIN disease_rct dr ON dr.rct_id = rct.id").
		Where("dr.disease_id IN ?", diseaseIDs).
		Distinct().
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *rctRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.RCT, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	var results []*types.RCT
	if err := transaction.WithContext(ctx).
		Preload("Diseases").
		Preload("Symptoms").
		Order("year desc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *rctRepo) Update(ctx context.Context, tx *gorm.DB, rct *types.RCT) (*types.RCT, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).Save(rct).Error; err != nil {
		return nil, err
	}
	return rct, nil
}

func (rr *rctRepo) ReplaceDiseases(ctx context.Context, tx *gorm.DB, rct *types.RCT, diseases []*types.Disease) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	return transaction.WithContext(ctx).Model(rct).Association("Diseases").Replace(diseases)
}

func (rr *rctRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}

	if err := transaction.WithContext(ctx).
		Where("rct_id = ?", id).
		Delete(&types.RCTSymptom{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).Delete(&types.RCT{}, "id = ?", id).Error
}

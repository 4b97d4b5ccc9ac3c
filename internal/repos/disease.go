package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

type DiseaseRepo interface {
	Create(ctx context.Context, tx *gorm.DB, diseases []*types.Disease) ([]*types.Disease, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Disease, error)
	GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Disease, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Disease, error)
	NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error)
	Update(ctx context.Context, tx *gorm.DB, disease *types.Disease) (*types.Disease, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ClearAssociations(ctx context.Context, tx *gorm.DB, disease *types.Disease) error
}

type diseaseRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewDiseaseRepo(db *gorm.DB, baseLog *logger.Logger) DiseaseRepo {
	repoLog := baseLog.With("repo", "DiseaseRepo")
	return &diseaseRepo{db: db, log: repoLog}
}

func (dr *diseaseRepo) Create(ctx context.Context, tx *gorm.DB, diseases []*types.Disease) ([]*types.Disease, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if len(diseases) == 0 {
		return []*types.Disease{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&diseases).Error; err != nil {
		return nil, err
	}

	return diseases, nil
}

// GetByIDs eager-loads contraindications; the resolver needs them without a
// second round trip.
func (dr *diseaseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Disease, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.Disease

	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Contraindications").
		Preload("Modules").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByNames matches case-insensitively. LOWER() instead of ILIKE keeps the
// query portable across the postgres and sqlite drivers.
func (dr *diseaseRepo) GetByNames(ctx context.Context, tx *gorm.DB, names []string) ([]*types.Disease, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.Disease
	if len(names) == 0 {
		return results, nil
	}

	lowered := make([]string, 0, len(names))
	for _, n := range names {
		lowered = append(lowered, strings.ToLower(strings.TrimSpace(n)))
	}

	if err := transaction.WithContext(ctx).
		Preload("Contraindications").
		Preload("Modules").
		Where("LOWER(name) IN ?", lowered).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *diseaseRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Disease, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var results []*types.Disease
	if err := transaction.WithContext(ctx).
		Order("name asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (dr *diseaseRepo) NameExists(ctx context.Context, tx *gorm.DB, name string) (bool, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Disease{}).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (dr *diseaseRepo) Update(ctx context.Context, tx *gorm.DB, disease *types.Disease) (*types.Disease, error) {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if err := transaction.WithContext(ctx).Save(disease).Error; err != nil {
		return nil, err
	}
	return disease, nil
}

func (dr *diseaseRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	return transaction.WithContext(ctx).Delete(&types.Disease{}, "id = ?", id).Error
}

// ClearAssociations drops the disease's many-to-many links. Must run before
// hard deletion so no join rows point at a missing disease.
func (dr *diseaseRepo) ClearAssociations(ctx context.Context, tx *gorm.DB, disease *types.Disease) error {
	transaction := tx
	if transaction == nil {
		transaction = dr.db
	}

	if err := transaction.WithContext(ctx).Model(disease).Association("Practices").Clear(); err != nil {
		return err
	}
	if err := transaction.WithContext(ctx).Model(disease).Association("Contraindications").Clear(); err != nil {
		return err
	}
	return transaction.WithContext(ctx).Model(disease).Association("RCTs").Clear()
}

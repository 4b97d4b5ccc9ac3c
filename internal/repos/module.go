package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

type ModuleRepo interface {
	Create(ctx context.Context, tx *gorm.DB, modules []*types.Module) ([]*types.Module, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Module, error)
	GetByDiseaseIDs(ctx context.Context, tx *gorm.DB, diseaseIDs []uuid.UUID) ([]*types.Module, error)
	Update(ctx context.Context, tx *gorm.DB, module *types.Module) (*types.Module, error)
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type moduleRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewModuleRepo(db *gorm.DB, baseLog *logger.Logger) ModuleRepo {
	repoLog := baseLog.With("repo", "ModuleRepo")
	return &moduleRepo{db: db, log: repoLog}
}

func (mr *moduleRepo) Create(ctx context.Context, tx *gorm.DB, modules []*types.Module) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if len(modules) == 0 {
		return []*types.Module{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&modules).Error; err != nil {
		return nil, err
	}
	return modules, nil
}

// practiceOrder pins the within-module practice order. Duplicate-identity
// resolution keeps the first copy encountered, so the preload order must not
// depend on what the driver happens to return.
func practiceOrder(db *gorm.DB) *gorm.DB {
	return db.Order("english_name asc, id asc")
}

// GetByIDs eager-loads each module's practices with their diseases and
// citations, which is the snapshot the recommendation engine works from.
func (mr *moduleRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Module
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Disease").
		Preload("Practices", practiceOrder).
		Preload("Practices.Diseases").
		Preload("Practices.Citation").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *moduleRepo) GetByDiseaseIDs(ctx context.Context, tx *gorm.DB, diseaseIDs []uuid.UUID) ([]*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	var results []*types.Module
	if len(diseaseIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Disease").
		Preload("Practices", practiceOrder).
		Preload("Practices.Diseases").
		Preload("Practices.Citation").
		Where("disease_id IN ?", diseaseIDs).
		Order("created_at asc").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (mr *moduleRepo) Update(ctx context.Context, tx *gorm.DB, module *types.Module) (*types.Module, error) {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).Save(module).Error; err != nil {
		return nil, err
	}
	return module, nil
}

// Delete removes the module and the practices it exclusively owns.
func (mr *moduleRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = mr.db
	}

	if err := transaction.WithContext(ctx).
		Where("module_id = ?", id).
		Delete(&types.Practice{}).Error; err != nil {
		return err
	}
	return transaction.WithContext(ctx).Delete(&types.Module{}, "id = ?", id).Error
}

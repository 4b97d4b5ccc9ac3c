package repos

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

type PracticeRepo interface {
	Create(ctx context.Context, tx *gorm.DB, practices []*types.Practice) ([]*types.Practice, error)
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Practice, error)
	GetByCode(ctx context.Context, tx *gorm.DB, code string) ([]*types.Practice, error)
	GetBySanskritName(ctx context.Context, tx *gorm.DB, sanskritName string) ([]*types.Practice, error)
	List(ctx context.Context, tx *gorm.DB, category, search string) ([]*types.Practice, error)
	SearchBySanskritPrefix(ctx context.Context, tx *gorm.DB, prefix string, limit int) ([]*types.Practice, error)
	GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Practice, error)
	Update(ctx context.Context, tx *gorm.DB, practice *types.Practice) (*types.Practice, error)
	UpdateCodeGroup(ctx context.Context, tx *gorm.DB, oldCode, newCode, sanskritName string) error
	ReplaceDiseases(ctx context.Context, tx *gorm.DB, practice *types.Practice, diseases []*types.Disease) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type practiceRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewPracticeRepo(db *gorm.DB, baseLog *logger.Logger) PracticeRepo {
	repoLog := baseLog.With("repo", "PracticeRepo")
	return &practiceRepo{db: db, log: repoLog}
}

func (pr *practiceRepo) Create(ctx context.Context, tx *gorm.DB, practices []*types.Practice) ([]*types.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if len(practices) == 0 {
		return []*types.Practice{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&practices).Error; err != nil {
		return nil, err
	}
	return practices, nil
}

func (pr *practiceRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Practice
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Diseases").
		Preload("Citation").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *practiceRepo) GetByCode(ctx context.Context, tx *gorm.DB, code string) ([]*types.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Practice
	if strings.TrimSpace(code) == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("code = ?", code).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *practiceRepo) GetBySanskritName(ctx context.Context, tx *gorm.DB, sanskritName string) ([]*types.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Practice
	if strings.TrimSpace(sanskritName) == "" {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("LOWER(sanskrit_name) = ?", strings.ToLower(strings.TrimSpace(sanskritName))).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *practiceRepo) List(ctx context.Context, tx *gorm.DB, category, search string) ([]*types.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	query := transaction.WithContext(ctx).
		Preload("Diseases").
		Preload("Citation")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(english_name) LIKE ? OR LOWER(sanskrit_name) LIKE ?", pattern, pattern)
	}

	var results []*types.Practice
	if err := query.Order("english_name asc").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *practiceRepo) SearchBySanskritPrefix(ctx context.Context, tx *gorm.DB, prefix string, limit int) ([]*types.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Practice
	if strings.TrimSpace(prefix) == "" {
		return results, nil
	}
	if limit <= 0 {
		limit = 10
	}

	if err := transaction.WithContext(ctx).
		Where("LOWER(sanskrit_name) LIKE ?", strings.ToLower(strings.TrimSpace(prefix))+"%").
		Order("sanskrit_name asc").
		Limit(limit).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *practiceRepo) GetAll(ctx context.Context, tx *gorm.DB) ([]*types.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	var results []*types.Practice
	if err := transaction.WithContext(ctx).
		Preload("Diseases").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (pr *practiceRepo) Update(ctx context.Context, tx *gorm.DB, practice *types.Practice) (*types.Practice, error) {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if err := transaction.WithContext(ctx).Save(practice).Error; err != nil {
		return nil, err
	}
	return practice, nil
}

// UpdateCodeGroup rewrites code and sanskrit name across every practice that
// shares oldCode. CVR scores are module-local and are deliberately left
// untouched.
func (pr *practiceRepo) UpdateCodeGroup(ctx context.Context, tx *gorm.DB, oldCode, newCode, sanskritName string) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	if strings.TrimSpace(oldCode) == "" {
		return nil
	}

	return transaction.WithContext(ctx).
		Model(&types.Practice{}).
		Where("code = ?", oldCode).
		Updates(map[string]interface{}{
			"code":          newCode,
			"sanskrit_name": sanskritName,
		}).Error
}

func (pr *practiceRepo) ReplaceDiseases(ctx context.Context, tx *gorm.DB, practice *types.Practice, diseases []*types.Disease) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).Model(practice).Association("Diseases").Replace(diseases)
}

func (pr *practiceRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = pr.db
	}

	return transaction.WithContext(ctx).Delete(&types.Practice{}, "id = ?", id).Error
}

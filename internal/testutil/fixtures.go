package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

func SeedDisease(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Disease {
	tb.Helper()
	d := &types.Disease{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed disease: %v", err)
	}
	return d
}

func SeedModule(tb testing.TB, ctx context.Context, tx *gorm.DB, diseaseID uuid.UUID, developedBy string) *types.Module {
	tb.Helper()
	m := &types.Module{
		ID:          uuid.New(),
		DiseaseID:   diseaseID,
		DevelopedBy: developedBy,
	}
	if err := tx.WithContext(ctx).Create(m).Error; err != nil {
		tb.Fatalf("seed module: %v", err)
	}
	return m
}

func SeedPractice(tb testing.TB, ctx context.Context, tx *gorm.DB, moduleID uuid.UUID, english, category, kosha string) *types.Practice {
	tb.Helper()
	mid := moduleID
	p := &types.Practice{
		ID:          uuid.New(),
		ModuleID:    &mid,
		EnglishName: english,
		Category:    category,
		Kosha:       kosha,
	}
	if err := tx.WithContext(ctx).Create(p).Error; err != nil {
		tb.Fatalf("seed practice: %v", err)
	}
	return p
}

func LinkPracticeDisease(tb testing.TB, ctx context.Context, tx *gorm.DB, p *types.Practice, d *types.Disease) {
	tb.Helper()
	if err := tx.WithContext(ctx).Model(p).Association("Diseases").Append(d); err != nil {
		tb.Fatalf("link practice to disease: %v", err)
	}
}

func SeedContraindication(tb testing.TB, ctx context.Context, tx *gorm.DB, d *types.Disease, english, category string) *types.Contraindication {
	tb.Helper()
	c := &types.Contraindication{
		ID:              uuid.New(),
		PracticeEnglish: english,
		Category:        category,
		Reason:          "test reason",
	}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed contraindication: %v", err)
	}
	if err := tx.WithContext(ctx).Model(c).Association("Diseases").Append(d); err != nil {
		tb.Fatalf("link contraindication to disease: %v", err)
	}
	return c
}

func SeedRCT(tb testing.TB, ctx context.Context, tx *gorm.DB, d *types.Disease, title string, interventions []byte) *types.RCT {
	tb.Helper()
	r := &types.RCT{
		ID:            uuid.New(),
		Title:         title,
		Interventions: interventions,
	}
	if err := tx.WithContext(ctx).Create(r).Error; err != nil {
		tb.Fatalf("seed rct: %v", err)
	}
	if err := tx.WithContext(ctx).Model(r).Association("Diseases").Append(d); err != nil {
		tb.Fatalf("link rct to disease: %v", err)
	}
	return r
}

package engine

import (
	"github.com/google/uuid"

	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

// Shared builders for the engine tests.

func testDisease(name string) *types.Disease {
	return &types.Disease{ID: uuid.New(), Name: name}
}

func testPractice(english, category, kosha string, opts ...func(*types.Practice)) *types.Practice {
	p := &types.Practice{
		ID:          uuid.New(),
		EnglishName: english,
		Category:    category,
		Kosha:       kosha,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func withCode(code string) func(*types.Practice) {
	return func(p *types.Practice) { p.Code = code }
}

func withSanskrit(name string) func(*types.Practice) {
	return func(p *types.Practice) { p.SanskritName = name }
}

func withRCTCount(n int) func(*types.Practice) {
	return func(p *types.Practice) { p.RCTCount = n }
}

func withCVR(score float64) func(*types.Practice) {
	return func(p *types.Practice) { p.CVRScore = score }
}

func withDiseases(ds ...*types.Disease) func(*types.Practice) {
	return func(p *types.Practice) { p.Diseases = append(p.Diseases, ds...) }
}

func withSubCategory(sc string) func(*types.Practice) {
	return func(p *types.Practice) { p.SubCategory = sc }
}

func testModule(d *types.Disease, practices ...*types.Practice) *types.Module {
	return &types.Module{
		ID:        uuid.New(),
		DiseaseID: d.ID,
		Disease:   d,
		Practices: practices,
	}
}

func testContraindication(english, category string, diseases ...*types.Disease) {
	c := &types.Contraindication{
		ID:              uuid.New(),
		PracticeEnglish: english,
		Category:        category,
		Reason:          "unsafe for this condition",
		Source:          "clinical guideline",
	}
	for _, d := range diseases {
		d.Contraindications = append(d.Contraindications, c)
	}
}

func diseaseIDs(ds ...*types.Disease) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(ds))
	for _, d := range ds {
		ids = append(ids, d.ID)
	}
	return ids
}

func selectedNames(result *AllocationResult) []string {
	names := make([]string, 0, len(result.Selected))
	for _, p := range result.Selected {
		names = append(names, p.EnglishName)
	}
	return names
}

package services

import (
	"errors"
	"testing"

	"github.com/anvayahealth/yogatherapy-backend/internal/repos"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

func newPracticeService(t *testing.T) (PracticeService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	svc := NewPracticeService(env.tx, env.log,
		repos.NewPracticeRepo(env.tx, env.log),
		repos.NewDiseaseRepo(env.tx, env.log),
	)
	return svc, env
}

func TestPracticeCreateValidation(t *testing.T) {
	svc, env := newPracticeService(t)

	tests := []struct {
		name  string
		input PracticeInput
	}{
		{"missing english name", PracticeInput{Category: types.CategoryYogasana, Kosha: types.KoshaAnnamaya}},
		{"unknown category", PracticeInput{EnglishName: "X", Category: "Nope", Kosha: types.KoshaAnnamaya}},
		{"unknown kosha", PracticeInput{EnglishName: "X", Category: types.CategoryYogasana, Kosha: "Nope"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(env.ctx, tc.input)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("Create() error = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestPracticeCodeInvariant(t *testing.T) {
	svc, env := newPracticeService(t)

	_, err := svc.Create(env.ctx, PracticeInput{
		EnglishName:  "Skull Shining Breath",
		SanskritName: "Kapalabhati",
		Category:     types.CategoryBreathing,
		Kosha:        types.KoshaPranamaya,
		Code:         "KAP01",
	})
	if err != nil {
		t.Fatalf("Create() first practice: %v", err)
	}

	// Same code, different Sanskrit name: rejected.
	_, err = svc.Create(env.ctx, PracticeInput{
		EnglishName:  "Bellows Breath",
		SanskritName: "Bhastrika",
		Category:     types.CategoryBreathing,
		Kosha:        types.KoshaPranamaya,
		Code:         "KAP01",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Create() with conflicting code: error = %v, want ErrInvalidInput", err)
	}

	// Same Sanskrit name, different code: rejected.
	_, err = svc.Create(env.ctx, PracticeInput{
		EnglishName:  "Skull Shining Breath Variant",
		SanskritName: "Kapalabhati",
		Category:     types.CategoryBreathing,
		Kosha:        types.KoshaPranamaya,
		Code:         "KAP02",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Create() with conflicting sanskrit name: error = %v, want ErrInvalidInput", err)
	}

	// Same code and Sanskrit name: allowed (the practice recurs in another
	// module).
	_, err = svc.Create(env.ctx, PracticeInput{
		EnglishName:  "Skull Shining Breath",
		SanskritName: "Kapalabhati",
		Category:     types.CategoryBreathing,
		Kosha:        types.KoshaPranamaya,
		Code:         "KAP01",
	})
	if err != nil {
		t.Fatalf("Create() duplicate of the code group: %v", err)
	}
}

func TestPracticeUpdatePropagatesCodeGroup(t *testing.T) {
	svc, env := newPracticeService(t)

	first, err := svc.Create(env.ctx, PracticeInput{
		EnglishName:  "Skull Shining Breath",
		SanskritName: "Kapalabhati",
		Category:     types.CategoryBreathing,
		Kosha:        types.KoshaPranamaya,
		Code:         "KAP01",
		CVRScore:     0.8,
	})
	if err != nil {
		t.Fatalf("Create() first: %v", err)
	}
	second, err := svc.Create(env.ctx, PracticeInput{
		EnglishName:  "Skull Shining Breath",
		SanskritName: "Kapalabhati",
		Category:     types.CategoryBreathing,
		Kosha:        types.KoshaPranamaya,
		Code:         "KAP01",
		CVRScore:     0.3,
	})
	if err != nil {
		t.Fatalf("Create() second: %v", err)
	}

	// Rename the code group through the first practice.
	_, err = svc.Update(env.ctx, first.ID, PracticeInput{
		EnglishName:  "Skull Shining Breath",
		SanskritName: "Kapalabhati Kriya",
		Category:     types.CategoryBreathing,
		Kosha:        types.KoshaPranamaya,
		Code:         "KAP02",
		CVRScore:     0.9,
	})
	if err != nil {
		t.Fatalf("Update(): %v", err)
	}

	got, err := svc.Get(env.ctx, env.tx, second.ID)
	if err != nil {
		t.Fatalf("Get() second: %v", err)
	}
	if got.Code != "KAP02" {
		t.Errorf("second practice code = %q, want propagated KAP02", got.Code)
	}
	if got.SanskritName != "Kapalabhati Kriya" {
		t.Errorf("second practice sanskrit = %q, want propagated rename", got.SanskritName)
	}
	if got.CVRScore != 0.3 {
		t.Errorf("second practice cvr = %v, want 0.3 untouched; cvr is module-local", got.CVRScore)
	}
}


package services

import (
	"errors"
	"testing"

	"github.com/anvayahealth/yogatherapy-backend/internal/repos"
	"github.com/anvayahealth/yogatherapy-backend/internal/testutil"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

func newDiseaseService(t *testing.T) (DiseaseService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	svc := NewDiseaseService(env.tx, env.log,
		repos.NewDiseaseRepo(env.tx, env.log),
		repos.NewModuleRepo(env.tx, env.log),
	)
	return svc, env
}

func TestDiseaseCreateRejectsDuplicateName(t *testing.T) {
	svc, env := newDiseaseService(t)

	if _, err := svc.Create(env.ctx, env.tx, DiseaseInput{Name: "Diabetes"}); err != nil {
		t.Fatalf("Create(): %v", err)
	}
	// Name matching is case-insensitive.
	_, err := svc.Create(env.ctx, env.tx, DiseaseInput{Name: "diabetes"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("Create() duplicate: error = %v, want ErrInvalidInput", err)
	}
}

func TestDiseaseDeleteCascades(t *testing.T) {
	svc, env := newDiseaseService(t)

	d := testutil.SeedDisease(t, env.ctx, env.tx, "Diabetes")
	m := testutil.SeedModule(t, env.ctx, env.tx, d.ID, "S-VYASA")
	p := testutil.SeedPractice(t, env.ctx, env.tx, m.ID, "Cobra Pose", types.CategoryYogasana, types.KoshaAnnamaya)
	testutil.LinkPracticeDisease(t, env.ctx, env.tx, p, d)

	if err := svc.Delete(env.ctx, d.ID); err != nil {
		t.Fatalf("Delete(): %v", err)
	}

	var modules int64
	if err := env.tx.Model(&types.Module{}).Where("disease_id = ?", d.ID).Count(&modules).Error; err != nil {
		t.Fatalf("count modules: %v", err)
	}
	if modules != 0 {
		t.Errorf("modules remaining = %d, want 0", modules)
	}

	var practices int64
	if err := env.tx.Model(&types.Practice{}).Where("module_id = ?", m.ID).Count(&practices).Error; err != nil {
		t.Fatalf("count practices: %v", err)
	}
	if practices != 0 {
		t.Errorf("practices remaining = %d, want 0", practices)
	}
}

func TestDiseaseGetNotFound(t *testing.T) {
	svc, env := newDiseaseService(t)

	d := testutil.SeedDisease(t, env.ctx, env.tx, "Diabetes")
	if err := svc.Delete(env.ctx, d.ID); err != nil {
		t.Fatalf("Delete(): %v", err)
	}
	_, err := svc.Get(env.ctx, env.tx, d.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get() after delete: error = %v, want ErrNotFound", err)
	}
}

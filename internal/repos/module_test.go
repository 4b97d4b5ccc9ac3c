package repos

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/anvayahealth/yogatherapy-backend/internal/testutil"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

func TestModuleRepoPreloadsPracticesInStableOrder(t *testing.T) {
	ctx := context.Background()
	tx := testutil.Tx(t, testutil.DB(t))
	log := testutil.Logger(t)
	repo := NewModuleRepo(tx, log)

	d := testutil.SeedDisease(t, ctx, tx, "Diabetes")
	m := testutil.SeedModule(t, ctx, tx, d.ID, "S-VYASA")

	// Inserted out of alphabetical order on purpose; the preload must not
	// echo insertion or driver order back.
	for _, name := range []string{"Twisted Pose", "Bridge Pose", "Cobra Pose"} {
		testutil.SeedPractice(t, ctx, tx, m.ID, name, "Yogasana", "Annamaya")
	}

	byIDs, err := repo.GetByIDs(ctx, tx, []uuid.UUID{m.ID})
	if err != nil {
		t.Fatalf("GetByIDs(): %v", err)
	}
	if len(byIDs) != 1 {
		t.Fatalf("GetByIDs() returned %d modules, want 1", len(byIDs))
	}
	assertPracticeOrder(t, byIDs[0].Practices)

	byDisease, err := repo.GetByDiseaseIDs(ctx, tx, []uuid.UUID{d.ID})
	if err != nil {
		t.Fatalf("GetByDiseaseIDs(): %v", err)
	}
	if len(byDisease) != 1 {
		t.Fatalf("GetByDiseaseIDs() returned %d modules, want 1", len(byDisease))
	}
	assertPracticeOrder(t, byDisease[0].Practices)
}

func assertPracticeOrder(t *testing.T, practices []*types.Practice) {
	t.Helper()
	want := []string{"Bridge Pose", "Cobra Pose", "Twisted Pose"}
	if len(practices) != len(want) {
		t.Fatalf("got %d practices, want %d", len(practices), len(want))
	}
	for i, p := range practices {
		if p.EnglishName != want[i] {
			t.Errorf("practice %d = %s, want %s", i, p.EnglishName, want[i])
		}
	}
}

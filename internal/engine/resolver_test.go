package engine

import (
	"testing"

	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

func TestResolveUnionsContraindications(t *testing.T) {
	backPain := testDisease("Low Back Pain")
	hernia := testDisease("Hernia")
	testContraindication("Twisted Pose", types.CategoryYogasana, backPain)
	testContraindication("Skull Shining Breath", types.CategoryBreathing, hernia)

	es := Resolve([]*types.Disease{backPain, hernia})

	if es.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", es.Len())
	}
	if !es.Excludes("Twisted Pose", types.CategoryYogasana) {
		t.Error("expected back pain contraindication to be excluded")
	}
	if !es.Excludes("Skull Shining Breath", types.CategoryBreathing) {
		t.Error("expected hernia contraindication to be excluded")
	}
}

func TestResolveKeyIsNameAndCategory(t *testing.T) {
	d := testDisease("Arthritis")
	testContraindication("Twisted Pose", types.CategoryYogasana, d)

	es := Resolve([]*types.Disease{d})

	// Case-insensitive on the name.
	if !es.Excludes("  twisted pose ", types.CategoryYogasana) {
		t.Error("exclusion matching should be case-insensitive and trim whitespace")
	}
	// Category is part of the key: same name, different category survives.
	if es.Excludes("Twisted Pose", types.CategoryPreparatory) {
		t.Error("a different category must not be excluded")
	}
}

func TestResolveCollapsesDuplicateKeys(t *testing.T) {
	d1 := testDisease("Low Back Pain")
	d2 := testDisease("Sciatica")
	// Same practice forbidden for both diseases, stored twice.
	testContraindication("Twisted Pose", types.CategoryYogasana, d1)
	testContraindication("Twisted Pose", types.CategoryYogasana, d2)

	es := Resolve([]*types.Disease{d1, d2})

	if es.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 collapsed key", es.Len())
	}
	detail, ok := es.DetailFor("Twisted Pose", types.CategoryYogasana)
	if !ok {
		t.Fatal("expected a detail record for the collapsed key")
	}
	if len(detail.Diseases) != 2 {
		t.Fatalf("detail diseases = %v, want both disease names", detail.Diseases)
	}
	if detail.Diseases[0] != "Low Back Pain" || detail.Diseases[1] != "Sciatica" {
		t.Errorf("detail diseases not sorted: %v", detail.Diseases)
	}
}

func TestResolveEmptySelection(t *testing.T) {
	es := Resolve(nil)
	if es.Len() != 0 {
		t.Errorf("Len() = %d, want 0", es.Len())
	}
	if es.Excludes("Anything", types.CategoryYogasana) {
		t.Error("empty set must exclude nothing")
	}
}

package engine

import (
	"testing"

	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

func TestAggregateFiltersAndRanks(t *testing.T) {
	d := testDisease("Low Back Pain")
	testContraindication("Twisted Pose", types.CategoryYogasana, d)

	strong := testPractice("Cobra Pose", types.CategoryYogasana, types.KoshaAnnamaya, withRCTCount(2))
	weak := testPractice("Bridge Pose", types.CategoryYogasana, types.KoshaAnnamaya)
	forbidden := testPractice("Twisted Pose", types.CategoryYogasana, types.KoshaAnnamaya, withRCTCount(5))
	malformed := testPractice("Mystery Pose", "NotACategory", types.KoshaAnnamaya)
	m := testModule(d, weak, strong, forbidden, malformed)

	excl := Resolve([]*types.Disease{d})
	ranker := NewRanker(diseaseIDs(d))
	cands, removed := Aggregate([]*types.Module{m}, excl, ranker)

	ranked := cands.ForModule(m.ID, types.CategoryYogasana)
	if len(ranked) != 2 {
		t.Fatalf("got %d candidates, want 2", len(ranked))
	}
	if ranked[0].EnglishName != "Cobra Pose" {
		t.Errorf("rank order wrong: got %q first", ranked[0].EnglishName)
	}

	if len(removed) != 1 {
		t.Fatalf("got %d removed practices, want 1", len(removed))
	}
	if removed[0].PracticeEnglish != "Twisted Pose" {
		t.Errorf("removed = %q, want Twisted Pose", removed[0].PracticeEnglish)
	}
	if removed[0].Detail.Reason == "" {
		t.Error("removed practice should carry the contraindication detail")
	}
}

func TestCategoryMaximaCountsDistinctIdentities(t *testing.T) {
	d1 := testDisease("Diabetes")
	d2 := testDisease("Hypertension")

	// KAP01 appears in both modules; it is one identity, not two.
	kapalabhati1 := testPractice("Skull Shining Breath", types.CategoryBreathing, types.KoshaPranamaya, withCode("KAP01"), withSanskrit("Kapalabhati"))
	kapalabhati2 := testPractice("Skull Shining Breath", types.CategoryBreathing, types.KoshaPranamaya, withCode("KAP01"), withSanskrit("Kapalabhati"))
	bhastrika := testPractice("Bellows Breath", types.CategoryBreathing, types.KoshaPranamaya, withSanskrit("Bhastrika"))

	m1 := testModule(d1, kapalabhati1)
	m2 := testModule(d2, kapalabhati2, bhastrika)

	excl := Resolve(nil)
	ranker := NewRanker(diseaseIDs(d1, d2))
	cands, _ := Aggregate([]*types.Module{m1, m2}, excl, ranker)

	maxima := CategoryMaxima([]*types.Module{m1, m2}, cands)
	if got := maxima[types.CategoryBreathing]; got != 2 {
		t.Errorf("breathing maximum = %d, want 2 (shared code counts once)", got)
	}
}

func TestCollectAllDeduplicatesInModuleOrder(t *testing.T) {
	d1 := testDisease("Diabetes")
	d2 := testDisease("Hypertension")

	shared1 := testPractice("Skull Shining Breath", types.CategoryBreathing, types.KoshaPranamaya, withCode("KAP01"), withRCTCount(1))
	shared2 := testPractice("Skull Shining Breath", types.CategoryBreathing, types.KoshaPranamaya, withCode("KAP01"), withRCTCount(4))
	own := testPractice("Corpse Pose", types.CategoryAdditional, types.KoshaManomaya)

	m1 := testModule(d1, shared1)
	m2 := testModule(d2, shared2, own)

	out, removed := CollectAll([]*types.Module{m1, m2}, Resolve(nil))
	if len(removed) != 0 {
		t.Fatalf("unexpected removals: %v", removed)
	}
	if len(out) != 2 {
		t.Fatalf("got %d practices, want 2", len(out))
	}
	// First occurrence wins: the copy from the first module.
	if out[0] != shared1 {
		t.Error("dedup should keep the first module's copy")
	}
}

package engine

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"

	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

func testRCT(title string, d *types.Disease, interventions []types.RCTIntervention) *types.RCT {
	raw, _ := json.Marshal(interventions)
	return &types.RCT{
		ID:            uuid.New(),
		Title:         title,
		Interventions: raw,
		Diseases:      []*types.Disease{d},
	}
}

func TestMatchRCTCitationsByName(t *testing.T) {
	d := testDisease("Diabetes")
	p := testPractice("Skull Shining Breath", types.CategoryBreathing, types.KoshaPranamaya,
		withSanskrit("Kapalabhati"), withDiseases(d))

	rcts := []*types.RCT{
		testRCT("Named match", d, []types.RCTIntervention{{Practice: "kapalabhati", Category: types.CategoryBreathing}}),
		testRCT("English match", d, []types.RCTIntervention{{Practice: "SKULL SHINING BREATH"}}),
		testRCT("Wrong name", d, []types.RCTIntervention{{Practice: "Bhastrika", Category: types.CategoryBreathing}}),
	}

	got := MatchRCTCitations(p, rcts)
	if len(got) != 2 {
		t.Fatalf("got %d citations, want 2", len(got))
	}
	if got[0].Title != "Named match" || got[1].Title != "English match" {
		t.Errorf("unexpected citations: %+v", got)
	}
}

func TestMatchRCTCitationsBlankNameFallsBackToCategory(t *testing.T) {
	d := testDisease("Diabetes")
	p := testPractice("Cobra Pose", types.CategoryYogasana, types.KoshaAnnamaya, withDiseases(d))

	rcts := []*types.RCT{
		testRCT("Category-wide trial", d, []types.RCTIntervention{{Practice: "", Category: types.CategoryYogasana}}),
		testRCT("Other category", d, []types.RCTIntervention{{Practice: "", Category: types.CategoryBreathing}}),
	}

	got := MatchRCTCitations(p, rcts)
	if len(got) != 1 || got[0].Title != "Category-wide trial" {
		t.Fatalf("unexpected citations: %+v", got)
	}
}

func TestMatchRCTCitationsNamedEntryDoesNotFallBack(t *testing.T) {
	d := testDisease("Diabetes")
	p := testPractice("Cobra Pose", types.CategoryYogasana, types.KoshaAnnamaya, withDiseases(d))

	// The entry names a different practice; the matching category must not
	// rescue it.
	rct := testRCT("Named other practice", d, []types.RCTIntervention{
		{Practice: "Bhujangasana Variant", Category: types.CategoryYogasana},
	})

	if got := MatchRCTCitations(p, []*types.RCT{rct}); len(got) != 0 {
		t.Fatalf("unexpected citations: %+v", got)
	}
}

func TestMatchRCTCitationsRequiresDiseaseOverlap(t *testing.T) {
	d1 := testDisease("Diabetes")
	d2 := testDisease("Hypertension")
	p := testPractice("Cobra Pose", types.CategoryYogasana, types.KoshaAnnamaya, withDiseases(d1))

	rct := testRCT("Other disease trial", d2, []types.RCTIntervention{{Practice: "Cobra Pose"}})
	if got := MatchRCTCitations(p, []*types.RCT{rct}); len(got) != 0 {
		t.Fatalf("unexpected citations: %+v", got)
	}
}

func TestMatchRCTCitationsOnePerTrial(t *testing.T) {
	d := testDisease("Diabetes")
	p := testPractice("Skull Shining Breath", types.CategoryBreathing, types.KoshaPranamaya,
		withSanskrit("Kapalabhati"), withDiseases(d))

	// Two entries both match; the trial still contributes one citation.
	rct := testRCT("Double entry", d, []types.RCTIntervention{
		{Practice: "Kapalabhati"},
		{Practice: "", Category: types.CategoryBreathing},
	})

	if got := MatchRCTCitations(p, []*types.RCT{rct}); len(got) != 1 {
		t.Fatalf("got %d citations, want 1", len(got))
	}
}

func TestMatchRCTCitationsMalformedInterventionsSkipped(t *testing.T) {
	d := testDisease("Diabetes")
	p := testPractice("Cobra Pose", types.CategoryYogasana, types.KoshaAnnamaya, withDiseases(d))

	rct := &types.RCT{
		ID:            uuid.New(),
		Title:         "Broken import",
		Interventions: []byte("{not json"),
		Diseases:      []*types.Disease{d},
	}
	if got := MatchRCTCitations(p, []*types.RCT{rct}); got != nil {
		t.Fatalf("malformed interventions must match nothing, got %+v", got)
	}
}

func TestFormatKoshaAndCategoryOrder(t *testing.T) {
	d := testDisease("Diabetes")
	selected := []*types.Practice{
		testPractice("Meditation A", types.CategoryMeditation, types.KoshaVijnanamaya),
		testPractice("Bliss Practice", types.CategoryChanting, types.KoshaAnandamaya),
		testPractice("Cobra Pose", types.CategoryYogasana, types.KoshaAnnamaya),
		testPractice("Warm Up", types.CategoryPreparatory, types.KoshaAnnamaya),
	}

	rec := Format(selected, []*types.Disease{d}, nil, nil, NewRanker(diseaseIDs(d)))

	if len(rec.Koshas) != 3 {
		t.Fatalf("got %d kosha groups, want 3", len(rec.Koshas))
	}
	wantKoshas := []string{types.KoshaAnnamaya, types.KoshaAnandamaya, types.KoshaVijnanamaya}
	for i, want := range wantKoshas {
		if rec.Koshas[i].Kosha != want {
			t.Errorf("kosha[%d] = %s, want %s", i, rec.Koshas[i].Kosha, want)
		}
	}

	// Within Annamaya, Preparatory comes before Yogasana.
	annamaya := rec.Koshas[0]
	if len(annamaya.Categories) != 2 {
		t.Fatalf("got %d categories in annamaya, want 2", len(annamaya.Categories))
	}
	if annamaya.Categories[0].Category != types.CategoryPreparatory {
		t.Errorf("category order wrong: got %s first", annamaya.Categories[0].Category)
	}
}

func TestFormatEmptySubCategoryBecomesGeneral(t *testing.T) {
	d := testDisease("Diabetes")
	selected := []*types.Practice{
		testPractice("Cobra Pose", types.CategoryYogasana, types.KoshaAnnamaya),
		testPractice("Standing Twist", types.CategoryYogasana, types.KoshaAnnamaya, withSubCategory("standing")),
	}

	rec := Format(selected, []*types.Disease{d}, nil, nil, NewRanker(diseaseIDs(d)))

	subs := rec.Koshas[0].Categories[0].SubCategories
	if len(subs) != 2 {
		t.Fatalf("got %d sub-category groups, want 2", len(subs))
	}
	// Sub-categories sort alphabetically: "general" before "standing".
	if subs[0].SubCategory != "general" || subs[1].SubCategory != "standing" {
		t.Errorf("sub-category grouping wrong: %s, %s", subs[0].SubCategory, subs[1].SubCategory)
	}
}

func TestFormatLeavesReSortedByRank(t *testing.T) {
	d := testDisease("Diabetes")
	weak := testPractice("Bridge Pose", types.CategoryYogasana, types.KoshaAnnamaya)
	strong := testPractice("Cobra Pose", types.CategoryYogasana, types.KoshaAnnamaya, withRCTCount(3))

	// Allocation order has the weak practice first; display re-sorts.
	rec := Format([]*types.Practice{weak, strong}, []*types.Disease{d}, nil, nil, NewRanker(diseaseIDs(d)))

	practices := rec.Koshas[0].Categories[0].SubCategories[0].Practices
	if practices[0].EnglishName != "Cobra Pose" {
		t.Errorf("leaf not re-sorted by rank: got %q first", practices[0].EnglishName)
	}
}

func TestFormatSkipsInvalidKosha(t *testing.T) {
	d := testDisease("Diabetes")
	bad := testPractice("Mystery", types.CategoryYogasana, "NotAKosha")

	rec := Format([]*types.Practice{bad}, []*types.Disease{d}, nil, nil, NewRanker(diseaseIDs(d)))
	if len(rec.Koshas) != 0 {
		t.Fatalf("invalid kosha must be skipped, got %d groups", len(rec.Koshas))
	}
}

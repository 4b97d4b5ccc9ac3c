package engine

import (
	"testing"

	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

func TestIdentityKey(t *testing.T) {
	tests := []struct {
		name string
		p    *types.Practice
		want string
	}{
		{
			name: "code wins over names",
			p:    testPractice("Skull Shining Breath", types.CategoryBreathing, types.KoshaPranamaya, withCode("KAP01"), withSanskrit("Kapalabhati")),
			want: "KAP01",
		},
		{
			name: "sanskrit when no code",
			p:    testPractice("Skull Shining Breath", types.CategoryBreathing, types.KoshaPranamaya, withSanskrit("Kapalabhati")),
			want: "kapalabhati",
		},
		{
			name: "english as last resort",
			p:    testPractice("Deep Relaxation", types.CategoryAdditional, types.KoshaManomaya),
			want: "deep relaxation",
		},
		{
			name: "whitespace trimmed, case folded",
			p:    testPractice("X", types.CategoryYogasana, types.KoshaAnnamaya, withSanskrit("  Vakrasana  ")),
			want: "vakrasana",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IdentityKey(tc.p); got != tc.want {
				t.Errorf("IdentityKey() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRankerOrder(t *testing.T) {
	d1 := testDisease("Diabetes")
	d2 := testDisease("Hypertension")
	ranker := NewRanker(diseaseIDs(d1, d2))

	moreRCT := testPractice("A", types.CategoryYogasana, types.KoshaAnnamaya, withRCTCount(3))
	fewerRCT := testPractice("B", types.CategoryYogasana, types.KoshaAnnamaya, withRCTCount(1))
	if !ranker.Less(moreRCT, fewerRCT) {
		t.Error("higher rct count should rank first")
	}

	moreOverlap := testPractice("C", types.CategoryYogasana, types.KoshaAnnamaya, withRCTCount(1), withDiseases(d1, d2))
	lessOverlap := testPractice("D", types.CategoryYogasana, types.KoshaAnnamaya, withRCTCount(1), withDiseases(d1))
	if !ranker.Less(moreOverlap, lessOverlap) {
		t.Error("with equal rct counts, higher disease overlap should rank first")
	}

	higherCVR := testPractice("E", types.CategoryYogasana, types.KoshaAnnamaya, withCVR(0.9))
	lowerCVR := testPractice("F", types.CategoryYogasana, types.KoshaAnnamaya, withCVR(0.5))
	if !ranker.Less(higherCVR, lowerCVR) {
		t.Error("with equal rct and overlap, higher cvr should rank first")
	}

	// Full tie resolves alphabetically by english name.
	alpha := testPractice("Alpha Pose", types.CategoryYogasana, types.KoshaAnnamaya)
	beta := testPractice("Beta Pose", types.CategoryYogasana, types.KoshaAnnamaya)
	if !ranker.Less(alpha, beta) {
		t.Error("ties should resolve alphabetically")
	}
	if ranker.Less(beta, alpha) {
		t.Error("order must be a strict weak ordering")
	}
}

func TestRankerOverlapCountsOnlySelected(t *testing.T) {
	selected := testDisease("Asthma")
	other := testDisease("Migraine")
	ranker := NewRanker(diseaseIDs(selected))

	p := testPractice("X", types.CategoryBreathing, types.KoshaPranamaya, withDiseases(selected, other))
	if got := ranker.Overlap(p); got != 1 {
		t.Errorf("Overlap() = %d, want 1", got)
	}
}

package engine

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

func yogasanas(prefix string, n int) []*types.Practice {
	out := make([]*types.Practice, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, testPractice(prefix+string(rune('A'+i)), types.CategoryYogasana, types.KoshaAnnamaya))
	}
	return out
}

func TestValidateWeights(t *testing.T) {
	d1, d2 := testDisease("Diabetes"), testDisease("Hypertension")
	m1, m2 := testModule(d1), testModule(d2)
	modules := []*types.Module{m1, m2}

	tests := []struct {
		name    string
		weights map[uuid.UUID]int
		wantErr bool
	}{
		{"valid 70/30", map[uuid.UUID]int{m1.ID: 70, m2.ID: 30}, false},
		{"valid 100/0", map[uuid.UUID]int{m1.ID: 100, m2.ID: 0}, false},
		{"sum over 100", map[uuid.UUID]int{m1.ID: 70, m2.ID: 40}, true},
		{"sum under 100", map[uuid.UUID]int{m1.ID: 50, m2.ID: 40}, true},
		{"negative weight", map[uuid.UUID]int{m1.ID: -10, m2.ID: 110}, true},
		{"missing module weight", map[uuid.UUID]int{m1.ID: 100}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateWeights(modules, tc.weights)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidInput), "validation failures must wrap ErrInvalidInput")
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestAllocateWeightedShares(t *testing.T) {
	d1, d2 := testDisease("Diabetes"), testDisease("Hypertension")
	m1 := testModule(d1, yogasanas("D", 10)...)
	m2 := testModule(d2, yogasanas("H", 10)...)
	modules := []*types.Module{m1, m2}

	ranker := NewRanker(diseaseIDs(d1, d2))
	cands, _ := Aggregate(modules, Resolve(nil), ranker)

	result, err := Allocate(AllocationRequest{
		Targets:    map[string]int{types.CategoryYogasana: 10},
		Modules:    modules,
		Weights:    map[uuid.UUID]int{m1.ID: 70, m2.ID: 30},
		Candidates: cands,
	})
	require.NoError(t, err)
	require.Len(t, result.Selected, 10)
	assert.Empty(t, result.Shortfalls)

	// 70/30 over 10 practices: exactly 7 from the first module, 3 from the
	// second.
	var fromFirst, fromSecond int
	for _, p := range result.Selected {
		switch p.EnglishName[0] {
		case 'D':
			fromFirst++
		case 'H':
			fromSecond++
		}
	}
	assert.Equal(t, 7, fromFirst)
	assert.Equal(t, 3, fromSecond)
}

func TestAllocateRemainderRoundRobin(t *testing.T) {
	d1, d2, d3 := testDisease("A"), testDisease("B"), testDisease("C")
	m1 := testModule(d1, yogasanas("X", 5)...)
	m2 := testModule(d2, yogasanas("Y", 5)...)
	m3 := testModule(d3, yogasanas("Z", 5)...)
	modules := []*types.Module{m1, m2, m3}

	ranker := NewRanker(diseaseIDs(d1, d2, d3))
	cands, _ := Aggregate(modules, Resolve(nil), ranker)

	// 34/33/33 of 4: floors are 1/1/1, remainder 1 goes to the first module
	// in severity order.
	result, err := Allocate(AllocationRequest{
		Targets:    map[string]int{types.CategoryYogasana: 4},
		Modules:    modules,
		Weights:    map[uuid.UUID]int{m1.ID: 34, m2.ID: 33, m3.ID: 33},
		Candidates: cands,
	})
	require.NoError(t, err)
	require.Len(t, result.Selected, 4)

	counts := map[byte]int{}
	for _, p := range result.Selected {
		counts[p.EnglishName[0]]++
	}
	assert.Equal(t, 2, counts['X'], "remainder unit goes to the most severe module")
	assert.Equal(t, 1, counts['Y'])
	assert.Equal(t, 1, counts['Z'])
}

func TestAllocateRemainderSkipsExactShares(t *testing.T) {
	d1, d2, d3 := testDisease("A"), testDisease("B"), testDisease("C")
	m1 := testModule(d1, yogasanas("X", 5)...)
	m2 := testModule(d2, yogasanas("Y", 5)...)
	m3 := testModule(d3, yogasanas("Z", 5)...)
	modules := []*types.Module{m1, m2, m3}

	ranker := NewRanker(diseaseIDs(d1, d2, d3))
	cands, _ := Aggregate(modules, Resolve(nil), ranker)

	// 50/17/33 of 2: module 1's raw share is exactly 1, so the remainder
	// unit must go to the next fractional module rather than pushing module
	// 1 past ceil(0.5*2) = 1.
	result, err := Allocate(AllocationRequest{
		Targets:    map[string]int{types.CategoryYogasana: 2},
		Modules:    modules,
		Weights:    map[uuid.UUID]int{m1.ID: 50, m2.ID: 17, m3.ID: 33},
		Candidates: cands,
	})
	require.NoError(t, err)
	require.Len(t, result.Selected, 2)
	assert.Empty(t, result.Shortfalls)

	counts := map[byte]int{}
	for _, p := range result.Selected {
		counts[p.EnglishName[0]]++
	}
	assert.Equal(t, 1, counts['X'], "exact share must not take a remainder unit")
	assert.Equal(t, 1, counts['Y'], "remainder goes to the most severe fractional module")
	assert.Equal(t, 0, counts['Z'])
}

func TestAllocateRejectsTargetAboveMaximum(t *testing.T) {
	d := testDisease("Diabetes")
	m := testModule(d, yogasanas("D", 3)...)
	modules := []*types.Module{m}

	ranker := NewRanker(diseaseIDs(d))
	cands, _ := Aggregate(modules, Resolve(nil), ranker)

	_, err := Allocate(AllocationRequest{
		Targets:    map[string]int{types.CategoryYogasana: 4},
		Modules:    modules,
		Weights:    map[uuid.UUID]int{m.ID: 100},
		Candidates: cands,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestAllocateRejectsUnknownCategoryAndNegativeTarget(t *testing.T) {
	d := testDisease("Diabetes")
	m := testModule(d, yogasanas("D", 3)...)
	modules := []*types.Module{m}
	ranker := NewRanker(diseaseIDs(d))
	cands, _ := Aggregate(modules, Resolve(nil), ranker)
	weights := map[uuid.UUID]int{m.ID: 100}

	_, err := Allocate(AllocationRequest{
		Targets:    map[string]int{"NotACategory": 1},
		Modules:    modules,
		Weights:    weights,
		Candidates: cands,
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))

	_, err = Allocate(AllocationRequest{
		Targets:    map[string]int{types.CategoryYogasana: -1},
		Modules:    modules,
		Weights:    weights,
		Candidates: cands,
	})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestAllocateGlobalDedupAndBackfill(t *testing.T) {
	d1, d2 := testDisease("Diabetes"), testDisease("Hypertension")

	// Both modules hold KAP01; the second module also holds a unique practice.
	shared1 := testPractice("Skull Shining Breath", types.CategoryBreathing, types.KoshaPranamaya, withCode("KAP01"))
	shared2 := testPractice("Skull Shining Breath", types.CategoryBreathing, types.KoshaPranamaya, withCode("KAP01"))
	unique := testPractice("Bellows Breath", types.CategoryBreathing, types.KoshaPranamaya)

	m1 := testModule(d1, shared1)
	m2 := testModule(d2, shared2, unique)
	modules := []*types.Module{m1, m2}

	ranker := NewRanker(diseaseIDs(d1, d2))
	cands, _ := Aggregate(modules, Resolve(nil), ranker)

	// Target 2 with a 50/50 split: module 1 contributes KAP01, module 2's
	// KAP01 copy is a duplicate, so backfill pulls Bellows Breath.
	result, err := Allocate(AllocationRequest{
		Targets:    map[string]int{types.CategoryBreathing: 2},
		Modules:    modules,
		Weights:    map[uuid.UUID]int{m1.ID: 50, m2.ID: 50},
		Candidates: cands,
	})
	require.NoError(t, err)
	require.Len(t, result.Selected, 2)
	assert.Empty(t, result.Shortfalls)
	assert.ElementsMatch(t, []string{"Skull Shining Breath", "Bellows Breath"}, selectedNames(result))
}

func TestAllocateReportsShortfall(t *testing.T) {
	d := testDisease("Diabetes")

	// The same identity listed under two categories: the global seen set
	// consumes it in Breathing, leaving Pranayama with nothing. Per-category
	// maxima validation cannot see this, so it surfaces as a shortfall.
	asBreathing := testPractice("Skull Shining Breath", types.CategoryBreathing, types.KoshaPranamaya, withCode("KAP01"))
	asPranayama := testPractice("Skull Shining Breath", types.CategoryPranayama, types.KoshaPranamaya, withCode("KAP01"))
	m := testModule(d, asBreathing, asPranayama)
	modules := []*types.Module{m}

	ranker := NewRanker(diseaseIDs(d))
	cands, _ := Aggregate(modules, Resolve(nil), ranker)

	result, err := Allocate(AllocationRequest{
		Targets: map[string]int{
			types.CategoryBreathing: 1,
			types.CategoryPranayama: 1,
		},
		Modules:    modules,
		Weights:    map[uuid.UUID]int{m.ID: 100},
		Candidates: cands,
	})
	require.NoError(t, err)
	assert.Len(t, result.Selected, 1)
	require.Len(t, result.Shortfalls, 1)
	assert.Equal(t, types.CategoryPranayama, result.Shortfalls[0].Category)
	assert.Equal(t, 1, result.Shortfalls[0].Requested)
	assert.Equal(t, 0, result.Shortfalls[0].Achieved)
}

func TestAllocateRequiresModules(t *testing.T) {
	_, err := Allocate(AllocationRequest{})
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestAllocateDeterministic(t *testing.T) {
	d1, d2 := testDisease("Diabetes"), testDisease("Hypertension")
	m1 := testModule(d1, yogasanas("D", 6)...)
	m2 := testModule(d2, yogasanas("H", 6)...)
	modules := []*types.Module{m1, m2}
	ranker := NewRanker(diseaseIDs(d1, d2))
	cands, _ := Aggregate(modules, Resolve(nil), ranker)

	req := AllocationRequest{
		Targets:    map[string]int{types.CategoryYogasana: 5},
		Modules:    modules,
		Weights:    map[uuid.UUID]int{m1.ID: 60, m2.ID: 40},
		Candidates: cands,
	}

	first, err := Allocate(req)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Allocate(req)
		require.NoError(t, err)
		assert.Equal(t, selectedNames(first), selectedNames(again))
	}
}

package engine

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

// ErrInvalidInput marks caller errors: bad weights, unknown categories,
// targets above the available maximum. These must be rejected before any
// allocation happens, never silently clamped.
var ErrInvalidInput = errors.New("invalid allocation input")

// AllocationRequest is one weighted allocation run. Modules are in severity
// order: the major disease's module first, comorbidities in the order the
// user selected them.
type AllocationRequest struct {
	Targets    map[string]int
	Modules    []*types.Module
	Weights    map[uuid.UUID]int
	Candidates Candidates
}

// Shortfall reports a category that could not be filled to its target even
// after backfill. Non-fatal: the caller gets the best-effort result plus
// this note.
type Shortfall struct {
	Category  string `json:"category"`
	Requested int    `json:"requested"`
	Achieved  int    `json:"achieved"`
}

func (s Shortfall) String() string {
	return fmt.Sprintf("category %s: requested %d, only %d available", s.Category, s.Requested, s.Achieved)
}

type AllocationResult struct {
	Selected   []*types.Practice
	Shortfalls []Shortfall
}

// ValidateWeights checks that each selected module has a weight in 0..100
// and that the weights sum to exactly 100.
func ValidateWeights(modules []*types.Module, weights map[uuid.UUID]int) error {
	sum := 0
	for _, m := range modules {
		w, ok := weights[m.ID]
		if !ok {
			return fmt.Errorf("%w: missing weight for module %s", ErrInvalidInput, m.ID)
		}
		if w < 0 || w > 100 {
			return fmt.Errorf("%w: weight %d for module %s out of range 0..100", ErrInvalidInput, w, m.ID)
		}
		sum += w
	}
	if sum != 100 {
		return fmt.Errorf("%w: weights sum to %d, want 100", ErrInvalidInput, sum)
	}
	return nil
}

// Allocate distributes each category's target count across modules in
// proportion to their severity weights, then picks that many practices from
// each module's ranked candidate list.
//
// Raw share is floor(weight/100 * target); the remainder is handed out one
// unit at a time in severity order among the modules whose raw share had a
// fractional part, so no module ever exceeds ceil(weight/100 * target) before
// backfill. A global seen set keyed by practice identity prevents the same
// practice being picked from two modules.
func Allocate(req AllocationRequest) (*AllocationResult, error) {
	if len(req.Modules) == 0 {
		return nil, fmt.Errorf("%w: no modules selected", ErrInvalidInput)
	}
	if err := ValidateWeights(req.Modules, req.Weights); err != nil {
		return nil, err
	}

	maxima := CategoryMaxima(req.Modules, req.Candidates)
	for category, n := range req.Targets {
		if !types.IsValidCategory(category) {
			return nil, fmt.Errorf("%w: unknown category %q", ErrInvalidInput, category)
		}
		if n < 0 {
			return nil, fmt.Errorf("%w: negative target %d for category %s", ErrInvalidInput, n, category)
		}
		if n > maxima[category] {
			return nil, fmt.Errorf("%w: category %s target %d exceeds available maximum %d", ErrInvalidInput, category, n, maxima[category])
		}
	}

	result := &AllocationResult{}
	seen := make(map[string]struct{})

	// Categories run in canonical order so repeated runs consume the seen
	// set identically.
	for _, category := range types.CategoryOrder {
		n, ok := req.Targets[category]
		if !ok || n == 0 {
			continue
		}

		shares := make([]int, len(req.Modules))
		allocated := 0
		for i, m := range req.Modules {
			shares[i] = req.Weights[m.ID] * n / 100
			allocated += shares[i]
		}
		// A module whose raw share divided evenly is already at its weighted
		// ceiling and must not grow past it. The fractional parts sum to the
		// remainder, so one pass over the fractional modules always places
		// every unit.
		for i, m := range req.Modules {
			if allocated == n {
				break
			}
			if req.Weights[m.ID]*n%100 != 0 {
				shares[i]++
				allocated++
			}
		}

		achieved := 0
		for i, m := range req.Modules {
			ranked := req.Candidates.ForModule(m.ID, category)
			taken := 0
			for _, p := range ranked {
				if taken == shares[i] {
					break
				}
				key := IdentityKey(p)
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				result.Selected = append(result.Selected, p)
				taken++
				achieved++
			}
		}

		// Backfill: walk the severity-ordered candidate lists again and take
		// anything still unselected, regardless of originating module.
		if achieved < n {
			for _, m := range req.Modules {
				for _, p := range req.Candidates.ForModule(m.ID, category) {
					if achieved == n {
						break
					}
					key := IdentityKey(p)
					if _, dup := seen[key]; dup {
						continue
					}
					seen[key] = struct{}{}
					result.Selected = append(result.Selected, p)
					achieved++
				}
			}
		}

		if achieved < n {
			result.Shortfalls = append(result.Shortfalls, Shortfall{
				Category:  category,
				Requested: n,
				Achieved:  achieved,
			})
		}
	}

	return result, nil
}

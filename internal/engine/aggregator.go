package engine

import (
	"sort"

	"github.com/google/uuid"

	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

// Candidates holds per-module, per-category ranked candidate lists.
type Candidates struct {
	byModule map[uuid.UUID]map[string][]*types.Practice
}

func (c Candidates) ForModule(moduleID uuid.UUID, category string) []*types.Practice {
	byCategory, ok := c.byModule[moduleID]
	if !ok {
		return nil
	}
	return byCategory[category]
}

// RemovedPractice records a practice dropped by contraindication filtering,
// for the report attached to the final recommendation.
type RemovedPractice struct {
	PracticeEnglish string                 `json:"practice_english"`
	Category        string                 `json:"category"`
	SubCategory     string                 `json:"sub_category,omitempty"`
	Detail          ContraindicationDetail `json:"contraindication"`
}

// Aggregate builds ranked candidate lists for each module and category.
// Practices with a category outside the fixed enumeration are malformed
// import data and are silently dropped; contraindicated practices are dropped
// and reported.
func Aggregate(modules []*types.Module, excl *ExclusionSet, ranker *Ranker) (Candidates, []RemovedPractice) {
	byModule := make(map[uuid.UUID]map[string][]*types.Practice, len(modules))
	var removed []RemovedPractice

	for _, m := range modules {
		byCategory := make(map[string][]*types.Practice)
		for _, p := range m.Practices {
			if !types.IsValidCategory(p.Category) {
				continue
			}
			if excl.Excludes(p.EnglishName, p.Category) {
				detail, _ := excl.DetailFor(p.EnglishName, p.Category)
				removed = append(removed, RemovedPractice{
					PracticeEnglish: p.EnglishName,
					Category:        p.Category,
					SubCategory:     p.SubCategory,
					Detail:          detail,
				})
				continue
			}
			byCategory[p.Category] = append(byCategory[p.Category], p)
		}
		for category := range byCategory {
			list := byCategory[category]
			sort.SliceStable(list, func(i, j int) bool {
				return ranker.Less(list[i], list[j])
			})
		}
		byModule[m.ID] = byCategory
	}

	return Candidates{byModule: byModule}, removed
}

// CategoryMaxima counts the distinct practice identities available per
// category across the given modules, after exclusion filtering. These are
// the upper bounds for per-category target counts.
func CategoryMaxima(modules []*types.Module, cands Candidates) map[string]int {
	maxima := make(map[string]int)
	seen := make(map[string]map[string]struct{})

	for _, m := range modules {
		byCategory, ok := cands.byModule[m.ID]
		if !ok {
			continue
		}
		for category, practices := range byCategory {
			identities, ok := seen[category]
			if !ok {
				identities = make(map[string]struct{})
				seen[category] = identities
			}
			for _, p := range practices {
				identities[IdentityKey(p)] = struct{}{}
			}
		}
	}

	for category, identities := range seen {
		maxima[category] = len(identities)
	}
	return maxima
}

// CollectAll is the unweighted aggregation path: every practice of every
// module in selection order, deduplicated by identity key, contraindicated
// entries removed. Used by the plain disease-name entry points.
func CollectAll(modules []*types.Module, excl *ExclusionSet) ([]*types.Practice, []RemovedPractice) {
	var (
		out     []*types.Practice
		removed []RemovedPractice
	)
	seen := make(map[string]struct{})

	for _, m := range modules {
		for _, p := range m.Practices {
			if !types.IsValidCategory(p.Category) {
				continue
			}
			if excl.Excludes(p.EnglishName, p.Category) {
				detail, _ := excl.DetailFor(p.EnglishName, p.Category)
				removed = append(removed, RemovedPractice{
					PracticeEnglish: p.EnglishName,
					Category:        p.Category,
					SubCategory:     p.SubCategory,
					Detail:          detail,
				})
				continue
			}
			key := IdentityKey(p)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, p)
		}
	}

	return out, removed
}

package engine

import (
	"sort"

	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

// ExclusionKey identifies a forbidden practice. Sub-category and Sanskrit
// name are deliberately not part of the key.
type ExclusionKey struct {
	Name     string
	Category string
}

func NewExclusionKey(englishName, category string) ExclusionKey {
	return ExclusionKey{Name: normName(englishName), Category: category}
}

// ContraindicationDetail is the display record for one exclusion key.
// Several stored contraindications can collapse onto the same key; the first
// one encountered supplies reason and source, and the linked disease names
// are unioned.
type ContraindicationDetail struct {
	PracticeEnglish string   `json:"practice_english"`
	Category        string   `json:"category"`
	SubCategory     string   `json:"sub_category,omitempty"`
	Reason          string   `json:"reason,omitempty"`
	Source          string   `json:"source,omitempty"`
	Diseases        []string `json:"diseases,omitempty"`
}

type ExclusionSet struct {
	keys    map[ExclusionKey]struct{}
	details map[ExclusionKey]*ContraindicationDetail
}

// Resolve builds the exclusion set for a disease selection: the union of all
// contraindications linked to any selected disease. An empty selection yields
// an empty set.
func Resolve(diseases []*types.Disease) *ExclusionSet {
	es := &ExclusionSet{
		keys:    make(map[ExclusionKey]struct{}),
		details: make(map[ExclusionKey]*ContraindicationDetail),
	}

	for _, d := range diseases {
		for _, c := range d.Contraindications {
			key := NewExclusionKey(c.PracticeEnglish, c.Category)
			es.keys[key] = struct{}{}

			detail, ok := es.details[key]
			if !ok {
				detail = &ContraindicationDetail{
					PracticeEnglish: c.PracticeEnglish,
					Category:        c.Category,
					SubCategory:     c.SubCategory,
					Reason:          c.Reason,
					Source:          c.Source,
				}
				es.details[key] = detail
			}
			if !containsString(detail.Diseases, d.Name) {
				detail.Diseases = append(detail.Diseases, d.Name)
			}
		}
	}

	for _, detail := range es.details {
		sort.Strings(detail.Diseases)
	}
	return es
}

func (es *ExclusionSet) Excludes(englishName, category string) bool {
	_, ok := es.keys[NewExclusionKey(englishName, category)]
	return ok
}

func (es *ExclusionSet) Len() int {
	return len(es.keys)
}

func (es *ExclusionSet) DetailFor(englishName, category string) (ContraindicationDetail, bool) {
	d, ok := es.details[NewExclusionKey(englishName, category)]
	if !ok {
		return ContraindicationDetail{}, false
	}
	return *d, true
}

// Details lists the collapsed display records, ordered by key for
// reproducible output.
func (es *ExclusionSet) Details() []ContraindicationDetail {
	keys := make([]ExclusionKey, 0, len(es.details))
	for k := range es.details {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Name != keys[j].Name {
			return keys[i].Name < keys[j].Name
		}
		return keys[i].Category < keys[j].Category
	})

	out := make([]ContraindicationDetail, 0, len(keys))
	for _, k := range keys {
		out = append(out, *es.details[k])
	}
	return out
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

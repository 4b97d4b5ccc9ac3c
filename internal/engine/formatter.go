package engine

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

type CitationView struct {
	Text      string `json:"text"`
	Type      string `json:"type,omitempty"`
	Reference string `json:"reference,omitempty"`
	URL       string `json:"url,omitempty"`
}

type RCTCitationView struct {
	Title   string `json:"title"`
	Authors string `json:"authors,omitempty"`
	Journal string `json:"journal,omitempty"`
	Year    int    `json:"year,omitempty"`
	URL     string `json:"url,omitempty"`
}

type PracticeView struct {
	SanskritName         string            `json:"sanskrit_name,omitempty"`
	EnglishName          string            `json:"english_name"`
	Category             string            `json:"category"`
	SubCategory          string            `json:"sub_category,omitempty"`
	Kosha                string            `json:"kosha"`
	Code                 string            `json:"code,omitempty"`
	Rounds               int               `json:"rounds,omitempty"`
	TimeMinutes          float64           `json:"time_minutes,omitempty"`
	StrokesPerMin        int               `json:"strokes_per_min,omitempty"`
	StrokesPerCycle      int               `json:"strokes_per_cycle,omitempty"`
	RestBetweenCyclesSec int               `json:"rest_between_cycles_sec,omitempty"`
	Variations           json.RawMessage   `json:"variations,omitempty"`
	Steps                json.RawMessage   `json:"steps,omitempty"`
	Description          string            `json:"description,omitempty"`
	HowToDo              string            `json:"how_to_do,omitempty"`
	CVRScore             float64           `json:"cvr_score,omitempty"`
	RCTCount             int               `json:"rct_count,omitempty"`
	Citation             *CitationView     `json:"citation,omitempty"`
	RCTCitations         []RCTCitationView `json:"rct_citations,omitempty"`
}

type SubCategoryGroup struct {
	SubCategory string         `json:"sub_category"`
	Practices   []PracticeView `json:"practices"`
}

type CategoryGroup struct {
	Category      string             `json:"category"`
	SubCategories []SubCategoryGroup `json:"sub_categories"`
}

type KoshaGroup struct {
	Kosha      string          `json:"kosha"`
	Categories []CategoryGroup `json:"categories"`
}

type ModuleInfo struct {
	Disease     string `json:"disease"`
	DevelopedBy string `json:"developed_by,omitempty"`
	PaperLink   string `json:"paper_link,omitempty"`
	Description string `json:"description,omitempty"`
}

type ContraindicationReport struct {
	RemovedPractices       []RemovedPractice `json:"removed_practices"`
	TotalContraindications int               `json:"total_contraindications"`
}

// Recommendation is the final nested structure: kosha -> category ->
// sub-category -> practices. Ordered slices rather than maps so the fixed
// kosha and category orders survive JSON encoding.
type Recommendation struct {
	Diseases               []string                `json:"diseases"`
	Modules                []ModuleInfo            `json:"modules"`
	Koshas                 []KoshaGroup            `json:"koshas"`
	ContraindicationReport *ContraindicationReport `json:"contraindication_report,omitempty"`
	Warnings               []string                `json:"warnings,omitempty"`
	Error                  string                  `json:"error,omitempty"`
}

// MatchRCTCitations finds the trials backing a practice. An RCT matches when
// it shares a disease with the practice and its intervention list has either
// an entry naming the practice (Sanskrit or English, case-insensitive) or a
// nameless entry for the practice's category. Each RCT contributes at most
// one citation.
func MatchRCTCitations(p *types.Practice, rcts []*types.RCT) []RCTCitationView {
	practiceDiseases := make(map[uuid.UUID]struct{}, len(p.Diseases))
	for _, d := range p.Diseases {
		practiceDiseases[d.ID] = struct{}{}
	}

	var out []RCTCitationView
	for _, rct := range rcts {
		linked := false
		for _, d := range rct.Diseases {
			if _, ok := practiceDiseases[d.ID]; ok {
				linked = true
				break
			}
		}
		if !linked {
			continue
		}
		if !interventionMatches(p, rct.DecodedInterventions()) {
			continue
		}
		out = append(out, RCTCitationView{
			Title:   rct.Title,
			Authors: rct.Authors,
			Journal: rct.Journal,
			Year:    rct.Year,
			URL:     rct.URL,
		})
	}
	return out
}

func interventionMatches(p *types.Practice, entries []types.RCTIntervention) bool {
	for _, e := range entries {
		name := strings.TrimSpace(e.Practice)
		if name != "" {
			if strings.EqualFold(name, strings.TrimSpace(p.SanskritName)) ||
				strings.EqualFold(name, strings.TrimSpace(p.EnglishName)) {
				return true
			}
			continue
		}
		if e.Category == p.Category {
			return true
		}
	}
	return false
}

// Format groups the selected practices by kosha, category and sub-category.
// Allocation order and display order are independent: each leaf is re-sorted
// by the rank key.
func Format(selected []*types.Practice, diseases []*types.Disease, modules []*types.Module, rcts []*types.RCT, ranker *Ranker) *Recommendation {
	rec := &Recommendation{
		Diseases: make([]string, 0, len(diseases)),
		Modules:  make([]ModuleInfo, 0, len(modules)),
		Koshas:   []KoshaGroup{},
	}
	for _, d := range diseases {
		rec.Diseases = append(rec.Diseases, d.Name)
	}
	for _, m := range modules {
		info := ModuleInfo{
			DevelopedBy: m.DevelopedBy,
			PaperLink:   m.PaperLink,
			Description: m.Description,
		}
		if m.Disease != nil {
			info.Disease = m.Disease.Name
		}
		rec.Modules = append(rec.Modules, info)
	}

	// kosha -> category -> sub-category -> practices
	nested := make(map[string]map[string]map[string][]*types.Practice)
	for _, p := range selected {
		if !types.IsValidKosha(p.Kosha) {
			continue
		}
		subCategory := strings.TrimSpace(p.SubCategory)
		if subCategory == "" {
			subCategory = "general"
		}
		byCategory, ok := nested[p.Kosha]
		if !ok {
			byCategory = make(map[string]map[string][]*types.Practice)
			nested[p.Kosha] = byCategory
		}
		bySubCategory, ok := byCategory[p.Category]
		if !ok {
			bySubCategory = make(map[string][]*types.Practice)
			byCategory[p.Category] = bySubCategory
		}
		bySubCategory[subCategory] = append(bySubCategory[subCategory], p)
	}

	for _, kosha := range types.KoshaOrder {
		byCategory, ok := nested[kosha]
		if !ok {
			continue
		}
		koshaGroup := KoshaGroup{Kosha: kosha}
		for _, category := range types.CategoryOrder {
			bySubCategory, ok := byCategory[category]
			if !ok {
				continue
			}
			categoryGroup := CategoryGroup{Category: category}
			subCategories := make([]string, 0, len(bySubCategory))
			for sc := range bySubCategory {
				subCategories = append(subCategories, sc)
			}
			sort.Strings(subCategories)
			for _, sc := range subCategories {
				practices := bySubCategory[sc]
				sort.SliceStable(practices, func(i, j int) bool {
					return ranker.Less(practices[i], practices[j])
				})
				group := SubCategoryGroup{SubCategory: sc}
				for _, p := range practices {
					group.Practices = append(group.Practices, buildPracticeView(p, rcts))
				}
				categoryGroup.SubCategories = append(categoryGroup.SubCategories, group)
			}
			koshaGroup.Categories = append(koshaGroup.Categories, categoryGroup)
		}
		rec.Koshas = append(rec.Koshas, koshaGroup)
	}

	return rec
}

func buildPracticeView(p *types.Practice, rcts []*types.RCT) PracticeView {
	view := PracticeView{
		SanskritName:         p.SanskritName,
		EnglishName:          p.EnglishName,
		Category:             p.Category,
		SubCategory:          p.SubCategory,
		Kosha:                p.Kosha,
		Code:                 p.Code,
		Rounds:               p.Rounds,
		TimeMinutes:          p.TimeMinutes,
		StrokesPerMin:        p.StrokesPerMin,
		StrokesPerCycle:      p.StrokesPerCycle,
		RestBetweenCyclesSec: p.RestBetweenCyclesSec,
		Description:          p.Description,
		HowToDo:              p.HowToDo,
		CVRScore:             p.CVRScore,
		RCTCount:             p.RCTCount,
	}
	if len(p.Variations) > 0 {
		view.Variations = json.RawMessage(p.Variations)
	}
	if len(p.Steps) > 0 {
		view.Steps = json.RawMessage(p.Steps)
	}
	if p.Citation != nil {
		view.Citation = &CitationView{
			Text:      p.Citation.Text,
			Type:      p.Citation.Type,
			Reference: p.Citation.FullReference,
			URL:       p.Citation.URL,
		}
	}
	view.RCTCitations = MatchRCTCitations(p, rcts)
	return view
}

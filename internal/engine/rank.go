package engine

import (
	"strings"

	"github.com/google/uuid"

	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

func normName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IdentityKey is the deduplication identity of a practice: the shared code
// when present, otherwise the lowercased Sanskrit-or-English name.
func IdentityKey(p *types.Practice) string {
	if code := strings.TrimSpace(p.Code); code != "" {
		return code
	}
	if s := normName(p.SanskritName); s != "" {
		return s
	}
	return normName(p.EnglishName)
}

// Ranker orders practices by evidentiary strength for the user's selected
// diseases. The rank key is a stable total order: RCT support first, then how
// many of the selected diseases prescribe the practice, then the module-local
// CVR score, then English name.
type Ranker struct {
	selected map[uuid.UUID]struct{}
}

func NewRanker(selectedDiseaseIDs []uuid.UUID) *Ranker {
	selected := make(map[uuid.UUID]struct{}, len(selectedDiseaseIDs))
	for _, id := range selectedDiseaseIDs {
		selected[id] = struct{}{}
	}
	return &Ranker{selected: selected}
}

// Overlap counts how many of the user's selected diseases this practice is
// linked to.
func (r *Ranker) Overlap(p *types.Practice) int {
	n := 0
	for _, d := range p.Diseases {
		if _, ok := r.selected[d.ID]; ok {
			n++
		}
	}
	return n
}

func (r *Ranker) Less(a, b *types.Practice) bool {
	if a.RCTCount != b.RCTCount {
		return a.RCTCount > b.RCTCount
	}
	ao, bo := r.Overlap(a), r.Overlap(b)
	if ao != bo {
		return ao > bo
	}
	if a.CVRScore != b.CVRScore {
		return a.CVRScore > b.CVRScore
	}
	return normName(a.EnglishName) < normName(b.EnglishName)
}

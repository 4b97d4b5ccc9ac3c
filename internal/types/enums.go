package types

// Practice categories ("practice segments"). These are compared by exact
// string equality throughout aggregation and allocation, so the values are
// part of the storage contract.
const (
	CategoryPreparatory = "Preparatory"
	CategoryBreathing   = "Breathing"
	CategorySequential  = "Sequential"
	CategoryYogasana    = "Yogasana"
	CategoryPranayama   = "Pranayama"
	CategoryMeditation  = "Meditation"
	CategoryChanting    = "Chanting"
	CategoryAdditional  = "Additional"
	CategoryKriya       = "Kriya"
	CategoryCounselling = "Counselling"
	CategoryLifestyle   = "Lifestyle"
	CategoryDiet        = "Diet"
)

// CategoryOrder is the canonical presentation order for practice categories.
// It doubles as the allowed-category enumeration: anything outside this list
// is historical/import noise and is skipped, not errored.
var CategoryOrder = []string{
	CategoryPreparatory,
	CategoryBreathing,
	CategorySequential,
	CategoryYogasana,
	CategoryPranayama,
	CategoryMeditation,
	CategoryChanting,
	CategoryAdditional,
	CategoryKriya,
	CategoryCounselling,
	CategoryLifestyle,
	CategoryDiet,
}

var validCategories = func() map[string]struct{} {
	m := make(map[string]struct{}, len(CategoryOrder))
	for _, c := range CategoryOrder {
		m[c] = struct{}{}
	}
	return m
}()

func IsValidCategory(category string) bool {
	_, ok := validCategories[category]
	return ok
}

// The five koshas (body sheaths).
const (
	KoshaAnnamaya    = "Annamaya"
	KoshaPranamaya   = "Pranamaya"
	KoshaManomaya    = "Manomaya"
	KoshaVijnanamaya = "Vijnanamaya"
	KoshaAnandamaya  = "Anandamaya"
)

// KoshaOrder is the display order used when formatting recommendations.
// Anandamaya deliberately comes before Vijnanamaya.
var KoshaOrder = []string{
	KoshaAnnamaya,
	KoshaPranamaya,
	KoshaManomaya,
	KoshaAnandamaya,
	KoshaVijnanamaya,
}

var validKoshas = map[string]struct{}{
	KoshaAnnamaya:    {},
	KoshaPranamaya:   {},
	KoshaManomaya:    {},
	KoshaVijnanamaya: {},
	KoshaAnandamaya:  {},
}

func IsValidKosha(kosha string) bool {
	_, ok := validKoshas[kosha]
	return ok
}

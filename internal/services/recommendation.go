package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	redisclient "github.com/anvayahealth/yogatherapy-backend/internal/clients/redis"
	"github.com/anvayahealth/yogatherapy-backend/internal/engine"
	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/repos"
	"github.com/anvayahealth/yogatherapy-backend/internal/types"
)

type RecommendationService interface {
	RecommendByDiseaseNames(ctx context.Context, names []string) (*engine.Recommendation, error)
	Summary(ctx context.Context, names []string) (string, error)
	Plan(ctx context.Context, moduleIDs []uuid.UUID) (*PlanResponse, error)
	Recommend(ctx context.Context, req PlanRequest) (*engine.Recommendation, error)
}

// PlanResponse is the wizard's first step: what was selected and how many
// distinct practices each category can supply, so the client can bound its
// target sliders before asking for an allocation.
type PlanResponse struct {
	Modules        []PlanModule   `json:"modules"`
	CategoryMaxima map[string]int `json:"category_maxima"`
}

type PlanModule struct {
	ID          uuid.UUID `json:"id"`
	Disease     string    `json:"disease"`
	DevelopedBy string    `json:"developed_by,omitempty"`
	Description string    `json:"description,omitempty"`
}

// PlanRequest is the wizard's second step. ModuleIDs are in severity order:
// the major condition first, comorbidities in selection order. Weights are
// percentages per module summing to 100; CategoryTargets caps how many
// practices of each category the final plan contains.
type PlanRequest struct {
	ModuleIDs       []uuid.UUID       `json:"module_ids"`
	Weights         map[uuid.UUID]int `json:"weights"`
	CategoryTargets map[string]int    `json:"category_targets"`
}

type recommendationService struct {
	db          *gorm.DB
	log         *logger.Logger
	diseaseRepo repos.DiseaseRepo
	moduleRepo  repos.ModuleRepo
	rctRepo     repos.RCTRepo
	cache       *redisclient.RecommendationCache
}

// NewRecommendationService wires the engine to storage. The cache may be nil;
// every cache operation is a no-op then.
func NewRecommendationService(db *gorm.DB, baseLog *logger.Logger, diseaseRepo repos.DiseaseRepo, moduleRepo repos.ModuleRepo, rctRepo repos.RCTRepo, cache *redisclient.RecommendationCache) RecommendationService {
	return &recommendationService{
		db:          db,
		log:         baseLog.With("service", "RecommendationService"),
		diseaseRepo: diseaseRepo,
		moduleRepo:  moduleRepo,
		rctRepo:     rctRepo,
		cache:       cache,
	}
}

// RecommendByDiseaseNames is the unweighted path: every practice of every
// matched disease's modules, contraindications removed, grouped for display.
// A selection that matches no stored disease is not an error at the transport
// level: the recommendation carries the message in its Error field, as
// integrations expect.
func (s *recommendationService) RecommendByDiseaseNames(ctx context.Context, names []string) (*engine.Recommendation, error) {
	cleaned := cleanNames(names)
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("%w: at least one disease name is required", ErrInvalidInput)
	}

	if cached, ok := s.cacheGet(ctx, "names", cleaned); ok {
		return cached, nil
	}

	var rec *engine.Recommendation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		diseases, err := s.diseaseRepo.GetByNames(ctx, tx, cleaned)
		if err != nil {
			return err
		}
		if len(diseases) == 0 {
			rec = &engine.Recommendation{
				Diseases: cleaned,
				Modules:  []engine.ModuleInfo{},
				Koshas:   []engine.KoshaGroup{},
				Error:    fmt.Sprintf("No diseases found matching: %s", strings.Join(cleaned, ", ")),
			}
			return nil
		}

		diseaseIDs := make([]uuid.UUID, 0, len(diseases))
		for _, d := range diseases {
			diseaseIDs = append(diseaseIDs, d.ID)
		}
		modules, err := s.moduleRepo.GetByDiseaseIDs(ctx, tx, diseaseIDs)
		if err != nil {
			return err
		}
		rcts, err := s.rctRepo.GetByDiseaseIDs(ctx, tx, diseaseIDs)
		if err != nil {
			return err
		}

		excl := engine.Resolve(diseases)
		ranker := engine.NewRanker(diseaseIDs)
		selected, removed := engine.CollectAll(modules, excl)

		rec = engine.Format(selected, diseases, modules, rcts, ranker)
		rec.ContraindicationReport = &engine.ContraindicationReport{
			RemovedPractices:       removed,
			TotalContraindications: excl.Len(),
		}
		rec.Warnings = unmatchedNameWarnings(cleaned, diseases)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rec.Error == "" {
		s.cacheSet(ctx, "names", cleaned, rec)
	}
	return rec, nil
}

func (s *recommendationService) Summary(ctx context.Context, names []string) (string, error) {
	rec, err := s.RecommendByDiseaseNames(ctx, names)
	if err != nil {
		return "", err
	}
	return engine.Summary(rec), nil
}

func (s *recommendationService) Plan(ctx context.Context, moduleIDs []uuid.UUID) (*PlanResponse, error) {
	if len(moduleIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one module is required", ErrInvalidInput)
	}

	var resp *PlanResponse
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		modules, diseases, err := s.loadSelection(ctx, tx, moduleIDs)
		if err != nil {
			return err
		}

		diseaseIDs := make([]uuid.UUID, 0, len(diseases))
		for _, d := range diseases {
			diseaseIDs = append(diseaseIDs, d.ID)
		}
		excl := engine.Resolve(diseases)
		ranker := engine.NewRanker(diseaseIDs)
		cands, _ := engine.Aggregate(modules, excl, ranker)

		resp = &PlanResponse{CategoryMaxima: engine.CategoryMaxima(modules, cands)}
		for _, m := range modules {
			pm := PlanModule{
				ID:          m.ID,
				DevelopedBy: m.DevelopedBy,
				Description: m.Description,
			}
			if m.Disease != nil {
				pm.Disease = m.Disease.Name
			}
			resp.Modules = append(resp.Modules, pm)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Recommend runs the weighted allocation: severity-ordered modules, weights
// summing to 100, per-category targets bounded by the plan's maxima. Targets
// above the maximum or malformed weights are rejected; shortfalls discovered
// during backfill are reported as warnings on the result instead.
func (s *recommendationService) Recommend(ctx context.Context, req PlanRequest) (*engine.Recommendation, error) {
	if len(req.ModuleIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one module is required", ErrInvalidInput)
	}

	if cached, ok := s.cacheGet(ctx, "plan", planCacheParts(req)); ok {
		return cached, nil
	}

	var rec *engine.Recommendation
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		modules, diseases, err := s.loadSelection(ctx, tx, req.ModuleIDs)
		if err != nil {
			return err
		}

		diseaseIDs := make([]uuid.UUID, 0, len(diseases))
		for _, d := range diseases {
			diseaseIDs = append(diseaseIDs, d.ID)
		}
		rcts, err := s.rctRepo.GetByDiseaseIDs(ctx, tx, diseaseIDs)
		if err != nil {
			return err
		}

		excl := engine.Resolve(diseases)
		ranker := engine.NewRanker(diseaseIDs)
		cands, removed := engine.Aggregate(modules, excl, ranker)

		result, err := engine.Allocate(engine.AllocationRequest{
			Targets:    req.CategoryTargets,
			Modules:    modules,
			Weights:    req.Weights,
			Candidates: cands,
		})
		if err != nil {
			return err
		}

		rec = engine.Format(result.Selected, diseases, modules, rcts, ranker)
		rec.ContraindicationReport = &engine.ContraindicationReport{
			RemovedPractices:       removed,
			TotalContraindications: excl.Len(),
		}
		for _, sf := range result.Shortfalls {
			rec.Warnings = append(rec.Warnings, sf.String())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, "plan", planCacheParts(req), rec)
	return rec, nil
}

// loadSelection fetches the selected modules in request order with their
// diseases' contraindications attached. Any unknown module id fails the whole
// selection.
func (s *recommendationService) loadSelection(ctx context.Context, tx *gorm.DB, moduleIDs []uuid.UUID) ([]*types.Module, []*types.Disease, error) {
	fetched, err := s.moduleRepo.GetByIDs(ctx, tx, moduleIDs)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[uuid.UUID]*types.Module, len(fetched))
	for _, m := range fetched {
		byID[m.ID] = m
	}

	modules := make([]*types.Module, 0, len(moduleIDs))
	for _, id := range moduleIDs {
		m, ok := byID[id]
		if !ok {
			return nil, nil, fmt.Errorf("module %s: %w", id, ErrNotFound)
		}
		modules = append(modules, m)
	}

	diseaseIDSet := make(map[uuid.UUID]struct{})
	diseaseIDs := make([]uuid.UUID, 0, len(modules))
	for _, m := range modules {
		if _, dup := diseaseIDSet[m.DiseaseID]; dup {
			continue
		}
		diseaseIDSet[m.DiseaseID] = struct{}{}
		diseaseIDs = append(diseaseIDs, m.DiseaseID)
	}
	diseases, err := s.diseaseRepo.GetByIDs(ctx, tx, diseaseIDs)
	if err != nil {
		return nil, nil, err
	}

	// Preserve module order for the disease list too.
	diseaseByID := make(map[uuid.UUID]*types.Disease, len(diseases))
	for _, d := range diseases {
		diseaseByID[d.ID] = d
	}
	ordered := make([]*types.Disease, 0, len(diseaseIDs))
	for _, id := range diseaseIDs {
		if d, ok := diseaseByID[id]; ok {
			ordered = append(ordered, d)
		}
	}
	return modules, ordered, nil
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func unmatchedNameWarnings(requested []string, matched []*types.Disease) []string {
	found := make(map[string]struct{}, len(matched))
	for _, d := range matched {
		found[strings.ToLower(d.Name)] = struct{}{}
	}
	var warnings []string
	for _, name := range requested {
		if _, ok := found[strings.ToLower(name)]; !ok {
			warnings = append(warnings, fmt.Sprintf("no disease found matching %q; it was ignored", name))
		}
	}
	return warnings
}

// planCacheParts renders a plan request as a deterministic string list for
// the cache digest. Map iteration order must not leak into the key.
func planCacheParts(req PlanRequest) []string {
	parts := make([]string, 0, len(req.ModuleIDs)+len(req.Weights)+len(req.CategoryTargets))
	for _, id := range req.ModuleIDs {
		parts = append(parts, "m:"+id.String())
	}

	weightKeys := make([]string, 0, len(req.Weights))
	for id := range req.Weights {
		weightKeys = append(weightKeys, id.String())
	}
	sort.Strings(weightKeys)
	for _, k := range weightKeys {
		parts = append(parts, fmt.Sprintf("w:%s=%d", k, req.Weights[uuid.MustParse(k)]))
	}

	targetKeys := make([]string, 0, len(req.CategoryTargets))
	for category := range req.CategoryTargets {
		targetKeys = append(targetKeys, category)
	}
	sort.Strings(targetKeys)
	for _, k := range targetKeys {
		parts = append(parts, fmt.Sprintf("t:%s=%d", k, req.CategoryTargets[k]))
	}
	return parts
}

func cacheKey(kind string, parts []string) string {
	sum := sha256.Sum256([]byte(kind + "|" + strings.Join(parts, "|")))
	return kind + ":" + hex.EncodeToString(sum[:])
}

func (s *recommendationService) cacheGet(ctx context.Context, kind string, parts []string) (*engine.Recommendation, bool) {
	raw, ok := s.cache.Get(ctx, cacheKey(kind, parts))
	if !ok {
		return nil, false
	}
	var rec engine.Recommendation
	if err := json.Unmarshal(raw, &rec); err != nil {
		s.log.Warn("Discarding undecodable cached recommendation", "error", err)
		return nil, false
	}
	return &rec, true
}

func (s *recommendationService) cacheSet(ctx context.Context, kind string, parts []string, rec *engine.Recommendation) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return
	}
	s.cache.Set(ctx, cacheKey(kind, parts), raw)
}

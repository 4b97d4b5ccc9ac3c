package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/services"
)

type RecommendationHandler struct {
	log    *logger.Logger
	recSvc services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recSvc services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:    log.With("handler", "RecommendationHandler"),
		recSvc: recSvc,
	}
}

type diseaseNamesRequest struct {
	Diseases []string `json:"diseases"`
}

// POST /api/recommendations
// Unweighted recommendation for a list of disease names. A selection matching
// no stored disease still returns 200; the payload carries the error message.
func (h *RecommendationHandler) Recommend(c *gin.Context) {
	var req diseaseNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	rec, err := h.recSvc.RecommendByDiseaseNames(c.Request.Context(), req.Diseases)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, rec)
}

// POST /api/summary
// Plain-text rendering of the same recommendation.
func (h *RecommendationHandler) Summary(c *gin.Context) {
	var req diseaseNamesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	text, err := h.recSvc.Summary(c.Request.Context(), req.Diseases)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"summary": text})
}

// POST /api/recommendations/plan
// Wizard step 1: selected modules plus the per-category maxima that bound the
// target counts of the allocation step.
func (h *RecommendationHandler) Plan(c *gin.Context) {
	var req struct {
		ModuleIDs []string `json:"module_ids"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	moduleIDs, err := parseUUIDs(req.ModuleIDs)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	plan, err := h.recSvc.Plan(c.Request.Context(), moduleIDs)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, plan)
}

type allocateRequest struct {
	ModuleIDs       []string       `json:"module_ids"`
	Weights         map[string]int `json:"weights"`
	CategoryTargets map[string]int `json:"category_targets"`
}

// POST /api/recommendations/allocate
// Wizard step 2: the weighted allocation run.
func (h *RecommendationHandler) Allocate(c *gin.Context) {
	var req allocateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	planReq, err := buildPlanRequest(req)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	rec, err := h.recSvc.Recommend(c.Request.Context(), planReq)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, rec)
}

func buildPlanRequest(req allocateRequest) (services.PlanRequest, error) {
	moduleIDs, err := parseUUIDs(req.ModuleIDs)
	if err != nil {
		return services.PlanRequest{}, err
	}

	out := services.PlanRequest{
		ModuleIDs:       moduleIDs,
		CategoryTargets: req.CategoryTargets,
	}
	if req.Weights != nil {
		out.Weights, err = parseWeightMap(req.Weights)
		if err != nil {
			return services.PlanRequest{}, err
		}
	}
	return out, nil
}

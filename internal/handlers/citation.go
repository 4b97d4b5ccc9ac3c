package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/services"
)

type CitationHandler struct {
	log         *logger.Logger
	citationSvc services.CitationService
}

func NewCitationHandler(log *logger.Logger, citationSvc services.CitationService) *CitationHandler {
	return &CitationHandler{
		log:         log.With("handler", "CitationHandler"),
		citationSvc: citationSvc,
	}
}

// POST /api/citations
func (h *CitationHandler) Create(c *gin.Context) {
	var input services.CitationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	citation, err := h.citationSvc.Create(c.Request.Context(), nil, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, citation)
}

// GET /api/citations
func (h *CitationHandler) List(c *gin.Context) {
	citations, err := h.citationSvc.List(c.Request.Context(), nil)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, citations)
}

// GET /api/citations/:id
func (h *CitationHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	citation, err := h.citationSvc.Get(c.Request.Context(), nil, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, citation)
}

// PUT /api/citations/:id
func (h *CitationHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	var input services.CitationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	citation, err := h.citationSvc.Update(c.Request.Context(), nil, id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, citation)
}

// DELETE /api/citations/:id
func (h *CitationHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	if err := h.citationSvc.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

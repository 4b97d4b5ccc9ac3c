package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/services"
)

type RCTHandler struct {
	log    *logger.Logger
	rctSvc services.RCTService
}

func NewRCTHandler(log *logger.Logger, rctSvc services.RCTService) *RCTHandler {
	return &RCTHandler{
		log:    log.With("handler", "RCTHandler"),
		rctSvc: rctSvc,
	}
}

// POST /api/rcts
func (h *RCTHandler) Create(c *gin.Context) {
	var input services.RCTInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	rct, err := h.rctSvc.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, rct)
}

// GET /api/rcts
func (h *RCTHandler) List(c *gin.Context) {
	rcts, err := h.rctSvc.List(c.Request.Context(), nil)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, rcts)
}

// GET /api/rcts/:id
func (h *RCTHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	rct, err := h.rctSvc.Get(c.Request.Context(), nil, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, rct)
}

// PUT /api/rcts/:id
func (h *RCTHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	var input services.RCTInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	rct, err := h.rctSvc.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, rct)
}

// DELETE /api/rcts/:id
func (h *RCTHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	if err := h.rctSvc.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/rcts/refresh-counts
// Recomputes every practice's stored RCT support count.
func (h *RCTHandler) RefreshCounts(c *gin.Context) {
	changed, err := h.rctSvc.RefreshRCTCounts(c.Request.Context())
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, gin.H{"practices_changed": changed})
}

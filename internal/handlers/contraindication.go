package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/services"
)

type ContraindicationHandler struct {
	log                 *logger.Logger
	contraindicationSvc services.ContraindicationService
}

func NewContraindicationHandler(log *logger.Logger, contraindicationSvc services.ContraindicationService) *ContraindicationHandler {
	return &ContraindicationHandler{
		log:                 log.With("handler", "ContraindicationHandler"),
		contraindicationSvc: contraindicationSvc,
	}
}

// POST /api/contraindications
func (h *ContraindicationHandler) Create(c *gin.Context) {
	var input services.ContraindicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	contraindication, err := h.contraindicationSvc.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, contraindication)
}

// GET /api/contraindications
func (h *ContraindicationHandler) List(c *gin.Context) {
	contraindications, err := h.contraindicationSvc.List(c.Request.Context(), nil)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, contraindications)
}

// GET /api/contraindications/:id
func (h *ContraindicationHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	contraindication, err := h.contraindicationSvc.Get(c.Request.Context(), nil, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, contraindication)
}

// PUT /api/contraindications/:id
func (h *ContraindicationHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	var input services.ContraindicationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	contraindication, err := h.contraindicationSvc.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, contraindication)
}

// DELETE /api/contraindications/:id
func (h *ContraindicationHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	if err := h.contraindicationSvc.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

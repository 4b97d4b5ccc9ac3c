package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/services"
)

type DiseaseHandler struct {
	log        *logger.Logger
	diseaseSvc services.DiseaseService
}

func NewDiseaseHandler(log *logger.Logger, diseaseSvc services.DiseaseService) *DiseaseHandler {
	return &DiseaseHandler{
		log:        log.With("handler", "DiseaseHandler"),
		diseaseSvc: diseaseSvc,
	}
}

// POST /api/diseases
func (h *DiseaseHandler) Create(c *gin.Context) {
	var input services.DiseaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	disease, err := h.diseaseSvc.Create(c.Request.Context(), nil, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, disease)
}

// GET /api/diseases
func (h *DiseaseHandler) List(c *gin.Context) {
	diseases, err := h.diseaseSvc.List(c.Request.Context(), nil)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, diseases)
}

// GET /api/diseases/:id
func (h *DiseaseHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	disease, err := h.diseaseSvc.Get(c.Request.Context(), nil, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, disease)
}

// PUT /api/diseases/:id
func (h *DiseaseHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	var input services.DiseaseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	disease, err := h.diseaseSvc.Update(c.Request.Context(), nil, id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, disease)
}

// DELETE /api/diseases/:id
// Removes the disease with its modules and their practices.
func (h *DiseaseHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	if err := h.diseaseSvc.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

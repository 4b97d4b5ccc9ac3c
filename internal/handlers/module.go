package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/services"
)

type ModuleHandler struct {
	log       *logger.Logger
	moduleSvc services.ModuleService
}

func NewModuleHandler(log *logger.Logger, moduleSvc services.ModuleService) *ModuleHandler {
	return &ModuleHandler{
		log:       log.With("handler", "ModuleHandler"),
		moduleSvc: moduleSvc,
	}
}

// POST /api/modules
func (h *ModuleHandler) Create(c *gin.Context) {
	var input services.ModuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	module, err := h.moduleSvc.Create(c.Request.Context(), nil, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, module)
}

// GET /api/modules/:id
func (h *ModuleHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	module, err := h.moduleSvc.Get(c.Request.Context(), nil, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, module)
}

// GET /api/modules?disease_id=...
func (h *ModuleHandler) List(c *gin.Context) {
	raw := c.Query("disease_id")
	diseaseID, err := uuid.Parse(raw)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", fmt.Errorf("invalid disease_id %q", raw))
		return
	}

	modules, err := h.moduleSvc.ListForDisease(c.Request.Context(), nil, diseaseID)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, modules)
}

// PUT /api/modules/:id
func (h *ModuleHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	var input services.ModuleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	module, err := h.moduleSvc.Update(c.Request.Context(), nil, id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, module)
}

// DELETE /api/modules/:id
func (h *ModuleHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	if err := h.moduleSvc.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/anvayahealth/yogatherapy-backend/internal/logger"
	"github.com/anvayahealth/yogatherapy-backend/internal/services"
)

type PracticeHandler struct {
	log         *logger.Logger
	practiceSvc services.PracticeService
}

func NewPracticeHandler(log *logger.Logger, practiceSvc services.PracticeService) *PracticeHandler {
	return &PracticeHandler{
		log:         log.With("handler", "PracticeHandler"),
		practiceSvc: practiceSvc,
	}
}

// POST /api/practices
func (h *PracticeHandler) Create(c *gin.Context) {
	var input services.PracticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	practice, err := h.practiceSvc.Create(c.Request.Context(), input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondCreated(c, practice)
}

// GET /api/practices/:id
func (h *PracticeHandler) Get(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	practice, err := h.practiceSvc.Get(c.Request.Context(), nil, id)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, practice)
}

// GET /api/practices?category=...&search=...
func (h *PracticeHandler) List(c *gin.Context) {
	practices, err := h.practiceSvc.List(c.Request.Context(), nil, c.Query("category"), c.Query("search"))
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, practices)
}

// GET /api/practices/search?q=...&limit=...
// Sanskrit-name prefix search for autocomplete.
func (h *PracticeHandler) Search(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			RespondError(c, http.StatusBadRequest, "invalid_limit", fmt.Errorf("invalid limit %q", raw))
			return
		}
		limit = parsed
	}

	practices, err := h.practiceSvc.SearchBySanskrit(c.Request.Context(), nil, c.Query("q"), limit)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, practices)
}

// PUT /api/practices/:id
// Renaming a coded practice propagates the new code and Sanskrit name to the
// whole code group.
func (h *PracticeHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	var input services.PracticeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", fmt.Errorf("invalid request body: %w", err))
		return
	}

	practice, err := h.practiceSvc.Update(c.Request.Context(), id, input)
	if err != nil {
		RespondServiceError(c, err)
		return
	}
	RespondOK(c, practice)
}

// DELETE /api/practices/:id
func (h *PracticeHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	if err := h.practiceSvc.Delete(c.Request.Context(), id); err != nil {
		RespondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

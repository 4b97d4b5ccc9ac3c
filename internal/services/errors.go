package services

import (
	"errors"

	"github.com/anvayahealth/yogatherapy-backend/internal/engine"
)

// ErrNotFound marks lookups for ids that do not exist in the catalog.
var ErrNotFound = errors.New("not found")

// ErrInvalidInput re-exports the engine's caller-error sentinel so handlers
// can map the whole taxonomy with one errors.Is check.
var ErrInvalidInput = engine.ErrInvalidInput

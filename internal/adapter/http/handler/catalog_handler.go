package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tavola/ledger/internal/adapter/http/dto"
	"github.com/tavola/ledger/internal/journal"
)

// CatalogHandler serves the read-only journal event catalog.
type CatalogHandler struct {
	catalog *journal.Catalog
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalog *journal.Catalog) *CatalogHandler {
	return &CatalogHandler{catalog: catalog}
}

// List lists all registered templates.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	names := h.catalog.Names()

	templates := make([]*dto.TemplateResponse, 0, len(names))
	for _, name := range names {
		tpl, err := h.catalog.Get(name)
		if err != nil {
			continue
		}
		templates = append(templates, dto.TemplateFromCatalog(tpl))
	}

	writeJSON(w, http.StatusOK, map[string]any{"templates": templates})
}

// Get retrieves one template by name.
func (h *CatalogHandler) Get(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if name == "" {
		writeError(w, http.StatusBadRequest, "missing template name", "")
		return
	}

	tpl, err := h.catalog.Get(name)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get template", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.TemplateFromCatalog(tpl))
}

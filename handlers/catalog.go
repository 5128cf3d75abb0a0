// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/flickpick/server/middleware"
	"github.com/flickpick/server/models"
	"github.com/flickpick/server/store"
	"github.com/flickpick/server/tmdb"
)

type CatalogHandler struct {
	store *store.Store
	tmdb  *tmdb.Client // nil when no API key is configured
}

func NewCatalogHandler(st *store.Store, client *tmdb.Client) *CatalogHandler {
	return &CatalogHandler{store: st, tmdb: client}
}

// Seed handles POST /sessions/{id}/catalog
// Accepts a pre-built item list from the host. One seed per session.
func (h *CatalogHandler) Seed(w http.ResponseWriter, r *http.Request) {
	var req models.SeedCatalogRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if len(req.Items) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Catalog must contain at least one item")
		return
	}

	sessionID := r.PathValue("id")
	if err := h.store.SeedCatalog(r.Context(), sessionID, req.Items); err != nil {
		storeError(w, err, "session")
		return
	}

	slog.Info("catalog seeded", "session_id", sessionID, "items", len(req.Items))

	middleware.JSONResponse(w, http.StatusCreated, models.SeedCatalogResponse{ItemCount: len(req.Items)})
}

// Build handles POST /sessions/{id}/catalog/build
// Builds the deck from TMDB discovery using the session's streaming services
// and filters, then seeds it. Requires a configured TMDB API key.
func (h *CatalogHandler) Build(w http.ResponseWriter, r *http.Request) {
	if h.tmdb == nil {
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Catalog building is not configured")
		return
	}

	sessionID := r.PathValue("id")
	sess, err := h.store.GetSession(r.Context(), sessionID)
	if err != nil {
		storeError(w, err, "session")
		return
	}

	items, err := h.tmdb.BuildCatalog(r.Context(), sess.Filters, sess.StreamingServices)
	if err != nil {
		slog.Error("catalog build failed", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusBadGateway, "Could not build catalog")
		return
	}
	if len(items) == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "No titles matched the session filters")
		return
	}

	if err := h.store.SeedCatalog(r.Context(), sessionID, items); err != nil {
		storeError(w, err, "session")
		return
	}

	slog.Info("catalog built", "session_id", sessionID, "items", len(items))

	middleware.JSONResponse(w, http.StatusCreated, models.SeedCatalogResponse{ItemCount: len(items)})
}

// List handles GET /sessions/{id}/catalog
// Items come back in display order, identical for every participant.
func (h *CatalogHandler) List(w http.ResponseWriter, r *http.Request) {
	items, err := h.store.FetchCatalog(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, items)
}

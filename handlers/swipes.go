// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/flickpick/server/middleware"
	"github.com/flickpick/server/models"
	"github.com/flickpick/server/store"
)

type SwipeHandler struct {
	store *store.Store
}

func NewSwipeHandler(st *store.Store) *SwipeHandler {
	return &SwipeHandler{store: st}
}

// Record handles POST /sessions/{id}/swipes
// Appends one swipe to the ledger. Duplicate submissions are accepted; the
// aggregator keeps only the latest per participant and item.
func (h *SwipeHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req models.RecordSwipeRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.ParticipantID == "" || req.CatalogItemID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "participant_id and catalog_item_id are required")
		return
	}

	sessionID := r.PathValue("id")
	sess, err := h.store.GetSession(r.Context(), sessionID)
	if err != nil {
		storeError(w, err, "session")
		return
	}
	if status := h.store.EffectiveStatus(sess); status != models.StatusActive {
		middleware.ErrorResponse(w, http.StatusConflict, "Session is not accepting swipes")
		return
	}

	swipe, err := h.store.RecordSwipe(r.Context(), store.RecordSwipeParams{
		ParticipantID: req.ParticipantID,
		CatalogItemID: req.CatalogItemID,
		SessionID:     sessionID,
		Direction:     req.Direction,
		TimeOnCardMs:  req.TimeOnCardMs,
	})
	if err != nil {
		storeError(w, err, "swipe")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.RecordSwipeResponse{SwipeID: swipe.ID})
}

// Progress handles PUT /participants/{id}/progress
// Progress is a client-reported card index used for lobby UI only; it has
// no effect on match computation.
func (h *SwipeHandler) Progress(w http.ResponseWriter, r *http.Request) {
	var req models.AdvanceProgressRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Progress < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "progress must be non-negative")
		return
	}

	if err := h.store.AdvanceProgress(r.Context(), r.PathValue("id"), req.Progress); err != nil {
		storeError(w, err, "participant")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Matches handles GET /sessions/{id}/matches
// Recomputes from the ledger on every call; nothing is cached.
func (h *SwipeHandler) Matches(w http.ResponseWriter, r *http.Request) {
	matches, err := h.store.ComputeMatches(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MatchesResponse{Matches: matches})
}

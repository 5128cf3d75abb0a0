// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/flickpick/server/middleware"
	"github.com/flickpick/server/models"
	"github.com/flickpick/server/store"
)

type SessionHandler struct {
	store *store.Store
}

func NewSessionHandler(st *store.Store) *SessionHandler {
	return &SessionHandler{store: st}
}

// storeError maps the store taxonomy onto HTTP statuses: NotFound -> 404,
// Conflict -> 409, Exhausted -> 503 (retryable), anything else -> 500.
func storeError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, fallback+" not found")
	case errors.Is(err, store.ErrConflict):
		middleware.ErrorResponse(w, http.StatusConflict, err.Error())
	case errors.Is(err, store.ErrExhausted):
		middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Could not allocate a session code, try again")
	default:
		slog.Error("store operation failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// CreateSession handles POST /sessions
// Creates a lobby session plus its host participant and returns both.
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	deviceUUID := r.Header.Get("X-Device-UUID")
	if deviceUUID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Device-UUID header required")
		return
	}

	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	threshold := 0.0
	if req.MatchThreshold != nil {
		threshold = *req.MatchThreshold
		if threshold < 0 || threshold > 1 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "match_threshold must be between 0 and 1")
			return
		}
	}

	code, err := h.store.GenerateUniqueCode(r.Context())
	if err != nil {
		storeError(w, err, "session")
		return
	}

	sess, err := h.store.CreateSession(r.Context(), store.CreateSessionParams{
		Code:              code,
		HostDeviceID:      deviceUUID,
		StreamingServices: req.StreamingServices,
		Filters:           req.Filters,
		MatchThreshold:    threshold,
	})
	if err != nil {
		storeError(w, err, "session")
		return
	}

	host, err := h.store.AddParticipant(r.Context(), store.AddParticipantParams{
		SessionID:  sess.ID,
		DeviceID:   deviceUUID,
		Nickname:   req.Nickname,
		AvatarSeed: req.AvatarSeed,
		IsHost:     true,
	})
	if err != nil {
		storeError(w, err, "participant")
		return
	}

	slog.Info("session created", "session_id", sess.ID, "code", sess.Code)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		Session:     sess,
		Participant: host,
	})
}

// LookupByCode handles GET /sessions/code/{code}
// Only live lobby sessions are joinable; everything else is not-found.
func (h *SessionHandler) LookupByCode(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if len(code) != store.CodeLength {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code must be 6 characters")
		return
	}

	sess, err := h.store.LookupByCode(r.Context(), code)
	if err != nil {
		storeError(w, err, "session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, sess)
}

// GetSession handles GET /sessions/{id}
func (h *SessionHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "session")
		return
	}

	// Report expiry derived at read time; the row itself is never rewritten.
	sess.Status = h.store.EffectiveStatus(sess)

	middleware.JSONResponse(w, http.StatusOK, sess)
}

// Join handles POST /sessions/{id}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	deviceUUID := r.Header.Get("X-Device-UUID")
	if deviceUUID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "X-Device-UUID header required")
		return
	}

	var req models.JoinSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	sess, err := h.store.GetSession(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "session")
		return
	}
	if status := h.store.EffectiveStatus(sess); status != models.StatusLobby {
		middleware.ErrorResponse(w, http.StatusConflict, "Session is not accepting participants")
		return
	}

	p, err := h.store.AddParticipant(r.Context(), store.AddParticipantParams{
		SessionID:  sess.ID,
		DeviceID:   deviceUUID,
		Nickname:   req.Nickname,
		AvatarSeed: req.AvatarSeed,
		IsHost:     false,
	})
	if err != nil {
		storeError(w, err, "participant")
		return
	}

	slog.Info("participant joined", "session_id", sess.ID, "participant_id", p.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.JoinSessionResponse{
		Session:     sess,
		Participant: p,
	})
}

// ListParticipants handles GET /sessions/{id}/participants
func (h *SessionHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := h.store.ListParticipants(r.Context(), r.PathValue("id"))
	if err != nil {
		storeError(w, err, "session")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, participants)
}

// Start handles POST /sessions/{id}/start
// Host action: lobby -> active. The two-participant minimum lives here, at
// the caller layer, not in the store.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")

	participants, err := h.store.ListParticipants(r.Context(), sessionID)
	if err != nil {
		storeError(w, err, "session")
		return
	}
	if len(participants) < 2 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Need at least 2 participants to start")
		return
	}

	sess, err := h.store.StartSwiping(r.Context(), sessionID)
	if err != nil {
		storeError(w, err, "session")
		return
	}

	slog.Info("session started", "session_id", sess.ID)

	middleware.JSONResponse(w, http.StatusOK, sess)
}

// Finalize handles POST /sessions/{id}/finalize
// Host action: optionally records a winner, then active -> completed.
// Finalizing with zero matches and no winner is legal.
func (h *SessionHandler) Finalize(w http.ResponseWriter, r *http.Request) {
	var req models.FinalizeSessionRequest
	if r.ContentLength > 0 {
		if err := middleware.ParseJSONBody(r, &req); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
	}

	sess, err := h.store.Finalize(r.Context(), r.PathValue("id"), req.SelectedMatchID)
	if err != nil {
		storeError(w, err, "session")
		return
	}

	slog.Info("session finalized", "session_id", sess.ID, "winner_set", req.SelectedMatchID != "")

	middleware.JSONResponse(w, http.StatusOK, sess)
}

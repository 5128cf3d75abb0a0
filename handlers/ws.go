// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/flickpick/server/middleware"
	"github.com/flickpick/server/realtime"
	"github.com/flickpick/server/store"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Clients are native apps with no Origin header; browsers get a pass too.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type WSHandler struct {
	store *store.Store
	hub   *realtime.Hub
}

func NewWSHandler(st *store.Store, hub *realtime.Hub) *WSHandler {
	return &WSHandler{store: st, hub: hub}
}

// Subscribe handles GET /sessions/{id}/ws
// Upgrades to a websocket and streams session events until the client
// disconnects. The read loop exists only to detect the disconnect; clients
// never send application messages.
func (h *WSHandler) Subscribe(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if _, err := h.store.GetSession(r.Context(), sessionID); err != nil {
		storeError(w, err, "session")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "session_id", sessionID, "error", err)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Could not upgrade connection")
		return
	}

	h.hub.AddConnection(sessionID, conn)
	slog.Info("websocket subscribed", "session_id", sessionID)

	go func() {
		defer func() {
			h.hub.RemoveConnection(sessionID, conn)
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

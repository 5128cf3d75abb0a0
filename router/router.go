// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/flickpick/server/handlers"
	"github.com/flickpick/server/middleware"
	"github.com/flickpick/server/realtime"
	"github.com/flickpick/server/store"
	"github.com/flickpick/server/tmdb"
)

func NewRouter(db *sql.DB, st *store.Store, hub *realtime.Hub, tmdbClient *tmdb.Client) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(st)
	catalogHandler := handlers.NewCatalogHandler(st, tmdbClient)
	swipeHandler := handlers.NewSwipeHandler(st)
	deviceHandler := handlers.NewDeviceHandler(db, st)
	wsHandler := handlers.NewWSHandler(st, hub)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session lifecycle (host operations)
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("POST /sessions/{id}/start", middleware.WithLogging(sessionHandler.Start))
	mux.HandleFunc("POST /sessions/{id}/finalize", middleware.WithLogging(sessionHandler.Finalize))

	// Session discovery and joining
	mux.HandleFunc("GET /sessions/code/{code}", middleware.WithLogging(sessionHandler.LookupByCode))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("POST /sessions/{id}/join", middleware.WithLogging(sessionHandler.Join))
	mux.HandleFunc("GET /sessions/{id}/participants", middleware.WithLogging(sessionHandler.ListParticipants))

	// Catalog
	mux.HandleFunc("POST /sessions/{id}/catalog", middleware.WithLogging(catalogHandler.Seed))
	mux.HandleFunc("POST /sessions/{id}/catalog/build", middleware.WithLogging(catalogHandler.Build))
	mux.HandleFunc("GET /sessions/{id}/catalog", middleware.WithLogging(catalogHandler.List))

	// Swiping and matches
	mux.HandleFunc("POST /sessions/{id}/swipes", middleware.WithLogging(swipeHandler.Record))
	mux.HandleFunc("PUT /participants/{id}/progress", middleware.WithLogging(swipeHandler.Progress))
	mux.HandleFunc("GET /sessions/{id}/matches", middleware.WithLogging(swipeHandler.Matches))

	// Realtime subscriptions (logging middleware would break the hijack)
	mux.HandleFunc("GET /sessions/{id}/ws", wsHandler.Subscribe)

	// Device management
	mux.HandleFunc("POST /devices/register", middleware.WithLogging(deviceHandler.Register))
	mux.HandleFunc("GET /devices/me", middleware.WithLogging(deviceHandler.GetMe))
	mux.HandleFunc("GET /devices/history", middleware.WithLogging(deviceHandler.History))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("flickpick API v1"))
	})

	return mux
}

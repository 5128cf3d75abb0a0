// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the FlickPick API.

# Handler Types

Each handler is a struct with injected dependencies:

  - SessionHandler: Session lifecycle (create, lookup, join, start, finalize)
  - CatalogHandler: Catalog seeding and TMDB-backed building
  - SwipeHandler: Swipe recording, progress updates, match retrieval
  - DeviceHandler: Device registration and session history
  - WSHandler: Websocket subscriptions for session events

Handlers are created via constructor functions:

	sessionHandler := handlers.NewSessionHandler(st)
	catalogHandler := handlers.NewCatalogHandler(st, tmdbClient)

# Session Lifecycle

Sessions progress lobby → active → completed, with expiry derived at read
time from expires_at:

	POST /sessions                → CreateSession (host + session in one call)
	POST /sessions/{id}/start     → Start (requires 2+ participants)
	POST /sessions/{id}/finalize  → Finalize (optionally records a winner)

# Swiping Flow

Participants join via a 6-character code, then swipe through the shared
catalog:

	GET  /sessions/code/{code}    → LookupByCode (lobby sessions only)
	POST /sessions/{id}/join      → Join
	POST /sessions/{id}/swipes    → Record (active sessions only)
	GET  /sessions/{id}/matches   → Matches (recomputed from the ledger)

# Error Mapping

Store sentinel errors map to HTTP statuses via storeError: ErrNotFound
becomes 404, ErrConflict 409, ErrExhausted 503.

# Device Tracking

Device identity rides on the X-Device-UUID header:

	POST /devices/register → Register
	GET /devices/me        → GetMe
	GET /devices/history   → History
*/
package handlers

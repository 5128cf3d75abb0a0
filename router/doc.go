// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the FlickPick API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, st, hub, tmdbClient)

# Endpoints

Health:

	GET /health

Session lifecycle (host operations):

	POST /sessions                 - Create session with host participant
	POST /sessions/{id}/start      - Begin swiping (2+ participants)
	POST /sessions/{id}/finalize   - Complete, optionally recording a winner

Discovery and joining:

	GET  /sessions/code/{code}     - Look up a joinable session by code
	GET  /sessions/{id}            - Session details with derived status
	POST /sessions/{id}/join       - Join the lobby
	GET  /sessions/{id}/participants - Roster in join order

Catalog:

	POST /sessions/{id}/catalog       - Seed with a prepared item list
	POST /sessions/{id}/catalog/build - Build from TMDB discovery
	GET  /sessions/{id}/catalog       - Items in display order

Swiping and matches:

	POST /sessions/{id}/swipes          - Record a swipe
	PUT  /participants/{id}/progress    - Report card progress
	GET  /sessions/{id}/matches         - Current matches from the ledger

Realtime:

	GET /sessions/{id}/ws - Websocket event stream

Device management:

	POST /devices/register - Register device
	GET  /devices/me       - Get device info
	GET  /devices/history  - List device's past sessions

# Handler Initialization

The router creates handler instances with dependency injection: the store
for domain operations, the raw *sql.DB where handlers own their own
queries, the hub for websocket fanout, and the TMDB client (nil when
catalog building is not configured).
*/
package router

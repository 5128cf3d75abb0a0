// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the FlickPick API server.

FlickPick is a group movie-night decision service: a host creates a session,
friends join with a 6-character code, everyone swipes through a shared deck
of titles, and items every participant (or an agreed share of them) swiped
right on surface as matches in real time.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=flickpick.db go run main.go

Or with flags:

	go run main.go -p 3410 -d "postgres://..." -t postgres

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite file path or PostgreSQL connection string

Optional settings:

  - PORT (-p): Server port (default: 3410)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TMDB_API_KEY (--tmdb-key): Enables server-side catalog building

A .env file in the working directory is loaded at startup; real environment
variables take precedence.

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (sessions, catalog, swipes, devices, ws)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - store: Domain operations over database/sql (sessions, swipe ledger,
    match aggregation, lifecycle)
  - realtime: Websocket hub, debouncer, and the store-to-hub relay
  - tmdb: TMDB discovery client for catalog building
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main

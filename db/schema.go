// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is deliberately restricted to the dialect shared by PostgreSQL and
// SQLite: TEXT ids, JSON-serialized arrays in TEXT columns, and timestamps
// always supplied by the application rather than by column defaults.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Sessions
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    code TEXT NOT NULL,
    host_device_id TEXT NOT NULL,
    streaming_services TEXT NOT NULL,
    filters TEXT NOT NULL,
    match_threshold REAL NOT NULL DEFAULT 0.5,
    status TEXT NOT NULL DEFAULT 'lobby' CHECK (status IN ('lobby', 'active', 'completed', 'expired')),
    selected_match_id TEXT,
    created_at TIMESTAMP NOT NULL,
    expires_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_sessions_code_status ON sessions(code, status);
CREATE INDEX IF NOT EXISTS idx_sessions_status ON sessions(status);

-- Participants
CREATE TABLE IF NOT EXISTS participants (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    device_id TEXT NOT NULL,
    nickname TEXT NOT NULL,
    avatar_seed INTEGER NOT NULL DEFAULT 0,
    is_host BOOLEAN NOT NULL DEFAULT FALSE,
    swipe_progress INTEGER NOT NULL DEFAULT 0,
    joined_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_participants_session_id ON participants(session_id);
CREATE INDEX IF NOT EXISTS idx_participants_device_id ON participants(device_id);

-- Catalog items
CREATE TABLE IF NOT EXISTS catalog_items (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    tmdb_id BIGINT NOT NULL DEFAULT 0,
    title TEXT NOT NULL,
    poster_url TEXT NOT NULL DEFAULT '',
    synopsis TEXT NOT NULL DEFAULT '',
    genres TEXT NOT NULL,
    runtime INTEGER NOT NULL DEFAULT 0,
    release_year INTEGER NOT NULL DEFAULT 0,
    tmdb_rating REAL NOT NULL DEFAULT 0,
    available_on TEXT NOT NULL,
    display_order INTEGER NOT NULL,
    UNIQUE (session_id, display_order)
);

CREATE INDEX IF NOT EXISTS idx_catalog_items_session_id ON catalog_items(session_id);

-- Swipes (append-only ledger; deliberately no uniqueness on
-- participant x catalog item - the aggregator dedups on read)
CREATE TABLE IF NOT EXISTS swipes (
    id TEXT PRIMARY KEY,
    participant_id TEXT NOT NULL REFERENCES participants(id) ON DELETE CASCADE,
    catalog_item_id TEXT NOT NULL REFERENCES catalog_items(id) ON DELETE CASCADE,
    session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
    direction TEXT NOT NULL CHECK (direction IN ('left', 'right')),
    time_on_card_ms BIGINT NOT NULL CHECK (time_on_card_ms >= 0),
    swiped_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_swipes_session_id ON swipes(session_id);
CREATE INDEX IF NOT EXISTS idx_swipes_participant_id ON swipes(participant_id);

-- Devices
CREATE TABLE IF NOT EXISTS devices (
    id TEXT PRIMARY KEY,
    device_uuid TEXT NOT NULL UNIQUE,
    platform TEXT NOT NULL,
    created_at TIMESTAMP NOT NULL,
    last_seen_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_devices_uuid ON devices(device_uuid);
`

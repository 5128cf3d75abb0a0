// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Tables

The schema includes:

  - sessions: Session metadata, join code, filters, and lifecycle state
  - participants: Members of a session and their swipe progress
  - catalog_items: The shared deck of titles, ordered per session
  - swipes: Append-only ledger of swipe events
  - devices: Registered devices

# Relationships

	sessions 1──* participants
	sessions 1──* catalog_items
	sessions 1──* swipes
	participants 1──* swipes
	catalog_items 1──* swipes

All foreign keys use ON DELETE CASCADE. Devices link to sessions
through participants.device_id, which carries the device UUID.

# Indexes

Performance indexes on:

  - sessions.(code, status)
  - sessions.status
  - participants.session_id
  - participants.device_id
  - catalog_items.session_id (plus a unique (session_id, display_order))
  - swipes.session_id
  - swipes.participant_id
  - devices.device_uuid (unique)
*/
package db

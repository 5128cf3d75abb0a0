// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateSessionRequest: nickname, avatar_seed, streaming_services, filters, match_threshold
  - JoinSessionRequest: nickname, avatar_seed
  - SeedCatalogRequest: items
  - RecordSwipeRequest: participant_id, catalog_item_id, direction, time_on_card_ms
  - AdvanceProgressRequest: progress
  - FinalizeSessionRequest: selected_match_id
  - RegisterDeviceRequest: platform

# Response Types

Types for JSON responses:

  - CreateSessionResponse: session, participant
  - JoinSessionResponse: session, participant
  - SeedCatalogResponse: item_count
  - RecordSwipeResponse: swipe_id
  - MatchesResponse: matches
  - RegisterDeviceResponse: device_id, is_new
  - SessionHistoryResponse: sessions
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Session: session metadata, join code, and lifecycle state
  - SessionFilters: content preferences used to build the catalog
  - Participant: session member with swipe progress
  - CatalogItem: one title in the shared deck
  - Swipe: one swipe ledger entry
  - Match: aggregated yes-vote result for an item
  - DeviceInfo: registered device record
  - SessionHistoryItem: per-session summary for a device

# Constants

Status values:

	StatusLobby     = "lobby"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusExpired   = "expired"

Swipe directions:

	DirectionLeft  = "left"
	DirectionRight = "right"

Match tiers:

	TierPerfect = "perfect"
	TierStrong  = "strong"
	TierSoft    = "soft"

Platforms:

	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformWeb     = "web"

Timing:

	DefaultMatchThreshold = 0.5
	SessionTTL            = 24 * time.Hour
*/
package models

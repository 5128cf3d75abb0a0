// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Session status constants
const (
	StatusLobby     = "lobby"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusExpired   = "expired"
)

// Swipe direction constants
const (
	DirectionLeft  = "left"
	DirectionRight = "right"
)

// Match tier constants
const (
	TierPerfect = "perfect"
	TierStrong  = "strong"
	TierSoft    = "soft"
	TierNone    = "none"
)

// Device platform constants
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
)

// Realtime event types pushed to session subscribers
const (
	EventParticipantJoined = "participant_joined"
	EventProgressUpdated   = "progress_updated"
	EventSwipeRecorded     = "swipe_recorded"
	EventSessionStatus     = "session_status"
	EventMatchesUpdated    = "matches_updated"
)

// DefaultMatchThreshold is the yes-vote fraction a title needs to count
// as a match when the host doesn't pick one.
const DefaultMatchThreshold = 0.5

// SessionTTL is how long a session stays joinable/usable after creation.
const SessionTTL = 24 * time.Hour

// Request types

type CreateSessionRequest struct {
	Nickname          string         `json:"nickname"`
	AvatarSeed        int            `json:"avatar_seed"`
	StreamingServices []string       `json:"streaming_services"`
	Filters           SessionFilters `json:"filters"`
	MatchThreshold    *float64       `json:"match_threshold,omitempty"`
}

type JoinSessionRequest struct {
	Nickname   string `json:"nickname"`
	AvatarSeed int    `json:"avatar_seed"`
}

type SeedCatalogRequest struct {
	Items []CatalogItem `json:"items"`
}

type RecordSwipeRequest struct {
	ParticipantID string `json:"participant_id"`
	CatalogItemID string `json:"catalog_item_id"`
	Direction     string `json:"direction"`
	TimeOnCardMs  int64  `json:"time_on_card_ms"`
}

type AdvanceProgressRequest struct {
	Progress int `json:"progress"`
}

type FinalizeSessionRequest struct {
	SelectedMatchID string `json:"selected_match_id,omitempty"`
}

type RegisterDeviceRequest struct {
	Platform string `json:"platform"`
}

// Response types

type CreateSessionResponse struct {
	Session     Session     `json:"session"`
	Participant Participant `json:"participant"`
}

type JoinSessionResponse struct {
	Session     Session     `json:"session"`
	Participant Participant `json:"participant"`
}

type SeedCatalogResponse struct {
	ItemCount int `json:"item_count"`
}

type RecordSwipeResponse struct {
	SwipeID string `json:"swipe_id"`
}

type MatchesResponse struct {
	Matches []Match `json:"matches"`
}

type RegisterDeviceResponse struct {
	DeviceID string `json:"device_id"`
	IsNew    bool   `json:"is_new"`
}

type SessionHistoryResponse struct {
	Sessions []SessionHistoryItem `json:"sessions"`
}

// Domain types

// SessionFilters is the catalog filter specification chosen by the host.
type SessionFilters struct {
	Genres           []string `json:"genres"`
	Mood             string   `json:"mood,omitempty"`
	RuntimeRange     string   `json:"runtime_range,omitempty"`
	ReleaseYearRange []string `json:"release_year_range,omitempty"`
	MinRating        float64  `json:"min_rating,omitempty"`
	Certifications   []string `json:"certifications,omitempty"`
	ContentType      string   `json:"content_type,omitempty"` // movies, tv, both
}

type Session struct {
	ID                string         `json:"id"`
	Code              string         `json:"code"`
	HostDeviceID      string         `json:"host_device_id"`
	StreamingServices []string       `json:"streaming_services"`
	Filters           SessionFilters `json:"filters"`
	MatchThreshold    float64        `json:"match_threshold"`
	Status            string         `json:"status"`
	SelectedMatchID   *string        `json:"selected_match_id,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	ExpiresAt         time.Time      `json:"expires_at"`
}

type Participant struct {
	ID            string    `json:"id"`
	SessionID     string    `json:"session_id"`
	DeviceID      string    `json:"device_id"`
	Nickname      string    `json:"nickname"`
	AvatarSeed    int       `json:"avatar_seed"`
	IsHost        bool      `json:"is_host"`
	SwipeProgress int       `json:"swipe_progress"`
	JoinedAt      time.Time `json:"joined_at"`
}

type CatalogItem struct {
	ID           string   `json:"id"`
	SessionID    string   `json:"session_id"`
	TmdbID       int64    `json:"tmdb_id"`
	Title        string   `json:"title"`
	PosterURL    string   `json:"poster_url"`
	Synopsis     string   `json:"synopsis"`
	Genres       []string `json:"genres"`
	Runtime      int      `json:"runtime"`
	ReleaseYear  int      `json:"release_year"`
	TmdbRating   float64  `json:"tmdb_rating"`
	AvailableOn  []string `json:"available_on"`
	DisplayOrder int      `json:"display_order"`
}

type Swipe struct {
	ID            string    `json:"id"`
	ParticipantID string    `json:"participant_id"`
	CatalogItemID string    `json:"catalog_item_id"`
	SessionID     string    `json:"session_id"`
	Direction     string    `json:"direction"`
	TimeOnCardMs  int64     `json:"time_on_card_ms"`
	SwipedAt      time.Time `json:"swiped_at"`
}

// Match is derived, never stored: one row per catalog item that meets the
// session's threshold, recomputed on every read.
type Match struct {
	CatalogItemID     string   `json:"catalog_item_id"`
	Title             string   `json:"title"`
	PosterURL         string   `json:"poster_url"`
	Synopsis          string   `json:"synopsis"`
	Genres            []string `json:"genres"`
	Runtime           int      `json:"runtime"`
	ReleaseYear       int      `json:"release_year"`
	TmdbRating        float64  `json:"tmdb_rating"`
	AvailableOn       []string `json:"available_on"`
	RightSwipeCount   int      `json:"right_swipe_count"`
	TotalParticipants int      `json:"total_participants"`
	MatchPercentage   float64  `json:"match_percentage"`
	Tier              string   `json:"tier"`
	AvgEnthusiasm     float64  `json:"avg_enthusiasm"`
}

type DeviceInfo struct {
	ID         string    `json:"id"`
	Platform   string    `json:"platform"`
	CreatedAt  time.Time `json:"created_at"`
	LastSeenAt time.Time `json:"last_seen_at"`
}

// TopMatch is the headline pick shown in session history.
type TopMatch struct {
	Title           string   `json:"title"`
	PosterURL       string   `json:"poster_url"`
	MatchPercentage float64  `json:"match_percentage"`
	AvailableOn     []string `json:"available_on"`
}

type SessionHistoryItem struct {
	SessionID        string    `json:"session_id"`
	SessionCode      string    `json:"session_code"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
	ParticipantCount int       `json:"participant_count"`
	TopMatch         *TopMatch `json:"top_match,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/flickpick/server/db"
	"github.com/flickpick/server/models"
)

// SetupTestDB creates a fresh SQLite database with the full schema. Each
// test gets its own file under t.TempDir, removed automatically.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "flickpick_test.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// Single connection avoids SQLite write-lock contention in tests.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })

	return conn
}

// CreateTestSession inserts a session row directly and returns its ID and
// code. status should be "lobby", "active", or "completed"; expired
// sessions are made by passing "lobby" with a past expires_at via
// CreateExpiredSession instead.
func CreateTestSession(t *testing.T, conn *sql.DB, code, status string) string {
	t.Helper()

	sessionID := uuid.NewString()
	now := time.Now()
	_, err := conn.Exec(`
		INSERT INTO sessions (id, code, host_device_id, streaming_services, filters, match_threshold, status, created_at, expires_at)
		VALUES ($1, $2, 'test-device', '["netflix"]', '{}', $3, $4, $5, $6)
	`, sessionID, code, models.DefaultMatchThreshold, status, now, now.Add(models.SessionTTL))
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return sessionID
}

// CreateExpiredSession inserts a lobby session whose expires_at is already
// in the past.
func CreateExpiredSession(t *testing.T, conn *sql.DB, code string) string {
	t.Helper()

	sessionID := uuid.NewString()
	now := time.Now()
	_, err := conn.Exec(`
		INSERT INTO sessions (id, code, host_device_id, streaming_services, filters, match_threshold, status, created_at, expires_at)
		VALUES ($1, $2, 'test-device', '[]', '{}', $3, 'lobby', $4, $5)
	`, sessionID, code, models.DefaultMatchThreshold, now.Add(-25*time.Hour), now.Add(-time.Hour))
	if err != nil {
		t.Fatalf("Failed to create expired session: %v", err)
	}

	return sessionID
}

// SetMatchThreshold overrides the session's match threshold.
func SetMatchThreshold(t *testing.T, conn *sql.DB, sessionID string, threshold float64) {
	t.Helper()

	if _, err := conn.Exec(`UPDATE sessions SET match_threshold = $1 WHERE id = $2`, threshold, sessionID); err != nil {
		t.Fatalf("Failed to set match threshold: %v", err)
	}
}

// AddTestParticipant adds a participant and returns its ID.
func AddTestParticipant(t *testing.T, conn *sql.DB, sessionID, nickname string, isHost bool) string {
	t.Helper()

	participantID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO participants (id, session_id, device_id, nickname, avatar_seed, is_host, swipe_progress, joined_at)
		VALUES ($1, $2, $3, $4, 0, $5, 0, $6)
	`, participantID, sessionID, "device-"+nickname, nickname, isHost, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test participant: %v", err)
	}

	return participantID
}

// SeedTestCatalog inserts n catalog items titled "Title 1".."Title n" and
// returns their IDs in display order.
func SeedTestCatalog(t *testing.T, conn *sql.DB, sessionID string, n int) []string {
	t.Helper()

	ids := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		itemID := uuid.NewString()
		_, err := conn.Exec(`
			INSERT INTO catalog_items (id, session_id, tmdb_id, title, poster_url, synopsis,
			                           genres, runtime, release_year, tmdb_rating, available_on, display_order)
			VALUES ($1, $2, $3, $4, '', '', '[]', 100, 2020, $5, '["netflix"]', $6)
		`, itemID, sessionID, 1000+i, "Title "+strconv.Itoa(i), 7.0, i)
		if err != nil {
			t.Fatalf("Failed to seed catalog item: %v", err)
		}
		ids = append(ids, itemID)
	}

	return ids
}

// RecordTestSwipe appends a swipe row and returns its ID. swipedAt controls
// ledger ordering for dedup tests.
func RecordTestSwipe(t *testing.T, conn *sql.DB, sessionID, participantID, itemID, direction string, swipedAt time.Time) string {
	t.Helper()

	swipeID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO swipes (id, session_id, participant_id, catalog_item_id, direction, time_on_card_ms, swiped_at)
		VALUES ($1, $2, $3, $4, $5, 1500, $6)
	`, swipeID, sessionID, participantID, itemID, direction, swipedAt)
	if err != nil {
		t.Fatalf("Failed to record test swipe: %v", err)
	}

	return swipeID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

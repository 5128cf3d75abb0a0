// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/flickpick/server/models"
)

type CreateSessionParams struct {
	Code              string
	HostDeviceID      string
	StreamingServices []string
	Filters           models.SessionFilters
	MatchThreshold    float64 // 0 means default
}

// CreateSession inserts a new lobby session. Fails with ErrConflict when the
// code collides with a live lobby session; the caller retries with a fresh
// code from GenerateUniqueCode.
func (s *Store) CreateSession(ctx context.Context, params CreateSessionParams) (models.Session, error) {
	code := strings.ToUpper(params.Code)

	var taken bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM sessions
			WHERE code = $1 AND status = 'lobby' AND expires_at > $2
		)
	`, code, s.now()).Scan(&taken)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to check session code: %w", err)
	}
	if taken {
		return models.Session{}, fmt.Errorf("session code %s: %w", code, ErrConflict)
	}

	threshold := params.MatchThreshold
	if threshold == 0 {
		threshold = models.DefaultMatchThreshold
	}

	filtersJSON, err := json.Marshal(params.Filters)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to marshal filters: %w", err)
	}

	now := s.now()
	sess := models.Session{
		ID:                uuid.NewString(),
		Code:              code,
		HostDeviceID:      params.HostDeviceID,
		StreamingServices: params.StreamingServices,
		Filters:           params.Filters,
		MatchThreshold:    threshold,
		Status:            models.StatusLobby,
		CreatedAt:         now,
		ExpiresAt:         now.Add(models.SessionTTL),
	}
	if sess.StreamingServices == nil {
		sess.StreamingServices = []string{}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, code, host_device_id, streaming_services, filters,
		                      match_threshold, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, sess.ID, sess.Code, sess.HostDeviceID, marshalStrings(sess.StreamingServices),
		string(filtersJSON), sess.MatchThreshold, sess.Status, sess.CreatedAt, sess.ExpiresAt)
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to insert session: %w", err)
	}

	return sess, nil
}

// GetSession returns the raw stored session. Status is reported as written;
// callers that care about expiry use EffectiveStatus.
func (s *Store) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	return s.scanSession(s.db.QueryRowContext(ctx, `
		SELECT id, code, host_device_id, streaming_services, filters,
		       match_threshold, status, selected_match_id, created_at, expires_at
		FROM sessions
		WHERE id = $1
	`, sessionID))
}

// LookupByCode finds a joinable session: lobby status, not yet expired.
// Expired, active, and completed sessions behave as not-found.
func (s *Store) LookupByCode(ctx context.Context, code string) (models.Session, error) {
	return s.scanSession(s.db.QueryRowContext(ctx, `
		SELECT id, code, host_device_id, streaming_services, filters,
		       match_threshold, status, selected_match_id, created_at, expires_at
		FROM sessions
		WHERE code = $1 AND status = 'lobby' AND expires_at > $2
	`, strings.ToUpper(code), s.now()))
}

// TransitionStatus writes the new status unconditionally. Transition-table
// enforcement lives in the lifecycle methods (StartSwiping, Finalize), not
// here.
func (s *Store) TransitionStatus(ctx context.Context, sessionID, newStatus string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET status = $1 WHERE id = $2
	`, newStatus, sessionID)
	if err != nil {
		return fmt.Errorf("failed to update session status: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}

	s.notify(sessionID, models.EventSessionStatus, map[string]string{"status": newStatus})
	return nil
}

// SetSelectedWinner records the host's final pick. Idempotent; last write
// wins if called twice.
func (s *Store) SetSelectedWinner(ctx context.Context, sessionID, catalogItemID string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sessions SET selected_match_id = $1 WHERE id = $2
	`, catalogItemID, sessionID)
	if err != nil {
		return fmt.Errorf("failed to set selected winner: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}
	return nil
}

func (s *Store) scanSession(row *sql.Row) (models.Session, error) {
	var sess models.Session
	var services, filtersJSON string
	var selected sql.NullString

	err := row.Scan(
		&sess.ID, &sess.Code, &sess.HostDeviceID, &services, &filtersJSON,
		&sess.MatchThreshold, &sess.Status, &selected, &sess.CreatedAt, &sess.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return models.Session{}, fmt.Errorf("session: %w", ErrNotFound)
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to scan session: %w", err)
	}

	sess.StreamingServices = unmarshalStrings(services)
	if err := json.Unmarshal([]byte(filtersJSON), &sess.Filters); err != nil {
		return models.Session{}, fmt.Errorf("failed to unmarshal filters: %w", err)
	}
	if selected.Valid {
		sess.SelectedMatchID = &selected.String
	}

	return sess, nil
}

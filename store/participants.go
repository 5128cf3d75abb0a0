// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/flickpick/server/models"
)

type AddParticipantParams struct {
	SessionID  string
	DeviceID   string
	Nickname   string
	AvatarSeed int
	IsHost     bool
}

// AddParticipant appends a participant to the session roster. No duplicate
// device check: the same device may register multiple participants. The
// roster is append-only for the life of the session.
func (s *Store) AddParticipant(ctx context.Context, params AddParticipantParams) (models.Participant, error) {
	nickname := params.Nickname
	if nickname == "" {
		nickname = "Guest"
	}

	p := models.Participant{
		ID:         uuid.NewString(),
		SessionID:  params.SessionID,
		DeviceID:   params.DeviceID,
		Nickname:   nickname,
		AvatarSeed: params.AvatarSeed,
		IsHost:     params.IsHost,
		JoinedAt:   s.now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO participants (id, session_id, device_id, nickname, avatar_seed,
		                          is_host, swipe_progress, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
	`, p.ID, p.SessionID, p.DeviceID, p.Nickname, p.AvatarSeed, p.IsHost, p.JoinedAt)
	if err != nil {
		return models.Participant{}, fmt.Errorf("failed to insert participant: %w", err)
	}

	s.notify(p.SessionID, models.EventParticipantJoined, p)
	return p, nil
}

// ListParticipants returns the session roster in insertion order (hosts
// join first, so the host typically leads).
func (s *Store) ListParticipants(ctx context.Context, sessionID string) ([]models.Participant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, device_id, nickname, avatar_seed, is_host, swipe_progress, joined_at
		FROM participants
		WHERE session_id = $1
		ORDER BY joined_at, id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query participants: %w", err)
	}
	defer rows.Close()

	participants := []models.Participant{}
	for rows.Next() {
		var p models.Participant
		if err := rows.Scan(&p.ID, &p.SessionID, &p.DeviceID, &p.Nickname,
			&p.AvatarSeed, &p.IsHost, &p.SwipeProgress, &p.JoinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, p)
	}
	return participants, rows.Err()
}

// AdvanceProgress sets a participant's swipe progress. Callers pass a
// monotonically increasing value; the registry does not reject decreases.
func (s *Store) AdvanceProgress(ctx context.Context, participantID string, progress int) error {
	var sessionID string
	err := s.db.QueryRowContext(ctx, `
		SELECT session_id FROM participants WHERE id = $1
	`, participantID).Scan(&sessionID)
	if err != nil {
		return fmt.Errorf("participant %s: %w", participantID, ErrNotFound)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE participants SET swipe_progress = $1 WHERE id = $2
	`, progress, participantID)
	if err != nil {
		return fmt.Errorf("failed to update swipe progress: %w", err)
	}

	s.notify(sessionID, models.EventProgressUpdated, map[string]any{
		"participant_id": participantID,
		"swipe_progress": progress,
	})
	return nil
}

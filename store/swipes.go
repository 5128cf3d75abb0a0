// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/flickpick/server/models"
)

type RecordSwipeParams struct {
	ParticipantID string
	CatalogItemID string
	SessionID     string
	Direction     string
	TimeOnCardMs  int64
}

// RecordSwipe appends one immutable row to the swipe ledger. There is no
// idempotency key: a retried request produces two rows for the same
// participant and item, which the aggregator dedups on read.
func (s *Store) RecordSwipe(ctx context.Context, params RecordSwipeParams) (models.Swipe, error) {
	if params.Direction != models.DirectionLeft && params.Direction != models.DirectionRight {
		return models.Swipe{}, fmt.Errorf("invalid swipe direction %q", params.Direction)
	}
	if params.TimeOnCardMs < 0 {
		return models.Swipe{}, fmt.Errorf("time_on_card_ms must be non-negative")
	}

	sw := models.Swipe{
		ID:            uuid.NewString(),
		ParticipantID: params.ParticipantID,
		CatalogItemID: params.CatalogItemID,
		SessionID:     params.SessionID,
		Direction:     params.Direction,
		TimeOnCardMs:  params.TimeOnCardMs,
		SwipedAt:      s.now(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO swipes (id, participant_id, catalog_item_id, session_id,
		                    direction, time_on_card_ms, swiped_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, sw.ID, sw.ParticipantID, sw.CatalogItemID, sw.SessionID,
		sw.Direction, sw.TimeOnCardMs, sw.SwipedAt)
	if err != nil {
		return models.Swipe{}, fmt.Errorf("failed to insert swipe: %w", err)
	}

	s.notify(sw.SessionID, models.EventSwipeRecorded, sw)
	return sw, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/flickpick/server/models"
)

// EffectiveStatus derives the status a reader should act on. Expiry is
// read-derived, never written back: a lobby or active session past its
// expires_at reports expired without a status rewrite. Completed is terminal
// and is never preempted.
func (s *Store) EffectiveStatus(sess models.Session) string {
	if sess.Status == models.StatusCompleted || sess.Status == models.StatusExpired {
		return sess.Status
	}
	if !s.now().Before(sess.ExpiresAt) {
		return models.StatusExpired
	}
	return sess.Status
}

// StartSwiping transitions a session from lobby to active. Once active the
// catalog is frozen and swiping is enabled for all participants. The
// minimum-participant rule is the caller's to enforce, not the store's.
func (s *Store) StartSwiping(ctx context.Context, sessionID string) (models.Session, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}

	if status := s.EffectiveStatus(sess); status != models.StatusLobby {
		return models.Session{}, fmt.Errorf("cannot start swiping from status %s: %w", status, ErrConflict)
	}

	if err := s.TransitionStatus(ctx, sessionID, models.StatusActive); err != nil {
		return models.Session{}, err
	}

	sess.Status = models.StatusActive
	return sess, nil
}

// Finalize records the host's pick (when one is given) and transitions the
// session from active to completed. Finalizing with no winner is legal: a
// session with zero qualifying matches still completes, winner unset.
func (s *Store) Finalize(ctx context.Context, sessionID, selectedMatchID string) (models.Session, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return models.Session{}, err
	}

	if status := s.EffectiveStatus(sess); status != models.StatusActive {
		return models.Session{}, fmt.Errorf("cannot finalize from status %s: %w", status, ErrConflict)
	}

	if selectedMatchID != "" {
		if err := s.SetSelectedWinner(ctx, sessionID, selectedMatchID); err != nil {
			return models.Session{}, err
		}
		sess.SelectedMatchID = &selectedMatchID
	}

	if err := s.TransitionStatus(ctx, sessionID, models.StatusCompleted); err != nil {
		return models.Session{}, err
	}

	sess.Status = models.StatusCompleted
	return sess, nil
}

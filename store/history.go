// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/flickpick/server/models"
)

// SessionHistory lists the sessions a device has participated in, newest
// first, each with its participant count and headline pick. For a finalized
// session the headline is the selected winner; otherwise it is the current
// top aggregated match, which can shift as swipes land.
func (s *Store) SessionHistory(ctx context.Context, deviceID string) ([]models.SessionHistoryItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT DISTINCT s.id, s.code, s.status, s.selected_match_id, s.created_at, s.expires_at,
		       (SELECT COUNT(*) FROM participants pc WHERE pc.session_id = s.id)
		FROM sessions s
		JOIN participants p ON p.session_id = s.id
		WHERE p.device_id = $1
		ORDER BY s.created_at DESC
	`, deviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query session history: %w", err)
	}
	defer rows.Close()

	type historyRow struct {
		item     models.SessionHistoryItem
		selected string
		expired  bool
	}

	var raw []historyRow
	for rows.Next() {
		var r historyRow
		var selected *string
		var expiresAt time.Time
		if err := rows.Scan(&r.item.SessionID, &r.item.SessionCode, &r.item.Status,
			&selected, &r.item.CreatedAt, &expiresAt, &r.item.ParticipantCount); err != nil {
			return nil, fmt.Errorf("failed to scan session history: %w", err)
		}
		if selected != nil {
			r.selected = *selected
		}
		if r.item.Status != models.StatusCompleted && !s.now().Before(expiresAt) {
			r.item.Status = models.StatusExpired
		}
		raw = append(raw, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	history := []models.SessionHistoryItem{}
	for _, r := range raw {
		top, err := s.topMatch(ctx, r.item.SessionID, r.selected)
		if err != nil {
			return nil, err
		}
		r.item.TopMatch = top
		history = append(history, r.item)
	}
	return history, nil
}

func (s *Store) topMatch(ctx context.Context, sessionID, selectedMatchID string) (*models.TopMatch, error) {
	matches, err := s.ComputeMatches(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if selectedMatchID != "" {
		for _, m := range matches {
			if m.CatalogItemID == selectedMatchID {
				return &models.TopMatch{
					Title:           m.Title,
					PosterURL:       m.PosterURL,
					MatchPercentage: m.MatchPercentage,
					AvailableOn:     m.AvailableOn,
				}, nil
			}
		}
		// The winner can sit below the threshold after participant churn;
		// fall back to the catalog row so history still shows the pick.
		items, err := s.FetchCatalog(ctx, sessionID)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			if item.ID == selectedMatchID {
				return &models.TopMatch{
					Title:       item.Title,
					PosterURL:   item.PosterURL,
					AvailableOn: item.AvailableOn,
				}, nil
			}
		}
	}

	if len(matches) == 0 {
		return nil, nil
	}
	m := matches[0]
	return &models.TopMatch{
		Title:           m.Title,
		PosterURL:       m.PosterURL,
		MatchPercentage: m.MatchPercentage,
		AvailableOn:     m.AvailableOn,
	}, nil
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/flickpick/server/models"
)

// SeedCatalog bulk-inserts the session's candidate titles. Display order is
// assigned sequentially from 1 when not pre-set. Must be called exactly once
// per session, before swiping starts; a second call fails with ErrConflict.
func (s *Store) SeedCatalog(ctx context.Context, sessionID string, items []models.CatalogItem) error {
	var seeded bool
	err := s.db.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM catalog_items WHERE session_id = $1)
	`, sessionID).Scan(&seeded)
	if err != nil {
		return fmt.Errorf("failed to check existing catalog: %w", err)
	}
	if seeded {
		return fmt.Errorf("catalog already seeded for session %s: %w", sessionID, ErrConflict)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for i, item := range items {
		order := item.DisplayOrder
		if order == 0 {
			order = i + 1
		}
		id := item.ID
		if id == "" {
			id = uuid.NewString()
		}

		_, err := tx.ExecContext(ctx, `
			INSERT INTO catalog_items (id, session_id, tmdb_id, title, poster_url, synopsis,
			                           genres, runtime, release_year, tmdb_rating, available_on, display_order)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`, id, sessionID, item.TmdbID, item.Title, item.PosterURL, item.Synopsis,
			marshalStrings(item.Genres), item.Runtime, item.ReleaseYear, item.TmdbRating,
			marshalStrings(item.AvailableOn), order)
		if err != nil {
			return fmt.Errorf("failed to insert catalog item %q: %w", item.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit catalog seed: %w", err)
	}
	return nil
}

// FetchCatalog returns the session's titles sorted by display order. This
// ordering is the contract that gives every participant the same swipe
// sequence.
func (s *Store) FetchCatalog(ctx context.Context, sessionID string) ([]models.CatalogItem, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, session_id, tmdb_id, title, poster_url, synopsis,
		       genres, runtime, release_year, tmdb_rating, available_on, display_order
		FROM catalog_items
		WHERE session_id = $1
		ORDER BY display_order
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer rows.Close()

	items := []models.CatalogItem{}
	for rows.Next() {
		var item models.CatalogItem
		var genres, availableOn string
		if err := rows.Scan(&item.ID, &item.SessionID, &item.TmdbID, &item.Title,
			&item.PosterURL, &item.Synopsis, &genres, &item.Runtime, &item.ReleaseYear,
			&item.TmdbRating, &availableOn, &item.DisplayOrder); err != nil {
			return nil, fmt.Errorf("failed to scan catalog item: %w", err)
		}
		item.Genres = unmarshalStrings(genres)
		item.AvailableOn = unmarshalStrings(availableOn)
		items = append(items, item)
	}
	return items, rows.Err()
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"
	"sort"

	"github.com/flickpick/server/models"
)

// Tier boundaries. A match at exactly 0.75 is strong, at exactly 1.0 perfect.
const (
	perfectBoundary = 1.0
	strongBoundary  = 0.75
)

// enthusiasmCapMs is where time-on-card stops counting as enthusiasm:
// an instant right-swipe scores 1, ten seconds or more scores 0.
const enthusiasmCapMs = 10_000

// vote is one participant's effective decision on one item after dedup.
type vote struct {
	direction    string
	timeOnCardMs int64
}

// ComputeMatches derives the live match list for a session: for every
// catalog item, the count of yes-votes (deduplicated by participant, most
// recent direction winning) against the current participant count. Items at
// or above the session threshold are returned sorted by match percentage
// descending, ties broken by TMDB rating descending, then display order
// ascending.
//
// The result is always a live snapshot over whatever swipes exist; it never
// waits for participants to finish. Recomputing with no new swipes yields an
// identical list.
func (s *Store) ComputeMatches(ctx context.Context, sessionID string) ([]models.Match, error) {
	var threshold float64
	err := s.db.QueryRowContext(ctx, `
		SELECT match_threshold FROM sessions WHERE id = $1
	`, sessionID).Scan(&threshold)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrNotFound)
	}

	var totalParticipants int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM participants WHERE session_id = $1
	`, sessionID).Scan(&totalParticipants)
	if err != nil {
		return nil, fmt.Errorf("failed to count participants: %w", err)
	}

	items, err := s.FetchCatalog(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	votes, err := s.effectiveVotes(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	// Tally yes-votes and enthusiasm per item.
	rightCount := make(map[string]int)
	enthusiasmSum := make(map[string]float64)
	for key, v := range votes {
		if v.direction != models.DirectionRight {
			continue
		}
		rightCount[key.itemID]++
		enthusiasmSum[key.itemID] += enthusiasm(v.timeOnCardMs)
	}

	matches := []models.Match{}
	displayOrder := make(map[string]int, len(items))
	for _, item := range items {
		displayOrder[item.ID] = item.DisplayOrder

		right := rightCount[item.ID]
		pct := 0.0
		if totalParticipants > 0 {
			pct = float64(right) / float64(totalParticipants)
		}
		if pct < threshold {
			continue
		}

		avgEnthusiasm := 0.0
		if right > 0 {
			avgEnthusiasm = enthusiasmSum[item.ID] / float64(right)
		}

		matches = append(matches, models.Match{
			CatalogItemID:     item.ID,
			Title:             item.Title,
			PosterURL:         item.PosterURL,
			Synopsis:          item.Synopsis,
			Genres:            item.Genres,
			Runtime:           item.Runtime,
			ReleaseYear:       item.ReleaseYear,
			TmdbRating:        item.TmdbRating,
			AvailableOn:       item.AvailableOn,
			RightSwipeCount:   right,
			TotalParticipants: totalParticipants,
			MatchPercentage:   pct,
			Tier:              classifyTier(pct, threshold),
			AvgEnthusiasm:     avgEnthusiasm,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		a, b := matches[i], matches[j]
		if a.MatchPercentage != b.MatchPercentage {
			return a.MatchPercentage > b.MatchPercentage
		}
		if a.TmdbRating != b.TmdbRating {
			return a.TmdbRating > b.TmdbRating
		}
		return displayOrder[a.CatalogItemID] < displayOrder[b.CatalogItemID]
	})

	return matches, nil
}

type voteKey struct {
	participantID string
	itemID        string
}

// effectiveVotes reads the full ledger for a session in swipe order and
// collapses it to one vote per (participant, item), keeping the most recent
// direction. This is what makes duplicate rows from retried requests safe
// without any write-side locking.
func (s *Store) effectiveVotes(ctx context.Context, sessionID string) (map[voteKey]vote, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT participant_id, catalog_item_id, direction, time_on_card_ms
		FROM swipes
		WHERE session_id = $1
		ORDER BY swiped_at, id
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query swipes: %w", err)
	}
	defer rows.Close()

	votes := make(map[voteKey]vote)
	for rows.Next() {
		var participantID, itemID, direction string
		var timeOnCardMs int64
		if err := rows.Scan(&participantID, &itemID, &direction, &timeOnCardMs); err != nil {
			return nil, fmt.Errorf("failed to scan swipe: %w", err)
		}
		// Later rows overwrite earlier ones: latest direction wins.
		votes[voteKey{participantID, itemID}] = vote{direction, timeOnCardMs}
	}
	return votes, rows.Err()
}

// classifyTier buckets a match percentage that already passed the threshold.
func classifyTier(pct, threshold float64) string {
	switch {
	case pct >= perfectBoundary:
		return models.TierPerfect
	case pct >= strongBoundary:
		return models.TierStrong
	case pct >= threshold:
		return models.TierSoft
	default:
		return models.TierNone
	}
}

// enthusiasm maps time-on-card to [0, 1]: instant swipes score 1, anything
// at or past the cap scores 0, linear in between.
func enthusiasm(timeOnCardMs int64) float64 {
	if timeOnCardMs >= enthusiasmCapMs {
		return 0
	}
	return 1 - float64(timeOnCardMs)/float64(enthusiasmCapMs)
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"log/slog"
	"time"

	"github.com/flickpick/server/models"
)

// MatchLoader recomputes the live match list for a session. The relay calls
// it behind the debounce window and pushes the result to subscribers.
type MatchLoader func(sessionID string) ([]models.Match, error)

// Relay implements store.Notifier on top of the hub. Every store event is
// broadcast as-is; swipe events additionally kick the match debouncer so
// subscribers get a fresh ranked list without recomputing per insert.
type Relay struct {
	hub     *Hub
	matches *Debouncer
}

// MatchDebounceWindow absorbs bursts of near-simultaneous swipes.
const MatchDebounceWindow = 500 * time.Millisecond

func NewRelay(hub *Hub, window time.Duration, load MatchLoader) *Relay {
	r := &Relay{hub: hub}
	r.matches = NewDebouncer(window, func(sessionID string) {
		matches, err := load(sessionID)
		if err != nil {
			// Push failures are logged, never swallowed: subscribers
			// keep their last list and the next swipe retries.
			slog.Error("match recomputation failed", "session_id", sessionID, "error", err)
			return
		}
		hub.Broadcast(sessionID, Message{Type: models.EventMatchesUpdated, Data: matches})
	})
	return r
}

func (r *Relay) Notify(sessionID, event string, payload any) {
	r.hub.Broadcast(sessionID, Message{Type: event, Data: payload})
	if event == models.EventSwipeRecorded {
		r.matches.Kick(sessionID)
	}
}

// Stop cancels pending debounced pushes.
func (r *Relay) Stop() {
	r.matches.Stop()
}

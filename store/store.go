// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"encoding/json"
	"time"
)

// Notifier receives change events for a session. Implementations fan the
// event out to every live subscriber of that session.
type Notifier interface {
	Notify(sessionID string, event string, payload any)
}

// Store exposes the decision-making core as a library API over *sql.DB.
// All methods are safe for concurrent use; independent writes (swipe vs.
// progress, seed vs. start) are not transactionally coupled.
type Store struct {
	db       *sql.DB
	notifier Notifier

	// Injectable for tests.
	now      func() time.Time
	pickCode func() string
}

func New(db *sql.DB) *Store {
	return &Store{
		db:       db,
		now:      time.Now,
		pickCode: randomCode,
	}
}

// SetNotifier attaches a change notifier. A nil notifier disables push.
func (s *Store) SetNotifier(n Notifier) {
	s.notifier = n
}

func (s *Store) notify(sessionID, event string, payload any) {
	if s.notifier != nil {
		s.notifier.Notify(sessionID, event, payload)
	}
}

// marshalStrings serializes a string slice for a TEXT column.
// nil marshals as an empty list, never JSON null.
func marshalStrings(v []string) string {
	if v == nil {
		v = []string{}
	}
	b, _ := json.Marshal(v)
	return string(b)
}

func unmarshalStrings(raw string) []string {
	var v []string
	if err := json.Unmarshal([]byte(raw), &v); err != nil || v == nil {
		return []string{}
	}
	return v
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store is the decision-making core of the FlickPick server: sessions,
participants, catalogs, the append-only swipe ledger, the match aggregator,
and the session lifecycle, exposed as a library API over *sql.DB.

# Components

  - Session store: CreateSession, GetSession, LookupByCode, TransitionStatus,
    SetSelectedWinner
  - Participant registry: AddParticipant, ListParticipants, AdvanceProgress
  - Catalog store: SeedCatalog, FetchCatalog
  - Swipe ledger: RecordSwipe (append-only, no idempotency key)
  - Match aggregator: ComputeMatches
  - Lifecycle: GenerateUniqueCode, StartSwiping, Finalize, EffectiveStatus

# Aggregation model

Matches are derived, never stored. ComputeMatches reads the whole ledger for
a session, collapses duplicate swipes per (participant, item) keeping the
most recent direction, and divides yes-votes by the participant count at
query time. The denominator is deliberately current rather than a snapshot:
a match's percentage can change when participants join mid-session.

Dedup-on-read is also the concurrency story. Writers never coordinate;
duplicate rows from retried requests are harmless because the aggregator
counts each participant at most once per item.

# Lifecycle

Sessions move lobby -> active -> completed, with expiry derived at read time
from expires_at rather than written back. TransitionStatus is an
unconditional write; StartSwiping and Finalize are the enforced entry points.

# Errors

ErrNotFound, ErrConflict and ErrExhausted classify the non-transient
failures; anything else is a store/connectivity error and propagates
unmodified from database/sql.

# Change notification

An optional Notifier receives one event per relevant write
(participant_joined, progress_updated, swipe_recorded, session_status).
The realtime package provides the websocket implementation.
*/
package store

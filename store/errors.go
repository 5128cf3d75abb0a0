// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import "errors"

var (
	// ErrNotFound means the session/participant/item doesn't exist, or a
	// code lookup hit an expired or non-lobby session. Never auto-retried.
	ErrNotFound = errors.New("not found")

	// ErrConflict means the input collides with existing state (duplicate
	// session code, illegal status transition, duplicate catalog seed).
	// Retryable with a fresh input, not an indicator of transient failure.
	ErrConflict = errors.New("conflict")

	// ErrExhausted means code generation ran out of attempts. Fatal to the
	// current create attempt; callers surface it as "try again".
	ErrExhausted = errors.New("code generation attempts exhausted")
)

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"crypto/rand"
	"fmt"
)

// codeAlphabet excludes visually ambiguous characters (I, O, 0, 1) so codes
// survive being read aloud or typed from a couch. 32 symbols.
const codeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the length of a session code.
const CodeLength = 6

const maxCodeAttempts = 3

// randomCode draws a 6-character code from the alphabet using crypto/rand.
// len(codeAlphabet) divides 256, so byte modulo is uniform.
func randomCode() string {
	b := make([]byte, CodeLength)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand only fails if the OS entropy source is broken;
		// a panic here beats handing out predictable codes.
		panic(fmt.Sprintf("failed to read random bytes: %v", err))
	}
	for i := range b {
		b[i] = codeAlphabet[int(b[i])%len(codeAlphabet)]
	}
	return string(b)
}

// GenerateUniqueCode returns a session code that doesn't collide with any
// live lobby session. Retries up to 3 times on collision, then returns
// ErrExhausted.
func (s *Store) GenerateUniqueCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		code := s.pickCode()

		var taken bool
		err := s.db.QueryRowContext(ctx, `
			SELECT EXISTS(
				SELECT 1 FROM sessions
				WHERE code = $1 AND status = 'lobby' AND expires_at > $2
			)
		`, code, s.now()).Scan(&taken)
		if err != nil {
			return "", fmt.Errorf("failed to check code collision: %w", err)
		}

		if !taken {
			return code, nil
		}
	}
	return "", ErrExhausted
}

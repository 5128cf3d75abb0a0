// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flickpick/server/realtime"
	"github.com/flickpick/server/store"
	"github.com/flickpick/server/testutil"
)

func newTestRouter(t *testing.T) *http.ServeMux {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	hub := realtime.NewHub()
	return NewRouter(conn, st, hub, nil)
}

func TestHealthEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	mux := newTestRouter(t)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	expected := "flickpick API v1"
	if w.Body.String() != expected {
		t.Errorf("Expected body '%s', got '%s'", expected, w.Body.String())
	}
}

func TestRouteExistence(t *testing.T) {
	mux := newTestRouter(t)

	// Test that routes respond (handler is invoked)
	// Note: Some routes return 404 when data doesn't exist, which is valid handler behavior
	testCases := []struct {
		method string
		path   string
	}{
		// Health and root
		{"GET", "/health"},
		{"GET", "/"},

		// Session routes (these use {id}/{code} params and may return 400/404)
		{"POST", "/sessions"},
		{"GET", "/sessions/code/ABCDEF"},
		{"GET", "/sessions/test-id"},
		{"POST", "/sessions/test-id/join"},
		{"GET", "/sessions/test-id/participants"},
		{"POST", "/sessions/test-id/start"},
		{"POST", "/sessions/test-id/finalize"},

		// Catalog routes
		{"POST", "/sessions/test-id/catalog"},
		{"POST", "/sessions/test-id/catalog/build"},
		{"GET", "/sessions/test-id/catalog"},

		// Swipe and match routes
		{"POST", "/sessions/test-id/swipes"},
		{"PUT", "/participants/test-id/progress"},
		{"GET", "/sessions/test-id/matches"},

		// Device routes
		{"POST", "/devices/register"},
		{"GET", "/devices/me"},
		{"GET", "/devices/history"},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			// Route should be matched (not 405 Method Not Allowed for these specific routes)
			// 400, 404, 409 are all valid responses depending on handler logic
			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route %s %s returned 405, expected route handler to exist", tc.method, tc.path)
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestRouter(t)

	// Test that unsupported methods on defined routes return 405
	testCases := []struct {
		method string
		path   string
	}{
		{"POST", "/health"},                     // Only GET is defined
		{"DELETE", "/sessions/test-id/matches"}, // Only GET is defined
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != http.StatusMethodNotAllowed {
				t.Errorf("Expected 405 for %s %s, got %d", tc.method, tc.path, w.Code)
			}
		})
	}
}

func TestPathParameterExtraction(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)
	hub := realtime.NewHub()

	// Create a test session to verify path parameters work
	sessionID := testutil.CreateTestSession(t, conn, "ROUTED", "lobby")

	mux := NewRouter(conn, st, hub, nil)

	// Test that {id} parameter extracts correctly
	t.Run("session ID extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/sessions/"+sessionID, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for existing session, got %d. Body: %s", w.Code, w.Body.String())
		}
	})

	// Test that {code} parameter extracts correctly
	t.Run("join code extraction", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/sessions/code/ROUTED", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected 200 for existing code, got %d. Body: %s", w.Code, w.Body.String())
		}
	})
}

func TestSpecificMethodRouting(t *testing.T) {
	mux := newTestRouter(t)

	// Test that method-specific routes are enforced
	testCases := []struct {
		name           string
		method         string
		path           string
		expectedStatus int
	}{
		// POST /health doesn't exist, should return 405
		{"POST to health endpoint", "POST", "/health", http.StatusMethodNotAllowed},
		// PUT /sessions/test/swipes doesn't exist, POST does
		{"PUT to swipes endpoint", "PUT", "/sessions/test-id/swipes", http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(tc.method, tc.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected %d for %s %s, got %d", tc.expectedStatus, tc.method, tc.path, w.Code)
			}
		})
	}
}

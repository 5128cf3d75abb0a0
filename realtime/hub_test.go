// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/flickpick/server/models"
)

// dialTestHub serves a hub over httptest and returns a connected client.
func dialTestHub(t *testing.T, hub *Hub, sessionID string) *websocket.Conn {
	t.Helper()

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		hub.AddConnection(sessionID, conn)
	}))
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	client, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	t.Cleanup(func() { client.Close() })

	// Wait for the server side to register.
	deadline := time.Now().Add(time.Second)
	for hub.SubscriberCount(sessionID) == 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscriber never registered")
		}
		time.Sleep(5 * time.Millisecond)
	}

	return client
}

func TestHub_Broadcast(t *testing.T) {
	hub := NewHub()
	client := dialTestHub(t, hub, "session-1")

	hub.Broadcast("session-1", Message{
		Type: models.EventSwipeRecorded,
		Data: map[string]string{"swipe_id": "s1"},
	})

	client.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}

	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if msg.Type != models.EventSwipeRecorded {
		t.Errorf("Expected %s, got %s", models.EventSwipeRecorded, msg.Type)
	}
}

func TestHub_BroadcastIsScopedToSession(t *testing.T) {
	hub := NewHub()
	client := dialTestHub(t, hub, "session-a")

	// A message for another session must not reach this subscriber.
	hub.Broadcast("session-b", Message{Type: models.EventSessionStatus})

	client.SetReadDeadline(time.Now().Add(200 * time.Millisecond))
	if _, _, err := client.ReadMessage(); err == nil {
		t.Error("Expected read timeout, got a message")
	}
}

func TestHub_RemoveConnection(t *testing.T) {
	hub := NewHub()
	client := dialTestHub(t, hub, "session-1")
	_ = client

	if n := hub.SubscriberCount("session-1"); n != 1 {
		t.Fatalf("Expected 1 subscriber, got %d", n)
	}

	// Removing the only subscriber empties the session entry.
	hub.mu.Lock()
	var conn *websocket.Conn
	for c := range hub.sessions["session-1"] {
		conn = c
	}
	hub.mu.Unlock()

	hub.RemoveConnection("session-1", conn)

	if n := hub.SubscriberCount("session-1"); n != 0 {
		t.Errorf("Expected 0 subscribers, got %d", n)
	}
}

func TestRelay_SwipeKicksMatchPush(t *testing.T) {
	hub := NewHub()
	client := dialTestHub(t, hub, "session-1")

	var loads atomic.Int32
	relay := NewRelay(hub, 10*time.Millisecond, func(sessionID string) ([]models.Match, error) {
		loads.Add(1)
		return []models.Match{{Title: "The Pick", MatchPercentage: 1.0}}, nil
	})
	defer relay.Stop()

	// Three rapid swipes: three swipe events, one debounced match push.
	for i := 0; i < 3; i++ {
		relay.Notify("session-1", models.EventSwipeRecorded, nil)
	}

	var types []string
	client.SetReadDeadline(time.Now().Add(time.Second))
	for len(types) < 4 {
		_, raw, err := client.ReadMessage()
		if err != nil {
			t.Fatalf("read failed after %v: %v", types, err)
		}
		var msg Message
		if err := json.Unmarshal(raw, &msg); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		types = append(types, msg.Type)
	}

	for _, typ := range types[:3] {
		if typ != models.EventSwipeRecorded {
			t.Errorf("Expected swipe_recorded, got %s", typ)
		}
	}
	if types[3] != models.EventMatchesUpdated {
		t.Errorf("Expected matches_updated last, got %s", types[3])
	}
	if n := loads.Load(); n != 1 {
		t.Errorf("Expected 1 match load for the burst, got %d", n)
	}
}

func TestRelay_NonSwipeEventsPassThrough(t *testing.T) {
	hub := NewHub()
	client := dialTestHub(t, hub, "session-1")

	relay := NewRelay(hub, 10*time.Millisecond, func(string) ([]models.Match, error) {
		t.Error("match loader must not run for non-swipe events")
		return nil, nil
	})
	defer relay.Stop()

	relay.Notify("session-1", models.EventParticipantJoined, map[string]string{"nickname": "Ana"})

	client.SetReadDeadline(time.Now().Add(time.Second))
	_, raw, err := client.ReadMessage()
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if msg.Type != models.EventParticipantJoined {
		t.Errorf("Expected participant_joined, got %s", msg.Type)
	}

	// Give a stray debounce a chance to fire before the loader assertion ages out.
	time.Sleep(50 * time.Millisecond)
}

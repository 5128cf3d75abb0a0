// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flickpick/server/models"
	"github.com/flickpick/server/store"
	"github.com/flickpick/server/testutil"
)

// TestFullSessionFlow walks the whole lifecycle through the HTTP handlers:
// create, lookup, join, seed, start, swipe, match, finalize, history.
func TestFullSessionFlow(t *testing.T) {
	conn := testutil.SetupTestDB(t)
	st := store.New(conn)

	sessions := NewSessionHandler(st)
	catalog := NewCatalogHandler(st, nil)
	swipes := NewSwipeHandler(st)
	devices := NewDeviceHandler(conn, st)

	// Host creates the session.
	req := testutil.MakeRequest("POST", "/sessions", models.CreateSessionRequest{
		Nickname:          "Host",
		StreamingServices: []string{"netflix"},
	}, map[string]string{"X-Device-UUID": "host-device"})
	w := httptest.NewRecorder()
	sessions.CreateSession(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var created models.CreateSessionResponse
	testutil.AssertJSON(t, w, &created)
	sessionID := created.Session.ID

	// A friend finds it by code and joins.
	req = testutil.MakeRequest("GET", "/sessions/code/"+created.Session.Code, nil, nil)
	req.SetPathValue("code", created.Session.Code)
	w = httptest.NewRecorder()
	sessions.LookupByCode(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	req = testutil.MakeRequest("POST", "/sessions/"+sessionID+"/join", models.JoinSessionRequest{
		Nickname: "Friend",
	}, map[string]string{"X-Device-UUID": "friend-device"})
	req.SetPathValue("id", sessionID)
	w = httptest.NewRecorder()
	sessions.Join(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	var joined models.JoinSessionResponse
	testutil.AssertJSON(t, w, &joined)

	// Host seeds the catalog.
	req = testutil.MakeRequest("POST", "/sessions/"+sessionID+"/catalog", models.SeedCatalogRequest{
		Items: []models.CatalogItem{
			{TmdbID: 1, Title: "The Pick", TmdbRating: 8.2},
			{TmdbID: 2, Title: "The Other One", TmdbRating: 6.4},
		},
	}, nil)
	req.SetPathValue("id", sessionID)
	w = httptest.NewRecorder()
	catalog.Seed(w, req)
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Host starts swiping.
	req = testutil.MakeRequest("POST", "/sessions/"+sessionID+"/start", nil, nil)
	req.SetPathValue("id", sessionID)
	w = httptest.NewRecorder()
	sessions.Start(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// Fetch the catalog to get item IDs.
	req = testutil.MakeRequest("GET", "/sessions/"+sessionID+"/catalog", nil, nil)
	req.SetPathValue("id", sessionID)
	w = httptest.NewRecorder()
	catalog.List(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var deck []models.CatalogItem
	testutil.AssertJSON(t, w, &deck)
	if len(deck) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(deck))
	}

	// Both swipe right on the first item; only the host likes the second.
	for _, s := range []models.RecordSwipeRequest{
		{ParticipantID: created.Participant.ID, CatalogItemID: deck[0].ID, Direction: "right", TimeOnCardMs: 800},
		{ParticipantID: joined.Participant.ID, CatalogItemID: deck[0].ID, Direction: "right", TimeOnCardMs: 1200},
		{ParticipantID: created.Participant.ID, CatalogItemID: deck[1].ID, Direction: "right", TimeOnCardMs: 500},
		{ParticipantID: joined.Participant.ID, CatalogItemID: deck[1].ID, Direction: "left", TimeOnCardMs: 3000},
	} {
		req = testutil.MakeRequest("POST", "/sessions/"+sessionID+"/swipes", s, nil)
		req.SetPathValue("id", sessionID)
		w = httptest.NewRecorder()
		swipes.Record(w, req)
		testutil.AssertStatus(t, w, http.StatusCreated)
	}

	// Matches: the unanimous item is perfect, the split one soft.
	req = testutil.MakeRequest("GET", "/sessions/"+sessionID+"/matches", nil, nil)
	req.SetPathValue("id", sessionID)
	w = httptest.NewRecorder()
	swipes.Matches(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var matchResp models.MatchesResponse
	testutil.AssertJSON(t, w, &matchResp)
	if len(matchResp.Matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d", len(matchResp.Matches))
	}
	if matchResp.Matches[0].Title != "The Pick" || matchResp.Matches[0].Tier != models.TierPerfect {
		t.Errorf("Expected The Pick as perfect match, got %+v", matchResp.Matches[0])
	}
	if matchResp.Matches[1].Tier != models.TierSoft {
		t.Errorf("Expected soft second match, got %s", matchResp.Matches[1].Tier)
	}

	// Host finalizes on the winner.
	req = testutil.MakeRequest("POST", "/sessions/"+sessionID+"/finalize", models.FinalizeSessionRequest{
		SelectedMatchID: deck[0].ID,
	}, nil)
	req.SetPathValue("id", sessionID)
	w = httptest.NewRecorder()
	sessions.Finalize(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	// The session shows up in the friend's history with the winner on top.
	req = testutil.MakeRequest("GET", "/devices/history", nil,
		map[string]string{"X-Device-UUID": "friend-device"})
	w = httptest.NewRecorder()
	devices.History(w, req)
	testutil.AssertStatus(t, w, http.StatusOK)

	var history models.SessionHistoryResponse
	testutil.AssertJSON(t, w, &history)
	if len(history.Sessions) != 1 {
		t.Fatalf("Expected 1 history entry, got %d", len(history.Sessions))
	}
	entry := history.Sessions[0]
	if entry.Status != models.StatusCompleted {
		t.Errorf("Expected completed, got %s", entry.Status)
	}
	if entry.TopMatch == nil || entry.TopMatch.Title != "The Pick" {
		t.Errorf("Expected The Pick in history, got %+v", entry.TopMatch)
	}

	// Nobody can join a completed session.
	req = testutil.MakeRequest("POST", "/sessions/"+sessionID+"/join", models.JoinSessionRequest{},
		map[string]string{"X-Device-UUID": "late-device"})
	req.SetPathValue("id", sessionID)
	w = httptest.NewRecorder()
	sessions.Join(w, req)
	testutil.AssertStatus(t, w, http.StatusConflict)
}

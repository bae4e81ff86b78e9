// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/photo-faceoff/auth"
	"github.com/danielhkuo/photo-faceoff/cliparse"
	"github.com/danielhkuo/photo-faceoff/db"
)

// SetupTestDB creates a fresh in-memory sqlite database with the full
// schema. Each call gets its own named shared-cache database so tests
// never see each other's rows.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name, err := auth.GenerateID(8)
	if err != nil {
		t.Fatalf("Failed to generate test database name: %v", err)
	}

	conn, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	// One connection keeps sqlite's write serialization trivial and keeps
	// the in-memory database alive for the test's duration.
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3319,
		DatabaseURL:  ":memory:",
		DatabaseType: "sqlite",
		KFactor:      cliparse.DefaultKFactor,
		AnonQuota:    cliparse.DefaultAnonQuota,
		MinVotes:     cliparse.DefaultMinVotes,
		IPHashSalt:   "test-ip-salt",
	}
}

// CreateTestGallery inserts a gallery and returns its ID
func CreateTestGallery(t *testing.T, conn *sql.DB, handle string, public bool) string {
	t.Helper()

	galleryID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO gallery (id, handle, public, created_at)
		VALUES ($1, $2, $3, $4)
	`, galleryID, handle, public, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test gallery: %v", err)
	}

	return galleryID
}

// AddTestItem inserts an active item at the default rating and returns its ID
func AddTestItem(t *testing.T, conn *sql.DB, galleryID, subject string) string {
	t.Helper()

	itemID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO item (id, gallery_id, subject, media_url, active, rating, win_count, loss_count, created_at)
		VALUES ($1, $2, $3, $4, TRUE, $5, 0, 0, $6)
	`, itemID, galleryID, subject, "https://media.test/"+itemID+".jpg", cliparse.DefaultStartScore, time.Now())
	if err != nil {
		t.Fatalf("Failed to create test item: %v", err)
	}

	return itemID
}

// SetItemStats overwrites an item's rating and personal counters.
// Fixture-only shortcut; production code never writes counters directly.
func SetItemStats(t *testing.T, conn *sql.DB, itemID string, rating float64, wins, losses int) {
	t.Helper()

	_, err := conn.Exec(`
		UPDATE item SET rating = $1, win_count = $2, loss_count = $3 WHERE id = $4
	`, rating, wins, losses, itemID)
	if err != nil {
		t.Fatalf("Failed to set item stats: %v", err)
	}
}

// SetCommunityStats overwrites an item's community ledger row
func SetCommunityStats(t *testing.T, conn *sql.DB, itemID string, wins, losses int) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO community_stat (item_id, wins, losses)
		VALUES ($1, $2, $3)
		ON CONFLICT (item_id) DO UPDATE SET wins = $4, losses = $5
	`, itemID, wins, losses, wins, losses)
	if err != nil {
		t.Fatalf("Failed to set community stats: %v", err)
	}
}

// DeactivateTestItem soft-deletes an item
func DeactivateTestItem(t *testing.T, conn *sql.DB, itemID string) {
	t.Helper()

	_, err := conn.Exec(`UPDATE item SET active = FALSE WHERE id = $1`, itemID)
	if err != nil {
		t.Fatalf("Failed to deactivate test item: %v", err)
	}
}

// InsertTestVote appends a vote record with an explicit timestamp
func InsertTestVote(t *testing.T, conn *sql.DB, winnerID, loserID, scope string, at time.Time) {
	t.Helper()

	_, err := conn.Exec(`
		INSERT INTO vote (id, winner_id, loser_id, scope, voter_id, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, NULL, NULL, $5)
	`, uuid.NewString(), winnerID, loserID, scope, at)
	if err != nil {
		t.Fatalf("Failed to insert test vote: %v", err)
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/danielhkuo/standup-spinner/cliparse"
	"github.com/danielhkuo/standup-spinner/db"
	"github.com/danielhkuo/standup-spinner/ident"
)

// SetupTestDB creates a fresh in-memory SQLite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(context.Background(), db.TypeSQLite, ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:           3318,
		DatabaseType:   db.TypeSQLite,
		DatabaseURL:    ":memory:",
		StatsDays:      30,
		AllowedOrigins: []string{"*"},
		LogFormat:      "text",
	}
}

// CreateTestMember inserts an active member and returns its ID
func CreateTestMember(t *testing.T, conn *sql.DB, name, emoji string) string {
	t.Helper()

	id := ident.NewMemberID()
	_, err := conn.Exec(`
		INSERT INTO team_member (id, name, emoji, is_active, created_at)
		VALUES ($1, $2, $3, TRUE, $4)
	`, id, name, emoji, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test member: %v", err)
	}

	// Keep registration order distinct for ORDER BY created_at
	time.Sleep(time.Millisecond)

	return id
}

// DeactivateTestMember flips a member's active flag off
func DeactivateTestMember(t *testing.T, conn *sql.DB, id string) {
	t.Helper()

	if _, err := conn.Exec(`UPDATE team_member SET is_active = FALSE WHERE id = $1`, id); err != nil {
		t.Fatalf("Failed to deactivate test member: %v", err)
	}
}

// RecordTestSession writes one session with positions 1..len(memberIDs)
// in the given order and returns the session ID
func RecordTestSession(t *testing.T, conn *sql.DB, memberIDs []string, names []string, createdAt time.Time) string {
	t.Helper()

	sessionID, _ := ident.UUIDGenerator{}.NewSessionID()
	for i, memberID := range memberIDs {
		recordID, _ := ident.GenerateID(16)
		_, err := conn.Exec(`
			INSERT INTO standup_order (id, session_id, member_id, member_name, position, twist_type, created_at)
			VALUES ($1, $2, $3, $4, $5, 'none', $6)
		`, recordID, sessionID, memberID, names[i], i+1, createdAt.UTC())
		if err != nil {
			t.Fatalf("Failed to record test session: %v", err)
		}
	}

	return sessionID
}

// CountRows returns the number of rows in a table
func CountRows(t *testing.T, conn *sql.DB, table string) int {
	t.Helper()

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM ` + table).Scan(&count); err != nil {
		t.Fatalf("Failed to count %s: %v", table, err)
	}
	return count
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

// MakeFormRequest creates a form-encoded HTTP test request
func MakeFormRequest(method, path string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
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

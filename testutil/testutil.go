// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"github.com/asbru5y22bca28/rupesh/auth"
	"github.com/asbru5y22bca28/rupesh/cliparse"
	"github.com/asbru5y22bca28/rupesh/db"
	"github.com/asbru5y22bca28/rupesh/models"
	"github.com/asbru5y22bca28/rupesh/session"
)

// SetupTestDB creates a fresh sqlite database with the full schema.
// Each test gets its own file under t.TempDir, so tests are independent
// and nothing needs an external database server.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	// WAL plus a generous busy timeout so the concurrency tests contend on
	// row state, not on the sqlite writer lock
	dsn := "file:" + path + "?_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// GetTestConfig returns a standard test configuration.
// bcrypt runs at MinCost so the suite stays fast.
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          3000,
		DatabaseType:  "sqlite",
		SessionTTL:    2 * time.Hour,
		BcryptCost:    bcrypt.MinCost,
		AdminSetupKey: "test-setup-key",
	}
}

// CreateTestVoter inserts a voter and returns its ID
func CreateTestVoter(t *testing.T, conn *sql.DB, cfg cliparse.Config, studentID, name, password string, isAdmin bool) string {
	t.Helper()

	hash, err := auth.HashPassword(password, cfg.BcryptCost)
	if err != nil {
		t.Fatalf("Failed to hash test password: %v", err)
	}

	voterID := uuid.NewString()
	_, err = conn.Exec(`
		INSERT INTO voter (id, student_id, name, password_hash, is_admin, has_voted, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, $6)
	`, voterID, studentID, name, hash, isAdmin, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return voterID
}

// CreateTestCandidate inserts a candidate with zero votes and returns its ID
func CreateTestCandidate(t *testing.T, conn *sql.DB, name, description string) string {
	t.Helper()

	candidateID := uuid.NewString()
	_, err := conn.Exec(`
		INSERT INTO candidate (id, name, description, votes, created_at)
		VALUES ($1, $2, $3, 0, $4)
	`, candidateID, name, description, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test candidate: %v", err)
	}

	return candidateID
}

// CreateTestSession opens a session for an existing voter and returns the
// cookie a logged-in browser would send
func CreateTestSession(t *testing.T, conn *sql.DB, cfg cliparse.Config, voterID string) *http.Cookie {
	t.Helper()

	var voter models.Voter
	err := conn.QueryRow(`
		SELECT id, student_id, name, is_admin FROM voter WHERE id = $1
	`, voterID).Scan(&voter.ID, &voter.StudentID, &voter.Name, &voter.IsAdmin)
	if err != nil {
		t.Fatalf("Failed to load voter for session: %v", err)
	}

	token, err := session.NewStore(conn, cfg.SessionTTL).Create(voter)
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return &http.Cookie{Name: session.CookieName, Value: token}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, cookies ...*http.Cookie) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for _, c := range cookies {
		req.AddCookie(c)
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

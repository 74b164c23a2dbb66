// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/asbru5y22bca28/rupesh/auth"
	"github.com/asbru5y22bca28/rupesh/models"
)

var (
	ErrInvalidSession = errors.New("invalid session token")
	ErrExpiredSession = errors.New("session expired")
)

// CookieName is the cookie carrying the opaque session token
const CookieName = "vote_session"

// Session is the server-side state behind one login token
type Session struct {
	Token     string
	VoterID   string
	StudentID string
	Name      string
	IsAdmin   bool
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Store keeps sessions in the database, keyed by token, with an absolute
// expiry window. It is injected into middleware and handlers so tests can
// run it against their own database.
type Store struct {
	db  *sql.DB
	ttl time.Duration
}

func NewStore(db *sql.DB, ttl time.Duration) *Store {
	return &Store{db: db, ttl: ttl}
}

// TTL returns the absolute session lifetime
func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Create opens a session for an authenticated voter and returns its token
func (s *Store) Create(v models.Voter) (string, error) {
	token, err := auth.NewSessionToken()
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	_, err = s.db.Exec(`
		INSERT INTO session (token, voter_id, student_id, voter_name, is_admin, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, token, v.ID, v.StudentID, v.Name, v.IsAdmin, now, now.Add(s.ttl))
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	return token, nil
}

// Resolve maps a token back to its session. Returns ErrInvalidSession for
// unknown tokens and ErrExpiredSession for sessions past their window;
// expired rows are removed on the way out.
func (s *Store) Resolve(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrInvalidSession
	}

	var sess Session
	err := s.db.QueryRow(`
		SELECT token, voter_id, student_id, voter_name, is_admin, created_at, expires_at
		FROM session
		WHERE token = $1
	`, token).Scan(
		&sess.Token, &sess.VoterID, &sess.StudentID, &sess.Name,
		&sess.IsAdmin, &sess.CreatedAt, &sess.ExpiresAt,
	)

	if err == sql.ErrNoRows {
		return Session{}, ErrInvalidSession
	}
	if err != nil {
		return Session{}, fmt.Errorf("failed to resolve session: %w", err)
	}

	if time.Now().After(sess.ExpiresAt) {
		// Lazy cleanup; PurgeExpired sweeps whatever nobody presents again
		_, _ = s.db.Exec(`DELETE FROM session WHERE token = $1`, token)
		return Session{}, ErrExpiredSession
	}

	return sess, nil
}

// Destroy invalidates a token. Destroying an unknown token is not an error.
func (s *Store) Destroy(token string) error {
	if token == "" {
		return nil
	}
	if _, err := s.db.Exec(`DELETE FROM session WHERE token = $1`, token); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// PurgeExpired removes every session past its expiry and reports how many.
// The expiry comparison happens in Go: sqlite stores timestamps as text, so
// comparing them inside SQL would not be portable across both stores.
func (s *Store) PurgeExpired() (int64, error) {
	rows, err := s.db.Query(`SELECT token, expires_at FROM session`)
	if err != nil {
		return 0, fmt.Errorf("failed to scan sessions: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	var stale []string
	for rows.Next() {
		var token string
		var expiresAt time.Time
		if err := rows.Scan(&token, &expiresAt); err != nil {
			return 0, fmt.Errorf("failed to scan session row: %w", err)
		}
		if now.After(expiresAt) {
			stale = append(stale, token)
		}
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("failed to scan sessions: %w", err)
	}

	var purged int64
	for _, token := range stale {
		res, err := s.db.Exec(`DELETE FROM session WHERE token = $1`, token)
		if err != nil {
			return purged, fmt.Errorf("failed to purge session: %w", err)
		}
		if n, err := res.RowsAffected(); err == nil {
			purged += n
		}
	}
	return purged, nil
}

// SetCookie attaches the session token to the response
func (s *Store) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// ClearCookie removes the session cookie from the client
func ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// TokenFromRequest extracts the session token, if any
func TokenFromRequest(r *http.Request) string {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

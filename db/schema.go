// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	"github.com/asbru5y22bca28/rupesh/cliparse"
)

// Open connects to the configured store. Drivers are registered by the
// importing binary (lib/pq for postgres, modernc.org/sqlite for sqlite).
func Open(cfg cliparse.Config) (*sql.DB, error) {
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}

	conn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", cfg.DatabaseType, err)
	}
	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL below is the common subset of postgres and sqlite: TEXT primary
// keys instead of serial columns, and timestamps always supplied by the
// application rather than NOW().
const schema = `
-- Registered voters (is_admin marks election admins)
CREATE TABLE IF NOT EXISTS voter (
    id TEXT PRIMARY KEY,
    student_id TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    is_admin BOOLEAN NOT NULL DEFAULT FALSE,
    has_voted BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_voter_student_id ON voter(student_id);

-- Candidates with their running tally
CREATE TABLE IF NOT EXISTS candidate (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    votes INTEGER NOT NULL DEFAULT 0 CHECK (votes >= 0),
    created_at TIMESTAMP NOT NULL
);

-- Append-only ballot ledger. Deliberately no UNIQUE(voter_id): the
-- one-vote rule is enforced by the voting coordinator, not the ledger.
CREATE TABLE IF NOT EXISTS vote_record (
    id TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voter(id),
    candidate_id TEXT NOT NULL REFERENCES candidate(id),
    voted_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_vote_record_voter_id ON vote_record(voter_id);
CREATE INDEX IF NOT EXISTS idx_vote_record_candidate_id ON vote_record(candidate_id);

-- Login sessions, keyed by opaque token
CREATE TABLE IF NOT EXISTS session (
    token TEXT PRIMARY KEY,
    voter_id TEXT NOT NULL REFERENCES voter(id) ON DELETE CASCADE,
    student_id TEXT NOT NULL,
    voter_name TEXT NOT NULL,
    is_admin BOOLEAN NOT NULL,
    created_at TIMESTAMP NOT NULL,
    expires_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_expires_at ON session(expires_at);
`

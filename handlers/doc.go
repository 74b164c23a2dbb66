// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the campus voting API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - AuthHandler: registration, login, logout, current-user lookup
  - CandidateHandler: public ballot listing and results
  - VoteHandler: vote casting via the voting coordinator
  - AdminHandler: candidate management, voter roll, stats, admin bootstrap

Handlers are created via constructor functions that accept *sql.DB plus the
session store and Config where needed:

	authHandler := handlers.NewAuthHandler(db, sessions, cfg)

# Voting Flow

Students authenticate with a session cookie:

	POST /register → Register (student_id, name, password)
	POST /login    → Login (sets the session cookie)
	POST /vote     → Cast (one vote per account, ever)
	GET  /results  → Results (votes descending)

Casting delegates to voting.Coordinator.Cast; this package only translates
its sentinel errors into statuses (403 AlreadyVoted, 404 unknown
candidate/voter).

# Admin Operations

Admin routes are wrapped in middleware.RequireAdmin. The create-admin
endpoint is the exception: it authenticates with the X-Setup-Key header
instead, and is disabled until ADMIN_SETUP_KEY is configured.
*/
package handlers

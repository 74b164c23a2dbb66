// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the campus voting API server.

Students register with their student ID, log in, cast a single vote for a
candidate, and view the running results. Admins manage the candidate list
and the voter roll.

# Starting the Server

With no configuration the server runs against a local sqlite file:

	go run main.go

Against postgres:

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run main.go

# Configuration

Optional settings (flags or env, .env files supported):

  - PORT (-p): server port (default: 3000)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - DATABASE_URL (-d): connection string or sqlite file (default: voting.db)
  - SESSION_TTL (-session-ttl): absolute session lifetime (default: 2h)
  - BCRYPT_COST (-bcrypt-cost): password hash cost
  - ADMIN_SETUP_KEY (-setup-key): enables POST /create-admin

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (auth, candidates, vote, admin)
  - voting: the atomic vote-casting coordinator
  - session: DB-backed login sessions with absolute expiry
  - router: route definitions using Go 1.22+ routing
  - middleware: session guards, CORS, logging, JSON helpers
  - models: request/response types
  - auth: password hashing and token generation
  - db: driver selection and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main

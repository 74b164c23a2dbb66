// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/asbru5y22bca28/rupesh/cliparse"
	"github.com/asbru5y22bca28/rupesh/handlers"
	"github.com/asbru5y22bca28/rupesh/middleware"
	"github.com/asbru5y22bca28/rupesh/session"
)

func NewRouter(db *sql.DB, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()

	sessions := session.NewStore(db, cfg.SessionTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(db, sessions, cfg)
	candidateHandler := handlers.NewCandidateHandler(db, cfg)
	voteHandler := handlers.NewVoteHandler(db)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Account lifecycle
	mux.HandleFunc("POST /register", middleware.WithLogging(authHandler.Register))
	mux.HandleFunc("POST /login", middleware.WithLogging(authHandler.Login))
	mux.HandleFunc("POST /logout", middleware.WithLogging(authHandler.Logout))
	mux.HandleFunc("GET /me", middleware.WithLogging(authHandler.Me))

	// Ballot and results (public)
	mux.HandleFunc("GET /candidates", middleware.WithLogging(candidateHandler.List))
	mux.HandleFunc("GET /results", middleware.WithLogging(candidateHandler.Results))

	// Voting (session required)
	mux.HandleFunc("POST /vote", middleware.WithLogging(middleware.RequireLogin(sessions, voteHandler.Cast)))

	// Admin operations (admin session required)
	mux.HandleFunc("POST /admin/candidates", middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.CreateCandidate)))
	mux.HandleFunc("GET /admin/users", middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.ListUsers)))
	mux.HandleFunc("GET /admin/stats", middleware.WithLogging(middleware.RequireAdmin(sessions, adminHandler.Stats)))

	// Admin bootstrap (setup key, not session)
	mux.HandleFunc("POST /create-admin", middleware.WithLogging(adminHandler.CreateAdmin))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("campus-vote API v1"))
	})

	return middleware.CORS(mux)
}

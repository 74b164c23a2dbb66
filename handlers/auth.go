// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/asbru5y22bca28/rupesh/auth"
	"github.com/asbru5y22bca28/rupesh/cliparse"
	"github.com/asbru5y22bca28/rupesh/middleware"
	"github.com/asbru5y22bca28/rupesh/models"
	"github.com/asbru5y22bca28/rupesh/session"
)

type AuthHandler struct {
	db       *sql.DB
	sessions *session.Store
	cfg      cliparse.Config
}

func NewAuthHandler(db *sql.DB, sessions *session.Store, cfg cliparse.Config) *AuthHandler {
	return &AuthHandler{db: db, sessions: sessions, cfg: cfg}
}

// isUniqueViolation matches the unique-constraint errors of both drivers
// (modernc.org/sqlite and lib/pq)
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed") ||
		strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.StudentID == "" || req.Name == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing fields")
		return
	}

	hash, err := auth.HashPassword(req.Password, h.cfg.BcryptCost)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	voterID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO voter (id, student_id, name, password_hash, is_admin, has_voted, created_at)
		VALUES ($1, $2, $3, $4, FALSE, FALSE, $5)
	`, voterID, req.StudentID, req.Name, hash, time.Now().UTC())

	if err != nil {
		// The UNIQUE constraint on student_id rejects duplicates atomically,
		// so a lost registration race leaves no partial row behind
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Student ID already exists")
			return
		}
		slog.Error("failed to insert voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register")
		return
	}

	slog.Info("voter registered", "voter_id", voterID)

	middleware.JSONResponse(w, http.StatusOK, models.RegisterResponse{
		Success: true,
		UserID:  voterID,
	})
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.StudentID == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Missing credentials")
		return
	}

	var voter models.Voter
	err := h.db.QueryRow(`
		SELECT id, student_id, name, password_hash, is_admin, has_voted
		FROM voter
		WHERE student_id = $1
	`, req.StudentID).Scan(
		&voter.ID, &voter.StudentID, &voter.Name,
		&voter.PasswordHash, &voter.IsAdmin, &voter.HasVoted,
	)

	if err == sql.ErrNoRows {
		// Burn a bcrypt compare so the unknown-account path costs the same
		// as a wrong password; the message is identical too.
		_ = auth.CheckPassword(auth.FallbackHash, req.Password)
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid credentials")
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err := auth.CheckPassword(voter.PasswordHash, req.Password); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid credentials")
		return
	}

	token, err := h.sessions.Create(voter)
	if err != nil {
		slog.Error("failed to create session", "error", err, "voter_id", voter.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log in")
		return
	}
	h.sessions.SetCookie(w, token)

	slog.Info("voter logged in", "voter_id", voter.ID, "is_admin", voter.IsAdmin)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		Success: true,
		IsAdmin: voter.IsAdmin,
	})
}

// Logout handles POST /logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := session.TokenFromRequest(r)
	if err := h.sessions.Destroy(token); err != nil {
		slog.Error("failed to destroy session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	session.ClearCookie(w)

	middleware.JSONResponse(w, http.StatusOK, models.LogoutResponse{Success: true})
}

// Me handles GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := h.sessions.Resolve(session.TokenFromRequest(r))
	if err != nil {
		if errors.Is(err, session.ErrInvalidSession) || errors.Is(err, session.ErrExpiredSession) {
			middleware.JSONResponse(w, http.StatusOK, models.MeResponse{LoggedIn: false})
			return
		}
		slog.Error("failed to resolve session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MeResponse{
		LoggedIn:  true,
		UserID:    sess.VoterID,
		StudentID: sess.StudentID,
		Name:      sess.Name,
		IsAdmin:   sess.IsAdmin,
	})
}

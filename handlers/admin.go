// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/asbru5y22bca28/rupesh/auth"
	"github.com/asbru5y22bca28/rupesh/cliparse"
	"github.com/asbru5y22bca28/rupesh/middleware"
	"github.com/asbru5y22bca28/rupesh/models"
)

type AdminHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewAdminHandler(db *sql.DB, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

// CreateCandidate handles POST /admin/candidates
// Role enforcement happens in middleware.RequireAdmin, not here
func (h *AdminHandler) CreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.CreateCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Name required")
		return
	}

	candidateID := uuid.NewString()
	_, err := h.db.Exec(`
		INSERT INTO candidate (id, name, description, votes, created_at)
		VALUES ($1, $2, $3, 0, $4)
	`, candidateID, req.Name, req.Description, time.Now().UTC())
	if err != nil {
		slog.Error("failed to insert candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create candidate")
		return
	}

	slog.Info("candidate created", "candidate_id", candidateID, "name", req.Name)

	middleware.JSONResponse(w, http.StatusOK, models.CreateCandidateResponse{
		Success: true,
		ID:      candidateID,
	})
}

// ListUsers handles GET /admin/users
func (h *AdminHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`
		SELECT id, student_id, name, is_admin, has_voted
		FROM voter
		ORDER BY created_at, id
	`)
	if err != nil {
		slog.Error("failed to query voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	users := []models.AdminUser{}
	for rows.Next() {
		var u models.AdminUser
		if err := rows.Scan(&u.ID, &u.StudentID, &u.Name, &u.IsAdmin, &u.HasVoted); err != nil {
			slog.Error("failed to scan voter", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		slog.Error("failed to read voters", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, users)
}

// Stats handles GET /admin/stats
func (h *AdminHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var stats models.StatsResponse

	err := h.db.QueryRow(`SELECT COUNT(*) FROM voter`).Scan(&stats.RegisteredVoters)
	if err == nil {
		err = h.db.QueryRow(`SELECT COUNT(*) FROM vote_record`).Scan(&stats.VotesCast)
	}
	if err == nil {
		err = h.db.QueryRow(`SELECT COUNT(*) FROM candidate`).Scan(&stats.Candidates)
	}
	if err != nil {
		slog.Error("failed to query stats", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	stats.Summary = fmt.Sprintf("%s of %s registered voters have cast a ballot",
		humanize.Comma(stats.VotesCast), humanize.Comma(stats.RegisteredVoters))

	middleware.JSONResponse(w, http.StatusOK, stats)
}

// CreateAdmin handles POST /create-admin
//
// The original deployment left admin creation wide open. Here it is gated
// by a setup key: the X-Setup-Key header must match ADMIN_SETUP_KEY, and
// when no key is configured the endpoint is disabled.
func (h *AdminHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	if err := auth.ValidateSetupKey(r.Header.Get("X-Setup-Key"), h.cfg.AdminSetupKey); err != nil {
		middleware.ErrorResponse(w, http.StatusForbidden, "Admin setup disabled or key invalid")
		return
	}

	var req models.CreateAdminRequest
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
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create admin")
		return
	}

	adminID := uuid.NewString()
	_, err = h.db.Exec(`
		INSERT INTO voter (id, student_id, name, password_hash, is_admin, has_voted, created_at)
		VALUES ($1, $2, $3, $4, TRUE, FALSE, $5)
	`, adminID, req.StudentID, req.Name, hash, time.Now().UTC())

	if err != nil {
		if isUniqueViolation(err) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Student ID already exists")
			return
		}
		slog.Error("failed to insert admin", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create admin")
		return
	}

	slog.Info("admin created", "voter_id", adminID)

	middleware.JSONResponse(w, http.StatusOK, models.CreateAdminResponse{
		Success: true,
		ID:      adminID,
	})
}

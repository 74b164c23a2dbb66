// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"

	"github.com/asbru5y22bca28/rupesh/middleware"
	"github.com/asbru5y22bca28/rupesh/models"
	"github.com/asbru5y22bca28/rupesh/voting"
)

type VoteHandler struct {
	votes *voting.Coordinator
}

func NewVoteHandler(db *sql.DB) *VoteHandler {
	return &VoteHandler{votes: voting.NewCoordinator(db)}
}

// Cast handles POST /vote
// The route is wrapped in middleware.RequireLogin, so the session is
// already resolved by the time this runs.
func (h *VoteHandler) Cast(w http.ResponseWriter, r *http.Request) {
	sess, ok := middleware.SessionFrom(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	var req models.VoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id required")
		return
	}

	record, err := h.votes.Cast(r.Context(), sess.VoterID, req.CandidateID)
	switch {
	case errors.Is(err, voting.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusForbidden, "You have already voted")
		return
	case errors.Is(err, voting.ErrUnknownCandidate):
		middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
		return
	case errors.Is(err, voting.ErrUnknownVoter):
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	case err != nil:
		// Rolled back; safe for the client to retry
		slog.Error("failed to cast vote", "error", err, "voter_id", sess.VoterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	slog.Info("vote cast", "record_id", record.ID, "candidate_id", record.CandidateID)

	middleware.JSONResponse(w, http.StatusOK, models.VoteResponse{Success: true})
}

// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/asbru5y22bca28/rupesh/models"
)

var (
	ErrAlreadyVoted     = errors.New("voter has already cast a ballot")
	ErrUnknownVoter     = errors.New("voter not found")
	ErrUnknownCandidate = errors.New("candidate not found")
)

// Coordinator makes casting a vote a single atomic operation across the
// voter flag, the candidate tally, and the ballot ledger.
type Coordinator struct {
	db *sql.DB
}

func NewCoordinator(db *sql.DB) *Coordinator {
	return &Coordinator{db: db}
}

// Cast records one vote for candidateID by voterID.
//
// The has_voted check and set are a single guarded UPDATE, so the store's
// row locking decides races: of two concurrent casts for the same voter,
// one commits the guard and the other sees zero rows and fails with
// ErrAlreadyVoted. The tally increment, the flag, and the ledger row all
// commit together or roll back together.
func (c *Coordinator) Cast(ctx context.Context, voterID, candidateID string) (models.VoteRecord, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to begin vote transaction: %w", err)
	}
	defer tx.Rollback()

	// Claim the voter's one vote. Zero rows means the voter is either
	// unknown or has voted already; tell the two apart afterwards.
	res, err := tx.ExecContext(ctx, `
		UPDATE voter SET has_voted = TRUE
		WHERE id = $1 AND has_voted = FALSE
	`, voterID)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to mark voter: %w", err)
	}
	claimed, err := res.RowsAffected()
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to read mark result: %w", err)
	}

	if claimed == 0 {
		var hasVoted bool
		err := tx.QueryRowContext(ctx, `SELECT has_voted FROM voter WHERE id = $1`, voterID).Scan(&hasVoted)
		if err == sql.ErrNoRows {
			return models.VoteRecord{}, ErrUnknownVoter
		}
		if err != nil {
			return models.VoteRecord{}, fmt.Errorf("failed to query voter: %w", err)
		}
		return models.VoteRecord{}, ErrAlreadyVoted
	}

	// Tally the candidate; zero rows means the candidate does not exist
	// and the rollback releases the voter's claim untouched.
	res, err = tx.ExecContext(ctx, `
		UPDATE candidate SET votes = votes + 1
		WHERE id = $1
	`, candidateID)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to increment tally: %w", err)
	}
	tallied, err := res.RowsAffected()
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to read tally result: %w", err)
	}
	if tallied == 0 {
		return models.VoteRecord{}, ErrUnknownCandidate
	}

	record := models.VoteRecord{
		ID:          uuid.NewString(),
		VoterID:     voterID,
		CandidateID: candidateID,
		VotedAt:     time.Now().UTC(),
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO vote_record (id, voter_id, candidate_id, voted_at)
		VALUES ($1, $2, $3, $4)
	`, record.ID, record.VoterID, record.CandidateID, record.VotedAt)
	if err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to append vote record: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.VoteRecord{}, fmt.Errorf("failed to commit vote: %w", err)
	}

	return record, nil
}

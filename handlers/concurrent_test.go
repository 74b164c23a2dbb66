// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/asbru5y22bca28/rupesh/middleware"
	"github.com/asbru5y22bca28/rupesh/models"
	"github.com/asbru5y22bca28/rupesh/session"
	"github.com/asbru5y22bca28/rupesh/testutil"
)

// TestConcurrentVotesSameVoter verifies the one-vote rule end to end: of N
// simultaneous requests carrying the same session, exactly one succeeds and
// the rest get 403
func TestConcurrentVotesSameVoter(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	store := session.NewStore(db, cfg.SessionTTL)
	guarded := middleware.RequireLogin(store, NewVoteHandler(db).Cast)

	voterID := testutil.CreateTestVoter(t, db, cfg, "S1", "Alice", "pw1", false)
	candidateID := testutil.CreateTestCandidate(t, db, "Cand A", "")
	cookie := testutil.CreateTestSession(t, db, cfg, voterID)

	numAttempts := 8
	var successCount, forbiddenCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numAttempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			w := httptest.NewRecorder()
			guarded(w, testutil.MakeRequest("POST", "/vote", models.VoteRequest{CandidateID: candidateID}, cookie))

			switch w.Code {
			case http.StatusOK:
				successCount.Add(1)
			case http.StatusForbidden:
				forbiddenCount.Add(1)
			default:
				t.Errorf("unexpected status %d: %s", w.Code, w.Body.String())
			}
		}()
	}

	wg.Wait()

	if successCount.Load() != 1 {
		t.Errorf("Expected exactly 1 successful vote, got %d", successCount.Load())
	}
	if forbiddenCount.Load() != int32(numAttempts-1) {
		t.Errorf("Expected %d forbidden votes, got %d", numAttempts-1, forbiddenCount.Load())
	}

	// Final tally is exactly one, and the ledger matches
	var votes, records int
	if err := db.QueryRow(`SELECT votes FROM candidate WHERE id = $1`, candidateID).Scan(&votes); err != nil {
		t.Fatalf("Failed to query tally: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM vote_record WHERE voter_id = $1`, voterID).Scan(&records); err != nil {
		t.Fatalf("Failed to count vote records: %v", err)
	}
	if votes != 1 || records != 1 {
		t.Errorf("tally = %d, ledger = %d, want 1 and 1", votes, records)
	}
}

// TestConcurrentVotesManyVoters verifies that unrelated voters don't
// interfere and the tally/ledger invariant holds afterwards
func TestConcurrentVotesManyVoters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	store := session.NewStore(db, cfg.SessionTTL)
	guarded := middleware.RequireLogin(store, NewVoteHandler(db).Cast)

	candidates := []string{
		testutil.CreateTestCandidate(t, db, "Cand A", ""),
		testutil.CreateTestCandidate(t, db, "Cand B", ""),
	}

	numVoters := 10
	cookies := make([]*http.Cookie, numVoters)
	for i := 0; i < numVoters; i++ {
		voterID := testutil.CreateTestVoter(t, db, cfg,
			"S"+string(rune('A'+i)), "Voter "+string(rune('A'+i)), "pw", false)
		cookies[i] = testutil.CreateTestSession(t, db, cfg, voterID)
	}

	var successCount atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < numVoters; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			w := httptest.NewRecorder()
			guarded(w, testutil.MakeRequest("POST", "/vote",
				models.VoteRequest{CandidateID: candidates[idx%2]}, cookies[idx]))

			if w.Code == http.StatusOK {
				successCount.Add(1)
			} else {
				t.Errorf("voter %d got status %d: %s", idx, w.Code, w.Body.String())
			}
		}(i)
	}

	wg.Wait()

	if int(successCount.Load()) != numVoters {
		t.Errorf("Expected %d successful votes, got %d", numVoters, successCount.Load())
	}

	var total, records int
	if err := db.QueryRow(`SELECT SUM(votes) FROM candidate`).Scan(&total); err != nil {
		t.Fatalf("Failed to sum tallies: %v", err)
	}
	if err := db.QueryRow(`SELECT COUNT(*) FROM vote_record`).Scan(&records); err != nil {
		t.Fatalf("Failed to count vote records: %v", err)
	}
	if total != numVoters || records != numVoters {
		t.Errorf("tally sum = %d, ledger = %d, want %d", total, records, numVoters)
	}
}

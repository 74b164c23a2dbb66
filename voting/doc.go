// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package voting implements the vote-casting transaction coordinator.

Cast is the only code path that writes voter.has_voted, candidate.votes, or
the vote_record ledger. All three writes happen in one database transaction:

	record, err := coordinator.Cast(ctx, voterID, candidateID)

Failure modes map to sentinel errors:

  - ErrAlreadyVoted: the voter's ballot was already cast
  - ErrUnknownVoter: no such voter row
  - ErrUnknownCandidate: no such candidate; the transaction rolls back and
    the voter keeps their vote

# Concurrency

The naive version of this operation (read has_voted, then write three rows)
double-counts when two requests for the same voter interleave between the
read and the writes. Cast avoids the window by claiming the vote with

	UPDATE voter SET has_voted = TRUE WHERE id = $1 AND has_voted = FALSE

as the transaction's first statement. Postgres serializes the racing
transactions on the voter's row lock and re-evaluates the predicate after
the winner commits; sqlite serializes them on its writer lock. Either way,
exactly one of N concurrent casts for the same voter succeeds and the rest
report ErrAlreadyVoted.

Invariants after any committed transaction:

  - has_voted = TRUE iff exactly one vote_record references the voter
  - SUM(candidate.votes) equals COUNT(vote_record)
*/
package voting

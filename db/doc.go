// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db opens the relational store and bootstraps its schema.

# Tables

  - voter: student accounts with password hash, admin flag, has_voted flag
  - candidate: ballot entries with a running vote tally
  - vote_record: append-only ledger, one row per cast ballot
  - session: server-side login sessions keyed by opaque token

# Unique constraints

  - voter.student_id (unique)
  - primary keys on all tables

The ledger carries no UNIQUE(voter_id) constraint on purpose: the
one-vote-per-voter rule is the voting coordinator's job, and the ledger
records whatever the coordinator committed.

# Dialects

The same DDL string runs on both postgres (lib/pq) and sqlite
(modernc.org/sqlite): TEXT primary keys, application-supplied timestamps,
$N placeholders in all queries.
*/
package db

package models

import "time"

// Request types

type RegisterRequest struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	StudentID string `json:"student_id"`
	Password  string `json:"password"`
}

type VoteRequest struct {
	CandidateID string `json:"candidate_id"`
}

type CreateCandidateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// CreateAdminRequest matches RegisterRequest; the setup key travels in the
// X-Setup-Key header, never in the body.
type CreateAdminRequest struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Password  string `json:"password"`
}

// Response types

type RegisterResponse struct {
	Success bool   `json:"success"`
	UserID  string `json:"userId"`
}

type LoginResponse struct {
	Success bool `json:"success"`
	IsAdmin bool `json:"isAdmin"`
}

type LogoutResponse struct {
	Success bool `json:"success"`
}

type MeResponse struct {
	LoggedIn  bool   `json:"loggedIn"`
	UserID    string `json:"userId,omitempty"`
	StudentID string `json:"studentId,omitempty"`
	Name      string `json:"name,omitempty"`
	IsAdmin   bool   `json:"isAdmin"`
}

type VoteResponse struct {
	Success bool `json:"success"`
}

type CreateCandidateResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

type CreateAdminResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
}

// ResultRow is one line of the public tally, ordered by votes descending.
type ResultRow struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Votes int    `json:"votes"`
}

// AdminUser is the voter-roll view exposed to admins. Field names are
// snake_case to match the admin frontend.
type AdminUser struct {
	ID        string `json:"id"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	IsAdmin   bool   `json:"is_admin"`
	HasVoted  bool   `json:"has_voted"`
}

type StatsResponse struct {
	RegisteredVoters int64  `json:"registered_voters"`
	VotesCast        int64  `json:"votes_cast"`
	Candidates       int64  `json:"candidates"`
	Summary          string `json:"summary"`
}

// Domain types

type Voter struct {
	ID           string    `json:"id"`
	StudentID    string    `json:"student_id"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	IsAdmin      bool      `json:"is_admin"`
	HasVoted     bool      `json:"has_voted"`
	CreatedAt    time.Time `json:"created_at"`
}

type Candidate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Votes       int    `json:"votes"`
}

// VoteRecord is one row of the append-only ballot ledger.
type VoteRecord struct {
	ID          string    `json:"id"`
	VoterID     string    `json:"voter_id"`
	CandidateID string    `json:"candidate_id"`
	VotedAt     time.Time `json:"voted_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

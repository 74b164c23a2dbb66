// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidSetupKey = errors.New("invalid setup key")
)

// FallbackHash is a bcrypt hash compared against when a login names an
// unknown student ID. Comparing against it costs the same as a real check,
// so the response latency does not reveal whether the account exists.
const FallbackHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword creates a salted one-way hash of the password.
// A cost of 0 or less selects the bcrypt default.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
// Returns a non-nil error on mismatch.
func CheckPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// NewSessionToken creates a random opaque token for a login session
func NewSessionToken() (string, error) {
	b := make([]byte, 32) // 32 bytes = 256 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// ValidateSetupKey checks the admin bootstrap key in constant time.
// An empty expected key always fails: the endpoint is disabled until the
// operator configures one.
func ValidateSetupKey(provided, expected string) error {
	if expected == "" {
		return ErrInvalidSetupKey
	}
	if !hmac.Equal([]byte(provided), []byte(expected)) {
		return ErrInvalidSetupKey
	}
	return nil
}

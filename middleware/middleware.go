// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/asbru5y22bca28/rupesh/models"
	"github.com/asbru5y22bca28/rupesh/session"
)

type contextKey int

const sessionKey contextKey = iota

// WithLogging wraps a handler with request logging
func WithLogging(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()

		// Log request
		slog.Info("request started",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"remote", r.RemoteAddr,
		)

		// Call the next handler
		next(w, r)

		// Log completion
		duration := time.Since(start)
		slog.Info("request completed",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", duration.Milliseconds(),
		)
	}
}

// RequireLogin resolves the session cookie before calling next and rejects
// the request with 401 when there is no live session. The session is stored
// in the request context; handlers read it back with SessionFrom.
func RequireLogin(store *session.Store, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, err := store.Resolve(session.TokenFromRequest(r))
		if err != nil {
			if errors.Is(err, session.ErrInvalidSession) || errors.Is(err, session.ErrExpiredSession) {
				ErrorResponse(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			slog.Error("failed to resolve session", "error", err)
			ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	}
}

// RequireAdmin is RequireLogin plus an admin-role check (403 otherwise)
func RequireAdmin(store *session.Store, next http.HandlerFunc) http.HandlerFunc {
	return RequireLogin(store, func(w http.ResponseWriter, r *http.Request) {
		sess, ok := SessionFrom(r)
		if !ok || !sess.IsAdmin {
			ErrorResponse(w, http.StatusForbidden, "Admin only")
			return
		}
		next(w, r)
	})
}

// SessionFrom returns the session placed in the context by RequireLogin
func SessionFrom(r *http.Request) (session.Session, bool) {
	sess, ok := r.Context().Value(sessionKey).(session.Session)
	return sess, ok
}

// JSONResponse writes a JSON response
func JSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	err := json.NewEncoder(w).Encode(data)
	if err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// ErrorResponse writes a JSON error response
func ErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	JSONResponse(w, statusCode, models.ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

// ParseJSONBody parses the request body into the given struct
func ParseJSONBody(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return err
	}
	return nil
}

// CORS middleware allows cross-origin requests from the frontend
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin == "" {
			origin = "*"
		}

		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Setup-Key")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		// Handle preflight requests
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

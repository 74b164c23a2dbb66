// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/asbru5y22bca28/rupesh/models"
	"github.com/asbru5y22bca28/rupesh/session"
	"github.com/asbru5y22bca28/rupesh/testutil"
)

func TestRegister(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewAuthHandler(db, session.NewStore(db, cfg.SessionTTL), cfg)

	req := testutil.MakeRequest("POST", "/register", models.RegisterRequest{
		StudentID: "S1", Name: "Alice", Password: "pw1",
	})
	w := httptest.NewRecorder()
	h.Register(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.RegisterResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success || resp.UserID == "" {
		t.Errorf("Register response = %+v", resp)
	}

	// The stored credential is a hash, never the plaintext
	var hash string
	var isAdmin, hasVoted bool
	err := db.QueryRow(`
		SELECT password_hash, is_admin, has_voted FROM voter WHERE student_id = 'S1'
	`).Scan(&hash, &isAdmin, &hasVoted)
	if err != nil {
		t.Fatalf("Failed to query voter: %v", err)
	}
	if hash == "pw1" || hash == "" {
		t.Error("password stored in plaintext or not at all")
	}
	if isAdmin {
		t.Error("registration must not grant admin")
	}
	if hasVoted {
		t.Error("new voter marked as having voted")
	}
}

func TestRegisterDuplicateStudentID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewAuthHandler(db, session.NewStore(db, cfg.SessionTTL), cfg)

	body := models.RegisterRequest{StudentID: "S1", Name: "Alice", Password: "pw1"}

	w := httptest.NewRecorder()
	h.Register(w, testutil.MakeRequest("POST", "/register", body))
	testutil.AssertStatus(t, w, http.StatusOK)

	// Same student ID again, different details
	w = httptest.NewRecorder()
	h.Register(w, testutil.MakeRequest("POST", "/register", models.RegisterRequest{
		StudentID: "S1", Name: "Mallory", Password: "pw2",
	}))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// No partial row: still exactly one voter, the original one
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM voter WHERE student_id = 'S1'`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("Expected 1 voter row, got %d", count)
	}
	var name string
	if err := db.QueryRow(`SELECT name FROM voter WHERE student_id = 'S1'`).Scan(&name); err != nil {
		t.Fatal(err)
	}
	if name != "Alice" {
		t.Errorf("Expected original registration to survive, got name %q", name)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewAuthHandler(db, session.NewStore(db, cfg.SessionTTL), cfg)

	tests := []struct {
		name string
		body models.RegisterRequest
	}{
		{"missing student_id", models.RegisterRequest{Name: "Alice", Password: "pw1"}},
		{"missing name", models.RegisterRequest{StudentID: "S1", Password: "pw1"}},
		{"missing password", models.RegisterRequest{StudentID: "S1", Name: "Alice"}},
		{"all missing", models.RegisterRequest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Register(w, testutil.MakeRequest("POST", "/register", tt.body))
			testutil.AssertStatus(t, w, http.StatusBadRequest)
		})
	}
}

func TestLoginSuccess(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewAuthHandler(db, session.NewStore(db, cfg.SessionTTL), cfg)

	testutil.CreateTestVoter(t, db, cfg, "S1", "Alice", "pw1", false)

	req := testutil.MakeRequest("POST", "/login", models.LoginRequest{StudentID: "S1", Password: "pw1"})
	w := httptest.NewRecorder()
	h.Login(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LoginResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success || resp.IsAdmin {
		t.Errorf("Login response = %+v", resp)
	}

	// A session cookie is set and resolves back to the voter
	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != session.CookieName {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
	if !cookies[0].HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	sess, err := session.NewStore(db, cfg.SessionTTL).Resolve(cookies[0].Value)
	if err != nil {
		t.Fatalf("session did not resolve: %v", err)
	}
	if sess.StudentID != "S1" {
		t.Errorf("session student = %q, want S1", sess.StudentID)
	}
}

// TestLoginFailureIsUniform checks that a wrong password and an unknown
// student ID are indistinguishable in status and message
func TestLoginFailureIsUniform(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewAuthHandler(db, session.NewStore(db, cfg.SessionTTL), cfg)

	testutil.CreateTestVoter(t, db, cfg, "S1", "Alice", "pw1", false)

	wrongPw := httptest.NewRecorder()
	h.Login(wrongPw, testutil.MakeRequest("POST", "/login", models.LoginRequest{StudentID: "S1", Password: "nope"}))

	unknownID := httptest.NewRecorder()
	h.Login(unknownID, testutil.MakeRequest("POST", "/login", models.LoginRequest{StudentID: "S999", Password: "pw1"}))

	testutil.AssertStatus(t, wrongPw, http.StatusBadRequest)
	testutil.AssertStatus(t, unknownID, http.StatusBadRequest)

	if wrongPw.Body.String() != unknownID.Body.String() {
		t.Errorf("login failures differ:\n  wrong password: %s\n  unknown id:     %s",
			wrongPw.Body.String(), unknownID.Body.String())
	}
}

func TestLoginMissingCredentials(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewAuthHandler(db, session.NewStore(db, cfg.SessionTTL), cfg)

	w := httptest.NewRecorder()
	h.Login(w, testutil.MakeRequest("POST", "/login", models.LoginRequest{StudentID: "S1"}))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestMe(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewAuthHandler(db, session.NewStore(db, cfg.SessionTTL), cfg)

	voterID := testutil.CreateTestVoter(t, db, cfg, "S1", "Alice", "pw1", false)
	cookie := testutil.CreateTestSession(t, db, cfg, voterID)

	t.Run("logged in", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Me(w, testutil.MakeRequest("GET", "/me", nil, cookie))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.MeResponse
		testutil.AssertJSON(t, w, &resp)
		if !resp.LoggedIn || resp.UserID != voterID || resp.StudentID != "S1" || resp.Name != "Alice" {
			t.Errorf("Me response = %+v", resp)
		}
		if resp.IsAdmin {
			t.Error("Me reported isAdmin=true for a student")
		}
	})

	t.Run("not logged in", func(t *testing.T) {
		w := httptest.NewRecorder()
		h.Me(w, testutil.MakeRequest("GET", "/me", nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.MeResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.LoggedIn || resp.UserID != "" {
			t.Errorf("Me response = %+v, want loggedIn=false", resp)
		}
	})
}

func TestLogout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	h := NewAuthHandler(db, session.NewStore(db, cfg.SessionTTL), cfg)

	voterID := testutil.CreateTestVoter(t, db, cfg, "S1", "Alice", "pw1", false)
	cookie := testutil.CreateTestSession(t, db, cfg, voterID)

	w := httptest.NewRecorder()
	h.Logout(w, testutil.MakeRequest("POST", "/logout", nil, cookie))
	testutil.AssertStatus(t, w, http.StatusOK)

	var resp models.LogoutResponse
	testutil.AssertJSON(t, w, &resp)
	if !resp.Success {
		t.Error("Logout reported failure")
	}

	// Session gone server-side
	if _, err := session.NewStore(db, cfg.SessionTTL).Resolve(cookie.Value); err == nil {
		t.Error("session still resolves after logout")
	}

	// Logout without a session still succeeds
	w = httptest.NewRecorder()
	h.Logout(w, testutil.MakeRequest("POST", "/logout", nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}

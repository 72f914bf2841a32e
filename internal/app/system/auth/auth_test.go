package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/campushub/internal/app/system/auth"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	logger := zap.NewNop()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		false,
		logger,
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

func TestNewSessionManager_EmptyKey(t *testing.T) {
	_, err := auth.NewSessionManager("", "test-session", "", false, zap.NewNop())
	if err == nil {
		t.Error("expected error for empty session key")
	}
}

func TestRequireSignedIn_NoUser_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/notifications", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireSignedIn_WithUser_PassesThrough(t *testing.T) {
	sm := newTestSessionManager(t)

	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := auth.CurrentUser(r)
		if !ok {
			t.Error("expected user in context")
		}
		if u.Stream != "CS" {
			t.Errorf("stream: got %q, want %q", u.Stream, "CS")
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/api/notifications", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Role: "student", Stream: "CS"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireRole_WrongRole_Returns403(t *testing.T) {
	handler := auth.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/postings", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Role: "student", Stream: "CS"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
}

func TestRequireRole_NotSignedIn_Returns401(t *testing.T) {
	handler := auth.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/postings", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireRole_CaseInsensitive(t *testing.T) {
	handler := auth.RequireRole("Admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("POST", "/api/postings", nil)
	req = auth.WithTestUser(req, &auth.SessionUser{ID: "abc", Role: "admin"})
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestSignInThenLoadSessionUser(t *testing.T) {
	sm := newTestSessionManager(t)
	sm.SetUserFetcher(fetcherFunc(func(userID string) *auth.SessionUser {
		if userID != "user-1" {
			return nil
		}
		return &auth.SessionUser{ID: userID, Name: "Asha", Role: "student", Stream: "EE"}
	}))

	// Sign in and capture the session cookie.
	signinReq := httptest.NewRequest("POST", "/api/login", nil)
	signinRec := httptest.NewRecorder()
	if err := sm.SignIn(signinRec, signinReq, "user-1"); err != nil {
		t.Fatalf("SignIn failed: %v", err)
	}
	cookies := signinRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected a session cookie to be set")
	}

	// Replay the cookie through the middleware.
	var got *auth.SessionUser
	handler := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.CurrentUser(r)
	}))

	req := httptest.NewRequest("GET", "/api/notifications", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got == nil {
		t.Fatal("expected user in context after sign-in")
	}
	if got.Stream != "EE" {
		t.Errorf("stream: got %q, want %q", got.Stream, "EE")
	}
}

// fetcherFunc adapts a func to auth.UserFetcher.
type fetcherFunc func(userID string) *auth.SessionUser

func (f fetcherFunc) FetchUser(_ context.Context, userID string) *auth.SessionUser {
	return f(userID)
}

// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// SessionUser is what gets injected into r.Context() for each request.
// Stream is empty for administrators; the targeting policy treats an empty
// stream as the admin bypass, so nothing else may leave it blank.
type SessionUser struct {
	ID     string
	Name   string
	Email  string
	Role   string // admin | student
	Stream string
}

// IsAdmin reports whether the user is an unscoped administrator.
func (u *SessionUser) IsAdmin() bool {
	return u.Role == "admin"
}

// UserFetcher loads fresh user data for a session's user ID on each request,
// so role and stream changes take effect immediately. Implementations return
// nil when the user no longer exists.
type UserFetcher interface {
	FetchUser(ctx context.Context, userID string) *SessionUser
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the user & “found?” flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// SessionManager owns the cookie store and the middleware that binds a
// SessionUser to each request.
type SessionManager struct {
	store   *sessions.CookieStore
	name    string
	log     *zap.Logger
	fetcher UserFetcher
}

// NewSessionManager initializes the cookie store with the provided session
// key and domain. The `secure` flag controls whether cookies are marked
// Secure and which SameSite mode is used: in production (secure=true)
// cookies are Secure + SameSite=None; in local dev over http://localhost
// Lax is used so cookies are accepted.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: sessionName, log: logger}, nil
}

// SetUserFetcher installs the per-request user loader.
func (m *SessionManager) SetUserFetcher(f UserFetcher) {
	m.fetcher = f
}

// SignIn marks the session as authenticated for the given user ID.
func (m *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = userID
	return sess.Save(r, w)
}

// SignOut clears the session.
func (m *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := m.store.Get(r, m.name)
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}

// LoadSessionUser injects the user into context if they are logged in.
// The user record is re-fetched through the UserFetcher on every request;
// if the fetch returns nil (deleted or disabled user), the request continues
// unauthenticated.
func (m *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, err := m.store.Get(r, m.name)
		if err != nil {
			// A tampered or stale cookie decodes as a securecookie error;
			// treat the request as signed out rather than failing it.
			if _, ok := err.(securecookie.Error); ok {
				m.log.Debug("session cookie rejected", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			userID := getString(sess, userIDKey)
			if m.fetcher != nil && userID != "" {
				if u := m.fetcher.FetchUser(r.Context(), userID); u != nil {
					r = withUser(r, u)
				}
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn ensures there is a user in context (set by LoadSessionUser).
// API callers get a plain 401.
func (m *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})
}

// RequireRole ensures there is a user with one of the allowed roles in
// context. Not signed in → 401; signed in with the wrong role → 403.
func RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithTestUser injects a SessionUser directly into the request context,
// bypassing the session middleware. Test helper only.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

// helpers

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

// getString safely extracts a string from a session value.
func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

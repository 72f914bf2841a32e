// internal/app/features/logout/handler.go
package logout

import (
	"net/http"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"go.uber.org/zap"
)

// Handler ends user sessions.
type Handler struct {
	Session SessionCloser
	Log     *zap.Logger
}

// SessionCloser is the slice of the session manager the logout handler needs.
type SessionCloser interface {
	SignOut(w http.ResponseWriter, r *http.Request) error
}

// NewHandler constructs a logout Handler.
func NewHandler(session SessionCloser, logger *zap.Logger) *Handler {
	return &Handler{Session: session, Log: logger}
}

// Logout handles POST /api/logout. Signing out without a session is not an
// error; the cookie is cleared either way.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.Log.Info("user signed out", zap.String("user_id", u.ID))
	}
	if err := h.Session.SignOut(w, r); err != nil {
		h.Log.Warn("sign-out failed", zap.Error(err))
	}
	uierrors.WriteMessage(w, http.StatusOK, "signed out")
}

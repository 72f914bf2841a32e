// internal/app/features/login/handler.go
package login

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	userstore "github.com/dalemusser/campushub/internal/app/store/users"
	"github.com/dalemusser/campushub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Handler authenticates users with email and password.
type Handler struct {
	Users   *userstore.Store
	Session SessionWriter
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
}

// SessionWriter is the slice of the session manager the login handler needs.
type SessionWriter interface {
	SignIn(w http.ResponseWriter, r *http.Request, userID string) error
}

// NewHandler constructs a login Handler.
func NewHandler(db *mongo.Database, session SessionWriter, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:   userstore.New(db),
		Session: session,
		ErrLog:  errLog,
		Log:     logger,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Stream string `json:"stream,omitempty"`
}

// Login handles POST /api/login.
//
// Bad credentials and unknown emails get the same response, so the endpoint
// does not reveal which emails have accounts.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode login request failed", err, "Invalid request body.")
		return
	}
	if req.Email == "" || req.Password == "" {
		h.ErrLog.LogBadRequest(w, r, "missing login fields", nil, "Email and password are required.")
		return
	}

	ctx, cancel := timeoutCtx(r)
	defer cancel()

	user, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// Burn a hash comparison so unknown emails take as long as
			// known ones.
			_ = bcrypt.CompareHashAndPassword([]byte("$2a$12$000000000000000000000uGyIVNBVf1tZ9Wp0Dz0F9rV3Oa3rW6xK"), []byte(req.Password))
			h.ErrLog.LogUnauthorized(w, r, "login with unknown email", "Invalid email or password.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load user for login failed", err, "A database error occurred.")
		return
	}

	if !userstore.VerifyPassword(user, req.Password) {
		h.ErrLog.LogUnauthorized(w, r, "login with wrong password", "Invalid email or password.")
		return
	}

	if err := h.Session.SignIn(w, r, user.ID.Hex()); err != nil {
		h.ErrLog.LogServerError(w, r, "session sign-in failed", err, "Unable to start session.")
		return
	}

	h.Log.Info("user signed in",
		zap.String("user_id", user.ID.Hex()),
		zap.String("role", user.Role))

	uierrors.WriteJSON(w, http.StatusOK, loginResponse{
		ID:     user.ID.Hex(),
		Name:   user.FullName,
		Email:  user.Email,
		Role:   user.Role,
		Stream: user.Stream,
	})
}

func timeoutCtx(r *http.Request) (ctx context.Context, cancel context.CancelFunc) {
	return context.WithTimeout(r.Context(), timeouts.Short())
}

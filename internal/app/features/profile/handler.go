// internal/app/features/profile/handler.go
package profile

import (
	"context"
	"encoding/json"
	"net/http"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	userstore "github.com/dalemusser/campushub/internal/app/store/users"
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/dalemusser/campushub/internal/app/system/timeouts"
	"github.com/dalemusser/campushub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the signed-in user's own profile. The academic fields here
// are what gets snapshotted into form responses, so students keep them
// current before submitting.
type Handler struct {
	Users  *userstore.Store
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
}

// NewHandler constructs a profile Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:  userstore.New(db),
		ErrLog: errLog,
		Log:    logger,
	}
}

// currentUserID resolves the signed-in user's ObjectID. The signed-in
// middleware runs first, so a failure here is a malformed session, not a
// missing one.
func (h *Handler) currentUserID(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		h.ErrLog.LogUnauthorized(w, r, "profile access without session", "Sign in required.")
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "malformed session user id", err, "Invalid session.")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// Get handles GET /api/profile.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.currentUserID(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load profile failed", err, "Unable to load profile.")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, user)
}

type updateRequest struct {
	FullName     string  `json:"fullName"`
	RollNumber   string  `json:"rollNumber"`
	RegNumber    string  `json:"regNumber"`
	MobileNumber string  `json:"mobileNumber"`
	CGPA         float64 `json:"cgpa"`
	TenthMarks   float64 `json:"tenthMarks"`
	TwelfthMarks float64 `json:"twelfthMarks"`
}

// Update handles PATCH /api/profile.
//
// Partial: zero-valued fields keep their stored values. Email, role, and
// stream are not editable here.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.currentUserID(w, r)
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode profile update failed", err, "Invalid request body.")
		return
	}
	if req.CGPA < 0 || req.TenthMarks < 0 || req.TwelfthMarks < 0 {
		h.ErrLog.LogBadRequest(w, r, "negative profile marks", nil, "Marks cannot be negative.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	err := h.Users.UpdateProfile(ctx, id, models.User{
		FullName:     req.FullName,
		RollNumber:   req.RollNumber,
		RegNumber:    req.RegNumber,
		MobileNumber: req.MobileNumber,
		CGPA:         req.CGPA,
		TenthMarks:   req.TenthMarks,
		TwelfthMarks: req.TwelfthMarks,
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "update profile failed", err, "Unable to update profile.")
		return
	}

	user, err := h.Users.GetByID(ctx, id)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "reload profile failed", err, "Unable to load profile.")
		return
	}

	h.Log.Info("profile updated", zap.String("user_id", id.Hex()))

	uierrors.WriteJSON(w, http.StatusOK, user)
}

// internal/app/features/forms/handler.go
package forms

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	"github.com/dalemusser/campushub/internal/app/policy/targetpolicy"
	formresponsestore "github.com/dalemusser/campushub/internal/app/store/formresponses"
	postingstore "github.com/dalemusser/campushub/internal/app/store/postings"
	userstore "github.com/dalemusser/campushub/internal/app/store/users"
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/dalemusser/campushub/internal/app/system/timeouts"
	"github.com/dalemusser/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves form submissions for postings.
type Handler struct {
	Responses *formresponsestore.Store
	Postings  *postingstore.Store
	Users     *userstore.Store
	ErrLog    *uierrors.ErrorLogger
	Log       *zap.Logger
}

// NewHandler constructs a forms Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Responses: formresponsestore.New(db),
		Postings:  postingstore.New(db),
		Users:     userstore.New(db),
		ErrLog:    errLog,
		Log:       logger,
	}
}

type submitRequest struct {
	Answers map[string]any `json:"answers"`
}

// Submit handles POST /api/forms/postings/{postingID}.
//
// At most one response exists per (posting, user) pair; a second submission
// gets 409 and leaves the first untouched. The submitter's academic profile
// is snapshotted into the response, so later profile edits do not rewrite
// what was submitted.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		h.ErrLog.LogUnauthorized(w, r, "submit without session", "Sign in required.")
		return
	}
	userID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "malformed session user id", err, "Invalid session.")
		return
	}

	postingID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postingID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad posting id", err, "Invalid posting ID.")
		return
	}

	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode submission failed", err, "Invalid request body.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	posting, err := h.Postings.GetByID(ctx, postingID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, r, "submit for missing posting", "Posting not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load posting for submit failed", err, "Unable to load posting.")
		return
	}

	// Students can only submit to postings targeted at their stream. The
	// response matches a missing posting so the ledger cannot be probed.
	viewer := targetpolicy.ViewerFromSession(u)
	if !targetpolicy.VisibleToViewer(viewer, posting.TargetedStreams) {
		h.ErrLog.LogNotFound(w, r, "submit outside viewer stream", "Posting not found.")
		return
	}

	submitter, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load submitter failed", err, "Unable to load your profile.")
		return
	}

	resp, err := h.Responses.Create(ctx, models.FormResponse{
		PostingID: postingID,
		UserID:    userID,
		Answers:   req.Answers,
		Profile: models.SubmitterProfile{
			FullName:     submitter.FullName,
			RollNumber:   submitter.RollNumber,
			RegNumber:    submitter.RegNumber,
			Email:        submitter.Email,
			MobileNumber: submitter.MobileNumber,
			CGPA:         submitter.CGPA,
			TenthMarks:   submitter.TenthMarks,
			TwelfthMarks: submitter.TwelfthMarks,
		},
	})
	if err != nil {
		if errors.Is(err, formresponsestore.ErrAlreadySubmitted) {
			h.ErrLog.LogConflict(w, r, "duplicate submission", "You have already submitted this form.")
			return
		}
		h.ErrLog.LogServerError(w, r, "store submission failed", err, "Unable to store your submission.")
		return
	}

	h.Log.Info("form submitted",
		zap.String("posting_id", postingID.Hex()),
		zap.String("user_id", userID.Hex()))

	uierrors.WriteJSON(w, http.StatusCreated, resp)
}

// ListByPosting handles GET /api/forms/postings/{postingID}/responses
// (admin only). Responses come back oldest first.
func (h *Handler) ListByPosting(w http.ResponseWriter, r *http.Request) {
	postingID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "postingID"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad posting id", err, "Invalid posting ID.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	responses, err := h.Responses.ListByPosting(ctx, postingID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list responses failed", err, "Unable to load responses.")
		return
	}
	if responses == nil {
		responses = []models.FormResponse{}
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"responses": responses})
}

// ListMine handles GET /api/forms/mine: the signed-in user's own
// submissions, newest first.
func (h *Handler) ListMine(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		h.ErrLog.LogUnauthorized(w, r, "list submissions without session", "Sign in required.")
		return
	}
	userID, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "malformed session user id", err, "Invalid session.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	responses, err := h.Responses.ListByUser(ctx, userID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list own responses failed", err, "Unable to load your submissions.")
		return
	}
	if responses == nil {
		responses = []models.FormResponse{}
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"responses": responses})
}

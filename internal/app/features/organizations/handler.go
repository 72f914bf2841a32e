// internal/app/features/organizations/handler.go
package organizations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	"github.com/dalemusser/campushub/internal/app/policy/targetpolicy"
	organizationstore "github.com/dalemusser/campushub/internal/app/store/organizations"
	postingstore "github.com/dalemusser/campushub/internal/app/store/postings"
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/dalemusser/campushub/internal/app/system/normalize"
	"github.com/dalemusser/campushub/internal/app/system/timeouts"
	"github.com/dalemusser/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the organization listing, session index, and lifecycle.
type Handler struct {
	Orgs     *organizationstore.Store
	Postings *postingstore.Store
	ErrLog   *uierrors.ErrorLogger
	Log      *zap.Logger
}

// NewHandler constructs an organizations Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Orgs:     organizationstore.New(db),
		Postings: postingstore.New(db),
		ErrLog:   errLog,
		Log:      logger,
	}
}

// ListSessions handles GET /api/organizations/sessions.
//
// Returns every distinct offer session year pair across all organizations,
// each pair once no matter how many organizations share it.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	sessions, err := h.Orgs.DistinctSessions(ctx)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load distinct sessions failed", err, "Unable to load sessions.")
		return
	}
	if sessions == nil {
		sessions = []models.Session{}
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"sessions": sessions})
}

// ListBySession handles GET /api/organizations?start_year=&end_year=.
//
// Students see only organizations targeting their stream; admins see all.
// Each returned organization's stored session list is filtered down to the
// entries matching the requested pair, which is the frame of reference the
// caller asked about.
func (h *Handler) ListBySession(w http.ResponseWriter, r *http.Request) {
	startYear, err := strconv.Atoi(r.URL.Query().Get("start_year"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad start_year", err, "start_year must be an integer.")
		return
	}
	endYear, err := strconv.Atoi(r.URL.Query().Get("end_year"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad end_year", err, "end_year must be an integer.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	orgs, err := h.Orgs.FindBySession(ctx, startYear, endYear)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load organizations failed", err, "Unable to load organizations.")
		return
	}

	user, _ := auth.CurrentUser(r)
	visible := targetpolicy.FilterOrganizations(targetpolicy.ViewerFromSession(user), orgs)

	requested := models.Session{StartYear: startYear, EndYear: endYear}
	out := make([]models.Organization, 0, len(visible))
	for _, org := range visible {
		matched := make([]models.Session, 0, 1)
		for _, s := range org.Sessions {
			if s == requested {
				matched = append(matched, s)
			}
		}
		org.Sessions = matched
		out = append(out, org)
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"organizations": out})
}

type createRequest struct {
	Name            string           `json:"name"`
	TargetedStreams []string         `json:"targetedStreams"`
	Sessions        []models.Session `json:"sessions"`
	ContactInfo     string           `json:"contactInfo"`
}

// Create handles POST /api/organizations (admin only).
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode organization failed", err, "Invalid request body.")
		return
	}
	if req.Name == "" {
		h.ErrLog.LogBadRequest(w, r, "organization without name", nil, "Name is required.")
		return
	}
	streams := normalize.Streams(req.TargetedStreams)
	if streams == nil {
		h.ErrLog.LogBadRequest(w, r, "organization without streams", nil, "At least one targeted stream is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.Create(ctx, models.Organization{
		Name:            req.Name,
		TargetedStreams: streams,
		Sessions:        req.Sessions,
		ContactInfo:     req.ContactInfo,
	})
	if err != nil {
		if err == organizationstore.ErrDuplicateOrganization {
			h.ErrLog.LogConflict(w, r, "duplicate organization name", err.Error())
			return
		}
		h.ErrLog.LogServerError(w, r, "create organization failed", err, "Unable to create organization.")
		return
	}

	h.Log.Info("organization created",
		zap.String("org_id", org.ID.Hex()),
		zap.String("name", org.Name))

	uierrors.WriteJSON(w, http.StatusCreated, org)
}

// Delete handles DELETE /api/organizations/{id} (admin only).
//
// Postings reference their organization by name, so an organization with
// postings still attached cannot be removed; delete the postings first.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad organization id", err, "Invalid organization ID.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	org, err := h.Orgs.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			h.ErrLog.LogNotFound(w, r, "delete of missing organization", "Organization not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load organization failed", err, "Unable to delete organization.")
		return
	}

	attached, err := h.Postings.CountByOrganization(ctx, org.Name)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "count organization postings failed", err, "Unable to delete organization.")
		return
	}
	if attached > 0 {
		h.ErrLog.LogConflict(w, r, "delete of organization with postings", "Organization still has postings.")
		return
	}

	if _, err := h.Orgs.Delete(ctx, id); err != nil {
		h.ErrLog.LogServerError(w, r, "delete organization failed", err, "Unable to delete organization.")
		return
	}

	h.Log.Info("organization deleted",
		zap.String("org_id", id.Hex()),
		zap.String("name", org.Name))

	uierrors.WriteMessage(w, http.StatusOK, "organization deleted")
}

// internal/app/features/postings/feed.go
package postings

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	"github.com/dalemusser/campushub/internal/app/policy/targetpolicy"
	postingstore "github.com/dalemusser/campushub/internal/app/store/postings"
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/dalemusser/campushub/internal/app/system/normalize"
	"github.com/dalemusser/campushub/internal/app/system/timeouts"
	"github.com/dalemusser/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Feed handles GET /api/postings?organization=&start_year=&end_year=&streams=.
//
// The streams parameter is the union of streams the caller wants to browse
// and is used as supplied; a stream-scoped caller naming no streams defaults
// to their own stream, and admins naming none get every matching posting. A
// feed that matches nothing returns 200 with a message body, not an error:
// an empty feed is a normal outcome.
func (h *Handler) Feed(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	orgName := strings.TrimSpace(q.Get("organization"))
	if orgName == "" {
		h.ErrLog.LogBadRequest(w, r, "feed without organization", nil, "organization is required.")
		return
	}
	startYear, err := strconv.Atoi(q.Get("start_year"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad start_year", err, "start_year must be an integer.")
		return
	}
	endYear, err := strconv.Atoi(q.Get("end_year"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad end_year", err, "end_year must be an integer.")
		return
	}

	var candidates []string
	if raw := strings.TrimSpace(q.Get("streams")); raw != "" {
		candidates = normalize.Streams(strings.Split(raw, ","))
	}

	user, _ := auth.CurrentUser(r)
	viewer := targetpolicy.ViewerFromSession(user)
	streams := targetpolicy.FeedStreams(viewer, candidates)

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	session := models.Session{StartYear: startYear, EndYear: endYear}
	postings, err := h.Postings.FindForFeed(ctx, orgName, session, streams)
	if err != nil {
		if err == postingstore.ErrNoPostings {
			uierrors.WriteMessage(w, http.StatusOK, "No postings found for this organization.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load feed failed", err, "Unable to load postings.")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"postings": postings})
}

// Get handles GET /api/postings/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad posting id", err, "Invalid posting ID.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	posting, err := h.Postings.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			h.notFoundPosting(w, r, "posting not found")
			return
		}
		h.ErrLog.LogServerError(w, r, "load posting failed", err, "Unable to load posting.")
		return
	}

	user, _ := auth.CurrentUser(r)
	viewer := targetpolicy.ViewerFromSession(user)
	if !targetpolicy.VisibleToViewer(viewer, posting.TargetedStreams) {
		h.notFoundPosting(w, r, "posting outside viewer stream")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, posting)
}

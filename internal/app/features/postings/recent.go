// internal/app/features/postings/recent.go
package postings

import (
	"context"
	"net/http"
	"strconv"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	"github.com/dalemusser/campushub/internal/app/system/timeouts"
	"github.com/dalemusser/campushub/internal/domain/models"
)

const (
	defaultRecentLimit = 20
	maxRecentLimit     = 100
)

// Recent handles GET /api/postings/recent?limit= (admin only).
//
// An overview of the newest postings across every organization and session,
// newest first.
func (h *Handler) Recent(w http.ResponseWriter, r *http.Request) {
	limit := int64(defaultRecentLimit)
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			h.ErrLog.LogBadRequest(w, r, "bad recent limit", err, "limit must be a positive integer.")
			return
		}
		if n > maxRecentLimit {
			n = maxRecentLimit
		}
		limit = n
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	postings, err := h.Postings.ListRecent(ctx, limit)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "load recent postings failed", err, "Unable to load postings.")
		return
	}
	if postings == nil {
		postings = []models.Posting{}
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"postings": postings})
}

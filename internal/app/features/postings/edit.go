// internal/app/features/postings/edit.go
package postings

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	postingstore "github.com/dalemusser/campushub/internal/app/store/postings"
	"github.com/dalemusser/campushub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/campushub/internal/app/system/normalize"
	"github.com/dalemusser/campushub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// editRequest uses pointers so an absent field is distinguishable from a
// supplied one. Absent or blank title/content keep the stored value.
type editRequest struct {
	Title           *string   `json:"title"`
	Content         *string   `json:"content"`
	TargetedStreams *[]string `json:"targetedStreams"`
}

// Edit handles PATCH /api/postings/{id} (admin only).
//
// Only title, content, and targeted streams are editable. Organization and
// session are fixed at creation; notifications already sent are not revised.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad posting id", err, "Invalid posting ID.")
		return
	}

	var req editRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode posting edit failed", err, "Invalid request body.")
		return
	}

	fields := postingstore.UpdateFields{}
	if req.Title != nil {
		if title := strings.TrimSpace(*req.Title); title != "" {
			fields.Title = &title
		}
	}
	if req.Content != nil {
		if content := htmlsanitize.Sanitize(*req.Content); strings.TrimSpace(content) != "" {
			fields.Content = &content
		}
	}
	if req.TargetedStreams != nil {
		streams := normalize.Streams(*req.TargetedStreams)
		if streams == nil {
			h.ErrLog.LogBadRequest(w, r, "edit with empty streams", nil, "At least one targeted stream is required.")
			return
		}
		fields.TargetedStreams = &streams
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	updated, err := h.Postings.Update(ctx, id, fields)
	if err != nil {
		if isNotFound(err) {
			h.notFoundPosting(w, r, "edit of missing posting")
			return
		}
		h.ErrLog.LogServerError(w, r, "update posting failed", err, "Unable to update posting.")
		return
	}

	h.Log.Info("posting updated", zap.String("posting_id", id.Hex()))

	uierrors.WriteJSON(w, http.StatusOK, updated)
}

// internal/app/features/postings/create.go
package postings

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/dalemusser/campushub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/campushub/internal/app/system/normalize"
	"github.com/dalemusser/campushub/internal/app/system/timeouts"
	"github.com/dalemusser/campushub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type createRequest struct {
	Title           string         `json:"title"`
	Content         string         `json:"content"`
	Organization    string         `json:"organization"`
	Session         models.Session `json:"session"`
	TargetedStreams []string       `json:"targetedStreams"`
}

// Create handles POST /api/postings (admin only).
//
// The posting's organization must exist, and the posting's targeted streams
// must be a subset of the organization's. After the insert, one unread
// notification is written for every student in a targeted stream. The
// fan-out is synchronous: when the response comes back, the notifications
// exist.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.ErrLog.LogBadRequest(w, r, "decode posting failed", err, "Invalid request body.")
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		h.ErrLog.LogBadRequest(w, r, "posting without title", nil, "Title is required.")
		return
	}
	streams := normalize.Streams(req.TargetedStreams)
	if streams == nil {
		h.ErrLog.LogBadRequest(w, r, "posting without streams", nil, "At least one targeted stream is required.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	org, err := h.Orgs.GetByName(ctx, req.Organization)
	if err != nil {
		if isNotFound(err) {
			h.ErrLog.LogNotFound(w, r, "posting for unknown organization", "Organization not found.")
			return
		}
		h.ErrLog.LogServerError(w, r, "load organization failed", err, "Unable to load organization.")
		return
	}

	if outside := streamsOutside(streams, org.TargetedStreams); len(outside) > 0 {
		h.ErrLog.LogBadRequest(w, r, "posting streams outside organization", nil,
			"Targeted streams must be among the organization's streams: "+strings.Join(outside, ", ")+" are not.")
		return
	}

	posting := models.Posting{
		Title:           req.Title,
		Content:         htmlsanitize.Sanitize(req.Content),
		Organization:    org.Name,
		Session:         req.Session,
		TargetedStreams: streams,
	}
	if u, ok := auth.CurrentUser(r); ok {
		if oid, err := primitive.ObjectIDFromHex(u.ID); err == nil {
			posting.CreatedBy = oid
		}
	}

	created, err := h.Postings.Create(ctx, posting)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "create posting failed", err, "Unable to create posting.")
		return
	}

	// Notification fan-out. A partial failure leaves the posting in place;
	// the error is logged and the posting is still returned.
	recipients, err := h.Users.FindStudentsByStreams(ctx, streams)
	if err != nil {
		h.Log.Error("load fan-out recipients failed",
			zap.String("posting_id", created.ID.Hex()), zap.Error(err))
	} else {
		ids := make([]primitive.ObjectID, 0, len(recipients))
		for _, u := range recipients {
			ids = append(ids, u.ID)
		}
		content := "New posting from " + org.Name + ": " + created.Title
		n, err := h.Notifications.CreateForRecipients(ctx, created.ID, content, ids)
		if err != nil {
			h.Log.Error("notification fan-out failed",
				zap.String("posting_id", created.ID.Hex()),
				zap.Int64("written", n), zap.Error(err))
		} else {
			h.Log.Info("posting created",
				zap.String("posting_id", created.ID.Hex()),
				zap.String("organization", org.Name),
				zap.Int64("notified", n))
		}
	}

	uierrors.WriteJSON(w, http.StatusCreated, created)
}

// streamsOutside returns the streams in want that are not in allowed.
func streamsOutside(want, allowed []string) []string {
	set := make(map[string]struct{}, len(allowed))
	for _, s := range allowed {
		set[s] = struct{}{}
	}
	var out []string
	for _, s := range want {
		if _, ok := set[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// internal/app/features/notifications/handler.go
package notifications

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	notificationstore "github.com/dalemusser/campushub/internal/app/store/notifications"
	"github.com/dalemusser/campushub/internal/app/system/auth"
	"github.com/dalemusser/campushub/internal/app/system/timeouts"
	"github.com/dalemusser/campushub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves each user's notification ledger. Every operation is scoped
// to the signed-in user; there is no cross-user access, admin or not.
type Handler struct {
	Notifications *notificationstore.Store
	ErrLog        *uierrors.ErrorLogger
	Log           *zap.Logger
}

// NewHandler constructs a notifications Handler.
func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Notifications: notificationstore.New(db),
		ErrLog:        errLog,
		Log:           logger,
	}
}

// currentRecipient resolves the signed-in user's ObjectID. The signed-in
// middleware runs first, so a failure here is a malformed session, not a
// missing one.
func (h *Handler) currentRecipient(w http.ResponseWriter, r *http.Request) (primitive.ObjectID, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		h.ErrLog.LogUnauthorized(w, r, "notification access without session", "Sign in required.")
		return primitive.NilObjectID, false
	}
	oid, err := primitive.ObjectIDFromHex(u.ID)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "malformed session user id", err, "Invalid session.")
		return primitive.NilObjectID, false
	}
	return oid, true
}

// UnreadCount handles GET /api/notifications/unread_count.
func (h *Handler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	recipient, ok := h.currentRecipient(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	count, err := h.Notifications.UnreadCount(ctx, recipient)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "unread count failed", err, "Unable to load unread count.")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]int64{"unreadCount": count})
}

// List handles GET /api/notifications. Newest first, read and unread alike.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	recipient, ok := h.currentRecipient(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	notifs, err := h.Notifications.ListByRecipient(ctx, recipient)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "list notifications failed", err, "Unable to load notifications.")
		return
	}
	if notifs == nil {
		notifs = []models.Notification{}
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]any{"notifications": notifs})
}

// MarkRead handles POST /api/notifications/{id}/read. Marking an entry that
// is already read, or that does not exist, succeeds: the end state is the
// same.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	recipient, ok := h.currentRecipient(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad notification id", err, "Invalid notification ID.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Notifications.MarkRead(ctx, id, recipient); err != nil {
		h.ErrLog.LogServerError(w, r, "mark notification read failed", err, "Unable to update notification.")
		return
	}

	uierrors.WriteMessage(w, http.StatusOK, "notification marked read")
}

// MarkAllRead handles POST /api/notifications/read_all and returns the fresh
// unread count (zero unless new notifications landed mid-request).
func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	recipient, ok := h.currentRecipient(w, r)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	marked, err := h.Notifications.MarkAllRead(ctx, recipient)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "mark all read failed", err, "Unable to update notifications.")
		return
	}

	count, err := h.Notifications.UnreadCount(ctx, recipient)
	if err != nil {
		h.ErrLog.LogServerError(w, r, "unread count after read_all failed", err, "Unable to load unread count.")
		return
	}

	uierrors.WriteJSON(w, http.StatusOK, map[string]int64{
		"marked":      marked,
		"unreadCount": count,
	})
}

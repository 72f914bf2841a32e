// internal/app/features/postings/delete.go
package postings

import (
	"context"
	"net/http"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	"github.com/dalemusser/campushub/internal/app/system/timeouts"
	"github.com/dalemusser/campushub/internal/app/system/txn"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Delete handles DELETE /api/postings/{id} (admin only).
//
// The posting's notifications are removed in the same transaction, so a
// reader never sees a notification for a posting that is already gone. When
// the deployment cannot run transactions, the notification delete runs
// first: an interruption then leaves a notification-less posting, not
// orphaned notifications. Orphans can still appear when a fan-out races the
// delete; the periodic sweep removes those. Form responses are records of
// fact and are never cascaded.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		h.ErrLog.LogBadRequest(w, r, "bad posting id", err, "Invalid posting ID.")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	if _, err := h.Postings.GetByID(ctx, id); err != nil {
		if isNotFound(err) {
			h.notFoundPosting(w, r, "delete of missing posting")
			return
		}
		h.ErrLog.LogServerError(w, r, "load posting for delete failed", err, "Unable to load posting.")
		return
	}

	var removedNotifs int64
	err = txn.WithTransaction(ctx, h.Client, h.Log, func(ctx context.Context) error {
		n, err := h.Notifications.DeleteByPosting(ctx, id)
		if err != nil {
			return err
		}
		removedNotifs = n
		_, err = h.Postings.Delete(ctx, id)
		return err
	})
	if err != nil {
		h.ErrLog.LogServerError(w, r, "delete posting cascade failed", err, "Unable to delete posting.")
		return
	}

	h.Log.Info("posting deleted",
		zap.String("posting_id", id.Hex()),
		zap.Int64("notifications_removed", removedNotifs))

	uierrors.WriteMessage(w, http.StatusOK, "posting deleted")
}

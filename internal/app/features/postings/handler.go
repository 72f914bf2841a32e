// internal/app/features/postings/handler.go
package postings

import (
	"errors"
	"net/http"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	notificationstore "github.com/dalemusser/campushub/internal/app/store/notifications"
	organizationstore "github.com/dalemusser/campushub/internal/app/store/organizations"
	postingstore "github.com/dalemusser/campushub/internal/app/store/postings"
	userstore "github.com/dalemusser/campushub/internal/app/store/users"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the posting feed and the admin posting lifecycle. The Mongo
// client is kept alongside the database so deletes can run the notification
// cascade in a transaction.
type Handler struct {
	Client        *mongo.Client
	Postings      *postingstore.Store
	Orgs          *organizationstore.Store
	Notifications *notificationstore.Store
	Users         *userstore.Store
	ErrLog        *uierrors.ErrorLogger
	Log           *zap.Logger
}

// NewHandler constructs a postings Handler.
func NewHandler(client *mongo.Client, db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Client:        client,
		Postings:      postingstore.New(db),
		Orgs:          organizationstore.New(db),
		Notifications: notificationstore.New(db),
		Users:         userstore.New(db),
		ErrLog:        errLog,
		Log:           logger,
	}
}

// notFoundPosting writes the shared 404 for missing or invisible postings.
// Invisible postings get the same response as missing ones so students
// cannot probe for postings outside their stream.
func (h *Handler) notFoundPosting(w http.ResponseWriter, r *http.Request, logMsg string) {
	h.ErrLog.LogNotFound(w, r, logMsg, "Posting not found.")
}

// isNotFound reports whether err is the driver's no-documents error.
func isNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// internal/app/system/txn/txn.go
package txn

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// WithTransaction runs fn inside a multi-document transaction when the
// deployment supports one. Standalone mongod (and some hosted clones) reject
// transactions; in that case fn runs directly, outside any session, and the
// caller's own write ordering is the only guarantee. Callers therefore order
// dependent-record deletes before the parent delete, so a crash mid-way
// leaves a parent without dependents rather than dangling references.
func WithTransaction(ctx context.Context, client *mongo.Client, log *zap.Logger, fn func(ctx context.Context) error) error {
	session, err := client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			log.Debug("sessions unsupported; running without transaction", zap.Error(err))
			return fn(ctx)
		}
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		log.Debug("transactions unsupported; running without transaction", zap.Error(err))
		return fn(ctx)
	}
	return err
}

// IsNotSupported reports whether err indicates the deployment cannot run
// multi-document transactions (standalone server, no replica set). Matches
// the known server error codes first, then falls back to message keywords
// since drivers and hosted vendors word this differently.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}

	var ce mongo.CommandError
	if errors.As(err, &ce) {
		switch ce.Code {
		case 20, 51, 263:
			return true
		}
	}

	s := strings.ToLower(err.Error())
	hasTxn := strings.Contains(s, "transaction")
	switch {
	case hasTxn && strings.Contains(s, "replica set"):
		return true
	case hasTxn && strings.Contains(s, "session"):
		return true
	case strings.Contains(s, "session") && strings.Contains(s, "not supported"):
		return true
	case strings.Contains(s, "illegal operation"):
		return true
	}
	return false
}

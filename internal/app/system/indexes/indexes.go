// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The form_responses unique pair index is not an optimization: the
at-most-once submission guarantee rests on it, so a failure here must
abort startup.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureOrganizations(ctx, db); err != nil {
		problems = append(problems, "organizations: "+err.Error())
	}
	if err := ensurePostings(ctx, db); err != nil {
		problems = append(problems, "postings: "+err.Error())
	}
	if err := ensureNotifications(ctx, db); err != nil {
		problems = append(problems, "notifications: "+err.Error())
	}
	if err := ensureFormResponses(ctx, db); err != nil {
		problems = append(problems, "form_responses: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	av := a != nil && *a
	bv := b != nil && *b
	return av == bv
}

// Best-effort duplicate-detector (works cross-vendors)
func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == 11000 { // E11000 duplicate key error index
				return true
			}
		}
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == 11000 {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string

	// Load existing indexes once; key pattern is the identity we reconcile on.
	existing := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err == nil {
		defer cur.Close(ctx)
		for cur.Next(ctx) {
			var idx existingIndex
			if err := cur.Decode(&idx); err != nil {
				zap.L().Warn("failed to decode existing index",
					zap.String("collection", coll.Name()),
					zap.Error(err))
				continue
			}
			existing[keySig(idx.Key)] = idx
		}
	}

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			if m.Options.Unique != nil {
				desiredUnique = m.Options.Unique
			}
		}
		desiredSig := keySig(m.Keys.(bson.D))

		start := time.Now()

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) {
				zap.L().Info("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig))
				continue
			}

			// Options mismatch (e.g., upgrading to unique). Drop & recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isDuplicateKeyErr(err) && desiredUnique != nil && *desiredUnique {
				errs = append(errs, fmt.Sprintf("%s(%s): cannot create unique index (duplicates present)", coll.Name(), desiredName))
			} else {
				errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			}
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.Bool("unique", desiredUnique != nil && *desiredUnique),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                             */
/* -------------------------------------------------------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Email must be unique across all users
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},

		// Notification fan-out: find every student in a targeted stream
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "stream", Value: 1}},
			Options: options.Index().SetName("idx_users_role_stream"),
		},
	})
}

func ensureOrganizations(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("organizations")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Enforce global uniqueness of organization names (case/diacritics folded).
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_orgs_nameci"),
		},

		// Session listing: which orgs recruit in a given year pair
		{
			Keys: bson.D{
				{Key: "sessions.start_year", Value: 1},
				{Key: "sessions.end_year", Value: 1},
			},
			Options: options.Index().SetName("idx_orgs_session_years"),
		},

		// Stream-scoped visibility filter
		{
			Keys:    bson.D{{Key: "targeted_streams", Value: 1}},
			Options: options.Index().SetName("idx_orgs_streams"),
		},
	})
}

func ensurePostings(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("postings")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Feed query: org + session years, newest first
		{
			Keys: bson.D{
				{Key: "organization", Value: 1},
				{Key: "session.start_year", Value: 1},
				{Key: "session.end_year", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("idx_postings_org_session_created"),
		},
		// Global newest-first listing
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_postings_created"),
		},
	})
}

func ensureNotifications(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("notifications")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Unread counts per recipient
		{
			Keys:    bson.D{{Key: "recipient_id", Value: 1}, {Key: "read", Value: 1}},
			Options: options.Index().SetName("idx_notifs_recipient_read"),
		},
		// Per-recipient listing, newest first
		{
			Keys:    bson.D{{Key: "recipient_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_notifs_recipient_created"),
		},
		// Cascade delete and orphan sweep by posting
		{
			Keys:    bson.D{{Key: "posting_id", Value: 1}},
			Options: options.Index().SetName("idx_notifs_posting"),
		},
	})
}

func ensureFormResponses(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("form_responses")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Uniqueness: at most one response per (posting, user). Submission
		// relies on this index rejecting the second insert; the store maps
		// the duplicate-key error to ErrAlreadySubmitted.
		{
			Keys:    bson.D{{Key: "posting_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_forms_posting_user"),
		},

		// A user's submissions
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "submitted_at", Value: -1}},
			Options: options.Index().SetName("idx_forms_user_submitted"),
		},
	})
}

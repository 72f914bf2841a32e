// internal/app/store/notifications/notificationstore.go
package notificationstore

import (
	"context"
	"time"

	"github.com/dalemusser/campushub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c        *mongo.Collection
	postings *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("notifications"),
		postings: db.Collection("postings"),
	}
}

// CreateForRecipients inserts one unread notification per recipient for the
// given posting. The insert is unordered so one bad document does not stop
// the rest of the fan-out. Returns the number of entries written.
func (s *Store) CreateForRecipients(ctx context.Context, postingID primitive.ObjectID, content string, recipientIDs []primitive.ObjectID) (int64, error) {
	if len(recipientIDs) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	docs := make([]any, 0, len(recipientIDs))
	for _, rid := range recipientIDs {
		docs = append(docs, models.Notification{
			ID:          primitive.NewObjectID(),
			PostingID:   postingID,
			RecipientID: rid,
			Content:     content,
			Read:        false,
			CreatedAt:   now,
		})
	}

	res, err := s.c.InsertMany(ctx, docs, options.InsertMany().SetOrdered(false))
	if res != nil {
		return int64(len(res.InsertedIDs)), err
	}
	return 0, err
}

// UnreadCount returns the number of unread notifications for a recipient.
func (s *Store) UnreadCount(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"recipient_id": recipientID, "read": false})
}

// ListByRecipient returns a recipient's notifications, newest first.
func (s *Store) ListByRecipient(ctx context.Context, recipientID primitive.ObjectID) ([]models.Notification, error) {
	cur, err := s.c.Find(ctx, bson.M{"recipient_id": recipientID},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var notifs []models.Notification
	if err := cur.All(ctx, &notifs); err != nil {
		return nil, err
	}
	return notifs, nil
}

// MarkRead marks one notification read. The filter is scoped to the recipient
// so a user cannot mark another user's entries. Marking an already-read or
// missing entry is not an error.
func (s *Store) MarkRead(ctx context.Context, id, recipientID primitive.ObjectID) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "recipient_id": recipientID},
		bson.M{"$set": bson.M{"read": true}})
	return err
}

// MarkAllRead marks every unread notification for a recipient as read and
// returns the number of entries flipped.
func (s *Store) MarkAllRead(ctx context.Context, recipientID primitive.ObjectID) (int64, error) {
	res, err := s.c.UpdateMany(ctx,
		bson.M{"recipient_id": recipientID, "read": false},
		bson.M{"$set": bson.M{"read": true}})
	if err != nil {
		return 0, err
	}
	return res.ModifiedCount, nil
}

// DeleteByPosting removes every notification belonging to the given posting.
// Called before the posting itself is deleted.
func (s *Store) DeleteByPosting(ctx context.Context, postingID primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteMany(ctx, bson.M{"posting_id": postingID})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// DeleteOrphans removes notifications whose posting no longer exists. The
// notifications-first cascade cannot strand them on a crash; orphans come
// from a fan-out racing a concurrent delete outside a transaction, or from
// data surgery done by hand. The periodic sweep closes that window.
func (s *Store) DeleteOrphans(ctx context.Context) (int64, error) {
	postingIDs, err := s.c.Distinct(ctx, "posting_id", bson.M{})
	if err != nil {
		return 0, err
	}
	if len(postingIDs) == 0 {
		return 0, nil
	}

	cur, err := s.postings.Find(ctx, bson.M{"_id": bson.M{"$in": postingIDs}},
		options.Find().SetProjection(bson.M{"_id": 1}))
	if err != nil {
		return 0, err
	}
	defer cur.Close(ctx)

	existing := make(map[primitive.ObjectID]struct{}, len(postingIDs))
	for cur.Next(ctx) {
		var doc struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cur.Decode(&doc); err != nil {
			return 0, err
		}
		existing[doc.ID] = struct{}{}
	}
	if err := cur.Err(); err != nil {
		return 0, err
	}

	var orphaned []primitive.ObjectID
	for _, raw := range postingIDs {
		id, ok := raw.(primitive.ObjectID)
		if !ok {
			continue
		}
		if _, found := existing[id]; !found {
			orphaned = append(orphaned, id)
		}
	}
	if len(orphaned) == 0 {
		return 0, nil
	}

	res, err := s.c.DeleteMany(ctx, bson.M{"posting_id": bson.M{"$in": orphaned}})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

// internal/app/store/formresponses/formresponsestore.go
package formresponsestore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/campushub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrAlreadySubmitted is returned when a (posting, user) pair already has a
// response. Detection relies on the unique index, not on a prior read, so two
// concurrent submissions cannot both succeed.
var ErrAlreadySubmitted = errors.New("form already submitted for this posting")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("form_responses")}
}

func (s *Store) Create(ctx context.Context, resp models.FormResponse) (models.FormResponse, error) {
	resp.ID = primitive.NewObjectID()
	resp.SubmittedAt = time.Now().UTC()
	_, err := s.c.InsertOne(ctx, resp)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.FormResponse{}, ErrAlreadySubmitted
		}
		return models.FormResponse{}, err
	}
	return resp, nil
}

// Exists reports whether the user has already submitted for the posting.
func (s *Store) Exists(ctx context.Context, postingID, userID primitive.ObjectID) (bool, error) {
	err := s.c.FindOne(ctx, bson.M{"posting_id": postingID, "user_id": userID}).Err()
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListByPosting returns every response for a posting, oldest first, for
// roster-style export.
func (s *Store) ListByPosting(ctx context.Context, postingID primitive.ObjectID) ([]models.FormResponse, error) {
	cur, err := s.c.Find(ctx, bson.M{"posting_id": postingID},
		options.Find().SetSort(bson.D{{Key: "submitted_at", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var responses []models.FormResponse
	if err := cur.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

// ListByUser returns a user's own responses, newest first.
func (s *Store) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.FormResponse, error) {
	cur, err := s.c.Find(ctx, bson.M{"user_id": userID},
		options.Find().SetSort(bson.D{{Key: "submitted_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var responses []models.FormResponse
	if err := cur.All(ctx, &responses); err != nil {
		return nil, err
	}
	return responses, nil
}

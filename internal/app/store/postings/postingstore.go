// internal/app/store/postings/postingstore.go
package postingstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/campushub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

// ErrNoPostings is returned by feed queries that match nothing, so callers
// can distinguish an empty feed from a query failure.
var ErrNoPostings = errors.New("no postings found for this organization")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("postings")}
}

func (s *Store) Create(ctx context.Context, posting models.Posting) (models.Posting, error) {
	now := time.Now().UTC()
	posting.ID = primitive.NewObjectID()
	posting.CreatedAt = now
	posting.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, posting)
	if err != nil {
		return models.Posting{}, err
	}
	return posting, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Posting, error) {
	var posting models.Posting
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&posting)
	if err != nil {
		return models.Posting{}, err
	}
	return posting, nil
}

// UpdateFields holds the mutable posting fields for a partial update. Nil
// pointers leave the stored value untouched.
type UpdateFields struct {
	Title           *string
	Content         *string
	TargetedStreams *[]string
}

// Update applies a partial update and refreshes UpdatedAt. Omitted fields
// keep their stored values.
func (s *Store) Update(ctx context.Context, id primitive.ObjectID, fields UpdateFields) (models.Posting, error) {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if fields.Title != nil {
		set["title"] = *fields.Title
	}
	if fields.Content != nil {
		set["content"] = *fields.Content
	}
	if fields.TargetedStreams != nil {
		set["targeted_streams"] = *fields.TargetedStreams
	}

	var updated models.Posting
	err := s.c.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&updated)
	if err != nil {
		return models.Posting{}, err
	}
	return updated, nil
}

// FindForFeed returns the postings for one organization and session, newest
// first. A non-nil streams slice restricts the result to postings whose
// targeted streams intersect it; nil means no stream restriction. Matching
// nothing returns ErrNoPostings.
func (s *Store) FindForFeed(ctx context.Context, orgName string, session models.Session, streams []string) ([]models.Posting, error) {
	filter := bson.M{
		"organization":       orgName,
		"session.start_year": session.StartYear,
		"session.end_year":   session.EndYear,
	}
	if streams != nil {
		filter["targeted_streams"] = bson.M{"$in": streams}
	}

	cur, err := s.c.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var postings []models.Posting
	if err := cur.All(ctx, &postings); err != nil {
		return nil, err
	}
	if len(postings) == 0 {
		return nil, ErrNoPostings
	}
	return postings, nil
}

// ListRecent returns the most recent postings across all organizations,
// newest first, capped at limit.
func (s *Store) ListRecent(ctx context.Context, limit int64) ([]models.Posting, error) {
	cur, err := s.c.Find(ctx, bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var postings []models.Posting
	if err := cur.All(ctx, &postings); err != nil {
		return nil, err
	}
	return postings, nil
}

// CountByOrganization returns how many postings reference the organization.
func (s *Store) CountByOrganization(ctx context.Context, orgName string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"organization": orgName})
}

// Delete removes a posting by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

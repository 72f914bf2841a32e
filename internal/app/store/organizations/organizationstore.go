// internal/app/store/organizations/organizationstore.go
package organizationstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/campushub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

var ErrDuplicateOrganization = errors.New("an organization with this name already exists")

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("organizations")}
}

func (s *Store) Create(ctx context.Context, org models.Organization) (models.Organization, error) {
	now := time.Now().UTC()
	org.ID = primitive.NewObjectID()
	org.NameCI = text.Fold(org.Name)
	org.CreatedAt = now
	org.UpdatedAt = now
	_, err := s.c.InsertOne(ctx, org)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.Organization{}, ErrDuplicateOrganization
		}
		return models.Organization{}, err
	}
	return org, nil
}

func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&org)
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// GetByName loads an organization by exact (folded) name.
func (s *Store) GetByName(ctx context.Context, name string) (models.Organization, error) {
	var org models.Organization
	err := s.c.FindOne(ctx, bson.M{"name_ci": text.Fold(name)}).Decode(&org)
	if err != nil {
		return models.Organization{}, err
	}
	return org, nil
}

// DistinctSessions flattens every organization's session list and returns
// each distinct (start year, end year) pair exactly once, in no particular
// order. A pair shared by many organizations appears once. Intended for a
// small total session-pair cardinality; no pagination.
func (s *Store) DistinctSessions(ctx context.Context) ([]models.Session, error) {
	cur, err := s.c.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"sessions": 1}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	seen := make(map[models.Session]struct{})
	var out []models.Session
	for cur.Next(ctx) {
		var doc struct {
			Sessions []models.Session `bson:"sessions"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		for _, sess := range doc.Sessions {
			if _, dup := seen[sess]; dup {
				continue
			}
			seen[sess] = struct{}{}
			out = append(out, sess)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// FindBySession returns organizations that recruit in the given year pair.
// The caller applies stream visibility and session filtering on the result.
func (s *Store) FindBySession(ctx context.Context, startYear, endYear int) ([]models.Organization, error) {
	filter := bson.M{
		"sessions": bson.M{
			"$elemMatch": bson.M{
				"start_year": startYear,
				"end_year":   endYear,
			},
		},
	}
	cur, err := s.c.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var orgs []models.Organization
	if err := cur.All(ctx, &orgs); err != nil {
		return nil, err
	}
	return orgs, nil
}

// Delete removes an organization by ID. Returns the number of documents deleted (0 or 1).
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) (int64, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

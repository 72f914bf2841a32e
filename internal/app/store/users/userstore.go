// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"time"

	"github.com/dalemusser/campushub/internal/app/system/normalize"
	"github.com/dalemusser/campushub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

const bcryptCost = 12

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an email that already exists.
	ErrDuplicateEmail = errors.New("a user with this email already exists")
	errBadRole        = errors.New(`role must be "admin"|"student"`)
	errStreamNeeded   = errors.New("student must have a stream")
	errAdminStream    = errors.New("admin must not have a stream")
	errEmailNeeded    = errors.New("email is required")
)

// GetByID loads a user by ObjectID.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email. Returns mongo.ErrNoDocuments if not found.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Create inserts a new user after normalizing and validating fields. The
// password argument is hashed; plaintext is never stored.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.FullName = normalize.Name(u.FullName)
	u.FullNameCI = text.Fold(u.FullName)
	u.Email = normalize.Email(u.Email)
	u.Stream = normalize.Stream(u.Stream)

	if u.Email == "" {
		return models.User{}, errEmailNeeded
	}
	switch u.Role {
	case "student":
		if u.Stream == "" {
			return models.User{}, errStreamNeeded
		}
	case "admin":
		// An empty Stream is what marks the admin bypass; never store one.
		if u.Stream != "" {
			return models.User{}, errAdminStream
		}
	default:
		return models.User{}, errBadRole
	}

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
		if err != nil {
			return models.User{}, err
		}
		u.PasswordHash = string(hash)
	}

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// VerifyPassword checks a plaintext password against the stored hash.
func VerifyPassword(u *models.User, password string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// FindStudentsByStreams returns every student whose stream is in the given
// set. Used for notification fan-out when a posting is published.
func (s *Store) FindStudentsByStreams(ctx context.Context, streams []string) ([]models.User, error) {
	if len(streams) == 0 {
		return nil, nil
	}
	cur, err := s.c.Find(ctx, bson.M{
		"role":   "student",
		"stream": bson.M{"$in": streams},
	})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateProfile applies non-empty academic profile fields and refreshes
// UpdatedAt. Zero-valued fields keep their stored values.
func (s *Store) UpdateProfile(ctx context.Context, id primitive.ObjectID, u models.User) error {
	set := bson.M{
		"updated_at": time.Now().UTC(),
	}
	if u.FullName != "" {
		name := normalize.Name(u.FullName)
		set["full_name"] = name
		set["full_name_ci"] = text.Fold(name)
	}
	if u.RollNumber != "" {
		set["roll_number"] = u.RollNumber
	}
	if u.RegNumber != "" {
		set["reg_number"] = u.RegNumber
	}
	if u.MobileNumber != "" {
		set["mobile_number"] = u.MobileNumber
	}
	if u.CGPA != 0 {
		set["cgpa"] = u.CGPA
	}
	if u.TenthMarks != 0 {
		set["tenth_marks"] = u.TenthMarks
	}
	if u.TwelfthMarks != 0 {
		set["twelfth_marks"] = u.TwelfthMarks
	}
	_, err := s.c.UpdateByID(ctx, id, bson.M{"$set": set})
	return err
}

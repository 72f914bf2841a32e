package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/campushub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateOrganization creates a test organization with the given name, targeted
// streams, and sessions. Returns the created organization with its generated ID.
func (f *Fixtures) CreateOrganization(ctx context.Context, name string, streams []string, sessions []models.Session) models.Organization {
	f.t.Helper()

	now := time.Now().UTC()
	org := models.Organization{
		ID:              primitive.NewObjectID(),
		Name:            name,
		NameCI:          text.Fold(name),
		TargetedStreams: streams,
		Sessions:        sessions,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := f.db.Collection("organizations").InsertOne(ctx, org)
	if err != nil {
		f.t.Fatalf("failed to create test organization: %v", err)
	}

	return org
}

// CreateStudent creates a test user with the student role and the given stream.
func (f *Fixtures) CreateStudent(ctx context.Context, fullName, email, stream string) models.User {
	f.t.Helper()
	return f.createUser(ctx, fullName, email, "student", stream)
}

// CreateAdmin creates a test user with the admin role. Admins carry no stream.
func (f *Fixtures) CreateAdmin(ctx context.Context, fullName, email string) models.User {
	f.t.Helper()
	return f.createUser(ctx, fullName, email, "admin", "")
}

func (f *Fixtures) createUser(ctx context.Context, fullName, email, role, stream string) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	user := models.User{
		ID:         primitive.NewObjectID(),
		FullName:   fullName,
		FullNameCI: text.Fold(fullName),
		Email:      email,
		Role:       role,
		Stream:     stream,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := f.db.Collection("users").InsertOne(ctx, user)
	if err != nil {
		f.t.Fatalf("failed to create test user: %v", err)
	}

	return user
}

// CreatePosting creates a test posting tied to the given organization name,
// session, and targeted streams.
func (f *Fixtures) CreatePosting(ctx context.Context, title, orgName string, session models.Session, streams []string) models.Posting {
	f.t.Helper()

	now := time.Now().UTC()
	posting := models.Posting{
		ID:              primitive.NewObjectID(),
		Title:           title,
		Content:         "<p>" + title + "</p>",
		Organization:    orgName,
		Session:         session,
		TargetedStreams: streams,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	_, err := f.db.Collection("postings").InsertOne(ctx, posting)
	if err != nil {
		f.t.Fatalf("failed to create test posting: %v", err)
	}

	return posting
}

// CreateNotification creates a test notification for the given posting and
// recipient. Pass read=true to create an already-read entry.
func (f *Fixtures) CreateNotification(ctx context.Context, postingID, recipientID primitive.ObjectID, read bool) models.Notification {
	f.t.Helper()

	notif := models.Notification{
		ID:          primitive.NewObjectID(),
		PostingID:   postingID,
		RecipientID: recipientID,
		Content:     "test notification",
		Read:        read,
		CreatedAt:   time.Now().UTC(),
	}

	_, err := f.db.Collection("notifications").InsertOne(ctx, notif)
	if err != nil {
		f.t.Fatalf("failed to create test notification: %v", err)
	}

	return notif
}

// CreateFormResponse creates a test form response for the given posting and user.
func (f *Fixtures) CreateFormResponse(ctx context.Context, postingID, userID primitive.ObjectID) models.FormResponse {
	f.t.Helper()

	resp := models.FormResponse{
		ID:          primitive.NewObjectID(),
		PostingID:   postingID,
		UserID:      userID,
		Answers:     map[string]any{"resume": "https://example.com/resume.pdf"},
		SubmittedAt: time.Now().UTC(),
	}

	_, err := f.db.Collection("form_responses").InsertOne(ctx, resp)
	if err != nil {
		f.t.Fatalf("failed to create test form response: %v", err)
	}

	return resp
}

// Session is a convenience constructor for a session year pair.
func (f *Fixtures) Session(startYear, endYear int) models.Session {
	return models.Session{StartYear: startYear, EndYear: endYear}
}

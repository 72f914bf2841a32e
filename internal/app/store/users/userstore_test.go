package userstore_test

import (
	"errors"
	"strings"
	"testing"

	userstore "github.com/dalemusser/campushub/internal/app/store/users"
	"github.com/dalemusser/campushub/internal/app/system/indexes"
	"github.com/dalemusser/campushub/internal/domain/models"
	"github.com/dalemusser/campushub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestStore_Create_Student(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		FullName: "  Priya Sharma  ",
		Email:    "Priya@Example.COM",
		Role:     "student",
		Stream:   "cs",
	}, "s3cret-password")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.FullName != "Priya Sharma" {
		t.Errorf("FullName: got %q", u.FullName)
	}
	if u.Email != "priya@example.com" {
		t.Errorf("Email not normalized: got %q", u.Email)
	}
	if u.Stream != "CS" {
		t.Errorf("Stream not normalized: got %q", u.Stream)
	}
	if u.PasswordHash == "" || u.PasswordHash == "s3cret-password" {
		t.Error("expected hashed password")
	}
	if !strings.HasPrefix(u.PasswordHash, "$2") {
		t.Errorf("expected bcrypt hash, got %q", u.PasswordHash[:4])
	}
}

func TestStore_Create_Validation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	// Student without a stream.
	if _, err := store.Create(ctx, models.User{
		FullName: "No Stream",
		Email:    "nostream@example.com",
		Role:     "student",
	}, "pw"); err == nil {
		t.Error("expected error for student without stream")
	}

	// Admin with a stream would break the targeting bypass.
	if _, err := store.Create(ctx, models.User{
		FullName: "Bad Admin",
		Email:    "badadmin@example.com",
		Role:     "admin",
		Stream:   "CS",
	}, "pw"); err == nil {
		t.Error("expected error for admin with stream")
	}

	// Unknown role.
	if _, err := store.Create(ctx, models.User{
		FullName: "Bad Role",
		Email:    "badrole@example.com",
		Role:     "recruiter",
	}, "pw"); err == nil {
		t.Error("expected error for unknown role")
	}
}

func TestStore_Create_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	if err := indexes.EnsureAll(ctx, db); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}

	if _, err := store.Create(ctx, models.User{
		FullName: "First",
		Email:    "same@example.com",
		Role:     "student",
		Stream:   "CS",
	}, "pw"); err != nil {
		t.Fatalf("first Create failed: %v", err)
	}

	_, err := store.Create(ctx, models.User{
		FullName: "Second",
		Email:    "SAME@example.com",
		Role:     "student",
		Stream:   "EE",
	}, "pw")
	if !errors.Is(err, userstore.ErrDuplicateEmail) {
		t.Errorf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestStore_UpdateProfile_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		FullName: "Priya Sharma",
		Email:    "priya@example.com",
		Role:     "student",
		Stream:   "CS",
	}, "s3cret-password")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.UpdateProfile(ctx, u.ID, models.User{
		RollNumber: "21CS042",
		CGPA:       8.4,
	}); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	got, err := store.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.RollNumber != "21CS042" || got.CGPA != 8.4 {
		t.Errorf("profile not applied: %+v", got)
	}
	// Zero-valued fields keep their stored values.
	if got.FullName != "Priya Sharma" || got.Stream != "CS" {
		t.Errorf("partial update clobbered fields: %+v", got)
	}
	if got.UpdatedAt.Before(u.UpdatedAt) {
		t.Error("expected UpdatedAt to be refreshed")
	}
}

func TestVerifyPassword(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	u, err := store.Create(ctx, models.User{
		FullName: "Login User",
		Email:    "login@example.com",
		Role:     "student",
		Stream:   "CS",
	}, "correct-horse")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if !userstore.VerifyPassword(&u, "correct-horse") {
		t.Error("expected correct password to verify")
	}
	if userstore.VerifyPassword(&u, "wrong") {
		t.Error("expected wrong password to fail")
	}
	if userstore.VerifyPassword(&models.User{}, "anything") {
		t.Error("expected empty hash to fail")
	}
}

func TestStore_FindStudentsByStreams(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := userstore.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	fixtures.CreateStudent(ctx, "CS One", "cs1@example.com", "CS")
	fixtures.CreateStudent(ctx, "CS Two", "cs2@example.com", "CS")
	fixtures.CreateStudent(ctx, "EE One", "ee1@example.com", "EE")
	fixtures.CreateStudent(ctx, "ME One", "me1@example.com", "ME")
	fixtures.CreateAdmin(ctx, "Admin", "admin@example.com")

	students, err := store.FindStudentsByStreams(ctx, []string{"CS", "EE"})
	if err != nil {
		t.Fatalf("FindStudentsByStreams failed: %v", err)
	}
	if len(students) != 3 {
		t.Fatalf("expected 3 students, got %d", len(students))
	}
	for _, s := range students {
		if s.Role != "student" {
			t.Errorf("non-student %q in result", s.Email)
		}
		if s.Stream == "ME" {
			t.Errorf("ME student should not match")
		}
	}

	none, err := store.FindStudentsByStreams(ctx, nil)
	if err != nil {
		t.Fatalf("FindStudentsByStreams(nil) failed: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("expected no students for empty stream set, got %d", len(none))
	}
}

func TestFetcher_FetchUser(t *testing.T) {
	db := testutil.SetupTestDB(t)
	fixtures := testutil.NewFixtures(t, db)
	fetcher := userstore.NewFetcher(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "Fetch Me", "fetch@example.com", "CS")

	su := fetcher.FetchUser(ctx, student.ID.Hex())
	if su == nil {
		t.Fatal("expected session user, got nil")
	}
	if su.Name != "Fetch Me" || su.Role != "student" || su.Stream != "CS" {
		t.Errorf("unexpected session user: %+v", su)
	}

	if fetcher.FetchUser(ctx, "not-a-hex-id") != nil {
		t.Error("expected nil for malformed ID")
	}
	if fetcher.FetchUser(ctx, primitive.NewObjectID().Hex()) != nil {
		t.Error("expected nil for unknown ID")
	}
}

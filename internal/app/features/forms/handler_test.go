package forms_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	"github.com/dalemusser/campushub/internal/app/features/forms"
	"github.com/dalemusser/campushub/internal/app/system/indexes"
	"github.com/dalemusser/campushub/internal/domain/models"
	"github.com/dalemusser/campushub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newHandler(t *testing.T) (*forms.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	h := forms.NewHandler(db, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func userFor(u models.User) testutil.TestUser {
	return testutil.TestUser{
		ID:     u.ID.Hex(),
		Name:   u.FullName,
		Email:  u.Email,
		Role:   u.Role,
		Stream: u.Stream,
	}
}

func setupPostingAndStudent(t *testing.T, fixtures *testutil.Fixtures, ctx context.Context) (models.Posting, models.User) {
	t.Helper()
	if err := indexes.EnsureAll(ctx, fixtures.DB()); err != nil {
		t.Fatalf("EnsureAll failed: %v", err)
	}
	posting := fixtures.CreatePosting(ctx, "SDE Intern", "Acme", fixtures.Session(2025, 2026), []string{"CS"})
	student := fixtures.CreateStudent(ctx, "Priya Sharma", "priya@example.com", "CS")
	return posting, student
}

func submitReq(posting models.Posting, user testutil.TestUser, body string) *http.Request {
	req := testutil.WithUser(testutil.NewJSONRequest("POST",
		"/api/forms/postings/"+posting.ID.Hex(), body), user)
	return testutil.WithChiURLParam(req, "postingID", posting.ID.Hex())
}

func TestSubmit(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	posting, student := setupPostingAndStudent(t, fixtures, ctx)

	rec := testutil.NewRecorder()
	h.Submit(rec, submitReq(posting, userFor(student), `{"answers":{"resume":"https://example.com/r.pdf"}}`))

	rec.AssertStatus(t, http.StatusCreated)

	var resp models.FormResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if resp.Profile.FullName != "Priya Sharma" || resp.Profile.Email != "priya@example.com" {
		t.Errorf("profile snapshot missing: %+v", resp.Profile)
	}
	if resp.Answers["resume"] != "https://example.com/r.pdf" {
		t.Errorf("answers not stored: %v", resp.Answers)
	}
}

func TestSubmit_SecondAttemptConflicts(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	posting, student := setupPostingAndStudent(t, fixtures, ctx)

	rec := testutil.NewRecorder()
	h.Submit(rec, submitReq(posting, userFor(student), `{"answers":{"a":"1"}}`))
	rec.AssertStatus(t, http.StatusCreated)

	// The second attempt is rejected and the first response is untouched.
	rec = testutil.NewRecorder()
	h.Submit(rec, submitReq(posting, userFor(student), `{"answers":{"a":"2"}}`))
	rec.AssertStatus(t, http.StatusConflict)
	rec.AssertContains(t, "already submitted")

	var stored models.FormResponse
	err := fixtures.DB().Collection("form_responses").FindOne(ctx, bson.M{
		"posting_id": posting.ID,
		"user_id":    student.ID,
	}).Decode(&stored)
	if err != nil {
		t.Fatalf("FindOne failed: %v", err)
	}
	if stored.Answers["a"] != "1" {
		t.Errorf("first submission overwritten: %v", stored.Answers)
	}
}

func TestSubmit_MissingPosting(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "S", "s@example.com", "CS")
	ghost := models.Posting{ID: primitive.NewObjectID()}

	rec := testutil.NewRecorder()
	h.Submit(rec, submitReq(ghost, userFor(student), `{"answers":{}}`))
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestSubmit_OutsideStream(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	posting := fixtures.CreatePosting(ctx, "EE role", "Acme", fixtures.Session(2025, 2026), []string{"EE"})
	student := fixtures.CreateStudent(ctx, "CS Student", "cs@example.com", "CS")

	rec := testutil.NewRecorder()
	h.Submit(rec, submitReq(posting, userFor(student), `{"answers":{}}`))

	// Same response as a missing posting.
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestListByPosting(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	posting, student := setupPostingAndStudent(t, fixtures, ctx)
	fixtures.CreateFormResponse(ctx, posting.ID, student.ID)

	req := testutil.NewAuthenticatedRequest("GET",
		"/api/forms/postings/"+posting.ID.Hex()+"/responses", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "postingID", posting.ID.Hex())
	rec := testutil.NewRecorder()
	h.ListByPosting(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Responses []models.FormResponse `json:"responses"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Responses) != 1 {
		t.Errorf("expected 1 response, got %d", len(body.Responses))
	}
}

func TestListMine(t *testing.T) {
	h, fixtures := newHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	student := fixtures.CreateStudent(ctx, "S", "s@example.com", "CS")
	fixtures.CreateFormResponse(ctx, primitive.NewObjectID(), student.ID)
	fixtures.CreateFormResponse(ctx, primitive.NewObjectID(), student.ID)
	other := fixtures.CreateStudent(ctx, "O", "o@example.com", "CS")
	fixtures.CreateFormResponse(ctx, primitive.NewObjectID(), other.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/api/forms/mine", userFor(student))
	rec := testutil.NewRecorder()
	h.ListMine(rec, req)

	rec.AssertStatus(t, http.StatusOK)

	var body struct {
		Responses []models.FormResponse `json:"responses"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(body.Responses) != 2 {
		t.Errorf("expected 2 responses, got %d", len(body.Responses))
	}
}

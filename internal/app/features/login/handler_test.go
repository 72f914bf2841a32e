package login_test

import (
	"net/http"
	"testing"

	uierrors "github.com/dalemusser/campushub/internal/app/features/errors"
	"github.com/dalemusser/campushub/internal/app/features/login"
	"github.com/dalemusser/campushub/internal/domain/models"
	"github.com/dalemusser/campushub/internal/testutil"
	"go.uber.org/zap"
)

// sessionSpy records sign-in calls without a real cookie store.
type sessionSpy struct {
	signedInUserID string
	err            error
}

func (s *sessionSpy) SignIn(w http.ResponseWriter, r *http.Request, userID string) error {
	if s.err != nil {
		return s.err
	}
	s.signedInUserID = userID
	return nil
}

func newHandler(t *testing.T) (*login.Handler, *sessionSpy) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	spy := &sessionSpy{}
	h := login.NewHandler(db, spy, uierrors.NewErrorLogger(zap.NewNop()), zap.NewNop())
	return h, spy
}

func createAccount(t *testing.T, h *login.Handler, email, password string) models.User {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	u, err := h.Users.Create(ctx, models.User{
		FullName: "Login Test",
		Email:    email,
		Role:     "student",
		Stream:   "CS",
	}, password)
	if err != nil {
		t.Fatalf("create account failed: %v", err)
	}
	return u
}

func TestLogin_Success(t *testing.T) {
	h, spy := newHandler(t)
	u := createAccount(t, h, "student@example.com", "hunter2hunter2")

	req := testutil.NewJSONRequest("POST", "/api/login", `{"email":"student@example.com","password":"hunter2hunter2"}`)
	rec := testutil.NewRecorder()
	h.Login(rec, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, `"role":"student"`)
	if spy.signedInUserID != u.ID.Hex() {
		t.Errorf("signed in as %q, want %q", spy.signedInUserID, u.ID.Hex())
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	h, spy := newHandler(t)
	createAccount(t, h, "student@example.com", "hunter2hunter2")

	req := testutil.NewJSONRequest("POST", "/api/login", `{"email":"student@example.com","password":"wrong"}`)
	rec := testutil.NewRecorder()
	h.Login(rec, req)

	rec.AssertStatus(t, http.StatusUnauthorized)
	if spy.signedInUserID != "" {
		t.Error("session started for wrong password")
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest("POST", "/api/login", `{"email":"nobody@example.com","password":"whatever"}`)
	rec := testutil.NewRecorder()
	h.Login(rec, req)

	// Same status and message as a wrong password.
	rec.AssertStatus(t, http.StatusUnauthorized)
	rec.AssertContains(t, "Invalid email or password.")
}

func TestLogin_BadBody(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest("POST", "/api/login", `{not json`)
	rec := testutil.NewRecorder()
	h.Login(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}

func TestLogin_MissingFields(t *testing.T) {
	h, _ := newHandler(t)

	req := testutil.NewJSONRequest("POST", "/api/login", `{"email":"a@b.com"}`)
	rec := testutil.NewRecorder()
	h.Login(rec, req)

	rec.AssertStatus(t, http.StatusBadRequest)
}


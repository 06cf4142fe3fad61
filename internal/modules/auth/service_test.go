package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/printshophq/printshop-backend/internal/modules/user"
)

type fakeUserRepo struct {
	user.Repository
	u *user.User
}

func (f *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*user.User, error) {
	if f.u == nil || f.u.Email != email {
		return nil, errors.New("no rows")
	}
	return f.u, nil
}

func seedUser(t *testing.T, role string) *user.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse-battery"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	return &user.User{
		ID:           uuid.New(),
		Email:        "staff@shop.zm",
		PasswordHash: string(hash),
		Role:         role,
	}
}

func TestLoginIssuesUsableToken(t *testing.T) {
	u := seedUser(t, "staff")
	svc := NewService(&fakeUserRepo{u: u}, "test-secret", 5, time.Minute)

	token, err := svc.Login(context.Background(), "Staff@Shop.ZM", "correct-horse-battery")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// The guard must accept the token and place a session in context.
	guard := NewGuard("test-secret")
	var got *Session
	handler := guard.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = SessionFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got == nil || got.UserID != u.ID || got.Role != RoleStaff {
		t.Fatalf("unexpected session %+v", got)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	u := seedUser(t, "staff")
	svc := NewService(&fakeUserRepo{u: u}, "test-secret", 5, time.Minute)

	if _, err := svc.Login(context.Background(), u.Email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody@shop.zm", "x"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	u := seedUser(t, "staff")
	svc := NewService(&fakeUserRepo{u: u}, "test-secret", 2, time.Hour)

	for i := 0; i < 2; i++ {
		if _, err := svc.Login(context.Background(), u.Email, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
			t.Fatalf("attempt %d: %v", i+1, err)
		}
	}
	// Even the right password is refused during the cool-down.
	if _, err := svc.Login(context.Background(), u.Email, "correct-horse-battery"); !errors.Is(err, ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestGuardRejectsGarbageTokens(t *testing.T) {
	guard := NewGuard("test-secret")
	handler := guard.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler must not run")
	}))

	for _, header := range []string{"", "Bearer not-a-jwt", "Basic abc"} {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/jobs", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("header %q: expected 401, got %d", header, rec.Code)
		}
	}
}

func TestRequireGatesOnPermission(t *testing.T) {
	guard := NewGuard("test-secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	handler := guard.Require(PermManagePayroll)(next)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/payroll", nil)
	req = req.WithContext(WithSession(req.Context(), &Session{Role: RoleStaff}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff on payroll, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/payroll", nil)
	req = req.WithContext(WithSession(req.Context(), &Session{Role: RoleAdmin}))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin, got %d", rec.Code)
	}
}

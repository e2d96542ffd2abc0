package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/taskdeck/taskdeck/internal/auth"
	"github.com/taskdeck/taskdeck/internal/metrics"
	"github.com/taskdeck/taskdeck/internal/model"
	"github.com/taskdeck/taskdeck/internal/token"
)

func newAuthHandler(t *testing.T) (*AuthHandler, *token.Service) {
	t.Helper()

	store := newMemStore()
	hash, err := auth.HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if err := store.CreateUser(context.Background(), &model.User{
		Name:         "Alice",
		Email:        "alice@example.com",
		PasswordHash: hash,
	}); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	tokens := token.NewService("test-secret", 15*time.Minute, 168*time.Hour)
	sessions := auth.NewSessionManager(store, tokens, testLogger(), false)

	return NewAuthHandler(sessions, nil, testLogger()), tokens
}

func TestLoginEndpoint(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"success", `{"email":"alice@example.com","password":"s3cret-password"}`, http.StatusOK, ""},
		{"unknown_email", `{"email":"nobody@example.com","password":"s3cret-password"}`, http.StatusUnauthorized, "AUTHENTICATION_FAILED"},
		{"wrong_password", `{"email":"alice@example.com","password":"wrong-password"}`, http.StatusUnauthorized, "AUTHENTICATION_FAILED"},
		{"missing_fields", `{"email":"alice@example.com"}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"malformed_json", `{`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			h, _ := newAuthHandler(t)
			rec := httptest.NewRecorder()

			h.Login(rec, postJSON("/api/auth/login", test.body))

			if rec.Code != test.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, test.wantStatus)
			}
			if test.wantCode != "" {
				if resp := decodeError(t, rec); resp.Code != test.wantCode {
					t.Errorf("code = %s", resp.Code)
				}
				if len(rec.Result().Cookies()) != 0 {
					t.Error("failed login must not set cookies")
				}
				return
			}

			var names []string
			for _, c := range rec.Result().Cookies() {
				names = append(names, c.Name)
			}
			if len(names) != 2 {
				t.Fatalf("cookies = %v, want access and refresh", names)
			}
		})
	}
}

// failingUserFinder simulates the database being unreachable.
type failingUserFinder struct{}

func (failingUserFinder) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, errors.New("connection refused")
}

func TestLoginFailureMetricCountsCredentialFailuresOnly(t *testing.T) {
	tokens := token.NewService("test-secret", 15*time.Minute, 168*time.Hour)
	body := `{"email":"alice@example.com","password":"wrong-password"}`

	t.Run("bad_credentials", func(t *testing.T) {
		store := newMemStore()
		hash, err := auth.HashPassword("s3cret-password")
		if err != nil {
			t.Fatalf("HashPassword: %v", err)
		}
		if err := store.CreateUser(context.Background(), &model.User{
			Name:         "Alice",
			Email:        "alice@example.com",
			PasswordHash: hash,
		}); err != nil {
			t.Fatalf("CreateUser: %v", err)
		}

		recorder := metrics.NewInMemory()
		sessions := auth.NewSessionManager(store, tokens, testLogger(), false)
		h := NewAuthHandler(sessions, recorder, testLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, postJSON("/api/auth/login", body))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := recorder.Snapshot().LoginFailures; got != 1 {
			t.Errorf("login failures = %d, want 1", got)
		}
	})

	t.Run("store_error", func(t *testing.T) {
		recorder := metrics.NewInMemory()
		sessions := auth.NewSessionManager(failingUserFinder{}, tokens, testLogger(), false)
		h := NewAuthHandler(sessions, recorder, testLogger())

		rec := httptest.NewRecorder()
		h.Login(rec, postJSON("/api/auth/login", body))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("status = %d", rec.Code)
		}
		if got := recorder.Snapshot().LoginFailures; got != 0 {
			t.Errorf("login failures = %d, want 0", got)
		}
	})
}

func TestRefreshEndpoint(t *testing.T) {
	h, tokens := newAuthHandler(t)

	t.Run("valid_cookie", func(t *testing.T) {
		refresh, err := tokens.IssueRefresh("alice@example.com")
		if err != nil {
			t.Fatalf("IssueRefresh: %v", err)
		}

		req := postJSON("/api/auth/refresh", "")
		req.AddCookie(&http.Cookie{Name: auth.RefreshTokenCookie, Value: refresh})
		rec := httptest.NewRecorder()

		h.Refresh(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}

		var gotAccess bool
		for _, c := range rec.Result().Cookies() {
			if c.Name == auth.AccessTokenCookie {
				gotAccess = true
			}
		}
		if !gotAccess {
			t.Error("expected a fresh access cookie")
		}
	})

	t.Run("missing_cookie", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.Refresh(rec, postJSON("/api/auth/refresh", ""))

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d", rec.Code)
		}
	})
}

func TestLogoutEndpoint(t *testing.T) {
	h, _ := newAuthHandler(t)

	rec := httptest.NewRecorder()
	h.Logout(rec, postJSON("/api/auth/logout", ""))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	cleared := 0
	for _, c := range rec.Result().Cookies() {
		if c.Value == "" && c.MaxAge < 0 {
			cleared++
		}
	}
	if cleared != 2 {
		t.Errorf("cleared %d cookies, want 2", cleared)
	}
}

package token

import (
	"errors"
	"testing"
	"time"
)

func TestIssueAndValidate(t *testing.T) {
	svc := NewService("test-secret", 15*time.Minute, 7*24*time.Hour)

	access, err := svc.IssueAccess("alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	if !svc.Validate(access) {
		t.Fatal("expected freshly issued access token to validate")
	}

	subject, err := svc.Subject(access)
	if err != nil {
		t.Fatalf("Subject: %v", err)
	}
	if subject != "alice@example.com" {
		t.Errorf("expected subject alice@example.com, got %s", subject)
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewService("test-secret", -1*time.Minute, 7*24*time.Hour)

	expired, err := svc.IssueAccess("alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	if svc.Validate(expired) {
		t.Fatal("expected expired token to be invalid")
	}

	if _, err := svc.Subject(expired); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}

func TestValidateRejectsWrongKey(t *testing.T) {
	issuer := NewService("secret-one", 15*time.Minute, time.Hour)
	verifier := NewService("secret-two", 15*time.Minute, time.Hour)

	token, err := issuer.IssueAccess("alice@example.com")
	if err != nil {
		t.Fatalf("IssueAccess: %v", err)
	}

	if verifier.Validate(token) {
		t.Fatal("expected token signed with a different key to be invalid")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := NewService("test-secret", 15*time.Minute, time.Hour)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"not_a_jwt", "not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9.eyJzdWIi"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if svc.Validate(test.token) {
				t.Fatal("expected invalid")
			}
			if _, err := svc.Subject(test.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestRefreshOutlivesAccess(t *testing.T) {
	svc := NewService("test-secret", 1*time.Minute, 2*time.Hour)

	if svc.AccessTTL() >= svc.RefreshTTL() {
		t.Fatal("expected refresh lifetime to exceed access lifetime")
	}

	refresh, err := svc.IssueRefresh("bob@example.com")
	if err != nil {
		t.Fatalf("IssueRefresh: %v", err)
	}
	if !svc.Validate(refresh) {
		t.Fatal("expected refresh token to validate")
	}
}

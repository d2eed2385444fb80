package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	svc, err := NewTokenService("test-secret", 30*time.Minute)
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	token, err := svc.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != "user-123" {
		t.Errorf("expected user-123, got %q", userID)
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc, _ := NewTokenService("test-secret", 30*time.Minute)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): expected ErrInvalidToken, got %v", tok, err)
		}
	}
}

func TestVerifyExpired(t *testing.T) {
	svc, _ := NewTokenService("test-secret", 30*time.Minute)
	claims := jwt.RegisteredClaims{
		Subject:   "user-123",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-30 * time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyBadSignature(t *testing.T) {
	issuer, _ := NewTokenService("secret-one", 30*time.Minute)
	verifier, _ := NewTokenService("secret-two", 30*time.Minute)
	token, err := issuer.Issue("user-123")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for wrong key, got %v", err)
	}
}

func TestVerifyMissingSubject(t *testing.T) {
	svc, _ := NewTokenService("test-secret", 30*time.Minute)
	claims := jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(svc.secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}

func TestNewTokenServiceRejectsBadConfig(t *testing.T) {
	if _, err := NewTokenService("", time.Minute); err == nil {
		t.Error("expected error for empty secret")
	}
	if _, err := NewTokenService("secret", 0); err == nil {
		t.Error("expected error for zero TTL")
	}
}

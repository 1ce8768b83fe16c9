package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "0123456789abcdef0123"

func TestNewTokenService_WeakSecret(t *testing.T) {
	if _, err := NewTokenService("short", time.Hour); !errors.Is(err, ErrWeakSecret) {
		t.Fatalf("got %v; want ErrWeakSecret", err)
	}
	s, err := NewTokenService(testSecret, 0)
	if err != nil || s.TTL() != 24*time.Hour {
		t.Fatalf("default ttl not applied: %v %v", s, err)
	}
}

func TestGenerateValidate_RoundTrip(t *testing.T) {
	s, _ := NewTokenService(testSecret, time.Hour)
	tok, exp, err := s.Generate("user-1")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry in the past: %v", exp)
	}
	sub, err := s.Validate(tok)
	if err != nil || sub != "user-1" {
		t.Fatalf("Validate = %q, %v", sub, err)
	}
}

func TestValidate_Expired(t *testing.T) {
	s, _ := NewTokenService(testSecret, time.Minute)
	s.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	tok, _, err := s.Generate("u")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	s.now = time.Now
	if _, err := s.Validate(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("got %v; want ErrTokenExpired", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	s, _ := NewTokenService(testSecret, time.Hour)
	other, _ := NewTokenService("another-secret-value", time.Hour)
	foreign, _, _ := other.Generate("u")

	noneTok, _ := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u",
		Issuer:    Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)

	wrongIss, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u",
		Issuer:    "someone-else",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))

	noSub, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Issuer:    Issuer,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))

	for name, tok := range map[string]string{
		"garbage":      "not.a.jwt",
		"wrong secret": foreign,
		"alg none":     noneTok,
		"wrong issuer": wrongIss,
		"no subject":   noSub,
	} {
		if _, err := s.Validate(tok); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("%s: got %v; want ErrInvalidToken", name, err)
		}
	}
}

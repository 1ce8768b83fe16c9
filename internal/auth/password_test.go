package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	ps := NewPasswordService(4)

	hash, err := ps.Hash("correct horse")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("Hash() does not look like a bcrypt hash: %q", hash)
	}
	if err := ps.Verify(hash, "correct horse"); err != nil {
		t.Fatalf("Verify(correct) = %v", err)
	}
	if err := ps.Verify(hash, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("Verify(wrong) = %v; want ErrPasswordMismatch", err)
	}
	if err := ps.Verify("not-a-hash", "x"); err == nil || errors.Is(err, ErrPasswordMismatch) {
		t.Fatalf("Verify(malformed) = %v; want non-mismatch error", err)
	}

	other, _ := ps.Hash("correct horse")
	if other == hash {
		t.Fatalf("same password should produce different salts")
	}
}

func TestHash_TooLong(t *testing.T) {
	_, err := NewPasswordService(4).Hash(strings.Repeat("a", 73))
	if !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("got %v; want ErrPasswordTooLong", err)
	}
}

func TestNewPasswordService_CostBounds(t *testing.T) {
	if NewPasswordService(1).cost != DefaultCost {
		t.Fatalf("out-of-range cost should fall back to default")
	}
	if NewPasswordService(5).cost != 5 {
		t.Fatalf("valid cost should be kept")
	}
}

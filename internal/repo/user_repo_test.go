package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

func ptr[T any](v T) *T { return &v }

func TestCreateUser_AndLookup(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()

	u, err := CreateUser(ctx, db, "ann", "hash", &domain.User{HeightCm: ptr(170.0), Age: ptr(31)})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if len(u.ID) != 36 || u.CreatedAt.IsZero() {
		t.Fatalf("unexpected user: %+v", u)
	}

	byID, err := GetUser(ctx, db, u.ID)
	if err != nil || byID.Username != "ann" || byID.HeightCm == nil || *byID.HeightCm != 170 || byID.WeightKg != nil {
		t.Fatalf("GetUser = %+v, %v", byID, err)
	}
	byName, err := GetUserByUsername(ctx, db, "ann")
	if err != nil || byName.ID != u.ID {
		t.Fatalf("GetUserByUsername = %+v, %v", byName, err)
	}
	if _, err := GetUser(ctx, db, "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	if _, err := CreateUser(ctx, db, "ann", "h", nil); err != nil {
		t.Fatalf("first: %v", err)
	}
	_, err := CreateUser(ctx, db, "ann", "h", nil)
	if err == nil {
		t.Fatalf("expected unique violation")
	}
	if !IsUniqueViolation(err) {
		t.Fatalf("IsUniqueViolation(%v) = false", err)
	}
}

func TestUpdateUserFields(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	u, _ := CreateUser(ctx, db, "ann", "h", nil)

	if err := UpdateUserFields(ctx, db, u.ID, map[string]any{}); err != nil {
		t.Fatalf("empty update: %v", err)
	}
	if err := UpdateUserFields(ctx, db, u.ID, map[string]any{"weight_kg": 72.5, "gender": "male"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	got, _ := GetUser(ctx, db, u.ID)
	if got.WeightKg == nil || *got.WeightKg != 72.5 || got.Gender == nil || *got.Gender != "male" {
		t.Fatalf("fields not applied: %+v", got)
	}
	if err := UpdateUserFields(ctx, db, "missing", map[string]any{"age": 3}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	if IsUniqueViolation(nil) {
		t.Fatalf("nil should not be a violation")
	}
	if !IsUniqueViolation(errors.New("UNIQUE constraint failed: users.username")) {
		t.Fatalf("sqlite message not detected")
	}
	if IsUniqueViolation(errors.New("disk I/O error")) {
		t.Fatalf("unrelated error detected as violation")
	}
}

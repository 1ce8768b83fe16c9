// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a user is not found, functions return gorm.ErrRecordNotFound
//     (also exported as ErrNotFound).
//   - A duplicate username surfaces as the raw unique-constraint error; the
//     service layer translates it (see IsUniqueViolation).
//
// Functions:
//
//   - CreateUser(ctx, db, username, passwordHash, profile) -> *domain.User, error
//   - GetUser(ctx, db, id) -> *domain.User, error
//   - GetUserByUsername(ctx, db, username) -> *domain.User, error
//   - UpdateUserFields(ctx, db, id, fields) -> error
package repo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
)

// CreateUser inserts a new user with a random UUID primary key. Profile
// fields are copied from profile when it is non-nil.
func CreateUser(ctx context.Context, db *gorm.DB, username, passwordHash string, profile *domain.User) (*domain.User, error) {
	now := time.Now().UTC()
	u := &domain.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if profile != nil {
		u.HeightCm = profile.HeightCm
		u.WeightKg = profile.WeightKg
		u.Age = profile.Age
		u.Gender = profile.Gender
	}
	if err := db.WithContext(ctx).Create(u).Error; err != nil {
		return nil, err
	}
	return u, nil
}

// GetUser fetches a user by id, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByUsername fetches a user by login name, or ErrNotFound.
func GetUserByUsername(ctx context.Context, db *gorm.DB, username string) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UpdateUserFields applies a column->value map to the user row. An empty map
// is a no-op. Returns ErrNotFound when no row matches id.
func UpdateUserFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsUniqueViolation reports whether err is a unique-constraint failure.
// The pure-Go SQLite driver exposes no typed error, so the message is matched.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "constraint failed: unique") ||
		strings.Contains(msg, "duplicate key")
}

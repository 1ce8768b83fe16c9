// Package services – UserService
//
// UserService manages accounts (registration, login) and the body profile
// that BMI and calorie computations read. Profile applies the documented
// fallbacks for fields a user never filled in.

package services

import (
	"context"
	"errors"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/tbourn/go-nutrition-backend/internal/auth"
	"github.com/tbourn/go-nutrition-backend/internal/domain"
	"github.com/tbourn/go-nutrition-backend/internal/metrics"
	"github.com/tbourn/go-nutrition-backend/internal/repo"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Profile fallbacks.
const (
	FallbackWeightKg = 70.0
	FallbackAge      = 30
	MinPasswordLen   = 6
	maxUsernameRunes = 64
)

// ProfileUpdate carries optional profile changes; nil fields are untouched.
type ProfileUpdate struct {
	HeightCm *float64
	WeightKg *float64
	Age      *int
	Gender   *string
	Password *string
}

// LoginResult is returned by a successful Login. Token is empty when no
// TokenService is configured.
type LoginResult struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// UserService manages users and their profiles.
type UserService struct {
	DB              *gorm.DB
	Passwords       *auth.PasswordService
	Tokens          *auth.TokenService
	DefaultHeightCm float64
}

func (s *UserService) passwords() *auth.PasswordService {
	if s.Passwords == nil {
		return auth.NewPasswordService(auth.DefaultCost)
	}
	return s.Passwords
}

// Register creates an account. Profile fields in p are optional.
func (s *UserService) Register(ctx context.Context, username, password string, p ProfileUpdate) (*domain.User, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "Register")
	defer span.End()

	username = strings.TrimSpace(username)
	if n := utf8.RuneCountInString(username); n < 3 || n > maxUsernameRunes {
		return nil, invalid("username", "must be between 3 and 64 characters")
	}
	if err := validPassword(password); err != nil {
		return nil, err
	}
	profile, err := profileFields(p)
	if err != nil {
		return nil, err
	}

	hash, err := s.passwords().Hash(password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			return nil, invalid("password", err.Error())
		}
		return nil, err
	}

	u, err := repo.CreateUser(ctx, s.DB, username, hash, profile)
	if err != nil {
		if repo.IsUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		span.RecordError(err)
		return nil, storageErr(err)
	}
	span.SetAttributes(attribute.String("user.id", u.ID))
	logger(ctx).Info().Str("user_id", u.ID).Msg("user registered")
	return u, nil
}

// Login verifies credentials and, when a TokenService is configured, issues
// a bearer token. Unknown usernames and wrong passwords both return
// ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "Login")
	defer span.End()

	u, err := repo.GetUserByUsername(ctx, s.DB, strings.TrimSpace(username))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, storageErr(err)
	}
	if err := s.passwords().Verify(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	res := &LoginResult{User: u}
	if s.Tokens != nil {
		tok, exp, err := s.Tokens.Generate(u.ID)
		if err != nil {
			return nil, err
		}
		res.Token, res.ExpiresAt = tok, exp
	}
	span.SetAttributes(attribute.String("user.id", u.ID))
	return res, nil
}

// Get returns the user with id.
func (s *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, storageErr(err)
	}
	return u, nil
}

// UpdateProfile applies the non-nil fields of p and returns the updated user.
func (s *UserService) UpdateProfile(ctx context.Context, id string, p ProfileUpdate) (*domain.User, error) {
	tr := otel.Tracer("services/UserService")
	ctx, span := tr.Start(ctx, "UpdateProfile",
		trace.WithAttributes(attribute.String("user.id", id)),
	)
	defer span.End()

	profile, err := profileFields(p)
	if err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if profile != nil {
		if profile.HeightCm != nil {
			fields["height_cm"] = *profile.HeightCm
		}
		if profile.WeightKg != nil {
			fields["weight_kg"] = *profile.WeightKg
		}
		if profile.Age != nil {
			fields["age"] = *profile.Age
		}
		if profile.Gender != nil {
			fields["gender"] = *profile.Gender
		}
	}
	if p.Password != nil {
		if err := validPassword(*p.Password); err != nil {
			return nil, err
		}
		hash, err := s.passwords().Hash(*p.Password)
		if err != nil {
			if errors.Is(err, auth.ErrPasswordTooLong) {
				return nil, invalid("password", err.Error())
			}
			return nil, err
		}
		fields["password_hash"] = hash
	}

	if len(fields) > 0 {
		if err := repo.UpdateUserFields(ctx, s.DB, id, fields); err != nil {
			if isNotFound(err) {
				return nil, ErrUserNotFound
			}
			return nil, storageErr(err)
		}
	}
	return s.Get(ctx, id)
}

// Profile returns the body data of user id with fallbacks applied: height
// DefaultHeightCm (175 cm), weight from the latest weight log, then the
// profile, then 70 kg, and age 30. An unknown gender selects the non-male
// coefficients.
func (s *UserService) Profile(ctx context.Context, id string) (metrics.Profile, error) {
	u, err := s.Get(ctx, id)
	if err != nil {
		return metrics.Profile{}, err
	}

	p := metrics.Profile{
		HeightCm: s.defaultHeight(),
		WeightKg: FallbackWeightKg,
		Age:      FallbackAge,
	}
	if u.HeightCm != nil && *u.HeightCm > 0 {
		p.HeightCm = *u.HeightCm
	}
	if u.WeightKg != nil && *u.WeightKg > 0 {
		p.WeightKg = *u.WeightKg
	}
	if w, err := repo.LatestWeight(ctx, s.DB, id); err == nil {
		p.WeightKg = w.WeightKg
	} else if !isNotFound(err) {
		return metrics.Profile{}, storageErr(err)
	}
	if u.Age != nil && *u.Age > 0 {
		p.Age = *u.Age
	}
	if u.Gender != nil {
		p.Gender = *u.Gender
	}
	return p, nil
}

func (s *UserService) defaultHeight() float64 {
	if s.DefaultHeightCm > 0 {
		return s.DefaultHeightCm
	}
	return metrics.DefaultHeightCm
}

var genders = map[string]struct{}{"male": {}, "female": {}, "other": {}}

// profileFields validates p and returns the normalized profile fields, or nil
// when p sets none of them.
func profileFields(p ProfileUpdate) (*domain.User, error) {
	if p.HeightCm == nil && p.WeightKg == nil && p.Age == nil && p.Gender == nil {
		return nil, nil
	}
	u := &domain.User{}
	if p.HeightCm != nil {
		if !positiveFinite(*p.HeightCm) {
			return nil, invalid("height_cm", "must be greater than zero")
		}
		u.HeightCm = p.HeightCm
	}
	if p.WeightKg != nil {
		if !positiveFinite(*p.WeightKg) {
			return nil, invalid("weight_kg", "must be greater than zero")
		}
		u.WeightKg = p.WeightKg
	}
	if p.Age != nil {
		if *p.Age <= 0 || *p.Age > 150 {
			return nil, invalid("age", "must be between 1 and 150")
		}
		u.Age = p.Age
	}
	if p.Gender != nil {
		g := strings.ToLower(strings.TrimSpace(*p.Gender))
		if _, ok := genders[g]; !ok {
			return nil, invalid("gender", "must be one of male, female, other")
		}
		u.Gender = &g
	}
	return u, nil
}

func validPassword(pw string) error {
	if utf8.RuneCountInString(pw) < MinPasswordLen {
		return invalid("password", "must be at least 6 characters")
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

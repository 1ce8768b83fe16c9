// Package services – WeightService
//
// WeightService records body-weight measurements, at most one per user and
// date, and serves the history in date order. The user's profile weight
// follows the most recent measurement.

package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-nutrition-backend/internal/domain"
	"github.com/tbourn/go-nutrition-backend/internal/metrics"
	"github.com/tbourn/go-nutrition-backend/internal/repo"
	"github.com/tbourn/go-nutrition-backend/internal/utils"

	// OpenTelemetry
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// WeightPoint is a weight log annotated with BMI for charting.
type WeightPoint struct {
	LogID     uint64              `json:"log_id"`
	Date      string              `json:"date"`
	WeightKg  float64             `json:"weight_kg"`
	WeightLbs float64             `json:"weight_lbs"`
	BMI       float64             `json:"bmi"`
	Category  metrics.BMICategory `json:"category"`
}

// WeightService manages weight logs.
type WeightService struct {
	DB              *gorm.DB
	DefaultHeightCm float64
}

// LogWeight records weightKg for userID on date, replacing any value already
// logged that day. When date is the user's most recent log the profile
// weight is updated in the same transaction.
func (s *WeightService) LogWeight(ctx context.Context, userID, date string, weightKg float64) (*domain.WeightLog, error) {
	tr := otel.Tracer("services/WeightService")
	ctx, span := tr.Start(ctx, "LogWeight",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("log.date", date),
		),
	)
	defer span.End()

	d, err := utils.ParseDate(date)
	if err != nil {
		return nil, invalid("date", err.Error())
	}
	if !positiveFinite(weightKg) {
		return nil, invalid("weight_kg", "must be greater than zero")
	}

	var out *domain.WeightLog
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := repo.GetUser(ctx, tx, userID); err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return storageErr(err)
		}
		w, err := repo.UpsertWeight(ctx, tx, userID, d, weightKg)
		if err != nil {
			return storageErr(err)
		}
		latest, err := repo.LatestWeight(ctx, tx, userID)
		if err != nil {
			return storageErr(err)
		}
		if latest.Date == d {
			if err := repo.UpdateUserFields(ctx, tx, userID, map[string]any{"weight_kg": weightKg}); err != nil {
				return storageErr(err)
			}
		}
		out = w
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return out, nil
}

// History returns userID's weight logs ordered by date ascending; the last
// element is the latest measurement.
func (s *WeightService) History(ctx context.Context, userID string) ([]domain.WeightLog, error) {
	logs, err := repo.ListWeights(ctx, s.DB, userID)
	if err != nil {
		return nil, storageErr(err)
	}
	return logs, nil
}

// Latest returns the most recent weight log, or ErrWeightLogNotFound.
func (s *WeightService) Latest(ctx context.Context, userID string) (*domain.WeightLog, error) {
	w, err := repo.LatestWeight(ctx, s.DB, userID)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrWeightLogNotFound
		}
		return nil, storageErr(err)
	}
	return w, nil
}

// HistoryWithBMI returns the history with BMI computed from the user's
// height, or the default height when none is recorded.
func (s *WeightService) HistoryWithBMI(ctx context.Context, userID string) ([]WeightPoint, error) {
	tr := otel.Tracer("services/WeightService")
	ctx, span := tr.Start(ctx, "HistoryWithBMI",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	height := s.DefaultHeightCm
	if height <= 0 {
		height = metrics.DefaultHeightCm
	}
	u, err := repo.GetUser(ctx, s.DB, userID)
	switch {
	case err == nil:
		if u.HeightCm != nil && *u.HeightCm > 0 {
			height = *u.HeightCm
		}
	case isNotFound(err):
		return nil, ErrUserNotFound
	default:
		return nil, storageErr(err)
	}

	logs, err := s.History(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]WeightPoint, 0, len(logs))
	for _, w := range logs {
		bmi, err := metrics.BMI(w.WeightKg, height)
		if err != nil {
			return nil, invalid("weight_kg", err.Error())
		}
		out = append(out, WeightPoint{
			LogID:     w.ID,
			Date:      w.Date,
			WeightKg:  w.WeightKg,
			WeightLbs: metrics.KgToPounds(w.WeightKg),
			BMI:       bmi,
			Category:  metrics.Category(bmi),
		})
	}
	return out, nil
}

// UpdateByID changes the weight of log id and returns the rows affected.
// A non-empty userID restricts the update to that user's logs. Correcting the
// latest log also moves the profile weight.
func (s *WeightService) UpdateByID(ctx context.Context, userID string, id uint64, weightKg float64) (int64, error) {
	if !positiveFinite(weightKg) {
		return 0, invalid("weight_kg", "must be greater than zero")
	}
	var n int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := repo.GetWeightByID(ctx, tx, userID, id)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return storageErr(err)
		}
		latest, err := repo.LatestWeight(ctx, tx, w.UserID)
		if err != nil {
			return storageErr(err)
		}
		if n, err = repo.UpdateWeightByID(ctx, tx, userID, id, weightKg); err != nil {
			return storageErr(err)
		}
		if latest.ID == w.ID {
			return syncProfileWeight(ctx, tx, w.UserID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteByID removes log id and returns the rows affected. A non-empty
// userID restricts the delete to that user's logs. Removing the latest log
// moves the profile weight to the new latest; with no logs left the profile
// keeps its last value.
func (s *WeightService) DeleteByID(ctx context.Context, userID string, id uint64) (int64, error) {
	var n int64
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		w, err := repo.GetWeightByID(ctx, tx, userID, id)
		if err != nil {
			if isNotFound(err) {
				return nil
			}
			return storageErr(err)
		}
		latest, err := repo.LatestWeight(ctx, tx, w.UserID)
		if err != nil {
			return storageErr(err)
		}
		if n, err = repo.DeleteWeightByID(ctx, tx, userID, id); err != nil {
			return storageErr(err)
		}
		if latest.ID == w.ID {
			return syncProfileWeight(ctx, tx, w.UserID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// syncProfileWeight copies the latest logged weight onto the user row.
func syncProfileWeight(ctx context.Context, tx *gorm.DB, userID string) error {
	latest, err := repo.LatestWeight(ctx, tx, userID)
	switch {
	case isNotFound(err):
		return nil
	case err != nil:
		return storageErr(err)
	}
	if err := repo.UpdateUserFields(ctx, tx, userID, map[string]any{"weight_kg": latest.WeightKg}); err != nil {
		return storageErr(err)
	}
	return nil
}

// Version reports the number of weight logs and the latest change time.
func (s *WeightService) Version(ctx context.Context, userID string) (int64, *time.Time, error) {
	n, ts, err := repo.WeightStats(ctx, s.DB, userID)
	if err != nil {
		return 0, nil, storageErr(err)
	}
	return n, ts, nil
}

// Package domain defines the persistence models for users, the food catalog,
// food logs, weight logs, and cached nutrition searches. These types are
// mapped with GORM and form the core data layer of the nutrition backend.
package domain

import (
	"time"

	"gorm.io/datatypes"
)

// User is the owner of food and weight logs. Profile fields are optional;
// consumers that need them (BMI, calorie targets) apply documented fallbacks
// when a field is nil.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - Username: unique login name.
//   - PasswordHash: bcrypt hash, never serialized.
//   - HeightCm / WeightKg / Age / Gender: optional profile data.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID           string    `json:"id"                  gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username"            gorm:"type:varchar(64);not null;uniqueIndex:ux_users_username"`
	PasswordHash string    `json:"-"                   gorm:"type:varchar(255);not null"`
	HeightCm     *float64  `json:"height_cm,omitempty"`
	WeightKg     *float64  `json:"weight_kg,omitempty"`
	Age          *int      `json:"age,omitempty"`
	Gender       *string   `json:"gender,omitempty"    gorm:"type:varchar(16)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// FoodItem is the canonical, per-serving nutrient record for a food. The
// FoodID comes from the external nutrition source and is globally unique.
// Once stored, a FoodItem is never updated: re-insertion is a no-op.
type FoodItem struct {
	FoodID      string    `json:"food_id"      gorm:"column:food_id;type:varchar(64);primaryKey"`
	Name        string    `json:"name"         gorm:"type:varchar(255);not null"`
	ServingSize float64   `json:"serving_size" gorm:"column:default_serving_size;not null;default:1"`
	Calories    float64   `json:"calories"     gorm:"not null;default:0"`
	Protein     float64   `json:"protein"      gorm:"column:protein_g;not null;default:0"`
	Carbs       float64   `json:"carbs"        gorm:"column:carbs_g;not null;default:0"`
	Fat         float64   `json:"fat"          gorm:"column:fat_g;not null;default:0"`
	CreatedAt   time.Time `json:"-"`

	// Declared on the parent so the constraint lands on food_logs; both
	// tables carry a food_id column and a child-side field reads as has-one.
	Logs []FoodLog `json:"-" gorm:"foreignKey:FoodID;references:FoodID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for FoodItem.
func (FoodItem) TableName() string { return "food_items" }

// FoodLog records how many servings of a food a user ate at a meal on a day.
// The natural key (user_id, food_id, date, meal_type) is unique; logging the
// same key again overwrites Quantity.
//
// Logs are hard-deleted: a soft-deleted row would still occupy the natural
// key and block a later upsert.
type FoodLog struct {
	ID        uint64    `json:"log_id"    gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id"   gorm:"type:char(36);not null;uniqueIndex:ux_food_logs_natural,priority:1;index:idx_food_logs_user_date,priority:1"`
	FoodID    string    `json:"food_id"   gorm:"column:food_id;type:varchar(64);not null;uniqueIndex:ux_food_logs_natural,priority:2"`
	Date      string    `json:"date"      gorm:"type:char(10);not null;uniqueIndex:ux_food_logs_natural,priority:3;index:idx_food_logs_user_date,priority:2"`
	MealType  MealType  `json:"meal_type" gorm:"type:varchar(16);not null;uniqueIndex:ux_food_logs_natural,priority:4;check:meal_type IN ('breakfast','lunch','dinner','snack')"`
	Quantity  float64   `json:"quantity"  gorm:"not null;check:quantity > 0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for FoodLog.
func (FoodLog) TableName() string { return "food_logs" }

// WeightLog is a single body-weight measurement. At most one row exists per
// (user_id, date).
type WeightLog struct {
	ID        uint64    `json:"log_id"    gorm:"primaryKey;autoIncrement"`
	UserID    string    `json:"user_id"   gorm:"type:char(36);not null;uniqueIndex:ux_weight_logs_user_date,priority:1"`
	Date      string    `json:"date"      gorm:"type:char(10);not null;uniqueIndex:ux_weight_logs_user_date,priority:2"`
	WeightKg  float64   `json:"weight_kg" gorm:"not null;check:weight_kg > 0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for WeightLog.
func (WeightLog) TableName() string { return "weight_logs" }

// SearchCacheEntry memoizes one external search: the normalized query maps to
// the ordered, mapped result list (stored as JSON). Rows are derived data and
// may be dropped at any time.
type SearchCacheEntry struct {
	Query     string         `gorm:"type:varchar(255);primaryKey"`
	Results   datatypes.JSON `gorm:"type:text;not null"`
	CreatedAt time.Time      `gorm:"autoCreateTime"`
}

// TableName returns the database table name for SearchCacheEntry.
func (SearchCacheEntry) TableName() string { return "search_cache" }

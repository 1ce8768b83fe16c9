// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes application settings
// such as server timeouts, logging, storage, the nutrition lookup source, the
// search cache, calorie-target policy, authentication, rate limiting, and
// observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-nutrition-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// NutritionConfig configures the external food lookup (USDA FoodData Central).
type NutritionConfig struct {
	APIKey        string        // USDA_API_KEY
	BaseURL       string        // USDA_BASE_URL
	PageSize      int           // USDA_PAGE_SIZE, results per search
	LookupTimeout time.Duration // LOOKUP_TIMEOUT, bound on one external search
}

// SearchCacheConfig selects where mapped search results are memoized.
type SearchCacheConfig struct {
	Backend string // SEARCH_CACHE_BACKEND: db|file
	Path    string // SEARCH_CACHE_PATH, used by the file backend
}

// AuthConfig configures password hashing and bearer tokens. An empty
// JWTSecret disables token authentication (X-User-ID is trusted instead).
type AuthConfig struct {
	JWTSecret  string        // JWT_SECRET
	TokenTTL   time.Duration // TOKEN_TTL
	BcryptCost int           // BCRYPT_COST
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// Storage
	DBPath string // SQLite path

	// Nutrition lookup + cache
	Nutrition   NutritionConfig
	SearchCache SearchCacheConfig

	// Calorie policy
	DefaultHeightCm      float64 // fallback when a user has no height
	DefaultCalorieTarget int     // target when no user profile exists

	// Auth
	Auth AuthConfig

	// Rate limiting
	RateRPS         float64 // tokens per second (>= 0)
	RateBurst       int     // bucket size (>= 1)
	SearchRateRPS   float64 // extra limit on /foods/search, which may call out
	SearchRateBurst int

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// Storage
		DBPath: getenv("DB_PATH", "data/nutrition.db"),

		// Nutrition lookup + cache
		Nutrition: NutritionConfig{
			APIKey:        getenv("USDA_API_KEY", ""),
			BaseURL:       strings.TrimRight(getenv("USDA_BASE_URL", "https://api.nal.usda.gov/fdc/v1"), "/"),
			PageSize:      getint("USDA_PAGE_SIZE", 10),
			LookupTimeout: getdur("LOOKUP_TIMEOUT", 10*time.Second),
		},
		SearchCache: SearchCacheConfig{
			Backend: strings.ToLower(strings.TrimSpace(getenv("SEARCH_CACHE_BACKEND", "db"))),
			Path:    getenv("SEARCH_CACHE_PATH", "data/cached_foods.json"),
		},

		// Calorie policy
		DefaultHeightCm:      getfloat("DEFAULT_HEIGHT_CM", 175),
		DefaultCalorieTarget: getint("DEFAULT_CALORIE_TARGET", 2000),

		// Auth
		Auth: AuthConfig{
			JWTSecret:  getenv("JWT_SECRET", ""),
			TokenTTL:   getdur("TOKEN_TTL", 24*time.Hour),
			BcryptCost: getint("BCRYPT_COST", 12),
		},

		// Rate limiting
		RateRPS:         getfloat("RATE_RPS", 5.0),
		RateBurst:       getint("RATE_BURST", 10),
		SearchRateRPS:   getfloat("SEARCH_RATE_RPS", 1.0),
		SearchRateBurst: getint("SEARCH_RATE_BURST", 5),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-nutrition-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return cfg, errors.New("DB_PATH must not be empty")
	}
	if cfg.Nutrition.PageSize < 1 || cfg.Nutrition.PageSize > 200 {
		return cfg, errors.New("USDA_PAGE_SIZE must be between 1 and 200")
	}
	if cfg.Nutrition.LookupTimeout <= 0 {
		return cfg, errors.New("LOOKUP_TIMEOUT must be > 0")
	}
	switch cfg.SearchCache.Backend {
	case "db":
	case "file":
		if strings.TrimSpace(cfg.SearchCache.Path) == "" {
			return cfg, errors.New("SEARCH_CACHE_PATH must not be empty for the file backend")
		}
	default:
		return cfg, errors.New("SEARCH_CACHE_BACKEND must be one of: db, file")
	}
	if cfg.DefaultHeightCm <= 0 {
		return cfg, errors.New("DEFAULT_HEIGHT_CM must be > 0")
	}
	if cfg.DefaultCalorieTarget < 0 {
		return cfg, errors.New("DEFAULT_CALORIE_TARGET must be >= 0")
	}
	if cfg.Auth.JWTSecret != "" && len(cfg.Auth.JWTSecret) < 16 {
		return cfg, errors.New("JWT_SECRET must be at least 16 characters")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return cfg, errors.New("TOKEN_TTL must be > 0")
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return cfg, errors.New("BCRYPT_COST must be between 4 and 31")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.SearchRateRPS < 0 || cfg.SearchRateBurst < 1 {
		return cfg, errors.New("SEARCH_RATE_RPS must be >= 0 and SEARCH_RATE_BURST >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}

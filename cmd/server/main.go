// Command server runs the nutrition API.
//
// @title                      Nutrition API
// @version                    1.0
// @description                Food catalog with cached nutrition search, food and weight logging, BMI and calorie targets.
// @BasePath                   /api/v1
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-nutrition-backend/internal/auth"
	"github.com/tbourn/go-nutrition-backend/internal/config"
	httpapi "github.com/tbourn/go-nutrition-backend/internal/http"
	"github.com/tbourn/go-nutrition-backend/internal/nutrition"
	"github.com/tbourn/go-nutrition-backend/internal/observability"
	"github.com/tbourn/go-nutrition-backend/internal/repo"
	"github.com/tbourn/go-nutrition-backend/internal/searchcache"
	"github.com/tbourn/go-nutrition-backend/internal/sysutil"
)

var version = "dev"

// demoAPIKey is FoodData Central's shared, heavily rate-limited key.
const demoAPIKey = "DEMO_KEY"

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	sysutil.SetLogLevel(cfg.LogLevel)
	log.Logger = sysutil.NewLogger(os.Stdout, cfg.LogPretty, cfg.OTEL.ServiceName)
	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			log.Error().Err(err).Msg("otel shutdown")
		}
	}()

	if err := sysutil.EnsureParentDir(cfg.DBPath); err != nil {
		log.Fatal().Err(err).Str("path", cfg.DBPath).Msg("create db dir")
	}
	db, err := repo.OpenSQLite(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("open db")
	}
	if err := repo.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate")
	}

	var cache searchcache.Store // nil: database-backed
	if cfg.SearchCache.Backend == "file" {
		if err := sysutil.EnsureParentDir(cfg.SearchCache.Path); err != nil {
			log.Fatal().Err(err).Str("path", cfg.SearchCache.Path).Msg("create cache dir")
		}
		cache = searchcache.NewFileStore(cfg.SearchCache.Path)
	}

	if cfg.Nutrition.APIKey == "" {
		log.Warn().Msg("USDA_API_KEY not set, using the shared demo key")
	}
	lookup := nutrition.NewClient(
		cfg.Nutrition.BaseURL,
		sysutil.FirstNonEmpty(cfg.Nutrition.APIKey, demoAPIKey),
		cfg.Nutrition.PageSize,
		cfg.Nutrition.LookupTimeout,
	)

	var tokens *auth.TokenService
	if cfg.Auth.JWTSecret != "" {
		tokens, err = auth.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("token service")
		}
	} else {
		log.Warn().Msg("JWT_SECRET not set, trusting X-User-ID")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		DB:        db,
		Lookup:    lookup,
		Cache:     cache,
		Tokens:    tokens,
		Passwords: auth.NewPasswordService(cfg.Auth.BcryptCost),
		Registry:  reg,
	}, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server failed")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown")
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// compression, rate limiting, CORS, security headers and authentication.
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/tbourn/go-nutrition-backend/docs"
	"github.com/tbourn/go-nutrition-backend/internal/auth"
	"github.com/tbourn/go-nutrition-backend/internal/config"
	"github.com/tbourn/go-nutrition-backend/internal/http/handlers"
	"github.com/tbourn/go-nutrition-backend/internal/http/middleware"
	"github.com/tbourn/go-nutrition-backend/internal/observability"
	"github.com/tbourn/go-nutrition-backend/internal/searchcache"
	"github.com/tbourn/go-nutrition-backend/internal/services"
)

const maxBodyBytes = 1 << 20

// Deps are the infrastructure pieces the API is built from.
type Deps struct {
	DB        *gorm.DB
	Lookup    services.FoodLookup   // nil: cache misses fail with a lookup error
	Cache     searchcache.Store     // nil: database-backed cache
	Tokens    *auth.TokenService    // nil: identity comes from X-User-ID
	Passwords *auth.PasswordService // nil: cost from cfg.Auth.BcryptCost
	Registry  *prometheus.Registry  // nil: a private registry
}

// RegisterRoutes attaches all middleware and HTTP endpoints to r, building the
// services from deps and cfg.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Gzip
//  8. Rate limiter (per user/IP)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, deps Deps, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
	}

	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(middleware.RedactOptions{
		MaskHeaders: []string{"X-API-Key"},
	}))
	r.Use(middleware.Recovery())
	r.Use(limitBody(maxBodyBytes))

	r.Use(middleware.NewHTTPMetrics(reg).Handler())
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/metrics"})))

	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	r.Use(corsMiddleware(cfg.CORS.AllowedOrigins)...)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		EnablePolicy: true,
	}))

	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	if cfg.SwaggerEnabled {
		docs.SwaggerInfo.BasePath = cfg.APIBasePath
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	h := handlers.New(newServices(deps, cfg, reg))

	searchRL := middleware.NewRateLimiter(cfg.SearchRateRPS, cfg.SearchRateBurst, middleware.KeyByUserOrIP())
	requireUser := middleware.Auth(deps.Tokens)

	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Accounts
		api.POST("/users", h.Register)
		api.POST("/auth/login", h.Login)
		api.GET("/me", requireUser, h.GetMe)
		api.PATCH("/me", requireUser, h.UpdateMe)

		// Catalog
		api.GET("/foods/search", searchRL.Handler(), h.SearchFoods)
		api.GET("/foods/suggest", h.SuggestFoods)
		api.GET("/foods/:id", h.GetFood)
		api.POST("/foods", requireUser, h.EnsureFood)
		api.DELETE("/foods/search-cache", requireUser, h.ClearSearchCache)

		// Stateless metrics
		api.GET("/metrics/bmi", h.BMI)
	}

	user := api.Group("", requireUser)
	{
		user.POST("/food-logs", h.LogFood)
		user.GET("/food-logs/:date", h.GetDay)
		user.GET("/food-logs/:date/totals", h.GetDayTotals)
		user.GET("/food-logs/:date/summary", h.GetDaySummary)
		user.PUT("/food-logs/:date/:meal/:food_id", h.UpdateFoodLog)
		user.DELETE("/food-logs/:date/:meal/:food_id", h.DeleteFoodLog)

		user.POST("/weights", h.LogWeight)
		user.GET("/weights", h.ListWeights)
		user.GET("/weights/latest", h.LatestWeight)
		user.PUT("/weights/:id", h.UpdateWeight)
		user.DELETE("/weights/:id", h.DeleteWeight)

		user.GET("/metrics/calorie-target", h.CalorieTarget)
	}
}

// newServices builds the application services in dependency order.
func newServices(deps Deps, cfg config.Config, reg prometheus.Registerer) (
	*services.UserService, *services.CatalogService, *services.FoodLogService,
	*services.WeightService, *services.GoalService,
) {
	passwords := deps.Passwords
	if passwords == nil {
		passwords = auth.NewPasswordService(cfg.Auth.BcryptCost)
	}
	users := &services.UserService{
		DB:              deps.DB,
		Passwords:       passwords,
		Tokens:          deps.Tokens,
		DefaultHeightCm: cfg.DefaultHeightCm,
	}
	catalog := services.NewCatalogService(deps.DB, deps.Lookup, deps.Cache, cfg.Nutrition.LookupTimeout)
	catalog.Observer = observability.NewCatalogMetrics(reg)

	goals := &services.GoalService{Users: users, DefaultTarget: cfg.DefaultCalorieTarget}
	logs := &services.FoodLogService{DB: deps.DB, Catalog: catalog, Goals: goals}
	weights := &services.WeightService{DB: deps.DB, DefaultHeightCm: cfg.DefaultHeightCm}
	return users, catalog, logs, weights, goals
}

// corsMiddleware allows every origin when none are configured, otherwise only
// the listed ones. Credentials are never allowed; identity travels in headers.
func corsMiddleware(origins []string) []gin.HandlerFunc {
	base := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", "X-User-ID", "If-None-Match"},
		ExposeHeaders: []string{"X-Request-ID", "ETag", "Retry-After", "Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		base.AllowAllOrigins = true
		// ACAO: * even without an Origin header, so simple clients see it too.
		return []gin.HandlerFunc{
			func(c *gin.Context) {
				c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
				c.Next()
			},
			cors.New(base),
		}
	}

	allowed := make(map[string]struct{}, len(origins))
	for _, o := range origins {
		allowed[o] = struct{}{}
	}
	base.AllowOrigins = origins
	return []gin.HandlerFunc{
		func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		},
		cors.New(base),
	}
}

// limitBody caps request bodies at maxBytes; larger bodies fail to bind.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}

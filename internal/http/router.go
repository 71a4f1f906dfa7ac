// Package httpapi wires the HTTP transport (Gin) to the application services,
// middleware, and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, logging, panic recovery, metrics, CORS, security
// headers, and rate limiting.
//
// Design goals:
//   - Observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/outpostlabs/go-location-backend/docs"
	"github.com/outpostlabs/go-location-backend/internal/config"
	"github.com/outpostlabs/go-location-backend/internal/domain"
	"github.com/outpostlabs/go-location-backend/internal/http/handlers"
	"github.com/outpostlabs/go-location-backend/internal/http/middleware"
	"github.com/outpostlabs/go-location-backend/internal/repo"
	"github.com/outpostlabs/go-location-backend/internal/services"
)

// locationRepoShim adapts the repository free functions to the
// services.LocationRepo interface. This keeps services decoupled from the
// concrete repo package while reusing the existing functions.
type locationRepoShim struct{}

// CreateLocation proxies repo.CreateLocation.
func (locationRepoShim) CreateLocation(ctx context.Context, db *gorm.DB, ownerID, ownerName, name string, x, y, z int, world, biome string) (*domain.Location, error) {
	return repo.CreateLocation(ctx, db, ownerID, ownerName, name, x, y, z, world, biome)
}

// ListLocations proxies repo.ListLocations.
func (locationRepoShim) ListLocations(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.Location, error) {
	return repo.ListLocations(ctx, db, ownerID)
}

// CountLocations proxies repo.CountLocations (pagination support).
func (locationRepoShim) CountLocations(ctx context.Context, db *gorm.DB, ownerID string) (int64, error) {
	return repo.CountLocations(ctx, db, ownerID)
}

// ListLocationsPage proxies repo.ListLocationsPage (pagination support).
func (locationRepoShim) ListLocationsPage(ctx context.Context, db *gorm.DB, ownerID string, offset, limit int) ([]domain.Location, error) {
	return repo.ListLocationsPage(ctx, db, ownerID, offset, limit)
}

// GetLocationByID proxies repo.GetLocationByID.
func (locationRepoShim) GetLocationByID(ctx context.Context, db *gorm.DB, ownerID string, id int) (*domain.Location, error) {
	return repo.GetLocationByID(ctx, db, ownerID, id)
}

// GetLocationByName proxies repo.GetLocationByName.
func (locationRepoShim) GetLocationByName(ctx context.Context, db *gorm.DB, ownerID, name string) (*domain.Location, error) {
	return repo.GetLocationByName(ctx, db, ownerID, name)
}

// RenameLocation proxies repo.RenameLocation.
func (locationRepoShim) RenameLocation(ctx context.Context, db *gorm.DB, ownerID string, id int, name string) error {
	return repo.RenameLocation(ctx, db, ownerID, id, name)
}

// DeleteLocation proxies repo.DeleteLocation.
func (locationRepoShim) DeleteLocation(ctx context.Context, db *gorm.DB, ownerID string, id int) error {
	return repo.DeleteLocation(ctx, db, ownerID, id)
}

// RegisterRoutes attaches all middleware and endpoints to the given Gin
// engine and wires the service graph. It returns the confirmation service so
// the caller can start its expiry sweeper.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. OwnerIdentity: resolve the calling owner from headers
//  4. Logger: structured access logs
//  5. Recovery: capture panics after the logger
//  6. Body size limiter
//  7. Metrics
//  8. Rate limiter (per owner/IP)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, dispatcher services.Dispatcher, cfg config.Config) *services.ConfirmationService {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Resolve the owner identity from headers
	r.Use(middleware.OwnerIdentity())

	// 4) Structured access logging
	r.Use(middleware.Logger())

	// 5) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 6) Global body size limit (256 KiB; payloads here are tiny)
	r.Use(limitBody(256 << 10))

	// 7) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 8) Token-bucket rate limiter per owner/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByOwnerOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		// Force ACAO: * even without an Origin header (helps tests and
		// simple health checks).
		r.Use(func(c *gin.Context) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Owner-ID", "X-Owner-Name"},
			ExposeHeaders:    []string{"X-Request-ID", "ETag", "Content-Length"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		allowed := make(map[string]struct{}, len(cfg.CORS.AllowedOrigins))
		for _, o := range cfg.CORS.AllowedOrigins {
			allowed[o] = struct{}{}
		}
		r.Use(func(c *gin.Context) {
			if origin := c.GetHeader("Origin"); origin != "" {
				if _, ok := allowed[origin]; ok {
					h := c.Writer.Header()
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
			}
			c.Next()
		})
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Owner-ID", "X-Owner-Name"},
			ExposeHeaders:    []string{"X-Request-ID", "ETag", "Content-Length"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Swagger UI (opt-in)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← repo/db/dispatcher
	locSvc := services.NewLocationService(db, locationRepoShim{})
	confirmSvc := services.NewConfirmationService(locSvc, dispatcher, cfg.PendingTTL)
	h := handlers.New(locSvc, confirmSvc)

	// Public API (gzip only here; /metrics stays uncompressed)
	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(gzip.Gzip(gzip.DefaultCompression))
	{
		api.POST("/locations/propose", h.ProposeLocation)
		api.POST("/locations/confirm", h.ConfirmLocation)
		api.POST("/locations/cancel", h.CancelLocation)
		api.GET("/locations/pending", h.PendingLocation)
		api.GET("/locations", h.ListLocations)
		api.PUT("/locations/:key/name", h.RenameLocation)
		api.DELETE("/locations/:key", h.DeleteLocation)
	}

	return confirmSvc
}

// limitBody caps the request body size for all endpoints using
// http.MaxBytesReader. Requests over the cap fail on body read.
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

package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chckin-noodle/auth-service/internal/api/handler"
	"github.com/chckin-noodle/auth-service/internal/api/middleware"
	"github.com/chckin-noodle/auth-service/internal/core/ports"
	"github.com/chckin-noodle/auth-service/internal/core/service"
	"github.com/chckin-noodle/auth-service/internal/infrastructure/config"
	mongodb "github.com/chckin-noodle/auth-service/internal/infrastructure/db/mongo"
	redisdb "github.com/chckin-noodle/auth-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb may be nil; the account cache and its readiness check are then skipped.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("auth"))

	// --- Dependencies ---
	storeRepo := mongodb.NewAccountRepository(db)
	var accountRepo ports.AccountRepository = storeRepo
	if rdb != nil {
		accountRepo = redisdb.NewCachedAccountRepository(storeRepo, rdb, log)
	}

	hasher := service.NewBcryptHasher(cfg.BcryptCost)
	tokens := service.NewJWTTokenService(cfg.JWTSecret, cfg.TokenTTL)
	accountService := service.NewAccountService(accountRepo, hasher, tokens, cfg.AllowAdminSignup, log)

	authHandler := handler.NewAuthHandler(accountService)
	accountHandler := handler.NewAccountHandler(accountService)
	requireToken := middleware.Auth(tokens)
	// The admin gate resolves the caller's role straight from the store:
	// authorization must hold even when the cache is unavailable or behind.
	requireAdmin := middleware.RequireAdmin(storeRepo)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)
	e.POST("/api/auth/verify", authHandler.Verify, requireToken)

	// --- Admin routes ---
	e.GET("/api/auth/users", accountHandler.List, requireToken, requireAdmin)
	e.PATCH("/api/auth/users/:id/role", accountHandler.UpdateRole, requireToken, requireAdmin)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}

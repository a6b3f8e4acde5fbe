package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/majiflow/billing-gateway/internal/api/handler"
	"github.com/majiflow/billing-gateway/internal/api/middleware"
	"github.com/majiflow/billing-gateway/internal/cache"
	"github.com/majiflow/billing-gateway/internal/core/domain"
	"github.com/majiflow/billing-gateway/internal/core/ports"
)

// Deps carries everything the router needs wired in.
type Deps struct {
	Sessions ports.SessionService
	Backend  ports.BackendClient
	Cache    *cache.Cache
	Audit    ports.AuditRecorder
	Mongo    *mongo.Database
	Redis    *redis.Client
	Logger   zerolog.Logger
	DevMode  bool
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger, deps.DevMode)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("billing_gateway"))

	// --- Dependencies ---
	guard := middleware.NewGuard(deps.Sessions, deps.Audit, deps.Logger, deps.DevMode)
	authHandler := handler.NewAuthHandler(deps.Sessions, deps.Audit)
	dashHandler := handler.NewDashboardHandler(deps.Backend, deps.Cache, deps.Sessions)
	payHandler := handler.NewPaymentHandler(deps.Backend, deps.Cache, deps.Sessions)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.GET("/auth/me", authHandler.Me, guard.Require())
	e.GET("/login", authHandler.LoginPrompt)

	// --- Dashboards, role-scoped ---
	e.GET("/dashboard", dashHandler.Generic, guard.Require())
	e.GET("/dashboard/admin", dashHandler.Admin, guard.Require(domain.RoleAdmin))
	e.GET("/dashboard/meter-reader", dashHandler.MeterReader, guard.Require(domain.RoleMeterReader))
	e.GET("/dashboard/client", dashHandler.Client, guard.Require(domain.RoleClient))

	// --- Payments ---
	e.POST("/payments/stk-push", payHandler.STKPush, guard.Require(domain.RoleClient))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

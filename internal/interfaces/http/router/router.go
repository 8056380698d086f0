package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/udyogerp/backend/internal/infrastructure/auth"
	"github.com/udyogerp/backend/internal/infrastructure/config"
	"github.com/udyogerp/backend/internal/infrastructure/logger"
	"github.com/udyogerp/backend/internal/interfaces/http/handler"
	"github.com/udyogerp/backend/internal/interfaces/http/middleware"
)

// RouteRegistrar registers a handler's routes on an API group
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Dependencies holds everything the router needs to wire the HTTP surface
type Dependencies struct {
	Config     *config.Config
	Logger     *zap.Logger
	JWTService *auth.JWTService
	System     *handler.SystemHandler
	Registrars []RouteRegistrar
}

// New builds the gin engine with the full middleware chain and all routes
func New(deps Dependencies) (*gin.Engine, error) {
	cfg := deps.Config

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return nil, err
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.GinMiddleware(deps.Logger))
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))

	corsCfg := middleware.DefaultCORSConfig()
	if len(cfg.HTTP.CORSAllowOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.HTTP.CORSAllowOrigins
		corsCfg.AllowMethods = cfg.HTTP.CORSAllowMethods
		corsCfg.AllowHeaders = cfg.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsCfg))

	engine.GET("/health", deps.System.Health)

	api := engine.Group("/api/v1")
	api.GET("/health", deps.System.Health)

	// JWT is enforced only when a secret is configured, so the API stays
	// usable in local development without minting tokens.
	if cfg.JWT.Secret != "" {
		api.Use(middleware.JWTAuth(deps.JWTService))
	}

	for _, registrar := range deps.Registrars {
		registrar.RegisterRoutes(api)
	}

	return engine, nil
}

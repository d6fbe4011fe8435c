package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/adminsync/portal-api/docs"
	"github.com/adminsync/portal-api/internal/api/handler"
	"github.com/adminsync/portal-api/internal/api/middleware"
	"github.com/adminsync/portal-api/internal/core/ports"
	"github.com/adminsync/portal-api/internal/core/service"
	"github.com/adminsync/portal-api/internal/core/token"
	"github.com/adminsync/portal-api/internal/infrastructure/config"
	mongodb "github.com/adminsync/portal-api/internal/infrastructure/db/mongo"
	redisdb "github.com/adminsync/portal-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The notifier delivers password-reset tokens out of band.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, notifier ports.Notifier) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("adminsync"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	userCache := redisdb.NewUserCache(rdb)
	tokens := token.NewService(token.Config{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
		ResetTTL:   cfg.ResetTokenTTL,
	})
	authService := service.NewAuthService(userRepo, tokens, notifier, log, cfg.BcryptCost)
	userService := service.NewUserService(userRepo, userCache, log, cfg.BcryptCost)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)

	authenticate := middleware.Auth(tokens, userRepo)

	// --- Auth routes ---
	auth := e.Group("/api/auth")
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh-token", authHandler.Refresh)
	auth.POST("/forgot-password", authHandler.ForgotPassword)
	auth.POST("/reset-password", authHandler.ResetPassword)
	auth.GET("/profile", authHandler.Profile, authenticate)
	auth.POST("/logout", authHandler.Logout, authenticate, middleware.EmployeeOrAdmin())
	auth.PUT("/change-password", authHandler.ChangePassword, authenticate, middleware.EmployeeOrAdmin())

	// --- User routes ---
	users := e.Group("/api/users", authenticate)
	users.POST("/add", userHandler.Add, middleware.AdminOnly())
	users.GET("/all", userHandler.All, middleware.AdminOnly())
	users.PUT("/:id", userHandler.Edit, middleware.AdminOnly())
	users.DELETE("/:id", userHandler.Delete, middleware.AdminOnly())
	users.GET("/profile/:id", userHandler.GetProfile, middleware.SelfOrAdmin())
	users.PUT("/profile/:id", userHandler.UpdateProfile, middleware.SelfOrAdmin())

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

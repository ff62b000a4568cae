package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/socialdash/dashboard-api/internal/api/handler"
	"github.com/socialdash/dashboard-api/internal/api/middleware"
	"github.com/socialdash/dashboard-api/internal/core/domain"
	"github.com/socialdash/dashboard-api/internal/core/ports"
	"github.com/socialdash/dashboard-api/internal/core/service"
	"github.com/socialdash/dashboard-api/internal/infrastructure/config"
	mongorepo "github.com/socialdash/dashboard-api/internal/infrastructure/db/mongo"
	redisrepo "github.com/socialdash/dashboard-api/internal/infrastructure/db/redis"
	"github.com/socialdash/dashboard-api/internal/infrastructure/http/handlers"
	"github.com/socialdash/dashboard-api/internal/pkg/password"
	"github.com/socialdash/dashboard-api/internal/pkg/token"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// The Google verifier and image uploader are passed in because both need
// external endpoints resolved at startup.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, verifier ports.IdentityVerifier, uploader ports.ImageUploader, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log, cfg.Env)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("dashboard"))
	e.Use(corsMiddleware(cfg))

	// --- Dependencies ---
	users := mongorepo.NewUserRepository(db, cfg.Mongo.UsersCollection)
	posts := mongorepo.NewPostRepository(db, cfg.Mongo.PostsCollection)
	tokens := token.NewService(cfg.JWTSecret, token.DefaultTTL)
	usernames := redisrepo.NewUsernameCache(rdb)

	authService := service.NewAuthService(users, tokens, password.Hasher{}, verifier, log)
	postService := service.NewPostService(posts, users, uploader, tokens, usernames, log)

	authHandler := handler.NewAuthHandler(authService)
	googleHandler := handler.NewGoogleAuthHandler(authService)
	postHandler := handler.NewPostHandler(postService)
	adminHandler := handler.NewAdminHandler(users)
	authGate := middleware.Auth(tokens, users, log)

	// --- API routes ---
	api := e.Group("/api")
	api.POST("/register", authHandler.Register)
	api.POST("/login", authHandler.Login)
	api.POST("/auth/google", googleHandler.Login)

	api.GET("/posts", postHandler.Feed)
	api.POST("/upload-post", postHandler.Create, authGate)
	api.GET("/user-posts", postHandler.Mine, authGate)

	api.GET("/admin/users", adminHandler.ListUsers, authGate, middleware.RequireRole(domain.RoleAdmin))

	// --- Operational endpoints ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}

// corsMiddleware mirrors the deployment convention: explicit origins from
// configuration, or everything in development when none are set.
func corsMiddleware(cfg *config.Config) echo.MiddlewareFunc {
	origins := cfg.CORSOrigins()
	if len(origins) == 0 && cfg.Env == "development" {
		return echomiddleware.CORS()
	}
	return echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins: origins,
		AllowMethods: []string{echo.GET, echo.POST, echo.PUT, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	})
}

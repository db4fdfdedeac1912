// Package bootstrap wires configuration, storage, services, and the HTTP
// router into a runnable application.
package bootstrap

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/mensah/schoolms/internal/app/controllers"
	appRoutes "github.com/mensah/schoolms/internal/app/routes"
	appServices "github.com/mensah/schoolms/internal/app/services"
	"github.com/mensah/schoolms/internal/config"
	appMiddleware "github.com/mensah/schoolms/internal/middleware"
	pkgAuth "github.com/mensah/schoolms/internal/pkg/auth"
	"github.com/mensah/schoolms/internal/pkg/logger"
	"github.com/mensah/schoolms/internal/seed"
	"github.com/mensah/schoolms/internal/storage"
	"github.com/mensah/schoolms/internal/storage/facade"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store          storage.Store
	Services       *appServices.Services
	Controllers    *appControllers.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	JWTService     *pkgAuth.JWTService
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStorage opens the configured storage backend through the facade.
func SetupStorage(cfg *config.Config, lgr zerolog.Logger) (storage.Store, error) {
	lgr.Info().Str("engine", string(cfg.Storage.Engine)).Msg("Opening storage backend...")
	store, err := facade.Open(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to open storage backend")
		return nil, err
	}
	lgr.Info().Msg("Storage backend ready.")

	if err := seed.CreateDefaultData(store, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return store, nil
}

// BuildDependencies initializes services, controllers, and middleware.
func BuildDependencies(cfg *config.Config, store storage.Store, lgr zerolog.Logger) (*Dependencies, error) {
	accessTokenExp, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access token expiration: %w", err)
	}

	jwtService := pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	svcs := appServices.NewServices(store)

	return &Dependencies{
		Store:          store,
		Services:       svcs,
		Controllers:    appControllers.NewControllers(svcs, jwtService),
		AuthMiddleware: appMiddleware.NewAuthMiddleware(jwtService),
		JWTService:     jwtService,
		Logger:         lgr,
	}, nil
}

// SetupRouter creates the Gin engine and registers all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)
	return router
}

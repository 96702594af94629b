// Package bootstrap assembles the application: configuration, logging, the
// entity store, services, controllers and the router.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/emreakn/researchdesk/internal/app/controllers"
	"github.com/emreakn/researchdesk/internal/app/migrations"
	"github.com/emreakn/researchdesk/internal/app/routes"
	"github.com/emreakn/researchdesk/internal/app/services"
	"github.com/emreakn/researchdesk/internal/app/storage"
	"github.com/emreakn/researchdesk/internal/config"
	"github.com/emreakn/researchdesk/internal/db"
	"github.com/emreakn/researchdesk/internal/middleware"
	"github.com/emreakn/researchdesk/internal/pkg/auth"
	"github.com/emreakn/researchdesk/internal/pkg/filestorage"
	"github.com/emreakn/researchdesk/internal/pkg/helpers"
	"github.com/emreakn/researchdesk/internal/pkg/logger"
)

// LoadConfigAndSetupLogger loads configuration and configures the global
// logger from it.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(cfg.Logging.Level),
		Pretty: cfg.Logging.Format != "json",
	})

	logger.Info().Str("mode", cfg.Server.Mode).Str("driver", cfg.Database.Driver).
		Msg("Configuration loaded")
	return cfg, nil
}

// SetupStorage builds the entity store selected by database.driver. The
// returned cleanup function releases any held connections.
func SetupStorage(cfg *config.Config) (storage.Storage, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverMemory:
		logger.Info().Msg("Using in-memory storage")
		return storage.NewMemStorage(), func() {}, nil

	case config.DriverPostgres:
		database, err := db.NewPostgresDB(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := migrations.Run(ctx, database.Pool); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		logger.Info().Str("host", cfg.Database.Host).Str("dbname", cfg.Database.DBName).
			Msg("Connected to PostgreSQL")
		return storage.NewPostgresStorage(database.Pool), database.Close, nil

	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// BuildDependencies wires the JWT service, file storage, services and
// controllers over the store.
func BuildDependencies(cfg *config.Config, store storage.Storage) (*controllers.Controllers, *auth.JWTService, error) {
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 168*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	fileStorage, err := filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	svc := services.NewServices(store, jwtService)
	ctrl := controllers.NewControllers(svc, fileStorage)
	return ctrl, jwtService, nil
}

// SetupRouter creates the gin engine with middleware and all routes mounted.
func SetupRouter(cfg *config.Config, ctrl *controllers.Controllers, jwtService *auth.JWTService) *gin.Engine {
	if cfg.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	routes.Setup(router, ctrl, jwtService, cfg.Server.StoragePath)
	return router
}

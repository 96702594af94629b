// @title ResearchDesk API
// @version 1.0
// @description Internal research-sharing feed for investment analysts and fund managers.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"context"
	"flag"
	"os"

	"github.com/emreakn/researchdesk/internal/bootstrap"
	"github.com/emreakn/researchdesk/internal/config"
	"github.com/emreakn/researchdesk/internal/pkg/logger"
	"github.com/emreakn/researchdesk/internal/seed"
	"github.com/emreakn/researchdesk/internal/server"
)

func main() {
	configPath := flag.String("config", config.GetEnv("CONFIG_PATH", "configs/config.yaml"), "path to the configuration file")
	flag.Parse()

	cfg, err := bootstrap.LoadConfigAndSetupLogger(*configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	store, cleanup, err := bootstrap.SetupStorage(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to set up storage")
		os.Exit(1)
	}
	defer cleanup()

	if cfg.Seed.Enabled {
		if err := seed.Run(context.Background(), store); err != nil {
			logger.Error().Err(err).Msg("Failed to seed data")
			os.Exit(1)
		}
	}

	ctrl, jwtService, err := bootstrap.BuildDependencies(cfg, store)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build dependencies")
		os.Exit(1)
	}

	router := bootstrap.SetupRouter(cfg, ctrl, jwtService)

	if err := server.New(cfg.Server.Port, router).Run(); err != nil {
		logger.Error().Err(err).Msg("Server error")
		os.Exit(1)
	}
}

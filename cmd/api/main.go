package main

import (
	"flag"
	"os"
	"path/filepath"

	"github.com/yigit/alumnihub/internal/pkg/logger"
	"github.com/yigit/alumnihub/internal/server"
)

// @title AlumniHub API
// @version 1.0
// @description API for the alumni directory, events, news and dashboard

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token issued by the identity provider

func main() {
	configPath := flag.String("config", filepath.Join("configs", "config.yaml"), "path to the YAML config file")
	flag.Parse()

	srv, err := server.NewServer(*configPath)
	if err != nil {
		// Config failed, so the logger is still on its console defaults
		logger.Error().Err(err).Msg("Failed to initialize server")
		os.Exit(1)
	}

	// Blocks until shutdown
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server execution failed or shutdown encountered errors")
		os.Exit(1)
	}

	logger.Info().Msg("Application finished gracefully.")
}

// shelterd runs the local development stub of the shelter backend.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"shelterhub/config"
	"shelterhub/internal/devserver"
	"shelterhub/internal/logging"
)

const defaultConfigPath = "server-config.json"

func main() {
	configPath := flag.String("config", defaultConfigPath, "Path to configuration file")
	useEnv := flag.Bool("env", false, "Load configuration from environment variables")
	logFormat := flag.String("log-format", "json", "Log format (json or text)")
	logLevel := flag.String("log-level", "info", "Log level (debug, info, warn, error)")
	flag.Parse()

	logger := logging.New(logging.Options{
		Format: *logFormat,
		Level:  logging.ParseLevel(*logLevel),
	})

	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	var (
		cfg *config.ServerConfig
		err error
	)
	if *useEnv {
		cfg, err = config.LoadServerConfigFromEnv()
	} else {
		cfg, err = config.LoadServerConfig(*configPath)
	}
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	server, err := devserver.New(cfg.Auth, logger)
	if err != nil {
		logger.Error("Failed to create server", "error", err)
		os.Exit(1)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting development server",
		"addr", addr,
		"seed_account", "staff@shelter.local",
	)

	if err := server.Run(addr); err != nil {
		logger.Error("HTTP server failed", "error", err)
		os.Exit(1)
	}
}

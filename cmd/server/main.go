package main

import (
	"fmt"
	"log/slog"

	log "github.com/charmbracelet/log"
	"github.com/huanvu/gigmart/infra/initializer"
	"github.com/huanvu/gigmart/infra/metrics"
	"github.com/huanvu/gigmart/pkg/config"
	"github.com/huanvu/gigmart/webapi"

	_ "github.com/huanvu/gigmart/docs"
)

// @title Gigmart API
// @version 1.0.0
// @description Freelance marketplace backend: wallets, job listings, purchases and refunds.
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description "Enter your Bearer token in the format: `Bearer {token}`"
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}

	deps, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	if cfg.Metrics.Enabled {
		go metrics.Serve(cfg.Metrics.Port)
	}

	app := webapi.SetupApp(deps)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	slog.Info("starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
	)
	return app.Listen(addr)
}

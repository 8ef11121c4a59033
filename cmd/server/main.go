package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/tracker-api/internal/config"
	"github.com/yukikurage/tracker-api/internal/database"
	"github.com/yukikurage/tracker-api/internal/logging"
	"github.com/yukikurage/tracker-api/internal/server"
	"github.com/yukikurage/tracker-api/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tracker-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	gin.SetMode(cfg.GinMode)
	if cfg.UsesDefaultSecret() && cfg.GinMode == gin.ReleaseMode {
		logger.Warn(context.Background(), "JWT_SECRET is not set, tokens are signed with the built-in development secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg, logger.Slog())
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	defer sqlDB.Close()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	var suggester services.TaskSuggester
	if cfg.OpenAIAPIKey != "" {
		suggester = services.NewAIService(cfg.OpenAIAPIKey)
	} else {
		logger.Info(ctx, "OPENAI_API_KEY not set, task suggestions disabled")
	}

	srv := server.New(db, cfg, logger, suggester)
	return srv.Run(ctx, ":"+cfg.Port)
}

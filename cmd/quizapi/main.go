package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/garnizeh/boards/api"
	"github.com/garnizeh/boards/internal/config"
	"github.com/garnizeh/boards/internal/server"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)
	api.SetLogger(logger)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Error("failed to load config", slog.Any("err", err))
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("invalid config", slog.Any("err", err))
		os.Exit(1)
	}

	logger.Info("starting quiz server", slog.String("version", version), slog.String("build_time", buildTime))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	d, err := server.OpenDatabase(ctx, cfg, "quiz", logger)
	if err != nil {
		logger.Error("failed to open database", slog.Any("err", err))
		os.Exit(1)
	}
	defer func() {
		if err := d.Close(); err != nil {
			logger.Error("error closing db", slog.Any("err", err))
		}
	}()

	handler := api.SetupQuizRoutes(cfg, version, buildTime, d)

	if err := server.Run(ctx, cfg, handler, logger); err != nil {
		logger.Error("server failed", slog.Any("err", err))
		stop()
		d.Close()
		os.Exit(1)
	}

	logger.Info("server exited")
}

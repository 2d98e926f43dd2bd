package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/garnizeh/boards/internal/config"
	"github.com/garnizeh/boards/internal/server"
)

func main() {
	configPath := flag.String("config", "", "Path to config YAML file")
	app := flag.String("app", "quiz", "Schema to apply: quiz or jobboard")
	flag.Parse()

	ctx := context.Background()
	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}
	cfg.MigrateOnStart = true

	database, err := server.OpenDatabase(ctx, cfg, *app, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "DB init error: %v\n", err)
		os.Exit(1)
	}
	defer database.Close()

	fmt.Printf("Database %s initialized for %s.\n", cfg.DatabasePath, *app)
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"folder-pack/cmd/folderpack"
	"folder-pack/config"
	"folder-pack/helpers"
	"folder-pack/log"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v, using defaults\n", err)
	}

	workDir, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: getting current working directory: %v\n", err)
		return err
	}

	logger := log.Null
	if cfg.Debug {
		logger = log.New(os.Stderr, log.LevelDebug)
	}

	app := &folderpack.App{
		In:      os.Stdin,
		Out:     os.Stdout,
		WorkDir: workDir,
		Config:  cfg,
		Color:   cfg.Color && helpers.SupportsColor(os.Stdout),
		Logger:  logger,
	}
	if cfg.ShowProgress && helpers.IsTerminal(os.Stderr) {
		app.ProgressOut = os.Stderr
	}

	return app.Run(ctx)
}

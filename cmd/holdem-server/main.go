package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/lox/holdem-table/internal/server"
)

type CLI struct {
	Config   string `short:"c" help:"Path to HCL configuration file" default:"holdem.hcl"`
	Port     int    `short:"p" help:"Listen port, overrides the config file"`
	LogLevel string `help:"Log level (debug, info, warn, error)"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli)

	config, err := server.LoadConfig(cli.Config)
	if err != nil {
		log.Fatal("Failed to load configuration", "path", cli.Config, "error", err)
	}
	if cli.Port != 0 {
		config.Server.Port = cli.Port
	}
	if cli.LogLevel != "" {
		config.Server.LogLevel = cli.LogLevel
	}
	if err := config.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	level, err := log.ParseLevel(config.Server.LogLevel)
	if err != nil {
		log.Fatal("Invalid log level", "level", config.Server.LogLevel)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           level,
	})

	srv := server.NewServer(config, logger)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- srv.Start()
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", "error", err)
		}
	case sig := <-sigChan:
		logger.Info("Shutting down", "signal", sig)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("Shutdown failed", "error", err)
		}
	}

	ctx.Exit(0)
}

// Package main is the entry point for the reminder application.
//
// The binary has three steps, selected by flags and always run in this order:
//
//	--initdb  drop and recreate the reminders table
//	--testdb  insert a handful of fake reminders
//	--run     serve the web UI until SIGINT or SIGTERM
//
// Configuration comes from the environment (and an optional .env file), see
// internal/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/sakif/reminder/internal/config"
	"github.com/sakif/reminder/internal/flash"
	"github.com/sakif/reminder/internal/repository/sqlite"
	"github.com/sakif/reminder/internal/server"
	"github.com/sakif/reminder/internal/service"
	"github.com/sakif/reminder/web"
)

func main() {
	initDB := flag.Bool("initdb", false, "drop and recreate the database schema")
	testDB := flag.Bool("testdb", false, "add some fake reminders to the database")
	run := flag.Bool("run", false, "start the web server")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [--initdb] [--testdb] [--run]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if !*initDB && !*testDB && !*run {
		flag.Usage()
		os.Exit(2)
	}

	if err := execute(*initDB, *testDB, *run); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// execute holds everything main does after flag parsing, so that deferred
// cleanup runs before the process exits.
func execute(initDB, testDB, run bool) error {
	// === 1. CONFIGURATION ===
	cfg, err := config.NewEnvReader().Read()
	if err != nil {
		return err
	}
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return err
	}

	// === 2. LOGGING ===
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// === 3. DATABASE ===
	if cfg.Database.Path != ":memory:" {
		dbDir := filepath.Dir(cfg.Database.Path)
		if err := os.MkdirAll(dbDir, 0755); err != nil {
			return fmt.Errorf("creating database directory %s: %w", dbDir, err)
		}
	}

	db, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close database", slog.String("error", err.Error()))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// === 4. STEPS ===
	if initDB {
		if err := db.Reset(ctx); err != nil {
			return err
		}
		logger.Info("initialized the database", slog.String("path", cfg.Database.Path))
	}

	if testDB {
		if _, err := service.NewReminderService(db, nil, logger).Seed(ctx); err != nil {
			return err
		}
		logger.Info("created some test entries")
	}

	if !run {
		return nil
	}

	if cfg.Flash.SecretGenerated {
		logger.Warn("REMINDER_FLASH_SECRET not set, using a random secret for this process")
	}
	flashes, err := flash.NewStore(cfg.Flash.Secret, cfg.Flash.TTL, logger)
	if err != nil {
		return err
	}
	flashes.SetSecure(cfg.Flash.Secure)

	srv, err := server.New(server.Config{
		Addr:            cfg.HTTP.Addr,
		ReadTimeout:     cfg.HTTP.ReadTimeout,
		WriteTimeout:    cfg.HTTP.WriteTimeout,
		IdleTimeout:     cfg.HTTP.IdleTimeout,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout,
	}, logger, db, flashes, server.Assets{
		Templates: web.Templates(),
		Static:    web.Static(),
	})
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	// Start blocks until ctx is cancelled by Ctrl+C or SIGTERM.
	return srv.Start(ctx)
}

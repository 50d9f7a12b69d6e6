// Package server sets up the HTTP server, router and route table.
//
// DEPENDENCY FLOW:
//
//	main opens:        sqlite.DB, flash.Store
//	server.New wires:  sqlite.DB → ReminderService → ReminderHandler → routes
//
// The server does not own the database: main opens it before the server
// exists and closes it after Start returns.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/reminder/internal/flash"
	"github.com/sakif/reminder/internal/handler"
	"github.com/sakif/reminder/internal/middleware"
	sqliteRepo "github.com/sakif/reminder/internal/repository/sqlite"
	"github.com/sakif/reminder/internal/service"
)

// Config holds the listener settings.
type Config struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// Assets are the file systems the pages are rendered and served from.
type Assets struct {
	Templates fs.FS
	Static    fs.FS
}

// Server is the HTTP front end of the application.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New wires the service and handlers on top of db and builds the router.
func New(cfg Config, logger *slog.Logger, db *sqliteRepo.DB, flashes *flash.Store, assets Assets) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	reminders := service.NewReminderService(db, nil, logger)
	if err := s.setupRoutes(reminders, flashes, assets); err != nil {
		return nil, fmt.Errorf("setting up routes: %w", err)
	}
	return s, nil
}

// setupRoutes configures middleware and routes.
//
// ROUTES:
//
//	GET       /              → listing page
//	GET|POST  /add/          → create one reminder      (email, text)
//	GET|POST  /add/some/     → create demo reminders
//	GET|POST  /delete/       → delete one reminder      (reminder_id)
//	GET|POST  /delete/all/   → delete every reminder
//	GET       /healthz       → database ping
//	GET       /static/*      → stylesheet
//
// Middleware runs in the order added: RequestID, RealIP, Logger, Recoverer.
// Logger sits outside Recoverer so recovered panics are logged as 500s.
func (s *Server) setupRoutes(reminders *service.ReminderService, flashes *flash.Store, assets Assets) error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)

	h, err := handler.NewReminderHandler(reminders, flashes, assets.Templates, s.logger)
	if err != nil {
		return fmt.Errorf("creating reminder handler: %w", err)
	}

	s.router.Get("/", h.HandleList)
	s.getOrPost("/add/", h.HandleAdd)
	s.getOrPost("/add/some/", h.HandleAddSome)
	s.getOrPost("/delete/", h.HandleDelete)
	s.getOrPost("/delete/all/", h.HandleDeleteAll)

	s.router.Get("/healthz", handler.Health(s.db, s.logger))
	s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(assets.Static)))

	return nil
}

// getOrPost registers fn for GET and POST on pattern. The same path without
// its trailing slash answers with a permanent redirect to pattern, keeping
// the method and body.
func (s *Server) getOrPost(pattern string, fn http.HandlerFunc) {
	s.router.Get(pattern, fn)
	s.router.Post(pattern, fn)

	bare := strings.TrimSuffix(pattern, "/")
	redirect := func(w http.ResponseWriter, r *http.Request) {
		target := pattern
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
	}
	s.router.Get(bare, redirect)
	s.router.Post(bare, redirect)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until ctx is cancelled, then shuts down gracefully: it stops
// accepting connections and waits up to ShutdownTimeout for in-flight
// requests.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
		IdleTimeout:  s.config.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("addr", s.config.Addr),
			slog.String("database", s.db.Path()),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	}
}

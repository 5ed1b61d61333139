// Package server wires the application together: database, services,
// handlers, middleware and routes. It is the composition root; nothing
// else in the codebase constructs cross-layer dependencies.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/akarim/code-notebook/internal/auth"
	"github.com/akarim/code-notebook/internal/handler"
	"github.com/akarim/code-notebook/internal/middleware"
	sqliteRepo "github.com/akarim/code-notebook/internal/repository/sqlite"
	"github.com/akarim/code-notebook/internal/service"
	"github.com/akarim/code-notebook/internal/suggest"
)

// Config holds server configuration, loaded from the environment in main.
type Config struct {
	Port   int
	DBPath string

	JWTSecret string

	GitHubClientID     string
	GitHubClientSecret string
	GitHubCallbackURL  string

	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
}

// Server owns the router and the resources that must be released on
// shutdown, currently just the database connection.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with all dependencies wired: the database, the
// suggestion generator, the services, and the route handlers. Each layer
// only sees the one below it.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating token service: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes(tokens)

	return s, nil
}

// setupRoutes configures middleware and routes.
//
// Middleware order: RequestID and RealIP first so the logger sees them,
// Recoverer before handlers so panics become 500s, then request logging.
func (s *Server) setupRoutes(tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// Suggestion generator: OpenAI-compatible completion API. The timeout
	// bounds how long a failed execution waits on a suggestion before the
	// generator falls back to the canned apology.
	completions := suggest.NewClient(s.config.OpenAIBaseURL, s.config.OpenAIAPIKey, 10*time.Second)
	model := s.config.OpenAIModel
	if model == "" {
		model = suggest.DefaultModel
	}
	suggester := suggest.NewGenerator(completions, model, s.logger)

	executionService := service.NewExecutionService(s.db, suggester, s.logger)
	snippetService := service.NewSnippetService(s.db, s.logger)
	authService := service.NewAuthService(s.db, tokens, auth.NewPasswordService(), s.logger)

	executionHandler := handler.NewExecutionHandler(executionService, s.logger)
	snippetHandler := handler.NewSnippetHandler(snippetService, s.logger)

	github := auth.NewGitHubProvider(
		s.config.GitHubClientID,
		s.config.GitHubClientSecret,
		s.config.GitHubCallbackURL,
	)
	authHandler := handler.NewAuthHandler(github, authService, s.logger)

	s.router.Route("/auth", func(r chi.Router) {
		r.Get("/github/login", authHandler.HandleGitHubLogin)
		r.Get("/github/callback", authHandler.HandleGitHubCallback)
		r.Post("/logout", authHandler.HandleLogout)
	})

	s.router.Route("/api", func(r chi.Router) {
		// Writes require a logged-in caller.
		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))
			r.Post("/execute", executionHandler.HandleExecute)
			r.Post("/snippets", snippetHandler.HandleSave)
			r.Get("/me", authHandler.HandleMe)
		})

		// Reads are owner-scoped: anonymous callers get empty lists.
		r.Group(func(r chi.Router) {
			r.Use(auth.OptionalAuth(tokens))
			r.Get("/executions", executionHandler.HandleHistory)
			r.Get("/snippets", snippetHandler.HandleList)
		})
	})
}

// Start runs the HTTP server until a shutdown signal arrives, then drains
// in-flight requests and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// Package server provides the HTTP API that streams Towers of Hanoi move
// sequences and reports solution sizes.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/agbru/hanoi/internal/config"
	apperrors "github.com/agbru/hanoi/internal/errors"
	"github.com/agbru/hanoi/internal/logging"
)

// instrumentationName names the tracer used for /moves spans.
const instrumentationName = "github.com/agbru/hanoi/internal/server"

// Server represents the HTTP server for the Towers of Hanoi API.
// It wraps the standard http.Server and adds application-specific configuration
// and graceful shutdown capabilities. Each request gets its own sequencer,
// so no generation state is shared between requests.
type Server struct {
	httpServer *http.Server
	logger     logging.Logger
	metrics    *Metrics
	tracer     trace.Tracer
	timeouts   Timeouts
	maxHeight  int
}

// NewServer creates a new Server instance with the given configuration.
// It initializes the HTTP server with timeouts and a request multiplexer.
//
// Parameters:
//   - cfg: The application configuration (port, height cap).
//   - opts: Optional functional options for customizing the server (e.g., WithLogger).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		logger:    logging.NewLogger(os.Stdout, "server"),
		metrics:   NewMetrics(),
		tracer:    otel.Tracer(instrumentationName),
		timeouts:  DefaultServerTimeouts(),
		maxHeight: cfg.MaxServerHeight,
	}
	if s.maxHeight < 1 {
		s.maxHeight = config.DefaultMaxServerHeight
	}

	for _, opt := range opts {
		opt(s)
	}

	mux := http.NewServeMux()

	// Middleware chain: Logging -> Metrics -> Handler
	mux.HandleFunc("/moves", s.wrapWithMiddleware(s.handleMoves))
	mux.HandleFunc("/count", s.wrapWithMiddleware(s.handleCount))
	mux.HandleFunc("/health", s.wrapWithMiddleware(s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware(s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  s.timeouts.ReadTimeout,
		WriteTimeout: s.timeouts.WriteTimeout,
		IdleTimeout:  s.timeouts.IdleTimeout,
	}

	return s
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	return wrapped
}

// Handler returns the server's root handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves HTTP requests until ctx is done, then shuts the server down
// gracefully. The listener and the shutdown watcher run in one errgroup, so a
// listener failure also ends the watcher.
//
// Returns:
//   - error: A ServerError if the server fails to start or to shut down, nil
//     after a clean shutdown.
func (s *Server) Start(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("starting server", logging.String("addr", s.httpServer.Addr),
			logging.Int("max_height", s.maxHeight))
		s.logger.Println("Available endpoints:")
		s.logger.Println("  GET /moves?height=<n>&from=<pole>&to=<pole>&via=<pole>&format=<ndjson|text|json>")
		s.logger.Println("  GET /count?height=<n>")
		s.logger.Println("  GET /health")
		s.logger.Println("  GET /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return apperrors.NewServerError("server failed to start", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutdown requested, draining connections")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
		defer cancel()
		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			return apperrors.NewServerError("failed to gracefully shutdown server", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}

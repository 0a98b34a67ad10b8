package server

import (
	"log"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/agbru/hanoi/internal/logging"
)

// Option defines a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets a custom logger for the server using the unified logging interface.
// This is useful for testing or integrating with existing logging infrastructure.
//
// Parameters:
//   - logger: The logger to use. If nil, the default logger is used.
//
// Returns:
//   - Option: A functional option that configures the server's logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger sets a standard library log.Logger for the server.
//
// Parameters:
//   - logger: The standard log.Logger to use. If nil, the default logger is used.
//
// Returns:
//   - Option: A functional option that configures the server's logger.
func WithStdLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewStdLoggerAdapter(logger)
		}
	}
}

// WithTimeouts sets custom timeout configuration for the server.
//
// Parameters:
//   - timeouts: The timeout configuration.
//
// Returns:
//   - Option: A functional option that configures the server's timeouts.
func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Server) {
		s.timeouts = timeouts
	}
}

// WithMaxHeight sets the largest tower height /moves agrees to stream.
// Values below 1 are ignored.
func WithMaxHeight(height int) Option {
	return func(s *Server) {
		if height >= 1 {
			s.maxHeight = height
		}
	}
}

// WithTracerProvider sets the provider of the tracer that records one span
// per /moves stream. The global provider is used by default.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Server) {
		if tp != nil {
			s.tracer = tp.Tracer(instrumentationName)
		}
	}
}

// Timeouts holds timeout configuration for the HTTP server.
// These can be customized via functional options for testing or deployment needs.
type Timeouts struct {
	// RequestTimeout is the maximum duration for streaming a single response.
	RequestTimeout time.Duration
	// ShutdownTimeout is the maximum duration allowed for graceful shutdown.
	ShutdownTimeout time.Duration
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
}

// DefaultServerTimeouts returns the timeouts used when WithTimeouts is not given.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		RequestTimeout:  2 * time.Minute,
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    5 * time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}

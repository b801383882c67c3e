package server

import (
	"log"
	"time"

	"github.com/agbru/ratcalc/internal/logging"
	"github.com/agbru/ratcalc/internal/service"
)

// Option defines a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets the server logger. A nil logger keeps the default.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger logs through a standard library logger.
func WithStdLogger(logger *log.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewStdLoggerAdapter(logger)
		}
	}
}

// WithService replaces the evaluation service, typically with a mock.
func WithService(svc service.Service) Option {
	return func(s *Server) {
		if svc != nil {
			s.service = svc
		}
	}
}

// WithTimeouts replaces the HTTP and per-request timeouts.
//
// Parameters:
//   - timeouts: The timeouts; a zero RequestTimeout falls back to the
//     configured evaluation timeout.
//
// Returns:
//   - Option: The option to pass to NewServer.
func WithTimeouts(timeouts Timeouts) Option {
	return func(s *Server) {
		s.timeouts = timeouts
	}
}

// WithRateLimiter replaces the default per-client limiter. The server stops
// it on shutdown.
//
// Parameters:
//   - rl: The limiter; nil keeps the default.
//
// Returns:
//   - Option: The option to pass to NewServer.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) {
		s.rateLimiter = rl
	}
}

// WithSecurityConfig sets a custom security configuration for the server.
func WithSecurityConfig(cfg SecurityConfig) Option {
	return func(s *Server) {
		s.securityConfig = cfg
	}
}

// WithMaxExprLength bounds the accepted expression length, in bytes.
func WithMaxExprLength(n int) Option {
	return func(s *Server) {
		s.securityConfig.MaxExprLength = n
	}
}

// Timeouts holds timeout configuration for the HTTP server.
type Timeouts struct {
	// RequestTimeout bounds a single evaluation. Zero uses the configured
	// -timeout value.
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
}

// DefaultServerTimeouts returns the timeouts used when none are given.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		ShutdownTimeout: 30 * time.Second,
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    2 * time.Minute,
		IdleTimeout:     2 * time.Minute,
	}
}

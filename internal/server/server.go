package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/agbru/ratcalc/internal/config"
	"github.com/agbru/ratcalc/internal/engine"
	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/logging"
	"github.com/agbru/ratcalc/internal/service"
)

// DefaultEngine answers requests that name no engine.
const DefaultEngine = "exact"

// Server is the HTTP front end of the evaluation service, with graceful
// shutdown on SIGINT and SIGTERM.
type Server struct {
	factory        engine.Factory
	service        service.Service
	cfg            config.AppConfig
	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
	defaultEngine  string
}

// NewServer creates a server over the engines of factory.
//
// Parameters:
//   - factory: Supplies the engines served by /evaluate and /engines.
//   - cfg: The port, the evaluation timeout, the expression length limit
//     and, when it names a single engine, the default engine.
//   - opts: Functional options applied last.
//
// Returns:
//   - *Server: The configured server, not yet listening.
func NewServer(factory engine.Factory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewDefaultLogger("server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
		defaultEngine:  DefaultEngine,
	}
	if cfg.MaxExprLength > 0 {
		s.securityConfig.MaxExprLength = cfg.MaxExprLength
	}
	if cfg.Engine != "" && cfg.Engine != config.DefaultEngine {
		s.defaultEngine = cfg.Engine
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.timeouts.RequestTimeout <= 0 {
		s.timeouts.RequestTimeout = cfg.Timeout
	}
	if s.timeouts.RequestTimeout <= 0 {
		s.timeouts.RequestTimeout = config.DefaultTimeout
	}
	if s.service == nil {
		s.service = service.NewEvaluationService(s.factory, s.securityConfig.MaxExprLength)
	}
	if s.rateLimiter == nil {
		s.rateLimiter = NewRateLimiter(DefaultRateLimiterConfig())
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/evaluate", s.wrapWithMiddleware(s.handleEvaluate))
	mux.HandleFunc("/engines", s.wrapWithMiddleware(s.handleEngines))
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

// Handler returns the routed handler, with every middleware applied.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start listens on the configured port until a shutdown signal arrives,
// then drains in-flight requests within ShutdownTimeout.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(s.shutdownSignal)
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting server",
			logging.String("addr", s.httpServer.Addr),
			logging.String("default_engine", s.defaultEngine),
			logging.Int("max_expr_length", s.securityConfig.MaxExprLength),
			logging.Duration("request_timeout", s.timeouts.RequestTimeout),
		)
		s.logger.Println("Available endpoints:")
		s.logger.Println("  GET /evaluate?expr=<expression>&engine=<engine>")
		s.logger.Println("  GET /engines")
		s.logger.Println("  GET /health")
		s.logger.Println("  GET /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Println("Shutdown signal received, initiating graceful shutdown...")
	case err := <-errCh:
		return apperrors.NewServerError("server failed to start", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.ShutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Println("Server stopped gracefully")
	return nil
}

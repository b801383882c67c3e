package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/ratcalc/internal/logging"
)

// RequestIDHeader carries the request identifier in both directions.
const RequestIDHeader = "X-Request-ID"

type requestIDKey struct{}

// RequestID returns the identifier assigned to the request carried by ctx,
// or "" outside a request.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// wrapWithMiddleware applies the chain Security -> RequestID -> RateLimit ->
// Logging -> Metrics -> handler.
func (s *Server) wrapWithMiddleware(handler http.HandlerFunc) http.HandlerFunc {
	wrapped := s.metricsMiddleware(handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = RateLimitMiddleware(s.rateLimiter, wrapped)
	wrapped = requestIDMiddleware(wrapped)
	return SecurityMiddleware(s.securityConfig, wrapped)
}

// requestIDMiddleware keeps a client-supplied UUID or assigns a new one,
// echoes it in the response and stores it in the request context.
func requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	}
}

// loggingMiddleware logs each request with its duration.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.Info("request completed",
			logging.String("request_id", RequestID(r.Context())),
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("remote", getClientIP(r)),
			logging.Duration("duration", time.Since(start)),
		)
	}
}

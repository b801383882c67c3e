package server

import (
	"net/http"
	"strings"

	"github.com/agbru/ratcalc/internal/config"
)

// SecurityConfig holds configuration for security headers and input limits.
type SecurityConfig struct {
	// EnableCORS enables Cross-Origin Resource Sharing headers.
	EnableCORS bool
	// AllowedOrigins specifies allowed CORS origins. Use "*" for all origins.
	AllowedOrigins []string
	// AllowedMethods specifies allowed HTTP methods for CORS.
	AllowedMethods []string
	// MaxExprLength is the longest accepted expression, in bytes.
	MaxExprLength int
}

// DefaultSecurityConfig returns the default security configuration.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxExprLength:  config.DefaultMaxExprLength,
	}
}

// SecurityMiddleware adds security headers to every response and answers
// CORS preflight requests.
//
// Parameters:
//   - cfg: Which origins and methods CORS allows, if enabled.
//   - next: The handler reached by non-preflight requests.
//
// Returns:
//   - http.HandlerFunc: The wrapped handler.
func SecurityMiddleware(cfg SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if cfg.EnableCORS {
			if origin := allowedOrigin(cfg.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(cfg.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type, Accept")
				h.Set("Access-Control-Max-Age", "86400")
			}
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		next(w, r)
	}
}

func allowedOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if a == "*" || a == origin {
			return a
		}
	}
	return ""
}

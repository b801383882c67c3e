package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/agbru/ratcalc/internal/engine"
	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/logging"
	"github.com/agbru/ratcalc/internal/service"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().Unix(),
	})
}

// handleEngines lists the engines accepted by /evaluate.
func (s *Server) handleEngines(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}
	s.writeJSONResponse(w, http.StatusOK, map[string]any{
		"engines": s.service.Engines(),
		"default": s.defaultEngine,
	})
}

// handleEvaluate evaluates the "expr" query parameter with the "engine"
// one. Request errors get an ErrorResponse; evaluation failures get a
// Response carrying error and error_kind, with status 400 for malformed
// input, 422 for arithmetic failures and 504 on timeout.
func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeErrorResponse(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	src, engineName, err := s.parseEvaluateParams(r)
	if err != nil {
		var parseErr EvaluateParseError
		if errors.As(err, &parseErr) {
			s.writeErrorResponse(w, parseErr.StatusCode, parseErr.Message)
		} else {
			s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.timeouts.RequestTimeout)
	defer cancel()

	start := time.Now()
	res, err := s.service.Evaluate(ctx, engineName, src)
	duration := time.Since(start)

	var unknown *engine.UnknownEngineError
	switch {
	case errors.As(err, &unknown):
		s.writeErrorResponse(w, http.StatusBadRequest, fmt.Sprintf("Unknown engine %q", unknown.Name))
		return
	case errors.Is(err, service.ErrExpressionTooLong), errors.Is(err, service.ErrEmptyExpression):
		s.writeErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	case err != nil && apperrors.Classify(err) == "internal":
		s.logger.Error("evaluation failed", err,
			logging.String("request_id", RequestID(r.Context())),
			logging.String("engine", engineName))
	}

	s.writeJSONResponse(w, statusFor(err), buildEvaluateResponse(src, engineName, res, duration, err))
}

// parseEvaluateParams extracts the expression and engine name.
func (s *Server) parseEvaluateParams(r *http.Request) (src, engineName string, err error) {
	q := r.URL.Query()
	if !q.Has("expr") {
		return "", "", EvaluateParseError{
			Message:    "Missing 'expr' parameter",
			StatusCode: http.StatusBadRequest,
		}
	}
	src = q.Get("expr")
	if limit := s.securityConfig.MaxExprLength; limit > 0 && len(src) > limit {
		return "", "", EvaluateParseError{
			Message:    fmt.Sprintf("Expression exceeds maximum length (%d bytes).", limit),
			StatusCode: http.StatusRequestEntityTooLarge,
		}
	}
	engineName = q.Get("engine")
	if engineName == "" {
		engineName = s.defaultEngine
	}
	return src, engineName, nil
}

// statusFor maps an evaluation error to its HTTP status.
func statusFor(err error) int {
	switch apperrors.Classify(err) {
	case "":
		return http.StatusOK
	case "syntax", apperrors.NotANumber.String():
		return http.StatusBadRequest
	case "timeout":
		return http.StatusGatewayTimeout
	case "canceled":
		return http.StatusServiceUnavailable
	case "internal":
		return http.StatusInternalServerError
	}
	return http.StatusUnprocessableEntity
}

func buildEvaluateResponse(src, engineName string, res engine.Result, duration time.Duration, err error) Response {
	resp := Response{
		Expression: src,
		Engine:     engineName,
		Duration:   duration.String(),
	}
	if err != nil {
		resp.Error = err.Error()
		resp.ErrorKind = apperrors.Classify(err)
		return resp
	}
	resp.Result = res.Text
	return resp
}

func (s *Server) writeJSONResponse(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	enc := json.NewEncoder(w)
	// Canonical fractions are written "<n/d>", not "\u003cn/d\u003e".
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		s.logger.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeErrorResponse(w http.ResponseWriter, statusCode int, message string) {
	s.writeJSONResponse(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
	})
}

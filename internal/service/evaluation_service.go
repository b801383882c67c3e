// Package service holds the evaluation logic shared by the HTTP server:
// input validation, parsing and engine lookup.
package service

//go:generate mockgen -source=evaluation_service.go -destination=mocks/mock_service.go -package=mocks

import (
	"context"
	"errors"
	"fmt"

	"github.com/agbru/ratcalc/internal/engine"
	"github.com/agbru/ratcalc/internal/expr"
)

var (
	// ErrExpressionTooLong is returned when the expression exceeds the
	// configured maximum length.
	ErrExpressionTooLong = errors.New("expression too long")
	// ErrEmptyExpression is returned for blank input.
	ErrEmptyExpression = errors.New("empty expression")
)

// Service evaluates expression text with a named engine.
type Service interface {
	// Evaluate parses src and evaluates it with the engine registered as
	// engineName. Syntax errors wrap apperrors.ErrSyntax; arithmetic
	// failures carry an apperrors.ArithmeticKind.
	Evaluate(ctx context.Context, engineName, src string) (engine.Result, error)
	// Engines lists the engine names accepted by Evaluate.
	Engines() []string
}

// EvaluationService is the default Service.
type EvaluationService struct {
	factory engine.Factory
	maxLen  int
}

var _ Service = (*EvaluationService)(nil)

// NewEvaluationService creates a service over factory. maxLen bounds the
// expression length in bytes; zero disables the check.
func NewEvaluationService(factory engine.Factory, maxLen int) *EvaluationService {
	return &EvaluationService{factory: factory, maxLen: maxLen}
}

// Evaluate validates, parses and evaluates src.
//
// Parameters:
//   - ctx: Bounds the evaluation.
//   - engineName: The engine to use.
//   - src: The expression text.
//
// Returns:
//   - engine.Result: The canonical result.
//   - error: ErrExpressionTooLong, ErrEmptyExpression, an unknown engine, a
//     syntax error or an arithmetic error.
func (s *EvaluationService) Evaluate(ctx context.Context, engineName, src string) (engine.Result, error) {
	if s.maxLen > 0 && len(src) > s.maxLen {
		return engine.Result{}, fmt.Errorf("%w: %d bytes (max %d)", ErrExpressionTooLong, len(src), s.maxLen)
	}
	if src == "" {
		return engine.Result{}, ErrEmptyExpression
	}

	e, err := s.factory.Get(engineName)
	if err != nil {
		return engine.Result{}, err
	}
	n, err := expr.Parse(src)
	if err != nil {
		return engine.Result{}, err
	}
	return e.Evaluate(ctx, n)
}

// Engines returns the names registered in the factory.
func (s *EvaluationService) Engines() []string {
	return s.factory.List()
}

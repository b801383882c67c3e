// Package engine evaluates parsed expressions. Each engine implements the
// same exact-rational semantics on a different number representation: the
// decimal-digit rational package ("exact"), math/big ("big") and, when built
// with the gmp tag, GNU MP ("gmp"). Running several engines over the same
// input and comparing their canonical output is how ratcalc cross-checks
// itself.
package engine

//go:generate mockgen -source=engine.go -destination=mocks/mock_engine.go -package=mocks

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/expr"
)

var (
	evaluationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratcalc_evaluations_total",
			Help: "The total number of expression evaluations processed",
		},
		[]string{"engine", "status"},
	)
	evaluationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "ratcalc_evaluation_duration_seconds",
			Help:    "The duration of expression evaluations in seconds",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
		},
		[]string{"engine"},
	)
	arithmeticErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ratcalc_arithmetic_errors_total",
			Help: "Arithmetic failures by kind",
		},
		[]string{"engine", "kind"},
	)
)

// Result is the outcome of an evaluation.
type Result struct {
	// Text is the canonical "<num/den>" form, or "true"/"false" for a
	// comparison.
	Text   string
	IsBool bool
	Bool   bool
}

// ProgressUpdate reports how far an engine has got through a batch of
// expressions. Value is normalized to [0, 1].
type ProgressUpdate struct {
	EngineIndex int
	Value       float64
}

// Engine evaluates expression trees. Implementations are safe for
// concurrent use.
type Engine interface {
	// Name returns the registry name of the engine (e.g. "exact").
	Name() string
	// Evaluate computes n. It stops early with ctx.Err() when ctx is done.
	Evaluate(ctx context.Context, n expr.Node) (Result, error)
}

// coreEngine is a bare evaluator without instrumentation.
type coreEngine interface {
	Name() string
	EvaluateCore(ctx context.Context, n expr.Node) (Result, error)
}

// Evaluator decorates a coreEngine with metrics, tracing and debug logging.
type Evaluator struct {
	core coreEngine
}

// NewEvaluator wraps core. It panics if core is nil.
func NewEvaluator(core coreEngine) Engine {
	if core == nil {
		panic("engine: the core engine cannot be nil")
	}
	return &Evaluator{core: core}
}

// Name returns the name of the wrapped engine.
func (e *Evaluator) Name() string { return e.core.Name() }

// Evaluate runs the wrapped engine inside a span and records the outcome.
func (e *Evaluator) Evaluate(ctx context.Context, n expr.Node) (res Result, err error) {
	name := e.core.Name()
	ctx, span := otel.Tracer("ratcalc/engine").Start(ctx, "Evaluate",
		trace.WithAttributes(
			attribute.String("engine", name),
			attribute.Int("nodes", expr.Count(n)),
		))
	defer span.End()

	start := time.Now()
	defer func() {
		duration := time.Since(start)
		status := "success"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			if kind, ok := apperrors.KindOf(err); ok {
				arithmeticErrorsTotal.WithLabelValues(name, kind.String()).Inc()
			}
		}
		evaluationsTotal.WithLabelValues(name, status).Inc()
		evaluationDuration.WithLabelValues(name).Observe(duration.Seconds())

		log.Debug().
			Str("engine", name).
			Stringer("expr", n).
			Str("result", res.Text).
			Dur("duration", duration).
			Str("status", status).
			Msg("evaluation completed")
	}()

	return e.core.EvaluateCore(ctx, n)
}

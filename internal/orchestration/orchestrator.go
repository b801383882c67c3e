// Package orchestration runs several engines over the same batch of
// expressions concurrently and cross-checks their answers.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/ratcalc/internal/cli"
	"github.com/agbru/ratcalc/internal/config"
	"github.com/agbru/ratcalc/internal/engine"
	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/expr"
	"github.com/agbru/ratcalc/internal/ui"
)

// ProgressBufferMultiplier sizes the progress channel per engine so that
// evaluation goroutines rarely block on a slow display.
const ProgressBufferMultiplier = 5

// Job is one expression of a batch.
type Job struct {
	// Source is the text as the user wrote it.
	Source string
	Node   expr.Node
}

// Outcome is the result of one engine on one job. Err holds arithmetic
// failures, which are legitimate answers and are compared across engines.
type Outcome struct {
	Result   engine.Result
	Err      error
	Duration time.Duration
}

// key identifies the answer for cross-engine comparison: the canonical text,
// or the error category.
func (o Outcome) key() string {
	if o.Err != nil {
		return "error:" + apperrors.Classify(o.Err)
	}
	return o.Result.Text
}

// EngineRun is the outcome of one engine over a whole batch.
type EngineRun struct {
	Name     string
	Outcomes []Outcome
	Duration time.Duration
	// Err is set when the run was aborted, by cancellation or timeout.
	// Outcomes then holds only the jobs completed before the abort.
	Err error
}

// EvaluateAll runs every engine over jobs, one goroutine per engine, and
// reports progress to out while they run. Each engine processes the jobs in
// order.
//
// Parameters:
//   - ctx: Cancels every run; completed outcomes are kept.
//   - engines: The engines to run.
//   - jobs: The parsed expressions.
//   - out: Receives the progress display.
//
// Returns:
//   - []EngineRun: One run per engine, in the order of engines.
func EvaluateAll(ctx context.Context, engines []engine.Engine, jobs []Job, out io.Writer) []EngineRun {
	g, ctx := errgroup.WithContext(ctx)
	runs := make([]EngineRun, len(engines))
	progressChan := make(chan engine.ProgressUpdate, len(engines)*ProgressBufferMultiplier)

	var displayWg sync.WaitGroup
	displayWg.Add(1)
	go cli.DisplayProgress(&displayWg, progressChan, len(engines), out)

	for i, e := range engines {
		idx, eng := i, e
		g.Go(func() error {
			runs[idx] = runEngine(ctx, idx, eng, jobs, progressChan)
			return nil
		})
	}

	_ = g.Wait()
	close(progressChan)
	displayWg.Wait()

	return runs
}

func runEngine(ctx context.Context, idx int, e engine.Engine, jobs []Job, progress chan<- engine.ProgressUpdate) EngineRun {
	run := EngineRun{Name: e.Name(), Outcomes: make([]Outcome, 0, len(jobs))}
	start := time.Now()
	defer func() { run.Duration = time.Since(start) }()

	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			run.Err = apperrors.CalculationError{Engine: run.Name, Cause: err}
			return run
		}
		jobStart := time.Now()
		res, err := e.Evaluate(ctx, job.Node)
		if apperrors.IsContextError(err) {
			run.Err = apperrors.CalculationError{Engine: run.Name, Cause: err}
			return run
		}
		run.Outcomes = append(run.Outcomes, Outcome{Result: res, Err: err, Duration: time.Since(jobStart)})
		select {
		case progress <- engine.ProgressUpdate{EngineIndex: idx, Value: float64(i+1) / float64(len(jobs))}:
		default:
		}
	}
	return run
}

// PrintExecutionPlan describes what is about to run.
func PrintExecutionPlan(out io.Writer, engines []engine.Engine, jobs int) {
	names := make([]string, len(engines))
	for i, e := range engines {
		names[i] = e.Name()
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Expressions: %s%d%s, engines: %s%v%s\n",
		ui.ColorMagenta(), jobs, ui.ColorReset(), ui.ColorCyan(), names, ui.ColorReset())
	if len(engines) > 1 {
		fmt.Fprintf(out, "Mode: %scross-check%s (every engine must agree)\n", ui.ColorYellow(), ui.ColorReset())
	}
	fmt.Fprintln(out)
}

// AnalyzeResults prints the run summary followed by the result of every job.
//
// Parameters:
//   - runs: The engine runs; sorted in place, fastest complete run first.
//   - jobs: The jobs the runs evaluated.
//   - cfg: Selects quiet, JSON or plain output.
//   - out: The destination writer.
//
// Returns:
//   - int: ExitErrorMismatch when engines disagree on any job, otherwise
//     the code of the first failing job, or ExitSuccess.
func AnalyzeResults(runs []EngineRun, jobs []Job, cfg config.AppConfig, out io.Writer) int {
	sort.SliceStable(runs, func(i, j int) bool {
		if (runs[i].Err == nil) != (runs[j].Err == nil) {
			return runs[i].Err == nil
		}
		return runs[i].Duration < runs[j].Duration
	})

	plain := !cfg.Quiet && !cfg.JSONOutput
	if plain {
		printSummary(runs, out)
	}

	var valid []EngineRun
	var firstError error
	for _, run := range runs {
		if run.Err == nil {
			valid = append(valid, run)
		} else if firstError == nil {
			firstError = run.Err
		}
	}

	if len(valid) == 0 {
		if plain {
			fmt.Fprintf(out, "\nGlobal Status: Failure. No engine could complete the evaluation.\n")
		}
		return apperrors.HandleCalculationError(firstError, 0, out, cli.CLIColorProvider{})
	}

	if i, ok := findMismatch(valid, len(jobs)); !ok {
		fmt.Fprintf(out, "\nGlobal Status: CRITICAL ERROR! The engines disagree on %q:\n", jobs[i].Source)
		for _, run := range valid {
			fmt.Fprintf(out, "  %s%-8s%s %s\n", ui.ColorBlue(), run.Name, ui.ColorReset(), run.Outcomes[i].key())
		}
		return apperrors.ExitErrorMismatch
	}

	if plain {
		fmt.Fprintf(out, "\nGlobal Status: Success. All valid results are consistent.\n\n")
	}
	return reportOutcomes(valid[0], jobs, cfg, out)
}

func printSummary(runs []EngineRun, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")
	tw := tabwriter.NewWriter(out, 0, 0, 3, ' ', 0)
	fmt.Fprintf(tw, "%sEngine%s\t%sDuration%s\t%sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset(), ui.ColorUnderline(), ui.ColorReset())
	for _, run := range runs {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if run.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), run.Err, ui.ColorReset())
		}
		duration := cli.FormatExecutionDuration(run.Duration)
		if run.Duration == 0 {
			duration = "< 1µs"
		}
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\t%s\n",
			ui.ColorBlue(), run.Name, ui.ColorReset(),
			ui.ColorYellow(), duration, ui.ColorReset(),
			status)
	}
	if err := tw.Flush(); err != nil {
		fmt.Fprintf(out, "Warning: failed to flush tabwriter: %v\n", err)
	}
}

// findMismatch returns the index of the first job on which the runs
// disagree, and false; or 0 and true when they all agree.
func findMismatch(runs []EngineRun, jobs int) (int, bool) {
	for i := 0; i < jobs; i++ {
		want := runs[0].Outcomes[i].key()
		for _, run := range runs[1:] {
			if run.Outcomes[i].key() != want {
				return i, false
			}
		}
	}
	return 0, true
}

func reportOutcomes(run EngineRun, jobs []Job, cfg config.AppConfig, out io.Writer) int {
	exitCode := apperrors.ExitSuccess
	reports := make([]cli.Report, 0, len(jobs))

	for i, job := range jobs {
		o := run.Outcomes[i]
		if o.Err != nil && exitCode == apperrors.ExitSuccess {
			exitCode = apperrors.HandleCalculationError(o.Err, 0, io.Discard, nil)
		}
		switch {
		case cfg.JSONOutput:
			reports = append(reports, cli.NewReport(job.Source, run.Name, o.Result, o.Err, o.Duration))
		case o.Err != nil:
			fmt.Fprintf(out, "%s: ", job.Source)
			apperrors.HandleCalculationError(o.Err, 0, out, cli.CLIColorProvider{})
		case cfg.Quiet:
			cli.DisplayQuiet(out, o.Result)
		default:
			cli.DisplayResult(out, job.Source, o.Result, o.Duration, cfg.Details)
		}
	}

	if cfg.JSONOutput {
		if err := cli.WriteJSON(out, reports); err != nil {
			return apperrors.ExitErrorGeneric
		}
	}
	return exitCode
}

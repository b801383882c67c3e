package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agbru/ratcalc/internal/cli"
	"github.com/agbru/ratcalc/internal/config"
	"github.com/agbru/ratcalc/internal/engine"
	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/expr"
	"github.com/agbru/ratcalc/internal/logging"
	"github.com/agbru/ratcalc/internal/orchestration"
	"github.com/agbru/ratcalc/internal/parser"
	"github.com/agbru/ratcalc/internal/rational"
	"github.com/agbru/ratcalc/internal/server"
	"github.com/agbru/ratcalc/internal/ui"
)

// ErrNoInput is returned when no expression, file or mode was given.
var ErrNoInput = errors.New("nothing to evaluate: pass an expression, -f <file>, -matrix <file>, -i or -server")

// Application is a configured ratcalc invocation.
type Application struct {
	Config  config.AppConfig
	Factory engine.Factory
	// ErrWriter receives diagnostics, typically os.Stderr.
	ErrWriter io.Writer
	// In feeds the REPL. Defaults to os.Stdin.
	In io.Reader
}

// New parses args against the engines of the global factory and sets the
// global log level.
//
// Parameters:
//   - args: The full command line; args[0] is the program name.
//   - errWriter: Receives usage text and configuration errors.
//
// Returns:
//   - *Application: The configured application.
//   - error: A flag.ErrHelp or ConfigError when args are rejected.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := engine.GlobalFactory()

	programName := "ratcalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, factory.List())
	if err != nil {
		return nil, err
	}
	logging.SetGlobalLevel(cfg.Verbose)

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
		In:        os.Stdin,
	}, nil
}

// Run dispatches to completion, server, REPL, matrix or expression mode,
// in that order of precedence.
//
// Parameters:
//   - ctx: The parent context; the run adds its own timeout and signal handling.
//   - out: Receives results and reports.
//
// Returns:
//   - int: The process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	switch {
	case a.Config.ServerMode:
		return a.runServer()
	case a.Config.Interactive:
		return a.runREPL(out)
	case a.Config.MatrixFile != "":
		return a.runMatrix(ctx, out)
	}
	return a.runExpressions(ctx, out)
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

func (a *Application) runREPL(out io.Writer) int {
	repl := cli.NewREPL(a.Factory.GetAll(), cli.REPLConfig{
		DefaultEngine: a.Config.Engine,
		Timeout:       a.Config.Timeout,
		Details:       a.Config.Details,
		MaxExprLength: a.Config.MaxExprLength,
	})
	if a.In != nil {
		repl.SetInput(a.In)
	}
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runExpressions evaluates the -e expression or every line of the -f file
// with the selected engines and cross-checks the answers.
func (a *Application) runExpressions(ctx context.Context, out io.Writer) int {
	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	jobs, err := a.loadJobs()
	if err != nil {
		if errors.Is(err, ErrNoInput) {
			fmt.Fprintln(a.ErrWriter, err)
			return apperrors.ExitErrorConfig
		}
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}

	engines, err := engine.Select(a.Factory, a.Config.Engine)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	progressOut := out
	if a.Config.Quiet || a.Config.JSONOutput {
		progressOut = io.Discard
	} else {
		orchestration.PrintExecutionPlan(out, engines, len(jobs))
	}

	runs := orchestration.EvaluateAll(ctx, engines, jobs, progressOut)
	return orchestration.AnalyzeResults(runs, jobs, a.Config, out)
}

// loadJobs parses the expressions to evaluate. Lines of an input file that
// are blank or start with '#' are skipped.
func (a *Application) loadJobs() ([]orchestration.Job, error) {
	switch {
	case a.Config.Expr != "":
		job, err := a.parseJob(a.Config.Expr, "expression", 0)
		if err != nil {
			return nil, err
		}
		return []orchestration.Job{job}, nil
	case a.Config.InputFile != "":
		return a.loadJobFile(a.Config.InputFile)
	}
	return nil, ErrNoInput
}

func (a *Application) loadJobFile(path string) ([]orchestration.Job, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var jobs []orchestration.Job
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), a.Config.MaxExprLength+1)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		job, err := a.parseJob(text, path, line)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.WrapError(err, "reading %s", path)
	}
	if len(jobs) == 0 {
		return nil, apperrors.PositionError{Source: path, Cause: fmt.Errorf("%w: no expressions", apperrors.ErrSyntax)}
	}
	return jobs, nil
}

func (a *Application) parseJob(src, source string, line int) (orchestration.Job, error) {
	if limit := a.Config.MaxExprLength; limit > 0 && len(src) > limit {
		return orchestration.Job{}, apperrors.PositionError{
			Source: source, Line: line,
			Cause: fmt.Errorf("%w: expression is %d bytes (max %d)", apperrors.ErrSyntax, len(src), limit),
		}
	}
	n, err := expr.Parse(src)
	if err != nil {
		if line == 0 {
			return orchestration.Job{}, err
		}
		return orchestration.Job{}, apperrors.PositionError{Source: source, Line: line, Cause: err}
	}
	return orchestration.Job{Source: src, Node: n}, nil
}

// matrixReport is the summary of a matrix file.
type matrixReport struct {
	Source     string `json:"source"`
	Rows       int    `json:"rows"`
	Cols       int    `json:"cols"`
	Entries    int    `json:"entries"`
	Pruned     int    `json:"pruned"`
	Sum        string `json:"sum"`
	Trace      string `json:"trace,omitempty"`
	TraceError string `json:"trace_error,omitempty"`
	// Verified lists the engines that recomputed the sum independently.
	Verified []string `json:"verified,omitempty"`
}

// runMatrix loads a sparse matrix, prunes entries below epsilon and prints
// its sum and trace. The sum is then re-evaluated by the selected engines
// as a single expression; any disagreement is a mismatch.
func (a *Application) runMatrix(ctx context.Context, out io.Writer) int {
	ctx, lifecycle := SetupLifecycle(ctx, a.Config.Timeout)
	defer lifecycle.Cleanup()

	m, err := parser.ParseFile(a.Config.MatrixFile)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	eps, err := a.Config.EpsilonRat()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: epsilon: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	report := matrixReport{
		Source: a.Config.MatrixFile,
		Rows:   m.Rows,
		Cols:   m.Cols,
		Pruned: m.Prune(eps),
	}
	report.Entries = m.Len()
	sum := m.Sum()
	report.Sum = sum.String()
	if trace, err := m.Trace(); err != nil {
		report.TraceError = err.Error()
	} else {
		report.Trace = trace.String()
	}

	engines, err := engine.Select(a.Factory, a.Config.Engine)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Configuration error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	verified, err := verifySum(ctx, engines, m, sum)
	report.Verified = verified
	exitCode := apperrors.ExitSuccess
	if err != nil {
		exitCode = apperrors.ExitErrorMismatch
		if !errors.Is(err, errSumMismatch) {
			exitCode = apperrors.HandleCalculationError(err, 0, io.Discard, nil)
		}
	}

	if a.Config.JSONOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(report); encErr != nil {
			return apperrors.ExitErrorGeneric
		}
	} else {
		printMatrixReport(out, report, a.Config.Quiet)
	}
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "%sVerification failed: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
	}
	return exitCode
}

var errSumMismatch = errors.New("engines disagree on the matrix sum")

// verifySum evaluates the entries of m joined by "+" with every engine and
// compares the results with want.
func verifySum(ctx context.Context, engines []engine.Engine, m *parser.Matrix, want rational.Rat) ([]string, error) {
	terms := []string{"0"}
	for _, e := range m.Entries() {
		terms = append(terms, e.Value.String())
	}
	n, err := expr.Parse(strings.Join(terms, " + "))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(engines))
	for _, e := range engines {
		res, err := e.Evaluate(ctx, n)
		if err != nil {
			return names, apperrors.CalculationError{Engine: e.Name(), Cause: err}
		}
		if res.Text != want.String() {
			return names, fmt.Errorf("%w: %s computed %s, expected %s", errSumMismatch, e.Name(), res.Text, want)
		}
		names = append(names, e.Name())
	}
	return names, nil
}

func printMatrixReport(out io.Writer, r matrixReport, quiet bool) {
	if quiet {
		fmt.Fprintln(out, r.Sum)
		return
	}
	fmt.Fprintf(out, "%s--- Matrix Summary ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Source     : %s\n", r.Source)
	fmt.Fprintf(out, "Dimensions : %s%d x %d%s\n", ui.ColorMagenta(), r.Rows, r.Cols, ui.ColorReset())
	fmt.Fprintf(out, "Entries    : %d (%d pruned below epsilon)\n", r.Entries, r.Pruned)
	fmt.Fprintf(out, "Sum        : %s\n", ui.Paint(ui.ColorGreen(), r.Sum))
	if r.TraceError != "" {
		fmt.Fprintf(out, "Trace      : n/a (%s)\n", r.TraceError)
	} else {
		fmt.Fprintf(out, "Trace      : %s\n", ui.Paint(ui.ColorGreen(), r.Trace))
	}
	if len(r.Verified) > 0 {
		fmt.Fprintf(out, "Verified by: %s\n", strings.Join(r.Verified, ", "))
	}
}

// IsHelpError reports whether err comes from -h or -help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}

// Package config turns command-line flags and RATCALC_* environment
// variables into an AppConfig. Flags win over the environment, which wins
// over the defaults below.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/rational"
)

// EnvPrefix is the prefix of every environment variable read by ratcalc.
const EnvPrefix = "RATCALC_"

// Defaults.
const (
	DefaultTimeout       = time.Minute
	DefaultPort          = "8080"
	DefaultEngine        = "all"
	DefaultEpsilon       = 1e-12
	DefaultMaxExprLength = 4096
)

// AppConfig holds the parsed configuration.
type AppConfig struct {
	// Expr is a single expression to evaluate (-e or positional arguments).
	Expr string
	// InputFile holds one expression per line (-f).
	InputFile string
	// MatrixFile is a sparse rational matrix to load and summarize (-matrix).
	MatrixFile string
	// Epsilon is the "treat as zero" threshold used when pruning matrix
	// entries. It is converted to an exact fraction with EpsilonRat.
	Epsilon float64
	// Engine is "all" or the name of a registered engine.
	Engine  string
	Timeout time.Duration
	// Verbose enables debug logging.
	Verbose bool
	// Details adds floor, round and a decimal approximation to each result.
	Details    bool
	JSONOutput bool
	ServerMode bool
	Port       string
	NoColor    bool
	// Quiet prints bare results only, for scripts.
	Quiet       bool
	Interactive bool
	// Completion names a shell to generate a completion script for.
	Completion    string
	MaxExprLength int
}

// EpsilonRat returns Epsilon as an exact fraction.
func (c AppConfig) EpsilonRat() (rational.Rat, error) {
	return rational.FromFloat64(c.Epsilon)
}

// Validate checks the configuration against the registered engine names.
func (c AppConfig) Validate(availableEngines []string) error {
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if math.IsNaN(c.Epsilon) || math.IsInf(c.Epsilon, 0) {
		return apperrors.NewConfigError("epsilon must be a finite number")
	}
	if c.Epsilon < 0 {
		return apperrors.NewConfigError("epsilon cannot be negative: %g", c.Epsilon)
	}
	if c.MaxExprLength <= 0 {
		return apperrors.NewConfigError("maximum expression length must be positive: %d", c.MaxExprLength)
	}
	inputs := 0
	for _, s := range []string{c.Expr, c.InputFile, c.MatrixFile} {
		if s != "" {
			inputs++
		}
	}
	if inputs > 1 {
		return apperrors.NewConfigError("-e, -f and -matrix are mutually exclusive")
	}
	if c.Engine != DefaultEngine && !contains(availableEngines, c.Engine) {
		return apperrors.NewConfigError("unrecognized engine: '%s'. Valid engines are: 'all' or [%s]",
			c.Engine, strings.Join(availableEngines, ", "))
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ParseConfig parses args into an AppConfig, applies environment overrides
// for flags that were not given and validates the result.
//
// Parameters:
//   - programName: The name shown in usage text.
//   - args: The arguments without the program name.
//   - errorWriter: Receives usage text and flag errors.
//   - availableEngines: The registered engine names accepted by -engine.
//
// Returns:
//   - AppConfig: The merged configuration.
//   - error: flag.ErrHelp, a parse error or a ConfigError.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableEngines []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	engineHelp := fmt.Sprintf("Engine to use: 'all' (default) or one of [%s].", strings.Join(availableEngines, ", "))

	config := AppConfig{}
	fs.StringVar(&config.Expr, "e", "", "Expression to evaluate, e.g. '<3/4> + <-5/6>'.")
	fs.StringVar(&config.Expr, "expr", "", "Alias for -e.")
	fs.StringVar(&config.InputFile, "f", "", "File with one expression per line.")
	fs.StringVar(&config.MatrixFile, "matrix", "", "Sparse rational matrix file to load and summarize.")
	fs.Float64Var(&config.Epsilon, "epsilon", DefaultEpsilon, "Entries with |x| < epsilon are treated as zero.")
	fs.StringVar(&config.Engine, "engine", DefaultEngine, engineHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum evaluation time.")
	fs.BoolVar(&config.Verbose, "v", false, "Enable debug logging.")
	fs.BoolVar(&config.Details, "d", false, "Show floor, round and a decimal approximation.")
	fs.BoolVar(&config.Details, "details", false, "Alias for -d.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.ServerMode, "server", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.Quiet, "quiet", false, "Print bare results only.")
	fs.BoolVar(&config.Quiet, "q", false, "Alias for -quiet.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.BoolVar(&config.Interactive, "i", false, "Alias for -interactive.")
	fs.StringVar(&config.Completion, "completion", "", "Generate shell completion script (bash, zsh, fish, powershell).")
	fs.IntVar(&config.MaxExprLength, "max-expr-length", DefaultMaxExprLength, "Longest accepted expression, in bytes.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if config.Expr == "" && fs.NArg() > 0 {
		config.Expr = strings.Join(fs.Args(), " ")
	}

	applyEnvOverrides(&config, fs)

	config.Engine = strings.ToLower(config.Engine)
	if err := config.Validate(availableEngines); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errors.New("invalid configuration"), err)
	}
	return config, nil
}

package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/agbru/ratcalc/internal/engine"
	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/expr"
	"github.com/agbru/ratcalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultEngine is the engine selected at startup. "" or "all" picks
	// "exact" when available, otherwise the first name in sorted order.
	DefaultEngine string
	// Timeout bounds each evaluation.
	Timeout time.Duration
	// Details starts the session with the detailed analysis enabled.
	Details bool
	// MaxExprLength rejects longer input lines; zero disables the check.
	MaxExprLength int
}

// REPL is an interactive calculator session.
type REPL struct {
	config        REPLConfig
	engines       map[string]engine.Engine
	currentEngine string
	in            io.Reader
	out           io.Writer
}

// NewREPL creates a session over engines.
func NewREPL(engines map[string]engine.Engine, config REPLConfig) *REPL {
	current := config.DefaultEngine
	if _, ok := engines[current]; !ok {
		current = ""
		if _, ok := engines["exact"]; ok {
			current = "exact"
		} else if names := sortedNames(engines); len(names) > 0 {
			current = names[0]
		}
	}
	return &REPL{
		config:        config,
		engines:       engines,
		currentEngine: current,
		in:            os.Stdin,
		out:           os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and executes commands until "exit" or end of input.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"rat> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}
		line := strings.TrimSpace(input)
		if line != "" && !r.processCommand(line) {
			return
		}
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(r.out, "\nGoodbye!")
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s   %sExact Rational Calculator - Interactive Mode%s   %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	y, rs := ui.ColorYellow(), ui.ColorReset()
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), rs)
	fmt.Fprintf(r.out, "  %seval <expr>%s     - Evaluate with the current engine (or type the expression)\n", y, rs)
	fmt.Fprintf(r.out, "  %sengine <name>%s   - Change engine (%s)\n", y, rs, strings.Join(sortedNames(r.engines), ", "))
	fmt.Fprintf(r.out, "  %scompare <expr>%s  - Evaluate with every engine and check agreement\n", y, rs)
	fmt.Fprintf(r.out, "  %slist%s            - List available engines\n", y, rs)
	fmt.Fprintf(r.out, "  %sdetails%s         - Toggle the detailed result analysis\n", y, rs)
	fmt.Fprintf(r.out, "  %sstatus%s          - Display current configuration\n", y, rs)
	fmt.Fprintf(r.out, "  %shelp%s            - Display this help\n", y, rs)
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s     - Exit interactive mode\n", y, rs, y, rs)
	fmt.Fprintf(r.out, "Literals: 7, -2, 1.25, <3/4>, <-5/6>. Operators: + - * / == != < <= > >=.\n")
	fmt.Fprintf(r.out, "Functions: abs(x), floor(x), round(x), inv(x).\n")
}

// processCommand executes one input line. It returns false when the session
// should end.
func (r *REPL) processCommand(line string) bool {
	cmd, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(cmd) {
	case "eval", "e":
		if rest == "" {
			fmt.Fprintf(r.out, "%sUsage: eval <expr>%s\n", ui.ColorRed(), ui.ColorReset())
			return true
		}
		r.evaluate(rest)
	case "engine", "en":
		r.cmdEngine(rest)
	case "compare", "cmp":
		if rest == "" {
			fmt.Fprintf(r.out, "%sUsage: compare <expr>%s\n", ui.ColorRed(), ui.ColorReset())
			return true
		}
		r.cmdCompare(rest)
	case "list", "ls":
		r.cmdList()
	case "details":
		r.config.Details = !r.config.Details
		fmt.Fprintf(r.out, "Detailed analysis: %s%s%s\n", ui.ColorGreen(), onOff(r.config.Details), ui.ColorReset())
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		r.evaluate(line)
	}
	return true
}

func (r *REPL) parse(src string) (expr.Node, bool) {
	if r.config.MaxExprLength > 0 && len(src) > r.config.MaxExprLength {
		fmt.Fprintf(r.out, "%sExpression too long: %d bytes (max %d)%s\n",
			ui.ColorRed(), len(src), r.config.MaxExprLength, ui.ColorReset())
		return nil, false
	}
	n, err := expr.Parse(src)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return nil, false
	}
	return n, true
}

func (r *REPL) run(e engine.Engine, n expr.Node) (engine.Result, time.Duration, error) {
	timeout := r.config.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	start := time.Now()
	res, err := e.Evaluate(ctx, n)
	return res, time.Since(start), err
}

func (r *REPL) evaluate(src string) {
	e, ok := r.engines[r.currentEngine]
	if !ok {
		fmt.Fprintf(r.out, "%sEngine not found: %s%s\n", ui.ColorRed(), r.currentEngine, ui.ColorReset())
		return
	}
	n, ok := r.parse(src)
	if !ok {
		return
	}
	res, d, err := r.run(e, n)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	DisplayResult(r.out, src, res, d, r.config.Details)
}

func (r *REPL) cmdEngine(name string) {
	name = strings.ToLower(name)
	if name == "" {
		fmt.Fprintf(r.out, "%sUsage: engine <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(sortedNames(r.engines), ", "))
		return
	}
	if _, ok := r.engines[name]; !ok {
		fmt.Fprintf(r.out, "%sUnknown engine: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
		fmt.Fprintf(r.out, "Available engines: %s\n", strings.Join(sortedNames(r.engines), ", "))
		return
	}
	r.currentEngine = name
	fmt.Fprintf(r.out, "Engine changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
}

func (r *REPL) cmdCompare(src string) {
	n, ok := r.parse(src)
	if !ok {
		return
	}
	fmt.Fprintf(r.out, "\n%sComparison for %s:%s\n", ui.ColorBold(), n, ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	var reference string
	for _, name := range sortedNames(r.engines) {
		res, d, err := r.run(r.engines[name], n)
		outcome := res.Text
		if err != nil {
			outcome = "error:" + apperrors.Classify(err)
		}
		if reference == "" {
			reference = outcome
		}
		status := ui.ColorGreen() + "✓" + ui.ColorReset()
		if outcome != reference {
			status = ui.ColorRed() + "✗ INCONSISTENT" + ui.ColorReset()
		}
		shown := res.Text
		if err != nil {
			shown = ui.ColorRed() + err.Error() + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "  %s%-8s%s %s%10s%s  %s %s\n",
			ui.ColorYellow(), name, ui.ColorReset(),
			ui.ColorCyan(), FormatExecutionDuration(d), ui.ColorReset(),
			shown, status)
	}
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) cmdList() {
	fmt.Fprintf(r.out, "\n%sAvailable engines:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, name := range sortedNames(r.engines) {
		marker := "  "
		if name == r.currentEngine {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ui.ColorYellow(), name, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Engine:        %s%s%s\n", ui.ColorCyan(), r.currentEngine, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:       %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Details:       %s%s%s\n", ui.ColorCyan(), onOff(r.config.Details), ui.ColorReset())
	fmt.Fprintf(r.out, "  Max length:    %s%d%s bytes\n", ui.ColorCyan(), r.config.MaxExprLength, ui.ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func sortedNames(engines map[string]engine.Engine) []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

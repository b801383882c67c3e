package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/govalues/decimal"

	"github.com/agbru/ratcalc/internal/engine"
	apperrors "github.com/agbru/ratcalc/internal/errors"
	"github.com/agbru/ratcalc/internal/rational"
	"github.com/agbru/ratcalc/internal/ui"
)

// DecimalPlaces is the scale of the decimal approximation printed with
// -details.
const DecimalPlaces = 12

// Report is the JSON shape of one evaluated expression.
type Report struct {
	Expression string `json:"expression"`
	Engine     string `json:"engine,omitempty"`
	Result     string `json:"result,omitempty"`
	Duration   string `json:"duration"`
	Error      string `json:"error,omitempty"`
	ErrorKind  string `json:"error_kind,omitempty"`
}

// NewReport builds the report for one outcome. err, when set, takes
// precedence over res.
func NewReport(expression, engineName string, res engine.Result, err error, d time.Duration) Report {
	r := Report{
		Expression: expression,
		Engine:     engineName,
		Duration:   d.String(),
	}
	if err != nil {
		r.Error = err.Error()
		r.ErrorKind = apperrors.Classify(err)
		return r
	}
	r.Result = res.Text
	return r
}

// WriteJSON encodes reports as an indented JSON array.
func WriteJSON(out io.Writer, reports []Report) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(reports)
}

// ApproximateDecimal divides the numerator of r by its denominator with
// fixed-point decimals.
//
// Parameters:
//   - r: The fraction to approximate.
//   - places: The number of fractional digits kept after rounding.
//
// Returns:
//   - string: The rounded decimal text, e.g. "0.333333333333".
//   - error: When a component is wider than the decimal type's 19-digit
//     coefficient.
func ApproximateDecimal(r rational.Rat, places int) (string, error) {
	num, err := decimal.Parse(r.Num().String())
	if err != nil {
		return "", fmt.Errorf("numerator %d digits wide: %w", r.Num().Len(), err)
	}
	den, err := decimal.Parse(r.Den().String())
	if err != nil {
		return "", fmt.Errorf("denominator %d digits wide: %w", r.Den().Len(), err)
	}
	q, err := num.Quo(den)
	if err != nil {
		return "", err
	}
	if r.Sign() < 0 {
		q = q.Neg()
	}
	return q.Round(places).String(), nil
}

// DisplayResult prints "source = <n/d>" and, with details, an analysis of
// the fraction. Very long components are elided unless details is set.
//
// Parameters:
//   - out: The destination writer.
//   - source: The expression as typed.
//   - res: The engine result.
//   - d: The evaluation time.
//   - details: Adds component sizes, floor, round and a decimal approximation.
func DisplayResult(out io.Writer, source string, res engine.Result, d time.Duration, details bool) {
	text := res.Text
	if !details && !res.IsBool {
		text = truncateComponents(text)
	}
	fmt.Fprintf(out, "%s = %s\n", source, ui.Paint(ui.ColorGreen(), text))
	if !details {
		return
	}

	fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
	duration := FormatExecutionDuration(d)
	if d == 0 {
		duration = "< 1µs"
	}
	fmt.Fprintf(out, "Evaluation time      : %s\n", ui.Paint(ui.ColorGreen(), duration))
	if res.IsBool {
		return
	}
	r, err := rational.ParseString(res.Text)
	if err != nil {
		fmt.Fprintf(out, "Analysis unavailable : %v\n", err)
		return
	}
	fmt.Fprintf(out, "Numerator digits     : %s\n", ui.Paint(ui.ColorCyan(), formatNumberString(fmt.Sprint(r.Num().Len()))))
	fmt.Fprintf(out, "Denominator digits   : %s\n", ui.Paint(ui.ColorCyan(), formatNumberString(fmt.Sprint(r.Den().Len()))))
	fmt.Fprintf(out, "Integer              : %s\n", yesNo(r.IsInt()))
	fmt.Fprintf(out, "Floor                : %s\n", int64OrError(r.Floor()))
	fmt.Fprintf(out, "Round                : %s\n", int64OrError(r.Round()))
	approx, err := ApproximateDecimal(r, DecimalPlaces)
	if err != nil {
		approx = "n/a (" + err.Error() + ")"
	}
	fmt.Fprintf(out, "Decimal approximation: %s\n", approx)
}

// DisplayQuiet prints the bare result, for scripts.
func DisplayQuiet(out io.Writer, res engine.Result) {
	fmt.Fprintln(out, res.Text)
}

func int64OrError(v int64, err error) string {
	if err != nil {
		if kind, ok := apperrors.KindOf(err); ok {
			return "n/a (" + kind.String() + ")"
		}
		return "n/a"
	}
	return formatNumberString(fmt.Sprint(v))
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// truncateComponents elides the middle of any numerator or denominator
// longer than TruncationLimit digits in a "<n/d>" string.
func truncateComponents(s string) string {
	inner, ok := strings.CutPrefix(s, "<")
	if !ok {
		return s
	}
	inner, ok = strings.CutSuffix(inner, ">")
	if !ok {
		return s
	}
	num, den, found := strings.Cut(inner, "/")
	if !found {
		return s
	}
	return "<" + elide(num) + "/" + elide(den) + ">"
}

func elide(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= TruncationLimit {
		return sign + digits
	}
	return fmt.Sprintf("%s%s...%s(%d digits)", sign, digits[:DisplayEdges], digits[len(digits)-DisplayEdges:], len(digits))
}

// formatNumberString inserts thousand separators into a decimal string.
func formatNumberString(s string) string {
	if len(s) == 0 {
		return ""
	}
	prefix := ""
	if s[0] == '-' {
		prefix, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return prefix + s
	}

	var builder strings.Builder
	builder.Grow(len(prefix) + n + (n-1)/3)
	builder.WriteString(prefix)
	first := n % 3
	if first == 0 {
		first = 3
	}
	builder.WriteString(s[:first])
	for i := first; i < n; i += 3 {
		builder.WriteByte(',')
		builder.WriteString(s[i : i+3])
	}
	return builder.String()
}

// Package diagnostics renders the error and value types produced
// elsewhere in this module into the one consistent, optionally
// colorized presentation the REPL and cmd/recalc share, grounded on
// this lineage's habit of giving structured errors their own
// formatted-rendering component (see kanso's internal/errors
// reporter) rather than leaning on each error's bare Error() string.
package diagnostics

import (
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/fatih/color"

	"github.com/LordHavelockVetinari/recursive-calculator/compile"
	"github.com/LordHavelockVetinari/recursive-calculator/config"
	"github.com/LordHavelockVetinari/recursive-calculator/evalctx"
	"github.com/LordHavelockVetinari/recursive-calculator/lex"
	"github.com/LordHavelockVetinari/recursive-calculator/parse"
	"github.com/LordHavelockVetinari/recursive-calculator/rational"
)

// Reporter formats errors against a named source, attaching line and
// column context and a caret marker the way a compiler's diagnostic
// output does.
type Reporter struct {
	filename string
	lines    []string

	errorColor func(format string, a ...interface{}) string
	dimColor   func(format string, a ...interface{}) string
	hintColor  func(format string, a ...interface{}) string
}

// NewReporter builds a Reporter for source, named filename in its
// location lines ("<stdin>" is a reasonable name for REPL input).
// Color is enabled unless stdout is not a terminal or NO_COLOR is
// set, matching fatih/color's own NoColor default detection plus an
// explicit override any caller can force with SetColor.
func NewReporter(filename, source string) *Reporter {
	r := &Reporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
	r.errorColor = color.New(color.FgRed, color.Bold).SprintfFunc()
	r.dimColor = color.New(color.Faint).SprintfFunc()
	r.hintColor = color.New(color.FgGreen).SprintfFunc()
	return r
}

// SetColor forces color on or off, overriding terminal detection.
// Useful for tests and for piping REPL output to a file.
func (r *Reporter) SetColor(enabled bool) {
	color.NoColor = !enabled
}

// Format renders err as a multi-line diagnostic. Lex and parse
// errors, which carry a byte offset, get a location line, a source
// excerpt and a caret; compile errors carry no offset and get their
// message plus, for some kinds, a help line; others (cancellation,
// I/O) get a plain one-line message. The returned string always ends
// in a single newline.
func (r *Reporter) Format(err error) string {
	if err == nil {
		return ""
	}
	switch e := err.(type) {
	case *lex.Error:
		return r.formatAt(e.Pos, e.Message, hintFor(nil))
	case *parse.Error:
		return r.formatAt(e.Pos, e.Message, hintFor(nil))
	case *compile.Error:
		return r.formatAt(-1, e.Error(), hintFor(e))
	case evalctx.ErrCancelled:
		return fmt.Sprintf("%s %s\n", r.errorColor("error:"), "evaluation cancelled")
	default:
		return fmt.Sprintf("%s %s\n", r.errorColor("error:"), err.Error())
	}
}

// hintFor returns a short one-line remediation hint for the compile
// errors where one obviously applies, and "" otherwise.
func hintFor(e *compile.Error) string {
	if e == nil {
		return ""
	}
	switch e.Kind {
	case compile.ConstantNotFound, compile.FunctionNotFound:
		return "check for a typo, or define it before this line"
	case compile.DuplicateDeclaration:
		return "each name may be assigned at most once per input"
	case compile.WrongNArgs:
		return fmt.Sprintf("%s takes exactly %d argument(s)", e.Name, e.Want)
	default:
		return ""
	}
}

// formatAt renders a located error: a header line, a `-->` location
// line (when pos is non-negative and resolvable), the offending
// source line with a caret underneath, and an optional help line.
func (r *Reporter) formatAt(pos lex.Pos, message, hint string) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s\n", r.errorColor("error:"), message))

	line, col, text, ok := r.locate(pos)
	if ok {
		b.WriteString(fmt.Sprintf("  %s %s:%d:%d\n", r.dimColor("-->"), r.filename, line, col))
		b.WriteString(fmt.Sprintf("   %s\n", r.dimColor("|")))
		b.WriteString(fmt.Sprintf("%3d%s %s\n", line, r.dimColor(" |"), text))
		b.WriteString(fmt.Sprintf("   %s %s%s\n", r.dimColor("|"), strings.Repeat(" ", col-1), r.errorColor("^")))
	}
	if hint != "" {
		b.WriteString(fmt.Sprintf("   %s %s\n", r.hintColor("help:"), hint))
	}
	return b.String()
}

// locate converts a byte offset into a 1-based line, 1-based column,
// and the text of that source line. ok is false when pos is negative
// or past the end of the source (compile errors carry no position:
// compile.Error has no offset field, so Format passes -1 for them).
func (r *Reporter) locate(pos lex.Pos) (line, col int, text string, ok bool) {
	if pos < 0 {
		return 0, 0, "", false
	}
	offset := int(pos)
	running := 0
	for i, l := range r.lines {
		// +1 accounts for the newline the split removed.
		if offset <= running+len(l) {
			return i + 1, offset - running + 1, l, true
		}
		running += len(l) + 1
	}
	return 0, 0, "", false
}

// Fprint writes Format(err) to w (typically os.Stderr).
func Fprint(w io.Writer, r *Reporter, err error) {
	fmt.Fprint(w, r.Format(err))
}

// RenderValue renders a result value the way f prescribes. Undefined
// values always print their human-readable reason, regardless of f:
// there is no fractional, mixed or scientific rendering of "zero
// divided by zero".
func RenderValue(v rational.Value, f config.Format) string {
	if v.IsUndefined() {
		return v.Kind().String()
	}
	switch f {
	case config.Fraction:
		return renderFraction(v.Rat())
	case config.Mixed:
		return renderMixed(v.Rat())
	default:
		return renderScientific(v.Rat())
	}
}

// renderFraction prints p/q, or bare p when the value is an integer.
func renderFraction(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	return r.RatString()
}

// renderMixed prints an integer part plus a fractional remainder
// ("trunc+frac" or "trunc-|frac|"), or a bare integer when exact.
func renderMixed(r *big.Rat) string {
	if r.IsInt() {
		return r.Num().String()
	}
	whole := new(big.Int).Quo(r.Num(), r.Denom())
	remNum := new(big.Int).Rem(r.Num(), r.Denom())
	remNum.Abs(remNum)
	frac := new(big.Rat).SetFrac(remNum, r.Denom())
	if whole.Sign() == 0 && r.Sign() < 0 {
		return fmt.Sprintf("-%s", frac.RatString())
	}
	if r.Sign() < 0 {
		return fmt.Sprintf("%s-%s", whole.String(), frac.RatString())
	}
	return fmt.Sprintf("%s+%s", whole.String(), frac.RatString())
}

// renderScientific converts r to a 128-bit binary float (exact for
// values such as integers that fit, rounded otherwise, e.g. 1/3) and
// prints the shortest decimal that round-trips that float, in plain notation for exponents in a normal reading range and in
// exponential notation outside it, the way the original's ToSci
// rendering collapses trailing zeros instead of padding every value
// out to a fixed number of mantissa digits (so the integer 2 prints
// as "2", not "2.000000000000e+00").
func renderScientific(r *big.Rat) string {
	f := new(big.Float).SetPrec(128).SetRat(r)
	return f.Text('g', -1)
}

package calerrors

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// severityColor picks the fatih/color styling for a Diagnostic's severity,
// the same library the rest of the CLI uses for terminal output.
func severityColor(s Severity) *color.Color {
	switch s {
	case Warning:
		return color.New(color.FgYellow, color.Bold)
	case Info:
		return color.New(color.FgCyan, color.Bold)
	default:
		return color.New(color.FgRed, color.Bold)
	}
}

// FormatForTerminal renders a single Diagnostic as colorized, multi-line
// terminal output: a severity-colored header, the file:line:column
// location, and (when present) a source-context snippet with a caret
// underline beneath the offending span.
func (d Diagnostic) FormatForTerminal(noColor bool) string {
	var b strings.Builder

	sev := severityColor(d.Severity)
	loc := color.New(color.FgCyan)
	lineNo := color.New(color.FgBlue)
	caret := color.New(color.FgRed, color.Bold)
	if noColor {
		sev.DisableColor()
		loc.DisableColor()
		lineNo.DisableColor()
		caret.DisableColor()
	}

	sev.Fprintf(&b, "%s", strings.ToUpper(d.Severity.String()[:1])+d.Severity.String()[1:])
	fmt.Fprintf(&b, ": %s\n", d.Message)
	loc.Fprintf(&b, "  --> ")
	fmt.Fprintf(&b, "%s:%d:%d\n", d.Location.File, d.Location.Line, d.Location.Column)

	if d.Context != nil {
		writeContext(&b, *d.Context, lineNo, caret)
	}
	return b.String()
}

func writeContext(b *strings.Builder, ctx SourceContext, lineNo, caret *color.Color) {
	for i, line := range ctx.Lines {
		lineNo.Fprintf(b, "  %4d | ", i+1)
		fmt.Fprintln(b, line)
		if i == ctx.Highlight.LineIndex {
			fmt.Fprint(b, "       | ")
			width := ctx.Highlight.End - ctx.Highlight.Start
			if width < 1 {
				width = 1
			}
			caret.Fprintf(b, "%s%s\n", strings.Repeat(" ", ctx.Highlight.Start), strings.Repeat("^", width))
		}
	}
}

// WriteAll renders every diagnostic in order, followed by a one-line
// summary, to w.
func WriteAll(w io.Writer, diags []Diagnostic, noColor bool) {
	for _, d := range diags {
		fmt.Fprintln(w, d.FormatForTerminal(noColor))
	}
	s := Summarize(diags)
	bold := color.New(color.Bold)
	if noColor {
		bold.DisableColor()
	}
	bold.Fprintf(w, "%d error(s), %d warning(s)\n", s.ErrorCount, s.WarningCount)
}

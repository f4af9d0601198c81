package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/calfront/calfront/calerrors"
)

// WriteDiagnostics renders a Diagnostic list through calerrors' own
// terminal formatter, then a colorized one-line summary.
func WriteDiagnostics(w io.Writer, diags []calerrors.Diagnostic, noColor bool) {
	for _, d := range diags {
		fmt.Fprintln(w, d.FormatForTerminal(noColor))
	}

	summary := calerrors.Summarize(diags)
	green := color.New(color.FgGreen, color.Bold)
	red := color.New(color.FgRed, color.Bold)
	if noColor {
		green.DisableColor()
		red.DisableColor()
	}
	if summary.ErrorCount == 0 {
		green.Fprintf(w, "OK: %d warning(s)\n", summary.WarningCount)
		return
	}
	red.Fprintf(w, "FAILED: %d error(s), %d warning(s)\n", summary.ErrorCount, summary.WarningCount)
}

// WriteValidationResult renders a calvalidate.Result in the same style.
func WriteValidationResult(w io.Writer, valid bool, errs, warnings []string, noColor bool) {
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	green := color.New(color.FgGreen, color.Bold)
	if noColor {
		red.DisableColor()
		yellow.DisableColor()
		green.DisableColor()
	}
	for _, e := range errs {
		red.Fprintf(w, "error: %s\n", e)
	}
	for _, wmsg := range warnings {
		yellow.Fprintf(w, "warning: %s\n", wmsg)
	}
	if valid {
		green.Fprintln(w, "OK: position validator found no integrity errors")
	} else {
		red.Fprintln(w, "FAILED: position validator found integrity errors")
	}
}

// Package calerrors renders host-facing diagnostics (severity levels,
// source-context snippets, terminal and JSON formatting) from calfront's
// core diagnostic shape: the lexer and parser never build a
// calerrors.Diagnostic themselves (they speak the library-level
// ast.Diagnostic / lexer.Token types from §6 so the core stays free of CLI
// concerns) — calerrors.FromAST is the seam a host (the CLI, eventually an
// LSP) uses to enrich those into something worth printing.
package calerrors

import (
	"fmt"

	"github.com/calfront/calfront/ast"
)

// Severity mirrors ast.Severity but gives the host layer room to add an
// Info level without touching the core package, separating this
// presentation-layer notion of severity from the parser's own.
type Severity int

const (
	Info Severity = iota
	Warning
	Error
)

func (s Severity) String() string {
	switch s {
	case Info:
		return "info"
	case Warning:
		return "warning"
	default:
		return "error"
	}
}

func fromASTSeverity(s ast.Severity) Severity {
	if s == ast.SeverityWarning {
		return Warning
	}
	return Error
}

// SourceLocation is a file-qualified position.
type SourceLocation struct {
	File   string `json:"file"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
	Length int    `json:"length"`
}

// SourceContext carries a few lines of surrounding source plus which span
// to highlight, for terminal rendering.
type SourceContext struct {
	Lines     []string
	Highlight Highlight
}

type Highlight struct {
	LineIndex int // index into Lines
	Start     int // column start, 0-based
	End       int // column end, exclusive
}

// Diagnostic is calfront's host-facing, file-qualified diagnostic: a
// lexical or syntax Diagnostic from the core, dressed with a location and
// optional source context for display.
type Diagnostic struct {
	Message  string
	Severity Severity
	Location SourceLocation
	Context  *SourceContext
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s: %s", d.Location.File, d.Location.Line, d.Location.Column, d.Severity, d.Message)
}

func (d Diagnostic) IsError() bool   { return d.Severity == Error }
func (d Diagnostic) IsWarning() bool { return d.Severity == Warning }

// FromAST converts the core's raw ast.Diagnostic list into host-facing
// Diagnostics qualified with file and source context. source is the text
// that produced the tokens the diagnostics point at; contextLines is how
// many lines of surrounding source to capture on each side (0 disables
// context capture entirely).
func FromAST(diags []ast.Diagnostic, file, source string, contextLines int) []Diagnostic {
	lines := splitLines(source)
	out := make([]Diagnostic, 0, len(diags))
	for _, d := range diags {
		loc := SourceLocation{
			File:   file,
			Line:   d.Token.Line,
			Column: d.Token.Column,
			Length: runeLen(d.Token.Value),
		}
		if loc.Length == 0 {
			loc.Length = 1
		}
		var ctx *SourceContext
		if contextLines > 0 {
			ctx = buildContext(lines, d.Token.Line, d.Token.Column, loc.Length, contextLines)
		}
		out = append(out, Diagnostic{
			Message:  d.Message,
			Severity: fromASTSeverity(d.Severity),
			Location: loc,
			Context:  ctx,
		})
	}
	return out
}

func runeLen(s string) int { return len([]rune(s)) }

func splitLines(source string) []string {
	var lines []string
	start := 0
	for i, r := range source {
		if r == '\n' {
			line := source[start:i]
			line = trimCR(line)
			lines = append(lines, line)
			start = i + 1
		}
	}
	lines = append(lines, trimCR(source[start:]))
	return lines
}

func trimCR(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\r' {
		return s[:len(s)-1]
	}
	return s
}

func buildContext(lines []string, line, col, length, window int) *SourceContext {
	if line < 1 || line > len(lines) {
		return nil
	}
	startLine := line - window
	if startLine < 1 {
		startLine = 1
	}
	endLine := line + window
	if endLine > len(lines) {
		endLine = len(lines)
	}

	var out []string
	highlightIdx := 0
	for l := startLine; l <= endLine; l++ {
		out = append(out, lines[l-1])
		if l == line {
			highlightIdx = len(out) - 1
		}
	}

	start := col - 1
	if start < 0 {
		start = 0
	}
	return &SourceContext{
		Lines: out,
		Highlight: Highlight{
			LineIndex: highlightIdx,
			Start:     start,
			End:       start + length,
		},
	}
}

// Summarize counts errors and warnings in a Diagnostic list.
type Summary struct {
	ErrorCount   int `json:"error_count"`
	WarningCount int `json:"warning_count"`
	TotalCount   int `json:"total_count"`
}

func Summarize(diags []Diagnostic) Summary {
	s := Summary{TotalCount: len(diags)}
	for _, d := range diags {
		if d.IsError() {
			s.ErrorCount++
		} else if d.IsWarning() {
			s.WarningCount++
		}
	}
	return s
}

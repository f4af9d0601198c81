// Package calvalidate implements the position validator from §4.5: a
// cheap integrity check of a token stream against the source it was scanned
// from. It encodes the scanner's bit-exact contract (Token.Value ==
// source[Start:End] for every kind except String/QuotedIdentifier, which
// strip quotes) and so is kept independent of the Scanner itself — it
// consumes (source, tokens) only, never a live lexer.Scanner.
//
// Every message this package produces is sanitized: no substring of the
// source or of a token's Value is ever embedded verbatim, only lengths and
// fixed descriptors (§4.5, §8 scenario 10).
package calvalidate

import (
	"fmt"
	"strings"

	"github.com/calfront/calfront/lexer"
)

// Result is the validator's output shape from §4.5.
type Result struct {
	Valid    bool
	Errors   []string
	Warnings []string
}

// Validate cross-checks tokens against source and returns a sanitized
// report. It never panics and never inspects tokens beyond what the
// lexer.Token shape exposes.
func Validate(source string, tokens []lexer.Token) Result {
	v := &validator{source: []rune(source), tokens: tokens}
	v.checkSpans()
	v.checkValues()
	v.checkTrivia()
	v.checkEOF()
	return Result{
		Valid:    len(v.errors) == 0,
		Errors:   v.errors,
		Warnings: v.warnings,
	}
}

type validator struct {
	source   []rune
	tokens   []lexer.Token
	errors   []string
	warnings []string
}

func (v *validator) errf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) warnf(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

// checkSpans enforces the monotonic, non-overlapping invariant from §8:
// tokens[i].End <= tokens[i+1].Start, and every offset stays within bounds.
func (v *validator) checkSpans() {
	prevEnd := 0
	for i, tok := range v.tokens {
		if tok.Start < 0 || tok.End < tok.Start || tok.End > len(v.source) {
			v.errf("token %d: span out of bounds [%d:%d] for source length %d", i, tok.Start, tok.End, len(v.source))
			continue
		}
		if tok.Start < prevEnd {
			v.errf("token %d: start offset %d precedes previous token's end offset %d", i, tok.Start, prevEnd)
		}
		prevEnd = tok.End
	}
}

// checkValues enforces the per-kind Value contract from §3/§4.1.
func (v *validator) checkValues() {
	for i, tok := range v.tokens {
		if tok.Start < 0 || tok.End > len(v.source) || tok.End < tok.Start {
			continue // already reported by checkSpans
		}
		raw := string(v.source[tok.Start:tok.End])

		switch tok.Kind {
		case lexer.String:
			v.checkQuotedValue(i, tok, raw, '\'', true)
		case lexer.QuotedIdentifier:
			v.checkQuotedValue(i, tok, raw, '"', false)
		default:
			if raw != tok.Value {
				v.errf("token %d (%s): token value mismatch: expected %d chars, got %d chars", i, tok.Kind, len(raw), len(tok.Value))
			}
		}
	}
}

// checkQuotedValue validates a String or QuotedIdentifier token: raw must
// start and end with quote, and — for strings only — every interior doubled
// quote must collapse to exactly one quote in Value. No other
// transformation is permitted.
func (v *validator) checkQuotedValue(i int, tok lexer.Token, raw string, quote rune, collapseDouble bool) {
	runes := []rune(raw)
	if len(runes) < 2 || runes[0] != quote || runes[len(runes)-1] != quote {
		v.errf("token %d (%s): [content sanitized: %d chars] does not start and end with the expected quote", i, tok.Kind, len(runes))
		return
	}
	interior := runes[1 : len(runes)-1]

	var reconstructed strings.Builder
	if collapseDouble {
		for j := 0; j < len(interior); j++ {
			if interior[j] == quote && j+1 < len(interior) && interior[j+1] == quote {
				reconstructed.WriteRune(quote)
				j++
				continue
			}
			reconstructed.WriteRune(interior[j])
		}
	} else {
		reconstructed.WriteString(string(interior))
	}

	want := reconstructed.String()
	if want != tok.Value {
		v.errf("token %d (%s): [token value mismatch: expected %d chars, got %d chars]", i, tok.Kind, len(want), len(tok.Value))
	}
}

// checkTrivia enforces that every inter-token gap is either whitespace or a
// complete, recognizable comment form (line, block, or brace), per §4.1's
// trivia contract. It never reproduces gap content in a message.
func (v *validator) checkTrivia() {
	prevEnd := 0
	for i, tok := range v.tokens {
		if tok.Start < prevEnd || tok.Start > len(v.source) {
			prevEnd = tok.End
			continue // already reported
		}
		gap := v.source[prevEnd:tok.Start]
		v.checkGap(i, gap)
		prevEnd = tok.End
	}
}

// checkGap walks a trivia gap and confirms it decomposes entirely into
// whitespace runs and complete comment forms. Any leftover non-whitespace
// byte is an error. It also raises a sanitized warning when a brace comment
// looks like it contains code rather than prose.
func (v *validator) checkGap(beforeTokenIdx int, gap []rune) {
	i := 0
	for i < len(gap) {
		r := gap[i]
		switch {
		case r == ' ' || r == '\t' || r == '\r' || r == '\n':
			i++

		case r == '/' && i+1 < len(gap) && gap[i+1] == '/':
			j := i + 2
			for j < len(gap) && gap[j] != '\n' {
				j++
			}
			i = j

		case r == '/' && i+1 < len(gap) && gap[i+1] == '*':
			j := i + 2
			closed := false
			for j+1 < len(gap) {
				if gap[j] == '*' && gap[j+1] == '/' {
					j += 2
					closed = true
					break
				}
				j++
			}
			if !closed {
				v.errf("gap before token %d: unterminated block comment in trivia: [content sanitized: %d chars]", beforeTokenIdx, len(gap)-i)
				return
			}
			i = j

		case r == '{':
			j := i + 1
			for j < len(gap) && gap[j] != '}' {
				j++
			}
			if j >= len(gap) {
				v.errf("gap before token %d: unterminated brace comment in trivia: [content sanitized: %d chars]", beforeTokenIdx, len(gap)-i)
				return
			}
			interior := gap[i+1 : j]
			if looksLikeCode(interior) {
				v.warnf("gap before token %d: possible code inside brace comment: [content sanitized: %d chars]", beforeTokenIdx, len(interior))
			}
			i = j + 1

		default:
			v.errf("gap before token %d: unexpected non-trivia content: [content sanitized: %d chars]", beforeTokenIdx, len(gap)-i)
			return
		}
	}
}

// codeLikeWords are statement/section keywords whose presence inside a
// brace comment's interior is suspicious enough to warn on (§4.5).
var codeLikeWords = []string{
	"BEGIN", "END", "IF", "THEN", "ELSE", "WHILE", "REPEAT", "UNTIL",
	"PROCEDURE", "VAR", "CASE", "EXIT",
}

func looksLikeCode(interior []rune) bool {
	text := strings.ToUpper(string(interior))
	for _, w := range codeLikeWords {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// checkEOF enforces that the final token is EOF sitting exactly at the end
// of source (§8).
func (v *validator) checkEOF() {
	if len(v.tokens) == 0 {
		v.errf("token stream is empty: missing terminal EOF token")
		return
	}
	last := v.tokens[len(v.tokens)-1]
	if last.Kind != lexer.EOF {
		v.errf("final token is %s, not EOF", last.Kind)
		return
	}
	if last.Start != len(v.source) || last.End != len(v.source) {
		v.errf("EOF token offsets [%d:%d] do not equal source length %d", last.Start, last.End, len(v.source))
	}
}

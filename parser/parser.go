// Package parser implements the error-recovering recursive-descent parser
// that turns a lexer.Token stream into an ast.CALDocument plus a diagnostic
// list. Parse never panics and always returns a (possibly partial) document.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calfront/calfront/ast"
	"github.com/calfront/calfront/lexer"
)

// maxExpressionDepth bounds recursive-descent expression parsing so a
// pathological input can't overflow the host stack (Design Notes, §4.6).
const maxExpressionDepth = 512

// Parser consumes a fixed token vector produced by lexer.Scanner.Tokenize.
// It is not safe for concurrent use and, like the scanner, is synchronous
// end to end (§5).
type Parser struct {
	tokens []lexer.Token
	pos    int

	diagnostics []ast.Diagnostic
	exprDepth   int
}

// New constructs a Parser over tokens. tokens must be non-empty and end in
// an EOF token, as produced by lexer.Scanner.Tokenize.
func New(tokens []lexer.Token) *Parser {
	return &Parser{tokens: tokens}
}

// Parse runs the parser to completion and returns the resulting document
// together with every diagnostic collected along the way.
func Parse(tokens []lexer.Token) (*ast.CALDocument, []ast.Diagnostic) {
	p := New(tokens)
	return p.parseDocument(), p.diagnostics
}

func (p *Parser) parseDocument() *ast.CALDocument {
	doc := &ast.CALDocument{}

	for !p.isAtEnd() {
		if p.checkValue("OBJECT") {
			obj := p.parseObject()
			doc.Object = obj
			doc.Span = obj.Span
			return doc
		}
		// Garbage before the first OBJECT header: skip with a diagnostic and
		// search for OBJECT or EOF.
		tok := p.advance()
		p.errorAt(tok, fmt.Sprintf("Unexpected %s; expected OBJECT", tok.Kind))
	}

	return doc
}

// --- token stream primitives -------------------------------------------------

func (p *Parser) isAtEnd() bool { return p.peek().Kind == lexer.EOF }

func (p *Parser) peek() lexer.Token { return p.tokens[p.pos] }

func (p *Parser) peekAt(offset int) lexer.Token {
	i := p.pos + offset
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *Parser) previous() lexer.Token {
	if p.pos == 0 {
		return p.tokens[0]
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) advance() lexer.Token {
	tok := p.peek()
	if !p.isAtEnd() {
		p.pos++
	}
	return tok
}

func (p *Parser) check(kind lexer.Kind) bool {
	return p.peek().Kind == kind
}

// checkValue reports whether the current token's text equals want,
// case-insensitively, regardless of the Kind the lexer assigned it. Section
// and statement synchronization both key off raw text rather than Kind so
// recovery still works when a missing brace has left the lexer in the wrong
// context (e.g. a CODE section that never closed).
func (p *Parser) checkValue(want string) bool {
	return strings.EqualFold(p.peek().Value, want)
}

func (p *Parser) match(kind lexer.Kind) bool {
	if p.check(kind) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) matchValue(want string) bool {
	if p.checkValue(want) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) consume(kind lexer.Kind, message string) (lexer.Token, bool) {
	if p.check(kind) {
		return p.advance(), true
	}
	p.errorAt(p.peek(), message)
	return p.peek(), false
}

func (p *Parser) errorAt(tok lexer.Token, message string) {
	p.diagnostics = append(p.diagnostics, ast.Diagnostic{Message: message, Token: tok, Severity: ast.SeverityError})
}

func (p *Parser) warnAt(tok lexer.Token, message string) {
	p.diagnostics = append(p.diagnostics, ast.Diagnostic{Message: message, Token: tok, Severity: ast.SeverityWarning})
}

// sectionNames is the canonical spelling set used for text-based
// resynchronization, independent of lexer.Kind (§4.6).
var sectionNames = []string{
	"PROPERTIES", "FIELDS", "KEYS", "FIELDGROUPS", "CONTROLS",
	"ACTIONS", "ELEMENTS", "DATASET", "REQUESTPAGE", "LABELS", "CODE",
}

func (p *Parser) atSectionKeyword() bool {
	for _, name := range sectionNames {
		if p.checkValue(name) {
			return true
		}
	}
	return false
}

// synchronizeStatement advances past tokens until a plausible resumption
// point for statement-level recovery: ';', a matching END, or a section
// keyword. It always consumes at least one token to guarantee forward
// progress.
func (p *Parser) synchronizeStatement() {
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == lexer.Semicolon {
			return
		}
		if p.checkValue("END") || p.atSectionKeyword() {
			return
		}
		p.advance()
	}
}

func parseIntLiteral(raw string) int {
	n, _ := strconv.Atoi(strings.TrimSpace(raw))
	return n
}

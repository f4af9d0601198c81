package parser

import (
	"fmt"
	"strings"

	"github.com/calfront/calfront/ast"
	"github.com/calfront/calfront/lexer"
)

// parseCodeSection implements the CODE section body and its critical
// missing-'}' recovery: if a known section keyword or EOF is reached before
// the closing brace, a diagnostic is reported and the terminator is left
// unconsumed so the enclosing object-body loop can dispatch it (§4.6,
// scenario 6).
func (p *Parser) parseCodeSection() *ast.CodeSection {
	start := p.peek()
	p.advance() // CODE
	sec := &ast.CodeSection{}
	if _, ok := p.consume(lexer.LeftBrace, "Expected '{' after CODE"); !ok {
		sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
		return sec
	}

	for {
		if p.match(lexer.RightBrace) {
			break
		}
		if p.isAtEnd() || p.atSectionKeyword() {
			p.errorAt(p.peek(), "Expected } to close CODE section")
			break
		}

		switch {
		case p.matchValue("VAR"):
			sec.Variables = append(sec.Variables, p.parseVariableDeclarations()...)
		case p.checkValue("PROCEDURE"), p.checkValue("LOCAL"):
			sec.Procedures = append(sec.Procedures, p.parseProcedure())
		case p.check(lexer.LeftBrace):
			// A bare brace comment or stray field-style row at CODE scope;
			// the lexer already consumed true comments as trivia, so this is
			// unexpected input. Skip it without losing forward progress.
			p.skipBalancedBraces()
		default:
			tok := p.advance()
			p.errorAt(tok, fmt.Sprintf("Unexpected %s; expected VAR, PROCEDURE, or '}'", tok.Kind))
		}
	}

	sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return sec
}

func (p *Parser) skipBalancedBraces() {
	depth := 0
	for !p.isAtEnd() {
		if p.check(lexer.LeftBrace) {
			depth++
		} else if p.check(lexer.RightBrace) {
			depth--
			if depth <= 0 {
				p.advance()
				return
			}
		}
		p.advance()
	}
}

// parseVariableDeclarations parses a run of `name[, name] : type [@ n];`
// declarations until a keyword that can't start one is seen (BEGIN,
// PROCEDURE, LOCAL, or a section keyword).
func (p *Parser) parseVariableDeclarations() []ast.Variable {
	var vars []ast.Variable
	for {
		if p.isAtEnd() || p.checkValue("BEGIN") || p.checkValue("PROCEDURE") ||
			p.checkValue("LOCAL") || p.atSectionKeyword() || p.check(lexer.RightBrace) {
			return vars
		}
		if !p.check(lexer.Identifier) && !p.check(lexer.QuotedIdentifier) {
			p.advance()
			continue
		}
		vars = append(vars, p.parseVariableDeclLine()...)
	}
}

// parseVariableDeclLine parses one semicolon-terminated declaration line,
// which may declare several comma-separated names sharing a type.
func (p *Parser) parseVariableDeclLine() []ast.Variable {
	start := p.peek()
	temp := false
	if p.checkValue("TEMPORARY") {
		temp = true
		p.advance()
	}

	var names []string
	for {
		if p.check(lexer.QuotedIdentifier) {
			names = append(names, p.advance().Value)
		} else if p.check(lexer.Identifier) {
			names = append(names, p.advance().Value)
		} else {
			break
		}
		if !p.match(lexer.Comma) {
			break
		}
	}

	var dataType string
	if p.match(lexer.Colon) {
		dataType = p.parseTypeSpec()
	}

	atNumber, hasAt := 0, false
	if p.check(lexer.Unknown) && p.peek().Value == "@" {
		p.advance()
		if p.check(lexer.Integer) {
			atNumber = parseIntLiteral(p.advance().Value)
			hasAt = true
		}
	}

	p.match(lexer.Semicolon)

	end := p.previous().End
	vars := make([]ast.Variable, 0, len(names))
	for _, n := range names {
		vars = append(vars, ast.Variable{
			Name: n, DataType: dataType, Temporary: temp,
			AtNumber: atNumber, HasAt: hasAt,
			Span: ast.Span{Start: start.Start, End: end},
		})
	}
	return vars
}

// parseTypeSpec parses a data type token, optionally followed by
// `[dim]`, `OF <type>`, or a parenthesized option-list / length spec; it
// returns the source text spanned rather than a structured shape since no
// module needs more than display/extraction-hook identity for a type name.
func (p *Parser) parseTypeSpec() string {
	var b strings.Builder
	if p.isAtEnd() {
		return ""
	}
	tok := p.advance()
	b.WriteString(tok.Value)

	if p.matchValue("OF") {
		b.WriteString(" OF ")
		if !p.isAtEnd() {
			b.WriteString(p.advance().Value)
		}
	}
	if p.match(lexer.LeftBracket) {
		b.WriteByte('[')
		for !p.isAtEnd() && !p.check(lexer.RightBracket) {
			b.WriteString(p.advance().Value)
		}
		p.match(lexer.RightBracket)
		b.WriteByte(']')
	}
	if p.match(lexer.LeftParen) {
		b.WriteByte('(')
		depth := 1
		for !p.isAtEnd() && depth > 0 {
			if p.check(lexer.LeftParen) {
				depth++
			} else if p.check(lexer.RightParen) {
				depth--
				if depth == 0 {
					p.advance()
					break
				}
			}
			b.WriteString(p.advance().Value)
		}
		b.WriteByte(')')
	}
	return b.String()
}

// parseProcedure parses `[LOCAL] PROCEDURE name(params)[: type]
// [VAR decls] BEGIN ... END;`.
func (p *Parser) parseProcedure() *ast.Procedure {
	start := p.peek()
	proc := &ast.Procedure{}
	if p.matchValue("LOCAL") {
		proc.IsLocal = true
	}
	if !p.matchValue("PROCEDURE") && !p.matchValue("FUNCTION") {
		p.errorAt(p.peek(), "Expected PROCEDURE")
	}
	proc.Name = p.parseNameToken()

	if _, ok := p.consume(lexer.LeftParen, "Expected '(' after procedure name"); ok {
		proc.Parameters = p.parseParameterList()
	}

	if p.match(lexer.Colon) {
		p.parseTypeSpec() // return type; not modeled beyond consuming it
	}

	if p.matchValue("VAR") {
		proc.Variables = p.parseVariableDeclarations()
	}

	if _, ok := p.consume(lexer.Begin, "Expected BEGIN in procedure body"); ok {
		proc.Body = p.parseStatementsUntilEnd()
	}
	p.match(lexer.Semicolon)

	proc.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return proc
}

func (p *Parser) parseParameterList() []ast.Parameter {
	var params []ast.Parameter
	if p.match(lexer.RightParen) {
		return params
	}
	for {
		var param ast.Parameter
		start := p.peek()
		if p.matchValue("VAR") {
			param.ByVar = true
		}
		param.Name = p.parseNameToken()
		if p.match(lexer.Colon) {
			param.DataType = p.parseTypeSpec()
		}
		param.Span = ast.Span{Start: start.Start, End: p.previous().End}
		params = append(params, param)
		if !p.match(lexer.Comma) {
			break
		}
	}
	p.consume(lexer.RightParen, "Expected ')' after parameter list")
	return params
}

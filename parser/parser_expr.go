package parser

import (
	"fmt"

	"github.com/calfront/calfront/ast"
	"github.com/calfront/calfront/lexer"
)

// parseExpression is the entry point into the precedence-climbing
// expression grammar of §4.6: OR/XOR, AND, NOT (unary), comparison, additive,
// multiplicative, unary, primary. OR binds only at the outermost level in
// this implementation, resolving an ambiguity in the grammar by treating
// every OR uniformly (recorded in the design ledger).
func (p *Parser) parseExpression() ast.Expr {
	p.exprDepth++
	defer func() { p.exprDepth-- }()
	if p.exprDepth > maxExpressionDepth {
		tok := p.peek()
		p.errorAt(tok, "Expression nested too deeply")
		return &ast.LiteralExpr{Kind: ast.LiteralInteger, Value: "0", Span: ast.SpanOf(tok)}
	}
	return p.parseOrXor()
}

func (p *Parser) parseOrXor() ast.Expr {
	left := p.parseAnd()
	for {
		var op ast.BinaryOp
		switch {
		case p.check(lexer.Or):
			op = ast.OpOr
		case p.check(lexer.Xor):
			op = ast.OpXor
		default:
			return left
		}
		p.advance()
		right := p.parseAnd()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: ast.JoinSpan(left.NodeSpan(), right.NodeSpan())}
	}
}

func (p *Parser) parseAnd() ast.Expr {
	left := p.parseNot()
	for p.check(lexer.And) {
		p.advance()
		right := p.parseNot()
		left = &ast.BinaryExpr{Op: ast.OpAnd, Left: left, Right: right, Span: ast.JoinSpan(left.NodeSpan(), right.NodeSpan())}
	}
	return left
}

func (p *Parser) parseNot() ast.Expr {
	if p.check(lexer.Not) {
		start := p.advance()
		operand := p.parseNot()
		return &ast.UnaryExpr{Op: ast.OpNot, Operand: operand, Span: ast.JoinSpan(ast.SpanOf(start), operand.NodeSpan())}
	}
	return p.parseComparison()
}

func (p *Parser) parseComparison() ast.Expr {
	left := p.parseAdditive()
	for {
		var op ast.BinaryOp
		switch {
		case p.check(lexer.Equal):
			op = ast.OpEqual
		case p.check(lexer.NotEqual):
			op = ast.OpNotEqual
		case p.check(lexer.Less):
			op = ast.OpLess
		case p.check(lexer.LessEqual):
			op = ast.OpLessEqual
		case p.check(lexer.Greater):
			op = ast.OpGreater
		case p.check(lexer.GreaterEqual):
			op = ast.OpGreaterEqual
		case p.check(lexer.In):
			op = ast.OpIn
		default:
			return left
		}
		p.advance()
		right := p.parseAdditive()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: ast.JoinSpan(left.NodeSpan(), right.NodeSpan())}
	}
}

func (p *Parser) parseAdditive() ast.Expr {
	left := p.parseMultiplicative()
	for {
		var op ast.BinaryOp
		switch {
		case p.check(lexer.Plus):
			op = ast.OpAdd
		case p.check(lexer.Minus):
			op = ast.OpSub
		default:
			return left
		}
		p.advance()
		right := p.parseMultiplicative()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: ast.JoinSpan(left.NodeSpan(), right.NodeSpan())}
	}
}

func (p *Parser) parseMultiplicative() ast.Expr {
	left := p.parseUnary()
	for {
		var op ast.BinaryOp
		switch {
		case p.check(lexer.Multiply):
			op = ast.OpMul
		case p.check(lexer.Divide):
			op = ast.OpDiv
		case p.check(lexer.Div):
			op = ast.OpDivInt
		case p.check(lexer.Mod):
			op = ast.OpMod
		default:
			return left
		}
		p.advance()
		right := p.parseUnary()
		left = &ast.BinaryExpr{Op: op, Left: left, Right: right, Span: ast.JoinSpan(left.NodeSpan(), right.NodeSpan())}
	}
}

func (p *Parser) parseUnary() ast.Expr {
	if p.check(lexer.Minus) {
		start := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: ast.OpNeg, Operand: operand, Span: ast.JoinSpan(ast.SpanOf(start), operand.NodeSpan())}
	}
	if p.check(lexer.Plus) {
		start := p.advance()
		operand := p.parseUnary()
		return &ast.UnaryExpr{Op: ast.OpPos, Operand: operand, Span: ast.JoinSpan(ast.SpanOf(start), operand.NodeSpan())}
	}
	return p.parsePostfix()
}

// parsePostfix parses a primary expression followed by any chain of member
// accesses and call argument lists.
func (p *Parser) parsePostfix() ast.Expr {
	expr := p.parsePrimary()
	for {
		switch {
		case p.match(lexer.Dot):
			member := p.parseNameToken()
			expr = &ast.MemberAccessExpr{Target: expr, Member: member, Span: ast.Span{Start: expr.NodeSpan().Start, End: p.previous().End}}
		case p.check(lexer.LeftParen):
			expr = p.parseCallArgs(expr)
		default:
			return expr
		}
	}
}

func (p *Parser) parseCallArgs(callee ast.Expr) ast.Expr {
	p.advance() // '('
	var args []ast.Expr
	if !p.check(lexer.RightParen) {
		for {
			args = append(args, p.parseExpression())
			if !p.match(lexer.Comma) {
				break
			}
		}
	}
	p.consume(lexer.RightParen, "Expected ')' after call arguments")
	return &ast.CallExpr{Callee: callee, Args: args, Span: ast.Span{Start: callee.NodeSpan().Start, End: p.previous().End}}
}

// parsePrimary implements the base case of the expression grammar,
// including the parsePrimary fallback diagnostic ("Unexpected <kind>;
// expected expression") for tokens that cannot start an expression —
// structural delimiters, statement keywords, binary operators, and EOF.
// Type-spelling words (Code, Date, Time, BigText, BLOB, GUID, TextConst,
// object-kind names) are accepted as plain identifiers here.
func (p *Parser) parsePrimary() ast.Expr {
	tok := p.peek()

	switch tok.Kind {
	case lexer.Integer:
		p.advance()
		return &ast.LiteralExpr{Kind: ast.LiteralInteger, Value: tok.Value, Span: ast.SpanOf(tok)}
	case lexer.Decimal:
		p.advance()
		return &ast.LiteralExpr{Kind: ast.LiteralDecimal, Value: tok.Value, Span: ast.SpanOf(tok)}
	case lexer.String:
		p.advance()
		return &ast.LiteralExpr{Kind: ast.LiteralString, Value: tok.Value, Span: ast.SpanOf(tok)}
	case lexer.Date:
		p.advance()
		return &ast.LiteralExpr{Kind: ast.LiteralDate, Value: tok.Value, Span: ast.SpanOf(tok)}
	case lexer.Time:
		p.advance()
		return &ast.LiteralExpr{Kind: ast.LiteralTime, Value: tok.Value, Span: ast.SpanOf(tok)}
	case lexer.DateTime:
		p.advance()
		return &ast.LiteralExpr{Kind: ast.LiteralDateTime, Value: tok.Value, Span: ast.SpanOf(tok)}
	case lexer.QuotedIdentifier:
		p.advance()
		return &ast.IdentifierExpr{Name: tok.Value, Span: ast.SpanOf(tok)}
	case lexer.LeftParen:
		p.advance()
		inner := p.parseExpression()
		p.consume(lexer.RightParen, "Expected ')' after expression")
		return inner
	case lexer.LeftBracket:
		return p.parseSetLiteral()
	}

	if tok.Kind == lexer.Identifier && (strEqualFold(tok.Value, "TRUE") || strEqualFold(tok.Value, "FALSE")) {
		p.advance()
		return &ast.LiteralExpr{Kind: ast.LiteralBool, Value: tok.Value, Span: ast.SpanOf(tok)}
	}

	if tok.Kind == lexer.Identifier || isTypeSpellingWord(tok.Kind) {
		p.advance()
		if p.check(lexer.DoubleColon) {
			p.advance()
			member := p.parseNameToken()
			return &ast.OptionAccessExpr{Type: tok.Value, Member: member, Span: ast.Span{Start: tok.Start, End: p.previous().End}}
		}
		return &ast.IdentifierExpr{Name: tok.Value, Span: ast.SpanOf(tok)}
	}

	p.errorAt(tok, fmt.Sprintf("Unexpected %s; expected expression", tok.Kind))
	return &ast.LiteralExpr{Kind: ast.LiteralInteger, Value: "", Span: ast.Span{Start: tok.Start, End: tok.Start}}
}

// isTypeSpellingWord reports whether kind is one of the data-type /
// object-kind keyword kinds that the grammar treats as a plain identifier
// wherever an expression is expected (§4.6 parsePrimary fallback).
func isTypeSpellingWord(kind lexer.Kind) bool {
	switch kind {
	case lexer.IntegerType, lexer.DecimalType, lexer.Boolean, lexer.DateType, lexer.TimeType,
		lexer.DateTimeType, lexer.CodeType, lexer.TextType, lexer.OptionType, lexer.Record,
		lexer.BigText, lexer.BLOB, lexer.GUID, lexer.TextConst,
		lexer.Table, lexer.Page, lexer.Codeunit, lexer.Report, lexer.Query, lexer.XMLport, lexer.MenuSuite:
		return true
	}
	return false
}

func strEqualFold(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := 0; i < len(a); i++ {
		ca, cb := a[i], b[i]
		if 'A' <= ca && ca <= 'Z' {
			ca += 'a' - 'A'
		}
		if 'A' <= cb && cb <= 'Z' {
			cb += 'a' - 'A'
		}
		if ca != cb {
			return false
		}
	}
	return true
}

// parseSetLiteral parses `[ elem { , elem } ]` where elem is expr | expr..expr
// | expr.. | ..expr, enforcing that '..' is flanked by at least one
// expression (§4.6, scenario 8).
func (p *Parser) parseSetLiteral() ast.Expr {
	start := p.advance() // '['
	set := &ast.SetLiteralExpr{}

	if p.check(lexer.RightBracket) {
		p.advance()
		set.Span = ast.Span{Start: start.Start, End: p.previous().End}
		return set
	}

	for {
		if p.check(lexer.RightBracket) {
			break
		}
		set.Elements = append(set.Elements, p.parseSetElement())
		if !p.match(lexer.Comma) {
			break
		}
		if p.check(lexer.RightBracket) {
			break // trailing comma tolerated
		}
	}

	if !p.match(lexer.RightBracket) {
		p.errorAt(p.peek(), "Expected ']' to close set literal")
		for !p.isAtEnd() && !p.check(lexer.RightBracket) && !p.check(lexer.Semicolon) && !p.atSectionKeyword() {
			p.advance()
		}
		p.match(lexer.RightBracket)
	}

	set.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return set
}

// parseSetElement parses one set-literal element: expr, expr..expr,
// expr.., or ..expr. A leading or trailing '..' with nothing on the open
// side is a diagnostic pinned to the trailing token, matching
// /expected expression after '\.\.'/i.
func (p *Parser) parseSetElement() ast.SetElement {
	start := p.peek()

	if p.check(lexer.DotDot) {
		dotdot := p.advance()
		if p.atSetElementEnd() {
			p.errorAt(p.peek(), "expected expression after '..'")
			return ast.SetElement{IsRange: true, Span: ast.SpanOf(dotdot)}
		}
		high := p.parseExpression()
		return ast.SetElement{IsRange: true, High: high, Span: ast.Span{Start: start.Start, End: high.NodeSpan().End}}
	}

	first := p.parseExpression()
	if !p.match(lexer.DotDot) {
		return ast.SetElement{Value: first, Span: first.NodeSpan()}
	}

	if p.atSetElementEnd() {
		p.errorAt(p.peek(), "expected expression after '..'")
		return ast.SetElement{IsRange: true, Low: first, Span: first.NodeSpan()}
	}
	if p.check(lexer.DotDot) || p.check(lexer.Dot) {
		// Three consecutive dots: "[1...10]" is invalid per §4.6. The lexer
		// scans "..." as DotDot followed by Dot.
		p.errorAt(p.peek(), "expected expression after '..'")
		return ast.SetElement{IsRange: true, Low: first, Span: first.NodeSpan()}
	}

	high := p.parseExpression()
	return ast.SetElement{IsRange: true, Low: first, High: high, Span: ast.Span{Start: start.Start, End: high.NodeSpan().End}}
}

func (p *Parser) atSetElementEnd() bool {
	return p.check(lexer.RightBracket) || p.check(lexer.Comma) || p.check(lexer.Semicolon) || p.isAtEnd()
}

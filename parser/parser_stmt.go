package parser

import (
	"fmt"

	"github.com/calfront/calfront/ast"
	"github.com/calfront/calfront/lexer"
)

// parseStatementsUntilEnd parses a statement list terminated by the matching
// END (already past BEGIN); the END itself is consumed.
func (p *Parser) parseStatementsUntilEnd() []ast.Stmt {
	var stmts []ast.Stmt
	for {
		if p.isAtEnd() {
			p.errorAt(p.peek(), "Expected END to close BEGIN block")
			return stmts
		}
		if p.match(lexer.End) {
			return stmts
		}
		if p.atSectionKeyword() {
			p.errorAt(p.peek(), "Expected END to close BEGIN block")
			return stmts
		}
		stmts = append(stmts, p.parseStatement())
	}
}

// parseStatement dispatches on the current token to one statement variant,
// per the control-flow grammar in §4.6. A statement may be absent where the
// grammar allows it (e.g. after THEN with no body), in which case the
// caller receives an EmptyStmt instead of calling this directly.
func (p *Parser) parseStatement() ast.Stmt {
	switch {
	case p.check(lexer.Begin):
		return p.parseBeginEnd()
	case p.checkValue("IF"):
		return p.parseIfStatement()
	case p.checkValue("WHILE"):
		return p.parseWhileStatement()
	case p.checkValue("REPEAT"):
		return p.parseRepeatStatement()
	case p.checkValue("FOR"):
		return p.parseForStatement()
	case p.checkValue("WITH"):
		return p.parseWithStatement()
	case p.checkValue("CASE"):
		return p.parseCaseStatement()
	case p.checkValue("EXIT"):
		return p.parseExitStatement()
	default:
		return p.parseAssignmentOrExpressionStatement()
	}
}

// parseOptionalBody parses a single statement when the grammar permits one
// to be absent (scenario 7: "IF TRUE THEN END;" has an EmptyStmt then-arm).
// A body is considered absent if the next token is one that can only
// terminate the enclosing construct: ';', END, ELSE, UNTIL, or a section
// keyword.
func (p *Parser) parseOptionalBody() ast.Stmt {
	tok := p.peek()
	if p.check(lexer.Semicolon) || p.check(lexer.End) || p.checkValue("ELSE") ||
		p.checkValue("UNTIL") || p.atSectionKeyword() || p.isAtEnd() {
		return &ast.EmptyStmt{Span: ast.Span{Start: tok.Start, End: tok.Start}}
	}
	return p.parseStatement()
}

func (p *Parser) parseBeginEnd() ast.Stmt {
	start := p.advance() // BEGIN
	body := p.parseStatementsUntilEnd()
	return &ast.BeginEndStmt{Body: body, Span: ast.Span{Start: start.Start, End: p.previous().End}}
}

func (p *Parser) parseIfStatement() ast.Stmt {
	start := p.advance() // IF
	cond := p.parseExpression()
	if !p.matchValue("THEN") {
		p.errorAt(p.peek(), "Expected THEN after IF condition")
	}
	then := p.parseOptionalBody()

	var elseBranch ast.Stmt
	if p.matchValue("ELSE") {
		elseBranch = p.parseOptionalBody()
	}

	end := p.previous().End
	return &ast.IfStmt{Condition: cond, Then: then, Else: elseBranch, Span: ast.Span{Start: start.Start, End: end}}
}

func (p *Parser) parseWhileStatement() ast.Stmt {
	start := p.advance() // WHILE
	cond := p.parseExpression()
	if !p.matchValue("DO") {
		p.errorAt(p.peek(), "Expected DO after WHILE condition")
	}
	body := p.parseOptionalBody()
	return &ast.WhileStmt{Condition: cond, Body: body, Span: ast.Span{Start: start.Start, End: p.previous().End}}
}

func (p *Parser) parseRepeatStatement() ast.Stmt {
	start := p.advance() // REPEAT
	var body []ast.Stmt
	for !p.isAtEnd() && !p.checkValue("UNTIL") && !p.atSectionKeyword() {
		body = append(body, p.parseStatement())
	}
	if !p.matchValue("UNTIL") {
		p.errorAt(p.peek(), "Expected UNTIL to close REPEAT")
		return &ast.RepeatStmt{Body: body, Span: ast.Span{Start: start.Start, End: p.previous().End}}
	}
	until := p.parseExpression()
	p.match(lexer.Semicolon)
	return &ast.RepeatStmt{Body: body, Until: until, Span: ast.Span{Start: start.Start, End: p.previous().End}}
}

func (p *Parser) parseForStatement() ast.Stmt {
	start := p.advance() // FOR
	name := p.parseNameToken()
	if !p.match(lexer.Assign) {
		p.errorAt(p.peek(), "Expected ':=' in FOR statement")
	}
	from := p.parseExpression()

	downto := false
	if p.matchValue("DOWNTO") {
		downto = true
	} else if !p.matchValue("TO") {
		p.errorAt(p.peek(), "Expected TO or DOWNTO in FOR statement")
	}
	to := p.parseExpression()

	if !p.matchValue("DO") {
		p.errorAt(p.peek(), "Expected DO in FOR statement")
	}
	body := p.parseOptionalBody()

	return &ast.ForStmt{
		Variable: name, From: from, To: to, Downto: downto, Body: body,
		Span: ast.Span{Start: start.Start, End: p.previous().End},
	}
}

func (p *Parser) parseWithStatement() ast.Stmt {
	start := p.advance() // WITH
	target := p.parseExpression()
	if !p.matchValue("DO") {
		p.errorAt(p.peek(), "Expected DO after WITH target")
	}
	body := p.parseOptionalBody()
	return &ast.WithStmt{Target: target, Body: body, Span: ast.Span{Start: start.Start, End: p.previous().End}}
}

func (p *Parser) parseCaseStatement() ast.Stmt {
	start := p.advance() // CASE
	subject := p.parseExpression()
	if !p.matchValue("OF") {
		p.errorAt(p.peek(), "Expected OF after CASE subject")
	}

	c := &ast.CaseStmt{Subject: subject}
	for !p.isAtEnd() && !p.checkValue("ELSE") && !p.check(lexer.End) && !p.atSectionKeyword() {
		c.Branches = append(c.Branches, p.parseCaseBranch())
	}
	if p.matchValue("ELSE") {
		for !p.isAtEnd() && !p.check(lexer.End) && !p.atSectionKeyword() {
			c.Else = append(c.Else, p.parseStatement())
		}
	}
	if !p.match(lexer.End) {
		p.errorAt(p.peek(), "Expected END to close CASE")
	}
	p.match(lexer.Semicolon)
	c.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return c
}

// parseCaseBranch parses one `label {, label} : stmt? ;` arm. A label may
// itself be a set literal (§4.6).
func (p *Parser) parseCaseBranch() ast.CaseBranch {
	start := p.peek()
	branch := ast.CaseBranch{}
	for {
		branch.Labels = append(branch.Labels, p.parseExpression())
		if !p.match(lexer.Comma) {
			break
		}
	}
	if !p.match(lexer.Colon) {
		p.errorAt(p.peek(), "Expected ':' after CASE label")
	}
	branch.Body = p.parseOptionalBody()
	p.match(lexer.Semicolon)
	branch.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return branch
}

func (p *Parser) parseExitStatement() ast.Stmt {
	start := p.advance() // EXIT
	var value ast.Expr
	if p.match(lexer.LeftParen) {
		if !p.check(lexer.RightParen) {
			value = p.parseExpression()
		}
		p.consume(lexer.RightParen, "Expected ')' after EXIT value")
	}
	p.match(lexer.Semicolon)
	return &ast.ExitStmt{Value: value, Span: ast.Span{Start: start.Start, End: p.previous().End}}
}

// parseAssignmentOrExpressionStatement parses an expression and, if
// followed by ':=', turns it into an assignment; otherwise it stands alone
// as an ExpressionStatement (a bare procedure call is the common case).
func (p *Parser) parseAssignmentOrExpressionStatement() ast.Stmt {
	start := p.peek()
	expr := p.parseExpression()

	if p.match(lexer.Assign) {
		value := p.parseExpression()
		p.match(lexer.Semicolon)
		return &ast.AssignmentStmt{Target: expr, Value: value, Span: ast.Span{Start: start.Start, End: p.previous().End}}
	}

	if !p.match(lexer.Semicolon) {
		if !p.check(lexer.End) && !p.checkValue("ELSE") && !p.checkValue("UNTIL") && !p.atSectionKeyword() && !p.isAtEnd() {
			tok := p.peek()
			p.errorAt(tok, fmt.Sprintf("Unexpected %s; expected ';'", tok.Kind))
			p.synchronizeStatement()
		}
	}
	return &ast.ExpressionStmt{Expr: expr, Span: ast.Span{Start: start.Start, End: p.previous().End}}
}

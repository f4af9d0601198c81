package parser

import (
	"strings"

	"github.com/calfront/calfront/ast"
	"github.com/calfront/calfront/lexer"
)

func (p *Parser) parseFieldsSection() *ast.FieldsSection {
	start := p.peek()
	p.advance() // FIELDS
	sec := &ast.FieldsSection{}
	if _, ok := p.consume(lexer.LeftBrace, "Expected '{' after FIELDS"); !ok {
		sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
		return sec
	}
	for {
		if p.match(lexer.RightBrace) {
			break
		}
		if p.isAtEnd() || p.atSectionKeyword() {
			p.errorAt(p.peek(), "Expected '}' to close FIELDS section")
			break
		}
		if !p.check(lexer.LeftBrace) {
			tok := p.advance()
			p.errorAt(tok, "Expected '{' to start a field row")
			continue
		}
		sec.Fields = append(sec.Fields, p.parseFieldRow())
	}
	sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return sec
}

// parseFieldRow parses `{ n ; enabled ; name ; type [; props] }` (§4.6).
func (p *Parser) parseFieldRow() *ast.Field {
	start := p.peek()
	p.advance() // '{'
	field := &ast.Field{}

	if p.check(lexer.Integer) {
		field.FieldNo = parseIntLiteral(p.advance().Value)
	}
	p.consume(lexer.Semicolon, "Expected ';' after field number")

	field.Enabled = p.parseEnabledFlag()
	p.consume(lexer.Semicolon, "Expected ';' after enabled flag")

	field.Name = p.parseFieldName()
	p.consume(lexer.Semicolon, "Expected ';' after field name")

	field.DataType, field.ArrayDim = p.parseFieldType()

	for p.match(lexer.Semicolon) {
		if p.check(lexer.RightBrace) {
			break
		}
		name := p.peek().Value
		if isTriggerName(name) && p.peekAt(1).Kind == lexer.Equal {
			field.Triggers = append(field.Triggers, p.parseTrigger())
			continue
		}
		field.Properties = append(field.Properties, p.parseFieldPropertyEntry())
	}

	if _, ok := p.consume(lexer.RightBrace, "Expected '}' to close field definition"); !ok {
		// Resync to the next '}' or section keyword without consuming it.
		for !p.isAtEnd() && !p.check(lexer.RightBrace) && !p.atSectionKeyword() {
			p.advance()
		}
		p.match(lexer.RightBrace)
	}

	field.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return field
}

// parseEnabledFlag parses the blank-or-boolean second column of a field row.
func (p *Parser) parseEnabledFlag() bool {
	if p.check(lexer.Semicolon) {
		return true // blank column 2 means enabled by convention
	}
	tok := p.advance()
	return strings.EqualFold(tok.Value, "yes") || strings.EqualFold(tok.Value, "true")
}

// parseFieldName absorbs a bare run of identifier-ish tokens up to the next
// top-level ';', or a single quoted identifier (§4.6).
func (p *Parser) parseFieldName() string {
	if p.check(lexer.QuotedIdentifier) {
		return p.advance().Value
	}
	var b strings.Builder
	prevEnd := -1
	first := true
	for !p.isAtEnd() && !p.check(lexer.Semicolon) && !p.check(lexer.RightBrace) {
		tok := p.advance()
		if !first && prevEnd < tok.Start {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Value)
		prevEnd = tok.End
		first = false
	}
	return b.String()
}

// parseFieldType parses the data-type column, a type token possibly
// followed by `[ dim ]`.
func (p *Parser) parseFieldType() (dataType, arrayDim string) {
	if p.isAtEnd() || p.check(lexer.Semicolon) || p.check(lexer.RightBrace) {
		p.errorAt(p.peek(), "Expected a data type")
		return "", ""
	}
	tok := p.advance()
	dataType = tok.Value
	if p.match(lexer.LeftBracket) {
		var dim strings.Builder
		for !p.isAtEnd() && !p.check(lexer.RightBracket) {
			dim.WriteString(p.advance().Value)
		}
		p.consume(lexer.RightBracket, "Expected ']' after array dimension")
		arrayDim = "[" + dim.String() + "]"
	}
	return dataType, arrayDim
}

func (p *Parser) parseFieldPropertyEntry() ast.FieldProperty {
	prop := p.parsePropertyEntry()
	return ast.FieldProperty{Name: prop.Name, Value: prop.Value, Span: prop.Span}
}

// parseTrigger parses `Name=[VAR ...] BEGIN ... END[;]` inside a field's
// property list (§4.6).
func (p *Parser) parseTrigger() ast.Trigger {
	nameTok := p.advance()
	p.consume(lexer.Equal, "Expected '=' after trigger name")

	trig := ast.Trigger{Name: nameTok.Value}
	if p.matchValue("VAR") {
		trig.Var = p.parseVariableDeclarations()
	}
	if _, ok := p.consume(lexer.Begin, "Expected BEGIN in trigger body"); ok {
		trig.Body = p.parseStatementsUntilEnd()
	}
	p.match(lexer.Semicolon)
	trig.Span = ast.Span{Start: nameTok.Start, End: p.previous().End}
	return trig
}

// --- KEYS ----------------------------------------------------------------

func (p *Parser) parseKeysSection() *ast.KeysSection {
	start := p.peek()
	p.advance() // KEYS
	sec := &ast.KeysSection{}
	if _, ok := p.consume(lexer.LeftBrace, "Expected '{' after KEYS"); !ok {
		sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
		return sec
	}
	for {
		if p.match(lexer.RightBrace) {
			break
		}
		if p.isAtEnd() || p.atSectionKeyword() {
			p.errorAt(p.peek(), "Expected '}' to close KEYS section")
			break
		}
		if !p.check(lexer.LeftBrace) {
			p.advance()
			continue
		}
		sec.Keys = append(sec.Keys, p.parseKeyRow())
	}
	sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return sec
}

func (p *Parser) parseKeyRow() ast.Key {
	start := p.peek()
	p.advance() // '{'
	key := ast.Key{}
	key.Fields = p.parseCommaFieldList()
	for p.match(lexer.Semicolon) {
		if p.check(lexer.RightBrace) {
			break
		}
		key.Properties = append(key.Properties, p.parseFieldPropertyEntry())
	}
	p.consume(lexer.RightBrace, "Expected '}' to close key definition")
	key.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return key
}

// parseCommaFieldList parses a comma-separated field-name list, trimming
// outer whitespace per field but keeping inner spaces/periods/parens intact
// (e.g. "Balance (LCY)", "No.") — §4.6 FIELDGROUPS rows, reused for key
// field lists.
func (p *Parser) parseCommaFieldList() []string {
	var fields []string
	if p.check(lexer.Semicolon) || p.check(lexer.RightBrace) {
		return fields
	}
	for {
		var b strings.Builder
		prevEnd := -1
		first := true
		for !p.isAtEnd() && !p.check(lexer.Comma) && !p.check(lexer.Semicolon) && !p.check(lexer.RightBrace) {
			tok := p.advance()
			if !first && prevEnd < tok.Start {
				b.WriteByte(' ')
			}
			b.WriteString(tok.Value)
			prevEnd = tok.End
			first = false
		}
		fields = append(fields, strings.TrimSpace(b.String()))
		if !p.match(lexer.Comma) {
			break
		}
	}
	return fields
}

// --- FIELDGROUPS -----------------------------------------------------------

func (p *Parser) parseFieldGroupsSection() *ast.FieldGroupSection {
	start := p.peek()
	p.advance() // FIELDGROUPS
	sec := &ast.FieldGroupSection{}
	if _, ok := p.consume(lexer.LeftBrace, "Expected '{' after FIELDGROUPS"); !ok {
		sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
		return sec
	}
	for {
		if p.match(lexer.RightBrace) {
			break
		}
		if p.isAtEnd() || p.atSectionKeyword() {
			p.errorAt(p.peek(), "Expected '}' to close FIELDGROUPS section")
			break
		}
		if !p.check(lexer.LeftBrace) {
			p.advance()
			continue
		}
		sec.Groups = append(sec.Groups, p.parseFieldGroupRow())
	}
	sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return sec
}

// parseFieldGroupRow parses `{ id ; name ; field, field, ... }`.
func (p *Parser) parseFieldGroupRow() ast.FieldGroup {
	start := p.peek()
	p.advance() // '{'
	fg := ast.FieldGroup{}
	if p.check(lexer.Integer) {
		fg.ID = parseIntLiteral(p.advance().Value)
	}
	p.consume(lexer.Semicolon, "Expected ';' after field group id")
	fg.Name = p.parseFieldName()
	p.consume(lexer.Semicolon, "Expected ';' after field group name")
	fg.Fields = p.parseCommaFieldList()
	p.consume(lexer.RightBrace, "Expected '}' to close field group")
	fg.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return fg
}

// --- CONTROLS / ACTIONS ----------------------------------------------------

func (p *Parser) parseControlsSection() *ast.ControlsSection {
	start := p.peek()
	p.advance() // CONTROLS
	sec := &ast.ControlsSection{}
	if _, ok := p.consume(lexer.LeftBrace, "Expected '{' after CONTROLS"); !ok {
		sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
		return sec
	}
	for {
		if p.match(lexer.RightBrace) {
			break
		}
		if p.isAtEnd() || p.atSectionKeyword() {
			p.errorAt(p.peek(), "Expected '}' to close CONTROLS section")
			break
		}
		if !p.check(lexer.LeftBrace) {
			p.advance()
			continue
		}
		sec.Controls = append(sec.Controls, p.parseControlRow())
	}
	sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return sec
}

func (p *Parser) parseControlRow() ast.Control {
	start := p.peek()
	p.advance() // '{'
	c := ast.Control{}
	if p.check(lexer.Integer) {
		c.ID = parseIntLiteral(p.advance().Value)
	}
	p.consume(lexer.Semicolon, "Expected ';' after control id")
	c.Kind = p.parseFieldName()
	p.consume(lexer.Semicolon, "Expected ';' after control kind")
	c.Name = p.parseFieldName()
	for p.match(lexer.Semicolon) {
		if p.check(lexer.RightBrace) {
			break
		}
		c.Properties = append(c.Properties, p.parseFieldPropertyEntry())
	}
	p.consume(lexer.RightBrace, "Expected '}' to close control definition")
	c.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return c
}

func (p *Parser) parseActionsSection() *ast.ActionsSection {
	start := p.peek()
	p.advance() // ACTIONS
	sec := &ast.ActionsSection{}
	if _, ok := p.consume(lexer.LeftBrace, "Expected '{' after ACTIONS"); !ok {
		sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
		return sec
	}
	for {
		if p.match(lexer.RightBrace) {
			break
		}
		if p.isAtEnd() || p.atSectionKeyword() {
			p.errorAt(p.peek(), "Expected '}' to close ACTIONS section")
			break
		}
		if !p.check(lexer.LeftBrace) {
			p.advance()
			continue
		}
		sec.Containers = append(sec.Containers, p.parseActionContainerRow())
	}
	sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return sec
}

func (p *Parser) parseActionContainerRow() ast.ActionContainer {
	start := p.peek()
	p.advance() // '{'
	ac := ast.ActionContainer{}
	ac.Name = p.parseFieldName()
	for p.match(lexer.Semicolon) {
		if p.check(lexer.RightBrace) {
			break
		}
		if p.check(lexer.LeftBrace) {
			ac.Actions = append(ac.Actions, p.parseActionRow())
			continue
		}
		p.advance()
	}
	p.consume(lexer.RightBrace, "Expected '}' to close action container")
	ac.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return ac
}

func (p *Parser) parseActionRow() ast.Action {
	start := p.peek()
	p.advance() // '{'
	a := ast.Action{}
	if p.check(lexer.Integer) {
		a.ID = parseIntLiteral(p.advance().Value)
	}
	p.consume(lexer.Semicolon, "Expected ';' after action id")
	a.Name = p.parseFieldName()
	for p.match(lexer.Semicolon) {
		if p.check(lexer.RightBrace) {
			break
		}
		a.Properties = append(a.Properties, p.parseFieldPropertyEntry())
	}
	p.consume(lexer.RightBrace, "Expected '}' to close action definition")
	a.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return a
}

// --- ELEMENTS / DATASET ----------------------------------------------------

// parseElementsSection parses a Query ELEMENTS or Report DATASET section.
// Rows of kind Column/Filter with a non-blank name are lifted into
// obj.Code.Variables per the §4.6 symbol-extraction hook.
func (p *Parser) parseElementsSection(obj *ast.ObjectDeclaration) *ast.ElementsSection {
	start := p.peek()
	p.advance() // ELEMENTS or DATASET
	sec := &ast.ElementsSection{}
	if _, ok := p.consume(lexer.LeftBrace, "Expected '{' after section header"); !ok {
		sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
		return sec
	}
	for {
		if p.match(lexer.RightBrace) {
			break
		}
		if p.isAtEnd() || p.atSectionKeyword() {
			p.errorAt(p.peek(), "Expected '}' to close section")
			break
		}
		if !p.check(lexer.LeftBrace) {
			p.advance()
			continue
		}
		el := p.parseElementRow()
		sec.Elements = append(sec.Elements, el)
		if obj.Code == nil {
			obj.Code = &ast.CodeSection{}
		}
		if (strings.EqualFold(el.Kind, "Column") || strings.EqualFold(el.Kind, "Filter")) && el.Name != "" {
			obj.Code.Variables = append(obj.Code.Variables, ast.Variable{Name: el.Name, Span: el.Span})
		}
	}
	sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return sec
}

// parseElementRow parses `{ id ; parent ; kind ; name ; ... }`.
func (p *Parser) parseElementRow() ast.Element {
	start := p.peek()
	p.advance() // '{'
	el := ast.Element{}
	if p.check(lexer.Integer) {
		el.ID = parseIntLiteral(p.advance().Value)
	}
	p.consume(lexer.Semicolon, "Expected ';' after element id")
	if p.check(lexer.Integer) {
		el.ParentID = parseIntLiteral(p.advance().Value)
	}
	p.consume(lexer.Semicolon, "Expected ';' after parent id")
	el.Kind = p.parseFieldName()
	p.consume(lexer.Semicolon, "Expected ';' after element kind")
	el.Name = p.parseFieldName()
	for p.match(lexer.Semicolon) {
		if p.check(lexer.RightBrace) {
			break
		}
		if p.peekAt(1).Kind == lexer.Equal {
			el.Properties = append(el.Properties, p.parseFieldPropertyEntry())
		} else {
			p.advance()
		}
	}
	if _, ok := p.consume(lexer.RightBrace, "Expected '}' to close element definition"); !ok {
		for !p.isAtEnd() && !p.check(lexer.RightBrace) && !p.atSectionKeyword() {
			p.advance()
		}
		p.match(lexer.RightBrace)
	}
	el.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return el
}

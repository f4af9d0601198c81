package parser

import (
	"fmt"
	"strings"

	"github.com/calfront/calfront/ast"
	"github.com/calfront/calfront/lexer"
)

// objectKindNames is checked case-insensitively against the token right
// after OBJECT, independent of the Kind the lexer assigned it.
var objectKindNames = []string{"Table", "Page", "Codeunit", "Report", "Query", "XMLport", "MenuSuite"}

func (p *Parser) parseObject() *ast.ObjectDeclaration {
	startTok := p.peek()
	p.matchValue("OBJECT")

	obj := &ast.ObjectDeclaration{}

	kindTok := p.advance()
	obj.Kind = matchCanonical(kindTok.Value, objectKindNames)
	if obj.Kind == "" {
		p.errorAt(kindTok, fmt.Sprintf("Unexpected %s; expected an object kind", kindTok.Kind))
	}

	if p.check(lexer.Integer) {
		obj.ID = parseIntLiteral(p.advance().Value)
	} else {
		p.errorAt(p.peek(), "Expected object id")
	}

	obj.Name = p.parseNameToken()

	if _, ok := p.consume(lexer.LeftBrace, "Expected '{' after object header"); ok {
		p.parseObjectBody(obj)
	}

	obj.Span = ast.Span{Start: startTok.Start, End: p.previous().End}
	return obj
}

// matchCanonical returns the canonical spelling from candidates that text
// case-foldingly equals, or "" if none match.
func matchCanonical(text string, candidates []string) string {
	for _, c := range candidates {
		if strings.EqualFold(text, c) {
			return c
		}
	}
	return ""
}

// parseNameToken parses a bare identifier or quoted identifier used as an
// object, field, or key name.
func (p *Parser) parseNameToken() string {
	if p.check(lexer.QuotedIdentifier) {
		return p.advance().Value
	}
	if p.check(lexer.Identifier) {
		return p.advance().Value
	}
	tok := p.peek()
	p.errorAt(tok, fmt.Sprintf("Unexpected %s; expected a name", tok.Kind))
	return ""
}

// parseObjectBody dispatches each section keyword at object-body scope
// until the object's closing '}' (§4.6).
func (p *Parser) parseObjectBody(obj *ast.ObjectDeclaration) {
	for {
		if p.match(lexer.RightBrace) {
			return
		}
		if p.isAtEnd() {
			p.errorAt(p.peek(), "Expected '}' to close OBJECT")
			return
		}

		switch {
		case p.checkValue("PROPERTIES"):
			obj.Properties = p.parsePropertiesSection()
		case p.checkValue("FIELDS"):
			obj.Fields = p.parseFieldsSection()
		case p.checkValue("KEYS"):
			obj.Keys = p.parseKeysSection()
		case p.checkValue("FIELDGROUPS"):
			obj.FieldGroups = p.parseFieldGroupsSection()
		case p.checkValue("CONTROLS"):
			obj.Controls = p.parseControlsSection()
		case p.checkValue("ACTIONS"):
			obj.Actions = p.parseActionsSection()
		case p.checkValue("ELEMENTS"):
			obj.Elements = p.parseElementsSection(obj)
		case p.checkValue("DATASET"):
			obj.Dataset = p.parseElementsSection(obj)
		case p.checkValue("REQUESTPAGE"):
			p.skipGenericBracedSection()
		case p.checkValue("LABELS"):
			p.skipGenericBracedSection()
		case p.checkValue("CODE"):
			lifted := obj.Code
			obj.Code = p.parseCodeSection()
			if lifted != nil {
				obj.Code.Variables = append(obj.Code.Variables, lifted.Variables...)
			}
		default:
			tok := p.advance()
			p.errorAt(tok, fmt.Sprintf("Unexpected %s; expected a section keyword or '}'", tok.Kind))
		}
	}
}

// skipGenericBracedSection consumes `Name { ... }` for sections this
// implementation does not model beyond recognizing their extent
// (REQUESTPAGE, LABELS), applying the same missing-'}' recovery as any other
// section.
func (p *Parser) skipGenericBracedSection() {
	name := p.advance().Value
	if _, ok := p.consume(lexer.LeftBrace, fmt.Sprintf("Expected '{' after %s", name)); !ok {
		return
	}
	depth := 1
	for depth > 0 {
		if p.isAtEnd() {
			p.errorAt(p.peek(), fmt.Sprintf("Expected '}' to close %s section", name))
			return
		}
		if p.atSectionKeyword() {
			p.errorAt(p.peek(), fmt.Sprintf("Expected '}' to close %s section", name))
			return
		}
		if p.check(lexer.LeftBrace) {
			depth++
		} else if p.check(lexer.RightBrace) {
			depth--
		}
		p.advance()
	}
}

// --- PROPERTIES ---------------------------------------------------------

func (p *Parser) parsePropertiesSection() *ast.PropertiesSection {
	start := p.peek()
	p.advance() // PROPERTIES
	sec := &ast.PropertiesSection{}
	if _, ok := p.consume(lexer.LeftBrace, "Expected '{' after PROPERTIES"); !ok {
		sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
		return sec
	}
	for {
		if p.match(lexer.RightBrace) {
			break
		}
		if p.isAtEnd() || p.atSectionKeyword() {
			p.errorAt(p.peek(), "Expected '}' to close PROPERTIES section")
			break
		}
		prop := p.parsePropertyEntry()
		sec.Properties = append(sec.Properties, prop)
	}
	sec.Span = ast.Span{Start: start.Start, End: p.previous().End}
	return sec
}

// parsePropertyEntry parses one `Name = value` entry of a PROPERTIES or
// field-property list, terminated by a top-level ';' (consumed) or the
// enclosing '}' (left for the caller).
func (p *Parser) parsePropertyEntry() ast.Property {
	nameTok := p.advance()
	name := nameTok.Value
	if _, ok := p.consume(lexer.Equal, fmt.Sprintf("Expected '=' after property name %q", name)); !ok {
		return ast.Property{Name: name, Span: ast.Span{Start: nameTok.Start, End: p.previous().End}}
	}
	value := p.collectPropertyValue()
	p.match(lexer.Semicolon)
	return ast.Property{Name: name, Value: value, Span: ast.Span{Start: nameTok.Start, End: p.previous().End}}
}

// collectPropertyValue joins tokens from the current position up to the
// next top-level ';' or the enclosing '}' (not consumed), preserving a
// single space between tokens that had any gap between them in source and
// no space where they were adjacent (§4.6).
func (p *Parser) collectPropertyValue() string {
	var b strings.Builder
	depth := 0
	first := true
	prevEnd := -1
	for !p.isAtEnd() {
		tok := p.peek()
		if depth == 0 && (tok.Kind == lexer.Semicolon || tok.Kind == lexer.RightBrace) {
			break
		}
		if p.atSectionKeyword() && depth == 0 {
			break
		}
		if tok.Kind == lexer.LeftBracket {
			depth++
		} else if tok.Kind == lexer.RightBracket && depth > 0 {
			depth--
		}
		if !first && prevEnd < tok.Start {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Value)
		prevEnd = tok.End
		first = false
		p.advance()
	}
	return b.String()
}

// isTriggerName reports whether a field/control property name is a code
// trigger rather than a plain scalar property. NAV trigger names
// conventionally all begin with "On"; this is the pragmatic rule this
// implementation uses instead of enumerating every trigger name.
func isTriggerName(name string) bool {
	return len(name) >= 3 && strings.EqualFold(name[:2], "on")
}

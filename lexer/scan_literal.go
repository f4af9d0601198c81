package lexer

import "strings"

// scanString scans a single-quoted string literal. The opening quote was
// already consumed by the caller. Value strips the surrounding quotes and
// collapses the '' escape to a single '. Unterminated strings (EOF without
// a closing quote) yield an Unknown token per §4.3 rule 5.
func (s *Scanner) scanString(line, col int) (Token, bool) {
	s.pushMode(StringMode, line, col)
	var raw strings.Builder
	terminated := false
	for !s.isAtEnd() {
		r := s.advance()
		if r == '\'' {
			if s.peek() == '\'' {
				s.advance()
				raw.WriteByte('\'')
				continue
			}
			terminated = true
			break
		}
		raw.WriteRune(r)
	}
	s.popMode(s.line, s.column)

	if !terminated {
		return s.makeToken(Unknown, s.lexeme(), line, col), false
	}
	return s.makeToken(String, raw.String(), line, col), false
}

// scanQuotedIdentifier scans a double-quoted identifier. No escape sequence
// is recognized inside it.
func (s *Scanner) scanQuotedIdentifier(line, col int) (Token, bool) {
	var raw strings.Builder
	terminated := false
	for !s.isAtEnd() {
		r := s.advance()
		if r == '"' {
			terminated = true
			break
		}
		if r == '\n' {
			break // unterminated: quoted identifiers don't span lines
		}
		raw.WriteRune(r)
	}
	if !terminated {
		return s.makeToken(Unknown, s.lexeme(), line, col), false
	}
	return s.makeToken(QuotedIdentifier, raw.String(), line, col), false
}

// scanBraceComment consumes a `{ ... }` comment (trivia: no token emitted).
// Unterminated forms emit an Unknown token for the opener per §4.3 rule 6.
func (s *Scanner) scanBraceComment(line, col int) (Token, bool) {
	s.pushMode(BraceComment, line, col)
	for !s.isAtEnd() {
		if s.peek() == '}' {
			s.advance()
			s.popMode(s.line, s.column)
			return Token{}, true
		}
		s.advance()
	}
	// Ran off the end of the source without a closing brace: emit the opener
	// alone and resume scanning just after it.
	s.popMode(s.line, s.column)
	s.current, s.line, s.column = s.start+1, line, col+1
	return s.makeToken(Unknown, s.lexeme(), line, col), false
}

// scanCComment consumes a `/* ... */` comment. '/*' was already consumed.
func (s *Scanner) scanCComment(line, col int) (Token, bool) {
	s.pushMode(CComment, line, col)
	for !s.isAtEnd() {
		if s.peek() == '*' && s.peekAt(1) == '/' {
			s.advance()
			s.advance()
			s.popMode(s.line, s.column)
			return Token{}, true
		}
		s.advance()
	}
	s.popMode(s.line, s.column)
	return s.makeToken(Unknown, s.lexeme(), line, col), false
}

// scanLineComment consumes a `// ...` comment through (not including) the
// terminating newline. '//' was already consumed.
func (s *Scanner) scanLineComment(line, col int) (Token, bool) {
	s.pushMode(LineComment, line, col)
	for !s.isAtEnd() && s.peek() != '\n' {
		s.advance()
	}
	s.popMode(s.line, s.column)
	return Token{}, true
}

// scanNumberOrDateTime scans a digit run and classifies it as Integer,
// Decimal, Date, Time, or DateTime per §4.3 rule 4. The first digit was
// already consumed.
func (s *Scanner) scanNumberOrDateTime(line, col int) (Token, bool) {
	for isDigit(s.peek()) {
		s.advance()
	}

	isDecimal := false
	if s.peek() == '.' && isDigit(s.peekAt(1)) {
		isDecimal = true
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}

	if !isDecimal {
		if kind, ok := s.tryDateTimeSuffix(); ok {
			return s.makeToken(kind, s.lexeme(), line, col), false
		}
	}

	if isDecimal {
		return s.makeToken(Decimal, s.lexeme(), line, col), false
	}
	return s.makeToken(Integer, s.lexeme(), line, col), false
}

// tryDateTimeSuffix recognizes the single-letter date/time/datetime
// terminators (D, T, and D followed by T, either directly or after a time
// run) that NAV uses for literal constants, e.g. 010124D, 235959T, 0DT,
// 010124D235959T.
// It consumes the terminator(s) on success; on failure it consumes nothing
// further and the caller treats the digits scanned so far as an Integer.
func (s *Scanner) tryDateTimeSuffix() (Kind, bool) {
	switch s.peek() {
	case 'D', 'd':
		s.advance()
		if s.peek() == 'T' || s.peek() == 't' {
			s.advance()
			return DateTime, true
		}
		n := 0
		for isDigit(s.peekAt(n)) {
			n++
		}
		if n > 0 && (s.peekAt(n) == 'T' || s.peekAt(n) == 't') {
			for i := 0; i <= n; i++ {
				s.advance()
			}
			return DateTime, true
		}
		return Date, true
	case 'T', 't':
		s.advance()
		return Time, true
	}
	return 0, false
}

// scanIdentifier scans a bare identifier/keyword and applies the
// disambiguation and compound-token rules from §4.3. The first letter/'_'
// was already consumed.
func (s *Scanner) scanIdentifier(line, col int) (Token, bool) {
	for isIdentPart(s.peek()) {
		s.advance()
	}

	if tok, ok := s.tryCompoundToken(line, col); ok {
		return tok, false
	}

	raw := s.lexeme()
	kind := s.classifyWord(raw)
	return s.makeToken(kind, raw, line, col), false
}

func (s *Scanner) scanPunctuation(r rune, line, col int) (Token, bool) {
	var kind Kind
	switch r {
	case '[':
		s.bracketDepth++
		if s.inPropertyValue {
			s.pushMode(MLBracket, line, col)
		}
		kind = LeftBracket
	case ']':
		if s.bracketDepth > 0 {
			s.bracketDepth--
		}
		if s.ctx.top() == MLBracket {
			s.popMode(line, col)
		}
		kind = RightBracket
	case '(':
		kind = LeftParen
	case ')':
		kind = RightParen
	case ',':
		kind = Comma
	case ';':
		kind = s.scanSemicolon()
	case ':':
		if s.match(':') {
			kind = DoubleColon
		} else if s.match('=') {
			kind = Assign
		} else {
			kind = Colon
		}
	case '.':
		if s.match('.') {
			kind = DotDot
		} else {
			kind = Dot
		}
	case '+':
		if s.match('=') {
			kind = Assign // '+=' decomposed to assignment-family; no dedicated kind needed beyond Assign per token kind set
		} else {
			kind = Plus
		}
	case '-':
		if s.match('=') {
			kind = Assign
		} else {
			kind = Minus
		}
	case '*':
		if s.match('=') {
			kind = Assign
		} else {
			kind = Multiply
		}
	case '/':
		if s.match('=') {
			kind = DivideAssign
		} else {
			kind = Divide
		}
	case '=':
		if s.ctx.top() == PropertiesMode || (s.ctx.top() == FieldDef && s.fieldDefColumn == ColProperties) {
			s.setInPropertyValue(true)
		}
		kind = Equal
	case '<':
		if s.match('=') {
			kind = LessEqual
		} else if s.match('>') {
			kind = NotEqual
		} else {
			kind = Less
		}
	case '>':
		if s.match('=') {
			kind = GreaterEqual
		} else {
			kind = Greater
		}
	default:
		kind = Unknown
	}
	return s.makeToken(kind, s.lexeme(), line, col), false
}

// scanSemicolon applies the field-def column tracker and property-value
// clearing side effects of a top-level ';' (§4.2, §4.6).
func (s *Scanner) scanSemicolon() Kind {
	if s.ctx.top() == FieldDef && s.bracketDepth == 0 {
		s.setFieldDefColumn(s.fieldDefColumn.advance())
	}
	s.setInPropertyValue(false)
	return Semicolon
}

package lexer

// tryCompoundToken recognizes OBJECT-PROPERTIES and Format/Evaluate as
// single tokens when the full literal sequence is contiguous (§4.3 rule 2).
// The caller has already consumed the first word; this only fires when that
// word was exactly "OBJECT" or "Format" (case-insensitive) and is
// immediately (no trivia) followed by '-'/'/' and the matching tail word.
func (s *Scanner) tryCompoundToken(line, col int) (Token, bool) {
	word := fold.String(s.lexeme())

	switch word {
	case "object":
		if s.peek() == '-' && s.matchContiguousWord(1, "properties") {
			s.consumeContiguousWord(1, "properties")
			return s.makeToken(ObjectProperties, s.lexeme(), line, col), true
		}
	case "format":
		if s.peek() == '/' && s.matchContiguousWord(1, "evaluate") {
			s.consumeContiguousWord(1, "evaluate")
			return s.makeToken(FormatEvaluate, s.lexeme(), line, col), true
		}
	}
	return Token{}, false
}

// matchContiguousWord reports whether, starting offset runes ahead of
// current, the folded tail word appears as a complete identifier (not
// followed by a further identifier character).
func (s *Scanner) matchContiguousWord(offset int, want string) bool {
	i := s.current + offset
	for _, w := range want {
		if i >= len(s.source) || fold.String(string(s.source[i])) != fold.String(string(w)) {
			return false
		}
		i++
	}
	if i < len(s.source) && isIdentPart(s.source[i]) {
		return false
	}
	return true
}

func (s *Scanner) consumeContiguousWord(offset int, want string) {
	for i := 0; i < offset+len(want); i++ {
		s.advance()
	}
}

// classifyWord resolves a scanned identifier's final Kind: first against the
// keyword/type table, then through context-sensitive rewriting for the
// handful of spellings whose token kind depends on position (§4.3 rule 1,
// Design Notes "Keyword disambiguation").
func (s *Scanner) classifyWord(raw string) Kind {
	kind, isKeyword := lookupKeyword(raw)
	if !isKeyword {
		return Identifier
	}

	// Column 3 of a field row is the field-name column: every spelling is
	// plain text there, keyword or not (§4.2).
	if s.ctx.top() == FieldDef && s.fieldDefColumn == Col3 {
		return Identifier
	}

	// Section keywords and CODE are only special at OBJECT_LEVEL immediately
	// followed by '{'; elsewhere they behave like ordinary identifiers
	// unless a more specific type-position rule below claims them.
	switch kind {
	case Properties, Fields, Keys, FieldGroups, Controls, Actions, Elements, Dataset, RequestPage, Labels:
		if s.ctx.top() == ObjectLevel && s.currentSection == NoSection && s.followedByLBrace() {
			s.pendingSection = kind
			s.hasPendingSection = true
			return kind
		}
		return Identifier
	case Code:
		return s.classifyCode()
	case DateType, TimeType, Boolean:
		return s.classifyTypeOrIdentifier(kind)
	case Object:
		s.pendingObjectHeader = true
		return Object
	case Var:
		s.inVarBlock = true
		return Var
	case Begin:
		s.inVarBlock = false
		return Begin
	}
	return kind
}

// classifyCode implements the Code / Code_Type / Identifier split from rule 1.
func (s *Scanner) classifyCode() Kind {
	if s.ctx.top() == FieldDef && s.fieldDefColumn == Col4 {
		return CodeType
	}
	if s.ctx.top() == ObjectLevel && s.currentSection == NoSection && s.followedByLBrace() {
		s.pendingCode = true
		return Code
	}
	if s.isDeclarationPosition() {
		return CodeType
	}
	return Identifier
}

// classifyTypeOrIdentifier implements the Date/Time/Boolean split from rule 1.
func (s *Scanner) classifyTypeOrIdentifier(provisional Kind) Kind {
	if s.ctx.top() == FieldDef && s.fieldDefColumn == Col4 {
		return provisional
	}
	if s.isDeclarationPosition() {
		return provisional
	}
	return Identifier
}

// isDeclarationPosition implements the shared "after OF, after : in a VAR
// block, as a return type, or after : outside CODE_BLOCK" rule that
// Code/Date/Time/Boolean all share outside FIELD_DEF column 4. A colon
// inside a VAR block (global or local) is a declaration; a colon
// immediately following a parameter list's closing `)` is a procedure's
// return type (§9); any other colon inside CODE_BLOCK (case label, WITH
// block label) is not a declaration. A parameter's type colon has no rule
// of its own: it counts as a declaration only while a VAR block is active
// (a VAR parameter, or a header after a VAR block with no BEGIN between).
func (s *Scanner) isDeclarationPosition() bool {
	if !s.hasPrevKind {
		return false
	}
	if s.prevKind == Of {
		return true
	}
	if s.prevKind == Colon && s.colonAfterRParen {
		return true
	}
	if s.prevKind == Colon && s.inVarBlock {
		return true
	}
	if s.prevKind == Colon && s.ctx.top() != CodeBlock {
		return true
	}
	return false
}

// followedByLBrace looks ahead past horizontal/vertical whitespace (but not
// comments) for a '{', without consuming anything.
func (s *Scanner) followedByLBrace() bool {
	i := s.current
	for i < len(s.source) {
		switch s.source[i] {
		case ' ', '\t', '\r', '\n':
			i++
			continue
		}
		break
	}
	return i < len(s.source) && s.source[i] == '{'
}

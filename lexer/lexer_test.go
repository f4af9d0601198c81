package lexer

import (
	"testing"
)

// tokenize is a small helper that runs Tokenize and fails the test if a
// trace callback reported a warning (none of these tests install a
// misbehaving callback, so any warning indicates a scanner bug).
func tokenize(t *testing.T, src string) []Token {
	t.Helper()
	toks, warnings := New(src, nil).Tokenize()
	if len(warnings) > 0 {
		t.Fatalf("unexpected trace warnings: %v", warnings)
	}
	return toks
}

func kinds(toks []Token) []Kind {
	out := make([]Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestTokenize_Keywords(t *testing.T) {
	tests := []struct {
		input    string
		expected Kind
	}{
		{"BEGIN", Begin},
		{"END", End},
		{"IF", If},
		{"THEN", Then},
		{"REPEAT", Repeat},
		{"UNTIL", Until},
		{"EXIT", Exit},
		{"WITH", With},
		{"CASE", Case},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			toks := tokenize(t, tt.input)
			if len(toks) != 2 { // keyword + EOF
				t.Fatalf("expected 2 tokens, got %d (%v)", len(toks), kinds(toks))
			}
			if toks[0].Kind != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, toks[0].Kind)
			}
		})
	}
}

// TestTokenize_FieldNameKeywordIsIdentifier checks that column 3 of a field
// row (the name column) treats every spelling as plain text, even a
// reserved word like CODE.
func TestTokenize_FieldNameKeywordIsIdentifier(t *testing.T) {
	src := `OBJECT Table 1 Test
{
  FIELDS
  {
    { 1   ;   ;CODE       ;Code20       }
  }
}
`
	toks := tokenize(t, src)
	var found bool
	for i, tok := range toks {
		if tok.Kind == Identifier && tok.Value == "CODE" {
			found = true
			_ = i
		}
	}
	if !found {
		t.Fatalf("expected CODE in the name column to lex as Identifier, got %v", kinds(toks))
	}
}

// TestTokenize_CodeTypeVsIdentifier exercises the Code/Code_Type/Identifier
// split: Code as the type of a VAR declaration is Code_Type, while CODE used
// as a bare expression identifier after ':=' is not.
func TestTokenize_CodeTypeVsIdentifier(t *testing.T) {
	src := `OBJECT Table 1 Test
{
  FIELDS
  {
    { 1   ;   ;Name        ;Code20       }
  }
  CODE
  {
    PROCEDURE P();
    VAR
      x : Code[20];
    BEGIN
      x := Code;
    END;
  }
}
`
	toks := tokenize(t, src)
	var sawCodeType, sawCodeIdentifier bool
	for i, tok := range toks {
		if tok.Kind == CodeType {
			sawCodeType = true
		}
		if tok.Kind == Identifier && tok.Value == "Code" && i > 0 && toks[i-1].Kind == Assign {
			sawCodeIdentifier = true
		}
	}
	if !sawCodeType {
		t.Errorf("expected at least one Code_Type token, got %v", kinds(toks))
	}
	if !sawCodeIdentifier {
		t.Errorf("expected bare CODE after ':=' to lex as Identifier, got %v", kinds(toks))
	}
}

// TestTokenize_CodeTypeAsReturnType exercises the return-type spelling of
// the Code/Code_Type split: a procedure's return type, immediately after
// the parameter list's closing ')' and a ':', is a declaration position
// even though it sits inside CODE_BLOCK and no VAR block is active.
func TestTokenize_CodeTypeAsReturnType(t *testing.T) {
	src := `OBJECT Table 1 Test
{
  CODE
  {
    PROCEDURE P() : Code[20];
    BEGIN
    END;
  }
}
`
	toks := tokenize(t, src)
	var sawCodeType bool
	for _, tok := range toks {
		if tok.Kind == CodeType {
			sawCodeType = true
		}
	}
	if !sawCodeType {
		t.Errorf("expected return-type CODE after ') :' to lex as Code_Type, got %v", kinds(toks))
	}
}

// TestTokenize_ObjectPropertiesCompound checks the OBJECT-PROPERTIES
// contiguous compound token.
func TestTokenize_ObjectPropertiesCompound(t *testing.T) {
	src := "OBJECT-PROPERTIES\n{\n}\n"
	toks := tokenize(t, src)
	if toks[0].Kind != ObjectProperties {
		t.Fatalf("expected ObjectProperties, got %s", toks[0].Kind)
	}
}

// TestTokenize_FormatEvaluateCompound checks the Format/Evaluate contiguous
// compound token and that a non-contiguous spelling falls back to two
// ordinary identifiers.
func TestTokenize_FormatEvaluateCompound(t *testing.T) {
	toks := tokenize(t, "Format/Evaluate")
	if toks[0].Kind != FormatEvaluate {
		t.Fatalf("expected FormatEvaluate, got %s", toks[0].Kind)
	}

	toks = tokenize(t, "Format / Evaluate")
	if toks[0].Kind != Identifier || toks[2].Kind != Identifier {
		t.Fatalf("expected two plain identifiers around a spaced slash, got %v", kinds(toks))
	}
}

// TestTokenize_MLBracketPropertyValue exercises the ML-property bracket
// handling: an '=' inside PROPERTIES sets in_property_value, and a
// subsequent '[' on the value side pushes ML_BRACKET so embedded commas and
// dots inside the bracket don't need separate handling.
func TestTokenize_MLBracketPropertyValue(t *testing.T) {
	src := `OBJECT Table 1 Test
{
  PROPERTIES
  {
    CaptionML=[ENU=Test Caption;
               DEU=Test Titel];
  }
}
`
	s := New(src, nil)
	toks, warnings := s.Tokenize()
	if len(warnings) > 0 {
		t.Fatalf("unexpected trace warnings: %v", warnings)
	}
	var sawLeftBracket bool
	for _, tok := range toks {
		if tok.Kind == LeftBracket {
			sawLeftBracket = true
		}
	}
	if !sawLeftBracket {
		t.Fatalf("expected a LeftBracket token inside the property value, got %v", kinds(toks))
	}
}

// TestTokenize_FieldDefPropertyMissingSemicolonClearsInPropertyValue covers
// a field row whose last property has no trailing ';' before the closing
// '}': in_property_value must still clear there, or the next field row's
// bracketed type gets misread as an ML-bracket property value.
func TestTokenize_FieldDefPropertyMissingSemicolonClearsInPropertyValue(t *testing.T) {
	src := `OBJECT Table 1 Test
{
  FIELDS
  {
    { 1   ;   ;Name        ;Code20       ;
                                           CaptionML=ENU=No Trailing Semicolon}
    { 2   ;   ;Other       ;Code[20]      }
  }
}
`
	var pushedMLBracket bool
	s := New(src, func(ev Event) {
		if ev.Kind == EventContextPush && ev.Mode == MLBracket {
			pushedMLBracket = true
		}
	})
	toks, warnings := s.Tokenize()
	if len(warnings) > 0 {
		t.Fatalf("unexpected trace warnings: %v", warnings)
	}
	if pushedMLBracket {
		t.Fatalf("in_property_value leaked past the field row's closing '}': second row's '[' was pushed as an ML bracket")
	}

	var sawBracketedCodeType bool
	for i, tok := range toks {
		if tok.Kind == CodeType && i+2 < len(toks) && toks[i+1].Kind == LeftBracket {
			sawBracketedCodeType = true
		}
	}
	if !sawBracketedCodeType {
		t.Errorf("expected the second field row's Code[20] to lex as Code_Type followed by '[', got %v", kinds(toks))
	}
}

// TestTokenize_StringEscapeCollapse verifies the '' -> ' escape and that the
// quotes themselves are stripped from Value.
func TestTokenize_StringEscapeCollapse(t *testing.T) {
	toks := tokenize(t, `'it''s a test'`)
	if toks[0].Kind != String {
		t.Fatalf("expected String, got %s", toks[0].Kind)
	}
	if toks[0].Value != "it's a test" {
		t.Errorf("expected escaped value %q, got %q", "it's a test", toks[0].Value)
	}
}

// TestTokenize_UnterminatedStringIsUnknown verifies unterminated string
// literals degrade to Unknown rather than running off the end silently.
func TestTokenize_UnterminatedStringIsUnknown(t *testing.T) {
	toks := tokenize(t, `'never closed`)
	if toks[0].Kind != Unknown {
		t.Fatalf("expected Unknown, got %s", toks[0].Kind)
	}
}

// TestTokenize_FlagChangeEventsEmitted checks that the trace bus reports
// in_property_value flag-change events (§4.4), not just context push/pop and
// token events.
func TestTokenize_FlagChangeEventsEmitted(t *testing.T) {
	src := `OBJECT Table 1 Test
{
  PROPERTIES
  {
    Permissions=TableData 50000=rimd;
  }
}
`
	var sawFlagChange bool
	trace := func(e Event) {
		if e.Kind == EventFlagChange && e.Flag == "in_property_value" {
			sawFlagChange = true
		}
	}
	_, warnings := New(src, trace).Tokenize()
	if len(warnings) > 0 {
		t.Fatalf("unexpected trace warnings: %v", warnings)
	}
	if !sawFlagChange {
		t.Fatal("expected at least one in_property_value flag-change event")
	}
}

// TestTokenize_ContextUnderflowDetected checks that popping past the bottom
// frame sets the sticky underflow flag instead of panicking.
func TestTokenize_ContextUnderflowDetected(t *testing.T) {
	s := New("}}}", nil)
	s.Tokenize()
	state := s.ContextState()
	if !state.ContextUnderflowDetected {
		t.Fatal("expected ContextUnderflowDetected to be true after unmatched closing braces")
	}
}

// TestTokenize_IsIdempotent checks that calling Tokenize twice on the same
// Scanner produces identical token streams, since reset() must fully clear
// scan state between runs.
func TestTokenize_IsIdempotent(t *testing.T) {
	src := `OBJECT Table 1 Test
{
  FIELDS
  {
    { 1   ;   ;Name        ;Text30       }
  }
}
`
	s := New(src, nil)
	first, _ := s.Tokenize()
	second, _ := s.Tokenize()
	if len(first) != len(second) {
		t.Fatalf("token count differs between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("token %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
}

// TestTokenize_EOFAtSourceEnd checks the sentinel EOF token's position.
func TestTokenize_EOFAtSourceEnd(t *testing.T) {
	toks := tokenize(t, "BEGIN END;")
	last := toks[len(toks)-1]
	if last.Kind != EOF {
		t.Fatalf("expected final token to be EOF, got %s", last.Kind)
	}
	if last.Start != 10 || last.End != 10 {
		t.Errorf("expected EOF at offset 10, got [%d:%d]", last.Start, last.End)
	}
}

// TestTokenize_BraceCommentIsTrivia checks that a '{' not in a recognized
// structural position opens a brace comment and produces no token.
func TestTokenize_BraceCommentIsTrivia(t *testing.T) {
	toks := tokenize(t, "BEGIN\n  { a plain comment }\n  x := 1;\nEND;")
	for _, tok := range toks {
		if tok.Kind == LeftBrace || tok.Kind == RightBrace {
			t.Fatalf("expected no structural brace tokens from a brace comment, got %v", kinds(toks))
		}
	}
}

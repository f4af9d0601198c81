package calvalidate_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calfront/calfront/calvalidate"
	"github.com/calfront/calfront/lexer"
)

func tokenize(t *testing.T, src string) []lexer.Token {
	t.Helper()
	toks, warnings := lexer.New(src, nil).Tokenize()
	require.Empty(t, warnings)
	return toks
}

func TestValidate_WellFormedObject(t *testing.T) {
	src := `OBJECT Table 50000 Item
{
  PROPERTIES
  {
    OnRun=BEGIN END;
  }
  FIELDS
  {
    { 1 ; ; No. ; Code[20] }
  }
  CODE
  {
    BEGIN
    END.
  }
}`
	toks := tokenize(t, src)
	result := calvalidate.Validate(src, toks)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
	assert.Empty(t, result.Errors)
}

func TestValidate_StringEscapeRoundTrip(t *testing.T) {
	src := `OBJECT Codeunit 1 Foo
{
  CODE
  {
    PROCEDURE P();
    BEGIN
      MESSAGE('it''s fine');
    END;
  }
}`
	toks := tokenize(t, src)
	result := calvalidate.Validate(src, toks)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}

func TestValidate_CorruptedTokenValueIsSanitized(t *testing.T) {
	src := `OBJECT Table 1 X { FIELDS { { 1 ; ; No. ; Code[20] } } }`
	toks := tokenize(t, src)

	// Corrupt one identifier token's Value to simulate a proprietary leak.
	for i, tok := range toks {
		if tok.Kind == lexer.Identifier {
			toks[i].Value = "PROPRIETARY_X"
			break
		}
	}

	result := calvalidate.Validate(src, toks)
	assert.False(t, result.Valid)
	for _, msg := range append(append([]string{}, result.Errors...), result.Warnings...) {
		assert.NotContains(t, msg, "PROPRIETARY_X")
	}
	found := false
	for _, msg := range result.Errors {
		if strings.Contains(msg, "chars") {
			found = true
		}
	}
	assert.True(t, found, "expected a length-based sanitized message")
}

func TestValidate_BraceCommentCodeWarning(t *testing.T) {
	src := `OBJECT Codeunit 1 Foo
{
  CODE
  {
    PROCEDURE P();
    BEGIN
      { IF TRUE THEN BEGIN END; }
      EXIT;
    END;
  }
}`
	toks := tokenize(t, src)
	result := calvalidate.Validate(src, toks)
	assert.True(t, result.Valid)
	assert.NotEmpty(t, result.Warnings)
	for _, w := range result.Warnings {
		assert.NotContains(t, w, "IF TRUE")
	}
}

func TestValidate_EOFAtSourceLength(t *testing.T) {
	src := `OBJECT Table 1 X {}`
	toks := tokenize(t, src)
	result := calvalidate.Validate(src, toks)
	require.NotEmpty(t, toks)
	last := toks[len(toks)-1]
	assert.True(t, last.IsEOF())
	assert.Equal(t, len([]rune(src)), last.Start)
	assert.Equal(t, len([]rune(src)), last.End)
	assert.True(t, result.Valid, "errors: %v", result.Errors)
}

func TestValidate_DetectsOverlappingSpans(t *testing.T) {
	src := `OBJECT Table 1 X {}`
	toks := tokenize(t, src)
	require.True(t, len(toks) > 2)
	// Force an overlap between token 1 and token 2.
	toks[2].Start = toks[1].Start
	result := calvalidate.Validate(src, toks)
	assert.False(t, result.Valid)
	assert.NotEmpty(t, result.Errors)
}

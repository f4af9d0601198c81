package calerrors_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calfront/calfront/calerrors"
	"github.com/calfront/calfront/lexer"
	"github.com/calfront/calfront/parser"
)

func TestFromAST_BuildsLocationAndContext(t *testing.T) {
	src := "OBJECT Table 1 X\n{\n  CODE\n  {\n    PROCEDURE P();\n    BEGIN\n      IF x IN [1..;] THEN\n      END;\n    END;\n  }\n}\n"
	toks, _ := lexer.New(src, nil).Tokenize()
	_, diags := parser.Parse(toks)
	require.NotEmpty(t, diags)

	out := calerrors.FromAST(diags, "item.txt", src, 1)
	require.NotEmpty(t, out)
	d := out[0]
	assert.Equal(t, "item.txt", d.Location.File)
	assert.True(t, d.Location.Line > 0)
	assert.NotNil(t, d.Context)
}

func TestDiagnostic_FormatForTerminal_NoColorContainsMessage(t *testing.T) {
	d := calerrors.Diagnostic{
		Message:  "Expected } to close CODE section",
		Severity: calerrors.Error,
		Location: calerrors.SourceLocation{File: "f.txt", Line: 3, Column: 5, Length: 1},
	}
	out := d.FormatForTerminal(true)
	assert.Contains(t, out, "Expected } to close CODE section")
	assert.Contains(t, out, "f.txt:3:5")
}

func TestFormatAsJSON_SeparatesErrorsAndWarnings(t *testing.T) {
	diags := []calerrors.Diagnostic{
		{Message: "bad thing", Severity: calerrors.Error, Location: calerrors.SourceLocation{File: "a", Line: 1, Column: 1}},
		{Message: "minor thing", Severity: calerrors.Warning, Location: calerrors.SourceLocation{File: "a", Line: 2, Column: 1}},
	}
	out, err := calerrors.FormatAsJSON(diags)
	require.NoError(t, err)
	assert.True(t, strings.Contains(out, `"status": "error"`))
	assert.True(t, strings.Contains(out, `"error_count": 1`))
	assert.True(t, strings.Contains(out, `"warning_count": 1`))
}

func TestSummarize(t *testing.T) {
	diags := []calerrors.Diagnostic{
		{Severity: calerrors.Error},
		{Severity: calerrors.Error},
		{Severity: calerrors.Warning},
	}
	s := calerrors.Summarize(diags)
	assert.Equal(t, 2, s.ErrorCount)
	assert.Equal(t, 1, s.WarningCount)
	assert.Equal(t, 3, s.TotalCount)
}

package ui_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/calfront/calfront/calerrors"
	"github.com/calfront/calfront/internal/ui"
)

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	tbl := ui.NewTable(&buf, []string{"Kind", "Value"}, true)
	tbl.AddRow("Object", "OBJECT")
	tbl.AddRow("Integer", "1")
	tbl.Render()

	out := buf.String()
	assert.Contains(t, out, "Kind")
	assert.Contains(t, out, "Object")
	assert.Contains(t, out, "Integer")
}

func TestWriteDiagnostics_NoErrors(t *testing.T) {
	var buf bytes.Buffer
	ui.WriteDiagnostics(&buf, nil, true)
	assert.Contains(t, buf.String(), "OK: 0 warning(s)")
}

func TestWriteDiagnostics_WithErrors(t *testing.T) {
	var buf bytes.Buffer
	diags := []calerrors.Diagnostic{
		{Message: "bad", Severity: calerrors.Error, Location: calerrors.SourceLocation{File: "a.txt", Line: 1, Column: 1}},
	}
	ui.WriteDiagnostics(&buf, diags, true)
	assert.Contains(t, buf.String(), "FAILED: 1 error(s)")
}

func TestWriteValidationResult(t *testing.T) {
	var buf bytes.Buffer
	ui.WriteValidationResult(&buf, false, []string{"something broke"}, nil, true)
	assert.Contains(t, buf.String(), "something broke")
	assert.Contains(t, buf.String(), "FAILED")
}

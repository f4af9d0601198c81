package parser

import (
	"strings"
	"testing"

	"github.com/calfront/calfront/ast"
	"github.com/calfront/calfront/lexer"
)

func parseSource(t *testing.T, src string) (*ast.CALDocument, []ast.Diagnostic) {
	t.Helper()
	toks, warnings := lexer.New(src, nil).Tokenize()
	if len(warnings) > 0 {
		t.Fatalf("unexpected lexer trace warnings: %v", warnings)
	}
	return Parse(toks)
}

func hasDiagnosticContaining(diags []ast.Diagnostic, substr string) bool {
	for _, d := range diags {
		if strings.Contains(d.Message, substr) {
			return true
		}
	}
	return false
}

// TestParse_MissingCodeBraceRecovers checks the missing-'}' recovery for a
// CODE section: the parser reports a diagnostic and lets the enclosing
// object-body loop continue rather than running to EOF silently.
func TestParse_MissingCodeBraceRecovers(t *testing.T) {
	src := `OBJECT Table 1 Test
{
  CODE
  {
    PROCEDURE P();
    BEGIN
    END;
`
	doc, diags := parseSource(t, src)
	if doc.Object == nil {
		t.Fatal("expected a parsed object despite the missing brace")
	}
	if !hasDiagnosticContaining(diags, "Expected } to close CODE section") {
		t.Errorf("expected a missing-brace diagnostic, got %v", diags)
	}
}

// TestParse_EmptyControlFlowBody checks that "IF TRUE THEN END;" yields an
// EmptyStmt then-arm with no diagnostic.
func TestParse_EmptyControlFlowBody(t *testing.T) {
	src := `OBJECT Codeunit 1 Test
{
  CODE
  {
    PROCEDURE P();
    BEGIN
      IF TRUE THEN END;
  }
}
`
	doc, diags := parseSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	proc := doc.Object.Code.Procedures[0]
	ifStmt, ok := proc.Body[0].(*ast.IfStmt)
	if !ok {
		t.Fatalf("expected an IfStmt, got %T", proc.Body[0])
	}
	if _, ok := ifStmt.Then.(*ast.EmptyStmt); !ok {
		t.Fatalf("expected an EmptyStmt then-arm, got %T", ifStmt.Then)
	}
}

// TestParse_SetLiteralErrors checks the three malformed set-literal shapes
// from the grammar: a bare range with nothing after '..', an empty '..'
// element, and three consecutive dots.
func TestParse_SetLiteralErrors(t *testing.T) {
	tests := []struct {
		name      string
		expr      string
		wantInMsg string
	}{
		{"dangling range", "[1..;]", "expected expression after '..'"},
		{"bare dotdot", "[..]", "expected expression after '..'"},
		{"triple dot", "[1...10]", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := `OBJECT Codeunit 1 Test
{
  CODE
  {
    PROCEDURE P();
    BEGIN
      IF X IN ` + tt.expr + ` THEN END;
    END;
  }
}
`
			_, diags := parseSource(t, src)
			if len(diags) == 0 {
				t.Fatalf("expected at least one diagnostic for %q", tt.expr)
			}
			if tt.wantInMsg != "" && !hasDiagnosticContaining(diags, tt.wantInMsg) {
				t.Errorf("expected a diagnostic containing %q for %q, got %v", tt.wantInMsg, tt.expr, diags)
			}
		})
	}
}

// TestParse_QueryElementsExtraction checks the Query ELEMENTS
// symbol-extraction hook: Column/Filter rows with a name are lifted into
// Code.Variables even though the object declares no CODE section of its own.
func TestParse_QueryElementsExtraction(t *testing.T) {
	src := `OBJECT Query 1 Test
{
  ELEMENTS
  {
    { 1  ;    ;DataItem   ;Customer     }
    { 2  ;1   ;Column     ;Name         }
    { 3  ;1   ;Filter     ;No_Filter    }
  }
}
`
	doc, diags := parseSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	if doc.Object.Code == nil {
		t.Fatal("expected ELEMENTS extraction to synthesize a Code section")
	}
	names := make(map[string]bool)
	for _, v := range doc.Object.Code.Variables {
		names[v.Name] = true
	}
	if !names["Name"] || !names["No_Filter"] {
		t.Errorf("expected Column/Filter names lifted into Code.Variables, got %v", doc.Object.Code.Variables)
	}
	if names["Customer"] {
		t.Errorf("DataItem rows should not be lifted into Code.Variables")
	}
}

// TestParse_FieldGroupRoundTrip checks FIELDGROUPS row parsing, including a
// multi-field comma list.
func TestParse_FieldGroupRoundTrip(t *testing.T) {
	src := `OBJECT Table 1 Test
{
  FIELDGROUPS
  {
    { 1  ;DropDown     ;No.,Name       }
  }
}
`
	doc, diags := parseSource(t, src)
	if len(diags) != 0 {
		t.Fatalf("expected no diagnostics, got %v", diags)
	}
	groups := doc.Object.FieldGroups.Groups
	if len(groups) != 1 {
		t.Fatalf("expected 1 field group, got %d", len(groups))
	}
	fg := groups[0]
	if fg.ID != 1 || fg.Name != "DropDown" {
		t.Errorf("unexpected field group header: %+v", fg)
	}
	if len(fg.Fields) != 2 || fg.Fields[0] != "No." || fg.Fields[1] != "Name" {
		t.Errorf("unexpected field group field list: %v", fg.Fields)
	}
}

// TestParse_NeverPanics feeds a grab-bag of malformed fragments through the
// full pipeline and only checks that Parse returns normally (§4.6: Parse
// never panics, always returns a document plus diagnostics).
func TestParse_NeverPanics(t *testing.T) {
	fragments := []string{
		"",
		"OBJECT",
		"OBJECT Table",
		"OBJECT Table 1",
		"OBJECT Table 1 X {",
		"OBJECT Table 1 X { FIELDS { } CODE { PROCEDURE ( BEGIN",
		"}}}{{{",
		"OBJECT Table 1 X { CODE { PROCEDURE P(); BEGIN CASE X OF 1: ; END; END; } }",
	}
	for _, src := range fragments {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Parse panicked on %q: %v", src, r)
				}
			}()
			toks, _ := lexer.New(src, nil).Tokenize()
			Parse(toks)
		}()
	}
}

// Package ast defines the typed node set produced by the parser: a
// document owns every node in its tree and nodes reference their source
// span by integer offsets rather than token pointers, so the token vector
// that produced them can be discarded once parsing completes.
package ast

import "github.com/calfront/calfront/lexer"

// Span is a half-open [Start, End) range of source offsets, in the same
// units as lexer.Token.Start/End.
type Span struct {
	Start int
	End   int
}

func SpanOf(tok lexer.Token) Span { return Span{Start: tok.Start, End: tok.End} }

func JoinSpan(a, b Span) Span {
	s := a
	if b.End > s.End {
		s.End = b.End
	}
	if b.Start < s.Start && b.Start != 0 {
		s.Start = b.Start
	}
	return s
}

// CALDocument is the arena root: every other node in a parse is reachable
// from here, and Diagnostics is the sibling collection produced alongside
// the tree (§3, §4.6).
type CALDocument struct {
	Object *ObjectDeclaration
	Span   Span
}

// ObjectDeclaration is the single top-level OBJECT node.
type ObjectDeclaration struct {
	Kind       string // Table, Page, Codeunit, Report, Query, XMLport, MenuSuite
	ID         int
	Name       string // quotes stripped
	Properties *PropertiesSection
	Fields     *FieldsSection
	Keys       *KeysSection
	FieldGroups *FieldGroupSection
	Controls   *ControlsSection
	Actions    *ActionsSection
	Elements   *ElementsSection
	Dataset    *ElementsSection
	Code       *CodeSection
	Span       Span
}

type PropertiesSection struct {
	Properties []Property
	Span       Span
}

// Property is a flat Name=Value entry inside an object-level PROPERTIES
// section. Value preserves single-space joining per §4.6.
type Property struct {
	Name  string
	Value string
	Span  Span
}

type FieldsSection struct {
	Fields []*Field
	Span   Span
}

// Field is one row of a FIELDS/ELEMENTS-like section:
// { field_no ; enabled ; name ; type [; props] }.
type Field struct {
	FieldNo    int
	Enabled    bool
	Name       string
	DataType   string
	ArrayDim   string // e.g. "[20]"; empty if none
	Properties []FieldProperty
	Triggers   []Trigger
	Span       Span
}

// FieldProperty is one Name=Value entry inside a field row's property list.
type FieldProperty struct {
	Name  string
	Value string
	Span  Span
}

// Trigger is a code-bearing field property (OnValidate=BEGIN ... END).
type Trigger struct {
	Name string
	Var  []Variable
	Body []Stmt
	Span Span
}

type KeysSection struct {
	Keys []Key
	Span Span
}

type Key struct {
	Fields   []string
	Properties []FieldProperty
	Span     Span
}

type FieldGroupSection struct {
	Groups []FieldGroup
	Span   Span
}

// FieldGroup models `{ id ; name ; comma-separated-field-list }`.
type FieldGroup struct {
	ID     int
	Name   string
	Fields []string
	Span   Span
}

type ControlsSection struct {
	Controls []Control
	Span     Span
}

type Control struct {
	ID         int
	Kind       string
	Name       string
	Properties []FieldProperty
	Span       Span
}

type ActionsSection struct {
	Containers []ActionContainer
	Span       Span
}

type ActionContainer struct {
	Name    string
	Actions []Action
	Span    Span
}

type Action struct {
	ID         int
	Name       string
	Properties []FieldProperty
	Span       Span
}

// ElementsSection covers both Query ELEMENTS and Report DATASET rows: each
// row is { id ; parent ; kind ; name ; ... }.
type ElementsSection struct {
	Elements []Element
	Span     Span
}

type Element struct {
	ID       int
	ParentID int
	Kind     string // Column, Filter, DataItem, ...
	Name     string
	Properties []FieldProperty
	Span     Span
}

type CodeSection struct {
	Procedures []*Procedure
	Variables  []Variable
	Span       Span
}

// Procedure models a global/local procedure or a field/control trigger body.
type Procedure struct {
	Name       string
	IsLocal    bool
	Parameters []Parameter
	Variables  []Variable
	Body       []Stmt
	Span       Span
}

type Parameter struct {
	Name     string
	DataType string
	ByVar    bool
	Span     Span
}

// Variable is a declared local/global variable, and also the node the
// Query/Report element-extraction hook (§4.6) appends into
// ObjectDeclaration.Code.Variables.
type Variable struct {
	Name      string
	DataType  string
	Temporary bool
	AtNumber  int // 0 when absent
	HasAt     bool
	Span      Span
}

// Diagnostic is the parser's uniform error/warning shape (§6).
type Diagnostic struct {
	Message  string
	Token    lexer.Token
	Severity Severity
}

type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	if s == SeverityWarning {
		return "warning"
	}
	return "error"
}

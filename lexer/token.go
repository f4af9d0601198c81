// Package lexer implements the context-aware scanner for NAV/C-AL source
// text: identical lexemes tokenize differently depending on a stack of
// lexical modes (object level, properties, field-definition columns, code
// blocks, multi-language brackets, comments, strings).
package lexer

import "fmt"

// Kind identifies the lexical category of a Token.
type Kind int

const (
	EOF Kind = iota
	Unknown

	// Structural
	LeftBrace
	RightBrace
	LeftBracket
	RightBracket
	LeftParen
	RightParen
	Comma
	Semicolon
	Colon
	DoubleColon
	Dot
	DotDot

	// Operators
	Plus
	Minus
	Multiply
	Divide
	Assign
	DivideAssign
	Equal
	NotEqual
	Less
	LessEqual
	Greater
	GreaterEqual
	And
	Or
	Xor
	Not
	Div
	Mod
	In

	// Section / structural keywords
	Object
	Properties
	ObjectProperties
	Fields
	Keys
	FieldGroups
	Controls
	Actions
	Elements
	Dataset
	RequestPage
	Labels
	Code
	Var
	Temporary
	Local
	Procedure
	Function
	Begin
	End
	If
	Then
	Else
	While
	Do
	Repeat
	Until
	For
	To
	Downto
	With
	Of
	Case
	Exit

	// Object kinds
	Table
	Page
	Codeunit
	Report
	Query
	XMLport
	MenuSuite

	// Data-type keywords
	IntegerType
	DecimalType
	Boolean
	DateType
	TimeType
	DateTimeType
	CodeType
	TextType
	OptionType
	Record
	BigText
	BLOB
	GUID
	TextConst

	// Literals
	Integer
	Decimal
	String
	Date
	Time
	DateTime

	// Identifiers
	Identifier
	QuotedIdentifier

	// Compound
	FormatEvaluate
)

var kindNames = map[Kind]string{
	EOF:              "EOF",
	Unknown:          "Unknown",
	LeftBrace:        "LeftBrace",
	RightBrace:       "RightBrace",
	LeftBracket:      "LeftBracket",
	RightBracket:     "RightBracket",
	LeftParen:        "LeftParen",
	RightParen:       "RightParen",
	Comma:            "Comma",
	Semicolon:        "Semicolon",
	Colon:            "Colon",
	DoubleColon:      "DoubleColon",
	Dot:              "Dot",
	DotDot:           "DotDot",
	Plus:             "Plus",
	Minus:            "Minus",
	Multiply:         "Multiply",
	Divide:           "Divide",
	Assign:           "Assign",
	DivideAssign:     "DivideAssign",
	Equal:            "Equal",
	NotEqual:         "NotEqual",
	Less:             "Less",
	LessEqual:        "LessEqual",
	Greater:          "Greater",
	GreaterEqual:     "GreaterEqual",
	And:              "And",
	Or:               "Or",
	Xor:              "Xor",
	Not:              "Not",
	Div:              "Div",
	Mod:              "Mod",
	In:               "In",
	Object:           "Object",
	Properties:       "Properties",
	ObjectProperties: "ObjectProperties",
	Fields:           "Fields",
	Keys:             "Keys",
	FieldGroups:      "FieldGroups",
	Controls:         "Controls",
	Actions:          "Actions",
	Elements:         "Elements",
	Dataset:          "Dataset",
	RequestPage:      "RequestPage",
	Labels:           "Labels",
	Code:             "Code",
	Var:              "Var",
	Temporary:        "Temporary",
	Local:            "Local",
	Procedure:        "Procedure",
	Function:         "Function",
	Begin:            "Begin",
	End:              "End",
	If:               "If",
	Then:             "Then",
	Else:             "Else",
	While:            "While",
	Do:               "Do",
	Repeat:           "Repeat",
	Until:            "Until",
	For:              "For",
	To:               "To",
	Downto:           "Downto",
	With:             "With",
	Of:               "Of",
	Case:             "Case",
	Exit:             "Exit",
	Table:            "Table",
	Page:             "Page",
	Codeunit:         "Codeunit",
	Report:           "Report",
	Query:            "Query",
	XMLport:          "XMLport",
	MenuSuite:        "MenuSuite",
	IntegerType:      "Integer_Type",
	DecimalType:      "Decimal_Type",
	Boolean:          "Boolean",
	DateType:         "Date_Type",
	TimeType:         "Time_Type",
	DateTimeType:     "DateTime_Type",
	CodeType:         "Code_Type",
	TextType:         "Text_Type",
	OptionType:       "Option_Type",
	Record:           "Record",
	BigText:          "BigText",
	BLOB:             "BLOB",
	GUID:             "GUID",
	TextConst:        "TextConst",
	Integer:          "Integer",
	Decimal:          "Decimal",
	String:           "String",
	Date:             "Date",
	Time:             "Time",
	DateTime:         "DateTime",
	Identifier:       "Identifier",
	QuotedIdentifier: "QuotedIdentifier",
	FormatEvaluate:   "FormatEvaluate",
}

// String renders the kind's public discriminator name, matching §6 of the
// token kind set.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Token is an immutable lexeme produced by the Scanner. Value is the
// canonical text of the lexeme: for every kind except String and
// QuotedIdentifier, source[Start:End] == Value exactly, preserving case.
// String/QuotedIdentifier strip their surrounding quotes; String additionally
// collapses the '' escape to a single '.
type Token struct {
	Kind   Kind
	Value  string
	Line   int // 1-based
	Column int // 1-based, counted in characters on Line
	Start  int // rune (code point) offset into the source, inclusive
	End    int // rune (code point) offset into the source, exclusive
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) [%d:%d]", t.Kind, t.Value, t.Line, t.Column)
}

// IsEOF reports whether t is the sentinel end-of-file token.
func (t Token) IsEOF() bool { return t.Kind == EOF }

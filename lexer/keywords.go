package lexer

import (
	"golang.org/x/text/cases"
)

// fold is the single case-folding function used by every keyword/type/section
// lookup in the scanner, so the disambiguation rules in §4.3 stay auditable
// against one normalization rule instead of scattered ToUpper calls.
var fold = cases.Fold()

// keywords maps the case-folded spelling of a reserved word to its
// provisional Kind. Several entries are later rewritten by the
// disambiguator in disambiguate.go based on surrounding context (Code,
// Date, Time, Boolean all have both a type sense and an identifier sense).
var keywords = map[string]Kind{
	"object":      Object,
	"properties":  Properties,
	"fields":      Fields,
	"keys":        Keys,
	"fieldgroups": FieldGroups,
	"controls":    Controls,
	"actions":     Actions,
	"elements":    Elements,
	"dataset":     Dataset,
	"requestpage": RequestPage,
	"labels":      Labels,
	"code":        Code,
	"var":         Var,
	"temporary":   Temporary,
	"local":       Local,
	"procedure":   Procedure,
	"function":    Function,
	"begin":       Begin,
	"end":         End,
	"if":          If,
	"then":        Then,
	"else":        Else,
	"while":       While,
	"do":          Do,
	"repeat":      Repeat,
	"until":       Until,
	"for":         For,
	"to":          To,
	"downto":      Downto,
	"with":        With,
	"of":          Of,
	"case":        Case,
	"exit":        Exit,

	"table":     Table,
	"page":      Page,
	"codeunit":  Codeunit,
	"report":    Report,
	"query":     Query,
	"xmlport":   XMLport,
	"menusuite": MenuSuite,

	"integer": IntegerType,
	"decimal": DecimalType,
	"boolean": Boolean,
	"date":    DateType,
	"time":    TimeType,
	"datetime":  DateTimeType,
	"text":      TextType,
	"option":    OptionType,
	"record":    Record,
	"bigtext":   BigText,
	"blob":      BLOB,
	"guid":      GUID,
	"textconst": TextConst,

	"and": And,
	"or":  Or,
	"xor": Xor,
	"not": Not,
	"div": Div,
	"mod": Mod,
	"in":  In,
}

// sectionKeywords is the set of identifiers that open a section when
// followed by '{' at OBJECT_LEVEL scope (§4.2). The parser resynchronizes
// on its own text-based list (parser.sectionNames), not on this set.
var sectionKeywords = map[Kind]bool{
	Properties:  true,
	Fields:      true,
	Keys:        true,
	FieldGroups: true,
	Controls:    true,
	Actions:     true,
	Elements:    true,
	Dataset:     true,
	RequestPage: true,
	Labels:      true,
	Code:        true,
}

// objectKinds is the set of identifiers valid immediately after OBJECT.
var objectKinds = map[Kind]bool{
	Table:     true,
	Page:      true,
	Codeunit:  true,
	Report:    true,
	Query:     true,
	XMLport:   true,
	MenuSuite: true,
}

// lookupKeyword resolves a raw identifier spelling to its provisional kind.
// Case folding happens once here; callers never re-fold.
func lookupKeyword(identifier string) (Kind, bool) {
	k, ok := keywords[fold.String(identifier)]
	return k, ok
}

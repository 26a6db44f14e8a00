package legacy

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// FieldLexer tokenizes a single component field line
var FieldLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "String", Pattern: `"(?:[^"\\]|\\.)*"`},
	{Name: "Int", Pattern: `[-+]?[0-9]+`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// Field is a component field line:
//
//	F n "text" H|V x y size flags hjustify style ["name"]
//
// Fields 0 to 3 are reference, value, footprint and datasheet. User fields
// carry a trailing name.
type Field struct {
	Number      int    `"F" @Int`
	Text        string `@String`
	Orientation string `@("H" | "V")`
	X           int    `@Int`
	Y           int    `@Int`
	Size        int    `@Int`
	Flags       string `@Int`
	HJustify    string `@Ident`
	Style       string `@Ident`
	Name        string `@String?`
}

// Hidden reports whether the field's visibility flag is cleared
func (f Field) Hidden() bool {
	return strings.HasSuffix(f.Flags, "1")
}

var fieldParser = participle.MustBuild[Field](
	participle.Lexer(FieldLexer),
	participle.Elide("Whitespace"),
	participle.Unquote("String"),
)

// ParseField parses one F line
func ParseField(line string) (*Field, error) {
	f, err := fieldParser.ParseString("", line)
	if err != nil {
		return nil, fmt.Errorf("parse field: %w", err)
	}
	return f, nil
}

package ros1msg

import (
	"fmt"
	"strconv"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

/*
Grammar for the type token of a field line. Lines are split into tokens before
this grammar sees them, so it only has to recognize a possibly
package-qualified type name with an optional array suffix:

	int32
	std_msgs/Header
	float64[]
	geometry_msgs/Point[3]
*/

////////////////////////////////////////////////////////////////////////////////

// nolint:gochecknoglobals
var (
	TypeLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Integer", Pattern: `[0-9]+`},
		{Name: "Word", Pattern: `[a-zA-Z0-9\_]+`},
		{Name: "LBracket", Pattern: `\[`},
		{Name: "RBracket", Pattern: `\]`},
		{Name: "Slash", Pattern: `/`},
	})

	TypeParser = participle.MustBuild[ROSType](
		participle.Lexer(TypeLexer),
	)
)

// ROSType is a parsed type token.
type ROSType struct {
	Name  string     `parser:"@(Word ( Slash Word )*)"`
	Array *ArraySpec `parser:"@@?"`
}

// ArraySpec is the bracketed suffix of an array type. Length is empty for
// variable-length arrays.
type ArraySpec struct {
	Open   bool   `parser:"@LBracket"`
	Length string `parser:"@Integer? RBracket"`
}

// FixedLength returns the declared length, or nil for a variable-length array.
func (a ArraySpec) FixedLength() (*uint32, error) {
	if a.Length == "" {
		return nil, nil
	}
	n, err := strconv.ParseUint(a.Length, 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid array length %s: %w", a.Length, err)
	}
	length := uint32(n)
	return &length, nil
}

func parseTypeToken(token string) (*ROSType, error) {
	return TypeParser.ParseString("", token)
}

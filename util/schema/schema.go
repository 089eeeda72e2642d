package schema

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

/*
Package schema contains the field descriptor model produced by message
definition parsers. A descriptor is either a scalar field with a primitive type,
or an array field with element templates, an element type and an optional fixed
length. Composite (record) fields do not appear in the model: parsers splice
their fields into the enclosing list under a dotted name prefix, so a decoder
only ever deals with scalars and arrays.
*/

////////////////////////////////////////////////////////////////////////////////

// PrimitiveType is a scalar wire type. ARRAY and COMPLEX are sentinels that
// never appear in a message definition.
type PrimitiveType int

const (
	INT8 PrimitiveType = iota + 1
	INT16
	INT32
	INT64
	UINT8
	UINT16
	UINT32
	UINT64
	FLOAT32
	FLOAT64
	STRING
	BOOL
	TIME
	DURATION
	CHAR
	BYTE

	// ARRAY is the type reported by an array descriptor.
	ARRAY
	// COMPLEX is the element type of an array of composites.
	COMPLEX
)

var primitiveNames = map[PrimitiveType]string{ // nolint:gochecknoglobals
	INT8:     "int8",
	INT16:    "int16",
	INT32:    "int32",
	INT64:    "int64",
	UINT8:    "uint8",
	UINT16:   "uint16",
	UINT32:   "uint32",
	UINT64:   "uint64",
	FLOAT32:  "float32",
	FLOAT64:  "float64",
	STRING:   "string",
	BOOL:     "bool",
	TIME:     "time",
	DURATION: "duration",
	CHAR:     "char",
	BYTE:     "byte",
	ARRAY:    "array",
	COMPLEX:  "complex",
}

var primitiveTokens = func() map[string]PrimitiveType { // nolint:gochecknoglobals
	m := make(map[string]PrimitiveType, len(primitiveNames))
	for t, name := range primitiveNames {
		if t == ARRAY || t == COMPLEX {
			continue
		}
		m[name] = t
	}
	return m
}()

// ParsePrimitiveType maps a message definition type token to a primitive type.
// The first letter of the token is case-insensitive. The second return value is
// false if the token does not name a primitive.
func ParsePrimitiveType(token string) (PrimitiveType, bool) {
	if token == "" {
		return 0, false
	}
	t, ok := primitiveTokens[strings.ToLower(token[:1])+token[1:]]
	return t, ok
}

// String returns the definition token for the type.
func (p PrimitiveType) String() string {
	if name, ok := primitiveNames[p]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(p))
}

// MarshalJSON renders the type as its definition token.
func (p PrimitiveType) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// UnmarshalJSON parses a type rendered by MarshalJSON.
func (p *PrimitiveType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for t, name := range primitiveNames {
		if name == s {
			*p = t
			return nil
		}
	}
	return fmt.Errorf("unrecognized primitive type: %s", s)
}

// FieldDescriptor describes one named field of a resolved definition.
type FieldDescriptor struct {
	name string
	typ  PrimitiveType

	// Array fields only.
	elements    []FieldDescriptor
	elementType PrimitiveType
	fixedLength *uint32
}

// NewScalarField returns a scalar field descriptor.
func NewScalarField(name string, typ PrimitiveType) FieldDescriptor {
	return FieldDescriptor{name: name, typ: typ}
}

// NewArrayField returns an array field descriptor. A nil fixedLength denotes a
// variable-length array.
func NewArrayField(
	name string,
	elements []FieldDescriptor,
	elementType PrimitiveType,
	fixedLength *uint32,
) FieldDescriptor {
	return FieldDescriptor{
		name:        name,
		typ:         ARRAY,
		elements:    elements,
		elementType: elementType,
		fixedLength: fixedLength,
	}
}

// NewStringField returns the descriptor for a string field: a variable-length
// array of chars.
func NewStringField(name string) FieldDescriptor {
	return NewArrayField(name, []FieldDescriptor{NewScalarField(name, CHAR)}, CHAR, nil)
}

// Length returns a pointer to n, for use as an array's fixed length.
func Length(n uint32) *uint32 {
	return &n
}

// Name returns the name of the field.
func (f FieldDescriptor) Name() string {
	return f.name
}

// Type returns the primitive type of a scalar field, or ARRAY.
func (f FieldDescriptor) Type() PrimitiveType {
	return f.typ
}

// IsArray reports whether the field is an array.
func (f FieldDescriptor) IsArray() bool {
	return f.typ == ARRAY
}

// Elements returns the element templates of an array field. For an array of a
// primitive type there is exactly one template; for an array of a composite
// there is one per field of the composite.
func (f FieldDescriptor) Elements() []FieldDescriptor {
	return f.elements
}

// ElementType returns the element type of an array field.
func (f FieldDescriptor) ElementType() PrimitiveType {
	return f.elementType
}

// FixedLength returns the declared length of a fixed-length array. The second
// return value is false for scalars and variable-length arrays.
func (f FieldDescriptor) FixedLength() (uint32, bool) {
	if f.fixedLength == nil {
		return 0, false
	}
	return *f.fixedLength, true
}

// WithName returns a copy of the field with a different name. Element
// templates are shared with the receiver.
func (f FieldDescriptor) WithName(name string) FieldDescriptor {
	f.name = name
	return f
}

func (f FieldDescriptor) String() string {
	if !f.IsArray() {
		return fmt.Sprintf("%s: %s", f.name, f.typ)
	}
	if n, ok := f.FixedLength(); ok {
		return fmt.Sprintf("%s: %s[%d]", f.name, f.elementType, n)
	}
	return fmt.Sprintf("%s: %s[]", f.name, f.elementType)
}

type fieldJSON struct {
	Name        string            `json:"name"`
	Type        PrimitiveType     `json:"type"`
	ElementType *PrimitiveType    `json:"elementType,omitempty"`
	FixedLength *uint32           `json:"fixedLength,omitempty"`
	Elements    []FieldDescriptor `json:"elements,omitempty"`
}

// MarshalJSON renders the descriptor tree.
func (f FieldDescriptor) MarshalJSON() ([]byte, error) {
	out := fieldJSON{Name: f.name, Type: f.typ}
	if f.IsArray() {
		elementType := f.elementType
		out.ElementType = &elementType
		out.FixedLength = f.fixedLength
		out.Elements = f.elements
	}
	return json.Marshal(out)
}

// UnmarshalJSON parses a descriptor rendered by MarshalJSON.
func (f *FieldDescriptor) UnmarshalJSON(data []byte) error {
	var in fieldJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	if in.Type != ARRAY {
		*f = NewScalarField(in.Name, in.Type)
		return nil
	}
	if in.ElementType == nil {
		return fmt.Errorf("array field %s has no element type", in.Name)
	}
	*f = NewArrayField(in.Name, in.Elements, *in.ElementType, in.FixedLength)
	return nil
}

// Equal reports whether two descriptor lists are identical in order, names,
// kinds and element structure.
func Equal(a, b []FieldDescriptor) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Equal reports whether two descriptors are identical.
func (f FieldDescriptor) Equal(other FieldDescriptor) bool {
	if f.name != other.name || f.typ != other.typ || f.elementType != other.elementType {
		return false
	}
	n, fixed := f.FixedLength()
	m, otherFixed := other.FixedLength()
	if fixed != otherFixed || n != m {
		return false
	}
	return Equal(f.elements, other.elements)
}

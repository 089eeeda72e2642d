package ros1msg

import (
	"fmt"
	"slices"
	"strings"

	"github.com/wkalt/msgdef/util/schema"
	"golang.org/x/text/encoding/charmap"
)

/*
This file contains ParseMessageDefinition, which resolves a []byte-valued ROS1
message definition into the flat descriptor list a decoder walks.

A message definition is the main definition followed by any number of
sub-definitions, each introduced by a line of 80 '=' characters and a header
line such as "MSG: std_msgs/Header". The tooling emits dependencies after
their dependents, so a sub-definition may only reference sub-definitions
declared after it. Resolving them last-first lets a single pass build a lookup
table in which every reference is already resolved. The
main definition is resolved last, against the complete table.

References to composite types do not produce a field of their own. The fields
of the referenced definition are spliced into the referencing definition with
the referencing field's name as a dotted prefix. Arrays of composites produce
one array field whose element templates are the prefixed fields.
*/

////////////////////////////////////////////////////////////////////////////////

var separator = strings.Repeat("=", 80) + "\n" // nolint:gochecknoglobals

// ParseMessageDefinition parses a ROS1 message definition and returns the
// fields of the main definition in declaration order.
func ParseMessageDefinition(data []byte, opts ...Option) ([]schema.FieldDescriptor, error) {
	c := config{}
	for _, opt := range opts {
		opt(&c)
	}
	text, err := decodeText(data)
	if err != nil {
		return nil, err
	}
	blocks := strings.Split(text, separator)
	table := newDefinitionTable()
	for i := len(blocks) - 1; i > 0; i-- {
		name, body, err := splitHeader(blocks[i])
		if err != nil {
			return nil, err
		}
		fields, err := parseDefinition(body, PackageOf(name), table)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
		}
		if err := table.insert(name, fields); err != nil {
			return nil, err
		}
	}
	fields, err := parseDefinition(blocks[0], c.pkg, table)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve main definition: %w", err)
	}
	return fields, nil
}

// decodeText decodes the definition as ISO-8859-1. Definitions are ASCII in
// practice; the single-byte decoding keeps stray high bytes in comments from
// producing invalid UTF-8.
func decodeText(data []byte) (string, error) {
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode message definition: %w", err)
	}
	return strings.ReplaceAll(string(decoded), "\r\n", "\n"), nil
}

// splitHeader returns the name declared on the first line of a sub-definition
// block, and the remaining lines.
func splitHeader(block string) (string, string, error) {
	header, body, _ := strings.Cut(block, "\n")
	tokens := strings.Fields(header)
	if len(tokens) < 2 {
		return "", "", MalformedDefinitionError{
			Reason: fmt.Sprintf("sub-definition header %q does not declare a name", header),
		}
	}
	return tokens[len(tokens)-1], body, nil
}

// PackageOf returns the package portion of a qualified type name, or the empty
// string for an unqualified name.
func PackageOf(name string) string {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		return name[:i]
	}
	return ""
}

// definitionTable maps sub-definition names to their resolved fields. Each
// qualified name is also reachable by its trailing segment. Entries are never
// replaced once inserted.
type definitionTable struct {
	fields map[string][]schema.FieldDescriptor
}

func newDefinitionTable() *definitionTable {
	return &definitionTable{
		fields: make(map[string][]schema.FieldDescriptor),
	}
}

// insert adds a resolved sub-definition. A name that is already present is an
// error, whether it was declared or claimed as an alias. The unqualified alias
// goes to the first definition to claim it, which is the last one declared.
func (t *definitionTable) insert(name string, fields []schema.FieldDescriptor) error {
	if _, ok := t.fields[name]; ok {
		return MalformedDefinitionError{Reason: "duplicate sub-definition " + name}
	}
	t.fields[name] = fields
	if i := strings.LastIndex(name, "/"); i >= 0 {
		short := name[i+1:]
		if _, ok := t.fields[short]; !ok {
			t.fields[short] = slices.Clone(fields)
		}
	}
	return nil
}

// lookup resolves a composite type token. Unqualified names are tried in the
// referencing definition's package first.
func (t *definitionTable) lookup(pkg string, name string) ([]schema.FieldDescriptor, bool) {
	if pkg != "" && !strings.Contains(name, "/") {
		if fields, ok := t.fields[pkg+"/"+name]; ok {
			return fields, true
		}
	}
	fields, ok := t.fields[name]
	return fields, ok
}

// parseDefinition resolves the field lines of one definition body.
func parseDefinition(text string, pkg string, table *definitionTable) ([]schema.FieldDescriptor, error) {
	fields := []schema.FieldDescriptor{}
	for _, line := range strings.Split(text, "\n") {
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.ContainsRune(line, '=') {
			continue // skip constants
		}
		tokens := strings.Fields(line)
		if len(tokens) != 2 {
			continue
		}
		resolved, err := resolveField(tokens[0], tokens[1], pkg, table)
		if err != nil {
			return nil, err
		}
		fields = append(fields, resolved...)
	}
	return fields, nil
}

// resolveField returns the descriptors contributed by one field line. This is
// a single descriptor unless the field is a bare composite reference.
func resolveField(
	typeToken string,
	name string,
	pkg string,
	table *definitionTable,
) ([]schema.FieldDescriptor, error) {
	if primitive, ok := schema.ParsePrimitiveType(typeToken); ok {
		return []schema.FieldDescriptor{primitiveField(name, primitive)}, nil
	}
	t, err := parseTypeToken(typeToken)
	if err != nil {
		return nil, MalformedDefinitionError{
			Reason: fmt.Sprintf("invalid type %q for field %s: %s", typeToken, name, err),
		}
	}
	if t.Array == nil {
		subfields, ok := table.lookup(pkg, t.Name)
		if !ok {
			return nil, UnresolvedTypeError{Type: t.Name, Field: name}
		}
		return prefixFields(name, subfields), nil
	}
	length, err := t.Array.FixedLength()
	if err != nil {
		return nil, MalformedDefinitionError{
			Reason: fmt.Sprintf("invalid type %q for field %s: %s", typeToken, name, err),
		}
	}
	if primitive, ok := schema.ParsePrimitiveType(t.Name); ok {
		element := primitiveField(name, primitive)
		return []schema.FieldDescriptor{
			schema.NewArrayField(name, []schema.FieldDescriptor{element}, primitive, length),
		}, nil
	}
	subfields, ok := table.lookup(pkg, t.Name)
	if !ok {
		return nil, UnresolvedTypeError{Type: t.Name, Field: name}
	}
	return []schema.FieldDescriptor{
		schema.NewArrayField(name, prefixFields(name, subfields), schema.COMPLEX, length),
	}, nil
}

// primitiveField returns the descriptor for a field of a primitive type.
// Strings are variable-length arrays of chars.
func primitiveField(name string, primitive schema.PrimitiveType) schema.FieldDescriptor {
	if primitive == schema.STRING {
		return schema.NewStringField(name)
	}
	return schema.NewScalarField(name, primitive)
}

// prefixFields returns copies of fields with names prefixed by "<prefix>.".
func prefixFields(prefix string, fields []schema.FieldDescriptor) []schema.FieldDescriptor {
	result := make([]schema.FieldDescriptor, len(fields))
	for i, field := range fields {
		result[i] = field.WithName(prefix + "." + field.Name())
	}
	return result
}

package schema

import "math"

/*
Read-only inspection of descriptor trees. Nothing here touches message bytes;
these functions answer structural questions a decoder or a user might ask
before decoding, such as whether a message has a static wire size.
*/

////////////////////////////////////////////////////////////////////////////////

// PrimitiveSize returns the wire size in bytes of a primitive type, or zero if
// the type has no static size.
func PrimitiveSize(p PrimitiveType) int {
	switch p {
	case INT8, UINT8, BOOL, CHAR, BYTE:
		return 1
	case INT16, UINT16:
		return 2
	case INT32, UINT32, FLOAT32:
		return 4
	case INT64, UINT64, FLOAT64, TIME, DURATION:
		return 8
	default:
		return 0
	}
}

// FixedSize returns the total wire size of the fields. The second return value
// is false if any field is variable-length or the size does not fit in an int,
// in which case the size is zero.
func FixedSize(fields []FieldDescriptor) (int, bool) {
	size := 0
	for _, f := range fields {
		n, ok := f.FixedSize()
		if !ok || n > math.MaxInt-size {
			return 0, false
		}
		size += n
	}
	return size, true
}

// FixedSize returns the wire size of the field, if it has one.
func (f FieldDescriptor) FixedSize() (int, bool) {
	if !f.IsArray() {
		n := PrimitiveSize(f.typ)
		return n, n > 0
	}
	length, ok := f.FixedLength()
	if !ok {
		return 0, false
	}
	// The element templates of a composite array together make up one
	// element, so summing them works for both kinds of array.
	item, ok := FixedSize(f.elements)
	if !ok {
		return 0, false
	}
	if item > 0 && uint64(length) > uint64(math.MaxInt/item) {
		return 0, false
	}
	return int(length) * item, true
}

// Walk visits each field and each element template depth-first, parents before
// children. The path holds the names of the enclosing array fields followed by
// the field's own name. If fn returns an error the walk stops and returns it.
func Walk(fields []FieldDescriptor, fn func(path []string, f FieldDescriptor) error) error {
	return walk(nil, fields, fn)
}

func walk(prefix []string, fields []FieldDescriptor, fn func([]string, FieldDescriptor) error) error {
	for _, f := range fields {
		path := make([]string, len(prefix), len(prefix)+1)
		copy(path, prefix)
		path = append(path, f.name)
		if err := fn(path, f); err != nil {
			return err
		}
		if f.IsArray() {
			if err := walk(path, f.elements, fn); err != nil {
				return err
			}
		}
	}
	return nil
}

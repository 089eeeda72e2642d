package ros1msg

import "fmt"

// UnresolvedTypeError is returned when a field's type is neither a primitive
// nor a sub-definition declared after the definition that references it.
type UnresolvedTypeError struct {
	Type  string
	Field string
}

func (e UnresolvedTypeError) Error() string {
	return fmt.Sprintf("unresolved type %s for field %s", e.Type, e.Field)
}

// Detail explains the failure for API clients.
func (e UnresolvedTypeError) Detail() string {
	return fmt.Sprintf(
		"%s is not a primitive type and no sub-definition named %s appears after the definition that references it",
		e.Type, e.Type,
	)
}

func (e UnresolvedTypeError) Is(target error) bool {
	_, ok := target.(UnresolvedTypeError)
	return ok
}

// MalformedDefinitionError is returned when the message definition text does
// not have the expected structure.
type MalformedDefinitionError struct {
	Reason string
}

func (e MalformedDefinitionError) Error() string {
	return "malformed message definition: " + e.Reason
}

func (e MalformedDefinitionError) Is(target error) bool {
	_, ok := target.(MalformedDefinitionError)
	return ok
}

package util

import "fmt"

// Named pairs a value with a name, such as a sub-definition body with the
// type name that declares it.
type Named[T any] struct {
	Name  string `json:"name"`
	Value T      `json:"data"`
}

func (n Named[T]) String() string {
	return fmt.Sprintf("%s: %v", n.Name, n.Value)
}

// NewNamed returns a new Named value.
func NewNamed[T any](name string, data T) Named[T] {
	return Named[T]{Name: name, Value: data}
}

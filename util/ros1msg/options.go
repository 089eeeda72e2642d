package ros1msg

/*
Options for message definition parsing.
*/

////////////////////////////////////////////////////////////////////////////////

type config struct {
	pkg string
}

// Option is a function that modifies the parser configuration.
type Option func(*config)

// WithPackage sets the package of the main definition. Unqualified type names
// in the main definition are looked up in this package before falling back to
// the unqualified sub-definition names.
func WithPackage(pkg string) Option {
	return func(c *config) {
		c.pkg = pkg
	}
}

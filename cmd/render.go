package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/wkalt/msgdef/util"
	"github.com/wkalt/msgdef/util/schema"
)

// nolint:gochecknoglobals
var (
	nameColor    = color.New(color.FgCyan)
	arrayColor   = color.New(color.FgYellow)
	complexColor = color.New(color.FgMagenta)
	headerColor  = color.New(color.FgGreen, color.Bold)
	staticColor  = color.New(color.FgHiBlue)
)

// printFields writes a descriptor tree, one field per line, with element
// templates indented under their array.
func printFields(w io.Writer, fields []schema.FieldDescriptor, indent int) {
	space := strings.Repeat("  ", indent)
	for _, f := range fields {
		fmt.Fprint(w, space)
		nameColor.Fprint(w, f.Name())
		fmt.Fprint(w, " ")
		if !f.IsArray() {
			fmt.Fprintln(w, f.Type())
			continue
		}
		c := util.When(f.ElementType() == schema.COMPLEX, complexColor, arrayColor)
		if n, ok := f.FixedLength(); ok {
			c.Fprintf(w, "%s[%d]\n", f.ElementType(), n)
		} else {
			c.Fprintf(w, "%s[]\n", f.ElementType())
		}
		printFields(w, f.Elements(), indent+1)
	}
}

// sizeSummary describes the wire size of a resolved definition.
func sizeSummary(size int, static bool) string {
	if !static {
		return "variable size"
	}
	return "static, " + util.HumanBytes(uint64(size))
}

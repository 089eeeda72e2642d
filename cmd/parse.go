package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/wkalt/msgdef/util/log"
	"github.com/wkalt/msgdef/util/ros1msg"
	"github.com/wkalt/msgdef/util/schema"
)

// nolint:gochecknoglobals
var (
	parseJSON    bool
	parsePackage string
)

type parsedFile struct {
	File      string                   `json:"file"`
	Fields    []schema.FieldDescriptor `json:"fields"`
	FixedSize int                      `json:"fixedSize"`
	Static    bool                     `json:"static"`
}

// expandArgs expands each argument as a doublestar pattern. Arguments that
// match nothing are kept as literal paths so a missing file is reported when
// it is opened.
func expandArgs(args []string) ([]string, error) {
	paths := []string{}
	for _, arg := range args {
		matches, err := doublestar.FilepathGlob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}
		if len(matches) == 0 {
			paths = append(paths, arg)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths, nil
}

func parseFile(path string, pkg string) (parsedFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return parsedFile{}, fmt.Errorf("%s: no such file", path)
		}
		return parsedFile{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	fields, err := ros1msg.ParseMessageDefinition(data, ros1msg.WithPackage(pkg))
	if err != nil {
		return parsedFile{}, fmt.Errorf("%s: %w", path, err)
	}
	size, static := schema.FixedSize(fields)
	return parsedFile{File: path, Fields: fields, FixedSize: size, Static: static}, nil
}

func runParse(ctx context.Context, w io.Writer, args []string, pkg string, asJSON bool) error {
	paths, err := expandArgs(args)
	if err != nil {
		return err
	}
	results := make([]parsedFile, 0, len(paths))
	for _, path := range paths {
		log.Debugf(ctx, "parsing %s", path)
		result, err := parseFile(path, pkg)
		if err != nil {
			return err
		}
		results = append(results, result)
	}
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		return nil
	}
	for _, result := range results {
		headerColor.Fprintf(w, "%s", result.File)
		fmt.Fprintf(w, " (%d fields, ", len(result.Fields))
		staticColor.Fprint(w, sizeSummary(result.FixedSize, result.Static))
		fmt.Fprintln(w, ")")
		printFields(w, result.Fields, 1)
	}
	return nil
}

var parseCmd = &cobra.Command{ // nolint:gochecknoglobals
	Use:   "parse [file|pattern]...",
	Short: "Resolve message definition files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		checkErr(runParse(cmd.Context(), os.Stdout, args, parsePackage, parseJSON))
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().BoolVar(&parseJSON, "json", false, "Print JSON")
	parseCmd.Flags().StringVarP(&parsePackage, "package", "p", "", "Package of the main definition")
}

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"github.com/wkalt/msgdef/msgdefs"
	"github.com/wkalt/msgdef/storage"
	"github.com/wkalt/msgdef/util"
)

// nolint:gochecknoglobals
var (
	inspectJSON    bool
	inspectWorkers int
)

const s3Scheme = "s3://"

// openRecording opens a local recording, or an s3://<key> recording through
// the configured storage provider.
func openRecording(ctx context.Context, target string, store func() (storage.Provider, error)) (io.ReadSeekCloser, error) {
	if key, ok := strings.CutPrefix(target, s3Scheme); ok {
		provider, err := store()
		if err != nil {
			return nil, err
		}
		rsc, err := provider.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s from %s: %w", key, provider, err)
		}
		return rsc, nil
	}
	f, err := os.Open(target)
	if err != nil {
		return nil, fmt.Errorf("failed to open recording: %w", err)
	}
	return f, nil
}

func runInspect(ctx context.Context, w io.Writer, rs io.ReadSeeker, workers int, asJSON bool) error {
	resolver := msgdefs.NewResolver(msgdefs.WithWorkers(workers))
	results, err := resolver.ResolveRecording(ctx, rs)
	if err != nil {
		return err
	}
	if asJSON {
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(results); err != nil {
			return fmt.Errorf("failed to encode results: %w", err)
		}
		return nil
	}
	types := util.GroupBy(results, func(r msgdefs.Resolved) string { return r.Type })
	fmt.Fprintf(w, "%d connections, %d message types\n", len(results), len(types))
	for _, result := range results {
		headerColor.Fprintf(w, "%s", result.Topic)
		fmt.Fprintf(w, " %s (%d fields, ", result.Type, len(result.Fields))
		staticColor.Fprint(w, sizeSummary(result.FixedSize, result.Static))
		fmt.Fprintln(w, ")")
		printFields(w, result.Fields, 1)
	}
	return nil
}

var inspectCmd = &cobra.Command{ // nolint:gochecknoglobals
	Use:   "inspect [recording]",
	Short: "Resolve the message definitions of a bag or MCAP file",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		rsc, err := openRecording(ctx, args[0], newStorageProvider)
		checkErr(err)
		defer rsc.Close()
		checkErr(runInspect(ctx, os.Stdout, rsc, inspectWorkers, inspectJSON))
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "Print JSON")
	inspectCmd.Flags().IntVarP(&inspectWorkers, "workers", "w", 4, "Definitions to resolve concurrently")
}

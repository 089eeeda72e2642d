package cmd

import (
	"github.com/spf13/cobra"
	"github.com/wkalt/msgdef/service"
)

// nolint:gochecknoglobals
var (
	servePort      int
	serveWorkers   int
	serveCacheSize int64
)

var serveCmd = &cobra.Command{ // nolint:gochecknoglobals
	Use:   "serve",
	Short: "Start the message definition service",
	Run: func(cmd *cobra.Command, _ []string) {
		store, err := newStorageProvider()
		checkErr(err)
		svc := service.NewService()
		if err := svc.Start(cmd.Context(),
			service.WithPort(servePort),
			service.WithWorkers(serveWorkers),
			service.WithCacheSize(serveCacheSize),
			service.WithStorageProvider(store),
		); err != nil {
			bailf("Shutdown error: %s", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8089, "Port to listen on")
	serveCmd.Flags().IntVarP(&serveWorkers, "workers", "w", 4, "Definitions to resolve concurrently per recording")
	serveCmd.Flags().Int64VarP(&serveCacheSize, "cache-size", "c", 1024, "Number of resolved definitions to cache")
}

package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/wkalt/msgdef/storage"
	"github.com/wkalt/msgdef/util/log"
)

// nolint:gochecknoglobals
var (
	verbose bool
	logJSON bool

	// Directory storage provider options
	dataDir string

	// S3 storage provider options
	s3Endpoint  string
	s3AccessKey string
	s3SecretKey string
	s3Bucket    string
	s3UseTLS    bool
)

var rootCmd = &cobra.Command{ // nolint:gochecknoglobals
	Use:   "msgdef",
	Short: "Resolve ROS1 message definitions",
	PersistentPreRun: func(*cobra.Command, []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		log.SetDefault(os.Stderr, level, logJSON)
	},
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func bailf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func checkErr(err error) {
	if err != nil {
		bailf("error: %v", err)
	}
}

func s3Requested() bool {
	return s3Endpoint != "" || s3AccessKey != "" || s3SecretKey != "" || s3Bucket != ""
}

// newStorageProvider builds the provider selected by the persistent storage
// flags. Exactly one of --data-dir or the S3 options must be set.
func newStorageProvider() (storage.Provider, error) {
	if dataDir != "" && s3Requested() {
		return nil, errors.New("cannot specify both --data-dir and S3 options")
	}
	if dataDir != "" {
		return storage.NewDirectoryStore(dataDir), nil
	}
	if !s3Requested() {
		return nil, errors.New("must specify either --data-dir or S3 options")
	}
	if s3Bucket == "" {
		return nil, errors.New("--s3-bucket is required")
	}
	mc, err := storage.NewMinioClient(s3Endpoint, s3AccessKey, s3SecretKey, s3UseTLS)
	if err != nil {
		return nil, err
	}
	return storage.NewS3Store(mc, s3Bucket), nil
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	flags.BoolVar(&logJSON, "log-json", false, "Log as JSON")
	flags.StringVarP(&dataDir, "data-dir", "d", "", "Data directory (for directory storage)")
	flags.StringVar(&s3Endpoint, "s3-endpoint", "", "S3 endpoint (for S3 storage)")
	flags.StringVar(&s3AccessKey, "s3-access-key", "", "S3 access key ID (for S3 storage)")
	flags.StringVar(&s3SecretKey, "s3-secret-key", "", "S3 secret key (for S3 storage)")
	flags.StringVar(&s3Bucket, "s3-bucket", "", "S3 bucket (for S3 storage)")
	flags.BoolVar(&s3UseTLS, "s3-secure", false, "Use TLS (for S3 storage)")
}

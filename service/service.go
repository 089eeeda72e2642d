package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/wkalt/msgdef/msgdefs"
	"github.com/wkalt/msgdef/routes"
	"github.com/wkalt/msgdef/util/log"
)

/*
This file is the main entrypoint for service startup.
*/

////////////////////////////////////////////////////////////////////////////////

const shutdownTimeout = 10 * time.Second

// Service is the message definition HTTP service.
type Service struct{}

// NewService creates a new Service.
func NewService() *Service {
	return &Service{}
}

// Start serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts the server down gracefully.
func (s *Service) Start(ctx context.Context, options ...Option) error {
	opts, err := readOpts(options...)
	if err != nil {
		return fmt.Errorf("failed to read options: %w", err)
	}
	resolver := msgdefs.NewResolver(
		msgdefs.WithWorkers(opts.Workers),
		msgdefs.WithCacheSize(opts.CacheSize),
	)
	r := routes.MakeRoutes(opts.StorageProvider, resolver)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", opts.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signals)

	startErr := make(chan error, 1)
	go func() {
		log.Infow(ctx, "Starting server",
			"port", opts.Port, "workers", opts.Workers, "cache", opts.CacheSize, "storage", opts.StorageProvider)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			startErr <- err
		}
	}()

	select {
	case sig := <-signals:
		log.Warnf(ctx, "Received %s", sig)
	case <-ctx.Done():
		log.Infof(ctx, "Context cancelled")
	case err := <-startErr:
		log.Errorf(ctx, "Server failed: %s", err)
		return fmt.Errorf("failed to start server: %w", err)
	}

	log.Infof(ctx, "Allowing %s for existing connections to close", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	stats := resolver.Stats()
	log.Infow(ctx, "Server stopped", "cached", stats.Entries, "hits", stats.Hits, "misses", stats.Misses)
	return nil
}

func readOpts(opts ...Option) (*Options, error) {
	options := Options{
		Port:      8089,
		Workers:   4,
		CacheSize: 1024,
	}
	for _, opt := range opts {
		opt(&options)
	}
	if options.StorageProvider == nil {
		return nil, errors.New("storage provider is required")
	}
	return &options, nil
}

package service

import (
	"github.com/wkalt/msgdef/storage"
)

// Option is a functional option for the service.
type Option func(*Options)

// Options contains options for the service.
type Options struct {
	Port            int
	Workers         int
	CacheSize       int64
	StorageProvider storage.Provider
}

// WithPort sets the port to listen on.
func WithPort(port int) Option {
	return func(opts *Options) {
		opts.Port = port
	}
}

// WithWorkers sets the number of definitions resolved concurrently per
// recording.
func WithWorkers(workers int) Option {
	return func(opts *Options) {
		opts.Workers = workers
	}
}

// WithCacheSize sets the number of resolved definitions to cache.
func WithCacheSize(size int64) Option {
	return func(opts *Options) {
		opts.CacheSize = size
	}
}

// WithStorageProvider sets the storage provider recordings are read from.
func WithStorageProvider(store storage.Provider) Option {
	return func(opts *Options) {
		opts.StorageProvider = store
	}
}

package msgdefs

import "runtime"

type config struct {
	workers   int
	cacheSize int64
}

func defaultConfig() config {
	return config{
		workers:   runtime.GOMAXPROCS(0),
		cacheSize: 1024,
	}
}

// Option is a function that modifies the resolver configuration.
type Option func(*config)

// WithWorkers sets the number of definitions ResolveAll parses concurrently.
func WithWorkers(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithCacheSize sets the number of resolved definitions to cache.
func WithCacheSize(n int64) Option {
	return func(c *config) {
		c.cacheSize = n
	}
}

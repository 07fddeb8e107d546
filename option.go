package bptree

// Options configures tree behavior.
type Options struct {
	logger    Logger
	cacheSize int // Entries in the lookup cache. 0 disables it.
}

// DefaultOptions returns the default configuration: no logging and no lookup
// cache.
//
// goland:noinspection GoUnusedExportedFunction
func DefaultOptions() Options {
	return Options{
		logger:    DiscardLogger{},
		cacheSize: 0,
	}
}

// Option configures tree options using the functional options pattern.
type Option func(*Options)

// WithLogger routes structural events (root growth and collapse, failed
// verification) to logger. *slog.Logger satisfies Logger directly.
//
//goland:noinspection GoUnusedExportedFunction
func WithLogger(logger Logger) Option {
	return func(opts *Options) {
		if logger == nil {
			logger = DiscardLogger{}
		}
		opts.logger = logger
	}
}

// WithLookupCache keeps up to entries recently found key/value pairs in an
// LRU consulted by Find before descending the tree. Values below the cache
// minimum are rounded up; 0 disables the cache.
// Only trees built with New support it, since keys must be hashable.
//
//goland:noinspection GoUnusedExportedFunction
func WithLookupCache(entries int) Option {
	return func(opts *Options) {
		opts.cacheSize = max(entries, 0)
	}
}

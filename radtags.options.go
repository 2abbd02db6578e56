package radtags

import (
	"go.uber.org/zap"
)

// Option is a functional option for configuring the Engine.
type Option func(*engineConfig)

// engineConfig holds the internal configuration for an Engine.
type engineConfig struct {
	prefix    string
	maxDepth  int
	logger    *zap.Logger
	store     Store
	request   Request
	filters   []TextFilter
	libraries []Library
}

// defaultEngineConfig returns the default engine configuration.
func defaultEngineConfig() *engineConfig {
	return &engineConfig{
		prefix:   DefaultPrefix,
		maxDepth: DefaultMaxDepth,
		request: Request{
			Scheme: DefaultScheme,
			Host:   DefaultHost,
		},
		libraries: DefaultLibraries(),
	}
}

// WithPrefix sets the tag namespace prefix.
// Default: "r" (tags look like <r:author />)
func WithPrefix(prefix string) Option {
	return func(c *engineConfig) {
		if prefix != "" {
			c.prefix = prefix
		}
	}
}

// WithMaxDepth sets the maximum tag nesting depth.
// Use 0 for unlimited depth.
// Default: 100
func WithMaxDepth(depth int) Option {
	return func(c *engineConfig) {
		c.maxDepth = depth
	}
}

// WithLogger sets the logger for the engine.
// Default: nil (no logging)
func WithLogger(logger *zap.Logger) Option {
	return func(c *engineConfig) {
		c.logger = logger
	}
}

// WithStore sets the record store tags read authors and pages from.
// Default: an empty MemoryStore
func WithStore(store Store) Option {
	return func(c *engineConfig) {
		c.store = store
	}
}

// WithRequest sets the default request used to build absolute page URLs.
// Default: http://localhost
func WithRequest(req Request) Option {
	return func(c *engineConfig) {
		if req.Scheme != "" {
			c.request.Scheme = req.Scheme
		}
		if req.Host != "" {
			c.request.Host = req.Host
		}
	}
}

// WithFilter registers an additional text filter for author bios.
func WithFilter(f TextFilter) Option {
	return func(c *engineConfig) {
		c.filters = append(c.filters, f)
	}
}

// WithLibraries replaces the tag libraries registered on the engine.
// Default: PageTags, AuthorTags and BlogTags
func WithLibraries(libs ...Library) Option {
	return func(c *engineConfig) {
		c.libraries = libs
	}
}

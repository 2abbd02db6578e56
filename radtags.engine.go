package radtags

import (
	"context"

	"github.com/itsatony/go-radtags/internal"
	"go.uber.org/zap"
)

// Engine parses templates and renders them through the registered tag libraries.
// It is safe for concurrent renders once configured.
type Engine struct {
	registry *internal.Registry
	executor *internal.Executor
	config   *engineConfig
	store    Store
	filters  *FilterRegistry
	logger   *zap.Logger
}

// Env is the render input supplied by the host for one page view.
type Env struct {
	Page    *Page    // Current page (required by most tags)
	Author  *Author  // Current author; usually nil so tags fall back to the page creator
	Request *Request // Request being served; nil uses the engine default
}

// Library is a named set of tags registered on an engine.
type Library interface {
	Name() string
	Register(e *Engine) error
}

// DefaultLibraries returns the page, author and blog tag libraries.
func DefaultLibraries() []Library {
	return []Library{PageTags{}, AuthorTags{}, BlogTags{}}
}

// New creates a new Engine with the given options.
func New(opts ...Option) (*Engine, error) {
	config := defaultEngineConfig()
	for _, opt := range opts {
		opt(config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	store := config.store
	if store == nil {
		store = NewMemoryStore()
	}

	filters := NewFilterRegistry()
	for _, f := range config.filters {
		if err := filters.Register(f); err != nil {
			return nil, err
		}
	}

	registry := internal.NewRegistry(logger)
	executor := internal.NewExecutor(registry, internal.ExecutorConfig{MaxDepth: config.maxDepth}, logger)

	e := &Engine{
		registry: registry,
		executor: executor,
		config:   config,
		store:    store,
		filters:  filters,
		logger:   logger,
	}

	for _, lib := range config.libraries {
		if lib == nil {
			return nil, NewRegistryError(ErrMsgNilLibrary, "", nil)
		}
		if err := lib.Register(e); err != nil {
			return nil, err
		}
		logger.Debug(LogMsgLibraryRegistered, zap.String(LogFieldLibrary, lib.Name()))
	}

	logger.Debug(LogMsgEngineCreated, zap.Int(LogFieldTags, registry.Count()))
	return e, nil
}

// MustNew creates a new Engine and panics if there's an error.
func MustNew(opts ...Option) *Engine {
	engine, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return engine
}

// Define registers a tag under its fully qualified name (e.g. "author:name").
// Returns an error if the name is already defined.
func (e *Engine) Define(name string, fn TagFunc) error {
	var handler internal.TagFunc
	if fn != nil {
		handler = func(ctx context.Context, b *internal.Binding) (string, error) {
			return fn(ctx, newTag(b, e))
		}
	}
	if err := e.registry.Register(name, handler); err != nil {
		return NewRegistryError(ErrMsgTagRegistration, name, err)
	}
	return nil
}

// MustDefine registers a tag and panics if registration fails.
func (e *Engine) MustDefine(name string, fn TagFunc) {
	if err := e.Define(name, fn); err != nil {
		panic(err)
	}
}

// HasTag reports whether a tag is defined under the qualified name.
func (e *Engine) HasTag(name string) bool {
	return e.registry.Has(name)
}

// Tags returns all defined tag names in sorted order.
func (e *Engine) Tags() []string {
	return e.registry.List()
}

// Store returns the record store.
func (e *Engine) Store() Store {
	return e.store
}

// Filters returns the text filter registry.
func (e *Engine) Filters() *FilterRegistry {
	return e.filters
}

// Logger returns the engine logger.
func (e *Engine) Logger() *zap.Logger {
	return e.logger
}

// Parse parses a template source string and returns a Template.
// The returned Template can be rendered many times with different pages.
func (e *Engine) Parse(source string) (*Template, error) {
	lexer := internal.NewLexerWithConfig(source, internal.LexerConfig{Prefix: e.config.prefix}, e.logger)
	tokens, err := lexer.Tokenize()
	if err != nil {
		return nil, convertInternalError(err)
	}

	ast, err := internal.NewParser(tokens, e.logger).Parse()
	if err != nil {
		return nil, convertInternalError(err)
	}

	return &Template{source: source, ast: ast, engine: e}, nil
}

// Render is a convenience method that parses and renders in one step.
func (e *Engine) Render(ctx context.Context, source string, env Env) (string, error) {
	tmpl, err := e.Parse(source)
	if err != nil {
		return "", err
	}
	return tmpl.Render(ctx, env)
}

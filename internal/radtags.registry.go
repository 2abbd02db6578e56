package internal

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// TagFunc renders a tag given its binding.
type TagFunc func(ctx context.Context, b *Binding) (string, error)

// Registry manages tag handler registration with first-come-wins semantics.
// It is thread-safe for concurrent read/write access.
type Registry struct {
	handlers map[string]TagFunc
	mu       sync.RWMutex
	logger   *zap.Logger
}

// NewRegistry creates a new tag registry.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Debug(LogMsgRegistryCreated)
	return &Registry{
		handlers: make(map[string]TagFunc),
		logger:   logger,
	}
}

// Register adds a handler for a fully qualified tag name (e.g. "authors:each:name").
// If a handler for the same name already exists, returns an error
// but does not panic (first-come-wins semantics).
func (r *Registry) Register(name string, fn TagFunc) error {
	if fn == nil {
		return NewRegistryError(ErrMsgNilHandler, name)
	}
	if name == StringValueEmpty {
		return NewRegistryError(ErrMsgEmptyTagName, StringValueEmpty)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		r.logger.Warn(LogMsgHandlerCollision, zap.String(LogFieldTagName, name))
		return NewRegistryError(ErrMsgHandlerAlreadyExists, name)
	}

	r.handlers[name] = fn
	r.logger.Debug(LogMsgHandlerRegistered, zap.String(LogFieldTagName, name))
	return nil
}

// MustRegister adds a handler and panics if registration fails.
func (r *Registry) MustRegister(name string, fn TagFunc) {
	if err := r.Register(name, fn); err != nil {
		panic(err)
	}
}

// Get retrieves a handler by qualified tag name.
func (r *Registry) Get(name string) (TagFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	fn, exists := r.handlers[name]
	return fn, exists
}

// Has checks if a handler is registered for the given name.
func (r *Registry) Has(name string) bool {
	_, exists := r.Get(name)
	return exists
}

// List returns all registered tag names in sorted order.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered handlers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.handlers)
}

// RegistryError represents a registry operation error
type RegistryError struct {
	Message string
	TagName string
}

// NewRegistryError creates a new registry error
func NewRegistryError(message, tagName string) *RegistryError {
	return &RegistryError{
		Message: message,
		TagName: tagName,
	}
}

// Error implements the error interface
func (e *RegistryError) Error() string {
	if e.TagName != StringValueEmpty {
		return fmt.Sprintf(ErrFmtTagMessage, e.Message, e.TagName)
	}
	return e.Message
}

// Registry error message constants
const (
	ErrMsgNilHandler           = "tag handler cannot be nil"
	ErrMsgEmptyTagName         = "tag name cannot be empty"
	ErrMsgHandlerAlreadyExists = "tag handler already registered"
)

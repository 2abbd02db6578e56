package internal

import "sync"

// Scope holds the locals visible while a tag is expanded.
// Reads fall back to the parent scope; writes always land in this scope,
// so a tag can shadow a value for its body without touching its ancestors.
type Scope struct {
	data   map[string]any
	parent *Scope
	mu     sync.RWMutex
}

// NewScope creates a root scope with the given data.
// If data is nil, an empty map is used.
func NewScope(data map[string]any) *Scope {
	if data == nil {
		data = make(map[string]any)
	}
	return &Scope{data: data}
}

// Get retrieves a value, searching enclosing scopes when the key is not set here.
// A key explicitly set to nil shadows the parent's value.
func (s *Scope) Get(key string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		cur.mu.RLock()
		val, ok := cur.data[key]
		cur.mu.RUnlock()
		if ok {
			return val, true
		}
	}
	return nil, false
}

// Set sets a value in this scope.
func (s *Scope) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = value
}

// Has checks if a key is visible from this scope.
func (s *Scope) Has(key string) bool {
	_, ok := s.Get(key)
	return ok
}

// Child creates an empty scope that inherits from this one.
func (s *Scope) Child() *Scope {
	return &Scope{
		data:   make(map[string]any),
		parent: s,
	}
}

// Parent returns the enclosing scope, or nil for a root scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

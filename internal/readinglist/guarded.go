package readinglist

import "sync"

// Guarded serializes access to an Engine through a single mutex.
// Collection and cursor are locked together, so multi-step operations like
// MoveToPosition stay atomic with respect to other callers.
type Guarded struct {
	mu     sync.Mutex
	engine *Engine
}

// NewGuarded wraps e. e must not be used directly afterwards.
func NewGuarded(e *Engine) *Guarded {
	return &Guarded{engine: e}
}

// Do runs fn with exclusive access to the engine and returns its error.
func (g *Guarded) Do(fn func(e *Engine) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.engine)
}

package engine

import (
	"fmt"
	"sort"
	"sync"
)

// Factory creates and caches engines by name.
type Factory interface {
	// Get returns the cached engine for name, creating it on first use.
	Get(name string) (Engine, error)
	// List returns the registered names in sorted order.
	List() []string
	// GetAll returns every registered engine.
	GetAll() map[string]Engine
}

// DefaultFactory is a thread-safe registry of engine constructors.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() coreEngine
	engines  map[string]Engine
}

// NewDefaultFactory returns a factory with the "exact" and "big" engines
// registered. The "gmp" engine is added to the global factory when the
// binary is built with the gmp tag.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() coreEngine),
		engines:  make(map[string]Engine),
	}
	_ = f.Register("exact", newExactEngine)
	_ = f.Register("big", newBigEngine)
	return f
}

// Register adds or replaces an engine constructor. A replaced engine is
// dropped from the cache.
func (f *DefaultFactory) Register(name string, creator func() coreEngine) error {
	if name == "" || creator == nil {
		return fmt.Errorf("engine: invalid registration for %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creators[name] = creator
	delete(f.engines, name)
	return nil
}

// Get returns the engine registered under name, building and caching it on
// first use.
//
// Parameters:
//   - name: The engine name, e.g. "exact".
//
// Returns:
//   - Engine: The engine wrapped in an Evaluator.
//   - error: An *UnknownEngineError when name is not registered.
func (f *DefaultFactory) Get(name string) (Engine, error) {
	f.mu.RLock()
	if e, ok := f.engines[name]; ok {
		f.mu.RUnlock()
		return e, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.engines[name]; ok {
		return e, nil
	}
	creator, ok := f.creators[name]
	if !ok {
		return nil, &UnknownEngineError{Name: name}
	}
	e := NewEvaluator(creator())
	f.engines[name] = e
	return e, nil
}

// MustGet is like Get but panics when name is not registered.
func (f *DefaultFactory) MustGet(name string) Engine {
	e, err := f.Get(name)
	if err != nil {
		panic(err)
	}
	return e
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, ok := f.creators[name]
	return ok
}

// List returns the registered names in sorted order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll instantiates every registered engine and returns a copy of the
// cache.
func (f *DefaultFactory) GetAll() map[string]Engine {
	f.mu.Lock()
	defer f.mu.Unlock()
	for name, creator := range f.creators {
		if _, ok := f.engines[name]; !ok {
			f.engines[name] = NewEvaluator(creator())
		}
	}
	out := make(map[string]Engine, len(f.engines))
	for name, e := range f.engines {
		out[name] = e
	}
	return out
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *DefaultFactory { return globalFactory }

// RegisterEngine registers an engine in the global factory.
func RegisterEngine(name string, creator func() coreEngine) error {
	return globalFactory.Register(name, creator)
}

// UnknownEngineError is returned for an unregistered engine name.
type UnknownEngineError struct {
	Name string
}

func (e *UnknownEngineError) Error() string {
	return "unknown engine: " + e.Name
}

// Select resolves an -engine value.
//
// Parameters:
//   - f: The factory to draw from.
//   - name: "all" or a single engine name.
//
// Returns:
//   - []Engine: Every engine of f in name order, or the single named engine.
//   - error: An *UnknownEngineError for an unknown name.
func Select(f Factory, name string) ([]Engine, error) {
	if name != "all" {
		e, err := f.Get(name)
		if err != nil {
			return nil, err
		}
		return []Engine{e}, nil
	}
	all := f.GetAll()
	names := make([]string, 0, len(all))
	for n := range all {
		names = append(names, n)
	}
	sort.Strings(names)
	engines := make([]Engine, 0, len(names))
	for _, n := range names {
		engines = append(engines, all[n])
	}
	return engines, nil
}

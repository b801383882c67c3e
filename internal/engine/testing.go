package engine

import (
	"context"
	"sort"

	"github.com/agbru/ratcalc/internal/expr"
)

// MockEngine is a hand-configurable Engine for tests in other packages.
type MockEngine struct {
	// EngineName defaults to "mock".
	EngineName string
	Result     Result
	Err        error
	Fn         func(ctx context.Context, n expr.Node) (Result, error)
}

// Name returns EngineName or "mock".
func (m *MockEngine) Name() string {
	if m.EngineName == "" {
		return "mock"
	}
	return m.EngineName
}

// Evaluate calls Fn when set and returns Result and Err otherwise.
func (m *MockEngine) Evaluate(ctx context.Context, n expr.Node) (Result, error) {
	if m.Fn != nil {
		return m.Fn(ctx, n)
	}
	return m.Result, m.Err
}

// TestFactory is a Factory over a fixed set of engines.
type TestFactory struct {
	engines map[string]Engine
}

// NewTestFactory returns a factory serving the given engines.
func NewTestFactory(engines map[string]Engine) *TestFactory {
	if engines == nil {
		engines = make(map[string]Engine)
	}
	return &TestFactory{engines: engines}
}

// Get returns the engine by name.
func (f *TestFactory) Get(name string) (Engine, error) {
	e, ok := f.engines[name]
	if !ok {
		return nil, &UnknownEngineError{Name: name}
	}
	return e, nil
}

// List returns the engine names in sorted order.
func (f *TestFactory) List() []string {
	names := make([]string, 0, len(f.engines))
	for name := range f.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the engine map.
func (f *TestFactory) GetAll() map[string]Engine {
	out := make(map[string]Engine, len(f.engines))
	for k, v := range f.engines {
		out[k] = v
	}
	return out
}

package double

import (
	"errors"
	"fmt"
	"reflect"
	"sync"
)

// ErrNoDouble is returned by NewDouble for interfaces nobody registered a
// double for.
var ErrNoDouble = errors.New("double: no double registered")

// Engine maps interface types to double factories. It implements
// resolver.Engine.
//
// Go cannot synthesize an implementation of an interface at runtime, so every
// capability needs a registered factory, usually done once in an init func:
//
//	func init() {
//	    double.Register(double.Default, func() FooDependency { return &fooDependencyDouble{} })
//	}
//
// Unlike a resolver, an Engine is shared by parallel tests and is safe for
// concurrent use.
type Engine struct {
	mu        sync.RWMutex
	factories map[reflect.Type]func() any
}

// Default is the engine used when none is configured.
var Default = NewEngine()

// NewEngine creates an engine with no factories.
func NewEngine() *Engine {
	return &Engine{factories: make(map[reflect.Type]func() any)}
}

// Register adds (or replaces) the factory for T. It panics if T is not an
// interface type.
func Register[T any](e *Engine, fn func() T) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if t.Kind() != reflect.Interface {
		panic(fmt.Sprintf("double: Register[%s]: not an interface type", t))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.factories[t] = func() any { return fn() }
}

// Registered reports whether a factory exists for t.
func (e *Engine) Registered(t reflect.Type) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.factories[t]
	return ok
}

// NewDouble creates a fresh double for t. Doubles embedding Double learn their
// capability so unconfigured calls can return zero values.
func (e *Engine) NewDouble(t reflect.Type) (any, error) {
	e.mu.RLock()
	fn, ok := e.factories[t]
	e.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w for %s", ErrNoDouble, t)
	}

	d := fn()
	if c, ok := d.(Controllable); ok {
		c.Control().capability = t
	}
	return d, nil
}

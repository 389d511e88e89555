package resolver

import (
	"reflect"
)

// Engine creates test doubles for capability (interface) types.
//
// The returned value must implement t. Recording calls, configuring return
// values and verifying call counts are the engine's business; the resolver only
// creates and caches doubles.
type Engine interface {
	NewDouble(t reflect.Type) (any, error)
}

// EngineFunc adapts a plain function to Engine.
type EngineFunc func(t reflect.Type) (any, error)

// NewDouble implements Engine.
func (f EngineFunc) NewDouble(t reflect.Type) (any, error) { return f(t) }

// doubleCache keeps the single double created for each capability type.
type doubleCache struct {
	engine Engine

	// capability type → double
	byType map[reflect.Type]any

	// creation order, for Doubles()
	order []reflect.Type
}

func newDoubleCache(engine Engine) *doubleCache {
	return &doubleCache{engine: engine, byType: make(map[reflect.Type]any)}
}

func (c *doubleCache) peek(t reflect.Type) (any, bool) {
	d, ok := c.byType[t]
	return d, ok
}

// getOrCreate returns the cached double for t, creating it on first use.
// created reports whether this call minted the double.
func (c *doubleCache) getOrCreate(t reflect.Type) (d any, created bool, err error) {
	if d, ok := c.byType[t]; ok {
		return d, false, nil
	}
	if t.Kind() != reflect.Interface {
		return nil, false, &UnsupportedTypeError{Type: t, Reason: "doubles are only created for interface types"}
	}
	if c.engine == nil {
		return nil, false, &UnsupportedTypeError{Type: t, Reason: "no double engine configured"}
	}

	d, err = c.engine.NewDouble(t)
	if err != nil {
		return nil, false, &UnsupportedTypeError{Type: t, Reason: "double engine failed", Err: err}
	}
	if d == nil {
		return nil, false, &UnsupportedTypeError{Type: t, Reason: "double engine returned nil"}
	}
	if got := reflect.TypeOf(d); !got.Implements(t) {
		return nil, false, &UnsupportedTypeError{Type: t, Reason: "double " + got.String() + " does not implement it"}
	}

	c.byType[t] = d
	c.order = append(c.order, t)
	return d, true, nil
}

func (c *doubleCache) forget(t reflect.Type) {
	if _, ok := c.byType[t]; !ok {
		return
	}
	delete(c.byType, t)
	for i, o := range c.order {
		if o == t {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

// ── Double API ────────────────────────────────────────────────────────────────

// Double returns the shared double for the capability type t, creating it if
// needed. Bindings are not consulted: this is the object Resolve yields for an
// unbound t, so configuring it affects every place it was injected.
func (r *Resolver) Double(t reflect.Type) (any, error) {
	if t == nil {
		return nil, &UnsupportedTypeError{Reason: "nil type"}
	}
	d, created, err := r.doubles.getOrCreate(t)
	if err != nil {
		r.metrics.failed(err)
		return nil, err
	}
	if created {
		r.doubleCreated(t)
	}
	return d, nil
}

// PeekDouble returns the double for t if one was already created.
func (r *Resolver) PeekDouble(t reflect.Type) (any, bool) {
	return r.doubles.peek(t)
}

// Doubles lists the capability types that have a double, in creation order.
func (r *Resolver) Doubles() []reflect.Type {
	out := make([]reflect.Type, len(r.doubles.order))
	copy(out, r.doubles.order)
	return out
}

// ForgetDouble drops the cached double for t. The next request creates a new one.
func (r *Resolver) ForgetDouble(t reflect.Type) {
	r.doubles.forget(t)
}

// GetDouble is the generic form of (*Resolver).Double.
//
//	dep, err := resolver.GetDouble[FooDependency](r)
func GetDouble[T any](r *Resolver) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()
	d, err := r.Double(t)
	if err != nil {
		return zero, err
	}
	typed, ok := d.(T)
	if !ok {
		return zero, &BindingError{Key: t, Impl: reflect.TypeOf(d)}
	}
	return typed, nil
}

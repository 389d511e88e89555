package resolver

import (
	"reflect"
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/km-arc/magicmock/framework/config"
)

// Resolver is one resolver session: the binding registry, the constructor
// table and the double cache of a single test.
//
// A Resolver holds no locks. Create one per test and do not share it between
// tests running in parallel.
type Resolver struct {
	id uuid.UUID

	registry *registry
	selector *selector
	doubles  *doubleCache

	// types currently being resolved, outermost first
	stack []reflect.Type

	maxDepth int
	strict   bool

	logger  *zap.Logger
	metrics *metrics

	providers []Provider
	booted    bool
	bootErr   error

	afterResolving []func(t reflect.Type, v any)
}

// New creates an empty resolver session.
func New(opts ...Option) *Resolver {
	r := &Resolver{
		id:       uuid.New(),
		registry: newRegistry(),
		selector: newSelector(),
		doubles:  newDoubleCache(nil),
		maxDepth: config.DefaultMaxDepth,
		logger:   zap.NewNop(),
		metrics:  newMetrics(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// ID identifies the session in logs.
func (r *Resolver) ID() uuid.UUID { return r.id }

// AfterResolving registers a callback fired for every resolved value,
// including nested constructor parameters.
func (r *Resolver) AfterResolving(cb func(t reflect.Type, v any)) {
	r.afterResolving = append(r.afterResolving, cb)
}

// ── Resolution ────────────────────────────────────────────────────────────────

// ResolveType resolves t:
//
//  1. a binding for t (instance first, then factory) wins over everything;
//  2. an interface type yields the session's shared double;
//  3. a registered constructor is called with recursively resolved arguments;
//  4. a struct or pointer-to-struct is instantiated with its zero value;
//  5. a primitive type (or pointer to one) yields its zero value, unless
//     strict values are on.
//
// Anything else fails with *UnsupportedTypeError.
func (r *Resolver) ResolveType(t reflect.Type) (any, error) {
	if t == nil {
		return nil, &UnsupportedTypeError{Reason: "nil type"}
	}
	// nested calls from binding factories skip the session bookkeeping
	if len(r.stack) > 0 {
		return r.resolve(t)
	}

	if err := r.Boot(); err != nil {
		return nil, err
	}
	v, err := r.resolve(t)
	if err != nil {
		r.metrics.failed(err)
		r.logger.Debug("resolution failed",
			zap.Stringer("session", r.id),
			zap.Stringer("type", t),
			zap.Error(err),
		)
		return nil, err
	}
	return v, nil
}

// resolve guards against cycles and runaway depth, then builds t.
func (r *Resolver) resolve(t reflect.Type) (any, error) {
	if i := slices.Index(r.stack, t); i >= 0 {
		path := append(slices.Clone(r.stack[i:]), t)
		return nil, &CyclicDependencyError{Path: path}
	}
	if len(r.stack) >= r.maxDepth {
		return nil, &DepthExceededError{Type: t, Depth: r.maxDepth}
	}

	r.stack = append(r.stack, t)
	defer func() { r.stack = r.stack[:len(r.stack)-1] }()

	v, src, err := r.build(t)
	if err != nil {
		return nil, err
	}

	r.metrics.resolved(src)
	r.logger.Debug("resolved",
		zap.Stringer("session", r.id),
		zap.Stringer("type", t),
		zap.String("source", string(src)),
		zap.Int("depth", len(r.stack)),
	)
	for _, cb := range r.afterResolving {
		cb(t, v)
	}
	return v, nil
}

func (r *Resolver) build(t reflect.Type) (any, source, error) {
	if f, ok := r.registry.tryGet(t); ok {
		v, err := f(r)
		if err != nil {
			return nil, sourceBinding, err
		}
		if v != nil && !reflect.TypeOf(v).AssignableTo(t) {
			return nil, sourceBinding, &BindingError{Key: t, Impl: reflect.TypeOf(v)}
		}
		return v, sourceBinding, nil
	}

	if t.Kind() == reflect.Interface {
		d, created, err := r.doubles.getOrCreate(t)
		if err != nil {
			return nil, sourceDouble, err
		}
		if created {
			r.doubleCreated(t)
		}
		return d, sourceDouble, nil
	}

	if c, ok := r.selector.choose(t); ok {
		v, err := r.construct(t, c)
		return v, sourceConstructor, err
	}

	switch {
	case t.Kind() == reflect.Struct:
		return reflect.New(t).Elem().Interface(), sourceInstantiate, nil
	case t.Kind() == reflect.Pointer && t.Elem().Kind() == reflect.Struct:
		return reflect.New(t.Elem()).Interface(), sourceInstantiate, nil
	case isValueType(t):
		if r.strict {
			return nil, sourceZero, &UnsupportedTypeError{Type: t, Reason: "value types need an explicit binding"}
		}
		return reflect.Zero(t).Interface(), sourceZero, nil
	}

	return nil, "", &UnsupportedTypeError{Type: t, Reason: "no binding, constructor or double for kind " + t.Kind().String()}
}

// construct resolves every parameter of c and calls it.
func (r *Resolver) construct(t reflect.Type, c *constructor) (any, error) {
	args := make([]reflect.Value, len(c.params))
	for i, pt := range c.params {
		v, err := r.resolve(pt)
		if err != nil {
			return nil, &ConstructionError{Type: t, Param: i, ParamType: pt, Err: err}
		}
		args[i] = valueOf(v, pt)
	}

	v, err := c.call(args)
	if err != nil {
		return nil, &ConstructionError{Type: t, Param: -1, Err: err}
	}
	return v, nil
}

func (r *Resolver) doubleCreated(t reflect.Type) {
	r.metrics.doubleCreated()
	r.logger.Debug("double created",
		zap.Stringer("session", r.id),
		zap.Stringer("type", t),
	)
}

// valueOf turns a resolved value into an argument of type t. A nil value
// becomes the zero value of t.
func valueOf(v any, t reflect.Type) reflect.Value {
	if v == nil {
		return reflect.Zero(t)
	}
	return reflect.ValueOf(v)
}

// isValueType reports primitive kinds and pointers to them. These are never
// auto-resolved beyond their zero value.
func isValueType(t reflect.Type) bool {
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Complex64, reflect.Complex128:
		return true
	}
	return false
}

// ── Generics helpers ──────────────────────────────────────────────────────────

// Resolve resolves T and type-asserts the result.
//
//	foo, err := resolver.Resolve[*Foo](r)
func Resolve[T any](r *Resolver) (T, error) {
	var zero T
	t := reflect.TypeOf((*T)(nil)).Elem()
	v, err := r.ResolveType(t)
	if err != nil {
		return zero, err
	}
	if v == nil {
		return zero, nil
	}
	typed, ok := v.(T)
	if !ok {
		return zero, &BindingError{Key: t, Impl: reflect.TypeOf(v)}
	}
	return typed, nil
}

// MustResolve is like Resolve but panics on error. Useful in tests where a
// failed resolution should fail fast.
func MustResolve[T any](r *Resolver) T {
	v, err := Resolve[T](r)
	if err != nil {
		panic(err)
	}
	return v
}

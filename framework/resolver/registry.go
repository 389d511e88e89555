package resolver

import (
	"reflect"
	"sort"
)

// Factory builds a value for a bound type. It receives the resolver so it can
// resolve further dependencies.
type Factory func(r *Resolver) (any, error)

// registry holds the explicit overrides of one resolver session.
//
// Instances and factories are kept apart: an instance binding for a type wins
// over a factory binding for the same type no matter which was registered last.
type registry struct {
	// type → factory
	factories map[reflect.Type]Factory

	// type → fixed instance
	instances map[reflect.Type]any
}

func newRegistry() *registry {
	return &registry{
		factories: make(map[reflect.Type]Factory),
		instances: make(map[reflect.Type]any),
	}
}

func (g *registry) bind(t reflect.Type, f Factory) {
	g.factories[t] = f
}

func (g *registry) bindInstance(t reflect.Type, v any) {
	g.instances[t] = v
}

// tryGet returns the factory for t without invoking it.
func (g *registry) tryGet(t reflect.Type) (Factory, bool) {
	if v, ok := g.instances[t]; ok {
		return func(*Resolver) (any, error) { return v, nil }, true
	}
	f, ok := g.factories[t]
	return f, ok
}

func (g *registry) bound(t reflect.Type) bool {
	_, hasFactory := g.factories[t]
	_, hasInstance := g.instances[t]
	return hasFactory || hasInstance
}

func (g *registry) forget(t reflect.Type) {
	delete(g.factories, t)
	delete(g.instances, t)
}

// keys lists every bound type, sorted by name.
func (g *registry) keys() []reflect.Type {
	out := make([]reflect.Type, 0, len(g.factories)+len(g.instances))
	for t := range g.factories {
		out = append(out, t)
	}
	for t := range g.instances {
		if _, already := g.factories[t]; !already {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// ── Registration API ──────────────────────────────────────────────────────────

// Bind registers a factory for t, replacing any earlier factory for t.
//
//	r.Bind(reflect.TypeFor[Clock](), func(*resolver.Resolver) (any, error) {
//	    return fixedClock{}, nil
//	})
func (r *Resolver) Bind(t reflect.Type, f Factory) {
	r.registry.bind(t, f)
}

// BindInstance registers a fixed value for t. Resolving t always returns v.
func (r *Resolver) BindInstance(t reflect.Type, v any) {
	r.registry.bindInstance(t, v)
}

// SetInstance binds v under its dynamic type.
//
//	r.SetInstance(NewConcreteDependency(&eleven)) // bound as *ConcreteDependency
func (r *Resolver) SetInstance(v any) {
	if v == nil {
		return
	}
	r.registry.bindInstance(reflect.TypeOf(v), v)
}

// Bound reports whether t has a factory or instance binding.
func (r *Resolver) Bound(t reflect.Type) bool {
	return r.registry.bound(t)
}

// Forget removes every binding for t. A double already created for t is kept.
func (r *Resolver) Forget(t reflect.Type) {
	r.registry.forget(t)
}

// Bindings returns all bound types (for debugging).
func (r *Resolver) Bindings() []reflect.Type {
	return r.registry.keys()
}

// Bind is the generic form of (*Resolver).Bind.
//
//	resolver.Bind(r, func(r *resolver.Resolver) (Clock, error) { return fixedClock{}, nil })
func Bind[T any](r *Resolver, fn func(r *Resolver) (T, error)) {
	r.Bind(reflect.TypeOf((*T)(nil)).Elem(), func(r *Resolver) (any, error) {
		v, err := fn(r)
		if err != nil {
			return nil, err
		}
		return v, nil
	})
}

// BindInstance is the generic form of (*Resolver).BindInstance. The binding key
// is T, not the dynamic type of v.
func BindInstance[T any](r *Resolver, v T) {
	r.BindInstance(reflect.TypeOf((*T)(nil)).Elem(), v)
}

// BindSubtype makes K resolve by resolving I. I must be assignable to K; when it
// is not, nothing is registered and a *BindingError is returned.
//
//	err := resolver.BindSubtype[Repository, *memoryRepository](r)
func BindSubtype[K, I any](r *Resolver) error {
	key, impl := reflect.TypeOf((*K)(nil)).Elem(), reflect.TypeOf((*I)(nil)).Elem()
	if !impl.AssignableTo(key) {
		return &BindingError{Key: key, Impl: impl}
	}
	r.Bind(key, func(r *Resolver) (any, error) {
		return r.resolve(impl)
	})
	return nil
}

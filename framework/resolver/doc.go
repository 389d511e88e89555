// Package resolver builds objects under test by recursively satisfying their
// constructor dependencies with bindings, constructors or test doubles.
//
// # Overview
//
// A Resolver is one session, created per test. Ask it for a type and it
// returns a fully wired instance: every interface dependency is replaced by a
// double from the configured Engine, and the same double is handed out for the
// same interface everywhere in the graph, so a test can configure or verify
// "the" double after resolving.
//
// Go has no runtime constructor enumeration, so constructors are registered
// explicitly. Types without constructors are instantiated with their zero
// value.
//
// # Resolving
//
//	r := resolver.New(resolver.WithEngine(engine))
//	if err := r.Constructors(NewFoo); err != nil {
//	    t.Fatal(err)
//	}
//	foo, err := resolver.Resolve[*Foo](r)
//
//	// the double injected into foo
//	dep, err := resolver.GetDouble[FooDependency](r)
//
// # Bindings
//
//	// Pre-built value
//	resolver.BindInstance[Clock](r, fixedClock{})
//
//	// Factory, called on every resolution
//	resolver.Bind(r, func(r *resolver.Resolver) (*Config, error) {
//	    return &Config{Region: "eu"}, nil
//	})
//
//	// Interface resolved through an implementation
//	err := resolver.BindSubtype[Repository, *memoryRepository](r)
//
// An instance binding for a type always wins over a factory binding for the
// same type. Bindings win over doubles and constructors.
//
// # Constructor selection
//
// Among the constructors registered for a type, the one with the fewest
// parameters is used; ties go to the constructor registered first. A trailing
// variadic parameter is not counted and receives no arguments.
//
// Constructors must return a concrete type. A constructor returning an
// interface is rejected: interface types resolve to doubles, so bind the
// implementation with Bind or BindSubtype instead.
//
// # Chained stubs
//
// AndResolve makes a stub return a resolved value, so chains of factories can
// be stubbed one line at a time:
//
//	resolver.AndResolve[Session](factoryDouble.On("OpenSession"), r)
//	resolver.AndResolve[Transaction](sessionDouble.On("OpenTransaction"), r)
//
// # Errors
//
// Failures are typed (*ConstructionError, *UnsupportedTypeError,
// *CyclicDependencyError, *DepthExceededError, *BindingError) and match the
// Err* sentinels with errors.Is. Dependency cycles are reported, never
// resolved.
//
// # Concurrency
//
// A Resolver is confined to the test that created it. It takes no locks.
package resolver

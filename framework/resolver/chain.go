package resolver

// Returner is an in-progress stub configuration that can be told what to
// return. testify's *mock.Call satisfies Returner[*mock.Call].
type Returner[S any] interface {
	Return(values ...any) S
}

// AndResolve configures setup to return the resolved R and hands setup back
// for further chaining. R is resolved once, now, not on every call, so the
// stub always returns the same object: with R an interface, that is the
// session's double for R, ready to be configured in turn.
//
//	resolver.AndResolve[Session](sessionFactory.On("OpenSession"), r)
//	resolver.AndResolve[Transaction](session.On("OpenTransaction"), r)
//
// AndResolve panics if R cannot be resolved; use TryAndResolve to get the error.
func AndResolve[R any, S Returner[S]](setup S, r *Resolver) S {
	s, err := TryAndResolve[R](setup, r)
	if err != nil {
		panic(err)
	}
	return s
}

// TryAndResolve is like AndResolve but returns the resolution error. On error
// setup is left unconfigured.
func TryAndResolve[R any, S Returner[S]](setup S, r *Resolver) (S, error) {
	v, err := Resolve[R](r)
	if err != nil {
		return setup, err
	}
	setup.Return(v)
	return setup, nil
}

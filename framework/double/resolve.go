package double

import (
	"fmt"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/km-arc/magicmock/framework/resolver"
)

// Of returns the control side of the session's double for T: the same object
// resolver.Resolve[T] injects everywhere.
func Of[T any](r *resolver.Resolver) (*Double, error) {
	d, err := resolver.GetDouble[T](r)
	if err != nil {
		return nil, err
	}
	c, ok := any(d).(Controllable)
	if !ok {
		return nil, fmt.Errorf("double: %T does not embed double.Double", d)
	}
	return c.Control(), nil
}

// Setup starts configuring method on the double for T. With no args the
// expectation matches any arguments.
//
//	double.Setup[FooDependency](r, "DoSomethingDifferent").Return(2)
//
// It panics if no double is available for T.
func Setup[T any](r *resolver.Resolver, method string, args ...any) *mock.Call {
	d, err := Of[T](r)
	if err != nil {
		panic(err)
	}
	return d.Expect(method, args...)
}

// Verify checks the number of calls of method on the double for T and reports
// a failure on t. A missing double is reported as a failure too.
//
//	double.Verify[FooDependency](t, r, "DoSomethingDifferent", double.Once())
func Verify[T any](t assert.TestingT, r *resolver.Resolver, method string, times Times, args ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	d, err := Of[T](r)
	if err != nil {
		return assert.Fail(t, err.Error())
	}
	return d.Verify(t, method, times, args...)
}

// VerifyCalled is Verify with AtLeastOnce.
func VerifyCalled[T any](t assert.TestingT, r *resolver.Resolver, method string, args ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return Verify[T](t, r, method, AtLeastOnce(), args...)
}

// Option returns a resolver option installing e as the double engine.
func (e *Engine) Option() resolver.Option {
	return resolver.WithEngine(e)
}

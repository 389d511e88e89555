package double

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// Double is embedded by hand-written (or mockery-generated) doubles. It is a
// testify mock.Mock with loose defaults: a call nobody configured is recorded
// and returns the zero values of the method's results instead of panicking.
//
//	type fooDependencyDouble struct{ double.Double }
//
//	func (d *fooDependencyDouble) DoSomethingDifferent() int {
//	    return d.Called().Int(0)
//	}
//
// A Double is not safe for concurrent use: the calls of one test must come
// from one goroutine at a time.
type Double struct {
	mock.Mock

	// capability is the interface this double stands for; set by the Engine.
	capability reflect.Type
}

// Controllable is implemented by every type embedding Double.
type Controllable interface {
	Control() *Double
}

// Control returns the embedded Double.
func (d *Double) Control() *Double { return d }

// Capability returns the interface type the double was created for, or nil if
// it was built outside an Engine.
func (d *Double) Capability() reflect.Type { return d.capability }

// Called records a call of the calling method. The method name is taken from
// the caller, like mock.Mock.Called.
func (d *Double) Called(args ...any) mock.Arguments {
	pc, _, _, ok := runtime.Caller(1)
	if !ok {
		panic("double: could not retrieve caller information")
	}
	name := runtime.FuncForPC(pc).Name()
	name = name[strings.LastIndex(name, ".")+1:]
	return d.MethodCalled(name, args...)
}

// MethodCalled records a call of method. When no live expectation matches, a
// one-shot expectation returning zero values is added first, so the call is
// recorded like any other.
func (d *Double) MethodCalled(method string, args ...any) mock.Arguments {
	if !d.expects(method, args) {
		d.On(method, anything(len(args))...).Return(d.zeros(method)...).Once()
	}
	return d.Mock.MethodCalled(method, args...)
}

// Expect is On with a convenience: with no args it matches any arguments of
// the method (the capability must be known).
//
//	d.Expect("Save").Return(nil) // matches Save(anything, anything)
//
// Expect panics when the capability is known and has no such method.
func (d *Double) Expect(method string, args ...any) *mock.Call {
	m, ok := d.method(method)
	if d.capability != nil && !ok {
		panic(fmt.Sprintf("double: %s has no method %q", d.capability, method))
	}
	if len(args) == 0 && ok {
		args = anything(m.Type.NumIn())
	}
	return d.On(method, args...)
}

// Count returns how many recorded calls of method match args. With no args,
// every call of method counts.
func (d *Double) Count(method string, args ...any) int {
	n := 0
	for _, call := range d.Calls {
		if call.Method != method {
			continue
		}
		if len(args) > 0 {
			if _, diff := mock.Arguments(args).Diff(call.Arguments); diff > 0 {
				continue
			}
		}
		n++
	}
	return n
}

// Check returns a *VerificationError when the number of matching calls of
// method is not allowed by times.
func (d *Double) Check(method string, times Times, args ...any) error {
	got := d.Count(method, args...)
	if times.Allows(got) {
		return nil
	}
	return &VerificationError{Capability: d.capability, Method: method, Want: times, Got: got, Message: times.msg}
}

// Verify reports a failure on t when Check fails. It returns whether the
// expectation held.
func (d *Double) Verify(t assert.TestingT, method string, times Times, args ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if err := d.Check(method, times, args...); err != nil {
		return assert.Fail(t, err.Error())
	}
	return true
}

// VerifyCalled is Verify with AtLeastOnce.
func (d *Double) VerifyCalled(t assert.TestingT, method string, args ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	return d.Verify(t, method, AtLeastOnce(), args...)
}

// expects reports whether a live expectation matches the call.
func (d *Double) expects(method string, args []any) bool {
	for _, call := range d.ExpectedCalls {
		if call.Method != method || call.Repeatability < 0 {
			continue
		}
		if _, diff := call.Arguments.Diff(args); diff == 0 {
			return true
		}
	}
	return false
}

// zeros returns the zero value of each result of method.
func (d *Double) zeros(method string) []any {
	m, ok := d.method(method)
	if !ok {
		return nil
	}
	out := make([]any, m.Type.NumOut())
	for i := range out {
		out[i] = reflect.Zero(m.Type.Out(i)).Interface()
	}
	return out
}

func (d *Double) method(name string) (reflect.Method, bool) {
	if d.capability == nil {
		return reflect.Method{}, false
	}
	return d.capability.MethodByName(name)
}

func anything(n int) []any {
	out := make([]any, n)
	for i := range out {
		out[i] = mock.Anything
	}
	return out
}

// Get returns result i as T. A nil result yields the zero T instead of
// panicking on the type assertion, which matters for interface results.
//
//	func (d *sessionFactoryDouble) OpenSession() Session {
//	    return double.Get[Session](d.Called(), 0)
//	}
func Get[T any](args mock.Arguments, i int) T {
	v, _ := args.Get(i).(T)
	return v
}

// Package magicmock resolves the object under test with every dependency
// filled in, so a test can "resolve and go".
//
// Interface parameters get test doubles, one per interface per test, shared by
// every object that asks for it. Concrete parameters are built recursively from
// registered constructors. Anything can be overridden with a binding.
//
//	func init() {
//	    double.Register(double.Default, func() FooDependency { return &fooDependencyDouble{} })
//	}
//
//	func TestFoo(t *testing.T) {
//	    m := magicmock.New(t)
//	    m.Constructors(NewFoo)
//
//	    foo := magicmock.Resolve[*Foo](m)
//	    magicmock.Setup[FooDependency](m, "DoSomethingDifferent").Return(2)
//
//	    assert.Equal(t, 2, foo.DoSomething())
//	    magicmock.Verify[FooDependency](m, "DoSomethingDifferent", double.Once())
//	}
//
// Failures are reported through the test. The packages underneath return
// errors instead: framework/resolver is the resolution engine and
// framework/double the testify-based double engine.
package magicmock

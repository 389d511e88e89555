// Package double is the test-double engine behind the resolver, built on
// testify's mock package.
//
// Doubles are ordinary structs embedding Double. Double keeps every testify
// feature (On, Return, Run, Once, AssertExpectations, ...) and adds loose
// defaults: calls nobody configured are recorded and return zero values, so a
// freshly resolved object can be exercised before any setup.
//
// An Engine maps interface types to double factories and is handed to the
// resolver with resolver.WithEngine (or Engine.Option).
//
// Setup and Verify reach the session's double for a type:
//
//	double.Setup[FooDependency](r, "DoSomethingDifferent").Return(2)
//	foo.DoSomething()
//	double.Verify[FooDependency](t, r, "DoSomethingDifferent", double.Once())
package double

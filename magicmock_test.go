package magicmock_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/magicmock"
	"github.com/km-arc/magicmock/framework/config"
	"github.com/km-arc/magicmock/framework/double"
)

// ── capabilities ──────────────────────────────────────────────────────────────

type FooDependency interface {
	DoSomethingDifferent() int
}

type AnotherFooDependency interface {
	Name() string
}

type Transaction interface {
	Commit() error
}

type Session interface {
	OpenTransaction() Transaction
	Flush()
}

type SessionFactory interface {
	OpenSession() Session
}

// ── doubles ───────────────────────────────────────────────────────────────────

type fooDependencyDouble struct{ double.Double }

func (d *fooDependencyDouble) DoSomethingDifferent() int { return d.Called().Int(0) }

type anotherFooDependencyDouble struct{ double.Double }

func (d *anotherFooDependencyDouble) Name() string { return d.Called().String(0) }

type transactionDouble struct{ double.Double }

func (d *transactionDouble) Commit() error { return d.Called().Error(0) }

type sessionDouble struct{ double.Double }

func (d *sessionDouble) OpenTransaction() Transaction {
	return double.Get[Transaction](d.Called(), 0)
}

func (d *sessionDouble) Flush() { d.Called() }

type sessionFactoryDouble struct{ double.Double }

func (d *sessionFactoryDouble) OpenSession() Session {
	return double.Get[Session](d.Called(), 0)
}

func init() {
	double.Register(double.Default, func() FooDependency { return &fooDependencyDouble{} })
	double.Register(double.Default, func() AnotherFooDependency { return &anotherFooDependencyDouble{} })
	double.Register(double.Default, func() Transaction { return &transactionDouble{} })
	double.Register(double.Default, func() Session { return &sessionDouble{} })
	double.Register(double.Default, func() SessionFactory { return &sessionFactoryDouble{} })
}

// ── types under test ──────────────────────────────────────────────────────────

type Foo struct {
	dependency FooDependency
	another    AnotherFooDependency
}

func NewFoo(dependency FooDependency, another AnotherFooDependency) *Foo {
	return &Foo{dependency: dependency, another: another}
}

func (f *Foo) DoSomething() int { return f.dependency.DoSomethingDifferent() }

type repository struct{ factory SessionFactory }

func newRepository(factory SessionFactory) *repository { return &repository{factory: factory} }

func (r *repository) Save() error {
	s := r.factory.OpenSession()
	s.Flush()
	return s.OpenTransaction().Commit()
}

type ConcreteDependency struct{ value int }

func NewConcreteDependency(value *int) *ConcreteDependency {
	if value == nil {
		return &ConcreteDependency{value: -100}
	}
	return &ConcreteDependency{value: *value}
}

type ClassWithConcreteDependency struct{ dependency *ConcreteDependency }

func NewClassWithConcreteDependency(dependency *ConcreteDependency) *ClassWithConcreteDependency {
	return &ClassWithConcreteDependency{dependency: dependency}
}

func (c *ClassWithConcreteDependency) Value() int { return c.dependency.value }

type fooImpl struct{ another AnotherFooDependency }

func newFooImpl(another AnotherFooDependency) *fooImpl { return &fooImpl{another: another} }

func (f *fooImpl) DoSomethingDifferent() int { return len(f.another.Name()) + 1 }

// recordingTB captures failures so tests can assert on them.
type recordingTB struct {
	testing.TB
	errors []string
	fatals []string
}

func (r *recordingTB) Helper() {}

func (r *recordingTB) Errorf(format string, args ...any) {
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recordingTB) Fatalf(format string, args ...any) {
	r.fatals = append(r.fatals, fmt.Sprintf(format, args...))
}

//
// -----------------------------------------------------------------------------
// Scenarios
// -----------------------------------------------------------------------------

// TestFoo_SetupAndVerify covers configuring the injected double and counting its calls.
func TestFoo_SetupAndVerify(t *testing.T) {
	t.Parallel()

	m := magicmock.New(t)
	m.Constructors(NewFoo)

	foo := magicmock.Resolve[*Foo](m)
	magicmock.Setup[FooDependency](m, "DoSomethingDifferent").Return(2)

	err := magicmock.Mock[FooDependency](m).Check("DoSomethingDifferent", double.Once())
	assert.ErrorIs(t, err, double.ErrVerification)

	assert.Equal(t, 2, foo.DoSomething())
	assert.True(t, magicmock.Verify[FooDependency](m, "DoSomethingDifferent", double.Once()))

	assert.Equal(t, 2, foo.DoSomething())
	err = magicmock.Mock[FooDependency](m).Check("DoSomethingDifferent", double.Once())
	assert.ErrorIs(t, err, double.ErrVerification)
}

// TestFoo_VerifyReportsThroughTest verifies a failed Verify lands on the bound test.
func TestFoo_VerifyReportsThroughTest(t *testing.T) {
	t.Parallel()

	rt := &recordingTB{TB: t}
	m := magicmock.New(rt)
	m.Constructors(NewFoo)
	magicmock.Resolve[*Foo](m)

	assert.False(t, magicmock.Verify[FooDependency](m, "DoSomethingDifferent", double.Once()))
	require.Len(t, rt.errors, 1)
	assert.Contains(t, rt.errors[0], "expected exactly 1 call(s), got 0")
}

// TestChainedResolution covers stubs returning further session doubles.
func TestChainedResolution(t *testing.T) {
	t.Parallel()

	m := magicmock.New(t)
	m.Constructors(newRepository)

	magicmock.AndResolve[Session](magicmock.Setup[SessionFactory](m, "OpenSession"), m)
	magicmock.AndResolve[Transaction](magicmock.Setup[Session](m, "OpenTransaction"), m)

	repo := magicmock.Resolve[*repository](m)
	require.NoError(t, repo.Save())

	magicmock.Verify[SessionFactory](m, "OpenSession", double.Once())
	magicmock.Verify[Session](m, "OpenTransaction", double.Once())
	magicmock.Verify[Session](m, "Flush", double.Once())
	magicmock.Verify[Transaction](m, "Commit", double.Once())

	assert.Same(t, magicmock.Double[Session](m), repo.factory.OpenSession())
}

// TestConcreteDependency_BoundValue covers a bound *int flowing through a constructor chain.
func TestConcreteDependency_BoundValue(t *testing.T) {
	t.Parallel()

	m := magicmock.New(t)
	m.Constructors(NewConcreteDependency, NewClassWithConcreteDependency)

	eleven := 11
	magicmock.BindInstance(m, &eleven)

	assert.Equal(t, 11, magicmock.Resolve[*ClassWithConcreteDependency](m).Value())
}

// TestConcreteDependency_SetInstance covers binding by dynamic type.
func TestConcreteDependency_SetInstance(t *testing.T) {
	t.Parallel()

	m := magicmock.New(t)
	m.Constructors(NewConcreteDependency, NewClassWithConcreteDependency)
	m.SetInstance(NewConcreteDependency(nil))

	assert.Equal(t, -100, magicmock.Resolve[*ClassWithConcreteDependency](m).Value())
}

//
// -----------------------------------------------------------------------------
// Sessions and bindings
// -----------------------------------------------------------------------------

// TestDouble_SharedWithinSession verifies one double per capability per session.
func TestDouble_SharedWithinSession(t *testing.T) {
	t.Parallel()

	m := magicmock.New(t)
	m.Constructors(NewFoo)

	foo := magicmock.Resolve[*Foo](m)
	assert.Same(t, magicmock.Double[FooDependency](m), foo.dependency)
	assert.Same(t, magicmock.Double[AnotherFooDependency](m), foo.another)
	assert.NotSame(t, foo, magicmock.Resolve[*Foo](m))

	other := magicmock.New(t)
	assert.NotSame(t, magicmock.Double[FooDependency](m), magicmock.Double[FooDependency](other))
}

// TestBind_Factory verifies Bind runs the factory per resolution.
func TestBind_Factory(t *testing.T) {
	t.Parallel()

	m := magicmock.New(t)
	calls := 0
	magicmock.Bind(m, func() FooDependency {
		calls++
		return &fooImpl{}
	})

	a := magicmock.Resolve[FooDependency](m)
	b := magicmock.Resolve[FooDependency](m)
	assert.Equal(t, 2, calls)
	assert.NotSame(t, a, b)
}

// TestBindSubtype verifies the implementation is built with its own dependencies.
func TestBindSubtype(t *testing.T) {
	t.Parallel()

	m := magicmock.New(t)
	m.Constructors(newFooImpl, NewFoo)
	magicmock.BindSubtype[FooDependency, *fooImpl](m)

	foo := magicmock.Resolve[*Foo](m)
	impl, ok := foo.dependency.(*fooImpl)
	require.True(t, ok)
	assert.Same(t, magicmock.Double[AnotherFooDependency](m), impl.another)
	assert.Equal(t, 1, foo.DoSomething())
}

// TestBindSubtype_Incompatible verifies registration misuse fails the test.
func TestBindSubtype_Incompatible(t *testing.T) {
	t.Parallel()

	rt := &recordingTB{TB: t}
	m := magicmock.New(rt)
	magicmock.BindSubtype[FooDependency, *Foo](m)

	require.Len(t, rt.fatals, 1)
	assert.Contains(t, rt.fatals[0], "is not assignable to")
}

// TestResolve_FailureIsFatal verifies unresolvable types fail the test.
func TestResolve_FailureIsFatal(t *testing.T) {
	t.Parallel()

	rt := &recordingTB{TB: t}
	m := magicmock.New(rt)

	assert.Nil(t, magicmock.Resolve[chan int](m))
	require.Len(t, rt.fatals, 1)
	assert.Contains(t, rt.fatals[0], "unsupported type chan int")
}

// TestNewWithConfig_AppliesSettings verifies an explicit config reaches the session.
func TestNewWithConfig_AppliesSettings(t *testing.T) {
	t.Parallel()

	rt := &recordingTB{TB: t}
	m := magicmock.NewWithConfig(rt, &config.Config{MaxDepth: 1, LogLevel: "DEBUG"})
	m.Constructors(NewFoo)

	magicmock.Resolve[*Foo](m)
	require.Len(t, rt.fatals, 1)
	assert.Contains(t, rt.fatals[0], "depth exceeds 1")

	d := magicmock.NewWithConfig(t, nil)
	d.Constructors(NewFoo)
	assert.NotNil(t, magicmock.Resolve[*Foo](d))
}

// TestVerifyCalled_DefaultsToAtLeastOnce verifies the default call-count expectation.
func TestVerifyCalled_DefaultsToAtLeastOnce(t *testing.T) {
	t.Parallel()

	rt := &recordingTB{TB: t}
	m := magicmock.New(rt)
	m.Constructors(NewFoo)
	foo := magicmock.Resolve[*Foo](m)

	assert.False(t, magicmock.VerifyCalled[FooDependency](m, "DoSomethingDifferent"))
	require.Len(t, rt.errors, 1)

	foo.DoSomething()
	foo.DoSomething()
	assert.True(t, magicmock.VerifyCalled[FooDependency](m, "DoSomethingDifferent"))
	assert.Len(t, rt.errors, 1)
}

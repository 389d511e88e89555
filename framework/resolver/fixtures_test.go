package resolver

import (
	"errors"
	"reflect"
)

// ── capability types ─────────────────────────────────────────────────────────

type fooDependency interface{ DoSomethingDifferent() int }

type anotherFooDependency interface{ Blofs() }

type clock interface{ Now() int }

type unknownCapability interface{ Unknown() }

// ── doubles handed out by the fake engine ────────────────────────────────────

type fakeFooDependency struct{ calls, ret int }

func (f *fakeFooDependency) DoSomethingDifferent() int {
	f.calls++
	return f.ret
}

type fakeAnotherFooDependency struct{ blofs int }

func (f *fakeAnotherFooDependency) Blofs() { f.blofs++ }

type fakeClock struct{ now int }

func (f *fakeClock) Now() int { return f.now }

var errNoFake = errors.New("no fake for type")

// fakeEngine mints a new fake per call and counts how many it made.
type fakeEngine struct{ created int }

func (e *fakeEngine) NewDouble(t reflect.Type) (any, error) {
	e.created++
	switch t {
	case reflect.TypeOf((*fooDependency)(nil)).Elem():
		return &fakeFooDependency{}, nil
	case reflect.TypeOf((*anotherFooDependency)(nil)).Elem():
		return &fakeAnotherFooDependency{}, nil
	case reflect.TypeOf((*clock)(nil)).Elem():
		return &fakeClock{}, nil
	}
	return nil, errNoFake
}

func newTestResolver(opts ...Option) (*Resolver, *fakeEngine) {
	e := &fakeEngine{}
	return New(append([]Option{WithEngine(e)}, opts...)...), e
}

// ── concrete types ───────────────────────────────────────────────────────────

type Foo struct {
	dependency        fooDependency
	anotherDependency anotherFooDependency
}

func NewFoo(d fooDependency, a anotherFooDependency) *Foo {
	return &Foo{dependency: d, anotherDependency: a}
}

func (f *Foo) DoSomething() int { return f.dependency.DoSomethingDifferent() }

type ConcreteDependency struct{ someInt int }

func NewConcreteDependency(someInt *int) *ConcreteDependency {
	if someInt == nil {
		return &ConcreteDependency{someInt: -100}
	}
	return &ConcreteDependency{someInt: *someInt}
}

func (c *ConcreteDependency) MoreDifferentThings() int { return c.someInt }

type ClassWithConcreteDependency struct{ dependency *ConcreteDependency }

func NewClassWithConcreteDependency(d *ConcreteDependency) *ClassWithConcreteDependency {
	return &ClassWithConcreteDependency{dependency: d}
}

func (c *ClassWithConcreteDependency) DifferentStuff() int { return c.dependency.MoreDifferentThings() }

// plain has no constructor and is instantiated directly.
type plain struct{ n int }

// cycle: *cycleA -> *cycleB -> *cycleA
type cycleA struct{ b *cycleB }
type cycleB struct{ a *cycleA }

func newCycleA(b *cycleB) *cycleA { return &cycleA{b: b} }
func newCycleB(a *cycleA) *cycleB { return &cycleB{a: a} }

// chain of depth 3: *level1 -> *level2 -> *level3
type level1 struct{ next *level2 }
type level2 struct{ next *level3 }
type level3 struct{}

func newLevel1(n *level2) *level1 { return &level1{next: n} }
func newLevel2(n *level3) *level2 { return &level2{next: n} }

// memoryStore implements store with its own dependency.
type store interface{ Get(key string) string }

type memoryStore struct{ clock clock }

func newMemoryStore(c clock) *memoryStore { return &memoryStore{clock: c} }

func (m *memoryStore) Get(string) string { return "" }

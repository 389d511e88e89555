package resolver

import (
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// constructor is the descriptor of one registered constructor function.
type constructor struct {
	fn  reflect.Value
	out reflect.Type

	// params excludes a trailing variadic parameter, which is always called
	// with no arguments.
	params []reflect.Type

	// fails is set when the second result is an error.
	fails bool
}

func newConstructor(fn any) (*constructor, error) {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, &ConstructorError{Func: reflect.TypeOf(fn), Reason: "not a function"}
	}
	if v.IsNil() {
		return nil, &ConstructorError{Func: v.Type(), Reason: "nil function"}
	}

	ft := v.Type()
	switch {
	case ft.NumOut() == 0:
		return nil, &ConstructorError{Func: ft, Reason: "no result"}
	case ft.NumOut() > 2:
		return nil, &ConstructorError{Func: ft, Reason: "too many results"}
	case ft.NumOut() == 2 && ft.Out(1) != errorType:
		return nil, &ConstructorError{Func: ft, Reason: "second result must be error"}
	case ft.Out(0).Kind() == reflect.Interface:
		// interface types always resolve to doubles or bindings
		return nil, &ConstructorError{Func: ft, Reason: "interface result " + ft.Out(0).String() + ": use Bind or BindSubtype"}
	}

	n := ft.NumIn()
	if ft.IsVariadic() {
		n--
	}
	params := make([]reflect.Type, n)
	for i := range params {
		params[i] = ft.In(i)
	}

	return &constructor{fn: v, out: ft.Out(0), params: params, fails: ft.NumOut() == 2}, nil
}

func (c *constructor) call(args []reflect.Value) (any, error) {
	results := c.fn.Call(args)
	if c.fails && !results[1].IsNil() {
		return nil, results[1].Interface().(error)
	}
	return results[0].Interface(), nil
}

// selector picks the constructor that drives construction of a type.
type selector struct {
	// result type → constructors in registration order
	byType map[reflect.Type][]*constructor
}

func newSelector() *selector {
	return &selector{byType: make(map[reflect.Type][]*constructor)}
}

func (s *selector) add(c *constructor) {
	s.byType[c.out] = append(s.byType[c.out], c)
}

// choose returns the least demanding constructor for t: the one with the fewest
// parameters. Ties go to the constructor registered first.
func (s *selector) choose(t reflect.Type) (*constructor, bool) {
	var best *constructor
	for _, c := range s.byType[t] {
		if best == nil || len(c.params) < len(best.params) {
			best = c
		}
	}
	return best, best != nil
}

// Constructors registers constructor functions. Each must have the shape
// func(P1, ..., Pn) T or func(P1, ..., Pn) (T, error) and is keyed by T.
//
// Either all functions are registered or, on the first invalid one, none are.
//
//	err := r.Constructors(NewFoo, NewFooWithClock)
func (r *Resolver) Constructors(fns ...any) error {
	ctors := make([]*constructor, 0, len(fns))
	for _, fn := range fns {
		c, err := newConstructor(fn)
		if err != nil {
			return err
		}
		ctors = append(ctors, c)
	}
	for _, c := range ctors {
		r.selector.add(c)
	}
	return nil
}

// Constructible reports whether at least one constructor is registered for t.
func (r *Resolver) Constructible(t reflect.Type) bool {
	_, ok := r.selector.choose(t)
	return ok
}

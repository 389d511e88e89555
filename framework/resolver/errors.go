package resolver

import (
	"errors"
	"reflect"
	"strconv"
	"strings"
)

// Sentinel errors. Every typed error below unwraps to one of them, so callers
// can match with errors.Is without caring about the concrete struct.
var (
	ErrConstruction        = errors.New("resolver: construction failed")
	ErrUnsupportedType     = errors.New("resolver: unsupported type")
	ErrCyclicDependency    = errors.New("resolver: cyclic dependency")
	ErrDepthExceeded       = errors.New("resolver: resolution depth exceeded")
	ErrInvalidConstructor  = errors.New("resolver: invalid constructor")
	ErrIncompatibleBinding = errors.New("resolver: incompatible binding")
)

// ── Resolution errors ─────────────────────────────────────────────────────────

// ConstructionError is returned when a constructor parameter cannot be
// resolved or when the selected constructor itself returns an error.
type ConstructionError struct {
	// Type is the type being constructed.
	Type reflect.Type

	// Param is the index of the unsatisfiable parameter, or -1 when the
	// constructor was called and returned an error.
	Param int

	// ParamType is the type of the failing parameter (nil when Param is -1).
	ParamType reflect.Type

	Err error
}

func (e *ConstructionError) Error() string {
	if e.Param < 0 {
		return "resolver: constructing " + typeName(e.Type) + ": " + e.Err.Error()
	}
	return "resolver: constructing " + typeName(e.Type) +
		": parameter " + strconv.Itoa(e.Param) + " (" + typeName(e.ParamType) + "): " + e.Err.Error()
}

func (e *ConstructionError) Unwrap() []error { return []error{ErrConstruction, e.Err} }

// UnsupportedTypeError is returned when a type is neither bound, constructible,
// directly instantiable nor a capability type the double engine can serve.
type UnsupportedTypeError struct {
	Type   reflect.Type
	Reason string

	// Err is the underlying cause, typically an error from the double engine.
	Err error
}

func (e *UnsupportedTypeError) Error() string {
	// Example: resolver: unsupported type chan int: no binding, constructor or double
	return "resolver: unsupported type " + typeName(e.Type) + ": " + e.Reason
}

func (e *UnsupportedTypeError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnsupportedType}
	}
	return []error{ErrUnsupportedType, e.Err}
}

// CyclicDependencyError reports a constructor dependency cycle. Path starts and
// ends with the same type.
type CyclicDependencyError struct {
	Path []reflect.Type
}

func (e *CyclicDependencyError) Error() string {
	names := make([]string, len(e.Path))
	for i, t := range e.Path {
		names[i] = typeName(t)
	}
	return "resolver: cyclic dependency: " + strings.Join(names, " -> ")
}

func (e *CyclicDependencyError) Unwrap() error { return ErrCyclicDependency }

// DepthExceededError is returned when a dependency graph nests deeper than the
// configured maximum depth.
type DepthExceededError struct {
	Type  reflect.Type
	Depth int
}

func (e *DepthExceededError) Error() string {
	return "resolver: resolving " + typeName(e.Type) + ": depth exceeds " + strconv.Itoa(e.Depth)
}

func (e *DepthExceededError) Unwrap() error { return ErrDepthExceeded }

// ── Registration errors ───────────────────────────────────────────────────────

// ConstructorError is returned by Constructors for functions that cannot act
// as constructors.
type ConstructorError struct {
	Func   reflect.Type
	Reason string
}

func (e *ConstructorError) Error() string {
	return "resolver: invalid constructor " + typeName(e.Func) + ": " + e.Reason
}

func (e *ConstructorError) Unwrap() error { return ErrInvalidConstructor }

// BindingError is returned by BindSubtype when Impl does not satisfy Key, and
// during resolution when a binding produces a value of the wrong type.
type BindingError struct {
	Key  reflect.Type
	Impl reflect.Type
}

func (e *BindingError) Error() string {
	return "resolver: " + typeName(e.Impl) + " is not assignable to " + typeName(e.Key)
}

func (e *BindingError) Unwrap() error { return ErrIncompatibleBinding }

func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

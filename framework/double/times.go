package double

import (
	"errors"
	"reflect"
	"strconv"
)

// ErrVerification is matched by every *VerificationError.
var ErrVerification = errors.New("double: verification failed")

// Times is an allowed range of call counts.
type Times struct {
	min int
	max int // negative: unbounded
	msg string
}

// Never allows zero calls.
func Never() Times { return Times{min: 0, max: 0} }

// Once allows exactly one call.
func Once() Times { return Exactly(1) }

// Exactly allows exactly n calls.
func Exactly(n int) Times { return Times{min: n, max: n} }

// AtLeast allows n or more calls.
func AtLeast(n int) Times { return Times{min: n, max: -1} }

// AtLeastOnce allows one or more calls.
func AtLeastOnce() Times { return AtLeast(1) }

// AtMost allows up to n calls.
func AtMost(n int) Times { return Times{min: 0, max: n} }

// Between allows lo to hi calls, both inclusive.
func Between(lo, hi int) Times { return Times{min: lo, max: hi} }

// Because attaches a message reported when verification fails.
//
//	d.Verify(t, "Commit", double.Once().Because("the order must be persisted"))
func (t Times) Because(msg string) Times {
	t.msg = msg
	return t
}

// Allows reports whether n calls satisfy t.
func (t Times) Allows(n int) bool {
	return n >= t.min && (t.max < 0 || n <= t.max)
}

func (t Times) String() string {
	switch {
	case t.max < 0:
		return "at least " + strconv.Itoa(t.min)
	case t.min == t.max:
		return "exactly " + strconv.Itoa(t.min)
	case t.min == 0:
		return "at most " + strconv.Itoa(t.max)
	default:
		return "between " + strconv.Itoa(t.min) + " and " + strconv.Itoa(t.max)
	}
}

// VerificationError reports a call count outside the expected range.
type VerificationError struct {
	Capability reflect.Type
	Method     string
	Want       Times
	Got        int

	// Message is the text given with Times.Because, if any.
	Message string
}

func (e *VerificationError) Error() string {
	// Example: double: FooDependency.DoSomethingDifferent: expected exactly 1 call(s), got 0
	name := e.Method
	if e.Capability != nil {
		name = e.Capability.Name() + "." + e.Method
	}
	out := "double: " + name + ": expected " + e.Want.String() + " call(s), got " + strconv.Itoa(e.Got)
	if e.Message != "" {
		out += ": " + e.Message
	}
	return out
}

func (e *VerificationError) Unwrap() error { return ErrVerification }

package magicmock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/km-arc/magicmock/framework/config"
	"github.com/km-arc/magicmock/framework/double"
	"github.com/km-arc/magicmock/framework/logging"
	"github.com/km-arc/magicmock/framework/resolver"
)

// Magic is a resolver session bound to one test.
type Magic struct {
	t testing.TB
	r *resolver.Resolver
}

// loadConfig reads .env and the environment once per process; godotenv
// mutates the process environment, which parallel tests share.
var loadConfig = sync.OnceValue(func() *config.Config { return config.Load() })

// New starts a session for t. The session uses double.Default and the config
// from the environment (see config.Load), read once per process; opts are
// applied last.
//
// With MAGICMOCK_LOG_LEVEL set, resolution steps are logged through t.Log.
func New(t testing.TB, opts ...resolver.Option) *Magic {
	t.Helper()
	cfg := *loadConfig()
	return NewWithConfig(t, &cfg, opts...)
}

// NewWithConfig is New with an explicit config instead of the environment.
func NewWithConfig(t testing.TB, cfg *config.Config, opts ...resolver.Option) *Magic {
	t.Helper()

	if cfg == nil {
		cfg = config.Default()
	}
	base := []resolver.Option{
		double.Default.Option(),
		resolver.WithConfig(cfg),
	}
	if cfg.LogLevel != "" {
		base = append(base, resolver.WithLogger(logging.ForTest(t, cfg.LogLevel)))
	}
	return &Magic{t: t, r: resolver.New(append(base, opts...)...)}
}

// Resolver exposes the underlying session.
func (m *Magic) Resolver() *resolver.Resolver { return m.r }

// SetInstance binds v under its dynamic type.
func (m *Magic) SetInstance(v any) { m.r.SetInstance(v) }

// Constructors registers constructor functions, failing the test on an
// invalid one.
func (m *Magic) Constructors(fns ...any) {
	m.t.Helper()
	if err := m.r.Constructors(fns...); err != nil {
		m.t.Fatalf("magicmock: %v", err)
	}
}

// Use registers providers, failing the test if one cannot register.
func (m *Magic) Use(providers ...resolver.Provider) {
	m.t.Helper()
	if err := m.r.Use(providers...); err != nil {
		m.t.Fatalf("magicmock: %v", err)
	}
}

// Resolve builds a T, failing the test if it cannot.
//
//	foo := magicmock.Resolve[*Foo](m)
func Resolve[T any](m *Magic) T {
	m.t.Helper()
	v, err := resolver.Resolve[T](m.r)
	if err != nil {
		m.t.Fatalf("magicmock: %v", err)
	}
	return v
}

// Double returns the session's double for the capability T, as T.
func Double[T any](m *Magic) T {
	m.t.Helper()
	v, err := resolver.GetDouble[T](m.r)
	if err != nil {
		m.t.Fatalf("magicmock: %v", err)
	}
	return v
}

// Mock returns the control side of the session's double for T.
func Mock[T any](m *Magic) *double.Double {
	m.t.Helper()
	d, err := double.Of[T](m.r)
	if err != nil {
		m.t.Fatalf("magicmock: %v", err)
	}
	return d
}

// Setup starts configuring method on the double for T. With no args the
// expectation matches any arguments.
func Setup[T any](m *Magic, method string, args ...any) *mock.Call {
	m.t.Helper()
	return Mock[T](m).Expect(method, args...)
}

// Verify reports a failure when method on the double for T was not called
// the expected number of times.
func Verify[T any](m *Magic, method string, times double.Times, args ...any) bool {
	m.t.Helper()
	return Mock[T](m).Verify(m.t, method, times, args...)
}

// VerifyCalled is Verify with double.AtLeastOnce.
func VerifyCalled[T any](m *Magic, method string, args ...any) bool {
	m.t.Helper()
	return Mock[T](m).VerifyCalled(m.t, method, args...)
}

// AndResolve makes call return the resolved R.
//
//	magicmock.AndResolve[Session](magicmock.Setup[SessionFactory](m, "OpenSession"), m)
func AndResolve[R any](call *mock.Call, m *Magic) *mock.Call {
	m.t.Helper()
	call, err := resolver.TryAndResolve[R](call, m.r)
	if err != nil {
		m.t.Fatalf("magicmock: %v", err)
	}
	return call
}

// Bind binds T to fn, called on every resolution of T.
func Bind[T any](m *Magic, fn func() T) {
	resolver.Bind(m.r, func(*resolver.Resolver) (T, error) { return fn(), nil })
}

// BindInstance binds T to v.
func BindInstance[T any](m *Magic, v T) {
	resolver.BindInstance(m.r, v)
}

// BindSubtype resolves K by resolving I, failing the test if I does not
// satisfy K.
func BindSubtype[K, I any](m *Magic) {
	m.t.Helper()
	if err := resolver.BindSubtype[K, I](m.r); err != nil {
		m.t.Fatalf("magicmock: %v", err)
	}
}

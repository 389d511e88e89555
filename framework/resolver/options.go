package resolver

import (
	"go.uber.org/zap"

	"github.com/km-arc/magicmock/framework/config"
	"github.com/km-arc/magicmock/framework/logging"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithEngine sets the double engine used for capability types.
func WithEngine(e Engine) Option {
	return func(r *Resolver) { r.doubles.engine = e }
}

// WithLogger sets the logger. Resolution steps are logged at Debug.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithMaxDepth bounds graph nesting. Non-positive values are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithStrictValues makes unbound primitive types fail with
// *UnsupportedTypeError instead of resolving to their zero value.
func WithStrictValues(strict bool) Option {
	return func(r *Resolver) { r.strict = strict }
}

// WithProviders registers providers as if by Use. A provider whose Register
// fails makes the first resolution fail with that error.
func WithProviders(providers ...Provider) Option {
	return func(r *Resolver) {
		if err := r.Use(providers...); err != nil && r.bootErr == nil {
			r.bootErr = err
		}
	}
}

// WithConfig applies a loaded config. A non-empty LogLevel installs a
// production logger at that level; pass WithLogger afterwards to override it.
func WithConfig(cfg *config.Config) Option {
	return func(r *Resolver) {
		if cfg == nil {
			return
		}
		WithMaxDepth(cfg.MaxDepth)(r)
		r.strict = cfg.StrictValues
		if cfg.LogLevel == "" {
			return
		}
		l, err := logging.New(cfg.LogLevel)
		if err != nil {
			return
		}
		r.logger = l
	}
}

package resolver

import "reflect"

// ── Provider interface ────────────────────────────────────────────────────────

// Provider bundles registrations that several tests share: constructors,
// bindings, double setups.
//
// Register is called once when the provider is added. Boot runs after every
// provider has been registered, right before the first resolution, so it may
// resolve types and configure doubles.
//
//	type storeFixtures struct{ resolver.BaseProvider }
//
//	func (storeFixtures) Register(r *resolver.Resolver) error {
//	    return r.Constructors(store.New, store.NewIndex)
//	}
type Provider interface {
	Register(r *Resolver) error
	Boot(r *Resolver) error
}

// BaseProvider is an embeddable struct with a no-op Boot.
type BaseProvider struct{}

func (BaseProvider) Boot(*Resolver) error { return nil }

// ── Registration & boot ───────────────────────────────────────────────────────

// Use registers providers in order. Registering the same provider twice is a
// no-op; a provider whose Register failed may be used again. Providers added
// after boot are booted immediately. Nil providers are skipped.
func (r *Resolver) Use(providers ...Provider) error {
	for _, p := range providers {
		if p == nil || r.hasProvider(p) {
			continue
		}
		if err := p.Register(r); err != nil {
			return err
		}
		r.providers = append(r.providers, p)

		if r.booted {
			if err := p.Boot(r); err != nil {
				return err
			}
		}
	}
	return nil
}

// hasProvider reports whether p is already registered. Pointer providers match
// by identity, value providers by deep equality, so providers holding slices
// or maps are never hashed.
func (r *Resolver) hasProvider(p Provider) bool {
	for _, q := range r.providers {
		if sameProvider(p, q) {
			return true
		}
	}
	return false
}

func sameProvider(a, b Provider) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) {
		return false
	}
	if ta.Kind() == reflect.Pointer {
		return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
	}
	return reflect.DeepEqual(a, b)
}

// Boot boots every registered provider. It runs at most once and is called
// automatically before the first resolution.
func (r *Resolver) Boot() error {
	if r.bootErr != nil {
		return r.bootErr
	}
	if r.booted {
		return nil
	}
	r.booted = true
	for _, p := range r.providers {
		if err := p.Boot(r); err != nil {
			r.bootErr = err
			return err
		}
	}
	return nil
}

// Booted reports whether Boot has run.
func (r *Resolver) Booted() bool { return r.booted }

// Providers returns the registered providers in registration order.
func (r *Resolver) Providers() []Provider { return r.providers }

package unitofwork

import (
	"fmt"
	"reflect"

	"github.com/realestate/backend/internal/domain/shared"
)

// Provider resolves the dependencies a handler needs, by string key or by
// type. One Provider lives for exactly one transaction scope; derived
// providers layer extra bindings on a structural copy without touching the
// parent.
type Provider struct {
	bindings map[string]any
	byType   map[reflect.Type]string
	// types registered more than once; type lookup for these fails
	ambiguous map[reflect.Type]bool
	counter   int
}

// NewProvider creates an empty provider
func NewProvider() *Provider {
	return &Provider{
		bindings:  make(map[string]any),
		byType:    make(map[reflect.Type]string),
		ambiguous: make(map[reflect.Type]bool),
	}
}

// Register binds instance under key and returns the storage key actually
// used. When the key is already taken, the new instance wins the key and the
// displaced instance is re-keyed with a counter suffix so it stays
// retrievable; callers must not assume the displaced sibling keeps its
// original key.
func (p *Provider) Register(key string, instance any) string {
	if old, taken := p.bindings[key]; taken {
		var derived string
		for {
			derived = fmt.Sprintf("%s-%d", key, p.counter)
			p.counter++
			if _, used := p.bindings[derived]; !used {
				break
			}
		}
		p.bindings[derived] = old
		p.reindex(old, derived)
	}

	p.bindings[key] = instance
	p.index(instance, key)

	return key
}

// Has reports whether a binding exists for the given string key
func (p *Provider) Has(key string) bool {
	_, ok := p.bindings[key]
	return ok
}

// HasType reports whether exactly one binding satisfies the given type
func (p *Provider) HasType(t reflect.Type) bool {
	_, err := p.ResolveType(t)
	return err == nil
}

// Resolve returns the instance bound under the given key, or a not-found
// error when the key is unbound
func (p *Provider) Resolve(key string) (any, error) {
	instance, ok := p.bindings[key]
	if !ok {
		return nil, shared.ErrNotFound.WithCause(fmt.Errorf("no dependency bound under %q", key))
	}
	return instance, nil
}

// ResolveType returns the single instance whose declared type satisfies t.
// Zero candidates is a not-found error; two or more is a configuration error,
// since picking one silently would hide a wiring defect.
func (p *Provider) ResolveType(t reflect.Type) (any, error) {
	var matches []string
	for declared, key := range p.byType {
		if !satisfies(declared, t) {
			continue
		}
		if p.ambiguous[declared] {
			return nil, shared.ErrAmbiguousBinding.WithCause(fmt.Errorf("type %s is bound more than once", declared))
		}
		matches = append(matches, key)
	}

	switch len(matches) {
	case 0:
		return nil, shared.ErrNotFound.WithCause(fmt.Errorf("no dependency satisfies type %s", t))
	case 1:
		return p.bindings[matches[0]], nil
	default:
		return nil, shared.ErrAmbiguousBinding.WithCause(fmt.Errorf("%d dependencies satisfy type %s", len(matches), t))
	}
}

// Derive returns a new provider seeded with a copy of all current bindings,
// with extra added on top. Later changes to either provider do not affect the
// other; the copy is structural (shallow), the bound instances are shared.
func (p *Provider) Derive(extra map[string]any) *Provider {
	derived := &Provider{
		bindings:  make(map[string]any, len(p.bindings)+len(extra)),
		byType:    make(map[reflect.Type]string, len(p.byType)),
		ambiguous: make(map[reflect.Type]bool, len(p.ambiguous)),
		counter:   p.counter,
	}
	for k, v := range p.bindings {
		derived.bindings[k] = v
	}
	for t, k := range p.byType {
		derived.byType[t] = k
	}
	for t := range p.ambiguous {
		derived.ambiguous[t] = true
	}
	for k, v := range extra {
		derived.Register(k, v)
	}
	return derived
}

// ResolveAs resolves a dependency by its Go type
func ResolveAs[T any](p *Provider) (T, error) {
	var zero T
	instance, err := p.ResolveType(reflect.TypeOf((*T)(nil)).Elem())
	if err != nil {
		return zero, err
	}
	typed, ok := instance.(T)
	if !ok {
		return zero, shared.ErrConfiguration.WithCause(fmt.Errorf("dependency is %T, not the requested type", instance))
	}
	return typed, nil
}

func (p *Provider) index(instance any, key string) {
	t := reflect.TypeOf(instance)
	if t == nil {
		return
	}
	if existing, ok := p.byType[t]; ok && existing != key {
		p.ambiguous[t] = true
		return
	}
	p.byType[t] = key
}

// reindex points the type index at a binding's new key after re-keying
func (p *Provider) reindex(instance any, newKey string) {
	t := reflect.TypeOf(instance)
	if t == nil {
		return
	}
	p.byType[t] = newKey
}

// satisfies reports whether a binding declared as type declared can serve a
// request for type requested
func satisfies(declared, requested reflect.Type) bool {
	if declared == requested {
		return true
	}
	if requested.Kind() == reflect.Interface {
		return declared.Implements(requested)
	}
	return false
}

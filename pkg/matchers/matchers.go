package matchers

import (
	"reflect"
	"sort"
	"sync"

	"github.com/onsi/gomega/format"
	"github.com/onsi/gomega/types"
	"github.com/pkg/errors"
)

// Predicate is a boolean matcher body: true when actual satisfies it.
type Predicate func(actual any) bool

type Registry interface {
	Register(name string, p Predicate)
	Lookup(name string) (Predicate, bool)
	Matcher(name string) (types.GomegaMatcher, error)
	Names() []string
}

type registry struct {
	mu         sync.RWMutex
	predicates map[string]Predicate
}

// NewRegistry returns a registry pre-populated with the built-in isEmpty
// predicate. Callers construct registries explicitly; nothing registers at
// package load time.
func NewRegistry() Registry {
	r := &registry{
		predicates: make(map[string]Predicate),
	}
	r.Register("isEmpty", IsEmpty)
	return r
}

// Register stores p under name, replacing any previous registration.
func (r *registry) Register(name string, p Predicate) {
	if name == "" || p == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.predicates[name] = p
}

func (r *registry) Lookup(name string) (Predicate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.predicates[name]
	return p, ok
}

// Matcher adapts a registered predicate to a gomega matcher.
func (r *registry) Matcher(name string) (types.GomegaMatcher, error) {
	p, ok := r.Lookup(name)
	if !ok {
		return nil, errors.Errorf("no matcher registered under %q", name)
	}
	return &predicateMatcher{
		name:      name,
		predicate: p,
	}, nil
}

func (r *registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.predicates))
	for name := range r.predicates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsEmpty is true for a non-nil value whose length is zero.
func IsEmpty(actual any) bool {
	if actual == nil {
		return false
	}

	v := reflect.ValueOf(actual)
	switch v.Kind() {
	case reflect.String, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return v.Len() == 0
	default:
		return false
	}
}

type predicateMatcher struct {
	name      string
	predicate Predicate
}

func (m *predicateMatcher) Match(actual any) (bool, error) {
	return m.predicate(actual), nil
}

func (m *predicateMatcher) FailureMessage(actual any) string {
	return format.Message(actual, "to satisfy "+m.name)
}

func (m *predicateMatcher) NegatedFailureMessage(actual any) string {
	return format.Message(actual, "not to satisfy "+m.name)
}

// Package structspy spies on the exported func fields of struct values:
// it walks a struct and its Prototype chain, bulk-installs testify-backed
// spies, resets them, and inspects recorded calls.
package structspy

import (
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/structspy/structspy/pkg/calls"
	"github.com/structspy/structspy/pkg/matchers"
	"github.com/structspy/structspy/pkg/optional"
	"github.com/structspy/structspy/pkg/propwalk"
	"github.com/structspy/structspy/pkg/spyctl"
	"github.com/structspy/structspy/pkg/spyfw"
)

var (
	walker    = propwalk.NewWalker()
	spies     = spyctl.NewSpyController(spyctl.WithWalker(walker))
	resets    = spyctl.NewResetController(spyctl.WithWalker(walker))
	inspector = calls.NewInspector()

	registryOnce sync.Once
	registry     matchers.Registry
)

// Walk dispatches each distinct accessible, settable property name along
// target's Prototype chain once.
func Walk(target any, visit propwalk.Visitor) {
	walker.Walk(target, visit)
}

func SpyIfUnspied(obj any, name string, behaviors ...spyfw.Behavior) (*spyfw.Spy, error) {
	return spies.SpyIfUnspied(obj, name, behaviors...)
}

func SpyAll(obj any) any {
	return spies.SpyAll(obj)
}

func SpyAllExcept(obj any, except []string, behaviors ...spyfw.Behavior) (any, error) {
	return spies.SpyAllExcept(obj, except, behaviors...)
}

func SpyEach(obj any, names []string, behaviors []spyfw.Behavior) (any, error) {
	return spies.SpyEach(obj, names, behaviors)
}

func ResetSpy(v any) error {
	return resets.ResetSpy(v)
}

func ResetAll(obj any) {
	resets.ResetAll(obj)
}

func ResetAllExcept(obj any, except []string) {
	resets.ResetAllExcept(obj, except)
}

func ResetEach(obj any, names ...string) {
	resets.ResetEach(obj, names...)
}

func IsSpy(v any) bool {
	return spyfw.IsSpy(v)
}

func IsSpied(obj any, name string) bool {
	return spyfw.IsSpied(obj, name)
}

func SpyOf(obj any, name string) (*spyfw.Spy, bool) {
	return spyfw.SpyOf(obj, name)
}

func Restore(v any) error {
	return spyfw.Restore(v)
}

// FindCallWithArgument returns the first of the spy's recorded calls whose
// arguments contain a value equal to argument.
func FindCallWithArgument(s *spyfw.Spy, argument any) optional.Optional[mock.Call] {
	return inspector.FindWithArgument(s, argument)
}

// Matchers returns the process-wide predicate registry, created on first
// use with the built-in isEmpty predicate.
func Matchers() matchers.Registry {
	registryOnce.Do(
		func() {
			registry = matchers.NewRegistry()
		},
	)
	return registry
}

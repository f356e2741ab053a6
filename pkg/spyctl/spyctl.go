package spyctl

import (
	"reflect"

	"github.com/pkg/errors"

	"github.com/structspy/structspy/pkg/collections/set"
	"github.com/structspy/structspy/pkg/multierror"
	"github.com/structspy/structspy/pkg/propwalk"
	"github.com/structspy/structspy/pkg/spyfw"
)

type config struct {
	walker propwalk.Walker
}

type Option func(c *config)

func WithWalker(w propwalk.Walker) Option {
	return func(c *config) {
		c.walker = w
	}
}

func newConfig(opts ...Option) *config {
	c := &config{
		walker: propwalk.NewWalker(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type SpyController interface {
	SpyIfUnspied(obj any, name string, behaviors ...spyfw.Behavior) (*spyfw.Spy, error)
	SpyAll(obj any) any
	SpyAllExcept(obj any, except []string, behaviors ...spyfw.Behavior) (any, error)
	SpyEach(obj any, names []string, behaviors []spyfw.Behavior) (any, error)
}

type spyController struct {
	config *config
}

func NewSpyController(opts ...Option) SpyController {
	return &spyController{
		config: newConfig(opts...),
	}
}

// SpyIfUnspied installs a spy on obj's named func field and applies the
// behaviors. An already spied field returns the existing handle untouched;
// a field that is not a plain func is left alone and returns a nil handle.
func (c *spyController) SpyIfUnspied(
	obj any,
	name string,
	behaviors ...spyfw.Behavior,
) (*spyfw.Spy, error) {
	field, ok := propwalk.FieldOf(obj, name)
	if !ok {
		return nil, nil
	}
	return spyField(field, name, behaviors)
}

func spyField(field reflect.Value, name string, behaviors []spyfw.Behavior) (*spyfw.Spy, error) {
	if existing, ok := spyfw.Lookup(field); ok {
		return existing, nil
	}
	if field.Kind() != reflect.Func || field.IsNil() || !field.CanSet() {
		return nil, nil
	}

	s, err := spyfw.Install(field, name)
	if err != nil {
		return nil, err
	}
	for _, b := range behaviors {
		if err := s.Configure(b); err != nil {
			return s, errors.Wrapf(err, "configuring spy on %s", name)
		}
	}
	return s, nil
}

// SpyAllExcept walks obj and spies every func-valued property whose name is
// not in the exception list. Configuration failures are combined; obj is
// returned either way.
func (c *spyController) SpyAllExcept(
	obj any,
	except []string,
	behaviors ...spyfw.Behavior,
) (any, error) {
	exceptions := set.New(except...)
	errs := multierror.NewBuilder()

	c.config.walker.Walk(
		obj, func(level propwalk.Level, name string) {
			if exceptions.Contains(name) {
				return
			}
			field, ok := level.Field(name)
			if !ok || field.Kind() != reflect.Func {
				return
			}
			_, err := spyField(field, name, behaviors)
			errs.Add(err)
		},
	)

	return obj, errs.Build()
}

func (c *spyController) SpyAll(obj any) any {
	res, _ := c.SpyAllExcept(obj, nil)
	return res
}

// SpyEach spies the named fields. A single behavior applies to every name;
// multiple behaviors pair positionally with the names and a length mismatch
// is an error.
func (c *spyController) SpyEach(
	obj any,
	names []string,
	behaviors []spyfw.Behavior,
) (any, error) {
	if len(behaviors) > 1 && len(behaviors) != len(names) {
		return obj, errors.Errorf(
			"spy each: %d behaviors for %d methods", len(behaviors), len(names),
		)
	}

	errs := multierror.NewBuilder()

	for i, name := range names {
		bs := behaviors
		if len(behaviors) > 1 {
			bs = behaviors[i : i+1]
		}
		_, err := c.SpyIfUnspied(obj, name, bs...)
		errs.Add(err)
	}

	return obj, errs.Build()
}

type ResetController interface {
	ResetSpy(v any) error
	ResetAll(obj any)
	ResetAllExcept(obj any, except []string)
	ResetEach(obj any, names ...string)
}

type resetController struct {
	config *config
}

func NewResetController(opts ...Option) ResetController {
	return &resetController{
		config: newConfig(opts...),
	}
}

// ResetSpy clears a spy handle. Unlike the bulk variants it does not
// pre-filter: a non-spy argument is an error.
func (c *resetController) ResetSpy(v any) error {
	return spyfw.Reset(v)
}

// ResetAllExcept walks obj and resets every currently spied property whose
// name is not in the exception list. Non-spy values are skipped silently.
func (c *resetController) ResetAllExcept(obj any, except []string) {
	exceptions := set.New(except...)

	c.config.walker.Walk(
		obj, func(level propwalk.Level, name string) {
			if exceptions.Contains(name) {
				return
			}
			field, ok := level.Field(name)
			if !ok {
				return
			}
			if s, ok := spyfw.Lookup(field); ok {
				s.Reset()
			}
		},
	)
}

func (c *resetController) ResetAll(obj any) {
	c.ResetAllExcept(obj, nil)
}

// ResetEach resets the named fields that currently carry spies; all other
// names are skipped silently.
func (c *resetController) ResetEach(obj any, names ...string) {
	for _, name := range names {
		if s, ok := spyfw.SpyOf(obj, name); ok {
			s.Reset()
		}
	}
}

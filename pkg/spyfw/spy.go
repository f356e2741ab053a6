package spyfw

import (
	"reflect"
	"sync"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/mock"

	"github.com/structspy/structspy/pkg/propwalk"
)

// Behavior names understood by Configure.
const (
	BehaviorReturn      = "Return"
	BehaviorCallFake    = "CallFake"
	BehaviorCallThrough = "CallThrough"
)

// Behavior is a named post-install configuration with an ordered argument
// list.
type Behavior struct {
	Name string
	Args []any
}

// Return configures a spy to yield the given fixed values.
func Return(vals ...any) Behavior {
	return Behavior{
		Name: BehaviorReturn,
		Args: vals,
	}
}

// CallFake configures a spy to delegate to a replacement func of the same
// signature.
func CallFake(fn any) Behavior {
	return Behavior{
		Name: BehaviorCallFake,
		Args: []any{fn},
	}
}

// CallThrough configures a spy to delegate to the original implementation.
func CallThrough() Behavior {
	return Behavior{
		Name: BehaviorCallThrough,
	}
}

// Spy is an installed interception on one func field. It embeds mock.Mock,
// so recorded invocations are ordinary testify call records and the usual
// mock assertion helpers apply.
type Spy struct {
	mock.Mock

	method   string
	fnType   reflect.Type
	field    reflect.Value
	original reflect.Value
	behavior func(args []reflect.Value) []reflect.Value
}

func (s *Spy) Name() string {
	return s.method
}

func (s *Spy) CallCount() int {
	return len(s.Calls)
}

// Reset clears recorded calls and configured behavior back to the
// freshly-installed state. The spy stays installed.
func (s *Spy) Reset() {
	s.Calls = nil
	s.ExpectedCalls = nil
	s.behavior = nil
}

// Configure applies a named behavior to the spy. Unknown names and argument
// lists that do not fit the spied func's signature are errors.
func (s *Spy) Configure(b Behavior) error {
	switch b.Name {
	case BehaviorReturn:
		return s.configureReturn(b.Args)
	case BehaviorCallFake:
		return s.configureCallFake(b.Args)
	case BehaviorCallThrough:
		original := s.original
		s.behavior = func(args []reflect.Value) []reflect.Value {
			return s.call(original, args)
		}
		return nil
	default:
		return errors.Errorf("unknown behavior %q", b.Name)
	}
}

func (s *Spy) configureReturn(vals []any) error {
	if len(vals) != s.fnType.NumOut() {
		return errors.Errorf(
			"behavior %q on %s: got %d values, func returns %d",
			BehaviorReturn, s.method, len(vals), s.fnType.NumOut(),
		)
	}

	rets := make([]reflect.Value, 0, len(vals))
	for i, val := range vals {
		out := s.fnType.Out(i)
		if val == nil {
			rets = append(rets, reflect.Zero(out))
			continue
		}
		rv := reflect.ValueOf(val)
		if !rv.Type().AssignableTo(out) {
			return errors.Errorf(
				"behavior %q on %s: value %d of type %s is not assignable to %s",
				BehaviorReturn, s.method, i, rv.Type(), out,
			)
		}
		if rv.Type() != out {
			boxed := reflect.New(out).Elem()
			boxed.Set(rv)
			rv = boxed
		}
		rets = append(rets, rv)
	}

	s.behavior = func([]reflect.Value) []reflect.Value {
		return rets
	}
	return nil
}

func (s *Spy) configureCallFake(args []any) error {
	if len(args) != 1 || args[0] == nil {
		return errors.Errorf(
			"behavior %q on %s: expected a single replacement func",
			BehaviorCallFake, s.method,
		)
	}
	fake := reflect.ValueOf(args[0])
	if fake.Kind() != reflect.Func || !fake.Type().AssignableTo(s.fnType) {
		return errors.Errorf(
			"behavior %q on %s: replacement %s does not match %s",
			BehaviorCallFake, s.method, fake.Type(), s.fnType,
		)
	}
	s.behavior = func(callArgs []reflect.Value) []reflect.Value {
		return s.call(fake, callArgs)
	}
	return nil
}

// dispatch is the trampoline body: record the invocation, then run the
// configured behavior, defaulting to zero return values.
func (s *Spy) dispatch(args []reflect.Value) []reflect.Value {
	s.Calls = append(
		s.Calls, mock.Call{
			Parent:    &s.Mock,
			Method:    s.method,
			Arguments: flatten(s.fnType, args),
		},
	)

	if s.behavior != nil {
		return s.behavior(args)
	}
	return zeroReturns(s.fnType)
}

func (s *Spy) call(fn reflect.Value, args []reflect.Value) []reflect.Value {
	if s.fnType.IsVariadic() {
		return fn.CallSlice(args)
	}
	return fn.Call(args)
}

func flatten(fnType reflect.Type, args []reflect.Value) mock.Arguments {
	flat := make(mock.Arguments, 0, len(args))
	for i, arg := range args {
		if fnType.IsVariadic() && i == len(args)-1 {
			for j := 0; j < arg.Len(); j++ {
				flat = append(flat, arg.Index(j).Interface())
			}
			continue
		}
		flat = append(flat, arg.Interface())
	}
	return flat
}

func zeroReturns(fnType reflect.Type) []reflect.Value {
	out := make([]reflect.Value, 0, fnType.NumOut())
	for i := 0; i < fnType.NumOut(); i++ {
		out = append(out, reflect.Zero(fnType.Out(i)))
	}
	return out
}

var (
	registryMu sync.Mutex
	registry   = make(map[uintptr]*Spy)
)

// Install replaces a settable func field with a recording trampoline and
// registers the handle under the field's address. Installing on an already
// spied field returns the existing handle.
func Install(field reflect.Value, method string) (*Spy, error) {
	if !field.IsValid() || field.Kind() != reflect.Func {
		return nil, errors.Errorf("cannot spy on %s: not a func field", method)
	}
	if !field.CanSet() || !field.CanAddr() {
		return nil, errors.Errorf("cannot spy on %s: field is not settable", method)
	}
	if field.IsNil() {
		return nil, errors.Errorf("cannot spy on %s: func field is nil", method)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if existing, ok := registry[field.UnsafeAddr()]; ok {
		return existing, nil
	}

	s := &Spy{
		method:   method,
		fnType:   field.Type(),
		field:    field,
		original: reflect.ValueOf(field.Interface()),
	}
	field.Set(reflect.MakeFunc(s.fnType, s.dispatch))
	registry[field.UnsafeAddr()] = s

	return s, nil
}

// Lookup returns the spy installed at a field, if any.
func Lookup(field reflect.Value) (*Spy, bool) {
	if !field.IsValid() || !field.CanAddr() {
		return nil, false
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	s, ok := registry[field.UnsafeAddr()]
	return s, ok
}

// SpyOf returns the spy installed on obj's named field, if any.
func SpyOf(obj any, name string) (*Spy, bool) {
	field, ok := propwalk.FieldOf(obj, name)
	if !ok {
		return nil, false
	}
	return Lookup(field)
}

// IsSpied reports whether obj's named field currently carries a spy.
func IsSpied(obj any, name string) bool {
	_, ok := SpyOf(obj, name)
	return ok
}

// IsSpy reports whether v is a spy handle.
func IsSpy(v any) bool {
	_, ok := v.(*Spy)
	return ok
}

// Reset clears a spy handle's recorded calls and configured behavior. A
// value that is not a spy handle is an error.
func Reset(v any) error {
	s, ok := v.(*Spy)
	if !ok {
		return errors.Errorf("cannot reset %T: not a spy handle", v)
	}
	s.Reset()
	return nil
}

// Restore puts the original func back and forgets the installation.
func Restore(v any) error {
	s, ok := v.(*Spy)
	if !ok {
		return errors.Errorf("cannot restore %T: not a spy handle", v)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	s.field.Set(s.original)
	delete(registry, s.field.UnsafeAddr())
	return nil
}

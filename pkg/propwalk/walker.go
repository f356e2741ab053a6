package propwalk

import (
	"reflect"

	"github.com/go-logr/logr"

	"github.com/structspy/structspy/pkg/collections/set"
	"github.com/structspy/structspy/pkg/recovery"
)

// PrototypeField names the conventional slot linking a level to the next
// traversal level. The slot itself is never presented as a property.
const PrototypeField = "Prototype"

// Level is one struct in a target's inheritance chain. Its value is always
// an addressable struct, so resolved fields are settable.
type Level struct {
	value reflect.Value
}

// Object returns the level as a pointer to its struct.
func (l Level) Object() any {
	return l.value.Addr().Interface()
}

// Field resolves name on this level, falling back to promoted fields of
// embedded ancestors. ok is false when no such field exists or the read
// panics (reads through a nil embedded pointer do).
func (l Level) Field(name string) (reflect.Value, bool) {
	var field reflect.Value
	err := recovery.Do(
		func() {
			field = l.value.FieldByName(name)
		},
	)
	if err != nil || !field.IsValid() {
		return reflect.Value{}, false
	}
	return field, true
}

// Visitor receives each distinct property name at most once per walk,
// together with the most-derived level defining it.
type Visitor func(level Level, name string)

type Walker interface {
	Walk(target any, visit Visitor)
}

type walker struct {
	logger logr.Logger
}

type Option func(w *walker)

func WithLogger(logger logr.Logger) Option {
	return func(w *walker) {
		w.logger = logger
	}
}

func NewWalker(opts ...Option) Walker {
	w := &walker{
		logger: logr.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk traverses target's struct and every level reachable through its
// Prototype slots, dispatching each distinct accessible, settable property
// name once. Targets that are not pointers to structs dispatch nothing;
// the walk itself never fails.
func (w *walker) Walk(target any, visit Visitor) {
	level, ok := levelOf(reflect.ValueOf(target))
	if !ok {
		return
	}

	seen := set.New[string]()
	levels := set.New[uintptr]()

	for {
		// Guards against self-referential prototype chains.
		addr := level.value.Addr().Pointer()
		if levels.Contains(addr) {
			return
		}
		levels.Add(addr)

		w.walkLevel(level, seen, visit)

		next, ok := nextLevel(level.value)
		if !ok {
			return
		}
		level = next
	}
}

func (w *walker) walkLevel(level Level, seen set.Set[string], visit Visitor) {
	t := level.value.Type()

	// Visible names first, promoted ones included.
	for _, f := range reflect.VisibleFields(t) {
		if f.Anonymous || !f.IsExported() || f.Name == PrototypeField {
			continue
		}
		if seen.Contains(f.Name) {
			continue
		}
		if _, ok := level.Field(f.Name); !ok {
			w.logger.V(1).Info("skipping inaccessible property", "name", f.Name)
			seen.Add(f.Name)
			continue
		}
		seen.Add(f.Name)
		visit(level, f.Name)
	}

	// Then every own declared name, unexported ones included.
	for _, name := range ownAndAncestorNames(t) {
		if name == PrototypeField || seen.Contains(name) {
			continue
		}
		field, ok := level.Field(name)
		if !ok {
			w.logger.V(1).Info("skipping inaccessible property", "name", name)
			seen.Add(name)
			continue
		}
		if !field.CanSet() {
			// Read-only members are blocked for the rest of the walk so no
			// later level can offer a shadow of the same name.
			w.logger.V(1).Info("skipping read-only property", "name", name)
			seen.Add(name)
			continue
		}
		seen.Add(name)
		visit(level, name)
	}
}

// ownAndAncestorNames collects the level's declared field names and, when
// the level has no Prototype slot of its own, folds in the declared names
// of embedded ancestors. The empty root struct contributes nothing.
func ownAndAncestorNames(t reflect.Type) []string {
	names := make([]string, 0, t.NumField())
	collected := set.New[string]()
	hasPrototype := false

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if f.Name == PrototypeField {
			hasPrototype = true
		}
		if f.Anonymous {
			// The ancestor link itself is not a property.
			continue
		}
		names = append(names, f.Name)
		collected.Add(f.Name)
	}

	if hasPrototype {
		return names
	}

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.Anonymous {
			continue
		}
		ancestor := f.Type
		if ancestor.Kind() == reflect.Pointer {
			ancestor = ancestor.Elem()
		}
		if ancestor.Kind() != reflect.Struct || ancestor.NumField() == 0 {
			continue
		}
		for j := 0; j < ancestor.NumField(); j++ {
			af := ancestor.Field(j)
			if af.Anonymous || collected.Contains(af.Name) {
				continue
			}
			names = append(names, af.Name)
			collected.Add(af.Name)
		}
	}

	return names
}

func levelOf(v reflect.Value) (Level, bool) {
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return Level{}, false
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct || !v.CanAddr() {
		return Level{}, false
	}
	return Level{value: v}, true
}

// nextLevel resolves the Prototype slot, inherited lookup included, to the
// next traversal level.
func nextLevel(v reflect.Value) (Level, bool) {
	var field reflect.Value
	err := recovery.Do(
		func() {
			field = v.FieldByName(PrototypeField)
		},
	)
	if err != nil || !field.IsValid() {
		return Level{}, false
	}
	if field.Kind() != reflect.Pointer || field.IsNil() || field.Elem().Kind() != reflect.Struct {
		return Level{}, false
	}
	return Level{value: field.Elem()}, true
}

// FieldOf resolves a named field on a struct pointer, tolerating reads that
// panic the same way the walk does.
func FieldOf(obj any, name string) (reflect.Value, bool) {
	level, ok := levelOf(reflect.ValueOf(obj))
	if !ok {
		return reflect.Value{}, false
	}
	return level.Field(name)
}

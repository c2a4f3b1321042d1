package typeinfo

import (
	"reflect"
	"sync"
)

// Field describes one readable field of a struct type.
type Field struct {
	Name  string
	Index []int
	Type  reflect.Type
}

// Read returns the field's value within v. v may be a struct or a pointer to one.
// It reports false when v is nil or when an embedded pointer on the path is nil.
func (f Field) Read(v reflect.Value) (reflect.Value, bool) {
	v, ok := deref(v)
	if !ok {
		return reflect.Value{}, false
	}
	for i, idx := range f.Index {
		if i > 0 {
			if v, ok = deref(v); !ok {
				return reflect.Value{}, false
			}
		}
		v = v.Field(idx)
	}
	return v, true
}

// Interface returns the field's value within obj as an interface, nil when unreachable.
func (f Field) Interface(obj any) any {
	v, ok := f.Read(reflect.ValueOf(obj))
	if !ok || !v.CanInterface() {
		return nil
	}
	return v.Interface()
}

type fieldSet struct {
	list   []Field
	byName map[string]Field
}

var fieldCache sync.Map // reflect.Type -> *fieldSet

// Fields returns the exported fields of t (pointers are dereferenced), including fields promoted
// from embedded structs, in declaration order. The result is cached per type and must not be
// modified. Non-struct types have no fields.
func Fields(t reflect.Type) []Field {
	return fieldsOf(t).list
}

// FieldByName looks up a field of t by name, promoted fields included.
func FieldByName(t reflect.Type, name string) (Field, bool) {
	f, ok := fieldsOf(t).byName[name]
	return f, ok
}

func fieldsOf(t reflect.Type) *fieldSet {
	t = Indirect(t)
	if t == nil {
		return &fieldSet{}
	}
	if cached, ok := fieldCache.Load(t); ok {
		return cached.(*fieldSet)
	}

	set := &fieldSet{byName: make(map[string]Field)}
	if t.Kind() == reflect.Struct {
		for _, sf := range reflect.VisibleFields(t) {
			if !sf.IsExported() || !reachable(t, sf.Index) {
				continue
			}
			f := Field{Name: sf.Name, Index: sf.Index, Type: sf.Type}
			set.list = append(set.list, f)
			set.byName[f.Name] = f
		}
	}

	actual, _ := fieldCache.LoadOrStore(t, set)
	return actual.(*fieldSet)
}

// reachable reports whether every step of the index path goes through an exported or embedded
// field, so the value can be read through reflection without tripping the read-only flag.
func reachable(t reflect.Type, index []int) bool {
	for i, idx := range index {
		sf := t.Field(idx)
		if !sf.IsExported() && !sf.Anonymous {
			return false
		}
		if i < len(index)-1 {
			t = Indirect(sf.Type)
		}
	}
	return true
}

func deref(v reflect.Value) (reflect.Value, bool) {
	for v.IsValid() && (v.Kind() == reflect.Ptr || v.Kind() == reflect.Interface) {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}
	return v, v.IsValid()
}

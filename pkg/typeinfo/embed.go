package typeinfo

import (
	"reflect"
	"sync"
)

// Indirect strips every level of pointer indirection from t.
func Indirect(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return t
}

var ancestorCache sync.Map // reflect.Type -> []reflect.Type

// Ancestors returns the struct types embedded (directly or transitively) in t, most-base-first.
// For C embedding B embedding A the result is [A, B]. Embedded types are visited depth-first
// in declaration order and each type appears once. t itself is never included.
func Ancestors(t reflect.Type) []reflect.Type {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	if cached, ok := ancestorCache.Load(t); ok {
		return cached.([]reflect.Type)
	}

	seen := map[reflect.Type]bool{t: true}
	var out []reflect.Type
	var walk func(reflect.Type)
	walk = func(st reflect.Type) {
		for i := 0; i < st.NumField(); i++ {
			sf := st.Field(i)
			if !sf.Anonymous {
				continue
			}
			et := Indirect(sf.Type)
			if et.Kind() != reflect.Struct || seen[et] {
				continue
			}
			seen[et] = true
			walk(et)
			out = append(out, et)
		}
	}
	walk(t)

	actual, _ := ancestorCache.LoadOrStore(t, out)
	return actual.([]reflect.Type)
}

// Upcast finds the value of type target within v: v itself, the value it points to,
// or an embedded field (searched depth-first). Pointer targets are satisfied by addressable
// values or embedded pointers.
func Upcast(v reflect.Value, target reflect.Type) (reflect.Value, bool) {
	if !v.IsValid() || target == nil {
		return reflect.Value{}, false
	}
	for {
		if v.Type() == target {
			return v, true
		}
		if target.Kind() == reflect.Interface && v.Type().Implements(target) {
			return v, true
		}
		if v.Kind() != reflect.Ptr && v.Kind() != reflect.Interface {
			break
		}
		if v.IsNil() {
			return reflect.Value{}, false
		}
		v = v.Elem()
	}

	if target.Kind() == reflect.Ptr && v.CanAddr() && v.Addr().Type() == target {
		return v.Addr(), true
	}
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}

	for i := 0; i < v.NumField(); i++ {
		if !v.Type().Field(i).Anonymous {
			continue
		}
		if found, ok := Upcast(v.Field(i), target); ok {
			return found, true
		}
	}
	return reflect.Value{}, false
}

// As converts obj to T, upcasting through embedded fields when obj is not a T itself.
func As[T any](obj any) (T, bool) {
	if t, ok := obj.(T); ok {
		return t, true
	}

	var zero T
	v, ok := Upcast(reflect.ValueOf(obj), reflect.TypeFor[T]())
	if !ok || !v.CanInterface() {
		return zero, false
	}
	t, ok := v.Interface().(T)
	return t, ok
}

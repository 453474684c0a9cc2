package namevalue

import "reflect"

// nillable returns true if the zero value of T is nil.
func nillable[T any]() bool {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return true
	default:
		return false
	}
}

// isAbsent returns true if value is nil. Add treats such a value as missing:
// the entry is created but no element is appended.
func isAbsent[T any](value T) bool {
	if !nillable[T]() {
		return false
	}
	return reflect.ValueOf(&value).Elem().IsNil()
}

package util

import (
	"reflect"
)

// NilInterface true for untyped nil and for typed-nil values boxed in
// an interface, which plain `v == nil` misses. Arrays stay out of the
// switch: they are never nil and IsNil panics on them.
func NilInterface(v interface{}) bool {
	if v == nil {
		return true
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Slice:
		return reflect.ValueOf(v).IsNil()
	}
	return false
}

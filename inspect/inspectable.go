// ABOUTME: Introspection capability interface and reflection fallback
// ABOUTME: Provides type name, size estimate, identity, and attribute enumeration

package inspect

import (
	"fmt"
	"reflect"
)

// Inspectable is the capability a value can implement to control how it is
// captured. Values that do not implement it fall back to reflection:
// exported struct fields become attributes, the type name comes from %T,
// and the size is estimated from the reflect layout.
type Inspectable interface {
	// TypeName returns the name the record should carry
	TypeName() string

	// SizeBytes returns the value's size estimate in bytes
	SizeBytes() uint64

	// EachAttr calls fn for each attribute until fn returns false.
	// Implementations should visit each name at most once.
	EachAttr(fn func(name string, value any) bool)
}

// TypeNameOf resolves a value's type name. Broken TypeName implementations
// degrade to "<unknown>"; a nil value reports "<nil>".
func TypeNameOf(v any) (name string) {
	defer func() {
		if recover() != nil {
			name = "<unknown>"
		}
	}()
	if in, ok := v.(Inspectable); ok {
		if n := in.TypeName(); n != "" {
			return n
		}
	}
	if v == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%T", v)
}

// SizeOf estimates a value's size in bytes. Any failure, including a
// panicking SizeBytes implementation, degrades to 0.
func SizeOf(v any) (size uint64) {
	defer func() {
		if recover() != nil {
			size = 0
		}
	}()
	if in, ok := v.(Inspectable); ok {
		return in.SizeBytes()
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() {
		return 0
	}
	size = uint64(rv.Type().Size())
	switch rv.Kind() {
	case reflect.Pointer:
		if !rv.IsNil() {
			size += uint64(rv.Type().Elem().Size())
		}
	case reflect.String:
		size += uint64(rv.Len())
	case reflect.Slice:
		if !rv.IsNil() {
			size += uint64(rv.Len()) * uint64(rv.Type().Elem().Size())
		}
	case reflect.Map:
		if !rv.IsNil() {
			per := uint64(rv.Type().Key().Size() + rv.Type().Elem().Size())
			size += uint64(rv.Len()) * per
		}
	}
	return size
}

// EachAttrOf enumerates a value's attributes. Inspectable values drive
// their own enumeration; everything else is walked by reflection over
// exported struct fields (pointers are dereferenced first). Opaque values
// simply have no attributes. A panic mid-enumeration keeps the attributes
// visited so far.
func EachAttrOf(v any, fn func(name string, value any) bool) {
	defer func() {
		recover()
	}()
	if in, ok := v.(Inspectable); ok {
		in.EachAttr(fn)
		return
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return
	}
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if !fn(f.Name, rv.Field(i).Interface()) {
			return
		}
	}
}

// IdentityOf returns a value's native identity key. Only pointer-like
// kinds carry one; everything else reports ok=false and can never be the
// target of a reference edge.
func IdentityOf(v any) (key uintptr, ok bool) {
	defer func() {
		if recover() != nil {
			key, ok = 0, false
		}
	}()
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer, reflect.Slice:
		if rv.IsNil() {
			return 0, false
		}
		return rv.Pointer(), true
	}
	return 0, false
}

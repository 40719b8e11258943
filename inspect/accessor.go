// ABOUTME: Safe reflection accessor for attribute reads and kind checks
// ABOUTME: Every introspective read degrades to a sentinel instead of panicking

package inspect

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/prateek/heapscope/snapshot"
)

// maxRender caps the rendered length of strings and byte payloads
const maxRender = 1024

// Attr fetches a named attribute off a value. It never panics; a missing
// attribute or a broken enumeration reports ok=false.
func Attr(obj any, name string) (val any, ok bool) {
	defer func() {
		if recover() != nil {
			val, ok = nil, false
		}
	}()
	if _, isIn := obj.(Inspectable); isIn {
		EachAttrOf(obj, func(n string, v any) bool {
			if n == name {
				val, ok = v, true
				return false
			}
			return true
		})
		return val, ok
	}
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, false
	}
	f := rv.FieldByName(name)
	if !f.IsValid() || !f.CanInterface() {
		return nil, false
	}
	return f.Interface(), true
}

// SafeAttr reads a named attribute and renders it. Any failure - missing
// attribute, panicking getter, unrenderable value - downgrades to an
// Unrenderable attribute value rather than propagating.
func SafeAttr(obj any, name string) (av snapshot.AttrValue) {
	defer func() {
		if p := recover(); p != nil {
			av = snapshot.Unrenderable(fmt.Sprintf("attribute read panicked: %v", p))
		}
	}()
	v, ok := Attr(obj, name)
	if !ok {
		return snapshot.Unrenderable(fmt.Sprintf("no attribute %q", name))
	}
	return Render(v)
}

// IsKind checks a value's reflect kind. Broken type metadata is treated as
// a mismatch, never raised.
func IsKind(obj any, kind reflect.Kind) (match bool) {
	defer func() {
		if recover() != nil {
			match = false
		}
	}()
	rv := reflect.ValueOf(obj)
	if !rv.IsValid() {
		return false
	}
	return rv.Kind() == kind
}

// Render produces the scalar rendering of a value. It never panics;
// rendering failures downgrade to Unrenderable.
func Render(v any) (av snapshot.AttrValue) {
	defer func() {
		if p := recover(); p != nil {
			av = snapshot.Unrenderable(fmt.Sprintf("render panicked: %v", p))
		}
	}()
	switch x := v.(type) {
	case nil:
		return snapshot.Scalar("<nil>")
	case string:
		return snapshot.Scalar(truncate(x))
	case []byte:
		return snapshot.Scalar(truncate(fmt.Sprintf("%q", x)))
	case float64:
		return snapshot.Scalar(renderFloat(x, 64))
	case float32:
		return snapshot.Scalar(renderFloat(float64(x), 32))
	}
	return snapshot.Scalar(truncate(fmt.Sprint(v)))
}

func renderFloat(f float64, bits int) string {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return fmt.Sprint(f)
	}
	return strconv.FormatFloat(f, 'g', -1, bits)
}

func truncate(s string) string {
	if len(s) <= maxRender {
		return s
	}
	return s[:maxRender]
}

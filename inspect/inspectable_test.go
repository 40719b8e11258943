// ABOUTME: Tests for the introspection capability and reflection fallback
// ABOUTME: Validates type names, size estimates, enumeration, and identity keys

package inspect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type widget struct {
	Name   string
	Count  int
	hidden string
}

// hostile implements Inspectable with panicking methods
type hostile struct{}

func (hostile) TypeName() string  { panic("broken type metadata") }
func (hostile) SizeBytes() uint64 { panic("broken size query") }
func (hostile) EachAttr(fn func(name string, value any) bool) {
	fn("Before", "ok")
	panic("broken enumeration")
}

// wellBehaved implements Inspectable normally
type wellBehaved struct{}

func (wellBehaved) TypeName() string  { return "custom.Thing" }
func (wellBehaved) SizeBytes() uint64 { return 123 }
func (wellBehaved) EachAttr(fn func(name string, value any) bool) {
	if !fn("A", 1) {
		return
	}
	fn("B", 2)
}

func TestTypeNameOf(t *testing.T) {
	require.Equal(t, "<nil>", TypeNameOf(nil))
	require.Equal(t, "*inspect.widget", TypeNameOf(&widget{}))
	require.Equal(t, "custom.Thing", TypeNameOf(wellBehaved{}))
	require.Equal(t, "<unknown>", TypeNameOf(hostile{}))
}

func TestSizeOf(t *testing.T) {
	require.Zero(t, SizeOf(nil))
	require.Equal(t, uint64(123), SizeOf(wellBehaved{}))

	// A panicking size query degrades to zero, never propagates.
	require.Zero(t, SizeOf(hostile{}))

	// Strings and slices include their payload.
	require.Greater(t, SizeOf("hello world"), uint64(11))
	require.Greater(t, SizeOf(make([]int64, 10)), uint64(80))
	require.NotZero(t, SizeOf(&widget{}))
}

func TestEachAttrOfStruct(t *testing.T) {
	got := map[string]any{}
	EachAttrOf(&widget{Name: "w", Count: 3, hidden: "x"}, func(name string, value any) bool {
		got[name] = value
		return true
	})
	require.Equal(t, map[string]any{"Name": "w", "Count": 3}, got)
}

func TestEachAttrOfInspectable(t *testing.T) {
	var names []string
	EachAttrOf(wellBehaved{}, func(name string, value any) bool {
		names = append(names, name)
		return true
	})
	require.Equal(t, []string{"A", "B"}, names)
}

func TestEachAttrOfHostileKeepsPartial(t *testing.T) {
	var names []string
	require.NotPanics(t, func() {
		EachAttrOf(hostile{}, func(name string, value any) bool {
			names = append(names, name)
			return true
		})
	})
	require.Equal(t, []string{"Before"}, names)
}

func TestEachAttrOfOpaque(t *testing.T) {
	calls := 0
	EachAttrOf(42, func(string, any) bool { calls++; return true })
	EachAttrOf(nil, func(string, any) bool { calls++; return true })
	EachAttrOf((*widget)(nil), func(string, any) bool { calls++; return true })
	require.Zero(t, calls)
}

func TestIdentityOf(t *testing.T) {
	w := &widget{}
	k1, ok := IdentityOf(w)
	require.True(t, ok)
	k2, ok := IdentityOf(w)
	require.True(t, ok)
	require.Equal(t, k1, k2)

	other := &widget{}
	k3, ok := IdentityOf(other)
	require.True(t, ok)
	require.NotEqual(t, k1, k3)

	// Values without address identity have no key.
	_, ok = IdentityOf(42)
	require.False(t, ok)
	_, ok = IdentityOf(widget{})
	require.False(t, ok)
	_, ok = IdentityOf(nil)
	require.False(t, ok)
	_, ok = IdentityOf((*widget)(nil))
	require.False(t, ok)
}

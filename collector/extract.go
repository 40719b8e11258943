// ABOUTME: Object metadata extractor producing one record per tracked object
// ABOUTME: Per-field failures degrade the field; a total failure degrades the record

package collector

import (
	"log/slog"
	"reflect"
	"sort"
	"strconv"
	"strings"

	"github.com/prateek/heapscope/inspect"
	"github.com/prateek/heapscope/snapshot"
)

// extract produces the full record of one tracked object. Identity is
// resolved through the pass registry before anything else, so even a
// placeholder record keeps a stable ID. Attribute values that are
// themselves members of the live set become reference edges; collections
// are scanned one level deep for member elements, mirroring a one-level
// referent walk. Self-references terminate because visiting an attribute
// value only assigns an identity, it never recurses into extraction.
func extract(obj any, reg *identityRegistry, logger *slog.Logger) (rec *snapshot.ObjectRecord) {
	id := reg.assign(obj)

	defer func() {
		if p := recover(); p != nil {
			logger.Warn("object extraction failed, recording placeholder", "id", uint64(id), "panic", p)
			rec = placeholder(id)
		}
	}()

	rec = &snapshot.ObjectRecord{
		ID:        id,
		TypeName:  inspect.TypeNameOf(obj),
		SizeBytes: inspect.SizeOf(obj),
		Attrs:     make(map[string]snapshot.AttrValue),
	}

	refs := make(map[snapshot.ObjID]struct{})
	inspect.EachAttrOf(obj, func(name string, value any) bool {
		if _, dup := rec.Attrs[name]; dup {
			return true
		}
		rec.Attrs[name] = captureAttr(value, reg, refs)
		return true
	})

	rec.Refs = make([]snapshot.ObjID, 0, len(refs))
	for ref := range refs {
		rec.Refs = append(rec.Refs, ref)
	}
	sort.Slice(rec.Refs, func(i, j int) bool { return rec.Refs[i] < rec.Refs[j] })
	return rec
}

// captureAttr turns one attribute value into its AttrValue, registering
// any reference edges it produces into refs.
func captureAttr(value any, reg *identityRegistry, refs map[snapshot.ObjID]struct{}) snapshot.AttrValue {
	if id, ok := reg.lookup(value); ok {
		refs[id] = struct{}{}
		return snapshot.Reference(id)
	}
	if av, ok := captureContainer(value, reg, refs); ok {
		return av
	}
	return inspect.Render(value)
}

// captureContainer scans a slice, array, or map attribute for elements
// that are members of the live set. Member elements are registered as
// reference edges and rendered inline as "obj#<id>"; the attribute itself
// stays a scalar. Returns ok=false for non-containers and containers with
// no member elements.
func captureContainer(value any, reg *identityRegistry, refs map[snapshot.ObjID]struct{}) (av snapshot.AttrValue, found bool) {
	defer func() {
		if recover() != nil {
			av, found = snapshot.AttrValue{}, false
		}
	}()
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			// Byte payloads render whole, no element scan.
			return snapshot.AttrValue{}, false
		}
		parts := make([]string, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			elem := rv.Index(i).Interface()
			if id, ok := reg.lookup(elem); ok {
				refs[id] = struct{}{}
				parts = append(parts, renderRef(id))
				found = true
			} else {
				parts = append(parts, inspect.Render(elem).Value)
			}
		}
		if !found {
			return snapshot.AttrValue{}, false
		}
		return snapshot.Scalar(joinList(parts)), true
	case reflect.Map:
		keys := rv.MapKeys()
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			elem := rv.MapIndex(k).Interface()
			if id, ok := reg.lookup(elem); ok {
				refs[id] = struct{}{}
				parts = append(parts, inspect.Render(k.Interface()).Value+":"+renderRef(id))
				found = true
			} else {
				parts = append(parts, inspect.Render(k.Interface()).Value+":"+inspect.Render(elem).Value)
			}
		}
		if !found {
			return snapshot.AttrValue{}, false
		}
		sort.Strings(parts)
		return snapshot.Scalar(joinList(parts)), true
	}
	return snapshot.AttrValue{}, false
}

func renderRef(id snapshot.ObjID) string {
	return "obj#" + strconv.FormatUint(uint64(id), 10)
}

func joinList(parts []string) string {
	return "[" + strings.Join(parts, " ") + "]"
}

// placeholder is the minimal record kept when a whole object's extraction
// fails. The walk continues; no single object may abort the pass.
func placeholder(id snapshot.ObjID) *snapshot.ObjectRecord {
	return &snapshot.ObjectRecord{
		ID:        id,
		TypeName:  "<unknown>",
		SizeBytes: 0,
		Attrs:     map[string]snapshot.AttrValue{},
		Refs:      []snapshot.ObjID{},
	}
}

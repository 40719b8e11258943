// ABOUTME: Core data types for heap snapshots
// ABOUTME: Defines ObjID, AttrValue, ObjectRecord, CodeArtifact, and Snapshot

package snapshot

import (
	"sort"
	"time"
)

// ObjID is a unique identifier for one tracked object within a single
// collection pass. IDs start at 1; 0 is reserved for the analysis layer's
// super-root. IDs are not stable across passes.
type ObjID uint64

// AttrKind discriminates the three states of an AttrValue.
type AttrKind int

const (
	// KindScalar is a plain rendered value
	KindScalar AttrKind = iota
	// KindRef is a reference to another tracked object
	KindRef
	// KindUnrenderable marks a value that could not be rendered
	KindUnrenderable
)

// AttrValue is the tagged union holding one attribute's captured value.
// Exactly one of the payload fields is meaningful, selected by Kind.
type AttrValue struct {
	Kind   AttrKind
	Value  string // KindScalar
	Ref    ObjID  // KindRef
	Reason string // KindUnrenderable
}

// Scalar builds a scalar attribute value.
func Scalar(s string) AttrValue {
	return AttrValue{Kind: KindScalar, Value: s}
}

// Reference builds an attribute value pointing at another tracked object.
func Reference(id ObjID) AttrValue {
	return AttrValue{Kind: KindRef, Ref: id}
}

// Unrenderable builds an attribute value recording a rendering failure.
func Unrenderable(reason string) AttrValue {
	return AttrValue{Kind: KindUnrenderable, Reason: reason}
}

// ObjectRecord is the captured metadata of a single tracked object.
type ObjectRecord struct {
	ID        ObjID
	TypeName  string
	SizeBytes uint64
	Attrs     map[string]AttrValue
	Refs      []ObjID // sorted, deduplicated
}

// CodeArtifact describes one loaded executable unit. SourceFile and
// SourceLine are zero when the artifact has no file-backed origin.
type CodeArtifact struct {
	ID            string
	QualifiedName string
	SourceFile    string
	SourceLine    int
}

// Snapshot is one fully assembled heap dump. It is populated by a single
// collection pass and must be treated as read-only afterwards.
type Snapshot struct {
	ID        string
	Timestamp time.Time
	Objects   map[ObjID]*ObjectRecord
	Artifacts []CodeArtifact
}

// Len returns the number of object records.
func (s *Snapshot) Len() int {
	return len(s.Objects)
}

// IDs returns all object identities in ascending order.
func (s *Snapshot) IDs() []ObjID {
	ids := make([]ObjID, 0, len(s.Objects))
	for id := range s.Objects {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

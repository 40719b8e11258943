// ABOUTME: JSON codec for heap snapshots
// ABOUTME: Implements the reference field-tagged encoding of the dump format

package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"
)

// AttrValue wire format: a scalar is a bare JSON string, a reference is
// {"$ref": <id>}, an unrenderable value is {"$unrenderable": "<reason>"}.

type attrWire struct {
	Ref          *ObjID  `json:"$ref,omitempty"`
	Unrenderable *string `json:"$unrenderable,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (a AttrValue) MarshalJSON() ([]byte, error) {
	switch a.Kind {
	case KindScalar:
		return json.Marshal(a.Value)
	case KindRef:
		id := a.Ref
		return json.Marshal(attrWire{Ref: &id})
	case KindUnrenderable:
		reason := a.Reason
		return json.Marshal(attrWire{Unrenderable: &reason})
	}
	return nil, fmt.Errorf("unknown attribute kind %d", a.Kind)
}

// UnmarshalJSON implements json.Unmarshaler.
func (a *AttrValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*a = Scalar(s)
		return nil
	}
	var w attrWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("attribute value is neither string nor tagged object: %w", err)
	}
	switch {
	case w.Ref != nil:
		*a = Reference(*w.Ref)
	case w.Unrenderable != nil:
		*a = Unrenderable(*w.Unrenderable)
	default:
		return fmt.Errorf("attribute object has neither $ref nor $unrenderable")
	}
	return nil
}

// jsonSnapshot is the top-level wire shape of a dump file
type jsonSnapshot struct {
	SnapshotID    string                `json:"snapshot_id"`
	Timestamp     string                `json:"timestamp"`
	Objects       map[string]jsonObject `json:"objects"`
	CodeArtifacts []jsonArtifact        `json:"code_artifacts"`
}

type jsonObject struct {
	TypeName   string               `json:"type_name"`
	SizeBytes  uint64               `json:"size_bytes"`
	Attributes map[string]AttrValue `json:"attributes"`
	References []ObjID              `json:"references"`
}

type jsonArtifact struct {
	ArtifactID    string  `json:"artifact_id"`
	QualifiedName string  `json:"qualified_name"`
	SourceFile    *string `json:"source_file"`
	SourceLine    *int    `json:"source_line"`
}

// JSONCodec encodes and decodes snapshots in the reference JSON layout.
type JSONCodec struct{}

// Name returns the codec name.
func (JSONCodec) Name() string { return "json" }

// CanDecode checks whether the input looks like a JSON dump. The reader is
// a preview; only a small prefix is inspected.
func (JSONCodec) CanDecode(r io.Reader) bool {
	buf := make([]byte, 1024)
	n, err := r.Read(buf)
	if err != nil && err != io.EOF {
		return false
	}
	if n == 0 {
		return false
	}
	var test struct {
		Objects json.RawMessage `json:"objects"`
	}
	if err := json.Unmarshal(buf[:n], &test); err != nil {
		// The prefix may cut the document short; fall back to a cheap
		// sniff for the objects key.
		return buf[0] == '{' && containsObjectsKey(buf[:n])
	}
	return test.Objects != nil
}

func containsObjectsKey(b []byte) bool {
	const key = `"objects"`
	for i := 0; i+len(key) <= len(b); i++ {
		if string(b[i:i+len(key)]) == key {
			return true
		}
	}
	return false
}

// Encode writes the snapshot to w.
func (JSONCodec) Encode(w io.Writer, s *Snapshot) error {
	out := jsonSnapshot{
		SnapshotID:    s.ID,
		Timestamp:     s.Timestamp.UTC().Format(time.RFC3339Nano),
		Objects:       make(map[string]jsonObject, len(s.Objects)),
		CodeArtifacts: make([]jsonArtifact, 0, len(s.Artifacts)),
	}
	for id, rec := range s.Objects {
		obj := jsonObject{
			TypeName:   rec.TypeName,
			SizeBytes:  rec.SizeBytes,
			Attributes: rec.Attrs,
			References: rec.Refs,
		}
		if obj.Attributes == nil {
			obj.Attributes = map[string]AttrValue{}
		}
		if obj.References == nil {
			obj.References = []ObjID{}
		}
		out.Objects[strconv.FormatUint(uint64(id), 10)] = obj
	}
	for _, art := range s.Artifacts {
		wire := jsonArtifact{
			ArtifactID:    art.ID,
			QualifiedName: art.QualifiedName,
		}
		if art.SourceFile != "" {
			f := art.SourceFile
			wire.SourceFile = &f
		}
		if art.SourceLine != 0 {
			l := art.SourceLine
			wire.SourceLine = &l
		}
		out.CodeArtifacts = append(out.CodeArtifacts, wire)
	}
	enc := json.NewEncoder(w)
	return enc.Encode(&out)
}

// Decode reads a snapshot from r.
func (JSONCodec) Decode(r io.Reader) (*Snapshot, error) {
	var in jsonSnapshot
	dec := json.NewDecoder(r)
	if err := dec.Decode(&in); err != nil {
		return nil, fmt.Errorf("failed to decode JSON dump: %w", err)
	}
	snap := &Snapshot{
		ID:      in.SnapshotID,
		Objects: make(map[ObjID]*ObjectRecord, len(in.Objects)),
	}
	if in.Timestamp != "" {
		ts, err := time.Parse(time.RFC3339Nano, in.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("bad timestamp %q: %w", in.Timestamp, err)
		}
		snap.Timestamp = ts
	}
	for key, obj := range in.Objects {
		raw, err := strconv.ParseUint(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad object identity %q: %w", key, err)
		}
		id := ObjID(raw)
		rec := &ObjectRecord{
			ID:        id,
			TypeName:  obj.TypeName,
			SizeBytes: obj.SizeBytes,
			Attrs:     obj.Attributes,
			Refs:      obj.References,
		}
		if rec.Attrs == nil {
			rec.Attrs = map[string]AttrValue{}
		}
		if rec.Refs == nil {
			rec.Refs = []ObjID{}
		}
		snap.Objects[id] = rec
	}
	for _, wire := range in.CodeArtifacts {
		art := CodeArtifact{
			ID:            wire.ArtifactID,
			QualifiedName: wire.QualifiedName,
		}
		if wire.SourceFile != nil {
			art.SourceFile = *wire.SourceFile
		}
		if wire.SourceLine != nil {
			art.SourceLine = *wire.SourceLine
		}
		snap.Artifacts = append(snap.Artifacts, art)
	}
	return snap, nil
}

// init registers the JSON codec as the default encoding
func init() {
	RegisterCodec(JSONCodec{})
}

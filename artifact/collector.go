// ABOUTME: Code-artifact collector enumerating loaded executable units
// ABOUTME: Merges tracked functions with methods derived from tracked objects

package artifact

import (
	"fmt"
	"log/slog"
	"reflect"
	"sort"

	"github.com/prateek/heapscope/snapshot"

	"github.com/prometheus/common/promslog"
)

// Collector builds the code-artifact inventory for one collection pass.
// It holds no state across calls: the loaded set may change between dumps.
type Collector struct {
	logger *slog.Logger
}

// NewCollector creates a collector. A nil logger defaults to a nop logger.
func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = promslog.NewNopLogger()
	}
	return &Collector{logger: logger}
}

// CollectAll enumerates the code artifacts reachable from the tracked
// function entry points and the exported methods of the tracked objects'
// types. Artifacts are deduplicated by entry point within one call and
// returned ordered by qualified name. A per-artifact resolution failure
// yields a record with absent source fields rather than dropping the
// artifact.
func (c *Collector) CollectAll(pcs []uintptr, objs []any) []snapshot.CodeArtifact {
	seen := make(map[uintptr]struct{})
	var ordered []uintptr

	add := func(pc uintptr) {
		if pc == 0 {
			return
		}
		entry := Entry(pc)
		if _, dup := seen[entry]; dup {
			return
		}
		seen[entry] = struct{}{}
		ordered = append(ordered, entry)
	}

	for _, pc := range pcs {
		add(pc)
	}
	for _, obj := range objs {
		for _, pc := range methodEntries(obj) {
			add(pc)
		}
	}

	arts := make([]snapshot.CodeArtifact, 0, len(ordered))
	for _, pc := range ordered {
		art := snapshot.CodeArtifact{
			ID:            fmt.Sprintf("0x%x", pc),
			QualifiedName: Name(pc),
		}
		if loc, ok := Locate(pc); ok {
			art.SourceFile = loc.File
			art.SourceLine = loc.Line
		} else {
			c.logger.Debug("code artifact has no resolvable source", "artifact", art.QualifiedName)
		}
		arts = append(arts, art)
	}

	sort.Slice(arts, func(i, j int) bool {
		if arts[i].QualifiedName != arts[j].QualifiedName {
			return arts[i].QualifiedName < arts[j].QualifiedName
		}
		return arts[i].ID < arts[j].ID
	})
	return arts
}

// methodEntries lists the entry points of the exported methods of obj's
// type. Broken type metadata degrades to no entries.
func methodEntries(obj any) (pcs []uintptr) {
	defer func() {
		if recover() != nil {
			pcs = nil
		}
	}()
	rt := reflect.TypeOf(obj)
	if rt == nil {
		return nil
	}
	for i := 0; i < rt.NumMethod(); i++ {
		m := rt.Method(i)
		if !m.Func.IsValid() {
			continue
		}
		pcs = append(pcs, m.Func.Pointer())
	}
	return pcs
}

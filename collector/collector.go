// ABOUTME: Heap-graph collector orchestrating one collection pass
// ABOUTME: Drives enumeration, extraction, code inventory, and the final write

package collector

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/prometheus/common/promslog"

	"github.com/prateek/heapscope/artifact"
	"github.com/prateek/heapscope/live"
	"github.com/prateek/heapscope/snapshot"
)

// ErrNoSource is returned when the collector has no live-object source
var ErrNoSource = errors.New("no live-object source configured")

// Source is the live-object capability the collector walks. The listing
// is obtained once per pass; live.Set implements this.
type Source interface {
	// Objects returns the point-in-time listing of tracked objects
	Objects() []any

	// FuncPCs returns the tracked function entry points
	FuncPCs() []uintptr
}

// State tracks the stage a collection pass is in. A pass moves forward
// through the states in order; Failed is reachable from any of them.
type State int

const (
	StateIdle State = iota
	StateEnumerating
	StateExtracting
	StateCollectingCode
	StateWriting
	StateDone
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateEnumerating:
		return "enumerating"
	case StateExtracting:
		return "extracting"
	case StateCollectingCode:
		return "collecting-code"
	case StateWriting:
		return "writing"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Summary reports a completed pass.
type Summary struct {
	Path       string
	SnapshotID string
	Objects    int
	Artifacts  int
	Elapsed    time.Duration
}

// Message renders the human-readable success message.
func (s Summary) Message() string {
	return fmt.Sprintf("heap dump %q saved in %.2fs: %d objects, %d code artifacts",
		s.Path, s.Elapsed.Seconds(), s.Objects, s.Artifacts)
}

// Collector captures heap snapshots from a Source. One Collector may be
// shared between callers: every pass works against its own identity
// registry and snapshot, so concurrent Collect calls do not corrupt each
// other. Concurrent writers to the same destination are not guarded.
type Collector struct {
	source    Source
	artifacts *artifact.Collector
	logger    *slog.Logger
	codec     string
	now       func() time.Time
}

// Option configures a Collector.
type Option func(*Collector)

// WithCodec selects the snapshot encoding by codec name.
func WithCodec(name string) Option {
	return func(c *Collector) { c.codec = name }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(c *Collector) { c.now = now }
}

// New creates a collector reading from source. A nil logger defaults to a
// nop logger.
func New(source Source, logger *slog.Logger, opts ...Option) *Collector {
	if logger == nil {
		logger = promslog.NewNopLogger()
	}
	c := &Collector{
		source:    source,
		artifacts: artifact.NewCollector(logger),
		logger:    logger,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect runs one full pass and writes the snapshot to dest. The
// returned error is non-nil only for fatal failures (the listing cannot
// be obtained, or the destination cannot be written); every per-object
// and per-artifact failure is contained inside the pass. An unexpected
// internal fault is recovered and reported as an error carrying the
// diagnostic trace, never as a panic.
func (c *Collector) Collect(dest string) (sum Summary, err error) {
	start := c.now()
	state := StateIdle

	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("internal fault while %s: %v\n%s", state, p, debug.Stack())
			state = StateFailed
		}
	}()

	if c.source == nil {
		return Summary{}, fmt.Errorf("cannot enumerate live objects: %w", ErrNoSource)
	}

	state = StateEnumerating
	listing := c.source.Objects()
	c.logger.Debug("enumerated live-object set", "objects", len(listing))

	state = StateExtracting
	reg := newIdentityRegistry(listing)
	objects := make(map[snapshot.ObjID]*snapshot.ObjectRecord, len(listing))
	for _, obj := range listing {
		rec := extract(obj, reg, c.logger)
		if _, dup := objects[rec.ID]; dup {
			// Same identity listed twice; one record per identity per pass.
			continue
		}
		objects[rec.ID] = rec
	}

	state = StateCollectingCode
	arts := c.artifacts.CollectAll(c.source.FuncPCs(), listing)

	snap := &snapshot.Snapshot{
		ID:        ulid.Make().String(),
		Timestamp: c.now().UTC(),
		Objects:   objects,
		Artifacts: arts,
	}

	state = StateWriting
	path, werr := snapshot.Write(snap, dest, c.codec)
	if werr != nil {
		state = StateFailed
		return Summary{}, fmt.Errorf("failed to save heap dump %q: %w", dest, werr)
	}

	state = StateDone
	sum = Summary{
		Path:       path,
		SnapshotID: snap.ID,
		Objects:    len(objects),
		Artifacts:  len(arts),
		Elapsed:    c.now().Sub(start),
	}
	c.logger.Info("heap dump saved", "path", path, "objects", sum.Objects, "artifacts", sum.Artifacts)
	return sum, nil
}

// CollectHeapMetadata captures a snapshot of the default live set and
// writes it to dest. The result is always delivered as a string: a
// success message with counts, or a failure message with the underlying
// cause. It never panics.
func CollectHeapMetadata(dest string) string {
	sum, err := New(live.Default(), nil).Collect(dest)
	if err != nil {
		return err.Error()
	}
	return sum.Message()
}

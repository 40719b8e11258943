// ABOUTME: Pluggable codec registry for snapshot encodings
// ABOUTME: Manages codec plugins and selects one by format detection on read

package snapshot

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"
)

var (
	// ErrNoCodec is returned when no codec can handle the dump format
	ErrNoCodec = errors.New("no codec found for dump format")
)

// Codec is the interface for snapshot encodings. The JSON codec is
// registered by default; alternative encodings register themselves the
// same way.
type Codec interface {
	// Name identifies the codec (e.g. "json")
	Name() string

	// CanDecode checks if this codec can handle the given dump format.
	// The reader should be treated as a preview - implementations should
	// read a small amount to detect format and not consume the entire
	// stream.
	CanDecode(r io.Reader) bool

	// Encode serializes a snapshot to w
	Encode(w io.Writer, s *Snapshot) error

	// Decode reads a full dump and rebuilds the snapshot
	Decode(r io.Reader) (*Snapshot, error)
}

// codecRegistry holds registered codecs
type codecRegistry struct {
	mu     sync.RWMutex
	codecs []Codec
}

// Global registry instance
var registry = &codecRegistry{}

// RegisterCodec adds a codec to the registry.
func RegisterCodec(c Codec) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.codecs = append(registry.codecs, c)
}

// LookupCodec returns the codec registered under name.
func LookupCodec(name string) (Codec, error) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()
	for _, c := range registry.codecs {
		if c.Name() == name {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: no codec named %q", ErrNoCodec, name)
}

// Open reads a dump and returns the decoded snapshot. It tries each
// registered codec to find one that recognizes the format.
func Open(r io.Reader) (*Snapshot, error) {
	// Buffer a prefix for format detection so multiple codecs can peek
	// at the same bytes.
	buf := new(bytes.Buffer)
	tee := io.TeeReader(r, buf)

	detectBuf := make([]byte, 4096)
	n, err := tee.Read(detectBuf)
	if err != nil && err != io.EOF {
		return nil, err
	}

	registry.mu.RLock()
	defer registry.mu.RUnlock()

	for _, codec := range registry.codecs {
		checkReader := bytes.NewReader(detectBuf[:n])
		if codec.CanDecode(checkReader) {
			full := io.MultiReader(bytes.NewReader(detectBuf[:n]), r)
			return codec.Decode(full)
		}
	}

	return nil, ErrNoCodec
}

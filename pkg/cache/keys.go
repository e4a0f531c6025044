package cache

import (
	"bytes"
	"encoding/json"

	"github.com/matzehuels/formgrid/pkg/layout"
)

// Key prefixes double as the key type reported to cache hooks.
const (
	KeyTypeArtifact = "artifact"
	KeyTypeDiagram  = "diagram"
)

// ArtifactKeyOpts are the render inputs besides the snapshot that change
// the output.
type ArtifactKeyOpts struct {
	Renderer      string `json:"renderer"`
	IncludeLabels bool   `json:"include_labels"`
	Indent        string `json:"indent"`
	Preview       bool   `json:"preview,omitempty"`
	// Catalog identifies the element catalog, e.g. the hash of a user
	// catalog file. Empty means the built-in one.
	Catalog string `json:"catalog,omitempty"`
}

// DiagramKeyOpts are the inputs of a structure diagram.
type DiagramKeyOpts struct {
	Format   string `json:"format"`
	Detailed bool   `json:"detailed"`
}

// Keyer builds cache keys.
type Keyer interface {
	ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string
	DiagramKey(snapshotHash string, opts DiagramKeyOpts) string
}

// DefaultKeyer hashes every key component into a fixed-length key.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey returns the key of a rendered markup artifact.
func (DefaultKeyer) ArtifactKey(snapshotHash string, opts ArtifactKeyOpts) string {
	return hashKey(KeyTypeArtifact, snapshotHash, opts)
}

// DiagramKey returns the key of a rendered structure diagram.
func (DefaultKeyer) DiagramKey(snapshotHash string, opts DiagramKeyOpts) string {
	return hashKey(KeyTypeDiagram, snapshotHash, opts)
}

// SnapshotHash hashes the structure and content of a snapshot. Metadata is
// left out, so re-exporting a file with a new timestamp keeps its hash.
func SnapshotHash(s layout.Snapshot) string {
	t := s.Tree()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.Encode(t.Root)
	enc.Encode(t.Rows)
	return Hash(buf.Bytes())
}

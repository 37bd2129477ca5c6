package topo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
)

// DocumentVersion is the interchange format version tag.
const DocumentVersion = "1.0"

// Document is the versioned interchange format owned by the collaborator
// (CLI, API, diagram editor). The engine itself never reads or writes files;
// the helpers here exist for the surfaces in internal/.
type Document struct {
	Version string    `json:"version"`
	SavedAt time.Time `json:"saved_at"`
	Nodes   []Node    `json:"nodes"`
	Edges   []Edge    `json:"edges"`
}

// NewDocument wraps nodes and edges in a document stamped with the current
// version tag and timestamp.
func NewDocument(nodes []Node, edges []Edge) Document {
	return Document{
		Version: DocumentVersion,
		SavedAt: time.Now().UTC(),
		Nodes:   nodes,
		Edges:   edges,
	}
}

// EnsureIDs assigns a fresh UUID to every node and edge with an empty ID.
// Hand-written documents commonly omit edge IDs; the engine requires them
// for stable de-duplication.
func (d *Document) EnsureIDs() {
	for i := range d.Nodes {
		if d.Nodes[i].ID == "" {
			d.Nodes[i].ID = uuid.NewString()
		}
	}
	for i := range d.Edges {
		if d.Edges[i].ID == "" {
			d.Edges[i].ID = uuid.NewString()
		}
	}
}

// =============================================================================
// Document Serialization API
// =============================================================================

// MarshalDocument converts a document to pretty-printed JSON bytes.
func MarshalDocument(d Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeDocumentTo(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalDocument decodes JSON bytes into a document.
func UnmarshalDocument(data []byte) (Document, error) {
	return readDocumentFrom(bytes.NewReader(data))
}

// WriteDocument writes a document as JSON to an io.Writer.
func WriteDocument(d Document, w io.Writer) error {
	return writeDocumentTo(d, w)
}

// WriteDocumentFile writes a document to a JSON file.
// The file is created with 0644 permissions.
func WriteDocumentFile(d Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return writeDocumentTo(d, f)
}

// ReadDocument decodes a JSON document from an io.Reader.
func ReadDocument(r io.Reader) (Document, error) {
	return readDocumentFrom(r)
}

// ReadDocumentFile reads a JSON file and returns the decoded document.
func ReadDocumentFile(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return readDocumentFrom(f)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeDocumentTo(d Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

func readDocumentFrom(r io.Reader) (Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	if d.Version == "" {
		d.Version = DocumentVersion
	}
	return d, nil
}

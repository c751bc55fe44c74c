package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/edgecross/pkg/errors"
	"github.com/matzehuels/edgecross/pkg/graph"
	"github.com/matzehuels/edgecross/pkg/idspace"
)

// Document is the JSON form of an embedded graph.
type Document struct {
	Embedding Embedding  `json:"embedding"`
	Nodes     int        `json:"nodes,omitempty"`
	Edges     [][2]int64 `json:"edges"`
}

// Embedding is the JSON form of an identifier space.
type Embedding struct {
	Kind       string      `json:"kind"`
	Modulus    float64     `json:"modulus,omitempty"`
	Positions  []float64   `json:"positions,omitempty"`
	Dimensions int         `json:"dimensions,omitempty"`
	Points     [][]float64 `json:"points,omitempty"`
}

// Size returns the number of positioned nodes.
func (e Embedding) Size() int {
	if e.Kind == idspace.KindRing.String() {
		return len(e.Positions)
	}
	return len(e.Points)
}

// Space converts the JSON embedding into an [idspace.Embedding].
func (e Embedding) Space() (idspace.Embedding, error) {
	kind, err := idspace.ParseKind(e.Kind)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEmbedding, err, "embedding kind")
	}

	var space idspace.Embedding
	switch kind {
	case idspace.KindRing:
		space = idspace.NewRing(e.Modulus, e.Positions)
	case idspace.KindPlane:
		if e.Dimensions != 0 && e.Dimensions != 2 {
			return nil, errors.New(errors.ErrCodeInvalidEmbedding, "plane embedding with %d dimensions", e.Dimensions)
		}
		space = idspace.NewPlane(e.Points)
	case idspace.KindMultiDimensional:
		dim := e.Dimensions
		if dim == 0 && len(e.Points) > 0 {
			dim = len(e.Points[0])
		}
		space = idspace.NewMultiDimensional(dim, e.Points)
	default:
		return nil, errors.New(errors.ErrCodeInvalidEmbedding, "unhandled embedding kind %s", kind)
	}

	if err := space.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEmbedding, err, "validate embedding")
	}
	return space, nil
}

// Validate checks the document structure against its embedding. It does not
// validate the embedding's positions; [Embedding.Space] does.
func (d *Document) Validate() error {
	size := d.Embedding.Size()
	if err := errors.ValidateNodeCount(size); err != nil {
		return err
	}
	if err := errors.ValidateNodeCount(d.Nodes); err != nil {
		return err
	}
	if d.Nodes > size {
		return errors.New(errors.ErrCodeInvalidInput, "document declares %d nodes but embeds %d", d.Nodes, size)
	}
	for i, e := range d.Edges {
		if err := errors.ValidateEdge(e[0], e[1], size); err != nil {
			return errors.Wrap(errors.GetCode(err), err, "edge %d", i)
		}
	}
	return nil
}

// Build validates the document and returns the graph snapshot and embedding
// it describes.
func (d *Document) Build() (*graph.Snapshot, idspace.Embedding, error) {
	if err := d.Validate(); err != nil {
		return nil, nil, err
	}
	space, err := d.Embedding.Space()
	if err != nil {
		return nil, nil, err
	}

	snap := graph.New()
	for id := 0; id < d.Nodes; id++ {
		if err := snap.AddNode(int64(id)); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "node %d", id)
		}
	}
	for _, e := range d.Edges {
		if err := snap.AddEdge(e[0], e[1]); err != nil {
			return nil, nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "edge %d-%d", e[0], e[1])
		}
	}
	return snap, space, nil
}

// Canonical returns the document's canonical JSON encoding, used for hashing.
// Edges are emitted as given; callers that need order-independent hashes
// should sort edges first.
func (d *Document) Canonical() ([]byte, error) {
	return json.Marshal(d)
}

// ReadDocument decodes a JSON document from r and validates it.
//
// ReadDocument returns an error if the JSON is malformed, an edge is a self
// loop, or an edge references a node without a position. ReadDocument does
// not close r.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode document")
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// ImportDocument reads a JSON document file at path.
func ImportDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDocument(f)
}

// WriteDocument encodes doc as indented JSON and writes it to w.
// The output can be re-imported with [ReadDocument].
func WriteDocument(doc *Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportDocument writes doc to a JSON file at path.
func ExportDocument(doc *Document, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDocument(doc, f)
}

package io

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/edgecross/pkg/crossings"
	"github.com/matzehuels/edgecross/pkg/errors"
	"github.com/matzehuels/edgecross/pkg/idspace"
	"github.com/matzehuels/edgecross/pkg/metric"
)

const squareJSON = `{
  "embedding": {"kind": "ring", "modulus": 1, "positions": [0, 0.25, 0.5, 0.75]},
  "nodes": 4,
  "edges": [[0, 2], [1, 3], [0, 1]]
}`

func TestReadDocument(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(squareJSON))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	snap, emb, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if emb.Kind() != idspace.KindRing || emb.Size() != 4 {
		t.Errorf("embedding = %s with %d nodes", emb.Kind(), emb.Size())
	}
	if snap.NodeCount() != 4 || snap.EdgeCount() != 3 {
		t.Errorf("snapshot = %d nodes, %d edges", snap.NodeCount(), snap.EdgeCount())
	}
}

func TestReadDocumentIsolatedNodes(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(`{
		"embedding": {"kind": "ring", "positions": [0, 0.5, 0.7]},
		"nodes": 3,
		"edges": [[0, 1]]
	}`))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	snap, _, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !snap.HasNode(2) || snap.Degree(2) != 0 {
		t.Error("declared node 2 should be present and isolated")
	}
}

func TestReadDocumentPlaneAndMD(t *testing.T) {
	tests := []struct {
		name string
		json string
		kind idspace.Kind
		dim  int
	}{
		{"plane", `{"embedding": {"kind": "plane", "points": [[0,0],[1,1]]}, "edges": [[0,1]]}`, idspace.KindPlane, 2},
		{"md", `{"embedding": {"kind": "md", "dimensions": 3, "points": [[0,0,0],[1,1,1]]}, "edges": [[0,1]]}`, idspace.KindMultiDimensional, 3},
		{"md inferred", `{"embedding": {"kind": "md", "points": [[0,0],[1,1]]}, "edges": [[0,1]]}`, idspace.KindMultiDimensional, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadDocument(strings.NewReader(tt.json))
			if err != nil {
				t.Fatalf("ReadDocument: %v", err)
			}
			_, emb, err := doc.Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			if emb.Kind() != tt.kind || emb.Dimensions() != tt.dim {
				t.Errorf("embedding = %s/%d, want %s/%d", emb.Kind(), emb.Dimensions(), tt.kind, tt.dim)
			}
		})
	}
}

func TestReadDocumentErrors(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		wantCode errors.Code
	}{
		{"malformed", `{"edges": [`, errors.ErrCodeInvalidInput},
		{"self loop", `{"embedding": {"kind": "ring", "positions": [0, 0.5]}, "edges": [[1, 1]]}`, errors.ErrCodeInvalidInput},
		{"unpositioned node", `{"embedding": {"kind": "ring", "positions": [0, 0.5]}, "edges": [[0, 2]]}`, errors.ErrCodeInvalidInput},
		{"too many nodes", `{"embedding": {"kind": "ring", "positions": [0]}, "nodes": 2, "edges": []}`, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadDocument(strings.NewReader(tt.json))
			if !errors.Is(err, tt.wantCode) {
				t.Errorf("ReadDocument error = %v, want code %s", err, tt.wantCode)
			}
		})
	}
}

func TestBuildInvalidEmbedding(t *testing.T) {
	tests := []struct {
		name string
		json string
	}{
		{"unknown kind", `{"embedding": {"kind": "torus", "points": [[0],[1]]}, "edges": [[0, 1]]}`},
		{"position outside ring", `{"embedding": {"kind": "ring", "modulus": 1, "positions": [0, 1.5]}, "edges": [[0, 1]]}`},
		{"plane with three dimensions", `{"embedding": {"kind": "plane", "dimensions": 3, "points": [[0,0,0],[1,1,1]]}, "edges": [[0, 1]]}`},
		{"ragged points", `{"embedding": {"kind": "md", "dimensions": 2, "points": [[0,0],[1]]}, "edges": [[0, 1]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ReadDocument(strings.NewReader(tt.json))
			if err != nil {
				t.Fatalf("ReadDocument: %v", err)
			}
			if _, _, err := doc.Build(); !errors.Is(err, errors.ErrCodeInvalidEmbedding) {
				t.Errorf("Build error = %v, want INVALID_EMBEDDING", err)
			}
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	doc, err := ReadDocument(strings.NewReader(squareJSON))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}

	path := filepath.Join(t.TempDir(), "square.json")
	if err := ExportDocument(doc, path); err != nil {
		t.Fatalf("ExportDocument: %v", err)
	}
	again, err := ImportDocument(path)
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}

	a, _ := doc.Canonical()
	b, _ := again.Canonical()
	if !bytes.Equal(a, b) {
		t.Errorf("round trip changed document:\n%s\n%s", a, b)
	}
}

func TestImportDocumentMissingFile(t *testing.T) {
	_, err := ImportDocument(filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("ImportDocument error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteWithIndex(t *testing.T) {
	var buf bytes.Buffer
	rows := []metric.Row{{Index: 0, Value: 0}, {Index: 1, Value: 0.5}, {Index: 2, Value: 1}}
	if err := WriteWithIndex(rows, &buf); err != nil {
		t.Fatalf("WriteWithIndex: %v", err)
	}
	want := "0\t0\n1\t0.5\n2\t1\n"
	if buf.String() != want {
		t.Errorf("WriteWithIndex = %q, want %q", buf.String(), want)
	}
}

func TestWriteSeriesDir(t *testing.T) {
	doc, _ := ReadDocument(strings.NewReader(squareJSON))
	snap, emb, err := doc.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	res, err := metric.New(crossings.Options{}, nil).Compute(context.Background(), snap, emb)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	dir := filepath.Join(t.TempDir(), "out")
	paths, err := WriteSeriesDir(res, dir)
	if err != nil {
		t.Fatalf("WriteSeriesDir: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("wrote %d files, want 3", len(paths))
	}

	singles, err := os.ReadFile(filepath.Join(dir, SinglesFile))
	if err != nil {
		t.Fatalf("read singles: %v", err)
	}
	if !strings.HasPrefix(string(singles), metric.NameAverage+"\t") {
		t.Errorf("singles = %q", singles)
	}

	cdf, err := os.ReadFile(filepath.Join(dir, metric.NameCDF+".txt"))
	if err != nil {
		t.Fatalf("read cdf: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(cdf)), "\n")
	if last := lines[len(lines)-1]; !strings.HasSuffix(last, "\t1") {
		t.Errorf("last CDF line = %q, want value 1", last)
	}
}

func TestExportResult(t *testing.T) {
	path := filepath.Join(t.TempDir(), "result.json")
	if err := ExportResult(map[string]int{"total": 1}, path); err != nil {
		t.Fatalf("ExportResult: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), `"total": 1`) {
		t.Errorf("result = %s", data)
	}
}

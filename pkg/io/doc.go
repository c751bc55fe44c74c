// Package io provides JSON import and export for embedded graph documents
// and writers for metric output.
//
// # Overview
//
// A document couples an undirected graph with the identifier-space embedding
// its nodes live in. The format is designed for:
//
//   - Feeding graphs produced by external generators into the crossing metric
//   - Caching and hashing inputs by their canonical encoding
//   - Round-trip preservation: import, export, and re-import identically
//
// # JSON Format
//
// A ring document:
//
//	{
//	  "embedding": {"kind": "ring", "modulus": 1, "positions": [0, 0.25, 0.5, 0.75]},
//	  "nodes": 4,
//	  "edges": [[0, 2], [1, 3]]
//	}
//
// A plane or multi-dimensional document replaces positions with points:
//
//	{
//	  "embedding": {"kind": "plane", "dimensions": 2, "points": [[0, 0], [1, 1]]},
//	  "edges": [[0, 1]]
//	}
//
// Node identifiers are indexes into positions or points. "nodes" is optional;
// when set, identifiers 0..nodes-1 are added to the graph even if isolated.
//
// # Import
//
// Use [ImportDocument] to read a document from a file path, or [ReadDocument]
// to read from any io.Reader. Both validate the document against its
// embedding. [Document.Build] turns a document into the snapshot and
// embedding the metric consumes.
//
// # Metric Output
//
// [WriteWithIndex] writes one indexed series as "index<TAB>value" lines.
// [WriteSeriesDir] writes every series of a result into a directory, one
// "<NAME>.txt" file per series and "_singles.txt" with the scalar values.
// [WriteResult] writes the full result as indented JSON.
package io

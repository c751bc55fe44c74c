// Package store persists metric results so they can be listed and fetched
// later by id.
//
// Two backends implement [Store]: [MemoryStore] for a single process and
// [MongoStore] for shared deployments. Records are immutable once saved.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/matzehuels/edgecross/pkg/metric"
)

// ErrNotFound is returned by Get for unknown ids.
var ErrNotFound = errors.New("record not found")

// DefaultListLimit is used by List when limit is not positive.
const DefaultListLimit = 50

// Record is a stored metric result.
type Record struct {
	ID           string    `json:"id" bson:"_id"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	DocHash      string    `json:"doc_hash" bson:"doc_hash"`
	Nodes        int       `json:"nodes" bson:"nodes"`
	Edges        int       `json:"edges" bson:"edges"`
	Kind         string    `json:"kind" bson:"kind"`
	Strategy     string    `json:"strategy" bson:"strategy"`
	Total        int       `json:"total" bson:"total"`
	Average      float64   `json:"average" bson:"average"`
	Distribution []float64 `json:"distribution" bson:"distribution"`
	CDF          []float64 `json:"cdf" bson:"cdf"`
	Trivial      bool      `json:"trivial" bson:"trivial"`
}

// NewRecord builds a record for res with a fresh id.
func NewRecord(docHash string, res *metric.Result) Record {
	return Record{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		DocHash:      docHash,
		Nodes:        res.Nodes,
		Edges:        res.Edges,
		Kind:         res.Kind,
		Strategy:     string(res.Strategy),
		Total:        res.Total,
		Average:      res.Distribution.Average,
		Distribution: res.Distribution.Values,
		CDF:          res.Distribution.CDF,
		Trivial:      res.Trivial,
	}
}

// ValidID reports whether id has the form of a record id.
func ValidID(id string) bool {
	return uuid.Validate(id) == nil
}

// Store saves and retrieves records.
type Store interface {
	// Save stores rec. Saving an id twice is an error.
	Save(ctx context.Context, rec Record) error

	// Get returns the record with the given id, or [ErrNotFound].
	Get(ctx context.Context, id string) (Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}

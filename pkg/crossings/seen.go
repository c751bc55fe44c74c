package crossings

import (
	"strconv"

	"github.com/matzehuels/edgecross/pkg/graph"
)

// SeenSet records which unordered edge pairs a counting pass has already
// scored. A pair is scored at most once per set.
//
// The zero value is not usable; create sets with [NewSeenSet]. A SeenSet is
// not safe for concurrent use and should not outlive the call that made it.
type SeenSet struct {
	keys map[string]struct{}
}

// NewSeenSet creates an empty set.
func NewSeenSet() *SeenSet {
	return &SeenSet{keys: make(map[string]struct{})}
}

// Visit records key and reports whether it was new.
func (s *SeenSet) Visit(key string) bool {
	if _, ok := s.keys[key]; ok {
		return false
	}
	s.keys[key] = struct{}{}
	return true
}

// Len returns the number of recorded pairs.
func (s *SeenSet) Len() int {
	return len(s.keys)
}

// intervalKey formats a ring interval as "start-end".
func intervalKey(start, end float64) string {
	return strconv.FormatFloat(start, 'g', -1, 64) + "-" + strconv.FormatFloat(end, 'g', -1, 64)
}

// pairKey joins two keys in lexicographic order so (x, y) and (y, x) collide.
func pairKey(x, y string) string {
	if y < x {
		x, y = y, x
	}
	return x + "|" + y
}

// edgePairKey is the pair key for embeddings keyed by node identity.
func edgePairKey(a, b graph.Edge) string {
	return pairKey(a.String(), b.String())
}

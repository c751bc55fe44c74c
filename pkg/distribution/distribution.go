// Package distribution turns per-edge crossing counts into a normalized
// crossing distribution, its cumulative form, and an average.
//
// Normalization is over crossing incidences, not over edges: bucket k holds
// the share of all crossing incidences carried by edges with exactly k
// crossings. The divisor is therefore the total crossing sum, and the
// cumulative form ends at 1 whenever at least one crossing exists.
//
// The average is incidence-weighted as a consequence: it is E[k²]/E[k] over
// the per-edge counts, the expected crossing count of the edge behind a
// randomly picked crossing incidence. It is not the mean number of crossings
// per edge, which is sum(perEdge)/len(perEdge).
//
// A graph without crossings has nothing to normalize by; [Build] reports
// [ErrDivideByZeroCrossings] and callers fall back to [Trivial].
package distribution

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"
)

var (
	// ErrDivideByZeroCrossings is returned by [Build] when the counts sum to
	// zero, e.g. for planar drawings or empty edge sets.
	ErrDivideByZeroCrossings = errors.New("distribution: no crossings to normalize by")

	// ErrInvalidCounts is returned by [Build] for negative counts or a maximum
	// that is smaller than an observed count.
	ErrInvalidCounts = errors.New("distribution: invalid crossing counts")
)

// Distribution is an immutable crossing distribution.
type Distribution struct {
	// Histogram[k] is the number of edges with exactly k crossings.
	Histogram []int `json:"histogram"`

	// Values[k] is the normalized mass of bucket k.
	Values []float64 `json:"distribution"`

	// CDF is the running sum of Values.
	CDF []float64 `json:"cdf"`

	// Average is sum_k k*Values[k], equal to E[k²]/E[k] over the edges.
	Average float64 `json:"average"`
}

// Build creates a distribution from per-edge crossing counts whose maximum is
// maxK. The histogram has maxK+1 buckets.
func Build(perEdge []int, maxK int) (*Distribution, error) {
	if maxK < 0 {
		return nil, fmt.Errorf("%w: maximum %d", ErrInvalidCounts, maxK)
	}

	hist := make([]int, maxK+1)
	sum := 0
	for i, c := range perEdge {
		if c < 0 || c > maxK {
			return nil, fmt.Errorf("%w: edge %d has %d crossings (maximum %d)", ErrInvalidCounts, i, c, maxK)
		}
		hist[c]++
		sum += c
	}
	if sum == 0 {
		return nil, ErrDivideByZeroCrossings
	}

	values := make([]float64, maxK+1)
	index := make([]float64, maxK+1)
	for k, n := range hist {
		index[k] = float64(k)
		values[k] = float64(k*n) / float64(sum)
	}

	return &Distribution{
		Histogram: hist,
		Values:    values,
		CDF:       floats.CumSum(make([]float64, len(values)), values),
		Average:   floats.Dot(index, values),
	}, nil
}

// Trivial returns the all-zero distribution reported when no crossings exist.
func Trivial() *Distribution {
	return &Distribution{
		Histogram: []int{0},
		Values:    []float64{0},
		CDF:       []float64{0},
		Average:   0,
	}
}

// BuildOrTrivial is [Build] with [ErrDivideByZeroCrossings] handled: it
// returns [Trivial] and reports trivial == true instead of failing.
func BuildOrTrivial(perEdge []int, maxK int) (d *Distribution, trivial bool, err error) {
	d, err = Build(perEdge, maxK)
	if errors.Is(err, ErrDivideByZeroCrossings) {
		t := Trivial()
		t.Histogram = make([]int, maxK+1)
		t.Histogram[0] = len(perEdge)
		return t, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return d, false, nil
}

// Len returns the number of buckets.
func (d *Distribution) Len() int {
	return len(d.Values)
}

// Total returns the total mass, 1 for non-trivial distributions.
func (d *Distribution) Total() float64 {
	return floats.Sum(d.Values)
}

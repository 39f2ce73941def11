// Package index maps external participant labels onto dense integer
// positions [0, n) and back.
//
// Matching engines normalize every population through an Index once at
// call entry, work on plain slices indexed by position, and translate
// positions back to labels only when building their results.
//
// An Index is immutable after construction and safe for concurrent reads.
//
// Errors:
//
//	ErrEmptyLabel     - a label is the empty string.
//	ErrDuplicateLabel - the same label appears twice.
package index

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for index construction.
var (
	// ErrEmptyLabel indicates an empty participant label.
	ErrEmptyLabel = errors.New("index: empty label")

	// ErrDuplicateLabel indicates a label that occurs more than once.
	ErrDuplicateLabel = errors.New("index: duplicate label")
)

// Index is a bijection between labels and dense positions.
type Index struct {
	labels []string       // position → label
	pos    map[string]int // label → position
}

// New assigns positions to labels in the order given.
//
// Complexity: O(n) time and space.
func New(labels []string) (*Index, error) {
	ix := &Index{
		labels: make([]string, len(labels)),
		pos:    make(map[string]int, len(labels)),
	}
	for i, l := range labels {
		if l == "" {
			return nil, fmt.Errorf("%w: at position %d", ErrEmptyLabel, i)
		}
		if _, dup := ix.pos[l]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateLabel, l)
		}
		ix.labels[i] = l
		ix.pos[l] = i
	}

	return ix, nil
}

// Sorted is New over a lexicographically sorted copy of labels.
// Use it when labels come from a map and the order must be deterministic.
//
// Complexity: O(n log n).
func Sorted(labels []string) (*Index, error) {
	cp := append([]string(nil), labels...)
	sort.Strings(cp)

	return New(cp)
}

// Len returns the number of labels.
func (ix *Index) Len() int { return len(ix.labels) }

// Of returns the position of label and whether it is known.
func (ix *Index) Of(label string) (int, bool) {
	i, ok := ix.pos[label]
	return i, ok
}

// Label returns the label at position i. It panics if i is out of range,
// like a slice access.
func (ix *Index) Label(i int) string { return ix.labels[i] }

// Labels returns a copy of all labels in position order.
func (ix *Index) Labels() []string {
	return append([]string(nil), ix.labels...)
}

// LabelsOf translates positions to labels, preserving order.
func (ix *Index) LabelsOf(positions []int) []string {
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = ix.labels[p]
	}

	return out
}

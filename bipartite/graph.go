package bipartite

import (
	"fmt"

	"github.com/katalvlaran/lvmatch/index"
)

// Graph is the compatibility graph: each donor's compatible receivers in
// receiver input order. It is read-only once built.
type Graph struct {
	donors    *index.Index
	receivers *index.Index
	adj       [][]int // donor position → receiver positions
	edges     int
}

// BuildGraph evaluates compatible for every donor/receiver pair.
//
// Identifiers must be non-empty and unique within their side; the same
// label may appear on both sides.
//
// Complexity: O(D·R) predicate calls, O(D + E) memory.
func BuildGraph(donors, receivers []string, compatible Predicate) (*Graph, error) {
	if compatible == nil {
		return nil, fmt.Errorf("%w: nil predicate", ErrInvalidInput)
	}
	dix, err := index.New(donors)
	if err != nil {
		return nil, fmt.Errorf("%w: donors: %w", ErrInvalidInput, err)
	}
	rix, err := index.New(receivers)
	if err != nil {
		return nil, fmt.Errorf("%w: receivers: %w", ErrInvalidInput, err)
	}

	g := &Graph{donors: dix, receivers: rix, adj: make([][]int, dix.Len())}
	var ok bool
	for d := 0; d < dix.Len(); d++ {
		for r := 0; r < rix.Len(); r++ {
			ok, err = compatible(dix.Label(d), rix.Label(r))
			if err != nil {
				return nil, fmt.Errorf("%w: compatibility of %q and %q: %w",
					ErrInvalidInput, dix.Label(d), rix.Label(r), err)
			}
			if ok {
				g.adj[d] = append(g.adj[d], r)
			}
		}
		g.edges += len(g.adj[d])
	}

	return g, nil
}

// Donors returns donor identifiers in input order.
func (g *Graph) Donors() []string { return g.donors.Labels() }

// Receivers returns receiver identifiers in input order.
func (g *Graph) Receivers() []string { return g.receivers.Labels() }

// Edges returns the number of compatible pairs.
func (g *Graph) Edges() int { return g.edges }

// Neighbors returns the receivers compatible with donor.
func (g *Graph) Neighbors(donor string) ([]string, error) {
	d, ok := g.donors.Of(donor)
	if !ok {
		return nil, fmt.Errorf("%w: unknown donor %q", ErrInvalidInput, donor)
	}

	return g.receivers.LabelsOf(g.adj[d]), nil
}

// Compatible reports whether donor/receiver is an edge. Unknown labels
// are not edges.
func (g *Graph) Compatible(donor, receiver string) bool {
	d, ok := g.donors.Of(donor)
	if !ok {
		return false
	}
	r, ok := g.receivers.Of(receiver)
	if !ok {
		return false
	}
	for _, x := range g.adj[d] {
		if x == r {
			return true
		}
	}

	return false
}

// MaximumMatching builds the compatibility graph and runs Hopcroft–Karp on it.
func MaximumMatching(donors, receivers []string, compatible Predicate, opts ...Option) (*Result, error) {
	g, err := BuildGraph(donors, receivers, compatible)
	if err != nil {
		return nil, err
	}

	return g.MaximumMatching(opts...)
}

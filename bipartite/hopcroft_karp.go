package bipartite

import (
	"fmt"
	"math"
)

const (
	free = -1          // unmatched donor or receiver
	inf  = math.MaxInt // layer of a donor not reached, or retired, in this phase
)

// frame is one DFS level: a donor and the next adjacency position to try.
type frame struct {
	donor int
	next  int
}

// matcher carries the matching state and per-phase scratch space.
type matcher struct {
	g       *Graph
	toR     []int // donor → receiver
	toD     []int // receiver → donor, inverse of toR
	dist    []int // donor → BFS layer
	distNil int   // layer at which a free receiver is first reached
	queue   []int
	stack   []frame
}

func newMatcher(g *Graph) *matcher {
	m := &matcher{
		g:     g,
		toR:   make([]int, g.donors.Len()),
		toD:   make([]int, g.receivers.Len()),
		dist:  make([]int, g.donors.Len()),
		queue: make([]int, 0, g.donors.Len()),
	}
	for i := range m.toR {
		m.toR[i] = free
	}
	for i := range m.toD {
		m.toD[i] = free
	}

	return m
}

// MaximumMatching runs Hopcroft–Karp on g.
//
// Steps:
//  1. Apply options; surface ErrOptionViolation (O(1)).
//  2. Repeat while BFS layering reaches a free receiver (O(V + E) per phase):
//     a. stop with ErrInternalInconsistency once the phase cap is hit;
//     b. run a layered DFS from every free donor, flipping each path found;
//     c. a phase that augments nothing is reported as ErrInternalInconsistency.
//  3. Cross-check the forward and inverse maps and build the Result.
//
// Complexity: O(E·√V) time, O(V + E) memory.
func (g *Graph) MaximumMatching(opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	limit := o.MaxPhases
	if limit == 0 {
		limit = min(g.donors.Len(), g.receivers.Len()) + 1
	}

	m := newMatcher(g)
	phases := 0
	for m.layer() {
		if phases == limit {
			return nil, fmt.Errorf("%w: augmenting path still present after %d phases", ErrInternalInconsistency, limit)
		}
		phases++

		augmented := 0
		for d := range m.toR {
			if m.toR[d] != free {
				continue
			}
			r, ok := m.augment(d)
			if !ok {
				continue
			}
			augmented++
			if o.OnAugment != nil {
				o.OnAugment(phases, g.donors.Label(d), g.receivers.Label(r))
			}
		}
		if augmented == 0 {
			return nil, fmt.Errorf("%w: phase %d layered a path but augmented none", ErrInternalInconsistency, phases)
		}
	}

	if err := m.check(); err != nil {
		return nil, err
	}

	return m.result(phases), nil
}

// layer assigns BFS layers from all free donors and reports whether a free
// receiver was reached.
func (m *matcher) layer() bool {
	m.queue = m.queue[:0]
	for d, r := range m.toR {
		if r == free {
			m.dist[d] = 0
			m.queue = append(m.queue, d)
		} else {
			m.dist[d] = inf
		}
	}
	m.distNil = inf

	for i := 0; i < len(m.queue); i++ {
		d := m.queue[i]
		if m.dist[d] >= m.distNil {
			continue // deeper than the shortest augmenting paths
		}
		for _, r := range m.g.adj[d] {
			next := m.toD[r]
			if next == free {
				if m.distNil == inf {
					m.distNil = m.dist[d] + 1
				}
				continue
			}
			if m.dist[next] == inf {
				m.dist[next] = m.dist[d] + 1
				m.queue = append(m.queue, next)
			}
		}
	}

	return m.distNil != inf
}

// augment searches a layer-increasing path from the free donor root to a
// free receiver and flips it. Donors whose alternatives run out are retired
// for the rest of the phase. It returns the free receiver that ended the path.
func (m *matcher) augment(root int) (int, bool) {
	m.stack = append(m.stack[:0], frame{donor: root})
	for len(m.stack) > 0 {
		top := len(m.stack) - 1
		d := m.stack[top].donor
		if m.stack[top].next == len(m.g.adj[d]) {
			m.dist[d] = inf
			m.stack = m.stack[:top]
			continue
		}
		r := m.g.adj[d][m.stack[top].next]
		m.stack[top].next++

		next := m.toD[r]
		switch {
		case next == free:
			if m.distNil == m.dist[d]+1 {
				m.flip()
				return r, true
			}
		case m.dist[next] == m.dist[d]+1:
			m.stack = append(m.stack, frame{donor: next})
		}
	}

	return free, false
}

// flip matches every stacked donor to the receiver its frame last tried.
func (m *matcher) flip() {
	for _, f := range m.stack {
		r := m.g.adj[f.donor][f.next-1]
		m.toR[f.donor] = r
		m.toD[r] = f.donor
	}
}

// check verifies that toR and toD are inverse partial maps.
func (m *matcher) check() error {
	for d, r := range m.toR {
		if r != free && m.toD[r] != d {
			return fmt.Errorf("%w: donor %q holds %q, which is held by another donor",
				ErrInternalInconsistency, m.g.donors.Label(d), m.g.receivers.Label(r))
		}
	}
	for r, d := range m.toD {
		if d != free && m.toR[d] != r {
			return fmt.Errorf("%w: receiver %q held by %q, which holds another receiver",
				ErrInternalInconsistency, m.g.receivers.Label(r), m.g.donors.Label(d))
		}
	}

	return nil
}

func (m *matcher) result(phases int) *Result {
	res := &Result{
		Pairs:              make([]Pair, 0, min(len(m.toR), len(m.toD))),
		Phases:             phases,
		UnmatchedDonors:    []string{},
		UnmatchedReceivers: []string{},
	}
	for d, r := range m.toR {
		if r == free {
			res.UnmatchedDonors = append(res.UnmatchedDonors, m.g.donors.Label(d))
			continue
		}
		res.Pairs = append(res.Pairs, Pair{Donor: m.g.donors.Label(d), Receiver: m.g.receivers.Label(r)})
	}
	for r, d := range m.toD {
		if d == free {
			res.UnmatchedReceivers = append(res.UnmatchedReceivers, m.g.receivers.Label(r))
		}
	}
	res.Size = len(res.Pairs)

	return res
}

// HasAugmentingPath reports whether pairs, taken as a matching of g, can be
// enlarged. A false answer certifies a maximum matching.
//
// Pairs naming unknown participants, non-edges, or a participant twice
// yield ErrInvalidMatching.
//
// Complexity: O(V + E).
func (g *Graph) HasAugmentingPath(pairs []Pair) (bool, error) {
	m := newMatcher(g)
	for _, p := range pairs {
		d, ok := g.donors.Of(p.Donor)
		if !ok {
			return false, fmt.Errorf("%w: unknown donor %q", ErrInvalidMatching, p.Donor)
		}
		r, ok := g.receivers.Of(p.Receiver)
		if !ok {
			return false, fmt.Errorf("%w: unknown receiver %q", ErrInvalidMatching, p.Receiver)
		}
		if !g.Compatible(p.Donor, p.Receiver) {
			return false, fmt.Errorf("%w: (%q, %q) is not compatible", ErrInvalidMatching, p.Donor, p.Receiver)
		}
		if m.toR[d] != free || m.toD[r] != free {
			return false, fmt.Errorf("%w: (%q, %q) reuses a participant", ErrInvalidMatching, p.Donor, p.Receiver)
		}
		m.toR[d], m.toD[r] = r, d
	}

	return m.layer(), nil
}

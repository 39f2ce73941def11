// Package bipartite computes maximum-cardinality matchings between donors
// and receivers under a compatibility predicate, using Hopcroft–Karp.
//
// What:
//
//   - BuildGraph evaluates the predicate once per donor/receiver pair and
//     keeps, per donor, the compatible receivers in input order.
//   - Each phase layers the graph by BFS from every free donor; a free
//     receiver reached at layer d+1 sets the NIL sentinel, proving a shortest
//     augmenting path exists. DFS then follows strictly increasing layers
//     from each free donor, flips the first path found, and retires donors
//     whose alternatives are exhausted for the rest of the phase.
//   - The loop ends when BFS no longer reaches NIL; by Berge's lemma the
//     matching is then maximum.
//
// The DFS keeps an explicit stack of (donor, adjacency position) frames and
// mutates a single donor→receiver map and its receiver→donor inverse.
//
// Complexity:
//
//   - Graph: O(D·R) predicate calls.
//   - Match: O(E·√V) time, O(V + E) memory.
//
// Errors:
//
//	ErrInvalidInput          - empty/duplicate identifiers or a failing predicate.
//	ErrOptionViolation       - an Option carried an invalid value.
//	ErrInternalInconsistency - phase cap exceeded, a phase without progress,
//	                           or forward/inverse maps disagreeing.
//	ErrInvalidMatching       - HasAugmentingPath got pairs that are not a matching of the graph.
//
// Example:
//
//	res, err := bipartite.MaximumMatching(
//	    []string{"1", "2"}, []string{"3", "4"},
//	    bipartite.FromPairs([][2]string{{"1", "3"}, {"1", "4"}, {"2", "4"}}),
//	)
//	// res.Size == 2
package bipartite

// Package stable computes stable one-to-one matchings between two ranked
// populations using the Gale–Shapley deferred-acceptance procedure.
//
// What:
//
//   - Population A proposes, population B disposes. Every A-participant
//     walks its preference list best-first; a B-participant holds the best
//     proposal seen so far and releases the previous holder.
//   - The outcome is the A-optimal stable matching. It does not depend on the
//     order in which pending proposals are served, so the three schedulers
//     below always return identical pairs for identical input.
//
// Schedulers:
//
//   - Sequential: always serves the lowest-identifier free A-participant
//     (ordered set, gods treeset).
//   - Bucket:     n buckets indexed by proposal rank; each pop scans from
//     bucket 0 so the globally best-ranked pending proposal goes first.
//   - Heap:       same order as Bucket via a binary min-heap keyed by rank
//     (gods binaryheap), O(log n) per operation.
//
// All three share one acceptance/displacement routine; they differ only in
// which pending proposal is handed to it next.
//
// Input:
//
//	type Preferences map[string][]string // participant → ranked list, best first
//
// Participants are indexed in lexicographic order of their identifiers.
// By default both populations must have the same size and every list must
// rank the whole opposite population. WithIncompleteLists relaxes that:
// populations may differ in size and lists may be partial; anyone left
// without an accepting partner is reported as unmatched.
//
// Complexity:
//
//   - Time:   O(|A|·|B|) proposals; O(1) per proposal for Sequential
//     amortized O(log n), Bucket O(n) scan, Heap O(log n).
//   - Memory: O(|A|·|B|) for the rank table.
//
// Errors:
//
//	ErrInvalidInput           - malformed relations (sizes, duplicates, foreign or empty IDs).
//	ErrOptionViolation        - an Option carried an invalid value.
//	ErrInternalInconsistency  - a runtime invariant broke (proposal budget, double engagement).
//	ErrInvalidMatching        - Verify got pairs that are not a valid matching.
//	ErrUnstable               - Verify found a blocking pair (*BlockingPairError).
package stable

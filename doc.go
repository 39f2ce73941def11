// Package lvmatch is a small toolbox for two classic matching problems on
// two populations: stable pairing under ranked preferences and maximum
// donor/receiver pairing under a compatibility relation.
//
// 🚀 What is lvmatch?
//
//	A deterministic, allocation-conscious library plus CLI that brings together:
//		• Stable matching: Gale–Shapley with sequential, bucket and heap scheduling
//		• Stability audit: blocking-pair detection for any proposed matching
//		• Maximum matching: Hopcroft–Karp with layered BFS and iterative DFS
//		• Blood-type compatibility: embedded ABO/Rh table or your own YAML table
//		• Seeded generators for reproducible benchmarks and property tests
//
// ✨ Why choose lvmatch?
//
//   - Same answer every run – participants are indexed in sorted order
//   - Typed sentinel errors – match with errors.Is, never parse messages
//   - Hooks (OnProposal, OnAugment) instead of built-in logging
//
// Packages:
//
//	stable/    - Gale–Shapley stable matching + Verify
//	bipartite/ - Hopcroft–Karp maximum matching + HasAugmentingPath
//	bloodtype/ - donor/receiver compatibility tables
//	gen/       - seeded random instances
//	index/     - label ⇄ dense index mapping shared by the solvers
//	cmd/lvmatch - the command line front end
//
// Quick ASCII example (proposers on the left, receivers on the right):
//
//	A ──▶ X      A: X Y Z     X: B A C
//	B ──▶ Y      B: Y X Z     Y: A B C
//	C ──▶ Z      C: X Z Y     Z: A C B
//
//	go install github.com/katalvlaran/lvmatch/cmd/lvmatch@latest
package lvmatch

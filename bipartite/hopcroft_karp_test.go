package bipartite_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvmatch/bipartite"
	"github.com/katalvlaran/lvmatch/bloodtype"
	"github.com/katalvlaran/lvmatch/gen"
)

// HopcroftKarpSuite exercises the matching engine on hand-built graphs.
type HopcroftKarpSuite struct {
	suite.Suite
}

func TestHopcroftKarpSuite(t *testing.T) {
	suite.Run(t, new(HopcroftKarpSuite))
}

// TestTwoByTwo: 1↔3, 1↔4, 2↔4 admits a perfect matching.
func (s *HopcroftKarpSuite) TestTwoByTwo() {
	res, err := bipartite.MaximumMatching(
		[]string{"1", "2"}, []string{"3", "4"},
		bipartite.FromPairs([][2]string{{"1", "3"}, {"1", "4"}, {"2", "4"}}),
	)
	s.Require().NoError(err)
	s.Equal(2, res.Size)
	s.Equal([]bipartite.Pair{{Donor: "1", Receiver: "3"}, {Donor: "2", Receiver: "4"}}, res.Pairs)
	s.Empty(res.UnmatchedDonors)
	s.Empty(res.UnmatchedReceivers)
	s.Equal(1, res.Phases)
}

// TestIsolatedDonor: a donor without compatible receivers is left out and
// the rest is matched as if it were absent.
func (s *HopcroftKarpSuite) TestIsolatedDonor() {
	edges := [][2]string{{"1", "3"}, {"1", "4"}, {"2", "4"}}
	full, err := bipartite.MaximumMatching([]string{"1", "5", "2"}, []string{"3", "4"}, bipartite.FromPairs(edges))
	s.Require().NoError(err)
	reduced, err := bipartite.MaximumMatching([]string{"1", "2"}, []string{"3", "4"}, bipartite.FromPairs(edges))
	s.Require().NoError(err)

	s.Equal(reduced.Size, full.Size)
	s.Equal([]string{"5"}, full.UnmatchedDonors)
	for _, p := range full.Pairs {
		s.NotEqual("5", p.Donor)
	}
}

// TestRequiresRematch forces the second phase to reroute an existing pair.
func (s *HopcroftKarpSuite) TestRequiresRematch() {
	var augments [][3]interface{}
	res, err := bipartite.MaximumMatching(
		[]string{"d1", "d2"}, []string{"r1", "r2"},
		bipartite.FromPairs([][2]string{{"d1", "r1"}, {"d1", "r2"}, {"d2", "r1"}}),
		bipartite.WithOnAugment(func(phase int, d, r string) {
			augments = append(augments, [3]interface{}{phase, d, r})
		}),
	)
	s.Require().NoError(err)
	s.Equal(2, res.Size)
	s.Equal(2, res.Phases)
	s.Equal([]bipartite.Pair{{Donor: "d1", Receiver: "r2"}, {Donor: "d2", Receiver: "r1"}}, res.Pairs)
	s.Equal([][3]interface{}{{1, "d1", "r1"}, {2, "d2", "r2"}}, augments)
}

func (s *HopcroftKarpSuite) TestPhaseCapExceeded() {
	_, err := bipartite.MaximumMatching(
		[]string{"d1", "d2"}, []string{"r1", "r2"},
		bipartite.FromPairs([][2]string{{"d1", "r1"}, {"d1", "r2"}, {"d2", "r1"}}),
		bipartite.WithMaxPhases(1),
	)
	s.ErrorIs(err, bipartite.ErrInternalInconsistency)
}

func (s *HopcroftKarpSuite) TestEmpty() {
	res, err := bipartite.MaximumMatching(nil, []string{"r"}, bipartite.Always(func(string, string) bool { return true }))
	s.Require().NoError(err)
	s.Zero(res.Size)
	s.Zero(res.Phases)
	s.Equal([]string{"r"}, res.UnmatchedReceivers)
}

func (s *HopcroftKarpSuite) TestComplete() {
	donors, receivers := gen.IDs("d", 7), gen.IDs("r", 5)
	res, err := bipartite.MaximumMatching(donors, receivers, bipartite.Always(func(string, string) bool { return true }))
	s.Require().NoError(err)
	s.Equal(5, res.Size)
	s.Len(res.UnmatchedDonors, 2)
}

func TestMaximumMatching_InvalidInput(t *testing.T) {
	never := bipartite.Always(func(string, string) bool { return false })

	_, err := bipartite.MaximumMatching([]string{"a", "a"}, []string{"r"}, never)
	assert.ErrorIs(t, err, bipartite.ErrInvalidInput)

	_, err = bipartite.MaximumMatching([]string{"a"}, []string{""}, never)
	assert.ErrorIs(t, err, bipartite.ErrInvalidInput)

	_, err = bipartite.MaximumMatching([]string{"a"}, []string{"r"}, nil)
	assert.ErrorIs(t, err, bipartite.ErrInvalidInput)

	boom := errors.New("boom")
	_, err = bipartite.MaximumMatching([]string{"a"}, []string{"r"}, func(string, string) (bool, error) {
		return false, boom
	})
	assert.ErrorIs(t, err, bipartite.ErrInvalidInput)
	assert.ErrorIs(t, err, boom)
}

// TestMaximumMatching_UnknownBloodType: an unrecognized category fails the
// run instead of silently counting as incompatible.
func TestMaximumMatching_UnknownBloodType(t *testing.T) {
	donors := []bloodtype.Person{{ID: "d1", BloodType: "O-"}, {ID: "d2", BloodType: "Z+"}}
	receivers := []bloodtype.Person{{ID: "r1", BloodType: "A+"}}
	pred := bloodtype.Default().Predicate(bloodtype.TypeMap(donors), bloodtype.TypeMap(receivers))

	_, err := bipartite.MaximumMatching([]string{"d1", "d2"}, []string{"r1"}, pred)
	assert.ErrorIs(t, err, bipartite.ErrInvalidInput)
	assert.ErrorIs(t, err, bloodtype.ErrUnknownType)
}

func TestMaximumMatching_BloodTypes(t *testing.T) {
	donors := []bloodtype.Person{
		{ID: "d1", BloodType: "AB+"},
		{ID: "d2", BloodType: "O-"},
		{ID: "d3", BloodType: "B+"},
	}
	receivers := []bloodtype.Person{
		{ID: "r1", BloodType: "A+"},
		{ID: "r2", BloodType: "AB+"},
		{ID: "r3", BloodType: "O-"},
	}
	pred := bloodtype.Default().Predicate(bloodtype.TypeMap(donors), bloodtype.TypeMap(receivers))

	res, err := bipartite.MaximumMatching([]string{"d1", "d2", "d3"}, []string{"r1", "r2", "r3"}, pred)
	require.NoError(t, err)
	// d1 (AB+) and d3 (B+) both can only serve r2
	assert.Equal(t, 2, res.Size)
	assert.Equal(t, []bipartite.Pair{{Donor: "d1", Receiver: "r2"}, {Donor: "d2", Receiver: "r1"}}, res.Pairs)
	assert.Equal(t, []string{"d3"}, res.UnmatchedDonors)
	assert.Equal(t, []string{"r3"}, res.UnmatchedReceivers)
}

func TestOptions_Violation(t *testing.T) {
	_, err := bipartite.MaximumMatching([]string{"a"}, []string{"b"},
		bipartite.FromPairs(nil), bipartite.WithMaxPhases(-1))
	assert.ErrorIs(t, err, bipartite.ErrOptionViolation)
}

// kuhn is a plain augmenting-path oracle used to cross-check sizes.
func kuhn(adj [][]int, nR int) int {
	match := make([]int, nR)
	for i := range match {
		match[i] = -1
	}
	var try func(d int, seen []bool) bool
	try = func(d int, seen []bool) bool {
		for _, r := range adj[d] {
			if seen[r] {
				continue
			}
			seen[r] = true
			if match[r] < 0 || try(match[r], seen) {
				match[r] = d
				return true
			}
		}
		return false
	}
	size := 0
	for d := range adj {
		if try(d, make([]bool, nR)) {
			size++
		}
	}

	return size
}

// TestRandomGraphs checks validity, maximality and size against the oracle.
func TestRandomGraphs(t *testing.T) {
	cases := []struct {
		nD, nR int
		p      float64
	}{
		{5, 5, 0.3}, {10, 8, 0.2}, {20, 20, 0.1}, {30, 25, 0.15}, {40, 60, 0.05}, {50, 50, 0.5},
	}
	for _, tc := range cases {
		for seed := int64(1); seed <= 8; seed++ {
			donors, receivers, edges, err := gen.Compatibility(tc.nD, tc.nR, tc.p, seed)
			require.NoError(t, err)
			g, err := bipartite.BuildGraph(donors, receivers, bipartite.FromPairs(edges))
			require.NoError(t, err)
			require.Equal(t, len(edges), g.Edges())

			res, err := g.MaximumMatching()
			require.NoError(t, err)
			require.Equal(t, len(res.Pairs), res.Size)

			// validity
			seenD, seenR := map[string]bool{}, map[string]bool{}
			for _, p := range res.Pairs {
				require.False(t, seenD[p.Donor])
				require.False(t, seenR[p.Receiver])
				seenD[p.Donor], seenR[p.Receiver] = true, true
				require.True(t, g.Compatible(p.Donor, p.Receiver))
			}
			require.Equal(t, tc.nD, res.Size+len(res.UnmatchedDonors))
			require.Equal(t, tc.nR, res.Size+len(res.UnmatchedReceivers))

			// maximality
			more, err := g.HasAugmentingPath(res.Pairs)
			require.NoError(t, err)
			require.False(t, more)

			// oracle
			pos := map[string]int{}
			for i, r := range receivers {
				pos[r] = i
			}
			adj := make([][]int, len(donors))
			for i, d := range donors {
				nbrs, err := g.Neighbors(d)
				require.NoError(t, err)
				for _, r := range nbrs {
					adj[i] = append(adj[i], pos[r])
				}
			}
			require.Equal(t, kuhn(adj, len(receivers)), res.Size, "nD=%d nR=%d seed=%d", tc.nD, tc.nR, seed)

			// idempotence: matching over the result's own pairs does not grow
			pairs := make([][2]string, len(res.Pairs))
			for i, p := range res.Pairs {
				pairs[i] = [2]string{p.Donor, p.Receiver}
			}
			again, err := bipartite.MaximumMatching(donors, receivers, bipartite.FromPairs(pairs))
			require.NoError(t, err)
			require.Equal(t, res.Size, again.Size)
		}
	}
}

func TestHasAugmentingPath(t *testing.T) {
	g, err := bipartite.BuildGraph([]string{"d1", "d2"}, []string{"r1", "r2"},
		bipartite.FromPairs([][2]string{{"d1", "r1"}, {"d1", "r2"}, {"d2", "r1"}}))
	require.NoError(t, err)

	more, err := g.HasAugmentingPath([]bipartite.Pair{{Donor: "d1", Receiver: "r1"}})
	require.NoError(t, err)
	assert.True(t, more, "d2→r1→d1→r2 augments")

	more, err = g.HasAugmentingPath([]bipartite.Pair{{Donor: "d1", Receiver: "r2"}, {Donor: "d2", Receiver: "r1"}})
	require.NoError(t, err)
	assert.False(t, more)

	bad := map[string][]bipartite.Pair{
		"unknown donor":    {{Donor: "x", Receiver: "r1"}},
		"unknown receiver": {{Donor: "d1", Receiver: "x"}},
		"non edge":         {{Donor: "d2", Receiver: "r2"}},
		"reused":           {{Donor: "d1", Receiver: "r1"}, {Donor: "d2", Receiver: "r1"}},
	}
	for name, pairs := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := g.HasAugmentingPath(pairs)
			assert.ErrorIs(t, err, bipartite.ErrInvalidMatching)
		})
	}
}

func TestGraph_Accessors(t *testing.T) {
	g, err := bipartite.BuildGraph([]string{"d1", "d2"}, []string{"r1", "r2", "r3"},
		bipartite.FromPairs([][2]string{{"d1", "r3"}, {"d1", "r1"}}))
	require.NoError(t, err)

	assert.Equal(t, []string{"d1", "d2"}, g.Donors())
	assert.Equal(t, []string{"r1", "r2", "r3"}, g.Receivers())
	assert.Equal(t, 2, g.Edges())

	nbrs, err := g.Neighbors("d1")
	require.NoError(t, err)
	assert.Equal(t, []string{"r1", "r3"}, nbrs, "receiver input order")

	nbrs, err = g.Neighbors("d2")
	require.NoError(t, err)
	assert.Empty(t, nbrs)

	_, err = g.Neighbors("nobody")
	assert.ErrorIs(t, err, bipartite.ErrInvalidInput)

	assert.True(t, g.Compatible("d1", "r3"))
	assert.False(t, g.Compatible("d2", "r3"))
	assert.False(t, g.Compatible("ghost", "r3"))
}

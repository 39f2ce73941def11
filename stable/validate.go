package stable

import (
	"fmt"

	"github.com/katalvlaran/lvmatch/index"
)

// none marks an absent partner or an unacceptable rank.
const none = -1

// instance is the dense form of one Match call.
// It is built once and never mutated afterwards.
type instance struct {
	ixA, ixB *index.Index
	prefsA   [][]int // A position → B positions, best first
	prefsB   [][]int // B position → A positions, best first
	rankB    [][]int // rankB[b][a] = position of a in b's list, or none
	maxLen   int     // longest A list
}

// newInstance validates both relations and normalizes them to positions.
//
// Contract:
//   - every identifier is non-empty and appears once as a key of its side;
//   - lists contain no duplicates and only identifiers of the other side;
//   - unless incomplete: |A| == |B| and every list ranks the whole other side.
//
// Complexity: O(|A|·|B|) time and space (rank table).
func newInstance(a, b Preferences, incomplete bool) (*instance, error) {
	ixA, err := index.Sorted(keys(a))
	if err != nil {
		return nil, fmt.Errorf("%w: population A: %w", ErrInvalidInput, err)
	}
	ixB, err := index.Sorted(keys(b))
	if err != nil {
		return nil, fmt.Errorf("%w: population B: %w", ErrInvalidInput, err)
	}
	if !incomplete && ixA.Len() != ixB.Len() {
		return nil, fmt.Errorf("%w: population sizes differ (%d vs %d)", ErrInvalidInput, ixA.Len(), ixB.Len())
	}

	inst := &instance{ixA: ixA, ixB: ixB}
	if inst.prefsA, err = encodeLists(a, ixA, ixB, !incomplete); err != nil {
		return nil, err
	}
	if inst.prefsB, err = encodeLists(b, ixB, ixA, !incomplete); err != nil {
		return nil, err
	}
	inst.rankB = rankTable(inst.prefsB, ixA.Len())
	for _, l := range inst.prefsA {
		if len(l) > inst.maxLen {
			inst.maxLen = len(l)
		}
	}

	return inst, nil
}

// encodeLists converts each owner's list of labels into target positions.
func encodeLists(prefs Preferences, owners, targets *index.Index, complete bool) ([][]int, error) {
	out := make([][]int, owners.Len())
	seen := make([]int, targets.Len()) // seen[t] == owner+1 once t is listed by owner

	var (
		i, pos int
		ok     bool
		owner  string
		label  string
	)
	for i = 0; i < owners.Len(); i++ {
		owner = owners.Label(i)
		list := prefs[owner]
		if complete && len(list) != targets.Len() {
			return nil, fmt.Errorf("%w: %q ranks %d of %d participants", ErrInvalidInput, owner, len(list), targets.Len())
		}
		out[i] = make([]int, len(list))
		for j := range list {
			label = list[j]
			if pos, ok = targets.Of(label); !ok {
				return nil, fmt.Errorf("%w: %q lists unknown participant %q", ErrInvalidInput, owner, label)
			}
			if seen[pos] == i+1 {
				return nil, fmt.Errorf("%w: %q lists %q twice", ErrInvalidInput, owner, label)
			}
			seen[pos] = i + 1
			out[i][j] = pos
		}
	}

	return out, nil
}

// rankTable inverts lists: rank[owner][target] = position of target, or none.
func rankTable(lists [][]int, targets int) [][]int {
	rank := make([][]int, len(lists))
	for o, list := range lists {
		row := make([]int, targets)
		for t := range row {
			row[t] = none
		}
		for r, t := range list {
			row[t] = r
		}
		rank[o] = row
	}

	return rank
}

func keys(p Preferences) []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}

	return out
}

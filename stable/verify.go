package stable

import "fmt"

// Verify checks that pairs form a valid, mutually acceptable and stable
// matching between a and b. Lists may be incomplete.
//
// It returns ErrInvalidInput for malformed relations, ErrInvalidMatching for
// unknown, repeated or unacceptable pairs, and a *BlockingPairError
// (errors.Is(err, ErrUnstable)) for the first blocking pair found in
// A-identifier order.
//
// Complexity: O(|A|·|B|).
func Verify(a, b Preferences, pairs []Pair) error {
	inst, err := newInstance(a, b, true)
	if err != nil {
		return err
	}
	rankA := rankTable(inst.prefsA, inst.ixB.Len())

	partner := make([]int, inst.ixA.Len())
	holder := make([]int, inst.ixB.Len())
	for i := range partner {
		partner[i] = none
	}
	for i := range holder {
		holder[i] = none
	}

	for _, p := range pairs {
		ai, ok := inst.ixA.Of(p.A)
		if !ok {
			return fmt.Errorf("%w: unknown participant %q", ErrInvalidMatching, p.A)
		}
		bi, ok := inst.ixB.Of(p.B)
		if !ok {
			return fmt.Errorf("%w: unknown participant %q", ErrInvalidMatching, p.B)
		}
		if partner[ai] != none {
			return fmt.Errorf("%w: %q appears in more than one pair", ErrInvalidMatching, p.A)
		}
		if holder[bi] != none {
			return fmt.Errorf("%w: %q appears in more than one pair", ErrInvalidMatching, p.B)
		}
		if rankA[ai][bi] == none || inst.rankB[bi][ai] == none {
			return fmt.Errorf("%w: (%q, %q) is not mutually acceptable", ErrInvalidMatching, p.A, p.B)
		}
		partner[ai], holder[bi] = bi, ai
	}

	for ai, list := range inst.prefsA {
		for r, bi := range list {
			if partner[ai] != none && r >= rankA[ai][partner[ai]] {
				break // everything further down is worse than the current partner
			}
			rb := inst.rankB[bi][ai]
			if rb == none {
				continue
			}
			if cur := holder[bi]; cur == none || rb < inst.rankB[bi][cur] {
				return &BlockingPairError{
					A:        inst.ixA.Label(ai),
					B:        inst.ixB.Label(bi),
					PartnerA: labelOrEmpty(inst.ixB.Label, partner[ai]),
					PartnerB: labelOrEmpty(inst.ixA.Label, holder[bi]),
				}
			}
		}
	}

	return nil
}

func labelOrEmpty(label func(int) string, i int) string {
	if i == none {
		return ""
	}

	return label(i)
}

// Package gen builds seeded random matching instances for tests,
// benchmarks and the command-line generator.
//
// Determinism: the same arguments and seed always yield the same instance.
// Seed 0 selects a fixed default seed. A *rand.Rand is not goroutine-safe;
// every call owns its own stream.
package gen

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/katalvlaran/lvmatch/bloodtype"
	"github.com/katalvlaran/lvmatch/stable"
)

// ErrInvalidParameter is returned for negative sizes or out-of-range probabilities.
var ErrInvalidParameter = errors.New("gen: invalid parameter")

// defaultSeed is used when callers pass seed == 0.
const defaultSeed int64 = 1

// Identifier prefixes of generated participants.
const (
	PrefixA        = "A"
	PrefixB        = "B"
	PrefixDonor    = "D"
	PrefixReceiver = "R"
)

func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}

	return rand.New(rand.NewSource(seed))
}

// IDs returns n identifiers "<prefix><i>", i = 0..n-1.
func IDs(prefix string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("%s%d", prefix, i)
	}

	return out
}

// Preferences returns complete random preference relations for nA
// A-participants over nB B-participants and vice versa.
//
// Complexity: O(nA·nB).
func Preferences(nA, nB int, seed int64) (stable.Preferences, stable.Preferences, error) {
	if nA < 0 || nB < 0 {
		return nil, nil, fmt.Errorf("%w: sizes %d, %d", ErrInvalidParameter, nA, nB)
	}
	rng := rngFromSeed(seed)
	as, bs := IDs(PrefixA, nA), IDs(PrefixB, nB)

	return shuffledLists(as, bs, rng), shuffledLists(bs, as, rng), nil
}

// shuffledLists gives every owner an independent random permutation of targets.
func shuffledLists(owners, targets []string, rng *rand.Rand) stable.Preferences {
	out := make(stable.Preferences, len(owners))
	for _, o := range owners {
		list := append([]string(nil), targets...)
		rng.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
		out[o] = list
	}

	return out
}

// Truncate keeps at most k leading entries of every list, producing
// incomplete preferences. k < 0 is rejected.
func Truncate(p stable.Preferences, k int) (stable.Preferences, error) {
	if k < 0 {
		return nil, fmt.Errorf("%w: k=%d", ErrInvalidParameter, k)
	}
	out := make(stable.Preferences, len(p))
	for o, list := range p {
		if len(list) > k {
			list = list[:k]
		}
		out[o] = append([]string(nil), list...)
	}

	return out, nil
}

// Compatibility returns nD donors, nR receivers and a random edge set where
// each donor/receiver pair is present with probability p. Edges are emitted
// donor-major, receiver-minor.
//
// Complexity: O(nD·nR).
func Compatibility(nD, nR int, p float64, seed int64) (donors, receivers []string, edges [][2]string, err error) {
	if nD < 0 || nR < 0 {
		return nil, nil, nil, fmt.Errorf("%w: sizes %d, %d", ErrInvalidParameter, nD, nR)
	}
	if p < 0 || p > 1 {
		return nil, nil, nil, fmt.Errorf("%w: probability %g not in [0,1]", ErrInvalidParameter, p)
	}
	rng := rngFromSeed(seed)
	donors, receivers = IDs(PrefixDonor, nD), IDs(PrefixReceiver, nR)
	for _, d := range donors {
		for _, r := range receivers {
			if rng.Float64() < p {
				edges = append(edges, [2]string{d, r})
			}
		}
	}

	return donors, receivers, edges, nil
}

// Cohort returns nD donors and nR receivers with categories drawn uniformly
// from table's types.
func Cohort(nD, nR int, table *bloodtype.Table, seed int64) (donors, receivers []bloodtype.Person, err error) {
	if nD < 0 || nR < 0 {
		return nil, nil, fmt.Errorf("%w: sizes %d, %d", ErrInvalidParameter, nD, nR)
	}
	if table == nil {
		table = bloodtype.Default()
	}
	rng := rngFromSeed(seed)
	types := table.Types()
	draw := func(ids []string) []bloodtype.Person {
		out := make([]bloodtype.Person, len(ids))
		for i, id := range ids {
			out[i] = bloodtype.Person{ID: id, BloodType: types[rng.Intn(len(types))]}
		}
		return out
	}

	return draw(IDs(PrefixDonor, nD)), draw(IDs(PrefixReceiver, nR)), nil
}

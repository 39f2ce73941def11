package bipartite

import (
	"errors"
	"fmt"
)

// Sentinel errors for bipartite matching.
var (
	// ErrInvalidInput is returned for unresolvable identifiers or predicate failures.
	ErrInvalidInput = errors.New("bipartite: invalid input")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bipartite: invalid option supplied")

	// ErrInternalInconsistency signals a broken algorithmic invariant.
	ErrInternalInconsistency = errors.New("bipartite: internal inconsistency")

	// ErrInvalidMatching is returned for pairs that are not a matching of the graph.
	ErrInvalidMatching = errors.New("bipartite: invalid matching")
)

// Predicate reports whether donor may be paired with receiver.
// A non-nil error aborts graph construction with ErrInvalidInput.
type Predicate func(donor, receiver string) (bool, error)

// Always adapts an infallible boolean predicate.
func Always(fn func(donor, receiver string) bool) Predicate {
	return func(d, r string) (bool, error) { return fn(d, r), nil }
}

// FromPairs returns a Predicate that holds exactly for the listed
// (donor, receiver) pairs.
func FromPairs(pairs [][2]string) Predicate {
	set := make(map[[2]string]struct{}, len(pairs))
	for _, p := range pairs {
		set[p] = struct{}{}
	}

	return func(d, r string) (bool, error) {
		_, ok := set[[2]string{d, r}]
		return ok, nil
	}
}

// Option configures a matching run via functional arguments.
type Option func(*Options)

// Options holds the parameters of one matching run.
type Options struct {
	// MaxPhases caps the BFS/DFS phases. 0 selects min(D, R)+1, which a
	// correct run never reaches.
	MaxPhases int

	// OnAugment, if non-nil, is called once per augmenting path with the
	// 1-based phase, the free donor that started it and the free receiver
	// that ended it.
	OnAugment func(phase int, donor, receiver string)

	err error
}

// DefaultOptions returns Options with the automatic phase cap and no hooks.
func DefaultOptions() Options {
	return Options{}
}

// WithMaxPhases overrides the phase cap.
//
//	n > 0: at most n phases
//	n == 0: automatic cap
//	n < 0: invalid → ErrOptionViolation
func WithMaxPhases(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxPhases cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxPhases = n
	}
}

// WithOnAugment registers a hook called for each augmenting path.
func WithOnAugment(fn func(phase int, donor, receiver string)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnAugment = fn
		}
	}
}

// Pair is one matched donor/receiver couple.
type Pair struct {
	Donor    string `yaml:"donor"`
	Receiver string `yaml:"receiver"`
}

// Result is the outcome of a maximum matching run.
type Result struct {
	// Pairs is ordered by donor input order.
	Pairs []Pair

	// Size equals len(Pairs).
	Size int

	// Phases counts BFS layerings that found an augmenting path.
	Phases int

	// UnmatchedDonors and UnmatchedReceivers keep input order.
	UnmatchedDonors    []string
	UnmatchedReceivers []string
}

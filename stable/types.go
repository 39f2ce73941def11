package stable

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for stable matching.
var (
	// ErrInvalidInput is returned for malformed preference relations.
	ErrInvalidInput = errors.New("stable: invalid input")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("stable: invalid option supplied")

	// ErrInternalInconsistency signals a broken algorithmic invariant.
	ErrInternalInconsistency = errors.New("stable: internal inconsistency")

	// ErrInvalidMatching is returned by Verify for pairs that do not form a valid matching.
	ErrInvalidMatching = errors.New("stable: invalid matching")

	// ErrUnstable is matched by *BlockingPairError.
	ErrUnstable = errors.New("stable: matching is not stable")
)

// Preferences maps each participant to its ranked list of partners, best first.
type Preferences map[string][]string

// Strategy selects how pending proposals are scheduled.
type Strategy int

const (
	// Sequential serves the lowest-identifier free proposer first.
	Sequential Strategy = iota
	// Bucket serves the lowest-rank pending proposal using rank buckets.
	Bucket
	// Heap serves the lowest-rank pending proposal using a binary heap.
	Heap
)

// Strategies lists every supported Strategy.
var Strategies = []Strategy{Sequential, Bucket, Heap}

func (s Strategy) String() string {
	switch s {
	case Sequential:
		return "sequential"
	case Bucket:
		return "bucket"
	case Heap:
		return "heap"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy converts a case-insensitive name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sequential", "":
		return Sequential, nil
	case "bucket":
		return Bucket, nil
	case "heap":
		return Heap, nil
	}

	return 0, fmt.Errorf("%w: unknown strategy %q", ErrOptionViolation, name)
}

// Option configures Match via functional arguments.
// Invalid values are recorded and surfaced as ErrOptionViolation by Match.
type Option func(*Options)

// Options holds the parameters of one Match call.
type Options struct {
	// Strategy picks the proposal scheduler. Default Sequential.
	Strategy Strategy

	// Incomplete allows unequal population sizes and partial lists.
	Incomplete bool

	// OnProposal, if non-nil, is called for every proposal served,
	// with the proposer, the receiver and the receiver's position
	// in the proposer's list.
	OnProposal func(proposer, receiver string, rank int)

	err error
}

// DefaultOptions returns Options with the Sequential strategy,
// strict (complete, equal-size) input and no hooks.
func DefaultOptions() Options {
	return Options{Strategy: Sequential}
}

// WithStrategy selects the proposal scheduler.
func WithStrategy(s Strategy) Option {
	return func(o *Options) {
		switch s {
		case Sequential, Bucket, Heap:
			o.Strategy = s
		default:
			o.err = fmt.Errorf("%w: unknown strategy %d", ErrOptionViolation, int(s))
		}
	}
}

// WithIncompleteLists accepts populations of different sizes and
// preference lists that do not rank the whole opposite population.
func WithIncompleteLists() Option {
	return func(o *Options) {
		o.Incomplete = true
	}
}

// WithOnProposal registers a hook called for each served proposal.
func WithOnProposal(fn func(proposer, receiver string, rank int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnProposal = fn
		}
	}
}

// Pair is one matched couple.
type Pair struct {
	A string `yaml:"a"`
	B string `yaml:"b"`
}

// Result is the outcome of Match.
type Result struct {
	// Pairs is ordered by the A identifier.
	Pairs []Pair

	// UnmatchedA and UnmatchedB list participants left without partner, sorted.
	UnmatchedA []string
	UnmatchedB []string

	// Proposals counts the proposals served.
	Proposals int

	// Strategy is the scheduler that produced the result.
	Strategy Strategy
}

// PartnerOf returns the B partner of an A participant.
func (r *Result) PartnerOf(a string) (string, bool) {
	for _, p := range r.Pairs {
		if p.A == a {
			return p.B, true
		}
	}

	return "", false
}

// BlockingPairError reports a pair that prefer each other to their partners.
// An empty partner means the participant is unmatched.
type BlockingPairError struct {
	A, B               string
	PartnerA, PartnerB string
}

func (e *BlockingPairError) Error() string {
	return fmt.Sprintf("stable: blocking pair (%q, %q): %q prefers it to %q, %q prefers it to %q",
		e.A, e.B, e.A, e.PartnerA, e.B, e.PartnerB)
}

// Is lets errors.Is(err, ErrUnstable) match.
func (e *BlockingPairError) Is(target error) bool { return target == ErrUnstable }

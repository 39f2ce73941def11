package stable

import "fmt"

// proposal is a pending offer from proposer to the entry at position rank
// of its preference list.
type proposal struct {
	proposer int
	rank     int
}

// scheduler decides which pending proposal is served next.
// Each proposer has at most one pending proposal at a time.
type scheduler interface {
	push(p proposal)
	pop() (proposal, bool)
}

// engine holds the matching state shared by all schedulers.
type engine struct {
	inst      *instance
	opts      Options
	partner   []int // A → B
	holder    []int // B → A, inverse of partner
	cursor    []int // A → rank of its latest proposal
	proposals int
}

// Match computes the A-optimal stable matching between the populations
// described by a and b.
//
// Steps:
//  1. Apply options; surface ErrOptionViolation (O(1)).
//  2. Validate and index both relations, build B's rank table (O(|A|·|B|)).
//  3. Queue every A-participant's first choice.
//  4. Serve proposals in scheduler order until none is pending:
//     a free receiver accepts; an engaged one keeps the better-ranked
//     proposer and releases the other, who moves to its next choice.
//  5. Translate positions back to identifiers.
//
// Every strategy returns the same pairs for the same input.
func Match(a, b Preferences, opts ...Option) (*Result, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	inst, err := newInstance(a, b, o.Incomplete)
	if err != nil {
		return nil, err
	}

	e := newEngine(inst, o)
	if err = e.run(newScheduler(o.Strategy, inst)); err != nil {
		return nil, err
	}

	return e.result(), nil
}

func newEngine(inst *instance, o Options) *engine {
	e := &engine{
		inst:    inst,
		opts:    o,
		partner: make([]int, inst.ixA.Len()),
		holder:  make([]int, inst.ixB.Len()),
		cursor:  make([]int, inst.ixA.Len()),
	}
	for i := range e.partner {
		e.partner[i] = none
	}
	for i := range e.holder {
		e.holder[i] = none
	}

	return e
}

// run drives the scheduler to exhaustion. Each A-participant proposes to
// each entry of its list at most once, so the total list length bounds the
// number of proposals; exceeding it means the state is corrupt.
func (e *engine) run(s scheduler) error {
	budget := 0
	for a, list := range e.inst.prefsA {
		budget += len(list)
		if len(list) > 0 {
			s.push(proposal{proposer: a, rank: 0})
		}
	}

	for p, ok := s.pop(); ok; p, ok = s.pop() {
		e.proposals++
		if e.proposals > budget {
			return fmt.Errorf("%w: more than %d proposals served", ErrInternalInconsistency, budget)
		}
		if err := e.serve(s, p); err != nil {
			return err
		}
	}

	return nil
}

// serve applies the acceptance rule to one proposal.
func (e *engine) serve(s scheduler, p proposal) error {
	a := p.proposer
	b := e.inst.prefsA[a][p.rank]
	if e.opts.OnProposal != nil {
		e.opts.OnProposal(e.inst.ixA.Label(a), e.inst.ixB.Label(b), p.rank)
	}
	if e.partner[a] != none {
		return fmt.Errorf("%w: %q proposes while engaged to %q",
			ErrInternalInconsistency, e.inst.ixA.Label(a), e.inst.ixB.Label(e.partner[a]))
	}
	e.cursor[a] = p.rank

	rank := e.inst.rankB[b]
	if rank[a] == none {
		// b does not list a at all
		e.advance(s, a)
		return nil
	}

	cur := e.holder[b]
	switch {
	case cur == none:
		e.engage(a, b)
	case e.partner[cur] != b:
		return fmt.Errorf("%w: %q holds %q but %q is not engaged to it",
			ErrInternalInconsistency, e.inst.ixB.Label(b), e.inst.ixA.Label(cur), e.inst.ixA.Label(cur))
	case rank[a] < rank[cur]:
		e.partner[cur] = none
		e.engage(a, b)
		e.advance(s, cur)
	default:
		e.advance(s, a)
	}

	return nil
}

func (e *engine) engage(a, b int) {
	e.partner[a] = b
	e.holder[b] = a
}

// advance queues a's next choice; a participant with an exhausted list
// stays unmatched.
func (e *engine) advance(s scheduler, a int) {
	next := e.cursor[a] + 1
	if next < len(e.inst.prefsA[a]) {
		s.push(proposal{proposer: a, rank: next})
	}
}

func (e *engine) result() *Result {
	res := &Result{
		Pairs:      make([]Pair, 0, len(e.partner)),
		UnmatchedA: []string{},
		UnmatchedB: []string{},
		Proposals:  e.proposals,
		Strategy:   e.opts.Strategy,
	}
	for a, b := range e.partner {
		if b == none {
			res.UnmatchedA = append(res.UnmatchedA, e.inst.ixA.Label(a))
			continue
		}
		res.Pairs = append(res.Pairs, Pair{A: e.inst.ixA.Label(a), B: e.inst.ixB.Label(b)})
	}
	for b, a := range e.holder {
		if a == none {
			res.UnmatchedB = append(res.UnmatchedB, e.inst.ixB.Label(b))
		}
	}

	return res
}

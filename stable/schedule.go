package stable

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/trees/binaryheap"
	"github.com/emirpasic/gods/utils"
)

// newScheduler builds the scheduler for s sized for inst.
func newScheduler(s Strategy, inst *instance) scheduler {
	switch s {
	case Bucket:
		return newBucketScheduler(inst.maxLen)
	case Heap:
		return newHeapScheduler()
	default:
		return newSequentialScheduler(inst.ixA.Len())
	}
}

// sequentialScheduler keeps free proposers in an ordered set and always
// serves the lowest position, i.e. the lexicographically first identifier.
type sequentialScheduler struct {
	free *treeset.Set // proposer positions
	rank []int        // pending rank per proposer
}

func newSequentialScheduler(n int) *sequentialScheduler {
	return &sequentialScheduler{
		free: treeset.NewWith(utils.IntComparator),
		rank: make([]int, n),
	}
}

func (s *sequentialScheduler) push(p proposal) {
	s.rank[p.proposer] = p.rank
	s.free.Add(p.proposer)
}

func (s *sequentialScheduler) pop() (proposal, bool) {
	if s.free.Empty() {
		return proposal{}, false
	}
	it := s.free.Iterator()
	it.First()
	a := it.Value().(int)
	s.free.Remove(a)

	return proposal{proposer: a, rank: s.rank[a]}, true
}

// bucketScheduler files proposals under their rank. A released proposer
// can land in a bucket below the last one served, so every pop scans
// from bucket 0.
type bucketScheduler struct {
	buckets [][]proposal
}

func newBucketScheduler(width int) *bucketScheduler {
	return &bucketScheduler{buckets: make([][]proposal, width)}
}

func (s *bucketScheduler) push(p proposal) {
	s.buckets[p.rank] = append(s.buckets[p.rank], p)
}

func (s *bucketScheduler) pop() (proposal, bool) {
	for r, b := range s.buckets {
		if n := len(b); n > 0 {
			p := b[n-1]
			s.buckets[r] = b[:n-1]

			return p, true
		}
	}

	return proposal{}, false
}

// heapScheduler orders proposals by rank, then proposer, in a binary min-heap.
type heapScheduler struct {
	heap *binaryheap.Heap
}

func newHeapScheduler() *heapScheduler {
	return &heapScheduler{heap: binaryheap.NewWith(byRank)}
}

func (s *heapScheduler) push(p proposal) {
	s.heap.Push(p)
}

func (s *heapScheduler) pop() (proposal, bool) {
	v, ok := s.heap.Pop()
	if !ok {
		return proposal{}, false
	}

	return v.(proposal), true
}

// byRank compares two proposals by rank, breaking ties by proposer.
func byRank(a, b interface{}) int {
	pa, pb := a.(proposal), b.(proposal)
	if c := utils.IntComparator(pa.rank, pb.rank); c != 0 {
		return c
	}

	return utils.IntComparator(pa.proposer, pb.proposer)
}

package alloc

import "container/heap"

// freeEntry is one queue entry for a free block. Ordering compares sizes
// only; identity is the block id. pos is the entry's current slot in the
// heap slice, kept current across swaps so removal by id is O(log n)
// instead of a linear scan.
type freeEntry struct {
	size int
	addr int
	id   int
	pos  int // index in freeQueue.entries, -1 when dequeued
}

type ordering uint8

const (
	minFirst ordering = iota // smallest size at the root (best-fit)
	maxFirst                 // largest size at the root (worst-fit)
)

// freeQueue is a binary heap over free blocks with an id index for
// arbitrary-element removal. Two instances, one per ordering, are kept in
// sync with the arena's free set.
type freeQueue struct {
	entries []*freeEntry
	byID    map[int]*freeEntry
	ord     ordering
}

func newFreeQueue(ord ordering) *freeQueue {
	return &freeQueue{byID: make(map[int]*freeEntry), ord: ord}
}

// heap.Interface. Less compares sizes only; ties keep whatever order the
// heap happens to hold, which is fine because removal goes through byID.
func (q *freeQueue) Len() int { return len(q.entries) }

func (q *freeQueue) Less(i, j int) bool {
	if q.ord == minFirst {
		return q.entries[i].size < q.entries[j].size
	}
	return q.entries[i].size > q.entries[j].size
}

func (q *freeQueue) Swap(i, j int) {
	q.entries[i], q.entries[j] = q.entries[j], q.entries[i]
	q.entries[i].pos = i
	q.entries[j].pos = j
}

func (q *freeQueue) Push(x any) {
	e := x.(*freeEntry)
	e.pos = len(q.entries)
	q.entries = append(q.entries, e)
}

func (q *freeQueue) Pop() any {
	old := q.entries
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.pos = -1
	q.entries = old[:n-1]
	return e
}

// push enqueues a free block. The block must not already be queued.
func (q *freeQueue) push(b *Block) {
	e := &freeEntry{size: b.Size, addr: b.Start, id: b.ID}
	heap.Push(q, e)
	q.byID[b.ID] = e
}

// peek returns the root entry without removing it.
func (q *freeQueue) peek() (*freeEntry, bool) {
	if len(q.entries) == 0 {
		return nil, false
	}
	return q.entries[0], true
}

// pop removes and returns the root entry.
func (q *freeQueue) pop() (*freeEntry, bool) {
	if len(q.entries) == 0 {
		return nil, false
	}
	e := heap.Pop(q).(*freeEntry)
	delete(q.byID, e.id)
	return e, true
}

// remove drops the entry for the given block id, if queued.
// O(log n) via the position index.
func (q *freeQueue) remove(id int) bool {
	e, ok := q.byID[id]
	if !ok {
		return false
	}
	heap.Remove(q, e.pos)
	delete(q.byID, id)
	return true
}

// bestFit returns the id of the smallest queued block with size >= need.
//
// Fast path: on a min-ordered queue the root is the smallest entry, so if
// it fits it is the best fit by definition. Otherwise scan the backing
// slice; the heap is left untouched either way. Ties on size resolve to
// the lower address so repeated runs are stable.
func (q *freeQueue) bestFit(need int) (int, bool) {
	if len(q.entries) == 0 {
		return 0, false
	}
	if q.ord == minFirst && q.entries[0].size >= need {
		return q.entries[0].id, true
	}
	var best *freeEntry
	for _, e := range q.entries {
		if e.size < need {
			continue
		}
		if best == nil || e.size < best.size || (e.size == best.size && e.addr < best.addr) {
			best = e
		}
	}
	if best == nil {
		return 0, false
	}
	return best.id, true
}

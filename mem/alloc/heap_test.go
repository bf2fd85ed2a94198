package alloc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func queueBlocks(blocks ...Block) (*freeQueue, *freeQueue) {
	minQ := newFreeQueue(minFirst)
	maxQ := newFreeQueue(maxFirst)
	for i := range blocks {
		minQ.push(&blocks[i])
		maxQ.push(&blocks[i])
	}
	return minQ, maxQ
}

func TestFreeQueue_Ordering(t *testing.T) {
	minQ, maxQ := queueBlocks(
		Block{ID: 1, Size: 500, Start: 0},
		Block{ID: 2, Size: 100, Start: 500},
		Block{ID: 3, Size: 900, Start: 600},
	)

	e, ok := minQ.peek()
	require.True(t, ok)
	assert.Equal(t, 100, e.size, "min queue root is the smallest block")

	e, ok = maxQ.peek()
	require.True(t, ok)
	assert.Equal(t, 900, e.size, "max queue root is the largest block")
}

func TestFreeQueue_PopDrainsInOrder(t *testing.T) {
	minQ, maxQ := queueBlocks(
		Block{ID: 1, Size: 500, Start: 0},
		Block{ID: 2, Size: 100, Start: 500},
		Block{ID: 3, Size: 900, Start: 600},
	)

	var got []int
	for {
		e, ok := minQ.pop()
		if !ok {
			break
		}
		got = append(got, e.size)
	}
	assert.Equal(t, []int{100, 500, 900}, got)
	assert.Empty(t, minQ.byID)

	got = got[:0]
	for {
		e, ok := maxQ.pop()
		if !ok {
			break
		}
		got = append(got, e.size)
	}
	assert.Equal(t, []int{900, 500, 100}, got)
}

func TestFreeQueue_PeekEmpty(t *testing.T) {
	q := newFreeQueue(minFirst)
	_, ok := q.peek()
	assert.False(t, ok)
	_, ok = q.bestFit(1)
	assert.False(t, ok)
}

// TestFreeQueue_RemoveInterior removes a non-root entry and checks the heap
// stays consistent. This is the operation a plain heap cannot do without a
// linear scan; the position index makes it O(log n).
func TestFreeQueue_RemoveInterior(t *testing.T) {
	q := newFreeQueue(minFirst)
	sizes := []int{50, 10, 70, 30, 90, 20, 60}
	for i, s := range sizes {
		q.push(&Block{ID: i + 1, Size: s, Start: i * 100})
	}

	require.True(t, q.remove(3)) // the 70-unit entry, somewhere mid-heap
	require.False(t, q.remove(3), "double remove must report missing")
	require.False(t, q.remove(99))

	assert.Equal(t, len(sizes)-1, q.Len())
	for i := 1; i < q.Len(); i++ {
		assert.False(t, q.Less(i, (i-1)/2), "heap property violated after remove")
	}
	for id, e := range q.byID {
		assert.Equal(t, e, q.entries[e.pos], "index out of sync for id %d", id)
	}
}

func TestFreeQueue_RemoveByIdentityNotSize(t *testing.T) {
	// Two blocks share a size; removing one must not disturb the other.
	q := newFreeQueue(minFirst)
	q.push(&Block{ID: 1, Size: 200, Start: 0})
	q.push(&Block{ID: 2, Size: 200, Start: 200})

	require.True(t, q.remove(2))
	e, ok := q.peek()
	require.True(t, ok)
	assert.Equal(t, 1, e.id)
}

func TestFreeQueue_BestFit(t *testing.T) {
	q := newFreeQueue(minFirst)
	q.push(&Block{ID: 1, Size: 500, Start: 0})
	q.push(&Block{ID: 2, Size: 100, Start: 500})
	q.push(&Block{ID: 3, Size: 300, Start: 600})

	// Root (100) fits: fast path.
	id, ok := q.bestFit(80)
	require.True(t, ok)
	assert.Equal(t, 2, id)

	// Root is too small: scan finds the smallest adequate entry.
	id, ok = q.bestFit(150)
	require.True(t, ok)
	assert.Equal(t, 3, id)

	id, ok = q.bestFit(500)
	require.True(t, ok)
	assert.Equal(t, 1, id)

	_, ok = q.bestFit(501)
	assert.False(t, ok)

	// The query itself must not reorder or consume anything.
	assert.Equal(t, 3, q.Len())
	e, _ := q.peek()
	assert.Equal(t, 100, e.size)
}

func TestFreeQueue_BestFitTieBreaksOnAddress(t *testing.T) {
	q := newFreeQueue(minFirst)
	q.push(&Block{ID: 1, Size: 50, Start: 900})
	q.push(&Block{ID: 2, Size: 300, Start: 0})
	q.push(&Block{ID: 3, Size: 300, Start: 400})

	id, ok := q.bestFit(200)
	require.True(t, ok)
	assert.Equal(t, 2, id, "equal sizes resolve to the lower address")
}

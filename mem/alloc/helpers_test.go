package alloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// assertInvariants checks every cross-cutting invariant the arena must
// preserve: the tiling of [0, total), maximal coalescing, conservation of
// space, and queue/table consistency. Called after every mutation in tests.
func assertInvariants(t *testing.T, a *Arena) {
	t.Helper()

	snap := a.Snapshot()
	addr := 0
	freeSum := 0
	wantFree := make(map[int]Block)
	for i, b := range snap.Blocks {
		require.Equal(t, addr, b.Start, "block %d breaks the tiling", b.ID)
		require.Positive(t, b.Size, "block %d has non-positive size", b.ID)
		if b.Free {
			if i > 0 {
				require.False(t, snap.Blocks[i-1].Free,
					"blocks %d and %d are adjacent and both free",
					snap.Blocks[i-1].ID, b.ID)
			}
			freeSum += b.Size
			wantFree[b.ID] = b
		}
		addr += b.Size
	}
	require.Equal(t, a.Total(), addr, "blocks must tile the whole space")
	require.Equal(t, freeSum, a.FreeBytes(), "free byte counter out of sync")

	assertQueueMatches(t, a.minQ, wantFree)
	assertQueueMatches(t, a.maxQ, wantFree)
}

// assertQueueMatches verifies a queue holds exactly the free blocks of the
// table, with current sizes and addresses, and that the heap ordering
// property holds at every node.
func assertQueueMatches(t *testing.T, q *freeQueue, want map[int]Block) {
	t.Helper()

	require.Equal(t, len(want), q.Len(), "queue entry count")
	require.Equal(t, len(want), len(q.byID), "queue index count")
	for id, b := range want {
		e, ok := q.byID[id]
		require.True(t, ok, "free block %d missing from queue", id)
		require.Equal(t, b.Size, e.size, "stale size for block %d", id)
		require.Equal(t, b.Start, e.addr, "stale address for block %d", id)
		require.Equal(t, e, q.entries[e.pos], "position index out of sync for block %d", id)
	}
	for i := 1; i < q.Len(); i++ {
		parent := (i - 1) / 2
		require.False(t, q.Less(i, parent), "heap property violated at node %d", i)
	}
}

// mustAlloc allocates and fails the test on error.
func mustAlloc(t *testing.T, a *Arena, size int, strat Strategy) int {
	t.Helper()
	id, err := a.Alloc(size, strat)
	require.NoError(t, err)
	return id
}

// newHoleyArena builds a 1000-unit arena with two free holes of different
// sizes at different addresses, so the three strategies pick different
// blocks:
//
//	[alloc 100][free 300 id=2][alloc 100][alloc 150][alloc 200][free 150 id=6]
//	 0          100            400        500        650        850
func newHoleyArena(t *testing.T) *Arena {
	t.Helper()
	a, err := New(1000)
	require.NoError(t, err)

	mustAlloc(t, a, 100, FirstFit) // id 1
	hole := mustAlloc(t, a, 300, FirstFit)
	mustAlloc(t, a, 100, FirstFit) // id 3
	mustAlloc(t, a, 150, FirstFit) // id 4

	require.NoError(t, a.Free(hole)) // opens the 300-unit hole at 100

	// Worst-fit grabs the 350-unit tail, leaving a 150-unit hole behind it.
	mustAlloc(t, a, 200, WorstFit) // id 5

	assertInvariants(t, a)
	return a
}

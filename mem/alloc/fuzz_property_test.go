package alloc

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestProperty_RandomOps drives the arena with a few thousand random
// allocations and frees and checks every invariant after each step. A
// handful of fixed seeds keeps failures reproducible.
func TestProperty_RandomOps(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1337} {
		t.Run("", func(t *testing.T) {
			rng := rand.New(rand.NewSource(seed))
			const total = 4096

			a, err := New(total)
			require.NoError(t, err)

			strategies := []Strategy{FirstFit, BestFit, WorstFit}
			var live []int

			for range 2000 {
				switch op := rng.Intn(10); {
				case op < 6: // allocate
					size := 1 + rng.Intn(total/8)
					strat := strategies[rng.Intn(len(strategies))]
					id, err := a.Alloc(size, strat)
					if err != nil {
						require.ErrorIs(t, err, ErrNoFit)
					} else {
						live = append(live, id)
					}
				case op < 9: // free a live block
					if len(live) == 0 {
						continue
					}
					i := rng.Intn(len(live))
					require.NoError(t, a.Free(live[i]))
					live = append(live[:i], live[i+1:]...)
				default: // misuse: free something not allocated
					err := a.Free(1 + rng.Intn(10000))
					if err != nil {
						require.True(t,
							errors.Is(err, ErrUnknownBlock) || errors.Is(err, ErrAlreadyFree))
					} else {
						// Happened to hit a live id; keep the books straight.
						id := -1
						for i, v := range live {
							if a.table.get(v) == nil || a.table.get(v).Free {
								id = i
								break
							}
						}
						if id >= 0 {
							live = append(live[:id], live[id+1:]...)
						}
					}
				}
				assertInvariants(t, a)
			}

			// Drain everything: the space must collapse to one free block.
			for _, id := range live {
				if b := a.table.get(id); b != nil && !b.Free {
					require.NoError(t, a.Free(id))
				}
			}
			// Merged survivors may have swallowed ids still in live; the
			// snapshot is the ground truth.
			snap := a.Snapshot()
			require.Len(t, snap.Blocks, 1)
			require.True(t, snap.Blocks[0].Free)
			require.Equal(t, total, snap.Blocks[0].Size)
			assertInvariants(t, a)
		})
	}
}

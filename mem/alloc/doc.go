// Package alloc simulates a contiguous-memory allocator over a fixed-size
// address space.
//
// # Overview
//
// An Arena models the address space as a sequence of non-overlapping blocks,
// each either free or allocated. Allocation supports three placement
// strategies (first-fit, best-fit, worst-fit), splits oversized blocks, and
// coalesces adjacent free blocks on deallocation. This is a teaching and
// visualization engine: it never touches real process memory.
//
// # Data structures
//
//   - A block table keyed by block id, with start-address and end-address
//     indexes for O(1) neighbor discovery during coalescing.
//   - Two priority queues over the same set of free blocks: a min-ordered
//     queue answering best-fit and a max-ordered queue answering worst-fit.
//     Both support O(log n) removal of an arbitrary entry by block id via a
//     position index maintained across heap swaps.
//
// # Usage Example
//
//	a, err := alloc.New(1000)
//	if err != nil {
//	    return err
//	}
//
//	id, err := a.Alloc(300, alloc.BestFit)
//	if err != nil {
//	    return err
//	}
//
//	// ... later, release the block and merge with free neighbors
//	err = a.Free(id)
//
//	snap := a.Snapshot() // blocks ordered by start address
//
// # Invariants
//
// After every operation the live blocks, sorted by start address, tile
// [0, total) with no gaps and no overlaps; no two adjacent blocks are both
// free; and the entries of each priority queue are exactly the free blocks
// of the table.
//
// # Thread Safety
//
// Arena instances are not thread-safe. Callers that share an Arena across
// goroutines (for example an HTTP front end) must serialize access
// externally; a single mutex around each operation suffices.
package alloc

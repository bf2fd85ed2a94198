package alloc

// Arena simulates one contiguous address space of fixed size. It owns the
// block table and both free-block queues; every mutation keeps the three in
// exact sync. Failed operations leave the arena unchanged: feasibility is
// fully validated before the first mutation.
type Arena struct {
	total  int
	nextID int

	table *blockTable
	minQ  *freeQueue // best-fit queue, smallest free block at the root
	maxQ  *freeQueue // worst-fit queue, largest free block at the root

	freeBytes int
	stats     Stats
}

// New creates an arena spanning [0, total) as a single free block.
func New(total int) (*Arena, error) {
	if total <= 0 {
		return nil, ErrBadSize
	}
	a := &Arena{
		total:  total,
		nextID: 1,
		table:  newBlockTable(),
		minQ:   newFreeQueue(minFirst),
		maxQ:   newFreeQueue(maxFirst),
	}
	b := &Block{ID: a.nextID, Size: total, Free: true, Start: 0}
	a.nextID++
	a.table.insert(b)
	a.minQ.push(b)
	a.maxQ.push(b)
	a.freeBytes = total
	return a, nil
}

// Total returns the size of the simulated address space.
func (a *Arena) Total() int { return a.total }

// FreeBytes returns the sum of all free block sizes.
func (a *Arena) FreeBytes() int { return a.freeBytes }

// Stats returns the operation counters accumulated so far.
func (a *Arena) Stats() Stats { return a.stats }

// Alloc reserves size units using the given placement strategy and returns
// the id of the allocated block, the caller's handle for a later Free.
//
// If the chosen block is larger than requested it is split: the head keeps
// the block's id and becomes the allocation, and a fresh free block covers
// the remainder.
func (a *Arena) Alloc(size int, strat Strategy) (int, error) {
	a.stats.AllocCalls++
	if size <= 0 {
		return 0, ErrBadSize
	}

	var b *Block
	switch strat {
	case FirstFit:
		b = a.firstFit(size)
	case BestFit:
		if id, ok := a.minQ.bestFit(size); ok {
			b = a.table.get(id)
		}
	case WorstFit:
		// The largest free block is the unique worst-fit candidate:
		// if it does not fit, nothing does.
		if e, ok := a.maxQ.peek(); ok && e.size >= size {
			b = a.table.get(e.id)
		}
	default:
		return 0, ErrBadStrategy
	}
	if b == nil {
		return 0, ErrNoFit
	}

	// A fit exists; everything below is failure-free.
	a.minQ.remove(b.ID)
	a.maxQ.remove(b.ID)

	if rem := b.Size - size; rem > 0 {
		a.stats.Splits++
		a.table.setSize(b, size)
		b.Free = false
		tail := &Block{ID: a.nextID, Size: rem, Free: true, Start: b.Start + size}
		a.nextID++
		a.table.insert(tail)
		a.minQ.push(tail)
		a.maxQ.push(tail)
	} else {
		// Perfect fit
		b.Free = false
	}
	a.freeBytes -= size
	return b.ID, nil
}

// firstFit walks blocks in address order and returns the first free block
// that fits. The tiling invariant makes the walk a chain of start-address
// lookups, no sorting needed.
func (a *Arena) firstFit(size int) *Block {
	for addr := 0; addr < a.total; {
		b := a.table.at(addr)
		if b.Free && b.Size >= size {
			return b
		}
		addr = b.End()
	}
	return nil
}

// Free releases the block with the given id and merges it with any free
// neighbor. The right neighbor is absorbed into the target first, then a
// free left neighbor absorbs the target; after a triple merge the left
// neighbor's id is the one that survives.
func (a *Arena) Free(id int) error {
	a.stats.FreeCalls++
	b := a.table.get(id)
	if b == nil {
		return ErrUnknownBlock
	}
	if b.Free {
		return ErrAlreadyFree
	}

	b.Free = true
	a.freeBytes += b.Size

	if next := a.table.at(b.End()); next != nil && next.Free {
		a.stats.CoalesceRight++
		a.minQ.remove(next.ID)
		a.maxQ.remove(next.ID)
		a.table.delete(next)
		a.table.setSize(b, b.Size+next.Size)
	}

	if prev := a.table.endingAt(b.Start); prev != nil && prev.Free {
		a.stats.CoalesceLeft++
		a.minQ.remove(prev.ID)
		a.maxQ.remove(prev.ID)
		a.table.delete(b)
		a.table.setSize(prev, prev.Size+b.Size)
		b = prev
	}

	a.minQ.push(b)
	a.maxQ.push(b)
	return nil
}

// Snapshot returns all live blocks in ascending address order. The result
// is an independent copy; repeated calls without intervening mutation are
// identical.
func (a *Arena) Snapshot() Snapshot {
	blocks := make([]Block, 0, a.table.len())
	for addr := 0; addr < a.total; {
		b := a.table.at(addr)
		blocks = append(blocks, *b)
		addr = b.End()
	}
	return Snapshot{TotalSize: a.total, Blocks: blocks}
}

// Fragmentation reports external fragmentation: total free space minus the
// largest single free block, 0 when nothing is free. A nonzero value is
// capacity that exists but cannot satisfy a single request of that size.
func (a *Arena) Fragmentation() int {
	e, ok := a.maxQ.peek()
	if !ok {
		return 0
	}
	return a.freeBytes - e.size
}

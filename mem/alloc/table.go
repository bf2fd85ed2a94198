package alloc

// blockTable is the authoritative set of live blocks. Besides the id map it
// keeps a start-address index (right-neighbor lookup) and an end-address
// index (left-neighbor lookup), so coalescing never scans the table. All
// three views must describe the same set of blocks at every return.
type blockTable struct {
	blocks  map[int]*Block
	byStart map[int]*Block
	byEnd   map[int]*Block // start+size -> block
}

func newBlockTable() *blockTable {
	return &blockTable{
		blocks:  make(map[int]*Block),
		byStart: make(map[int]*Block),
		byEnd:   make(map[int]*Block),
	}
}

func (t *blockTable) len() int { return len(t.blocks) }

// get returns the block with the given id, or nil.
func (t *blockTable) get(id int) *Block { return t.blocks[id] }

// at returns the block starting at addr, or nil.
func (t *blockTable) at(addr int) *Block { return t.byStart[addr] }

// endingAt returns the block whose region ends at addr, or nil.
// This is the left neighbor of a block starting at addr.
func (t *blockTable) endingAt(addr int) *Block { return t.byEnd[addr] }

// insert registers a new block in all three views.
func (t *blockTable) insert(b *Block) {
	t.blocks[b.ID] = b
	t.byStart[b.Start] = b
	t.byEnd[b.End()] = b
}

// delete removes a block from all three views.
func (t *blockTable) delete(b *Block) {
	delete(t.blocks, b.ID)
	delete(t.byStart, b.Start)
	delete(t.byEnd, b.End())
}

// setSize resizes a block in place, keeping the end index consistent.
// The start address never changes: splits shrink the head block and
// coalescing grows the surviving block rightward.
func (t *blockTable) setSize(b *Block, size int) {
	delete(t.byEnd, b.End())
	b.Size = size
	t.byEnd[b.End()] = b
}

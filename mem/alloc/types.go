package alloc

import "fmt"

// Strategy selects how Alloc picks among qualifying free blocks.
type Strategy uint8

const (
	// FirstFit picks the lowest-addressed free block that fits.
	FirstFit Strategy = iota
	// BestFit picks the smallest free block that fits.
	BestFit
	// WorstFit picks the largest free block.
	WorstFit
)

// ParseStrategy maps the wire names "first", "best" and "worst" to a
// Strategy. Anything else returns ErrBadStrategy.
func ParseStrategy(s string) (Strategy, error) {
	switch s {
	case "first":
		return FirstFit, nil
	case "best":
		return BestFit, nil
	case "worst":
		return WorstFit, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrBadStrategy, s)
	}
}

func (s Strategy) String() string {
	switch s {
	case FirstFit:
		return "first"
	case BestFit:
		return "best"
	case WorstFit:
		return "worst"
	default:
		return fmt.Sprintf("strategy(%d)", uint8(s))
	}
}

// Block is one contiguous region of the simulated address space.
// The JSON field names are the wire contract consumed by front ends.
type Block struct {
	ID    int  `json:"id"`
	Size  int  `json:"size"`
	Free  bool `json:"free"`
	Start int  `json:"start_address"`
}

// End returns the first address past the block.
func (b Block) End() int { return b.Start + b.Size }

// Snapshot is a read-only projection of arena state. Blocks are ordered by
// start address, ascending, and tile [0, TotalSize) exactly.
type Snapshot struct {
	TotalSize int     `json:"total_size"`
	Blocks    []Block `json:"blocks"`
}

// Stats holds operation counters for instrumentation and tests.
type Stats struct {
	AllocCalls    int // Total Alloc() calls, including failed ones
	FreeCalls     int // Total Free() calls, including failed ones
	Splits        int // Oversized blocks split during Alloc()
	CoalesceRight int // Merges with the right neighbor during Free()
	CoalesceLeft  int // Merges with the left neighbor during Free()
}

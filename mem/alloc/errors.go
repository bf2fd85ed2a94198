package alloc

import "errors"

var (
	// ErrBadSize indicates a requested size that is not a positive integer.
	ErrBadSize = errors.New("alloc: size must be positive")

	// ErrBadStrategy indicates a placement strategy outside first/best/worst.
	ErrBadStrategy = errors.New("alloc: unknown placement strategy")

	// ErrNoFit indicates that no free block large enough was found.
	ErrNoFit = errors.New("alloc: no free block large enough")

	// ErrUnknownBlock indicates a block id not present in the arena.
	ErrUnknownBlock = errors.New("alloc: no such block")

	// ErrAlreadyFree indicates an attempt to free a block that is already free.
	ErrAlreadyFree = errors.New("alloc: block is already free")
)

package snapio

import (
	"errors"
	"fmt"
)

var (
	// ErrIoTruncated indicates that a read returned fewer bytes than the
	// file layout requires.
	ErrIoTruncated = errors.New("truncated snapshot file")
	// ErrIo indicates that writing the output file failed.
	ErrIo = errors.New("snapshot write failed")
	// ErrPaddingMismatch indicates that the leading and trailing markers of a
	// block disagree.
	ErrPaddingMismatch = errors.New("block markers do not match")
	// ErrSizeMismatch indicates that a block's markers disagree with the
	// size computed from the header.
	ErrSizeMismatch = errors.New("block size does not match header")
	// ErrMalformedHeader indicates that the header payload is too short.
	ErrMalformedHeader = errors.New("malformed header")
	// ErrOutOfMemory indicates that the particle table cannot be allocated.
	ErrOutOfMemory = errors.New("particle table does not fit in memory")
	// ErrLayout indicates that a particle table does not fit the type
	// buckets of the header it is being written with.
	ErrLayout = errors.New("particle table does not match header layout")
	// ErrBlockTooLarge indicates that a block is too large for its marker.
	ErrBlockTooLarge = errors.New("block too large for a 32-bit marker")
)

// BlockError describes a block whose markers failed validation. It unwraps to
// either ErrPaddingMismatch or ErrSizeMismatch.
type BlockError struct {
	Block BlockKind
	Leading, Trailing uint32
	Expected int64
	Err error
}

func (e *BlockError) Error() string {
	if errors.Is(e.Err, ErrPaddingMismatch) {
		return fmt.Sprintf("%s block: the leading marker, %d, and the " +
			"trailing marker, %d, don't match", e.Block, e.Leading, e.Trailing)
	}
	return fmt.Sprintf("%s block: the markers say the block has %d bytes, " +
		"but the header implies %d bytes", e.Block, e.Leading, e.Expected)
}

func (e *BlockError) Unwrap() error { return e.Err }

package snapio

import (
	"fmt"
)

// BlockKind identifies one of the records in a snapshot file.
type BlockKind int

const (
	HeaderBlock BlockKind = iota
	PositionBlock
	VelocityBlock
	IDBlock
	MassBlock
	EnergyBlock
)

func (k BlockKind) String() string {
	switch k {
	case HeaderBlock: return "header"
	case PositionBlock: return "position"
	case VelocityBlock: return "velocity"
	case IDBlock: return "id"
	case MassBlock: return "mass"
	case EnergyBlock: return "internal energy"
	}
	return fmt.Sprintf("BlockKind(%d)", int(k))
}

// ElementSize returns the number of bytes used by a single element of the
// given block.
func ElementSize(kind BlockKind) int64 {
	switch kind {
	case HeaderBlock: return HeaderSize
	case PositionBlock, VelocityBlock: return 3 * 4
	case IDBlock, MassBlock, EnergyBlock: return 4
	}
	panic(fmt.Sprintf("Internal error: unrecognized block kind %d", int(kind)))
}

// ExpectedSize returns the size in bytes of the given block's payload in a
// file with the given header. A mass block size of zero means the block is
// absent from the file entirely.
func ExpectedSize(kind BlockKind, hd *Header) int64 {
	switch kind {
	case HeaderBlock:
		return HeaderSize
	case PositionBlock, VelocityBlock, IDBlock:
		return ElementSize(kind) * hd.NumPart()
	case MassBlock:
		return ElementSize(kind) * hd.NumWithMass()
	case EnergyBlock:
		return ElementSize(kind) * int64(hd.NPart[0])
	}
	panic(fmt.Sprintf("Internal error: unrecognized block kind %d", int(kind)))
}

// checkBlock checks that the two markers around a block agree with each
// other and with the size implied by the header.
func checkBlock(kind BlockKind, leading, trailing uint32, hd *Header) error {
	expected := ExpectedSize(kind, hd)
	if leading != trailing {
		return &BlockError{kind, leading, trailing, expected, ErrPaddingMismatch}
	} else if int64(leading) != expected {
		return &BlockError{kind, leading, trailing, expected, ErrSizeMismatch}
	}
	return nil
}

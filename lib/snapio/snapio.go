/*package snapio reads and writes Gadget-2 snapshot files in the "type 1"
block layout: a sequence of Fortran-style records, each written as

    u32 size | payload (size bytes) | u32 size

The first record is the fixed 256-byte header and the following records hold
positions, velocities, IDs, and (optionally) per-particle masses. Every block
size is checked against the size implied by the header before any data is
trusted. Writing a file re-derives every size from the header being written
and appends a synthesized internal energy block for type 0 particles.
*/
package snapio

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unsafe"
)

const (
	// NTypes is the number of particle types Gadget-2 distinguishes between.
	NTypes = 6
	// HeaderSize is the size of the header record in bytes.
	HeaderSize = 256
)

// SystemByteOrder returns the byte order of the machine the code is
// running on.
func SystemByteOrder() binary.ByteOrder {
	b := [2]byte{}
	*(*uint16)(unsafe.Pointer(&b[0])) = uint16(0x0001)
	if b[0] == 0 {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ParseByteOrder converts "native", "little", or "big" to a byte order.
func ParseByteOrder(name string) (binary.ByteOrder, error) {
	switch strings.ToLower(name) {
	case "native", "":
		return SystemByteOrder(), nil
	case "little":
		return binary.LittleEndian, nil
	case "big":
		return binary.BigEndian, nil
	}
	return nil, fmt.Errorf("'%s' is not a valid byte order. Only 'native', " +
		"'little', and 'big' are valid.", name)
}

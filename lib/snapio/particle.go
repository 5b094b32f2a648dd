package snapio

import (
	"fmt"
	"unsafe"

	"github.com/phil-mansfield/fakegas/lib/sysmem"
)

// Particle is a single particle from a snapshot file. Particles are always
// stored type-major: every type 0 particle, then every type 1 particle, and
// so on, each type in file order. Fields are matched between blocks by
// position alone, so this order must never change between reading and
// writing.
type Particle struct {
	Pos, Vel [3]float32
	// Type is the particle type, 0 through 5. It is set when the file is read
	// and only changes when the particle is explicitly reclassified.
	Type int
	ID uint32
	// Mass is the particle's mass. For types with a fixed mass, this is
	// copied from the header.
	Mass float32
}

// memoryLimit returns the largest particle table, in bytes, that Read will
// try to allocate.
var memoryLimit = sysmem.TotalBytes

// allocParticles allocates a table of n particles, failing with
// ErrOutOfMemory instead of crashing if the table couldn't possibly fit.
func allocParticles(n int64) ([]Particle, error) {
	size := uint64(unsafe.Sizeof(Particle{}))
	limit := memoryLimit()
	if n < 0 || uint64(n) > limit/size || n > int64(^uint(0)>>1) {
		return nil, fmt.Errorf("%w: %d particles need %d bytes, but only " +
			"%d bytes are available", ErrOutOfMemory, n, uint64(n)*size, limit)
	}
	return make([]Particle, n), nil
}

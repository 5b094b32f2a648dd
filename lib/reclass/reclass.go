/*package reclass moves every particle of one Gadget-2 type into another. The
header's counts and masses are merged, and each affected particle's Type is
rewritten explicitly, so the particle table and header always agree on which
type bucket a particle belongs to.
*/
package reclass

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/phil-mansfield/fakegas/lib/snapio"
)

// Merge describes a reclassification of every particle of type From as type
// To.
type Merge struct {
	From, To int
}

// FakeGas relabels dark matter (type 1) as gas (type 0), so that codes which
// only compute densities and smoothing lengths for gas will also compute them
// for the dark matter.
var FakeGas = Merge{From: 1, To: 0}

// ErrCountOverflow indicates that a merged particle count doesn't fit in the
// header's 32-bit count fields.
var ErrCountOverflow = errors.New("merged particle count overflows uint32")

// Report summarizes what Apply did.
type Report struct {
	// Moved is the number of particles relabelled from From to To.
	Moved int
	// MassConflicts is the number of particles in the merged To bucket whose
	// stored mass differs from the new fixed mass in the header. Writing the
	// header would silently replace their masses.
	MassConflicts int
}

// Check returns an error if m doesn't refer to two distinct Gadget-2 types.
func (m Merge) Check() error {
	if m.From < 0 || m.From >= snapio.NTypes ||
		m.To < 0 || m.To >= snapio.NTypes {
		return fmt.Errorf("Particle types must be between 0 and %d, but " +
			"the merge is from type %d to type %d.",
			snapio.NTypes - 1, m.From, m.To)
	} else if m.From == m.To {
		return fmt.Errorf("Cannot merge type %d into itself.", m.From)
	}
	return nil
}

// Fits returns an error wrapping ErrCountOverflow if merging hd's counts
// would overflow NPart[To] or NPartTotal[To]. It also returns Check's error
// for invalid merges.
func (m Merge) Fits(hd *snapio.Header) error {
	if err := m.Check(); err != nil { return err }
	if uint64(hd.NPart[m.To]) + uint64(hd.NPart[m.From]) > math.MaxUint32 {
		return fmt.Errorf("%w: this file has %d type %d and %d type %d " +
			"particles", ErrCountOverflow,
			hd.NPart[m.From], m.From, hd.NPart[m.To], m.To)
	}
	if uint64(hd.NPartTotal[m.To]) + uint64(hd.NPartTotal[m.From]) >
		math.MaxUint32 {
		return fmt.Errorf("%w: the snapshot has %d type %d and %d type %d " +
			"particles", ErrCountOverflow,
			hd.NPartTotal[m.From], m.From, hd.NPartTotal[m.To], m.To)
	}
	return nil
}

// Apply merges type m.From into type m.To in hd and relabels the matching
// particles in p. After Apply, p is still in type-major order and can be
// passed to snapio.Write along with hd.
//
// The header update is:
//   NPart[To] += NPart[From], NPart[From] = 0
//   NPartTotal[To] += NPartTotal[From], NPartTotal[From] = 0
//   Mass[To] = Mass[From], Mass[From] = 0
// If type From has no particles in this file or in the whole snapshot, Apply
// changes nothing, which means applying the same Merge twice is safe.
//
// Apply panics if m is invalid or if the merged counts would overflow. Use
// Fits first for user-supplied merges and headers read from files.
func (m Merge) Apply(hd *snapio.Header, p []snapio.Particle) Report {
	if err := m.Fits(hd); err != nil { panic(err.Error()) }

	if hd.NPart[m.From] == 0 && hd.NPartTotal[m.From] == 0 {
		return Report{}
	}

	hd.NPart[m.To] += hd.NPart[m.From]
	hd.NPart[m.From] = 0
	hd.NPartTotal[m.To] += hd.NPartTotal[m.From]
	hd.NPartTotal[m.From] = 0
	hd.Mass[m.To] = hd.Mass[m.From]
	hd.Mass[m.From] = 0

	rep := Report{}
	for i := range p {
		if p[i].Type == m.From {
			p[i].Type = m.To
			rep.Moved++
		}
	}

	// Types between To and From need to shift around the moved particles.
	// The sort is stable, so order within a type is unchanged, and it's a
	// no-op when the two types are adjacent.
	if rep.Moved > 0 {
		sort.SliceStable(p, func(i, j int) bool { return p[i].Type < p[j].Type })
	}

	if fixed := float32(hd.Mass[m.To]); fixed != 0 {
		for i := range p {
			if p[i].Type == m.To && p[i].Mass != fixed {
				rep.MassConflicts++
			}
		}
	}

	return rep
}

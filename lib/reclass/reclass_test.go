package reclass

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/phil-mansfield/fakegas/lib/snapio"
)

// particles creates type-major particles for hd with IDs 0, 1, 2, ...
func particles(hd *snapio.Header) []snapio.Particle {
	p := []snapio.Particle{}
	for typ := 0; typ < snapio.NTypes; typ++ {
		for n := uint32(0); n < hd.NPart[typ]; n++ {
			i := float32(len(p))
			mass := float32(hd.Mass[typ])
			if mass == 0 { mass = 10 + i }
			p = append(p, snapio.Particle{
				Pos: [3]float32{i, 2 * i, 3 * i}, Vel: [3]float32{-i, 0, i},
				Type: typ, ID: uint32(len(p)), Mass: mass,
			})
		}
	}
	return p
}

func TestFakeGasScenario(t *testing.T) {
	require := require.New(t)
	order := binary.LittleEndian

	hd := &snapio.Header{NPart: [snapio.NTypes]uint32{0, 10, 0, 0, 0, 0}}
	hd.NPartTotal = hd.NPart
	p := particles(hd)
	orig := append([]snapio.Particle{}, p...)

	rep := FakeGas.Apply(hd, p)
	require.Equal(Report{Moved: 10}, rep)
	require.Equal([snapio.NTypes]uint32{10, 0, 0, 0, 0, 0}, hd.NPart)
	require.Equal([snapio.NTypes]uint32{10, 0, 0, 0, 0, 0}, hd.NPartTotal)
	require.Equal([snapio.NTypes]float64{}, hd.Mass)

	buf := &bytes.Buffer{}
	require.NoError(snapio.WriteTo(buf, hd, p, order))
	size := buf.Len()

	hd2, p2, err := snapio.ReadFrom(bytes.NewReader(buf.Bytes()), order)
	require.NoError(err)
	require.Equal(*hd, *hd2)
	require.Len(p2, 10)
	for i := range p2 {
		require.Equal(0, p2[i].Type)
		require.Equal(uint32(i), p2[i].ID)
		require.Equal(orig[i].Pos, p2[i].Pos)
		require.Equal(orig[i].Vel, p2[i].Vel)
		require.Equal(orig[i].Mass, p2[i].Mass)
	}

	// Both types had per-particle masses, so the mass block keeps all 10
	// values, and the energy block holds 10 zeros at the end of the file.
	require.Equal(snapio.ExpectedSize(snapio.MassBlock, hd), int64(40))
	b := buf.Bytes()
	energy := b[size-48:]
	require.Equal(uint32(40), order.Uint32(energy[0:4]))
	require.Equal(uint32(40), order.Uint32(energy[44:48]))
	require.Equal(make([]byte, 40), energy[4:44])
}

func TestApplyConservesCounts(t *testing.T) {
	headers := []*snapio.Header{
		{NPart: [snapio.NTypes]uint32{0, 10, 0, 0, 0, 0}},
		{NPart: [snapio.NTypes]uint32{5, 10, 0, 0, 2, 0},
			Mass: [snapio.NTypes]float64{0, 0, 0, 0, 1, 0}},
		{NPart: [snapio.NTypes]uint32{3, 4, 5, 6, 7, 8},
			Mass: [snapio.NTypes]float64{1, 2, 3, 4, 5, 6}},
	}

	for i, hd := range headers {
		hd.NPartTotal = hd.NPart
		p := particles(hd)
		old := *hd

		rep := FakeGas.Apply(hd, p)

		require.Equal(t, old.NumPart(), hd.NumPart(), "%d) total count", i)
		require.Equal(t, uint32(0), hd.NPart[1], "%d) type 1 count", i)
		require.Equal(t, old.NPart[0]+old.NPart[1], hd.NPart[0],
			"%d) type 0 count", i)
		require.Equal(t, old.NPartTotal[0]+old.NPartTotal[1],
			hd.NPartTotal[0], "%d) type 0 total", i)
		require.Equal(t, old.Mass[1], hd.Mass[0], "%d) type 0 mass", i)
		require.Equal(t, 0.0, hd.Mass[1], "%d) type 1 mass", i)
		require.Equal(t, int(old.NPart[1]), rep.Moved, "%d) moved", i)
		require.NoError(t, snapio.CheckLayout(hd, p), "%d) layout", i)
	}
}

func TestApplyNoOp(t *testing.T) {
	hd := &snapio.Header{
		NPart: [snapio.NTypes]uint32{12, 0, 0, 0, 0, 0},
		Mass: [snapio.NTypes]float64{1.5, 3, 0, 0, 0, 0},
	}
	hd.NPartTotal = hd.NPart
	p := particles(hd)
	old, oldP := *hd, append([]snapio.Particle{}, p...)

	require.Equal(t, Report{}, FakeGas.Apply(hd, p))
	require.Equal(t, old, *hd)
	require.Equal(t, oldP, p)
	require.False(t, hd.HasMassBlock())

	// Applying a merge twice changes nothing the second time.
	hd = &snapio.Header{
		NPart: [snapio.NTypes]uint32{2, 3, 0, 0, 0, 0},
		Mass: [snapio.NTypes]float64{0, 4, 0, 0, 0, 0},
	}
	hd.NPartTotal = hd.NPart
	p = particles(hd)
	FakeGas.Apply(hd, p)
	once := *hd
	require.Equal(t, Report{}, FakeGas.Apply(hd, p))
	require.Equal(t, once, *hd)
}

func TestApplyOtherFileOfSnapshot(t *testing.T) {
	// This file has no type 1 particles, but others in the snapshot do, so
	// the totals and masses must still be merged.
	hd := &snapio.Header{
		NPart: [snapio.NTypes]uint32{4, 0, 0, 0, 0, 0},
		NPartTotal: [snapio.NTypes]uint32{8, 20, 0, 0, 0, 0},
	}
	p := particles(hd)

	require.Equal(t, Report{}, FakeGas.Apply(hd, p))
	require.Equal(t, [snapio.NTypes]uint32{4, 0, 0, 0, 0, 0}, hd.NPart)
	require.Equal(t, [snapio.NTypes]uint32{28, 0, 0, 0, 0, 0}, hd.NPartTotal)
}

func TestApplyNonAdjacent(t *testing.T) {
	hd := &snapio.Header{NPart: [snapio.NTypes]uint32{2, 3, 0, 0, 2, 0}}
	hd.NPartTotal = hd.NPart
	p := particles(hd)

	rep := Merge{From: 4, To: 0}.Apply(hd, p)
	require.Equal(t, 2, rep.Moved)
	require.Equal(t, [snapio.NTypes]uint32{4, 3, 0, 0, 0, 0}, hd.NPart)

	ids := make([]uint32, len(p))
	for i := range p { ids[i] = p[i].ID }
	require.Equal(t, []uint32{0, 1, 5, 6, 2, 3, 4}, ids)
	require.NoError(t, snapio.CheckLayout(hd, p))
}

func TestApplyMassConflicts(t *testing.T) {
	// Gas has per-particle masses, dark matter has a fixed mass. After the
	// merge the header gives all type 0 particles the dark matter mass.
	hd := &snapio.Header{
		NPart: [snapio.NTypes]uint32{3, 5, 0, 0, 0, 0},
		Mass: [snapio.NTypes]float64{0, 2, 0, 0, 0, 0},
	}
	hd.NPartTotal = hd.NPart
	p := particles(hd)

	rep := FakeGas.Apply(hd, p)
	require.Equal(t, Report{Moved: 5, MassConflicts: 3}, rep)
}

func TestCheck(t *testing.T) {
	tests := []struct {
		m Merge
		valid bool
	} {
		{FakeGas, true},
		{Merge{From: 5, To: 0}, true},
		{Merge{From: 0, To: 1}, true},
		{Merge{From: 1, To: 1}, false},
		{Merge{From: -1, To: 0}, false},
		{Merge{From: 1, To: 6}, false},
	}

	for i := range tests {
		err := tests[i].m.Check()
		if tests[i].valid {
			require.NoError(t, err, "%d) %+v", i, tests[i].m)
		} else {
			require.Error(t, err, "%d) %+v", i, tests[i].m)
		}
	}

	require.Panics(t, func() {
		Merge{From: 2, To: 2}.Apply(&snapio.Header{}, nil)
	})
}

func TestFitsOverflow(t *testing.T) {
	tests := []struct {
		npart, total [snapio.NTypes]uint32
		fits bool
	} {
		{[snapio.NTypes]uint32{1, 2}, [snapio.NTypes]uint32{1, 2}, true},
		{[snapio.NTypes]uint32{0, 2}, [snapio.NTypes]uint32{math.MaxUint32 - 2, 2},
			true},
		{[snapio.NTypes]uint32{0, 2}, [snapio.NTypes]uint32{math.MaxUint32 - 1, 2},
			false},
		{[snapio.NTypes]uint32{1 << 31, 1 << 31},
			[snapio.NTypes]uint32{1 << 31, 1 << 31}, false},
	}

	for i := range tests {
		hd := &snapio.Header{ NPart: tests[i].npart, NPartTotal: tests[i].total }
		before := *hd
		err := FakeGas.Fits(hd)

		if tests[i].fits && err != nil {
			t.Errorf("%d) Expected the merge to fit, got '%s'.", i, err.Error())
		} else if !tests[i].fits {
			require.ErrorIs(t, err, ErrCountOverflow, "%d", i)
			require.Panics(t, func() { FakeGas.Apply(hd, nil) }, "%d", i)
			require.Equal(t, before, *hd, "%d", i)
		}
	}

	require.Error(t, Merge{From: 1, To: 1}.Fits(&snapio.Header{}))
}

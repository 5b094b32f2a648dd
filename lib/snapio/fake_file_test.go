package snapio

import (
	"bytes"
	"encoding/binary"
)

/* This file builds snapshot files for tests independently of Write, so that
the reader and writer can't share a bug. */

// fakeParticles creates type-major particles matching hd. Per-particle masses
// are distinct, and fixed masses are copied from the header the same way
// Read does it.
func fakeParticles(hd *Header) []Particle {
	p := []Particle{}
	id := uint32(100)
	for typ := 0; typ < NTypes; typ++ {
		for n := uint32(0); n < hd.NPart[typ]; n++ {
			i := float32(len(p))
			mass := float32(hd.Mass[typ])
			if mass == 0 { mass = 1 + i/4 }
			p = append(p, Particle{
				Pos: [3]float32{i, i + 0.5, -i},
				Vel: [3]float32{-2 * i, 3, i / 8},
				Type: typ, ID: id, Mass: mass,
			})
			id += 3
		}
	}
	return p
}

// fakeFile encodes hd and p in the input layout: header, positions,
// velocities, IDs, and masses if any type has a zero fixed mass.
func fakeFile(hd *Header, p []Particle, order binary.ByteOrder) []byte {
	buf := &bytes.Buffer{}
	put := func(x interface{}) {
		if err := binary.Write(buf, order, x); err != nil { panic(err.Error()) }
	}
	block := func(size int, body func()) {
		put(uint32(size))
		body()
		put(uint32(size))
	}

	masses := []float32{}
	for i := range p {
		if hd.Mass[p[i].Type] == 0 { masses = append(masses, p[i].Mass) }
	}

	block(HeaderSize, func() { put(hd) })
	block(12*len(p), func() { for i := range p { put(p[i].Pos) } })
	block(12*len(p), func() { for i := range p { put(p[i].Vel) } })
	block(4*len(p), func() { for i := range p { put(p[i].ID) } })
	if len(masses) > 0 {
		block(4*len(masses), func() { put(masses) })
	}

	return buf.Bytes()
}

// fakeHeaders returns a set of headers covering the different mass block
// configurations.
func fakeHeaders() []*Header {
	hds := []*Header{
		// Everything has per-particle masses.
		{NPart: [NTypes]uint32{0, 10, 0, 0, 0, 0}},
		// Fixed dark matter mass and no mass block.
		{NPart: [NTypes]uint32{0, 7, 0, 0, 0, 0},
			Mass: [NTypes]float64{0, 2.5, 0, 0, 0, 0}},
		// Gas with per-particle masses, fixed-mass dark matter and stars.
		{NPart: [NTypes]uint32{4, 6, 0, 0, 3, 0},
			Mass: [NTypes]float64{0, 0.75, 0, 0, 0.125, 0}},
		// A type with zero mass but no particles doesn't create a mass block.
		{NPart: [NTypes]uint32{0, 5, 0, 2, 0, 0},
			Mass: [NTypes]float64{0, 1, 0, 3, 0, 0}},
		// An empty file.
		{},
	}

	for i, hd := range hds {
		hd.NPartTotal = hd.NPart
		hd.NPartTotal[1] *= 2
		hd.Time, hd.Redshift = 0.25, 3
		hd.NumFiles = 2
		hd.BoxSize, hd.Omega0, hd.OmegaLambda = 62.5, 0.27, 0.73
		hd.HubbleParam = 0.7
		hd.Fill[0], hd.Fill[95] = byte(i + 1), 0xff
	}
	return hds
}

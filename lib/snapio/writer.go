package snapio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// writtenBlocks lists every block Write emits, in file order. The mass
// block is skipped when the header gives it a size of zero.
var writtenBlocks = []BlockKind{
	HeaderBlock, PositionBlock, VelocityBlock, IDBlock, MassBlock, EnergyBlock,
}

// Write writes hd and p to fileName as a snapshot file. Every block marker is
// computed from hd, and an internal energy block holding a zero for each
// type 0 particle is appended after the last block.
//
// p must be in type-major order and each particle's Type must match the
// type bucket hd assigns to its position. This is checked before the file is
// created. If writing fails part-way through, the incomplete file is removed.
//
// Masses are written for the particles of every type hd gives a zero fixed
// mass, using hd as passed in and not the type each particle had when it was
// read.
func Write(
	fileName string, hd *Header, p []Particle, order binary.ByteOrder,
) error {
	if err := CheckLayout(hd, p); err != nil { return err }

	file, err := os.Create(fileName)
	if err != nil {
		return fmt.Errorf("%w: could not create %s: %w", ErrIo, fileName, err)
	}

	if err = writeTo(file, hd, p, order); err != nil {
		file.Close()
		os.Remove(fileName)
		return fmt.Errorf("%s: %w", fileName, err)
	}

	if err = file.Close(); err != nil {
		os.Remove(fileName)
		return fmt.Errorf("%w: closing %s: %w", ErrIo, fileName, err)
	}
	return nil
}

// WriteTo is the same as Write, but writes to an arbitrary io.Writer.
func WriteTo(
	wr io.Writer, hd *Header, p []Particle, order binary.ByteOrder,
) error {
	if err := CheckLayout(hd, p); err != nil { return err }
	return writeTo(wr, hd, p, order)
}

func writeTo(
	wr io.Writer, hd *Header, p []Particle, order binary.ByteOrder,
) error {
	buf := bufio.NewWriter(wr)
	bw := &blockWriter{wr: buf, order: order}

	for _, kind := range writtenBlocks {
		size := ExpectedSize(kind, hd)
		if kind == MassBlock && size == 0 { continue }

		bw.marker(size)
		writePayload(bw, kind, hd, p)
		bw.marker(size)
	}

	if bw.err == nil { bw.err = buf.Flush() }
	if bw.err != nil {
		return fmt.Errorf("%w: %w", ErrIo, bw.err)
	}
	return nil
}

func writePayload(bw *blockWriter, kind BlockKind, hd *Header, p []Particle) {
	switch kind {
	case HeaderBlock:
		bw.write(hd.Encode(bw.order))
	case PositionBlock:
		for i := range p { bw.v32(p[i].Pos) }
	case VelocityBlock:
		for i := range p { bw.v32(p[i].Vel) }
	case IDBlock:
		for i := range p { bw.u32(p[i].ID) }
	case MassBlock:
		i := 0
		for typ := 0; typ < NTypes; typ++ {
			for n := uint32(0); n < hd.NPart[typ]; n++ {
				if hd.Mass[typ] == 0 { bw.f32(p[i].Mass) }
				i++
			}
		}
	case EnergyBlock:
		for n := uint32(0); n < hd.NPart[0]; n++ { bw.f32(0) }
	}
}

// CheckLayout returns an error if p can't be written with hd: if the number
// of particles differs from the header's count, if a particle's Type doesn't
// match the type bucket it falls in, or if any block would be too large for
// its 32-bit marker.
func CheckLayout(hd *Header, p []Particle) error {
	if n := hd.NumPart(); int64(len(p)) != n {
		return fmt.Errorf("%w: the header describes %d particles, but %d " +
			"were given", ErrLayout, n, len(p))
	}

	i := 0
	for typ := 0; typ < NTypes; typ++ {
		for n := uint32(0); n < hd.NPart[typ]; n++ {
			if p[i].Type != typ {
				return fmt.Errorf("%w: particle %d (id %d) has type %d, but " +
					"falls in the header's type %d bucket", ErrLayout,
					i, p[i].ID, p[i].Type, typ)
			}
			i++
		}
	}

	return checkBlockSizes(hd)
}

// checkBlockSizes returns an error if any block written for hd would be too
// large for its marker.
func checkBlockSizes(hd *Header) error {
	for _, kind := range writtenBlocks {
		if size := ExpectedSize(kind, hd); size > math.MaxUint32 {
			return fmt.Errorf("%w: the %s block needs %d bytes",
				ErrBlockTooLarge, kind, size)
		}
	}
	return nil
}

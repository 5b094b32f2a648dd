package snapio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

// Read reads the header and every particle from the snapshot file fileName.
// Blocks are read in the order header, positions, velocities, IDs, masses,
// and each block is checked against the header before the next one is
// started. Any data after the mass block (e.g. an internal energy block) is
// ignored.
func Read(fileName string, order binary.ByteOrder) (*Header, []Particle, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, nil, fmt.Errorf("The file %s cannot be opened. The " +
			"system error is: %w", fileName, err)
	}
	defer file.Close()

	hd, p, err := ReadFrom(file, order)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return hd, p, nil
}

// ReadFrom is the same as Read, but reads from an arbitrary io.Reader.
func ReadFrom(rd io.Reader, order binary.ByteOrder) (*Header, []Particle, error) {
	br := &blockReader{rd: bufio.NewReader(rd), order: order}

	hd, err := readHeaderBlock(br)
	if err != nil { return nil, nil, err }

	p, err := allocParticles(hd.NumPart())
	if err != nil { return nil, nil, err }

	err = readBlock(br, PositionBlock, hd, func() (err error) {
		for i := range p {
			if p[i].Pos, err = br.v32(); err != nil { return err }
		}
		return nil
	})
	if err != nil { return nil, nil, err }

	err = readBlock(br, VelocityBlock, hd, func() (err error) {
		for i := range p {
			if p[i].Vel, err = br.v32(); err != nil { return err }
		}
		return nil
	})
	if err != nil { return nil, nil, err }

	err = readBlock(br, IDBlock, hd, func() (err error) {
		for i := range p {
			if p[i].ID, err = br.u32(); err != nil { return err }
		}
		return nil
	})
	if err != nil { return nil, nil, err }

	if err = readMasses(br, hd, p); err != nil { return nil, nil, err }

	return hd, p, nil
}

// readHeaderBlock reads the header record. Its markers can only be checked
// after it's decoded, since the header is what the check is based on.
func readHeaderBlock(br *blockReader) (*Header, error) {
	leading, err := br.begin(HeaderBlock)
	if err != nil { return nil, err }

	b := make([]byte, HeaderSize)
	if err = br.full(b); err != nil { return nil, err }

	trailing, err := br.u32()
	if err != nil { return nil, err }

	hd, err := DecodeHeader(b, br.order)
	if err != nil { return nil, err }

	if err = checkBlock(HeaderBlock, leading, trailing, hd); err != nil {
		return nil, err
	}
	return hd, nil
}

// readBlock reads a block's leading marker, calls body to read its payload,
// then reads and checks the trailing marker. body is only called if the
// leading marker agrees with the header.
func readBlock(
	br *blockReader, kind BlockKind, hd *Header, body func() error,
) error {
	leading, err := br.begin(kind)
	if err != nil { return err }
	if int64(leading) != ExpectedSize(kind, hd) {
		return misframedBlock(br, kind, leading, hd)
	}
	if err = body(); err != nil { return err }
	trailing, err := br.u32()
	if err != nil { return err }
	return checkBlock(kind, leading, trailing, hd)
}

// misframedBlock classifies a block whose leading marker disagrees with the
// header. The trailing marker is looked for both where the leading marker
// puts it and where the header puts it. If either one matches the size it
// follows, the block is the wrong size. Otherwise its markers disagree.
func misframedBlock(
	br *blockReader, kind BlockKind, leading uint32, hd *Header,
) error {
	expected := ExpectedSize(kind, hd)
	lo, hi := min(int64(leading), expected), max(int64(leading), expected)
	tLo, tHi, found := br.markersAt(lo, hi)

	atLeading, okLeading := tHi, found == 2
	atExpected, okExpected := tLo, found >= 1
	if int64(leading) < expected {
		atLeading, okLeading = tLo, found >= 1
		atExpected, okExpected = tHi, found == 2
	}

	switch {
	case okLeading && atLeading == leading:
		return &BlockError{kind, leading, atLeading, expected, ErrSizeMismatch}
	case okExpected && int64(atExpected) == expected:
		return &BlockError{kind, leading, atExpected, expected, ErrSizeMismatch}
	case okLeading:
		return &BlockError{kind, leading, atLeading, expected,
			ErrPaddingMismatch}
	}
	// The file ends before the marker the leading marker points to.
	return &BlockError{kind, leading, 0, expected, ErrSizeMismatch}
}

// readMasses assigns every particle its type and mass. Masses are only read
// from the file for types without a fixed mass, and the block itself is
// only present if at least one such particle exists.
func readMasses(br *blockReader, hd *Header, p []Particle) error {
	assign := func() error {
		i := 0
		for typ := 0; typ < NTypes; typ++ {
			for n := uint32(0); n < hd.NPart[typ]; n++ {
				p[i].Type = typ
				if hd.Mass[typ] == 0 {
					m, err := br.f32()
					if err != nil { return err }
					p[i].Mass = m
				} else {
					p[i].Mass = float32(hd.Mass[typ])
				}
				i++
			}
		}
		return nil
	}

	if !hd.HasMassBlock() { return assign() }
	return readBlock(br, MassBlock, hd, assign)
}

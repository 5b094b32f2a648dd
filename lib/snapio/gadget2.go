package snapio

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Header has the same fields as the raw 256-byte header of a Gadget-2 file.
// Fields are decoded and encoded in declaration order, so the struct must not
// be reordered.
type Header struct {
	// NPart is the number of particles of each type in this file.
	NPart [NTypes]uint32
	// Mass is the fixed mass of each type. A zero mass means that particles
	// of that type store their masses in the mass block.
	Mass [NTypes]float64
	Time, Redshift float64
	// FlagSfr and FlagFeedback are booleans: non-zero means enabled.
	FlagSfr, FlagFeedback int32
	// NPartTotal is the number of particles of each type across every file
	// in the snapshot.
	NPartTotal [NTypes]uint32
	FlagCooling, NumFiles int32
	BoxSize, Omega0, OmegaLambda, HubbleParam float64
	// Fill is unused by this layout. It is carried through unchanged so that
	// headers written by other Gadget-2 variants survive a round trip.
	Fill [96]byte
}

// DecodeHeader interprets the first HeaderSize bytes of b as a Header.
func DecodeHeader(b []byte, order binary.ByteOrder) (*Header, error) {
	if len(b) < HeaderSize {
		return nil, fmt.Errorf("%w: the header record needs %d bytes, " +
			"but only %d were supplied", ErrMalformedHeader, HeaderSize, len(b))
	}

	hd := &Header{}
	err := binary.Read(bytes.NewReader(b[:HeaderSize]), order, hd)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedHeader, err.Error())
	}
	return hd, nil
}

// Encode converts the Header to its HeaderSize-byte on-disk representation.
func (hd *Header) Encode(order binary.ByteOrder) []byte {
	buf := bytes.NewBuffer(make([]byte, 0, HeaderSize))
	if err := binary.Write(buf, order, hd); err != nil {
		// Writes to a bytes.Buffer only fail for unencodable types.
		panic(fmt.Sprintf("Internal error: %s", err.Error()))
	}
	return buf.Bytes()
}

// NumPart returns the number of particles stored in the file.
func (hd *Header) NumPart() int64 {
	n := int64(0)
	for i := range hd.NPart {
		n += int64(hd.NPart[i])
	}
	return n
}

// NumWithMass returns the number of particles whose masses are stored in the
// mass block.
func (hd *Header) NumWithMass() int64 {
	n := int64(0)
	for i := range hd.NPart {
		if hd.Mass[i] == 0 {
			n += int64(hd.NPart[i])
		}
	}
	return n
}

// HasMassBlock returns true if a file with this header contains a mass block.
func (hd *Header) HasMassBlock() bool { return hd.NumWithMass() > 0 }

// ScaleFactor returns the expansion factor, 1/(1 + z).
func (hd *Header) ScaleFactor() float64 { return 1 / (1 + hd.Redshift) }

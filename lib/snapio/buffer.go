package snapio

/* This file contains the low-level readers and writers shared by Read and
Write. Both work one element at a time through a small scratch buffer, so a
block is never held in memory twice. */

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// blockReader reads markers and elements from a snapshot file.
type blockReader struct {
	rd io.Reader
	order binary.ByteOrder
	scratch [12]byte
	block BlockKind
}

// full reads exactly len(b) bytes, classifying short reads as
// ErrIoTruncated.
func (br *blockReader) full(b []byte) error {
	_, err := io.ReadFull(br.rd, b)
	if err == nil {
		return nil
	} else if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: the file ended inside the %s block",
			ErrIoTruncated, br.block)
	}
	return fmt.Errorf("%w: reading the %s block: %s",
		ErrIoTruncated, br.block, err.Error())
}

// begin reads the leading marker of a block.
func (br *blockReader) begin(kind BlockKind) (uint32, error) {
	br.block = kind
	return br.u32()
}

// skip discards the next n bytes.
func (br *blockReader) skip(n int64) error {
	_, err := io.CopyN(io.Discard, br.rd, n)
	return err
}

// markersAt reads the u32s which start lo and hi bytes into a block's
// payload, lo < hi. found is the number of them that were inside the file:
// 0, 1 (only tLo), or 2.
func (br *blockReader) markersAt(lo, hi int64) (tLo, tHi uint32, found int) {
	if br.skip(lo) != nil { return 0, 0, 0 }

	if hi - lo < 4 {
		b := make([]byte, hi - lo + 4)
		n, _ := io.ReadFull(br.rd, b)
		if n >= 4 { tLo, found = br.order.Uint32(b), 1 }
		if n == len(b) { tHi, found = br.order.Uint32(b[hi - lo:]), 2 }
		return tLo, tHi, found
	}

	tLo, err := br.u32()
	if err != nil { return 0, 0, 0 }
	if br.skip(hi - lo - 4) != nil { return tLo, 0, 1 }
	if tHi, err = br.u32(); err != nil { return tLo, 0, 1 }
	return tLo, tHi, 2
}

func (br *blockReader) u32() (uint32, error) {
	b := br.scratch[:4]
	if err := br.full(b); err != nil { return 0, err }
	return br.order.Uint32(b), nil
}

func (br *blockReader) f32() (float32, error) {
	u, err := br.u32()
	return math.Float32frombits(u), err
}

func (br *blockReader) v32() ([3]float32, error) {
	b := br.scratch[:12]
	if err := br.full(b); err != nil { return [3]float32{}, err }
	return [3]float32{
		math.Float32frombits(br.order.Uint32(b[0:4])),
		math.Float32frombits(br.order.Uint32(b[4:8])),
		math.Float32frombits(br.order.Uint32(b[8:12])),
	}, nil
}

// blockWriter writes markers and elements. The first error is kept and every
// later call is a no-op, so callers only need to check err once at the end.
type blockWriter struct {
	wr io.Writer
	order binary.ByteOrder
	scratch [12]byte
	err error
}

func (bw *blockWriter) write(b []byte) {
	if bw.err != nil { return }
	_, bw.err = bw.wr.Write(b)
}

// marker writes a block marker. Sizes are checked against math.MaxUint32
// before any writing starts.
func (bw *blockWriter) marker(size int64) { bw.u32(uint32(size)) }

func (bw *blockWriter) u32(u uint32) {
	b := bw.scratch[:4]
	bw.order.PutUint32(b, u)
	bw.write(b)
}

func (bw *blockWriter) f32(f float32) { bw.u32(math.Float32bits(f)) }

func (bw *blockWriter) v32(v [3]float32) {
	b := bw.scratch[:12]
	bw.order.PutUint32(b[0:4], math.Float32bits(v[0]))
	bw.order.PutUint32(b[4:8], math.Float32bits(v[1]))
	bw.order.PutUint32(b[8:12], math.Float32bits(v[2]))
	bw.write(b)
}

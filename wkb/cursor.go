package wkb

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
)

// reader is a forward-only cursor over an immutable byte buffer. All
// multi-byte reads are little-endian.
type reader struct {
	buf []byte
	off int
}

func (r *reader) remaining() int { return len(r.buf) - r.off }

func (r *reader) readByte() (byte, error) {
	if r.remaining() < 1 {
		return 0, fmt.Errorf("%w: need 1 byte at offset %d", ErrTruncated, r.off)
	}
	b := r.buf[r.off]
	r.off++
	return b, nil
}

func (r *reader) readUint32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, fmt.Errorf("%w: need 4 bytes at offset %d, have %d", ErrTruncated, r.off, r.remaining())
	}
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) readFloat64() (float64, error) {
	if r.remaining() < 8 {
		return 0, fmt.Errorf("%w: need 8 bytes at offset %d, have %d", ErrTruncated, r.off, r.remaining())
	}
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.buf[r.off:]))
	r.off += 8
	return v, nil
}

func (r *reader) skip(n int) error {
	if r.remaining() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrTruncated, n, r.off, r.remaining())
	}
	r.off += n
	return nil
}

// writer is a growable little-endian byte sink, the mirror of reader.
type writer struct {
	buf []byte
}

func (w *writer) writeByte(b byte) {
	w.buf = append(w.buf, b)
}

func (w *writer) writeUint32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *writer) writeFloat64(f float64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, math.Float64bits(f))
}

// decodeHexString unpacks a hex string into bytes. Input is case-insensitive,
// two digits per byte, no separators.
func decodeHexString(s string) ([]byte, error) {
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return data, nil
}

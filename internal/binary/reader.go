// Package binary provides low-level binary primitives for PNG chunk parsing
// and serialization.
package binary

import (
	"encoding/binary"
	"errors"
)

// ErrShortRead is returned when fewer bytes remain than a read requires.
var ErrShortRead = errors.New("short read: not enough bytes remaining")

// Reader is a cursor over an in-memory buffer. PNG chunk fields are always
// big-endian, so unlike general binary readers there is no configurable byte
// order or field width.
type Reader struct {
	buf []byte
	pos int
}

// NewReader creates a reader positioned at the start of buf. The reader does
// not copy buf; callers must not mutate it while reading.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Pos returns the current read position.
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int {
	return len(r.buf) - r.pos
}

// ReadBytes reads exactly n bytes from the current position.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, ErrShortRead
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// ReadUint32 reads a big-endian unsigned 32-bit integer.
func (r *Reader) ReadUint32() (uint32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Peek reads n bytes without advancing the position.
func (r *Reader) Peek(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining() {
		return nil, ErrShortRead
	}
	return r.buf[r.pos : r.pos+n], nil
}

// PeekUint32 reads a big-endian unsigned 32-bit integer without advancing
// the position.
func (r *Reader) PeekUint32() (uint32, error) {
	b, err := r.Peek(4)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Rest returns every unread byte and advances the position to the end.
func (r *Reader) Rest() []byte {
	b := r.buf[r.pos:]
	r.pos = len(r.buf)
	return b
}

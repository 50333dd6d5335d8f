package binary

import (
	"bytes"
	"encoding/binary"
)

// Writer accumulates big-endian binary output in memory. Writes cannot fail,
// so no method returns an error; callers collect the result with Bytes.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Grow reserves capacity for n further bytes.
func (w *Writer) Grow(n int) {
	w.buf.Grow(n)
}

// WriteBytes appends data to the output.
func (w *Writer) WriteBytes(data []byte) {
	w.buf.Write(data)
}

// WriteUint32 appends a big-endian unsigned 32-bit integer.
func (w *Writer) WriteUint32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

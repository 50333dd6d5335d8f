package pngveil

import (
	"fmt"
	"unicode/utf8"

	"github.com/pngveil/pngveil/internal/binary"
)

// Chunk field sizes. A chunk's serialized form is
// length (4, big-endian) | type (4) | data (length) | crc (4, big-endian).
const (
	lengthFieldSize = 4
	typeFieldSize   = 4
	crcFieldSize    = 4

	// chunkOverhead is the size of a chunk with no data.
	chunkOverhead = lengthFieldSize + typeFieldSize + crcFieldSize
)

// Chunk is a single PNG chunk: a typed, CRC-protected byte record. The CRC
// covers the type and data fields and is computed at construction; there is
// no way to set it independently, so a Chunk's CRC always matches its
// contents. Chunks are immutable once built.
type Chunk struct {
	length uint32
	typ    ChunkType
	data   []byte
	crc    uint32
}

// NewChunk builds a chunk from a type and data. The length and CRC fields
// are derived, so construction cannot fail.
func NewChunk(typ ChunkType, data []byte) Chunk {
	t := typ.Bytes()
	return Chunk{
		length: uint32(len(data)),
		typ:    typ,
		data:   data,
		crc:    binary.ChunkSum(t[:], data),
	}
}

// ParseChunk parses a buffer containing exactly one chunk.
//
// The buffer must hold the whole chunk and nothing else: the declared length
// must account for every byte between the type and CRC fields. Failures are
// ErrChunkLength (buffer shorter than the fixed fields), ErrDataLength
// (declared length does not match the buffer), a wrapped chunk type error,
// or ErrBadCRC. A failed parse returns no partial chunk.
func ParseChunk(buf []byte) (Chunk, error) {
	if len(buf) < chunkOverhead {
		return Chunk{}, fmt.Errorf("%d bytes: %w", len(buf), ErrChunkLength)
	}

	r := binary.NewReader(buf)
	length, err := r.ReadUint32()
	if err != nil {
		return Chunk{}, err
	}
	if int(length) != len(buf)-chunkOverhead {
		return Chunk{}, fmt.Errorf("declared %d, buffer holds %d: %w",
			length, len(buf)-chunkOverhead, ErrDataLength)
	}

	typBytes, err := r.ReadBytes(typeFieldSize)
	if err != nil {
		return Chunk{}, err
	}
	typ, err := ChunkTypeFromSlice(typBytes)
	if err != nil {
		return Chunk{}, fmt.Errorf("chunk type: %w", err)
	}

	data, err := r.ReadBytes(int(length))
	if err != nil {
		return Chunk{}, err
	}
	crc, err := r.ReadUint32()
	if err != nil {
		return Chunk{}, err
	}

	if !binary.VerifyChunkSum(typBytes, data, crc) {
		return Chunk{}, fmt.Errorf("declared 0x%08x, computed 0x%08x: %w",
			crc, binary.ChunkSum(typBytes, data), ErrBadCRC)
	}

	return Chunk{length: length, typ: typ, data: data, crc: crc}, nil
}

// Length returns the byte count of the data field.
func (c Chunk) Length() uint32 {
	return c.length
}

// Type returns the chunk's type.
func (c Chunk) Type() ChunkType {
	return c.typ
}

// Data returns the chunk's data. The returned slice is the chunk's own
// buffer; callers must not mutate it.
func (c Chunk) Data() []byte {
	return c.data
}

// CRC returns the chunk's checksum over type and data.
func (c Chunk) CRC() uint32 {
	return c.crc
}

// Text interprets the chunk data as UTF-8 text. It returns ErrInvalidText
// if the data is not valid UTF-8.
func (c Chunk) Text() (string, error) {
	if !utf8.Valid(c.data) {
		return "", ErrInvalidText
	}
	return string(c.data), nil
}

// Bytes serializes the chunk into its wire form, the exact inverse of
// ParseChunk.
func (c Chunk) Bytes() []byte {
	w := binary.NewWriter()
	w.Grow(chunkOverhead + len(c.data))
	w.WriteUint32(c.length)
	t := c.typ.Bytes()
	w.WriteBytes(t[:])
	w.WriteBytes(c.data)
	w.WriteUint32(c.crc)
	return w.Bytes()
}

// String renders the chunk for debugging: length, type, a hex dump of the
// data, and the CRC. The output is not part of any round-trip guarantee.
func (c Chunk) String() string {
	return fmt.Sprintf("Length: %d, Type: %s, Data: % x, CRC: 0x%08x",
		c.length, c.typ, c.data, c.crc)
}

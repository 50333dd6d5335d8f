package pngveil

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/pngveil/pngveil/internal/binary"
)

// Signature is the fixed 8-byte magic that opens every PNG file.
var Signature = []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}

// File is a PNG at the chunk level: the signature followed by an ordered
// chunk sequence. Order is file order and survives a serialize/parse round
// trip. Nothing constrains how many chunks share a type, and nothing here
// enforces critical-chunk semantics (a signature with no chunks at all is
// structurally fine); File models bytes, not image validity.
//
// A File exclusively owns its chunk slice. Methods are not safe for
// concurrent use without external synchronization.
type File struct {
	chunks []Chunk
}

// New returns a File with the signature and no chunks.
func New() *File {
	return &File{}
}

// Parse parses a complete PNG byte buffer.
//
// The buffer must open with Signature (ErrSignature otherwise) and then
// consist of whole chunks back to back until the end. Each chunk's span is
// its declared data length plus the fixed 12 bytes of framing; a buffer that
// ends mid-chunk fails inside ParseChunk with a length error. Any chunk
// failure aborts the parse, and no partial File is returned.
func Parse(buf []byte) (*File, error) {
	if len(buf) < len(Signature) || !bytes.Equal(buf[:len(Signature)], Signature) {
		return nil, ErrSignature
	}

	r := binary.NewReader(buf)
	r.ReadBytes(len(Signature))

	f := &File{}
	for r.Remaining() > 0 {
		// The span to hand to ParseChunk is the declared data length plus
		// the fixed framing. A truncated or lying header caps the span at
		// what remains, and ParseChunk reports the mismatch.
		span := r.Remaining()
		if declared, err := r.PeekUint32(); err == nil {
			if full := chunkOverhead + int(declared); full < span {
				span = full
			}
		}
		raw, err := r.ReadBytes(span)
		if err != nil {
			return nil, err
		}
		chunk, err := ParseChunk(raw)
		if err != nil {
			return nil, fmt.Errorf("chunk %d at offset %d: %w", len(f.chunks), r.Pos()-span, err)
		}
		f.chunks = append(f.chunks, chunk)
	}
	return f, nil
}

// AppendChunk adds a chunk to the end of the sequence.
func (f *File) AppendChunk(c Chunk) {
	f.chunks = append(f.chunks, c)
}

// RemoveChunk removes and returns the first chunk whose type matches
// typeStr. It returns the type's parse error if typeStr is not a valid
// chunk type, and ErrChunkNotFound if no chunk matches. Later chunks of the
// same type are left in place; one call removes at most one chunk.
func (f *File) RemoveChunk(typeStr string) (Chunk, error) {
	typ, err := ParseChunkType(typeStr)
	if err != nil {
		return Chunk{}, err
	}
	for i, c := range f.chunks {
		if c.typ == typ {
			f.chunks = append(f.chunks[:i], f.chunks[i+1:]...)
			return c, nil
		}
	}
	return Chunk{}, fmt.Errorf("%q: %w", typeStr, ErrChunkNotFound)
}

// ChunkByType returns the first chunk whose type matches typeStr, or
// (nil, false) if none does. A typeStr that is not a valid chunk type can
// never match anything stored, so it reports no match rather than an error.
// The returned pointer is into the File's own sequence and is invalidated
// by RemoveChunk.
func (f *File) ChunkByType(typeStr string) (*Chunk, bool) {
	typ, err := ParseChunkType(typeStr)
	if err != nil {
		return nil, false
	}
	for i := range f.chunks {
		if f.chunks[i].typ == typ {
			return &f.chunks[i], true
		}
	}
	return nil, false
}

// Chunks returns the chunk sequence in file order. The slice is a read-only
// view of the File's own sequence.
func (f *File) Chunks() []Chunk {
	return f.chunks
}

// Bytes serializes the whole file: the signature followed by every chunk in
// sequence order. Parse(f.Bytes()) reproduces the sequence exactly.
func (f *File) Bytes() []byte {
	w := binary.NewWriter()
	w.WriteBytes(Signature)
	for _, c := range f.chunks {
		w.WriteBytes(c.Bytes())
	}
	return w.Bytes()
}

// String renders the signature and every chunk's debug form, one per line.
func (f *File) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Signature: % x\n", Signature)
	for i, c := range f.chunks {
		fmt.Fprintf(&sb, "[%d] %s\n", i, c)
	}
	return sb.String()
}

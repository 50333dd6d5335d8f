package pngveil

import "fmt"

// propertyBit is bit 5 of each type byte (the ASCII case bit). The case of
// each of the four bytes encodes one chunk property.
const propertyBit = 0x20

// ChunkType is a validated 4-byte PNG chunk identifier. The zero value is
// not valid; construct one with NewChunkType, ChunkTypeFromSlice, or
// ParseChunkType. ChunkType is comparable, so values can be compared with ==
// and used as map keys.
type ChunkType [4]byte

// NewChunkType constructs a ChunkType from four bytes. Each byte must be an
// ASCII letter (A-Z or a-z); anything else returns ErrByteOutOfRange.
func NewChunkType(b [4]byte) (ChunkType, error) {
	for i, c := range b {
		if !isLetter(c) {
			return ChunkType{}, fmt.Errorf("byte %d (0x%02x): %w", i, c, ErrByteOutOfRange)
		}
	}
	return ChunkType(b), nil
}

// ChunkTypeFromSlice constructs a ChunkType from a variable-length slice.
// It returns ErrTypeLength unless the slice is exactly 4 bytes, then applies
// the same letter check as NewChunkType.
func ChunkTypeFromSlice(b []byte) (ChunkType, error) {
	if len(b) != 4 {
		return ChunkType{}, fmt.Errorf("got %d bytes: %w", len(b), ErrTypeLength)
	}
	return NewChunkType([4]byte{b[0], b[1], b[2], b[3]})
}

// ParseChunkType constructs a ChunkType from a string such as "tEXt".
// A 4-character ASCII string yields exactly 4 bytes, which is the intended
// use; multi-byte characters simply fail the length or letter checks.
func ParseChunkType(s string) (ChunkType, error) {
	return ChunkTypeFromSlice([]byte(s))
}

// Bytes returns the raw 4 bytes of the type.
func (t ChunkType) Bytes() [4]byte {
	return [4]byte(t)
}

// String returns the type as a 4-character string.
func (t ChunkType) String() string {
	return string(t[:])
}

// IsCritical reports whether the chunk is required for decoding the image
// (first byte upper-case).
func (t ChunkType) IsCritical() bool {
	return t[0]&propertyBit == 0
}

// IsPublic reports whether the type is publicly registered (second byte
// upper-case).
func (t ChunkType) IsPublic() bool {
	return t[1]&propertyBit == 0
}

// IsReservedBitValid reports whether the reserved third byte is upper-case,
// as the PNG specification currently requires.
func (t ChunkType) IsReservedBitValid() bool {
	return t[2]&propertyBit == 0
}

// IsSafeToCopy reports whether editors may copy the chunk without
// understanding it (fourth byte lower-case).
func (t ChunkType) IsSafeToCopy() bool {
	return t[3]&propertyBit != 0
}

// IsValid reports whether the type is valid per the PNG specification.
// Only the reserved bit gates validity; the critical, public, and
// safe-to-copy bits are informational.
func (t ChunkType) IsValid() bool {
	return t.IsReservedBitValid()
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

// Package pngveil models PNG files at the chunk level: a fixed signature
// followed by length-prefixed, type-tagged, CRC-protected records. It is the
// core used to embed, extract, and strip message payloads carried in
// ancillary chunks.
package pngveil

import "errors"

// Common errors. Every failure mode has its own sentinel so callers can
// match causes with errors.Is; parse paths wrap these with context.
var (
	ErrByteOutOfRange = errors.New("chunk type byte is not an ASCII letter")
	ErrTypeLength     = errors.New("chunk type must be exactly 4 bytes")
	ErrChunkLength    = errors.New("too few bytes to parse as a chunk")
	ErrDataLength     = errors.New("declared data length does not match buffer")
	ErrBadCRC         = errors.New("chunk CRC mismatch")
	ErrInvalidText    = errors.New("chunk data is not valid UTF-8")
	ErrSignature      = errors.New("buffer does not start with the PNG signature")
	ErrChunkNotFound  = errors.New("no chunk with the requested type")
)

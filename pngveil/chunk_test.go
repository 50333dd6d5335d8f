package pngveil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

const refMessage = "This is where your secret message will be!"

// refCRC is the CRC-32 of "RuSt" followed by refMessage.
const refCRC uint32 = 2882656334

// buildRawChunk assembles a serialized chunk by hand, independent of the
// Chunk codec under test.
func buildRawChunk(length uint32, typ string, data []byte, crc uint32) []byte {
	var buf bytes.Buffer
	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], length)
	buf.Write(u32[:])
	buf.WriteString(typ)
	buf.Write(data)
	binary.BigEndian.PutUint32(u32[:], crc)
	buf.Write(u32[:])
	return buf.Bytes()
}

func refChunkBytes() []byte {
	return buildRawChunk(uint32(len(refMessage)), "RuSt", []byte(refMessage), refCRC)
}

func TestNewChunk(t *testing.T) {
	ct, err := ParseChunkType("RuSt")
	if err != nil {
		t.Fatalf("ParseChunkType failed: %v", err)
	}
	c := NewChunk(ct, []byte(refMessage))

	if c.Length() != uint32(len(refMessage)) {
		t.Errorf("Length() = %d, want %d", c.Length(), len(refMessage))
	}
	if c.CRC() != refCRC {
		t.Errorf("CRC() = %d, want %d", c.CRC(), refCRC)
	}
	if c.Type() != ct {
		t.Errorf("Type() = %v, want %v", c.Type(), ct)
	}
	if !bytes.Equal(c.Data(), []byte(refMessage)) {
		t.Errorf("Data() = %q, want %q", c.Data(), refMessage)
	}
}

func TestParseChunk(t *testing.T) {
	raw := refChunkBytes()
	c, err := ParseChunk(raw)
	if err != nil {
		t.Fatalf("ParseChunk failed: %v", err)
	}

	if c.Length() != uint32(len(refMessage)) {
		t.Errorf("Length() = %d, want %d", c.Length(), len(refMessage))
	}
	if c.Type().String() != "RuSt" {
		t.Errorf("Type() = %q, want %q", c.Type().String(), "RuSt")
	}
	if c.CRC() != refCRC {
		t.Errorf("CRC() = %d, want %d", c.CRC(), refCRC)
	}
	text, err := c.Text()
	if err != nil {
		t.Fatalf("Text failed: %v", err)
	}
	if text != refMessage {
		t.Errorf("Text() = %q, want %q", text, refMessage)
	}
	if !bytes.Equal(c.Bytes(), raw) {
		t.Errorf("Bytes() does not reproduce the input buffer")
	}
}

func TestParseChunkEmptyData(t *testing.T) {
	ct, _ := ParseChunkType("teSt")
	c := NewChunk(ct, nil)
	if c.Length() != 0 {
		t.Errorf("Length() = %d, want 0", c.Length())
	}
	parsed, err := ParseChunk(c.Bytes())
	if err != nil {
		t.Fatalf("ParseChunk failed on empty-data chunk: %v", err)
	}
	if parsed.Type() != ct || parsed.Length() != 0 {
		t.Errorf("round trip mangled empty-data chunk: %v", parsed)
	}
}

func TestChunkRoundTrip(t *testing.T) {
	ct, _ := ParseChunkType("RuSt")
	orig := NewChunk(ct, []byte(refMessage))

	parsed, err := ParseChunk(orig.Bytes())
	if err != nil {
		t.Fatalf("ParseChunk failed: %v", err)
	}
	if parsed.Length() != orig.Length() || parsed.Type() != orig.Type() ||
		parsed.CRC() != orig.CRC() || !bytes.Equal(parsed.Data(), orig.Data()) {
		t.Errorf("parse(serialize(c)) != c:\n got %v\nwant %v", parsed, orig)
	}
}

func TestParseChunkTooShort(t *testing.T) {
	for _, n := range []int{0, 1, 4, 11} {
		if _, err := ParseChunk(make([]byte, n)); !errors.Is(err, ErrChunkLength) {
			t.Errorf("ParseChunk on %d bytes: error = %v, want ErrChunkLength", n, err)
		}
	}
}

func TestParseChunkDataLengthMismatch(t *testing.T) {
	// Declared length off by one in each direction.
	for _, declared := range []uint32{uint32(len(refMessage)) - 1, uint32(len(refMessage)) + 1} {
		raw := buildRawChunk(declared, "RuSt", []byte(refMessage), refCRC)
		if _, err := ParseChunk(raw); !errors.Is(err, ErrDataLength) {
			t.Errorf("declared=%d: error = %v, want ErrDataLength", declared, err)
		}
	}
}

func TestParseChunkBadType(t *testing.T) {
	raw := buildRawChunk(uint32(len(refMessage)), "Ru1t", []byte(refMessage), refCRC)
	if _, err := ParseChunk(raw); !errors.Is(err, ErrByteOutOfRange) {
		t.Errorf("error = %v, want wrapped ErrByteOutOfRange", err)
	}
}

func TestParseChunkBadCRC(t *testing.T) {
	raw := buildRawChunk(uint32(len(refMessage)), "RuSt", []byte(refMessage), refCRC-1)
	if _, err := ParseChunk(raw); !errors.Is(err, ErrBadCRC) {
		t.Errorf("error = %v, want ErrBadCRC", err)
	}
}

func TestParseChunkTamperedData(t *testing.T) {
	// Flipping any data bit must break the checksum. Each trial flips a
	// different bit of a different data byte.
	for i := 0; i < len(refMessage); i++ {
		raw := refChunkBytes()
		raw[8+i] ^= 1 << (i % 8)
		if _, err := ParseChunk(raw); !errors.Is(err, ErrBadCRC) {
			t.Errorf("flip in data byte %d: error = %v, want ErrBadCRC", i, err)
		}
	}
}

func TestParseChunkTamperedTypeCase(t *testing.T) {
	// Flipping a type byte's case keeps it a valid letter, so the failure
	// must surface as a CRC mismatch, not a type error.
	for i := 4; i < 8; i++ {
		raw := refChunkBytes()
		raw[i] ^= 0x20
		if _, err := ParseChunk(raw); !errors.Is(err, ErrBadCRC) {
			t.Errorf("case flip in type byte %d: error = %v, want ErrBadCRC", i, err)
		}
	}
}

func TestChunkTextInvalidUTF8(t *testing.T) {
	ct, _ := ParseChunkType("RuSt")
	c := NewChunk(ct, []byte{0xff, 0xfe, 0xfd})
	if _, err := c.Text(); !errors.Is(err, ErrInvalidText) {
		t.Errorf("Text() error = %v, want ErrInvalidText", err)
	}
}

func TestChunkString(t *testing.T) {
	ct, _ := ParseChunkType("RuSt")
	c := NewChunk(ct, []byte{0xde, 0xad})
	s := c.String()
	for _, want := range []string{"RuSt", "Length: 2", "de ad"} {
		if !bytes.Contains([]byte(s), []byte(want)) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}

package binary

import "hash/crc32"

// ChunkSum computes the PNG chunk CRC: CRC-32 (the ISO-HDLC / IEEE 802.3
// polynomial used by zlib) over the four type bytes followed by the data
// bytes. The length and CRC fields themselves are not covered.
func ChunkSum(typ, data []byte) uint32 {
	sum := crc32.Update(0, crc32.IEEETable, typ)
	return crc32.Update(sum, crc32.IEEETable, data)
}

// VerifyChunkSum verifies a chunk's type and data against an expected CRC.
func VerifyChunkSum(typ, data []byte, expected uint32) bool {
	return ChunkSum(typ, data) == expected
}

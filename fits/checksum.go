package fits

import (
	"encoding/binary"
	"strconv"
	"strings"
)

// zeroChecksum is the placeholder CHECKSUM value a header is first
// rendered with, before the two-pass patch.
const zeroChecksum = "0000000000000000"

// checksum32 computes the FITS ones'-complement running sum over data,
// treated as a sequence of big-endian 32-bit words with end-around carry.
// data must be a multiple of 4 bytes, which block-aligned HDU bytes always
// are.
func checksum32(data []byte) uint32 {
	var sum uint64
	for i := 0; i+4 <= len(data); i += 4 {
		sum += uint64(binary.BigEndian.Uint32(data[i : i+4]))
	}
	for sum>>32 != 0 {
		sum = (sum & 0xffffffff) + (sum >> 32)
	}
	return uint32(sum)
}

// dataSum computes the DATASUM keyword's decimal value: the ones'
// complement checksum of the raw data bytes alone.
func dataSum(data []byte) uint32 {
	return checksum32(data)
}

// encodeChecksumString renders a 32-bit checksum as the 16-character
// printable-ASCII string the CHECKSUM keyword carries.
func encodeChecksumString(sum uint32) string {
	comp := ^sum
	var b strings.Builder
	for shift := 24; shift >= 0; shift -= 8 {
		byteVal := byte(comp >> uint(shift))
		hi, lo := byteVal>>4, byteVal&0xf
		b.WriteByte(base36Digit(hi))
		b.WriteByte(base36Digit(lo))
		b.WriteByte(base36Digit(hi))
		b.WriteByte(base36Digit(lo))
	}
	return b.String()
}

func base36Digit(n byte) byte {
	const alphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	return alphabet[n%36]
}

// patchChecksum implements the two-pass checksum patch: compute checksum32
// over the full rendered HDU (header with a zero-filled CHECKSUM line,
// plus data), then overwrite the first CHECKSUM keyword line in place with
// a freshly rendered line carrying the encoded checksum. Two passes are
// required because CHECKSUM encodes the checksum of the complete HDU
// including itself, defined with the field initially set to ASCII zeros.
func patchChecksum(hdu []byte) []byte {
	sum := checksum32(hdu)
	line := renderKeywordLine("CHECKSUM", StringValue(encodeChecksumString(sum)), "")
	idx := findChecksumLine(hdu)
	if idx < 0 {
		return hdu
	}
	out := make([]byte, len(hdu))
	copy(out, hdu)
	copy(out[idx:idx+lineWidth], line)
	return out
}

func findChecksumLine(hdu []byte) int {
	for i := 0; i+8 <= len(hdu); i += lineWidth {
		if string(hdu[i:i+8]) == padName("CHECKSUM") {
			return i
		}
	}
	return -1
}

// ChecksumString renders a uint32 DATASUM-style value as decimal text,
// matching how RenderPrimaryHeader and RenderImageExtensionHeader encode
// the DATASUM keyword.
func ChecksumString(sum uint32) string {
	return strconv.FormatUint(uint64(sum), 10)
}

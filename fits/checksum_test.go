package fits

import "testing"

func TestChecksum32Deterministic(t *testing.T) {
	data := make([]byte, 8)
	data[3] = 1
	data[7] = 2
	a := checksum32(data)
	b := checksum32(data)
	if a != b {
		t.Errorf("checksum32 is not deterministic: %d != %d", a, b)
	}
}

func TestEncodeChecksumStringLength(t *testing.T) {
	s := encodeChecksumString(0x12345678)
	if len(s) != 16 {
		t.Errorf("got length %d, want 16", len(s))
	}
}

func TestPatchChecksumOverwritesFirstOccurrence(t *testing.T) {
	header := RenderPrimaryHeader(BPInt8, []int{4}, nil, []byte{1, 2, 3, 4})
	hdu := append(header, PadDataBlock([]byte{1, 2, 3, 4})...)
	patched := patchChecksum(hdu)
	if len(patched) != len(hdu) {
		t.Fatalf("got length %d, want %d", len(patched), len(hdu))
	}
	idx := findChecksumLine(patched)
	if idx < 0 {
		t.Fatal("CHECKSUM line not found")
	}
	line := string(patched[idx : idx+lineWidth])
	if line == string(hdu[idx:idx+lineWidth]) {
		t.Error("CHECKSUM line was not patched")
	}
}

func TestEncodeHDUBlockAligned(t *testing.T) {
	out := EncodeHDU(KindPrimary, BPInt32, []int{3, 2}, nil, make([]byte, 24))
	if len(out)%blockBytes != 0 {
		t.Fatalf("length %d not a multiple of %d", len(out), blockBytes)
	}
}

package asdf

import (
	"bytes"
	"testing"

	"github.com/skyfield-labs/corefmt/ir"
)

func TestWriteReadBlockRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	payload := []byte{0x01, 0x02, 0x03, 0x04}
	if err := WriteBlock(&buf, payload); err != nil {
		t.Fatalf("WriteBlock: %v", err)
	}
	got, err := ReadBlock(&buf)
	if err != nil {
		t.Fatalf("ReadBlock: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("got %v, want %v", got, payload)
	}
}

func TestWriteReadBlocksPreservesOrder(t *testing.T) {
	store := ir.NewBlockStore()
	store.Append([]byte("first"))
	store.Append([]byte("second"))

	var buf bytes.Buffer
	if err := WriteBlocks(&buf, store); err != nil {
		t.Fatalf("WriteBlocks: %v", err)
	}
	readBack, err := ReadBlocks(&buf)
	if err != nil {
		t.Fatalf("ReadBlocks: %v", err)
	}
	if readBack.Len() != 2 {
		t.Fatalf("got %d blocks, want 2", readBack.Len())
	}
	b0, _ := readBack.Get(0)
	b1, _ := readBack.Get(1)
	if string(b0) != "first" || string(b1) != "second" {
		t.Fatalf("got blocks %q, %q", b0, b1)
	}
}

package asdfio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/skyfield-labs/corefmt/ir"
)

func TestDocumentRoundTripWithBlocks(t *testing.T) {
	root := ir.Untagged(ir.Object(
		ir.Entry{Key: "obs", Value: ir.Untagged(ir.String("m31"))},
		ir.Entry{Key: "image", Value: ir.NewNode(ir.NDArrayTag, ir.NDArray(ir.NDArrayData{
			Bytes:     []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08},
			DataType:  ir.DataType{Kind: ir.Int32},
			ByteOrder: ir.BigEndian,
			Shape:     ir.Shape{2},
		}))},
	))

	var buf bytes.Buffer
	if err := WriteDocument(&buf, root); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "#ASDF 1.0.0\n") {
		t.Errorf("missing header comment: %q", out[:40])
	}
	if !strings.Contains(out, "#ASDF BLOCK INDEX\n") {
		t.Error("missing block index trailer")
	}

	got, store, err := ReadDocument(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if store.Len() != 1 {
		t.Fatalf("store has %d blocks, want 1", store.Len())
	}
	if diff := cmp.Diff(root, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestDocumentRoundTripNoBlocks(t *testing.T) {
	root := ir.Untagged(ir.Object(
		ir.Entry{Key: "a", Value: ir.Untagged(ir.Int64(1))},
	))
	var buf bytes.Buffer
	if err := WriteDocument(&buf, root); err != nil {
		t.Fatalf("WriteDocument: %v", err)
	}
	if strings.Contains(buf.String(), "#ASDF BLOCK INDEX") {
		t.Error("blockless document should have no index trailer")
	}
	got, store, err := ReadDocument(bytes.NewReader(buf.Bytes()))
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if store.Len() != 0 {
		t.Errorf("store has %d blocks, want 0", store.Len())
	}
	if diff := cmp.Diff(root, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

package lspsrv

import (
	"strings"
	"testing"

	"github.com/skyfield-labs/corefmt/ir"
)

func TestHoverTextNDArray(t *testing.T) {
	n := ir.NewNode(ir.NDArrayTag, ir.NDArray(ir.NDArrayData{
		Bytes:     []byte{0, 0, 0, 1},
		DataType:  ir.DataType{Kind: ir.Int32},
		ByteOrder: ir.BigEndian,
		Shape:     ir.Shape{1},
	}))
	got := hoverText(n, "#/data")
	for _, want := range []string{"#/data", "core/ndarray-1.0.0", "int32", "NDArray"} {
		if !strings.Contains(got, want) {
			t.Errorf("hover text missing %q:\n%s", want, got)
		}
	}
}

func TestFindNodeAtLine(t *testing.T) {
	root := ir.Untagged(ir.Object(
		ir.Entry{Key: "obs", Value: ir.Untagged(ir.String("m31"))},
		ir.Entry{Key: "exposure", Value: ir.Untagged(ir.Int64(1200))},
	))
	text := "obs: m31\nexposure: 1200\n"
	n, path := findNodeAtLine(root, "#", text, 1)
	if n == nil {
		t.Fatal("expected a node at line 1")
	}
	if path != "#/exposure" {
		t.Errorf("path = %q, want #/exposure", path)
	}
	if n.Value.Kind() != ir.KindInteger {
		t.Errorf("kind = %v, want Integer", n.Value.Kind())
	}
}

func TestIndexToleratesBadDocument(t *testing.T) {
	s := &Server{docs: newDocumentStore()}
	s.index("file:///bad.asdf", ":::not yaml {{{")
	doc := s.docs.get("file:///bad.asdf")
	if doc == nil {
		t.Fatal("document should be stored even when unparseable")
	}
	if doc.root != nil {
		t.Error("unparseable document should have no tree")
	}
}

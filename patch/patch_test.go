package patch

import (
	"testing"

	"github.com/skyfield-labs/corefmt/ir"
)

func TestApplyAddsKey(t *testing.T) {
	doc := ir.Untagged(ir.Object(
		ir.Entry{Key: "x", Value: ir.Untagged(ir.Int64(1))},
	))
	ops := []byte(`[{"op":"add","path":"/y","value":2}]`)

	out, err := Apply(doc, ops)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	y, ok := out.Value.Get("y")
	if !ok {
		t.Fatalf("expected key y in result")
	}
	if y.Value.Kind() != ir.KindInteger || y.Value.Integer().Int64() != 2 {
		t.Fatalf("got %v, want Integer(2)", y.Value)
	}
	x, ok := out.Value.Get("x")
	if !ok || x.Value.Integer().Int64() != 1 {
		t.Fatalf("expected original key x to survive patch")
	}
}

func TestApplyRemovesKey(t *testing.T) {
	doc := ir.Untagged(ir.Object(
		ir.Entry{Key: "x", Value: ir.Untagged(ir.String("hello"))},
	))
	ops := []byte(`[{"op":"remove","path":"/x"}]`)

	out, err := Apply(doc, ops)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if _, ok := out.Value.Get("x"); ok {
		t.Fatalf("expected key x to be removed")
	}
}

func TestApplyRejectsNDArray(t *testing.T) {
	doc := ir.Untagged(ir.Object(
		ir.Entry{Key: "arr", Value: ir.NewNode(ir.NDArrayTag, ir.NDArray(ir.NDArrayData{
			Bytes: []byte{1, 2, 3, 4}, DataType: ir.DataType{Kind: ir.Int32}, Shape: ir.Shape{1},
		}))},
	))
	if _, err := Apply(doc, []byte(`[]`)); err == nil {
		t.Fatalf("expected error projecting NDArray to JSON")
	}
}

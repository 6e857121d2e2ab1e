package asdf

import (
	"testing"

	"github.com/skyfield-labs/corefmt/ir"
	"github.com/skyfield-labs/corefmt/yamlevent"
)

func TestEncodeNDArray(t *testing.T) {
	root := ir.Untagged(ir.Object(ir.Entry{
		Key: "x",
		Value: ir.NewNode(ir.NDArrayTag, ir.NDArray(ir.NDArrayData{
			Bytes:     []byte{0x01, 0x02, 0x03, 0x04},
			DataType:  ir.DataType{Kind: ir.Int32},
			ByteOrder: ir.BigEndian,
			Shape:     ir.Shape{1},
		})),
	}))

	sink := &yamlevent.SliceSink{}
	store := ir.NewBlockStore()
	if err := Encode(root, sink, store); err != nil {
		t.Fatal(err)
	}

	if store.Len() != 1 {
		t.Fatalf("block store has %d entries, want 1", store.Len())
	}
	block, _ := store.Get(0)
	want := []byte{0x01, 0x02, 0x03, 0x04}
	if string(block) != string(want) {
		t.Errorf("block = %v, want %v", block, want)
	}

	wantKinds := []yamlevent.Kind{
		yamlevent.StreamStart,
		yamlevent.DocumentStart,
		yamlevent.MappingStart, // outer object
		yamlevent.Scalar,       // "x"
		yamlevent.MappingStart, // ndarray
		yamlevent.Scalar,       // "source"
		yamlevent.Scalar,       // "0"
		yamlevent.Scalar,       // "datatype"
		yamlevent.Scalar,       // "int32"
		yamlevent.Scalar,       // "shape"
		yamlevent.SequenceStart,
		yamlevent.Scalar, // "1"
		yamlevent.SequenceEnd,
		yamlevent.Scalar, // "byteorder"
		yamlevent.Scalar, // "big"
		yamlevent.MappingEnd,
		yamlevent.MappingEnd,
		yamlevent.DocumentEnd,
		yamlevent.StreamEnd,
	}
	if len(sink.Events) != len(wantKinds) {
		t.Fatalf("got %d events, want %d", len(sink.Events), len(wantKinds))
	}
	for i, k := range wantKinds {
		if sink.Events[i].Kind != k {
			t.Errorf("event %d: got %v, want %v", i, sink.Events[i].Kind, k)
		}
	}

	ndMapping := sink.Events[4]
	if ndMapping.Tag.Kind != yamlevent.UriTag || ndMapping.Tag.URI != "core/ndarray-1.0.0" {
		t.Errorf("ndarray mapping tag = %+v", ndMapping.Tag)
	}
	if ndMapping.CollStyle != yamlevent.Flow {
		t.Errorf("ndarray mapping style = %v, want Flow", ndMapping.CollStyle)
	}
	if string(sink.Events[8].Bytes) != "int32" {
		t.Errorf("datatype scalar = %q", sink.Events[8].Bytes)
	}
	if string(sink.Events[14].Bytes) != "big" {
		t.Errorf("byteorder scalar = %q", sink.Events[14].Bytes)
	}
}

func TestEncodeEmptyStringSingleQuoted(t *testing.T) {
	sink := &yamlevent.SliceSink{}
	store := ir.NewBlockStore()
	if err := Encode(ir.Untagged(ir.String("")), sink, store); err != nil {
		t.Fatal(err)
	}
	scalar := sink.Events[2]
	if scalar.Kind != yamlevent.Scalar || scalar.Style != yamlevent.SingleQuoted {
		t.Errorf("got %+v, want SingleQuoted empty scalar", scalar)
	}
	if scalar.Tag.Kind != yamlevent.NoTag {
		t.Errorf("got tag %+v, want NoTag", scalar.Tag)
	}
}

func TestEncodeInternalRef(t *testing.T) {
	sink := &yamlevent.SliceSink{}
	store := ir.NewBlockStore()
	node := ir.Untagged(ir.InternalRef(ir.ParsePointer("#/foo/bar")))
	if err := Encode(node, sink, store); err != nil {
		t.Fatal(err)
	}
	if sink.Events[1].Kind != yamlevent.DocumentStart {
		t.Fatal("unexpected event layout")
	}
	if sink.Events[2].Kind != yamlevent.MappingStart {
		t.Errorf("got %v, want MappingStart", sink.Events[2].Kind)
	}
	if string(sink.Events[3].Bytes) != "$ref" {
		t.Errorf("got key %q, want $ref", sink.Events[3].Bytes)
	}
	if string(sink.Events[4].Bytes) != "#/foo/bar" {
		t.Errorf("got value %q", sink.Events[4].Bytes)
	}
}

func TestEncodeIntegerAndNumber(t *testing.T) {
	sink := &yamlevent.SliceSink{}
	store := ir.NewBlockStore()
	root := ir.Untagged(ir.Array(
		ir.Untagged(ir.Int64(42)),
		ir.Untagged(ir.Number(1.5)),
	))
	if err := Encode(root, sink, store); err != nil {
		t.Fatal(err)
	}
	var scalars []string
	for _, ev := range sink.Events {
		if ev.Kind == yamlevent.Scalar {
			scalars = append(scalars, string(ev.Bytes))
		}
	}
	if scalars[0] != "42" || scalars[1] != "1.5" {
		t.Errorf("got %v", scalars)
	}
}

package arraycodec

import (
	"reflect"
	"testing"

	"github.com/skyfield-labs/corefmt/ir"
)

func TestEncodeDecodeInt32Big(t *testing.T) {
	dt := ir.DataType{Kind: ir.Int32}
	want := []int32{1, -2, 3}
	b, err := EncodeArray(dt, ir.BigEndian, want)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 12 {
		t.Fatalf("len(b) = %d, want 12", len(b))
	}
	got, err := DecodeArray(ir.BigEndian, ir.Shape{3}, dt, b)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEncodeDecodeFloat64Little(t *testing.T) {
	dt := ir.DataType{Kind: ir.Float64}
	want := []float64{1.5, -2.25}
	b, err := EncodeArray(dt, ir.LittleEndian, want)
	if err != nil {
		t.Fatal(err)
	}
	got, err := DecodeArray(ir.LittleEndian, ir.Shape{2}, dt, b)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeSingleInt32BigEndian(t *testing.T) {
	dt := ir.DataType{Kind: ir.Int32}
	data := []byte{0x01, 0x02, 0x03, 0x04}
	got, err := DecodeArray(ir.BigEndian, ir.Shape{1}, dt, data)
	if err != nil {
		t.Fatal(err)
	}
	want := []int32{0x01020304}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestEncodeDecodeUcs4(t *testing.T) {
	dt := ir.DataType{Kind: ir.Ucs4, Ucs4Len: 4}
	want := []string{"abc", "éè"}
	b, err := EncodeArray(dt, ir.BigEndian, want)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 2*dt.Width() {
		t.Fatalf("len(b) = %d, want %d", len(b), 2*dt.Width())
	}
	got, err := DecodeArray(ir.BigEndian, ir.Shape{2}, dt, b)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDecodeArrayLengthMismatch(t *testing.T) {
	dt := ir.DataType{Kind: ir.Int32}
	if _, err := DecodeArray(ir.BigEndian, ir.Shape{2}, dt, []byte{1, 2, 3}); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestTotalItems(t *testing.T) {
	if n := TotalItems(ir.Shape{2, 3}); n != 6 {
		t.Errorf("TotalItems = %d, want 6", n)
	}
}

package fits

import (
	"bytes"
	"testing"
)

func TestDefaultParserRoundTripPrimary(t *testing.T) {
	data := make([]byte, 10*4)
	for i := range data {
		data[i] = byte(i)
	}
	encoded := EncodeHDU(KindPrimary, BPInt32, []int{10}, nil, data)

	units, err := DefaultParser{}.Parse(bytes.NewReader(encoded))
	if err != nil {
		t.Fatal(err)
	}
	if len(units) != 1 {
		t.Fatalf("got %d units, want 1", len(units))
	}
	u := units[0]
	if u.Dimensions.BitPix != thirtyTwoBitInt {
		t.Errorf("got bitpix %d, want %d", u.Dimensions.BitPix, thirtyTwoBitInt)
	}
	if len(u.Dimensions.Axes) != 1 || u.Dimensions.Axes[0] != 10 {
		t.Errorf("got axes %v, want [10]", u.Dimensions.Axes)
	}
	if !bytes.Equal(u.MainData, data) {
		t.Errorf("got data %v, want %v", u.MainData, data)
	}
}

func TestDefaultParserThenClassify(t *testing.T) {
	data := make([]byte, 4)
	encoded := EncodeHDU(KindPrimary, BPInt8, []int{4}, nil, data)

	units, err := DefaultParser{}.Parse(bytes.NewReader(encoded))
	if err != nil {
		t.Fatal(err)
	}
	primary, _, err := Classify(units)
	if err != nil {
		t.Fatal(err)
	}
	if primary.Data.BitPix != BPInt8 {
		t.Errorf("got %v, want BPInt8", primary.Data.BitPix)
	}
	if len(primary.Data.RawData) != 4 {
		t.Errorf("got %d data bytes, want 4", len(primary.Data.RawData))
	}
}

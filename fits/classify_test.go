package fits

import "testing"

func TestClassifyEmptyInput(t *testing.T) {
	_, _, err := Classify(nil)
	if _, ok := err.(*MissingPrimaryError); !ok {
		t.Fatalf("got %v (%T), want MissingPrimaryError", err, err)
	}
}

func TestClassifyFirstMustBePrimary(t *testing.T) {
	units := []HeaderDataUnit{
		{Extension: true, Dimensions: Dimensions{BitPix: eightBitInt}},
	}
	_, _, err := Classify(units)
	if _, ok := err.(*InvalidExtensionError); !ok {
		t.Fatalf("got %v (%T), want InvalidExtensionError", err, err)
	}
}

func TestClassifyPrimaryAndImage(t *testing.T) {
	units := []HeaderDataUnit{
		{Dimensions: Dimensions{BitPix: thirtyTwoBitFloat, Axes: []int{512, 256}}, MainData: make([]byte, 512*256*4)},
		{Extension: true, XType: "IMAGE", Dimensions: Dimensions{BitPix: eightBitInt, Axes: []int{10}}, MainData: make([]byte, 10)},
	}
	primary, extensions, err := Classify(units)
	if err != nil {
		t.Fatal(err)
	}
	if primary.Kind != KindPrimary {
		t.Errorf("got kind %v, want KindPrimary", primary.Kind)
	}
	if primary.Data.BitPix != BPFloat {
		t.Errorf("got bitpix %v, want BPFloat", primary.Data.BitPix)
	}
	if len(primary.Data.Axes) != 2 || primary.Data.Axes[0] != 256 || primary.Data.Axes[1] != 512 {
		t.Errorf("got axes %v, want column-major [256 512]", primary.Data.Axes)
	}
	if len(extensions) != 1 || extensions[0].Kind != KindImage {
		t.Fatalf("got extensions %+v", extensions)
	}
}

func TestClassifyBinTable(t *testing.T) {
	units := []HeaderDataUnit{
		{Dimensions: Dimensions{BitPix: eightBitInt, Axes: []int{1}}, MainData: []byte{0}},
		{Extension: true, XType: "BINTABLE", PCount: 4, Dimensions: Dimensions{BitPix: eightBitInt, Axes: []int{100, 5}}},
	}
	_, extensions, err := Classify(units)
	if err != nil {
		t.Fatal(err)
	}
	if extensions[0].Kind != KindBinTable || extensions[0].PCount != 4 {
		t.Errorf("got %+v", extensions[0])
	}
}

func TestClassifyUnrecognizedBitPix(t *testing.T) {
	units := []HeaderDataUnit{
		{Dimensions: Dimensions{BitPix: rawBitPix(7), Axes: []int{1}}},
	}
	_, _, err := Classify(units)
	if _, ok := err.(*FormatError); !ok {
		t.Fatalf("got %v (%T), want FormatError", err, err)
	}
}

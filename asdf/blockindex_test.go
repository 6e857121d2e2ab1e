package asdf

import (
	"testing"

	"github.com/skyfield-labs/corefmt/yamlevent"
)

func TestBlockIndexRoundTrip(t *testing.T) {
	offsets := []int64{0, 2880, 5760}
	sink := &yamlevent.SliceSink{}
	if err := EncodeBlockIndex(offsets, sink); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeBlockIndex(yamlevent.NewSliceSource(sink.Events))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != len(offsets) {
		t.Fatalf("got %v, want %v", got, offsets)
	}
	for i := range offsets {
		if got[i] != offsets[i] {
			t.Errorf("offset %d: got %d, want %d", i, got[i], offsets[i])
		}
	}
}

func TestBlockIndexEmpty(t *testing.T) {
	sink := &yamlevent.SliceSink{}
	if err := EncodeBlockIndex(nil, sink); err != nil {
		t.Fatal(err)
	}
	got, err := DecodeBlockIndex(yamlevent.NewSliceSource(sink.Events))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

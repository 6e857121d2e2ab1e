package ir

import (
	"reflect"
	"testing"
)

func TestIsFragmentRef(t *testing.T) {
	if !IsFragmentRef("#/foo/bar") {
		t.Error("expected #/foo/bar to be a fragment ref")
	}
	if IsFragmentRef("other.asdf#/x") {
		t.Error("did not expect other.asdf#/x to be a fragment ref")
	}
}

func TestParsePointerSegments(t *testing.T) {
	p := ParsePointer("#/foo/bar")
	if got, want := p.Segments(), []string{"foo", "bar"}; !reflect.DeepEqual(got, want) {
		t.Errorf("segments = %v, want %v", got, want)
	}
	root := ParsePointer("#")
	if len(root.Segments()) != 0 {
		t.Errorf("root pointer should have no segments, got %v", root.Segments())
	}
}

func TestParsePointerEscaping(t *testing.T) {
	p := ParsePointer("#/a~1b/c~0d")
	want := []string{"a/b", "c~d"}
	if got := p.Segments(); !reflect.DeepEqual(got, want) {
		t.Errorf("segments = %v, want %v", got, want)
	}
}

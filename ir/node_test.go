package ir

import "testing"

func TestValueGetFirstMatchWins(t *testing.T) {
	obj := Object(
		Entry{Key: "x", Value: Untagged(Int64(1))},
		Entry{Key: "x", Value: Untagged(Int64(2))},
	)
	got, ok := obj.Get("x")
	if !ok {
		t.Fatal("expected x to be found")
	}
	if got.Value.Integer().Int64() != 1 {
		t.Errorf("Get(\"x\") = %v, want first entry (1)", got.Value.Integer())
	}
	if len(obj.Object()) != 2 {
		t.Errorf("expected both duplicate entries retained, got %d", len(obj.Object()))
	}
}

func TestNodeIsComplex(t *testing.T) {
	complexCases := []Node{
		Untagged(Array()),
		Untagged(Object()),
		Untagged(NDArray(NDArrayData{})),
	}
	for _, n := range complexCases {
		if !n.IsComplex() {
			t.Errorf("%v should be complex", n.Value.Kind())
		}
	}
	scalarCases := []Node{
		Untagged(Null()), Untagged(Bool(true)), Untagged(Int64(1)),
		Untagged(Number(1.5)), Untagged(String("s")),
		Untagged(InternalRef(ParsePointer("#/a"))), Untagged(ExternalRef("x.asdf")),
	}
	for _, n := range scalarCases {
		if n.IsComplex() {
			t.Errorf("%v should not be complex", n.Value.Kind())
		}
	}
}

func TestNodeEqual(t *testing.T) {
	a := NewNode(NewTag("core/ndarray-1.0.0"), Object(
		Entry{Key: "a", Value: Untagged(Int64(1))},
		Entry{Key: "b", Value: Untagged(String("x"))},
	))
	b := NewNode(NewTag("core/ndarray-1.0.0"), Object(
		Entry{Key: "a", Value: Untagged(Int64(1))},
		Entry{Key: "b", Value: Untagged(String("x"))},
	))
	if !a.Equal(b) {
		t.Fatal("expected equal nodes to compare equal")
	}
	c := NewNode(NewTag("core/ndarray-1.0.0"), Object(
		Entry{Key: "b", Value: Untagged(String("x"))},
		Entry{Key: "a", Value: Untagged(Int64(1))},
	))
	if a.Equal(c) {
		t.Fatal("Equal should be order-sensitive")
	}
	if !EqualUnordered(a, c) {
		t.Fatal("EqualUnordered should ignore object entry order")
	}
}

func TestEqualUnorderedArraysStayOrdered(t *testing.T) {
	a := Untagged(Array(Untagged(Int64(1)), Untagged(Int64(2))))
	b := Untagged(Array(Untagged(Int64(2)), Untagged(Int64(1))))
	if EqualUnordered(a, b) {
		t.Fatal("array element order must still matter under EqualUnordered")
	}
}

package asdf

import (
	"math/big"
	"testing"

	"github.com/skyfield-labs/corefmt/ir"
	"github.com/skyfield-labs/corefmt/yamlevent"
)

func TestDispatchUntaggedOrder(t *testing.T) {
	cases := []struct {
		in   string
		want ir.Kind
	}{
		{"123", ir.KindInteger},
		{"1.5", ir.KindNumber},
		{"true", ir.KindBool},
		{"false", ir.KindBool},
		{"abc", ir.KindString},
		{"", ir.KindString},
	}
	for _, c := range cases {
		n, err := dispatchUntagged([]byte(c.in))
		if err != nil {
			t.Fatalf("dispatchUntagged(%q): %v", c.in, err)
		}
		if n.Value.Kind() != c.want {
			t.Errorf("dispatchUntagged(%q) = %v, want %v", c.in, n.Value.Kind(), c.want)
		}
	}
}

func TestDispatchUntaggedIntegerValue(t *testing.T) {
	n, err := dispatchUntagged([]byte("123"))
	if err != nil {
		t.Fatal(err)
	}
	want := big.NewInt(123)
	if n.Value.Integer().Cmp(want) != 0 {
		t.Errorf("got %v, want %v", n.Value.Integer(), want)
	}
}

func TestDispatchScalarTagged(t *testing.T) {
	cases := []struct {
		name string
		tag  yamlevent.Tag
		in   string
		want ir.Kind
	}{
		{"str", yamlevent.StrTagValue(), "123", ir.KindString},
		{"int", yamlevent.IntTagValue(), "123", ir.KindInteger},
		{"float", yamlevent.FloatTagValue(), "1.5", ir.KindNumber},
		{"bool", yamlevent.BoolTagValue(), "true", ir.KindBool},
		{"null", yamlevent.NullTagValue(), "", ir.KindNull},
	}
	for _, c := range cases {
		n, err := dispatchScalar([]byte(c.in), c.tag)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if n.Value.Kind() != c.want {
			t.Errorf("%s: got %v, want %v", c.name, n.Value.Kind(), c.want)
		}
	}
}

func TestDispatchScalarInvalidInt(t *testing.T) {
	_, err := dispatchScalar([]byte("not-an-int"), yamlevent.IntTagValue())
	if _, ok := err.(*InvalidScalarError); !ok {
		t.Fatalf("got %v (%T), want *InvalidScalarError", err, err)
	}
}

func TestDispatchScalarInvalidBool(t *testing.T) {
	_, err := dispatchScalar([]byte("yes"), yamlevent.BoolTagValue())
	if _, ok := err.(*InvalidScalarError); !ok {
		t.Fatalf("got %v (%T), want *InvalidScalarError", err, err)
	}
}

func TestDispatchScalarUriTagAttachesTag(t *testing.T) {
	n, err := dispatchScalar([]byte("42"), yamlevent.UriTagValue("tag:stsci.edu:asdf/core/complex-1.0.0"))
	if err != nil {
		t.Fatal(err)
	}
	if n.Tag != ir.NewTag("tag:stsci.edu:asdf/core/complex-1.0.0") {
		t.Errorf("got tag %q", n.Tag)
	}
	if n.Value.Kind() != ir.KindInteger {
		t.Errorf("got kind %v, want Integer", n.Value.Kind())
	}
}

func TestDispatchScalarUnknownTagKind(t *testing.T) {
	_, err := dispatchScalar([]byte("x"), yamlevent.Tag{Kind: yamlevent.TagKind(99)})
	if _, ok := err.(*InvalidScalarTagError); !ok {
		t.Fatalf("got %v (%T), want *InvalidScalarTagError", err, err)
	}
}

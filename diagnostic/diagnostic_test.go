package diagnostic

import (
	"bytes"
	"strings"
	"testing"

	"github.com/skyfield-labs/corefmt/ir"
)

func TestDumpScalars(t *testing.T) {
	var buf bytes.Buffer
	root := ir.Untagged(ir.Object(
		ir.Entry{Key: "x", Value: ir.Untagged(ir.Int64(7))},
		ir.Entry{Key: "name", Value: ir.Untagged(ir.String("m31"))},
	))
	Dump(&buf, root, PaletteFor(&buf))
	out := buf.String()
	for _, want := range []string{"x:", "7", `"m31"`} {
		if !strings.Contains(out, want) {
			t.Errorf("dump output missing %q:\n%s", want, out)
		}
	}
}

func TestDumpNDArraySummary(t *testing.T) {
	var buf bytes.Buffer
	root := ir.NewNode(ir.NDArrayTag, ir.NDArray(ir.NDArrayData{
		Bytes:     []byte{0, 0, 0, 1},
		DataType:  ir.DataType{Kind: ir.Int32},
		ByteOrder: ir.BigEndian,
		Shape:     ir.Shape{1},
	}))
	Dump(&buf, root, PaletteFor(&buf))
	if !strings.Contains(buf.String(), "<ndarray int32 big [1]>") {
		t.Errorf("dump output missing ndarray summary:\n%s", buf.String())
	}
}

func TestPaletteForNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := PaletteFor(&buf)
	if got := p.String("plain"); got != "plain" {
		t.Errorf("non-terminal palette colored output: %q", got)
	}
}

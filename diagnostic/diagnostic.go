// Package diagnostic is a colorized tree pretty-printer for ir.Node: a
// per-role palette of github.com/fatih/color sprint functions,
// auto-disabled on non-TTY output via github.com/mattn/go-isatty.
package diagnostic

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/skyfield-labs/corefmt/ir"
)

// Palette is the set of sprint functions used for each structural role in
// the tree dump. A nil entry falls back to the uncolored identity.
type Palette struct {
	Tag    func(string, ...any) string
	Key    func(string, ...any) string
	String func(string, ...any) string
	Number func(string, ...any) string
	Bool   func(string, ...any) string
	Null   func(string, ...any) string
	Ref    func(string, ...any) string
}

// DefaultPalette assigns one hue per structural role: tags blue-grey,
// keys orange, strings green, numbers cyan.
func DefaultPalette() *Palette {
	return &Palette{
		Tag:    color.RGB(74, 92, 138).SprintfFunc(),
		Key:    color.RGB(196, 96, 16).SprintfFunc(),
		String: color.RGB(8, 196, 16).SprintfFunc(),
		Number: color.RGB(128, 216, 236).SprintfFunc(),
		Bool:   color.CyanString,
		Null:   color.RGB(168, 0, 196).SprintfFunc(),
		Ref:    color.RGB(255, 0, 196).SprintfFunc(),
	}
}

func identity(s string, _ ...any) string { return s }

func plainPalette() *Palette {
	return &Palette{Tag: identity, Key: identity, String: identity, Number: identity, Bool: identity, Null: identity, Ref: identity}
}

// PaletteFor returns DefaultPalette when w is a terminal, or an uncolored
// palette otherwise.
func PaletteFor(w io.Writer) *Palette {
	f, ok := w.(*os.File)
	if ok && isatty.IsTerminal(f.Fd()) {
		return DefaultPalette()
	}
	return plainPalette()
}

// Dump writes an indented, colorized rendering of n to w.
func Dump(w io.Writer, n ir.Node, p *Palette) {
	q := *p
	for _, f := range []*func(string, ...any) string{&q.Tag, &q.Key, &q.String, &q.Number, &q.Bool, &q.Null, &q.Ref} {
		if *f == nil {
			*f = identity
		}
	}
	dump(w, n, &q, 0)
}

func dump(w io.Writer, n ir.Node, p *Palette, depth int) {
	indent := strings.Repeat("  ", depth)
	tagStr := ""
	if !n.Tag.IsZero() {
		tagStr = p.Tag("!%s ", n.Tag.String())
	}
	switch n.Value.Kind() {
	case ir.KindNull:
		fmt.Fprintf(w, "%s%s%s\n", indent, tagStr, p.Null("~"))
	case ir.KindBool:
		fmt.Fprintf(w, "%s%s%s\n", indent, tagStr, p.Bool(fmt.Sprint(n.Value.Bool())))
	case ir.KindInteger:
		fmt.Fprintf(w, "%s%s%s\n", indent, tagStr, p.Number(n.Value.Integer().String()))
	case ir.KindNumber:
		fmt.Fprintf(w, "%s%s%s\n", indent, tagStr, p.Number(fmt.Sprint(n.Value.Number())))
	case ir.KindString:
		fmt.Fprintf(w, "%s%s%s\n", indent, tagStr, p.String(fmt.Sprintf("%q", n.Value.String())))
	case ir.KindArray:
		fmt.Fprintf(w, "%s%s[\n", indent, tagStr)
		for _, e := range n.Value.Array() {
			dump(w, e, p, depth+1)
		}
		fmt.Fprintf(w, "%s]\n", indent)
	case ir.KindObject:
		fmt.Fprintf(w, "%s%s{\n", indent, tagStr)
		for _, e := range n.Value.Object() {
			fmt.Fprintf(w, "%s  %s:\n", indent, p.Key(e.Key))
			dump(w, e.Value, p, depth+2)
		}
		fmt.Fprintf(w, "%s}\n", indent)
	case ir.KindNDArray:
		data := n.Value.NDArray()
		fmt.Fprintf(w, "%s%s<ndarray %s %s %v>\n", indent, tagStr, data.DataType, data.ByteOrder, data.Shape)
	case ir.KindInternalRef:
		fmt.Fprintf(w, "%s%s%s\n", indent, tagStr, p.Ref("$ref "+n.Value.InternalRef().String()))
	case ir.KindExternalRef:
		fmt.Fprintf(w, "%s%s%s\n", indent, tagStr, p.Ref("$ref "+n.Value.ExternalRef()))
	}
}

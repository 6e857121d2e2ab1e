package lspsrv

import (
	"context"
	"fmt"
	"strings"

	"go.lsp.dev/protocol"

	"github.com/skyfield-labs/corefmt/arraycodec"
	"github.com/skyfield-labs/corefmt/asdf"
	"github.com/skyfield-labs/corefmt/asdfio"
	"github.com/skyfield-labs/corefmt/ir"
)

func (s *Server) DidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) error {
	s.index(string(params.TextDocument.URI), params.TextDocument.Text)
	return nil
}

func (s *Server) DidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	s.index(string(params.TextDocument.URI), params.ContentChanges[len(params.ContentChanges)-1].Text)
	return nil
}

func (s *Server) DidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) error {
	return nil
}

// index parses text as an ASDF tree document (best-effort: a parse
// failure just means Hover has nothing to report, not a protocol error).
func (s *Server) index(uri, text string) {
	doc := &document{text: text}
	src, err := asdfio.ParseSource([]byte(text))
	if err == nil {
		store := ir.NewBlockStore()
		if tree, err := asdf.SinkTree(src, store); err == nil {
			root := ir.Untagged(ir.Object(tree...))
			doc.root = &root
		}
	}
	s.docs.set(uri, doc)
}

func (s *Server) Hover(ctx context.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := s.docs.get(string(params.TextDocument.URI))
	if doc == nil || doc.root == nil {
		return nil, nil
	}
	pos := params.Position
	n, path := findNodeAtLine(*doc.root, "#", doc.text, int(pos.Line))
	if n == nil {
		return nil, nil
	}
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: hoverText(*n, path),
		},
	}, nil
}

// findNodeAtLine approximates a position-to-node lookup by matching the
// requested line's leading key against the mapping keys a depth-first walk
// encounters: decoded nodes are immutable and carry no source positions,
// so hover is best-effort, not exact.
func findNodeAtLine(n ir.Node, path string, text string, line int) (*ir.Node, string) {
	lines := strings.Split(text, "\n")
	if line < 0 || line >= len(lines) {
		return nil, ""
	}
	target := strings.TrimSpace(lines[line])
	var best *ir.Node
	var bestPath string
	var walk func(n ir.Node, path string)
	walk = func(n ir.Node, path string) {
		switch n.Value.Kind() {
		case ir.KindObject:
			for _, e := range n.Value.Object() {
				if strings.HasPrefix(target, e.Key+":") {
					v := e.Value
					best = &v
					bestPath = path + "/" + e.Key
				}
				walk(e.Value, path+"/"+e.Key)
			}
		case ir.KindArray:
			for i, e := range n.Value.Array() {
				walk(e, fmt.Sprintf("%s/%d", path, i))
			}
		}
	}
	walk(n, path)
	return best, bestPath
}

func hoverText(n ir.Node, path string) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("**Path:** `%s`", path))
	if !n.Tag.IsZero() {
		parts = append(parts, fmt.Sprintf("**Tag:** `%s`", n.Tag.String()))
	}
	parts = append(parts, fmt.Sprintf("**Kind:** %s", n.Value.Kind()))
	if n.Value.Kind() == ir.KindNDArray {
		data := n.Value.NDArray()
		parts = append(parts, fmt.Sprintf("**Array:** `%s` shape `%v` (%s-endian, %d bytes)",
			data.DataType, data.Shape, data.ByteOrder, len(data.Bytes)))
		if _, err := arraycodec.DecodeArray(data.ByteOrder, data.Shape, data.DataType, data.Bytes); err != nil {
			parts = append(parts, fmt.Sprintf("_decode error: %v_", err))
		}
	}
	return strings.Join(parts, "\n\n")
}

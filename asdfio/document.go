package asdfio

import (
	"bytes"
	"fmt"
	"io"

	"github.com/skyfield-labs/corefmt/asdf"
	"github.com/skyfield-labs/corefmt/ir"
)

const (
	asdfHeader        = "#ASDF 1.0.0\n#ASDF_STANDARD 1.5.0\n"
	blockIndexComment = "#ASDF BLOCK INDEX\n"
	documentEnd       = "...\n"
)

// WriteDocument serializes root as a complete on-disk ASDF file: the
// header comment lines, the YAML tree document, the raw binary blocks in
// tree order, and, when any blocks were written, the trailing block-index
// document with their byte offsets.
func WriteDocument(w io.Writer, root ir.Node) error {
	store := ir.NewBlockStore()
	sink := NewSink()
	if err := asdf.Encode(root, sink, store); err != nil {
		return err
	}
	tree, err := sink.Bytes()
	if err != nil {
		return err
	}

	cw := &countingWriter{w: w}
	if _, err := io.WriteString(cw, asdfHeader); err != nil {
		return err
	}
	if _, err := cw.Write(tree); err != nil {
		return err
	}
	if _, err := io.WriteString(cw, documentEnd); err != nil {
		return err
	}

	offsets := make([]int64, 0, store.Len())
	for _, b := range store.Blocks() {
		offsets = append(offsets, cw.n)
		if err := asdf.WriteBlock(cw, b); err != nil {
			return err
		}
	}
	if len(offsets) == 0 {
		return nil
	}

	indexSink := NewSink()
	if err := asdf.EncodeBlockIndex(offsets, indexSink); err != nil {
		return err
	}
	index, err := indexSink.Bytes()
	if err != nil {
		return err
	}
	if _, err := io.WriteString(cw, blockIndexComment); err != nil {
		return err
	}
	if _, err := cw.Write(index); err != nil {
		return err
	}
	_, err = io.WriteString(cw, documentEnd)
	return err
}

// ReadDocument parses a complete on-disk ASDF file back into its tree and
// block store. The binary blocks are read before the tree so ndarray
// source indices resolve during tree parsing; a trailing block index, if
// present, is decoded and checked against the blocks actually read.
func ReadDocument(r io.Reader) (ir.Node, *ir.BlockStore, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return ir.Node{}, nil, err
	}

	treePart := data
	rest := []byte(nil)
	if cut := bytes.Index(data, asdf.BlockMagic[:]); cut >= 0 {
		treePart, rest = data[:cut], data[cut:]
	}

	var blocks [][]byte
	br := bytes.NewReader(rest)
	for {
		remaining := rest[len(rest)-br.Len():]
		if !bytes.HasPrefix(remaining, asdf.BlockMagic[:]) {
			break
		}
		b, err := asdf.ReadBlock(br)
		if err != nil {
			return ir.Node{}, nil, err
		}
		blocks = append(blocks, b)
	}
	store := ir.NewBlockStoreFrom(blocks)

	if trailer := rest[len(rest)-br.Len():]; bytes.Contains(trailer, []byte(blockIndexComment)) {
		if err := checkBlockIndex(trailer, len(blocks)); err != nil {
			return ir.Node{}, nil, err
		}
	}

	src, err := ParseSource(treePart)
	if err != nil {
		return ir.Node{}, nil, err
	}
	tree, err := asdf.SinkTree(src, store)
	if err != nil {
		return ir.Node{}, nil, err
	}
	return ir.Untagged(ir.Object(tree...)), store, nil
}

func checkBlockIndex(trailer []byte, blockCount int) error {
	at := bytes.Index(trailer, []byte(blockIndexComment))
	src, err := ParseSource(trailer[at+len(blockIndexComment):])
	if err != nil {
		return fmt.Errorf("asdfio: block index: %w", err)
	}
	offsets, err := asdf.DecodeBlockIndex(src)
	if err != nil {
		return fmt.Errorf("asdfio: block index: %w", err)
	}
	if len(offsets) != blockCount {
		return fmt.Errorf("asdfio: block index lists %d blocks, file has %d", len(offsets), blockCount)
	}
	return nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

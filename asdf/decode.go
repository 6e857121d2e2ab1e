package asdf

import (
	"github.com/skyfield-labs/corefmt/ir"
	"github.com/skyfield-labs/corefmt/yamlevent"
)

// Source is the event stream the decoder pulls from. It is exactly
// yamlevent.Source, restated here so callers of this package don't need to
// import yamlevent for the common case.
type Source = yamlevent.Source

// Tree is the ordered set of top-level entries sinkTree hands back.
type Tree []ir.Entry

// SinkTree is the top-level decode entry point: it expects
// StreamStart, DocumentStart, parses exactly one Node which must be an
// Object, then drains DocumentEnd and StreamEnd. It returns the object's
// entries as a Tree.
func SinkTree(src Source, store *ir.BlockStore) (Tree, error) {
	if err := expect(src, yamlevent.StreamStart, "StreamStart"); err != nil {
		return nil, err
	}
	if err := expect(src, yamlevent.DocumentStart, "DocumentStart"); err != nil {
		return nil, err
	}
	node, err := parseNode(src, store)
	if err != nil {
		return nil, err
	}
	if node.Value.Kind() != ir.KindObject {
		return nil, &InvalidTreeError{Reason: "top-level node must be an Object", Value: node.Value.Kind()}
	}
	if err := expect(src, yamlevent.DocumentEnd, "DocumentEnd"); err != nil {
		return nil, err
	}
	if err := expect(src, yamlevent.StreamEnd, "StreamEnd"); err != nil {
		return nil, err
	}
	return Tree(node.Value.Object()), nil
}

func expect(src Source, kind yamlevent.Kind, desc string) error {
	ev, err := src.Next()
	if err != nil {
		return ErrNoInput
	}
	if ev.Kind != kind {
		return &ExpectedEventError{Description: desc, Actual: ev.Kind.String()}
	}
	return nil
}

// parseNode dispatches on the next event: scalars go to the tag
// dispatcher, containers recurse.
func parseNode(src Source, store *ir.BlockStore) (ir.Node, error) {
	ev, err := src.Next()
	if err != nil {
		return ir.Node{}, ErrNoInput
	}
	switch ev.Kind {
	case yamlevent.Scalar:
		return dispatchScalar(ev.Bytes, ev.Tag)
	case yamlevent.MappingStart:
		tag := resolveTag(ev.Tag)
		entries, err := sinkWhile(src, notKind(yamlevent.MappingEnd), parseEntry(store))
		if err != nil {
			return ir.Node{}, err
		}
		return resolveMapping(tag, entries, store)
	case yamlevent.SequenceStart:
		tag := resolveTag(ev.Tag)
		elems, err := sinkWhile(src, notKind(yamlevent.SequenceEnd), parseElement(store))
		if err != nil {
			return ir.Node{}, err
		}
		return ir.NewNode(tag, ir.Array(elems...)), nil
	default:
		return ir.Node{}, &ExpectedEventError{Description: "Scalar, MappingStart, or SequenceStart", Actual: ev.Kind.String()}
	}
}

func resolveTag(t yamlevent.Tag) ir.Tag {
	if t.Kind != yamlevent.UriTag {
		return ""
	}
	return ir.NewTag(t.URI)
}

func notKind(k yamlevent.Kind) func(yamlevent.Event) bool {
	return func(ev yamlevent.Event) bool { return ev.Kind != k }
}

func parseElement(store *ir.BlockStore) func(Source) (ir.Node, error) {
	return func(src Source) (ir.Node, error) {
		return parseNode(src, store)
	}
}

func parseEntry(store *ir.BlockStore) func(Source) (ir.Entry, error) {
	return func(src Source) (ir.Entry, error) {
		keyEv, err := src.Next()
		if err != nil {
			return ir.Entry{}, ErrNoInput
		}
		if keyEv.Kind != yamlevent.Scalar {
			return ir.Entry{}, &ExpectedEventError{Description: "Scalar (mapping key)", Actual: keyEv.Kind.String()}
		}
		val, err := parseNode(src, store)
		if err != nil {
			return ir.Entry{}, err
		}
		return ir.Entry{Key: string(keyEv.Bytes), Value: val}, nil
	}
}

// sinkWhile is the consumer's core primitive: while the
// next event satisfies pred, run parse and collect its result; the first
// event that fails pred is consumed (dropped) as the terminator and
// collection stops. The terminator is consumed exactly once, so nested
// containers never leak events to their parent.
func sinkWhile[T any](src Source, pred func(yamlevent.Event) bool, parse func(Source) (T, error)) ([]T, error) {
	var out []T
	for {
		ev, err := src.Peek()
		if err != nil {
			return nil, ErrNoInput
		}
		if !pred(ev) {
			if _, err := src.Next(); err != nil {
				return nil, ErrNoInput
			}
			return out, nil
		}
		v, err := parse(src)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

// resolveMapping tries the in-band recognizers as ordered alternatives:
// NDArray first (gated by the tag), then $ref, then the mapping falls back
// to a generic Object unchanged. A recognizer that does not apply is
// silent; one that applies but malforms is a hard error.
func resolveMapping(tag ir.Tag, entries []ir.Entry, store *ir.BlockStore) (ir.Node, error) {
	if tag.IsNDArrayTag() {
		data, err := extractNDArray(entries, store)
		if err != nil {
			return ir.Node{}, err
		}
		return ir.NewNode(tag, ir.NDArray(data)), nil
	}
	if refNode, ok := findEntry(entries, "$ref"); ok {
		if refNode.Value.Kind() != ir.KindString {
			return ir.Node{}, &InvalidReferenceError{Value: refNode.Value}
		}
		s := refNode.Value.String()
		if ir.IsFragmentRef(s) {
			return ir.NewNode(tag, ir.InternalRef(ir.ParsePointer(s))), nil
		}
		return ir.NewNode(tag, ir.ExternalRef(s)), nil
	}
	return ir.NewNode(tag, ir.Object(entries...)), nil
}

func findEntry(entries []ir.Entry, key string) (ir.Node, bool) {
	for _, e := range entries {
		if e.Key == key {
			return e.Value, true
		}
	}
	return ir.Node{}, false
}

// extractNDArray decodes the source/datatype/byteorder/shape entries of a
// tagged ndarray mapping, resolving source against the block store.
func extractNDArray(entries []ir.Entry, store *ir.BlockStore) (ir.NDArrayData, error) {
	sourceNode, ok := findEntry(entries, "source")
	if !ok {
		return ir.NDArrayData{}, &NDArrayMissingKeyError{Name: "source"}
	}
	datatypeNode, ok := findEntry(entries, "datatype")
	if !ok {
		return ir.NDArrayData{}, &NDArrayMissingKeyError{Name: "datatype"}
	}
	byteorderNode, ok := findEntry(entries, "byteorder")
	if !ok {
		return ir.NDArrayData{}, &NDArrayMissingKeyError{Name: "byteorder"}
	}
	shapeNode, ok := findEntry(entries, "shape")
	if !ok {
		return ir.NDArrayData{}, &NDArrayMissingKeyError{Name: "shape"}
	}

	if sourceNode.Value.Kind() != ir.KindInteger {
		return ir.NDArrayData{}, &NDArrayExpectedError{Field: "Source", Value: sourceNode.Value}
	}
	index := int(sourceNode.Value.Integer().Int64())
	bytes, err := store.Get(index)
	if err != nil {
		return ir.NDArrayData{}, &NDArrayMissingBlockError{Index: index}
	}

	if datatypeNode.Value.Kind() != ir.KindString {
		return ir.NDArrayData{}, &NDArrayExpectedError{Field: "DataType", Value: datatypeNode.Value}
	}
	dt, err := ir.ParseDataType(datatypeNode.Value.String())
	if err != nil {
		return ir.NDArrayData{}, &NDArrayExpectedError{Field: "DataType", Value: datatypeNode.Value.String()}
	}

	if byteorderNode.Value.Kind() != ir.KindString {
		return ir.NDArrayData{}, &NDArrayExpectedError{Field: "ByteOrder", Value: byteorderNode.Value}
	}
	bo, err := ir.ParseByteOrder(byteorderNode.Value.String())
	if err != nil {
		return ir.NDArrayData{}, &NDArrayExpectedError{Field: "ByteOrder", Value: byteorderNode.Value.String()}
	}

	if shapeNode.Value.Kind() != ir.KindArray {
		return ir.NDArrayData{}, &NDArrayExpectedError{Field: "Shape", Value: shapeNode.Value}
	}
	shape := make(ir.Shape, 0, len(shapeNode.Value.Array()))
	for _, elem := range shapeNode.Value.Array() {
		if elem.Value.Kind() != ir.KindInteger {
			return ir.NDArrayData{}, &NDArrayExpectedError{Field: "Shape", Value: shapeNode.Value}
		}
		shape = append(shape, int(elem.Value.Integer().Int64()))
	}

	return ir.NDArrayData{Bytes: bytes, DataType: dt, ByteOrder: bo, Shape: shape}, nil
}

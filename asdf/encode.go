package asdf

import (
	"strconv"

	"github.com/skyfield-labs/corefmt/ir"
	"github.com/skyfield-labs/corefmt/yamlevent"
)

// Encode walks a Node tree depth-first and emits the corresponding event
// stream to sink, appending any ndarray payloads it encounters to store.
func Encode(root ir.Node, sink yamlevent.Sink, store *ir.BlockStore) error {
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.StreamStart}); err != nil {
		return err
	}
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.DocumentStart}); err != nil {
		return err
	}
	if err := emitNode(root, sink, store); err != nil {
		return err
	}
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.DocumentEnd}); err != nil {
		return err
	}
	return sink.Emit(yamlevent.Event{Kind: yamlevent.StreamEnd})
}

func emitTag(tag ir.Tag) yamlevent.Tag {
	if tag.IsZero() {
		return yamlevent.NoTagValue()
	}
	return yamlevent.UriTagValue(tag.String())
}

func emitNode(node ir.Node, sink yamlevent.Sink, store *ir.BlockStore) error {
	v := node.Value
	switch v.Kind() {
	case ir.KindNull:
		return emitScalar(node.Tag, []byte("~"), yamlevent.Plain, sink)
	case ir.KindBool:
		s := "false"
		if v.Bool() {
			s = "true"
		}
		return emitScalar(node.Tag, []byte(s), yamlevent.Plain, sink)
	case ir.KindInteger:
		return emitScalar(node.Tag, []byte(v.Integer().String()), yamlevent.Plain, sink)
	case ir.KindNumber:
		return emitScalar(node.Tag, []byte(strconv.FormatFloat(v.Number(), 'g', -1, 64)), yamlevent.Plain, sink)
	case ir.KindString:
		s := v.String()
		if s == "" {
			return emitScalar(node.Tag, nil, yamlevent.SingleQuoted, sink)
		}
		return emitScalar(node.Tag, []byte(s), yamlevent.Plain, sink)
	case ir.KindArray:
		return emitSequence(node.Tag, v.Array(), sink, store)
	case ir.KindObject:
		return emitMapping(node.Tag, v.Object(), sink, store)
	case ir.KindNDArray:
		return emitNDArray(node.Tag, v.NDArray(), sink, store)
	case ir.KindInternalRef:
		entries := []ir.Entry{{Key: "$ref", Value: ir.Untagged(ir.String(v.InternalRef().String()))}}
		return emitMapping(node.Tag, entries, sink, store)
	case ir.KindExternalRef:
		entries := []ir.Entry{{Key: "$ref", Value: ir.Untagged(ir.String(v.ExternalRef()))}}
		return emitMapping(node.Tag, entries, sink, store)
	default:
		return &InvalidTreeError{Reason: "unencodable value kind", Value: v.Kind()}
	}
}

func emitScalar(tag ir.Tag, bytes []byte, style yamlevent.Style, sink yamlevent.Sink) error {
	return sink.Emit(yamlevent.Event{
		Kind:  yamlevent.Scalar,
		Bytes: bytes,
		Style: style,
		Tag:   emitTag(tag),
	})
}

// collStyle picks Block when any child is itself a container, Flow
// otherwise.
func collStyle(anyComplex bool) yamlevent.CollectionStyle {
	if anyComplex {
		return yamlevent.Block
	}
	return yamlevent.Flow
}

func emitSequence(tag ir.Tag, elems []ir.Node, sink yamlevent.Sink, store *ir.BlockStore) error {
	anyComplex := false
	for _, e := range elems {
		if e.Value.IsComplex() {
			anyComplex = true
			break
		}
	}
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.SequenceStart, CollStyle: collStyle(anyComplex), Tag: emitTag(tag)}); err != nil {
		return err
	}
	for _, e := range elems {
		if err := emitNode(e, sink, store); err != nil {
			return err
		}
	}
	return sink.Emit(yamlevent.Event{Kind: yamlevent.SequenceEnd})
}

func emitMapping(tag ir.Tag, entries []ir.Entry, sink yamlevent.Sink, store *ir.BlockStore) error {
	anyComplex := false
	for _, e := range entries {
		if e.Value.Value.IsComplex() {
			anyComplex = true
			break
		}
	}
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.MappingStart, CollStyle: collStyle(anyComplex), Tag: emitTag(tag)}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := emitScalar(ir.Tag(""), []byte(e.Key), yamlevent.Plain, sink); err != nil {
			return err
		}
		if err := emitNode(e.Value, sink, store); err != nil {
			return err
		}
	}
	return sink.Emit(yamlevent.Event{Kind: yamlevent.MappingEnd})
}

// emitNDArray appends the payload to store and emits the four-key flow
// mapping an ndarray serializes to: source, datatype, shape, byteorder, in
// that order. The mapping is always flow-style, and an absent tag falls
// back to the canonical ndarray tag so the mapping is recognizable on
// decode.
func emitNDArray(tag ir.Tag, data ir.NDArrayData, sink yamlevent.Sink, store *ir.BlockStore) error {
	index := store.Append(data.Bytes)
	if tag.IsZero() {
		tag = ir.NDArrayTag
	}
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.MappingStart, CollStyle: yamlevent.Flow, Tag: emitTag(tag)}); err != nil {
		return err
	}
	if err := emitEntryKey("source", sink); err != nil {
		return err
	}
	if err := emitScalar("", []byte(strconv.Itoa(index)), yamlevent.Plain, sink); err != nil {
		return err
	}
	if err := emitEntryKey("datatype", sink); err != nil {
		return err
	}
	if err := emitScalar("", []byte(data.DataType.String()), yamlevent.Plain, sink); err != nil {
		return err
	}
	if err := emitEntryKey("shape", sink); err != nil {
		return err
	}
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.SequenceStart, CollStyle: yamlevent.Flow}); err != nil {
		return err
	}
	for _, axis := range data.Shape {
		if err := emitScalar("", []byte(strconv.Itoa(axis)), yamlevent.Plain, sink); err != nil {
			return err
		}
	}
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.SequenceEnd}); err != nil {
		return err
	}
	if err := emitEntryKey("byteorder", sink); err != nil {
		return err
	}
	if err := emitScalar("", []byte(data.ByteOrder.String()), yamlevent.Plain, sink); err != nil {
		return err
	}
	return sink.Emit(yamlevent.Event{Kind: yamlevent.MappingEnd})
}

func emitEntryKey(key string, sink yamlevent.Sink) error {
	return emitScalar("", []byte(key), yamlevent.Plain, sink)
}

package asdf

import (
	"math/big"

	"github.com/skyfield-labs/corefmt/yamlevent"
)

// EncodeBlockIndex emits the trailing block-index document: a single YAML
// document containing a sequence of integer byte offsets, one per block,
// in block-store order.
func EncodeBlockIndex(offsets []int64, sink yamlevent.Sink) error {
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.StreamStart}); err != nil {
		return err
	}
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.DocumentStart}); err != nil {
		return err
	}
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.SequenceStart, CollStyle: yamlevent.Block}); err != nil {
		return err
	}
	for _, off := range offsets {
		if err := sink.Emit(yamlevent.Event{
			Kind:  yamlevent.Scalar,
			Bytes: []byte(big.NewInt(off).String()),
			Style: yamlevent.Plain,
		}); err != nil {
			return err
		}
	}
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.SequenceEnd}); err != nil {
		return err
	}
	if err := sink.Emit(yamlevent.Event{Kind: yamlevent.DocumentEnd}); err != nil {
		return err
	}
	return sink.Emit(yamlevent.Event{Kind: yamlevent.StreamEnd})
}

// DecodeBlockIndex parses the trailing block-index document back into its
// byte offsets.
func DecodeBlockIndex(src yamlevent.Source) ([]int64, error) {
	if err := expect(src, yamlevent.StreamStart, "StreamStart"); err != nil {
		return nil, err
	}
	if err := expect(src, yamlevent.DocumentStart, "DocumentStart"); err != nil {
		return nil, err
	}
	if err := expect(src, yamlevent.SequenceStart, "SequenceStart"); err != nil {
		return nil, err
	}
	offsets, err := sinkWhile(src, notKind(yamlevent.SequenceEnd), parseOffset)
	if err != nil {
		return nil, err
	}
	if err := expect(src, yamlevent.DocumentEnd, "DocumentEnd"); err != nil {
		return nil, err
	}
	if err := expect(src, yamlevent.StreamEnd, "StreamEnd"); err != nil {
		return nil, err
	}
	return offsets, nil
}

func parseOffset(src yamlevent.Source) (int64, error) {
	ev, err := src.Next()
	if err != nil {
		return 0, ErrNoInput
	}
	if ev.Kind != yamlevent.Scalar {
		return 0, &ExpectedEventError{Description: "Scalar (block offset)", Actual: ev.Kind.String()}
	}
	i, ok := new(big.Int).SetString(string(ev.Bytes), 10)
	if !ok {
		return 0, &InvalidScalarError{ExpectedType: "Int", Bytes: ev.Bytes}
	}
	return i.Int64(), nil
}

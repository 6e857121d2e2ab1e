package asdf

import (
	"math/big"
	"strconv"

	"github.com/skyfield-labs/corefmt/ir"
	"github.com/skyfield-labs/corefmt/yamlevent"
)

// dispatchScalar maps a (bytes, yaml-tag) pair to a typed Node. Built-in
// tags commit to their type; a URI tag attaches the schema tag and defers
// to the untagged disambiguator.
func dispatchScalar(bytes []byte, tag yamlevent.Tag) (ir.Node, error) {
	switch tag.Kind {
	case yamlevent.StrTag:
		return ir.Untagged(ir.String(string(bytes))), nil
	case yamlevent.IntTag:
		i, ok := parseInt(bytes)
		if !ok {
			return ir.Node{}, &InvalidScalarError{ExpectedType: "Int", Bytes: bytes}
		}
		return ir.Untagged(ir.Integer(i)), nil
	case yamlevent.FloatTag:
		f, ok := parseFloat(bytes)
		if !ok {
			return ir.Node{}, &InvalidScalarError{ExpectedType: "Float", Bytes: bytes}
		}
		return ir.Untagged(ir.Number(f)), nil
	case yamlevent.BoolTag:
		b, ok := parseBool(bytes)
		if !ok {
			return ir.Node{}, &InvalidScalarError{ExpectedType: "Bool", Bytes: bytes}
		}
		return ir.Untagged(ir.Bool(b)), nil
	case yamlevent.NullTag:
		return ir.Untagged(ir.Null()), nil
	case yamlevent.UriTag:
		n, err := dispatchUntagged(bytes)
		if err != nil {
			return ir.Node{}, err
		}
		n.Tag = ir.NewTag(tag.URI)
		return n, nil
	case yamlevent.NoTag:
		return dispatchUntagged(bytes)
	default:
		return ir.Node{}, &InvalidScalarTagError{Tag: tag.URI, Bytes: bytes}
	}
}

// dispatchUntagged runs the untagged disambiguator: try integer, then
// float, then bool, then string, the first success wins. The empty string
// never matches any of the numeric/bool forms and so always resolves to
// String.
func dispatchUntagged(bytes []byte) (ir.Node, error) {
	if i, ok := parseInt(bytes); ok {
		return ir.Untagged(ir.Integer(i)), nil
	}
	if f, ok := parseFloat(bytes); ok {
		return ir.Untagged(ir.Number(f)), nil
	}
	if b, ok := parseBool(bytes); ok {
		return ir.Untagged(ir.Bool(b)), nil
	}
	return ir.Untagged(ir.String(string(bytes))), nil
}

func parseInt(bytes []byte) (*big.Int, bool) {
	if len(bytes) == 0 {
		return nil, false
	}
	i, ok := new(big.Int).SetString(string(bytes), 10)
	return i, ok
}

func parseFloat(bytes []byte) (float64, bool) {
	if len(bytes) == 0 {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(bytes), 64)
	return f, err == nil
}

func parseBool(bytes []byte) (bool, bool) {
	switch string(bytes) {
	case "true":
		return true, true
	case "false":
		return false, true
	default:
		return false, false
	}
}

// Package patch applies RFC 6902 JSON Patch documents to a decoded
// ir.Node tree: the tree is projected to JSON, github.com/evanphx/json-patch
// does the mechanical application, and the result is projected back.
package patch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"sort"

	jsonpatch "github.com/evanphx/json-patch"

	"github.com/skyfield-labs/corefmt/ir"
)

// Apply decodes ops as an RFC 6902 JSON Patch document and applies it to
// doc's JSON projection, returning the reconstructed tree.
//
// NDArray, InternalRef, and ExternalRef nodes have no JSON projection and
// are rejected with an error rather than silently flattened, so a patch
// can never corrupt a document it doesn't understand.
func Apply(doc ir.Node, ops []byte) (ir.Node, error) {
	src, err := toJSON(doc)
	if err != nil {
		return ir.Node{}, err
	}
	p, err := jsonpatch.DecodePatch(ops)
	if err != nil {
		return ir.Node{}, fmt.Errorf("patch: decode: %w", err)
	}
	out, err := p.Apply(src)
	if err != nil {
		return ir.Node{}, fmt.Errorf("patch: apply: %w", err)
	}
	return fromJSON(out)
}

func toJSON(n ir.Node) ([]byte, error) {
	v, err := toAny(n)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}

func toAny(n ir.Node) (any, error) {
	switch n.Value.Kind() {
	case ir.KindNull:
		return nil, nil
	case ir.KindBool:
		return n.Value.Bool(), nil
	case ir.KindInteger:
		return json.Number(n.Value.Integer().String()), nil
	case ir.KindNumber:
		return n.Value.Number(), nil
	case ir.KindString:
		return n.Value.String(), nil
	case ir.KindArray:
		elems := n.Value.Array()
		out := make([]any, len(elems))
		for i, e := range elems {
			v, err := toAny(e)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case ir.KindObject:
		out := make(map[string]any, len(n.Value.Object()))
		for _, e := range n.Value.Object() {
			v, err := toAny(e.Value)
			if err != nil {
				return nil, err
			}
			out[e.Key] = v
		}
		return out, nil
	default:
		return nil, fmt.Errorf("patch: %s has no JSON projection", n.Value.Kind())
	}
}

func fromJSON(data []byte) (ir.Node, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return ir.Node{}, fmt.Errorf("patch: decode result: %w", err)
	}
	return fromAny(v)
}

func fromAny(v any) (ir.Node, error) {
	switch t := v.(type) {
	case nil:
		return ir.Untagged(ir.Null()), nil
	case bool:
		return ir.Untagged(ir.Bool(t)), nil
	case json.Number:
		if i, ok := new(big.Int).SetString(t.String(), 10); ok {
			return ir.Untagged(ir.Integer(i)), nil
		}
		f, err := t.Float64()
		if err != nil {
			return ir.Node{}, fmt.Errorf("patch: unparseable number %q", t.String())
		}
		return ir.Untagged(ir.Number(f)), nil
	case string:
		return ir.Untagged(ir.String(t)), nil
	case []any:
		nodes := make([]ir.Node, len(t))
		for i, e := range t {
			n, err := fromAny(e)
			if err != nil {
				return ir.Node{}, err
			}
			nodes[i] = n
		}
		return ir.Untagged(ir.Array(nodes...)), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		entries := make([]ir.Entry, len(keys))
		for i, k := range keys {
			n, err := fromAny(t[k])
			if err != nil {
				return ir.Node{}, err
			}
			entries[i] = ir.Entry{Key: k, Value: n}
		}
		return ir.Untagged(ir.Object(entries...)), nil
	default:
		return ir.Node{}, fmt.Errorf("patch: unrecognized JSON value %T", v)
	}
}

// Package query evaluates boolean github.com/expr-lang/expr expressions
// against an ir.Node tree to select matching nodes: the expression is
// compiled once and evaluated per visited node, turning expr-lang into a
// query predicate language over ir.Node.
package query

import (
	"fmt"
	"math/big"
	"strconv"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/skyfield-labs/corefmt/ir"
)

// Match is one node the predicate selected, with the JSON-pointer-style
// path (ir.Pointer's fragment syntax) it was found at.
type Match struct {
	Path string
	Node ir.Node
}

// Select compiles expression once and runs it against every node in root's
// tree (pre-order), collecting the nodes for which it evaluates true.
// The expression sees three variables: tag (string, "" if absent), kind
// (string, e.g. "String", "Object"), and value — the node's JSON-like
// projection (nil, bool, int, float, string, []any, or map[string]any;
// NDArray nodes project as nil since they have no scalar representation).
func Select(root ir.Node, expression string) ([]Match, error) {
	program, err := expr.Compile(expression, expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("query: compile: %w", err)
	}

	var matches []Match
	var walk func(path string, n ir.Node) error
	walk = func(path string, n ir.Node) error {
		env := map[string]any{
			"tag":   n.Tag.String(),
			"kind":  n.Value.Kind().String(),
			"value": projectValue(n.Value),
		}
		out, err := vm.Run(program, env)
		if err != nil {
			return fmt.Errorf("query: eval at %q: %w", path, err)
		}
		if b, ok := out.(bool); ok && b {
			matches = append(matches, Match{Path: path, Node: n})
		}
		switch n.Value.Kind() {
		case ir.KindArray:
			for i, e := range n.Value.Array() {
				if err := walk(path+"/"+strconv.Itoa(i), e); err != nil {
					return err
				}
			}
		case ir.KindObject:
			for _, e := range n.Value.Object() {
				if err := walk(path+"/"+escapeSegment(e.Key), e.Value); err != nil {
					return err
				}
			}
		}
		return nil
	}
	if err := walk("#", root); err != nil {
		return nil, err
	}
	return matches, nil
}

func escapeSegment(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '~':
			out = append(out, '~', '0')
		case '/':
			out = append(out, '~', '1')
		default:
			out = append(out, s[i])
		}
	}
	return string(out)
}

func projectValue(v ir.Value) any {
	switch v.Kind() {
	case ir.KindNull, ir.KindNDArray, ir.KindInternalRef, ir.KindExternalRef:
		return nil
	case ir.KindBool:
		return v.Bool()
	case ir.KindInteger:
		i := v.Integer()
		if i.IsInt64() {
			return i.Int64()
		}
		f, _ := new(big.Float).SetInt(i).Float64()
		return f
	case ir.KindNumber:
		return v.Number()
	case ir.KindString:
		return v.String()
	case ir.KindArray:
		elems := v.Array()
		out := make([]any, len(elems))
		for i, e := range elems {
			out[i] = projectValue(e.Value)
		}
		return out
	case ir.KindObject:
		out := make(map[string]any, len(v.Object()))
		for _, e := range v.Object() {
			out[e.Key] = projectValue(e.Value.Value)
		}
		return out
	default:
		return nil
	}
}

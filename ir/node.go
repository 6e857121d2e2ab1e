package ir

import "math/big"

// Node pairs an optional SchemaTag with a Value. Nodes are created by the
// decoder or by application code and are immutable thereafter.
type Node struct {
	Tag   Tag
	Value Value
}

// NewNode attaches tag to v.
func NewNode(tag Tag, v Value) Node {
	return Node{Tag: tag, Value: v}
}

// Untagged wraps v with the absent tag.
func Untagged(v Value) Node {
	return Node{Value: v}
}

// IsComplex reports whether the node's value is Array, Object, or NDArray.
func (n Node) IsComplex() bool {
	return n.Value.IsComplex()
}

// Equal is exact structural equality: same tag, same kind, same payload,
// with Object entries compared in order.
func (n Node) Equal(other Node) bool {
	if n.Tag != other.Tag {
		return false
	}
	return valueEqual(n.Value, other.Value)
}

func valueEqual(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindNull:
		return true
	case KindBool:
		return a.b == b.b
	case KindInteger:
		return bigEqual(a.integer, b.integer)
	case KindNumber:
		return a.number == b.number
	case KindString:
		return a.str == b.str
	case KindArray:
		return nodesEqual(a.array, b.array)
	case KindObject:
		return entriesEqual(a.object, b.object)
	case KindNDArray:
		return ndarrayEqual(*a.ndarray, *b.ndarray)
	case KindInternalRef:
		return a.intRef.String() == b.intRef.String()
	case KindExternalRef:
		return a.extRef == b.extRef
	default:
		return false
	}
}

func bigEqual(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
}

func nodesEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func entriesEqual(a, b []Entry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key || !a[i].Value.Equal(b[i].Value) {
			return false
		}
	}
	return true
}

func ndarrayEqual(a, b NDArrayData) bool {
	if a.DataType != b.DataType || a.ByteOrder != b.ByteOrder || len(a.Shape) != len(b.Shape) {
		return false
	}
	for i := range a.Shape {
		if a.Shape[i] != b.Shape[i] {
			return false
		}
	}
	if len(a.Bytes) != len(b.Bytes) {
		return false
	}
	for i := range a.Bytes {
		if a.Bytes[i] != b.Bytes[i] {
			return false
		}
	}
	return true
}

// EqualUnordered compares two nodes the way a round trip through the
// encoder/decoder should: identical except that Object entries may appear
// in a different order (but the same multiset of key/value pairs).
func EqualUnordered(a, b Node) bool {
	if a.Tag != b.Tag {
		return false
	}
	return valueEqualUnordered(a.Value, b.Value)
}

func valueEqualUnordered(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case KindArray:
		if len(a.array) != len(b.array) {
			return false
		}
		for i := range a.array {
			if !EqualUnordered(a.array[i], b.array[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(a.object) != len(b.object) {
			return false
		}
		used := make([]bool, len(b.object))
		for _, ea := range a.object {
			matched := false
			for j, eb := range b.object {
				if used[j] || ea.Key != eb.Key {
					continue
				}
				if valueEqualUnordered(ea.Value.Value, eb.Value.Value) && ea.Value.Tag == eb.Value.Tag {
					used[j] = true
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
		}
		return true
	default:
		return valueEqual(a, b)
	}
}

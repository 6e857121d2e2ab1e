package ir

import "math/big"

// Kind discriminates the variants of Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInteger
	KindNumber
	KindString
	KindArray
	KindObject
	KindNDArray
	KindInternalRef
	KindExternalRef
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInteger:
		return "Integer"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindArray:
		return "Array"
	case KindObject:
		return "Object"
	case KindNDArray:
		return "NDArray"
	case KindInternalRef:
		return "InternalRef"
	case KindExternalRef:
		return "ExternalRef"
	default:
		return "<unknown kind>"
	}
}

// Entry is one (key, value) pair of an Object, in insertion order.
type Entry struct {
	Key   string
	Value Node
}

// Value is the tagged union held by a Node: exactly one of the ten
// variants described in the data model is populated, selected by Kind.
type Value struct {
	kind Kind

	b       bool
	integer *big.Int
	number  float64
	str     string
	array   []Node
	object  []Entry
	ndarray *NDArrayData
	intRef  Pointer
	extRef  string
}

// Kind reports which variant is populated.
func (v Value) Kind() Kind { return v.kind }

// IsComplex reports whether v is Array, Object, or NDArray — the predicate
// that drives block-vs-flow style selection during emission.
func (v Value) IsComplex() bool {
	switch v.kind {
	case KindArray, KindObject, KindNDArray:
		return true
	default:
		return false
	}
}

func Null() Value { return Value{kind: KindNull} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Integer holds an arbitrary-precision integer; use Int64 for the common
// 64-bit case.
func Integer(i *big.Int) Value { return Value{kind: KindInteger, integer: i} }

func Int64(i int64) Value { return Value{kind: KindInteger, integer: big.NewInt(i)} }

func Number(f float64) Value { return Value{kind: KindNumber, number: f} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Array(nodes ...Node) Value { return Value{kind: KindArray, array: nodes} }

func Object(entries ...Entry) Value { return Value{kind: KindObject, object: entries} }

func NDArray(data NDArrayData) Value { return Value{kind: KindNDArray, ndarray: &data} }

func InternalRef(p Pointer) Value { return Value{kind: KindInternalRef, intRef: p} }

func ExternalRef(uri string) Value { return Value{kind: KindExternalRef, extRef: uri} }

// Bool returns the boolean payload; valid only when Kind() == KindBool.
func (v Value) Bool() bool { return v.b }

// Integer returns the integer payload; valid only when Kind() == KindInteger.
func (v Value) Integer() *big.Int { return v.integer }

// Number returns the float payload; valid only when Kind() == KindNumber.
func (v Value) Number() float64 { return v.number }

// String returns the string payload; valid only when Kind() == KindString.
func (v Value) String() string { return v.str }

// Array returns the element sequence; valid only when Kind() == KindArray.
func (v Value) Array() []Node { return v.array }

// Object returns the ordered entries; valid only when Kind() == KindObject.
func (v Value) Object() []Entry { return v.object }

// NDArray returns the array payload; valid only when Kind() == KindNDArray.
func (v Value) NDArray() NDArrayData { return *v.ndarray }

// InternalRef returns the pointer payload; valid only when
// Kind() == KindInternalRef.
func (v Value) InternalRef() Pointer { return v.intRef }

// ExternalRef returns the URI payload; valid only when
// Kind() == KindExternalRef.
func (v Value) ExternalRef() string { return v.extRef }

// Get performs an O(n) first-match key lookup, per invariant 4: duplicate
// keys retain all entries for iteration, but lookup resolves to the first.
func (v Value) Get(key string) (Node, bool) {
	for _, e := range v.object {
		if e.Key == key {
			return e.Value, true
		}
	}
	return Node{}, false
}

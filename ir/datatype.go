package ir

import "fmt"

// DataTypeKind enumerates the closed set of ndarray element types.
type DataTypeKind int

const (
	Int8 DataTypeKind = iota
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float32
	Float64
	Ucs4 // UTF-32 code units; DataType.Ucs4Len gives the count per element
)

// DataType is an ndarray element type. Ucs4Len is only meaningful when Kind
// is Ucs4.
type DataType struct {
	Kind    DataTypeKind
	Ucs4Len int
}

var dataTypeNames = map[DataTypeKind]string{
	Int8:    "int8",
	Int16:   "int16",
	Int32:   "int32",
	Int64:   "int64",
	Uint8:   "uint8",
	Uint16:  "uint16",
	Uint32:  "uint32",
	Uint64:  "uint64",
	Float32: "float32",
	Float64: "float64",
}

// String renders the datatype the way it appears in an ASDF ndarray
// mapping's "datatype" key.
func (d DataType) String() string {
	if d.Kind == Ucs4 {
		return fmt.Sprintf("ucs4[%d]", d.Ucs4Len)
	}
	if s, ok := dataTypeNames[d.Kind]; ok {
		return s
	}
	return "<unknown datatype>"
}

// Width returns the byte width of one element of this datatype.
func (d DataType) Width() int {
	switch d.Kind {
	case Int8, Uint8:
		return 1
	case Int16, Uint16:
		return 2
	case Int32, Uint32, Float32:
		return 4
	case Int64, Uint64, Float64:
		return 8
	case Ucs4:
		return 4 * d.Ucs4Len
	default:
		return 0
	}
}

// ParseDataType parses the wire representation of a datatype.
func ParseDataType(s string) (DataType, error) {
	for kind, name := range dataTypeNames {
		if s == name {
			return DataType{Kind: kind}, nil
		}
	}
	if n, ok := parseUcs4(s); ok {
		return DataType{Kind: Ucs4, Ucs4Len: n}, nil
	}
	return DataType{}, fmt.Errorf("ir: unrecognized datatype %q", s)
}

func parseUcs4(s string) (int, bool) {
	const prefix, suffix = "ucs4[", "]"
	if len(s) <= len(prefix)+len(suffix) || s[:len(prefix)] != prefix || s[len(s)-len(suffix):] != suffix {
		return 0, false
	}
	body := s[len(prefix) : len(s)-len(suffix)]
	n := 0
	for _, c := range body {
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// ByteOrder is the element byte order of an ndarray block.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

func (b ByteOrder) String() string {
	if b == BigEndian {
		return "big"
	}
	return "little"
}

// ParseByteOrder parses the wire representation of a byteorder.
func ParseByteOrder(s string) (ByteOrder, error) {
	switch s {
	case "big":
		return BigEndian, nil
	case "little":
		return LittleEndian, nil
	default:
		return 0, fmt.Errorf("ir: unrecognized byteorder %q", s)
	}
}

// Shape is a sequence of axis lengths in row-major (outermost-first) order.
type Shape []int

// TotalItems returns the product of the axis lengths, i.e. the element
// count of an array with this shape. An empty shape (a scalar) has one
// element.
func (s Shape) TotalItems() int {
	n := 1
	for _, axis := range s {
		n *= axis
	}
	return n
}

// NDArrayData is the decoded payload of a !core/ndarray node: a byte slice
// owned by the block store it was appended to or read from, plus the
// metadata needed to reinterpret those bytes as a typed array.
type NDArrayData struct {
	Bytes     []byte
	DataType  DataType
	ByteOrder ByteOrder
	Shape     Shape
}

// Validate checks invariant 2 of the data model: shape entries are
// non-negative and their product times the element width equals the byte
// length.
func (d NDArrayData) Validate() error {
	for _, axis := range d.Shape {
		if axis < 0 {
			return fmt.Errorf("ir: negative shape axis %d", axis)
		}
	}
	want := d.Shape.TotalItems() * d.DataType.Width()
	if want != len(d.Bytes) {
		return fmt.Errorf("ir: ndarray byte length %d does not match shape %v x datatype %s (want %d)",
			len(d.Bytes), d.Shape, d.DataType, want)
	}
	return nil
}

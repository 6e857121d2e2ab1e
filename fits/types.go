// Package fits implements the FITS header renderer and HDU classifier,
// plus the low-level byte-stream parser that feeds the classifier.
package fits

import "fmt"

// BitPix is the element-type enum the classifier assigns to a DataArray.
type BitPix int

const (
	BPInt8 BitPix = iota
	BPInt16
	BPInt32
	BPInt64
	BPFloat
	BPDouble
)

func (b BitPix) String() string {
	switch b {
	case BPInt8:
		return "BPInt8"
	case BPInt16:
		return "BPInt16"
	case BPInt32:
		return "BPInt32"
	case BPInt64:
		return "BPInt64"
	case BPFloat:
		return "BPFloat"
	case BPDouble:
		return "BPDouble"
	default:
		return "<unknown bitpix>"
	}
}

// rawBitPix is the wire-level BITPIX value the low-level parser reports,
// before the classifier's enum mapping.
type rawBitPix int

const (
	eightBitInt       rawBitPix = 8
	sixteenBitInt     rawBitPix = 16
	thirtyTwoBitInt   rawBitPix = 32
	sixtyFourBitInt   rawBitPix = 64
	thirtyTwoBitFloat rawBitPix = -32
	sixtyFourBitFloat rawBitPix = -64
)

func mapBitPix(raw rawBitPix) (BitPix, error) {
	switch raw {
	case eightBitInt:
		return BPInt8, nil
	case sixteenBitInt:
		return BPInt16, nil
	case thirtyTwoBitInt:
		return BPInt32, nil
	case sixtyFourBitInt:
		return BPInt64, nil
	case thirtyTwoBitFloat:
		return BPFloat, nil
	case sixtyFourBitFloat:
		return BPDouble, nil
	default:
		return 0, fmt.Errorf("fits: unrecognized BITPIX %d", raw)
	}
}

// DataArray is the classifier's output for one HDU: the element type, its
// axis lengths in column-major order, and the raw bytes.
type DataArray struct {
	BitPix  BitPix
	Axes    []int
	RawData []byte
}

// Dimensions is the shape metadata the low-level parser reports for an
// HDU, prior to classification.
type Dimensions struct {
	BitPix rawBitPix
	Axes   []int
}

// HeaderDataUnit is the low-level parser's output record: one HDU's header
// keywords plus its raw data section.
type HeaderDataUnit struct {
	Header     []KeywordRecord
	Dimensions Dimensions
	MainData   []byte
	Extension  bool

	// XType is the XTENSION keyword's value for extension HDUs ("IMAGE"
	// or "BINTABLE"); ignored for the Primary HDU.
	XType string
	// PCount and Heap are only meaningful when XType is "BINTABLE":
	// the heap byte count and the heap bytes following the table data.
	PCount int
	Heap   []byte
}

// KeywordRecord is one parsed 80-byte header line reduced to its logical
// content.
type KeywordRecord struct {
	Name    string
	Value   Value
	Comment string
}

// Value is the tagged union of header-keyword value types: Logic, Integer,
// Float, String.
type Value struct {
	kind    valueKind
	logic   bool
	integer int64
	float   float64
	str     string
}

type valueKind int

const (
	valueLogic valueKind = iota
	valueInteger
	valueFloat
	valueString
)

func Logic(b bool) Value         { return Value{kind: valueLogic, logic: b} }
func Integer(i int64) Value      { return Value{kind: valueInteger, integer: i} }
func Float(f float64) Value      { return Value{kind: valueFloat, float: f} }
func StringValue(s string) Value { return Value{kind: valueString, str: s} }

// UserRecord is one line of a header's user section: a keyword, a
// COMMENT line, or a blank line.
type UserRecord struct {
	kind    userKind
	name    string
	value   Value
	comment string
	text    string
}

type userKind int

const (
	userKeyword userKind = iota
	userComment
	userBlank
)

func Keyword(name string, value Value, comment string) UserRecord {
	return UserRecord{kind: userKeyword, name: name, value: value, comment: comment}
}

func CommentRecord(text string) UserRecord {
	return UserRecord{kind: userComment, text: text}
}

func BlankLine() UserRecord {
	return UserRecord{kind: userBlank}
}

// HDUKind distinguishes the extension types the classifier produces.
type HDUKind int

const (
	KindPrimary HDUKind = iota
	KindImage
	KindBinTable
)

func (k HDUKind) String() string {
	switch k {
	case KindPrimary:
		return "Primary"
	case KindImage:
		return "Image"
	case KindBinTable:
		return "BinTable"
	default:
		return "<unknown hdu kind>"
	}
}

// HDU is one classified header-data unit.
type HDU struct {
	Kind      HDUKind
	Data      DataArray
	PCount    int
	HeapBytes []byte
}

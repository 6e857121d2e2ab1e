// Package arraycodec encodes and decodes raw ndarray bytes for the closed
// ir.DataType set, with explicit byte-order control. The ASDF codec treats
// array bytes as opaque; this package is what a caller reaches for to turn
// them back into native Go slices, or vice versa.
package arraycodec

import (
	"encoding/binary"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/skyfield-labs/corefmt/ir"
)

// EncodeArray packs a flat, row-major slice of Go values into bytes for the
// given datatype and byte order. v must be a slice whose element type
// matches dt (see DecodeArray for the mapping).
func EncodeArray(dt ir.DataType, order ir.ByteOrder, v any) ([]byte, error) {
	bo := nativeOrder(order)
	switch dt.Kind {
	case ir.Int8:
		return encodeInts[int8](v, dt, func(b []byte, x int8) { b[0] = byte(x) })
	case ir.Uint8:
		return encodeInts[uint8](v, dt, func(b []byte, x uint8) { b[0] = x })
	case ir.Int16:
		return encodeInts[int16](v, dt, func(b []byte, x int16) { bo.PutUint16(b, uint16(x)) })
	case ir.Uint16:
		return encodeInts[uint16](v, dt, func(b []byte, x uint16) { bo.PutUint16(b, x) })
	case ir.Int32:
		return encodeInts[int32](v, dt, func(b []byte, x int32) { bo.PutUint32(b, uint32(x)) })
	case ir.Uint32:
		return encodeInts[uint32](v, dt, func(b []byte, x uint32) { bo.PutUint32(b, x) })
	case ir.Int64:
		return encodeInts[int64](v, dt, func(b []byte, x int64) { bo.PutUint64(b, uint64(x)) })
	case ir.Uint64:
		return encodeInts[uint64](v, dt, func(b []byte, x uint64) { bo.PutUint64(b, x) })
	case ir.Float32:
		return encodeInts[float32](v, dt, func(b []byte, x float32) { bo.PutUint32(b, math.Float32bits(x)) })
	case ir.Float64:
		return encodeInts[float64](v, dt, func(b []byte, x float64) { bo.PutUint64(b, math.Float64bits(x)) })
	case ir.Ucs4:
		return encodeUcs4(v, dt, bo)
	default:
		return nil, fmt.Errorf("arraycodec: unsupported datatype %s", dt)
	}
}

// DecodeArray unpacks bytes into a flat, row-major Go slice for the given
// datatype, byte order, and shape. The returned value's concrete type is:
//
//	Int8/Uint8/...   -> []int8, []uint8, ...
//	Float32/Float64  -> []float32, []float64
//	Ucs4             -> []string, one element per Ucs4Len-rune chunk
func DecodeArray(order ir.ByteOrder, shape ir.Shape, dt ir.DataType, data []byte) (any, error) {
	n := shape.TotalItems()
	width := dt.Width()
	if len(data) != n*width {
		return nil, fmt.Errorf("arraycodec: data length %d does not match shape %v x datatype %s", len(data), shape, dt)
	}
	bo := nativeOrder(order)
	switch dt.Kind {
	case ir.Int8:
		return decodeBytes(data, n, 1, func(b []byte) int8 { return int8(b[0]) }), nil
	case ir.Uint8:
		return decodeBytes(data, n, 1, func(b []byte) uint8 { return b[0] }), nil
	case ir.Int16:
		return decodeBytes(data, n, 2, func(b []byte) int16 { return int16(bo.Uint16(b)) }), nil
	case ir.Uint16:
		return decodeBytes(data, n, 2, func(b []byte) uint16 { return bo.Uint16(b) }), nil
	case ir.Int32:
		return decodeBytes(data, n, 4, func(b []byte) int32 { return int32(bo.Uint32(b)) }), nil
	case ir.Uint32:
		return decodeBytes(data, n, 4, func(b []byte) uint32 { return bo.Uint32(b) }), nil
	case ir.Int64:
		return decodeBytes(data, n, 8, func(b []byte) int64 { return int64(bo.Uint64(b)) }), nil
	case ir.Uint64:
		return decodeBytes(data, n, 8, func(b []byte) uint64 { return bo.Uint64(b) }), nil
	case ir.Float32:
		return decodeBytes(data, n, 4, func(b []byte) float32 { return math.Float32frombits(bo.Uint32(b)) }), nil
	case ir.Float64:
		return decodeBytes(data, n, 8, func(b []byte) float64 { return math.Float64frombits(bo.Uint64(b)) }), nil
	case ir.Ucs4:
		return decodeUcs4(data, n, dt.Ucs4Len, bo), nil
	default:
		return nil, fmt.Errorf("arraycodec: unsupported datatype %s", dt)
	}
}

// TotalItems returns the element count of an array with the given shape.
func TotalItems(shape ir.Shape) int {
	return shape.TotalItems()
}

func nativeOrder(order ir.ByteOrder) binary.ByteOrder {
	if order == ir.BigEndian {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

func encodeInts[T any](v any, dt ir.DataType, put func([]byte, T)) ([]byte, error) {
	s, ok := v.([]T)
	if !ok {
		return nil, fmt.Errorf("arraycodec: expected %T for datatype %s, got %T", s, dt, v)
	}
	width := dt.Width()
	out := make([]byte, len(s)*width)
	for i, x := range s {
		put(out[i*width:(i+1)*width], x)
	}
	return out, nil
}

func decodeBytes[T any](data []byte, n, width int, get func([]byte) T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = get(data[i*width : (i+1)*width])
	}
	return out
}

func encodeUcs4(v any, dt ir.DataType, bo binary.ByteOrder) ([]byte, error) {
	strs, ok := v.([]string)
	if !ok {
		return nil, fmt.Errorf("arraycodec: expected []string for datatype %s, got %T", dt, v)
	}
	width := dt.Width()
	out := make([]byte, len(strs)*width)
	for i, s := range strs {
		runes := []rune(s)
		for j := 0; j < dt.Ucs4Len; j++ {
			var r rune
			if j < len(runes) {
				r = runes[j]
			}
			off := i*width + j*4
			bo.PutUint32(out[off:off+4], uint32(r))
		}
	}
	return out, nil
}

func decodeUcs4(data []byte, n, codeUnits int, bo binary.ByteOrder) []string {
	out := make([]string, n)
	width := 4 * codeUnits
	for i := range out {
		var runes []rune
		for j := 0; j < codeUnits; j++ {
			off := i*width + j*4
			r := rune(bo.Uint32(data[off : off+4]))
			if r == 0 {
				break
			}
			runes = append(runes, r)
		}
		b := make([]byte, 0, len(runes)*utf8.UTFMax)
		for _, r := range runes {
			b = utf8.AppendRune(b, r)
		}
		out[i] = string(b)
	}
	return out
}

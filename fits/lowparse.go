package fits

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// LowLevelParser is the FITS byte-stream parser the classifier consumes
// from. DefaultParser is the concrete implementation this package ships:
// it reads 2880-byte blocks, tokenizes 80-byte keyword lines, and
// reassembles HeaderDataUnit records. It supports Primary and Image HDUs
// fully; for BinTable HDUs it reads PCOUNT and returns the table data and
// heap as raw bytes without decoding them.
type LowLevelParser interface {
	Parse(r io.Reader) ([]HeaderDataUnit, error)
}

type DefaultParser struct{}

func (DefaultParser) Parse(r io.Reader) ([]HeaderDataUnit, error) {
	br := newBlockReader(r)
	var units []HeaderDataUnit
	for {
		keys, records, ended, err := readHeaderBlocks(br)
		if err != nil {
			if err == io.EOF && len(keys.order) == 0 {
				break
			}
			return nil, &FormatError{Inner: err}
		}
		if !ended {
			break
		}
		u, err := buildUnit(keys, records, len(units) == 0)
		if err != nil {
			return nil, err
		}

		dataLen := dataByteLen(u)
		if dataLen > 0 {
			data, err := br.readExact(dataLen)
			if err != nil {
				return nil, &FormatError{Inner: err}
			}
			u.MainData = data
		}
		if u.PCount > 0 {
			heap, err := br.readExact(u.PCount)
			if err != nil {
				return nil, &FormatError{Inner: err}
			}
			u.Heap = heap
		}
		if dataLen > 0 || u.PCount > 0 {
			br.skipToBlockBoundary()
		}
		units = append(units, u)
	}
	return units, nil
}

func dataByteLen(u HeaderDataUnit) int {
	if len(u.Dimensions.Axes) == 0 {
		return 0
	}
	n := rawBitPixWidth(u.Dimensions.BitPix)
	for _, a := range u.Dimensions.Axes {
		n *= a
	}
	return n
}

func rawBitPixWidth(b rawBitPix) int {
	switch b {
	case eightBitInt:
		return 1
	case sixteenBitInt:
		return 2
	case thirtyTwoBitInt, thirtyTwoBitFloat:
		return 4
	case sixtyFourBitInt, sixtyFourBitFloat:
		return 8
	default:
		return 0
	}
}

// parsedKeys is an ordered map-like keyword/value scan result.
type parsedKeys struct {
	order  []string
	values map[string]string // raw value text, pre-typed
}

func buildUnit(keys *parsedKeys, records []KeywordRecord, isPrimary bool) (HeaderDataUnit, error) {
	u := HeaderDataUnit{Header: records, Extension: !isPrimary}

	bitpix, err := keys.reqInt("BITPIX")
	if err != nil {
		return u, err
	}
	u.Dimensions.BitPix = rawBitPix(bitpix)

	naxis, err := keys.reqInt("NAXIS")
	if err != nil {
		return u, err
	}
	axes := make([]int, naxis)
	for i := 0; i < naxis; i++ {
		n, err := keys.reqInt(fmt.Sprintf("NAXIS%d", i+1))
		if err != nil {
			return u, err
		}
		axes[i] = n
	}
	u.Dimensions.Axes = axes

	if !isPrimary {
		xtension, ok := keys.values["XTENSION"]
		if !ok {
			return u, &InvalidExtensionError{Reason: "missing XTENSION keyword"}
		}
		u.XType = strings.Trim(strings.TrimSpace(xtension), "'")
		if u.XType == "BINTABLE" || u.XType == "TABLE" {
			pcount, err := keys.reqInt("PCOUNT")
			if err != nil {
				return u, err
			}
			u.PCount = pcount
		}
	}
	return u, nil
}

func (k *parsedKeys) reqInt(name string) (int, error) {
	raw, ok := k.values[name]
	if !ok {
		return 0, &FormatError{Inner: fmt.Errorf("fits: missing required keyword %s", name)}
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &FormatError{Inner: fmt.Errorf("fits: keyword %s is not an integer: %q", name, raw)}
	}
	return n, nil
}

// readHeaderBlocks reads 2880-byte blocks of 80-byte keyword lines until
// the END keyword is seen.
func readHeaderBlocks(br *blockReader) (*parsedKeys, []KeywordRecord, bool, error) {
	keys := &parsedKeys{values: map[string]string{}}
	var records []KeywordRecord
	for {
		block, err := br.readBlock()
		if err != nil {
			return keys, records, false, err
		}
		for i := 0; i+lineWidth <= len(block); i += lineWidth {
			line := string(block[i : i+lineWidth])
			name := strings.TrimSpace(line[:8])
			if name == "END" {
				return keys, records, true, nil
			}
			if name == "" {
				continue
			}
			if len(line) < 10 || line[8:10] != "= " {
				continue
			}
			value, comment := splitValueComment(strings.TrimSpace(line[10:]))
			keys.order = append(keys.order, name)
			keys.values[name] = value
			records = append(records, KeywordRecord{Name: name, Value: typedValue(value), Comment: comment})
		}
	}
}

// splitValueComment separates the value field from a trailing " / comment",
// respecting quoted string values (a "/" inside quotes is data).
func splitValueComment(field string) (string, string) {
	if strings.HasPrefix(field, "'") {
		if end := strings.Index(field[1:], "'"); end >= 0 {
			value := field[:end+2]
			rest := field[end+2:]
			if j := strings.Index(rest, "/"); j != -1 {
				return value, strings.TrimSpace(rest[j+1:])
			}
			return value, ""
		}
		return field, ""
	}
	if j := strings.Index(field, "/"); j != -1 {
		return strings.TrimSpace(field[:j]), strings.TrimSpace(field[j+1:])
	}
	return field, ""
}

// typedValue maps a raw value field to its keyword value type: logicals,
// quoted strings, integers, floats, anything else as bare text.
func typedValue(raw string) Value {
	switch raw {
	case "T":
		return Logic(true)
	case "F":
		return Logic(false)
	}
	if strings.HasPrefix(raw, "'") {
		return StringValue(strings.Trim(raw, "'"))
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return Integer(i)
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return Float(f)
	}
	return StringValue(raw)
}

// blockReader reads a FITS byte stream 2880 bytes at a time, tracking the
// absolute position so data sections can be re-aligned to block
// boundaries.
type blockReader struct {
	r   io.Reader
	pos int
}

func newBlockReader(r io.Reader) *blockReader {
	return &blockReader{r: r}
}

func (b *blockReader) readBlock() ([]byte, error) {
	buf := make([]byte, blockBytes)
	n, err := io.ReadFull(b.r, buf)
	b.pos += n
	if n == 0 && err != nil {
		return nil, err
	}
	return buf, nil
}

func (b *blockReader) readExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := io.ReadFull(b.r, buf)
	b.pos += read
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, err
	}
	return buf, nil
}

func (b *blockReader) skipToBlockBoundary() {
	rem := b.pos % blockBytes
	if rem == 0 {
		return
	}
	pad := blockBytes - rem
	io.CopyN(io.Discard, b.r, int64(pad))
	b.pos += pad
}

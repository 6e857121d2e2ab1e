package fits

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	lineWidth  = 80
	blockBytes = 2880
)

// renderKeywordLine lays out one 80-byte keyword record: name in bytes
// 0-7, "= " at 8-9, value from byte 10, optional " / comment", space
// padding to 80.
func renderKeywordLine(name string, value Value, comment string) string {
	var b strings.Builder
	b.WriteString(padName(name))
	b.WriteString("= ")
	b.WriteString(renderValueField(value))
	if comment != "" {
		b.WriteString(" / ")
		b.WriteString(comment)
	}
	line := b.String()
	if len(line) > lineWidth {
		line = line[:lineWidth]
	}
	return line + strings.Repeat(" ", lineWidth-len(line))
}

func padName(name string) string {
	if len(name) > 8 {
		name = name[:8]
	}
	return name + strings.Repeat(" ", 8-len(name))
}

// renderValueField renders the value portion starting at byte 10: numeric
// and logical values are right-justified to width 20, strings are quoted
// and left as-is.
func renderValueField(v Value) string {
	switch v.kind {
	case valueLogic:
		s := "F"
		if v.logic {
			s = "T"
		}
		return rightJustify(s, 20)
	case valueInteger:
		return rightJustify(strconv.FormatInt(v.integer, 10), 20)
	case valueFloat:
		return rightJustify(formatFloat(v.float), 20)
	case valueString:
		return "'" + v.str + "'"
	default:
		return rightJustify("", 20)
	}
}

// formatFloat renders a float the way the host's default decimal show
// would, with the exponent marker uppercased (so "e-16" reads "E-16").
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	return strings.ToUpper(s)
}

func rightJustify(s string, width int) string {
	if len(s) >= width {
		return s[len(s)-width:]
	}
	return strings.Repeat(" ", width-len(s)) + s
}

func renderCommentLine(text string) string {
	return renderRawLine("COMMENT " + text)
}

func renderBlankLine() string {
	return strings.Repeat(" ", lineWidth)
}

func renderRawLine(s string) string {
	if len(s) > lineWidth {
		s = s[:lineWidth]
	}
	return s + strings.Repeat(" ", lineWidth-len(s))
}

func renderUserRecord(r UserRecord) string {
	switch r.kind {
	case userKeyword:
		return renderKeywordLine(r.name, r.value, r.comment)
	case userComment:
		return renderCommentLine(r.text)
	case userBlank:
		return renderBlankLine()
	default:
		return renderBlankLine()
	}
}

var primarySystemKeywords = map[string]bool{
	"BITPIX": true, "EXTEND": true, "DATASUM": true, "CHECKSUM": true,
}

func isSystemKeyword(name string) bool {
	if primarySystemKeywords[name] {
		return true
	}
	return strings.HasPrefix(name, "NAXIS")
}

func filterUserRecords(records []UserRecord) []UserRecord {
	out := make([]UserRecord, 0, len(records))
	for _, r := range records {
		if r.kind == userKeyword && isSystemKeyword(r.name) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func naxisRecords(axes []int) []UserRecord {
	recs := make([]UserRecord, 0, len(axes)+1)
	recs = append(recs, Keyword("NAXIS", Integer(int64(len(axes))), ""))
	for i, axis := range axes {
		recs = append(recs, Keyword(fmt.Sprintf("NAXIS%d", i+1), Integer(int64(axis)), ""))
	}
	return recs
}

// RenderPrimaryHeader lays out a Primary HDU's header: SIMPLE, BITPIX,
// NAXIS.., EXTEND, DATASUM, CHECKSUM(zeros), user records, END. The data
// bytes are needed up front to compute DATASUM.
func RenderPrimaryHeader(bitpix BitPix, axes []int, user []UserRecord, data []byte) []byte {
	records := []UserRecord{
		Keyword("SIMPLE", Logic(true), "conforms to the FITS standard"),
		Keyword("BITPIX", Integer(int64(wireBitPix(bitpix))), ""),
	}
	records = append(records, naxisRecords(axes)...)
	records = append(records,
		Keyword("EXTEND", Logic(true), ""),
		Keyword("DATASUM", StringValue(strconv.FormatUint(uint64(dataSum(data)), 10)), ""),
		Keyword("CHECKSUM", StringValue(zeroChecksum), ""),
	)
	records = append(records, filterUserRecords(user)...)
	return renderHeaderBlock(records)
}

// RenderImageExtensionHeader lays out an Image extension's header:
// XTENSION='IMAGE', BITPIX, NAXIS.., PCOUNT=0, GCOUNT=1, DATASUM,
// CHECKSUM(zeros), user records, END.
func RenderImageExtensionHeader(bitpix BitPix, axes []int, user []UserRecord, data []byte) []byte {
	records := []UserRecord{
		Keyword("XTENSION", StringValue("IMAGE"), ""),
		Keyword("BITPIX", Integer(int64(wireBitPix(bitpix))), ""),
	}
	records = append(records, naxisRecords(axes)...)
	records = append(records,
		Keyword("PCOUNT", Integer(0), ""),
		Keyword("GCOUNT", Integer(1), ""),
		Keyword("DATASUM", StringValue(strconv.FormatUint(uint64(dataSum(data)), 10)), ""),
		Keyword("CHECKSUM", StringValue(zeroChecksum), ""),
	)
	records = append(records, filterUserRecords(user)...)
	return renderHeaderBlock(records)
}

func renderHeaderBlock(records []UserRecord) []byte {
	var b strings.Builder
	for _, r := range records {
		b.WriteString(renderUserRecord(r))
	}
	b.WriteString(renderRawLine("END"))
	return padBlock([]byte(b.String()), ' ')
}

// padBlock pads data to the next multiple of 2880 bytes with fill,
// appending zero extra bytes when already aligned.
func padBlock(data []byte, fill byte) []byte {
	rem := len(data) % blockBytes
	if rem == 0 {
		return data
	}
	pad := blockBytes - rem
	out := make([]byte, len(data)+pad)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = fill
	}
	return out
}

// PadDataBlock NUL-pads data to the next 2880-byte boundary.
func PadDataBlock(data []byte) []byte {
	return padBlock(data, 0)
}

func wireBitPix(b BitPix) rawBitPix {
	switch b {
	case BPInt8:
		return eightBitInt
	case BPInt16:
		return sixteenBitInt
	case BPInt32:
		return thirtyTwoBitInt
	case BPInt64:
		return sixtyFourBitInt
	case BPFloat:
		return thirtyTwoBitFloat
	case BPDouble:
		return sixtyFourBitFloat
	default:
		return 0
	}
}

package fits

// EncodeHDU renders one HDU (header + data, both block-aligned) and
// patches its CHECKSUM keyword. The output length is always a multiple of
// 2880.
func EncodeHDU(kind HDUKind, bitpix BitPix, axes []int, user []UserRecord, data []byte) []byte {
	var header []byte
	switch kind {
	case KindPrimary:
		header = RenderPrimaryHeader(bitpix, axes, user, data)
	default:
		header = RenderImageExtensionHeader(bitpix, axes, user, data)
	}
	padded := PadDataBlock(data)
	hdu := make([]byte, 0, len(header)+len(padded))
	hdu = append(hdu, header...)
	hdu = append(hdu, padded...)
	return patchChecksum(hdu)
}

package fits

// Classify maps a sequence of parsed HDUs to a Primary entity plus an
// Extension list, reinterpreting each one's axes column-major.
func Classify(units []HeaderDataUnit) (HDU, []HDU, error) {
	if len(units) == 0 {
		return HDU{}, nil, &MissingPrimaryError{}
	}
	if units[0].Extension {
		return HDU{}, nil, &InvalidExtensionError{Reason: "Primary, expected at position 0"}
	}
	primary, err := classifyOne(units[0], KindPrimary)
	if err != nil {
		return HDU{}, nil, err
	}
	extensions := make([]HDU, 0, len(units)-1)
	for _, u := range units[1:] {
		hdu, err := classifyExtension(u)
		if err != nil {
			return HDU{}, nil, err
		}
		extensions = append(extensions, hdu)
	}
	return primary, extensions, nil
}

func classifyOne(u HeaderDataUnit, kind HDUKind) (HDU, error) {
	bitpix, err := mapBitPix(u.Dimensions.BitPix)
	if err != nil {
		return HDU{}, &FormatError{Inner: err}
	}
	axes := columnMajor(u.Dimensions.Axes)
	return HDU{
		Kind: kind,
		Data: DataArray{
			BitPix:  bitpix,
			Axes:    axes,
			RawData: u.MainData,
		},
	}, nil
}

// classifyExtension distinguishes Image from BinTable. BinTable data is
// not further decoded; its heap bytes are carried through unexamined.
func classifyExtension(u HeaderDataUnit) (HDU, error) {
	switch u.XType {
	case "", "IMAGE":
		return classifyOne(u, KindImage)
	case "BINTABLE":
		hdu, err := classifyOne(u, KindBinTable)
		if err != nil {
			return HDU{}, err
		}
		hdu.PCount = u.PCount
		hdu.HeapBytes = u.Heap
		return hdu, nil
	default:
		return HDU{}, &InvalidExtensionError{Reason: "unrecognized XTENSION " + u.XType}
	}
}

// columnMajor reverses a row-major axis list into column-major order, the
// convention FITS NAXISn keywords use (NAXIS1 is the fastest-varying
// axis).
func columnMajor(axes []int) []int {
	out := make([]int, len(axes))
	for i, a := range axes {
		out[len(axes)-1-i] = a
	}
	return out
}

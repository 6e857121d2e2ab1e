// Command fitsdump decodes a FITS file's HDU list and prints a summary of
// the Primary HDU and each extension.
package main

import (
	"fmt"
	"os"

	"github.com/skyfield-labs/corefmt/fits"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: fitsdump <file.fits>")
		os.Exit(2)
	}
	if err := run(os.Args[1]); err != nil {
		fmt.Fprintln(os.Stderr, "fitsdump:", err)
		os.Exit(1)
	}
}

func run(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	units, err := (fits.DefaultParser{}).Parse(f)
	if err != nil {
		return err
	}
	primary, extensions, err := fits.Classify(units)
	if err != nil {
		return err
	}
	dumpHDU("PRIMARY", primary)
	for i, ext := range extensions {
		dumpHDU(fmt.Sprintf("EXTENSION %d", i+1), ext)
	}
	return nil
}

func dumpHDU(label string, hdu fits.HDU) {
	fmt.Printf("%s: kind=%v bitpix=%v axes=%v bytes=%d\n",
		label, hdu.Kind, hdu.Data.BitPix, hdu.Data.Axes, len(hdu.Data.RawData))
	if hdu.Kind == fits.KindBinTable {
		fmt.Printf("  pcount=%d heap_bytes=%d\n", hdu.PCount, len(hdu.HeapBytes))
	}
}

// Command asdflsp runs the hover-only ASDF language server (package
// lspsrv) over stdio.
package main

import (
	"context"
	"io"
	"os"

	"github.com/skyfield-labs/corefmt/lspsrv"
)

type stdio struct {
	io.Reader
	io.Writer
}

func (stdio) Close() error { return nil }

func main() {
	lspsrv.Run(context.Background(), stdio{Reader: os.Stdin, Writer: os.Stdout})
}

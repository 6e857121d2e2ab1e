// Command asdftool wires the corefmt library end to end: view, query,
// patch, and diff subcommands over .asdf documents.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/skyfield-labs/corefmt/asdfio"
	"github.com/skyfield-labs/corefmt/diagnostic"
	"github.com/skyfield-labs/corefmt/diffutil"
	"github.com/skyfield-labs/corefmt/ir"
	"github.com/skyfield-labs/corefmt/patch"
	"github.com/skyfield-labs/corefmt/query"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	var err error
	switch os.Args[1] {
	case "view":
		err = runView(os.Args[2:])
	case "query":
		err = runQuery(os.Args[2:])
	case "patch":
		err = runPatch(os.Args[2:])
	case "diff":
		err = runDiff(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "asdftool:", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: asdftool <view|query|patch|diff> [flags] <file.asdf>")
}

func loadTree(path string) (ir.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return ir.Node{}, err
	}
	defer f.Close()
	root, _, err := asdfio.ReadDocument(f)
	if err != nil {
		return ir.Node{}, err
	}
	return root, nil
}

func runView(args []string) error {
	fs := flag.NewFlagSet("view", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 1 {
		return fmt.Errorf("view requires exactly one file argument")
	}
	root, err := loadTree(fs.Arg(0))
	if err != nil {
		return err
	}
	diagnostic.Dump(os.Stdout, root, diagnostic.PaletteFor(os.Stdout))
	return nil
}

func runQuery(args []string) error {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	expr := fs.String("e", "", "expr-lang boolean expression to select nodes")
	fs.Parse(args)
	if fs.NArg() != 1 || *expr == "" {
		return fmt.Errorf("query requires -e <expr> and exactly one file argument")
	}
	root, err := loadTree(fs.Arg(0))
	if err != nil {
		return err
	}
	matches, err := query.Select(root, *expr)
	if err != nil {
		return err
	}
	for _, m := range matches {
		fmt.Printf("%s: %s\n", m.Path, m.Node.Value.Kind())
	}
	return nil
}

func runPatch(args []string) error {
	fs := flag.NewFlagSet("patch", flag.ExitOnError)
	patchFile := fs.String("p", "", "path to an RFC 6902 JSON Patch document")
	fs.Parse(args)
	if fs.NArg() != 1 || *patchFile == "" {
		return fmt.Errorf("patch requires -p <patchfile> and exactly one file argument")
	}
	root, err := loadTree(fs.Arg(0))
	if err != nil {
		return err
	}
	ops, err := os.ReadFile(*patchFile)
	if err != nil {
		return err
	}
	out, err := patch.Apply(root, ops)
	if err != nil {
		return err
	}
	diagnostic.Dump(os.Stdout, out, diagnostic.PaletteFor(os.Stdout))
	return nil
}

func runDiff(args []string) error {
	fs := flag.NewFlagSet("diff", flag.ExitOnError)
	fs.Parse(args)
	if fs.NArg() != 2 {
		return fmt.Errorf("diff requires exactly two file arguments")
	}
	from, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return err
	}
	to, err := os.ReadFile(fs.Arg(1))
	if err != nil {
		return err
	}
	if diffutil.Equal(from, to) {
		return nil
	}
	fmt.Print(diffutil.Unified(fs.Arg(0), fs.Arg(1), from, to))
	return nil
}

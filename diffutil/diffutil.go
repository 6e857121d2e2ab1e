// Package diffutil produces a unified-style diff between two encoded ASDF
// documents using github.com/sergi/go-diff/diffmatchpatch: it computes a
// semantically cleaned-up character diff and prints each equal, deleted, or
// inserted run line by line with a ' ', '-', or '+' prefix. It emits no
// "@@" hunk headers, and a line changed in part is split across runs. Used
// by test tooling and by cmd/asdftool's diff subcommand.
package diffutil

import (
	"fmt"
	"strings"

	diffmatchpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Unified returns a unified-style diff of from vs to, labeled with
// fromName/toName the way `diff -u` headers its two files.
func Unified(fromName, toName string, from, to []byte) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(from), string(to), true)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var b strings.Builder
	fmt.Fprintf(&b, "--- %s\n", fromName)
	fmt.Fprintf(&b, "+++ %s\n", toName)
	for _, d := range diffs {
		for _, line := range splitKeepEmpty(d.Text) {
			if line == "" {
				continue
			}
			switch d.Type {
			case diffmatchpatch.DiffInsert:
				fmt.Fprintf(&b, "+%s\n", line)
			case diffmatchpatch.DiffDelete:
				fmt.Fprintf(&b, "-%s\n", line)
			case diffmatchpatch.DiffEqual:
				fmt.Fprintf(&b, " %s\n", line)
			}
		}
	}
	return b.String()
}

// Equal reports whether from and to are byte-identical, the fast path a
// caller should check before paying for Unified's diff computation.
func Equal(from, to []byte) bool {
	return string(from) == string(to)
}

func splitKeepEmpty(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

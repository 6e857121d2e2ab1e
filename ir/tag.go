// Package ir implements the document-tree data model shared by the ASDF
// codec and its surrounding tooling: typed scalars, nested mappings and
// sequences, N-dimensional arrays, and the binary block store they
// reference.
package ir

import "strings"

// stsciPrefix is the URI prefix canonical tags are stored stripped of.
const stsciPrefix = "tag:stsci.edu:asdf/"

// Tag identifies the semantic type of a Node. The zero Tag is absent and
// compares equal to itself; it is the identity element under merging two
// tag sources (absent yields whatever the other side carries).
type Tag string

// NewTag canonicalizes raw into a Tag. URIs carrying the stsci.edu ASDF
// prefix are stored with that prefix stripped; anything else, including
// short schema names, is kept as given.
func NewTag(raw string) Tag {
	if raw == "" {
		return ""
	}
	if strings.HasPrefix(raw, stsciPrefix) {
		return Tag(raw[len(stsciPrefix):])
	}
	return Tag(raw)
}

// IsZero reports whether the tag is absent.
func (t Tag) IsZero() bool {
	return t == ""
}

// String returns the canonical form, as it should be emitted on the wire.
func (t Tag) String() string {
	return string(t)
}

// HasPrefix reports whether the canonical tag starts with prefix. Per the
// ASDF ndarray tag convention, only the prefix is checked; the trailing
// schema version is not stripped or compared, so "core/ndarray-99.9.9" is
// recognized exactly like "core/ndarray-1.0.0".
func (t Tag) HasPrefix(prefix string) bool {
	return strings.HasPrefix(string(t), prefix)
}

// NDArrayTagPrefix is the schema-name prefix that marks a mapping as an
// encoded N-dimensional array, independent of its trailing version.
const NDArrayTagPrefix = "core/ndarray"

// IsNDArrayTag reports whether t marks an ndarray mapping.
func (t Tag) IsNDArrayTag() bool {
	return t.HasPrefix(NDArrayTagPrefix)
}

// NDArrayTag is the canonical tag this encoder attaches to emitted arrays.
const NDArrayTag = Tag("core/ndarray-1.0.0")

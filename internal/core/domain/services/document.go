package services

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Document is a renderer-neutral printable document. Every string in it is
// already representable in ISO-8859-1.
type Document struct {
	Title       string
	GeneratedAt string
	Sections    []Section
}

// Section is a titled block of key/value fields followed by free lines.
type Section struct {
	Title  string
	Fields []Field
	Lines  []Line
}

type Field struct {
	Label string
	Value string
}

// LineKind tells a renderer how to typeset a line.
type LineKind int

const (
	// LineEntry starts a new timeline entry.
	LineEntry LineKind = iota
	// LineNote is an indented remark belonging to the preceding entry.
	LineNote
	// LineProof is a proof-of-delivery reference belonging to the preceding entry.
	LineProof
	// LinePlain is a standalone message.
	LinePlain
)

type Line struct {
	Kind LineKind
	Text string
}

// Latin1 replaces every rune that ISO-8859-1 cannot encode with '?'. C1
// control runes (U+0080 to U+009F) are replaced too, since cp1252 renderers
// map those bytes to other glyphs.
func Latin1(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if _, ok := charmap.ISO8859_1.EncodeRune(r); ok && !isC1(r) {
			b.WriteRune(r)
			continue
		}
		b.WriteByte('?')
	}
	return b.String()
}

func isC1(r rune) bool {
	return r >= 0x80 && r <= 0x9f
}

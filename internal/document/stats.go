package document

import (
	"strings"
	"unicode/utf8"
)

// Encoding is the only text encoding documents are read and written with.
const Encoding = "UTF-8"

// Stats describes the text of a document.
type Stats struct {
	Lines      int
	Characters int
	Bytes      int
	Encoding   string
	ValidUTF8  bool
}

// Stats counts lines, characters (runes) and bytes of the current text.
// An empty document has one line.
func (r *Record) Stats() Stats {
	return Stats{
		Lines:      strings.Count(r.content, "\n") + 1,
		Characters: utf8.RuneCountInString(r.content),
		Bytes:      len(r.content),
		Encoding:   Encoding,
		ValidUTF8:  utf8.ValidString(r.content),
	}
}

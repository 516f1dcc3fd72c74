package document

import (
	"fmt"
	"path/filepath"

	"github.com/PolarWolf314/vellum/internal/codec"
)

// DirtyMarker prefixes the title of a document with unsaved changes.
const DirtyMarker = "*"

// EncryptedSuffix is appended to the title of a document loaded from an envelope.
const EncryptedSuffix = " (encrypted)"

// Record is one open document.
type Record struct {
	// ID is assigned by the session and never reused.
	ID uint64

	// BackingPath is where the document was loaded from or last saved to.
	// Empty for documents that have never been saved.
	BackingPath string

	// Encrypted is true when the content came from, or was last saved as, an envelope.
	Encrypted bool

	// Format is the envelope format used when Encrypted is true.
	Format codec.Format

	// Dirty is true when the content changed since the last load or save.
	Dirty bool

	// Ordinal is the number used for the synthetic title of unsaved documents.
	Ordinal int

	untitledPrefix string
	content        string
}

// New returns a clean, empty, unsaved record.
func New(id uint64, untitledPrefix string, ordinal int) *Record {
	return &Record{
		ID:             id,
		Ordinal:        ordinal,
		untitledPrefix: untitledPrefix,
	}
}

// Content returns the current text.
func (r *Record) Content() string {
	return r.content
}

// Edit replaces the text and marks the record dirty.
func (r *Record) Edit(content string) {
	r.content = content
	r.Dirty = true
}

// MarkChanged marks the record dirty without touching the text. It is the
// path taken by change notifications from an external editing surface.
func (r *Record) MarkChanged() {
	r.Dirty = true
}

// Load replaces the text after a successful read and marks the record clean.
func (r *Record) Load(content, path string, encrypted bool, format codec.Format) {
	r.content = content
	r.BackingPath = path
	r.Encrypted = encrypted
	r.Format = format
	r.Dirty = false
}

// Saved records a confirmed durable write of the current text.
func (r *Record) Saved(path string, encrypted bool, format codec.Format) {
	r.BackingPath = path
	r.Encrypted = encrypted
	r.Format = format
	r.Dirty = false
}

// Name returns the file name, or the synthetic "Untitled N" name for unsaved documents.
func (r *Record) Name() string {
	if r.BackingPath != "" {
		return filepath.Base(r.BackingPath)
	}
	prefix := r.untitledPrefix
	if prefix == "" {
		prefix = "Untitled"
	}
	return fmt.Sprintf("%s %d", prefix, r.Ordinal)
}

// Title is the display title: the name, an encrypted marker, and a leading
// DirtyMarker while there are unsaved changes.
func (r *Record) Title() string {
	title := r.Name()
	if r.Encrypted {
		title += EncryptedSuffix
	}
	if r.Dirty {
		title = DirtyMarker + title
	}
	return title
}

// Snapshot returns a copy of the record that shares no state with it.
func (r *Record) Snapshot() Record {
	return *r
}
